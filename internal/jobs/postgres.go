package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobsQuery = `SELECT COALESCE(title, '') AS title,
	COALESCE(company, '') AS company,
	COALESCE(location, '') AS location,
	COALESCE(description, '') AS description
FROM jobs
ORDER BY id`

const pingTimeout = 5 * time.Second

// PostgresSource reads the job pool from the jobs table maintained by the ingestion side.
type PostgresSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSource(ctx context.Context, dsn string) (*PostgresSource, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("jobs dsn is required")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse jobs dsn: %w", err)
	}

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect jobs database: %w", err)
	}

	pingCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, pingTimeout)
		defer cancel()
	}
	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping jobs database: %w", err)
	}

	return &PostgresSource{pool: p}, nil
}

// Jobs returns every stored job in insertion order.
func (s *PostgresSource) Jobs(ctx context.Context) (Pool, error) {
	rows, err := s.pool.Query(ctx, jobsQuery)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[Job])
	if err != nil {
		return nil, fmt.Errorf("scan jobs: %w", err)
	}

	return Pool(found), nil
}

func (s *PostgresSource) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}
