package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/smartjob/internal/ai"
	"github.com/spigell/smartjob/internal/ai/gemini"
	"github.com/spigell/smartjob/internal/ai/ollama"
	"github.com/spigell/smartjob/internal/candidates"
	"github.com/spigell/smartjob/internal/jobs"
	"github.com/spigell/smartjob/internal/logger"
	"github.com/spigell/smartjob/internal/recommender"
	"github.com/spigell/smartjob/internal/secrets"
)

type profileResult struct {
	Candidate string     `json:"candidate"`
	Jobs      []jobs.Job `json:"recommended_jobs"`
}

type cvResult struct {
	Jobs      []jobs.Job `json:"recommended_jobs"`
	Narrative string     `json:"career_recommendation"`
}

type skillsResult struct {
	Skills []ai.SkillScore `json:"skills"`
}

// prepare builds the logger and the validated config. Failures are fatal.
func prepare() (*Config, *zap.Logger) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting",
		zap.String("version", version),
		zap.String("language", config.Language),
		zap.String("provider", config.AI.Provider),
		zap.Duration("request_timeout", config.RequestTimeout),
	)

	return config, logger
}

func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	switch cfg.Provider {
	case "", "ollama":
		if cfg.Ollama == nil {
			return nil, errors.New("ai.ollama section is required")
		}
		return ollama.New(cfg.Ollama.URL, cfg.Ollama.Model, logger)
	case "gemini":
		if cfg.Gemini == nil {
			return nil, errors.New("ai.gemini section is required")
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.Gemini.APIKeyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}
		return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, logger)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func newRecommender(ctx context.Context, config *Config, logger *zap.Logger) (*recommender.Recommender, error) {
	locale, err := recommender.LocaleFor(config.Language)
	if err != nil {
		return nil, err
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		return nil, fmt.Errorf("creating %s generator: %w", config.AI.Provider, err)
	}

	return recommender.New(generator, locale, config.AI.MaxLogLength, logger), nil
}

// loadPool reads the job pool from the database when a dsn is configured, otherwise from the jobs file.
func loadPool(ctx context.Context, config *Config, logger *zap.Logger) (jobs.Pool, error) {
	if config.JobsDSN != "" {
		source, err := jobs.NewPostgresSource(ctx, config.JobsDSN)
		if err != nil {
			return nil, err
		}
		defer source.Close()

		pool, err := source.Jobs(ctx)
		if err != nil {
			return nil, err
		}

		logger.Info("getting available jobs", zap.String("source", "postgres"), zap.Int("count", pool.Len()))
		return pool, nil
	}

	pool, err := jobs.LoadFile(config.JobsFile)
	if err != nil {
		return nil, err
	}

	logger.Info("getting available jobs", zap.String("source", config.JobsFile), zap.Int("count", pool.Len()))
	return pool, nil
}

func loadCandidates(config *Config, logger *zap.Logger) (*candidates.Profiles, error) {
	if config.CandidatesFile == "" {
		return nil, errors.New("candidates-file is not configured")
	}

	profiles, err := candidates.LoadFile(config.CandidatesFile)
	if err != nil {
		return nil, err
	}

	logger.Info("getting candidates", zap.Int("count", profiles.Len()))
	return profiles, nil
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
