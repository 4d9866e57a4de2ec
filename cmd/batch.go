package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Recommend jobs for every candidate of the candidates file",
	Run: func(_ *cobra.Command, _ []string) {
		batch()
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("concurrency", "c", 0, "number of candidates processed in parallel")
	viper.BindPFlag("concurrency", batchCmd.Flags().Lookup("concurrency"))
}

func batch() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config, logger := prepare()

	profiles, err := loadCandidates(config, logger)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	pool, err := loadPool(ctx, config, logger)
	if err != nil {
		logger.Fatal("getting available jobs", zap.Error(err))
	}

	rec, err := newRecommender(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating a recommender", zap.Error(err))
	}

	results := make([]profileResult, profiles.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Concurrency)

	for i, candidate := range profiles.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			callCtx, cancel := context.WithTimeout(gctx, config.RequestTimeout)
			defer cancel()

			results[i] = profileResult{
				Candidate: candidate.Name,
				Jobs:      rec.RecommendByProfile(callCtx, *candidate, pool),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatal("batch interrupted", zap.Error(err))
	}

	logger.Info("batch finished", zap.Int("candidates", len(results)))

	if err := printJSON(os.Stdout, results); err != nil {
		logger.Fatal("writing result", zap.Error(err))
	}
}
