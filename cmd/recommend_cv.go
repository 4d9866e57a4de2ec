package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/smartjob/internal/candidates"
)

var recommendCVCmd = &cobra.Command{
	Use:   "recommend-cv",
	Short: "Recommend up to three jobs and write a career recommendation for a CV",
	Run: func(cmd *cobra.Command, _ []string) {
		recommendCV(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCVCmd)

	recommendCVCmd.Flags().String("cv", "", "path to the CV (pdf or plain text)")
	recommendCVCmd.MarkFlagRequired("cv")
}

func recommendCV(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config, logger := prepare()

	path, _ := cmd.Flags().GetString("cv")
	cvText, err := candidates.ReadCV(path)
	if err != nil {
		logger.Fatal("reading cv", zap.String("path", path), zap.Error(err))
	}

	pool, err := loadPool(ctx, config, logger)
	if err != nil {
		logger.Fatal("getting available jobs", zap.Error(err))
	}

	rec, err := newRecommender(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating a recommender", zap.Error(err))
	}

	callCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	recommended, narrative := rec.RecommendByCV(callCtx, cvText, pool)
	cancel()

	if err := printJSON(os.Stdout, cvResult{Jobs: recommended, Narrative: narrative}); err != nil {
		logger.Fatal("writing result", zap.Error(err))
	}
}
