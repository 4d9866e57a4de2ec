package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/smartjob/internal/ai"
	"github.com/spigell/smartjob/internal/candidates"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Extract up to ten scored skills from a CV",
	Run: func(cmd *cobra.Command, _ []string) {
		skills(cmd)
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)

	skillsCmd.Flags().String("cv", "", "path to the CV (pdf or plain text)")
	skillsCmd.MarkFlagRequired("cv")
}

func skills(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config, logger := prepare()

	path, _ := cmd.Flags().GetString("cv")
	cvText, err := candidates.ReadCV(path)
	if err != nil {
		logger.Fatal("reading cv", zap.String("path", path), zap.Error(err))
	}

	rec, err := newRecommender(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating a recommender", zap.Error(err))
	}

	callCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	extracted, err := rec.ExtractSkills(callCtx, cvText)
	cancel()

	if err != nil {
		var validationErr *ai.SkillValidationError
		if errors.As(err, &validationErr) {
			logger.Fatal("model reply does not follow the skill list format",
				zap.Strings("violations", validationErr.Violations),
				zap.Error(validationErr.Unwrap()),
			)
		}
		logger.Fatal("extracting skills", zap.Error(err))
	}

	if err := printJSON(os.Stdout, skillsResult{Skills: extracted}); err != nil {
		logger.Fatal("writing result", zap.Error(err))
	}
}
