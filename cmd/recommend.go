package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [candidate name]",
	Short: "Recommend up to three jobs for a candidate of the candidates file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		recommend(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().BoolP("interactive", "i", false, "choose the candidate from a list")
}

func recommend(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config, logger := prepare()

	profiles, err := loadCandidates(config, logger)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive && name == "" {
		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: profiles.Names(),
		}

		_, name, err = candidatePrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	if name == "" {
		logger.Fatal("candidate name is required", zap.String("hint", "pass it as an argument or use --interactive"))
	}

	candidate := profiles.FindByName(name)
	if candidate == nil {
		logger.Fatal("candidate not found",
			zap.String("candidate", name),
			zap.Strings("existed candidates", profiles.Names()),
		)
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
	recommended := rec.RecommendByProfile(callCtx, *candidate, pool)
	cancel()

	if err := printJSON(os.Stdout, profileResult{Candidate: candidate.Name, Jobs: recommended}); err != nil {
		logger.Fatal("writing result", zap.Error(err))
	}
}
