package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/smartjob/internal/recommender"
)

// Actual version can be specified in build command.
var version = "unknown"

var providers = []string{"ollama", "gemini"}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version with the supported providers and languages",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s (providers: %s; languages: %s)\n",
			app, version, strings.Join(providers, ", "), strings.Join(recommender.Languages(), ", "))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
