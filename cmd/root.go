package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bayesmine",
	Short: "bayesmine - Bayesian classification for tabular datasets",
	Long: `bayesmine builds Bayesian classifiers from labeled CSV datasets and
predicts class distributions for new examples.

Discrete attributes contribute contingency-based conditional probabilities,
continuous attributes a loess-smoothed local estimate; the combined posterior
is normalized after every attribute to keep the numerics bounded.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bayesmine - Bayesian classification toolkit")
		fmt.Println("Use 'bayesmine --help' for usage information")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
}
