package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bayesmine/classifier/pkg/config"
	"github.com/bayesmine/classifier/pkg/dataset"
)

var (
	trainDataPath  string
	trainConfig    string
	trainModelPath string
	trainModelName string
	trainEqualize  bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a Bayesian classifier from a CSV dataset",
	Long: `Train a Bayesian classifier from a labeled CSV dataset.

The last CSV column is the class; numeric columns become continuous
attributes smoothed with loess, the rest contribute contingency rows.
The trained model is written to the configured storage backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if trainDataPath == "" {
			return fmt.Errorf("--data must be specified")
		}

		cfg, err := config.LoadConfig(trainConfig)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if trainModelPath != "" {
			cfg.Storage.Backend = "file"
			cfg.Storage.ModelPath = trainModelPath
		}

		table, err := dataset.LoadCSV(trainDataPath)
		if err != nil {
			return err
		}

		weightChannel := 0
		if trainEqualize {
			weightChannel, err = dataset.EqualizeClassWeights(table, 0)
			if err != nil {
				return err
			}
		}

		learner, err := learnerFromConfig(cfg)
		if err != nil {
			return err
		}
		classifier, err := learner.Learn(table, weightChannel)
		if err != nil {
			return fmt.Errorf("training failed: %w", err)
		}
		for _, warning := range learner.Warnings {
			color.Yellow("warning: %s", warning)
		}

		if err := saveModel(cfg, trainModelName, classifier); err != nil {
			return err
		}

		color.Green("Trained on %d examples (%d attributes, %d classes)",
			table.Len(), len(table.Domain.Attributes), table.Domain.Class.NumValues())
		if learner.AdjustThreshold && table.Domain.Class.NumValues() == 2 {
			fmt.Printf("Calibrated decision threshold: %.4f\n", classifier.Threshold())
		}
		return nil
	},
}

func init() {
	trainCmd.Flags().StringVar(&trainDataPath, "data", "", "Path to the training CSV dataset")
	trainCmd.Flags().StringVar(&trainConfig, "config", "", "Path to the configuration file")
	trainCmd.Flags().StringVar(&trainModelPath, "model", "", "Write the model to this file (overrides storage config)")
	trainCmd.Flags().StringVar(&trainModelName, "name", "default", "Model name for the redis backend")
	trainCmd.Flags().BoolVar(&trainEqualize, "equalize", false, "Equalize class weights before training")
}
