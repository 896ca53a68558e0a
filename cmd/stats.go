package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bayesmine/classifier/pkg/config"
	"github.com/bayesmine/classifier/pkg/dataset"
)

var (
	statsConfig    string
	statsModelPath string
	statsModelName string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a trained model's structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(statsConfig)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if statsModelPath != "" {
			cfg.Storage.Backend = "file"
			cfg.Storage.ModelPath = statsModelPath
		}

		classifier, err := loadModel(cfg, statsModelName)
		if err != nil {
			return err
		}

		domain := classifier.Domain()
		color.Cyan("Bayesian classifier")
		fmt.Printf("Class: %s %v\n", domain.Class.Name, domain.Class.Values)
		if prior := classifier.Prior(); prior != nil {
			p := prior.Clone()
			p.Normalize()
			fmt.Printf("Prior: %s\n", p)
		}
		if domain.Class.NumValues() == 2 {
			fmt.Printf("Decision threshold: %.4f\n", classifier.Threshold())
		}
		fmt.Printf("Attributes: %d\n", len(domain.Attributes))
		for _, attr := range domain.Attributes {
			kind := "contingency"
			if attr.Type == dataset.AttrContinuous {
				kind = "loess"
			}
			fmt.Printf("  %-20s %s\n", attr.Name, kind)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsConfig, "config", "", "Path to the configuration file")
	statsCmd.Flags().StringVar(&statsModelPath, "model", "", "Read the model from this file (overrides storage config)")
	statsCmd.Flags().StringVar(&statsModelName, "name", "default", "Model name for the redis backend")
}
