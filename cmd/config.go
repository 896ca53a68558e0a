package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bayesmine/classifier/pkg/config"
)

var configOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if configOutput == "" {
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		}
		if err := cfg.SaveConfig(configOutput); err != nil {
			return err
		}
		fmt.Printf("Wrote default configuration to %s\n", configOutput)
		return nil
	},
}

func init() {
	configCmd.Flags().StringVar(&configOutput, "output", "", "Write the configuration to this file instead of stdout")
}
