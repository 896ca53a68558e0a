package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bayesmine/classifier/pkg/config"
	"github.com/bayesmine/classifier/pkg/dataset"
)

var (
	predictDataPath  string
	predictConfig    string
	predictModelPath string
	predictModelName string
	predictShowDist  bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict classes for a CSV dataset",
	Long: `Predict class values (and optionally full class distributions) for the
examples of a CSV dataset, using a previously trained model. The class
column may be empty or missing-valued.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if predictDataPath == "" {
			return fmt.Errorf("--data must be specified")
		}

		cfg, err := config.LoadConfig(predictConfig)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if predictModelPath != "" {
			cfg.Storage.Backend = "file"
			cfg.Storage.ModelPath = predictModelPath
		}

		classifier, err := loadModel(cfg, predictModelName)
		if err != nil {
			return err
		}
		table, err := dataset.LoadCSV(predictDataPath)
		if err != nil {
			return err
		}

		class := classifier.Domain().Class
		for n, example := range table.Examples {
			predicted, err := classifier.Predict(example)
			if err != nil {
				return fmt.Errorf("example %d: %w", n+1, err)
			}
			line := fmt.Sprintf("%4d  %s", n+1, class.ValueName(predicted))
			if predictShowDist {
				dist, err := classifier.ClassDistribution(example)
				if err != nil {
					return fmt.Errorf("example %d: %w", n+1, err)
				}
				line += "  " + dist.String()
			}
			if expected, bad := classMismatch(example, class, predicted); bad {
				color.Red("%s  (expected %s)", line, expected)
			} else {
				fmt.Println(line)
			}
		}
		return nil
	},
}

// classMismatch reports whether a known true class disagrees with the
// prediction. The dataset's class indices follow order of first appearance
// and are not comparable to the model's, so value names are compared.
func classMismatch(example *dataset.Example, modelClass *dataset.Attribute, predicted dataset.Value) (string, bool) {
	if example.Class.IsMissing() {
		return "", false
	}
	expected := example.Domain.Class.ValueName(example.Class)
	return expected, expected != modelClass.ValueName(predicted)
}

func init() {
	predictCmd.Flags().StringVar(&predictDataPath, "data", "", "Path to the CSV dataset to classify")
	predictCmd.Flags().StringVar(&predictConfig, "config", "", "Path to the configuration file")
	predictCmd.Flags().StringVar(&predictModelPath, "model", "", "Read the model from this file (overrides storage config)")
	predictCmd.Flags().StringVar(&predictModelName, "name", "default", "Model name for the redis backend")
	predictCmd.Flags().BoolVar(&predictShowDist, "distribution", false, "Print the full class distribution")
}
