package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents bayesmine configuration.
type Config struct {
	// Learner settings
	Learner LearnerConfig `yaml:"learner"`

	// Loess smoothing settings for continuous attributes
	Loess LoessConfig `yaml:"loess"`

	// Model storage settings
	Storage StorageConfig `yaml:"storage"`
}

// LearnerConfig contains classifier-construction parameters.
type LearnerConfig struct {
	// Prior estimation strategy: relative or laplace
	Prior string `yaml:"prior"`

	// Conditional row estimation strategy: relative, laplace or m-estimate
	Conditional string `yaml:"conditional"`

	// M is the m-estimate smoothing parameter
	M float64 `yaml:"m"`

	// NormalizePredictions is recorded with trained models; predicted
	// distributions are always returned normalized
	NormalizePredictions bool `yaml:"normalize_predictions"`

	// AdjustThreshold calibrates the binary decision threshold on the
	// training data
	AdjustThreshold bool `yaml:"adjust_threshold"`
}

// LoessConfig contains the local-smoothing parameters for continuous
// attributes.
type LoessConfig struct {
	WindowProportion float64 `yaml:"window_proportion"`
	Points           int     `yaml:"points"`
}

// StorageConfig contains model storage settings.
type StorageConfig struct {
	// Backend selects where models live: file or redis
	Backend string `yaml:"backend"`

	// File backend
	ModelPath string `yaml:"model_path"`

	// Redis backend
	RedisURL    string `yaml:"redis_url"`
	KeyPrefix   string `yaml:"key_prefix"`
	DatabaseNum int    `yaml:"database_num"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Learner: LearnerConfig{
			Prior:                "relative",
			Conditional:          "relative",
			M:                    2.0,
			NormalizePredictions: true,
			AdjustThreshold:      false,
		},
		Loess: LoessConfig{
			WindowProportion: 0.5,
			Points:           50,
		},
		Storage: StorageConfig{
			Backend:   "file",
			ModelPath: "bayesmine-model.json",
			RedisURL:  "redis://localhost:6379",
			KeyPrefix: "bayesmine",
		},
	}
}

// LoadConfig loads configuration from a YAML file. An empty path yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes the configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Learner.Prior {
	case "relative", "laplace":
	default:
		return fmt.Errorf("invalid prior strategy %q (expected relative or laplace)", c.Learner.Prior)
	}
	switch c.Learner.Conditional {
	case "relative", "laplace", "m-estimate":
	default:
		return fmt.Errorf("invalid conditional strategy %q (expected relative, laplace or m-estimate)", c.Learner.Conditional)
	}
	if c.Learner.Conditional == "m-estimate" && c.Learner.M <= 0 {
		return fmt.Errorf("m-estimate needs m > 0, got %g", c.Learner.M)
	}
	if c.Loess.WindowProportion < 0 {
		return fmt.Errorf("loess window proportion must not be negative, got %g", c.Loess.WindowProportion)
	}
	if c.Loess.Points < 0 {
		return fmt.Errorf("loess points must not be negative, got %d", c.Loess.Points)
	}
	switch c.Storage.Backend {
	case "file", "redis":
	default:
		return fmt.Errorf("invalid storage backend %q (expected file or redis)", c.Storage.Backend)
	}
	return nil
}
