package cmd

import (
	"context"
	"fmt"

	"github.com/bayesmine/classifier/pkg/bayes"
	"github.com/bayesmine/classifier/pkg/config"
	"github.com/bayesmine/classifier/pkg/estimate"
	"github.com/bayesmine/classifier/pkg/store"
)

// learnerFromConfig maps configuration onto a learner with the configured
// estimation strategies.
func learnerFromConfig(cfg *config.Config) (*bayes.Learner, error) {
	learner := bayes.NewLearner()
	learner.NormalizePredictions = cfg.Learner.NormalizePredictions
	learner.AdjustThreshold = cfg.Learner.AdjustThreshold

	switch cfg.Learner.Prior {
	case "", "relative":
		learner.PriorConstructor = estimate.RelativeFrequency{}
	case "laplace":
		learner.PriorConstructor = estimate.Laplace{}
	default:
		return nil, fmt.Errorf("unknown prior strategy: %s", cfg.Learner.Prior)
	}

	switch cfg.Learner.Conditional {
	case "", "relative":
		learner.ConditionalConstructor = estimate.ByRows{RowEstimator: estimate.RelativeFrequency{}}
	case "laplace":
		learner.ConditionalConstructor = estimate.ByRows{RowEstimator: estimate.Laplace{}}
	case "m-estimate":
		learner.ConditionalConstructor = estimate.ByRows{RowEstimator: estimate.MEstimate{M: cfg.Learner.M}}
	default:
		return nil, fmt.Errorf("unknown conditional strategy: %s", cfg.Learner.Conditional)
	}

	learner.ContinuousConstructor = estimate.Loess{
		WindowProportion: cfg.Loess.WindowProportion,
		Points:           cfg.Loess.Points,
	}
	return learner, nil
}

// saveModel stores a trained classifier via the configured backend.
func saveModel(cfg *config.Config, name string, classifier *bayes.Classifier) error {
	if cfg.Storage.Backend == "redis" {
		snap, err := classifier.Snapshot()
		if err != nil {
			return err
		}
		ctx := context.Background()
		s, err := store.New(ctx, &store.Options{
			URL:         cfg.Storage.RedisURL,
			KeyPrefix:   cfg.Storage.KeyPrefix,
			DatabaseNum: cfg.Storage.DatabaseNum,
		})
		if err != nil {
			return err
		}
		defer s.Close()
		return s.Save(ctx, name, snap)
	}
	return classifier.SaveModel(cfg.Storage.ModelPath)
}

// loadModel retrieves a classifier via the configured backend.
func loadModel(cfg *config.Config, name string) (*bayes.Classifier, error) {
	if cfg.Storage.Backend == "redis" {
		ctx := context.Background()
		s, err := store.New(ctx, &store.Options{
			URL:         cfg.Storage.RedisURL,
			KeyPrefix:   cfg.Storage.KeyPrefix,
			DatabaseNum: cfg.Storage.DatabaseNum,
		})
		if err != nil {
			return nil, err
		}
		defer s.Close()
		snap, err := s.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		return bayes.Restore(snap)
	}
	return bayes.LoadModel(cfg.Storage.ModelPath)
}
