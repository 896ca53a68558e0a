package bayes

import (
	"fmt"

	"github.com/bayesmine/classifier/pkg/dataset"
	"github.com/bayesmine/classifier/pkg/estimate"
	"github.com/bayesmine/classifier/pkg/stats"
)

// Learner builds Bayesian classifiers. The three constructor slots are
// independently swappable strategies; nil slots fall back to relative
// frequency for the prior, by-rows for discrete conditional attributes and
// loess for continuous ones.
type Learner struct {
	PriorConstructor       estimate.Constructor
	ConditionalConstructor estimate.ConditionalConstructor
	ContinuousConstructor  estimate.ConditionalConstructor

	// NormalizePredictions is recorded with the trained model. Inference
	// renormalizes after every attribute to keep the numerics bounded, so
	// predicted distributions come out normalized either way.
	NormalizePredictions bool

	// AdjustThreshold calibrates the binary decision threshold on the
	// training data after learning.
	AdjustThreshold bool

	// Warnings collects the non-fatal findings of the last Learn call.
	Warnings []string
}

// NewLearner returns a learner with default strategies and normalized
// predictions.
func NewLearner() *Learner {
	return &Learner{NormalizePredictions: true}
}

func (l *Learner) warn(format string, args ...any) {
	l.Warnings = append(l.Warnings, fmt.Sprintf(format, args...))
}

// Learn builds a classifier over the table using the given weight channel.
// The domain must declare a discrete class attribute.
func (l *Learner) Learn(data *dataset.Table, weightChannel int) (*Classifier, error) {
	l.Warnings = nil

	if data.Domain.Class == nil {
		return nil, fmt.Errorf("%w: class-less domain", dataset.ErrDomain)
	}
	if data.Domain.Class.Type != dataset.AttrDiscrete {
		return nil, fmt.Errorf("%w: discrete class attribute expected", dataset.ErrDomain)
	}

	priorConst := l.PriorConstructor
	if priorConst == nil {
		priorConst = estimate.RelativeFrequency{}
	}
	condConst := l.ConditionalConstructor
	if condConst == nil {
		condConst = estimate.ByRows{RowEstimator: priorConst}
	}
	contConst := l.ContinuousConstructor
	if contConst == nil {
		contConst = estimate.Loess{}
	}

	stat, err := stats.NewDomainContingency(data, weightChannel)
	if err != nil {
		return nil, err
	}

	priorEstimator, err := priorConst.Estimator(stat.Classes, nil, data, weightChannel)
	if err != nil {
		return nil, err
	}
	prior := priorEstimator.Distribution()
	if prior != nil {
		// The materialized form is cheaper to query; drop the live estimator.
		priorEstimator = nil
	}

	evidence := make([]Evidence, 0, len(stat.Contingencies))
	haveEvidence := false
	for i, cont := range stat.Contingencies {
		constructor := condConst
		if cont.Attr.Type == dataset.AttrContinuous {
			constructor = contConst
		}
		est, err := constructor.ConditionalEstimator(cont, stat.Classes, data, weightChannel, i)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", cont.Attr.Name, err)
		}
		if table := est.ContingencyTable(); table != nil {
			evidence = append(evidence, Evidence{Contingency: table})
		} else {
			evidence = append(evidence, Evidence{Estimator: est})
		}
		haveEvidence = true
	}
	if !haveEvidence {
		l.warn("no conditional evidence or no attributes; the classifier will use apriori probabilities")
	}

	classifier := NewClassifier(data.Domain, prior, priorEstimator, evidence, l.NormalizePredictions, 0.5)
	classifier.examples = data.Len()

	if l.AdjustThreshold {
		if data.Domain.Class.NumValues() != 2 {
			l.warn("threshold can only be optimized for binary classes")
		} else {
			threshold, _, err := OptimalThreshold(classifier, data, weightChannel)
			if err != nil {
				return nil, err
			}
			classifier.threshold = threshold
		}
	}
	return classifier, nil
}
