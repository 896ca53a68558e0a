// Package estimate turns raw counts into probability functions. Each
// constructor is a swappable strategy: it consumes frequencies or a
// contingency table and yields either a materialized, directly queryable
// distribution or a live estimator consulted per query.
package estimate

import (
	"errors"

	"github.com/bayesmine/classifier/pkg/dataset"
	"github.com/bayesmine/classifier/pkg/stats"
)

// ErrConfiguration marks a constructor invoked without a required
// collaborator (frequencies, contingency, a-priori distribution).
var ErrConfiguration = errors.New("estimator configuration")

// Estimator yields unconditional class probabilities. Materialized
// estimators expose their distribution for O(1) lookup; Distribution
// returns nil for live estimators.
type Estimator interface {
	Distribution() *stats.Distribution
	Probability(class dataset.Value) float64
}

// ConditionalEstimator yields class probabilities conditioned on an
// attribute value. ContingencyTable returns nil when the estimator cannot
// be materialized as a finite table; ClassDistribution reports whether a
// full conditional distribution is available for the queried value.
type ConditionalEstimator interface {
	ContingencyTable() *stats.Contingency
	ClassDistribution(v dataset.Value) (*stats.Distribution, bool)
	Probability(class, v dataset.Value) float64
}

// Constructor builds an unconditional estimator from raw class frequencies.
type Constructor interface {
	Estimator(frequencies, apriori *stats.Distribution, data *dataset.Table, weightChannel int) (Estimator, error)
}

// ConditionalConstructor builds a conditional estimator from an attribute's
// contingency against the class.
type ConditionalConstructor interface {
	ConditionalEstimator(cont *stats.Contingency, classes *stats.Distribution, data *dataset.Table, weightChannel, attrIndex int) (ConditionalEstimator, error)
}

// TableEstimator is a materialized estimator backed by a probability
// distribution.
type TableEstimator struct {
	dist *stats.Distribution
}

// NewTableEstimator wraps a probability distribution as an estimator.
func NewTableEstimator(dist *stats.Distribution) *TableEstimator {
	return &TableEstimator{dist: dist}
}

func (t *TableEstimator) Distribution() *stats.Distribution {
	return t.dist
}

func (t *TableEstimator) Probability(class dataset.Value) float64 {
	if class.Kind != dataset.KindDiscrete {
		return 0
	}
	return t.dist.P(class.Index)
}

// TableConditional is a materialized conditional estimator backed by a
// contingency of conditional probabilities.
type TableConditional struct {
	cont *stats.Contingency
}

// NewTableConditional wraps a contingency of conditional probabilities.
func NewTableConditional(cont *stats.Contingency) *TableConditional {
	return &TableConditional{cont: cont}
}

func (t *TableConditional) ContingencyTable() *stats.Contingency {
	return t.cont
}

func (t *TableConditional) ClassDistribution(v dataset.Value) (*stats.Distribution, bool) {
	return t.cont.P(v), true
}

func (t *TableConditional) Probability(class, v dataset.Value) float64 {
	if class.Kind != dataset.KindDiscrete {
		return 0
	}
	return t.cont.P(v).P(class.Index)
}
