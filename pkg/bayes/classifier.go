// Package bayes builds and applies Bayesian classifiers: a learner that
// assembles per-attribute conditional evidence over a labeled dataset, and
// an immutable classifier that combines that evidence with the class prior
// into a posterior distribution for new examples.
package bayes

import (
	"errors"
	"fmt"
	"math"

	"github.com/bayesmine/classifier/pkg/dataset"
	"github.com/bayesmine/classifier/pkg/estimate"
	"github.com/bayesmine/classifier/pkg/stats"
)

// ErrEstimation marks inference attempted with no usable evidence, such as
// a classifier without a materialized prior.
var ErrEstimation = errors.New("estimation")

// Evidence is one attribute's contribution to the posterior: either a
// materialized contingency of conditional probabilities or a live
// conditional estimator. Both nil means the attribute carries no evidence.
type Evidence struct {
	Contingency *stats.Contingency
	Estimator   estimate.ConditionalEstimator
}

// Absent reports whether the attribute contributes no evidence.
func (ev Evidence) Absent() bool {
	return ev.Contingency == nil && ev.Estimator == nil
}

// Classifier predicts a class distribution for an example by multiplying
// the prior with each attribute's likelihood ratio. Immutable after
// construction and safe for concurrent readers.
type Classifier struct {
	domain         *dataset.Domain
	prior          *stats.Distribution
	priorEstimator estimate.Estimator
	evidence       []Evidence
	normalize      bool
	threshold      float64
	examples       int
}

// NewClassifier assembles a classifier from already-built evidence, one
// entry per non-class attribute in domain order.
func NewClassifier(domain *dataset.Domain, prior *stats.Distribution, priorEstimator estimate.Estimator, evidence []Evidence, normalize bool, threshold float64) *Classifier {
	return &Classifier{
		domain:         domain,
		prior:          prior,
		priorEstimator: priorEstimator,
		evidence:       evidence,
		normalize:      normalize,
		threshold:      threshold,
	}
}

// Domain returns the domain the classifier is bound to.
func (c *Classifier) Domain() *dataset.Domain {
	return c.domain
}

// Prior returns the materialized class prior, or nil when the prior
// estimator could not materialize.
func (c *Classifier) Prior() *stats.Distribution {
	return c.prior
}

// Threshold returns the binary decision threshold.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// ClassDistribution predicts the posterior class distribution for an
// example. The example is first re-expressed against the classifier's
// domain; attributes whose value is missing contribute no evidence.
func (c *Classifier) ClassDistribution(ex *dataset.Example) (*stats.Distribution, error) {
	if c.domain == nil {
		return nil, fmt.Errorf("%w: classifier is not bound to a domain", ErrEstimation)
	}
	conv, err := c.domain.Convert(ex)
	if err != nil {
		return nil, err
	}
	if c.prior == nil {
		return nil, fmt.Errorf("%w: cannot return class distribution (non-discrete class or wrong type of probability estimator)", ErrEstimation)
	}

	result := c.prior.Clone()
	result.Normalize()

	for i, ev := range c.evidence {
		if i >= len(conv.Values) {
			break
		}
		v := conv.Values[i]
		if v.IsMissing() || ev.Absent() {
			continue
		}

		var cond *stats.Distribution
		if ev.Contingency != nil {
			cond = ev.Contingency.P(v)
		} else if d, ok := ev.Estimator.ClassDistribution(v); ok {
			cond = d
		} else {
			// Estimator cannot hand out distributions; query it class by class.
			cond = stats.NewDistribution(c.domain.Class.NumValues())
			for ci := 0; ci < c.domain.Class.NumValues(); ci++ {
				cond.Add(ci, ev.Estimator.Probability(dataset.Discrete(ci), v))
			}
		}

		result.Mul(cond)
		result.Div(c.prior)
		result.Normalize()
	}

	// Overflow correction: with many strongly predictive attributes and a
	// minority class the running weights can hit +Inf. Collapse to the
	// overflowed classes instead of returning Inf or NaN; simultaneous
	// overflows split the mass evenly.
	if math.IsInf(result.Abs, 1) || math.IsNaN(result.Abs) {
		collapsed := stats.NewDistribution(result.Len())
		for i, v := range result.Values {
			if math.IsInf(v, 1) {
				collapsed.Add(i, 1)
			}
		}
		collapsed.Normalize()
		result = collapsed
	}
	return result, nil
}

// Predict returns a single class value. Binary class domains use the
// decision threshold on the positive class; everything else takes the most
// probable class. The asymmetry is deliberate: a calibrated threshold only
// makes sense for two classes.
func (c *Classifier) Predict(ex *dataset.Example) (dataset.Value, error) {
	dist, err := c.ClassDistribution(ex)
	if err != nil {
		return dataset.Missing(), err
	}
	if c.domain.Class.NumValues() == 2 {
		if dist.P(1) >= c.threshold {
			return dataset.Discrete(1), nil
		}
		return dataset.Discrete(0), nil
	}
	return dataset.Discrete(dist.Highest()), nil
}

// Probability computes P(class|example) pointwise. This path works even
// when ClassDistribution cannot, e.g. when the prior estimator did not
// materialize; an exact-zero prior probability short-circuits to 0.
func (c *Classifier) Probability(class dataset.Value, ex *dataset.Example) (float64, error) {
	if c.domain == nil {
		return 0, fmt.Errorf("%w: classifier is not bound to a domain", ErrEstimation)
	}
	conv, err := c.domain.Convert(ex)
	if err != nil {
		return 0, err
	}

	var base float64
	switch {
	case c.prior != nil:
		base = c.prior.P(class.Index)
	case c.priorEstimator != nil:
		base = c.priorEstimator.Probability(class)
	default:
		return 0, fmt.Errorf("%w: no prior evidence", ErrEstimation)
	}
	if base == 0 {
		return 0, nil
	}

	res := base
	for i, ev := range c.evidence {
		if i >= len(conv.Values) {
			break
		}
		v := conv.Values[i]
		if v.IsMissing() || ev.Absent() {
			continue
		}
		if ev.Contingency != nil {
			res *= ev.Contingency.P(v).P(class.Index) / base
		} else {
			res *= ev.Estimator.Probability(class, v) / base
		}
	}
	return res, nil
}
