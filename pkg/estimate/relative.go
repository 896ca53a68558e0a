package estimate

import (
	"fmt"

	"github.com/bayesmine/classifier/pkg/dataset"
	"github.com/bayesmine/classifier/pkg/stats"
)

// RelativeFrequency estimates probability as weighted count over total
// weight. Always materializable; the default for the class prior.
type RelativeFrequency struct{}

func (RelativeFrequency) Estimator(frequencies, _ *stats.Distribution, _ *dataset.Table, _ int) (Estimator, error) {
	if frequencies == nil {
		return nil, fmt.Errorf("%w: frequencies not given", ErrConfiguration)
	}
	d := frequencies.Clone()
	d.Normalize()
	return NewTableEstimator(d), nil
}

// Laplace estimates probability with add-one smoothing:
// (count+1)/(total+n). Always materializable.
type Laplace struct{}

func (Laplace) Estimator(frequencies, _ *stats.Distribution, _ *dataset.Table, _ int) (Estimator, error) {
	if frequencies == nil {
		return nil, fmt.Errorf("%w: frequencies not given", ErrConfiguration)
	}
	n := frequencies.Len()
	d := stats.NewDistribution(n)
	for i, v := range frequencies.Values {
		d.Add(i, (v+1)/(frequencies.Abs+float64(n)))
	}
	return NewTableEstimator(d), nil
}

// MEstimate smooths toward an a-priori distribution:
// (count + m·p₀)/(total + m).
type MEstimate struct {
	M float64
}

func (m MEstimate) Estimator(frequencies, apriori *stats.Distribution, _ *dataset.Table, _ int) (Estimator, error) {
	if frequencies == nil {
		return nil, fmt.Errorf("%w: frequencies not given", ErrConfiguration)
	}
	if apriori == nil {
		return nil, fmt.Errorf("%w: m-estimate needs an apriori distribution", ErrConfiguration)
	}
	d := stats.NewDistribution(frequencies.Len())
	for i, v := range frequencies.Values {
		d.Add(i, (v+m.M*apriori.P(i))/(frequencies.Abs+m.M))
	}
	return NewTableEstimator(d), nil
}
