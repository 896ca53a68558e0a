package estimate

import (
	"errors"
	"math"
	"testing"

	"github.com/bayesmine/classifier/pkg/dataset"
	"github.com/bayesmine/classifier/pkg/stats"
)

func continuousContingency(points map[float64]int) *stats.Contingency {
	attr := dataset.NewContinuous("x")
	class := dataset.NewDiscrete("c", "0", "1")
	cont := stats.NewContingency(attr, class)
	for x, c := range points {
		cont.Add(dataset.Continuous(x), dataset.Discrete(c), 1)
	}
	return cont
}

func TestLoessSeparatesClasses(t *testing.T) {
	cont := continuousContingency(map[float64]int{
		0.0: 0, 0.1: 0, 0.2: 0,
		0.8: 1, 0.9: 1, 1.0: 1,
	})
	est, err := Loess{WindowProportion: 0.2, Points: 21}.ConditionalEstimator(cont, nil, nil, 0, 0)
	if err != nil {
		t.Fatalf("ConditionalEstimator failed: %v", err)
	}
	if est.ContingencyTable() != nil {
		t.Fatal("loess must stay a live estimator")
	}

	low, ok := est.ClassDistribution(dataset.Continuous(0.05))
	if !ok {
		t.Fatal("loess should hand out distributions")
	}
	high, _ := est.ClassDistribution(dataset.Continuous(0.95))
	if low.P(0) <= 0.5 {
		t.Errorf("P(c=0|x=0.05) = %v, expected > 0.5", low.P(0))
	}
	if high.P(1) <= 0.5 {
		t.Errorf("P(c=1|x=0.95) = %v, expected > 0.5", high.P(1))
	}

	sum := low.P(0) + low.P(1)
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("conditional probabilities sum to %v", sum)
	}
}

func TestLoessClampsOutsideRange(t *testing.T) {
	cont := continuousContingency(map[float64]int{0.0: 0, 1.0: 1})
	est, err := Loess{}.ConditionalEstimator(cont, nil, nil, 0, 0)
	if err != nil {
		t.Fatalf("ConditionalEstimator failed: %v", err)
	}
	inside, _ := est.ClassDistribution(dataset.Continuous(0.0))
	outside, _ := est.ClassDistribution(dataset.Continuous(-100.0))
	for i := range inside.Values {
		if inside.Values[i] != outside.Values[i] {
			t.Errorf("query outside the range must clamp to the boundary fit: %v vs %v", inside.Values, outside.Values)
		}
	}
}

func TestLoessSingleObservedValue(t *testing.T) {
	cont := continuousContingency(map[float64]int{2.5: 1})
	est, err := Loess{}.ConditionalEstimator(cont, nil, nil, 0, 0)
	if err != nil {
		t.Fatalf("ConditionalEstimator failed: %v", err)
	}
	d, ok := est.ClassDistribution(dataset.Continuous(7.0))
	if !ok {
		t.Fatal("expected a distribution")
	}
	if d.P(1) != 1.0 {
		t.Errorf("P(c=1) = %v, expected 1.0 from the single fitted point", d.P(1))
	}
}

func TestLoessNoEvidenceFallsBackToClasses(t *testing.T) {
	attr := dataset.NewContinuous("x")
	class := dataset.NewDiscrete("c", "0", "1")
	cont := stats.NewContingency(attr, class)

	classes := stats.NewDistributionFrom([]float64{3, 1})
	est, err := Loess{}.ConditionalEstimator(cont, classes, nil, 0, 0)
	if err != nil {
		t.Fatalf("ConditionalEstimator failed: %v", err)
	}
	d, ok := est.ClassDistribution(dataset.Continuous(0.5))
	if !ok {
		t.Fatal("fallback estimator should still answer")
	}
	if d.P(0) != 0.75 {
		t.Errorf("fallback P(0) = %v, expected the class distribution 0.75", d.P(0))
	}
}

func TestLoessConfiguration(t *testing.T) {
	if _, err := (Loess{}).ConditionalEstimator(nil, nil, nil, 0, 0); !errors.Is(err, ErrConfiguration) {
		t.Errorf("error without contingency = %v, expected ErrConfiguration", err)
	}
	cont := stats.NewContingency(dataset.NewDiscrete("a", "0"), dataset.NewDiscrete("c", "0"))
	if _, err := (Loess{}).ConditionalEstimator(cont, nil, nil, 0, 0); !errors.Is(err, ErrConfiguration) {
		t.Errorf("error for discrete attribute = %v, expected ErrConfiguration", err)
	}
}
