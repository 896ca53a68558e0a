package estimate

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bayesmine/classifier/pkg/dataset"
	"github.com/bayesmine/classifier/pkg/stats"
)

const (
	defaultLoessWindow = 0.5
	defaultLoessPoints = 50
)

// Loess fits a kernel-weighted local estimate of the conditional class
// distribution over a continuous attribute's support. The result is never a
// finite table; it stays a live estimator queried per example value. The
// default for continuous conditional attributes.
type Loess struct {
	// WindowProportion is the kernel bandwidth as a share of the attribute's
	// observed range.
	WindowProportion float64
	// Points is the number of fit positions sampled across the range.
	Points int
}

// LoessPoint is one fitted position: the attribute value and the conditional
// class probabilities there.
type LoessPoint struct {
	X     float64   `json:"x"`
	Probs []float64 `json:"probs"`
}

// LoessEstimator answers conditional class distributions by interpolating
// between fitted points, clamped at the range ends. With no fitted points it
// falls back to a fixed distribution, which makes a no-evidence attribute a
// neutral factor during inference.
type LoessEstimator struct {
	Points   []LoessPoint
	Fallback []float64
}

func (l Loess) ConditionalEstimator(cont *stats.Contingency, classes *stats.Distribution, _ *dataset.Table, _, _ int) (ConditionalEstimator, error) {
	if cont == nil {
		return nil, fmt.Errorf("%w: contingency not given", ErrConfiguration)
	}
	if cont.Attr.Type != dataset.AttrContinuous {
		return nil, fmt.Errorf("%w: loess estimation needs a continuous attribute, got %q", ErrConfiguration, cont.Attr.Name)
	}

	nclasses := cont.Class.NumValues()
	keys := cont.Keys()
	dists := cont.KeyDistributions()

	if len(keys) == 0 {
		return &LoessEstimator{Fallback: fallbackProbs(classes, nclasses)}, nil
	}

	lo, hi := keys[0], keys[len(keys)-1]
	if lo == hi {
		d := dists[0].Clone()
		d.Normalize()
		return &LoessEstimator{Points: []LoessPoint{{X: lo, Probs: d.Values}}}, nil
	}

	window := l.WindowProportion
	if window <= 0 {
		window = defaultLoessWindow
	}
	npoints := l.Points
	if npoints <= 1 {
		npoints = defaultLoessPoints
	}

	kernel := distuv.Normal{Mu: 0, Sigma: window * (hi - lo)}
	points := make([]LoessPoint, 0, npoints)
	step := (hi - lo) / float64(npoints-1)
	for k := 0; k < npoints; k++ {
		x := lo + step*float64(k)
		acc := stats.NewDistribution(nclasses)
		for i, key := range keys {
			acc.AddDist(dists[i], kernel.Prob(key-x))
		}
		acc.Normalize()
		if acc.Abs == 0 {
			acc = stats.NewDistributionFrom(fallbackProbs(classes, nclasses))
		}
		points = append(points, LoessPoint{X: x, Probs: acc.Values})
	}
	return &LoessEstimator{Points: points}, nil
}

func fallbackProbs(classes *stats.Distribution, nclasses int) []float64 {
	if classes != nil && classes.Abs > 0 {
		d := classes.Clone()
		d.Normalize()
		return d.Values
	}
	probs := make([]float64, nclasses)
	for i := range probs {
		probs[i] = 1 / float64(nclasses)
	}
	return probs
}

func (le *LoessEstimator) ContingencyTable() *stats.Contingency {
	return nil
}

func (le *LoessEstimator) ClassDistribution(v dataset.Value) (*stats.Distribution, bool) {
	if len(le.Points) == 0 {
		return stats.NewDistributionFrom(le.Fallback), true
	}
	if v.Kind != dataset.KindContinuous {
		return nil, false
	}
	x := v.Num
	pts := le.Points
	if x <= pts[0].X {
		return stats.NewDistributionFrom(pts[0].Probs), true
	}
	if x >= pts[len(pts)-1].X {
		return stats.NewDistributionFrom(pts[len(pts)-1].Probs), true
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].X >= x })
	a, b := pts[i-1], pts[i]
	t := (x - a.X) / (b.X - a.X)
	probs := make([]float64, len(a.Probs))
	for j := range probs {
		probs[j] = a.Probs[j] + t*(b.Probs[j]-a.Probs[j])
	}
	return stats.NewDistributionFrom(probs), true
}

func (le *LoessEstimator) Probability(class, v dataset.Value) float64 {
	if class.Kind != dataset.KindDiscrete {
		return 0
	}
	d, ok := le.ClassDistribution(v)
	if !ok {
		return 0
	}
	return d.P(class.Index)
}
