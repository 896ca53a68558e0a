// Package stats holds the weighted frequency structures the Bayesian core
// accumulates over a dataset: distributions over a discrete variable and
// per-attribute contingencies against the class.
package stats

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Distribution is a weighted frequency vector over a discrete variable's
// values, with a cached total weight. It doubles as a probability vector
// once normalized.
type Distribution struct {
	Values []float64
	Abs    float64
}

// NewDistribution creates a zero distribution over n values.
func NewDistribution(n int) *Distribution {
	return &Distribution{Values: make([]float64, n)}
}

// NewDistributionFrom creates a distribution from a copy of the given
// frequencies.
func NewDistributionFrom(values []float64) *Distribution {
	d := &Distribution{Values: append([]float64(nil), values...)}
	d.Abs = floats.Sum(d.Values)
	return d
}

// Len returns the number of values.
func (d *Distribution) Len() int {
	return len(d.Values)
}

// Add accumulates weight w at the given value index.
func (d *Distribution) Add(index int, w float64) {
	if index < 0 || index >= len(d.Values) {
		return
	}
	d.Values[index] += w
	d.Abs += w
}

// P returns the probability of the value at index. An empty distribution
// answers uniformly, so querying unseen evidence never zeroes a posterior.
func (d *Distribution) P(index int) float64 {
	if index < 0 || index >= len(d.Values) {
		return 0
	}
	if d.Abs == 0 {
		return 1 / float64(len(d.Values))
	}
	return d.Values[index] / d.Abs
}

// Normalize scales the distribution so its total weight is 1. A zero or
// non-finite total makes this a no-op; the non-finite case is resolved by
// the caller's overflow correction.
func (d *Distribution) Normalize() {
	if d.Abs <= 0 || math.IsInf(d.Abs, 0) || math.IsNaN(d.Abs) {
		return
	}
	floats.Scale(1/d.Abs, d.Values)
	d.Abs = 1
}

// Mul multiplies element-wise by another distribution of matching support.
func (d *Distribution) Mul(other *Distribution) {
	n := min(len(d.Values), len(other.Values))
	for i := 0; i < n; i++ {
		d.Values[i] *= other.Values[i]
	}
	d.Abs = floats.Sum(d.Values)
}

// Div divides element-wise by another distribution of matching support.
// A zero divisor zeroes the element instead of producing NaN.
func (d *Distribution) Div(other *Distribution) {
	n := min(len(d.Values), len(other.Values))
	for i := 0; i < n; i++ {
		if other.Values[i] == 0 {
			d.Values[i] = 0
		} else {
			d.Values[i] /= other.Values[i]
		}
	}
	d.Abs = floats.Sum(d.Values)
}

// AddDist accumulates another distribution, scaled by factor.
func (d *Distribution) AddDist(other *Distribution, factor float64) {
	n := min(len(d.Values), len(other.Values))
	for i := 0; i < n; i++ {
		d.Values[i] += factor * other.Values[i]
		d.Abs += factor * other.Values[i]
	}
}

// Clone returns a deep copy.
func (d *Distribution) Clone() *Distribution {
	return &Distribution{Values: append([]float64(nil), d.Values...), Abs: d.Abs}
}

// Highest returns the index of the largest weight; ties go to the lowest
// index, which keeps predictions deterministic.
func (d *Distribution) Highest() int {
	best := 0
	for i, v := range d.Values {
		if v > d.Values[best] {
			best = i
		}
	}
	return best
}

func (d *Distribution) String() string {
	parts := make([]string, len(d.Values))
	for i, v := range d.Values {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
