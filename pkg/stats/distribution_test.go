package stats

import (
	"math"
	"testing"
)

func TestDistributionAddAndNormalize(t *testing.T) {
	d := NewDistribution(3)
	d.Add(0, 3)
	d.Add(1, 1)
	d.Add(2, 0)

	if d.Abs != 4 {
		t.Errorf("Abs = %v, expected 4", d.Abs)
	}

	d.Normalize()
	sum := 0.0
	for _, v := range d.Values {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-12 {
		t.Errorf("normalized values sum to %v, expected 1", sum)
	}
	if math.Abs(d.Values[0]-0.75) > 1e-12 {
		t.Errorf("Values[0] = %v, expected 0.75", d.Values[0])
	}
}

func TestNormalizeZeroIsNoOp(t *testing.T) {
	d := NewDistribution(3)
	d.Normalize()
	for i, v := range d.Values {
		if v != 0 {
			t.Errorf("Values[%d] = %v, expected 0", i, v)
		}
	}
	if d.Abs != 0 {
		t.Errorf("Abs = %v, expected 0", d.Abs)
	}
}

func TestNormalizeInfiniteIsNoOp(t *testing.T) {
	d := NewDistributionFrom([]float64{math.Inf(1), 0.25})
	d.Normalize()
	if !math.IsInf(d.Values[0], 1) {
		t.Errorf("Values[0] = %v, expected +Inf preserved for overflow correction", d.Values[0])
	}
}

func TestUniformProbabilityOnEmpty(t *testing.T) {
	d := NewDistribution(4)
	if p := d.P(2); p != 0.25 {
		t.Errorf("P(2) on empty distribution = %v, expected 0.25", p)
	}
}

func TestMulDiv(t *testing.T) {
	d := NewDistributionFrom([]float64{0.75, 0.25})
	cond := NewDistributionFrom([]float64{1.0, 0.0})
	prior := NewDistributionFrom([]float64{0.75, 0.25})

	d.Mul(cond)
	d.Div(prior)
	d.Normalize()

	if d.Values[0] != 1.0 || d.Values[1] != 0.0 {
		t.Errorf("likelihood-ratio product = %v, expected <1, 0>", d.Values)
	}
}

func TestDivByZeroYieldsZero(t *testing.T) {
	d := NewDistributionFrom([]float64{0.5, 0.5})
	d.Div(NewDistributionFrom([]float64{0.0, 1.0}))
	if d.Values[0] != 0 {
		t.Errorf("Values[0] = %v, expected 0 when divisor is 0", d.Values[0])
	}
	if math.IsNaN(d.Abs) {
		t.Error("Abs is NaN after division by zero")
	}
}

func TestHighestDeterministicTieBreak(t *testing.T) {
	tests := []struct {
		values   []float64
		expected int
	}{
		{[]float64{0.2, 0.5, 0.3}, 1},
		{[]float64{0.4, 0.4, 0.2}, 0},
		{[]float64{0.0, 0.0, 0.0}, 0},
	}
	for _, tc := range tests {
		d := NewDistributionFrom(tc.values)
		if got := d.Highest(); got != tc.expected {
			t.Errorf("Highest(%v) = %d, expected %d", tc.values, got, tc.expected)
		}
	}
}

func TestClone(t *testing.T) {
	d := NewDistributionFrom([]float64{1, 2})
	c := d.Clone()
	c.Add(0, 5)
	if d.Values[0] != 1 {
		t.Error("Clone shares backing storage with the original")
	}
}
