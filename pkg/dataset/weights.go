package dataset

import "fmt"

// CostWeights derives a new weight channel where each example's weight on
// the base channel is multiplied by its class's cost multiplier. Multipliers
// missing from classWeights default to 1.0. With equalize set, every class's
// multiplier is additionally scaled by N/(k·countᵢ) so that all classes end
// up carrying equal total weight; a class with zero observed weight keeps
// multiplier 1.0 rather than dividing by zero.
//
// Returns 0 (the uniform channel) when there is nothing to reweight.
func CostWeights(t *Table, weightChannel int, classWeights []float64, equalize bool) (int, error) {
	if !t.Domain.HasDiscreteClass() {
		return 0, fmt.Errorf("%w: class-less domain or non-discrete class", ErrDomain)
	}
	nclasses := t.Domain.Class.NumValues()
	if (!equalize && len(classWeights) == 0) || nclasses == 0 {
		return 0, nil
	}

	weights := append([]float64(nil), classWeights...)
	for len(weights) < nclasses {
		weights = append(weights, 1.0)
	}
	weights = weights[:nclasses]

	if equalize {
		counts := make([]float64, nclasses)
		total := 0.0
		for _, e := range t.Examples {
			if e.Class.IsMissing() {
				continue
			}
			w := e.Weight(weightChannel)
			counts[e.Class.Index] += w
			total += w
		}
		for i := range weights {
			if counts[i] > 0 {
				weights[i] *= total / float64(nclasses) / counts[i]
			} else {
				weights[i] = 1.0
			}
		}
	}

	channel := NextWeightChannel()
	for _, e := range t.Examples {
		w := e.Weight(weightChannel)
		if !e.Class.IsMissing() {
			w *= weights[e.Class.Index]
		}
		e.SetWeight(channel, w)
	}
	return channel, nil
}

// EqualizeClassWeights derives a new weight channel giving every class the
// same total weight.
func EqualizeClassWeights(t *Table, weightChannel int) (int, error) {
	return CostWeights(t, weightChannel, nil, true)
}
