package bayes

import (
	"fmt"
	"math"
	"sort"

	"github.com/bayesmine/classifier/pkg/dataset"
)

// OptimalThreshold sweeps candidate decision thresholds over the dataset
// and returns the one maximizing weighted classification accuracy, together
// with the accuracy achieved. The class must be binary. Candidates are the
// midpoints between consecutive distinct predicted positive-class
// probabilities, so the returned threshold sits away from the training
// scores themselves.
func OptimalThreshold(c *Classifier, data *dataset.Table, weightChannel int) (float64, float64, error) {
	if data.Domain.Class == nil || data.Domain.Class.NumValues() != 2 {
		return 0, 0, fmt.Errorf("%w: threshold calibration needs a binary class", dataset.ErrDomain)
	}

	type scored struct {
		p        float64
		w        float64
		positive bool
	}
	var examples []scored
	total := 0.0
	for _, e := range data.Examples {
		if e.Class.IsMissing() {
			continue
		}
		dist, err := c.ClassDistribution(e)
		if err != nil {
			return 0, 0, err
		}
		w := e.Weight(weightChannel)
		examples = append(examples, scored{p: dist.P(1), w: w, positive: e.Class.Index == 1})
		total += w
	}
	if total == 0 {
		return 0.5, 0, nil
	}

	sort.Slice(examples, func(i, j int) bool { return examples[i].p < examples[j].p })

	// Threshold at/below the lowest score predicts everything positive.
	correct := 0.0
	for _, s := range examples {
		if s.positive {
			correct += s.w
		}
	}
	bestThreshold := examples[0].p
	bestCorrect := correct

	for i := 0; i < len(examples); {
		j := i
		for j < len(examples) && examples[j].p == examples[i].p {
			// Raising the threshold past this score flips the whole group
			// to a negative prediction.
			if examples[j].positive {
				correct -= examples[j].w
			} else {
				correct += examples[j].w
			}
			j++
		}
		var candidate float64
		if j < len(examples) {
			candidate = (examples[i].p + examples[j].p) / 2
		} else {
			candidate = math.Nextafter(examples[i].p, math.Inf(1))
		}
		if correct > bestCorrect {
			bestCorrect = correct
			bestThreshold = candidate
		}
		i = j
	}
	return bestThreshold, bestCorrect / total, nil
}
