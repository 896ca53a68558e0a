package bayes

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bayesmine/classifier/pkg/dataset"
	"github.com/bayesmine/classifier/pkg/estimate"
	"github.com/bayesmine/classifier/pkg/stats"
)

// Snapshot is the serializable form of a trained classifier: the domain,
// the prior, the decision threshold and the per-attribute evidence.
type Snapshot struct {
	Domain    SnapshotDomain     `json:"domain"`
	Prior     []float64          `json:"prior,omitempty"`
	Threshold float64            `json:"threshold"`
	Normalize bool               `json:"normalize"`
	Evidence  []SnapshotEvidence `json:"evidence"`
	TrainedAt time.Time          `json:"trained_at"`
	Examples  int                `json:"examples,omitempty"`
}

// SnapshotDomain captures the schema of the training data.
type SnapshotDomain struct {
	Attributes []SnapshotAttribute `json:"attributes"`
	Class      SnapshotAttribute   `json:"class"`
}

// SnapshotAttribute captures one attribute.
type SnapshotAttribute struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Values []string `json:"values,omitempty"`
}

// SnapshotEvidence captures one attribute's evidence: contingency rows for
// materialized discrete evidence, loess fit points for live continuous
// evidence.
type SnapshotEvidence struct {
	Kind     string                `json:"kind"`
	Rows     [][]float64           `json:"rows,omitempty"`
	Points   []estimate.LoessPoint `json:"points,omitempty"`
	Fallback []float64             `json:"fallback,omitempty"`
}

// Snapshot serializes the classifier. Only the built-in evidence forms are
// supported; a custom live estimator cannot be snapshotted.
func (c *Classifier) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{
		Threshold: c.threshold,
		Normalize: c.normalize,
		TrainedAt: time.Now(),
		Examples:  c.examples,
	}
	if c.prior != nil {
		snap.Prior = append([]float64(nil), c.prior.Values...)
	}
	snap.Domain.Class = snapshotAttribute(c.domain.Class)
	for _, attr := range c.domain.Attributes {
		snap.Domain.Attributes = append(snap.Domain.Attributes, snapshotAttribute(attr))
	}
	for i, ev := range c.evidence {
		switch {
		case ev.Contingency != nil:
			rows := make([][]float64, 0, len(ev.Contingency.Rows()))
			for _, row := range ev.Contingency.Rows() {
				rows = append(rows, append([]float64(nil), row.Values...))
			}
			snap.Evidence = append(snap.Evidence, SnapshotEvidence{Kind: "contingency", Rows: rows})
		case ev.Estimator != nil:
			loess, ok := ev.Estimator.(*estimate.LoessEstimator)
			if !ok {
				return nil, fmt.Errorf("attribute %q: estimator of type %T cannot be snapshotted", c.domain.Attributes[i].Name, ev.Estimator)
			}
			snap.Evidence = append(snap.Evidence, SnapshotEvidence{Kind: "loess", Points: loess.Points, Fallback: loess.Fallback})
		default:
			snap.Evidence = append(snap.Evidence, SnapshotEvidence{Kind: "none"})
		}
	}
	return snap, nil
}

// Restore rebuilds a classifier from a snapshot.
func Restore(snap *Snapshot) (*Classifier, error) {
	class, err := restoreAttribute(snap.Domain.Class)
	if err != nil {
		return nil, err
	}
	attrs := make([]*dataset.Attribute, 0, len(snap.Domain.Attributes))
	for _, sa := range snap.Domain.Attributes {
		attr, err := restoreAttribute(sa)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	domain := dataset.NewDomain(attrs, class)

	var prior *stats.Distribution
	if len(snap.Prior) > 0 {
		prior = stats.NewDistributionFrom(snap.Prior)
	}

	if len(snap.Evidence) != len(attrs) {
		return nil, fmt.Errorf("snapshot has %d evidence entries for %d attributes", len(snap.Evidence), len(attrs))
	}
	evidence := make([]Evidence, 0, len(snap.Evidence))
	for i, se := range snap.Evidence {
		switch se.Kind {
		case "contingency":
			rows := make([]*stats.Distribution, 0, len(se.Rows))
			for _, row := range se.Rows {
				rows = append(rows, stats.NewDistributionFrom(row))
			}
			cont, err := stats.NewContingencyFromRows(attrs[i], class, rows)
			if err != nil {
				return nil, err
			}
			evidence = append(evidence, Evidence{Contingency: cont})
		case "loess":
			evidence = append(evidence, Evidence{Estimator: &estimate.LoessEstimator{Points: se.Points, Fallback: se.Fallback}})
		case "none":
			evidence = append(evidence, Evidence{})
		default:
			return nil, fmt.Errorf("unknown evidence kind %q", se.Kind)
		}
	}
	c := NewClassifier(domain, prior, nil, evidence, snap.Normalize, snap.Threshold)
	c.examples = snap.Examples
	return c, nil
}

// SaveModel writes the classifier to a JSON file.
func (c *Classifier) SaveModel(path string) error {
	snap, err := c.Snapshot()
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

// LoadModel reads a classifier from a JSON file written by SaveModel.
func LoadModel(path string) (*Classifier, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer file.Close()

	var snap Snapshot
	if err := json.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	return Restore(&snap)
}

func snapshotAttribute(a *dataset.Attribute) SnapshotAttribute {
	sa := SnapshotAttribute{Name: a.Name, Values: a.Values}
	if a.Type == dataset.AttrContinuous {
		sa.Type = "continuous"
	} else {
		sa.Type = "discrete"
	}
	return sa
}

func restoreAttribute(sa SnapshotAttribute) (*dataset.Attribute, error) {
	switch sa.Type {
	case "discrete":
		return dataset.NewDiscrete(sa.Name, sa.Values...), nil
	case "continuous":
		return dataset.NewContinuous(sa.Name), nil
	default:
		return nil, fmt.Errorf("unknown attribute type %q", sa.Type)
	}
}
