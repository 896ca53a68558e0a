package bayes

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/bayesmine/classifier/pkg/dataset"
	"github.com/bayesmine/classifier/pkg/estimate"
	"github.com/bayesmine/classifier/pkg/stats"
)

func mixedTable() *dataset.Table {
	a := dataset.NewDiscrete("a", "0", "1")
	x := dataset.NewContinuous("x")
	class := dataset.NewDiscrete("c", "0", "1")
	table := dataset.NewTable(dataset.NewDomain([]*dataset.Attribute{a, x}, class))

	rows := []struct {
		a    int
		x    float64
		c    int
		reps int
	}{
		{0, 0.1, 0, 2},
		{0, 0.3, 0, 1},
		{1, 0.8, 1, 2},
		{1, 0.9, 1, 1},
	}
	for _, r := range rows {
		for i := 0; i < r.reps; i++ {
			e := dataset.NewExample(table.Domain)
			e.Values[0] = dataset.Discrete(r.a)
			e.Values[1] = dataset.Continuous(r.x)
			e.SetClass(dataset.Discrete(r.c))
			table.Examples = append(table.Examples, e)
		}
	}
	return table
}

func TestSaveLoadModelRoundTrip(t *testing.T) {
	table := mixedTable()
	classifier, err := NewLearner().Learn(table, 0)
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := classifier.SaveModel(path); err != nil {
		t.Fatalf("SaveModel failed: %v", err)
	}
	restored, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel failed: %v", err)
	}

	if restored.Threshold() != classifier.Threshold() {
		t.Errorf("threshold = %v, expected %v", restored.Threshold(), classifier.Threshold())
	}
	resnap, err := restored.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot of restored classifier failed: %v", err)
	}
	if resnap.Examples != 6 {
		t.Errorf("restored example count = %d, expected 6", resnap.Examples)
	}

	queries := []struct {
		a dataset.Value
		x dataset.Value
	}{
		{dataset.Discrete(0), dataset.Continuous(0.2)},
		{dataset.Discrete(1), dataset.Continuous(0.85)},
		{dataset.Missing(), dataset.Continuous(0.5)},
		{dataset.Discrete(1), dataset.Missing()},
	}
	for _, q := range queries {
		orig, err := classifier.ClassDistribution(exampleWith(table.Domain, q.a, q.x))
		if err != nil {
			t.Fatalf("original ClassDistribution failed: %v", err)
		}
		// The restored classifier has its own domain instance; bind the
		// query to it so conversion goes through the name-matching path.
		got, err := restored.ClassDistribution(exampleWith(table.Domain, q.a, q.x))
		if err != nil {
			t.Fatalf("restored ClassDistribution failed: %v", err)
		}
		for i := range orig.Values {
			if math.Abs(orig.P(i)-got.P(i)) > 1e-12 {
				t.Errorf("query %v/%v: P(%d) = %v, expected %v", q.a, q.x, i, got.P(i), orig.P(i))
			}
		}
	}
}

func TestSnapshotEvidenceKinds(t *testing.T) {
	table := mixedTable()
	classifier, err := NewLearner().Learn(table, 0)
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}
	snap, err := classifier.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.Evidence) != 2 {
		t.Fatalf("evidence entries = %d, expected 2", len(snap.Evidence))
	}
	if snap.Evidence[0].Kind != "contingency" {
		t.Errorf("discrete evidence kind = %q, expected contingency", snap.Evidence[0].Kind)
	}
	if snap.Evidence[1].Kind != "loess" {
		t.Errorf("continuous evidence kind = %q, expected loess", snap.Evidence[1].Kind)
	}
	if len(snap.Prior) != 2 {
		t.Errorf("prior length = %d, expected 2", len(snap.Prior))
	}
	if snap.Examples != 6 {
		t.Errorf("examples = %d, expected the training size 6", snap.Examples)
	}
}

type opaqueEstimator struct{}

func (opaqueEstimator) ContingencyTable() *stats.Contingency { return nil }
func (opaqueEstimator) ClassDistribution(dataset.Value) (*stats.Distribution, bool) {
	return nil, false
}
func (opaqueEstimator) Probability(_, _ dataset.Value) float64 { return 0 }

func TestSnapshotRejectsOpaqueEstimator(t *testing.T) {
	domain := dataset.NewDomain(
		[]*dataset.Attribute{dataset.NewContinuous("x")},
		dataset.NewDiscrete("c", "0", "1"),
	)
	prior := stats.NewDistributionFrom([]float64{1, 1})
	classifier := NewClassifier(domain, prior, nil, []Evidence{{Estimator: opaqueEstimator{}}}, true, 0.5)
	if _, err := classifier.Snapshot(); err == nil {
		t.Error("expected an error for an estimator without a serial form")
	}
}

func TestRestoreRejectsMalformedSnapshots(t *testing.T) {
	good := Snapshot{
		Domain: SnapshotDomain{
			Attributes: []SnapshotAttribute{{Name: "a", Type: "discrete", Values: []string{"0"}}},
			Class:      SnapshotAttribute{Name: "c", Type: "discrete", Values: []string{"0", "1"}},
		},
		Evidence: []SnapshotEvidence{{Kind: "contingency", Rows: [][]float64{{1, 0}}}},
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"unknown evidence kind", func(s *Snapshot) { s.Evidence[0].Kind = "gaussian" }},
		{"unknown attribute type", func(s *Snapshot) { s.Domain.Class.Type = "ordinal" }},
		{"evidence count mismatch", func(s *Snapshot) { s.Evidence = nil }},
	}
	for _, tc := range tests {
		snap := good
		snap.Evidence = append([]SnapshotEvidence(nil), good.Evidence...)
		tc.mutate(&snap)
		if _, err := Restore(&snap); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}

	if _, err := Restore(&good); err != nil {
		t.Errorf("valid snapshot rejected: %v", err)
	}

	// Restoring a loess estimator keeps it queryable.
	snap := good
	snap.Domain.Attributes = []SnapshotAttribute{{Name: "x", Type: "continuous"}}
	snap.Evidence = []SnapshotEvidence{{Kind: "loess", Points: []estimate.LoessPoint{{X: 0, Probs: []float64{0.5, 0.5}}}}}
	c, err := Restore(&snap)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if c.evidence[0].Estimator == nil {
		t.Error("loess evidence must restore as a live estimator")
	}
}
