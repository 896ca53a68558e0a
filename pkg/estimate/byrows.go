package estimate

import (
	"fmt"

	"github.com/bayesmine/classifier/pkg/dataset"
	"github.com/bayesmine/classifier/pkg/stats"
)

// ByRows derives the conditional class distribution of every attribute
// value directly from its contingency row, applying a row estimator
// (relative frequency unless configured otherwise) to each row. The result
// is always a materialized contingency; the default for discrete
// conditional attributes.
type ByRows struct {
	RowEstimator Constructor
}

func (b ByRows) ConditionalEstimator(cont *stats.Contingency, classes *stats.Distribution, data *dataset.Table, weightChannel, _ int) (ConditionalEstimator, error) {
	if cont == nil {
		return nil, fmt.Errorf("%w: contingency not given", ErrConfiguration)
	}
	if cont.Attr.Type != dataset.AttrDiscrete {
		return nil, fmt.Errorf("%w: by-rows estimation needs a discrete attribute, got %q", ErrConfiguration, cont.Attr.Name)
	}

	rowEst := b.RowEstimator
	if rowEst == nil {
		rowEst = RelativeFrequency{}
	}

	rows := make([]*stats.Distribution, len(cont.Rows()))
	for i, row := range cont.Rows() {
		est, err := rowEst.Estimator(row, classes, data, weightChannel)
		if err != nil {
			return nil, fmt.Errorf("row %d of attribute %q: %w", i, cont.Attr.Name, err)
		}
		d := est.Distribution()
		if d == nil {
			return nil, fmt.Errorf("%w: row estimator for attribute %q did not materialize", ErrConfiguration, cont.Attr.Name)
		}
		rows[i] = d
	}

	out, err := stats.NewContingencyFromRows(cont.Attr, cont.Class, rows)
	if err != nil {
		return nil, err
	}
	return NewTableConditional(out), nil
}
