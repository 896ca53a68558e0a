package dataset

import (
	"fmt"
	"sync/atomic"
)

// Table is an in-memory labeled dataset: a domain plus its examples.
type Table struct {
	Domain   *Domain
	Examples []*Example
}

// NewTable creates an empty table over the given domain.
func NewTable(d *Domain) *Table {
	return &Table{Domain: d}
}

// Append adds an example, converting it when it is bound to another domain.
func (t *Table) Append(e *Example) error {
	conv, err := t.Domain.Convert(e)
	if err != nil {
		return fmt.Errorf("cannot append example: %w", err)
	}
	t.Examples = append(t.Examples, conv)
	return nil
}

// Len returns the number of examples.
func (t *Table) Len() int {
	return len(t.Examples)
}

var weightChannelCounter int64

// NextWeightChannel allocates a fresh weight-channel identifier. Channel 0
// stays reserved for the implicit uniform weight.
func NextWeightChannel() int {
	return int(atomic.AddInt64(&weightChannelCounter, 1))
}
