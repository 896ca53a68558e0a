package stats

import (
	"fmt"
	"sort"

	"github.com/bayesmine/classifier/pkg/dataset"
)

// Contingency maps one attribute's values to class distributions. Discrete
// attributes use a dense row per value; continuous attributes keep a sorted
// sequence of observed positions.
type Contingency struct {
	Attr  *dataset.Attribute
	Class *dataset.Attribute

	rows  []*Distribution
	keys  []float64
	dists []*Distribution
}

// NewContingency creates an empty contingency for the attribute against the
// class.
func NewContingency(attr, class *dataset.Attribute) *Contingency {
	c := &Contingency{Attr: attr, Class: class}
	if attr.Type == dataset.AttrDiscrete {
		c.rows = make([]*Distribution, attr.NumValues())
		for i := range c.rows {
			c.rows[i] = NewDistribution(class.NumValues())
		}
	}
	return c
}

// NewContingencyFromRows creates a discrete contingency whose rows are taken
// from the given distributions, one per attribute value.
func NewContingencyFromRows(attr, class *dataset.Attribute, rows []*Distribution) (*Contingency, error) {
	if attr.Type != dataset.AttrDiscrete {
		return nil, fmt.Errorf("rows require a discrete attribute, got %q", attr.Name)
	}
	if len(rows) != attr.NumValues() {
		return nil, fmt.Errorf("attribute %q has %d values, got %d rows", attr.Name, attr.NumValues(), len(rows))
	}
	return &Contingency{Attr: attr, Class: class, rows: rows}, nil
}

// Add accumulates weight w for the (attribute value, class value) pair.
// Pairs with either value missing are skipped.
func (c *Contingency) Add(attrVal, classVal dataset.Value, w float64) {
	if attrVal.IsMissing() || classVal.IsMissing() {
		return
	}
	if c.Attr.Type == dataset.AttrDiscrete {
		if attrVal.Index < 0 || attrVal.Index >= len(c.rows) {
			return
		}
		c.rows[attrVal.Index].Add(classVal.Index, w)
		return
	}
	i := sort.SearchFloat64s(c.keys, attrVal.Num)
	if i < len(c.keys) && c.keys[i] == attrVal.Num {
		c.dists[i].Add(classVal.Index, w)
		return
	}
	d := NewDistribution(c.Class.NumValues())
	d.Add(classVal.Index, w)
	c.keys = append(c.keys, 0)
	copy(c.keys[i+1:], c.keys[i:])
	c.keys[i] = attrVal.Num
	c.dists = append(c.dists, nil)
	copy(c.dists[i+1:], c.dists[i:])
	c.dists[i] = d
}

// P returns the conditional class distribution at the given attribute value
// as a fresh probability vector. Unseen evidence answers uniformly.
func (c *Contingency) P(v dataset.Value) *Distribution {
	row := c.row(v)
	if row == nil || row.Abs == 0 {
		n := c.Class.NumValues()
		uniform := NewDistribution(n)
		for i := 0; i < n; i++ {
			uniform.Add(i, 1/float64(n))
		}
		return uniform
	}
	p := row.Clone()
	p.Normalize()
	return p
}

func (c *Contingency) row(v dataset.Value) *Distribution {
	if v.IsMissing() {
		return nil
	}
	if c.Attr.Type == dataset.AttrDiscrete {
		if v.Index < 0 || v.Index >= len(c.rows) {
			return nil
		}
		return c.rows[v.Index]
	}
	if len(c.keys) == 0 {
		return nil
	}
	// Nearest observed position; the loess estimator handles the smooth case.
	i := sort.SearchFloat64s(c.keys, v.Num)
	if i == len(c.keys) {
		return c.dists[i-1]
	}
	if i > 0 && v.Num-c.keys[i-1] < c.keys[i]-v.Num {
		i--
	}
	return c.dists[i]
}

// Rows exposes the per-value class distributions of a discrete contingency.
func (c *Contingency) Rows() []*Distribution {
	return c.rows
}

// Keys exposes the sorted observed positions of a continuous contingency.
func (c *Contingency) Keys() []float64 {
	return c.keys
}

// KeyDistributions exposes the class distributions parallel to Keys.
func (c *Contingency) KeyDistributions() []*Distribution {
	return c.dists
}

// DomainContingency is the full per-dataset statistic: the overall class
// distribution plus one contingency per non-class attribute, in domain
// order. Built in a single weighted pass; immutable afterward.
type DomainContingency struct {
	Domain        *dataset.Domain
	Classes       *Distribution
	Contingencies []*Contingency
}

// NewDomainContingency accumulates contingencies over the table using the
// given weight channel. An example contributes to every tally for which both
// the attribute and the class value are known.
func NewDomainContingency(t *dataset.Table, weightChannel int) (*DomainContingency, error) {
	if t.Domain.Class == nil {
		return nil, fmt.Errorf("%w: class-less domain", dataset.ErrDomain)
	}
	if t.Domain.Class.Type != dataset.AttrDiscrete {
		return nil, fmt.Errorf("%w: discrete class attribute expected", dataset.ErrDomain)
	}

	dc := &DomainContingency{
		Domain:        t.Domain,
		Classes:       NewDistribution(t.Domain.Class.NumValues()),
		Contingencies: make([]*Contingency, len(t.Domain.Attributes)),
	}
	for i, attr := range t.Domain.Attributes {
		dc.Contingencies[i] = NewContingency(attr, t.Domain.Class)
	}

	for _, e := range t.Examples {
		if e.Class.IsMissing() {
			continue
		}
		w := e.Weight(weightChannel)
		dc.Classes.Add(e.Class.Index, w)
		for i := range dc.Contingencies {
			dc.Contingencies[i].Add(e.Values[i], e.Class, w)
		}
	}
	return dc, nil
}
