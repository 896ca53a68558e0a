package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain marks structural domain problems: a class-less domain, a
	// non-discrete class where a discrete one is required, and the like.
	ErrDomain = errors.New("domain")

	// ErrConversion marks a failed re-expression of an example against an
	// incompatible domain.
	ErrConversion = errors.New("conversion")
)

// AttrType declares how an attribute's values are represented.
type AttrType int

const (
	AttrDiscrete AttrType = iota
	AttrContinuous
)

// Attribute describes a single column of a dataset: its name, its type and,
// for discrete attributes, the ordered list of legal value names.
type Attribute struct {
	Name   string
	Type   AttrType
	Values []string
}

// NewDiscrete creates a discrete attribute with the given value names.
func NewDiscrete(name string, values ...string) *Attribute {
	return &Attribute{Name: name, Type: AttrDiscrete, Values: values}
}

// NewContinuous creates a continuous attribute.
func NewContinuous(name string) *Attribute {
	return &Attribute{Name: name, Type: AttrContinuous}
}

// NumValues returns the number of legal values of a discrete attribute.
func (a *Attribute) NumValues() int {
	return len(a.Values)
}

// ValueIndex looks up the index of a discrete value name.
func (a *Attribute) ValueIndex(name string) (int, bool) {
	for i, v := range a.Values {
		if v == name {
			return i, true
		}
	}
	return 0, false
}

// AddValue registers a discrete value name, returning its index. Known names
// keep their existing index.
func (a *Attribute) AddValue(name string) int {
	if i, ok := a.ValueIndex(name); ok {
		return i
	}
	a.Values = append(a.Values, name)
	return len(a.Values) - 1
}

// ValueName renders a value of this attribute for display.
func (a *Attribute) ValueName(v Value) string {
	if v.Kind == KindDiscrete && v.Index >= 0 && v.Index < len(a.Values) {
		return a.Values[v.Index]
	}
	return v.String()
}

// Domain is the schema of a dataset: ordered non-class attributes plus an
// optional distinguished class attribute.
type Domain struct {
	Attributes []*Attribute
	Class      *Attribute
}

// NewDomain creates a domain over the given attributes and class.
func NewDomain(attributes []*Attribute, class *Attribute) *Domain {
	return &Domain{Attributes: attributes, Class: class}
}

// Index returns the position of the named non-class attribute.
func (d *Domain) Index(name string) (int, bool) {
	for i, a := range d.Attributes {
		if a.Name == name {
			return i, true
		}
	}
	return 0, false
}

// HasDiscreteClass reports whether the domain declares a discrete class.
func (d *Domain) HasDiscreteClass() bool {
	return d.Class != nil && d.Class.Type == AttrDiscrete
}

// Convert re-expresses an example against this domain, reordering attributes
// and re-mapping discrete value names. Examples already bound to this domain
// are returned unchanged.
func (d *Domain) Convert(e *Example) (*Example, error) {
	if e.Domain == d {
		return e, nil
	}
	out := NewExample(d)
	for i, attr := range d.Attributes {
		si, ok := e.Domain.Index(attr.Name)
		if !ok {
			return nil, fmt.Errorf("%w: attribute %q not present in source domain", ErrConversion, attr.Name)
		}
		src := e.Domain.Attributes[si]
		if src.Type != attr.Type {
			return nil, fmt.Errorf("%w: attribute %q has mismatched type", ErrConversion, attr.Name)
		}
		v, err := convertValue(e.Values[si], src, attr)
		if err != nil {
			return nil, err
		}
		out.Values[i] = v
	}
	if d.Class != nil && e.Domain.Class != nil && e.Domain.Class.Name == d.Class.Name {
		v, err := convertValue(e.Class, e.Domain.Class, d.Class)
		if err != nil {
			return nil, err
		}
		out.Class = v
	}
	out.weights = e.copyWeights()
	return out, nil
}

func convertValue(v Value, from, to *Attribute) (Value, error) {
	if v.IsMissing() || from == to {
		return v, nil
	}
	if to.Type == AttrContinuous {
		return v, nil
	}
	if v.Index < 0 || v.Index >= len(from.Values) {
		return Value{}, fmt.Errorf("%w: value index %d out of range for %q", ErrConversion, v.Index, from.Name)
	}
	idx, ok := to.ValueIndex(from.Values[v.Index])
	if !ok {
		return Value{}, fmt.Errorf("%w: value %q unknown to attribute %q", ErrConversion, from.Values[v.Index], to.Name)
	}
	return Discrete(idx), nil
}
