package dataset

// Example is one labeled row: attribute values aligned to a domain, a
// settable class slot, and optional per-channel weights.
type Example struct {
	Domain  *Domain
	Values  []Value
	Class   Value
	weights map[int]float64
}

// NewExample creates an example bound to a domain with every value missing.
func NewExample(d *Domain) *Example {
	values := make([]Value, len(d.Attributes))
	for i := range values {
		values[i] = Missing()
	}
	return &Example{Domain: d, Values: values, Class: Missing()}
}

// SetClass sets the class slot.
func (e *Example) SetClass(v Value) {
	e.Class = v
}

// Weight returns the example's weight on the given channel. Channel 0 and
// unset channels weigh 1.0.
func (e *Example) Weight(channel int) float64 {
	if channel == 0 {
		return 1.0
	}
	if w, ok := e.weights[channel]; ok {
		return w
	}
	return 1.0
}

// SetWeight stores a weight on the given channel. Channel 0 is the implicit
// uniform channel and cannot be overwritten.
func (e *Example) SetWeight(channel int, w float64) {
	if channel == 0 {
		return
	}
	if e.weights == nil {
		e.weights = make(map[int]float64)
	}
	e.weights[channel] = w
}

// Clone returns a deep copy of the example.
func (e *Example) Clone() *Example {
	out := &Example{
		Domain:  e.Domain,
		Values:  append([]Value(nil), e.Values...),
		Class:   e.Class,
		weights: e.copyWeights(),
	}
	return out
}

func (e *Example) copyWeights() map[int]float64 {
	if e.weights == nil {
		return nil
	}
	out := make(map[int]float64, len(e.weights))
	for k, v := range e.weights {
		out[k] = v
	}
	return out
}
