package dataset

import (
	"fmt"
	"strconv"
)

// ValueKind tags the payload carried by a Value.
type ValueKind int

const (
	KindDiscrete ValueKind = iota
	KindContinuous
	KindMissing
)

// Value is a single attribute or class value: a discrete value index, a
// continuous number, or the missing sentinel. Missing is distinguishable
// from every real value.
type Value struct {
	Kind  ValueKind
	Index int
	Num   float64
}

// Discrete returns a discrete value pointing at the given value index.
func Discrete(index int) Value {
	return Value{Kind: KindDiscrete, Index: index}
}

// Continuous returns a continuous value.
func Continuous(x float64) Value {
	return Value{Kind: KindContinuous, Num: x}
}

// Missing returns the missing-value sentinel.
func Missing() Value {
	return Value{Kind: KindMissing}
}

// IsMissing reports whether v is the missing sentinel.
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

func (v Value) String() string {
	switch v.Kind {
	case KindDiscrete:
		return fmt.Sprintf("#%d", v.Index)
	case KindContinuous:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	default:
		return "?"
	}
}
