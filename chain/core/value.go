// Package core defines the value model shared by every chain package:
// positional sequences and their row kinds, the Missing sentinel, ordered
// records, runtime kind introspection, comparison and rendering.
//
// NOTE: this package should have no dependencies outside the standard
// library, including other chain packages.
package core

import (
	"reflect"
)

// Sequence is the capability contract every row satisfies: ordered, sized
// and indexable by position. Rows carry no declared arity.
type Sequence interface {
	Len() int
	At(i int) any
}

// RowKind distinguishes fixed-arity rows from growable ones. Copies made by
// the row helpers keep the kind of their source.
type RowKind int

const (
	// Growable rows behave like lists: appending extends them.
	Growable RowKind = iota
	// Fixed rows behave like tuples: any change produces a new tuple.
	Fixed
)

func (k RowKind) String() string {
	if k == Fixed {
		return "fixed"
	}
	return "growable"
}

// Tuple is a fixed-arity row.
type Tuple []any

// Len implements Sequence.
func (t Tuple) Len() int { return len(t) }

// At implements Sequence.
func (t Tuple) At(i int) any { return t[i] }

// List is a growable row.
type List []any

// Len implements Sequence.
func (l List) Len() int { return len(l) }

// At implements Sequence.
func (l List) At(i int) any { return l[i] }

// MissingValue is the type of the Missing sentinel.
type MissingValue struct{}

// String renders the sentinel the way the row listings print it.
func (MissingValue) String() string { return "None" }

// MarshalJSON encodes the sentinel as null.
func (MissingValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Missing marks a position that holds no value. Lenient positional reads
// return it instead of failing.
var Missing = MissingValue{}

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v any) bool {
	_, ok := v.(MissingValue)
	return ok
}

// sliceView adapts an arbitrary Go slice or array to Sequence.
type sliceView struct {
	v reflect.Value
}

func (s sliceView) Len() int     { return s.v.Len() }
func (s sliceView) At(i int) any { return s.v.Index(i).Interface() }

// AsSequence returns v as a Sequence when it is a row: a Tuple, a List, a
// Sequence implementation, or any Go slice or array. Strings are scalars,
// not sequences.
func AsSequence(v any) (Sequence, bool) {
	switch s := v.(type) {
	case Tuple:
		return s, true
	case List:
		return s, true
	case []any:
		return List(s), true
	case Sequence:
		return s, true
	case nil, string:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return sliceView{v: rv}, true
	}
	return nil, false
}

// KindOfRow reports whether seq is a fixed or growable row.
func KindOfRow(seq Sequence) RowKind {
	switch s := seq.(type) {
	case Tuple:
		return Fixed
	case sliceView:
		if s.v.Kind() == reflect.Array {
			return Fixed
		}
	}
	return Growable
}

// Values copies the elements of seq into a fresh slice.
func Values(seq Sequence) []any {
	out := make([]any, seq.Len())
	for i := range out {
		out[i] = seq.At(i)
	}
	return out
}

// MakeRow wraps vals in the concrete row type for kind. The slice is not
// copied.
func MakeRow(kind RowKind, vals []any) Sequence {
	if kind == Fixed {
		return Tuple(vals)
	}
	return List(vals)
}
