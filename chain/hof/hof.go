// Package hof provides eager higher-order primitives over slices.
//
// Every function evaluates its whole input before returning, never mutates
// its arguments and returns freshly allocated results. The functions carry
// no pipeline policy: missing-value handling and row copying belong to the
// chain and row packages.
package hof

import (
	"fmt"

	"github.com/ahmetb/go-linq/v3"
	"github.com/samber/lo"

	"github.com/lguimbarda/min-chain/chain/core"
)

// Pair is an element of a Zip result.
type Pair[A, B any] struct {
	A A
	B B
}

// Map applies fn to every element.
func Map[T, U any](xs []T, fn func(T) U) []U {
	if fn == nil {
		panic("Map: function cannot be nil")
	}
	return lo.Map(xs, func(x T, _ int) U { return fn(x) })
}

// Filter keeps the elements for which pred returns true.
func Filter[T any](xs []T, pred func(T) bool) []T {
	if pred == nil {
		panic("Filter: predicate cannot be nil")
	}
	return lo.Filter(xs, func(x T, _ int) bool { return pred(x) })
}

// Reject keeps the elements for which pred returns false.
func Reject[T any](xs []T, pred func(T) bool) []T {
	if pred == nil {
		panic("Reject: predicate cannot be nil")
	}
	return lo.Reject(xs, func(x T, _ int) bool { return pred(x) })
}

// Partition splits xs into the elements satisfying pred and the rest,
// calling pred exactly once per element. Relative order is kept on both
// sides.
func Partition[T any](xs []T, pred func(T) bool) (matched, rest []T) {
	if pred == nil {
		panic("Partition: predicate cannot be nil")
	}
	matched, rest = lo.FilterReject(xs, func(x T, _ int) bool { return pred(x) })
	if matched == nil {
		matched = []T{}
	}
	if rest == nil {
		rest = []T{}
	}
	return matched, rest
}

// Reduce folds xs from the left starting at init.
func Reduce[T, R any](xs []T, init R, fn func(R, T) R) R {
	if fn == nil {
		panic("Reduce: function cannot be nil")
	}
	return lo.Reduce(xs, func(acc R, x T, _ int) R { return fn(acc, x) }, init)
}

// Find returns the first element satisfying pred.
func Find[T any](xs []T, pred func(T) bool) (T, bool) {
	if pred == nil {
		panic("Find: predicate cannot be nil")
	}
	return lo.Find(xs, pred)
}

// FindIndex returns the index of the first element satisfying pred, or -1.
func FindIndex[T any](xs []T, pred func(T) bool) int {
	if pred == nil {
		panic("FindIndex: predicate cannot be nil")
	}
	_, i, _ := lo.FindIndexOf(xs, pred)
	return i
}

// Any reports whether pred holds for at least one element.
func Any[T any](xs []T, pred func(T) bool) bool {
	if pred == nil {
		panic("Any: predicate cannot be nil")
	}
	return lo.SomeBy(xs, pred)
}

// All reports whether pred holds for every element. It is true for an
// empty slice.
func All[T any](xs []T, pred func(T) bool) bool {
	if pred == nil {
		panic("All: predicate cannot be nil")
	}
	return lo.EveryBy(xs, pred)
}

// Unique removes repeated elements, keeping first occurrences in order.
func Unique[T comparable](xs []T) []T {
	return lo.Uniq(xs)
}

// UniqueBy removes elements whose key was already seen, keeping first
// occurrences in order.
func UniqueBy[T any, K comparable](xs []T, key func(T) K) []T {
	if key == nil {
		panic("UniqueBy: key function cannot be nil")
	}
	return lo.UniqBy(xs, key)
}

// Flatten concatenates the inner slices.
func Flatten[T any](xss [][]T) []T {
	out := lo.Flatten(xss)
	if out == nil {
		out = []T{}
	}
	return out
}

// Zip pairs elements by position and stops at the shorter input.
func Zip[A, B any](as []A, bs []B) []Pair[A, B] {
	pairs := linq.From(as).
		Zip(linq.From(bs), func(a, b interface{}) interface{} {
			av, _ := a.(A)
			bv, _ := b.(B)
			return Pair[A, B]{A: av, B: bv}
		}).
		Results()
	return fromResults[Pair[A, B]](pairs)
}

// Sort returns the elements of xs in ascending order according to compare.
// The first error reported by compare aborts the sort and is returned.
func Sort[T any](xs []T, compare func(a, b T) (int, error)) ([]T, error) {
	if compare == nil {
		panic("Sort: compare function cannot be nil")
	}
	var firstErr error
	sorted := linq.From(xs).
		Sort(func(i, j interface{}) bool {
			if firstErr != nil {
				return false
			}
			a, _ := i.(T)
			b, _ := j.(T)
			c, err := compare(a, b)
			if err != nil {
				firstErr = err
				return false
			}
			return c < 0
		}).
		Results()
	if firstErr != nil {
		return nil, firstErr
	}
	return fromResults[T](sorted), nil
}

// fromResults converts untyped query results back to []T. Nil entries
// become the zero value of T.
func fromResults[T any](items []interface{}) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i], _ = item.(T)
	}
	return out
}

// Transpose turns rows into columns. Every row must have the same length;
// otherwise core.ErrRagged is returned.
func Transpose[T any](rows [][]T) ([][]T, error) {
	if len(rows) == 0 {
		return [][]T{}, nil
	}
	width := len(rows[0])
	for i, r := range rows {
		if len(r) != width {
			return nil, core.Errorf("transpose", i, core.ErrRagged, "length %d, expected %d", len(r), width)
		}
	}
	return lo.Times(width, func(col int) []T {
		return lo.Map(rows, func(r []T, _ int) T { return r[col] })
	}), nil
}

// Getter returns a function that reads the named attribute of an element:
// a core.Record field, a string map key, an exported struct field or a
// method taking no arguments.
func Getter(attr string) func(any) (any, error) {
	return func(v any) (any, error) {
		if v, ok := attribute(v, attr); ok {
			return v, nil
		}
		return nil, fmt.Errorf("%w: %s has no attribute %q", core.ErrAttribute, core.KindOf(v), attr)
	}
}
