package chain

import (
	"fmt"
	"reflect"

	"github.com/lguimbarda/min-chain/chain/core"
	"github.com/lguimbarda/min-chain/chain/hof"
)

// Any reports whether pred holds for at least one element. It is false for
// an empty Pipeline. Panics raised by pred are not recovered.
func (p Pipeline) Any(pred func(any) bool) (bool, error) {
	if pred == nil {
		panic("Any: predicate cannot be nil")
	}
	if p.err != nil {
		return false, p.err
	}
	return hof.Any(p.rows, pred), nil
}

// All reports whether pred holds for every element. It is true for an
// empty Pipeline.
func (p Pipeline) All(pred func(any) bool) (bool, error) {
	if pred == nil {
		panic("All: predicate cannot be nil")
	}
	if p.err != nil {
		return false, p.err
	}
	return hof.All(p.rows, pred), nil
}

// Find returns the first element satisfying pred.
func (p Pipeline) Find(pred func(any) bool) (any, bool, error) {
	if pred == nil {
		panic("Find: predicate cannot be nil")
	}
	if p.err != nil {
		return nil, false, p.err
	}
	v, ok := hof.Find(p.rows, pred)
	return v, ok, nil
}

// FindIndex returns the position of the first element satisfying pred, or
// -1.
func (p Pipeline) FindIndex(pred func(any) bool) (int, error) {
	if pred == nil {
		panic("FindIndex: predicate cannot be nil")
	}
	if p.err != nil {
		return -1, p.err
	}
	return hof.FindIndex(p.rows, pred), nil
}

// Sum adds the elements. Integers sum to an int; any float promotes the
// total to float64. An empty Pipeline sums to 0.
func (p Pipeline) Sum() (any, error) {
	if p.err != nil {
		return nil, p.err
	}
	var total any = 0
	for i, v := range p.rows {
		next, err := core.Add(total, v)
		if err != nil {
			return nil, wrap("sum", i, err)
		}
		total = next
	}
	return total, nil
}

// Collect returns the elements as a []T. An element that is not a T fails
// with core.ErrType.
func Collect[T any](p Pipeline) ([]T, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([]T, len(p.rows))
	for i, v := range p.rows {
		t, ok := v.(T)
		if !ok {
			return nil, core.Errorf("collect", i, core.ErrType, "%T is not %v", v, reflect.TypeOf((*T)(nil)).Elem())
		}
		out[i] = t
	}
	return out, nil
}

// Reduce folds the elements into an accumulator, starting from init.
func Reduce[R any](p Pipeline, init R, fn func(acc R, v any) R) (R, error) {
	if fn == nil {
		panic("Reduce: function cannot be nil")
	}
	if p.err != nil {
		return init, p.err
	}
	return hof.Reduce(p.rows, init, fn), nil
}

// Must returns the elements of p and panics if p failed. It is meant for
// tests and examples.
func (p Pipeline) Must() []any {
	rows, err := p.Rows()
	if err != nil {
		panic(fmt.Sprintf("Must: %v", err))
	}
	return rows
}
