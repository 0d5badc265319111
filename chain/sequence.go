package chain

import (
	"github.com/samber/lo"

	"github.com/lguimbarda/min-chain/chain/core"
	"github.com/lguimbarda/min-chain/chain/hof"
)

// Take keeps the first n elements. n is clamped to [0, Count()].
func (p Pipeline) Take(n int) Pipeline {
	return p.transform("take", func(rows []any) ([]any, error) {
		n = clamp(n, len(rows))
		return clone(rows[:n]), nil
	})
}

// Drop removes the first n elements. n is clamped to [0, Count()].
func (p Pipeline) Drop(n int) Pipeline {
	return p.transform("drop", func(rows []any) ([]any, error) {
		n = clamp(n, len(rows))
		return clone(rows[n:]), nil
	})
}

// Reverse returns the elements in reverse order.
func (p Pipeline) Reverse() Pipeline {
	return p.transform("reverse", func(rows []any) ([]any, error) {
		return lo.Reverse(clone(rows)), nil
	})
}

type ranked struct {
	pos int
	v   any
}

// Sort orders the elements ascending. Numbers compare with numbers, strings
// with strings, and sequences element by element. Equal elements keep their
// relative order. Mixing values without a common order fails with
// core.ErrNotComparable.
func (p Pipeline) Sort() Pipeline {
	return p.transform("sort", func(rows []any) ([]any, error) {
		items := make([]ranked, len(rows))
		for i, v := range rows {
			items[i] = ranked{pos: i, v: v}
		}
		sorted, err := hof.Sort(items, func(a, b ranked) (int, error) {
			c, err := core.Compare(a.v, b.v)
			if err != nil || c != 0 {
				return c, err
			}
			return a.pos - b.pos, nil
		})
		if err != nil {
			return nil, err
		}
		return hof.Map(sorted, func(r ranked) any { return r.v }), nil
	})
}

// Append adds v as a new last element.
func (p Pipeline) Append(v any) Pipeline {
	return p.transform("append", func(rows []any) ([]any, error) {
		out := make([]any, len(rows), len(rows)+1)
		copy(out, rows)
		return append(out, v), nil
	})
}

// Insert adds v before position pos. A negative pos counts from the end;
// positions outside the sequence are clamped, so Insert never fails.
func (p Pipeline) Insert(pos int, v any) Pipeline {
	return p.transform("insert", func(rows []any) ([]any, error) {
		if pos < 0 {
			pos += len(rows)
		}
		pos = clamp(pos, len(rows))
		out := make([]any, 0, len(rows)+1)
		out = append(out, rows[:pos]...)
		out = append(out, v)
		return append(out, rows[pos:]...), nil
	})
}

// Unique removes repeated elements and keeps first occurrences. Equality is
// structural: 1 and 1.0 are the same element, a tuple never equals a list.
func (p Pipeline) Unique() Pipeline {
	return p.transform("unique", func(rows []any) ([]any, error) {
		return hof.UniqueBy(rows, core.Key), nil
	})
}

func clamp(n, size int) int {
	return lo.Clamp(n, 0, size)
}

func clone(rows []any) []any {
	out := make([]any, len(rows))
	copy(out, rows)
	return out
}
