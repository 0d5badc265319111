package chain

import (
	"regexp"

	"github.com/lguimbarda/min-chain/chain/core"
	"github.com/lguimbarda/min-chain/chain/hof"
	"github.com/lguimbarda/min-chain/chain/row"
)

// Map returns the result of fn for every element, in order.
func (p Pipeline) Map(fn func(any) any) Pipeline {
	if fn == nil {
		panic("Map: function cannot be nil")
	}
	return p.transform("map", func(rows []any) ([]any, error) {
		return hof.Map(rows, fn), nil
	})
}

// TryMap is Map for functions that can fail. The first error stops the
// operation and becomes the failure of the returned Pipeline.
func (p Pipeline) TryMap(fn func(any) (any, error)) Pipeline {
	if fn == nil {
		panic("TryMap: function cannot be nil")
	}
	return p.transform("try_map", eachRow("try_map", func(_ int, v any) (any, error) {
		return fn(v)
	}))
}

// Select keeps the elements for which pred returns true.
func (p Pipeline) Select(pred func(any) bool) Pipeline {
	if pred == nil {
		panic("Select: predicate cannot be nil")
	}
	return p.split("select", pred, true)
}

// Reject keeps the elements for which pred returns false. Like Select, it
// calls pred exactly once per element.
func (p Pipeline) Reject(pred func(any) bool) Pipeline {
	if pred == nil {
		panic("Reject: predicate cannot be nil")
	}
	return p.split("reject", pred, false)
}

// RejectMissing drops core.Missing elements.
func (p Pipeline) RejectMissing() Pipeline {
	return p.transform("reject_missing", func(rows []any) ([]any, error) {
		return hof.Reject(rows, core.IsMissing), nil
	})
}

// RejectKind drops the elements of the given kind.
func (p Pipeline) RejectKind(kind core.Kind) Pipeline {
	return p.transform("reject_kind", func(rows []any) ([]any, error) {
		return hof.Filter(rows, func(v any) bool { return core.KindOf(v) != kind }), nil
	})
}

// Partition returns the elements satisfying pred and the remaining ones.
// pred is called once per element; each half keeps the original order.
func (p Pipeline) Partition(pred func(any) bool) (Pipeline, Pipeline) {
	if pred == nil {
		panic("Partition: predicate cannot be nil")
	}
	var rest []any
	matched := p.transform("partition", func(rows []any) ([]any, error) {
		var kept []any
		kept, rest = hof.Partition(rows, pred)
		return kept, nil
	})
	if matched.err != nil {
		return matched, matched
	}
	return matched, Pipeline{rows: rest, opts: p.opts}
}

func (p Pipeline) split(op string, pred func(any) bool, keep bool) Pipeline {
	return p.transform(op, func(rows []any) ([]any, error) {
		matched, rest := hof.Partition(rows, pred)
		if keep {
			return matched, nil
		}
		return rest, nil
	})
}

// SelectByPos keeps the rows whose value at position i satisfies pred.
// Negative positions count from the end. Every row must have a value at i;
// a shorter row fails with core.ErrRange.
func (p Pipeline) SelectByPos(pred func(any) bool, i int) Pipeline {
	if pred == nil {
		panic("SelectByPos: predicate cannot be nil")
	}
	const op = "select_by_pos"
	return p.transform(op, func(rows []any) ([]any, error) {
		out := make([]any, 0, len(rows))
		for k, r := range rows {
			seq, err := sequence(op, k, r)
			if err != nil {
				return nil, err
			}
			j, ok := row.Resolve(seq.Len(), i)
			if !ok {
				return nil, core.Errorf(op, k, core.ErrRange, "position %d, row length %d", i, seq.Len())
			}
			if pred(seq.At(j)) {
				out = append(out, r)
			}
		}
		return out, nil
	})
}

// Match keeps the strings that match pattern at their start.
func (p Pipeline) Match(pattern string) Pipeline {
	const op = "match"
	return p.transform(op, func(rows []any) ([]any, error) {
		re, err := compile(op, "^(?:"+pattern+")")
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(rows))
		for i, v := range rows {
			s, err := str(op, i, v)
			if err != nil {
				return nil, err
			}
			if re.MatchString(s) {
				out = append(out, s)
			}
		}
		return out, nil
	})
}

// Tap calls fn with a copy of the elements and passes them on unchanged.
func (p Pipeline) Tap(fn func([]any)) Pipeline {
	if fn == nil {
		panic("Tap: function cannot be nil")
	}
	return p.transform("tap", func(rows []any) ([]any, error) {
		seen := make([]any, len(rows))
		copy(seen, rows)
		fn(seen)
		out := make([]any, len(rows))
		copy(out, rows)
		return out, nil
	})
}

func compile(op, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, core.Errorf(op, -1, core.ErrPattern, "%v", err)
	}
	return re, nil
}
