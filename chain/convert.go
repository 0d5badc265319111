package chain

import (
	"github.com/lguimbarda/min-chain/chain/core"
)

// ToInt converts every element to an int. Strings are parsed in base 10,
// floats are truncated toward zero.
func (p Pipeline) ToInt() Pipeline {
	return p.transform("to_int", eachRow("to_int", func(_ int, v any) (any, error) {
		return core.ParseInt(v)
	}))
}

// ToFloat converts every element to a float64.
func (p Pipeline) ToFloat() Pipeline {
	return p.transform("to_float", eachRow("to_float", func(_ int, v any) (any, error) {
		return core.ParseFloat(v)
	}))
}

// ToStr renders every element as text. Strings are kept as they are.
func (p Pipeline) ToStr() Pipeline {
	return p.transform("to_str", eachRow("to_str", func(_ int, v any) (any, error) {
		return core.Str(v), nil
	}))
}

// Type replaces every element with its core.Kind.
func (p Pipeline) Type() Pipeline {
	return p.transform("type", eachRow("type", func(_ int, v any) (any, error) {
		return core.KindOf(v), nil
	}))
}
