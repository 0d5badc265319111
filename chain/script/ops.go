package script

import (
	"fmt"
	"sort"

	"github.com/lguimbarda/min-chain/chain"
	"github.com/lguimbarda/min-chain/chain/core"
)

// OpInfo describes one operation available to scripts.
type OpInfo struct {
	Name     string
	Args     string
	Doc      string
	Terminal bool
}

type arity struct{ min, max int } // max < 0 means any number

func (a arity) check(name string, args []token) error {
	if len(args) < a.min || (a.max >= 0 && len(args) > a.max) {
		want := fmt.Sprintf("%d", a.min)
		switch {
		case a.max < 0:
			want = fmt.Sprintf("at least %d", a.min)
		case a.max != a.min:
			want = fmt.Sprintf("%d to %d", a.min, a.max)
		}
		return fmt.Errorf("%w: %s takes %s arguments, got %d", ErrSyntax, name, want, len(args))
	}
	return nil
}

type operation struct {
	args  string
	doc   string
	arity arity
	build func(args []token) (chain.Stage, error)
}

type terminal struct {
	args  string
	doc   string
	arity arity
	build func(args []token) (func(chain.Pipeline) (any, error), error)
}

func method(fn func(chain.Pipeline) chain.Pipeline) func([]token) (chain.Stage, error) {
	return func([]token) (chain.Stage, error) { return fn, nil }
}

func withInt(name string, fn func(p chain.Pipeline, n int) chain.Pipeline) func([]token) (chain.Stage, error) {
	return func(args []token) (chain.Stage, error) {
		n, err := intArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return func(p chain.Pipeline) chain.Pipeline { return fn(p, n) }, nil
	}
}

// withString passes the argument text as written; "1.50" stays "1.50".
func withString(fn func(p chain.Pipeline, s string) chain.Pipeline) func([]token) (chain.Stage, error) {
	return func(args []token) (chain.Stage, error) {
		s := args[0].text
		return func(p chain.Pipeline) chain.Pipeline { return fn(p, s) }, nil
	}
}

func withStrings(fn func(p chain.Pipeline, ss ...string) chain.Pipeline) func([]token) (chain.Stage, error) {
	return func(args []token) (chain.Stage, error) {
		ss := make([]string, len(args))
		for i, a := range args {
			ss[i] = a.text
		}
		return func(p chain.Pipeline) chain.Pipeline { return fn(p, ss...) }, nil
	}
}

// withValue passes the argument as a typed literal.
func withValue(fn func(p chain.Pipeline, v any) chain.Pipeline) func([]token) (chain.Stage, error) {
	return func(args []token) (chain.Stage, error) {
		v := args[0].value()
		return func(p chain.Pipeline) chain.Pipeline { return fn(p, v) }, nil
	}
}

func intArg(name string, args []token, i int) (int, error) {
	v := args[i].value()
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("%w: %s: argument %d must be an integer, got %s", ErrSyntax, name, i+1, core.Repr(v))
	}
	return n, nil
}

var operations = map[string]operation{
	"select_pos": {"i", "position i of every row", arity{1, 1}, withInt("select_pos", chain.Pipeline.SelectPos)},
	"append_pos": {"v", "append v to every row", arity{1, 1}, withValue(chain.Pipeline.AppendPos)},
	"take":       {"n", "first n elements", arity{1, 1}, withInt("take", chain.Pipeline.Take)},
	"drop":       {"n", "all but the first n elements", arity{1, 1}, withInt("drop", chain.Pipeline.Drop)},
	"reverse":    {"", "reverse the order", arity{0, 0}, method(chain.Pipeline.Reverse)},
	"sort":       {"", "ascending stable sort", arity{0, 0}, method(chain.Pipeline.Sort)},
	"unique":     {"", "drop repeated elements", arity{0, 0}, method(chain.Pipeline.Unique)},
	"enumerate":  {"", "pair every element with its index", arity{0, 0}, method(chain.Pipeline.Enumerate)},
	"transpose":  {"", "swap rows and columns", arity{0, 0}, method(chain.Pipeline.Transpose)},
	"flat":       {"", "concatenate rows", arity{0, 0}, method(chain.Pipeline.Flat)},
	"to_int":     {"", "parse integers", arity{0, 0}, method(chain.Pipeline.ToInt)},
	"to_float":   {"", "parse floats", arity{0, 0}, method(chain.Pipeline.ToFloat)},
	"to_str":     {"", "render as strings", arity{0, 0}, method(chain.Pipeline.ToStr)},
	"type":       {"", "kind of every element", arity{0, 0}, method(chain.Pipeline.Type)},
	"strip":      {"[chars]", "trim white space or chars", arity{0, -1}, withStrings(chain.Pipeline.Strip)},
	"split":      {"[sep]", "split strings", arity{0, -1}, withStrings(chain.Pipeline.Split)},
	"splitlines": {"", "split strings into lines", arity{0, 0}, method(chain.Pipeline.SplitLines)},
	"match":      {"pattern", "keep strings matching pattern", arity{1, 1}, withString(chain.Pipeline.Match)},
	"regex":      {"pattern", "all matches of pattern", arity{1, 1}, withString(chain.Pipeline.Regex)},
	"regexf":     {"pattern", "all matches of pattern, flattened", arity{1, 1}, withString(chain.Pipeline.Regexf)},
	"get":        {"attr", "read an attribute", arity{1, 1}, withString(chain.Pipeline.Get)},
	"to_dict":    {"field...", "rows to records", arity{1, -1}, withStrings(chain.Pipeline.ToDict)},
	"append":     {"v", "append an element", arity{1, 1}, withValue(chain.Pipeline.Append)},
	"insert":     {"pos v", "insert an element", arity{2, 2}, buildInsert},

	"reject_missing": {"", "drop None elements", arity{0, 0}, method(chain.Pipeline.RejectMissing)},
	"reject_kind":    {"kind", "drop elements of a kind", arity{1, 1}, buildRejectKind},
}

func buildInsert(args []token) (chain.Stage, error) {
	pos, err := intArg("insert", args, 0)
	if err != nil {
		return nil, err
	}
	v := args[1].value()
	return func(p chain.Pipeline) chain.Pipeline { return p.Insert(pos, v) }, nil
}

func buildRejectKind(args []token) (chain.Stage, error) {
	name := args[0].text
	kind, ok := core.ParseKind(name)
	if !ok {
		return nil, fmt.Errorf("%w: reject_kind: unknown kind %q", ErrSyntax, name)
	}
	return func(p chain.Pipeline) chain.Pipeline { return p.RejectKind(kind) }, nil
}

var terminals = map[string]terminal{
	"count": {"", "number of elements", arity{0, 0}, func([]token) (func(chain.Pipeline) (any, error), error) {
		return func(p chain.Pipeline) (any, error) { return p.Count() }, nil
	}},
	"is_empty": {"", "whether there are no elements", arity{0, 0}, func([]token) (func(chain.Pipeline) (any, error), error) {
		return func(p chain.Pipeline) (any, error) { return p.IsEmpty() }, nil
	}},
	"sum": {"", "numeric total", arity{0, 0}, func([]token) (func(chain.Pipeline) (any, error), error) {
		return chain.Pipeline.Sum, nil
	}},
	"first": {"", "the first element", arity{0, 0}, func([]token) (func(chain.Pipeline) (any, error), error) {
		return func(p chain.Pipeline) (any, error) { return p.At(0) }, nil
	}},
	"join": {"[sep]", "render and join with sep", arity{0, 1}, func(args []token) (func(chain.Pipeline) (any, error), error) {
		sep := ""
		if len(args) == 1 {
			sep = args[0].text
		}
		return func(p chain.Pipeline) (any, error) { return p.Join(sep) }, nil
	}},
}

// Ops lists every operation, sorted by name, terminals last.
func Ops() []OpInfo {
	out := make([]OpInfo, 0, len(operations)+len(terminals))
	for name, op := range operations {
		out = append(out, OpInfo{Name: name, Args: op.args, Doc: op.doc})
	}
	for name, t := range terminals {
		out = append(out, OpInfo{Name: name, Args: t.args, Doc: t.doc, Terminal: true})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Terminal != out[j].Terminal {
			return !out[i].Terminal
		}
		return out[i].Name < out[j].Name
	})
	return out
}
