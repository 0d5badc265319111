package chain_test

import (
	"errors"
	"testing"

	"github.com/lguimbarda/min-chain/chain"
	"github.com/lguimbarda/min-chain/chain/core"
)

func TestMatch(t *testing.T) {
	p := chain.Of("abc", "xabc", "ab", "b")
	expect(t, p.Match("ab"), "['abc', 'ab']")
	expect(t, p.Match("a|b"), "['abc', 'ab', 'b']")

	if err := p.Match("(").Err(); !errors.Is(err, core.ErrPattern) {
		t.Fatalf("expected ErrPattern, got %v", err)
	}
	if err := chain.Of("a", 1).Match("a").Err(); !errors.Is(err, core.ErrType) {
		t.Fatalf("expected ErrType, got %v", err)
	}
}

func TestRegex(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		flat    bool
		want    string
	}{
		{name: "no groups", pattern: `\d+`, want: "[['12', '3'], []]"},
		{name: "one group", pattern: `k=(\w)`, want: "[[], ['a', 'b']]"},
		{name: "two groups", pattern: `(\w)=(\w)`, want: "[[], [('k', 'a'), ('k', 'b')]]"},
		{name: "flattened", pattern: `\w=\w|\d`, flat: true, want: "['1', '2', '3', 'k=a', 'k=b']"},
	}
	p := chain.Of("12 and 3", "k=a k=b")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Regex(tt.pattern)
			if tt.flat {
				got = p.Regexf(tt.pattern)
			}
			expect(t, got, tt.want)
		})
	}
}

func TestRegexfIsOneStage(t *testing.T) {
	var ops []string
	hooks := core.Hooks{OnStage: func(ev core.StageEvent) { ops = append(ops, ev.Op) }}
	p := chain.Of("a1b2", "c3").With(chain.WithHooks(hooks)).Regexf(`\d`)
	expect(t, p, "['1', '2', '3']")
	if len(ops) != 1 || ops[0] != "regexf" {
		t.Errorf("stages = %v, want [regexf]", ops)
	}
}

func TestStripSplit(t *testing.T) {
	p := chain.Of("  a b  ", "--c--")
	expect(t, p.Strip(), "['a b', '--c--']")
	expect(t, p.Strip("-", " "), "['a b', 'c']")

	expect(t, chain.Of(" a  b ", "c").Split(), "[['a', 'b'], ['c']]")
	expect(t, chain.Of("a,b,,c").Split(","), "[['a', 'b', '', 'c']]")

	if err := chain.Of("a").Split("").Err(); !errors.Is(err, core.ErrPattern) {
		t.Fatalf("expected ErrPattern, got %v", err)
	}
	if err := chain.Of(1).Strip().Err(); !errors.Is(err, core.ErrType) {
		t.Fatalf("expected ErrType, got %v", err)
	}
}

func TestSplitLines(t *testing.T) {
	p := chain.Of("a\nb\r\nc\rd\n", "", "one")
	expect(t, p.SplitLines(), "[['a', 'b', 'c', 'd'], [], ['one']]")
	expect(t, chain.Of("a\n\nb").SplitLines(), "[['a', '', 'b']]")
	expect(t, chain.Of("a\vb\fc\x1cd\x1de\x1ef\u0085g\u2028h\u2029").SplitLines(),
		"[['a', 'b', 'c', 'd', 'e', 'f', 'g', 'h']]")
}

func TestJoin(t *testing.T) {
	got, err := chain.Of("a", 1, 2.5, core.Missing).Join("-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a-1-2.5-None" {
		t.Errorf("got %q", got)
	}
}

func TestConversions(t *testing.T) {
	p := chain.Of("42", " 7 ", 3.9, 5)
	expect(t, p.ToInt(), "[42, 7, 3, 5]")
	expect(t, p.ToFloat(), "[42.0, 7.0, 3.9, 5.0]")
	expect(t, chain.Of("1.5").ToFloat(), "[1.5]")
	expect(t, chain.Of("a", 1, core.Tuple{1}).ToStr(), "['a', '1', '(1,)']")

	if err := chain.Of("1.5").ToInt().Err(); !errors.Is(err, core.ErrConversion) {
		t.Fatalf("expected ErrConversion, got %v", err)
	}
	if err := chain.Of("x").ToFloat().Err(); !errors.Is(err, core.ErrConversion) {
		t.Fatalf("expected ErrConversion, got %v", err)
	}
	if err := chain.Of(core.List{}).ToInt().Err(); !errors.Is(err, core.ErrType) {
		t.Fatalf("expected ErrType, got %v", err)
	}
}

func TestSortUniqueInsert(t *testing.T) {
	expect(t, chain.Of(3, 1.5, 2, -1).Sort(), "[-1, 1.5, 2, 3]")
	expect(t, chain.Of("b", "a", "c").Sort(), "['a', 'b', 'c']")
	expect(t, chain.Of(core.Tuple{1, "b"}, core.Tuple{1, "a"}, core.Tuple{0, "z"}).Sort(),
		"[(0, 'z'), (1, 'a'), (1, 'b')]")
	expect(t, chain.Of(2, 2.0, 1).Sort(), "[1, 2, 2.0]")

	err := chain.Of(1, "a").Sort().Err()
	if !errors.Is(err, core.ErrNotComparable) || !errors.Is(err, core.ErrType) {
		t.Fatalf("expected ErrNotComparable, got %v", err)
	}

	expect(t, chain.Of(1, 1.0, "1", core.Tuple{1}, core.List{1}, core.Tuple{1}).Unique(), "[1, '1', (1,), [1]]")

	p := chain.Of("a", "b", "c")
	expect(t, p.Insert(1, "x"), "['a', 'x', 'b', 'c']")
	expect(t, p.Insert(-1, "x"), "['a', 'b', 'x', 'c']")
	expect(t, p.Insert(10, "x"), "['a', 'b', 'c', 'x']")
	expect(t, p.Insert(-10, "x"), "['x', 'a', 'b', 'c']")
	expect(t, p.Append("d"), "['a', 'b', 'c', 'd']")
	expect(t, p, "['a', 'b', 'c']")
}

func TestTransposeFailures(t *testing.T) {
	if err := chain.Of(core.List{1, 2}, core.List{3}).Transpose().Err(); !errors.Is(err, core.ErrRagged) {
		t.Fatalf("expected ErrRagged, got %v", err)
	}
	if err := chain.Of(core.List{1}, 2).Transpose().Err(); !errors.Is(err, core.ErrType) {
		t.Fatalf("expected ErrType, got %v", err)
	}
	expect(t, chain.Of().Transpose(), "[]")
}

func TestTerminals(t *testing.T) {
	p := chain.Of(1, 4, 6, 7)
	even := func(v any) bool { return v.(int)%2 == 0 }

	if found, err := p.Any(even); err != nil || !found {
		t.Errorf("Any = %v, %v; want true", found, err)
	}
	if every, err := p.All(even); err != nil || every {
		t.Errorf("All = %v, %v; want false", every, err)
	}
	if found, _ := chain.Of().Any(even); found {
		t.Error("empty: Any should be false")
	}
	if every, _ := chain.Of().All(even); !every {
		t.Error("empty: All should be true")
	}
	if v, ok, err := p.Find(even); err != nil || !ok || v != 4 {
		t.Errorf("Find = %v, %v, %v", v, ok, err)
	}
	if i, err := p.FindIndex(even); err != nil || i != 1 {
		t.Errorf("FindIndex = %d, %v; want 1", i, err)
	}
	if i, _ := p.FindIndex(func(any) bool { return false }); i != -1 {
		t.Errorf("FindIndex = %d, want -1", i)
	}
	if _, ok, _ := p.Find(func(any) bool { return false }); ok {
		t.Error("Find should miss")
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		name    string
		p       chain.Pipeline
		want    any
		wantErr error
	}{
		{name: "ints", p: chain.Of(1, 2, 3), want: 6},
		{name: "mixed", p: chain.Of(1, 0.5), want: 1.5},
		{name: "empty", p: chain.Of(), want: 0},
		{name: "text", p: chain.Of(1, "2"), wantErr: core.ErrType},
		{name: "scenario", p: sample().SelectPos(0).ToInt(), want: 4620},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.p.Sum()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Sum = %v, %v; want %v", got, err, tt.want)
			}
		})
	}
}

func TestCollectAndReduce(t *testing.T) {
	words, err := chain.Collect[string](chain.Of("a", "b"))
	if err != nil || len(words) != 2 || words[1] != "b" {
		t.Fatalf("Collect = %v, %v", words, err)
	}
	if _, err := chain.Collect[string](chain.Of("a", 1)); !errors.Is(err, core.ErrType) {
		t.Fatalf("expected ErrType, got %v", err)
	}

	n, err := chain.Reduce(chain.Of("ab", "cde"), 0, func(acc int, v any) int { return acc + len(v.(string)) })
	if err != nil || n != 5 {
		t.Errorf("Reduce = %v, %v; want 5", n, err)
	}
}
