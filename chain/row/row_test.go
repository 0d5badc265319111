package row_test

import (
	"errors"
	"testing"

	"github.com/lguimbarda/min-chain/chain/core"
	"github.com/lguimbarda/min-chain/chain/row"
)

func TestProject(t *testing.T) {
	r := core.List{"233", "a", "b"}

	tests := []struct {
		name string
		pos  int
		want any
	}{
		{name: "first", pos: 0, want: "233"},
		{name: "last", pos: 2, want: "b"},
		{name: "past end", pos: 3, want: core.Missing},
		{name: "negative", pos: -1, want: "b"},
		{name: "negative first", pos: -3, want: "233"},
		{name: "negative past start", pos: -4, want: core.Missing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := row.Project(r, tt.pos); got != tt.want {
				t.Errorf("Project(%d) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestReplaceKeepsKindAndOriginal(t *testing.T) {
	upper := func(v any) any { return v.(string) + "!" }

	t.Run("list", func(t *testing.T) {
		orig := core.List{"a", "b"}
		got, err := row.Replace(orig, 1, upper)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := got.(core.List); !ok {
			t.Fatalf("expected core.List, got %T", got)
		}
		if got.At(1) != "b!" {
			t.Errorf("got %v, want b!", got.At(1))
		}
		if orig[1] != "b" {
			t.Errorf("original row was modified: %v", orig)
		}
	})

	t.Run("tuple", func(t *testing.T) {
		orig := core.Tuple{"a", "b"}
		got, err := row.Replace(orig, 0, upper)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := got.(core.Tuple); !ok {
			t.Fatalf("expected core.Tuple, got %T", got)
		}
		if orig[0] != "a" {
			t.Errorf("original row was modified: %v", orig)
		}
	})

	t.Run("foreign slice becomes list", func(t *testing.T) {
		seq, _ := core.AsSequence([]string{"x", "y"})
		got, err := row.Replace(seq, 0, upper)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := got.(core.List); !ok {
			t.Fatalf("expected core.List, got %T", got)
		}
	})

	t.Run("array becomes tuple", func(t *testing.T) {
		seq, _ := core.AsSequence([2]string{"x", "y"})
		got, err := row.Replace(seq, 0, upper)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := got.(core.Tuple); !ok {
			t.Fatalf("expected core.Tuple, got %T", got)
		}
	})
}

func TestReplaceOutOfRange(t *testing.T) {
	for _, i := range []int{1, -2} {
		_, err := row.Replace(core.List{"a"}, i, func(v any) any { return v })
		if !errors.Is(err, core.ErrRange) {
			t.Fatalf("Replace(%d): expected ErrRange, got %v", i, err)
		}
	}
}

func TestReplaceNegative(t *testing.T) {
	got, err := row.Replace(core.Tuple{1, 2, 3}, -1, func(v any) any { return v.(int) * 10 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if core.Repr(got) != "(1, 2, 30)" {
		t.Errorf("got %s, want (1, 2, 30)", core.Repr(got))
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		n, i, want int
		ok         bool
	}{
		{3, 0, 0, true},
		{3, 2, 2, true},
		{3, 3, 3, false},
		{3, -1, 2, true},
		{3, -3, 0, true},
		{3, -4, -1, false},
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := row.Resolve(tt.n, tt.i)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Resolve(%d, %d) = %d, %v; want %d, %v", tt.n, tt.i, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAppend(t *testing.T) {
	orig := core.Tuple{1, 2}
	got := row.Append(orig, 3)
	if _, ok := got.(core.Tuple); !ok {
		t.Fatalf("expected core.Tuple, got %T", got)
	}
	if got.Len() != 3 || got.At(2) != 3 {
		t.Errorf("got %v", got)
	}
	if len(orig) != 2 {
		t.Errorf("original row was modified: %v", orig)
	}

	list := make(core.List, 1, 8)
	list[0] = "a"
	first := row.Append(list, "b")
	second := row.Append(list, "c")
	if first.At(1) != "b" || second.At(1) != "c" {
		t.Errorf("appends share storage: %v %v", first, second)
	}
}

func TestFlatten(t *testing.T) {
	rows := []any{
		core.List{"233", "a", "b"},
		core.Tuple{"4343", "y"},
		[]string{"44"},
		core.List{},
	}
	got, err := row.Flatten(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{"233", "a", "b", "4343", "y", "44"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFlattenRejectsScalars(t *testing.T) {
	_, err := row.Flatten([]any{core.List{1}, 2})
	if !errors.Is(err, core.ErrType) {
		t.Fatalf("expected ErrType, got %v", err)
	}
	var opErr *core.OpError
	if !errors.As(err, &opErr) || opErr.Index != 1 {
		t.Fatalf("expected OpError at index 1, got %v", err)
	}
}
