package csv_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lguimbarda/min-chain/chain"
	"github.com/lguimbarda/min-chain/chain/core"
	"github.com/lguimbarda/min-chain/chain/csv"
)

const people = "name,age\nada,36\ngrace,45\n"

func TestReadRecordsFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []csv.ReaderOption
		want  string
	}{
		{
			name:  "default",
			input: people,
			want:  "Pipeline : [['name', 'age'], ['ada', '36'], ['grace', '45']]",
		},
		{
			name:  "semicolon",
			input: "a;b\nc;d\n",
			opts:  []csv.ReaderOption{csv.WithComma(';')},
			want:  "Pipeline : [['a', 'b'], ['c', 'd']]",
		},
		{
			name:  "comments and spaces",
			input: "# note\na, b\n",
			opts:  []csv.ReaderOption{csv.WithComment('#'), csv.WithTrimLeadingSpace(true)},
			want:  "Pipeline : [['a', 'b']]",
		},
		{
			name:  "empty",
			input: "",
			want:  "Pipeline : []",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := csv.ReadRecordsFrom(strings.NewReader(tt.input), tt.opts...)
			if err := p.Err(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.String() != tt.want {
				t.Errorf("got %s, want %s", p, tt.want)
			}
		})
	}
}

func TestReadRecordsMalformed(t *testing.T) {
	p := csv.ReadRecordsFrom(strings.NewReader("a,b\nc\n"), csv.WithFieldsPerRecord(0))
	if p.Err() == nil {
		t.Fatal("expected an error for a short record")
	}
}

func TestRecordsAndSum(t *testing.T) {
	p := csv.ReadRecordsFrom(strings.NewReader(people))
	recs := csv.Records(p)
	if recs.String() != "Pipeline : [{'name': 'ada', 'age': '36'}, {'name': 'grace', 'age': '45'}]" {
		t.Errorf("got %s", recs)
	}
	total, err := recs.Get("age").ToInt().Sum()
	if err != nil || total != 81 {
		t.Errorf("Sum = %v, %v; want 81", total, err)
	}
	if n, err := csv.SkipHeader(p).Count(); err != nil || n != 2 {
		t.Errorf("SkipHeader left %d rows, want 2", n)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	p := chain.Of(core.List{"a", 1}, core.Tuple{"b,c", 2.5})
	if err := csv.WriteRecords(path, p); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := csv.ReadRecords(path)
	if got.String() != "Pipeline : [['a', '1'], ['b,c', '2.5']]" {
		t.Errorf("got %s", got)
	}
}

func TestWriteRecordsToRejectsScalars(t *testing.T) {
	var buf bytes.Buffer
	err := csv.WriteRecordsTo(&buf, chain.Of(core.List{"a"}, "b"), csv.WithWriterComma(';'))
	if !errors.Is(err, core.ErrType) {
		t.Fatalf("expected ErrType, got %v", err)
	}
}
