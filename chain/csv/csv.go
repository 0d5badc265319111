// Package csv loads CSV data into pipelines and writes pipelines as CSV.
// Every record becomes a core.List of strings.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/lguimbarda/min-chain/chain"
	"github.com/lguimbarda/min-chain/chain/core"
)

// ReaderOption configures a CSV reader.
type ReaderOption func(*csv.Reader)

// WithComma sets the field delimiter (default is ',').
func WithComma(comma rune) ReaderOption {
	return func(r *csv.Reader) {
		r.Comma = comma
	}
}

// WithComment sets the comment character. Lines beginning with this
// character are ignored.
func WithComment(comment rune) ReaderOption {
	return func(r *csv.Reader) {
		r.Comment = comment
	}
}

// WithFieldsPerRecord sets the expected number of fields per record.
// If positive, each record must have exactly that many fields.
// If 0, the number is set to the first record's field count.
// If negative, no check is made and records may have variable fields.
func WithFieldsPerRecord(n int) ReaderOption {
	return func(r *csv.Reader) {
		r.FieldsPerRecord = n
	}
}

// WithLazyQuotes allows lazy quotes in quoted fields.
func WithLazyQuotes(lazy bool) ReaderOption {
	return func(r *csv.Reader) {
		r.LazyQuotes = lazy
	}
}

// WithTrimLeadingSpace trims leading whitespace from fields.
func WithTrimLeadingSpace(trim bool) ReaderOption {
	return func(r *csv.Reader) {
		r.TrimLeadingSpace = trim
	}
}

// ReadRecords returns a Pipeline with one core.List per record of the CSV
// file at path.
func ReadRecords(path string, opts ...ReaderOption) chain.Pipeline {
	file, err := os.Open(path)
	if err != nil {
		return chain.Fail(err)
	}
	defer file.Close()
	return ReadRecordsFrom(file, opts...)
}

// ReadRecordsFrom reads CSV records from r. The first malformed record
// fails the whole Pipeline.
func ReadRecordsFrom(r io.Reader, opts ...ReaderOption) chain.Pipeline {
	reader := csv.NewReader(r)
	for _, opt := range opts {
		opt(reader)
	}
	var rows []any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return chain.Fail(fmt.Errorf("read csv: %w", err))
		}
		row := make(core.List, len(record))
		for i, field := range record {
			row[i] = field
		}
		rows = append(rows, row)
	}
	return chain.New(rows)
}

// WriterOption configures a CSV writer.
type WriterOption func(*csv.Writer)

// WithWriterComma sets the field delimiter for writing (default is ',').
func WithWriterComma(comma rune) WriterOption {
	return func(w *csv.Writer) {
		w.Comma = comma
	}
}

// WithUseCRLF sets whether to use \r\n as the line terminator.
func WithUseCRLF(useCRLF bool) WriterOption {
	return func(w *csv.Writer) {
		w.UseCRLF = useCRLF
	}
}

// WriteRecords writes every row of p to the file at path, creating or
// truncating it.
func WriteRecords(path string, p chain.Pipeline, opts ...WriterOption) error {
	if err := p.Err(); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if err := WriteRecordsTo(file, p, opts...); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteRecordsTo writes every row of p to w. Each element must be a row;
// its fields are rendered with core.Str.
func WriteRecordsTo(w io.Writer, p chain.Pipeline, opts ...WriterOption) error {
	rows, err := p.Rows()
	if err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	for _, opt := range opts {
		opt(writer)
	}
	for i, r := range rows {
		seq, ok := core.AsSequence(r)
		if !ok {
			return core.Errorf("write csv", i, core.ErrType, "%s is not a sequence", core.KindOf(r))
		}
		record := make([]string, seq.Len())
		for j := range record {
			record[j] = core.Str(seq.At(j))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// SkipHeader drops the first row of p.
func SkipHeader(p chain.Pipeline) chain.Pipeline {
	return p.Drop(1)
}

// Records turns the rows of p into core.Record values keyed by the first
// row, which is dropped.
func Records(p chain.Pipeline) chain.Pipeline {
	first, err := p.At(0)
	if err != nil {
		if p.Err() != nil {
			return p
		}
		return p.Drop(1)
	}
	seq, ok := core.AsSequence(first)
	if !ok {
		return chain.Fail(core.Errorf("records", 0, core.ErrType, "%s is not a sequence", core.KindOf(first)))
	}
	header := make([]string, seq.Len())
	for i := range header {
		header[i] = core.Str(seq.At(i))
	}
	return p.Drop(1).ToDict(header...)
}
