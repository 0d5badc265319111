// Package io loads text into pipelines and writes pipelines back out as
// text.
package io

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/lguimbarda/min-chain/chain"
	"github.com/lguimbarda/min-chain/chain/core"
)

// ReadLines returns a Pipeline with one string per line of the file at
// path. Lines are emitted without the trailing newline character. If the
// file cannot be read, the Pipeline carries the error.
func ReadLines(path string, opts ...chain.Option) chain.Pipeline {
	file, err := os.Open(path)
	if err != nil {
		return chain.Fail(err, opts...)
	}
	defer file.Close()
	return ReadLinesFrom(file, opts...)
}

// ReadLinesFrom reads lines from r. This is useful for reading from stdin
// or other readers.
func ReadLinesFrom(r io.Reader, opts ...chain.Option) chain.Pipeline {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return chain.Fail(fmt.Errorf("read lines: %w", err), opts...)
	}
	return chain.From(lines, opts...)
}

// ReadFile returns a Pipeline with a single element: the content of the
// file at path.
func ReadFile(path string, opts ...chain.Option) chain.Pipeline {
	data, err := os.ReadFile(path)
	if err != nil {
		return chain.Fail(err, opts...)
	}
	return chain.New([]any{string(data)}, opts...)
}

// WriteLines writes every element of p to the file at path, one per line.
// The file is created if it doesn't exist, or truncated if it does.
func WriteLines(path string, p chain.Pipeline) error {
	return writeLinesFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, p)
}

// AppendLines appends every element of p to the file at path.
func AppendLines(path string, p chain.Pipeline) error {
	return writeLinesFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, p)
}

func writeLinesFile(path string, flag int, p chain.Pipeline) error {
	if err := p.Err(); err != nil {
		return err
	}
	file, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return err
	}
	if err := WriteTo(file, p); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteTo writes every element of p to w, one per line. Elements are
// rendered with core.Str. A failed Pipeline writes nothing and returns its
// error.
func WriteTo(w io.Writer, p chain.Pipeline) error {
	rows, err := p.Rows()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, v := range rows {
		if _, err := bw.WriteString(core.Str(v)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
