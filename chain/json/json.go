// Package json loads JSON documents into pipelines and encodes pipelines as
// JSON.
//
// Objects decode to core.Record values that keep the key order of the
// document, arrays to core.List, integral numbers to int, other numbers to
// float64 and null to core.Missing.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lguimbarda/min-chain/chain"
	"github.com/lguimbarda/min-chain/chain/core"
)

// ErrSyntax reports a document that is not valid JSON.
var ErrSyntax = errors.New("invalid json")

// Decode reads r. A top-level array yields one element per item; any other
// input is read as a sequence of JSON values (JSON Lines), one element each.
func Decode(r io.Reader, opts ...chain.Option) chain.Pipeline {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return chain.New(nil, opts...)
	}
	if err != nil {
		return chain.Fail(fmt.Errorf("%w: %v", ErrSyntax, err), opts...)
	}

	var rows []any
	if d, ok := tok.(json.Delim); ok && d == '[' {
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return chain.Fail(err, opts...)
			}
			rows = append(rows, v)
		}
		if _, err := dec.Token(); err != nil {
			return chain.Fail(fmt.Errorf("%w: %v", ErrSyntax, err), opts...)
		}
		return chain.New(rows, opts...)
	}

	first, err := fromToken(dec, tok)
	if err != nil {
		return chain.Fail(err, opts...)
	}
	rows = append(rows, first)
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return chain.Fail(err, opts...)
		}
		rows = append(rows, v)
	}
	return chain.New(rows, opts...)
}

// ReadFile decodes the JSON file at path. See Decode.
func ReadFile(path string, opts ...chain.Option) chain.Pipeline {
	file, err := os.Open(path)
	if err != nil {
		return chain.Fail(err, opts...)
	}
	defer file.Close()
	return Decode(file, opts...)
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return fromToken(dec, tok)
}

func fromToken(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			list := core.List{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			_, err := dec.Token()
			return list, err
		case '{':
			var keys []string
			var vals []any
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				keys = append(keys, kt.(string))
				vals = append(vals, v)
			}
			_, err := dec.Token()
			return core.NewRecord(keys, vals), err
		}
		return nil, fmt.Errorf("%w: unexpected %v", ErrSyntax, t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		return f, nil
	case nil:
		return core.Missing, nil
	}
	return tok, nil
}

// Encode writes every element of p to w as one JSON value per line.
func Encode(w io.Writer, p chain.Pipeline) error {
	rows, err := p.Rows()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for i, v := range rows {
		if err := enc.Encode(v); err != nil {
			return &core.OpError{Op: "encode json", Index: i, Err: err}
		}
	}
	return nil
}

// EncodeArray writes the elements of p to w as a single JSON array.
func EncodeArray(w io.Writer, p chain.Pipeline) error {
	rows, err := p.Rows()
	if err != nil {
		return err
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return &core.OpError{Op: "encode json", Index: -1, Err: err}
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
