// Package yaml loads YAML documents into pipelines and encodes pipelines as
// YAML. Mappings become core.Record values in document order and sequences
// become core.List.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lguimbarda/min-chain/chain"
	"github.com/lguimbarda/min-chain/chain/core"
)

// Decode reads every document of r. A stream made of one sequence yields
// one element per item; otherwise every document is one element.
func Decode(r io.Reader, opts ...chain.Option) chain.Pipeline {
	dec := yaml.NewDecoder(r)
	var docs []*yaml.Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return chain.Fail(fmt.Errorf("decode yaml: %w", err), opts...)
		}
		docs = append(docs, &doc)
	}

	if len(docs) == 1 {
		root := unwrap(docs[0])
		if root.Kind == yaml.SequenceNode {
			docs = root.Content
		}
	}
	rows := make([]any, len(docs))
	for i, n := range docs {
		v, err := fromNode(n)
		if err != nil {
			return chain.Fail(&core.OpError{Op: "decode yaml", Index: i, Err: err}, opts...)
		}
		rows[i] = v
	}
	return chain.New(rows, opts...)
}

// ReadFile decodes the YAML file at path. See Decode.
func ReadFile(path string, opts ...chain.Option) chain.Pipeline {
	file, err := os.Open(path)
	if err != nil {
		return chain.Fail(err, opts...)
	}
	defer file.Close()
	return Decode(file, opts...)
}

func unwrap(n *yaml.Node) *yaml.Node {
	for {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) == 1:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
}

func fromNode(n *yaml.Node) (any, error) {
	n = unwrap(n)
	switch n.Kind {
	case yaml.SequenceNode:
		list := make(core.List, len(n.Content))
		for i, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil
	case yaml.MappingNode:
		keys := make([]string, 0, len(n.Content)/2)
		vals := make([]any, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			keys = append(keys, unwrap(n.Content[i]).Value)
			vals = append(vals, v)
		}
		return core.NewRecord(keys, vals), nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		if v == nil {
			return core.Missing, nil
		}
		return v, nil
	case yaml.DocumentNode:
		return core.Missing, nil
	}
	return nil, fmt.Errorf("unsupported yaml node kind %d", n.Kind)
}

// Encode writes the elements of p to w as one YAML sequence document.
func Encode(w io.Writer, p chain.Pipeline) error {
	rows, err := p.Rows()
	if err != nil {
		return err
	}
	doc, err := toNode(core.List(rows))
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func toNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case nil, core.MissingValue:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case core.Record:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			vn, err := toNode(val)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, vn)
		}
		return n, nil
	case string:
		n := &yaml.Node{}
		err := n.Encode(x)
		return n, err
	case fmt.Stringer:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x.String()}, nil
	}
	if seq, ok := core.AsSequence(v); ok {
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := 0; i < seq.Len(); i++ {
			c, err := toNode(seq.At(i))
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}
