// Package script evaluates textual chains such as
//
//	select_pos 0 | to_int | sum
//
// against a Pipeline. Stages are separated by '|' and each stage is an
// operation name followed by its arguments.
package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lguimbarda/min-chain/chain"
)

// ErrSyntax is returned for scripts that cannot be parsed.
var ErrSyntax = errors.New("syntax error")

// Program is a parsed script. It can be run any number of times.
type Program struct {
	src      string
	stages   []chain.Stage
	names    []string
	terminal *call
}

type call struct {
	name string
	run  func(chain.Pipeline) (any, error)
}

// Parse compiles src. An empty script is valid and returns its input.
func Parse(src string) (*Program, error) {
	stages, err := lex(src)
	if err != nil {
		return nil, err
	}
	prog := &Program{src: src}
	if len(stages) == 1 && len(stages[0]) == 0 {
		return prog, nil
	}

	for i, words := range stages {
		if len(words) == 0 {
			return nil, fmt.Errorf("%w: stage %d is empty", ErrSyntax, i+1)
		}
		name, args := words[0].text, words[1:]
		if prog.terminal != nil {
			return nil, fmt.Errorf("%w: %s must be the last stage", ErrSyntax, prog.terminal.name)
		}

		if t, ok := terminals[name]; ok {
			if err := t.arity.check(name, args); err != nil {
				return nil, err
			}
			run, err := t.build(args)
			if err != nil {
				return nil, err
			}
			prog.terminal = &call{name: name, run: run}
			continue
		}
		op, ok := operations[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown operation %q in stage %d", ErrSyntax, name, i+1)
		}
		if err := op.arity.check(name, args); err != nil {
			return nil, err
		}
		stage, err := op.build(args)
		if err != nil {
			return nil, err
		}
		prog.stages = append(prog.stages, stage)
		prog.names = append(prog.names, name)
	}
	return prog, nil
}

// MustParse is like Parse but panics if src cannot be parsed.
func MustParse(src string) *Program {
	prog, err := Parse(src)
	if err != nil {
		panic("MustParse: " + err.Error())
	}
	return prog
}

// Stage returns the non-terminal part of the program as one stage.
func (prog *Program) Stage() chain.Stage {
	return chain.Through(prog.stages...)
}

// Terminal reports the name of the terminal operation, if the program ends
// with one.
func (prog *Program) Terminal() (string, bool) {
	if prog.terminal == nil {
		return "", false
	}
	return prog.terminal.name, true
}

// Run applies the program to in. Without a terminal the result is the
// resulting chain.Pipeline; otherwise it is the terminal's value.
func (prog *Program) Run(in chain.Pipeline) (any, error) {
	out := chain.Apply(in, prog.stages...)
	if err := out.Err(); err != nil {
		return nil, err
	}
	if prog.terminal == nil {
		return out, nil
	}
	return prog.terminal.run(out)
}

// String returns the operation names of the program joined by " | ".
func (prog *Program) String() string {
	names := prog.names
	if prog.terminal != nil {
		names = append(names[:len(names):len(names)], prog.terminal.name)
	}
	return strings.Join(names, " | ")
}

// Eval parses src and runs it against in.
func Eval(src string, in chain.Pipeline) (any, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return prog.Run(in)
}
