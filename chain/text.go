package chain

import (
	"strings"
	"unicode/utf8"

	"github.com/lguimbarda/min-chain/chain/core"
	"github.com/lguimbarda/min-chain/chain/row"
)

// Regex replaces every string with the list of its non-overlapping matches
// of pattern. A pattern without groups yields the matched text; one group
// yields the group text; several groups yield a core.Tuple per match.
func (p Pipeline) Regex(pattern string) Pipeline {
	return p.regex("regex", pattern, false)
}

// Regexf is Regex with the per-element match lists concatenated.
func (p Pipeline) Regexf(pattern string) Pipeline {
	return p.regex("regexf", pattern, true)
}

func (p Pipeline) regex(op, pattern string, flat bool) Pipeline {
	return p.transform(op, func(rows []any) ([]any, error) {
		re, err := compile(op, pattern)
		if err != nil {
			return nil, err
		}
		groups := re.NumSubexp()
		found, err := eachRow(op, func(i int, v any) (any, error) {
			s, err := str(op, i, v)
			if err != nil {
				return nil, err
			}
			matches := re.FindAllStringSubmatch(s, -1)
			out := make(core.List, len(matches))
			for j, m := range matches {
				switch groups {
				case 0:
					out[j] = m[0]
				case 1:
					out[j] = m[1]
				default:
					t := make(core.Tuple, groups)
					for g := range t {
						t[g] = m[g+1]
					}
					out[j] = t
				}
			}
			return out, nil
		})(rows)
		if err != nil || !flat {
			return found, err
		}
		return row.Flatten(found)
	})
}

// Strip removes leading and trailing characters from every string. With
// no argument it removes whitespace; otherwise every character of chars.
func (p Pipeline) Strip(chars ...string) Pipeline {
	cut := strings.Join(chars, "")
	return p.mapString("strip", func(s string) (any, error) {
		if len(chars) == 0 {
			return strings.TrimSpace(s), nil
		}
		return strings.Trim(s, cut), nil
	})
}

// Split breaks every string into a core.List of fields. With no argument it
// splits around runs of whitespace; otherwise around sep, which must not be
// empty.
func (p Pipeline) Split(sep ...string) Pipeline {
	const op = "split"
	by := strings.Join(sep, "")
	if len(sep) > 0 && by == "" {
		return p.transform(op, func([]any) ([]any, error) {
			return nil, core.Errorf(op, -1, core.ErrPattern, "empty separator")
		})
	}
	return p.mapString(op, func(s string) (any, error) {
		var parts []string
		if len(sep) == 0 {
			parts = strings.Fields(s)
		} else {
			parts = strings.Split(s, by)
		}
		out := make(core.List, len(parts))
		for i, part := range parts {
			out[i] = part
		}
		return out, nil
	})
}

// SplitLines breaks every string at line boundaries: \n, \r\n, \r, \v, \f,
// the separators \x1c to \x1e, NEL (U+0085) and U+2028/U+2029. A trailing
// line break does not produce an empty last line.
func (p Pipeline) SplitLines() Pipeline {
	return p.mapString("splitlines", func(s string) (any, error) {
		return splitLines(s), nil
	})
}

func splitLines(s string) core.List {
	out := core.List{}
	for len(s) > 0 {
		i := strings.IndexFunc(s, isLineBreak)
		if i < 0 {
			out = append(out, s)
			break
		}
		out = append(out, s[:i])
		_, width := utf8.DecodeRuneInString(s[i:])
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			width++
		}
		s = s[i+width:]
	}
	return out
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// Join renders every element with core.Str and joins them with sep.
func (p Pipeline) Join(sep string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	parts := make([]string, len(p.rows))
	for i, v := range p.rows {
		parts[i] = core.Str(v)
	}
	return strings.Join(parts, sep), nil
}

func (p Pipeline) mapString(op string, fn func(string) (any, error)) Pipeline {
	return p.transform(op, eachRow(op, func(i int, v any) (any, error) {
		s, err := str(op, i, v)
		if err != nil {
			return nil, err
		}
		return fn(s)
	}))
}
