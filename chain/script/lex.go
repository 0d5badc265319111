package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lguimbarda/min-chain/chain/core"
)

// token is one word of a stage. Quoted words are always strings.
type token struct {
	text   string
	quoted bool
}

// value converts t to its literal: integers, floats, true, false and None
// are typed, everything else is a string.
func (t token) value() any {
	if t.quoted {
		return t.text
	}
	switch t.text {
	case "true":
		return true
	case "false":
		return false
	case "None":
		return core.Missing
	}
	if n, err := strconv.Atoi(t.text); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(t.text, 64); err == nil {
		return f
	}
	return t.text
}

// lex splits src into stages separated by unquoted '|' and each stage into
// words separated by unquoted white space.
func lex(src string) ([][]token, error) {
	var (
		stages  [][]token
		words   []token
		current strings.Builder
		inWord  bool
		quoted  bool
	)
	flush := func() {
		if inWord {
			words = append(words, token{text: current.String(), quoted: quoted})
		}
		current.Reset()
		inWord, quoted = false, false
	}

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '"' || c == '\'':
			end, text, err := quotedWord(src, i)
			if err != nil {
				return nil, err
			}
			current.WriteString(text)
			inWord, quoted = true, true
			i = end
		case c == '|':
			flush()
			stages = append(stages, words)
			words = nil
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			current.WriteByte(c)
			inWord = true
		}
	}
	flush()
	stages = append(stages, words)
	return stages, nil
}

// quotedWord reads the quoted text starting at src[start] and returns the
// index of the closing quote. Backslash escapes the quote character and
// itself inside double quotes.
func quotedWord(src string, start int) (int, string, error) {
	q := src[start]
	var sb strings.Builder
	for i := start + 1; i < len(src); i++ {
		c := src[i]
		if c == '\\' && q == '"' && i+1 < len(src) && (src[i+1] == '"' || src[i+1] == '\\') {
			sb.WriteByte(src[i+1])
			i++
			continue
		}
		if c == q {
			return i, sb.String(), nil
		}
		sb.WriteByte(c)
	}
	return 0, "", fmt.Errorf("%w: unterminated quote at offset %d", ErrSyntax, start)
}
