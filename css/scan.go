package css

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gorilla/css/scanner"
)

// ErrEmptyValue is returned when parsing an empty property value.
var ErrEmptyValue = errors.New("empty property value")

type termKind uint8

const (
	identTerm termKind = iota
	numberTerm
	percentTerm
	dimensionTerm
	hashTerm
	stringTerm
	funcTerm
)

// term is a component of a property value: a keyword, a number with an
// optional unit, a color hash, a string or a function with its arguments.
type term struct {
	kind termKind
	text string  // keyword, unit, hash digits, string content or function name
	num  float64 // value of numeric terms
	args []term  // function arguments
}

func (t term) isIdent(names ...string) bool {
	if t.kind != identTerm {
		return false
	}
	for _, n := range names {
		if strings.EqualFold(t.text, n) {
			return true
		}
	}
	return len(names) == 0
}

func (t term) String() string {
	switch t.kind {
	case numberTerm:
		return strconv.FormatFloat(t.num, 'g', -1, 64)
	case percentTerm:
		return strconv.FormatFloat(t.num, 'g', -1, 64) + "%"
	case dimensionTerm:
		return strconv.FormatFloat(t.num, 'g', -1, 64) + t.text
	case hashTerm:
		return "#" + t.text
	case stringTerm:
		return strconv.Quote(t.text)
	case funcTerm:
		args := make([]string, len(t.args))
		for i, a := range t.args {
			args[i] = a.String()
		}
		return t.text + "(" + strings.Join(args, ",") + ")"
	}
	return t.text
}

// valueScanner wraps the CSS scanner, skipping comments.
type valueScanner struct {
	s *scanner.Scanner
}

func (vs *valueScanner) next() *scanner.Token {
	for {
		t := vs.s.Next()
		if t.Type != scanner.TokenComment {
			return t
		}
	}
}

// parseValue splits a property value into comma separated groups of space
// separated terms.
func parseValue(value string) ([][]term, error) {
	if strings.TrimSpace(value) == "" {
		return nil, ErrEmptyValue
	}
	vs := &valueScanner{s: scanner.New(value)}
	groups, closed, err := vs.parseGroups(false)
	if err != nil {
		return nil, err
	}
	if closed {
		return nil, fmt.Errorf("unbalanced ')' in %q", value)
	}
	return groups, nil
}

// parseGroups reads terms until EOF or, within a function, a closing
// parenthesis.
func (vs *valueScanner) parseGroups(inFunc bool) ([][]term, bool, error) {
	var groups [][]term
	var current []term
	sign := 1.0
	for {
		t := vs.next()
		switch t.Type {
		case scanner.TokenEOF:
			if inFunc {
				return nil, false, errors.New("missing ')'")
			}
			return append(groups, current), false, nil
		case scanner.TokenError:
			return nil, false, fmt.Errorf("syntax error: %s", t.Value)
		case scanner.TokenS:
			continue
		case scanner.TokenChar:
			switch t.Value {
			case ",":
				groups = append(groups, current)
				current = nil
			case ")":
				if !inFunc {
					return nil, true, nil
				}
				return append(groups, current), true, nil
			case "-":
				sign = -1
				continue
			case "+":
				continue
			case "/":
				if !inFunc {
					return nil, false, errors.New("unexpected '/'")
				}
			default:
				return nil, false, fmt.Errorf("unexpected character %q", t.Value)
			}
		case scanner.TokenIdent:
			current = append(current, term{kind: identTerm, text: t.Value})
		case scanner.TokenHash:
			current = append(current, term{kind: hashTerm, text: t.Value[1:]})
		case scanner.TokenString:
			current = append(current, term{kind: stringTerm, text: unquote(t.Value)})
		case scanner.TokenNumber:
			n, err := strconv.ParseFloat(t.Value, 64)
			if err != nil {
				return nil, false, err
			}
			current = append(current, term{kind: numberTerm, num: sign * n})
		case scanner.TokenPercentage:
			n, err := strconv.ParseFloat(strings.TrimSuffix(t.Value, "%"), 64)
			if err != nil {
				return nil, false, err
			}
			current = append(current, term{kind: percentTerm, num: sign * n})
		case scanner.TokenDimension:
			d, err := splitDimension(t.Value)
			if err != nil {
				return nil, false, err
			}
			d.num *= sign
			current = append(current, d)
		case scanner.TokenFunction:
			name := strings.ToLower(strings.TrimSuffix(t.Value, "("))
			args, _, err := vs.parseGroups(true)
			if err != nil {
				return nil, false, fmt.Errorf("%s(): %w", name, err)
			}
			f := term{kind: funcTerm, text: name}
			for _, g := range args {
				f.args = append(f.args, g...)
			}
			current = append(current, f)
		default:
			return nil, false, fmt.Errorf("unexpected token %s", t)
		}
		sign = 1
	}
}

func splitDimension(s string) (term, error) {
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	n, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return term{}, err
	}
	return term{kind: dimensionTerm, num: n, text: strings.ToLower(s[i:])}, nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

// singleGroup parses a value which must not contain top-level commas.
func singleGroup(value string) ([]term, error) {
	groups, err := parseValue(value)
	if err != nil {
		return nil, err
	}
	if len(groups) != 1 || len(groups[0]) == 0 {
		return nil, fmt.Errorf("expected a single value, have %q", value)
	}
	return groups[0], nil
}

// singleTerm parses a value consisting of exactly one term.
func singleTerm(value string) (term, error) {
	terms, err := singleGroup(value)
	if err != nil {
		return term{}, err
	}
	if len(terms) != 1 {
		return term{}, fmt.Errorf("expected a single term, have %q", value)
	}
	return terms[0], nil
}

// Fields splits a value into its top-level space separated components,
// keeping functions intact. Commas are not allowed.
func Fields(value string) ([]string, error) {
	terms, err := singleGroup(value)
	if err != nil {
		return nil, err
	}
	fields := make([]string, len(terms))
	for i, t := range terms {
		fields[i] = t.String()
	}
	return fields, nil
}
