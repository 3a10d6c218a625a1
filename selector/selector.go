package selector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
)

// stateAttr is the mirror attribute carrying dynamic pseudo-classes.
const stateAttr = "data-state"

// ErrEmptySelector is returned when compiling an empty selector text.
var ErrEmptySelector = errors.New("empty selector")

// Specificity is the CSS specificity (a,b,c) collapsed to a single integer
// which orders lexicographically. Each component saturates at 1023.
type Specificity uint32

// Collapse converts a cascadia specificity into a Specificity.
func Collapse(s cascadia.Specificity) Specificity {
	c := func(n int) uint32 {
		if n > 1023 {
			return 1023
		}
		return uint32(n)
	}
	return Specificity(c(s[0])<<20 | c(s[1])<<10 | c(s[2]))
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s>>20, (s>>10)&1023, s&1023)
}

// Selector is a compiled selector list.
type Selector struct {
	text        string
	group       cascadia.SelectorGroup
	structural  bool
	specificity Specificity
}

// Compile parses a selector list. Dynamic pseudo-classes are supported in
// addition to everything cascadia understands. Pseudo-elements are not
// supported and result in an error.
func Compile(text string) (*Selector, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptySelector
	}
	group, err := cascadia.ParseGroup(rewriteDynamic(text))
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", text, err)
	}
	sel := &Selector{
		text:       text,
		group:      group,
		structural: isStructural(text),
	}
	for _, s := range group {
		if sp := Collapse(s.Specificity()); sp > sel.specificity {
			sel.specificity = sp
		}
	}
	return sel, nil
}

// MustCompile is like Compile, but panics on error.
func MustCompile(text string) *Selector {
	sel, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return sel
}

// String returns the selector text as given to Compile.
func (sel *Selector) String() string {
	return sel.text
}

// Specificity returns the highest specificity among the selectors of the
// list.
func (sel *Selector) Specificity() Specificity {
	return sel.specificity
}

// IsStructural is true if matching depends on the position of an entity
// among its siblings or on its children. Matches of structural selectors
// cannot be shared between siblings.
func (sel *Selector) IsStructural() bool {
	return sel.structural
}

// --- Text scanning ---------------------------------------------------------

// selectorScanner calls pseudo for every pseudo-class outside of attribute
// brackets and strings, and comb for every sibling combinator. All other
// text is passed to copyText.
type selectorScanner struct {
	pseudo   func(name string, hasArgs bool) string
	comb     func(c byte)
	copyText func(s string)
}

func (sc selectorScanner) scan(text string) {
	brackets := 0
	var quote byte
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(text) {
				sc.copyText(text[i : i+2])
				i += 2
				continue
			}
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			brackets++
		case c == ']':
			brackets--
		case brackets > 0:
		case c == ':' && i+1 < len(text) && text[i+1] == ':': // pseudo-element
			sc.copyText("::")
			i += 2
			continue
		case c == ':':
			j := i + 1
			for j < len(text) && isNameChar(text[j]) {
				j++
			}
			if j == i+1 {
				break
			}
			name := strings.ToLower(text[i+1 : j])
			hasArgs := j < len(text) && text[j] == '('
			sc.copyText(sc.pseudo(name, hasArgs))
			i = j
			continue
		case c == '+' || c == '~':
			if sc.comb != nil && (c != '~' || i+1 >= len(text) || text[i+1] != '=') {
				sc.comb(c)
			}
		}
		sc.copyText(text[i : i+1])
		i++
	}
}

func isNameChar(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' ||
		c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// rewriteDynamic replaces dynamic pseudo-classes by tests for the
// data-state attribute of the mirror tree.
func rewriteDynamic(text string) string {
	var b strings.Builder
	selectorScanner{
		pseudo: func(name string, hasArgs bool) string {
			if !hasArgs && isDynamic(name) {
				return fmt.Sprintf("[%s~=%q]", stateAttr, name)
			}
			return ":" + name
		},
		copyText: func(s string) { b.WriteString(s) },
	}.scan(text)
	return b.String()
}

var structuralPrefixes = []string{"nth-", "first-", "last-", "only-"}

func isStructural(text string) bool {
	structural := false
	selectorScanner{
		pseudo: func(name string, hasArgs bool) string {
			for _, p := range structuralPrefixes {
				if strings.HasPrefix(name, p) {
					structural = true
				}
			}
			switch name {
			case "empty", "has", "haschild":
				structural = true
			}
			return ""
		},
		comb:     func(byte) { structural = true },
		copyText: func(string) {},
	}.scan(text)
	return structural
}
