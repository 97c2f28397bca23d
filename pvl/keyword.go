package pvl

import (
	"strings"

	"github.com/samber/lo"

	"pvlkit/util/slice"
)

// Style represents surface style of keyword arrays
type Style int

const (
	Parens Style = iota // ( )
	Braces              // { }
)

// Keyword represents named list of values with comments
type Keyword struct {
	Name     string
	Values   []Value
	Comments []string
	Style    Style
}

// NewKeyword returns new keyword with <name> and <values> without units
func NewKeyword(name string, values ...string) *Keyword {
	kw := &Keyword{Name: name}
	for _, text := range values {
		kw.Values = append(kw.Values, Value{Text: text})
	}
	return kw
}

// ValidateName returns NameError if <name> can not be used as keyword or container name
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NameError{Name: name, Reason: "name is empty"}
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return NameError{Name: name, Reason: "name contains whitespace"}
	}
	tokens, err := Lex([]byte(name), "")
	if err != nil || len(tokens) != 2 || tokens[0].Kind != TokWord || tokens[0].Text != name {
		return NameError{Name: name, Reason: "name is not a single word, or is a reserved word"}
	}
	return nil
}

// GetName used to satisfy slice.Named interface
func (k *Keyword) GetName() string {
	return k.Name
}

// IsNamed returns true if keyword name equals <name> ignoring case
func (k *Keyword) IsNamed(name string) bool {
	return slice.IsNameSame(k.Name, name)
}

// Len returns amount of values
func (k *Keyword) Len() int {
	return len(k.Values)
}

// IsArray returns true if keyword has more than one value
func (k *Keyword) IsArray() bool {
	return len(k.Values) > 1
}

// AddValue appends value with <text> and <unit>
func (k *Keyword) AddValue(text, unit string) *Keyword {
	k.Values = append(k.Values, Value{Text: text, Unit: unit})
	return k
}

// SetValue replaces all values with single value of <text> and <unit>
func (k *Keyword) SetValue(text, unit string) *Keyword {
	k.Values = []Value{{Text: text, Unit: unit}}
	return k
}

// Clear removes all values
func (k *Keyword) Clear() {
	k.Values = nil
}

// Value returns value at <idx> or ArityError if there is no such value
func (k *Keyword) Value(idx int) (Value, error) {
	if idx < 0 || idx >= len(k.Values) {
		return Value{}, ArityError{Keyword: k.Name, Index: idx, Len: len(k.Values)}
	}
	return k.Values[idx], nil
}

// Text returns text of value at <idx> or ArityError if there is no such value
func (k *Keyword) Text(idx int) (string, error) {
	v, err := k.Value(idx)
	return v.Text, err
}

// Unit returns unit of value at <idx> or ArityError if there is no such value
func (k *Keyword) Unit(idx int) (string, error) {
	v, err := k.Value(idx)
	return v.Unit, err
}

// Strings returns texts of all values
func (k *Keyword) Strings() []string {
	return lo.Map(k.Values, func(v Value, _ int) string {
		return v.Text
	})
}

// AddComment appends every line of <text> to comments, prefixing lines without comment marker with "# "
func (k *Keyword) AddComment(text string) *Keyword {
	k.Comments = append(k.Comments, commentLines(text)...)
	return k
}

// Sequence returns values as rows, splitting nested arrays such as (a, b) into their elements.
//
// Values which are not nested arrays become single element rows.
func (k *Keyword) Sequence() [][]string {
	return lo.Map(k.Values, func(v Value, _ int) []string {
		return splitNested(v.Text)
	})
}

// splitNested returns elements of nested array <text> or <text> itself if it is not a nested array
func splitNested(text string) []string {
	tokens, err := Lex([]byte(text), "")
	if err != nil || !isNestedArray(tokens, len(text)) {
		return []string{text}
	}
	row := []string{}
	depth := 0
	start := -1
	for _, tok := range tokens[1 : len(tokens)-2] {
		switch {
		case tok.Kind == TokOpen:
			if depth == 0 {
				start = tok.Pos
			}
			depth++
		case tok.Kind == TokClose:
			depth--
			if depth == 0 {
				row = append(row, text[start:tok.End])
			}
		case depth > 0:
		case tok.Kind == TokComma, tok.Kind == TokUnit, tok.Kind == TokComment:
		default:
			row = append(row, tok.Text)
		}
	}
	return row
}

// isNestedArray returns true if <tokens> of text with <size> form one balanced bracketed list spanning the whole
// text, the way parser reads nested arrays
func isNestedArray(tokens []Token, size int) bool {
	if len(tokens) < 3 || tokens[0].Kind != TokOpen || tokens[0].Pos != 0 {
		return false
	}
	last := tokens[len(tokens)-2]
	if last.Kind != TokClose || last.End != size {
		return false
	}
	var stack []string
	for i, tok := range tokens[:len(tokens)-1] {
		switch tok.Kind {
		case TokOpen:
			stack = append(stack, tok.Text)
		case TokClose:
			if len(stack) == 0 || matchingBracket(stack[len(stack)-1]) != tok.Text {
				return false
			}
			stack = stack[:len(stack)-1]
		case TokEquals:
			return false
		}
		if len(stack) == 0 && i != len(tokens)-2 {
			return false
		}
	}
	return len(stack) == 0
}
