package pvl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ValueFormat represents strategy which decides how names, values and markers look in formatted text
type ValueFormat interface {
	// Name returns keyword name as written
	Name(kw *Keyword) string
	// Value returns value of <kw> at <idx> as written, including quotes
	Value(kw *Keyword, idx int) string
	// Unit returns unit text without angle brackets
	Unit(unit string) string
	// Begin returns opening line of group or object with <name>
	Begin(kind Kind, name string) string
	// End returns closing line of group or object with <name>
	End(kind Kind, name string) string
	// Terminator returns document terminator line
	Terminator(terminator string) string
	LineEnd() string
	// NameColumn returns fixed width of keyword name column or 0 to align names within each container
	NameColumn() int
}

// ValueType represents type of keyword values used by typed output
type ValueType string

const (
	TypeString  ValueType = "String"
	TypeInteger ValueType = "Integer"
	TypeReal    ValueType = "Real"
	TypeEnum    ValueType = "Enum"
	TypeBool    ValueType = "Bool"
	TypeHex     ValueType = "Hex"
	TypeOctal   ValueType = "Octal"
	TypeBinary  ValueType = "Binary"
)

var valueTypes = []ValueType{TypeString, TypeInteger, TypeReal, TypeEnum, TypeBool, TypeHex, TypeOctal, TypeBinary}

// KeywordType represents output type of a keyword. Negative Decimals keeps real numbers as they are.
type KeywordType struct {
	Type     ValueType
	Decimals int
}

// TypeMap represents output types of keywords by upper case name
type TypeMap map[string]KeywordType

// Lookup returns type of keyword with <name> ignoring case
func (m TypeMap) Lookup(name string) (KeywordType, bool) {
	if m == nil {
		return KeywordType{}, false
	}
	kt, ok := m[strings.ToUpper(name)]
	return kt, ok
}

// NewTypeMap returns type map built from top level keywords of <doc> in form of "Name = Type" or
// "Name = (Real, decimals)".
func NewTypeMap(doc *Document) (TypeMap, error) {
	m := TypeMap{}
	for _, kw := range doc.Keywords {
		text, err := kw.Text(0)
		if err != nil {
			return nil, errors.Wrapf(err, "Read type of keyword %v", kw.Name)
		}
		kt := KeywordType{Decimals: -1}
		for _, vt := range valueTypes {
			if strings.EqualFold(string(vt), text) {
				kt.Type = vt
			}
		}
		if kt.Type == "" {
			return nil, errors.Newf("Unknown type [%v] of keyword [%v]", text, kw.Name)
		}
		if kw.Len() > 1 {
			dec, err := kw.Values[1].Int()
			if err != nil {
				return nil, errors.Wrapf(err, "Read decimals of keyword %v", kw.Name)
			}
			kt.Decimals = int(dec)
		}
		m[strings.ToUpper(kw.Name)] = kt
	}
	return m, nil
}

// ReadTypeMap returns type map read from file at <path>, see NewTypeMap
func ReadTypeMap(path string) (TypeMap, error) {
	doc, err := Read(path)
	if err != nil {
		return nil, errors.Wrap(err, "Read type map")
	}
	return NewTypeMap(doc)
}

// DefaultFormat writes values as they are, quoting only the ones which would not be read back as a single value.
//
// Keywords listed in Types are written as their type requires.
type DefaultFormat struct {
	Types TypeMap
}

// Name used to satisfy ValueFormat interface
func (f DefaultFormat) Name(kw *Keyword) string {
	return kw.Name
}

// Value used to satisfy ValueFormat interface
func (f DefaultFormat) Value(kw *Keyword, idx int) string {
	v := kw.Values[idx]
	if kt, ok := f.Types.Lookup(kw.Name); ok && !v.IsNull() {
		return formatTyped(kt, v, false)
	}
	return QuoteIfNeeded(v.Text)
}

// Unit used to satisfy ValueFormat interface
func (f DefaultFormat) Unit(unit string) string {
	return unit
}

// Begin used to satisfy ValueFormat interface
func (f DefaultFormat) Begin(kind Kind, name string) string {
	return string(kind) + " = " + QuoteIfNeeded(name)
}

// End used to satisfy ValueFormat interface
func (f DefaultFormat) End(kind Kind, name string) string {
	return "End_" + string(kind)
}

// Terminator used to satisfy ValueFormat interface
func (f DefaultFormat) Terminator(terminator string) string {
	return terminator
}

// LineEnd used to satisfy ValueFormat interface
func (f DefaultFormat) LineEnd() string {
	return "\n"
}

// NameColumn used to satisfy ValueFormat interface
func (f DefaultFormat) NameColumn() int {
	return 0
}

// DefaultPDSNameColumn is the width of keyword name column in PDS labels
const DefaultPDSNameColumn = 30

// PDSFormat writes labels for PDS interchange: upper case names, markers and units, CRLF line ends, fixed name
// column and every string value quoted.
//
// Keywords listed in Types are written as their type requires.
type PDSFormat struct {
	Types  TypeMap
	Column int
}

// Name used to satisfy ValueFormat interface
func (f PDSFormat) Name(kw *Keyword) string {
	return strings.ToUpper(kw.Name)
}

// Value used to satisfy ValueFormat interface
func (f PDSFormat) Value(kw *Keyword, idx int) string {
	v := kw.Values[idx]
	if v.IsNull() && v.Text != "" {
		return "'" + strings.ToUpper(strings.TrimSpace(v.Text)) + "'"
	}
	if kt, ok := f.Types.Lookup(kw.Name); ok {
		return formatTyped(kt, v, true)
	}
	if v.IsNumeric() || isBareNestedArray(v.Text) {
		return v.Text
	}
	return Quote(v.Text)
}

// Unit used to satisfy ValueFormat interface
func (f PDSFormat) Unit(unit string) string {
	return strings.ToUpper(unit)
}

// Begin used to satisfy ValueFormat interface
func (f PDSFormat) Begin(kind Kind, name string) string {
	return strings.ToUpper(string(kind)) + " = " + QuoteIfNeeded(strings.ToUpper(name))
}

// End used to satisfy ValueFormat interface
func (f PDSFormat) End(kind Kind, name string) string {
	return "END_" + strings.ToUpper(string(kind)) + " = " + QuoteIfNeeded(strings.ToUpper(name))
}

// Terminator used to satisfy ValueFormat interface
func (f PDSFormat) Terminator(terminator string) string {
	return strings.ToUpper(terminator)
}

// LineEnd used to satisfy ValueFormat interface
func (f PDSFormat) LineEnd() string {
	return "\r\n"
}

// NameColumn used to satisfy ValueFormat interface
func (f PDSFormat) NameColumn() int {
	if f.Column <= 0 {
		return DefaultPDSNameColumn
	}
	return f.Column
}

// formatTyped returns <v> written as <kt> requires, upper cased for strict dialect if <upper> is true.
//
// Values which can not be read as the type are written quoted.
func formatTyped(kt KeywordType, v Value, upper bool) string {
	switch kt.Type {
	case TypeInteger:
		if num, err := v.Int(); err == nil {
			return strconv.FormatInt(num, 10)
		}
	case TypeReal:
		if num, err := v.Float(); err == nil {
			if kt.Decimals >= 0 {
				return strconv.FormatFloat(num, 'f', kt.Decimals, 64)
			}
			text := strings.TrimSpace(v.Text)
			if !strings.ContainsAny(text, ".eE#") {
				text += ".0"
			}
			return text
		}
	case TypeHex, TypeOctal, TypeBinary:
		if num, err := v.Int(); err == nil {
			return formatBased(kt.Type, num)
		}
	case TypeBool:
		if b, err := v.Bool(); err == nil {
			text := strconv.FormatBool(b)
			if upper {
				text = strings.ToUpper(text)
			}
			return text
		}
	case TypeEnum:
		text := v.Text
		if upper {
			text = strings.ToUpper(text)
		}
		return QuoteIfNeeded(text)
	}
	return Quote(v.Text)
}

func formatBased(vt ValueType, num int64) string {
	sign := ""
	if num < 0 {
		sign, num = "-", -num
	}
	switch vt {
	case TypeHex:
		return fmt.Sprintf("%v16#%X#", sign, num)
	case TypeOctal:
		return fmt.Sprintf("%v8#%o#", sign, num)
	default:
		return fmt.Sprintf("%v2#%b#", sign, num)
	}
}

// QuoteIfNeeded returns <text> as is if it is read back as one bare value, quoted otherwise
func QuoteIfNeeded(text string) string {
	if isBareWord(text) || isBareNestedArray(text) {
		return text
	}
	return Quote(text)
}

// Quote returns <text> in double quotes, or in single quotes if it contains double quote
func Quote(text string) string {
	if strings.Contains(text, `"`) {
		return "'" + text + "'"
	}
	return `"` + text + `"`
}

func isBareWord(text string) bool {
	tokens, err := Lex([]byte(text), "")
	return err == nil && len(tokens) == 2 && tokens[0].Kind == TokWord && tokens[0].Text == text
}

func isBareNestedArray(text string) bool {
	tokens, err := Lex([]byte(text), "")
	return err == nil && isNestedArray(tokens, len(text))
}
