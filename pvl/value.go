package pvl

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Value represents single keyword value with optional unit.
//
// Values carry no type, Int, Float and Bool interpret the text on each call.
type Value struct {
	Text string
	Unit string
}

var nullTexts = []string{"NULL", "N/A", "UNK", "NONE", ""}

// radixRegex matches based integers like 16#FF# or -2#1010#
var radixRegex = regexp.MustCompile(`^([+-]?)(\d{1,2})#([0-9A-Za-z]+)#$`)

// NewValue returns new value with <text> and optional <unit>
func NewValue(text string, unit ...string) Value {
	v := Value{Text: text}
	if len(unit) > 0 {
		v.Unit = unit[0]
	}
	return v
}

// String returns value text followed by unit in angle brackets if any
func (v Value) String() string {
	if v.Unit == "" {
		return v.Text
	}
	return v.Text + " <" + v.Unit + ">"
}

// IsNull returns true if value text is one of the null placeholders or empty
func (v Value) IsNull() bool {
	text := strings.ToUpper(strings.TrimSpace(v.Text))
	for _, null := range nullTexts {
		if text == null {
			return true
		}
	}
	return false
}

// Int returns value as integer.
//
// Accepts decimal numbers with leading zeros and based integers in form of <base>#<digits>#.
func (v Value) Int() (int64, error) {
	text := strings.TrimSpace(v.Text)
	if m := radixRegex.FindStringSubmatch(text); m != nil {
		base, _ := strconv.Atoi(m[2])
		if base >= 2 && base <= 36 {
			if num, err := strconv.ParseInt(m[1]+m[3], base, 64); err == nil {
				return num, nil
			}
		}
		return 0, ValueTypeError{Text: v.Text, Type: "Integer"}
	}
	num, err := cast.ToInt64E(trimLeadingZeros(text))
	if err != nil {
		return 0, ValueTypeError{Text: v.Text, Type: "Integer"}
	}
	return num, nil
}

// Float returns value as real number
func (v Value) Float() (float64, error) {
	text := strings.TrimSpace(v.Text)
	if radixRegex.MatchString(text) {
		num, err := v.Int()
		return float64(num), err
	}
	num, err := cast.ToFloat64E(text)
	if err != nil || text == "" {
		return 0, ValueTypeError{Text: v.Text, Type: "Real"}
	}
	return num, nil
}

// Bool returns value as boolean.
//
// Accepts yes / no in addition to forms understood by cast.ToBoolE, case insensitive.
func (v Value) Bool() (bool, error) {
	text := strings.ToLower(strings.TrimSpace(v.Text))
	switch text {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := cast.ToBoolE(text)
	if err != nil || text == "" {
		return false, ValueTypeError{Text: v.Text, Type: "Bool"}
	}
	return b, nil
}

// IsNumeric returns true if value can be read as real number
func (v Value) IsNumeric() bool {
	_, err := v.Float()
	return err == nil
}

// trimLeadingZeros removes leading zeros of decimal integer so it is not read as octal
func trimLeadingZeros(text string) string {
	sign := ""
	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
		sign, text = text[:1], text[1:]
	}
	trimmed := strings.TrimLeft(text, "0")
	if trimmed == "" && text != "" {
		trimmed = "0"
	}
	if strings.HasPrefix(strings.ToLower(trimmed), "x") || strings.HasPrefix(strings.ToLower(trimmed), "b") ||
		strings.HasPrefix(strings.ToLower(trimmed), "o") {
		// Keep Go style prefixes such as 0x invalid for PVL
		return sign + "_" + trimmed
	}
	return sign + trimmed
}
