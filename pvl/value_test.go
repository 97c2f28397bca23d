package pvl

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestValueInt(t *testing.T) {
	cases := map[string]int64{"10": 10, "0010": 10, "-7": -7, "+3": 3, "0": 0, "16#FF#": 255, "-2#101#": -5,
		"8#17#": 15}
	for text, expected := range cases {
		num, err := Value{Text: text}.Int()
		assert.NoError(t, err, "should read %v as integer", text)
		assert.Exactly(t, expected, num, "should read %v as this integer", text)
	}

	for _, text := range []string{"abc", "", "1.5", "0x1F", "16#GG#"} {
		_, err := Value{Text: text}.Int()
		var typeErr ValueTypeError
		assert.True(t, errors.As(err, &typeErr), "should not read %q as integer", text)
	}
}

func TestValueFloat(t *testing.T) {
	num, err := Value{Text: "1.5e3"}.Float()
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, 1500.0, num, "should read exponent form")

	num, err = Value{Text: " -0.25 "}.Float()
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, -0.25, num, "should ignore surrounding spaces")

	num, err = Value{Text: "16#10#"}.Float()
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, 16.0, num, "should read based integer")

	_, err = Value{Text: "N/A"}.Float()
	var typeErr ValueTypeError
	assert.True(t, errors.As(err, &typeErr), "should return type error")
	assert.Exactly(t, "Real", typeErr.Type, "should report requested type")
}

func TestValueBool(t *testing.T) {
	cases := map[string]bool{"YES": true, "no": false, "True": true, "FALSE": false, "1": true, "0": false}
	for text, expected := range cases {
		b, err := Value{Text: text}.Bool()
		assert.NoError(t, err, "should read %v as boolean", text)
		assert.Exactly(t, expected, b, "should read %v as this boolean", text)
	}

	_, err := Value{Text: "maybe"}.Bool()
	var typeErr ValueTypeError
	assert.True(t, errors.As(err, &typeErr), "should return type error")
}

func TestValueIsNull(t *testing.T) {
	for _, text := range []string{"NULL", "n/a", "Unk", "none", "", " "} {
		assert.True(t, Value{Text: text}.IsNull(), "should treat %q as null", text)
	}
	for _, text := range []string{"0", "Nothing", "NA"} {
		assert.False(t, Value{Text: text}.IsNull(), "should not treat %q as null", text)
	}
}

func TestValueString(t *testing.T) {
	assert.Exactly(t, "5 <km>", NewValue("5", "km").String(), "should append unit")
	assert.Exactly(t, "5", NewValue("5").String(), "should return text without unit")
}
