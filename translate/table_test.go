package translate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

const instrumentTable = `Group = InstrumentId
  Auto
  InputKey       = InstrumentId
  InputGroup     = "IsisCube,Instrument"
  InputPosition  = (IsisCube, Archive)
  OutputName     = InstrumentName
  OutputPosition = (Object, IsisCube, Group, Instrument)
  Translation    = (HiRISE, HIRISE)
  Translation    = (*, *)
End_Group

Group = Level
  Auto
  Optional
  InputKey     = ProcessingLevel
  InputDefault = 0
  Translation  = (HIGH, *)
  Translation  = (LOW, 0)
End_Group
End`

func newTable(t *testing.T, text string) *Table {
	table, err := NewTableFrom(strings.NewReader(text), "test.trn")
	assert.NoError(t, err, "should load translation table")
	return table
}

func TestNewTable(t *testing.T) {
	table := newTable(t, instrumentTable)

	assert.Exactly(t, []string{"InstrumentId", "Level"}, table.Names(), "should list groups in table order")
	key, err := table.InputKey("instrumentid")
	assert.NoError(t, err, "should find group ignoring case")
	assert.Exactly(t, "InstrumentId", key, "should return input key")
	assert.Exactly(t, [][]string{{"IsisCube", "Instrument"}, {"IsisCube", "Archive"}}, table.InputGroups("InstrumentId"),
		"should return input paths in table order")
	assert.Exactly(t, "InstrumentName", table.OutputName("InstrumentId"), "should return output name")
	assert.Exactly(t, "Level", table.OutputName("Level"), "should default output name to group name")
	assert.Exactly(t, []string{"Object", "IsisCube", "Group", "Instrument"}, table.OutputPosition("InstrumentId"),
		"should return output position")
	assert.Nil(t, table.OutputPosition("Level"), "should return no output position")

	def, found := table.InputDefault("Level")
	assert.True(t, found, "should find input default")
	assert.Exactly(t, "0", def, "should return input default")
	_, found = table.InputDefault("InstrumentId")
	assert.False(t, found, "should not find input default")

	assert.True(t, table.IsAuto("Level"), "should be auto")
	assert.True(t, table.IsOptional("Level"), "should be optional")
	assert.False(t, table.IsOptional("InstrumentId"), "should not be optional")
	assert.False(t, table.IsDebug("InstrumentId"), "should not be debug")

	_, err = table.InputKey("Missing")
	var trErr TranslationError
	assert.True(t, errors.As(err, &trErr), "should return translation error for unknown group")
	assert.Exactly(t, "Missing", trErr.Name, "should report group name")
}

func TestTableMerge(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.trn")
	second := filepath.Join(dir, "second.trn")
	err := os.WriteFile(first, []byte("Group = A\nInputKey = One\nEnd_Group\nEnd"), 0644)
	assert.NoError(t, err, "should write table")
	err = os.WriteFile(second, []byte("Group = a\nInputKey = Two\nEnd_Group\nGroup = B\nInputKey = Three\nEnd_Group\nEnd"),
		0644)
	assert.NoError(t, err, "should write table")

	table, err := NewTable(first, second)
	assert.NoError(t, err, "should load translation tables")
	assert.Exactly(t, []string{"A", "B"}, table.Names(), "should add only groups with new names")
	key, err := table.InputKey("A")
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, "One", key, "should keep the first group")

	_, err = NewTable(filepath.Join(dir, "missing.trn"))
	assert.ErrorIs(t, err, os.ErrNotExist, "should return error for missing table")
}

func TestTableValidation(t *testing.T) {
	_, err := NewTableFrom(strings.NewReader("Group = A\nInputKey = X\nBogus = 1\nEnd_Group"), "bad.trn")
	var trErr TranslationError
	assert.True(t, errors.As(err, &trErr), "should reject unknown keyword")
	assert.Contains(t, err.Error(), "Bogus", "should mention unknown keyword")
	assert.Contains(t, err.Error(), "bad.trn", "should mention table name")

	_, err = NewTableFrom(strings.NewReader("Group = A\nTranslation = (1, 2, 3)\nEnd_Group"), "bad.trn")
	assert.True(t, errors.As(err, &trErr), "should reject translation which is not a pair")

	_, err = NewTableFrom(strings.NewReader("Group = A\nInputKey = X\n"), "bad.trn")
	assert.Error(t, err, "should return parse error")

	table := newTable(t, "Group = A\nEnd_Group")
	_, err = table.InputKey("A")
	assert.True(t, errors.As(err, &trErr), "should return error for group without input key")
}

func TestTranslateValue(t *testing.T) {
	table := newTable(t, instrumentTable)

	out, err := table.TranslateValue("Level", "0")
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, "LOW", out, "should prefer literal match over earlier wildcard")

	out, err = table.TranslateValue("Level", "2")
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, "HIGH", out, "should emit output literal for wildcard input")

	out, err = table.TranslateValue("InstrumentId", "HIRISE")
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, "HiRISE", out, "should emit output of literal match")

	out, err = table.TranslateValue("InstrumentId", " CTX ")
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, "CTX", out, "should emit trimmed input for wildcard output")

	table = newTable(t, "Group = A\nInputKey = X\nTranslation = (*, Yes)\nTranslation = (Off, No)\nEnd_Group")
	out, err = table.TranslateValue("A", "Yes")
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, "Yes", out, "should emit input for wildcard output of literal match")

	_, err = table.TranslateValue("A", "yes")
	var trErr TranslationError
	assert.True(t, errors.As(err, &trErr), "should compare values exactly")
	assert.Exactly(t, TranslationError{Name: "A", Input: "yes", Reason: "No matching translation"}, trErr,
		"should report group and input")
}
