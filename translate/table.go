package translate

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"pvlkit/pvl"
	"pvlkit/util/parse"
	"pvlkit/util/slice"
)

// Wildcard matches any input value on the input side of a translation pair and emits the input value unchanged
// on the output side
const Wildcard = "*"

// RootPosition names the document root in input and output positions
const RootPosition = "ROOT"

// Keywords allowed inside of a translation group
const (
	TranslationKey          = "Translation"
	InputKeyKey             = "InputKey"
	InputGroupKey           = "InputGroup"
	InputPositionKey        = "InputPosition"
	InputDefaultKey         = "InputDefault"
	InputKeyDependenciesKey = "InputKeyDependencies"
	OutputNameKey           = "OutputName"
	OutputPositionKey       = "OutputPosition"
	AutoKey                 = "Auto"
	OptionalKey             = "Optional"
	DebugKey                = "Debug"
)

var allowedKeys = []string{TranslationKey, InputKeyKey, InputGroupKey, InputPositionKey, InputDefaultKey,
	InputKeyDependenciesKey, OutputNameKey, OutputPositionKey, AutoKey, OptionalKey, DebugKey}

// TranslationError represents failure to translate a value or to load a translation group
type TranslationError struct {
	Name   string
	Input  string
	Reason string
}

// Error is used to satisfy golang error interface
func (e TranslationError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("Unable to translate [%v]: %v", e.Name, e.Reason)
	}
	return fmt.Sprintf("Unable to translate value [%v] of [%v]: %v", e.Input, e.Name, e.Reason)
}

// Table represents merged translation tables. Every top level group describes one output keyword.
type Table struct {
	doc *pvl.Document
}

// NewTable returns new table merged from translation table files at <paths>
func NewTable(paths ...string) (*Table, error) {
	t := &Table{doc: pvl.NewDocument()}
	for _, path := range paths {
		if err := t.AddTable(path); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NewTableFrom returns new table read from <r>. <name> is used in errors only.
func NewTableFrom(r io.Reader, name string) (*Table, error) {
	t := &Table{doc: pvl.NewDocument()}
	if err := t.AddTableFrom(r, name); err != nil {
		return nil, err
	}
	return t, nil
}

// AddTable merges translation table file at <path> into the table
func (t *Table) AddTable(path string) error {
	doc, err := pvl.Read(path)
	if err != nil {
		return errors.Wrap(err, "Read translation table")
	}
	return errors.Wrapf(t.merge(doc), "Load translation table %v", path)
}

// AddTableFrom merges translation table read from <r> into the table
func (t *Table) AddTableFrom(r io.Reader, name string) error {
	doc, err := pvl.ReadFrom(r, name)
	if err != nil {
		return errors.Wrap(err, "Read translation table")
	}
	return errors.Wrapf(t.merge(doc), "Load translation table %v", name)
}

// merge validates every group of <doc> and adds groups with new names to the table.
//
// Groups already present in the table are kept.
func (t *Table) merge(doc *pvl.Document) error {
	for _, grp := range doc.Groups {
		if err := validateGroup(grp); err != nil {
			return err
		}
	}
	t.doc.Groups = slice.AppendNewNamed(t.doc.Groups, doc.Groups...)
	return nil
}

// validateGroup returns error if <grp> contains unknown keywords or malformed translation pairs
func validateGroup(grp *pvl.Group) error {
	for _, kw := range grp.Keywords {
		if !lo.ContainsBy(allowedKeys, func(key string) bool { return kw.IsNamed(key) }) {
			return TranslationError{Name: grp.Name, Reason: fmt.Sprintf("Unknown keyword [%v] in translation group",
				kw.Name)}
		}
		if kw.IsNamed(TranslationKey) && kw.Len() != 2 {
			return TranslationError{Name: grp.Name, Reason: fmt.Sprintf(
				"Translation must be a pair of output and input values, got %v values", kw.Len())}
		}
	}
	return nil
}

// Names returns names of every translation group in table order
func (t *Table) Names() []string {
	return lo.Map(t.doc.Groups, func(grp *pvl.Group, _ int) string {
		return grp.Name
	})
}

// group returns translation group named <name>
func (t *Table) group(name string) (*pvl.Group, error) {
	grp, found := t.doc.LookupGroup(name, pvl.None)
	if !found {
		return nil, TranslationError{Name: name, Reason: "No such translation group"}
	}
	return grp, nil
}

// first returns the first value of keyword <key> in translation group <name>
func (t *Table) first(name, key string) (string, bool) {
	grp, err := t.group(name)
	if err != nil {
		return "", false
	}
	kw, found := grp.LookupKeyword(key)
	if !found || kw.Len() == 0 {
		return "", false
	}
	return kw.Values[0].Text, true
}

// flag returns true if translation group <name> contains keyword <key>
func (t *Table) flag(name, key string) bool {
	grp, err := t.group(name)
	return err == nil && grp.HasKeyword(key)
}

// InputGroups returns container paths to search input keyword of <name> in, in table order.
//
// InputGroup values are comma separated paths, InputPosition values are arrays of container names.
func (t *Table) InputGroups(name string) [][]string {
	grp, err := t.group(name)
	if err != nil {
		return nil
	}
	var out [][]string
	for _, kw := range grp.Keywords {
		switch {
		case kw.IsNamed(InputGroupKey):
			for _, text := range kw.Strings() {
				out = append(out, parse.List(text, ","))
			}
		case kw.IsNamed(InputPositionKey):
			out = append(out, kw.Strings())
		}
	}
	return out
}

// InputKey returns name of the input keyword of <name>
func (t *Table) InputKey(name string) (string, error) {
	if _, err := t.group(name); err != nil {
		return "", err
	}
	key, found := t.first(name, InputKeyKey)
	if !found {
		return "", TranslationError{Name: name, Reason: "Translation group has no InputKey"}
	}
	return key, nil
}

// InputDefault returns value used for <name> if the input keyword is absent
func (t *Table) InputDefault(name string) (string, bool) {
	return t.first(name, InputDefaultKey)
}

// InputKeyDependencies returns "keyword@value" conditions an input container must meet for <name>
func (t *Table) InputKeyDependencies(name string) []string {
	grp, err := t.group(name)
	if err != nil {
		return nil
	}
	var out []string
	for _, kw := range grp.Keywords {
		if kw.IsNamed(InputKeyDependenciesKey) {
			out = append(out, kw.Strings()...)
		}
	}
	return out
}

// OutputName returns name of the output keyword of <name>. Defaults to <name>.
func (t *Table) OutputName(name string) string {
	out, found := t.first(name, OutputNameKey)
	return lo.Ternary(found, out, name)
}

// OutputPosition returns container kind and name pairs where output keyword of <name> is written
func (t *Table) OutputPosition(name string) []string {
	grp, err := t.group(name)
	if err != nil {
		return nil
	}
	kw, found := grp.LookupKeyword(OutputPositionKey)
	if !found {
		return nil
	}
	return kw.Strings()
}

// IsAuto returns true if <name> is translated by Manager.Auto
func (t *Table) IsAuto(name string) bool {
	return t.flag(name, AutoKey)
}

// IsOptional returns true if failed translation of <name> is skipped by Manager.Auto
func (t *Table) IsOptional(name string) bool {
	return t.flag(name, OptionalKey)
}

// IsDebug returns true if translation steps of <name> should be logged
func (t *Table) IsDebug(name string) bool {
	return t.flag(name, DebugKey)
}

// TranslateValue returns output value for <input> according to translation pairs of <name>.
//
// Pairs are scanned top to bottom twice: first for an input side equal to <input>, then for a wildcard input side.
// Wildcard output side emits <input> unchanged.
func (t *Table) TranslateValue(name, input string) (string, error) {
	grp, err := t.group(name)
	if err != nil {
		return "", err
	}
	pairs := lo.Filter(grp.Keywords, func(kw *pvl.Keyword, _ int) bool {
		return kw.IsNamed(TranslationKey) && kw.Len() == 2
	})
	input = strings.TrimSpace(input)
	for _, wildcard := range []bool{false, true} {
		for _, pair := range pairs {
			out, in := strings.TrimSpace(pair.Values[0].Text), strings.TrimSpace(pair.Values[1].Text)
			matched := lo.Ternary(wildcard, in == Wildcard, in != Wildcard && in == input)
			if matched {
				return lo.Ternary(out == Wildcard, input, out), nil
			}
		}
	}
	return "", TranslationError{Name: name, Input: input, Reason: "No matching translation"}
}
