package pvl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/SCP002/jsonexraw"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slices"
)

func TestWriteRead(t *testing.T) {
	doc, err := Parse(richLabel)
	assert.NoError(t, err, "should parse label")
	path := filepath.Join(t.TempDir(), "cube.lbl")

	err = doc.Write(path)
	assert.NoError(t, err, "should write label")

	read, err := Read(path)
	assert.NoError(t, err, "should read label")
	assert.True(t, Equal(doc, read), "should read back the same tree: %v", Diff(doc, read))
	assert.Exactly(t, path, read.Filename, "should remember file name")
	grp, err := read.FindGroup("Instrument", Traverse)
	assert.NoError(t, err, "should find group")
	assert.Exactly(t, path, grp.Filename, "should remember file name in nested containers")

	f, err := os.Open(path)
	assert.NoError(t, err, "should open label")
	defer f.Close()
	fromReader, err := ReadFrom(f, "reader.lbl")
	assert.NoError(t, err, "should read label from reader")
	assert.True(t, Equal(doc, fromReader), "should read the same tree from reader")
}

func TestWriteErrors(t *testing.T) {
	doc := NewDocument()
	path := filepath.Join(t.TempDir(), "missing", "out.lbl")

	err := doc.Write(path)
	var ioErr IOError
	assert.True(t, errors.As(err, &ioErr), "should return IO error")
	assert.Exactly(t, path, ioErr.Path, "should report path")
	assert.NoFileExists(t, path, "should not create file")

	err = doc.Append(path)
	assert.True(t, errors.As(err, &ioErr), "should return IO error on append")

	_, err = Read(path)
	assert.True(t, errors.As(err, &ioErr), "should return IO error on read")
	assert.ErrorIs(t, err, os.ErrNotExist, "should keep the cause")

	broken := filepath.Join(t.TempDir(), "broken.lbl")
	err = os.WriteFile(broken, []byte("Group = G\nA = 1\n"), 0644)
	assert.NoError(t, err, "should write file")
	_, err = Read(broken)
	var syntaxErr SyntaxError
	assert.True(t, errors.As(err, &syntaxErr), "should return syntax error")
	assert.Exactly(t, broken, syntaxErr.Filename, "should report file name")
}

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.lbl")
	doc, err := Parse("A = 1")
	assert.NoError(t, err, "should parse label")

	err = doc.Append(path)
	assert.NoError(t, err, "should create file")
	err = doc.Append(path)
	assert.NoError(t, err, "should append to file")

	content, err := os.ReadFile(path)
	assert.NoError(t, err, "should read file")
	assert.Exactly(t, "A = 1\nEnd\nA = 1\nEnd\n", string(content), "should append formatted label")
}

func TestWriteTo(t *testing.T) {
	doc, err := Parse("A = 1")
	assert.NoError(t, err, "should parse label")

	var sb strings.Builder
	n, err := doc.WriteTo(&sb)
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, int64(len("A = 1\nEnd\n")), n, "should return written size")
	assert.Exactly(t, "A = 1\nEnd\n", sb.String(), "should write formatted label")
}

func TestClone(t *testing.T) {
	doc, err := Parse(richLabel)
	assert.NoError(t, err, "should parse label")
	doc.SetTerminator("Stop")

	clone := doc.Clone()
	assert.True(t, Equal(doc, clone), "should copy the tree: %v", Diff(doc, clone))
	assert.Exactly(t, "Stop", clone.Terminator, "should copy terminator")

	kw, err := clone.FindKeywordIn("Samples", Traverse)
	assert.NoError(t, err, "should find keyword in clone")
	kw.SetValue("1", "")
	grp, err := clone.FindGroup("Instrument", Traverse)
	assert.NoError(t, err, "should find group in clone")
	err = grp.DeleteKeyword("Filters")
	assert.NoError(t, err, "should delete keyword in clone")

	orig, err := doc.FindKeywordIn("Samples", Traverse)
	assert.NoError(t, err, "should find keyword in original")
	assert.Exactly(t, []string{"1024"}, orig.Strings(), "should not share keywords")
	assert.True(t, doc.HasKeywordIn("Filters", Traverse), "should not share groups")
}

func TestToJSON(t *testing.T) {
	doc, err := Parse("A = 1\nB = (x, y)\nC = 5 <m>\nFlag\nGroup = G\nD = 2\nEnd_Group\nGroup = G\nD = 3\nEnd_Group\n" +
		"Object = O\nE = 4\nEnd_Object")
	assert.NoError(t, err, "should parse label")

	out, err := ToJSON(&doc.Object)
	assert.NoError(t, err, "should encode label")

	var decoded map[string]any
	err = json.Unmarshal(out, &decoded)
	assert.NoError(t, err, "should produce valid JSON")
	assert.Exactly(t, "1", decoded["A"], "should encode single value as string")
	assert.Exactly(t, []any{"x", "y"}, decoded["B"], "should encode array")
	assert.Exactly(t, map[string]any{"value": "5", "unit": "m"}, decoded["C"], "should encode unit")
	assert.Nil(t, decoded["Flag"], "should encode keyword without values as null")
	assert.Len(t, decoded["G"], 2, "should collect repeated groups")
	assert.Exactly(t, map[string]any{"E": "4"}, decoded["O"], "should encode object")

	doc, err = Parse("Zeta = 1\nAlpha = 5 <km>\nGroup = Middle\nEnd_Group\nObject = Beta\nEnd_Object")
	assert.NoError(t, err, "should parse label")
	out, err = ToJSON(&doc.Object)
	assert.NoError(t, err, "should encode label")
	text := string(out)
	order := lo.Map([]string{`"Zeta"`, `"Alpha"`, `"value"`, `"unit"`, `"Middle"`, `"Beta"`},
		func(key string, _ int) int { return strings.Index(text, key) })
	assert.NotContains(t, order, -1, "should encode every member")
	assert.True(t, slices.IsSorted(order), "should keep label order: %v", text)
}
