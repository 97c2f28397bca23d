package pvl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, path, content string) {
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err, "should write %v", path)
}

func TestResolveTemplate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "common.tpl"), "Common = 1\nSamples = 9\nGroup = Extra\nEnd_Group\n"+
		"Group = B\nDropped = 1\nEnd_Group\nEnd")
	writeFile(t, filepath.Join(dir, "main.tpl"), "Samples = 0\nPvlTemplate:File = common.tpl\nGroup = B\nEnd_Group\nEnd")

	tmpl, err := Read(filepath.Join(dir, "main.tpl"))
	assert.NoError(t, err, "should read template")
	resolved, err := ResolveTemplate(tmpl)
	assert.NoError(t, err, "should resolve template")

	assert.Exactly(t, []string{"Samples", "Common"}, resolved.KeywordNames(),
		"should replace include with new keywords of included file")
	grpNames := []string{}
	for _, grp := range resolved.Groups {
		grpNames = append(grpNames, grp.Name)
	}
	assert.Exactly(t, []string{"B", "Extra"}, grpNames, "should add new groups of included file")
	assert.Empty(t, resolved.Groups[0].Keywords, "should keep own group over included one")
	assert.True(t, tmpl.HasKeyword(IncludeKeyword), "should not modify the source template")
}

func TestFormatWithTemplateFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "groups.tpl"), "Group = Second\nEnd_Group\nGroup = First\nEnd_Group\nEnd")
	writeFile(t, filepath.Join(dir, "main.tpl"), "PvlTemplate:File = groups.tpl\nEnd")

	doc, err := Parse("Group = First\nA = 1\nEnd_Group\nGroup = Other\nEnd_Group\nGroup = Second\nB = 2\nEnd_Group")
	assert.NoError(t, err, "should parse label")
	err = doc.SetFormatTemplateFile(filepath.Join(dir, "main.tpl"))
	assert.NoError(t, err, "should read template")

	text, err := doc.Format()
	assert.NoError(t, err, "should format label")
	second := strings.Index(text, "Group = Second")
	first := strings.Index(text, "Group = First")
	other := strings.Index(text, "Group = Other")
	assert.True(t, second < first && first < other, "should order groups by included template: %v", text)

	err = doc.SetFormatTemplateFile(filepath.Join(dir, "missing.tpl"))
	assert.Error(t, err, "should return error for missing template")
}

func TestResolveTemplateCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tpl"), "PvlTemplate:File = b.tpl\nEnd")
	writeFile(t, filepath.Join(dir, "b.tpl"), "Object = O\nPvlTemplate:File = a.tpl\nEnd_Object\nEnd")

	doc := NewDocument()
	err := doc.SetFormatTemplateFile(filepath.Join(dir, "a.tpl"))
	assert.NoError(t, err, "should read template")

	_, err = doc.Format()
	assert.ErrorContains(t, err, "cycle", "should report include cycle")

	writeFile(t, filepath.Join(dir, "c.tpl"), "PvlTemplate:File = missing.tpl\nEnd")
	err = doc.SetFormatTemplateFile(filepath.Join(dir, "c.tpl"))
	assert.NoError(t, err, "should read template")
	_, err = doc.Format()
	assert.ErrorIs(t, err, os.ErrNotExist, "should report missing include")
}
