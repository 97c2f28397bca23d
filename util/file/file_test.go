package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.lbl")

	err := WriteAtomic(path, []byte("first"))
	assert.NoError(t, err, "should not return error")
	err = WriteAtomic(path, []byte("second"))
	assert.NoError(t, err, "should not return error")

	content, err := os.ReadFile(path)
	assert.NoError(t, err, "should read written file")
	assert.Exactly(t, "second", string(content), "should replace content")

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err, "should read directory")
	assert.Len(t, entries, 1, "should not leave temporary files")

	err = WriteAtomic(filepath.Join(dir, "missing", "out.lbl"), []byte("data"))
	assert.Error(t, err, "should return error for missing directory")
	assert.NoFileExists(t, filepath.Join(dir, "missing", "out.lbl"), "should not create destination")
}

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.lbl")

	err := Append(path, []byte("a\n"))
	assert.NoError(t, err, "should create file")
	err = Append(path, []byte("b\n"))
	assert.NoError(t, err, "should append to file")

	content, err := os.ReadFile(path)
	assert.NoError(t, err, "should read file")
	assert.Exactly(t, "a\nb\n", string(content), "should append content")

	err = Append(filepath.Join(t.TempDir(), "missing", "out.lbl"), []byte("a"))
	assert.Error(t, err, "should return error for missing directory")
}
