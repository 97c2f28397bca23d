package label

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/zenizh/go-capturer"

	"pvlkit/pvl"
	"pvlkit/util/source"
)

func TestBatch(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	inputs := []string{
		writeFile(t, inDir, "a.lbl", cubeLabel),
		writeFile(t, inDir, "broken.lbl", "Group = G\n"),
		writeFile(t, inDir, "c.lbl", "C = 3\nEnd"),
	}
	r := newDefRepo(&bytes.Buffer{})
	r.cfg.Batch.Workers = 2

	job, err := r.Prepare(Settings{Output: outDir})
	assert.NoError(t, err, "should prepare job")
	stderr := capturer.CaptureStderr(func() {
		r.log.Out = os.Stderr
		err = r.Batch(job, inputs)
	})
	var batchErr BatchError
	assert.True(t, errors.As(err, &batchErr), "should return batch error")
	assert.Exactly(t, BatchError{Failed: []string{inputs[1]}, Total: 3}, batchErr, "should list failed inputs")
	assert.Contains(t, stderr, "Unable to process label", "should log failed input")

	for _, name := range []string{"a.lbl", "c.lbl"} {
		doc, err := pvl.Read(filepath.Join(outDir, name))
		assert.NoError(t, err, "should write %v", name)
		assert.False(t, doc.IsEmpty(), "should write content of %v", name)
	}
	assert.NoFileExists(t, filepath.Join(outDir, "broken.lbl"), "should not write failed label")

	job, err = r.Prepare(Settings{Output: outDir, JSON: true})
	assert.NoError(t, err, "should prepare job")
	err = r.Batch(job, []string{inputs[0], inputs[2]})
	assert.NoError(t, err, "should not return error")
	assert.FileExists(t, filepath.Join(outDir, "a.json"), "should write JSON named after input")
	assert.FileExists(t, filepath.Join(outDir, "c.json"), "should write JSON named after input")
}

func TestOutputPath(t *testing.T) {
	assert.Exactly(t, "out.lbl", OutputPath("in.lbl", "out.lbl", 1, false), "should keep output of single input")
	assert.Exactly(t, source.Stdio, OutputPath("in.lbl", source.Stdio, 3, false), "should keep standard output")
	assert.Exactly(t, filepath.Join("out", "in.lbl"), OutputPath(filepath.Join("dir", "in.lbl"), "out", 2, false),
		"should name result after input")
	assert.Exactly(t, filepath.Join("out", "cube.json"), OutputPath("http://host/data/cube.lbl", "out", 2, true),
		"should name JSON result after remote input")
}
