package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	assert.Exactly(t, []string{"IsisCube", "Core"}, List("IsisCube, Core", ","), "should split and trim")
	assert.Exactly(t, []string{"IsisCube", "Core"}, List(" IsisCube,,Core ,", ","), "should drop empty items")
	assert.Exactly(t, []string{"Root"}, List("Root", ","), "should return single item")
	assert.Nil(t, List(" , ", ","), "should return nil for no items")
	assert.Nil(t, List("", ","), "should return nil for empty input")
	assert.Exactly(t, []string{"a,b"}, List(" a,b ", ""), "should return trimmed input for empty delimiter")
	assert.Nil(t, List("  ", ""), "should return nil for blank input and empty delimiter")
}

func TestLastPathItem(t *testing.T) {
	assert.Exactly(t, "Core", LastPathItem("IsisCube/Core", "/"), "should return last item")
	assert.Exactly(t, "IsisCube/", LastPathItem("IsisCube/", "/"), "should return path if last item is empty")
	assert.Exactly(t, "a.b", LastPathItem("a.b", ""), "should return path if delimiter is empty")
	assert.Exactly(t, "a", LastPathItem("a", "/"), "should return path without delimiters")
}
