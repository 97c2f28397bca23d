package copier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type node struct {
	Name     string
	Values   []string
	Children []*node
}

func TestPDeep(t *testing.T) {
	inp := node{Name: "Root", Values: []string{"1"}, Children: []*node{{Name: "Child", Values: []string{"2"}}}}

	out := PDeep(inp)
	assert.Exactly(t, inp, out, "should return equal copy")

	inp.Values[0] = "10"
	inp.Children[0].Values[0] = "20"
	assert.Exactly(t, "1", out.Values[0], "changes to original value should not modify the copy")
	assert.Exactly(t, "2", out.Children[0].Values[0], "changes to nested original value should not modify the copy")
	assert.NotSame(t, inp.Children[0], out.Children[0], "should copy nested pointers")
}

func TestTDeep(t *testing.T) {
	inp := []*node{{Name: "A"}, {Name: "B"}}
	out := TDeep(t, inp)
	assert.Exactly(t, inp, out, "should return equal copy")

	inp[0].Name = "C"
	assert.Exactly(t, "A", out[0].Name, "changes to original value should not modify the copy")
}
