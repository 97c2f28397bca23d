package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	assert.Exactly(t, &Scanner{data: []byte{'a'}, Line: 1}, New([]byte{'a'}), "should initialize scanner")
}

func TestNext(t *testing.T) {
	sc := New([]byte("a\nb"))

	char, ok := sc.Next()
	assert.True(t, ok, "should read byte")
	assert.Exactly(t, byte('a'), char, "should read this byte")
	assert.Exactly(t, 1, sc.Line, "should stay at the first line")

	sc.Next()
	assert.Exactly(t, 2, sc.Line, "should advance line after line break")

	char, ok = sc.Next()
	assert.True(t, ok, "should read byte")
	assert.Exactly(t, byte('b'), char, "should read this byte")
	assert.True(t, sc.Done(), "should read everything")

	_, ok = sc.Next()
	assert.False(t, ok, "should not read past the end")
	assert.Exactly(t, 3, sc.Idx, "index should stay at the end")
}

func TestPeek(t *testing.T) {
	sc := New([]byte("ab"))

	char, ok := sc.Peek()
	assert.True(t, ok, "should peek byte")
	assert.Exactly(t, byte('a'), char, "should peek this byte")
	assert.Exactly(t, 0, sc.Idx, "should not advance")

	char, ok = sc.PeekAt(1)
	assert.True(t, ok, "should peek byte")
	assert.Exactly(t, byte('b'), char, "should peek this byte")

	_, ok = sc.PeekAt(2)
	assert.False(t, ok, "should not peek past the end")
	_, ok = sc.PeekAt(-1)
	assert.False(t, ok, "should not peek before the start")
}

func TestHasPrefix(t *testing.T) {
	sc := New([]byte("/* comment */"))
	assert.True(t, sc.HasPrefix("/*"), "should have this prefix")
	assert.False(t, sc.HasPrefix("//"), "should not have this prefix")

	sc.Skip(100)
	assert.True(t, sc.Done(), "should skip to the end")
	assert.False(t, sc.HasPrefix("/"), "should not have prefix at the end")
	assert.True(t, sc.HasPrefix(""), "should have empty prefix at the end")
}

func TestUntil(t *testing.T) {
	sc := New([]byte("Samples = 5"))
	word := sc.Until(func(char byte) bool { return char == ' ' })
	assert.Exactly(t, "Samples", word, "should read up to the space")
	assert.Exactly(t, 7, sc.Idx, "should stop at the space")

	rest := sc.Until(func(char byte) bool { return false })
	assert.Exactly(t, " = 5", rest, "should read to the end")
}

func TestRestOfLine(t *testing.T) {
	sc := New([]byte("line 1\r\nline 2\nline 3"))
	assert.Exactly(t, "line 1", sc.RestOfLine(), "should trim line break")
	assert.Exactly(t, 2, sc.Line, "should advance line")
	assert.Exactly(t, "line 2", sc.RestOfLine(), "should trim line break")
	assert.Exactly(t, "line 3", sc.RestOfLine(), "should read the last line")
	assert.True(t, sc.Done(), "should read everything")
}
