package scan

import (
	"bytes"
	"strings"
)

// Scanner represents byte slice cursor which keeps track of line numbers
type Scanner struct {
	data []byte
	Idx  int // Index of the next byte to read
	Line int // 1-based line number of the next byte to read
}

// New returns new scanner for <data>, starting from the first byte at line 1
func New(data []byte) *Scanner {
	return &Scanner{data: data, Line: 1}
}

// Done returns true if every byte of the data has been read
func (s *Scanner) Done() bool {
	return s.Idx >= len(s.data)
}

// Peek returns the next byte without advancing and false if there is nothing left to read
func (s *Scanner) Peek() (byte, bool) {
	return s.PeekAt(0)
}

// PeekAt returns byte at <offset> from the next byte without advancing and false if it is out of data
func (s *Scanner) PeekAt(offset int) (byte, bool) {
	idx := s.Idx + offset
	if idx < 0 || idx >= len(s.data) {
		return 0, false
	}
	return s.data[idx], true
}

// HasPrefix returns true if unread data starts with <prefix>
func (s *Scanner) HasPrefix(prefix string) bool {
	return bytes.HasPrefix(s.data[min(s.Idx, len(s.data)):], []byte(prefix))
}

// Next returns the next byte and advances, or false if there is nothing left to read.
//
// Line number is increased after '\n' is read.
func (s *Scanner) Next() (byte, bool) {
	char, ok := s.Peek()
	if !ok {
		return 0, false
	}
	s.Idx++
	if char == '\n' {
		s.Line++
	}
	return char, true
}

// Skip advances by <n> bytes or until the end of data
func (s *Scanner) Skip(n int) {
	for i := 0; i < n; i++ {
		if _, ok := s.Next(); !ok {
			return
		}
	}
}

// Until returns bytes read starting from the next one up to the first byte for which <stop> returns true.
//
// That byte is not consumed. Reads to the end of data if <stop> never returns true.
func (s *Scanner) Until(stop func(char byte) bool) string {
	start := s.Idx
	for {
		char, ok := s.Peek()
		if !ok || stop(char) {
			break
		}
		s.Next()
	}
	return string(s.data[start:s.Idx])
}

// RestOfLine returns the rest of the current line without the line break and advances past the line break
func (s *Scanner) RestOfLine() string {
	line := s.Until(func(char byte) bool { return char == '\n' })
	s.Next()
	return strings.TrimRight(line, "\r")
}
