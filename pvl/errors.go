package pvl

import (
	"fmt"
)

// IOError represents error thrown if label file can not be opened, read or written
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error is used to satisfy golang error interface
func (e IOError) Error() string {
	return fmt.Sprintf("Can not %v label file %v: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns underlying error
func (e IOError) Unwrap() error {
	return e.Err
}

// SyntaxError represents error thrown if label text violates PVL grammar
type SyntaxError struct {
	Filename string
	Line     int
	Reason   string
}

// Error is used to satisfy golang error interface
func (e SyntaxError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("Line %v: %v", e.Line, e.Reason)
	}
	return fmt.Sprintf("%v, line %v: %v", e.Filename, e.Line, e.Reason)
}

// Kind represents kind of label element
type Kind string

const (
	KeywordKind Kind = "Keyword"
	GroupKind   Kind = "Group"
	ObjectKind  Kind = "Object"
)

// NotFoundError represents error thrown if element with <Name> does not exist in <Container>
type NotFoundError struct {
	Kind      Kind
	Name      string
	Container string
	Filename  string
}

// Error is used to satisfy golang error interface
func (e NotFoundError) Error() string {
	msg := fmt.Sprintf("Unable to find %v [%v] in %v", e.Kind, e.Name, e.Container)
	if e.Filename != "" {
		msg += fmt.Sprintf(" in file [%v]", e.Filename)
	}
	return msg
}

// KindMismatchError represents error thrown if element with <Name> exists but is of <Found> kind instead of
// <Wanted>
type KindMismatchError struct {
	Wanted    Kind
	Found     Kind
	Name      string
	Container string
	Filename  string
}

// Error is used to satisfy golang error interface
func (e KindMismatchError) Error() string {
	msg := fmt.Sprintf("[%v] in %v is %v, not %v", e.Name, e.Container, e.Found, e.Wanted)
	if e.Filename != "" {
		msg += fmt.Sprintf(" in file [%v]", e.Filename)
	}
	return msg
}

// ArityError represents error thrown if value <Index> exceeds value count <Len> of <Keyword>
type ArityError struct {
	Keyword string
	Index   int
	Len     int
}

// Error is used to satisfy golang error interface
func (e ArityError) Error() string {
	return fmt.Sprintf("Index %v out of bounds for keyword [%v] with %v value(s)", e.Index, e.Keyword, e.Len)
}

// IndexError represents error thrown if positional access to children of <Container> is out of range
type IndexError struct {
	Kind      Kind
	Index     int
	Len       int
	Container string
	Filename  string
}

// Error is used to satisfy golang error interface
func (e IndexError) Error() string {
	msg := fmt.Sprintf("%v index %v out of range [0, %v) in %v", e.Kind, e.Index, e.Len, e.Container)
	if e.Filename != "" {
		msg += fmt.Sprintf(" in file [%v]", e.Filename)
	}
	return msg
}

// NameError represents error thrown if element name is not usable
type NameError struct {
	Name   string
	Reason string
}

// Error is used to satisfy golang error interface
func (e NameError) Error() string {
	return fmt.Sprintf("Invalid name [%v]: %v", e.Name, e.Reason)
}

// ValueTypeError represents error thrown if value <Text> can not be read as <Type>
type ValueTypeError struct {
	Text string
	Type string
}

// Error is used to satisfy golang error interface
func (e ValueTypeError) Error() string {
	return fmt.Sprintf("Value [%v] is not of type %v", e.Text, e.Type)
}
