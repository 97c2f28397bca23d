package pvl

import (
	"github.com/samber/lo"

	"pvlkit/util/slice"
)

// InsertMode represents the way AddKeyword treats keywords with the same name
type InsertMode int

const (
	Append  InsertMode = iota // Add to the end even if keyword with the same name exists
	Replace                   // Replace the first keyword with the same name or add to the end
)

// Container represents named ordered list of keywords with comments.
//
// Keyword names are not unique, lookups return the first match.
type Container struct {
	Name     string
	Filename string
	Comments []string
	Keywords []*Keyword
}

// Group represents container which holds only keywords
type Group struct {
	Container
}

// NewGroup returns new empty group with <name>
func NewGroup(name string) *Group {
	return &Group{Container{Name: name}}
}

// GetName used to satisfy slice.Named interface
func (c *Container) GetName() string {
	return c.Name
}

// IsNamed returns true if container name equals <name> ignoring case
func (c *Container) IsNamed(name string) bool {
	return slice.IsNameSame(c.Name, name)
}

// AddComment appends every line of <text> to comments, prefixing lines without comment marker with "# "
func (c *Container) AddComment(text string) {
	c.Comments = append(c.Comments, commentLines(text)...)
}

// LookupKeyword returns the first keyword with <name> ignoring case and true, or nil and false if not found
func (c *Container) LookupKeyword(name string) (*Keyword, bool) {
	kw, _, ok := slice.FindNamed(c.Keywords, name)
	return kw, ok
}

// HasKeyword returns true if container has keyword with <name>
func (c *Container) HasKeyword(name string) bool {
	return slice.HasNamed(c.Keywords, name)
}

// FindKeyword returns the first keyword with <name> ignoring case or NotFoundError
func (c *Container) FindKeyword(name string) (*Keyword, error) {
	if kw, ok := c.LookupKeyword(name); ok {
		return kw, nil
	}
	return nil, c.notFound(KeywordKind, name)
}

// KeywordAt returns keyword at <idx> or IndexError
func (c *Container) KeywordAt(idx int) (*Keyword, error) {
	if idx < 0 || idx >= len(c.Keywords) {
		return nil, c.outOfRange(KeywordKind, idx, len(c.Keywords))
	}
	return c.Keywords[idx], nil
}

// AddKeyword adds <kw> to the container according to <mode>.
//
// Returns NameError if keyword name is not valid.
func (c *Container) AddKeyword(kw *Keyword, mode InsertMode) error {
	if err := ValidateName(kw.Name); err != nil {
		return err
	}
	if mode == Replace {
		if _, idx, ok := slice.FindNamed(c.Keywords, kw.Name); ok {
			c.Keywords[idx] = kw
			return nil
		}
	}
	c.Keywords = append(c.Keywords, kw)
	return nil
}

// Set replaces values of the first keyword with <name> by <values>, adding new keyword if there is no such keyword.
//
// Returns the keyword.
func (c *Container) Set(name string, values ...string) (*Keyword, error) {
	if kw, ok := c.LookupKeyword(name); ok {
		kw.Values = NewKeyword(name, values...).Values
		return kw, nil
	}
	kw := NewKeyword(name, values...)
	return kw, c.AddKeyword(kw, Append)
}

// InsertKeyword inserts <kw> before keyword at <idx>. <idx> equal to amount of keywords appends it.
func (c *Container) InsertKeyword(idx int, kw *Keyword) error {
	if idx < 0 || idx > len(c.Keywords) {
		return c.outOfRange(KeywordKind, idx, len(c.Keywords))
	}
	if err := ValidateName(kw.Name); err != nil {
		return err
	}
	c.Keywords = slice.InsertAt(c.Keywords, idx, kw)
	return nil
}

// DeleteKeyword removes the first keyword with <name> or returns NotFoundError
func (c *Container) DeleteKeyword(name string) error {
	_, idx, ok := slice.FindNamed(c.Keywords, name)
	if !ok {
		return c.notFound(KeywordKind, name)
	}
	c.Keywords = slice.RemoveAt(c.Keywords, idx)
	return nil
}

// DeleteKeywordAt removes keyword at <idx> or returns IndexError
func (c *Container) DeleteKeywordAt(idx int) error {
	if idx < 0 || idx >= len(c.Keywords) {
		return c.outOfRange(KeywordKind, idx, len(c.Keywords))
	}
	c.Keywords = slice.RemoveAt(c.Keywords, idx)
	return nil
}

// KeywordNames returns names of all keywords in order
func (c *Container) KeywordNames() []string {
	return lo.Map(c.Keywords, func(kw *Keyword, _ int) string {
		return kw.Name
	})
}

func (c *Container) notFound(kind Kind, name string) NotFoundError {
	return NotFoundError{Kind: kind, Name: name, Container: c.Name, Filename: c.Filename}
}

func (c *Container) outOfRange(kind Kind, idx, length int) IndexError {
	return IndexError{Kind: kind, Index: idx, Len: length, Container: c.Name, Filename: c.Filename}
}
