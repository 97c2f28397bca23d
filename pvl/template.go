package pvl

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"pvlkit/util/slice"
)

// IncludeKeyword is the name of template keyword whose values are paths of files merged into the template in its
// place. Relative paths are resolved against the directory of the template file.
const IncludeKeyword = "PvlTemplate:File"

// resolver represents include expansion state of one ResolveTemplate call
type resolver struct {
	cache map[string]*Document
}

// ResolveTemplate returns copy of <tmpl> with include directives replaced by top level keywords, groups and objects
// of included files. Entries with a name already present are discarded.
//
// Includes are expanded recursively, include cycles are reported as error.
func ResolveTemplate(tmpl *Document) (*Document, error) {
	r := resolver{cache: map[string]*Document{}}
	out := tmpl.Clone()
	var stack []string
	if tmpl.Filename != "" {
		stack = append(stack, absPath(tmpl.Filename))
	}
	if err := r.object(&out.Object, baseDir(tmpl.Filename), stack); err != nil {
		return nil, errors.Wrap(err, "Resolve format template")
	}
	return out, nil
}

// object expands includes of <obj> and every nested container
func (r resolver) object(obj *Object, dir string, stack []string) error {
	includes, err := r.keywords(&obj.Container, dir, stack)
	if err != nil {
		return err
	}
	for _, inc := range includes {
		obj.Groups = slice.AppendNewNamed(obj.Groups, inc.Groups...)
		obj.Objects = slice.AppendNewNamed(obj.Objects, inc.Objects...)
	}
	for _, grp := range obj.Groups {
		if _, err := r.keywords(&grp.Container, dir, stack); err != nil {
			return err
		}
	}
	for _, child := range obj.Objects {
		if err := r.object(child, dir, stack); err != nil {
			return err
		}
	}
	return nil
}

// keywords replaces include directives of <c> with keywords of included files and returns the included documents
func (r resolver) keywords(c *Container, dir string, stack []string) ([]*Document, error) {
	var includes []*Document
	var keywords []*Keyword
	for _, kw := range c.Keywords {
		if !kw.IsNamed(IncludeKeyword) {
			keywords = slice.AppendNewNamed(keywords, kw)
			continue
		}
		for _, path := range kw.Strings() {
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}
			inc, err := r.load(path, stack)
			if err != nil {
				return nil, err
			}
			keywords = slice.AppendNewNamed(keywords, inc.Keywords...)
			includes = append(includes, inc)
		}
	}
	c.Keywords = keywords
	return includes, nil
}

// load returns resolved document of include file at <path>
func (r resolver) load(path string, stack []string) (*Document, error) {
	path = absPath(path)
	for _, visited := range stack {
		if visited == path {
			return nil, errors.Newf("Template include cycle: %v", strings.Join(append(stack, path), " -> "))
		}
	}
	if doc, ok := r.cache[path]; ok {
		return doc, nil
	}
	doc, err := Read(path)
	if err != nil {
		return nil, errors.Wrap(err, "Read template include")
	}
	if err := r.object(&doc.Object, filepath.Dir(path), append(stack[:len(stack):len(stack)], path)); err != nil {
		return nil, err
	}
	r.cache[path] = doc
	return doc, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func baseDir(filename string) string {
	if filename == "" {
		return "."
	}
	return filepath.Dir(filename)
}
