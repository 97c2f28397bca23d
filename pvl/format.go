package pvl

import (
	"strings"

	"github.com/samber/lo"

	"pvlkit/util/slice"
)

// FormatOptions represents layout settings of formatted text
type FormatOptions struct {
	Indent       int // Spaces per nesting level
	MaxLineWidth int // Arrays wrap after a comma once a line grows past this width
	NameColumn   int // Fixed width of keyword name column, 0 uses the one of value format
}

// DefaultFormatOptions returns default layout settings
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{Indent: 2, MaxLineWidth: 80}
}

func (o FormatOptions) withDefaults() FormatOptions {
	def := DefaultFormatOptions()
	if o.Indent <= 0 {
		o.Indent = def.Indent
	}
	if o.MaxLineWidth <= 0 {
		o.MaxLineWidth = def.MaxLineWidth
	}
	if o.NameColumn < 0 {
		o.NameColumn = 0
	}
	return o
}

// formatter represents text builder for one formatting call
type formatter struct {
	vf   ValueFormat
	opts FormatOptions
	sb   strings.Builder
}

// Format returns document as PVL text.
//
// If format template is set, its include directives are resolved first. Nested objects and groups having a
// counterpart in the template are written in template order before the others, and template comments are used
// for elements without own comments.
func (d *Document) Format() (string, error) {
	var tmpl *Object
	if d.template != nil {
		resolved, err := ResolveTemplate(d.template)
		if err != nil {
			return "", err
		}
		tmpl = &resolved.Object
	}
	f := &formatter{vf: d.ValueFormat(), opts: d.FormatOptions()}
	f.root(&d.Object, tmpl, d.Terminator)
	return f.sb.String(), nil
}

// FormatObject returns <obj> with its markers as PVL text written with <vf> and <opts>
func FormatObject(obj *Object, vf ValueFormat, opts FormatOptions) string {
	f := &formatter{vf: vf, opts: opts.withDefaults()}
	f.object(obj, nil, 0)
	return f.sb.String()
}

// FormatKeyword returns single line of <kw> written with <vf> and <opts>, without comments
func FormatKeyword(kw *Keyword, vf ValueFormat, opts FormatOptions) string {
	f := &formatter{vf: vf, opts: opts.withDefaults()}
	f.keyword(kw, 0, 0)
	return strings.TrimSuffix(f.sb.String(), vf.LineEnd())
}

func (f *formatter) line(level int, text string) {
	f.sb.WriteString(strings.Repeat(" ", level*f.opts.Indent))
	f.sb.WriteString(text)
	f.sb.WriteString(f.vf.LineEnd())
}

func (f *formatter) blank() {
	f.sb.WriteString(f.vf.LineEnd())
}

func (f *formatter) comments(level int, own []string, tmpl []string) {
	comments := own
	if len(comments) == 0 {
		comments = tmpl
	}
	for _, comment := range comments {
		for _, line := range commentLines(comment) {
			f.line(level, line)
		}
	}
}

// commentLines returns <comment> split into lines, each starting with a comment marker
func commentLines(comment string) []string {
	return lo.Map(strings.Split(comment, "\n"), func(line string, _ int) string {
		return commentLine(line)
	})
}

// commentLine returns <comment> as is if it starts with a comment marker or prefixed with "# " otherwise.
//
// Block comment is kept only if it ends on the same line and nothing follows its end.
func commentLine(comment string) string {
	comment = strings.TrimSpace(comment)
	switch {
	case strings.HasPrefix(comment, "#"), strings.HasPrefix(comment, "//"):
		return comment
	case strings.HasPrefix(comment, "/*") && len(comment) >= 4 && strings.Index(comment, "*/") == len(comment)-2:
		return comment
	}
	return strings.TrimSpace("# " + comment)
}

func (f *formatter) root(obj *Object, tmpl *Object, terminator string) {
	var tmplComments []string
	if tmpl != nil {
		tmplComments = tmpl.Comments
	}
	f.comments(0, obj.Comments, tmplComments)
	if (len(obj.Comments) > 0 || len(tmplComments) > 0) && !obj.IsEmpty() {
		f.blank()
	}
	f.body(obj, tmpl, 0)
	if terminator != "" {
		f.line(0, f.vf.Terminator(terminator))
	}
}

// body writes keywords, objects and groups of <obj> at <level> separated by blank lines
func (f *formatter) body(obj *Object, tmpl *Object, level int) {
	blocks := 0
	var tmplContainer *Container
	if tmpl != nil {
		tmplContainer = &tmpl.Container
	}
	if len(obj.Keywords) > 0 {
		f.keywords(&obj.Container, tmplContainer, level)
		blocks++
	}

	var tmplObjects []*Object
	var tmplGroups []*Group
	if tmpl != nil {
		tmplObjects, tmplGroups = tmpl.Objects, tmpl.Groups
	}
	for _, child := range orderByTemplate(obj.Objects, tmplObjects) {
		if blocks > 0 {
			f.blank()
		}
		counterpart, _, _ := slice.FindNamed(tmplObjects, child.Name)
		f.object(child, counterpart, level)
		blocks++
	}
	for _, child := range orderByTemplate(obj.Groups, tmplGroups) {
		if blocks > 0 {
			f.blank()
		}
		counterpart, _, _ := slice.FindNamed(tmplGroups, child.Name)
		var tmplContainer *Container
		if counterpart != nil {
			tmplContainer = &counterpart.Container
		}
		f.group(child, tmplContainer, level)
		blocks++
	}
}

func (f *formatter) object(obj *Object, tmpl *Object, level int) {
	var tmplComments []string
	if tmpl != nil {
		tmplComments = tmpl.Comments
	}
	f.comments(level, obj.Comments, tmplComments)
	f.line(level, f.vf.Begin(ObjectKind, obj.Name))
	f.body(obj, tmpl, level+1)
	f.line(level, f.vf.End(ObjectKind, obj.Name))
}

func (f *formatter) group(grp *Group, tmpl *Container, level int) {
	var tmplComments []string
	if tmpl != nil {
		tmplComments = tmpl.Comments
	}
	f.comments(level, grp.Comments, tmplComments)
	f.line(level, f.vf.Begin(GroupKind, grp.Name))
	f.keywords(&grp.Container, tmpl, level+1)
	f.line(level, f.vf.End(GroupKind, grp.Name))
}

// keywords writes keywords of <c> with names padded so that '=' signs line up
func (f *formatter) keywords(c *Container, tmpl *Container, level int) {
	width := f.vf.NameColumn()
	if f.opts.NameColumn > 0 {
		width = f.opts.NameColumn
	}
	if width == 0 {
		width = lo.Max(lo.Map(c.Keywords, func(kw *Keyword, _ int) int {
			return len(f.vf.Name(kw))
		}))
	}
	for _, kw := range c.Keywords {
		var tmplComments []string
		if tmpl != nil {
			if tmplKw, ok := tmpl.LookupKeyword(kw.Name); ok {
				tmplComments = tmplKw.Comments
			}
		}
		f.comments(level, kw.Comments, tmplComments)
		f.keyword(kw, level, width)
	}
}

// keyword writes <kw> at <level> with name padded to <width>
func (f *formatter) keyword(kw *Keyword, level, width int) {
	name := f.vf.Name(kw)
	if len(kw.Values) == 0 && kw.Style == Parens {
		f.line(level, name)
		return
	}
	prefix := name + strings.Repeat(" ", max(0, width-len(name))) + " = "
	column := level*f.opts.Indent + len(prefix)
	f.line(level, prefix+f.values(kw, column))
}

// values returns values of <kw> for a line where they start at <column>
func (f *formatter) values(kw *Keyword, column int) string {
	open, closing := "(", ")"
	if kw.Style == Braces {
		open, closing = "{", "}"
	}
	if len(kw.Values) == 0 {
		return open + closing
	}

	commonUnit := ""
	if len(kw.Values) > 1 {
		units := lo.Uniq(lo.Map(kw.Values, func(v Value, _ int) string { return v.Unit }))
		if len(units) == 1 {
			commonUnit = units[0]
		}
	}
	items := make([]string, len(kw.Values))
	for i, v := range kw.Values {
		items[i] = f.vf.Value(kw, i)
		if v.Unit != "" && commonUnit == "" {
			items[i] += " <" + f.vf.Unit(v.Unit) + ">"
		}
	}
	if len(items) == 1 && kw.Style == Parens && !isBareNestedArray(f.vf.Value(kw, 0)) {
		return items[0]
	}

	var sb strings.Builder
	sb.WriteString(open)
	width := column + 1
	for i, item := range items {
		if i > 0 {
			sb.WriteString(",")
			width++
			if width+1+len(item)+1 > f.opts.MaxLineWidth {
				sb.WriteString(f.vf.LineEnd())
				sb.WriteString(strings.Repeat(" ", column+1))
				width = column + 1
			} else {
				sb.WriteString(" ")
				width++
			}
		}
		sb.WriteString(item)
		width += len(item)
	}
	sb.WriteString(closing)
	if commonUnit != "" {
		sb.WriteString(" <" + f.vf.Unit(commonUnit) + ">")
	}
	return sb.String()
}

// orderByTemplate returns <items> having a same named entry in <tmpl> in template order, followed by the rest in
// their original order
func orderByTemplate[T, U slice.Named](items []T, tmpl []U) []T {
	if len(tmpl) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	used := make([]bool, len(items))
	for _, t := range tmpl {
		for i, item := range items {
			if !used[i] && slice.IsNameSame(item.GetName(), t.GetName()) {
				out = append(out, item)
				used[i] = true
			}
		}
	}
	for i, item := range items {
		if !used[i] {
			out = append(out, item)
		}
	}
	return out
}
