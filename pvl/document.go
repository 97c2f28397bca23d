package pvl

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"pvlkit/util/copier"
	"pvlkit/util/file"
)

// DefaultTerminator is the line written after the last element of a document
const DefaultTerminator = "End"

// RootName is the name of document root object
const RootName = "Root"

// Document represents root object of a label with its serialization settings
type Document struct {
	Object
	Terminator string

	template *Document
	format   ValueFormat
	options  FormatOptions
}

// NewDocument returns new empty document
func NewDocument() *Document {
	return &Document{
		Object:     Object{Container: Container{Name: RootName}},
		Terminator: DefaultTerminator,
		format:     DefaultFormat{},
		options:    DefaultFormatOptions(),
	}
}

// Parse returns document parsed from <text>
func Parse(text string) (*Document, error) {
	return ParseWithOptions(text, ParseOptions{})
}

// ParseWithOptions returns document parsed from <text> with parser options <opts>
func ParseWithOptions(text string, opts ParseOptions) (*Document, error) {
	return parseBytes([]byte(text), "", opts)
}

// ReadFrom returns document parsed from the content of <r>. <filename> is used in errors and lookups only.
func ReadFrom(r io.Reader, filename string) (*Document, error) {
	return ReadFromWithOptions(r, filename, ParseOptions{})
}

// ReadFromWithOptions returns document parsed from the content of <r> with parser options <opts>
func ReadFromWithOptions(r io.Reader, filename string, opts ParseOptions) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, IOError{Op: "read", Path: filename, Err: err}
	}
	return parseBytes(data, filename, opts)
}

// Read returns document parsed from file at <path>
func Read(path string) (*Document, error) {
	return ReadWithOptions(path, ParseOptions{})
}

// ReadWithOptions returns document parsed from file at <path> with parser options <opts>
func ReadWithOptions(path string, opts ParseOptions) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, IOError{Op: "read", Path: path, Err: err}
	}
	return parseBytes(data, path, opts)
}

func parseBytes(data []byte, filename string, opts ParseOptions) (*Document, error) {
	doc := NewDocument()
	if err := parseDocument(doc, data, filename, opts); err != nil {
		return nil, errors.Wrap(err, "Parse label")
	}
	return doc, nil
}

// Clone returns deep copy of the document sharing the format template
func (d *Document) Clone() *Document {
	clone := &Document{
		Object:     *CloneObject(&d.Object),
		Terminator: d.Terminator,
		template:   d.template,
		format:     d.format,
		options:    d.options,
	}
	return clone
}

// CloneObject returns deep copy of <obj>
func CloneObject(obj *Object) *Object {
	clone := copier.PDeep(*obj)
	return &clone
}

// SetTerminator sets the line written after the last element. Empty string suppresses it.
func (d *Document) SetTerminator(terminator string) {
	d.Terminator = terminator
}

// SetFormatTemplate sets <tmpl> as format template. Nil removes template.
func (d *Document) SetFormatTemplate(tmpl *Document) {
	d.template = tmpl
}

// SetFormatTemplateFile reads format template from <path>
func (d *Document) SetFormatTemplateFile(path string) error {
	tmpl, err := Read(path)
	if err != nil {
		return errors.Wrap(err, "Read format template")
	}
	d.template = tmpl
	return nil
}

// FormatTemplate returns format template or nil
func (d *Document) FormatTemplate() *Document {
	return d.template
}

// SetValueFormat sets value format strategy. Nil restores DefaultFormat.
func (d *Document) SetValueFormat(format ValueFormat) {
	if format == nil {
		format = DefaultFormat{}
	}
	d.format = format
}

// ValueFormat returns value format strategy
func (d *Document) ValueFormat() ValueFormat {
	if d.format == nil {
		return DefaultFormat{}
	}
	return d.format
}

// SetFormatOptions sets layout options, zero fields take defaults
func (d *Document) SetFormatOptions(opts FormatOptions) {
	d.options = opts.withDefaults()
}

// FormatOptions returns layout options
func (d *Document) FormatOptions() FormatOptions {
	return d.options.withDefaults()
}

// WriteTo writes formatted document to <w>
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	text, err := d.Format()
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, bytes.NewBufferString(text))
	return n, errors.Wrap(err, "Write label")
}

// Write writes formatted document to file at <path>.
//
// The file is replaced atomically, on error it keeps the previous content or does not exist.
func (d *Document) Write(path string) error {
	text, err := d.Format()
	if err != nil {
		return err
	}
	if err := file.WriteAtomic(path, []byte(text)); err != nil {
		return IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Append appends formatted document to file at <path>, creating it if needed.
//
// On failed write the file is truncated back to its previous size.
func (d *Document) Append(path string) error {
	text, err := d.Format()
	if err != nil {
		return err
	}
	if err := file.Append(path, []byte(text)); err != nil {
		return IOError{Op: "append to", Path: path, Err: err}
	}
	return nil
}
