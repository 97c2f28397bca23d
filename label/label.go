package label

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"pvlkit/cfg"
	"pvlkit/pvl"
	"pvlkit/translate"
	"pvlkit/util/file"
	"pvlkit/util/source"
)

// Settings represents what to do with every input label
type Settings struct {
	Output   string   // File, directory for several inputs or source.Stdio
	Template string   // Format template path, empty for none
	Tables   []string // Translation table paths, empty to keep labels as read
	Get      string   // Name of keyword to print instead of writing labels
	List     bool     // Print every keyword instead of writing labels
	JSON     bool
	Append   bool
	Strict   bool // Write in PDS dialect regardless of config
}

// Job represents settings with resources shared by every input label
type Job struct {
	Settings
	template *pvl.Document
	table    *translate.Table
	format   pvl.ValueFormat
}

// Read returns document read from <path>, which can be a local file, URL or source.Stdio
func (r repo) Read(path string) (*pvl.Document, error) {
	r.log.DebugFi("Reading label", "path", path)

	rc, err := source.Open(path, r.cfg.General.SourceTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "Open label")
	}
	defer rc.Close()

	doc, err := pvl.ReadFromWithOptions(rc, path, pvl.ParseOptions{MaxDepth: r.cfg.Parse.MaxDepth})
	return doc, errors.Wrap(err, "Read label")
}

// Prepare returns job for <s> with format template, translation tables and value format loaded
func (r repo) Prepare(s Settings) (Job, error) {
	job := Job{Settings: s}

	if s.Template != "" {
		tmpl, err := r.Read(s.Template)
		if err != nil {
			return job, errors.Wrap(err, "Read format template")
		}
		job.template = tmpl
	}

	if len(s.Tables) > 0 {
		tbl, err := r.LoadTable(s.Tables)
		if err != nil {
			return job, err
		}
		job.table = tbl
	}

	var types pvl.TypeMap
	if r.cfg.Format.TypeFile != "" {
		doc, err := r.Read(r.cfg.Format.TypeFile)
		if err != nil {
			return job, errors.Wrap(err, "Read type map")
		}
		if types, err = pvl.NewTypeMap(doc); err != nil {
			return job, errors.Wrap(err, "Build type map")
		}
	}
	if s.Strict || r.cfg.Format.Dialect == cfg.PDSDialect {
		column := lo.Ternary(r.cfg.Format.NameColumn > 0, r.cfg.Format.NameColumn, pvl.DefaultPDSNameColumn)
		job.format = pvl.PDSFormat{Types: types, Column: column}
	} else {
		job.format = pvl.DefaultFormat{Types: types}
	}

	return job, nil
}

// LoadTable returns translation table merged from <paths>.
//
// Paths without directory which do not exist are searched in directories of cfg.Translate.TableDirs.
func (r repo) LoadTable(paths []string) (*translate.Table, error) {
	tbl, err := translate.NewTable()
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		path = r.tablePath(path)
		r.log.DebugFi("Reading translation table", "path", path)
		data, err := source.ReadAll(path, r.cfg.General.SourceTimeout)
		if err != nil {
			return nil, errors.Wrap(err, "Read translation table")
		}
		if err := tbl.AddTableFrom(bytes.NewReader(data), path); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// tablePath returns the first existing table named <path> in cfg.Translate.TableDirs, or <path> if there is none
func (r repo) tablePath(path string) string {
	if source.IsRemote(path) || path == source.Stdio || filepath.Base(path) != path {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	for _, dir := range r.cfg.Translate.TableDirs {
		candidate := filepath.Join(dir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// Translate returns new document with keywords of <doc> translated by <tbl>
func (r repo) Translate(doc *pvl.Document, tbl *translate.Table) (*pvl.Document, error) {
	r.log.DebugFi("Translating label", "path", doc.Filename)

	out := pvl.NewDocument()
	out.Filename = doc.Filename
	err := translate.NewManager(r.log, tbl, doc).Auto(out)
	return out, errors.Wrap(err, "Translate label")
}

// Configure applies format settings of config and <job> to <doc>
func (r repo) Configure(doc *pvl.Document, job Job) {
	doc.SetTerminator(r.cfg.Format.Terminator)
	doc.SetFormatOptions(pvl.FormatOptions{
		Indent:       r.cfg.Format.Indent,
		MaxLineWidth: r.cfg.Format.MaxLineWidth,
		NameColumn:   r.cfg.Format.NameColumn,
	})
	doc.SetValueFormat(job.format)
	if job.template != nil {
		doc.SetFormatTemplate(job.template)
	}
}

// Get prints the first keyword named <name> found anywhere in <doc>
func (r repo) Get(doc *pvl.Document, name string) error {
	kw, err := doc.FindKeywordIn(name, pvl.Traverse)
	if err != nil {
		return errors.Wrap(err, "Get keyword")
	}
	text := pvl.FormatKeyword(kw, doc.ValueFormat(), doc.FormatOptions())

	r.out.Lock()
	defer r.out.Unlock()
	fmt.Fprintln(os.Stdout, color.GreenString(text))
	return nil
}

// List renders every keyword of <doc> with path of its container as a table
func (r repo) List(doc *pvl.Document) {
	r.out.Lock()
	defer r.out.Unlock()

	r.tw.AppendHeader(table.Row{"Path", "Keyword", "Value", "Unit"})
	r.listObject(&doc.Object, "")
	r.tw.Render()
}

func (r repo) listObject(obj *pvl.Object, path string) {
	r.listKeywords(&obj.Container, lo.Ternary(path == "", "/", path))
	for _, grp := range obj.Groups {
		r.listKeywords(&grp.Container, path+"/"+grp.Name)
	}
	for _, child := range obj.Objects {
		r.listObject(child, path+"/"+child.Name)
	}
}

func (r repo) listKeywords(c *pvl.Container, path string) {
	for _, kw := range c.Keywords {
		units := lo.Uniq(lo.Compact(lo.Map(kw.Values, func(v pvl.Value, _ int) string {
			return v.Unit
		})))
		r.tw.AppendRow(table.Row{path, kw.Name, strings.Join(kw.Strings(), ", "), strings.Join(units, ", ")})
	}
}

// Write writes <doc> to <output> as label or JSON, replacing or appending to the file.
//
// Output source.Stdio writes to standard output.
func (r repo) Write(doc *pvl.Document, output string, asJSON, appendTo bool) error {
	r.log.DebugFi("Writing label", "path", output, "json", asJSON, "append", appendTo)

	if asJSON {
		data, err := pvl.ToJSON(&doc.Object)
		if err != nil {
			return err
		}
		data = append(data, '\n')
		switch {
		case output == source.Stdio:
			return r.stdout(data)
		case appendTo:
			return errors.Wrap(file.Append(output, data), "Append JSON")
		default:
			return errors.Wrap(file.WriteAtomic(output, data), "Write JSON")
		}
	}

	switch {
	case output == source.Stdio:
		text, err := doc.Format()
		if err != nil {
			return errors.Wrap(err, "Format label")
		}
		return r.stdout([]byte(text))
	case appendTo:
		return errors.Wrap(doc.Append(output), "Append label")
	default:
		return errors.Wrap(doc.Write(output), "Write label")
	}
}

func (r repo) stdout(data []byte) error {
	r.out.Lock()
	defer r.out.Unlock()
	_, err := os.Stdout.Write(data)
	return errors.Wrap(err, "Write to standard output")
}

// Process reads label at <input> and handles it as <job> says, writing result to <output>
func (r repo) Process(job Job, input, output string) error {
	doc, err := r.Read(input)
	if err != nil {
		return err
	}

	switch {
	case job.table != nil:
		if doc, err = r.Translate(doc, job.table); err != nil {
			return err
		}
		if doc.IsEmpty() {
			r.log.WarnFi("Translation produced empty label", "input", input)
		}
	case job.Get != "":
		return r.Get(doc, job.Get)
	case job.List:
		r.List(doc)
		return nil
	}

	r.Configure(doc, job)
	if err := r.Write(doc, output, job.JSON, job.Append); err != nil {
		return err
	}
	r.log.InfoFi("Label processed", "input", input, "output", output)
	return nil
}
