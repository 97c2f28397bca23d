package tw

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Writer represents table writer
type Writer struct {
	table.Writer
}

// New returns new configured table writer printing to stderr
func New() Writer {
	return NewTo(os.Stderr)
}

// NewTo returns new configured table writer printing to <out>
func NewTo(out io.Writer) Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Path", WidthMax: 50},
		{Name: "Keyword", WidthMax: 30},
		{Name: "Value", WidthMax: 50},
		{Name: "Unit", WidthMax: 15},
	})

	return Writer{tw}
}

// Render renders table and resets it
func (w Writer) Render() {
	w.Writer.Render()
	w.ResetHeaders()
	w.ResetRows()
	w.ResetFooters()
}
