// Package report renders patcher results for the console.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/LegacyCodeHQ/screenwrap/patcher"
)

// Options controls how results are rendered.
type Options struct {
	// Color enables ANSI colors regardless of the terminal.
	Color bool
	// DryRun labels modified files as pending instead of written.
	DryRun bool
}

// Reporter writes one line per result and a final summary.
type Reporter struct {
	out  io.Writer
	opts Options
}

// New returns a Reporter writing to out.
func New(out io.Writer, opts Options) *Reporter {
	return &Reporter{out: out, opts: opts}
}

func (r *Reporter) paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if r.opts.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (r *Reporter) label(o patcher.Outcome) string {
	if o == patcher.Modified && r.opts.DryRun {
		return "would modify"
	}
	return o.String()
}

func outcomeColor(o patcher.Outcome) color.Attribute {
	switch {
	case o == patcher.Modified:
		return color.FgGreen
	case o == patcher.AlreadyPatched:
		return color.FgCyan
	case o == patcher.NotFound:
		return color.FgYellow
	case o.Failed():
		return color.FgRed
	default:
		return color.Reset
	}
}

// Line prints the outcome of a single file, plus a warning line when the
// file was wrapped but had no import block to extend.
func (r *Reporter) Line(res patcher.Result) error {
	c := r.paint(outcomeColor(res.Outcome))

	var err error
	if res.Err != nil {
		_, err = c.Fprintf(r.out, "%s: %s: %v\n", r.label(res.Outcome), res.Path, res.Err)
	} else {
		_, err = c.Fprintf(r.out, "%s: %s\n", r.label(res.Outcome), res.Path)
	}
	if err != nil {
		return err
	}

	if res.Outcome == patcher.Modified && res.Import == patcher.ImportBlockNotFound {
		_, err = r.paint(color.FgYellow).Fprintf(r.out, "import block not found: %s\n", res.Path)
	}
	return err
}

// Summary prints the final summary line.
func (r *Reporter) Summary(s patcher.Summary) error {
	verb := "modified"
	if r.opts.DryRun {
		verb = "to modify"
	}
	_, err := fmt.Fprintf(r.out, "done: %d %s, %d already patched, %d not found, %d failed\n",
		s.Modified, verb, s.AlreadyPatched, s.NotFound, s.Failed)
	return err
}

// Table prints all results as a table with the rewritten size of each file.
func (r *Reporter) Table(results []patcher.Result) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false

	tbl.AppendHeader(table.Row{"Path", "Outcome", "Import", "Size"})

	written := 0
	for _, res := range results {
		size := "-"
		if res.Outcome == patcher.Modified {
			size = humanize.Bytes(uint64(len(res.After)))
			written += len(res.After)
		}
		tbl.AppendRow(table.Row{res.Path, r.label(res.Outcome), res.Import.String(), size})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("%d files", len(results)), "", "", humanize.Bytes(uint64(written))})

	_, err := fmt.Fprintln(r.out, tbl.Render())
	return err
}
