package report

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/LegacyCodeHQ/screenwrap/patcher"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 2

// Diff prints a line diff between the original and rewritten document.
// Results that were not modified print nothing.
func (r *Reporter) Diff(res patcher.Result) error {
	if res.Outcome != patcher.Modified {
		return nil
	}

	dmp := diffmatchpatch.New()
	before, after, lines := dmp.DiffLinesToChars(string(res.Before), string(res.After))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(before, after, false), lines)

	header := r.paint(color.Bold)
	if _, err := header.Fprintf(r.out, "--- %s\n+++ %s\n", res.Path, res.Path); err != nil {
		return err
	}

	added := r.paint(color.FgGreen)
	removed := r.paint(color.FgRed)
	for i, d := range diffs {
		text := strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n")
		var err error
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			err = printLines(text, func(line string) error {
				_, err := added.Fprintf(r.out, "+%s\n", line)
				return err
			})
		case diffmatchpatch.DiffDelete:
			err = printLines(text, func(line string) error {
				_, err := removed.Fprintf(r.out, "-%s\n", line)
				return err
			})
		case diffmatchpatch.DiffEqual:
			err = printLines(contextLines(text, i > 0, i < len(diffs)-1), func(line string) error {
				_, err := r.out.Write([]byte(" " + line + "\n"))
				return err
			})
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func printLines(lines []string, emit func(string) error) error {
	for _, line := range lines {
		if err := emit(line); err != nil {
			return err
		}
	}
	return nil
}

// contextLines trims an unchanged run down to the lines next to changes.
func contextLines(lines []string, afterChange, beforeChange bool) []string {
	var out []string
	if afterChange {
		out = append(out, lines[:min(diffContext, len(lines))]...)
	}
	if beforeChange {
		start := max(len(lines)-diffContext, 0)
		if afterChange && start < diffContext {
			start = min(diffContext, len(lines))
		} else if afterChange && start > diffContext {
			out = append(out, "...")
		}
		out = append(out, lines[start:]...)
	}
	return out
}
