package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/screenwrap/patcher"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name   string
		result patcher.Result
		dryRun bool
		want   string
	}{
		{
			name:   "not found",
			result: patcher.Result{Path: "lib/a.dart", Outcome: patcher.NotFound},
			want:   "not found: lib/a.dart\n",
		},
		{
			name:   "already patched",
			result: patcher.Result{Path: "lib/a.dart", Outcome: patcher.AlreadyPatched},
			want:   "already patched: lib/a.dart\n",
		},
		{
			name:   "modified",
			result: patcher.Result{Path: "lib/a.dart", Outcome: patcher.Modified, Import: patcher.ImportAdded},
			want:   "modified: lib/a.dart\n",
		},
		{
			name:   "modified in dry run",
			result: patcher.Result{Path: "lib/a.dart", Outcome: patcher.Modified},
			dryRun: true,
			want:   "would modify: lib/a.dart\n",
		},
		{
			name:   "modified without import block",
			result: patcher.Result{Path: "lib/a.dart", Outcome: patcher.Modified, Import: patcher.ImportBlockNotFound},
			want:   "modified: lib/a.dart\nimport block not found: lib/a.dart\n",
		},
		{
			name:   "pattern not found",
			result: patcher.Result{Path: "lib/a.dart", Outcome: patcher.PatternNotFound},
			want:   "pattern not found: lib/a.dart\n",
		},
		{
			name:   "write failed",
			result: patcher.Result{Path: "lib/a.dart", Outcome: patcher.WriteFailed, Err: errors.New("read-only file system")},
			want:   "write failed: lib/a.dart: read-only file system\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			r := New(&out, Options{DryRun: tc.dryRun})
			require.NoError(t, r.Line(tc.result))
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestLine_Color(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, Options{Color: true})

	require.NoError(t, r.Line(patcher.Result{Path: "lib/a.dart", Outcome: patcher.Modified}))

	assert.True(t, strings.HasPrefix(out.String(), "\x1b[32m"))
	assert.Contains(t, out.String(), "modified: lib/a.dart")
}

func TestSummary(t *testing.T) {
	results := []patcher.Result{
		{Path: "a", Outcome: patcher.Modified, After: []byte("abc")},
		{Path: "b", Outcome: patcher.Modified, After: []byte("de")},
		{Path: "c", Outcome: patcher.AlreadyPatched},
		{Path: "d", Outcome: patcher.NotFound},
		{Path: "e", Outcome: patcher.ClosingNotFound},
		{Path: "f", Outcome: patcher.WriteFailed},
	}

	var out bytes.Buffer
	require.NoError(t, New(&out, Options{}).Summary(patcher.Summarize(results)))
	assert.Equal(t, "done: 2 modified, 1 already patched, 1 not found, 2 failed\n", out.String())
}

func TestTable(t *testing.T) {
	results := []patcher.Result{
		{Path: "lib/screens/a_screen.dart", Outcome: patcher.Modified, Import: patcher.ImportAdded, After: make([]byte, 2048)},
		{Path: "lib/screens/b_screen.dart", Outcome: patcher.NotFound},
	}

	var out bytes.Buffer
	require.NoError(t, New(&out, Options{}).Table(results))

	rendered := out.String()
	assert.Contains(t, rendered, "lib/screens/a_screen.dart")
	assert.Contains(t, rendered, "added")
	assert.Contains(t, rendered, "2.0 kB")
	assert.Contains(t, rendered, "not found")
	assert.Contains(t, rendered, "2 FILES")
}

func TestDiff(t *testing.T) {
	res := patcher.Result{
		Path:    "lib/screens/common/about_screen.dart",
		Outcome: patcher.Modified,
		Before:  []byte("import 'a.dart';\n\nWidget build(c) {\n  return Scaffold(\n    body: Text('x'),\n  );\n}\n"),
		After:   []byte("import 'a.dart';\nimport '../../widgets/back_handler.dart';\n\nWidget build(c) {\n  return BackHandler(\n    child: Scaffold(\n    body: Text('x'),\n    ),\n  );\n}\n"),
	}

	var out bytes.Buffer
	require.NoError(t, New(&out, Options{}).Diff(res))

	rendered := out.String()
	assert.True(t, strings.HasPrefix(rendered, "--- lib/screens/common/about_screen.dart\n+++ lib/screens/common/about_screen.dart\n"))
	assert.Contains(t, rendered, "+import '../../widgets/back_handler.dart';\n")
	assert.Contains(t, rendered, "-  return Scaffold(\n")
	assert.Contains(t, rendered, "+  return BackHandler(\n")
	assert.Contains(t, rendered, "+    child: Scaffold(\n")
	assert.Contains(t, rendered, "+    ),\n")
	assert.Contains(t, rendered, "   );\n")
}

func TestDiff_SkipsUnmodified(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, New(&out, Options{}).Diff(patcher.Result{Path: "a", Outcome: patcher.AlreadyPatched}))
	assert.Empty(t, out.String())
}

func TestContextLines(t *testing.T) {
	lines := []string{"1", "2", "3", "4", "5", "6"}

	assert.Equal(t, []string{"5", "6"}, contextLines(lines, false, true))
	assert.Equal(t, []string{"1", "2"}, contextLines(lines, true, false))
	assert.Equal(t, []string{"1", "2", "...", "5", "6"}, contextLines(lines, true, true))
	assert.Equal(t, []string{"1", "2", "3"}, contextLines(lines[:3], true, true))
}
