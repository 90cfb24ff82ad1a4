package runner

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/screenwrap/config"
	"github.com/LegacyCodeHQ/screenwrap/patcher"
)

const screen = "import 'a.dart';\n\nWidget build(BuildContext context) {\n  return Scaffold(\n    body: Text('x'),\n  );\n}\n"

func newConfig(root string, targets ...string) *config.Config {
	return &config.Config{
		Root:         root,
		Targets:      targets,
		Wrapper:      "BackHandler",
		Container:    "Scaffold",
		ImportSuffix: "widgets/back_handler.dart",
		Closing:      string(patcher.ClosingBalanced),
	}
}

func writeScreen(t *testing.T, root, rel string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(screen), 0o644))
	return p
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func initRepo(t *testing.T, dir string) {
	t.Helper()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "user.email", "test@example.com")
}

func TestRun_ReportsAndSummarizes(t *testing.T) {
	root := t.TempDir()
	writeScreen(t, root, "lib/screens/home_screen.dart")

	var out bytes.Buffer
	summary, err := (&Options{}).Run(&out, newConfig(root, "lib/screens/home_screen.dart", "lib/screens/gone.dart"))
	require.NoError(t, err)

	assert.Equal(t, "modified: lib/screens/home_screen.dart\nnot found: lib/screens/gone.dart\ndone: 1 modified, 0 already patched, 1 not found, 0 failed\n", out.String())
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Modified)
}

func TestRun_RequireCleanOutsideRepository(t *testing.T) {
	root := t.TempDir()
	writeScreen(t, root, "lib/screens/home_screen.dart")
	cfg := newConfig(root, "lib/screens/home_screen.dart")
	cfg.RequireClean = true

	var out bytes.Buffer
	_, err := (&Options{}).Run(&out, cfg)

	assert.ErrorIs(t, err, ErrNotRepository)
	assert.Empty(t, out.String())
}

func TestRun_RequireCleanRejectsDirtyTargets(t *testing.T) {
	root := t.TempDir()
	initRepo(t, root)
	target := writeScreen(t, root, "lib/screens/home_screen.dart")
	runGit(t, root, "add", ".")
	runGit(t, root, "commit", "-m", "initial")
	require.NoError(t, os.WriteFile(target, []byte(screen+"// edited\n"), 0o644))

	cfg := newConfig(root, "lib/screens/home_screen.dart")
	cfg.RequireClean = true

	var out bytes.Buffer
	_, err := (&Options{}).Run(&out, cfg)

	assert.ErrorIs(t, err, ErrDirtyTargets)
	assert.ErrorContains(t, err, "lib/screens/home_screen.dart")

	content, readErr := os.ReadFile(target)
	require.NoError(t, readErr)
	assert.Equal(t, screen+"// edited\n", string(content))
}

func TestRun_RequireCleanAllowsCommittedTargets(t *testing.T) {
	root := t.TempDir()
	initRepo(t, root)
	writeScreen(t, root, "lib/screens/home_screen.dart")
	runGit(t, root, "add", ".")
	runGit(t, root, "commit", "-m", "initial")

	cfg := newConfig(root, "lib/screens/home_screen.dart")
	cfg.RequireClean = true

	var out bytes.Buffer
	summary, err := (&Options{}).Run(&out, cfg)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Modified)
}

func TestRun_DryRunPrintsDiff(t *testing.T) {
	root := t.TempDir()
	writeScreen(t, root, "lib/home_screen.dart")

	var out bytes.Buffer
	_, err := (&Options{DryRun: true, Diff: true}).Run(&out, newConfig(root, "lib/home_screen.dart"))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "would modify: lib/home_screen.dart\n")
	assert.Contains(t, out.String(), "+import 'widgets/back_handler.dart';\n")
	assert.Contains(t, out.String(), "done: 1 to modify, 0 already patched, 0 not found, 0 failed\n")
}
