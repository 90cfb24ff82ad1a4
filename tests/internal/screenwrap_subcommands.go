package internal

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	applycmd "github.com/LegacyCodeHQ/screenwrap/cmd/apply"
	checkcmd "github.com/LegacyCodeHQ/screenwrap/cmd/check"
)

func ApplySubcommand(t *testing.T, projectRoot string, args ...string) string {
	t.Helper()
	return execute(t, applycmd.NewCommand(), projectRoot, args...)
}

func CheckSubcommand(t *testing.T, projectRoot string, args ...string) string {
	t.Helper()
	return execute(t, checkcmd.NewCommand(), projectRoot, args...)
}

func execute(t *testing.T, cmd *cobra.Command, projectRoot string, args ...string) string {
	t.Helper()

	cmd.SetArgs(append([]string{"-c", filepath.Join(projectRoot, "screenwrap.yaml"), "-r", projectRoot, "--no-color"}, args...))

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	require.NoError(t, err, "stderr: %s", strings.TrimSpace(stderr.String()))

	return strings.TrimRight(stdout.String(), "\n")
}

// FixtureProject copies testdata/integration/fixtures/<name> into a
// temporary directory and returns its path.
func FixtureProject(t *testing.T, name string) string {
	t.Helper()

	src := filepath.Join(RepoRoot(t), "testdata", "integration", "fixtures", name)
	dst := t.TempDir()

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, content, 0o644)
	})
	require.NoError(t, err)

	return dst
}

func RepoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)

	repoRoot := wd
	for i := 0; i < 10; i++ {
		_, err = os.Stat(filepath.Join(repoRoot, "go.mod"))
		if err == nil {
			return repoRoot
		}

		parent := filepath.Dir(repoRoot)
		if parent == repoRoot {
			break
		}
		repoRoot = parent
	}

	require.NoError(t, err, "expected repo root with go.mod, got %s", repoRoot)
	return repoRoot
}
