package check

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand_PrintsDiffWithoutWriting(t *testing.T) {
	root := t.TempDir()
	content := "import 'a.dart';\n\nWidget build(BuildContext context) {\n  return Scaffold(\n    body: Text('x'),\n  );\n}\n"
	target := filepath.Join(root, "lib", "screens", "home_screen.dart")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte(content), 0o644))

	cfgPath := filepath.Join(t.TempDir(), "screenwrap.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("targets:\n  - lib/screens/home_screen.dart\n"), 0o600))

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-c", cfgPath, "-r", root})
	require.NoError(t, cmd.Execute())

	rendered := out.String()
	assert.Contains(t, rendered, "would modify: lib/screens/home_screen.dart\n")
	assert.Contains(t, rendered, "--- lib/screens/home_screen.dart\n")
	assert.Contains(t, rendered, "+import '../widgets/back_handler.dart';\n")
	assert.Contains(t, rendered, "+  return BackHandler(\n")
	assert.Contains(t, rendered, "done: 1 to modify, 0 already patched, 0 not found, 0 failed\n")

	unchanged, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, content, string(unchanged))
}

func TestCheckCommand_DiffCanBeDisabled(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "lib", "home_screen.dart")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("import 'a.dart';\nWidget build(c) {\n  return Scaffold();\n}\n"), 0o644))

	cfgPath := filepath.Join(t.TempDir(), "screenwrap.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("targets: [lib/home_screen.dart]\n"), 0o600))

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-c", cfgPath, "-r", root, "--diff=false"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "would modify: lib/home_screen.dart\ndone: 1 to modify, 0 already patched, 0 not found, 0 failed\n", out.String())
}
