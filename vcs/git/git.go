// Package git answers the few repository questions screenwrap asks
// before rewriting files in place.
package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IsRepository reports whether path is inside a git work tree.
func IsRepository(path string) bool {
	_, err := runGitCommand(path, "rev-parse", "--is-inside-work-tree")
	return err == nil
}

func validateGitRelPath(path string) error {
	if path == "" {
		return fmt.Errorf("git path cannot be empty")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("git path must be relative: %q", path)
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("git path contains NUL: %q", path)
	}
	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("git path escapes repository: %q", path)
	}
	return nil
}
