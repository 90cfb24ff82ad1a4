package git

import (
	"fmt"
	"strings"
)

// DirtyPaths returns the paths among paths (relative to repoPath) that have
// staged, unstaged or untracked changes. Paths are reported the way git
// prints them.
func DirtyPaths(repoPath string, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	for _, p := range paths {
		if err := validateGitRelPath(p); err != nil {
			return nil, err
		}
	}

	args := append([]string{"status", "--porcelain", "-z", "--untracked-files=all", "--"}, paths...)
	out, err := runGitCommand(repoPath, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository status: %w", err)
	}

	return parsePorcelainZ(string(out)), nil
}

// parsePorcelainZ extracts paths from `git status --porcelain -z` output.
// Rename and copy entries carry their source path as an extra field.
func parsePorcelainZ(out string) []string {
	var dirty []string
	entries := strings.Split(out, "\x00")
	for i := 0; i < len(entries); i++ {
		entry := entries[i]
		if len(entry) < 4 {
			continue
		}
		status := entry[:2]
		dirty = append(dirty, entry[3:])
		if status[0] == 'R' || status[0] == 'C' {
			i++
		}
	}
	return dirty
}
