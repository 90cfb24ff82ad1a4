package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

// targetSet holds the cleaned absolute paths of the configured targets.
type targetSet map[string]bool

func newTargetSet(root string, targets []string) targetSet {
	set := make(targetSet, len(targets))
	for _, target := range targets {
		set[filepath.Clean(filepath.Join(root, filepath.FromSlash(target)))] = true
	}
	return set
}

// dirs returns the distinct parent directories of the targets, sorted.
func (s targetSet) dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for path := range s {
		dir := filepath.Dir(path)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// addWatchDirs registers dirs with adder. Directories that do not exist
// hold only missing targets and are skipped.
func addWatchDirs(adder func(string) error, dirs []string) error {
	for _, dir := range dirs {
		if err := adder(dir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

func isRelevantChange(event fsnotify.Event, targets targetSet) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	return targets[filepath.Clean(event.Name)]
}

func watchAndReapply(ctx context.Context, watcher *fsnotify.Watcher, targets targetSet, reapply func(), errOut io.Writer) error {
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevantChange(event, targets) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, reapply)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "watcher error: %v\n", err)
		}
	}
}
