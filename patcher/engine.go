// Package patcher wraps the root container of Dart screen files with a
// wrapper widget, adding the wrapper's import and the matching closing
// delimiter without parsing the file.
package patcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/LegacyCodeHQ/screenwrap/internal/logging"
	"github.com/LegacyCodeHQ/screenwrap/vcs"
)

// Engine patches target files below a project root.
type Engine struct {
	root    string
	opts    Options
	dryRun  bool
	checker SyntaxChecker
	read    vcs.ContentReader
	write   vcs.ContentWriter

	returnPattern  *regexp.Regexp
	closingPattern *regexp.Regexp
}

// New creates an engine rooted at root.
func New(root string, opts Options, options ...Option) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Closing == "" {
		opts.Closing = ClosingBalanced
	}
	if root == "" {
		root = "."
	}

	e := &Engine{
		root:           root,
		opts:           opts,
		read:           vcs.FilesystemContentReader(),
		write:          vcs.FilesystemContentWriter(),
		returnPattern:  returnPattern(opts.Container),
		closingPattern: closingPattern(opts.keywords()),
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Root returns the directory target paths are resolved against.
func (e *Engine) Root() string {
	return e.root
}

// ImportLine returns the import directive the engine injects for relPath.
func (e *Engine) ImportLine(relPath string) string {
	return ImportLine(relPath, e.opts.ImportSuffix)
}

// Run processes every path in order. A failure on one file never stops
// the remaining ones.
func (e *Engine) Run(paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		results = append(results, e.Process(p))
	}
	return results
}

// Process runs the full pipeline on a single target path relative to the root.
func (e *Engine) Process(relPath string) Result {
	result := Result{Path: relPath}
	absPath := filepath.Join(e.root, filepath.FromSlash(relPath))

	info, err := os.Stat(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		result.Outcome = NotFound
		logging.Debug("target not found", map[string]any{"path": absPath})
		return result
	}
	if err != nil {
		result.Outcome = ReadFailed
		result.Err = fmt.Errorf("failed to stat %s: %w", relPath, err)
		return result
	}

	content, err := e.read(absPath)
	if err != nil {
		result.Outcome = ReadFailed
		result.Err = fmt.Errorf("failed to read %s: %w", relPath, err)
		return result
	}
	result.Before = content

	src := string(content)
	if strings.Contains(src, e.opts.marker()) {
		result.Outcome = AlreadyPatched
		return result
	}

	doc, importStatus := injectImport(src, e.ImportLine(relPath))
	result.Import = importStatus

	doc, site, ok := e.injectWrapper(doc)
	if !ok {
		result.Outcome = PatternNotFound
		return result
	}

	doc, ok = e.rebalance(doc, site)
	if !ok {
		result.Outcome = ClosingNotFound
		return result
	}

	if e.checker != nil {
		regressed, err := e.syntaxRegressed(content, []byte(doc))
		if err != nil {
			result.Outcome = SyntaxRegression
			result.Err = fmt.Errorf("failed to check syntax of %s: %w", relPath, err)
			return result
		}
		if regressed {
			result.Outcome = SyntaxRegression
			return result
		}
	}

	result.After = []byte(doc)
	result.Outcome = Modified

	if e.dryRun {
		return result
	}

	if err := e.write(absPath, result.After, info.Mode().Perm()); err != nil {
		result.Outcome = WriteFailed
		result.Err = fmt.Errorf("failed to write %s: %w", relPath, err)
		return result
	}

	logging.Debug("target rewritten", map[string]any{
		"path":   absPath,
		"import": importStatus.String(),
		"bytes":  len(result.After),
	})
	return result
}

// syntaxRegressed reports whether after has parse errors that before did not.
func (e *Engine) syntaxRegressed(before, after []byte) (bool, error) {
	beforeBroken, err := e.checker.HasErrors(before)
	if err != nil {
		return false, err
	}
	if beforeBroken {
		return false, nil
	}
	return e.checker.HasErrors(after)
}
