package patcher

import (
	"errors"
	"fmt"

	"github.com/LegacyCodeHQ/screenwrap/vcs"
)

// ClosingStrategy selects how the closing delimiter for the wrapper is placed.
type ClosingStrategy string

const (
	// ClosingBalanced scans forward from the root container's opening
	// parenthesis, skipping strings and comments, to its matching close.
	ClosingBalanced ClosingStrategy = "balanced"
	// ClosingHeuristic inserts before the first `);` line that ends the
	// enclosing method body.
	ClosingHeuristic ClosingStrategy = "heuristic"
)

// DefaultMethodKeywords start the declaration that follows a build method.
var DefaultMethodKeywords = []string{"Widget", "void", "Future", "@override"}

var (
	ErrEmptyWrapper    = errors.New("wrapper name cannot be empty")
	ErrEmptyContainer  = errors.New("root container name cannot be empty")
	ErrInvalidClosing  = errors.New("invalid closing strategy")
	ErrEmptyImportPath = errors.New("import suffix cannot be empty")
)

// Options describes what gets injected and where.
type Options struct {
	Wrapper        string
	Container      string
	ImportSuffix   string
	Marker         string
	Indent         string
	Closing        ClosingStrategy
	MethodKeywords []string
}

func (o Options) marker() string {
	if o.Marker != "" {
		return o.Marker
	}
	return o.Wrapper
}

func (o Options) indent() string {
	if o.Indent != "" {
		return o.Indent
	}
	return "  "
}

func (o Options) keywords() []string {
	if len(o.MethodKeywords) > 0 {
		return o.MethodKeywords
	}
	return DefaultMethodKeywords
}

func (o Options) validate() error {
	if o.Wrapper == "" {
		return ErrEmptyWrapper
	}
	if o.Container == "" {
		return ErrEmptyContainer
	}
	if o.ImportSuffix == "" {
		return ErrEmptyImportPath
	}
	switch o.Closing {
	case "", ClosingBalanced, ClosingHeuristic:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidClosing, o.Closing)
	}
	return nil
}

// SyntaxChecker reports whether a document contains parse errors.
type SyntaxChecker interface {
	HasErrors(src []byte) (bool, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithDryRun computes results without writing anything back.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}

// WithSyntaxChecker rejects rewrites that turn a clean parse into a broken one.
func WithSyntaxChecker(checker SyntaxChecker) Option {
	return func(e *Engine) {
		e.checker = checker
	}
}

// WithContentReader overrides how target files are read.
func WithContentReader(reader vcs.ContentReader) Option {
	return func(e *Engine) {
		e.read = reader
	}
}

// WithContentWriter overrides how target files are written back.
func WithContentWriter(writer vcs.ContentWriter) Option {
	return func(e *Engine) {
		e.write = writer
	}
}
