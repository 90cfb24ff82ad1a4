// Package dartsyntax checks Dart sources for parse errors using the
// tree-sitter Dart grammar.
package dartsyntax

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexaandru/go-sitter-forest/dart"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

var errNoRootNode = errors.New("parser returned no root node")

var (
	languageOnce sync.Once
	language     *sitter.Language
)

func dartLanguage() *sitter.Language {
	languageOnce.Do(func() {
		language = sitter.NewLanguage(dart.GetLanguage())
	})
	return language
}

// Checker reports whether Dart source parses cleanly.
type Checker struct{}

// NewChecker returns a Checker backed by the Dart grammar.
func NewChecker() *Checker {
	return &Checker{}
}

// HasErrors parses src and reports whether the syntax tree contains
// error or missing nodes.
func (c *Checker) HasErrors(src []byte) (bool, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(dartLanguage())

	tree, err := parser.ParseString(context.Background(), nil, src)
	if err != nil {
		return false, fmt.Errorf("failed to parse Dart code: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return false, errNoRootNode
	}

	return root.HasError(), nil
}
