package patcher

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// importBlockPattern matches the first run of consecutive import directives.
var importBlockPattern = regexp.MustCompile(`(?m)^(?:import [^;]+;[ \t]*(?:\r?\n|\z))+`)

// Depth returns how many directories a target sits below the top-level
// source directory. For lib/screens/common/about_screen.dart it is 2.
func Depth(relPath string) int {
	cleaned := path.Clean(filepath.ToSlash(relPath))
	depth := strings.Count(cleaned, "/") - 1
	if depth < 0 {
		return 0
	}
	return depth
}

// ImportLine builds the import directive a target at relPath needs to reach suffix.
func ImportLine(relPath, suffix string) string {
	return fmt.Sprintf("import '%s%s';", strings.Repeat("../", Depth(relPath)), suffix)
}

// importURIPattern captures the URI of an import directive in either quote style.
var importURIPattern = regexp.MustCompile(`(?m)^[ \t]*import[ \t]+(?:'([^'\r\n]*)'|"([^"\r\n]*)")`)

func importURIs(src string) []string {
	var uris []string
	for _, m := range importURIPattern.FindAllStringSubmatch(src, -1) {
		uri := m[1] + m[2]
		if !strings.Contains(uri, ":") {
			uri = path.Clean(uri)
		}
		uris = append(uris, uri)
	}
	return uris
}

// hasImport reports whether src already imports the URI of importLine.
func hasImport(src, importLine string) bool {
	want := importURIs(importLine)
	if len(want) == 0 {
		return false
	}
	for _, uri := range importURIs(src) {
		if uri == want[0] {
			return true
		}
	}
	return false
}

// injectImport appends importLine after the leading import block unless
// the file already imports the same URI.
func injectImport(src, importLine string) (string, ImportStatus) {
	if hasImport(src, importLine) {
		return src, ImportPresent
	}

	loc := importBlockPattern.FindStringIndex(src)
	if loc == nil {
		return src, ImportBlockNotFound
	}

	block := src[loc[0]:loc[1]]
	nl := lineEnding(block)

	insertion := importLine + nl
	if !strings.HasSuffix(block, "\n") {
		insertion = nl + importLine
	}

	return src[:loc[1]] + insertion + src[loc[1]:], ImportAdded
}

func lineEnding(s string) string {
	if strings.Contains(s, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
