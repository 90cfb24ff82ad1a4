package patcher

import (
	"regexp"
	"strings"
)

func closingPattern(keywords []string) *regexp.Regexp {
	alternatives := make([]string, len(keywords))
	for i, kw := range keywords {
		alternatives[i] = regexp.QuoteMeta(kw)
	}
	return regexp.MustCompile(`(?m)^([ \t]*)\);[ \t]*\r?\n\s*\}(?:\s*\})*(?:\s*\z|\s*\n[ \t]*(?:` +
		strings.Join(alternatives, "|") + `))`)
}

// rebalance adds the closing delimiter that matches the wrapper opened at site.
func (e *Engine) rebalance(src string, site wrapSite) (string, bool) {
	if e.opts.Closing == ClosingHeuristic {
		return e.rebalanceHeuristic(src, site)
	}
	return e.rebalanceBalanced(src, site)
}

func (e *Engine) rebalanceHeuristic(src string, site wrapSite) (string, bool) {
	m := e.closingPattern.FindStringSubmatchIndex(src[site.lineStart:])
	if m == nil {
		return src, false
	}

	lineStart := site.lineStart + m[0]
	indent := src[lineStart : site.lineStart+m[3]]
	return src[:lineStart] + indent + e.opts.indent() + ")," + lineEnding(src) + src[lineStart:], true
}

func (e *Engine) rebalanceBalanced(src string, site wrapSite) (string, bool) {
	closeAt, ok := matchingParen(src, site.open)
	if !ok {
		return src, false
	}

	// A chained call such as `).animate()` belongs to the container, so the
	// wrapper closes after the whole chain.
	if end := postfixEnd(src, closeAt+1); end > closeAt+1 {
		return src[:end] + ")" + src[end:], true
	}

	lineStart := strings.LastIndexByte(src[:closeAt], '\n') + 1
	indent := src[lineStart:closeAt]
	if strings.TrimLeft(indent, " \t") != "" {
		// The container closes mid-line, so close the wrapper right after it.
		return src[:closeAt+1] + ")" + src[closeAt+1:], true
	}

	return src[:lineStart] + indent + e.opts.indent() + ")," + lineEnding(src) + src[lineStart:], true
}

// matchingParen returns the offset of the parenthesis closing the one at
// open. Dart comments and string literals, including interpolations, are
// skipped.
func matchingParen(src string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(src); {
		if next, ok := skipNonCode(src, i); ok {
			i = next
			continue
		}
		switch src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
		i++
	}
	return -1, false
}

// postfixEnd returns the offset after the member accesses, calls and null
// assertions chained onto the expression ending at i. It returns i when
// nothing is chained. Cascades end the chain.
func postfixEnd(src string, i int) int {
	for {
		j := i
		for j < len(src) && strings.IndexByte(" \t\r\n", src[j]) >= 0 {
			j++
		}

		switch {
		case j < len(src) && src[j] == '!' && !strings.HasPrefix(src[j:], "!="):
			i = j + 1
			continue
		case strings.HasPrefix(src[j:], "?."):
			j += 2
		case j < len(src) && src[j] == '.' && !strings.HasPrefix(src[j:], ".."):
			j++
		default:
			return i
		}

		start := j
		for j < len(src) && isIdentByte(src[j]) {
			j++
		}
		if j == start {
			return i
		}
		if j < len(src) && src[j] == '(' {
			closeAt, ok := matchingParen(src, j)
			if !ok {
				return i
			}
			j = closeAt + 1
		}
		i = j
	}
}

// skipNonCode returns the offset just past the comment or string literal
// starting at i.
func skipNonCode(src string, i int) (int, bool) {
	switch {
	case strings.HasPrefix(src[i:], "//"):
		end := strings.IndexByte(src[i:], '\n')
		if end < 0 {
			return len(src), true
		}
		return i + end, true
	case strings.HasPrefix(src[i:], "/*"):
		return skipBlockComment(src, i), true
	case src[i] == '\'' || src[i] == '"':
		return skipString(src, i, false), true
	case src[i] == 'r' && i+1 < len(src) && (src[i+1] == '\'' || src[i+1] == '"') &&
		(i == 0 || !isIdentByte(src[i-1])):
		return skipString(src, i+1, true), true
	}
	return i, false
}

// skipBlockComment handles nested /* */ comments.
func skipBlockComment(src string, i int) int {
	depth := 0
	for i < len(src) {
		switch {
		case strings.HasPrefix(src[i:], "/*"):
			depth++
			i += 2
		case strings.HasPrefix(src[i:], "*/"):
			depth--
			i += 2
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return len(src)
}

// skipString returns the offset after the literal whose opening quote is at i.
func skipString(src string, i int, raw bool) int {
	quote := src[i]
	triple := strings.Repeat(string(quote), 3)
	multiline := strings.HasPrefix(src[i:], triple)
	if multiline {
		i += 3
	} else {
		i++
	}

	for i < len(src) {
		c := src[i]
		switch {
		case c == '\\' && !raw:
			i += 2
			continue
		case c == '$' && !raw && i+1 < len(src) && src[i+1] == '{':
			i = skipInterpolation(src, i+2)
			continue
		case multiline && strings.HasPrefix(src[i:], triple):
			return i + 3
		case !multiline && c == quote:
			return i + 1
		case !multiline && c == '\n':
			// Unterminated literal; resume scanning on the next line.
			return i
		}
		i++
	}
	return len(src)
}

// skipInterpolation scans the expression of a ${...} interpolation and
// returns the offset after its closing brace.
func skipInterpolation(src string, i int) int {
	depth := 1
	for i < len(src) {
		if next, ok := skipNonCode(src, i); ok {
			i = next
			continue
		}
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return len(src)
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
