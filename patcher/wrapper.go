package patcher

import (
	"regexp"
	"strings"
)

// wrapSite locates the rewritten return statement inside a document.
type wrapSite struct {
	// lineStart is the offset of the line holding the wrapper's return.
	lineStart int
	// open is the offset of the root container's opening parenthesis.
	open int
}

func returnPattern(container string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^([ \t]*)return ` + regexp.QuoteMeta(container) + `\(`)
}

// injectWrapper rewrites the first `return <container>(` into
// `return <wrapper>(` followed by a `child: <container>(` line.
func (e *Engine) injectWrapper(src string) (string, wrapSite, bool) {
	m := e.returnPattern.FindStringSubmatchIndex(src)
	if m == nil {
		return src, wrapSite{}, false
	}

	indent := src[m[2]:m[3]]
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString("return ")
	b.WriteString(e.opts.Wrapper)
	b.WriteString("(")
	b.WriteString(lineEnding(src))
	b.WriteString(indent)
	b.WriteString(e.opts.indent())
	b.WriteString("child: ")
	b.WriteString(e.opts.Container)
	b.WriteString("(")
	replacement := b.String()

	site := wrapSite{
		lineStart: m[0],
		open:      m[0] + len(replacement) - 1,
	}
	return src[:m[0]] + replacement + src[m[1]:], site, true
}
