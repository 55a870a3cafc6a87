// Package render turns post content, which is stored as markdown, into HTML
// that is safe to embed in a page.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts markdown to sanitized HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a Renderer with GitHub flavoured markdown and the UGC
// sanitization policy.
func New() *Renderer {
	policy := bluemonday.UGCPolicy()
	// Keep the fence language so clients can highlight code blocks.
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")

	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: policy,
	}
}

var defaultRenderer = New()

// Markdown renders src with the default Renderer.
func Markdown(src string) (string, error) {
	return defaultRenderer.Markdown(src)
}

// Markdown renders src. Common leading indentation is removed first so that
// indented content is not turned into one big code block.
func (r *Renderer) Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(Dedent(src)), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// Dedent strips the longest run of spaces and tabs shared by every
// non-blank line of s.
func Dedent(s string) string {
	lines := strings.Split(s, "\n")

	prefix := ""
	found := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			prefix, found = indent, true
			continue
		}
		prefix = commonPrefix(prefix, indent)
		if prefix == "" {
			return s
		}
	}
	if prefix == "" {
		return s
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
