package render

import (
	"strings"
	"testing"

	"github.com/olegiv/ocms-blog/internal/content"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"heading", "# Hello", []string{"<h1", "Hello</h1>"}},
		{"list", "- one\n- two", []string{"<ul>", "<li>one</li>"}},
		{"gfm table", "| a | b |\n|---|---|\n| 1 | 2 |", []string{"<table>", "<td>1</td>"}},
		{"fenced code keeps language", "```go\nfmt.Println()\n```", []string{`<code class="language-go">`}},
		{"link gets nofollow", "[x](https://example.com)", []string{`href="https://example.com"`, `rel="nofollow"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Markdown(tt.src)
			if err != nil {
				t.Fatalf("Markdown: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Markdown(%q) = %q, missing %q", tt.src, got, w)
				}
			}
		})
	}
}

func TestMarkdown_Sanitizes(t *testing.T) {
	src := "hello <script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\" onclick=\"x()\">link</a>\n\n<img src=x onerror=alert(1)>"

	got, err := Markdown(src)
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	for _, bad := range []string{"<script", "javascript:", "onclick", "onerror"} {
		if strings.Contains(got, bad) {
			t.Errorf("output still contains %q: %s", bad, got)
		}
	}
}

func TestMarkdown_IndentedSource(t *testing.T) {
	src := "\n    # Title\n\n    Some text.\n"

	got, err := Markdown(src)
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(got, "<h1") {
		t.Errorf("indented heading not rendered as heading: %s", got)
	}
	if strings.Contains(got, "<pre>") {
		t.Errorf("indented source rendered as code block: %s", got)
	}
}

func TestMarkdown_SamplePosts(t *testing.T) {
	for _, p := range content.SamplePosts() {
		got, err := Markdown(p.Content)
		if err != nil {
			t.Fatalf("post %s: %v", p.ID, err)
		}
		if !strings.Contains(got, "<h1") || !strings.Contains(got, "<h2") {
			t.Errorf("post %s: expected headings in %q", p.ID, got[:min(len(got), 120)])
		}
	}
}

func TestDedent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"no indent\n  nested", "no indent\n  nested"},
		{"  a\n    b\n  c", "a\n  b\nc"},
		{"    a\n\n    b", "a\n\nb"},
		{"\ta\n\t\tb", "a\n\tb"},
		{"  a\n\tb", "  a\n\tb"},
	}
	for _, tt := range tests {
		if got := Dedent(tt.in); got != tt.want {
			t.Errorf("Dedent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
