package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func renderString(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Markdown(md).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func TestHeadings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"# Title", "<h1>Title</h1>"},
		{"## Section", "<h2>Section</h2>"},
		{"### Sub", "<h3>Sub</h3>"},
	}
	for _, tt := range tests {
		got := renderString(t, tt.input)
		if !strings.Contains(got, tt.want) {
			t.Errorf("render(%q) = %q, want to contain %q", tt.input, got, tt.want)
		}
	}
}

func TestParagraphJoinsLines(t *testing.T) {
	got := renderString(t, "first line\nsecond line")
	if !strings.Contains(got, "<p>first line second line</p>") {
		t.Errorf("expected joined paragraph, got %q", got)
	}
}

func TestInlineMarkup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"`code`", "<code>code</code>"},
		{"[text](https://example.com)", `<a href="https://example.com">text</a>`},
		{"[text](/page/home/)", `<a href="/page/home/">text</a>`},
	}
	for _, tt := range tests {
		got := renderString(t, tt.input)
		if !strings.Contains(got, tt.want) {
			t.Errorf("render(%q) = %q, want to contain %q", tt.input, got, tt.want)
		}
	}
}

func TestUnsafeLinkDropped(t *testing.T) {
	got := renderString(t, "[click](javascript:alert(1))")
	if strings.Contains(got, "javascript:") {
		t.Errorf("unsafe href should be dropped, got %q", got)
	}
	if !strings.Contains(got, "click") {
		t.Errorf("link text should survive, got %q", got)
	}
}

func TestLists(t *testing.T) {
	got := renderString(t, "- one\n- two")
	if !strings.Contains(got, "<ul>") || !strings.Contains(got, "<li>one</li>") || !strings.Contains(got, "<li>two</li>") {
		t.Errorf("unordered list not rendered, got %q", got)
	}

	got = renderString(t, "1. first\n2. second")
	if !strings.Contains(got, "<ol>") || !strings.Contains(got, "<li>first</li>") {
		t.Errorf("ordered list not rendered, got %q", got)
	}
}

func TestBlockquote(t *testing.T) {
	got := renderString(t, "> quoted")
	if !strings.Contains(got, "<blockquote>") || !strings.Contains(got, "<p>quoted</p>") {
		t.Errorf("blockquote not rendered, got %q", got)
	}
}

func TestCodeFenceEscapes(t *testing.T) {
	got := renderString(t, "```\n<b>raw</b>\n```")
	if !strings.Contains(got, "<pre><code>") {
		t.Errorf("code fence not rendered, got %q", got)
	}
	if strings.Contains(got, "<b>raw</b>") {
		t.Errorf("code content should be escaped, got %q", got)
	}
	if !strings.Contains(got, "&lt;b&gt;raw&lt;/b&gt;") {
		t.Errorf("expected escaped code content, got %q", got)
	}
}

func TestUnterminatedCodeFenceCloses(t *testing.T) {
	got := renderString(t, "```\ncode without end")
	if !strings.Contains(got, "</code></pre>") {
		t.Errorf("unterminated fence should still close, got %q", got)
	}
}

func TestHTMLEscapedInText(t *testing.T) {
	got := renderString(t, "a <script> tag")
	if strings.Contains(got, "<script>") {
		t.Errorf("raw html should be escaped, got %q", got)
	}
}

func TestHorizontalRule(t *testing.T) {
	got := renderString(t, "above\n\n---\n\nbelow")
	if !strings.Contains(got, "<hr>") {
		t.Errorf("hr not rendered, got %q", got)
	}
}
