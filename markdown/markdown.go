// Package markdown renders page bodies as HTML via a templ component.
// It covers the subset page authors actually use: headings, paragraphs,
// emphasis, inline code, links, lists, blockquotes, and fenced code blocks.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reOrdered    = regexp.MustCompile(`^\d+\.\s`)
)

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		render(&buf, content)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func render(buf *bytes.Buffer, md string) {
	lines := strings.Split(md, "\n")
	var inPara, inUL, inOL, inQuote, inCode bool

	closeBlocks := func() {
		if inPara {
			buf.WriteString("</p>\n")
			inPara = false
		}
		if inUL {
			buf.WriteString("</ul>\n")
			inUL = false
		}
		if inOL {
			buf.WriteString("</ol>\n")
			inOL = false
		}
		if inQuote {
			buf.WriteString("</blockquote>\n")
			inQuote = false
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inCode {
			if strings.HasPrefix(trimmed, "```") {
				buf.WriteString("</code></pre>\n")
				inCode = false
				continue
			}
			buf.WriteString(html.EscapeString(line))
			buf.WriteByte('\n')
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "```"):
			closeBlocks()
			buf.WriteString("<pre><code>")
			inCode = true

		case trimmed == "":
			closeBlocks()

		case trimmed == "---":
			closeBlocks()
			buf.WriteString("<hr>\n")

		case strings.HasPrefix(trimmed, "### "):
			closeBlocks()
			buf.WriteString("<h3>" + inline(strings.TrimPrefix(trimmed, "### ")) + "</h3>\n")

		case strings.HasPrefix(trimmed, "## "):
			closeBlocks()
			buf.WriteString("<h2>" + inline(strings.TrimPrefix(trimmed, "## ")) + "</h2>\n")

		case strings.HasPrefix(trimmed, "# "):
			closeBlocks()
			buf.WriteString("<h1>" + inline(strings.TrimPrefix(trimmed, "# ")) + "</h1>\n")

		case strings.HasPrefix(trimmed, "> "):
			if !inQuote {
				closeBlocks()
				buf.WriteString("<blockquote>\n")
				inQuote = true
			}
			buf.WriteString("<p>" + inline(strings.TrimPrefix(trimmed, "> ")) + "</p>\n")

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			if !inUL {
				closeBlocks()
				buf.WriteString("<ul>\n")
				inUL = true
			}
			buf.WriteString("<li>" + inline(trimmed[2:]) + "</li>\n")

		case reOrdered.MatchString(trimmed):
			if !inOL {
				closeBlocks()
				buf.WriteString("<ol>\n")
				inOL = true
			}
			item := reOrdered.ReplaceAllString(trimmed, "")
			buf.WriteString("<li>" + inline(item) + "</li>\n")

		default:
			if !inPara {
				closeBlocks()
				buf.WriteString("<p>")
				inPara = true
			} else {
				buf.WriteByte(' ')
			}
			buf.WriteString(inline(trimmed))
		}
	}
	if inCode {
		buf.WriteString("</code></pre>\n")
	}
	closeBlocks()
}

// inline escapes the text and applies span-level markup. Escaping happens
// first so generated tags survive.
func inline(s string) string {
	s = html.EscapeString(s)
	s = reInlineCode.ReplaceAllString(s, "<code>$1</code>")
	s = reBold.ReplaceAllString(s, "<strong>$1</strong>")
	s = reItalic.ReplaceAllString(s, "<em>$1</em>")
	s = reLink.ReplaceAllStringFunc(s, func(m string) string {
		parts := reLink.FindStringSubmatch(m)
		text, href := parts[1], parts[2]
		if !safeHref(href) {
			return text
		}
		return `<a href="` + href + `">` + text + `</a>`
	})
	return s
}

func safeHref(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "/") ||
		strings.HasPrefix(lower, "#")
}
