// Package render turns model output into the rich text shown on the result
// surface and back into plain text for copying.
//
// The rich text is a small HTML subset: one <p> per output line with the SOAP
// section keywords in <strong>. Edited results come back as markdown and are
// converted to the same subset.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	keywordPattern = regexp.MustCompile(`(Subjective|Assessment|Objective|Plan)`)

	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()

	mdRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

// FormatHTML formats model output for the result surface. Every line is
// trimmed, escaped and wrapped in <p>; section keywords are bolded.
func FormatHTML(output string) string {
	var buf strings.Builder
	for _, line := range strings.Split(output, "\n") {
		escaped := strictPolicy.Sanitize(strings.TrimSpace(line))
		buf.WriteString("<p>")
		buf.WriteString(keywordPattern.ReplaceAllString(escaped, "<strong>$1</strong>"))
		buf.WriteString("</p>")
	}
	return buf.String()
}

// FromMarkdown converts edited markdown to sanitized HTML.
func FromMarkdown(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return ugcPolicy.Sanitize(src)
	}
	return ugcPolicy.Sanitize(buf.String())
}

// PlainText returns the text of each top-level node, trimmed, with empty
// entries dropped and the rest separated by a blank line.
func PlainText(content string) (string, error) {
	nodes, err := parseFragment(content)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if text := strings.TrimSpace(textContent(n)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// Markdown converts result HTML to markdown for editing and terminal display.
// Empty paragraphs are dropped.
func Markdown(content string) (string, error) {
	nodes, err := parseFragment(content)
	if err != nil {
		return "", err
	}

	blocks := make([]string, 0, len(nodes))
	for _, n := range nodes {
		var buf strings.Builder
		writeMarkdown(&buf, n, 0)
		if block := strings.TrimSpace(buf.String()); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

func parseFragment(content string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse result content: %w", err)
	}
	return nodes, nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(textContent(c))
	}
	return buf.String()
}

func writeMarkdown(buf *strings.Builder, n *html.Node, depth int) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(n.Data)
		return
	case html.ElementNode:
	default:
		writeChildren(buf, n, depth)
		return
	}

	switch n.DataAtom {
	case atom.Strong, atom.B:
		wrapInline(buf, n, depth, "**")
	case atom.Em, atom.I:
		wrapInline(buf, n, depth, "*")
	case atom.Code:
		wrapInline(buf, n, depth, "`")
	case atom.Br:
		buf.WriteString("\n")
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		buf.WriteString(strings.Repeat("#", level) + " ")
		writeChildren(buf, n, depth)
		buf.WriteString("\n\n")
	case atom.Ul, atom.Ol:
		ordinal := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.DataAtom != atom.Li {
				continue
			}
			ordinal++
			buf.WriteString(strings.Repeat("  ", depth))
			if n.DataAtom == atom.Ol {
				fmt.Fprintf(buf, "%d. ", ordinal)
			} else {
				buf.WriteString("- ")
			}
			var item strings.Builder
			writeChildren(&item, c, depth+1)
			buf.WriteString(strings.TrimSpace(item.String()))
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	case atom.P, atom.Div:
		writeChildren(buf, n, depth)
		buf.WriteString("\n\n")
	default:
		writeChildren(buf, n, depth)
	}
}

func writeChildren(buf *strings.Builder, n *html.Node, depth int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeMarkdown(buf, c, depth)
	}
}

func wrapInline(buf *strings.Builder, n *html.Node, depth int, marker string) {
	var inner strings.Builder
	writeChildren(&inner, n, depth)
	text := strings.TrimSpace(inner.String())
	if text == "" {
		return
	}
	buf.WriteString(marker + text + marker)
}
