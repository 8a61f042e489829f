package ingest

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is the readable content of an HTML page.
type Document struct {
	Title string
	Text  string
}

var skipped = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Nav: true,
	atom.Footer: true, atom.Header: true, atom.Aside: true, atom.Iframe: true,
	atom.Form: true, atom.Button: true, atom.Template: true,
}

var paragraphs = map[atom.Atom]bool{
	atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Blockquote: true, atom.Section: true,
	atom.Table: true, atom.Dl: true,
}

var lineBreaks = map[atom.Atom]bool{
	atom.Li: true, atom.Tr: true, atom.Dt: true, atom.Dd: true, atom.Div: true,
	atom.Ul: true, atom.Ol: true, atom.Pre: true,
}

// FromHTML extracts the readable text of an HTML page such as a published
// terms-of-service page. It prefers <main> or <article> over <body> and drops
// navigation, headers, footers, forms and scripts.
func FromHTML(input []byte) Document {
	root, err := html.Parse(bytes.NewReader(input))
	if err != nil || root == nil {
		return Document{}
	}
	var title string
	if t := findFirst(root, atom.Title); t != nil && t.FirstChild != nil {
		title = strings.TrimSpace(t.FirstChild.Data)
	}
	content := findFirst(root, atom.Main)
	if content == nil {
		content = findFirst(root, atom.Article)
	}
	if content == nil {
		content = findFirst(root, atom.Body)
	}
	var b strings.Builder
	if content != nil {
		collectText(&b, content)
	}
	return Document{Title: title, Text: normalizeWhitespace(b.String())}
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		if skipped[n.DataAtom] || hidden(n) {
			return
		}
		switch {
		case n.DataAtom == atom.Br:
			b.WriteString("\n")
		case paragraphs[n.DataAtom]:
			b.WriteString("\n\n")
		case lineBreaks[n.DataAtom]:
			b.WriteString("\n")
		case n.DataAtom == atom.Td || n.DataAtom == atom.Th:
			b.WriteString(" ")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		if paragraphs[n.DataAtom] {
			b.WriteString("\n\n")
		}
	}
}

// hidden reports elements marked hidden or looking like cookie banners.
func hidden(n *html.Node) bool {
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if key == "hidden" || (key == "aria-hidden" && attr.Val == "true") {
			return true
		}
		if key == "id" || key == "class" || key == "role" {
			val := strings.ToLower(attr.Val)
			if strings.Contains(val, "cookie") || strings.Contains(val, "consent") {
				return true
			}
		}
	}
	return false
}
