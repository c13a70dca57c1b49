// Package htmldoc edits index.html documents: it appends script and stylesheet
// tags and renders the result.
package htmldoc

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
	head *html.Node
	body *html.Node
}

// Parse parses src. The parser always synthesizes html, head and body
// elements, so every Document has both.
func Parse(src []byte) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	d := &Document{root: root}
	d.head = find(root, atom.Head)
	d.body = find(root, atom.Body)
	return d, nil
}

// AppendScript appends <script src="src"> to the body. An empty kind omits the
// type attribute.
func (d *Document) AppendScript(src, kind string) {
	attrs := []html.Attribute{{Key: "src", Val: src}}
	if kind != "" {
		attrs = append(attrs, html.Attribute{Key: "type", Val: kind})
	}
	d.body.AppendChild(element(atom.Script, attrs))
}

// AppendStylesheet appends <link rel="stylesheet" href="href"> to the head.
func (d *Document) AppendStylesheet(href string) {
	d.head.AppendChild(element(atom.Link, []html.Attribute{
		{Key: "rel", Val: "stylesheet"},
		{Key: "href", Val: href},
	}))
}

// Render serializes the document.
func (d *Document) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func element(a atom.Atom, attrs []html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}
