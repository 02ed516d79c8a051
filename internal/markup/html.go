package markup

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLRenderer builds an XHTML node tree from markup events. Meta elements
// are placed in <head>; everything else goes to <body>.
type HTMLRenderer struct {
	doc   *html.Node
	head  *html.Node
	body  *html.Node
	cur   *html.Node
	stack []*html.Node

	afterMeta bool // last event closed a meta element placed in <head>
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

func (r *HTMLRenderer) StartDocument() error {
	r.doc = &html.Node{Type: html.DocumentNode}
	r.doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element("html", []html.Attribute{{Key: "xmlns", Val: "http://www.w3.org/1999/xhtml"}})
	r.head = element("head", nil)
	r.body = element("body", nil)
	root.AppendChild(r.head)
	root.AppendChild(r.body)
	r.doc.AppendChild(root)

	r.cur = r.body
	r.stack = r.stack[:0]
	return nil
}

func (r *HTMLRenderer) StartElement(tag string, attrs []Attr) error {
	if r.cur == nil {
		return fmt.Errorf("html renderer: element <%s> outside document", tag)
	}
	var ha []html.Attribute
	for _, a := range attrs {
		ha = append(ha, html.Attribute{Key: a.Name, Val: a.Value})
	}
	n := element(tag, ha)

	parent := r.cur
	if tag == "meta" && r.cur == r.body {
		parent = r.head
	}
	parent.AppendChild(n)
	r.afterMeta = false
	r.stack = append(r.stack, r.cur)
	r.cur = n
	return nil
}

func (r *HTMLRenderer) Characters(text string) error {
	if r.cur == nil {
		return fmt.Errorf("html renderer: text outside document")
	}
	// The newline following a meta element belongs to the head.
	target := r.cur
	if r.afterMeta && isNewline(text) {
		target = r.head
	}
	r.afterMeta = false
	if last := target.LastChild; last != nil && last.Type == html.TextNode {
		last.Data += text
		return nil
	}
	target.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return nil
}

func (r *HTMLRenderer) EndElement(tag string) error {
	n := len(r.stack)
	if n == 0 || r.cur.Data != tag {
		return fmt.Errorf("html renderer: unexpected </%s>", tag)
	}
	r.afterMeta = r.cur.Parent == r.head
	r.cur = r.stack[n-1]
	r.stack = r.stack[:n-1]
	return nil
}

func (r *HTMLRenderer) EndDocument() error {
	r.cur = nil
	return nil
}

// Render writes the document built so far.
func (r *HTMLRenderer) Render(w io.Writer) error {
	if r.doc == nil {
		return fmt.Errorf("html renderer: no document")
	}
	return html.Render(w, r.doc)
}

func element(tag string, attrs []html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func isNewline(s string) bool {
	for _, c := range s {
		if c != '\n' {
			return false
		}
	}
	return s != ""
}
