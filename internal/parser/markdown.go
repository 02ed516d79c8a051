package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Thematic breaks
// start a new page, headings build the outline and links become
// annotations.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	w := &markdownWalker{
		src:     src,
		pages:   newPageBuilder(),
		outline: newOutlineBuilder(),
	}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n)
	}

	title := trimExt(filename, ".md", ".markdown")
	meta := baseMetadata(doctree.KindMarkdown, filename)
	if w.firstH1 != "" {
		title = w.firstH1
		meta.Set(doctree.MetaTitle, w.firstH1)
	}

	return &doctree.Document{
		Kind:     doctree.KindMarkdown,
		Title:    title,
		Pages:    doctree.PageSlice(w.pages.finish()...),
		Outline:  w.outline.tree(),
		Metadata: meta,
	}, nil
}

type markdownWalker struct {
	src     []byte
	pages   *pageBuilder
	outline *outlineBuilder
	firstH1 string
}

func (w *markdownWalker) block(n ast.Node) {
	switch node := n.(type) {
	case *ast.ThematicBreak:
		w.pages.newPage()
	case *ast.Heading:
		title := inlineText(node, w.src)
		w.outline.add(node.Level, title)
		if node.Level == 1 && w.firstH1 == "" {
			w.firstH1 = title
		}
		w.pages.paragraph()
		w.inlines(node)
		w.pages.paragraph()
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		w.pages.paragraph()
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			if i > 0 {
				w.pages.lineBreak()
			}
			seg := lines.At(i)
			w.pages.text(strings.TrimRight(string(seg.Value(w.src)), "\r\n"))
		}
		w.pages.paragraph()
	case *ast.Paragraph, *ast.TextBlock:
		w.pages.paragraph()
		w.inlines(n)
		w.pages.paragraph()
	default:
		// Containers: lists, list items, block quotes.
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c)
		}
	}
}

func (w *markdownWalker) inlines(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			w.pages.text(string(node.Segment.Value(w.src)))
			if node.HardLineBreak() || node.SoftLineBreak() {
				w.pages.lineBreak()
			}
		case *ast.String:
			w.pages.text(string(node.Value))
		case *ast.AutoLink:
			url := string(node.URL(w.src))
			w.pages.text(string(node.Label(w.src)))
			w.pages.annotate(doctree.LinkAnnotation{URI: url})
		case *ast.Link:
			w.inlines(node)
			w.pages.annotate(doctree.LinkAnnotation{URI: string(node.Destination)})
		case *ast.Image:
			// Alt text only.
			w.inlines(node)
		default:
			w.inlines(c)
		}
	}
}

// inlineText gets the plain text of a node's inline children.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Text:
				buf.Write(node.Segment.Value(src))
				if node.SoftLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(node.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}
