package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
)

func parsePages(t *testing.T, p Parser, input, filename string) (*doctree.Document, []*doctree.Page) {
	t.Helper()
	doc, err := p.Parse(strings.NewReader(input), filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pages, err := doc.CollectPages()
	if err != nil {
		t.Fatalf("unexpected page error: %v", err)
	}
	return doc, pages
}

// flatten renders a page's runs as plain text: word breaks as spaces, line
// breaks as newlines and paragraph breaks as blank lines.
func flatten(page *doctree.Page) string {
	var b strings.Builder
	for _, r := range page.Runs {
		switch r.Kind {
		case doctree.RunText:
			b.WriteString(r.Text)
		case doctree.RunWordBreak:
			b.WriteString(" ")
		case doctree.RunLineBreak:
			b.WriteString("\n")
		case doctree.RunParagraphBreak:
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func outlineTitles(n *doctree.OutlineNode) []string {
	if n == nil {
		return nil
	}
	var out []string
	for _, c := range n.Children {
		out = append(out, c.Title)
	}
	return out
}
