package parser

import (
	"slices"
	"testing"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
)

func TestMarkdownParser_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	doc, pages := parsePages(t, &MarkdownParser{}, input, "doc.md")

	if doc.Title != "Title" {
		t.Errorf("expected title %q, got %q", "Title", doc.Title)
	}
	if got := outlineTitles(doc.Outline); !slices.Equal(got, []string{"Title"}) {
		t.Fatalf("expected top-level outline [Title], got %v", got)
	}
	h1 := doc.Outline.Children[0]
	if got := outlineTitles(h1); !slices.Equal(got, []string{"Section A", "Section B"}) {
		t.Fatalf("expected h2 entries, got %v", got)
	}
	if got := outlineTitles(h1.Children[0]); !slices.Equal(got, []string{"Subsection A1"}) {
		t.Errorf("expected h3 under Section A, got %v", got)
	}

	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	want := "Title\n\nIntro text.\n\nSection A\n\nSection A content.\n\nSubsection A1\n\n" +
		"Subsection A1 content.\n\nSection B\n\nSection B content."
	if got := flatten(pages[0]); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	doc, pages := parsePages(t, &MarkdownParser{}, "Just some text.\n\nAnother paragraph.", "plain.md")
	if doc.Title != "plain" {
		t.Errorf("expected title %q, got %q", "plain", doc.Title)
	}
	if doc.Outline != nil {
		t.Errorf("expected no outline, got %v", outlineTitles(doc.Outline))
	}
	if got := flatten(pages[0]); got != "Just some text.\n\nAnother paragraph." {
		t.Errorf("unexpected text %q", got)
	}
}

func TestMarkdownParser_ThematicBreakStartsPage(t *testing.T) {
	_, pages := parsePages(t, &MarkdownParser{}, "one\n\n---\n\ntwo\n", "pages.md")
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[1].Number != 2 {
		t.Errorf("expected second page number 2, got %d", pages[1].Number)
	}
	if flatten(pages[0]) != "one" || flatten(pages[1]) != "two" {
		t.Errorf("unexpected pages %q, %q", flatten(pages[0]), flatten(pages[1]))
	}
}

func TestMarkdownParser_Links(t *testing.T) {
	_, pages := parsePages(t, &MarkdownParser{}, "See [Go](https://go.dev) and <https://example.com>.", "links.md")
	if got := flatten(pages[0]); got != "See Go and https://example.com." {
		t.Errorf("unexpected text %q", got)
	}
	want := []doctree.Annotation{
		doctree.LinkAnnotation{URI: "https://go.dev"},
		doctree.LinkAnnotation{URI: "https://example.com"},
	}
	if !slices.Equal(pages[0].Annotations, want) {
		t.Errorf("expected %v, got %v", want, pages[0].Annotations)
	}
}

func TestMarkdownParser_LineBreaks(t *testing.T) {
	_, pages := parsePages(t, &MarkdownParser{}, "first\nsecond", "lines.md")
	if got := flatten(pages[0]); got != "first\nsecond" {
		t.Errorf("expected %q, got %q", "first\nsecond", got)
	}
}

func TestMarkdownParser_CodeBlock(t *testing.T) {
	_, pages := parsePages(t, &MarkdownParser{}, "```\nx := 1\ny := 2\n```\n", "code.md")
	if got := flatten(pages[0]); got != "x := 1\ny := 2" {
		t.Errorf("expected %q, got %q", "x := 1\ny := 2", got)
	}
}
