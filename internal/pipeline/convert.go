package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"iter"

	"github.com/dgallion1/doc2xhtml/internal/convert"
	"github.com/dgallion1/doc2xhtml/internal/doctree"
	"github.com/dgallion1/doc2xhtml/internal/markup"
	"github.com/dgallion1/doc2xhtml/internal/parser"
)

// Format selects the renderer for a conversion.
type Format string

const (
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// ParseFormat accepts "html" (the default when empty) and "text".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatHTML:
		return FormatHTML, nil
	case FormatText:
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported format: %q", s)
}

func (f Format) ContentType() string {
	if f == FormatText {
		return "text/plain; charset=utf-8"
	}
	return "application/xhtml+xml; charset=utf-8"
}

// Result is a rendered document.
type Result struct {
	Body        []byte
	ContentType string
	Kind        doctree.Kind
	Title       string
	Pages       int
}

// Converter runs parse, convert and render for one upload. It holds no
// per-conversion state and is safe for concurrent use.
type Converter struct {
	Options     convert.Options
	PDFFallback bool
}

// Parse resolves the document kind once and runs the matching adapter.
func (c Converter) Parse(data []byte, filename string) (*doctree.Document, error) {
	kind, err := parser.Detect(filename, data[:min(len(data), 8)])
	if err != nil {
		return nil, err
	}
	p, err := parser.ForKind(kind)
	if err != nil {
		return nil, err
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = c.PDFFallback
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", kind, err)
	}
	return doc, nil
}

// Render converts doc and renders it in format.
func (c Converter) Render(ctx context.Context, doc *doctree.Document, format Format) (*Result, error) {
	res := &Result{ContentType: format.ContentType(), Kind: doc.Kind, Title: doc.Title}
	if doc.Pages != nil {
		doc.Pages = countPages(doc.Pages, &res.Pages)
	}

	var buf bytes.Buffer
	switch format {
	case FormatText:
		if err := convert.Convert(ctx, doc, markup.NewTextRenderer(&buf), c.Options); err != nil {
			return nil, err
		}
	default:
		r := markup.NewHTMLRenderer()
		if err := convert.Convert(ctx, doc, r, c.Options); err != nil {
			return nil, err
		}
		if err := r.Render(&buf); err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
	}
	res.Body = buf.Bytes()
	return res, nil
}

// Convert parses data and renders it in format.
func (c Converter) Convert(ctx context.Context, data []byte, filename string, format Format) (*Result, error) {
	doc, err := c.Parse(data, filename)
	if err != nil {
		return nil, err
	}
	return c.Render(ctx, doc, format)
}

func countPages(pages iter.Seq2[*doctree.Page, error], n *int) iter.Seq2[*doctree.Page, error] {
	return func(yield func(*doctree.Page, error) bool) {
		for p, err := range pages {
			if err == nil {
				*n++
			}
			if !yield(p, err) {
				return
			}
		}
	}
}
