package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Word documents carry no page geometry, so
// the whole body is a single page; heading styles build the outline.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	pages := newPageBuilder()
	outline := newOutlineBuilder()
	title := trimExt(filename, ".docx")
	meta := baseMetadata(doctree.KindDOCX, filename)
	titled := false

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		style := docxStyle(para)
		if level := docxHeadingLevel(style); level > 0 {
			outline.add(level, text)
		}
		if strings.EqualFold(style, "Title") && !titled {
			title = text
			meta.Set(doctree.MetaTitle, text)
			titled = true
		}

		pages.paragraph()
		pages.text(text)
		pages.paragraph()
	}

	return &doctree.Document{
		Kind:     doctree.KindDOCX,
		Title:    title,
		Pages:    doctree.PageSlice(pages.finish()...),
		Outline:  outline.tree(),
		Metadata: meta,
	}, nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// docxHeadingLevel accepts both style ids ("Heading2") and names ("heading 2").
func docxHeadingLevel(style string) int {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	rest, ok := strings.CutPrefix(s, "heading")
	if !ok || len(rest) != 1 || rest[0] < '1' || rest[0] > '6' {
		return 0
	}
	return int(rest[0] - '0')
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
