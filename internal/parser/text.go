package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
)

// TextParser handles plain text files. Blank lines separate paragraphs and a
// form feed starts a new page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pages []*doctree.Page
	page := &doctree.Page{Number: 1}
	inPara := false // a paragraph has text on the current page
	pendingBreak := false

	for scanner.Scan() {
		line := scanner.Text()
		for {
			before, after, found := strings.Cut(line, "\f")
			if strings.TrimSpace(before) == "" {
				if inPara {
					pendingBreak = true
				}
			} else {
				switch {
				case pendingBreak:
					page.Runs = append(page.Runs, doctree.ParagraphBreak())
				case inPara:
					page.Runs = append(page.Runs, doctree.LineBreak())
				}
				page.Runs = append(page.Runs, doctree.Text(before))
				inPara, pendingBreak = true, false
			}
			if !found {
				break
			}
			pages = append(pages, page)
			page = &doctree.Page{Number: len(pages) + 1}
			inPara, pendingBreak = false, false
			line = after
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(page.Runs) > 0 || len(pages) == 0 {
		pages = append(pages, page)
	}

	title := trimExt(filename, ".txt")
	return &doctree.Document{
		Kind:     doctree.KindText,
		Title:    title,
		Pages:    doctree.PageSlice(pages...),
		Metadata: baseMetadata(doctree.KindText, filename),
	}, nil
}
