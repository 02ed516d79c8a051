package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
)

// CSVParser handles CSV files. Rows become lines of one paragraph with cells
// separated by word breaks; there is no table model.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	page := &doctree.Page{Number: 1}
	for i, row := range records {
		if i > 0 {
			page.Runs = append(page.Runs, doctree.LineBreak())
		}
		first := true
		for _, cell := range row {
			if cell == "" {
				continue
			}
			if !first {
				page.Runs = append(page.Runs, doctree.WordBreak())
			}
			page.Runs = append(page.Runs, doctree.Text(cell))
			first = false
		}
	}

	md := baseMetadata(doctree.KindCSV, filename)
	if len(records) > 0 {
		md.Set("csv:rows", fmt.Sprint(len(records)))
	}
	return &doctree.Document{
		Kind:     doctree.KindCSV,
		Title:    trimExt(filename, ".csv"),
		Pages:    doctree.PageSlice(page),
		Metadata: md,
	}, nil
}
