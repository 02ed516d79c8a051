package markup

import (
	"bufio"
	"io"
)

// blockTags end with a line break in plain-text output.
var blockTags = map[string]bool{
	"p":   true,
	"div": true,
	"li":  true,
	"ul":  true,
	"ol":  true,
}

// TextRenderer writes the character content of a markup stream as plain text.
type TextRenderer struct {
	w        *bufio.Writer
	lastByte byte
	skip     int // depth inside elements whose content is not text (meta)
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: bufio.NewWriter(w), lastByte: '\n'}
}

func (r *TextRenderer) StartDocument() error {
	return nil
}

func (r *TextRenderer) StartElement(tag string, attrs []Attr) error {
	if tag == "meta" || r.skip > 0 {
		r.skip++
	}
	return nil
}

func (r *TextRenderer) Characters(text string) error {
	if r.skip > 0 || text == "" {
		return nil
	}
	// Collapse blank lines.
	if r.lastByte == '\n' && isNewline(text) {
		return nil
	}
	if _, err := r.w.WriteString(text); err != nil {
		return err
	}
	r.lastByte = text[len(text)-1]
	return nil
}

func (r *TextRenderer) EndElement(tag string) error {
	if r.skip > 0 {
		r.skip--
		return nil
	}
	if blockTags[tag] && r.lastByte != '\n' {
		if err := r.w.WriteByte('\n'); err != nil {
			return err
		}
		r.lastByte = '\n'
	}
	return nil
}

func (r *TextRenderer) EndDocument() error {
	return r.w.Flush()
}
