package convert

import (
	"log/slog"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
	"github.com/dgallion1/doc2xhtml/internal/markup"
)

// formWriter renders the form-field tree as nested ordered lists.
type formWriter struct {
	sink     *markup.Sink
	log      *slog.Logger
	maxDepth int
}

func writeForm(s *markup.Sink, form *doctree.Form, maxDepth int, log *slog.Logger) error {
	if form == nil || len(form.Fields) == 0 {
		return nil
	}
	w := &formWriter{sink: s, log: log, maxDepth: maxDepth}

	if err := s.Open("div", markup.Class("acroform")); err != nil {
		return err
	}
	if err := s.Open("ol"); err != nil {
		return err
	}
	for _, f := range form.Fields {
		if err := w.field(f, 0); err != nil {
			return err
		}
	}
	if err := s.Close("ol"); err != nil {
		return err
	}
	return s.Close("div")
}

func (w *formWriter) field(f *doctree.FormField, depth int) error {
	if f == nil {
		return nil
	}
	if depth >= w.maxDepth {
		w.log.Debug("form field depth limit reached, dropping branch", "depth", depth)
		return nil
	}

	attrs, body := fieldContent(f)
	if !f.HasKids() {
		if len(attrs) == 0 && body == "" {
			return nil
		}
		return w.sink.Element("li", body, attrs...)
	}

	// Group headers are structural and always rendered.
	if err := w.sink.Element("li", body, attrs...); err != nil {
		return err
	}
	if err := w.sink.Open("ol"); err != nil {
		return err
	}
	for _, kid := range f.Kids {
		if err := w.field(kid, depth+1); err != nil {
			return err
		}
	}
	return w.sink.Close("ol")
}

// fieldContent returns the attributes and text body for a field. Values
// that are absent, empty or the literal "null" produce no body.
func fieldContent(f *doctree.FormField) ([]markup.Attr, string) {
	var attrs []markup.Attr
	if v, ok := f.PartialName.Get(); ok {
		attrs = append(attrs, markup.Attr{Name: "partialName", Value: v})
	}
	if v, ok := f.QualifiedName.Get(); ok {
		attrs = append(attrs, markup.Attr{Name: "fullyQualName", Value: v})
	}
	if v, ok := f.AlternateName.Get(); ok {
		attrs = append(attrs, markup.Attr{Name: "altName", Value: v})
	}

	var body string
	if v, ok := f.Value.Get(); ok && v != "" && v != "null" {
		body = v + " "
	}
	return attrs, body
}
