package convert

import (
	"github.com/dgallion1/doc2xhtml/internal/doctree"
	"github.com/dgallion1/doc2xhtml/internal/markup"
)

// writeAnnotations renders a page's annotations in source order.
func writeAnnotations(s *markup.Sink, annots []doctree.Annotation) error {
	for _, a := range annots {
		var err error
		switch a := a.(type) {
		case doctree.LinkAnnotation:
			err = writeLink(s, a)
		case *doctree.LinkAnnotation:
			if a != nil {
				err = writeLink(s, *a)
			}
		case doctree.MarkupAnnotation:
			err = writeMarkup(s, a)
		case *doctree.MarkupAnnotation:
			if a != nil {
				err = writeMarkup(s, *a)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeLink(s *markup.Sink, a doctree.LinkAnnotation) error {
	if a.URI == "" {
		return nil
	}
	if err := s.Open("div", markup.Class("annotation")); err != nil {
		return err
	}
	if err := s.Open("a", markup.Attr{Name: "href", Value: a.URI}); err != nil {
		return err
	}
	if err := s.Close("a"); err != nil {
		return err
	}
	return s.Close("div")
}

func writeMarkup(s *markup.Sink, a doctree.MarkupAnnotation) error {
	if a.Empty() {
		return nil
	}
	if err := s.Open("div", markup.Class("annotation")); err != nil {
		return err
	}
	parts := []struct {
		class string
		value doctree.Optional[string]
	}{
		{"annotationTitle", a.Title},
		{"annotationSubject", a.Subject},
		{"annotationContents", a.Contents},
	}
	for _, p := range parts {
		v, ok := p.value.Get()
		if !ok {
			continue
		}
		if err := s.Element("div", v, markup.Class(p.class)); err != nil {
			return err
		}
	}
	return s.Close("div")
}
