package convert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
	"github.com/dgallion1/doc2xhtml/internal/markup"
)

// Walker turns parser callbacks into a well-formed markup stream. It owns
// its sink and paragraph state, so one Walker serves exactly one conversion.
// Every method returns a *ConversionFailure on error.
type Walker struct {
	sink  *markup.Sink
	para  paragraphs
	opts  Options
	log   *slog.Logger
	page  int
	pages int
}

func NewWalker(h markup.Handler, opts Options) *Walker {
	opts = opts.withDefaults()
	s := markup.NewSink(h)
	return &Walker{
		sink: s,
		para: paragraphs{sink: s},
		opts: opts,
		log:  opts.Logger,
	}
}

// Convert walks doc and sends its markup to h.
func Convert(ctx context.Context, doc *doctree.Document, h markup.Handler, opts Options) error {
	w := NewWalker(h, opts)
	if err := w.StartDocument(); err != nil {
		return err
	}
	if doc.Pages != nil {
		for page, err := range doc.Pages {
			if err != nil {
				return failure(fmt.Sprintf("read page %d", w.pages+1), err)
			}
			if err := ctx.Err(); err != nil {
				return failure("convert", err)
			}
			if err := w.WritePage(page); err != nil {
				return err
			}
		}
	}
	return w.EndDocument(doc)
}

func (w *Walker) StartDocument() error {
	return failure("start document", w.sink.StartDocument())
}

// WritePage emits one complete page: text, then annotations.
func (w *Walker) WritePage(p *doctree.Page) error {
	if p == nil {
		return nil
	}
	if err := w.StartPage(p); err != nil {
		return err
	}
	if err := streamRuns(p.Runs, w.opts, w); err != nil {
		return failure(fmt.Sprintf("write page %d", w.page), err)
	}
	return w.EndPage(p)
}

func (w *Walker) StartPage(p *doctree.Page) error {
	w.pages++
	w.page = w.pages
	if p != nil && p.Number > 0 {
		w.page = p.Number
	}
	op := fmt.Sprintf("start page %d", w.page)
	if err := w.sink.Open("div", markup.Class("page")); err != nil {
		return failure(op, err)
	}
	return failure(op, w.para.start())
}

func (w *Walker) EndPage(p *doctree.Page) error {
	op := fmt.Sprintf("end page %d", w.page)
	if err := w.para.end(); err != nil {
		return failure(op, err)
	}
	if w.opts.ExtractAnnotationText && p != nil {
		if err := writeAnnotations(w.sink, p.Annotations); err != nil {
			return failure(op, err)
		}
	}
	return failure(op, w.sink.Close("div"))
}

func (w *Walker) StartParagraph() error {
	return failure("start paragraph", w.para.start())
}

func (w *Walker) EndParagraph() error {
	return failure("end paragraph", w.para.end())
}

func (w *Walker) WriteText(text string) error {
	return failure("write text", w.sink.Characters(text))
}

// WordSeparator writes a space, or nothing when auto-space is off.
func (w *Walker) WordSeparator() error {
	return failure("write word separator", w.sink.Characters(w.opts.wordSeparator()))
}

func (w *Walker) LineSeparator() error {
	return failure("write line separator", w.sink.Newline())
}

// EndDocument emits the outline, the form and the metadata, then closes
// the document.
func (w *Walker) EndDocument(doc *doctree.Document) error {
	if doc != nil {
		if err := writeOutline(w.sink, doc.Outline, w.log); err != nil {
			return failure("write outline", err)
		}
		if w.opts.ExtractAcroForm {
			if err := writeForm(w.sink, doc.Form, w.opts.MaxFormDepth, w.log); err != nil {
				return failure("write form", err)
			}
		}
		if err := writeMetadata(w.sink, doc.Metadata); err != nil {
			return failure("write metadata", err)
		}
	}
	if err := w.sink.EndDocument(); err != nil {
		return failure("end document", err)
	}
	w.log.Debug("document converted", "pages", w.pages)
	return nil
}

// Pages returns the number of pages written so far.
func (w *Walker) Pages() int {
	return w.pages
}

func writeMetadata(s *markup.Sink, md doctree.Metadata) error {
	for _, e := range md {
		v, ok := e.Value.Get()
		if !ok {
			continue
		}
		if err := s.Meta(e.Name, v); err != nil {
			return err
		}
	}
	return nil
}
