package doctree

import "iter"

// Document is the page-oriented model a source adapter hands to the converter.
// Everything reachable from it is borrowed for one conversion pass.
type Document struct {
	Kind     Kind
	Title    string                  // Document title (from metadata or filename)
	Pages    iter.Seq2[*Page, error] // Pages in source order; a non-nil error aborts the walk
	Outline  *OutlineNode            // Bookmark root (nil if the document has none)
	Form     *Form                   // Interactive form (nil if the document has none)
	Metadata Metadata                // Rendered as meta elements after the body
}

// Page is one page of positioned text plus its annotations.
type Page struct {
	Number      int // 1-based
	Runs        []TextRun
	Annotations []Annotation
}

// PageSlice adapts an in-memory page list to the Document.Pages iterator.
func PageSlice(pages ...*Page) iter.Seq2[*Page, error] {
	return func(yield func(*Page, error) bool) {
		for _, p := range pages {
			if !yield(p, nil) {
				return
			}
		}
	}
}

// OutlineNode is a bookmark. Traversal is top-down only.
type OutlineNode struct {
	Title    string
	Children []*OutlineNode
}

// Form is the root of an interactive form.
type Form struct {
	Fields []*FormField
}

// FormField is a node in the form-field tree. Fields with kids are groups.
type FormField struct {
	PartialName   Optional[string]
	QualifiedName Optional[string]
	AlternateName Optional[string]
	Value         Optional[string]
	Kids          []*FormField
}

func (f *FormField) HasKids() bool {
	return len(f.Kids) > 0
}

// CollectPages drains the page iterator into a slice.
func (d *Document) CollectPages() ([]*Page, error) {
	if d.Pages == nil {
		return nil, nil
	}
	var pages []*Page
	for p, err := range d.Pages {
		if err != nil {
			return pages, err
		}
		pages = append(pages, p)
	}
	return pages, nil
}
