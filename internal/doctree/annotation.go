package doctree

// Annotation is a page annotation. The set of variants is closed:
// LinkAnnotation and MarkupAnnotation.
type Annotation interface {
	annotation()
}

// LinkAnnotation points at an external URI.
type LinkAnnotation struct {
	URI string
}

// MarkupAnnotation is a comment-style annotation (sticky note, highlight, ...).
type MarkupAnnotation struct {
	Title    Optional[string] // Popup title, usually the author
	Subject  Optional[string]
	Contents Optional[string]
}

func (LinkAnnotation) annotation()   {}
func (MarkupAnnotation) annotation() {}

// Empty reports whether none of the markup fields is present.
func (m MarkupAnnotation) Empty() bool {
	return !m.Title.IsPresent() && !m.Subject.IsPresent() && !m.Contents.IsPresent()
}
