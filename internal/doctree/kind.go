package doctree

// Kind is the container format a document was read from.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindPDF
	KindDOCX
	KindMarkdown
	KindHTML
	KindText
	KindCSV
)

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindDOCX:
		return "docx"
	case KindMarkdown:
		return "markdown"
	case KindHTML:
		return "html"
	case KindText:
		return "text"
	case KindCSV:
		return "csv"
	}
	return "unknown"
}

// ContentType returns the MIME type reported in document metadata.
func (k Kind) ContentType() string {
	switch k {
	case KindPDF:
		return "application/pdf"
	case KindDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case KindMarkdown:
		return "text/markdown"
	case KindHTML:
		return "text/html"
	case KindText:
		return "text/plain"
	case KindCSV:
		return "text/csv"
	}
	return "application/octet-stream"
}
