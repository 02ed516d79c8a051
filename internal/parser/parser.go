package parser

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
)

// Parser converts raw document bytes into a page-oriented Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// extensionKinds maps file extensions to document kinds.
var extensionKinds = map[string]doctree.Kind{
	".txt":      doctree.KindText,
	".md":       doctree.KindMarkdown,
	".markdown": doctree.KindMarkdown,
	".csv":      doctree.KindCSV,
	".html":     doctree.KindHTML,
	".htm":      doctree.KindHTML,
	".pdf":      doctree.KindPDF,
	".docx":     doctree.KindDOCX,
}

// Detect resolves the document kind from the filename, falling back to the
// leading bytes of the content when the extension is unknown.
func Detect(filename string, head []byte) (doctree.Kind, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if k, ok := extensionKinds[ext]; ok {
		return k, nil
	}
	switch {
	case bytes.HasPrefix(head, []byte("%PDF-")):
		return doctree.KindPDF, nil
	case bytes.HasPrefix(head, []byte("PK\x03\x04")):
		return doctree.KindDOCX, nil
	}
	return doctree.KindUnknown, fmt.Errorf("unsupported file extension: %s", ext)
}

// ForKind returns the parser for a resolved kind.
func ForKind(kind doctree.Kind) (Parser, error) {
	switch kind {
	case doctree.KindText:
		return &TextParser{}, nil
	case doctree.KindMarkdown:
		return &MarkdownParser{}, nil
	case doctree.KindCSV:
		return &CSVParser{}, nil
	case doctree.KindHTML:
		return &HTMLParser{}, nil
	case doctree.KindPDF:
		return &PDFParser{}, nil
	case doctree.KindDOCX:
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported document kind: %s", kind)
	}
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	kind, err := Detect(filename, nil)
	if err != nil {
		return nil, err
	}
	return ForKind(kind)
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	_, ok := extensionKinds[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// baseMetadata carries the entries every adapter reports.
func baseMetadata(kind doctree.Kind, filename string) doctree.Metadata {
	var md doctree.Metadata
	md.Set(doctree.MetaResourceName, filename)
	md.Set(doctree.MetaContentType, kind.ContentType())
	return md
}

// trimExt strips any of exts from filename for use as a fallback title.
func trimExt(filename string, exts ...string) string {
	for _, ext := range exts {
		if t, ok := strings.CutSuffix(filename, ext); ok {
			return t
		}
	}
	return filename
}
