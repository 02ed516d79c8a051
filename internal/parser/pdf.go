package parser

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// Caps for walking object graphs that may be cyclic in broken files.
const (
	maxOutlineDepth   = 64
	maxOutlineEntries = 10000
	maxFieldNesting   = 64
)

// PDFParser handles PDF files. Pages are read lazily with the Go library; if
// the file cannot be opened it falls back to pdftotext when enabled.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	reader, err := recovered("open pdf", func() (*pdflib.Reader, error) {
		return pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	})
	if err != nil {
		if p.FallbackPdftotext {
			return parsePdftotext(data, filename)
		}
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	doc := &doctree.Document{
		Kind:  doctree.KindPDF,
		Title: trimExt(filename, ".pdf"),
		Pages: pdfPages(reader),
	}

	// Document-level structures are optional; a damaged one is left out
	// instead of failing the whole file.
	doc.Outline, _ = recovered("read outline", func() (*doctree.OutlineNode, error) {
		return pdfOutline(reader.Trailer().Key("Root")), nil
	})
	doc.Form, _ = recovered("read form", func() (*doctree.Form, error) {
		return pdfForm(reader.Trailer().Key("Root")), nil
	})
	doc.Metadata, _ = recovered("read info", func() (doctree.Metadata, error) {
		md := baseMetadata(doctree.KindPDF, filename)
		pdfInfo(reader, &md)
		return md, nil
	})
	if doc.Metadata == nil {
		doc.Metadata = baseMetadata(doctree.KindPDF, filename)
	}
	if t, ok := doc.Metadata.Get(doctree.MetaTitle).Get(); ok && strings.TrimSpace(t) != "" {
		doc.Title = t
	}
	return doc, nil
}

// recovered runs fn, turning a library panic into an error.
func recovered[T any](op string, fn func() (T, error)) (v T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%s: malformed pdf: %v", op, rec)
		}
	}()
	return fn()
}

func pdfPages(r *pdflib.Reader) iter.Seq2[*doctree.Page, error] {
	return func(yield func(*doctree.Page, error) bool) {
		n, err := recovered("count pages", func() (int, error) { return r.NumPage(), nil })
		if err != nil {
			yield(nil, err)
			return
		}
		for i := 1; i <= n; i++ {
			page, err := recovered(fmt.Sprintf("page %d", i), func() (*doctree.Page, error) {
				return readPDFPage(r, i), nil
			})
			if !yield(page, err) || err != nil {
				return
			}
		}
	}
}

func readPDFPage(r *pdflib.Reader, num int) *doctree.Page {
	page := &doctree.Page{Number: num}
	p := r.Page(num)
	if p.V.IsNull() {
		return page
	}

	if p.V.Key("Contents").Kind() != pdflib.Null {
		for _, t := range p.Content().Text {
			if t.S == "" {
				continue
			}
			page.Runs = append(page.Runs, doctree.PositionedText(t.S, t.X, t.Y, t.W, t.FontSize))
		}
	}

	annots := p.V.Key("Annots")
	for i := 0; i < annots.Len(); i++ {
		if a, ok := pdfAnnotation(annots.Index(i)); ok {
			page.Annotations = append(page.Annotations, a)
		}
	}
	return page
}

var markupSubtypes = map[string]bool{
	"Text": true, "FreeText": true, "Highlight": true, "Underline": true,
	"StrikeOut": true, "Squiggly": true, "Square": true, "Circle": true,
	"Polygon": true, "PolyLine": true, "Ink": true, "Stamp": true,
	"Caret": true, "FileAttachment": true, "Sound": true,
}

func pdfAnnotation(v pdflib.Value) (doctree.Annotation, bool) {
	subtype := v.Key("Subtype").Name()
	switch {
	case subtype == "Link":
		action := v.Key("A")
		if action.Key("S").Name() == "URI" {
			if uri := action.Key("URI").Text(); uri != "" {
				return doctree.LinkAnnotation{URI: uri}, true
			}
		}
		if uri := v.Key("URI").Text(); uri != "" {
			return doctree.LinkAnnotation{URI: uri}, true
		}
		return nil, false
	case markupSubtypes[subtype]:
		return doctree.MarkupAnnotation{
			Title:    pdfString(v.Key("T")),
			Subject:  pdfString(v.Key("Subj")),
			Contents: pdfString(v.Key("Contents")),
		}, true
	}
	return nil, false
}

// pdfString is present only for string objects.
func pdfString(v pdflib.Value) doctree.Optional[string] {
	if v.Kind() != pdflib.String {
		return doctree.None[string]()
	}
	return doctree.Some(v.Text())
}

func pdfOutline(root pdflib.Value) *doctree.OutlineNode {
	first := root.Key("Outlines").Key("First")
	if first.IsNull() {
		return nil
	}
	budget := maxOutlineEntries
	node := &doctree.OutlineNode{Children: pdfOutlineItems(first, 0, &budget)}
	if len(node.Children) == 0 {
		return nil
	}
	return node
}

// pdfOutlineItems follows the /First and /Next chains. Depth and entry caps
// stop cyclic outlines.
func pdfOutlineItems(v pdflib.Value, depth int, budget *int) []*doctree.OutlineNode {
	if depth >= maxOutlineDepth {
		return nil
	}
	var items []*doctree.OutlineNode
	for ; !v.IsNull() && *budget > 0; v = v.Key("Next") {
		*budget--
		items = append(items, &doctree.OutlineNode{
			Title:    v.Key("Title").Text(),
			Children: pdfOutlineItems(v.Key("First"), depth+1, budget),
		})
	}
	return items
}

func pdfForm(root pdflib.Value) *doctree.Form {
	fields := root.Key("AcroForm").Key("Fields")
	if fields.Len() == 0 {
		return nil
	}
	form := &doctree.Form{}
	for i := 0; i < fields.Len(); i++ {
		form.Fields = append(form.Fields, pdfField(fields.Index(i), "", 0))
	}
	return form
}

func pdfField(v pdflib.Value, parent string, depth int) *doctree.FormField {
	f := &doctree.FormField{
		PartialName:   pdfString(v.Key("T")),
		AlternateName: pdfString(v.Key("TU")),
		Value:         pdfFieldValue(v.Key("V")),
	}
	qualified := parent
	if name, ok := f.PartialName.Get(); ok {
		qualified = qualify(parent, name)
	}
	f.QualifiedName = doctree.NonEmpty(qualified)

	if depth+1 >= maxFieldNesting {
		return f
	}
	kids := v.Key("Kids")
	for i := 0; i < kids.Len(); i++ {
		kid := kids.Index(i)
		// Kids without a name are widget annotations of this field.
		if kid.Key("T").Kind() != pdflib.String {
			continue
		}
		f.Kids = append(f.Kids, pdfField(kid, qualified, depth+1))
	}
	return f
}

func pdfFieldValue(v pdflib.Value) doctree.Optional[string] {
	switch v.Kind() {
	case pdflib.String:
		return doctree.Some(v.Text())
	case pdflib.Name:
		return doctree.Some(v.Name())
	case pdflib.Integer:
		return doctree.Some(strconv.FormatInt(v.Int64(), 10))
	case pdflib.Real:
		return doctree.Some(strconv.FormatFloat(v.Float64(), 'f', -1, 64))
	case pdflib.Bool:
		return doctree.Some(strconv.FormatBool(v.Bool()))
	case pdflib.Array:
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if s, ok := pdfFieldValue(v.Index(i)).Get(); ok {
				parts = append(parts, s)
			}
		}
		return doctree.Some(strings.Join(parts, ", "))
	}
	return doctree.None[string]()
}

var infoKeys = []struct{ key, name string }{
	{"Title", doctree.MetaTitle},
	{"Author", doctree.MetaAuthor},
	{"Subject", doctree.MetaSubject},
	{"Keywords", doctree.MetaKeywords},
	{"Creator", doctree.MetaCreator},
	{"Producer", doctree.MetaProducer},
	{"CreationDate", doctree.MetaCreated},
	{"ModDate", doctree.MetaModified},
}

func pdfInfo(r *pdflib.Reader, md *doctree.Metadata) {
	info := r.Trailer().Key("Info")
	for _, k := range infoKeys {
		v := info.Key(k.key)
		if v.Kind() != pdflib.String {
			continue
		}
		s := v.Text()
		if k.name == doctree.MetaCreated || k.name == doctree.MetaModified {
			s = pdfDate(s)
		}
		md.Set(k.name, s)
	}
	md.Set(doctree.MetaPageCount, strconv.Itoa(r.NumPage()))
}

// pdfDate converts "D:YYYYMMDDHHmmSSOHH'mm'" to RFC 3339. Values that do
// not parse are returned unchanged.
func pdfDate(s string) string {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "D:")
	digits := 0
	for digits < len(raw) && digits < 14 && raw[digits] >= '0' && raw[digits] <= '9' {
		digits++
	}
	if digits < 4 {
		return s
	}
	stamp := raw[:digits] + "0101000000"[digits-4:]
	t, err := time.Parse("20060102150405", stamp)
	if err != nil {
		return s
	}

	zone := strings.ReplaceAll(raw[digits:], "'", "")
	if len(zone) >= 3 && (zone[0] == '+' || zone[0] == '-') {
		h, _ := strconv.Atoi(zone[1:3])
		m := 0
		if len(zone) >= 5 {
			m, _ = strconv.Atoi(zone[3:5])
		}
		offset := h*3600 + m*60
		if zone[0] == '-' {
			offset = -offset
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0,
			time.FixedZone("", offset))
	}
	return t.Format(time.RFC3339)
}

// parsePdftotext runs the external pdftotext binary and reads its layout
// output as text with form-feed page breaks.
func parsePdftotext(data []byte, filename string) (*doctree.Document, error) {
	tmp, err := os.CreateTemp("", "doc2xhtml-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	out, err := exec.Command("pdftotext", "-layout", tmpPath, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	doc, err := (&TextParser{}).Parse(bytes.NewReader(out), filename)
	if err != nil {
		return nil, err
	}
	doc.Kind = doctree.KindPDF
	doc.Title = trimExt(filename, ".pdf")
	doc.Metadata = baseMetadata(doctree.KindPDF, filename)
	return doc, nil
}
