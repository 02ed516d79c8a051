package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgallion1/doc2xhtml/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. The body is one page; block elements become
// paragraphs, h1-h6 build the outline, anchors become link annotations and
// form controls become form fields.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := trimExt(filename, ".html", ".htm")
	meta := baseMetadata(doctree.KindHTML, filename)
	if t := collapseSpace(doc.Find("title").First().Text()); t != "" {
		title = t
		meta.Set(doctree.MetaTitle, t)
	}
	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, ok := s.Attr("content")
		if !ok || content == "" {
			return
		}
		if key, ok := htmlMetaNames[strings.ToLower(name)]; ok {
			meta.Set(key, content)
		}
	})

	w := &htmlWalker{pages: newPageBuilder(), outline: newOutlineBuilder()}
	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	w.walk(body)

	var form *doctree.Form
	doc.Find("form").Each(func(_ int, s *goquery.Selection) {
		fields := htmlFormFields(s, "")
		if len(fields) == 0 {
			return
		}
		if form == nil {
			form = &doctree.Form{}
		}
		form.Fields = append(form.Fields, fields...)
	})

	return &doctree.Document{
		Kind:     doctree.KindHTML,
		Title:    title,
		Pages:    doctree.PageSlice(w.pages.finish()...),
		Outline:  w.outline.tree(),
		Form:     form,
		Metadata: meta,
	}, nil
}

var htmlMetaNames = map[string]string{
	"author":      doctree.MetaAuthor,
	"description": doctree.MetaSubject,
	"keywords":    doctree.MetaKeywords,
	"generator":   doctree.MetaProducer,
}

var htmlBlocks = map[string]bool{
	"p": true, "div": true, "li": true, "td": true, "th": true, "tr": true,
	"blockquote": true, "pre": true, "dt": true, "dd": true, "section": true,
	"article": true, "caption": true, "figcaption": true, "address": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "table": true, "hr": true,
}

type htmlWalker struct {
	pages   *pageBuilder
	outline *outlineBuilder
	space   bool // whitespace seen since the last word
}

func (w *htmlWalker) walk(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		switch node.Type {
		case html.TextNode:
			w.text(node.Data)
			return
		case html.ElementNode:
		default:
			return
		}

		name := goquery.NodeName(s)
		switch name {
		case "script", "style", "noscript", "template", "head", "select", "textarea":
			return
		case "br":
			w.pages.lineBreak()
			w.space = false
			return
		}

		if level := headingLevel(name); level > 0 {
			w.outline.add(level, collapseSpace(s.Text()))
		}
		if htmlBlocks[name] {
			w.block()
			w.walk(s)
			w.block()
			return
		}
		w.walk(s)
		if name == "a" {
			if href, ok := s.Attr("href"); ok && isExternalLink(href) {
				w.pages.annotate(doctree.LinkAnnotation{URI: href})
			}
		}
	})
}

func (w *htmlWalker) block() {
	w.pages.paragraph()
	w.space = false
}

func (w *htmlWalker) text(data string) {
	words := strings.Fields(data)
	if len(words) == 0 {
		if data != "" {
			w.space = true
		}
		return
	}
	if startsWithSpace(data) {
		w.space = true
	}
	for i, word := range words {
		if i > 0 || w.space {
			w.pages.wordBreak()
		}
		w.pages.text(word)
	}
	w.space = endsWithSpace(data)
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// isExternalLink skips fragment and script links.
func isExternalLink(href string) bool {
	href = strings.TrimSpace(href)
	return href != "" && !strings.HasPrefix(href, "#") &&
		!strings.HasPrefix(strings.ToLower(href), "javascript:")
}

// htmlFormFields collects the controls under sel. Fieldsets become groups
// whose kids are qualified with the group name.
func htmlFormFields(sel *goquery.Selection, parent string) []*doctree.FormField {
	var fields []*doctree.FormField
	sel.Children().Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "fieldset":
			name := s.AttrOr("name", "")
			if name == "" {
				name = collapseSpace(s.ChildrenFiltered("legend").First().Text())
			}
			qualified := qualify(parent, name)
			kids := htmlFormFields(s, qualified)
			if len(kids) == 0 {
				return
			}
			fields = append(fields, &doctree.FormField{
				PartialName:   doctree.NonEmpty(name),
				QualifiedName: doctree.NonEmpty(qualified),
				Kids:          kids,
			})
		case "input", "select", "textarea":
			if f := htmlControl(s, parent); f != nil {
				fields = append(fields, f)
			}
		default:
			fields = append(fields, htmlFormFields(s, parent)...)
		}
	})
	return fields
}

func htmlControl(s *goquery.Selection, parent string) *doctree.FormField {
	name := s.AttrOr("name", "")
	if name == "" {
		return nil
	}
	f := &doctree.FormField{
		PartialName:   doctree.Some(name),
		QualifiedName: doctree.Some(qualify(parent, name)),
		AlternateName: doctree.NonEmpty(firstAttr(s, "title", "aria-label", "placeholder")),
	}

	switch goquery.NodeName(s) {
	case "input":
		switch strings.ToLower(s.AttrOr("type", "text")) {
		case "submit", "button", "reset", "image", "file", "password":
			return nil
		case "checkbox", "radio":
			if _, checked := s.Attr("checked"); checked {
				f.Value = doctree.Some(s.AttrOr("value", "on"))
			}
		default:
			if v, ok := s.Attr("value"); ok {
				f.Value = doctree.Some(v)
			}
		}
	case "textarea":
		f.Value = doctree.Some(s.Text())
	case "select":
		opt := s.Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = s.Find("option").First()
		}
		if opt.Length() > 0 {
			f.Value = doctree.Some(opt.AttrOr("value", collapseSpace(opt.Text())))
		}
	}
	return f
}

func qualify(parent, name string) string {
	switch {
	case parent == "":
		return name
	case name == "":
		return parent
	}
	return parent + "." + name
}

func firstAttr(s *goquery.Selection, names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(s.AttrOr(n, "")); v != "" {
			return v
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\r\n\f") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\r\n\f") != s
}
