package parser

import "github.com/dgallion1/doc2xhtml/internal/doctree"

// pageBuilder accumulates runs for sources without page geometry.
type pageBuilder struct {
	pages       []*doctree.Page
	cur         *doctree.Page
	hasText     bool // current page has text
	pendingPara bool // next text starts a new paragraph
}

func newPageBuilder() *pageBuilder {
	return &pageBuilder{cur: &doctree.Page{Number: 1}}
}

// paragraph ends the current paragraph; the break is emitted lazily so
// empty paragraphs never reach the page.
func (b *pageBuilder) paragraph() {
	if b.hasText {
		b.pendingPara = true
	}
}

func (b *pageBuilder) text(s string) {
	if s == "" {
		return
	}
	if b.pendingPara {
		b.cur.Runs = append(b.cur.Runs, doctree.ParagraphBreak())
		b.pendingPara = false
	}
	b.cur.Runs = append(b.cur.Runs, doctree.Text(s))
	b.hasText = true
}

func (b *pageBuilder) lineBreak() {
	if b.hasText && !b.pendingPara {
		b.cur.Runs = append(b.cur.Runs, doctree.LineBreak())
	}
}

func (b *pageBuilder) wordBreak() {
	if b.hasText && !b.pendingPara {
		b.cur.Runs = append(b.cur.Runs, doctree.WordBreak())
	}
}

func (b *pageBuilder) annotate(a doctree.Annotation) {
	b.cur.Annotations = append(b.cur.Annotations, a)
}

// newPage closes the current page unless it is still empty.
func (b *pageBuilder) newPage() {
	if len(b.cur.Runs) == 0 && len(b.cur.Annotations) == 0 {
		return
	}
	b.pages = append(b.pages, b.cur)
	b.cur = &doctree.Page{Number: len(b.pages) + 1}
	b.hasText, b.pendingPara = false, false
}

func (b *pageBuilder) finish() []*doctree.Page {
	if len(b.cur.Runs) > 0 || len(b.cur.Annotations) > 0 || len(b.pages) == 0 {
		b.pages = append(b.pages, b.cur)
	}
	return b.pages
}

// outlineBuilder nests headings by level.
type outlineBuilder struct {
	root  *doctree.OutlineNode
	stack []outlineEntry
}

type outlineEntry struct {
	node  *doctree.OutlineNode
	level int
}

func newOutlineBuilder() *outlineBuilder {
	root := &doctree.OutlineNode{}
	return &outlineBuilder{root: root, stack: []outlineEntry{{node: root, level: 0}}}
}

func (o *outlineBuilder) add(level int, title string) {
	if title == "" || level <= 0 {
		return
	}
	node := &doctree.OutlineNode{Title: title}
	// Pop until we find a parent with a lower level.
	for len(o.stack) > 1 && o.stack[len(o.stack)-1].level >= level {
		o.stack = o.stack[:len(o.stack)-1]
	}
	parent := o.stack[len(o.stack)-1].node
	parent.Children = append(parent.Children, node)
	o.stack = append(o.stack, outlineEntry{node: node, level: level})
}

// tree returns the outline root, or nil when no heading was added.
func (o *outlineBuilder) tree() *doctree.OutlineNode {
	if len(o.root.Children) == 0 {
		return nil
	}
	return o.root
}
