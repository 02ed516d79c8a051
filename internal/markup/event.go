package markup

import (
	"strconv"
	"strings"
)

// Attr is an element attribute.
type Attr struct {
	Name  string
	Value string
}

// Class is shorthand for a class attribute.
func Class(name string) Attr {
	return Attr{Name: "class", Value: name}
}

// EventKind identifies a markup event.
type EventKind uint8

const (
	StartDocumentEvent EventKind = iota
	OpenEvent
	CharactersEvent
	CloseEvent
	EndDocumentEvent
)

// Event is one step of a markup stream.
type Event struct {
	Kind  EventKind
	Tag   string
	Attrs []Attr
	Text  string
}

// String renders the event compactly: <div class=page>, "text", </div>.
func (e Event) String() string {
	switch e.Kind {
	case StartDocumentEvent:
		return "<document>"
	case EndDocumentEvent:
		return "</document>"
	case CharactersEvent:
		return strconv.Quote(e.Text)
	case CloseEvent:
		return "</" + e.Tag + ">"
	}
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.Tag)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteByte('=')
		b.WriteString(a.Value)
	}
	b.WriteByte('>')
	return b.String()
}

// Handler consumes validated markup events. Returning an error tells the
// producer the consumer cannot accept further events.
type Handler interface {
	StartDocument() error
	StartElement(tag string, attrs []Attr) error
	Characters(text string) error
	EndElement(tag string) error
	EndDocument() error
}
