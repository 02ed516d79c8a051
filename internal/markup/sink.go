package markup

import (
	"errors"
	"fmt"
)

var (
	ErrNotStarted = errors.New("markup: document not started")
	ErrEnded      = errors.New("markup: document already ended")
)

// NestingError reports a close that does not match the innermost open
// element, or a document ended with elements still open.
type NestingError struct {
	Want string // Innermost open tag ("" when nothing is open)
	Got  string // Tag passed to Close ("" when ending the document)
}

func (e *NestingError) Error() string {
	switch {
	case e.Got == "":
		return fmt.Sprintf("markup: document ended with <%s> still open", e.Want)
	case e.Want == "":
		return fmt.Sprintf("markup: close </%s> with no open element", e.Got)
	}
	return fmt.Sprintf("markup: close </%s> does not match open <%s>", e.Got, e.Want)
}

type sinkState uint8

const (
	sinkFresh sinkState = iota
	sinkOpen
	sinkEnded
)

// Sink validates a markup stream and forwards it to a Handler.
// It keeps only the stack of open tags. A Sink belongs to one conversion.
type Sink struct {
	h     Handler
	stack []string
	state sinkState
	err   error
}

func NewSink(h Handler) *Sink {
	return &Sink{h: h, stack: make([]string, 0, 16)}
}

// Depth returns the number of open elements.
func (s *Sink) Depth() int {
	return len(s.stack)
}

// Err returns the first error the sink reported, if any.
func (s *Sink) Err() error {
	return s.err
}

func (s *Sink) StartDocument() error {
	if s.err != nil {
		return s.err
	}
	if s.state != sinkFresh {
		return s.fail(fmt.Errorf("markup: document started twice"))
	}
	s.state = sinkOpen
	return s.forward(s.h.StartDocument())
}

func (s *Sink) Open(tag string, attrs ...Attr) error {
	if err := s.ready(); err != nil {
		return err
	}
	if tag == "" {
		return s.fail(fmt.Errorf("markup: open with empty tag"))
	}
	s.stack = append(s.stack, tag)
	return s.forward(s.h.StartElement(tag, attrs))
}

// Characters forwards text inside the current element. Empty text is dropped.
func (s *Sink) Characters(text string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	return s.forward(s.h.Characters(text))
}

func (s *Sink) Newline() error {
	return s.Characters("\n")
}

func (s *Sink) Close(tag string) error {
	if err := s.ready(); err != nil {
		return err
	}
	n := len(s.stack)
	if n == 0 {
		return s.fail(&NestingError{Got: tag})
	}
	if s.stack[n-1] != tag {
		return s.fail(&NestingError{Want: s.stack[n-1], Got: tag})
	}
	s.stack = s.stack[:n-1]
	return s.forward(s.h.EndElement(tag))
}

// Element emits a complete element with a text body.
func (s *Sink) Element(tag, text string, attrs ...Attr) error {
	if err := s.Open(tag, attrs...); err != nil {
		return err
	}
	if err := s.Characters(text); err != nil {
		return err
	}
	return s.Close(tag)
}

// Meta emits an empty meta[name,content] element followed by a newline.
func (s *Sink) Meta(name, content string) error {
	if err := s.Open("meta", Attr{Name: "name", Value: name}, Attr{Name: "content", Value: content}); err != nil {
		return err
	}
	if err := s.Close("meta"); err != nil {
		return err
	}
	return s.Newline()
}

func (s *Sink) EndDocument() error {
	if err := s.ready(); err != nil {
		return err
	}
	if n := len(s.stack); n > 0 {
		return s.fail(&NestingError{Want: s.stack[n-1]})
	}
	s.state = sinkEnded
	return s.forward(s.h.EndDocument())
}

func (s *Sink) ready() error {
	if s.err != nil {
		return s.err
	}
	switch s.state {
	case sinkFresh:
		return s.fail(ErrNotStarted)
	case sinkEnded:
		return s.fail(ErrEnded)
	}
	return nil
}

func (s *Sink) forward(err error) error {
	if err != nil {
		return s.fail(fmt.Errorf("markup consumer: %w", err))
	}
	return nil
}

func (s *Sink) fail(err error) error {
	s.err = err
	return err
}
