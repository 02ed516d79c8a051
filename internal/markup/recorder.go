package markup

// Recorder is a Handler that keeps every event in memory.
type Recorder struct {
	Events []Event
}

func (r *Recorder) StartDocument() error {
	r.Events = append(r.Events, Event{Kind: StartDocumentEvent})
	return nil
}

func (r *Recorder) StartElement(tag string, attrs []Attr) error {
	var cp []Attr
	if len(attrs) > 0 {
		cp = append([]Attr(nil), attrs...)
	}
	r.Events = append(r.Events, Event{Kind: OpenEvent, Tag: tag, Attrs: cp})
	return nil
}

func (r *Recorder) Characters(text string) error {
	r.Events = append(r.Events, Event{Kind: CharactersEvent, Text: text})
	return nil
}

func (r *Recorder) EndElement(tag string) error {
	r.Events = append(r.Events, Event{Kind: CloseEvent, Tag: tag})
	return nil
}

func (r *Recorder) EndDocument() error {
	r.Events = append(r.Events, Event{Kind: EndDocumentEvent})
	return nil
}

// Strings returns the transcript of recorded events.
func (r *Recorder) Strings() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.String()
	}
	return out
}

// Balanced reports whether every close matches the nearest unmatched open
// and nothing is left open.
func Balanced(events []Event) bool {
	var stack []string
	for _, e := range events {
		switch e.Kind {
		case OpenEvent:
			stack = append(stack, e.Tag)
		case CloseEvent:
			if len(stack) == 0 || stack[len(stack)-1] != e.Tag {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}
