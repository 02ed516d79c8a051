package convert

import "github.com/dgallion1/doc2xhtml/internal/markup"

type paragraphState uint8

const (
	noParagraph paragraphState = iota
	inParagraph
)

// paragraphs groups text into <p> elements. Upstream sources do not reliably
// pair paragraph starts and ends, so both transitions heal the state first.
type paragraphs struct {
	sink  *markup.Sink
	state paragraphState
}

func (p *paragraphs) start() error {
	if p.state == inParagraph {
		if err := p.end(); err != nil {
			return err
		}
	}
	if err := p.sink.Open("p"); err != nil {
		return err
	}
	p.state = inParagraph
	return nil
}

func (p *paragraphs) end() error {
	if p.state == noParagraph {
		if err := p.start(); err != nil {
			return err
		}
	}
	if err := p.sink.Close("p"); err != nil {
		return err
	}
	p.state = noParagraph
	return nil
}
