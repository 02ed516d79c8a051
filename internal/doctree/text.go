package doctree

// RunKind distinguishes text from the separators an upstream parser reports.
type RunKind uint8

const (
	RunText RunKind = iota
	RunWordBreak
	RunLineBreak
	RunParagraphBreak
)

func (k RunKind) String() string {
	switch k {
	case RunText:
		return "text"
	case RunWordBreak:
		return "word_break"
	case RunLineBreak:
		return "line_break"
	case RunParagraphBreak:
		return "paragraph_break"
	}
	return "unknown"
}

// TextRun is a character or character run with optional position hints.
// Positions only serve boundary detection; the converter never interprets them otherwise.
type TextRun struct {
	Kind     RunKind
	Text     string
	X, Y     float64 // Baseline origin, PDF user space (Y grows upward)
	Width    float64
	FontSize float64 // Zero when the source has no layout
}

// Positioned reports whether the run carries usable layout hints.
func (r TextRun) Positioned() bool {
	return r.Kind == RunText && r.FontSize > 0
}

func Text(s string) TextRun {
	return TextRun{Kind: RunText, Text: s}
}

func PositionedText(s string, x, y, width, fontSize float64) TextRun {
	return TextRun{Kind: RunText, Text: s, X: x, Y: y, Width: width, FontSize: fontSize}
}

func WordBreak() TextRun      { return TextRun{Kind: RunWordBreak} }
func LineBreak() TextRun      { return TextRun{Kind: RunLineBreak} }
func ParagraphBreak() TextRun { return TextRun{Kind: RunParagraphBreak} }
