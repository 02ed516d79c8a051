package convert

import (
	"strings"
	"testing"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callLog records textHandler callbacks as a compact string.
type callLog struct {
	b strings.Builder
}

func (c *callLog) WriteText(s string) error { c.b.WriteString(s); return nil }
func (c *callLog) WordSeparator() error     { c.b.WriteString("_"); return nil }
func (c *callLog) LineSeparator() error     { c.b.WriteString("|"); return nil }
func (c *callLog) StartParagraph() error    { c.b.WriteString("["); return nil }
func (c *callLog) EndParagraph() error      { c.b.WriteString("]"); return nil }

// glyphs lays out s as one positioned run per character, 6pt wide, at size 10.
func glyphs(s string, x, y float64) []doctree.TextRun {
	var runs []doctree.TextRun
	for _, c := range s {
		runs = append(runs, doctree.PositionedText(string(c), x, y, 6, 10))
		x += 6
	}
	return runs
}

func TestStreamRuns_InfersSeparators(t *testing.T) {
	var runs []doctree.TextRun
	runs = append(runs, glyphs("ab", 0, 700)...)
	runs = append(runs, glyphs("cd", 20, 700)...) // word gap
	runs = append(runs, glyphs("ef", 0, 688)...)  // next line
	runs = append(runs, glyphs("gh", 0, 640)...)  // paragraph gap

	var log callLog
	require.NoError(t, streamRuns(runs, Options{}, &log))
	assert.Equal(t, "ab_cd|ef][gh", log.b.String())
}

func TestStreamRuns_ExplicitBreaks(t *testing.T) {
	runs := []doctree.TextRun{
		doctree.Text("one"), doctree.WordBreak(), doctree.Text("two"),
		doctree.LineBreak(), doctree.Text("three"),
		doctree.ParagraphBreak(), doctree.Text("four"),
	}
	var log callLog
	require.NoError(t, streamRuns(runs, Options{}, &log))
	assert.Equal(t, "one_two|three][four", log.b.String())
}

func TestStreamRuns_SuppressDuplicates(t *testing.T) {
	runs := append(glyphs("Hi", 0, 700), glyphs("Hi", 0.5, 700.5)...)

	var on, off callLog
	require.NoError(t, streamRuns(runs, Options{SuppressDuplicateOverlappingText: true}, &on))
	require.NoError(t, streamRuns(runs, Options{}, &off))

	assert.Equal(t, "Hi", on.b.String())
	assert.NotEqual(t, "Hi", off.b.String())
}

func TestStreamRuns_SortByPosition(t *testing.T) {
	// Second line drawn first, then the first line right to left.
	runs := []doctree.TextRun{
		doctree.PositionedText("c", 0, 688, 6, 10),
		doctree.PositionedText("b", 6, 700.2, 6, 10),
		doctree.PositionedText("a", 0, 700, 6, 10),
	}

	var sorted callLog
	require.NoError(t, streamRuns(runs, Options{SortByPosition: true}, &sorted))
	assert.Equal(t, "ab|c", sorted.b.String())
}

func TestSortByPosition_KeepsOrderWithExplicitBreaks(t *testing.T) {
	runs := []doctree.TextRun{doctree.Text("b"), doctree.LineBreak(), doctree.Text("a")}
	assert.Equal(t, runs, sortByPosition(runs))
}

func TestNormalizeText_Ligatures(t *testing.T) {
	assert.Equal(t, "find", normalizeText("ﬁnd"))
	assert.Equal(t, "café", normalizeText("café"))
}
