package markup

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitSample(t *testing.T, h Handler) {
	t.Helper()
	s := NewSink(h)
	require.NoError(t, s.StartDocument())
	require.NoError(t, s.Open("div", Class("page")))
	require.NoError(t, s.Open("p"))
	require.NoError(t, s.Characters("Fish & chips"))
	require.NoError(t, s.Newline())
	require.NoError(t, s.Characters("second line"))
	require.NoError(t, s.Close("p"))
	require.NoError(t, s.Close("div"))
	require.NoError(t, s.Open("ul"))
	require.NoError(t, s.Element("li", "Chapter 1"))
	require.NoError(t, s.Close("ul"))
	require.NoError(t, s.Meta("title", "Menu"))
	require.NoError(t, s.EndDocument())
}

func TestHTMLRenderer_Render(t *testing.T) {
	r := NewHTMLRenderer()
	emitSample(t, r)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"), out)
	assert.Contains(t, out, `<head><meta name="title" content="Menu"/>`)
	assert.Contains(t, out, `<div class="page"><p>Fish &amp; chips`+"\n"+`second line</p></div>`)
	assert.Contains(t, out, `<ul><li>Chapter 1</li></ul></body>`)
}

func TestHTMLRenderer_RenderBeforeStart(t *testing.T) {
	r := NewHTMLRenderer()
	assert.Error(t, r.Render(&bytes.Buffer{}))
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	emitSample(t, NewTextRenderer(&buf))

	assert.Equal(t, "Fish & chips\nsecond line\nChapter 1\n", buf.String())
}
