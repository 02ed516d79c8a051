package convert

import (
	"log/slog"
	"strconv"
	"testing"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
	"github.com/dgallion1/doc2xhtml/internal/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.DiscardHandler)

func TestWriteForm_NullValueHasNoBody(t *testing.T) {
	s, rec := startedSink(t)
	w := &formWriter{sink: s, log: discard, maxDepth: DefaultMaxFormDepth}

	f := &doctree.FormField{
		PartialName: doctree.Some("age"),
		Value:       doctree.Some("null"),
	}
	require.NoError(t, w.field(f, 0))
	assert.Equal(t, []string{"<li partialName=age>", "</li>"}, rec.Strings())

	rec.Events = nil
	f.Value = doctree.Some("42")
	require.NoError(t, w.field(f, 0))
	assert.Equal(t, []string{"<li partialName=age>", `"42 "`, "</li>"}, rec.Strings())
	assert.Equal(t, "42 ", rec.Events[1].Text)
}

func TestWriteForm_AllAttributes(t *testing.T) {
	s, rec := startedSink(t)
	w := &formWriter{sink: s, log: discard, maxDepth: DefaultMaxFormDepth}

	f := &doctree.FormField{
		PartialName:   doctree.Some("city"),
		QualifiedName: doctree.Some("address.city"),
		AlternateName: doctree.Some("City of residence"),
		Value:         doctree.Some("Oslo"),
	}
	require.NoError(t, w.field(f, 0))

	require.Len(t, rec.Events, 3)
	assert.Equal(t, []markup.Attr{
		{Name: "partialName", Value: "city"},
		{Name: "fullyQualName", Value: "address.city"},
		{Name: "altName", Value: "City of residence"},
	}, rec.Events[0].Attrs)
}

func TestWriteForm_EmptyLeafDropped(t *testing.T) {
	s, rec := startedSink(t)
	w := &formWriter{sink: s, log: discard, maxDepth: DefaultMaxFormDepth}

	require.NoError(t, w.field(&doctree.FormField{}, 0))
	require.NoError(t, w.field(&doctree.FormField{Value: doctree.Some("")}, 0))
	require.NoError(t, w.field(nil, 0))

	assert.Empty(t, rec.Events)
}

func TestWriteForm_GroupHeaderAlwaysRendered(t *testing.T) {
	s, rec := startedSink(t)
	w := &formWriter{sink: s, log: discard, maxDepth: DefaultMaxFormDepth}

	group := &doctree.FormField{
		Kids: []*doctree.FormField{
			{PartialName: doctree.Some("a"), Value: doctree.Some("1")},
			{},
		},
	}
	require.NoError(t, w.field(group, 0))

	assert.Equal(t, []string{
		"<li>", "</li>",
		"<ol>",
		"<li partialName=a>", `"1 "`, "</li>",
		"</ol>",
	}, rec.Strings())
}

// chain builds a single-path field tree; the field at depth d is named "f<d>".
func chain(depth int) *doctree.FormField {
	var root, cur *doctree.FormField
	for d := 0; d < depth; d++ {
		f := &doctree.FormField{PartialName: doctree.Some("f" + strconv.Itoa(d))}
		if root == nil {
			root = f
		} else {
			cur.Kids = []*doctree.FormField{f}
		}
		cur = f
	}
	return root
}

func TestWriteForm_DepthBound(t *testing.T) {
	s, rec := startedSink(t)
	form := &doctree.Form{Fields: []*doctree.FormField{chain(12)}}

	require.NoError(t, writeForm(s, form, DefaultMaxFormDepth, discard))

	var names []string
	for _, e := range rec.Events {
		if e.Kind == markup.OpenEvent && e.Tag == "li" {
			names = append(names, e.Attrs[0].Value)
		}
	}
	assert.Equal(t, []string{"f0", "f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9"}, names)
	assert.True(t, markup.Balanced(rec.Events))
	assert.Equal(t, 0, s.Depth())
}

func TestWriteForm_CyclicTreeTerminates(t *testing.T) {
	s, rec := startedSink(t)
	loop := &doctree.FormField{PartialName: doctree.Some("loop")}
	loop.Kids = []*doctree.FormField{loop}

	require.NoError(t, writeForm(s, &doctree.Form{Fields: []*doctree.FormField{loop}}, 3, discard))
	assert.True(t, markup.Balanced(rec.Events))
}

func TestWriteForm_Wrapper(t *testing.T) {
	s, rec := startedSink(t)
	form := &doctree.Form{Fields: []*doctree.FormField{
		{PartialName: doctree.Some("name"), Value: doctree.Some("Ada")},
	}}
	require.NoError(t, writeForm(s, form, DefaultMaxFormDepth, discard))

	assert.Equal(t, []string{
		"<div class=acroform>", "<ol>",
		"<li partialName=name>", `"Ada "`, "</li>",
		"</ol>", "</div>",
	}, rec.Strings())
}

func TestWriteForm_EmptyFormEmitsNothing(t *testing.T) {
	s, rec := startedSink(t)
	require.NoError(t, writeForm(s, nil, DefaultMaxFormDepth, discard))
	require.NoError(t, writeForm(s, &doctree.Form{}, DefaultMaxFormDepth, discard))
	assert.Empty(t, rec.Events)
}
