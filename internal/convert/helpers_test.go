package convert

import (
	"testing"

	"github.com/dgallion1/doc2xhtml/internal/markup"
	"github.com/stretchr/testify/require"
)

// startedSink returns a sink with the document already started, and the
// recorder behind it with the start event trimmed.
func startedSink(t *testing.T) (*markup.Sink, *markup.Recorder) {
	t.Helper()
	rec := &markup.Recorder{}
	s := markup.NewSink(rec)
	require.NoError(t, s.StartDocument())
	rec.Events = rec.Events[:0]
	return s, rec
}
