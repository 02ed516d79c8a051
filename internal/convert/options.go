package convert

import "log/slog"

// DefaultMaxFormDepth bounds form-field recursion. Deeper branches are dropped.
const DefaultMaxFormDepth = 10

// Options controls one conversion. The text flags are passed through to the
// text-run source; the extract flags gate the serializers.
type Options struct {
	ExtractAnnotationText            bool
	EnableAutoSpace                  bool
	SuppressDuplicateOverlappingText bool
	SortByPosition                   bool
	ExtractAcroForm                  bool

	MaxFormDepth int

	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		ExtractAnnotationText:            true,
		EnableAutoSpace:                  true,
		SuppressDuplicateOverlappingText: true,
		SortByPosition:                   false,
		ExtractAcroForm:                  true,
		MaxFormDepth:                     DefaultMaxFormDepth,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxFormDepth <= 0 {
		o.MaxFormDepth = DefaultMaxFormDepth
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

func (o Options) wordSeparator() string {
	if o.EnableAutoSpace {
		return " "
	}
	return ""
}
