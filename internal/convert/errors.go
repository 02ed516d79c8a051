package convert

import "errors"

// ConversionFailure aborts a conversion. Markup already emitted is not
// retracted; the caller must discard the whole stream.
type ConversionFailure struct {
	Op  string // What the walker was doing, e.g. "end page 3"
	Err error
}

func (e *ConversionFailure) Error() string {
	return "convert: " + e.Op + ": " + e.Err.Error()
}

func (e *ConversionFailure) Unwrap() error {
	return e.Err
}

func failure(op string, err error) error {
	if err == nil {
		return nil
	}
	var cf *ConversionFailure
	if errors.As(err, &cf) {
		return err
	}
	return &ConversionFailure{Op: op, Err: err}
}
