package qrmask

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidImage is returned when uploaded bytes cannot be decoded as an image.
	ErrInvalidImage = errors.New("invalid image data")
	// ErrUnsupportedColor is returned when the fill color cannot be parsed.
	ErrUnsupportedColor = errors.New("unsupported color value")
	// ErrDetectionFailure is returned when the QR detector fails operationally.
	// Finding no QR code is not a failure.
	ErrDetectionFailure = errors.New("unable to run QR detection")
	// ErrInvalidOptions is returned by NewOptions for out-of-range or malformed values.
	ErrInvalidOptions = errors.New("invalid processing options")
)

// ProcessingError reports a failure to process a single uploaded file.
type ProcessingError struct {
	Filename string
	Err      error
}

func (e *ProcessingError) Error() string {
	if e.Filename == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
