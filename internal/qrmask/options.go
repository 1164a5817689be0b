package qrmask

import (
	"fmt"
	"math"
	"strings"
)

// Shape is the mask geometry drawn over a region's bounding box.
type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeEllipse   Shape = "ellipse"
)

// Format is the encoding of the processed image.
type Format string

const (
	FormatPNG  Format = "PNG"
	FormatJPEG Format = "JPEG"
)

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Extension returns the file extension (without dot) used for processed files.
func (f Format) Extension() string {
	return strings.ToLower(string(f))
}

// TransparentColor is the reserved fill color that leaves masked regions untouched.
const TransparentColor = "transparent"

// Options controls how detected regions are masked. The zero value is not valid;
// build one with NewOptions.
type Options struct {
	fillColor string
	opacity   float64
	shape     Shape
	format    Format
}

// NewOptions validates and normalizes masking options. Shape is matched
// case-insensitively against "rectangle" and "ellipse", format against "PNG"
// and "JPEG". Opacity must lie in [0, 1].
func NewOptions(fillColor string, opacity float64, shape, format string) (Options, error) {
	if strings.TrimSpace(fillColor) == "" {
		return Options{}, fmt.Errorf("%w: fill_color must not be empty", ErrInvalidOptions)
	}
	if math.IsNaN(opacity) || opacity < 0 || opacity > 1 {
		return Options{}, fmt.Errorf("%w: opacity must be between 0 and 1, got %v", ErrInvalidOptions, opacity)
	}

	s := Shape(strings.ToLower(strings.TrimSpace(shape)))
	if s != ShapeRectangle && s != ShapeEllipse {
		return Options{}, fmt.Errorf("%w: unsupported shape %q", ErrInvalidOptions, shape)
	}

	f := Format(strings.ToUpper(strings.TrimSpace(format)))
	if f != FormatPNG && f != FormatJPEG {
		return Options{}, fmt.Errorf("%w: unsupported output format %q", ErrInvalidOptions, format)
	}

	return Options{
		fillColor: fillColor,
		opacity:   opacity,
		shape:     s,
		format:    f,
	}, nil
}

func (o Options) FillColor() string { return o.fillColor }
func (o Options) Opacity() float64  { return o.opacity }
func (o Options) Shape() Shape      { return o.shape }
func (o Options) Format() Format    { return o.format }
