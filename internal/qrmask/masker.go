package qrmask

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/mazznoer/csscolorparser"
)

// Mask fills the bounding box of every region with the configured color, opacity
// and shape, composited over img. JPEG output is returned flattened to opaque.
func Mask(img image.Image, regions []Region, opts Options) (image.Image, error) {
	fill, err := resolveFill(opts.FillColor(), opts.Opacity())
	if err != nil {
		return nil, err
	}

	base := cloneRGBA(img)
	b := base.Bounds()

	overlay := gg.NewContext(b.Dx(), b.Dy())
	overlay.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(fill.A))
	for _, r := range regions {
		box := r.Bounds().Sub(b.Min)
		if box.Empty() {
			continue
		}
		drawShape(overlay, box, opts.Shape())
	}

	draw.Draw(base, b, overlay.Image(), image.Point{}, draw.Over)

	if opts.Format() == FormatJPEG {
		return opaque(base), nil
	}
	return base, nil
}

func drawShape(dc *gg.Context, box image.Rectangle, shape Shape) {
	x, y := float64(box.Min.X), float64(box.Min.Y)
	w, h := float64(box.Dx()), float64(box.Dy())
	switch shape {
	case ShapeEllipse:
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	default:
		dc.DrawRectangle(x, y, w, h)
	}
	dc.Fill()
}

// resolveFill turns a color string and opacity into the overlay fill. The
// "transparent" literal is fully transparent whatever the opacity. Otherwise the
// alpha is the color's own alpha (255 when it has none) scaled by opacity.
func resolveFill(value string, opacity float64) (color.NRGBA, error) {
	if strings.EqualFold(strings.TrimSpace(value), TransparentColor) {
		return color.NRGBA{}, nil
	}
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %s", ErrUnsupportedColor, value)
	}
	r, g, b, a := c.RGBA255()
	alpha := math.Round(float64(a) * clamp01(opacity))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
