package qrmask

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLightImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(100 + x), G: uint8(120 + y), B: 200, A: 255})
		}
	}
	return img
}

func mustOptions(t *testing.T, fill string, opacity float64, shape, format string) Options {
	t.Helper()
	opts, err := NewOptions(fill, opacity, shape, format)
	require.NoError(t, err)
	return opts
}

var testRegion = Region{Points: []Point{{X: 10.4, Y: 10.8}, {X: 49.6, Y: 10.2}, {X: 49.9, Y: 49.1}, {X: 10.1, Y: 49.7}}}

func TestResolveFill(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		opacity float64
		want    color.NRGBA
		wantErr bool
	}{
		{name: "hex full opacity", value: "#000000", opacity: 1, want: color.NRGBA{A: 255}},
		{name: "named color", value: "red", opacity: 1, want: color.NRGBA{R: 255, A: 255}},
		{name: "opacity scales alpha", value: "#ffffff", opacity: 0.8, want: color.NRGBA{R: 255, G: 255, B: 255, A: 204}},
		{name: "rounds half up", value: "#00ff00", opacity: 0.5, want: color.NRGBA{G: 255, A: 128}},
		{name: "color alpha scaled by opacity", value: "#0000ff80", opacity: 0.5, want: color.NRGBA{B: 255, A: 64}},
		{name: "transparent ignores opacity", value: "Transparent", opacity: 1, want: color.NRGBA{}},
		{name: "unparseable", value: "not-a-color", opacity: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFill(tt.value, tt.opacity)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMask_TransparentLeavesPixelsUntouched(t *testing.T) {
	img := newLightImage(64, 64)
	opts := mustOptions(t, "transparent", 1, "rectangle", "PNG")

	out, err := Mask(img, []Region{testRegion}, opts)
	require.NoError(t, err)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			require.Equal(t, img.RGBAAt(x, y), color.RGBAModel.Convert(out.At(x, y)), "pixel %d,%d", x, y)
		}
	}
}

func TestMask_OpaqueFillCoversBox(t *testing.T) {
	img := newLightImage(64, 64)
	opts := mustOptions(t, "#ff0000", 1, "rectangle", "PNG")

	out, err := Mask(img, []Region{testRegion}, opts)
	require.NoError(t, err)

	red := color.RGBA{R: 255, A: 255}
	box := testRegion.Bounds()
	assert.Equal(t, image.Rect(10, 10, 50, 50), box)
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			require.Equal(t, red, color.RGBAModel.Convert(out.At(x, y)), "pixel %d,%d", x, y)
		}
	}
	assert.Equal(t, img.RGBAAt(9, 9), color.RGBAModel.Convert(out.At(9, 9)))
	assert.Equal(t, img.RGBAAt(50, 50), color.RGBAModel.Convert(out.At(50, 50)))
}

func TestMask_EllipseVersusRectangle(t *testing.T) {
	img := newLightImage(64, 64)

	rect, err := Mask(img, []Region{testRegion}, mustOptions(t, "#000000", 1, "rectangle", "PNG"))
	require.NoError(t, err)
	ellipse, err := Mask(img, []Region{testRegion}, mustOptions(t, "#000000", 1, "ellipse", "PNG"))
	require.NoError(t, err)

	at := func(im image.Image, x, y int) color.RGBA {
		return color.RGBAModel.Convert(im.At(x, y)).(color.RGBA)
	}

	// Box corner lies outside the inscribed ellipse.
	assert.NotEqual(t, at(rect, 11, 11), at(ellipse, 11, 11))
	assert.Equal(t, img.RGBAAt(11, 11), at(ellipse, 11, 11))

	// Box centre is covered by both.
	assert.Equal(t, at(rect, 30, 30), at(ellipse, 30, 30))

	// Outside the box both leave the original untouched.
	box := testRegion.Bounds()
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if image.Pt(x, y).In(box) {
				continue
			}
			require.Equal(t, at(rect, x, y), at(ellipse, x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestMask_UnsupportedColor(t *testing.T) {
	img := newLightImage(8, 8)
	out, err := Mask(img, []Region{testRegion}, mustOptions(t, "nope", 1, "rectangle", "PNG"))
	assert.ErrorIs(t, err, ErrUnsupportedColor)
	assert.Nil(t, out)
}

func TestMask_JPEGOutputIsOpaque(t *testing.T) {
	img := newLightImage(64, 64)
	out, err := Mask(img, []Region{testRegion}, mustOptions(t, "#00ff00", 0.5, "ellipse", "JPEG"))
	require.NoError(t, err)

	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := out.At(x, y).RGBA()
			require.Equal(t, uint32(0xffff), a)
		}
	}
}

func TestMask_DoesNotModifyInput(t *testing.T) {
	img := newLightImage(64, 64)
	before := append([]byte(nil), img.Pix...)

	_, err := Mask(img, []Region{testRegion}, mustOptions(t, "black", 1, "rectangle", "PNG"))
	require.NoError(t, err)
	assert.Equal(t, before, img.Pix)
}
