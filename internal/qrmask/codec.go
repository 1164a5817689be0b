package qrmask

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 95

// Decode parses PNG, JPEG, GIF, BMP, TIFF or WebP bytes into an opaque RGB raster.
// Any alpha channel in the source is dropped; color channels are kept as-is.
func Decode(data []byte) (*image.RGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return opaque(img), nil
}

// Encode serializes img in the given format. JPEG output is flattened to opaque RGB
// and written at quality 95; PNG output keeps any alpha channel.
func Encode(img image.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJPEG:
		err = imaging.Encode(&buf, opaque(img), imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	default:
		err = imaging.Encode(&buf, img, imaging.PNG)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// opaque returns a copy of img with every pixel's alpha forced to 255. The copy is
// taken in non-premultiplied form so that dropping alpha keeps the stored color.
func opaque(img image.Image) *image.RGBA {
	n := imaging.Clone(img)
	for i := 3; i < len(n.Pix); i += 4 {
		n.Pix[i] = 0xff
	}
	// With alpha at 255 the premultiplied and straight layouts are identical.
	return &image.RGBA{Pix: n.Pix, Stride: n.Stride, Rect: n.Rect}
}
