// Package testutil builds image fixtures shared by package tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// QRCodeImage renders payload as a black-on-white QR code of size×size pixels
// with a quiet zone of margin modules.
func QRCodeImage(tb testing.TB, payload string, size, margin int) image.Image {
	tb.Helper()
	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_MARGIN: margin,
	}
	matrix, err := qrcode.NewQRCodeWriter().Encode(payload, gozxing.BarcodeFormat_QR_CODE, size, size, hints)
	if err != nil {
		tb.Fatalf("encode qr code: %v", err)
	}
	return matrix
}

// QRCodePNG is QRCodeImage encoded as PNG bytes.
func QRCodePNG(tb testing.TB, payload string, size, margin int) []byte {
	tb.Helper()
	return encodePNG(tb, QRCodeImage(tb, payload, size, margin))
}

// BlankPNG returns a w×h PNG filled with c.
func BlankPNG(tb testing.TB, w, h int, c color.Color) []byte {
	tb.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return encodePNG(tb, img)
}

func encodePNG(tb testing.TB, img image.Image) []byte {
	tb.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		tb.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
