package qrmask

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	qrdetector "github.com/makiuchi-d/gozxing/qrcode/detector"
)

// Detector locates QR-code regions in a raster image. An empty result with a nil
// error means no QR code was found.
type Detector interface {
	Detect(img image.Image) ([]Region, error)
}

// maxSymbols bounds the erase-and-repeat search of a single image.
const maxSymbols = 16

func newHints() map[gozxing.DecodeHintType]interface{} {
	return map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
}

// DecoderStrategy finds QR codes by fully decoding them, which yields precise
// symbol outlines for every code that can be read.
type DecoderStrategy struct {
	Limit int
}

// NewDecoderStrategy returns the precise, decoding detector.
func NewDecoderStrategy() *DecoderStrategy {
	return &DecoderStrategy{Limit: maxSymbols}
}

func (d *DecoderStrategy) Detect(img image.Image) (regions []Region, err error) {
	defer keepFound(&regions, &err)
	defer recoverDetect(&err)

	work := cloneRGBA(img)
	reader := qrcode.NewQRCodeReader()
	hints := newHints()

	for len(regions) < limitOrDefault(d.Limit) {
		bmp, err := gozxing.NewBinaryBitmapFromImage(work)
		if err != nil {
			return regions, err
		}
		res, err := reader.Decode(bmp, hints)
		if err != nil {
			if notLocated(err) {
				break
			}
			return regions, err
		}

		region := symbolRegion(res.GetResultPoints(), 0)
		if len(region.Points) == 0 {
			break
		}
		regions = append(regions, region)
		if !erase(work, region) {
			break
		}
	}
	return regions, nil
}

// LocatorStrategy finds QR codes geometrically from their finder patterns without
// decoding the payload, so it also reports damaged or unreadable codes.
type LocatorStrategy struct {
	Limit int
}

// NewLocatorStrategy returns the geometric, non-decoding detector.
func NewLocatorStrategy() *LocatorStrategy {
	return &LocatorStrategy{Limit: maxSymbols}
}

func (l *LocatorStrategy) Detect(img image.Image) (regions []Region, err error) {
	defer keepFound(&regions, &err)
	defer recoverDetect(&err)

	work := cloneRGBA(img)
	hints := newHints()

	for len(regions) < limitOrDefault(l.Limit) {
		bmp, err := gozxing.NewBinaryBitmapFromImage(work)
		if err != nil {
			return regions, err
		}
		matrix, err := bmp.GetBlackMatrix()
		if err != nil {
			if notLocated(err) {
				break
			}
			return regions, err
		}
		res, err := qrdetector.NewDetector(matrix).Detect(hints)
		if err != nil {
			if notLocated(err) {
				break
			}
			return regions, err
		}

		points := res.GetPoints()
		region := symbolRegion(points, moduleSizeFromGrid(points, res.GetBits()))
		if len(region.Points) == 0 {
			break
		}
		regions = append(regions, region)
		if !erase(work, region) {
			break
		}
	}
	return regions, nil
}

// moduleSizeFromGrid derives the module size from the top-left/top-right finder
// distance and the sampled grid dimension.
func moduleSizeFromGrid(points []gozxing.ResultPoint, bits *gozxing.BitMatrix) float64 {
	if len(points) < 3 || bits == nil || bits.GetWidth() <= 7 {
		return 0
	}
	tl, tr := points[1], points[2]
	dist := math.Hypot(tr.GetX()-tl.GetX(), tr.GetY()-tl.GetY())
	return dist / float64(bits.GetWidth()-7)
}

// Cascade runs Primary first and only falls back to Secondary when Primary finds
// nothing. A Primary error counts as finding nothing; a Secondary error is
// reported as ErrDetectionFailure.
type Cascade struct {
	Primary   Detector
	Secondary Detector
}

// NewCascade returns the default detector: decoding first, geometric second.
func NewCascade() Cascade {
	return Cascade{Primary: NewDecoderStrategy(), Secondary: NewLocatorStrategy()}
}

func (c Cascade) Detect(img image.Image) ([]Region, error) {
	if c.Primary != nil {
		if regions, err := c.Primary.Detect(img); err == nil {
			if regions = nonEmpty(regions); len(regions) > 0 {
				return regions, nil
			}
		}
	}
	if c.Secondary == nil {
		return nil, nil
	}
	regions, err := c.Secondary.Detect(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetectionFailure, err)
	}
	return nonEmpty(regions), nil
}

// Unavailable is a detector that never finds anything. It stands in for a
// strategy whose backing library is not available.
type Unavailable struct{}

func (Unavailable) Detect(image.Image) ([]Region, error) { return nil, nil }

func nonEmpty(regions []Region) []Region {
	out := regions[:0:0]
	for _, r := range regions {
		if len(r.Points) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// notLocated reports whether err is one of the reader exceptions gozxing raises
// when no valid symbol is present (not found, bad format, bad checksum).
func notLocated(err error) bool {
	var re gozxing.ReaderException
	return errors.As(err, &re)
}

// keepFound drops an error raised after at least one symbol was found, so a
// failing later pass does not discard codes already located.
func keepFound(regions *[]Region, err *error) {
	if *err != nil && len(*regions) > 0 {
		*err = nil
	}
}

func recoverDetect(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("detector panic: %v", r)
	}
}

func limitOrDefault(n int) int {
	if n <= 0 {
		return maxSymbols
	}
	return n
}

func cloneRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		out := &image.RGBA{
			Pix:    make([]byte, len(rgba.Pix)),
			Stride: rgba.Stride,
			Rect:   rgba.Rect,
		}
		copy(out.Pix, rgba.Pix)
		return out
	}
	return opaque(img)
}
