package qrmask

import (
	"image"
	"image/color"
	"math"

	"github.com/makiuchi-d/gozxing"
)

// Point is a position in image pixel coordinates.
type Point struct {
	X, Y float64
}

// Region is the polygon boundary of one detected QR code.
type Region struct {
	Points []Point
}

// Bounds returns the axis-aligned bounding box of the region. Coordinates are
// truncated to integers and the maximum edge is inclusive, so the returned
// rectangle covers pixel (int(maxX), int(maxY)).
func (r Region) Bounds() image.Rectangle {
	if len(r.Points) == 0 {
		return image.Rectangle{}
	}
	minX, minY := r.Points[0].X, r.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range r.Points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(int(minX), int(minY), int(maxX)+1, int(maxY)+1)
}

// finder patterns sit 3.5 modules inside each corner of a QR symbol.
const finderInset = 3.5

type moduleSizer interface {
	GetEstimatedModuleSize() float64
}

// symbolRegion converts gozxing result points into the symbol outline. Points are
// ordered bottom-left, top-left, top-right finder centres, optionally followed by
// an alignment pattern. The fourth corner is completed as a parallelogram and all
// corners are pushed out from the centre by the finder inset. When fewer than
// three points are reported they are returned unchanged.
func symbolRegion(points []gozxing.ResultPoint, moduleSize float64) Region {
	pts := make([]Point, 0, len(points))
	for _, p := range points {
		if p == nil {
			continue
		}
		pts = append(pts, Point{X: p.GetX(), Y: p.GetY()})
	}
	if len(pts) < 3 {
		return Region{Points: pts}
	}

	if moduleSize <= 0 {
		moduleSize = estimatedModuleSize(points[:3])
	}

	bl, tl, tr := pts[0], pts[1], pts[2]
	br := Point{X: tr.X + bl.X - tl.X, Y: tr.Y + bl.Y - tl.Y}
	corners := []Point{tl, tr, br, bl}
	if moduleSize <= 0 {
		return Region{Points: corners}
	}

	centre := Point{X: (bl.X + tr.X) / 2, Y: (bl.Y + tr.Y) / 2}
	push := finderInset * math.Sqrt2 * moduleSize
	for i, c := range corners {
		dx, dy := c.X-centre.X, c.Y-centre.Y
		n := math.Hypot(dx, dy)
		if n == 0 {
			continue
		}
		corners[i] = Point{X: c.X + dx/n*push, Y: c.Y + dy/n*push}
	}
	return Region{Points: corners}
}

// estimatedModuleSize averages the module size carried by finder patterns.
// It returns 0 when the points do not expose one.
func estimatedModuleSize(points []gozxing.ResultPoint) float64 {
	var sum float64
	var n int
	for _, p := range points {
		if ms, ok := p.(moduleSizer); ok && ms.GetEstimatedModuleSize() > 0 {
			sum += ms.GetEstimatedModuleSize()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// erase paints the region's bounding box white on img so the next detection pass
// cannot find the same symbol again. It reports whether any pixel was painted.
func erase(img *image.RGBA, r Region) bool {
	box := r.Bounds().Intersect(img.Bounds())
	if box.Empty() {
		return false
	}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			img.SetRGBA(x, y, white)
		}
	}
	return true
}
