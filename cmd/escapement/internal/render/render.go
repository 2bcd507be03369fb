// Package render rasterizes a single motion frame into a clock face image.
// It exists for the snapshot command; the frame loop itself never renders.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/go-escapement/escapement/pkg/engine"
)

// DefaultSize is the snapshot edge length in pixels.
const DefaultSize = 512

var (
	rimColor    = color.NRGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}
	faceColor   = color.NRGBA{R: 0xfa, G: 0xfa, B: 0xf7, A: 0xff}
	tickColor   = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	handColor   = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	secondColor = color.NRGBA{R: 0xc0, G: 0x2c, B: 0x2c, A: 0xff}
)

// Render draws frame onto a square clock face of the given edge length.
// Non-positive sizes use DefaultSize.
func Render(frame engine.Frame, size int) *image.RGBA {
	if size <= 0 {
		size = DefaultSize
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	cx := float32(size) / 2
	cy := float32(size) / 2
	radius := float32(size) * 0.48

	fillDisk(img, cx, cy, radius, rimColor)
	fillDisk(img, cx, cy, radius*0.94, faceColor)

	for i := 0; i < 12; i++ {
		angle := float64(i) * 30
		width := radius * 0.015
		inner := radius * 0.82
		if i%3 == 0 {
			width = radius * 0.03
			inner = radius * 0.76
		}
		fillHand(img, cx, cy, angle, inner, radius*0.9, width, 0, tickColor)
	}

	fillHand(img, cx, cy, frame.Hour, 0, radius*0.5, radius*0.035, radius*0.08, handColor)
	fillHand(img, cx, cy, frame.Minute, 0, radius*0.74, radius*0.025, radius*0.1, handColor)
	fillHand(img, cx, cy, frame.Second, 0, radius*0.86, radius*0.01, radius*0.16, secondColor)

	fillDisk(img, cx, cy, radius*0.04, secondColor)
	return img
}

// WritePNG renders frame and encodes it as PNG.
func WritePNG(w io.Writer, frame engine.Frame, size int) error {
	return png.Encode(w, Render(frame, size))
}

// fillDisk fills a circle approximated by line segments.
func fillDisk(dst *image.RGBA, cx, cy, r float32, c color.Color) {
	const segments = 64
	raster := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	raster.MoveTo(cx+r, cy)
	for i := 1; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / segments
		raster.LineTo(cx+r*float32(math.Cos(theta)), cy+r*float32(math.Sin(theta)))
	}
	raster.ClosePath()
	raster.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// fillHand fills a rotated rectangle pointing from the center outward.
// Angles are degrees with 0 at 12 o'clock, clockwise; tail extends the hand
// behind the pivot for balance.
func fillHand(dst *image.RGBA, cx, cy float32, angleDegrees float64, from, to, halfWidth, tail float32, c color.Color) {
	rad := angleDegrees * math.Pi / 180
	// Screen coordinates: y grows downward, so 12 o'clock is -y.
	dx := float32(math.Sin(rad))
	dy := float32(-math.Cos(rad))
	px := -dy * halfWidth
	py := dx * halfWidth

	baseX := cx + dx*(from-tail)
	baseY := cy + dy*(from-tail)
	tipX := cx + dx*to
	tipY := cy + dy*to

	raster := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	raster.MoveTo(baseX+px, baseY+py)
	raster.LineTo(tipX+px, tipY+py)
	raster.LineTo(tipX-px, tipY-py)
	raster.LineTo(baseX-px, baseY-py)
	raster.ClosePath()
	raster.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}
