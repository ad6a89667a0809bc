// Package render implements the software rasterizer behind the draw()
// and save() built-ins: an RGBA canvas, an affine point transform driven
// by origin/rot/scale, and a stamped-circle line rasterizer (§4.7,
// grounded on the teacher's GetFramebufferRGBA/SaveScreenshot pixel
// model, generalized from a fixed 128×128 indexed bank to an
// arbitrary-size true-color image.RGBA).
package render

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
)

// Point is a 2-D coordinate in canvas pixel space.
type Point struct {
	X, Y float64
}

// Canvas is a software RGBA framebuffer, lazily created on the first
// draw() call of a run and fixed in size and background thereafter.
type Canvas struct {
	img *image.RGBA
}

// New allocates width×height pixels and fills them with background.
func New(width, height int, background color.RGBA) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, background)
		}
	}
	return &Canvas{img: img}
}

func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Image exposes the underlying image for callers (e.g. a preview
// window) that need a read-only image.Image view.
func (c *Canvas) Image() image.Image { return c.img }

// Transform applies scale, then rotation about the origin, then
// translation by origin — the same order as the teacher's
// bank-relative pixel addressing, generalized to a floating affine map.
func (c *Canvas) Transform(p Point, origin [2]int, rotRadians float64, scale [2]float64) Point {
	x := p.X * scale[0]
	y := p.Y * scale[1]
	sin, cos := math.Sin(rotRadians), math.Cos(rotRadians)
	rx := x*cos - y*sin
	ry := x*sin + y*cos
	return Point{X: rx + float64(origin[0]), Y: ry + float64(origin[1])}
}

// StampLine rasterizes a line between two already-transformed points by
// stepping along it and stamping a filled disc of radius width/2 at each
// sample, reusing the teacher's "set one pixel, account for stride"
// discipline but generalized to variable width and an arbitrary stride.
func (c *Canvas) StampLine(from, to Point, width int, col color.RGBA) {
	if width < 1 {
		width = 1
	}
	dx, dy := to.X-from.X, to.Y-from.Y
	dist := math.Hypot(dx, dy)
	steps := int(dist) + 1
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := from.X + dx*t
		y := from.Y + dy*t
		c.stampDisc(x, y, width, col)
	}
}

func (c *Canvas) stampDisc(cx, cy float64, width int, col color.RGBA) {
	radius := width / 2
	bounds := c.img.Bounds()
	cxi, cyi := int(math.Round(cx)), int(math.Round(cy))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			px, py := cxi+dx, cyi+dy
			if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
				continue
			}
			c.img.SetRGBA(px, py, col)
		}
	}
}

// EncodePNG mirrors the teacher's SaveScreenshot, swapping the
// direct-to-file os.Create for an io.Writer so the caller controls
// path resolution and error reporting.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// EncodeJPEG is the analogous JPEG path for the save() built-in's
// .jpg/.jpeg suffix handling.
func (c *Canvas) EncodeJPEG(w io.Writer, quality int) error {
	return jpeg.Encode(w, c.img, &jpeg.Options{Quality: quality})
}
