// Package raster renders solved catchment circles into pixel space.
//
// It is a consumer of the engine's output, not part of the core: it takes
// a list of circles whose order encodes priority and draws them into an
// RGBA image, first circle in the list winning pixel ownership wherever
// disks overlap.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/gogeo/catchment"
	xdraw "golang.org/x/image/draw"
)

// Options configures Render. Zero values select the defaults.
type Options struct {
	// Width and Height of the output image in pixels. Default 1024×1024.
	Width, Height int

	// Supersample renders at this integer multiple of the output size and
	// downscales with a Catmull-Rom kernel, smoothing the disk edges.
	// Values below 2 render at the output size directly. Default 2.
	Supersample int

	// Background fills pixels owned by no circle. Default white.
	Background color.RGBA
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = 1024
	}
	if o.Supersample <= 0 {
		o.Supersample = 2
	}
	if o.Background == (color.RGBA{}) {
		o.Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return o
}

// Render draws the circles into a new image. The joint bounding box of all
// circles is fitted into the image preserving aspect ratio and centered.
// Circle colors ramp from blue (first in the list) to red (last), and on
// overlap the first circle in the list owns the pixel.
//
// An empty list or a degenerate bounding box (all circles collapsed to one
// point) produces a blank image.
func Render(circles []catchment.Circle, opts Options) *image.RGBA {
	opts = opts.withDefaults()

	w := opts.Width * opts.Supersample
	h := opts.Height * opts.Supersample

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, opts.Background)

	if len(circles) > 0 && !degenerateBounds(circles) {
		drawCircles(img, circles)
	}

	if opts.Supersample <= 1 {
		return img
	}

	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return out
}

// SavePNG writes the image to path in PNG format.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	return nil
}

func fill(img *image.RGBA, c color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}

func degenerateBounds(circles []catchment.Circle) bool {
	minX, minY, maxX, maxY := jointBounds(circles)
	return math.Abs(maxX-minX) < 1e-14 || math.Abs(maxY-minY) < 1e-14
}

func jointBounds(circles []catchment.Circle) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range circles {
		x0, y0, x1, y1 := c.Bounds()
		minX = math.Min(minX, x0)
		minY = math.Min(minY, y0)
		maxX = math.Max(maxX, x1)
		maxY = math.Max(maxY, y1)
	}
	return
}

// rampColor blends blue toward red along the circle list.
func rampColor(index, total int) color.RGBA {
	s := 0.0
	if total > 1 {
		s = float64(index) / float64(total-1)
	}
	return color.RGBA{
		R: uint8(math.Round(s * 255)),
		B: uint8(math.Round((1 - s) * 255)),
		A: 255,
	}
}

func drawCircles(img *image.RGBA, circles []catchment.Circle) {
	b := img.Bounds()
	w := float64(b.Dx())
	h := float64(b.Dy())

	minX, minY, maxX, maxY := jointBounds(circles)
	scale := math.Min(w/(maxX-minX), h/(maxY-minY))
	xOffset := (w - (maxX-minX)*scale) / 2
	yOffset := (h - (maxY-minY)*scale) / 2

	// Transform to pixel space once.
	type pxCircle struct {
		cx, cy, r float64
		col       color.RGBA
	}
	px := make([]pxCircle, len(circles))
	for i, c := range circles {
		px[i] = pxCircle{
			cx:  (c.Origin.X-minX)*scale + xOffset,
			cy:  (c.Origin.Y-minY)*scale + yOffset,
			r:   c.R * scale,
			col: rampColor(i, len(circles)),
		}
	}

	for y := 0; y < b.Dy(); y++ {
		fy := float64(y) + 0.5
		for x := 0; x < b.Dx(); x++ {
			fx := float64(x) + 0.5

			// First circle in the list is on top: scan in order and stop
			// at the first disk containing the pixel.
			for _, c := range px {
				dx := fx - c.cx
				dy := fy - c.cy
				if dx*dx+dy*dy <= c.r*c.r {
					img.SetRGBA(x, y, c.col)
					break
				}
			}
		}
	}
}
