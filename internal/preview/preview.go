// Package preview draws the XY projection of a curve and its resampled
// points, for checking results by eye.
package preview

import (
	"io"
	"math"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"

	"honnef.co/go/curve3"
)

type Options struct {
	// Size is the length in pixels of the longer side of the drawing area.
	// It defaults to 512.
	Size int
	// Padding around the drawing area, in pixels. It defaults to 16.
	Padding int
	// Radius of the markers drawn for resampled points. It defaults to 3.
	Radius float64
}

func (opts Options) withDefaults() Options {
	if opts.Size <= 0 {
		opts.Size = 512
	}
	if opts.Padding <= 0 {
		opts.Padding = 16
	}
	if opts.Radius <= 0 {
		opts.Radius = 3
	}
	return opts
}

// Draw renders the input polyline in cyan and the resampled points in red,
// with the first resampled point in green, on a black background. The y axis
// points up.
func Draw(original, resampled []curve3.Point, opts Options) *gg.Context {
	opts = opts.withDefaults()
	box := curve3.BoundingBox(append(append([]curve3.Point(nil), original...), resampled...))

	extent := math.Max(box.Width(), box.Height())
	scale := 1.0
	if extent > 0 {
		scale = float64(opts.Size) / extent
	}
	pad := float64(opts.Padding)
	width := int(math.Ceil(box.Width()*scale)) + 2*opts.Padding
	height := int(math.Ceil(box.Height()*scale)) + 2*opts.Padding

	project := func(pt curve3.Point) (float64, float64) {
		return pad + (pt.X-box.X0)*scale, float64(height) - pad - (pt.Y-box.Y0)*scale
	}

	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.Clear()

	if len(original) > 0 {
		c.SetLineWidth(1)
		c.MoveTo(project(original[0]))
		for _, pt := range original[1:] {
			c.LineTo(project(pt))
		}
		c.SetRGB(0, 1, 1)
		c.Stroke()
	}

	c.SetRGB(1, 0, 0)
	for _, pt := range resampled {
		x, y := project(pt)
		c.DrawCircle(x, y, opts.Radius)
		c.Fill()
	}
	if len(resampled) > 0 {
		x, y := project(resampled[0])
		c.SetRGB(0, 0.8, 0)
		c.DrawCircle(x, y, opts.Radius)
		c.Fill()
	}
	return c
}

// Render draws the preview and saves it as a PNG file.
func Render(path string, original, resampled []curve3.Point, opts Options) error {
	return errors.WithStack(Draw(original, resampled, opts).SavePNG(path))
}

// Encode draws the preview and writes it to w as PNG.
func Encode(w io.Writer, original, resampled []curve3.Point, opts Options) error {
	return errors.WithStack(Draw(original, resampled, opts).EncodePNG(w))
}

// Show displays a rendered preview inline in terminals that support it.
func Show(path string, w io.Writer) {
	imgcat.CatFile(path, w)
}
