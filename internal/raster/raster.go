// Package raster paints tile layouts into bitmaps so clients that cannot
// display SVG still get a preview. Output approximates browser rendering of
// the SVG; it is not pixel-identical.
package raster

import (
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pingcap/errors"

	"github.com/Zachkp/portfolio-tiles/internal/tile"
)

type options struct {
	scale float64
}

type Option func(*options)

// WithScale multiplies the 400x250 canvas. Values <= 0 are ignored.
func WithScale(s float64) Option {
	return func(o *options) {
		if s > 0 {
			o.scale = s
		}
	}
}

// Render draws the layout and returns the resulting image.
func Render(l tile.Layout, opts ...Option) (image.Image, error) {
	dc, err := draw(l, opts...)
	if err != nil {
		return nil, err
	}
	// Close flushes queued drawing; the pixmap stays readable.
	if err := dc.Close(); err != nil {
		return nil, errors.Trace(err)
	}
	return dc.Image(), nil
}

// EncodePNG renders the layout and writes it to w as PNG.
func EncodePNG(w io.Writer, l tile.Layout, opts ...Option) error {
	dc, err := draw(l, opts...)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.FlushGPU(); err != nil {
		return errors.Annotate(err, "flush gpu")
	}
	return errors.Trace(dc.EncodePNG(w))
}

func draw(l tile.Layout, opts ...Option) (*gg.Context, error) {
	o := options{scale: 1}
	for _, opt := range opts {
		opt(&o)
	}

	w := int(math.Round(tile.Width * o.scale))
	h := int(math.Round(tile.Height * o.scale))
	dc := gg.NewContext(w, h)
	dc.Scale(o.scale, o.scale)

	steps := []func(*gg.Context, tile.Layout) error{
		background,
		grid,
		shapes,
		vignette,
	}
	for _, step := range steps {
		if err := step(dc, l); err != nil {
			dc.Close()
			return nil, err
		}
	}
	return dc, nil
}

func background(dc *gg.Context, l tile.Layout) error {
	start, err := hexColor(l.Palette.Start)
	if err != nil {
		return err
	}
	end, err := hexColor(l.Palette.End)
	if err != nil {
		return err
	}
	// the SVG gradient runs corner to corner in bounding box units
	grad := gg.NewLinearGradientBrush(0, 0, tile.Width, tile.Height).
		AddColorStop(0, start).
		AddColorStop(1, end)
	dc.SetFillBrush(grad)
	dc.DrawRectangle(0, 0, tile.Width, tile.Height)
	return errors.Annotate(dc.Fill(), "fill background")
}

func grid(dc *gg.Context, _ tile.Layout) error {
	dc.SetRGBA(1, 1, 1, tile.GridAlpha)
	dc.SetLineWidth(1)
	for x := 0.0; x < tile.Width; x += tile.GridSpacing {
		dc.DrawLine(x, 0, x, tile.Height)
	}
	for y := 0.0; y < tile.Height; y += tile.GridSpacing {
		dc.DrawLine(0, y, tile.Width, y)
	}
	return errors.Annotate(dc.Stroke(), "stroke grid")
}

func shapes(dc *gg.Context, l tile.Layout) error {
	dc.SetRGBA(1, 1, 1, tile.ShapeAlpha)

	for _, s := range l.Segments {
		dc.SetLineWidth(s.Width)
		dc.DrawLine(s.From.X, s.From.Y, s.To.X, s.To.Y)
		if err := dc.Stroke(); err != nil {
			return errors.Annotate(err, "stroke segment")
		}
		dc.DrawCircle(s.From.X, s.From.Y, 2)
		dc.DrawCircle(s.To.X, s.To.Y, 2)
		if err := dc.Fill(); err != nil {
			return errors.Annotate(err, "fill pads")
		}
	}

	for _, d := range l.Dots {
		dc.DrawCircle(d.Center.X, d.Center.Y, d.Radius)
	}
	if len(l.Dots) > 0 {
		if err := dc.Fill(); err != nil {
			return errors.Annotate(err, "fill dots")
		}
	}

	dc.SetLineWidth(2)
	for _, w := range l.Waves {
		for i, p := range w.Points {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
				continue
			}
			dc.LineTo(p.X, p.Y)
		}
		if err := dc.Stroke(); err != nil {
			return errors.Annotate(err, "stroke wave")
		}
	}
	return nil
}

func vignette(dc *gg.Context, _ tile.Layout) error {
	cx, cy := tile.Width/2.0, tile.Height/2.0
	// r=70% in bounding box units, averaged into a circle
	r := 0.7 * math.Hypot(tile.Width, tile.Height) / math.Sqrt2
	grad := gg.NewRadialGradientBrush(cx, cy, 0, r).
		AddColorStop(0, gg.Transparent).
		AddColorStop(1, gg.RGBA2(0, 0, 0, tile.VignetteAlpha))
	dc.SetFillBrush(grad)
	dc.DrawRectangle(0, 0, tile.Width, tile.Height)
	return errors.Annotate(dc.Fill(), "fill vignette")
}

func hexColor(s string) (gg.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return gg.RGBA{}, errors.Annotatef(err, "parse colour %q", s)
	}
	return gg.RGB(c.R, c.G, c.B), nil
}
