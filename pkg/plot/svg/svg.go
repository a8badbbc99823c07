// Package svg implements the plot.Backend interface with
// github.com/ajstarks/svgo, keeping layer colors and polygon fills.
package svg

import (
	"fmt"
	"io"
	"math"
	"os"

	svgo "github.com/ajstarks/svgo"
	"github.com/chazu/strata/pkg/plot"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface check.
var _ plot.Backend = (*SVGBackend)(nil)

const (
	defaultScale  = 100 // pixels per drawing unit
	defaultMargin = 20  // pixels around the square
)

// SVGBackend writes drawings as SVG with one group per layer. The y axis is
// flipped so that y grows upwards as in the drawing.
type SVGBackend struct {
	Scale  float64
	Margin int
}

// New returns an SVGBackend with default scale and margin.
func New() *SVGBackend {
	return &SVGBackend{Scale: defaultScale, Margin: defaultMargin}
}

// Name returns "svg".
func (b *SVGBackend) Name() string { return "svg" }

// Extension returns ".svg".
func (b *SVGBackend) Extension() string { return ".svg" }

// Render writes d to an SVG file at path.
func (b *SVGBackend) Render(d *plot.Drawing, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("svg: %w", err)
	}
	if err := b.Encode(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes d as SVG to w.
func (b *SVGBackend) Encode(w io.Writer, d *plot.Drawing) error {
	if d == nil {
		return fmt.Errorf("svg: nil drawing")
	}

	side := b.px(d.Size) + 2*b.Margin
	canvas := svgo.New(w)
	canvas.Start(side, side)
	canvas.Rect(0, 0, side, side, "fill:white")

	for _, l := range d.Layers {
		canvas.Gid(l.Name)
		stroke := fmt.Sprintf("stroke:%s;stroke-width:1", l.Color.Hex())

		for _, poly := range l.Polygons {
			xs, ys := b.coords(d, poly)
			if l.Filled {
				canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;stroke:black;stroke-width:1", l.Color.Hex()))
			} else {
				canvas.Polygon(xs, ys, "fill:none;"+stroke)
			}
		}
		for _, s := range l.Lines {
			x1, y1 := b.point(d, s.From)
			x2, y2 := b.point(d, s.To)
			canvas.Line(x1, y1, x2, y2, stroke)
		}
		for _, m := range l.Markers {
			x, y := b.point(d, m)
			canvas.Circle(x, y, 3, "fill:"+l.Color.Hex())
		}

		canvas.Gend()
	}

	canvas.End()
	return nil
}

func (b *SVGBackend) px(v float64) int {
	return int(math.Round(v * b.Scale))
}

func (b *SVGBackend) point(d *plot.Drawing, p v2.Vec) (int, int) {
	return b.Margin + b.px(p.X), b.Margin + b.px(d.Size-p.Y)
}

func (b *SVGBackend) coords(d *plot.Drawing, poly []v2.Vec) ([]int, []int) {
	xs := make([]int, len(poly))
	ys := make([]int, len(poly))
	for i, p := range poly {
		xs[i], ys[i] = b.point(d, p)
	}
	return xs, ys
}
