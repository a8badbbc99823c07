// Package sdfx implements the plot.Backend interface using the DXF writer
// of the github.com/deadsy/sdfx CAD library.
package sdfx

import (
	"fmt"

	"github.com/chazu/strata/pkg/plot"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface check.
var _ plot.Backend = (*DXFBackend)(nil)

// defaultMarkerSize is the half-width of a point marker cross, as a
// fraction of the drawing size.
const defaultMarkerSize = 0.01

// DXFBackend writes drawings as DXF line work. DXF carries no fill, so
// filled polygons are written as outlines and markers as small crosses.
type DXFBackend struct {
	// MarkerSize overrides the marker half-width in drawing units.
	MarkerSize float64
}

// New returns a new DXFBackend.
func New() *DXFBackend {
	return &DXFBackend{}
}

// Name returns "dxf".
func (b *DXFBackend) Name() string { return "dxf" }

// Extension returns ".dxf".
func (b *DXFBackend) Extension() string { return ".dxf" }

// Render writes every segment and marker of d to a DXF file at path.
func (b *DXFBackend) Render(d *plot.Drawing, path string) error {
	if d == nil {
		return fmt.Errorf("sdfx: nil drawing")
	}

	out := render.NewDXF(path)
	for _, l := range b.lines(d) {
		out.Line(l)
	}

	if err := out.Save(); err != nil {
		return fmt.Errorf("sdfx: saving %s: %w", path, err)
	}
	return nil
}

func (b *DXFBackend) markerSize(d *plot.Drawing) float64 {
	if b.MarkerSize > 0 {
		return b.MarkerSize
	}
	return defaultMarkerSize * d.Size
}

// lines returns every DXF line Render emits for d: polygon sides and free
// segments, then two strokes per marker.
func (b *DXFBackend) lines(d *plot.Drawing) []*sdf.Line2 {
	var out []*sdf.Line2
	r := b.markerSize(d)
	for _, l := range d.Layers {
		for _, s := range l.Segments() {
			out = append(out, &sdf.Line2{s.From, s.To})
		}
		for _, m := range l.Markers {
			out = append(out,
				&sdf.Line2{v2.Vec{X: m.X - r, Y: m.Y - r}, v2.Vec{X: m.X + r, Y: m.Y + r}},
				&sdf.Line2{v2.Vec{X: m.X - r, Y: m.Y + r}, v2.Vec{X: m.X + r, Y: m.Y - r}})
		}
	}
	return out
}

// LineCount returns the number of DXF lines Render emits for d.
func (b *DXFBackend) LineCount(d *plot.Drawing) int {
	return len(b.lines(d))
}
