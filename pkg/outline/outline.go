// Package outline walks a built subdivision and produces a flat drawing of
// it: the frame, the connector edges, intersection and vertex markers and
// the level polygons colored by parity. It only reads the graph.
package outline

import (
	"fmt"

	"github.com/chazu/strata/pkg/geom"
	"github.com/chazu/strata/pkg/graph"
	"github.com/chazu/strata/pkg/plot"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Layer names, in drawing order.
const (
	LayerEven          = "even-levels"
	LayerOdd           = "odd-levels"
	LayerEdges         = "edges"
	LayerFrame         = "frame"
	LayerIntersections = "intersections"
	LayerVertices      = "vertices"
)

// Style is the palette used for each kind of shape.
type Style struct {
	Even         plot.Color
	Odd          plot.Color
	Edge         plot.Color
	Frame        plot.Color
	Intersection plot.Color
	Vertex       plot.Color
}

// DefaultStyle returns the standard palette: slategray even levels, skyblue
// odd levels, black edges and frame, gold intersections and orangered
// column vertices.
func DefaultStyle() Style {
	return Style{
		Even:         plot.Color{R: 0x70, G: 0x80, B: 0x90, Name: "slategray"},
		Odd:          plot.Color{R: 0x87, G: 0xce, B: 0xeb, Name: "skyblue"},
		Edge:         plot.Color{Name: "black"},
		Frame:        plot.Color{Name: "black"},
		Intersection: plot.Color{R: 0xff, G: 0xd7, Name: "gold"},
		Vertex:       plot.Color{R: 0xff, G: 0x45, Name: "orangered"},
	}
}

// Options selects which parts of the subdivision are drawn.
type Options struct {
	Polygons      bool
	Edges         bool
	Frame         bool
	Intersections bool
	Vertices      bool

	// Style overrides the palette. The zero value means DefaultStyle.
	Style *Style
}

// DefaultOptions draws everything with the default palette.
func DefaultOptions() Options {
	return Options{Polygons: true, Edges: true, Frame: true, Intersections: true, Vertices: true}
}

// Build produces a drawing of g. Layers are added in a fixed order so that
// polygons sit below the line work and markers sit on top. Disabled parts
// produce no layer.
func Build(g *graph.Graph, opts Options) *plot.Drawing {
	if g == nil {
		return nil
	}
	return draw(g, opts, func(d *plot.Drawing, style Style) {
		even := d.AddLayer(LayerEven, style.Even)
		even.Filled = true
		even.Polygons = polygons(g.Polygons(graph.ParityEven))

		odd := d.AddLayer(LayerOdd, style.Odd)
		odd.Filled = true
		odd.Polygons = polygons(g.Polygons(graph.ParityOdd))
	})
}

// BuildLevel produces a drawing in which only the polygons of level k are
// filled, colored by the level's parity. The other parts follow opts as in
// Build; with Polygons off the drawing holds no polygons at all.
func BuildLevel(g *graph.Graph, k int, opts Options) (*plot.Drawing, error) {
	lvl, ok := g.Level(k)
	if !ok {
		return nil, fmt.Errorf("outline: %w: level %d, graph has %d", graph.ErrNoSuchLevel, k, g.LevelCount())
	}
	return draw(g, opts, func(d *plot.Drawing, style Style) {
		var l *plot.Layer
		if k%2 == 0 {
			l = d.AddLayer(LayerEven, style.Even)
		} else {
			l = d.AddLayer(LayerOdd, style.Odd)
		}
		l.Filled = true
		l.Polygons = polygons(lvl.Polygons)
	}), nil
}

// draw lays out the layers selected by opts. fill adds the polygon layers.
func draw(g *graph.Graph, opts Options, fill func(*plot.Drawing, Style)) *plot.Drawing {
	style := DefaultStyle()
	if opts.Style != nil {
		style = *opts.Style
	}

	d := plot.NewDrawing(g.Span())

	if opts.Polygons {
		fill(d, style)
	}

	if opts.Edges {
		l := d.AddLayer(LayerEdges, style.Edge)
		for _, e := range g.Edges() {
			l.Lines = append(l.Lines, plot.Line{From: e.From.Vec(), To: e.To.Vec()})
		}
	}

	if opts.Frame {
		l := d.AddLayer(LayerFrame, style.Frame)
		l.Polygons = append(l.Polygons, frame(g.Span()))
	}

	if opts.Intersections {
		l := d.AddLayer(LayerIntersections, style.Intersection)
		l.Markers = markers(g.Intersections())
	}

	if opts.Vertices {
		l := d.AddLayer(LayerVertices, style.Vertex)
		l.Markers = markers(g.Vertices())
	}

	return d
}

func frame(s float64) []v2.Vec {
	return []v2.Vec{{X: 0, Y: 0}, {X: 0, Y: s}, {X: s, Y: s}, {X: s, Y: 0}}
}

func polygons(polys []*geom.Polygon) [][]v2.Vec {
	out := make([][]v2.Vec, 0, len(polys))
	for _, p := range polys {
		verts := make([]v2.Vec, p.Len())
		for i := range verts {
			verts[i] = p.At(i).Vec()
		}
		out = append(out, verts)
	}
	return out
}

func markers(pts []*geom.Point) []v2.Vec {
	out := make([]v2.Vec, 0, len(pts))
	for _, p := range pts {
		out = append(out, p.Vec())
	}
	return out
}
