package plot

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Color is an sRGB color with an optional CSS name.
type Color struct {
	R, G, B uint8
	Name    string `json:"name,omitempty"`
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Line is a straight segment.
type Line struct {
	From v2.Vec `json:"from"`
	To   v2.Vec `json:"to"`
}

// Layer groups shapes drawn with one color.
type Layer struct {
	Name     string     `json:"name"`
	Color    Color      `json:"color"`
	Filled   bool       `json:"filled"`   // polygons are filled, not outlined
	Lines    []Line     `json:"lines"`    // free segments
	Polygons [][]v2.Vec `json:"polygons"` // closed outlines, last vertex joins the first
	Markers  []v2.Vec   `json:"markers"`  // point markers
}

// Segments returns every straight segment of the layer, with polygon
// outlines expanded into their sides.
func (l *Layer) Segments() []Line {
	out := make([]Line, 0, len(l.Lines))
	out = append(out, l.Lines...)
	for _, poly := range l.Polygons {
		for i := range poly {
			out = append(out, Line{From: poly[i], To: poly[(i+1)%len(poly)]})
		}
	}
	return out
}

// IsEmpty returns true if the layer holds no shapes.
func (l *Layer) IsEmpty() bool {
	return len(l.Lines) == 0 && len(l.Polygons) == 0 && len(l.Markers) == 0
}

// Drawing is an ordered stack of layers over the square [0, Size]^2.
// Later layers are drawn on top of earlier ones.
type Drawing struct {
	Size   float64  `json:"size"`
	Layers []*Layer `json:"layers"`
}

// NewDrawing returns an empty drawing of the given extent.
func NewDrawing(size float64) *Drawing {
	return &Drawing{Size: size}
}

// AddLayer appends a new empty layer and returns it.
func (d *Drawing) AddLayer(name string, c Color) *Layer {
	l := &Layer{Name: name, Color: c}
	d.Layers = append(d.Layers, l)
	return l
}

// Layer returns the layer with the given name, or nil.
func (d *Drawing) Layer(name string) *Layer {
	for _, l := range d.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// SegmentCount returns the number of segments across all layers.
func (d *Drawing) SegmentCount() int {
	n := 0
	for _, l := range d.Layers {
		n += len(l.Segments())
	}
	return n
}

// IsEmpty returns true if no layer holds a shape.
func (d *Drawing) IsEmpty() bool {
	for _, l := range d.Layers {
		if !l.IsEmpty() {
			return false
		}
	}
	return true
}
