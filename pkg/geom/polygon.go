package geom

import (
	"math"
	"sort"
	"strings"
)

// Polygon is a cyclic sequence of points. Sides are partitioned by the x
// coordinates of their endpoints: sides on a column are outer, sides
// crossing the square are inner, and sides lying on the bottom or top frame
// belong to neither partition.
type Polygon struct {
	Vertices []*Point

	inner []*Edge
	outer []*Edge
	frame []*Edge
}

// NewPolygon builds a polygon in a square spanning [0, span] on both axes
// and classifies its sides.
func NewPolygon(span float64, verts ...*Point) *Polygon {
	p := &Polygon{
		Vertices: append([]*Point(nil), verts...),
		inner:    []*Edge{},
		outer:    []*Edge{},
		frame:    []*Edge{},
	}
	p.classify(span)
	return p
}

func (p *Polygon) classify(span float64) {
	onFrame := func(a, b *Point, y float64) bool {
		return a.Y == y && b.Y == y &&
			(a.X == 0 || a.X == span) && (b.X == 0 || b.X == span)
	}

	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		e := NewEdge(a, b)

		switch {
		case onFrame(a, b, 0), onFrame(a, b, span):
			e.Kind = EdgePolygonal
			p.frame = append(p.frame, e)
		case a.X == b.X:
			e.Kind = EdgeOuter
			p.outer = append(p.outer, e)
		default:
			e.Kind = EdgeInner
			p.inner = append(p.inner, e)
		}
	}
}

// Len returns the number of vertices.
func (p *Polygon) Len() int {
	return len(p.Vertices)
}

// At returns the i-th vertex.
func (p *Polygon) At(i int) *Point {
	return p.Vertices[i]
}

// Degenerate reports whether p has fewer than three vertices.
func (p *Polygon) Degenerate() bool {
	return len(p.Vertices) < 3
}

// InnerEdges returns the sides of p that cross the square.
func (p *Polygon) InnerEdges() []*Edge {
	return p.inner
}

// OuterEdges returns the sides of p that lie on a column.
func (p *Polygon) OuterEdges() []*Edge {
	return p.outer
}

// FrameEdges returns the sides of p that lie on the bottom or top frame.
func (p *Polygon) FrameEdges() []*Edge {
	return p.frame
}

// Area returns the absolute shoelace area of p.
func (p *Polygon) Area() float64 {
	return Shoelace(p.Vertices)
}

// Equal reports whether p and q have the same vertex set, regardless of
// starting point or direction.
func (p *Polygon) Equal(q *Polygon) bool {
	return p.SetKey() == q.SetKey()
}

// SetKey returns a canonical string for the vertex set of p.
func (p *Polygon) SetKey() string {
	keys := make([]Key, 0, len(p.Vertices))
	seen := make(map[Key]bool, len(p.Vertices))
	for _, v := range p.Vertices {
		k := v.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k.String())
	}
	return sb.String()
}

func (p *Polygon) String() string {
	parts := make([]string, len(p.Vertices))
	for i, v := range p.Vertices {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Shoelace returns the absolute area enclosed by the closed vertex sequence
// pts: half the absolute sum of x_i*y_{i+1} - x_{i+1}*y_i with wraparound.
func Shoelace(pts []*Point) float64 {
	var sum float64
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}
