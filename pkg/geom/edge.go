package geom

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// EdgeKind classifies an edge of the subdivision.
type EdgeKind int

const (
	EdgeUndefined EdgeKind = iota // seed or scratch edge
	EdgeOuter                     // column segment, both ends share x
	EdgeInner                     // connector or polygon side crossing the square
	EdgePolygonal                 // polygon side lying on the horizontal frame
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeUndefined:
		return "undefined"
	case EdgeOuter:
		return "outer"
	case EdgeInner:
		return "inner"
	case EdgePolygonal:
		return "polygonal"
	default:
		return fmt.Sprintf("EdgeKind(%d)", int(k))
	}
}

// EdgeKey is the value identity of a directed edge.
type EdgeKey struct {
	From, To Key
}

// Reversed returns the key of the opposite direction.
func (k EdgeKey) Reversed() EdgeKey {
	return EdgeKey{From: k.To, To: k.From}
}

// Undirected returns a key that is the same for both directions.
func (k EdgeKey) Undirected() EdgeKey {
	if k.To.Less(k.From) {
		return k.Reversed()
	}
	return k
}

// Edge is a bound vector between two points. Direction matters: an edge and
// its reversal are distinct values.
type Edge struct {
	From, To *Point
	Kind     EdgeKind

	// Line coefficients y = Slope*x + Intercept over the x-span of the
	// square. Set once when the edge is created as a connector.
	Slope     float64
	Intercept float64

	// Interior points of the edge, excluding its endpoints, ordered by x.
	Intersections []*Point
}

// NewEdge returns an unclassified edge from a to b.
func NewEdge(a, b *Point) *Edge {
	return &Edge{From: a, To: b, Intersections: []*Point{}}
}

// NewConnector returns an inner edge from a left-column point to a
// right-column point with its line coefficients computed against span,
// the horizontal width of the square.
func NewConnector(left, right *Point, span float64) *Edge {
	e := NewEdge(left, right)
	e.Kind = EdgeInner
	e.Slope = (right.Y - left.Y) / span
	e.Intercept = left.Y
	return e
}

// Key returns the directed coordinate identity of e.
func (e *Edge) Key() EdgeKey {
	return EdgeKey{From: e.From.Key(), To: e.To.Key()}
}

// Equal reports whether e and o join the same endpoints in the same order.
func (e *Edge) Equal(o *Edge) bool {
	return e.From.Equal(o.From) && e.To.Equal(o.To)
}

// SameSegment reports whether e and o join the same endpoints in either
// order.
func (e *Edge) SameSegment(o *Edge) bool {
	return e.Equal(o) || e.Equal(o.Reversed())
}

// Reversed returns a new edge with the endpoints swapped. Kind and line data
// are carried over; e itself is not modified.
func (e *Edge) Reversed() *Edge {
	r := &Edge{
		From:          e.To,
		To:            e.From,
		Kind:          e.Kind,
		Slope:         e.Slope,
		Intercept:     e.Intercept,
		Intersections: e.Intersections,
	}
	return r
}

// Vector returns e as a free vector from From to To.
func (e *Edge) Vector() v2.Vec {
	return e.To.Vec().Sub(e.From.Vec())
}

// Length returns the Euclidean length of e.
func (e *Edge) Length() float64 {
	return e.Vector().Length()
}

// Vertical reports whether both endpoints share an x coordinate.
func (e *Edge) Vertical() bool {
	return e.From.X == e.To.X
}

// Other returns the endpoint of e opposite to p, or nil if p is not an
// endpoint.
func (e *Edge) Other(p *Point) *Point {
	switch {
	case e.From.Equal(p):
		return e.To
	case e.To.Equal(p):
		return e.From
	}
	return nil
}

// Contains reports whether p is one of e's interior intersection points.
func (e *Edge) Contains(p *Point) bool {
	for _, q := range e.Intersections {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

func (e *Edge) String() string {
	return fmt.Sprintf("%s->%s", e.From, e.To)
}
