package geom

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// PointKind classifies a point of the subdivision.
type PointKind int

const (
	PointUndefined    PointKind = iota // free-standing or unclassified point
	PointVertex                        // column vertex at x=0 or x=n-1
	PointIntersection                  // interior crossing of two connectors
)

func (k PointKind) String() string {
	switch k {
	case PointUndefined:
		return "undefined"
	case PointVertex:
		return "vertex"
	case PointIntersection:
		return "intersection"
	default:
		return fmt.Sprintf("PointKind(%d)", int(k))
	}
}

// Key is the value identity of a point. Two points with equal keys denote
// the same location of the subdivision.
type Key struct {
	X, Y float64
}

func (k Key) String() string {
	return fmt.Sprintf("(%g, %g)", k.X, k.Y)
}

// Less orders keys by x, then y.
func (k Key) Less(o Key) bool {
	if k.X != o.X {
		return k.X < o.X
	}
	return k.Y < o.Y
}

// Point is a location in the plane together with its planar-graph
// neighbours. Geometry is fixed at construction; Branches is filled in once
// the whole point set exists.
type Point struct {
	X, Y     float64
	Kind     PointKind
	Branches []*Point
}

// NewPoint returns a point with an empty, unshared branch list.
func NewPoint(x, y float64, kind PointKind) *Point {
	return &Point{X: x, Y: y, Kind: kind, Branches: []*Point{}}
}

// Key returns the coordinate identity of p.
func (p *Point) Key() Key {
	return Key{X: p.X, Y: p.Y}
}

// Equal reports whether p and q sit at the same coordinates.
func (p *Point) Equal(q *Point) bool {
	if p == nil || q == nil {
		return p == q
	}
	return p.X == q.X && p.Y == q.Y
}

// Vec returns p as a free vector.
func (p *Point) Vec() v2.Vec {
	return v2.Vec{X: p.X, Y: p.Y}
}

// Norm returns the distance of p from the origin.
func (p *Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Degree returns the number of branch points.
func (p *Point) Degree() int {
	return len(p.Branches)
}

// HasBranch reports whether q is among p's branch points.
func (p *Point) HasBranch(q *Point) bool {
	for _, b := range p.Branches {
		if b.Equal(q) {
			return true
		}
	}
	return false
}

func (p *Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
