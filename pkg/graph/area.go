package graph

import (
	"fmt"

	"github.com/chazu/strata/pkg/geom"
)

// Parity selects levels by the parity of their index.
type Parity int

const (
	ParityAll  Parity = iota // every level
	ParityEven               // levels 0, 2, 4, ...
	ParityOdd                // levels 1, 3, 5, ...
)

func (p Parity) String() string {
	switch p {
	case ParityAll:
		return "all"
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return fmt.Sprintf("Parity(%d)", int(p))
	}
}

func (p Parity) matches(index int) bool {
	switch p {
	case ParityEven:
		return index%2 == 0
	case ParityOdd:
		return index%2 == 1
	default:
		return true
	}
}

// AreaOf sums the shoelace areas of polys.
func AreaOf(polys []*geom.Polygon) float64 {
	var total float64
	for _, p := range polys {
		total += p.Area()
	}
	return total
}

// Polygons returns the polygons of every level matching parity, outermost
// level first.
func (g *Graph) Polygons(parity Parity) []*geom.Polygon {
	var out []*geom.Polygon
	for _, l := range g.levels {
		if parity.matches(l.Index) {
			out = append(out, l.Polygons...)
		}
	}
	return out
}

// AreaOfPolys returns the total polygon area of the even levels and of the
// odd levels.
func (g *Graph) AreaOfPolys() (even, odd float64) {
	return AreaOf(g.Polygons(ParityEven)), AreaOf(g.Polygons(ParityOdd))
}

// AreaOfLevel returns the total polygon area of level k. A level that exists
// but holds no polygons has area 0.
func (g *Graph) AreaOfLevel(k int) (float64, error) {
	l, ok := g.Level(k)
	if !ok {
		return 0, fmt.Errorf("graph: %w: level %d, graph has %d", ErrNoSuchLevel, k, len(g.levels))
	}
	return l.Area(), nil
}

// SquareArea returns (n-1)^2, the area of the bounding square.
func (g *Graph) SquareArea() float64 {
	s := g.Span()
	return s * s
}

// SumsUpToSquare reports whether a1+a2 matches the square area within the
// graph's area tolerance.
func (g *Graph) SumsUpToSquare(a1, a2 float64) bool {
	return g.sumsWithin(a1, a2, g.tol.AreaTolerance)
}

// SumsUpToSquareWithin reports whether (n-1)^2 lies in
// [(a1+a2)(1-tol), (a1+a2)(1+tol)]. tol must lie in [0, 1].
func (g *Graph) SumsUpToSquareWithin(a1, a2, tol float64) (bool, error) {
	if !(tol >= 0 && tol <= 1) {
		return false, fmt.Errorf("graph: %w: %g, must be in [0, 1]", ErrInvalidTolerance, tol)
	}
	return g.sumsWithin(a1, a2, tol), nil
}

func (g *Graph) sumsWithin(a1, a2, tol float64) bool {
	sum := a1 + a2
	sq := g.SquareArea()
	return sq >= sum*(1-tol) && sq <= sum*(1+tol)
}
