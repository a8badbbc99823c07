package graph

import (
	"fmt"

	"github.com/chazu/strata/pkg/geom"
)

// linkBranches fills the branch list of every column vertex and every
// intersection point, then repairs vertical references to pass-through
// column vertices. It runs exactly once, before any face is traced.
func (g *Graph) linkBranches() error {
	for _, v := range g.left {
		v.Branches = g.vertexBranches(v, SideLeft)
	}
	for _, v := range g.right {
		v.Branches = g.vertexBranches(v, SideRight)
	}
	for _, p := range g.intersections {
		p.Branches = g.intersectionBranches(p)
	}

	for _, col := range [][]*geom.Point{g.left, g.right} {
		for _, v := range col {
			if err := g.repairVertex(v, col); err != nil {
				return err
			}
		}
	}
	return nil
}

// vertexBranches returns the direct neighbours of a column vertex: the
// opposite corner for corners, the vertical neighbours, and for every
// connector leaving v either its nearest crossing or its far endpoint.
func (g *Graph) vertexBranches(v *geom.Point, side Side) []*geom.Point {
	col, opposite := g.left, g.right
	if side == SideRight {
		col, opposite = g.right, g.left
	}
	y := int(v.Y)

	branches := []*geom.Point{}
	if g.IsCorner(v, CornerAny) {
		branches = append(branches, opposite[y])
	}
	if y-1 >= 0 {
		branches = append(branches, col[y-1])
	}
	if y+1 < g.n {
		branches = append(branches, col[y+1])
	}

	for _, e := range g.edges {
		near, far := e.From, e.To
		if side == SideRight {
			near, far = e.To, e.From
		}
		if !near.Equal(v) {
			continue
		}

		switch {
		case len(e.Intersections) == 0:
			branches = append(branches, far)
		case side == SideLeft:
			branches = append(branches, e.Intersections[0])
		default:
			branches = append(branches, e.Intersections[len(e.Intersections)-1])
		}
	}
	return branches
}

// intersectionBranches returns, for every connector through p, the points
// immediately before and after p along it. Connector endpoints bound the
// search.
func (g *Graph) intersectionBranches(p *geom.Point) []*geom.Point {
	branches := []*geom.Point{}
	for _, e := range g.edges {
		if !e.Contains(p) {
			continue
		}

		before, after := e.From, e.To
		for _, q := range e.Intersections {
			if q.X < p.X && q.X > before.X {
				before = q
			}
			if q.X > p.X && q.X < after.X {
				after = q
			}
		}
		branches = append(branches, before, after)
	}
	return branches
}

// usable reports whether p can anchor face tracing: corners and interior
// points always can, other column vertices need at least three branches.
func (g *Graph) usable(p *geom.Point) bool {
	if g.IsCorner(p, CornerAny) || !g.onColumn(p) {
		return true
	}
	return p.Degree() >= 3
}

// repairVertex swaps v's references to unusable vertical neighbours for
// the nearest usable vertex further along the column.
func (g *Graph) repairVertex(v *geom.Point, col []*geom.Point) error {
	if !g.IsCorner(v, CornerBottom) {
		if err := g.repairDirection(v, col, -1); err != nil {
			return err
		}
	}
	if !g.IsCorner(v, CornerTop) {
		if err := g.repairDirection(v, col, 1); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) repairDirection(v *geom.Point, col []*geom.Point, dir int) error {
	y := int(v.Y)
	if y+dir < 0 || y+dir >= len(col) {
		return fmt.Errorf("%w: %s has no vertical neighbour in direction %+d", ErrRepairExhausted, v, dir)
	}
	neighbour := col[y+dir]

	idx := -1
	for i, b := range v.Branches {
		if b.Equal(neighbour) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s missing from branches of %s", ErrPointLookup, neighbour, v)
	}
	if g.usable(neighbour) {
		return nil
	}

	// The walk visits each remaining column vertex at most once.
	for k := y + 2*dir; k >= 0 && k < len(col); k += dir {
		if g.usable(col[k]) {
			// The replacement goes to the end of the list, which keeps
			// the tie order of the angle search stable.
			v.Branches = append(append(v.Branches[:idx:idx], v.Branches[idx+1:]...), col[k])
			g.repairs++
			return nil
		}
	}
	return fmt.Errorf("%w: no usable vertex beyond %s in direction %+d", ErrRepairExhausted, neighbour, dir)
}
