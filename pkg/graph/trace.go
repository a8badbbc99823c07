package graph

import (
	"math"

	"github.com/chazu/strata/pkg/geom"
)

// TraceFace walks the face that lies to the left of seed, starting at the
// endpoint with the smaller x. It returns nil without error when seed is
// vertical or when the walk does not close within the trace step cap.
// Seed endpoints are resolved against the graph's points by coordinate, so
// callers may pass freshly constructed points.
func (g *Graph) TraceFace(seed *geom.Edge) (*geom.Polygon, error) {
	from, err := g.registry.Resolve(seed.From)
	if err != nil {
		return nil, err
	}
	to, err := g.registry.Resolve(seed.To)
	if err != nil {
		return nil, err
	}
	poly, _ := g.traceFace(geom.NewEdge(from, to))
	return poly, nil
}

// traceFace is TraceFace without registry resolution. closed is false when
// the step cap was hit.
func (g *Graph) traceFace(seed *geom.Edge) (poly *geom.Polygon, closed bool) {
	var at, prev *geom.Point
	switch {
	case seed.From.X < seed.To.X:
		at, prev = seed.From, seed.To
	case seed.From.X > seed.To.X:
		at, prev = seed.To, seed.From
	default:
		return nil, true
	}

	path := []*geom.Point{at}
	onPath := map[geom.Key]bool{at.Key(): true}

	for step := 0; step < g.tol.MaxTraceSteps; step++ {
		next := g.nextPoint(at, prev)
		if onPath[next.Key()] {
			return geom.NewPolygon(g.Span(), path...), true
		}
		path = append(path, next)
		onPath[next.Key()] = true
		prev, at = at, next
	}

	g.logger.Debug("face trace did not close",
		"seed", seed.String(),
		"steps", g.tol.MaxTraceSteps)
	return nil, false
}

// nextPoint chooses the branch of at that turns most sharply while keeping
// the winding: among branches v with cross(u, v) >= 0, where u points back
// to prev, the one with the smallest angle to u wins. Ties keep the earlier
// branch. With no admissible branch the walk stays at at, which closes the
// trace.
func (g *Graph) nextPoint(at, prev *geom.Point) *geom.Point {
	u := prev.Vec().Sub(at.Vec())

	best := at
	bestAngle := 2 * math.Pi
	for _, c := range at.Branches {
		if c.Equal(prev) {
			continue
		}
		v := c.Vec().Sub(at.Vec())
		phi, ok := geom.Angle(u, v, g.tol.AnglePrecision)
		if !ok {
			continue
		}
		if geom.Cross(u, v) >= 0 && phi < bestAngle {
			best, bestAngle = c, phi
		}
	}
	return best
}
