package graph

import (
	"sort"

	"github.com/chazu/strata/pkg/geom"
)

// Intersect returns the crossing point of the supporting lines of two
// connectors when it lies strictly inside (eps, span-eps). Parallel
// connectors never intersect. The ordinate is evaluated on a's line.
func Intersect(a, b *geom.Edge, span, eps float64) (x, y float64, ok bool) {
	if a.Slope == b.Slope {
		return 0, 0, false
	}
	x = (b.Intercept - a.Intercept) / (a.Slope - b.Slope)
	if !(x > eps && x < span-eps) {
		return 0, 0, false
	}
	return x, a.Slope*x + a.Intercept, true
}

// computeIntersections runs the pairwise intersection engine over all
// connectors. Every crossing is rounded, interned in the registry, and
// attached to both connectors, so that crossings reached through different
// pairs share one Point.
func (g *Graph) computeIntersections() {
	span := g.Span()
	prec := g.tol.Precision

	for i := 0; i < len(g.edges); i++ {
		a := g.edges[i]
		for j := i + 1; j < len(g.edges); j++ {
			b := g.edges[j]

			x, y, ok := Intersect(a, b, span, g.tol.Epsilon)
			if !ok {
				continue
			}

			p, created := g.registry.Intern(geom.Round(x, prec), geom.Round(y, prec), geom.PointIntersection)
			if created {
				g.intersections = append(g.intersections, p)
			}
			attach(a, p)
			attach(b, p)
		}
	}

	for _, e := range g.edges {
		sort.Slice(e.Intersections, func(i, j int) bool {
			return e.Intersections[i].X < e.Intersections[j].X
		})
	}
}

// attach records p on e unless it is already there.
func attach(e *geom.Edge, p *geom.Point) {
	for _, q := range e.Intersections {
		if q == p {
			return
		}
	}
	e.Intersections = append(e.Intersections, p)
}
