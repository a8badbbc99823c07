package graph

import (
	"github.com/chazu/strata/pkg/geom"
)

// Level is one ring of faces. Lower holds the frontier the level was traced
// from; Upper holds the inner polygon edges that seed the next level.
type Level struct {
	Index    int
	Polygons []*geom.Polygon
	Lower    []*geom.Edge
	Upper    []*geom.Edge
}

// Area returns the summed area of the level's polygons.
func (l Level) Area() float64 {
	return AreaOf(l.Polygons)
}

// decompose peels levels from the bottom frame inward until the frontier is
// empty or the level cap is reached.
func (g *Graph) decompose() error {
	seed := geom.NewEdge(g.left[0], g.right[0])

	level0 := Level{
		Index:    0,
		Polygons: []*geom.Polygon{},
		Lower:    []*geom.Edge{seed},
		Upper:    []*geom.Edge{},
	}
	poly, closed := g.traceFace(seed)
	if !closed {
		g.unclosed++
	}
	if poly != nil {
		level0.Polygons = append(level0.Polygons, poly)
		level0.Upper = append(level0.Upper, poly.InnerEdges()...)
	}
	g.levels = []Level{level0}

	for i := 0; ; i++ {
		lower := g.levels[len(g.levels)-1].Upper
		if len(lower) == 0 {
			break
		}
		if i >= g.tol.MaxLevels {
			g.truncated = true
			g.logger.Warn("level decomposition truncated",
				"levels", len(g.levels),
				"frontier", len(lower))
			break
		}
		g.levels = append(g.levels, g.peel(len(g.levels), lower))
	}

	if g.unclosed > 0 {
		g.logger.Warn("face traces hit the step cap",
			"unclosed", g.unclosed,
			"max_trace_steps", g.tol.MaxTraceSteps)
	}
	return nil
}

// peel traces one face per frontier edge and derives the next frontier.
func (g *Graph) peel(index int, lower []*geom.Edge) Level {
	lvl := Level{
		Index:    index,
		Polygons: []*geom.Polygon{},
		Lower:    lower,
		Upper:    []*geom.Edge{},
	}

	seen := make(map[string]bool)
	for _, e := range lower {
		poly, closed := g.traceFace(e)
		if !closed {
			g.unclosed++
		}
		if poly == nil || seen[poly.SetKey()] {
			continue
		}
		seen[poly.SetKey()] = true
		lvl.Polygons = append(lvl.Polygons, poly)
	}

	onLower := make(map[geom.EdgeKey]bool, len(lower))
	for _, e := range lower {
		onLower[e.Key().Undirected()] = true
	}
	taken := make(map[geom.EdgeKey]bool)
	for _, poly := range lvl.Polygons {
		for _, e := range poly.InnerEdges() {
			k := e.Key().Undirected()
			if onLower[k] || taken[k] {
				continue
			}
			taken[k] = true
			lvl.Upper = append(lvl.Upper, e)
		}
	}
	return lvl
}
