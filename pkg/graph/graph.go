package graph

import (
	"fmt"
	"log/slog"

	"github.com/chazu/strata/pkg/geom"
)

// Side selects one of the two point columns.
type Side int

const (
	SideLeft  Side = iota // column at x=0
	SideRight             // column at x=n-1
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// CornerMode restricts IsCorner to a subset of the frame corners.
type CornerMode int

const (
	CornerAny    CornerMode = iota // any of the four corners
	CornerBottom                   // (0,0) or (n-1,0)
	CornerTop                      // (0,n-1) or (n-1,n-1)
)

// Graph is the planar subdivision of the square [0, n-1]^2 induced by the
// frame and the connector edges. It is immutable once New returns.
type Graph struct {
	n      int
	tol    Tolerances
	logger *slog.Logger

	registry      *PointRegistry
	left, right   []*geom.Point
	edges         []*geom.Edge
	intersections []*geom.Point
	levels        []Level

	repairs   int
	unclosed  int
	truncated bool
}

// New builds the subdivision for n points per column and the given
// connector pairs. Input is validated before any geometry is computed.
// Pairs equal to the bottom (0,0) or top (n-1,n-1) frame connectors are
// dropped, as are duplicates. An empty pair list yields the bare frame.
func New(n int, pairs []Pair, opts ...Option) (*Graph, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateInput(n, pairs); err != nil {
		return nil, err
	}

	g := &Graph{
		n:        n,
		tol:      o.tol,
		logger:   o.logger,
		registry: NewPointRegistry(),
	}

	g.createVertices()
	g.createConnectors(pairs)
	g.computeIntersections()
	g.logger.Debug("intersections computed",
		"connectors", len(g.edges),
		"intersections", len(g.intersections))

	if err := g.linkBranches(); err != nil {
		return nil, fmt.Errorf("graph: linking branch points: %w", err)
	}
	g.logger.Debug("branch points linked", "repairs", g.repairs)

	if err := g.decompose(); err != nil {
		return nil, fmt.Errorf("graph: decomposing levels: %w", err)
	}
	g.logger.Debug("levels decomposed",
		"levels", len(g.levels),
		"unclosed_traces", g.unclosed,
		"truncated", g.truncated)

	return g, nil
}

// createVertices registers the 2n column vertices.
func (g *Graph) createVertices() {
	span := g.Span()
	g.left = make([]*geom.Point, g.n)
	g.right = make([]*geom.Point, g.n)
	for y := 0; y < g.n; y++ {
		g.left[y], _ = g.registry.Intern(0, float64(y), geom.PointVertex)
	}
	for y := 0; y < g.n; y++ {
		g.right[y], _ = g.registry.Intern(span, float64(y), geom.PointVertex)
	}
}

// createConnectors turns the filtered pair list into connector edges.
func (g *Graph) createConnectors(pairs []Pair) {
	span := g.Span()
	for _, p := range normalizePairs(g.n, pairs) {
		g.edges = append(g.edges, geom.NewConnector(g.left[p.Left], g.right[p.Right], span))
	}
}

// N returns the number of points per column.
func (g *Graph) N() int { return g.n }

// Span returns the side length n-1 of the square.
func (g *Graph) Span() float64 { return float64(g.n - 1) }

// Tolerances returns the numeric policy the graph was built with.
func (g *Graph) Tolerances() Tolerances { return g.tol }

// Column returns the vertices of one column ordered by height.
func (g *Graph) Column(s Side) []*geom.Point {
	col := g.left
	if s == SideRight {
		col = g.right
	}
	out := make([]*geom.Point, len(col))
	copy(out, col)
	return out
}

// Vertices returns all 2n column vertices, left column first.
func (g *Graph) Vertices() []*geom.Point {
	out := make([]*geom.Point, 0, 2*g.n)
	out = append(out, g.left...)
	return append(out, g.right...)
}

// Edges returns the processed connector edges.
func (g *Graph) Edges() []*geom.Edge {
	out := make([]*geom.Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Intersections returns the global, deduplicated intersection points.
func (g *Graph) Intersections() []*geom.Point {
	out := make([]*geom.Point, len(g.intersections))
	copy(out, g.intersections)
	return out
}

// Points returns every point of the graph: column vertices, then
// intersection points.
func (g *Graph) Points() []*geom.Point {
	return g.registry.Points()
}

// Point returns the registered point at (x, y).
func (g *Graph) Point(x, y float64) (*geom.Point, error) {
	return g.registry.Resolve(&geom.Point{X: x, Y: y})
}

// Levels returns the decomposition, outermost level first.
func (g *Graph) Levels() []Level {
	out := make([]Level, len(g.levels))
	copy(out, g.levels)
	return out
}

// LevelCount returns the number of levels.
func (g *Graph) LevelCount() int { return len(g.levels) }

// Level returns the level with index k.
func (g *Graph) Level(k int) (Level, bool) {
	if k < 0 || k >= len(g.levels) {
		return Level{}, false
	}
	return g.levels[k], true
}

// Truncated reports whether level decomposition stopped at the level cap
// with a non-empty frontier left.
func (g *Graph) Truncated() bool { return g.truncated }

// UnclosedTraces returns how many face traces started during decomposition
// hit the step cap without closing.
func (g *Graph) UnclosedTraces() int { return g.unclosed }

// Repairs returns the number of vertical branch references replaced by the
// adjacency repair pass.
func (g *Graph) Repairs() int { return g.repairs }

// IsCorner reports whether p is one of the frame corners selected by mode.
func (g *Graph) IsCorner(p *geom.Point, mode CornerMode) bool {
	span := g.Span()
	if p.X != 0 && p.X != span {
		return false
	}
	bottom := p.Y == 0
	top := p.Y == span
	switch mode {
	case CornerBottom:
		return bottom
	case CornerTop:
		return top
	default:
		return bottom || top
	}
}

// onColumn reports whether p lies on the left or right column.
func (g *Graph) onColumn(p *geom.Point) bool {
	return p.X == 0 || p.X == g.Span()
}
