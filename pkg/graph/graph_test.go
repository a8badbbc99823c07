package graph

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/chazu/strata/pkg/geom"
)

const tol = 1e-6

// examplePairs is the reference six-point subdivision, duplicates included.
var examplePairs = []Pair{
	{2, 2}, {2, 1}, {2, 4}, {1, 3}, {4, 1}, {3, 5}, {5, 3},
	{4, 0}, {1, 0}, {3, 4}, {0, 3}, {2, 4}, {4, 1},
}

func mustNew(t *testing.T, n int, pairs []Pair, opts ...Option) *Graph {
	t.Helper()
	g, err := New(n, pairs, opts...)
	if err != nil {
		t.Fatalf("New(%d, %v): %v", n, pairs, err)
	}
	return g
}

func keysOf(pts []*geom.Point) []geom.Key {
	out := make([]geom.Key, len(pts))
	for i, p := range pts {
		out[i] = p.Key()
	}
	return out
}

// ---------------------------------------------------------------------------
// Input validation
// ---------------------------------------------------------------------------

func TestNewRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		pairs []Pair
		want  error
	}{
		{"n zero", 0, nil, ErrInvalidVertexCount},
		{"n one", 1, nil, ErrInvalidVertexCount},
		{"n negative", -3, []Pair{{0, 0}}, ErrInvalidVertexCount},
		{"left too large", 3, []Pair{{3, 0}}, ErrInvalidVertexIndex},
		{"right too large", 3, []Pair{{0, 1}, {1, 3}}, ErrInvalidVertexIndex},
		{"negative index", 4, []Pair{{-1, 2}}, ErrInvalidVertexIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.n, tt.pairs)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if g != nil {
				t.Error("graph should be nil on error")
			}
		})
	}
}

func TestParsePairs(t *testing.T) {
	pairs, err := ParsePairs([][]int{{0, 1}, {2, 3}})
	if err != nil {
		t.Fatalf("ParsePairs: %v", err)
	}
	if len(pairs) != 2 || pairs[0] != (Pair{0, 1}) || pairs[1] != (Pair{2, 3}) {
		t.Errorf("pairs = %v", pairs)
	}

	for _, raw := range [][][]int{{{1}}, {{0, 1}, {1, 2, 3}}, {{}}} {
		if _, err := ParsePairs(raw); !errors.Is(err, ErrInvalidEdgeFormat) {
			t.Errorf("ParsePairs(%v) err = %v, want ErrInvalidEdgeFormat", raw, err)
		}
	}
}

func TestFrameConnectorsAndDuplicatesAreDropped(t *testing.T) {
	g := mustNew(t, 4, []Pair{{0, 0}, {3, 3}, {1, 2}, {1, 2}, {2, 1}})
	edges := g.Edges()
	if len(edges) != 2 {
		t.Fatalf("edge count = %d, want 2: %v", len(edges), edges)
	}
	if edges[0].From.Y != 1 || edges[0].To.Y != 2 {
		t.Errorf("first edge = %v, want (0,1)->(3,2)", edges[0])
	}
	if edges[1].From.Y != 2 || edges[1].To.Y != 1 {
		t.Errorf("second edge = %v, want (0,2)->(3,1)", edges[1])
	}
}

func TestExampleDropsDuplicateConnectors(t *testing.T) {
	g := mustNew(t, 6, examplePairs)
	if got := len(g.Edges()); got != 11 {
		t.Errorf("edge count = %d, want 11", got)
	}
}

// ---------------------------------------------------------------------------
// Construction and accessors
// ---------------------------------------------------------------------------

func TestColumnsAndCorners(t *testing.T) {
	g := mustNew(t, 4, nil)

	if g.N() != 4 || g.Span() != 3 {
		t.Fatalf("N, Span = %d, %f", g.N(), g.Span())
	}
	left := g.Column(SideLeft)
	right := g.Column(SideRight)
	if len(left) != 4 || len(right) != 4 {
		t.Fatalf("column lengths = %d, %d", len(left), len(right))
	}
	for y := 0; y < 4; y++ {
		if left[y].X != 0 || left[y].Y != float64(y) || left[y].Kind != geom.PointVertex {
			t.Errorf("left[%d] = %v (%s)", y, left[y], left[y].Kind)
		}
		if right[y].X != 3 || right[y].Y != float64(y) {
			t.Errorf("right[%d] = %v", y, right[y])
		}
	}
	if len(g.Vertices()) != 8 || len(g.Points()) != 8 {
		t.Errorf("vertices = %d, points = %d, want 8", len(g.Vertices()), len(g.Points()))
	}

	tests := []struct {
		p                *geom.Point
		any, bottom, top bool
	}{
		{left[0], true, true, false},
		{right[0], true, true, false},
		{left[3], true, false, true},
		{right[3], true, false, true},
		{left[1], false, false, false},
		{geom.NewPoint(1.5, 0, geom.PointUndefined), false, false, false},
	}
	for _, tt := range tests {
		if got := g.IsCorner(tt.p, CornerAny); got != tt.any {
			t.Errorf("IsCorner(%v, any) = %v, want %v", tt.p, got, tt.any)
		}
		if got := g.IsCorner(tt.p, CornerBottom); got != tt.bottom {
			t.Errorf("IsCorner(%v, bottom) = %v, want %v", tt.p, got, tt.bottom)
		}
		if got := g.IsCorner(tt.p, CornerTop); got != tt.top {
			t.Errorf("IsCorner(%v, top) = %v, want %v", tt.p, got, tt.top)
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	g := mustNew(t, 3, []Pair{{0, 2}, {2, 0}})

	edges := g.Edges()
	edges[0] = nil
	if g.Edges()[0] == nil {
		t.Error("Edges() exposed the internal slice")
	}
	col := g.Column(SideLeft)
	col[0] = nil
	if g.Column(SideLeft)[0] == nil {
		t.Error("Column() exposed the internal slice")
	}
	levels := g.Levels()
	levels[0].Index = 99
	if g.Levels()[0].Index != 0 {
		t.Error("Levels() exposed the internal slice")
	}
}

func TestPointLookup(t *testing.T) {
	g := mustNew(t, 3, []Pair{{0, 2}, {2, 0}})

	p, err := g.Point(1, 1)
	if err != nil {
		t.Fatalf("Point(1, 1): %v", err)
	}
	if p.Kind != geom.PointIntersection {
		t.Errorf("kind = %s, want intersection", p.Kind)
	}
	if _, err := g.Point(0.5, 0.5); !errors.Is(err, ErrPointLookup) {
		t.Errorf("Point(0.5, 0.5) err = %v, want ErrPointLookup", err)
	}
}

func TestSideString(t *testing.T) {
	if SideLeft.String() != "left" || SideRight.String() != "right" {
		t.Errorf("got %q, %q", SideLeft, SideRight)
	}
	if got := Side(7).String(); got != "Side(7)" {
		t.Errorf("Side(7).String() = %q", got)
	}
}

func TestWithTolerancesKeepsDefaultsForZeroFields(t *testing.T) {
	g := mustNew(t, 3, nil, WithTolerances(Tolerances{AreaTolerance: 0.05}))
	got := g.Tolerances()
	want := DefaultTolerances()
	want.AreaTolerance = 0.05
	if got != want {
		t.Errorf("Tolerances() = %+v, want %+v", got, want)
	}
}

func TestConstructionLogsPhases(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mustNew(t, 6, examplePairs, WithLogger(logger))

	out := buf.String()
	for _, want := range []string{
		"intersections computed",
		"intersections=17",
		"branch points linked",
		"levels decomposed",
		"levels=12",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

// ---------------------------------------------------------------------------
// End to end
// ---------------------------------------------------------------------------

func TestReferenceSubdivision(t *testing.T) {
	g := mustNew(t, 6, examplePairs)

	if got := len(g.Intersections()); got != 17 {
		t.Errorf("intersections = %d, want 17", got)
	}
	if got := g.LevelCount(); got != 12 {
		t.Fatalf("levels = %d, want 12", got)
	}

	wantPolys := []int{1, 2, 3, 3, 3, 3, 3, 3, 4, 3, 2, 1}
	for i, l := range g.Levels() {
		if l.Index != i {
			t.Errorf("level %d has index %d", i, l.Index)
		}
		if len(l.Polygons) != wantPolys[i] {
			t.Errorf("level %d has %d polygons, want %d", i, len(l.Polygons), wantPolys[i])
		}
	}

	even, odd := g.AreaOfPolys()
	if math.Abs(even-12.821406785) > tol {
		t.Errorf("even area = %.9f, want 12.821406785", even)
	}
	if math.Abs(odd-12.178593215) > tol {
		t.Errorf("odd area = %.9f, want 12.178593215", odd)
	}
	if !g.SumsUpToSquare(even, odd) {
		t.Errorf("%f + %f should sum to 25", even, odd)
	}
	if g.Truncated() || g.UnclosedTraces() != 0 {
		t.Errorf("truncated = %v, unclosed = %d", g.Truncated(), g.UnclosedTraces())
	}
}

func TestReferenceSubdivisionIsOrderIndependent(t *testing.T) {
	reversed := make([]Pair, len(examplePairs))
	for i, p := range examplePairs {
		reversed[len(examplePairs)-1-i] = p
	}

	a := mustNew(t, 6, examplePairs)
	b := mustNew(t, 6, reversed)

	ae, ao := a.AreaOfPolys()
	be, bo := b.AreaOfPolys()
	if math.Abs(ae-be) > tol || math.Abs(ao-bo) > tol {
		t.Errorf("areas differ: (%f, %f) vs (%f, %f)", ae, ao, be, bo)
	}
	if a.LevelCount() != b.LevelCount() {
		t.Errorf("level counts differ: %d vs %d", a.LevelCount(), b.LevelCount())
	}
	if len(a.Intersections()) != len(b.Intersections()) {
		t.Errorf("intersection counts differ: %d vs %d", len(a.Intersections()), len(b.Intersections()))
	}
}

func TestSmallSubdivisions(t *testing.T) {
	tests := []struct {
		name          string
		n             int
		pairs         []Pair
		even, odd     float64
		levels        int
		intersections int
		repairs       int
	}{
		{"bare frame n=2", 2, nil, 1, 0, 1, 0, 0},
		{"bare frame n=4", 4, nil, 9, 0, 1, 0, 8},
		{"single cross n=2", 2, []Pair{{0, 1}, {1, 0}}, 0.5, 0.5, 3, 1, 0},
		{"single cross n=3", 3, []Pair{{0, 2}, {2, 0}}, 2, 2, 3, 1, 4},
		{"single connector", 5, []Pair{{1, 3}}, 8, 8, 2, 0, 8},
		{"horizontal connector", 7, []Pair{{3, 3}}, 18, 18, 2, 0, 16},
		{"diagonal cross", 5, []Pair{{0, 4}, {4, 0}}, 8, 8, 3, 1, 12},
		{"concurrent lines", 4, []Pair{{0, 3}, {3, 0}, {1, 2}, {2, 1}}, 6, 3, 5, 1, 0},
		{"corner cuts", 5, []Pair{{0, 1}, {1, 0}, {4, 3}, {3, 4}}, 12, 4, 5, 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustNew(t, tt.n, tt.pairs)

			even, odd := g.AreaOfPolys()
			if math.Abs(even-tt.even) > tol || math.Abs(odd-tt.odd) > tol {
				t.Errorf("areas = (%f, %f), want (%f, %f)", even, odd, tt.even, tt.odd)
			}
			if g.LevelCount() != tt.levels {
				t.Errorf("levels = %d, want %d", g.LevelCount(), tt.levels)
			}
			if got := len(g.Intersections()); got != tt.intersections {
				t.Errorf("intersections = %d, want %d", got, tt.intersections)
			}
			if g.Repairs() != tt.repairs {
				t.Errorf("repairs = %d, want %d", g.Repairs(), tt.repairs)
			}
			if !g.SumsUpToSquare(even, odd) {
				t.Errorf("areas do not sum to %f", g.SquareArea())
			}
		})
	}
}
