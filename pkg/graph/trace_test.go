package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/strata/pkg/geom"
)

func TestTraceFaceFromBottomFrame(t *testing.T) {
	g := mustNew(t, 3, []Pair{{0, 2}, {2, 0}})

	seed := geom.NewEdge(
		geom.NewPoint(0, 0, geom.PointUndefined),
		geom.NewPoint(2, 0, geom.PointUndefined),
	)
	poly, err := g.TraceFace(seed)
	if err != nil {
		t.Fatalf("TraceFace: %v", err)
	}
	if poly == nil {
		t.Fatal("expected a polygon")
	}
	want := []geom.Key{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	if !sameKeys(poly.Vertices, want) {
		t.Errorf("vertices = %v, want %v", keysOf(poly.Vertices), want)
	}
	if poly.Area() != 1 {
		t.Errorf("area = %f, want 1", poly.Area())
	}
}

func TestTraceFaceStartsAtSmallerX(t *testing.T) {
	g := mustNew(t, 3, []Pair{{0, 2}, {2, 0}})
	left := g.Column(SideLeft)
	right := g.Column(SideRight)

	a, err := g.TraceFace(geom.NewEdge(left[0], right[0]))
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.TraceFace(geom.NewEdge(right[0], left[0]))
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) || !a.At(0).Equal(b.At(0)) {
		t.Errorf("seed direction changed the trace: %v vs %v", a, b)
	}
}

func TestTraceFaceVerticalSeed(t *testing.T) {
	g := mustNew(t, 4, nil)
	left := g.Column(SideLeft)

	poly, err := g.TraceFace(geom.NewEdge(left[0], left[3]))
	if err != nil {
		t.Fatalf("TraceFace: %v", err)
	}
	if poly != nil {
		t.Errorf("vertical seed traced %v, want nil", poly)
	}
}

func TestTraceFaceUnknownPoint(t *testing.T) {
	g := mustNew(t, 4, nil)
	seed := geom.NewEdge(
		geom.NewPoint(0, 0, geom.PointVertex),
		geom.NewPoint(1.5, 0.25, geom.PointUndefined),
	)
	if _, err := g.TraceFace(seed); !errors.Is(err, ErrPointLookup) {
		t.Errorf("err = %v, want ErrPointLookup", err)
	}
}

func TestTraceFaceDoesNotMutateGraph(t *testing.T) {
	g := mustNew(t, 4, nil, WithTolerances(Tolerances{MaxTraceSteps: 1}))
	before := g.UnclosedTraces()

	left := g.Column(SideLeft)
	right := g.Column(SideRight)
	poly, err := g.TraceFace(geom.NewEdge(left[0], right[0]))
	if err != nil {
		t.Fatal(err)
	}
	if poly != nil {
		t.Errorf("trace closed in one step: %v", poly)
	}
	if g.UnclosedTraces() != before {
		t.Errorf("UnclosedTraces changed from %d to %d", before, g.UnclosedTraces())
	}
}

func TestNextPointTurnsSharpest(t *testing.T) {
	g := mustNew(t, 3, []Pair{{0, 2}, {2, 0}})
	left := g.Column(SideLeft)
	right := g.Column(SideRight)
	mid, err := g.Point(1, 1)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		at, prev *geom.Point
		want     geom.Key
	}{
		{"leave bottom-left corner", left[0], right[0], geom.Key{X: 1, Y: 1}},
		{"turn at the crossing", mid, left[0], geom.Key{X: 2, Y: 0}},
		{"close at bottom-right corner", right[0], mid, geom.Key{X: 0, Y: 0}},
		{"climb the left column", left[0], mid, geom.Key{X: 0, Y: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.nextPoint(tt.at, tt.prev); got.Key() != tt.want {
				t.Errorf("nextPoint(%v, %v) = %v, want %v", tt.at, tt.prev, got, tt.want)
			}
		})
	}
}

func TestNextPointWithoutCandidatesStays(t *testing.T) {
	g := mustNew(t, 2, nil)
	at := geom.NewPoint(0, 0, geom.PointVertex)
	prev := geom.NewPoint(1, 0, geom.PointVertex)
	at.Branches = []*geom.Point{prev}

	if got := g.nextPoint(at, prev); got != at {
		t.Errorf("nextPoint = %v, want %v itself", got, at)
	}
}

func TestReferenceLevelZeroPolygon(t *testing.T) {
	g := mustNew(t, 6, examplePairs)
	l, ok := g.Level(0)
	if !ok || len(l.Polygons) != 1 {
		t.Fatalf("level 0 = %+v", l)
	}
	poly := l.Polygons[0]
	want := []geom.Key{{X: 0, Y: 0}, {X: 1.25, Y: 0.75}, {X: 5, Y: 0}}
	if !sameKeys(poly.Vertices, want) {
		t.Errorf("vertices = %v, want %v", keysOf(poly.Vertices), want)
	}
	if math.Abs(poly.Area()-1.875) > tol {
		t.Errorf("area = %f, want 1.875", poly.Area())
	}
}
