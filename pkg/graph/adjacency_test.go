package graph

import (
	"errors"
	"testing"

	"github.com/chazu/strata/pkg/geom"
)

func sameKeys(got []*geom.Point, want []geom.Key) bool {
	if len(got) != len(want) {
		return false
	}
	for i, p := range got {
		if p.Key() != want[i] {
			return false
		}
	}
	return true
}

func TestCrossBranches(t *testing.T) {
	g := mustNew(t, 3, []Pair{{0, 2}, {2, 0}})

	p, err := g.Point(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []geom.Key{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}, {X: 2, Y: 0}}
	if !sameKeys(p.Branches, want) {
		t.Errorf("intersection branches = %v, want %v", keysOf(p.Branches), want)
	}

	// The pass-through (0,1) is replaced by the top corner, moved to the end.
	bl := g.Column(SideLeft)[0]
	want = []geom.Key{{X: 2, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 2}}
	if !sameKeys(bl.Branches, want) {
		t.Errorf("(0,0) branches = %v, want %v", keysOf(bl.Branches), want)
	}

	br := g.Column(SideRight)[0]
	want = []geom.Key{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	if !sameKeys(br.Branches, want) {
		t.Errorf("(2,0) branches = %v, want %v", keysOf(br.Branches), want)
	}
}

func TestConnectorWithoutIntersectionsBranchesToFarEnd(t *testing.T) {
	g := mustNew(t, 5, []Pair{{1, 3}})

	l := g.Column(SideLeft)[1]
	r := g.Column(SideRight)[3]
	if !l.HasBranch(r) {
		t.Errorf("(0,1) branches = %v, want to include %v", l.Branches, r)
	}
	if !r.HasBranch(l) {
		t.Errorf("(4,3) branches = %v, want to include %v", r.Branches, l)
	}
	if l.Degree() != 3 || r.Degree() != 3 {
		t.Errorf("degrees = %d, %d, want 3", l.Degree(), r.Degree())
	}
}

func TestNearestIntersectionPerSide(t *testing.T) {
	g := mustNew(t, 6, examplePairs)

	for _, e := range g.Edges() {
		if len(e.Intersections) == 0 {
			continue
		}
		first := e.Intersections[0]
		last := e.Intersections[len(e.Intersections)-1]
		if !e.From.HasBranch(first) {
			t.Errorf("%v should branch to nearest crossing %v of %s", e.From, first, e)
		}
		if !e.To.HasBranch(last) {
			t.Errorf("%v should branch to nearest crossing %v of %s", e.To, last, e)
		}
		if e.From.HasBranch(e.To) {
			t.Errorf("%v should not branch straight across %s", e.From, e)
		}
	}
}

func TestIntersectionBranchesComeInPairs(t *testing.T) {
	g := mustNew(t, 6, examplePairs)
	for _, p := range g.Intersections() {
		through := 0
		for _, e := range g.Edges() {
			if e.Contains(p) {
				through++
			}
		}
		if p.Degree() != 2*through {
			t.Errorf("%v has %d branches, lies on %d connectors", p, p.Degree(), through)
		}
	}
}

func TestRepairSkipsPassThroughVertices(t *testing.T) {
	g := mustNew(t, 4, nil)
	left := g.Column(SideLeft)

	if !left[0].HasBranch(left[3]) || left[0].HasBranch(left[1]) {
		t.Errorf("(0,0) branches = %v, want top corner instead of (0,1)", left[0].Branches)
	}
	if !left[3].HasBranch(left[0]) || left[3].HasBranch(left[2]) {
		t.Errorf("(0,3) branches = %v, want bottom corner instead of (0,2)", left[3].Branches)
	}
	if g.Repairs() != 8 {
		t.Errorf("repairs = %d, want 8", g.Repairs())
	}
}

func TestRepairDirectionFailures(t *testing.T) {
	g := mustNew(t, 3, nil)
	col := g.Column(SideLeft)

	// A vertex whose vertical neighbour is missing from its branch list.
	orphan := geom.NewPoint(0, 1, geom.PointVertex)
	if err := g.repairDirection(orphan, col, 1); !errors.Is(err, ErrPointLookup) {
		t.Errorf("err = %v, want ErrPointLookup", err)
	}

	// A column with no usable vertex beyond the neighbour.
	v0 := geom.NewPoint(0, 0, geom.PointVertex)
	v1 := geom.NewPoint(0, 1, geom.PointVertex)
	v2 := geom.NewPoint(0, 2, geom.PointVertex)
	v3 := geom.NewPoint(0, 3, geom.PointVertex)
	v0.Branches = []*geom.Point{v1}
	v1.Branches = []*geom.Point{v0, v2}
	v2.Branches = []*geom.Point{v1, v3}
	big := mustNew(t, 5, nil)
	if err := big.repairDirection(v0, []*geom.Point{v0, v1, v2, v3}, 1); !errors.Is(err, ErrRepairExhausted) {
		t.Errorf("err = %v, want ErrRepairExhausted", err)
	}
}
