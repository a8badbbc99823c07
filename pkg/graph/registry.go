package graph

import (
	"fmt"

	"github.com/chazu/strata/pkg/geom"
)

// PointRegistry maps coordinates to the single Point that represents them.
// Every lookup by value resolves to the same pointer, so branch lists can be
// built from independently computed coordinates.
type PointRegistry struct {
	points map[geom.Key]*geom.Point
	order  []*geom.Point
}

// NewPointRegistry creates an empty registry.
func NewPointRegistry() *PointRegistry {
	return &PointRegistry{
		points: make(map[geom.Key]*geom.Point),
	}
}

// Intern returns the registered point at (x, y), creating it with the given
// kind if it does not exist yet. created reports whether a new point was
// added.
func (r *PointRegistry) Intern(x, y float64, kind geom.PointKind) (p *geom.Point, created bool) {
	k := geom.Key{X: x, Y: y}
	if p, ok := r.points[k]; ok {
		return p, false
	}
	p = geom.NewPoint(x, y, kind)
	r.points[k] = p
	r.order = append(r.order, p)
	return p, true
}

// Get returns the point registered at k, or nil.
func (r *PointRegistry) Get(k geom.Key) *geom.Point {
	return r.points[k]
}

// Resolve returns the registered point with the same coordinates as p.
func (r *PointRegistry) Resolve(p *geom.Point) (*geom.Point, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil point", ErrPointLookup)
	}
	q, ok := r.points[p.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: no point at %s", ErrPointLookup, p.Key())
	}
	return q, nil
}

// Len returns the number of registered points.
func (r *PointRegistry) Len() int {
	return len(r.order)
}

// Points returns all registered points in insertion order.
func (r *PointRegistry) Points() []*geom.Point {
	out := make([]*geom.Point, len(r.order))
	copy(out, r.order)
	return out
}
