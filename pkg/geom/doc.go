// Package geom defines the planar primitives used by strata: points,
// bound edges and polygons. Points and edges compare by coordinate value,
// never by identity, so that independently constructed values describing
// the same location are interchangeable in lookups.
package geom
