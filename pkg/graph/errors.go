package graph

import "errors"

var (
	// ErrInvalidVertexCount is returned when n is smaller than 2.
	ErrInvalidVertexCount = errors.New("invalid vertex count")

	// ErrInvalidEdgeFormat is returned when an edge is not a pair of integers.
	ErrInvalidEdgeFormat = errors.New("invalid edge format")

	// ErrInvalidVertexIndex is returned when an edge index lies outside [0, n-1].
	ErrInvalidVertexIndex = errors.New("invalid vertex index")

	// ErrPointLookup signals that a coordinate expected in the point registry
	// was missing. It indicates a broken internal invariant.
	ErrPointLookup = errors.New("point lookup failure")

	// ErrRepairExhausted is returned when the column walk of the adjacency
	// repair pass runs off the end of a column without finding a usable
	// vertex.
	ErrRepairExhausted = errors.New("adjacency repair exhausted")

	// ErrNoSuchLevel is returned by AreaOfLevel for a level index the graph
	// does not have.
	ErrNoSuchLevel = errors.New("no such level")

	// ErrInvalidTolerance is returned for an area tolerance outside [0, 1].
	ErrInvalidTolerance = errors.New("invalid tolerance")
)
