// Package graph builds the planar subdivision induced by straight connectors
// between two parallel columns of points and peels its faces into levels.
//
// A Graph is built once by New from the column size n and a list of
// (left, right) index pairs. Construction runs four phases in order:
// connector creation, pairwise intersection, adjacency linking (with a
// repair pass for pass-through column vertices) and level decomposition.
// After New returns, the graph is read-only.
package graph
