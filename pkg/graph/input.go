package graph

import "fmt"

// Pair names a connector from left-column vertex Left to right-column
// vertex Right.
type Pair struct {
	Left  int `json:"left" yaml:"left"`
	Right int `json:"right" yaml:"right"`
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.Left, p.Right)
}

// ParsePairs converts loosely typed edge input, such as decoded YAML or
// script values, into pairs. Every element must hold exactly two integers.
func ParsePairs(raw [][]int) ([]Pair, error) {
	pairs := make([]Pair, 0, len(raw))
	for i, item := range raw {
		if len(item) != 2 {
			return nil, fmt.Errorf("graph: %w: edge %d has %d elements, want 2", ErrInvalidEdgeFormat, i, len(item))
		}
		pairs = append(pairs, Pair{Left: item[0], Right: item[1]})
	}
	return pairs, nil
}

// validateInput checks n and every pair index before anything is built.
func validateInput(n int, pairs []Pair) error {
	if n < 2 {
		return fmt.Errorf("graph: %w: n is %d, must be at least 2", ErrInvalidVertexCount, n)
	}
	for i, p := range pairs {
		if p.Left < 0 || p.Left > n-1 || p.Right < 0 || p.Right > n-1 {
			return fmt.Errorf("graph: %w: edge %d %s, indexes must be in [0, %d]", ErrInvalidVertexIndex, i, p, n-1)
		}
	}
	return nil
}

// normalizePairs drops the implicit frame connectors and duplicates, keeping
// first-occurrence order.
func normalizePairs(n int, pairs []Pair) []Pair {
	bottom := Pair{0, 0}
	top := Pair{n - 1, n - 1}

	seen := make(map[Pair]bool, len(pairs))
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if p == bottom || p == top || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
