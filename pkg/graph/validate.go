package graph

import (
	"fmt"

	"github.com/chazu/strata/pkg/geom"
)

// ValidationSeverity indicates whether a validation finding signals a broken
// graph or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // broken invariant
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Point    *geom.Point        // which point has the problem (nil if graph-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Point == nil {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] point %s: %s", e.Severity, e.Point, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Point   *geom.Point
	Message string
}

func (w ValidationWarning) String() string {
	if w.Point == nil {
		return w.Message
	}
	return fmt.Sprintf("point %s: %s", w.Point, w.Message)
}

// ValidationResult bundles errors and warnings from all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether no errors were found.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs the structural checks on a built graph. An empty slice means
// every invariant holds. It never mutates the graph.
func Validate(g *Graph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateIntersectionKeys(g)...)
	errs = append(errs, validateInteriorBounds(g)...)
	errs = append(errs, validateBranchRegistry(g)...)
	errs = append(errs, validateColumnDegree(g)...)
	return errs
}

// ValidateAll runs the structural and geometric tiers and separates errors
// from warnings.
func ValidateAll(g *Graph) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(g) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Point:   e.Point,
				Message: e.Message,
			})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}

	geomErrs, geomWarnings := ValidateGeometry(g)
	result.Errors = append(result.Errors, geomErrs...)
	result.Warnings = append(result.Warnings, geomWarnings...)
	return result
}

// validateIntersectionKeys checks that no two intersections share rounded
// coordinates.
func validateIntersectionKeys(g *Graph) []ValidationError {
	var errs []ValidationError
	seen := make(map[geom.Key]bool, len(g.intersections))
	for _, p := range g.intersections {
		if seen[p.Key()] {
			errs = append(errs, ValidationError{
				Point:    p,
				Message:  "duplicate intersection coordinates",
				Severity: SeverityError,
			})
			continue
		}
		seen[p.Key()] = true
	}
	return errs
}

// validateInteriorBounds checks eps < x < n-1-eps for every intersection.
func validateInteriorBounds(g *Graph) []ValidationError {
	var errs []ValidationError
	lo, hi := g.tol.Epsilon, g.Span()-g.tol.Epsilon
	for _, p := range g.intersections {
		if !(p.X > lo && p.X < hi) {
			errs = append(errs, ValidationError{
				Point:    p,
				Message:  fmt.Sprintf("x=%.4f outside interior (%g, %g)", p.X, lo, hi),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateBranchRegistry checks that every branch point is the registered
// point for its coordinates.
func validateBranchRegistry(g *Graph) []ValidationError {
	var errs []ValidationError
	for _, p := range g.registry.Points() {
		for _, b := range p.Branches {
			if g.registry.Get(b.Key()) != b {
				errs = append(errs, ValidationError{
					Point:    p,
					Message:  fmt.Sprintf("branch %s is not a registered point", b),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateColumnDegree checks that every non-corner column vertex some point
// branches to has at least three branches of its own. Pass-through vertices
// that nothing references after repair are reported as warnings only.
func validateColumnDegree(g *Graph) []ValidationError {
	referenced := make(map[geom.Key]bool)
	for _, p := range g.registry.Points() {
		for _, b := range p.Branches {
			referenced[b.Key()] = true
		}
	}

	var errs []ValidationError
	for _, v := range g.Vertices() {
		if g.IsCorner(v, CornerAny) || v.Degree() >= 3 {
			continue
		}
		if referenced[v.Key()] {
			errs = append(errs, ValidationError{
				Point:    v,
				Message:  fmt.Sprintf("referenced column vertex has %d branches, want at least 3", v.Degree()),
				Severity: SeverityError,
			})
		} else {
			errs = append(errs, ValidationError{
				Point:    v,
				Message:  "pass-through column vertex",
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}
