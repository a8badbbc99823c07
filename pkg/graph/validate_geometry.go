package graph

import "fmt"

// ---------------------------------------------------------------------------
// Geometric validation (errors + warnings)
// ---------------------------------------------------------------------------

// ValidateGeometry runs the geometric checks on a built graph.
// Returns errors and advisory warnings separately.
func ValidateGeometry(g *Graph) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, validateAreaConservation(g)...)

	warnings = append(warnings, validateDegeneratePolygons(g)...)
	warnings = append(warnings, validateTermination(g)...)

	return errs, warnings
}

// validateAreaConservation checks that even and odd level areas add up to
// the square.
func validateAreaConservation(g *Graph) []ValidationError {
	even, odd := g.AreaOfPolys()
	if g.SumsUpToSquare(even, odd) {
		return nil
	}
	return []ValidationError{{
		Message: fmt.Sprintf("level areas %.4f + %.4f = %.4f, square is %.4f (tolerance %g)",
			even, odd, even+odd, g.SquareArea(), g.tol.AreaTolerance),
		Severity: SeverityError,
	}}
}

// validateDegeneratePolygons flags polygons with fewer than three vertices,
// which arise when a trace finds no admissible branch.
func validateDegeneratePolygons(g *Graph) []ValidationWarning {
	var warnings []ValidationWarning
	for _, l := range g.levels {
		for _, p := range l.Polygons {
			if !p.Degenerate() {
				continue
			}
			warnings = append(warnings, ValidationWarning{
				Point:   p.At(0),
				Message: fmt.Sprintf("level %d polygon %s has %d vertices", l.Index, p, p.Len()),
			})
		}
	}
	return warnings
}

// validateTermination reports the silent truncations of face tracing and
// level decomposition.
func validateTermination(g *Graph) []ValidationWarning {
	var warnings []ValidationWarning
	if g.truncated {
		warnings = append(warnings, ValidationWarning{
			Message: fmt.Sprintf("level decomposition stopped at the cap of %d levels", g.tol.MaxLevels),
		})
	}
	if g.unclosed > 0 {
		warnings = append(warnings, ValidationWarning{
			Message: fmt.Sprintf("%d face traces did not close within %d steps", g.unclosed, g.tol.MaxTraceSteps),
		})
	}
	return warnings
}
