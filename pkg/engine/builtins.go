package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/chazu/strata/pkg/graph"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites script source before zygomys sees it:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords need
//     no global symbols and cannot clash with user variables.
//  2. kebab-case identifiers become snake_case (area-of-level becomes
//     area_of_level), since zygomys reads a bare hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals are copied through untouched.
func preprocessSource(source string) string {
	out := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch c := b[i]; {
		case c == '"':
			j := i + 1
			for j < len(b) && b[j] != '"' {
				if b[j] == '\\' && j+1 < len(b) {
					j++
				}
				j++
			}
			if j < len(b) {
				j++
			}
			out = append(out, b[i:j]...)
			i = j

		case c == '`':
			j := i + 1
			for j < len(b) && b[j] != '`' {
				j++
			}
			if j < len(b) {
				j++
			}
			out = append(out, b[i:j]...)
			i = j

		case c == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}

		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2

		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
			i++

		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpGraph wraps a built subdivision so queries can consume it.
type sexpGraph struct {
	g *graph.Graph
}

func (s *sexpGraph) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(subdivision n=%d connectors=%d intersections=%d levels=%d)",
		s.g.N(), len(s.g.Edges()), len(s.g.Intersections()), s.g.LevelCount())
}
func (s *sexpGraph) Type() *zygo.RegisteredType { return nil }

// sexpTolerances wraps a tolerance override returned by `tolerances`.
type sexpTolerances struct {
	tol graph.Tolerances
}

func (s *sexpTolerances) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(tolerances :epsilon %g :precision %d :angle-precision %d :area %g :max-trace-steps %d :max-levels %d)",
		s.tol.Epsilon, s.tol.Precision, s.tol.AnglePrecision,
		s.tol.AreaTolerance, s.tol.MaxTraceSteps, s.tol.MaxLevels)
}
func (s *sexpTolerances) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds a mixed positional and keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates keyword arguments from positional ones.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a SexpInt or SexpFloat.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toGraph extracts a subdivision from a sexpGraph.
func toGraph(s zygo.Sexp) (*graph.Graph, error) {
	if v, ok := s.(*sexpGraph); ok {
		return v.g, nil
	}
	return nil, fmt.Errorf("expected subdivision, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a Lisp list or array to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toPairs converts a sequence of two-integer sequences into connector
// pairs. Any other shape is an invalid edge format.
func toPairs(s zygo.Sexp) ([]graph.Pair, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", graph.ErrInvalidEdgeFormat, err)
	}
	raw := make([][]int, 0, len(items))
	for i, item := range items {
		elems, err := sexpListToSlice(item)
		if err != nil {
			return nil, fmt.Errorf("%w: edge %d: %v", graph.ErrInvalidEdgeFormat, i, err)
		}
		pair := make([]int, 0, len(elems))
		for _, el := range elems {
			v, err := toInt(el)
			if err != nil {
				return nil, fmt.Errorf("%w: edge %d: %v", graph.ErrInvalidEdgeFormat, i, err)
			}
			pair = append(pair, v)
		}
		raw = append(raw, pair)
	}
	return graph.ParsePairs(raw)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// session collects the subdivisions declared by one evaluation.
type session struct {
	graphs   []*graph.Graph
	defaults graph.Tolerances
	logger   *slog.Logger
}

// graphQuery is a builtin that reads a value from a subdivision given as
// its first argument.
type graphQuery func(g *graph.Graph, args []zygo.Sexp) (zygo.Sexp, error)

func addQuery(env *zygo.Zlisp, name, display string, q graphQuery) {
	env.AddFunction(name, func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("%s requires a subdivision argument", display)
		}
		g, err := toGraph(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", display, err)
		}
		v, err := q(g, args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", display, err)
		}
		return v, nil
	})
}

// registerBuiltins installs the Strata DSL into a zygomys environment.
// Subdivisions built during evaluation are recorded on s.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens and kebab-case names are recognised.
func registerBuiltins(env *zygo.Zlisp, s *session) {

	// -----------------------------------------------------------------------
	// (tolerances :epsilon 1e-5 :precision 4 :angle-precision 2 :area 0.001
	//             :max-trace-steps 10 :max-levels 200)
	// -----------------------------------------------------------------------
	env.AddFunction("tolerances", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		tol := s.defaults

		floats := map[string]*float64{
			"epsilon": &tol.Epsilon,
			"area":    &tol.AreaTolerance,
		}
		for kw, dst := range floats {
			if v, ok := pa.kw[kw]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("tolerances: %s: %w", kw, err)
				}
				if f <= 0 {
					return zygo.SexpNull, fmt.Errorf("tolerances: %s must be positive, got %g", kw, f)
				}
				*dst = f
			}
		}

		ints := map[string]*int{
			"precision":       &tol.Precision,
			"angle-precision": &tol.AnglePrecision,
			"max-trace-steps": &tol.MaxTraceSteps,
			"max-levels":      &tol.MaxLevels,
		}
		for kw, dst := range ints {
			if v, ok := pa.kw[kw]; ok {
				n, err := toInt(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("tolerances: %s: %w", kw, err)
				}
				if n < 1 {
					return zygo.SexpNull, fmt.Errorf("tolerances: %s must be at least 1, got %d", kw, n)
				}
				*dst = n
			}
		}

		return &sexpTolerances{tol: tol}, nil
	})

	// -----------------------------------------------------------------------
	// (subdivision 6 [[2 2] [2 1] [1 3]] :tolerances (tolerances ...))
	// -----------------------------------------------------------------------
	env.AddFunction("subdivision", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("subdivision requires a vertex count")
		}

		n, err := toInt(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("subdivision: n: %w: %v", graph.ErrInvalidVertexCount, err)
		}

		var pairs []graph.Pair
		if len(pa.positional) > 1 {
			pairs, err = toPairs(pa.positional[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("subdivision: edges: %w", err)
			}
		}

		tol := s.defaults
		if v, ok := pa.kw["tolerances"]; ok {
			t, ok := v.(*sexpTolerances)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("subdivision: tolerances: expected (tolerances ...), got %T", v)
			}
			tol = t.tol
		}

		g, err := graph.New(n, pairs, graph.WithTolerances(tol), graph.WithLogger(s.logger))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("subdivision: %w", err)
		}
		s.graphs = append(s.graphs, g)
		return &sexpGraph{g: g}, nil
	})

	// -----------------------------------------------------------------------
	// (area-of-level g 0)
	// -----------------------------------------------------------------------
	addQuery(env, "area_of_level", "area-of-level", func(g *graph.Graph, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("expected a level index")
		}
		k, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		a, err := g.AreaOfLevel(k)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpFloat{Val: a}, nil
	})

	// -----------------------------------------------------------------------
	// (even-area g) (odd-area g) (square-area g)
	// -----------------------------------------------------------------------
	addQuery(env, "even_area", "even-area", func(g *graph.Graph, _ []zygo.Sexp) (zygo.Sexp, error) {
		even, _ := g.AreaOfPolys()
		return &zygo.SexpFloat{Val: even}, nil
	})
	addQuery(env, "odd_area", "odd-area", func(g *graph.Graph, _ []zygo.Sexp) (zygo.Sexp, error) {
		_, odd := g.AreaOfPolys()
		return &zygo.SexpFloat{Val: odd}, nil
	})
	addQuery(env, "square_area", "square-area", func(g *graph.Graph, _ []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpFloat{Val: g.SquareArea()}, nil
	})

	// -----------------------------------------------------------------------
	// (level-count g) (intersection-count g) (polygon-count g [level])
	// -----------------------------------------------------------------------
	addQuery(env, "level_count", "level-count", func(g *graph.Graph, _ []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(g.LevelCount())}, nil
	})
	addQuery(env, "intersection_count", "intersection-count", func(g *graph.Graph, _ []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(len(g.Intersections()))}, nil
	})
	addQuery(env, "polygon_count", "polygon-count", func(g *graph.Graph, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return &zygo.SexpInt{Val: int64(len(g.Polygons(graph.ParityAll)))}, nil
		}
		k, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		l, ok := g.Level(k)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("%w: level %d", graph.ErrNoSuchLevel, k)
		}
		return &zygo.SexpInt{Val: int64(len(l.Polygons))}, nil
	})

	// -----------------------------------------------------------------------
	// (sums-to-square g) or (sums-to-square g 0.01)
	// -----------------------------------------------------------------------
	addQuery(env, "sums_to_square", "sums-to-square", func(g *graph.Graph, args []zygo.Sexp) (zygo.Sexp, error) {
		even, odd := g.AreaOfPolys()
		if len(args) == 0 {
			return &zygo.SexpBool{Val: g.SumsUpToSquare(even, odd)}, nil
		}
		tol, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		ok, err := g.SumsUpToSquareWithin(even, odd, tol)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpBool{Val: ok}, nil
	})
}
