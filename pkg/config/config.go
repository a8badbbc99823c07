// Package config reads subdivision input documents written in YAML.
//
// A document names the vertex count, the connector edges and optional
// tolerance overrides:
//
//	vertices: 6
//	edges: [[2, 2], [2, 1], [1, 3]]
//	tolerances:
//	  area: 0.01
//	  max_levels: 50
//	draw:
//	  hide: [vertices]
//
// Tolerance overrides and drawing options are checked here. Vertex and edge
// problems are left to the graph package so that callers see the same error
// kinds whichever front end built the subdivision.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/chazu/strata/pkg/graph"
	"github.com/chazu/strata/pkg/outline"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned for documents that parse but fail
// validation.
var ErrInvalidDocument = errors.New("invalid document")

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report fields by their YAML names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// File is a subdivision input document.
type File struct {
	Vertices   int         `yaml:"vertices"`
	Edges      [][]int     `yaml:"edges"`
	Tolerances *Tolerances `yaml:"tolerances"`
	Draw       *Draw       `yaml:"draw"`
}

// Tolerances holds optional overrides of graph.Tolerances. Unset fields keep
// their defaults.
type Tolerances struct {
	Epsilon        *float64 `yaml:"epsilon" validate:"omitempty,gt=0,lt=0.5"`
	Precision      *int     `yaml:"precision" validate:"omitempty,min=1,max=12"`
	AnglePrecision *int     `yaml:"angle_precision" validate:"omitempty,min=1,max=12"`
	Area           *float64 `yaml:"area" validate:"omitempty,gt=0,lte=1"`
	MaxTraceSteps  *int     `yaml:"max_trace_steps" validate:"omitempty,min=1"`
	MaxLevels      *int     `yaml:"max_levels" validate:"omitempty,min=1"`
}

// Draw selects the parts of the subdivision that are left out of exported
// drawings.
type Draw struct {
	Hide []string `yaml:"hide" validate:"dive,oneof=polygons edges frame intersections vertices"`
}

// UnmarshalYAML decodes a document. Vertices and edge indices must be
// YAML integers: a float such as 1.5 is rejected rather than truncated.
func (f *File) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Vertices   yaml.Node   `yaml:"vertices"`
		Edges      []yaml.Node `yaml:"edges"`
		Tolerances *Tolerances `yaml:"tolerances"`
		Draw       *Draw       `yaml:"draw"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Vertices.Kind != 0 {
		n, err := strictInt(&raw.Vertices)
		if err != nil {
			return fmt.Errorf("%w: vertices: %v", graph.ErrInvalidVertexCount, err)
		}
		f.Vertices = n
	}

	f.Edges = make([][]int, 0, len(raw.Edges))
	for i := range raw.Edges {
		e := &raw.Edges[i]
		if e.Kind != yaml.SequenceNode {
			return fmt.Errorf("%w: edge %d (line %d) is not a list", graph.ErrInvalidEdgeFormat, i, e.Line)
		}
		pair := make([]int, 0, len(e.Content))
		for _, el := range e.Content {
			v, err := strictInt(el)
			if err != nil {
				return fmt.Errorf("%w: edge %d: %v", graph.ErrInvalidEdgeFormat, i, err)
			}
			pair = append(pair, v)
		}
		f.Edges = append(f.Edges, pair)
	}

	f.Tolerances = raw.Tolerances
	f.Draw = raw.Draw
	return nil
}

// strictInt decodes a scalar node tagged !!int.
func strictInt(n *yaml.Node) (int, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!int" {
		return 0, fmt.Errorf("line %d: %q is not an integer", n.Line, n.Value)
	}
	var v int
	if err := n.Decode(&v); err != nil {
		return 0, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return v, nil
}

// Load reads and validates the document at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing input file: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, formatValidationError(err)
	}
	return &f, nil
}

// Apply returns base with every set override applied.
func (t *Tolerances) Apply(base graph.Tolerances) graph.Tolerances {
	if t == nil {
		return base
	}
	if t.Epsilon != nil {
		base.Epsilon = *t.Epsilon
	}
	if t.Precision != nil {
		base.Precision = *t.Precision
	}
	if t.AnglePrecision != nil {
		base.AnglePrecision = *t.AnglePrecision
	}
	if t.Area != nil {
		base.AreaTolerance = *t.Area
	}
	if t.MaxTraceSteps != nil {
		base.MaxTraceSteps = *t.MaxTraceSteps
	}
	if t.MaxLevels != nil {
		base.MaxLevels = *t.MaxLevels
	}
	return base
}

// GraphTolerances returns the default tolerances with the document's
// overrides applied.
func (f *File) GraphTolerances() graph.Tolerances {
	return f.Tolerances.Apply(graph.DefaultTolerances())
}

// Build constructs the subdivision the document describes. Extra options
// are applied after the document's tolerances.
func (f *File) Build(opts ...graph.Option) (*graph.Graph, error) {
	pairs, err := graph.ParsePairs(f.Edges)
	if err != nil {
		return nil, err
	}
	all := append([]graph.Option{graph.WithTolerances(f.GraphTolerances())}, opts...)
	return graph.New(f.Vertices, pairs, all...)
}

// OutlineOptions returns the drawing options with every hidden part
// switched off.
func (f *File) OutlineOptions() outline.Options {
	opts := outline.DefaultOptions()
	if f.Draw == nil {
		return opts
	}
	for _, h := range f.Draw.Hide {
		switch h {
		case "polygons":
			opts.Polygons = false
		case "edges":
			opts.Edges = false
		case "frame":
			opts.Frame = false
		case "intersections":
			opts.Intersections = false
		case "vertices":
			opts.Vertices = false
		}
	}
	return opts
}

// formatValidationError reports the first failing field.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, e := range verrs {
		field := e.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		switch e.Tag() {
		case "gt":
			return fmt.Errorf("%w: %s must be greater than %s", ErrInvalidDocument, field, e.Param())
		case "lt":
			return fmt.Errorf("%w: %s must be less than %s", ErrInvalidDocument, field, e.Param())
		case "lte", "max":
			return fmt.Errorf("%w: %s must not exceed %s", ErrInvalidDocument, field, e.Param())
		case "min":
			return fmt.Errorf("%w: %s must be at least %s", ErrInvalidDocument, field, e.Param())
		case "oneof":
			return fmt.Errorf("%w: %s must be one of %s", ErrInvalidDocument, field, e.Param())
		default:
			return fmt.Errorf("%w: %s failed %s", ErrInvalidDocument, field, e.Tag())
		}
	}
	return err
}
