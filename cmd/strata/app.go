package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/strata/pkg/config"
	"github.com/chazu/strata/pkg/engine"
	"github.com/chazu/strata/pkg/graph"
	"github.com/chazu/strata/pkg/outline"
	"github.com/chazu/strata/pkg/plot"
	"github.com/chazu/strata/pkg/plot/sdfx"
	"github.com/chazu/strata/pkg/plot/svg"
)

// App is the service layer behind the CLI commands. It turns input files
// into subdivisions and subdivisions into reports and drawings.
type App struct {
	engine   *engine.Engine
	logger   *slog.Logger
	backends []plot.Backend
}

// Input is a loaded input file.
type Input struct {
	Path   string
	Graphs []*graph.Graph
	Value  string          // value of the last script expression
	Draw   outline.Options // drawing options of YAML documents
}

// Summary is the JSON-serializable report of one subdivision.
type Summary struct {
	Vertices       int     `json:"vertices"`
	Edges          int     `json:"edges"`
	Intersections  int     `json:"intersections"`
	Levels         int     `json:"levels"`
	Polygons       int     `json:"polygons"`
	EvenArea       float64 `json:"evenArea"`
	OddArea        float64 `json:"oddArea"`
	SquareArea     float64 `json:"squareArea"`
	Conserved      bool    `json:"conserved"`
	Truncated      bool    `json:"truncated"`
	UnclosedTraces int     `json:"unclosedTraces"`
	Repairs        int     `json:"repairs"`
}

// LevelSummary is the JSON-serializable report of one level.
type LevelSummary struct {
	Index    int     `json:"index"`
	Parity   string  `json:"parity"`
	Polygons int     `json:"polygons"`
	Area     float64 `json:"area"`
}

// ScriptError carries the evaluation errors of a script.
type ScriptError struct {
	Path   string
	Errors []engine.EvalError
}

func (e *ScriptError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ee := range e.Errors {
		msgs[i] = ee.Error()
	}
	return fmt.Sprintf("%s: %s", e.Path, strings.Join(msgs, "; "))
}

// NewApp creates an App that logs to logger and exports through the DXF and
// SVG backends.
func NewApp(logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		engine:   engine.NewEngine(engine.WithLogger(logger)),
		logger:   logger,
		backends: []plot.Backend{sdfx.New(), svg.New()},
	}
}

// Load reads an input file. Lisp scripts (.lisp, .strata) are evaluated and
// yield every subdivision they declare. YAML documents (.yaml, .yml) yield
// exactly one.
func (a *App) Load(path string) (*Input, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lisp", ".strata":
		return a.loadScript(path)
	case ".yaml", ".yml":
		return a.loadDocument(path)
	default:
		return nil, fmt.Errorf("%s: unsupported input type %q", path, filepath.Ext(path))
	}
}

func (a *App) loadScript(path string) (*Input, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}

	res, evalErrs, err := a.engine.Evaluate(string(source))
	if err != nil {
		a.logger.Error("evaluation failed", "path", path, "error", err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		return nil, &ScriptError{Path: path, Errors: evalErrs}
	}

	a.logger.Info("script loaded", "path", path, "subdivisions", len(res.Graphs))
	return &Input{
		Path:   path,
		Graphs: res.Graphs,
		Value:  res.Value,
		Draw:   outline.DefaultOptions(),
	}, nil
}

func (a *App) loadDocument(path string) (*Input, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	g, err := f.Build(graph.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	a.logger.Info("document loaded", "path", path, "vertices", g.N())
	return &Input{
		Path:   path,
		Graphs: []*graph.Graph{g},
		Draw:   f.OutlineOptions(),
	}, nil
}

// Summarize reports the headline figures of g.
func (a *App) Summarize(g *graph.Graph) Summary {
	even, odd := g.AreaOfPolys()
	return Summary{
		Vertices:       g.N(),
		Edges:          len(g.Edges()),
		Intersections:  len(g.Intersections()),
		Levels:         g.LevelCount(),
		Polygons:       len(g.Polygons(graph.ParityAll)),
		EvenArea:       even,
		OddArea:        odd,
		SquareArea:     g.SquareArea(),
		Conserved:      g.SumsUpToSquare(even, odd),
		Truncated:      g.Truncated(),
		UnclosedTraces: g.UnclosedTraces(),
		Repairs:        g.Repairs(),
	}
}

// Levels reports every level of g, outermost first.
func (a *App) Levels(g *graph.Graph) []LevelSummary {
	levels := g.Levels()
	out := make([]LevelSummary, len(levels))
	for i, l := range levels {
		parity := graph.ParityEven
		if l.Index%2 == 1 {
			parity = graph.ParityOdd
		}
		out[i] = LevelSummary{
			Index:    l.Index,
			Parity:   parity.String(),
			Polygons: len(l.Polygons),
			Area:     l.Area(),
		}
	}
	return out
}

// Check runs every validation tier over g.
func (a *App) Check(g *graph.Graph) graph.ValidationResult {
	result := graph.ValidateAll(g)
	for _, w := range result.Warnings {
		a.logger.Debug("validation warning", "warning", w.String())
	}
	return result
}

// Export draws g and writes it to path. The backend is chosen by format
// when given, otherwise by the extension of path. A level of -1 fills every
// level; any other value fills that level alone. opts selects the other
// parts in both cases.
func (a *App) Export(g *graph.Graph, opts outline.Options, level int, path, format string) error {
	backend, err := a.backend(path, format)
	if err != nil {
		return err
	}

	var d *plot.Drawing
	if level < 0 {
		d = outline.Build(g, opts)
	} else if d, err = outline.BuildLevel(g, level, opts); err != nil {
		return err
	}

	if err := backend.Render(d, path); err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	a.logger.Info("drawing exported",
		"path", path,
		"format", backend.Name(),
		"layers", len(d.Layers),
		"segments", d.SegmentCount())
	return nil
}

func (a *App) backend(path, format string) (plot.Backend, error) {
	if format != "" {
		if b := plot.ByName(format, a.backends...); b != nil {
			return b, nil
		}
		return nil, fmt.Errorf("unknown export format %q (want %s)", format, a.formatNames())
	}
	if b := plot.ByExtension(path, a.backends...); b != nil {
		return b, nil
	}
	return nil, fmt.Errorf("cannot infer export format from %q (want %s)", path, a.formatNames())
}

func (a *App) formatNames() string {
	names := make([]string, len(a.backends))
	for i, b := range a.backends {
		names[i] = b.Name()
	}
	return strings.Join(names, ", ")
}
