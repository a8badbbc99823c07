package graph

import (
	"io"
	"log/slog"
)

// Default numeric policy.
const (
	DefaultEpsilon        = 1e-5
	DefaultPrecision      = 4
	DefaultAnglePrecision = 2
	DefaultAreaTolerance  = 0.001
	DefaultMaxTraceSteps  = 10
	DefaultMaxLevels      = 200
)

// Tolerances collects every numeric tolerance and iteration bound used while
// building a graph.
type Tolerances struct {
	// Epsilon trims the open interval (Epsilon, n-1-Epsilon) in which an
	// intersection abscissa counts as interior. Abscissae exactly on the
	// trimmed boundary are excluded.
	Epsilon float64

	// Precision is the number of decimal places intersection coordinates
	// are rounded to. It also defines intersection identity.
	Precision int

	// AnglePrecision is the number of decimal places the cosine is rounded
	// to before it is inverted during face tracing.
	AnglePrecision int

	// AreaTolerance is the default relative tolerance of the area
	// conservation check.
	AreaTolerance float64

	// MaxTraceSteps bounds the number of steps of a single face trace.
	MaxTraceSteps int

	// MaxLevels bounds the number of levels peeled after level 0.
	MaxLevels int
}

// DefaultTolerances returns the default numeric policy.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Epsilon:        DefaultEpsilon,
		Precision:      DefaultPrecision,
		AnglePrecision: DefaultAnglePrecision,
		AreaTolerance:  DefaultAreaTolerance,
		MaxTraceSteps:  DefaultMaxTraceSteps,
		MaxLevels:      DefaultMaxLevels,
	}
}

// withDefaults fills zero fields with their defaults.
func (t Tolerances) withDefaults() Tolerances {
	d := DefaultTolerances()
	if t.Epsilon <= 0 {
		t.Epsilon = d.Epsilon
	}
	if t.Precision <= 0 {
		t.Precision = d.Precision
	}
	if t.AnglePrecision <= 0 {
		t.AnglePrecision = d.AnglePrecision
	}
	if t.AreaTolerance <= 0 {
		t.AreaTolerance = d.AreaTolerance
	}
	if t.MaxTraceSteps <= 0 {
		t.MaxTraceSteps = d.MaxTraceSteps
	}
	if t.MaxLevels <= 0 {
		t.MaxLevels = d.MaxLevels
	}
	return t
}

// Option configures graph construction.
type Option func(*options)

type options struct {
	tol    Tolerances
	logger *slog.Logger
}

func defaultOptions() options {
	return options{
		tol:    DefaultTolerances(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithTolerances overrides the numeric policy. Zero fields keep their
// defaults.
func WithTolerances(t Tolerances) Option {
	return func(o *options) {
		o.tol = t.withDefaults()
	}
}

// WithLogger routes construction diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
