package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dscat/pkg/contracts/domain"
)

// Assembler invokes extraction functions and packages their output
// into canonical Dataset records. It is a synchronous, single-attempt
// pipeline step: the extractor runs exactly once and its error, if
// any, is propagated unmodified.
type Assembler struct {
	logger  *slog.Logger
	metrics *Metrics
}

// AssemblerOption customizes an Assembler.
type AssemblerOption func(*Assembler)

// WithLogger injects a specific logger.
func WithLogger(logger *slog.Logger) AssemblerOption {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics wires extraction metrics recording.
func WithMetrics(m *Metrics) AssemblerOption {
	return func(a *Assembler) {
		a.metrics = m
	}
}

// NewAssembler creates a dataset assembler using the default logger
// unless one is injected.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble runs ex exactly once with req and wraps the result into an
// immutable Dataset named name. A nil req.Metadata is replaced with an
// empty map before invocation, so extractors never see nil. The
// metadata handed to the extractor is a copy of the caller's map;
// identical inputs therefore produce identical datasets with no state
// leaking between calls.
func (a *Assembler) Assemble(ctx context.Context, name string, ex Extractor, req Request) (*domain.Dataset, error) {
	if ex == nil {
		return nil, fmt.Errorf("cannot assemble %s: nil extractor", name)
	}

	if req.Metadata == nil {
		req.Metadata = domain.Metadata{}
	} else {
		req.Metadata = req.Metadata.Clone()
	}

	start := time.Now()
	result, err := ex.Extract(ctx, req)
	if err != nil {
		a.metrics.RecordExtraction(ctx, ex.ID(), req.Kind, time.Since(start), false)
		// Propagated as-is: the extractor's error taxonomy is the contract.
		return nil, err
	}

	if result.Target != nil && len(result.Target) != len(result.Data) {
		a.metrics.RecordExtraction(ctx, ex.ID(), req.Kind, time.Since(start), false)
		return nil, fmt.Errorf("extractor %s returned %d labels for %d rows", ex.ID(), len(result.Target), len(result.Data))
	}

	ds := &domain.Dataset{
		Name:        name,
		Data:        result.Data,
		Target:      result.Target,
		Metadata:    result.Metadata.Clone(),
		AssembledAt: time.Now(),
	}

	a.metrics.RecordExtraction(ctx, ex.ID(), req.Kind, time.Since(start), true)
	a.metrics.RecordDatasetRows(ctx, name, ds.Rows())
	a.logger.InfoContext(ctx, "dataset assembled",
		slog.String("dataset", name),
		slog.String("extractor", ex.ID()),
		slog.String("kind", req.Kind),
		slog.Int("rows", ds.Rows()),
		slog.Int("columns", ds.Columns()),
		slog.Duration("elapsed", time.Since(start)))

	return ds, nil
}
