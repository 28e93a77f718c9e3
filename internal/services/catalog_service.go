// Package services provides the application service layer between the
// HTTP transport and the catalog core.
package services

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dscat/internal/catalog"
	"dscat/internal/files"
	"dscat/internal/infrastructure"
	"dscat/pkg/contracts/domain"
)

const tracerName = "dscat.services"

// SourceSummary describes one registered source for API listings.
type SourceSummary struct {
	Name      string `json:"name"`
	Dir       string `json:"dir"`
	Extractor string `json:"extractor"`
	FileCount int    `json:"file_count"`
}

// SourceDetail adds the raw file inventory to a summary.
type SourceDetail struct {
	SourceSummary
	Files []SourceFile `json:"files"`
}

// SourceFile is one raw file of a source.
type SourceFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ProcessRequest carries the parameters of one processing call.
type ProcessRequest struct {
	Kind     string          `json:"kind"`
	Metadata domain.Metadata `json:"metadata,omitempty"`
	Params   map[string]any  `json:"params,omitempty"`
}

// CatalogService exposes registry operations to transports.
type CatalogService struct {
	registry *catalog.Registry
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewCatalogService creates a catalog service using the default
// logger unless one is provided.
func NewCatalogService(registry *catalog.Registry, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &CatalogService{
		registry: registry,
		logger:   infrastructure.WithComponent(logger, "catalog_service"),
		tracer:   otel.Tracer(tracerName),
	}
}

// ListSources returns summaries of all registered sources in
// registration order.
func (s *CatalogService) ListSources(ctx context.Context) ([]SourceSummary, error) {
	names := s.registry.List()
	out := make([]SourceSummary, 0, len(names))
	for _, name := range names {
		src, err := s.registry.Get(name)
		if err != nil {
			return nil, err
		}
		// A source whose directory is not yet unpacked counts zero
		// files rather than failing the whole listing.
		count, err := files.NewDiscovery(src.Dir).CountRawFiles(src.Dir)
		if err != nil {
			count = 0
		}
		out = append(out, SourceSummary{
			Name:      src.Name,
			Dir:       src.Dir,
			Extractor: src.Extractor.ID(),
			FileCount: count,
		})
	}
	return out, nil
}

// SourceDetail returns one source with its raw file inventory. A
// source whose directory is not yet unpacked reports an empty
// inventory rather than failing, so the catalog stays browsable.
func (s *CatalogService) SourceDetail(ctx context.Context, name string) (*SourceDetail, error) {
	src, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}

	detail := &SourceDetail{
		SourceSummary: SourceSummary{
			Name:      src.Name,
			Dir:       src.Dir,
			Extractor: src.Extractor.ID(),
		},
		Files: make([]SourceFile, 0),
	}

	raw, err := files.NewDiscovery(src.Dir).FindRawFiles(src.Dir)
	if err != nil {
		s.logger.WarnContext(ctx, "source inventory unavailable",
			slog.String("source", name),
			slog.String("error", err.Error()))
		return detail, nil
	}
	for _, f := range raw {
		detail.Files = append(detail.Files, SourceFile{Name: f.Name, Size: f.Size})
	}
	return detail, nil
}

// Process runs the bound extraction function of name and returns the
// assembled dataset.
func (s *CatalogService) Process(ctx context.Context, name string, req ProcessRequest) (*domain.Dataset, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.process",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("source.name", name),
			attribute.String("source.kind", req.Kind),
		),
	)
	defer span.End()

	opts := []catalog.ProcessOption{catalog.WithKind(req.Kind)}
	if req.Metadata != nil {
		opts = append(opts, catalog.WithMetadata(req.Metadata))
	}
	for k, v := range req.Params {
		opts = append(opts, catalog.WithParam(k, v))
	}

	ds, err := s.registry.Process(ctx, name, opts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("dataset.rows", ds.Rows()))
	return ds, nil
}
