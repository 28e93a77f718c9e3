package catalog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "dscat.catalog"

// Metrics holds OpenTelemetry instruments for extraction runs. A nil
// *Metrics is valid and records nothing, so instrumentation stays
// optional for library use.
type Metrics struct {
	extractionsTotal   metric.Int64Counter
	extractionDuration metric.Float64Histogram
	datasetRows        metric.Int64Histogram
}

// NewMetrics creates catalog metrics on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	extractionsTotal, err := meter.Int64Counter(
		"catalog_extractions_total",
		metric.WithDescription("Total number of extraction runs"),
	)
	if err != nil {
		return nil, err
	}

	extractionDuration, err := meter.Float64Histogram(
		"catalog_extraction_duration_seconds",
		metric.WithDescription("Extraction run duration in seconds"),
	)
	if err != nil {
		return nil, err
	}

	datasetRows, err := meter.Int64Histogram(
		"catalog_dataset_rows",
		metric.WithDescription("Rows per assembled dataset"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		extractionsTotal:   extractionsTotal,
		extractionDuration: extractionDuration,
		datasetRows:        datasetRows,
	}, nil
}

// RecordExtraction records one extraction attempt.
func (m *Metrics) RecordExtraction(ctx context.Context, extractorID, kind string, elapsed time.Duration, ok bool) {
	if m == nil {
		return
	}

	status := "error"
	if ok {
		status = "success"
	}
	attrs := metric.WithAttributes(
		attribute.String("extractor", extractorID),
		attribute.String("kind", kind),
		attribute.String("status", status),
	)

	m.extractionsTotal.Add(ctx, 1, attrs)
	m.extractionDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordDatasetRows records the row count of an assembled dataset.
func (m *Metrics) RecordDatasetRows(ctx context.Context, name string, rows int) {
	if m == nil {
		return
	}
	m.datasetRows.Record(ctx, int64(rows), metric.WithAttributes(attribute.String("dataset", name)))
}
