// Package exporter writes assembled datasets to CSV files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dscat/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality for datasets.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	// Headers overrides the generated column headers.
	Headers []string

	// BOMPrefix adds a UTF-8 BOM so Excel recognizes the encoding.
	BOMPrefix bool
}

// WriteDataset writes a dataset to filePath. Columns are named
// col_0..col_n unless Headers overrides them; a trailing "target"
// column is appended when the dataset carries labels.
func (w *CSVWriter) WriteDataset(filePath string, ds *domain.Dataset, options WriteOptions) error {
	headers := options.Headers
	if headers == nil {
		headers = defaultHeaders(ds)
	}

	w.logger.Info("writing dataset CSV",
		slog.String("dataset", ds.Name),
		slog.String("file_path", filePath),
		slog.Int("rows", ds.Rows()))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range ds.Data {
		record := row
		if ds.HasTarget() {
			record = make([]string, 0, len(row)+1)
			record = append(record, row...)
			record = append(record, ds.Target[i])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func defaultHeaders(ds *domain.Dataset) []string {
	headers := make([]string, 0, ds.Columns()+1)
	for i := 0; i < ds.Columns(); i++ {
		headers = append(headers, fmt.Sprintf("col_%d", i))
	}
	if ds.HasTarget() {
		headers = append(headers, "target")
	}
	return headers
}
