// Package sources collects the built-in extraction functions and
// exposes them as catalog store factories.
package sources

import (
	"log/slog"

	"dscat/internal/catalog"
	"dscat/internal/catalogstore"
	"dscat/internal/sources/lvqpak"
	"dscat/internal/sources/workbook"
)

// Factories returns the factory map of all built-in extractors, keyed
// by extractor identifier.
func Factories(logger *slog.Logger) map[string]catalogstore.Factory {
	return map[string]catalogstore.Factory{
		lvqpak.ExtractorID: func() catalog.Extractor {
			return lvqpak.New(lvqpak.WithLogger(logger))
		},
		workbook.ExtractorID: func() catalog.Extractor {
			return workbook.New(workbook.WithLogger(logger))
		},
	}
}
