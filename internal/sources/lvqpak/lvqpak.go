// Package lvqpak extracts the LVQ-PAK example dataset: two
// whitespace-delimited files whose first line holds the input
// dimensionality, second line a free-text comment, and whose last
// column is the class label. Labels include the literal "#", which is
// why the tabular parser refuses to treat any character as a comment
// marker.
package lvqpak

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"dscat/internal/catalog"
	"dscat/internal/parser"
	"dscat/pkg/contracts/domain"
)

// ExtractorID identifies this extraction function in the catalog store.
const ExtractorID = "lvq-pak"

// Extraction kinds supported by this source. The training half lives
// in ex1.dat, the held-out half in ex2.dat.
const (
	KindTrain = "train"
	KindTest  = "test"
	KindAll   = "all"
)

// Both files start with a dimensionality line and a comment line.
var headerLines = parser.SkipLines(0, 1)

// Extractor reads the LVQ-PAK example files from a raw source
// directory.
type Extractor struct {
	TrainFile string
	TestFile  string
	logger    *slog.Logger
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithLogger injects a specific logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an LVQ-PAK extractor with the standard file names.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		TrainFile: "ex1.dat",
		TestFile:  "ex2.dat",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the stable extractor identifier.
func (e *Extractor) ID() string {
	return ExtractorID
}

// Extract parses the files selected by req.Kind. An empty kind means
// "all". The returned metadata preserves every caller key and adds
// provenance: files read, kind, and row/column counts.
func (e *Extractor) Extract(ctx context.Context, req catalog.Request) (*domain.ExtractionResult, error) {
	var files []string
	switch req.Kind {
	case KindTrain:
		files = []string{e.TrainFile}
	case KindTest:
		files = []string{e.TestFile}
	case KindAll, "":
		files = []string{e.TrainFile, e.TestFile}
	default:
		return nil, &catalog.UnsupportedKindError{
			ExtractorID: ExtractorID,
			Kind:        req.Kind,
			Supported:   []string{KindTrain, KindTest, KindAll},
		}
	}

	result := &domain.ExtractionResult{
		Data:   make([][]string, 0),
		Target: make([]string, 0),
	}
	read := make([]string, 0, len(files))

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(req.Dir, name)
		table, err := parser.ParseSpaceDelimited(path, parser.ParseOptions{
			SkipRows:       headerLines,
			HasLabelColumn: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		e.logger.DebugContext(ctx, "parsed lvq-pak file",
			slog.String("file", path),
			slog.Int("rows", table.Rows()),
			slog.Int("columns", table.Columns()))

		result.Data = append(result.Data, table.Data...)
		result.Target = append(result.Target, table.Target...)
		read = append(read, path)
	}

	provenance := domain.Metadata{
		"source_files": read,
		"kind":         req.Kind,
		"rows":         len(result.Data),
	}
	if len(result.Data) > 0 {
		provenance["columns"] = len(result.Data[0])
	}
	result.Metadata = req.Metadata.Merge(provenance)

	return result, nil
}
