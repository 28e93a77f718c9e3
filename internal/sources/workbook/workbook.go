// Package workbook extracts raw sources shipped as Excel files. Each
// workbook contributes the rows of its first populated sheet; cells
// are kept as strings so workbook sources and plain-text sources feed
// the same dataset shape.
package workbook

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"dscat/internal/catalog"
	"dscat/pkg/contracts/domain"
)

// ExtractorID identifies this extraction function in the catalog store.
const ExtractorID = "workbook"

// Extraction kinds. KindAll reads every matching workbook in the
// source directory; KindSingle reads the one named by the "file"
// parameter.
const (
	KindAll    = "all"
	KindSingle = "single"
)

// Extractor reads .xlsx raw files from a source directory.
type Extractor struct {
	// Pattern filters workbook file names, defaults to "*.xlsx".
	Pattern string

	// SkipRows drops this many leading rows of each sheet (headers).
	SkipRows int

	// HasLabelColumn splits the last cell of each row off as the label.
	HasLabelColumn bool

	logger *slog.Logger
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithSkipRows sets the number of leading sheet rows to drop.
func WithSkipRows(n int) Option {
	return func(e *Extractor) {
		e.SkipRows = n
	}
}

// WithLabelColumn enables label extraction from the last column.
func WithLabelColumn() Option {
	return func(e *Extractor) {
		e.HasLabelColumn = true
	}
}

// WithLogger injects a specific logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates a workbook extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		Pattern: "*.xlsx",
		logger:  slog.Default(),
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

// Extract reads the selected workbooks and concatenates their rows.
func (e *Extractor) Extract(ctx context.Context, req catalog.Request) (*domain.ExtractionResult, error) {
	var files []string
	switch req.Kind {
	case KindAll, "":
		matches, err := filepath.Glob(filepath.Join(req.Dir, e.Pattern))
		if err != nil {
			return nil, fmt.Errorf("bad workbook pattern %q: %w", e.Pattern, err)
		}
		sort.Strings(matches)
		files = matches
	case KindSingle:
		name, _ := req.Params["file"].(string)
		if name == "" {
			return nil, fmt.Errorf("extractor %s: kind %q requires a \"file\" parameter", ExtractorID, KindSingle)
		}
		files = []string{filepath.Join(req.Dir, name)}
	default:
		return nil, &catalog.UnsupportedKindError{
			ExtractorID: ExtractorID,
			Kind:        req.Kind,
			Supported:   []string{KindAll, KindSingle},
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no workbooks matching %q in %s", e.Pattern, req.Dir)
	}

	result := &domain.ExtractionResult{
		Data: make([][]string, 0),
	}
	if e.HasLabelColumn {
		result.Target = make([]string, 0)
	}
	read := make([]string, 0, len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, sheet, err := e.readWorkbook(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read workbook %s: %w", filepath.Base(path), err)
		}

		e.logger.DebugContext(ctx, "read workbook sheet",
			slog.String("file", path),
			slog.String("sheet", sheet),
			slog.Int("rows", len(rows)))

		for _, row := range rows {
			if e.HasLabelColumn {
				result.Target = append(result.Target, row[len(row)-1])
				result.Data = append(result.Data, row[:len(row)-1])
			} else {
				result.Data = append(result.Data, row)
			}
		}
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

// readWorkbook opens one workbook and returns the padded rows of its
// first populated sheet. Sheets can hand back ragged rows, so every
// row is padded to the sheet's widest row before use.
func (e *Extractor) readWorkbook(path string) ([][]string, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var rows [][]string
	var sheetName string
	for _, name := range f.GetSheetList() {
		candidate, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if sheetHasData(candidate) {
			rows = candidate
			sheetName = name
			break
		}
	}

	if sheetName == "" {
		return nil, "", fmt.Errorf("no populated sheet found")
	}

	if e.SkipRows >= len(rows) {
		return nil, sheetName, nil
	}
	rows = rows[e.SkipRows:]

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if rowIsBlank(row) {
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		out = append(out, padded)
	}
	return out, sheetName, nil
}

func sheetHasData(rows [][]string) bool {
	for _, row := range rows {
		if !rowIsBlank(row) {
			return true
		}
	}
	return false
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
