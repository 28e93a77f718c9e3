package catalog

import (
	"context"

	"dscat/pkg/contracts/domain"
)

// Request carries everything an extraction function needs: the
// resolved unpack directory of the raw source, the caller's metadata,
// and source-specific parameters.
type Request struct {
	// Dir is the local directory where the raw files live, resolved by
	// the source resolver collaborator.
	Dir string

	// Kind selects which slice of the source to extract. Supported
	// values are a per-extractor convention (commonly "train", "test",
	// "all"); an unrecognized value fails with *UnsupportedKindError.
	Kind string

	// Metadata is the caller-supplied provenance map. Extractors must
	// return a map that preserves every key in it.
	Metadata domain.Metadata

	// Params holds free-form source-specific parameters.
	Params map[string]any
}

// Extractor converts a raw source's files into dataset arrays. An
// implementation may read zero or more files, use the tabular parser,
// and concatenate results. The returned metadata must contain every
// caller-supplied key; it may add or override keys (provenance such as
// file paths and row counts). When the result carries a target, its
// length must equal the number of data rows.
type Extractor interface {
	// ID returns the stable identifier of this extraction function,
	// used by the catalog store to rebind sources across runs.
	ID() string

	// Extract runs the extraction against req.Dir.
	Extract(ctx context.Context, req Request) (*domain.ExtractionResult, error)
}

// RawSource is a registry entry: a named raw source location bound to
// its extraction function. Entries are owned by the Registry; callers
// get copies.
type RawSource struct {
	Name      string
	Dir       string
	Extractor Extractor
}

// ProcessOption customizes a single Process call.
type ProcessOption func(*Request)

// WithKind selects the extraction kind.
func WithKind(kind string) ProcessOption {
	return func(r *Request) {
		r.Kind = kind
	}
}

// WithMetadata supplies caller metadata forwarded to the extractor.
func WithMetadata(md domain.Metadata) ProcessOption {
	return func(r *Request) {
		r.Metadata = md
	}
}

// WithParam sets one source-specific parameter.
func WithParam(key string, value any) ProcessOption {
	return func(r *Request) {
		if r.Params == nil {
			r.Params = make(map[string]any)
		}
		r.Params[key] = value
	}
}
