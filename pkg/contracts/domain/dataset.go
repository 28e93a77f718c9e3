package domain

import (
	"time"
)

// Metadata carries free-form provenance and context for a dataset.
// Extraction functions may add or override keys but must never drop
// keys supplied by the caller.
type Metadata map[string]any

// Clone returns a shallow copy of the metadata map. A nil receiver
// yields an empty, non-nil map so callers can write to the result.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge copies every key from other into a clone of m, overriding
// existing keys. Neither input is modified.
func (m Metadata) Merge(other Metadata) Metadata {
	out := m.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// ExtractionResult is what an extraction function hands back: the raw
// cell matrix, an optional label vector, and the updated metadata.
// When Target is non-nil its length must equal len(Data).
type ExtractionResult struct {
	Data     [][]string `json:"data"`
	Target   []string   `json:"target,omitempty"`
	Metadata Metadata   `json:"metadata"`
}

// Rows returns the number of data rows in the result.
func (r *ExtractionResult) Rows() int {
	return len(r.Data)
}

// Dataset is the canonical in-memory record produced by processing a
// raw source. It is a value object: once assembled it is never
// mutated, and it holds no reference back to the registry entry that
// produced it. A nil Target means the source carries no labels.
type Dataset struct {
	Name        string     `json:"name"`
	Data        [][]string `json:"data"`
	Target      []string   `json:"target,omitempty"`
	Metadata    Metadata   `json:"metadata"`
	AssembledAt time.Time  `json:"assembled_at"`
}

// Rows returns the number of data rows in the dataset.
func (d *Dataset) Rows() int {
	return len(d.Data)
}

// Columns returns the width of the data matrix, 0 for an empty dataset.
func (d *Dataset) Columns() int {
	if len(d.Data) == 0 {
		return 0
	}
	return len(d.Data[0])
}

// HasTarget reports whether the dataset carries a label vector.
func (d *Dataset) HasTarget() bool {
	return d.Target != nil
}
