// Package catalog implements the data source registry and the dataset
// assembly pipeline. A raw source is a named directory of unprocessed
// files bound to an extraction function; processing a source resolves
// the binding, runs the extractor once, and packages the returned
// matrices into an immutable domain.Dataset.
//
// # Architecture
//
// The package is organized around three pieces:
//
//  1. Extractor: the pluggable contract converting raw files into data,
//     target and metadata
//  2. Assembler: invokes an extractor exactly once and wraps the result
//  3. Registry: insertion-ordered, name-keyed store of RawSource bindings
//
// # Usage
//
//	reg := catalog.NewRegistry()
//	if err := reg.Register("lvq-pak", "/data/sources/lvq_pak-3.1", lvqpak.New()); err != nil {
//	    log.Fatal(err)
//	}
//	ds, err := reg.Process(ctx, "lvq-pak", catalog.WithKind("train"))
//
// # Error Handling
//
// Lookup misses surface as *UnknownSourceError, registration clashes
// as *DuplicateSourceError, and unrecognized extraction kinds as
// *UnsupportedKindError. All are returned synchronously; there are no
// retries and no partial datasets.
package catalog
