package catalog

import (
	"fmt"
	"strings"
)

// UnknownSourceError reports a registry lookup for a name that was
// never registered.
type UnknownSourceError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown data source: %s", e.Name)
}

// DuplicateSourceError reports an attempt to register a name that
// already exists without requesting an overwrite.
type DuplicateSourceError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateSourceError) Error() string {
	return fmt.Sprintf("data source already registered: %s", e.Name)
}

// UnsupportedKindError reports an extraction kind the extractor does
// not recognize.
type UnsupportedKindError struct {
	ExtractorID string
	Kind        string
	Supported   []string
}

// Error implements the error interface.
func (e *UnsupportedKindError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("extractor %s: unsupported kind %q", e.ExtractorID, e.Kind)
	}
	return fmt.Sprintf("extractor %s: unsupported kind %q (supported: %s)",
		e.ExtractorID, e.Kind, strings.Join(e.Supported, ", "))
}
