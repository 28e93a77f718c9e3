// Package catalogstore persists raw source bindings across process
// runs. A catalog file is a small YAML document mapping source names
// to their raw directories and extraction function identifiers; on
// load the identifiers are resolved against a table of known
// extractor constructors.
package catalogstore

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"dscat/internal/catalog"
	apperrors "dscat/internal/errors"
	"dscat/internal/resolver"
)

// Binding is one persisted source entry.
type Binding struct {
	Name      string `yaml:"name"`
	Dir       string `yaml:"dir,omitempty"`
	Extractor string `yaml:"extractor"`
}

// Document is the on-disk shape of the catalog file.
type Document struct {
	Sources []Binding `yaml:"sources"`
}

// Factory constructs an extractor for a persisted binding.
type Factory func() catalog.Extractor

// Store reads and writes a catalog file.
type Store struct {
	path string
}

// NewStore creates a store over the given catalog file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the catalog file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the catalog file. A missing file yields an empty
// document, not an error, so first runs need no setup step.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{}, nil
		}
		return nil, apperrors.NewStorageError("failed to read catalog file", err).WithContext("path", s.path)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewStorageError("failed to parse catalog file", err).WithContext("path", s.path)
	}
	return &doc, nil
}

// Save writes the document, creating the parent directory if needed.
func (s *Store) Save(doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return apperrors.NewStorageError("failed to encode catalog file", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create catalog directory", err).WithContext("path", s.path)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return apperrors.NewStorageError("failed to write catalog file", err).WithContext("path", s.path)
	}
	return nil
}

// Apply registers every binding of doc into reg, rebinding names that
// already exist. Directories resolve through a source resolver over
// root: an explicit dir becomes an alias, an empty one defaults to
// <root>/<name>, and a directory that does not exist fails the whole
// apply with a NOT_FOUND AppError. Unknown extractor identifiers fail
// it too.
func Apply(doc *Document, reg *catalog.Registry, factories map[string]Factory, root string) error {
	opts := make([]resolver.Option, 0, len(doc.Sources))
	for _, b := range doc.Sources {
		if b.Dir != "" {
			opts = append(opts, resolver.WithAlias(b.Name, b.Dir))
		}
	}
	res := resolver.New(root, opts...)

	for _, b := range doc.Sources {
		if b.Name == "" {
			return apperrors.NewValidationError("catalog binding with empty name")
		}

		factory, ok := factories[b.Extractor]
		if !ok {
			return apperrors.NewConfigError(
				fmt.Sprintf("unknown extractor %q for source %q", b.Extractor, b.Name), nil)
		}

		dir, err := res.Resolve(b.Name)
		if err != nil {
			return err
		}

		if err := reg.Rebind(b.Name, dir, factory()); err != nil {
			return fmt.Errorf("failed to bind source %s: %w", b.Name, err)
		}
	}
	return nil
}

// Snapshot captures the registry's current bindings as a document,
// in registration order.
func Snapshot(reg *catalog.Registry) (*Document, error) {
	doc := &Document{Sources: make([]Binding, 0, reg.Count())}
	for _, name := range reg.List() {
		src, err := reg.Get(name)
		if err != nil {
			// Unregistered between List and Get; the registry is not
			// meant for concurrent mutation, surface it.
			return nil, err
		}
		doc.Sources = append(doc.Sources, Binding{
			Name:      src.Name,
			Dir:       src.Dir,
			Extractor: src.Extractor.ID(),
		})
	}
	return doc, nil
}
