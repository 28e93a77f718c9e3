// Package resolver maps data source names to local directories of raw
// files. Fetching and unpacking archives is a separate concern; the
// resolver only answers "where do the raw files for this name live",
// and fails when that directory does not exist yet.
package resolver

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "dscat/internal/errors"
	"dscat/internal/files"
)

// Resolver resolves source names against a sources root directory.
// Each source occupies one subdirectory named after it, unless an
// alias maps the name elsewhere.
type Resolver struct {
	root    string
	aliases map[string]string
	logger  *slog.Logger
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithAlias maps a source name to a directory other than <root>/<name>.
// Relative directories are resolved against the root.
func WithAlias(name, dir string) Option {
	return func(r *Resolver) {
		r.aliases[name] = dir
	}
}

// WithLogger injects a specific logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a resolver over the given sources root.
func New(root string, opts ...Option) *Resolver {
	r := &Resolver{
		root:    root,
		aliases: make(map[string]string),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the sources root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns the existing local directory holding the raw files
// for name. The directory must already exist: downloading or
// unpacking is the job of an external collaborator.
func (r *Resolver) Resolve(name string) (string, error) {
	dir, ok := r.aliases[name]
	if !ok {
		dir = name
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.root, dir)
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NewNotFoundError(fmt.Sprintf("raw source directory for %q", name)).
				WithContext("dir", dir)
		}
		return "", fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("resolved path %s for %q is not a directory", dir, name)
	}

	r.logger.Debug("resolved raw source",
		slog.String("source", name),
		slog.String("dir", dir))
	return dir, nil
}

// Inventory lists the raw files currently present for name.
func (r *Resolver) Inventory(name string) ([]files.FileInfo, error) {
	dir, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return files.NewDiscovery(r.root).FindRawFiles(dir)
}
