package catalog

import (
	"context"
	"fmt"
	"sync"

	"dscat/pkg/contracts/domain"
)

// Registry manages registered raw data sources. Names are listed in
// registration order. The maps are mutex-guarded so a shared registry
// does not corrupt itself, but processing remains a single-pass,
// synchronous pipeline with no retries or partial state.
type Registry struct {
	mu        sync.RWMutex
	sources   map[string]*RawSource
	order     []string
	assembler *Assembler
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithAssembler injects a configured Assembler (logger, metrics).
func WithAssembler(a *Assembler) RegistryOption {
	return func(r *Registry) {
		if a != nil {
			r.assembler = a
		}
	}
}

// NewRegistry creates an empty source registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		sources:   make(map[string]*RawSource),
		order:     make([]string, 0),
		assembler: NewAssembler(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds name to a raw source directory and its extraction
// function. Fails with *DuplicateSourceError if name already exists;
// use Rebind for an explicit overwrite.
func (r *Registry) Register(name, dir string, ex Extractor) error {
	if name == "" {
		return fmt.Errorf("source name cannot be empty")
	}
	if ex == nil {
		return fmt.Errorf("cannot register %s: nil extractor", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[name]; exists {
		return &DuplicateSourceError{Name: name}
	}

	r.sources[name] = &RawSource{Name: name, Dir: dir, Extractor: ex}
	r.order = append(r.order, name)
	return nil
}

// Rebind replaces the binding for name, registering it if absent. The
// insertion-order position of an existing name is preserved.
func (r *Registry) Rebind(name, dir string, ex Extractor) error {
	if name == "" {
		return fmt.Errorf("source name cannot be empty")
	}
	if ex == nil {
		return fmt.Errorf("cannot rebind %s: nil extractor", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[name]; !exists {
		r.order = append(r.order, name)
	}
	r.sources[name] = &RawSource{Name: name, Dir: dir, Extractor: ex}
	return nil
}

// Unregister removes a source binding.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[name]; !exists {
		return &UnknownSourceError{Name: name}
	}
	delete(r.sources, name)

	newOrder := make([]string, 0, len(r.order)-1)
	for _, n := range r.order {
		if n != name {
			newOrder = append(newOrder, n)
		}
	}
	r.order = newOrder
	return nil
}

// Get retrieves a source binding by name. The returned value is a
// copy; mutating it does not affect the registry.
func (r *Registry) Get(name string) (*RawSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src, exists := r.sources[name]
	if !exists {
		return nil, &UnknownSourceError{Name: name}
	}
	cp := *src
	return &cp, nil
}

// Has checks if a source is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.sources[name]
	return exists
}

// List returns registered source names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Count returns the number of registered sources.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sources)
}

// Clear removes all registered sources.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sources = make(map[string]*RawSource)
	r.order = make([]string, 0)
}

// Process resolves name and delegates to the Assembler with the bound
// extraction function. Fails with *UnknownSourceError for an
// unregistered name; extraction errors are surfaced unmodified.
func (r *Registry) Process(ctx context.Context, name string, opts ...ProcessOption) (*domain.Dataset, error) {
	src, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	req := Request{Dir: src.Dir}
	for _, opt := range opts {
		opt(&req)
	}

	return r.assembler.Assemble(ctx, name, src.Extractor, req)
}
