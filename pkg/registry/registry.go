package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/geoascii/pkg/errors"
)

// Registry stores items by name
type Registry[T any] interface {
	Register(name string, item T) error
	Get(name string) (T, error)
	Has(name string) bool

	// List returns the registered names, sorted
	List() []string
	Count() int
}

type registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New creates an empty Registry
func New[T any]() Registry[T] {
	return &registry[T]{items: make(map[string]T)}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "`%s' is already registered", name).
			WithDetail("name", name)
	}
	r.items[name] = item
	return nil
}

func (r *registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "`%s' is not registered", name).
			WithDetail("name", name)
	}
	return item, nil
}

func (r *registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.items[name]
	return exists
}

func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// MustRegister registers an item and panics on failure. Meant for init().
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
