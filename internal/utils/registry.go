package utils

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Registry provides a generic, thread-safe registry of named values
type Registry[K cmp.Ordered, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	kind  string // what the registry holds, used in error messages
}

// NewRegistry creates a new generic registry. kind describes the values,
// e.g. "preview server".
func NewRegistry[K cmp.Ordered, V any](kind string) *Registry[K, V] {
	return &Registry[K, V]{
		items: make(map[K]V),
		kind:  kind,
	}
}

// Register adds an item, refusing to replace an existing one
func (r *Registry[K, V]) Register(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%s '%v' is already registered", r.kind, key)
	}
	r.items[key] = value
	return nil
}

// MustRegister is Register for package initialization
func (r *Registry[K, V]) MustRegister(key K, value V) {
	if err := r.Register(key, value); err != nil {
		panic(err)
	}
}

// Get retrieves an item from the registry
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// Lookup is Get with an error listing the known keys
func (r *Registry[K, V]) Lookup(key K) (V, error) {
	if value, ok := r.Get(key); ok {
		return value, nil
	}
	var zero V
	return zero, fmt.Errorf("unknown %s '%v' (known: %v)", r.kind, key, r.List())
}

// Has reports whether key is registered
func (r *Registry[K, V]) Has(key K) bool {
	_, exists := r.Get(key)
	return exists
}

// List returns all keys in sorted order
func (r *Registry[K, V]) List() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, 0, len(r.items))
	for key := range r.items {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Size returns the number of items in the registry
func (r *Registry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
