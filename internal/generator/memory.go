package generator

import (
	"sort"
	"sync"
)

// MemoryWriter keeps written files in memory
type MemoryWriter struct {
	mu    sync.RWMutex
	files map[string][]byte
	order []string
}

// NewMemoryWriter creates an empty in-memory writer
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under path, replacing earlier content
func (w *MemoryWriter) WriteFile(path string, content []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.files[path]; !exists {
		w.order = append(w.order, path)
	}
	w.files[path] = append([]byte(nil), content...)
	return nil
}

// Get returns the content written at path
func (w *MemoryWriter) Get(path string) ([]byte, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	content, ok := w.files[path]
	return content, ok
}

// Paths returns written paths in first-write order
func (w *MemoryWriter) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return append([]string(nil), w.order...)
}

// SortedPaths returns written paths sorted lexically
func (w *MemoryWriter) SortedPaths() []string {
	paths := w.Paths()
	sort.Strings(paths)
	return paths
}

// Len returns the number of distinct files written
func (w *MemoryWriter) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.files)
}
