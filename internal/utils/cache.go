package utils

import (
	"os"
	"sync"
	"time"
)

// fileStamp identifies one version of a file on disk
type fileStamp struct {
	modTime time.Time
	size    int64
}

type cacheEntry[V any] struct {
	value  V
	stamps map[string]fileStamp
}

// FileCache caches values derived from files. An entry is dropped as soon as
// any of the files it was derived from changes size or modification time.
type FileCache[K comparable, V any] struct {
	items map[K]*cacheEntry[V]
	mutex sync.RWMutex
}

// NewFileCache creates an empty cache
func NewFileCache[K comparable, V any]() *FileCache[K, V] {
	return &FileCache[K, V]{
		items: make(map[K]*cacheEntry[V]),
	}
}

// Get returns the value for key when none of its source files changed
func (c *FileCache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	entry, exists := c.items[key]
	c.mutex.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}

	for path, stamp := range entry.stamps {
		current, err := stampOf(path)
		if err != nil || !current.modTime.Equal(stamp.modTime) || current.size != stamp.size {
			c.Delete(key)
			return zero, false
		}
	}
	return entry.value, true
}

// Set stores value for key, recording the current state of files
func (c *FileCache[K, V]) Set(key K, value V, files ...string) error {
	stamps := make(map[string]fileStamp, len(files))
	for _, path := range files {
		stamp, err := stampOf(path)
		if err != nil {
			return err
		}
		stamps[path] = stamp
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = &cacheEntry[V]{value: value, stamps: stamps}
	return nil
}

// Delete removes an item from the cache
func (c *FileCache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
}

// Size returns the number of items in the cache
func (c *FileCache[K, V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}

func stampOf(path string) (fileStamp, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, err
	}
	return fileStamp{modTime: stat.ModTime(), size: stat.Size()}, nil
}
