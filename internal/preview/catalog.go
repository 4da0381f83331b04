// Package preview serves rendered artifacts over HTTP so they can be
// inspected without writing anything to disk.
package preview

import (
	"strings"

	"github.com/toyz/weave/internal/models"
	"github.com/toyz/weave/internal/utils"
)

// RenderFunc renders the current models. It returns the result together
// with the files the result was derived from; the result is reused until
// one of those files changes.
type RenderFunc func() (*models.GenerationResult, []string, error)

// ModelSummary is the JSON view of one model served by GET /models
type ModelSummary struct {
	Name    string   `json:"name"`
	Package string   `json:"package"`
	Files   []string `json:"files"`
}

const snapshotKey = "snapshot"

// Catalog is the render source shared by every server adapter
type Catalog struct {
	render RenderFunc
	cache  *utils.FileCache[string, *models.GenerationResult]
}

// NewCatalog creates a catalog over render
func NewCatalog(render RenderFunc) *Catalog {
	return &Catalog{
		render: render,
		cache:  utils.NewFileCache[string, *models.GenerationResult](),
	}
}

// StaticCatalog serves a fixed result
func StaticCatalog(result *models.GenerationResult) *Catalog {
	return NewCatalog(func() (*models.GenerationResult, []string, error) {
		return result, nil, nil
	})
}

// Prime seeds the catalog with a result already rendered from files
func (c *Catalog) Prime(result *models.GenerationResult, files []string) error {
	return c.cache.Set(snapshotKey, result, files...)
}

// Snapshot returns the cached result, rendering again when a source file
// changed since the last render
func (c *Catalog) Snapshot() (*models.GenerationResult, error) {
	if result, ok := c.cache.Get(snapshotKey); ok {
		return result, nil
	}

	result, files, err := c.render()
	if err != nil {
		return nil, err
	}

	// A file that vanished between render and stat only costs a re-render
	// on the next request.
	if err := c.cache.Set(snapshotKey, result, files...); err != nil {
		c.cache.Delete(snapshotKey)
	}
	return result, nil
}

// Models lists every model of the snapshot with the paths of its files, in
// generation order
func (c *Catalog) Models() ([]ModelSummary, error) {
	result, err := c.Snapshot()
	if err != nil {
		return nil, err
	}

	summaries := []ModelSummary{}
	index := make(map[string]int)
	for _, f := range result.Files {
		key := f.Package + "." + f.Model
		i, ok := index[key]
		if !ok {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, ModelSummary{Name: f.Model, Package: f.Package})
		}
		summaries[i].Files = append(summaries[i].Files, f.Path)
	}
	return summaries, nil
}

// File returns the generated file at path. A leading slash is ignored.
func (c *Catalog) File(path string) (models.GeneratedFile, bool, error) {
	result, err := c.Snapshot()
	if err != nil {
		return models.GeneratedFile{}, false, err
	}

	f, ok := result.Find(strings.TrimPrefix(path, "/"))
	return f, ok, nil
}
