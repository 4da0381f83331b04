package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/weave/internal/generator"
)

const generatedSource = generator.Banner + "\n\npackage fao\n"

func TestCleaner_RemovesOnlyGeneratedFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"fao/FAO.go":           generatedSource,
		"fao/BaseFAO.go":       generatedSource,
		"fao/ProxyFAO.go":      generatedSource,
		"kv/KV.go":             generatedSource,
		"kv/kv_impl.go":        "package kv\n",
		"kv/notes.txt":         generator.Banner + "\n",
		"other/late.go":        "package other\n\n" + generator.Banner + "\n",
		"vendor/dep/ProxyX.go": generatedSource,
	})

	removed, err := NewCleaner().Clean(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "fao", "BaseFAO.go"),
		filepath.Join(root, "fao", "FAO.go"),
		filepath.Join(root, "fao", "ProxyFAO.go"),
		filepath.Join(root, "kv", "KV.go"),
	}, removed)

	assert.NoDirExists(t, filepath.Join(root, "fao"), "emptied package directories are removed")
	assert.FileExists(t, filepath.Join(root, "kv", "kv_impl.go"))
	assert.FileExists(t, filepath.Join(root, "kv", "notes.txt"))
	assert.FileExists(t, filepath.Join(root, "other", "late.go"))
	assert.FileExists(t, filepath.Join(root, "vendor", "dep", "ProxyX.go"))
}

func TestCleaner_BannerWithoutNewlineIsNotGenerated(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "short.go")
	require.NoError(t, os.WriteFile(path, []byte(generator.Banner), 0644))

	removed, err := NewCleaner().Clean(root)
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.FileExists(t, path)
}

func TestCleaner_MissingRoot(t *testing.T) {
	removed, err := NewCleaner().Clean(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestCleaner_KeepsRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"FAO.go": generatedSource})

	removed, err := NewCleaner().Clean(root)
	require.NoError(t, err)
	assert.Len(t, removed, 1)
	assert.DirExists(t, root)
}
