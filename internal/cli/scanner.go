package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/weave/internal/errors"
)

// DirectoryScanner expands model arguments into model document paths.
// An argument may be a file, a directory (its *.yaml and *.yml files) or a
// Go-style recursive pattern such as ./models/...
type DirectoryScanner struct {
	skipDirs map[string]bool
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		skipDirs: map[string]bool{
			"vendor":       true,
			"node_modules": true,
			"testdata":     true,
			"build":        true,
		},
	}
}

// ScanModelDocuments returns model documents in argument order. Documents
// found in one directory are sorted; a path is never returned twice.
func (s *DirectoryScanner) ScanModelDocuments(args []string) ([]string, error) {
	var docs []string
	seen := make(map[string]bool)
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			docs = append(docs, clean)
		}
	}

	for _, arg := range args {
		recursive := false
		if strings.HasSuffix(arg, "/...") {
			recursive = true
			arg = strings.TrimSuffix(arg, "/...")
			if arg == "" {
				arg = "."
			}
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.WrapFileSystemError("stat", arg, err).
				WithSuggestion("models may be files, directories or patterns like ./models/...")
		}

		if !info.IsDir() {
			add(arg)
			continue
		}

		found, err := s.scanDirectory(arg, recursive)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			add(path)
		}
	}

	return docs, nil
}

func (s *DirectoryScanner) scanDirectory(root string, recursive bool) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapFileSystemError("scan", path, err)
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || s.shouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isModelDocument(d.Name()) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

func (s *DirectoryScanner) shouldSkipDirectory(name string) bool {
	return strings.HasPrefix(name, ".") || s.skipDirs[name]
}

func isModelDocument(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}
