package cli

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/weave/internal/errors"
	"github.com/toyz/weave/internal/generator"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	scanner *DirectoryScanner
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		scanner: NewDirectoryScanner(),
	}
}

// Clean removes every .go file below root whose first line is the weave
// banner, then removes package directories the removal left empty. Hand
// written files are never touched. The removed files are returned.
func (c *Cleaner) Clean(root string) ([]string, error) {
	var removed []string
	touched := make(map[string]bool)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipAll
			}
			return errors.WrapFileSystemError("scan", path, err)
		}

		if d.IsDir() {
			if path != root && c.scanner.shouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".go") {
			return nil
		}

		generated, err := isGeneratedFile(path)
		if err != nil {
			return errors.WrapFileSystemError("read", path, err)
		}
		if !generated {
			return nil
		}

		if err := os.Remove(path); err != nil {
			return errors.WrapFileSystemError("remove", path, err)
		}
		removed = append(removed, path)
		touched[filepath.Dir(path)] = true
		return nil
	})
	if err != nil {
		return removed, err
	}

	for dir := range touched {
		if dir != filepath.Clean(root) {
			removeIfEmpty(dir)
		}
	}

	return removed, nil
}

func isGeneratedFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, len(generator.Banner)+1)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return generator.IsGenerated(head[:n]), nil
}

func removeIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) == 0 {
		_ = os.Remove(dir)
	}
}
