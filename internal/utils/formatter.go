package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

// FileWriter writes generated files below a root directory
type FileWriter struct {
	root   string
	format bool
	perm   os.FileMode
}

// NewFileWriter creates a writer rooted at root. With format set, content
// is run through goimports before it is written.
func NewFileWriter(root string, format bool) *FileWriter {
	return &FileWriter{root: root, format: format, perm: 0644}
}

// Root returns the output root
func (w *FileWriter) Root() string {
	return w.root
}

// WriteFile writes content to the slash-separated path below the root,
// creating parent directories as needed
func (w *FileWriter) WriteFile(path string, content []byte) error {
	target := filepath.Join(w.root, filepath.FromSlash(path))

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	if w.format {
		formatted, err := FormatSource(target, content)
		if err != nil {
			return err
		}
		content = formatted
	}

	return os.WriteFile(target, content, w.perm)
}

// FormatSource formats Go source the way goimports does
func FormatSource(filename string, source []byte) ([]byte, error) {
	formatted, err := imports.Process(filename, source, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format %s: %w", filepath.Base(filename), err)
	}
	return formatted, nil
}
