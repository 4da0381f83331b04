package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// ModuleInfo describes the module that owns the output directory
type ModuleInfo struct {
	Path      string // module path from the module directive
	Dir       string // directory holding go.mod
	GoVersion string // go directive, empty when absent
}

// ImportPath returns the import path of a package directory below the
// module root, or "" when dir lies outside the module
func (m ModuleInfo) ImportPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(m.Dir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	if rel == "." {
		return m.Path
	}
	return m.Path + "/" + filepath.ToSlash(rel)
}

// ParseGoMod reads the go.mod file at path
func ParseGoMod(path string) (ModuleInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ModuleInfo{}, fmt.Errorf("failed to read go.mod file: %w", err)
	}

	file, err := modfile.ParseLax(path, data, nil)
	if err != nil {
		return ModuleInfo{}, fmt.Errorf("failed to parse go.mod file: %w", err)
	}
	if file.Module == nil {
		return ModuleInfo{}, fmt.Errorf("no module declaration found in %s", path)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return ModuleInfo{}, err
	}

	info := ModuleInfo{Path: file.Module.Mod.Path, Dir: dir}
	if file.Go != nil {
		info.GoVersion = file.Go.Version
	}
	return info, nil
}

// FindGoMod searches for a go.mod file starting at startDir and walking up
func FindGoMod(startDir string) (string, error) {
	current, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(current, "go.mod")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return "", fmt.Errorf("go.mod file not found above %s", startDir)
}
