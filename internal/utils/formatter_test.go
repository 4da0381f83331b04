package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileWriter_WritesBelowRoot(t *testing.T) {
	root := t.TempDir()
	w := NewFileWriter(root, false)

	content := []byte("package fao\n\ntype FAO interface {\n}\n")
	if err := w.WriteFile("fao/FAO.go", content); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	target := filepath.Join(root, "fao", "FAO.go")
	written, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(written) != string(content) {
		t.Errorf("expected content to be written verbatim, got:\n%s", written)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("expected mode 0644, got %v", info.Mode().Perm())
	}
}

func TestFileWriter_Format(t *testing.T) {
	root := t.TempDir()
	w := NewFileWriter(root, true)

	if err := w.WriteFile("x/x.go", []byte("package x\n\nfunc  F( )   {}\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	written, err := os.ReadFile(filepath.Join(root, "x", "x.go"))
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if !strings.Contains(string(written), "func F() {}") {
		t.Errorf("expected formatted source, got:\n%s", written)
	}
}

func TestFileWriter_FormatRejectsInvalidSource(t *testing.T) {
	root := t.TempDir()
	w := NewFileWriter(root, true)

	err := w.WriteFile("broken/broken.go", []byte("package broken\n\nfunc {\n"))
	if err == nil {
		t.Fatal("expected formatting error")
	}
	if _, statErr := os.Stat(filepath.Join(root, "broken", "broken.go")); !os.IsNotExist(statErr) {
		t.Error("expected nothing to be written for invalid source")
	}
}
