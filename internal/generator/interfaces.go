package generator

import "github.com/toyz/weave/internal/models"

// CodeGenerator defines the interface for turning models into source files
type CodeGenerator interface {
	GenerateModel(m models.Model) ([]models.GeneratedFile, error)
	Render(list []models.Model) (*models.GenerationResult, error)
	Generate(list []models.Model, w Writer) error
}

// Writer receives generated files. path is slash-separated and relative to
// whatever root the writer owns.
type Writer interface {
	WriteFile(path string, content []byte) error
}
