package generator

import (
	"github.com/toyz/weave/internal/errors"
	"github.com/toyz/weave/internal/models"
	"github.com/toyz/weave/internal/templates"
)

// Banner is the first line of every generated file
const Banner = "// Code generated by weave. DO NOT EDIT."

// Generator renders the interface, Base and Proxy files for models
type Generator struct {
	render func(m models.Model, kind models.ArtifactKind) (string, error)
}

// NewGenerator creates a new generator using the built-in templates
func NewGenerator() *Generator {
	return &Generator{render: templates.Render}
}

// GenerateModel renders the three files of a single model, in interface,
// base, proxy order. A model that fails validation yields no files.
func (g *Generator) GenerateModel(m models.Model) ([]models.GeneratedFile, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return g.renderModel(m)
}

// renderModel renders a model that has already been validated
func (g *Generator) renderModel(m models.Model) ([]models.GeneratedFile, error) {
	files := make([]models.GeneratedFile, 0, len(models.ArtifactKinds))
	for _, kind := range models.ArtifactKinds {
		content, err := g.render(m, kind)
		if err != nil {
			return nil, err
		}
		files = append(files, models.GeneratedFile{
			Path:    m.FileName(kind),
			Kind:    kind,
			Model:   m.Name,
			Package: m.Package,
			Content: withBanner(content),
		})
	}
	return files, nil
}

// Render validates every model before rendering any of them, so one bad
// model fails the whole run
func (g *Generator) Render(list []models.Model) (*models.GenerationResult, error) {
	if err := models.ValidateAll(list); err != nil {
		return nil, err
	}

	result := &models.GenerationResult{}
	for _, m := range list {
		files, err := g.renderModel(m)
		if err != nil {
			return nil, err
		}
		result.Add(files...)
	}
	return result, nil
}

// Generate renders list and hands every file to w in order. Nothing is
// written when any model is invalid; the first write failure aborts.
func (g *Generator) Generate(list []models.Model, w Writer) error {
	result, err := g.Render(list)
	if err != nil {
		return err
	}
	return Write(result, w)
}

// Write hands every file of result to w, stopping at the first failure
func Write(result *models.GenerationResult, w Writer) error {
	for _, f := range result.Files {
		if err := w.WriteFile(f.Path, f.Content); err != nil {
			return errors.WrapFileSystemError("write", f.Path, err).
				WithContext("model", f.Model).
				WithContext("artifact", string(f.Kind))
		}
	}
	return nil
}

// IsGenerated reports whether content starts with the weave banner
func IsGenerated(content []byte) bool {
	banner := Banner + "\n"
	return len(content) >= len(banner) && string(content[:len(banner)]) == banner
}

func withBanner(content string) []byte {
	return []byte(Banner + "\n\n" + content)
}
