package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/weave/internal/errors"
	"github.com/toyz/weave/internal/generator"
	"github.com/toyz/weave/internal/loader"
	"github.com/toyz/weave/internal/models"
	"github.com/toyz/weave/internal/preview"
	"github.com/toyz/weave/internal/utils"
)

// GenerationSummary describes the outcome of a run
type GenerationSummary struct {
	RunID          string
	Documents      []string
	ModelsLoaded   int
	MethodsFound   int
	DefaultBodies  int
	Packages       []string
	GeneratedFiles []string
	RemovedFiles   []string
	Duration       time.Duration
}

// Generator coordinates a weave run: load model documents, render and write
// the artifacts, or clean or preview them
type Generator struct {
	scanner        *DirectoryScanner
	loader         *loader.Loader
	moduleResolver *ModuleResolver
	codeGenerator  generator.CodeGenerator
	cleaner        *Cleaner
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
	started        time.Time

	// serve starts the preview server; replaced in tests
	serve func(ctx context.Context, server preview.Server, addr string) error
}

// NewGenerator creates a CLI generator reporting through diagnostics
func NewGenerator(diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		loader:         loader.New(),
		moduleResolver: NewModuleResolver(),
		codeGenerator:  generator.NewGenerator(),
		cleaner:        NewCleaner(),
		reporter:       reporter,
		diagnostics:    diagnostics,
		serve: func(ctx context.Context, server preview.Server, addr string) error {
			return server.Start(ctx, addr)
		},
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes a complete run for config
func (g *Generator) Run(ctx context.Context, config Config) error {
	g.started = time.Now()
	g.summary = GenerationSummary{RunID: uuid.NewString()}
	defer func() {
		g.summary.Duration = time.Since(g.started)
	}()

	if err := config.Validate(); err != nil {
		return err
	}

	g.diagnostics.Verbose("Run %s started at %s", g.summary.RunID, g.started.Format("15:04:05"))
	if config.Module != "" {
		g.diagnostics.Debug("Using custom module name: %s", config.Module)
	}

	switch {
	case config.Clean:
		return g.clean(config)
	case config.Serve:
		return g.preview(ctx, config)
	default:
		return g.generate(config)
	}
}

// load scans, loads and renders the model documents without touching the
// summary, so the preview server can call it from request goroutines
func (g *Generator) load(config Config) (*models.GenerationResult, []models.Model, []string, error) {
	docs, err := g.scanner.ScanModelDocuments(config.Models)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(docs) == 0 {
		return nil, nil, nil, errors.New(errors.ConfigurationErrorCode, "no model documents found").
			WithContext("models", config.Models).
			WithSuggestions(
				"Point -models at a YAML file or a directory containing *.yaml files",
				"Use a pattern like ./models/... to search recursively",
			)
	}

	list, err := g.loader.LoadFiles(docs...)
	if err != nil {
		return nil, nil, nil, err
	}

	result, err := g.codeGenerator.Render(list)
	if err != nil {
		return nil, nil, nil, err
	}
	return result, list, docs, nil
}

// render loads every model document, renders the artifacts in memory and
// records what was found in the summary
func (g *Generator) render(config Config) (*models.GenerationResult, []string, error) {
	result, list, docs, err := g.load(config)
	if err != nil {
		return nil, nil, err
	}
	g.diagnostics.Debug("Model documents: %v", docs)

	g.summary.Documents = docs
	g.summary.ModelsLoaded = len(list)
	for _, m := range list {
		g.summary.MethodsFound += len(m.Methods)
		g.summary.DefaultBodies += len(m.DefaultMethods())
	}
	g.summary.Packages = result.Packages()

	return result, docs, nil
}

func (g *Generator) generate(config Config) error {
	g.diagnostics.Header("Generating code")

	g.diagnostics.PhaseHeader("Loading models")
	g.diagnostics.Indent()
	result, _, err := g.render(config)
	if err != nil {
		g.diagnostics.Unindent()
		return err
	}
	for _, doc := range g.summary.Documents {
		g.diagnostics.PhaseItem("%s", doc)
	}
	g.diagnostics.Unindent()

	g.reportImportPaths(config)

	g.diagnostics.PhaseHeader("Writing files")
	g.diagnostics.Indent()
	writer := &reportingWriter{
		next:        utils.NewFileWriter(config.Output, config.Format),
		diagnostics: g.diagnostics,
		summary:     &g.summary,
	}
	err = generator.Write(result, writer)
	g.diagnostics.Unindent()
	if err != nil {
		return err
	}

	g.diagnostics.Summary("Summary", []utils.Stat{
		{Label: "Models", Value: g.summary.ModelsLoaded},
		{Label: "Methods", Value: g.summary.MethodsFound},
		{Label: "Default bodies", Value: g.summary.DefaultBodies},
		{Label: "Packages", Value: len(g.summary.Packages)},
		{Label: "Files written", Value: len(g.summary.GeneratedFiles)},
	})
	g.diagnostics.Complete(fmt.Sprintf("generated %d files in %s", len(g.summary.GeneratedFiles), time.Since(g.started).Round(time.Millisecond)))
	return nil
}

// reportImportPaths lists where the generated packages can be imported
// from. A module that cannot be resolved is only worth a warning; the
// files do not depend on it.
func (g *Generator) reportImportPaths(config Config) {
	resolution, err := g.moduleResolver.Resolve(config.Module, config.Output)
	if err != nil {
		g.reporter.ReportWarning(fmt.Sprintf("Could not resolve import paths: %v", err))
		return
	}

	if resolution.GoMod != "" {
		g.diagnostics.Verbose("Module %s (from %s)", resolution.Module, resolution.GoMod)
	}
	g.diagnostics.PhaseHeader("Packages")
	g.diagnostics.Indent()
	for _, pkg := range g.summary.Packages {
		g.diagnostics.List("%s", resolution.PackageImportPath(pkg))
	}
	g.diagnostics.Unindent()
}

func (g *Generator) clean(config Config) error {
	g.diagnostics.Header("Cleaning generated files")

	removed, err := g.cleaner.Clean(config.Output)
	g.summary.RemovedFiles = removed

	g.diagnostics.Indent()
	for _, path := range removed {
		g.diagnostics.List("%s", path)
	}
	g.diagnostics.Unindent()
	if err != nil {
		return err
	}

	if len(removed) == 0 {
		g.diagnostics.Complete("nothing to clean")
		return nil
	}
	g.diagnostics.Complete(fmt.Sprintf("removed %d generated files", len(removed)))
	return nil
}

func (g *Generator) preview(ctx context.Context, config Config) error {
	// Render once up front so a broken model fails the command instead of
	// every request.
	result, docs, err := g.render(config)
	if err != nil {
		return err
	}

	catalog := preview.NewCatalog(func() (*models.GenerationResult, []string, error) {
		g.diagnostics.Verbose("Model documents changed, rendering again")
		result, _, docs, err := g.load(config)
		return result, docs, err
	})
	if err := catalog.Prime(result, docs); err != nil {
		g.diagnostics.Debug("Preview starts without a cached render: %v", err)
	}

	server, err := preview.New(config.Preview.Server, catalog)
	if err != nil {
		return err
	}

	g.diagnostics.Header(fmt.Sprintf("Serving %d models with %s on http://%s", g.summary.ModelsLoaded, server.Name(), config.Preview.Addr))
	g.diagnostics.Indent()
	g.diagnostics.List("GET /models")
	g.diagnostics.List("GET /files/{path}")
	g.diagnostics.Unindent()

	if err := g.serve(ctx, server, config.Preview.Addr); err != nil {
		return err
	}
	g.diagnostics.Complete("preview server stopped")
	return nil
}

// reportingWriter reports every file written through it
type reportingWriter struct {
	next        *utils.FileWriter
	diagnostics *utils.DiagnosticSystem
	summary     *GenerationSummary
}

func (w *reportingWriter) WriteFile(path string, content []byte) error {
	if err := w.next.WriteFile(path, content); err != nil {
		return err
	}
	full := filepath.Join(w.next.Root(), filepath.FromSlash(path))
	w.summary.GeneratedFiles = append(w.summary.GeneratedFiles, full)
	w.diagnostics.FileWritten(full)
	return nil
}
