package cli

import (
	"fmt"
	"path"

	"github.com/toyz/weave/internal/utils"
)

// ModuleResolution tells where the output root sits in a Go module
type ModuleResolution struct {
	Module     string // module path
	OutputPath string // import path of the output root
	GoMod      string // go.mod the module was read from, empty for -module
}

// PackageImportPath returns the import path of a generated package
func (r ModuleResolution) PackageImportPath(pkg string) string {
	return path.Join(r.OutputPath, pkg)
}

// ModuleResolver handles resolving Go module information
type ModuleResolver struct{}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{}
}

// Resolve determines the import path of outputDir. A custom module is taken
// to be rooted at outputDir; otherwise the nearest go.mod above it decides.
func (r *ModuleResolver) Resolve(customModule, outputDir string) (ModuleResolution, error) {
	if customModule != "" {
		return ModuleResolution{Module: customModule, OutputPath: customModule}, nil
	}

	goMod, err := utils.FindGoMod(outputDir)
	if err != nil {
		return ModuleResolution{}, fmt.Errorf("failed to determine module name: %w (consider using -module flag)", err)
	}

	info, err := utils.ParseGoMod(goMod)
	if err != nil {
		return ModuleResolution{}, err
	}

	outputPath := info.ImportPath(outputDir)
	if outputPath == "" {
		return ModuleResolution{}, fmt.Errorf("output directory %s is outside module %s", outputDir, info.Path)
	}

	return ModuleResolution{Module: info.Path, OutputPath: outputPath, GoMod: goMod}, nil
}
