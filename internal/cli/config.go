package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/toyz/weave/internal/errors"
	"github.com/toyz/weave/internal/preview"
	"github.com/toyz/weave/internal/utils"
)

// DefaultConfigFile is read when no -config flag is given
const DefaultConfigFile = "weave.toml"

// Config holds the configuration for a weave run
type Config struct {
	// Models lists the model documents to load, in order
	Models []string `toml:"models"`

	// Output is the root directory generated packages are written below
	Output string `toml:"output"`

	// Format runs generated files through goimports before writing
	Format bool `toml:"format"`

	// Module overrides the module path otherwise read from go.mod
	Module string `toml:"module"`

	Preview PreviewConfig `toml:"preview"`

	Verbose bool `toml:"-"`
	Quiet   bool `toml:"-"`
	Clean   bool `toml:"-"`
	Serve   bool `toml:"-"`
}

// PreviewConfig configures the preview server
type PreviewConfig struct {
	Addr   string `toml:"addr"`
	Server string `toml:"server"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() Config {
	return Config{
		Models: []string{"models.yaml"},
		Output: ".",
		Preview: PreviewConfig{
			Addr:   "localhost:8080",
			Server: "echo",
		},
	}
}

// LoadConfig reads a TOML config file over the defaults. A missing file is
// only an error when required is set. Relative paths in the file are taken
// relative to the file's directory.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, errors.WrapConfigurationError("config file", "read", err).
			WithLocation(errors.SourceLocation{File: path})
	}

	var fromFile Config
	meta, err := toml.Decode(string(data), &fromFile)
	if err != nil {
		return cfg, errors.WrapConfigurationError("config file", "parse", err).
			WithLocation(errors.SourceLocation{File: path})
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Newf(errors.ConfigurationErrorCode, "unknown config key '%s'", undecoded[0].String()).
			WithLocation(errors.SourceLocation{File: path}).
			WithSuggestion("valid keys are models, output, format, module, preview.addr and preview.server")
	}

	base := filepath.Dir(path)
	if meta.IsDefined("models") {
		cfg.Models = make([]string, len(fromFile.Models))
		for i, m := range fromFile.Models {
			cfg.Models[i] = relativeTo(base, m)
		}
	}
	if meta.IsDefined("output") {
		cfg.Output = relativeTo(base, fromFile.Output)
	}
	if meta.IsDefined("format") {
		cfg.Format = fromFile.Format
	}
	if meta.IsDefined("module") {
		cfg.Module = fromFile.Module
	}
	if meta.IsDefined("preview", "addr") {
		cfg.Preview.Addr = fromFile.Preview.Addr
	}
	if meta.IsDefined("preview", "server") {
		cfg.Preview.Server = fromFile.Preview.Server
	}

	return cfg, nil
}

// Validate checks the configuration before a run
func (c Config) Validate() error {
	collector := errors.NewCollector(0)

	check := func(field string, err error) {
		if err != nil {
			collector.Collect(errors.Wrap(errors.ConfigurationErrorCode, "invalid "+field, err))
		}
	}

	if !c.Clean {
		check("models", utils.NewValidatorChain(
			utils.SliceNotEmpty[string]("models"),
			utils.ValidateEach("models", utils.NotEmpty("model")),
		).Validate(c.Models))
	}
	check("output", utils.NotEmpty("output")(c.Output))

	if c.Module != "" {
		check("module", utils.IsValidImportPath("module")(c.Module))
	}
	if c.Serve {
		check("preview.server", utils.Custom("preview.server",
			fmt.Sprintf("must be one of %v", preview.Servers.List()),
			preview.Servers.Has)(c.Preview.Server))
		check("preview.addr", utils.ValidateListenAddr("preview.addr")(c.Preview.Addr))
	}
	if c.Verbose && c.Quiet {
		collector.Collect(errors.New(errors.ConfigurationErrorCode, "-verbose and -quiet cannot be combined"))
	}

	return collector.ToError()
}

// DiagnosticLevel maps the verbosity flags to a diagnostic level
func (c Config) DiagnosticLevel() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}

func relativeTo(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
