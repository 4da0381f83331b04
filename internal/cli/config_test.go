package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/weave/internal/errors"
	"github.com/toyz/weave/internal/utils"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), DefaultConfigFile)

	cfg, err := LoadConfig(missing, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadConfig(missing, true)
	require.Error(t, err)

	var weaveErr errors.WeaveError
	require.ErrorAs(t, err, &weaveErr)
	assert.Equal(t, errors.ConfigurationErrorCode, weaveErr.ErrorCode())
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
models = ["api.yaml", "/abs/store.yaml"]
format = true

[preview]
server = "gin"
`)
	dir := filepath.Dir(path)

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "api.yaml"), "/abs/store.yaml"}, cfg.Models)
	assert.True(t, cfg.Format)
	assert.Equal(t, "gin", cfg.Preview.Server)

	// keys the file leaves out keep their defaults
	assert.Equal(t, ".", cfg.Output)
	assert.Equal(t, "localhost:8080", cfg.Preview.Addr)
	assert.Empty(t, cfg.Module)
}

func TestLoadConfig_OutputRelativeToFile(t *testing.T) {
	path := writeConfig(t, `output = "gen"`)

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "gen"), cfg.Output)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "invalid toml", content: `models = [`, want: "failed to parse configuration"},
		{name: "unknown key", content: `modles = ["a.yaml"]`, want: "unknown config key 'modles'"},
		{name: "unknown nested key", content: "[preview]\nport = 80\n", want: "unknown config key 'preview.port'"},
		{name: "wrong type", content: `format = "yes"`, want: "failed to parse configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content), true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "no models", mutate: func(c *Config) { c.Models = nil }, wantErr: "invalid models"},
		{name: "blank model", mutate: func(c *Config) { c.Models = []string{" "} }, wantErr: "invalid models"},
		{name: "clean needs no models", mutate: func(c *Config) { c.Models = nil; c.Clean = true }},
		{name: "no output", mutate: func(c *Config) { c.Output = "" }, wantErr: "invalid output"},
		{name: "bad module", mutate: func(c *Config) { c.Module = "not a module" }, wantErr: "invalid module"},
		{name: "good module", mutate: func(c *Config) { c.Module = "github.com/example/app" }},
		{
			name:    "unknown server",
			mutate:  func(c *Config) { c.Serve = true; c.Preview.Server = "martini" },
			wantErr: "invalid preview.server: validation error for field 'preview.server': must be one of [echo fiber gin]",
		},
		{name: "gin server", mutate: func(c *Config) { c.Serve = true; c.Preview.Server = "gin" }},
		{name: "fiber server", mutate: func(c *Config) { c.Serve = true; c.Preview.Server = "fiber" }},
		{
			name:   "server only checked when serving",
			mutate: func(c *Config) { c.Preview.Server = "martini" },
		},
		{
			name:    "bad address",
			mutate:  func(c *Config) { c.Serve = true; c.Preview.Addr = "8080" },
			wantErr: "invalid preview.addr",
		},
		{
			name:    "verbose and quiet",
			mutate:  func(c *Config) { c.Verbose = true; c.Quiet = true },
			wantErr: "-verbose and -quiet cannot be combined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_DiagnosticLevel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, utils.DiagnosticInfo, cfg.DiagnosticLevel())

	cfg.Verbose = true
	assert.Equal(t, utils.DiagnosticVerbose, cfg.DiagnosticLevel())

	cfg.Verbose = false
	cfg.Quiet = true
	assert.Equal(t, utils.DiagnosticError, cfg.DiagnosticLevel())
}
