package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/weave/internal/errors"
	"github.com/toyz/weave/internal/generator"
	"github.com/toyz/weave/internal/preview"
	"github.com/toyz/weave/internal/utils"
)

const kvDocument = `
- name: KV
  package: kv
  imports:
    base: [fmt]
  methods:
    Get: "Get(key string) ([]byte, error)"
    Describe:
      signature: "Describe() string"
      body: |
        return fmt.Sprint("kv")
    Close: [[], [error], "return nil"]
`

type testRun struct {
	gen    *Generator
	output *bytes.Buffer
}

func newTestRun(level utils.DiagnosticLevel) testRun {
	var buf bytes.Buffer
	diagnostics := utils.NewDiagnosticSystem(level)
	diagnostics.SetOutput(&buf, &buf)
	reporter := NewDiagnosticReporter(false)
	reporter.SetOutput(&buf)
	return testRun{gen: NewGenerator(diagnostics, reporter), output: &buf}
}

// newProject creates a module with a models document and returns its root
func newProject(t *testing.T, document string) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":      "module example.com/app\n\ngo 1.22\n",
		"models.yaml": document,
	})
	return root
}

func projectConfig(root string) Config {
	cfg := DefaultConfig()
	cfg.Models = []string{filepath.Join(root, "models.yaml")}
	cfg.Output = filepath.Join(root, "gen")
	return cfg
}

func TestGenerator_Run(t *testing.T) {
	root := newProject(t, kvDocument)
	run := newTestRun(utils.DiagnosticVerbose)

	err := run.gen.Run(context.Background(), projectConfig(root))
	require.NoError(t, err, run.output.String())

	for _, name := range []string{"KV.go", "BaseKV.go", "ProxyKV.go"} {
		content, err := os.ReadFile(filepath.Join(root, "gen", "kv", name))
		require.NoError(t, err)
		assert.True(t, generator.IsGenerated(content), name)
	}

	base, err := os.ReadFile(filepath.Join(root, "gen", "kv", "BaseKV.go"))
	require.NoError(t, err)
	assert.Contains(t, string(base), "func (base *BaseKV) Describe() string {\n\treturn fmt.Sprint(\"kv\")\n}")
	assert.NotContains(t, string(base), "Get(")

	summary := run.gen.GetSummary()
	_, err = uuid.Parse(summary.RunID)
	assert.NoError(t, err, "run id should be a uuid")
	assert.Equal(t, 1, summary.ModelsLoaded)
	assert.Equal(t, 3, summary.MethodsFound)
	assert.Equal(t, 2, summary.DefaultBodies)
	assert.Equal(t, []string{"kv"}, summary.Packages)
	assert.Equal(t, []string{
		filepath.Join(root, "gen", "kv", "KV.go"),
		filepath.Join(root, "gen", "kv", "BaseKV.go"),
		filepath.Join(root, "gen", "kv", "ProxyKV.go"),
	}, summary.GeneratedFiles)

	output := run.output.String()
	assert.Contains(t, output, "Run "+summary.RunID)
	assert.Contains(t, output, "- example.com/app/gen/kv")
	assert.Contains(t, output, "Files written: 3")
}

func TestGenerator_RunIsIdempotent(t *testing.T) {
	root := newProject(t, kvDocument)
	cfg := projectConfig(root)

	require.NoError(t, newTestRun(utils.DiagnosticError).gen.Run(context.Background(), cfg))
	first, err := os.ReadFile(filepath.Join(root, "gen", "kv", "ProxyKV.go"))
	require.NoError(t, err)

	require.NoError(t, newTestRun(utils.DiagnosticError).gen.Run(context.Background(), cfg))
	second, err := os.ReadFile(filepath.Join(root, "gen", "kv", "ProxyKV.go"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerator_RunWithCustomModule(t *testing.T) {
	root := newProject(t, kvDocument)
	cfg := projectConfig(root)
	cfg.Module = "github.com/acme/stubs"

	run := newTestRun(utils.DiagnosticInfo)
	require.NoError(t, run.gen.Run(context.Background(), cfg))
	assert.Contains(t, run.output.String(), "- github.com/acme/stubs/kv")
}

func TestGenerator_RunInvalidModelWritesNothing(t *testing.T) {
	document := kvDocument + `
- name: Broken
  package: broken
  methods:
    Stat:
      params: [[path, string]]
      returns: []
`
	root := newProject(t, document)
	run := newTestRun(utils.DiagnosticError)

	err := run.gen.Run(context.Background(), projectConfig(root))
	require.Error(t, err)

	var weaveErr errors.WeaveError
	require.ErrorAs(t, err, &weaveErr)
	assert.Equal(t, errors.ValidationErrorCode, weaveErr.ErrorCode())
	assert.NoDirExists(t, filepath.Join(root, "gen"), "no model may be written when any model is invalid")
}

func TestGenerator_RunRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Models = nil

	err := newTestRun(utils.DiagnosticError).gen.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid models")
}

func TestGenerator_RunWithoutDocuments(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Models = []string{root}
	cfg.Output = root

	err := newTestRun(utils.DiagnosticError).gen.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no model documents found")
}

func TestGenerator_Clean(t *testing.T) {
	root := newProject(t, kvDocument)
	cfg := projectConfig(root)
	require.NoError(t, newTestRun(utils.DiagnosticError).gen.Run(context.Background(), cfg))

	handWritten := filepath.Join(root, "gen", "kv", "kv.go")
	require.NoError(t, os.WriteFile(handWritten, []byte("package kv\n"), 0644))

	cfg.Clean = true
	run := newTestRun(utils.DiagnosticInfo)
	require.NoError(t, run.gen.Run(context.Background(), cfg))

	assert.Len(t, run.gen.GetSummary().RemovedFiles, 3)
	assert.NoFileExists(t, filepath.Join(root, "gen", "kv", "KV.go"))
	assert.FileExists(t, handWritten)
	assert.Contains(t, run.output.String(), "removed 3 generated files")
}

func TestGenerator_Serve(t *testing.T) {
	root := newProject(t, kvDocument)
	cfg := projectConfig(root)
	cfg.Serve = true

	run := newTestRun(utils.DiagnosticInfo)
	var served preview.Server
	run.gen.serve = func(ctx context.Context, server preview.Server, addr string) error {
		served = server
		assert.Equal(t, "localhost:8080", addr)
		return nil
	}

	require.NoError(t, run.gen.Run(context.Background(), cfg))
	require.NotNil(t, served)
	assert.Equal(t, "Echo", served.Name())
	assert.NoDirExists(t, filepath.Join(root, "gen"), "preview must not write files")

	handler := served.(*preview.EchoServer).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/models", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []preview.ModelSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "KV", summaries[0].Name)

	// the preview follows edits to the models document
	edited := strings.Replace(kvDocument, "- name: KV", "- name: Store", 1)
	require.NoError(t, os.WriteFile(filepath.Join(root, "models.yaml"), []byte(edited), 0644))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/kv/ProxyStore.go", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "type ProxyStore struct")
}

func TestGenerator_ServeWithUnknownServer(t *testing.T) {
	root := newProject(t, kvDocument)
	cfg := projectConfig(root)
	cfg.Serve = true
	cfg.Preview.Server = "martini"

	err := newTestRun(utils.DiagnosticError).gen.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid preview.server")
}
