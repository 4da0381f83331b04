package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/weave/internal/models"
)

func kvModel() models.Model {
	return models.Model{
		Name:    "KV",
		Package: "kv",
		Imports: models.Imports{
			models.ArtifactInterface: {"io"},
			models.ArtifactBase:      {"fmt"},
		},
		Methods: []models.MethodSpec{
			{
				Name:    "Get",
				Params:  []models.Param{{Name: "key", Type: "string"}},
				Returns: []string{"[]byte", "error"},
			},
			{
				Name:    "Put",
				Params:  []models.Param{{Name: "key", Type: "string"}, {Name: "value", Type: "[]byte"}},
				Returns: []string{"error"},
			},
			{
				Name:    "Describe",
				Returns: []string{"string"},
				Body:    models.Body("\n        return fmt.Sprint(\"kv store\")\n    "),
			},
		},
	}
}

func TestEmitInterface(t *testing.T) {
	out, err := EmitInterface(kvModel())
	require.NoError(t, err)

	expected := `package kv

import (
	"io"
)

type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Describe() string
}
`
	assert.Equal(t, expected, out)
}

func TestEmitBase(t *testing.T) {
	out, err := EmitBase(kvModel())
	require.NoError(t, err)

	expected := `package kv

import (
	"fmt"
)

type BaseKV struct {
	KV
}

func (base *BaseKV) Describe() string {
	return fmt.Sprint("kv store")
}
`
	assert.Equal(t, expected, out)
}

func TestEmitProxy(t *testing.T) {
	out, err := EmitProxy(kvModel())
	require.NoError(t, err)

	expected := `package kv

import (
	"io"
)

type P_CreateProxyKV struct {
	Delegate KV
}

type ProxyKV struct {
	P_CreateProxyKV
}

func CreateProxyKV(params P_CreateProxyKV) *ProxyKV {
	return &ProxyKV{params}
}

func (p *ProxyKV) Get(key string) ([]byte, error) {
	return p.Delegate.Get(key)
}

func (p *ProxyKV) Put(key string, value []byte) error {
	return p.Delegate.Put(key, value)
}

func (p *ProxyKV) Describe() string {
	return p.Delegate.Describe()
}
`
	assert.Equal(t, expected, out)
}

func TestEmit_EmptyModel(t *testing.T) {
	m := models.Model{Name: "Empty", Package: "empty"}

	tests := []struct {
		kind     models.ArtifactKind
		expected string
	}{
		{
			kind:     models.ArtifactInterface,
			expected: "package empty\n\ntype Empty interface {\n}\n",
		},
		{
			kind:     models.ArtifactBase,
			expected: "package empty\n\ntype BaseEmpty struct {\n\tEmpty\n}\n",
		},
		{
			kind: models.ArtifactProxy,
			expected: "package empty\n\n" +
				"type P_CreateProxyEmpty struct {\n\tDelegate Empty\n}\n\n" +
				"type ProxyEmpty struct {\n\tP_CreateProxyEmpty\n}\n\n" +
				"func CreateProxyEmpty(params P_CreateProxyEmpty) *ProxyEmpty {\n\treturn &ProxyEmpty{params}\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			out, err := Emit(m, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestEmitBase_ReindentsDefaultBody(t *testing.T) {
	m := models.Model{
		Name:    "FAO",
		Package: "fao",
		Methods: []models.MethodSpec{
			{
				Name:    "Stat",
				Params:  []models.Param{{Name: "path", Type: "string"}},
				Returns: []string{"NodeInfo", "error"},
			},
			{
				Name:    "Read",
				Params:  []models.Param{{Name: "path", Type: "string"}, {Name: "buf", Type: "[]byte"}},
				Returns: []string{"int", "error"},
			},
			{
				Name:    "ReadAll",
				Params:  []models.Param{{Name: "path", Type: "string"}},
				Returns: []string{"[]byte", "error"},
				Body: models.Body(`
        stat, err := base.Stat(path)
        if err != nil {
            return nil, err
        }
        buf := make([]byte, stat.Size)
        _, err = base.Read(path, buf)
        return buf, err
    `),
			},
		},
	}

	out, err := EmitBase(m)
	require.NoError(t, err)

	assert.Contains(t, out, "func (base *BaseFAO) ReadAll(path string) ([]byte, error) {\n"+
		"\tstat, err := base.Stat(path)\n"+
		"\tif err != nil {\n"+
		"\t    return nil, err\n"+
		"\t}\n"+
		"\tbuf := make([]byte, stat.Size)\n"+
		"\t_, err = base.Read(path, buf)\n"+
		"\treturn buf, err\n"+
		"}\n")
	assert.NotContains(t, out, "func (base *BaseFAO) Stat")
	assert.NotContains(t, out, "func (base *BaseFAO) Read(")
}

func TestEmitBase_EmptyBody(t *testing.T) {
	m := models.Model{
		Name:    "Closer",
		Package: "io2",
		Methods: []models.MethodSpec{{Name: "Close", Returns: []string{"error"}, Body: models.Body("")}},
	}

	out, err := EmitBase(m)
	require.NoError(t, err)
	assert.Contains(t, out, "func (base *BaseCloser) Close() error {\n}\n")
}

func TestEmitProxy_Forwarding(t *testing.T) {
	m := models.Model{
		Name:    "Printer",
		Package: "printer",
		Methods: []models.MethodSpec{
			{
				Name:    "Printf",
				Params:  []models.Param{{Name: "format", Type: "string"}, {Name: "args", Type: "...any"}},
				Returns: []string{"int", "error"},
			},
			{
				Name:    "Set",
				Params:  []models.Param{{Name: "p", Type: "string"}},
				Returns: []string{"error"},
			},
			{
				Name:    "Lookup",
				Params:  []models.Param{{Name: "path", Type: "string"}},
				Returns: []string{"NodeInfo", "bool", "error"},
			},
		},
	}

	out, err := EmitProxy(m)
	require.NoError(t, err)

	assert.Contains(t, out, "func (px *ProxyPrinter) Printf(format string, args ...any) (int, error) {\n"+
		"\treturn px.Delegate.Printf(format, args...)\n}\n")
	assert.Contains(t, out, "func (px *ProxyPrinter) Set(p string) error {\n"+
		"\treturn px.Delegate.Set(p)\n}\n")
	assert.Contains(t, out, "func (px *ProxyPrinter) Lookup(path string) (NodeInfo, bool, error) {\n"+
		"\treturn px.Delegate.Lookup(path)\n}\n")
}

func TestEmit_IsDeterministic(t *testing.T) {
	for _, kind := range models.ArtifactKinds {
		first, err := Emit(kvModel(), kind)
		require.NoError(t, err)
		second, err := Emit(kvModel(), kind)
		require.NoError(t, err)
		assert.Equal(t, first, second, "artifact %s", kind)
	}
}

func TestEmit_RejectsInvalidModel(t *testing.T) {
	m := kvModel()
	m.Methods[0].Returns = nil

	for _, kind := range models.ArtifactKinds {
		out, err := Emit(m, kind)
		assert.Error(t, err)
		assert.Empty(t, out)
	}
}

func TestRender_TrustsTheCaller(t *testing.T) {
	m := kvModel()
	m.Methods[0].Returns = nil

	// Render leaves validation to its caller
	out, err := Render(m, models.ArtifactInterface)
	require.NoError(t, err)
	assert.Contains(t, out, "type KV interface {")

	valid, err := Render(kvModel(), models.ArtifactProxy)
	require.NoError(t, err)
	emitted, err := EmitProxy(kvModel())
	require.NoError(t, err)
	assert.Equal(t, emitted, valid)
}

func TestTemplateUtils(t *testing.T) {
	tu := NewTemplateUtils()

	t.Run("returns clause", func(t *testing.T) {
		assert.Equal(t, "", tu.FormatReturns(nil))
		assert.Equal(t, "error", tu.FormatReturns([]string{"error"}))
		assert.Equal(t, "(T, error)", tu.FormatReturns([]string{" T ", "error"}))
	})

	t.Run("signature", func(t *testing.T) {
		method := models.MethodSpec{
			Name:    "Write",
			Params:  []models.Param{{Name: "path", Type: "string"}, {Name: "data", Type: "[]byte"}},
			Returns: []string{"error"},
		}
		assert.Equal(t, "Write(path string, data []byte) error", tu.FormatSignature(method))
	})

	t.Run("receiver", func(t *testing.T) {
		methods := []models.MethodSpec{
			{Name: "A", Params: []models.Param{{Name: "p", Type: "int"}}},
			{Name: "B", Params: []models.Param{{Name: "px", Type: "int"}, {Name: "self", Type: "int"}}},
		}
		assert.Equal(t, "recv", tu.ReceiverName("p", methods))
		assert.Equal(t, "p", tu.ReceiverName("p", nil))
	})
}

func TestImportBlock(t *testing.T) {
	assert.Equal(t, "", ImportBlock(nil))
	assert.Equal(t, "import (\n\t\"io\"\n\t\"context\"\n)\n\n", ImportBlock([]string{"io", "context"}))

	m := kvModel()
	assert.Equal(t, "import (\n\t\"io\"\n)\n\n", ImportsFor(m, models.ArtifactProxy))
	m.Imports[models.ArtifactProxy] = []string{}
	assert.Equal(t, "", ImportsFor(m, models.ArtifactProxy))
	assert.Equal(t, "import (\n\t\"fmt\"\n)\n\n", ImportsFor(m, models.ArtifactBase))
}
