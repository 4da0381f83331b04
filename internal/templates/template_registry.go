package templates

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/toyz/weave/internal/models"
)

// TemplateRegistry provides a centralized way to access all artifact templates
type TemplateRegistry struct {
	templates map[models.ArtifactKind]*template.Template
}

// NewTemplateRegistry creates a new template registry with all templates parsed
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[models.ArtifactKind]*template.Template),
	}

	registry.register(models.ArtifactInterface, interfaceTemplate)
	registry.register(models.ArtifactBase, baseTemplate)
	registry.register(models.ArtifactProxy, proxyTemplate)

	return registry
}

// Get retrieves a template by artifact kind
func (tr *TemplateRegistry) Get(kind models.ArtifactKind) (*template.Template, bool) {
	tmpl, exists := tr.templates[kind]
	return tmpl, exists
}

// Execute renders the template for kind with data
func (tr *TemplateRegistry) Execute(kind models.ArtifactKind, data interface{}) (string, error) {
	tmpl, exists := tr.Get(kind)
	if !exists {
		return "", fmt.Errorf("template not found: %s", kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", kind, err)
	}

	return buf.String(), nil
}

func (tr *TemplateRegistry) register(kind models.ArtifactKind, text string) {
	tu := DefaultTemplateUtils
	funcMap := template.FuncMap{
		"signature":   tu.FormatSignature,
		"forwardArgs": tu.ForwardArgs,
		"body":        tu.FormatBody,
		"imports":     ImportBlock,
	}

	tr.templates[kind] = template.Must(template.New(string(kind)).Funcs(funcMap).Parse(text))
}

const interfaceTemplate = `package {{.Package}}

{{imports .Imports}}type {{.Name}} interface {
{{range .Methods}}	{{signature .}}
{{end}}}
`

const baseTemplate = `package {{.Package}}

{{imports .Imports}}type {{.BaseName}} struct {
	{{.Name}}
}
{{range .Methods}}
func ({{$.Receiver}} *{{$.BaseName}}) {{signature .}} {
{{body .}}}
{{end}}`

const proxyTemplate = `package {{.Package}}

{{imports .Imports}}type {{.ParamsName}} struct {
	Delegate {{.Name}}
}

type {{.ProxyName}} struct {
	{{.ParamsName}}
}

func {{.ConstructorName}}(params {{.ParamsName}}) *{{.ProxyName}} {
	return &{{.ProxyName}}{params}
}
{{range .Methods}}
func ({{$.Receiver}} *{{$.ProxyName}}) {{signature .}} {
	return {{$.Receiver}}.Delegate.{{.Name}}({{forwardArgs .Params}})
}
{{end}}`

// DefaultTemplateRegistry is the registry used by the emitters
var DefaultTemplateRegistry = NewTemplateRegistry()
