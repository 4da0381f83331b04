// Package templates renders the three source artifacts generated for a model:
// the interface, the Base decorator holding default method bodies, and the
// Proxy that forwards every call to a delegate.
package templates

import (
	"github.com/toyz/weave/internal/errors"
	"github.com/toyz/weave/internal/models"
)

// artifactData is the view of a model the artifact templates render
type artifactData struct {
	Package         string
	Name            string
	BaseName        string
	ProxyName       string
	ParamsName      string
	ConstructorName string
	Receiver        string
	Imports         []string
	Methods         []models.MethodSpec
}

func newArtifactData(m models.Model, kind models.ArtifactKind) artifactData {
	data := artifactData{
		Package:         m.Package,
		Name:            m.InterfaceName(),
		BaseName:        m.BaseName(),
		ProxyName:       m.ProxyName(),
		ParamsName:      m.ProxyParamsName(),
		ConstructorName: m.ProxyConstructorName(),
		Imports:         m.Imports.For(kind),
		Methods:         m.Methods,
	}

	switch kind {
	case models.ArtifactBase:
		data.Methods = m.DefaultMethods()
		data.Receiver = models.BaseReceiver
	case models.ArtifactProxy:
		data.Receiver = DefaultTemplateUtils.ReceiverName("p", m.Methods)
	}

	return data
}

// EmitInterface renders the interface declaration: every method of the model
// in declaration order, signatures only.
func EmitInterface(m models.Model) (string, error) {
	return Emit(m, models.ArtifactInterface)
}

// EmitBase renders Base<Name>, a struct embedding the interface, plus one
// method per method that declares a body. Methods without a body are left
// to the embedded interface value.
func EmitBase(m models.Model) (string, error) {
	return Emit(m, models.ArtifactBase)
}

// EmitProxy renders P_CreateProxy<Name>, Proxy<Name>, its constructor and a
// forwarding method for every method of the model.
func EmitProxy(m models.Model) (string, error) {
	return Emit(m, models.ArtifactProxy)
}

// Emit validates m and renders the artifact of the given kind
func Emit(m models.Model, kind models.ArtifactKind) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	return Render(m, kind)
}

// Render renders the artifact of the given kind without validating m first;
// callers that validated the model already use it directly
func Render(m models.Model, kind models.ArtifactKind) (string, error) {
	content, err := DefaultTemplateRegistry.Execute(kind, newArtifactData(m, kind))
	if err != nil {
		return "", errors.WrapGenerateError(string(kind), m.FileName(kind), err)
	}
	return content, nil
}
