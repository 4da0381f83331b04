package models

import (
	"strings"

	"github.com/toyz/weave/internal/errors"
)

// ArtifactKind names one of the three files generated for a model
type ArtifactKind string

const (
	ArtifactInterface ArtifactKind = "interface"
	ArtifactBase      ArtifactKind = "base"
	ArtifactProxy     ArtifactKind = "proxy"
)

// ArtifactKinds lists every artifact kind in emission order
var ArtifactKinds = []ArtifactKind{ArtifactInterface, ArtifactBase, ArtifactProxy}

// IsValid reports whether k is a known artifact kind
func (k ArtifactKind) IsValid() bool {
	switch k {
	case ArtifactInterface, ArtifactBase, ArtifactProxy:
		return true
	}
	return false
}

// Imports maps an artifact kind to the import paths its file needs, in order
type Imports map[ArtifactKind][]string

// For returns the import paths declared for kind. The proxy repeats the
// interface's signatures, so without its own entry it uses the interface's
// imports; an explicit empty list opts out.
func (i Imports) For(kind ArtifactKind) []string {
	if i == nil {
		return nil
	}
	paths, ok := i[kind]
	if !ok && kind == ArtifactProxy {
		return i[ArtifactInterface]
	}
	return paths
}

// Param is one positional method parameter
type Param struct {
	Name string
	Type string
}

// String renders the parameter as it appears in a signature
func (p Param) String() string {
	return p.Name + " " + p.Type
}

// IsVariadic reports whether the parameter is declared as ...T
func (p Param) IsVariadic() bool {
	return strings.HasPrefix(strings.TrimSpace(p.Type), "...")
}

// MethodSpec describes a single interface method. A nil Body means the
// method is interface-only; a non-nil Body becomes the default on the base type.
type MethodSpec struct {
	Name    string
	Params  []Param
	Returns []string
	Body    *string

	Loc errors.SourceLocation // where the method was declared, if known
}

// HasBody reports whether the method carries a default implementation
func (m MethodSpec) HasBody() bool {
	return m.Body != nil
}

// BodyText returns the raw default body, or "" when there is none
func (m MethodSpec) BodyText() string {
	if m.Body == nil {
		return ""
	}
	return *m.Body
}

// Body returns a pointer to s for use in MethodSpec literals
func Body(s string) *string {
	return &s
}

// Model is one abstract service to generate an interface, base and proxy for
type Model struct {
	Name    string
	Package string
	Imports Imports
	Methods []MethodSpec // insertion order is emission order

	Loc errors.SourceLocation // where the model was declared, if known
}

// Method looks a method up by name
func (m Model) Method(name string) (MethodSpec, bool) {
	for _, method := range m.Methods {
		if method.Name == name {
			return method, true
		}
	}
	return MethodSpec{}, false
}

// DefaultMethods returns the methods that carry a body, in declaration order
func (m Model) DefaultMethods() []MethodSpec {
	var result []MethodSpec
	for _, method := range m.Methods {
		if method.HasBody() {
			result = append(result, method)
		}
	}
	return result
}

// BaseReceiver is the receiver of Base methods; default bodies reach the
// other methods through it
const BaseReceiver = "base"

// InterfaceName is the name of the generated interface
func (m Model) InterfaceName() string {
	return m.Name
}

// BaseName is the name of the generated base struct
func (m Model) BaseName() string {
	return "Base" + m.Name
}

// ProxyName is the name of the generated proxy struct
func (m Model) ProxyName() string {
	return "Proxy" + m.Name
}

// ProxyParamsName is the name of the proxy's constructor parameter holder
func (m Model) ProxyParamsName() string {
	return "P_CreateProxy" + m.Name
}

// ProxyConstructorName is the name of the proxy constructor function
func (m Model) ProxyConstructorName() string {
	return "CreateProxy" + m.Name
}

// GeneratedNames lists the package-level identifiers declared by the
// model's artifacts
func (m Model) GeneratedNames() []string {
	return []string{
		m.InterfaceName(),
		m.BaseName(),
		m.ProxyName(),
		m.ProxyParamsName(),
		m.ProxyConstructorName(),
	}
}

// FileName returns the output path of an artifact, relative to the output root
func (m Model) FileName(kind ArtifactKind) string {
	switch kind {
	case ArtifactBase:
		return m.Package + "/" + m.BaseName() + ".go"
	case ArtifactProxy:
		return m.Package + "/" + m.ProxyName() + ".go"
	default:
		return m.Package + "/" + m.InterfaceName() + ".go"
	}
}
