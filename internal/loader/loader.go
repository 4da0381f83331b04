// Package loader decodes models documents written in YAML.
//
// A document is a list of models. Methods are a mapping whose order is
// preserved, each given in one of three forms:
//
//	Stat:
//	  params: [[path, string]]
//	  returns: [NodeInfo, bool, error]
//	ReadAll:
//	  signature: "ReadAll(path string) ([]byte, error)"
//	  body: |
//	    ...
//	Unlink: [[[path, string]], [error]]
//
// The tuple form takes an optional third element holding the body.
package loader

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/toyz/weave/internal/errors"
	"github.com/toyz/weave/internal/models"
	"github.com/toyz/weave/internal/signature"
)

// Loader decodes models documents
type Loader struct {
	signatures *signature.Parser
	maxErrors  int
}

// New creates a loader
func New() *Loader {
	return &Loader{
		signatures: signature.NewParser(),
		maxErrors:  50,
	}
}

// LoadFile reads and decodes the document at path
func (l *Loader) LoadFile(path string) ([]models.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return l.Load(path, data)
}

// LoadFiles decodes every document in order and concatenates their models
func (l *Loader) LoadFiles(paths ...string) ([]models.Model, error) {
	var all []models.Model
	for _, path := range paths {
		list, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, list...)
	}
	return all, nil
}

// LoadReader decodes a document read from r. name is used in locations.
func (l *Loader) LoadReader(name string, r io.Reader) ([]models.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", name, err)
	}
	return l.Load(name, data)
}

// Load decodes a document. All shape problems found in the document are
// reported together; an empty document yields no models.
func (l *Loader) Load(name string, data []byte) ([]models.Model, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParseError(name, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	d := &decoder{
		file:       name,
		signatures: l.signatures,
		collector:  errors.NewCollector(l.maxErrors),
	}

	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		d.fail(root, "", "", "document must be a list of models")
		return nil, d.collector.ToError()
	}

	list := make([]models.Model, 0, len(root.Content))
	for i, item := range root.Content {
		if m, ok := d.model(i, item); ok {
			list = append(list, m)
		}
	}

	if err := d.collector.ToError(); err != nil {
		return nil, err
	}
	return list, nil
}

type decoder struct {
	file       string
	signatures *signature.Parser
	collector  *errors.Collector
}

func (d *decoder) loc(n *yaml.Node) errors.SourceLocation {
	return errors.SourceLocation{File: d.file, Line: n.Line, Column: n.Column}
}

func (d *decoder) fail(n *yaml.Node, model, path, message string) {
	d.collector.Collect(errors.NewSchemaError(model, path, message).WithLocation(d.loc(n)))
}

// pairs walks a mapping node, reporting duplicate and unknown keys
func (d *decoder) pairs(n *yaml.Node, model, path string, known map[string]bool, fn func(key string, keyNode, value *yaml.Node)) {
	seen := make(map[string]int)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, value := n.Content[i], n.Content[i+1]
		key := keyNode.Value

		if line, dup := seen[key]; dup {
			d.fail(keyNode, model, join(path, key), fmt.Sprintf("duplicate key (first defined at line %d)", line))
			continue
		}
		seen[key] = keyNode.Line

		if known != nil && !known[key] {
			d.fail(keyNode, model, join(path, key), "unknown key")
			continue
		}
		fn(key, keyNode, value)
	}
}

var modelKeys = map[string]bool{"name": true, "package": true, "imports": true, "methods": true}

func (d *decoder) model(index int, n *yaml.Node) (models.Model, bool) {
	m := models.Model{Loc: d.loc(n)}
	if n.Kind != yaml.MappingNode {
		d.fail(n, "", fmt.Sprintf("[%d]", index), "model must be a mapping")
		return m, false
	}

	// The name is needed to label every other error, so read it first.
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == "name" {
			m.Name, _ = d.scalar(n.Content[i+1], "", "name")
			break
		}
	}

	before := d.collector.Count()
	d.pairs(n, m.Name, "", modelKeys, func(key string, _ *yaml.Node, value *yaml.Node) {
		switch key {
		case "name":
			// read above
		case "package":
			m.Package, _ = d.scalar(value, m.Name, "package")
		case "imports":
			m.Imports = d.imports(value, m.Name)
		case "methods":
			m.Methods = d.methods(value, m.Name)
		}
	})

	return m, d.collector.Count() == before
}

func (d *decoder) scalar(n *yaml.Node, model, path string) (string, bool) {
	if n.Kind != yaml.ScalarNode {
		d.fail(n, model, path, "expected a string")
		return "", false
	}
	return n.Value, true
}

func (d *decoder) strings(n *yaml.Node, model, path string) []string {
	if n.Kind != yaml.SequenceNode {
		d.fail(n, model, path, "expected a list of strings")
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for i, item := range n.Content {
		if s, ok := d.scalar(item, model, fmt.Sprintf("%s[%d]", path, i)); ok {
			out = append(out, s)
		}
	}
	return out
}

func (d *decoder) imports(n *yaml.Node, model string) models.Imports {
	if n.Kind != yaml.MappingNode {
		d.fail(n, model, "imports", "expected a mapping of artifact kind to import paths")
		return nil
	}

	imports := make(models.Imports)
	d.pairs(n, model, "imports", nil, func(key string, _ *yaml.Node, value *yaml.Node) {
		imports[models.ArtifactKind(key)] = d.strings(value, model, join("imports", key))
	})
	return imports
}

func (d *decoder) methods(n *yaml.Node, model string) []models.MethodSpec {
	if n.Kind != yaml.MappingNode {
		d.fail(n, model, "methods", "expected a mapping of method name to definition")
		return nil
	}

	var methods []models.MethodSpec
	d.pairs(n, model, "methods", nil, func(key string, keyNode, value *yaml.Node) {
		method, ok := d.method(model, key, value)
		if !ok {
			return
		}
		method.Loc = d.loc(keyNode)
		methods = append(methods, method)
	})
	return methods
}

var methodKeys = map[string]bool{"params": true, "returns": true, "body": true, "signature": true}

func (d *decoder) method(model, name string, n *yaml.Node) (models.MethodSpec, bool) {
	path := join("methods", name)
	before := d.collector.Count()

	switch n.Kind {
	case yaml.MappingNode:
		method := models.MethodSpec{Name: name}
		var sig *yaml.Node
		d.pairs(n, model, path, methodKeys, func(key string, _ *yaml.Node, value *yaml.Node) {
			switch key {
			case "params":
				method.Params = d.params(value, model, join(path, "params"))
			case "returns":
				method.Returns = d.strings(value, model, join(path, "returns"))
			case "body":
				method.Body = d.body(value, model, join(path, "body"))
			case "signature":
				sig = value
			}
		})

		if sig != nil {
			if method.Params != nil || method.Returns != nil {
				d.fail(sig, model, path, "signature cannot be combined with params or returns")
			} else {
				d.applySignature(&method, sig, model, path)
			}
		}
		return method, d.collector.Count() == before

	case yaml.SequenceNode:
		if len(n.Content) < 2 || len(n.Content) > 3 {
			d.fail(n, model, path, "expected [params, returns] or [params, returns, body]")
			return models.MethodSpec{}, false
		}
		method := models.MethodSpec{
			Name:    name,
			Params:  d.params(n.Content[0], model, join(path, "params")),
			Returns: d.strings(n.Content[1], model, join(path, "returns")),
		}
		if len(n.Content) == 3 {
			method.Body = d.body(n.Content[2], model, join(path, "body"))
		}
		return method, d.collector.Count() == before

	case yaml.ScalarNode:
		method := models.MethodSpec{Name: name}
		d.applySignature(&method, n, model, path)
		return method, d.collector.Count() == before

	default:
		d.fail(n, model, path, "expected a method definition")
		return models.MethodSpec{}, false
	}
}

func (d *decoder) applySignature(method *models.MethodSpec, n *yaml.Node, model, path string) {
	text, ok := d.scalar(n, model, join(path, "signature"))
	if !ok {
		return
	}

	sig, err := d.signatures.Parse(text)
	if err != nil {
		schemaErr := errors.NewSchemaError(model, join(path, "signature"), "invalid signature").
			WithLocation(d.loc(n)).
			WithCause(err)
		var serr *errors.SyntaxError
		if stderrors.As(err, &serr) {
			schemaErr.WithContext("column", serr.Location().Column)
		}
		d.collector.Collect(schemaErr)
		return
	}

	if sig.Name != method.Name {
		d.fail(n, model, join(path, "signature"), fmt.Sprintf("signature names method '%s'", sig.Name))
		return
	}
	method.Params = sig.ModelParams()
	method.Returns = sig.ReturnTypes()
}

func (d *decoder) params(n *yaml.Node, model, path string) []models.Param {
	if n.Kind != yaml.SequenceNode {
		d.fail(n, model, path, "expected a list of [name, type] pairs")
		return nil
	}

	params := make([]models.Param, 0, len(n.Content))
	for i, item := range n.Content {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if item.Kind != yaml.SequenceNode || len(item.Content) != 2 {
			d.fail(item, model, itemPath, "expected a [name, type] pair")
			continue
		}
		paramName, okName := d.scalar(item.Content[0], model, itemPath)
		paramType, okType := d.scalar(item.Content[1], model, itemPath)
		if okName && okType {
			params = append(params, models.Param{Name: paramName, Type: paramType})
		}
	}
	return params
}

// body returns nil for an explicit null so that `body:` with no value
// leaves the method abstract
func (d *decoder) body(n *yaml.Node, model, path string) *string {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return nil
	}
	text, ok := d.scalar(n, model, path)
	if !ok {
		return nil
	}
	return models.Body(text)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
