package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toyz/weave/internal/errors"
	"github.com/toyz/weave/internal/utils"
)

var (
	identifierRule = utils.IsValidGoIdentifier("identifier")
	typeRule       = utils.NotEmpty("type")
	kindRule       = utils.IsOneOf("kind", ArtifactKinds...)
	importRule     = utils.NewValidatorChain(
		utils.NotEmpty("path"),
		utils.IsValidImportPath("path"),
	)
	importsRule = utils.Unique[string]("imports")
)

// Validate checks the model against the schema and returns every violation
// found, or nil. A model that fails validation must not be emitted.
func (m Model) Validate() error {
	c := errors.NewCollector(0)
	m.validateInto(c)
	return c.ToError()
}

func (m Model) validateInto(c *errors.Collector) {
	if err := identifierRule(m.Name); err != nil {
		c.AddValidation(m.Loc, m.Name, "", "name", m.Name, ruleMessage(err))
	}
	if err := identifierRule(m.Package); err != nil {
		c.AddValidation(m.Loc, m.Name, "", "package", m.Package, ruleMessage(err))
	}

	for _, kind := range m.importKinds() {
		paths := m.Imports[kind]
		field := fmt.Sprintf("imports.%s", kind)
		if err := kindRule(kind); err != nil {
			c.AddValidation(m.Loc, m.Name, "", field, string(kind), "unknown artifact kind, "+ruleMessage(err))
			continue
		}
		for _, path := range paths {
			if err := importRule.Validate(path); err != nil {
				c.AddValidation(m.Loc, m.Name, "", field, path, ruleMessage(err))
			}
		}
		if err := importsRule(paths); err != nil {
			c.AddValidation(m.Loc, m.Name, "", field, paths, ruleMessage(err))
		}
	}

	seen := make(map[string]bool, len(m.Methods))
	reserved := m.reservedNames()
	for _, method := range m.Methods {
		m.validateMethod(c, method, seen[method.Name], reserved)
		seen[method.Name] = true
	}
}

func (m Model) validateMethod(c *errors.Collector, method MethodSpec, duplicate bool, reserved map[string]bool) {
	loc := method.Loc
	if loc.IsEmpty() {
		loc = m.Loc
	}
	add := func(field string, value interface{}, constraint string) {
		c.AddValidation(loc, m.Name, method.Name, field, value, constraint)
	}

	if err := identifierRule(method.Name); err != nil {
		add("method", method.Name, ruleMessage(err))
	} else if duplicate {
		add("method", method.Name, "duplicate method name")
	} else if reserved[method.Name] {
		add("method", method.Name, "collides with a field of the generated base or proxy")
	}

	params := make(map[string]bool, len(method.Params))
	for i, p := range method.Params {
		field := fmt.Sprintf("param[%d]", i)
		switch err := identifierRule(p.Name); {
		case err != nil:
			add(field, p.Name, ruleMessage(err))
		case p.Name == "_":
			add(field, p.Name, "blank parameters cannot be forwarded by the proxy")
		case params[p.Name]:
			add(field, p.Name, fmt.Sprintf("duplicate parameter name '%s'", p.Name))
		case p.Name == BaseReceiver && method.HasBody():
			add(field, p.Name, fmt.Sprintf("'%s' is the receiver the default body calls through; rename the parameter", BaseReceiver))
		}
		params[p.Name] = true

		if err := typeRule(p.Type); err != nil {
			add(field, p.Type, fmt.Sprintf("parameter '%s' has no type", p.Name))
		}
		if p.IsVariadic() && i != len(method.Params)-1 {
			add(field, p.Type, "only the final parameter may be variadic")
		}
	}

	if len(method.Returns) == 0 {
		add("returns", method.Returns, "at least one return type is required")
	}
	for i, r := range method.Returns {
		if strings.TrimSpace(r) == "" {
			add("returns", method.Returns, fmt.Sprintf("return type %d is empty", i))
		}
	}
}

// reservedNames are the field names of the generated structs; a method with
// one of these names would shadow the field it needs
func (m Model) reservedNames() map[string]bool {
	return map[string]bool{
		"Delegate":          true,
		m.InterfaceName():   true,
		m.ProxyParamsName(): true,
	}
}

// importKinds returns the declared import kinds, known kinds first in
// emission order, then unknown ones sorted
func (m Model) importKinds() []ArtifactKind {
	var kinds, unknown []ArtifactKind
	for _, kind := range ArtifactKinds {
		if _, ok := m.Imports[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	for kind := range m.Imports {
		if !kind.IsValid() {
			unknown = append(unknown, kind)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return append(kinds, unknown...)
}

// ValidateAll checks every model, and that no two models in a package declare
// the same identifier. Artifact files are named after the identifiers, so
// this also keeps every output path unique. Violations across all models are
// reported together.
func ValidateAll(list []Model) error {
	c := errors.NewCollector(0)
	owners := make(map[string]string)

	for _, m := range list {
		m.validateInto(c)

		if name, owner := firstCollision(m, owners); name != "" {
			c.Collect(errors.NewValidationError(m.Name, "", "name", m.Name,
				fmt.Sprintf("%s.%s is already declared by model '%s'", m.Package, name, owner)).
				WithLocation(m.Loc).
				WithSuggestion("Rename one of the models or move it to another package"))
			continue
		}
		for _, name := range m.GeneratedNames() {
			owners[m.Package+"."+name] = m.Name
		}
	}

	return c.ToError()
}

// firstCollision returns the first identifier of m already declared by
// another model of the same package, and that model's name
func firstCollision(m Model, owners map[string]string) (string, string) {
	for _, name := range m.GeneratedNames() {
		if owner, taken := owners[m.Package+"."+name]; taken {
			return name, owner
		}
	}
	return "", ""
}

// ruleMessage strips the field prefix from utils validation errors so the
// schema error reads naturally
func ruleMessage(err error) string {
	if verr, ok := err.(utils.ValidationError); ok {
		return verr.Message
	}
	return err.Error()
}
