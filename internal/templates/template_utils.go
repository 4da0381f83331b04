package templates

import (
	"strings"

	"github.com/toyz/weave/internal/models"
)

// TemplateUtils provides the formatting helpers shared by every artifact
type TemplateUtils struct{}

// NewTemplateUtils creates a new template utilities instance
func NewTemplateUtils() *TemplateUtils {
	return &TemplateUtils{}
}

// FormatParams renders a parameter list without the surrounding parentheses
func (tu *TemplateUtils) FormatParams(params []models.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = strings.TrimSpace(p.Name) + " " + strings.TrimSpace(p.Type)
	}
	return strings.Join(parts, ", ")
}

// FormatReturns renders the return clause: a single type stays bare, several
// are parenthesized and comma-joined
func (tu *TemplateUtils) FormatReturns(returns []string) string {
	trimmed := make([]string, len(returns))
	for i, r := range returns {
		trimmed[i] = strings.TrimSpace(r)
	}

	switch len(trimmed) {
	case 0:
		return ""
	case 1:
		return trimmed[0]
	default:
		return "(" + strings.Join(trimmed, ", ") + ")"
	}
}

// FormatSignature renders Name(params) returns
func (tu *TemplateUtils) FormatSignature(method models.MethodSpec) string {
	sig := method.Name + "(" + tu.FormatParams(method.Params) + ")"
	if returns := tu.FormatReturns(method.Returns); returns != "" {
		sig += " " + returns
	}
	return sig
}

// ForwardArgs renders the argument list of a forwarding call: parameter
// names in declared order, with variadic parameters spread
func (tu *TemplateUtils) ForwardArgs(params []models.Param) string {
	args := make([]string, len(params))
	for i, p := range params {
		args[i] = strings.TrimSpace(p.Name)
		if p.IsVariadic() {
			args[i] += "..."
		}
	}
	return strings.Join(args, ", ")
}

// FormatBody re-indents a default body one level under the function brace.
// The result ends in a newline unless the body is empty.
func (tu *TemplateUtils) FormatBody(method models.MethodSpec) string {
	body := SetIndent("\t", method.BodyText())
	if body == "" {
		return ""
	}
	return body + "\n"
}

// ReceiverName picks a receiver identifier that no parameter shadows
func (tu *TemplateUtils) ReceiverName(preferred string, methods []models.MethodSpec) string {
	taken := make(map[string]bool)
	for _, method := range methods {
		for _, p := range method.Params {
			taken[strings.TrimSpace(p.Name)] = true
		}
	}

	candidates := []string{preferred, preferred + "x", "self", "recv"}
	for _, candidate := range candidates {
		if !taken[candidate] {
			return candidate
		}
	}

	name := preferred + "_"
	for taken[name] {
		name += "_"
	}
	return name
}

// DefaultTemplateUtils provides a global instance for convenience
var DefaultTemplateUtils = NewTemplateUtils()
