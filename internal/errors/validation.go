package errors

import (
	"fmt"
	"strings"
)

// ValidationError reports a decoded model that breaks a rule of the schema
type ValidationError struct {
	*BaseError
	Model      string
	Method     string // empty for model-level fields
	Field      string
	Value      interface{}
	Constraint string
}

// NewValidationError creates a validation error for field of model (and
// method, when the rule is about one)
func NewValidationError(model, method, field string, value interface{}, constraint string) *ValidationError {
	return &ValidationError{
		BaseError:  New(ValidationErrorCode, validationMessage(model, method, field, constraint)),
		Model:      model,
		Method:     method,
		Field:      field,
		Value:      value,
		Constraint: constraint,
	}
}

func validationMessage(model, method, field, constraint string) string {
	subject := "model <unnamed>"
	if model != "" {
		subject = fmt.Sprintf("model '%s'", model)
	}
	if method != "" {
		subject += fmt.Sprintf(", method '%s'", method)
	}
	return fmt.Sprintf("%s: invalid %s: %s", subject, field, constraint)
}

func (e *ValidationError) WithLocation(loc SourceLocation) *ValidationError {
	e.BaseError.WithLocation(loc)
	return e
}

func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// SyntaxError reports text that does not parse: a method signature or a
// whole models document
type SyntaxError struct {
	*BaseError
	Token  string // offending token, empty at end of input
	Offset int    // byte offset into the parsed text
}

// NewSyntaxError creates a syntax error, naming token in the message when
// one is known
func NewSyntaxError(message, token string, offset int) *SyntaxError {
	if token != "" {
		message = fmt.Sprintf("%s (near token '%s')", message, token)
	}
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
		Token:     token,
		Offset:    offset,
	}
}

func (e *SyntaxError) WithLocation(loc SourceLocation) *SyntaxError {
	e.BaseError.WithLocation(loc)
	return e
}

func (e *SyntaxError) WithCause(cause error) *SyntaxError {
	e.BaseError.WithCause(cause)
	return e
}

func (e *SyntaxError) WithSuggestion(suggestion string) *SyntaxError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// SchemaError reports a models document node of the wrong shape
type SchemaError struct {
	*BaseError
	Model string // model being decoded, if known
	Path  string // document path of the node, e.g. "methods.Stat.params"
}

// NewSchemaError creates a schema error; the message is prefixed with the
// model and path when they are known
func NewSchemaError(model, path, message string) *SchemaError {
	parts := make([]string, 0, 3)
	if model != "" {
		parts = append(parts, fmt.Sprintf("model '%s'", model))
	}
	if path != "" {
		parts = append(parts, path)
	}
	parts = append(parts, message)

	return &SchemaError{
		BaseError: New(SchemaErrorCode, strings.Join(parts, ": ")),
		Model:     model,
		Path:      path,
	}
}

func (e *SchemaError) WithLocation(loc SourceLocation) *SchemaError {
	e.BaseError.WithLocation(loc)
	return e
}

func (e *SchemaError) WithCause(cause error) *SchemaError {
	e.BaseError.WithCause(cause)
	return e
}
