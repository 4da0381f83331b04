package errors

import (
	"fmt"
	"strings"
)

// WeaveError is implemented by every error weave reports to the user
type WeaveError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies an error for reporting
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// problems in the models documents
	SyntaxErrorCode
	ValidationErrorCode
	SchemaErrorCode

	// problems producing or writing artifacts
	GenerationErrorCode
	FileSystemErrorCode

	// problems with the run itself
	ConfigurationErrorCode
	ServerErrorCode
)

var codeNames = map[ErrorCode][2]string{
	SyntaxErrorCode:        {"SyntaxError", "Syntax Error"},
	ValidationErrorCode:    {"ValidationError", "Validation Error"},
	SchemaErrorCode:        {"SchemaError", "Models Document Error"},
	GenerationErrorCode:    {"GenerationError", "Code Generation Error"},
	FileSystemErrorCode:    {"FileSystemError", "File System Error"},
	ConfigurationErrorCode: {"ConfigurationError", "Configuration Error"},
	ServerErrorCode:        {"ServerError", "Preview Server Error"},
}

// String returns the identifier-style name of the code
func (e ErrorCode) String() string {
	if names, ok := codeNames[e]; ok {
		return names[0]
	}
	return "UnknownError"
}

// Title returns the heading used when the error is reported
func (e ErrorCode) Title() string {
	if names, ok := codeNames[e]; ok {
		return names[1]
	}
	return "Unknown Error"
}

// SourceLocation points into a models document. Line and Column are 1-based;
// zero means unknown.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (s SourceLocation) String() string {
	if s.IsEmpty() {
		return "unknown location"
	}
	file := s.File
	if file == "" {
		file = "<input>"
	}
	switch {
	case s.Line == 0:
		return file
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", file, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", file, s.Line, s.Column)
	}
}

// IsEmpty reports whether the location carries neither a file nor a line
func (s SourceLocation) IsEmpty() bool {
	return s.File == "" && s.Line == 0
}

// BaseError implements WeaveError. The specific error types embed it and
// add the fields their reports need.
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

// Error renders "location: message: cause", leaving out the parts that are
// not set
func (e *BaseError) Error() string {
	var b strings.Builder
	if !e.Loc.IsEmpty() {
		b.WriteString(e.Loc.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *BaseError) ErrorCode() ErrorCode     { return e.Code }
func (e *BaseError) Location() SourceLocation { return e.Loc }
func (e *BaseError) Suggestions() []string    { return e.Hints }
func (e *BaseError) Unwrap() error            { return e.Cause }

// Context returns the context entries; never nil
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return map[string]interface{}{}
	}
	return e.ContextData
}

// Base returns the embedded base error, giving access to the bare message
// of every error type built on BaseError
func (e *BaseError) Base() *BaseError {
	return e
}

func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	return e.WithSuggestions(suggestion)
}

func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates an error with code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an error with code and message caused by cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{Code: code, Message: message, Cause: cause}
}

// MultipleErrors holds every problem found in one pass. It is not a
// WeaveError itself; errors.As reaches the individual errors through Unwrap.
type MultipleErrors struct {
	Errors []WeaveError
}

func (e *MultipleErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	lines := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		lines[i] = fmt.Sprintf("  %d. %s", i+1, err.Error())
	}
	return fmt.Sprintf("multiple errors (%d total):\n%s", len(e.Errors), strings.Join(lines, "\n"))
}

func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Add appends err
func (e *MultipleErrors) Add(err WeaveError) {
	e.Errors = append(e.Errors, err)
}

// Count returns the number of errors held
func (e *MultipleErrors) Count() int {
	return len(e.Errors)
}

// ErrOrNil returns nil when empty, the error itself when there is exactly
// one, and e otherwise
func (e *MultipleErrors) ErrOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	if len(e.Errors) == 1 {
		return e.Errors[0]
	}
	return e
}
