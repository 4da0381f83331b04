package errors

import (
	"fmt"
	"strings"
)

// Collector gathers the errors found while checking a models document so
// they can be reported together instead of one run per mistake
type Collector struct {
	*MultipleErrors
	maxErrors int
}

// NewCollector creates a new error collector
func NewCollector(maxErrors int) *Collector {
	if maxErrors <= 0 {
		maxErrors = 100
	}

	return &Collector{
		MultipleErrors: &MultipleErrors{},
		maxErrors:      maxErrors,
	}
}

// Collect adds err when it is a WeaveError, wrapping plain errors as unknown
func (c *Collector) Collect(err error) {
	if err == nil || c.Count() >= c.maxErrors {
		return
	}

	switch e := err.(type) {
	case *MultipleErrors:
		for _, inner := range e.Errors {
			c.Collect(inner)
		}
	case WeaveError:
		c.Add(e)
	default:
		c.Add(Wrap(UnknownErrorCode, "unexpected error", err))
	}
}

// AddValidation records a schema violation at loc, with a hint for the
// field when one is known
func (c *Collector) AddValidation(loc SourceLocation, model, method, field string, value interface{}, constraint string) {
	if c.Count() >= c.maxErrors {
		return
	}

	err := NewValidationError(model, method, field, value, constraint).WithLocation(loc)
	if hint := validationSuggestion(field); hint != "" {
		err.WithSuggestion(hint)
	}
	c.Add(err)
}

// ToError returns the collected errors as a single error
func (c *Collector) ToError() error {
	return c.ErrOrNil()
}

// Summary groups collected errors by kind for reporting
type Summary struct {
	SyntaxErrors     []WeaveError
	ValidationErrors []WeaveError
	SchemaErrors     []WeaveError
	OtherErrors      []WeaveError
	TotalCount       int
}

// Summarize creates an error summary from a collection of errors
func Summarize(errs []WeaveError) Summary {
	summary := Summary{
		TotalCount: len(errs),
	}

	for _, err := range errs {
		switch err.ErrorCode() {
		case SyntaxErrorCode:
			summary.SyntaxErrors = append(summary.SyntaxErrors, err)
		case ValidationErrorCode:
			summary.ValidationErrors = append(summary.ValidationErrors, err)
		case SchemaErrorCode:
			summary.SchemaErrors = append(summary.SchemaErrors, err)
		default:
			summary.OtherErrors = append(summary.OtherErrors, err)
		}
	}

	return summary
}

// String returns a formatted summary of errors
func (s Summary) String() string {
	if s.TotalCount == 0 {
		return "No errors found"
	}

	var parts []string
	if len(s.SyntaxErrors) > 0 {
		parts = append(parts, fmt.Sprintf("%d syntax error(s)", len(s.SyntaxErrors)))
	}
	if len(s.ValidationErrors) > 0 {
		parts = append(parts, fmt.Sprintf("%d validation error(s)", len(s.ValidationErrors)))
	}
	if len(s.SchemaErrors) > 0 {
		parts = append(parts, fmt.Sprintf("%d schema error(s)", len(s.SchemaErrors)))
	}
	if len(s.OtherErrors) > 0 {
		parts = append(parts, fmt.Sprintf("%d other error(s)", len(s.OtherErrors)))
	}

	return fmt.Sprintf("Found %d total error(s): %s", s.TotalCount, strings.Join(parts, ", "))
}

func validationSuggestion(field string) string {
	switch {
	case field == "name" || field == "package":
		return "Use a Go identifier: a letter or underscore followed by letters, digits or underscores"
	case field == "returns":
		return "Declare at least one return type, usually error"
	case strings.HasPrefix(field, "param"):
		return "Write each parameter as a [name, type] pair"
	case strings.HasPrefix(field, "imports"):
		return "Import kinds are interface, base and proxy; list each path once"
	case field == "method":
		return "Method names must be unique Go identifiers within a model"
	}
	return ""
}
