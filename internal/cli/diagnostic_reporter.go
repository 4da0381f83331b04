package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/weave/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
	}
}

// SetOutput redirects the reporter
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
}

// ReportWarning prints a single-line warning
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints every problem carried by err, followed by help for each
// distinct error code
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	fmt.Fprintf(r.out, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	problems := flatten(err)
	if len(problems) == 0 {
		r.reportBasicError(err)
		r.printGeneralHelp()
		fmt.Fprintf(r.out, "\n")
		return
	}

	if len(problems) > 1 {
		fmt.Fprintf(r.out, "%s\n\n", errors.Summarize(problems).String())
	}

	seen := make(map[errors.ErrorCode]bool)
	var codes []errors.ErrorCode
	for i, problem := range problems {
		if len(problems) > 1 {
			fmt.Fprintf(r.out, "[%d/%d] ", i+1, len(problems))
		}
		r.reportWeaveError(problem)

		if !seen[problem.ErrorCode()] {
			seen[problem.ErrorCode()] = true
			codes = append(codes, problem.ErrorCode())
		}
	}

	for _, code := range codes {
		r.printAdditionalHelp(code)
	}
	r.printGeneralHelp()
	fmt.Fprintf(r.out, "\n")
}

// flatten expands MultipleErrors and finds the first WeaveError in a plain
// wrapped chain
func flatten(err error) []errors.WeaveError {
	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		var out []errors.WeaveError
		for _, e := range multi.Errors {
			out = append(out, flatten(e)...)
		}
		return out
	}

	var weaveErr errors.WeaveError
	if stderrors.As(err, &weaveErr) {
		return []errors.WeaveError{weaveErr}
	}
	return nil
}

func (r *DiagnosticReporter) reportWeaveError(err errors.WeaveError) {
	r.printErrorHeader(err.ErrorCode())

	fmt.Fprintf(r.out, "Message: %s\n\n", message(err))

	if r.verbose && err.Unwrap() != nil {
		fmt.Fprintf(r.out, "Underlying cause: %s\n\n", err.Unwrap().Error())
	}

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc.String())
	}

	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose {
		r.printErrorChain(err)
	}
}

// message returns the bare message of err, without the location prefix and
// cause suffix Error() adds
func message(err errors.WeaveError) string {
	if b, ok := err.(interface{ Base() *errors.BaseError }); ok {
		return b.Base().Message
	}
	return err.Error()
}

func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	errorMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errorMsg, "yaml"):
		fmt.Fprintf(r.out, "This appears to be a models document issue.\n")
		fmt.Fprintf(r.out, "Common solutions:\n")
		fmt.Fprintf(r.out, "  - Check the YAML syntax of your models file\n")
		fmt.Fprintf(r.out, "  - Ensure the document is a list of models\n\n")
	case strings.Contains(errorMsg, "module"):
		fmt.Fprintf(r.out, "This appears to be a module-related issue.\n")
		fmt.Fprintf(r.out, "Common solutions:\n")
		fmt.Fprintf(r.out, "  - Check your go.mod file\n")
		fmt.Fprintf(r.out, "  - Try specifying -module explicitly\n\n")
	}
}

func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	title := code.Title()
	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

// printContext prints context entries with the well-known keys first and the
// rest sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	importantKeys := []string{"model", "method", "field", "artifact", "path"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), value)
			printed[key] = true
		}
	}

	var rest []string
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.out, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.SyntaxErrorCode:
		fmt.Fprintf(r.out, "Signature Syntax Help:\n")
		fmt.Fprintf(r.out, "  - Signatures look like Name(param Type, ...) Result\n")
		fmt.Fprintf(r.out, "  - Several results must be parenthesized: (Type, error)\n")
		fmt.Fprintf(r.out, "  - Only the last parameter may be variadic\n\n")

	case errors.SchemaErrorCode:
		fmt.Fprintf(r.out, "Models Document Help:\n")
		fmt.Fprintf(r.out, "  - The document is a list of models with name, package, imports and methods\n")
		fmt.Fprintf(r.out, "  - A method is a mapping, a [params, returns, body] list or a signature string\n\n")

	case errors.ValidationErrorCode:
		fmt.Fprintf(r.out, "Model Requirements:\n")
		fmt.Fprintf(r.out, "  - Model, package, method and parameter names must be Go identifiers\n")
		fmt.Fprintf(r.out, "  - Every method declares at least one return type\n")
		fmt.Fprintf(r.out, "  - Two models may not generate the same files\n\n")

	case errors.ConfigurationErrorCode:
		fmt.Fprintf(r.out, "Configuration Help:\n")
		fmt.Fprintf(r.out, "  - Check %s for unknown or misspelled keys\n", DefaultConfigFile)
		fmt.Fprintf(r.out, "  - Command line flags override the configuration file\n\n")
	}
}

func (r *DiagnosticReporter) printGeneralHelp() {
	fmt.Fprintf(r.out, "For more help:\n")
	fmt.Fprintf(r.out, "  - Run with -verbose for more detailed output\n")
	fmt.Fprintf(r.out, "  - Run weave -h to list every flag\n")
}

func (r *DiagnosticReporter) printErrorChain(err errors.WeaveError) {
	fmt.Fprintf(r.out, "Verbose Debug Information:\n")
	fmt.Fprintf(r.out, "  Error Code: %s (%d)\n", err.ErrorCode(), int(err.ErrorCode()))

	cause := err.Unwrap()
	if cause != nil {
		fmt.Fprintf(r.out, "  Error Chain:\n")
		level := 1
		for cause != nil {
			fmt.Fprintf(r.out, "    %d. %s\n", level, cause.Error())
			cause = stderrors.Unwrap(cause)
			level++
		}
	}

	fmt.Fprintf(r.out, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.out, "[DEBUG] "+format+"\n", args...)
	}
}
