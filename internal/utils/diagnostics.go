package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// Stat is one line of a run summary
type Stat struct {
	Label string
	Value interface{}
}

// DiagnosticSystem provides structured, user-friendly output
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	indent    int
}

// NewDiagnosticSystem creates a new diagnostic system
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= DiagnosticVerbose,
		output:    os.Stdout,
		errorOut:  os.Stderr,
	}
}

// SetOutput redirects regular and error output. Colors and timestamps are
// turned off so the output can be compared in tests.
func (d *DiagnosticSystem) SetOutput(out, errOut io.Writer) {
	d.output = out
	d.errorOut = errOut
	d.useColors = false
	d.showTime = false
}

// Level returns the configured level
func (d *DiagnosticSystem) Level() DiagnosticLevel {
	return d.level
}

// Error outputs error messages (always shown unless silent)
func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	if d.level >= DiagnosticError {
		d.writeMessage(d.errorOut, "ERROR", color.FgRed, format, args...)
	}
}

// Warn outputs warning messages
func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	if d.level >= DiagnosticWarn {
		d.writeMessage(d.output, "WARN", color.FgYellow, format, args...)
	}
}

// Info outputs informational messages
func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "INFO", color.FgBlue, format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	if d.level >= DiagnosticVerbose {
		d.writeMessage(d.output, "VERBOSE", color.FgHiBlack, format, args...)
	}
}

// Debug outputs debug messages (highest verbosity)
func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	if d.level >= DiagnosticDebug {
		d.writeMessage(d.output, "DEBUG", color.FgMagenta, format, args...)
	}
}

// Header outputs the main weave header
func (d *DiagnosticSystem) Header(message string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s\n", d.paint(color.FgCyan, "weave: "+message))
	}
}

// PhaseHeader outputs a phase header
func (d *DiagnosticSystem) PhaseHeader(phase string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s\n", d.paint(color.FgBlue, phase+":"))
	}
}

// PhaseItem outputs a completed step with a checkmark
func (d *DiagnosticSystem) PhaseItem(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s%s %s\n", d.getIndent(), d.paint(color.FgGreen, "✓"), fmt.Sprintf(format, args...))
	}
}

// FileWritten reports a file that was written to disk
func (d *DiagnosticSystem) FileWritten(path string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s%s %s\n", d.getIndent(), d.paint(color.FgMagenta, "✏"), path)
	}
}

// List outputs a bulleted list item
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s- %s\n", d.getIndent(), fmt.Sprintf(format, args...))
	}
}

// Indent increases the indentation level
func (d *DiagnosticSystem) Indent() {
	d.indent++
}

// Unindent decreases the indentation level
func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Summary outputs a final summary, one line per stat in the given order
func (d *DiagnosticSystem) Summary(title string, stats []Stat) {
	if d.level < DiagnosticInfo {
		return
	}

	fmt.Fprintf(d.output, "\n%s\n", title)
	for _, s := range stats {
		fmt.Fprintf(d.output, "   %s: %v\n", s.Label, s.Value)
	}
	fmt.Fprintln(d.output)
}

// Complete outputs the completion message
func (d *DiagnosticSystem) Complete(message string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s\n", d.paint(color.FgGreen, "weave: "+message))
	}
}

func (d *DiagnosticSystem) writeMessage(writer io.Writer, level string, attr color.Attribute, format string, args ...interface{}) {
	var output strings.Builder
	output.WriteString(d.getIndent())

	if d.showTime {
		output.WriteString(time.Now().Format("15:04:05 "))
	}

	output.WriteString(d.paint(attr, "["+level+"]"))
	output.WriteString(" ")
	output.WriteString(fmt.Sprintf(format, args...))
	output.WriteString("\n")

	fmt.Fprint(writer, output.String())
}

// paint colors text when colors are enabled for this system, regardless of
// the library's global terminal detection
func (d *DiagnosticSystem) paint(attr color.Attribute, text string) string {
	if !d.useColors {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}

func (d *DiagnosticSystem) getIndent() string {
	return strings.Repeat("  ", d.indent)
}

func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
