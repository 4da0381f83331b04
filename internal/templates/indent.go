package templates

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SetIndent re-indents a multi-line snippet. The shortest leading-whitespace
// run among non-blank lines is the common indent; it is replaced by indent at
// the start of every non-blank line. Leading and trailing blank lines are
// dropped, interior blank lines are kept verbatim, and no trailing newline is
// added. A snippet without any non-blank line yields "".
//
// When tabs and spaces are mixed so that the common indent is not a literal
// prefix of some line, that line loses as many leading whitespace characters
// as the common indent is long. This is best effort, not an error.
func SetIndent(indent, snippet string) string {
	lines := strings.Split(snippet, "\n")

	common, ok := commonIndent(lines)
	if !ok {
		return ""
	}

	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}

	out := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		if isBlank(line) {
			out = append(out, line)
			continue
		}
		out = append(out, indent+stripIndent(line, common))
	}

	return strings.Join(out, "\n")
}

// commonIndent returns the shortest leading-whitespace run among non-blank
// lines, measured in characters. ok is false when every line is blank.
func commonIndent(lines []string) (string, bool) {
	var (
		common string
		width  = -1
	)
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		lead := leadingWhitespace(line)
		if n := utf8.RuneCountInString(lead); width < 0 || n < width {
			common, width = lead, n
		}
	}
	return common, width >= 0
}

// stripIndent removes the common indent from the start of line
func stripIndent(line, common string) string {
	if strings.HasPrefix(line, common) {
		return line[len(common):]
	}

	// Mixed indentation: drop the same number of whitespace characters.
	rest := line
	for n := utf8.RuneCountInString(common); n > 0; n-- {
		r, size := utf8.DecodeRuneInString(rest)
		if size == 0 || !unicode.IsSpace(r) {
			break
		}
		rest = rest[size:]
	}
	return rest
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
