package templates

import (
	"fmt"
	"strings"

	"github.com/toyz/weave/internal/models"
)

// ImportBlock renders the parenthesized import block for paths, one path per
// line in the given order, followed by a blank line. No paths yields "".
func ImportBlock(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("import (\n")
	for _, path := range paths {
		builder.WriteString(fmt.Sprintf("\t%q\n", path))
	}
	builder.WriteString(")\n\n")

	return builder.String()
}

// ImportsFor renders the import block a model declares for kind
func ImportsFor(m models.Model, kind models.ArtifactKind) string {
	return ImportBlock(m.Imports.For(kind))
}
