package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  SourceLocation
		want string
	}{
		{"empty", SourceLocation{}, "unknown location"},
		{"file only", SourceLocation{File: "models.yaml"}, "models.yaml"},
		{"file and line", SourceLocation{File: "models.yaml", Line: 4}, "models.yaml:4"},
		{"full", SourceLocation{File: "models.yaml", Line: 4, Column: 7}, "models.yaml:4:7"},
		{"line without file", SourceLocation{Line: 2, Column: 3}, "<input>:2:3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.String())
		})
	}
}

func TestBaseError_ErrorIncludesLocationAndCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(FileSystemErrorCode, "failed to write", cause).
		WithLocation(SourceLocation{File: "fao/FAO.go"})

	assert.Equal(t, "fao/FAO.go: failed to write: disk full", err.Error())
	assert.Equal(t, FileSystemErrorCode, err.ErrorCode())
	assert.True(t, stderrors.Is(err, cause))
}

func TestNewValidationError_Message(t *testing.T) {
	err := NewValidationError("FAO", "Stat", "returns", nil, "at least one return type is required")

	assert.Equal(t, "model 'FAO', method 'Stat': invalid returns: at least one return type is required", err.Error())
	assert.Equal(t, ValidationErrorCode, err.ErrorCode())
	assert.Equal(t, "FAO", err.Model)
	assert.Equal(t, "Stat", err.Method)

	modelLevel := NewValidationError("", "", "name", "", "must be a Go identifier")
	assert.Equal(t, "model <unnamed>: invalid name: must be a Go identifier", modelLevel.Error())
}

func TestCollector(t *testing.T) {
	t.Run("empty collector yields nil", func(t *testing.T) {
		c := NewCollector(0)
		assert.NoError(t, c.ToError())
	})

	t.Run("single error is returned unwrapped", func(t *testing.T) {
		c := NewCollector(0)
		c.AddValidation(SourceLocation{}, "FAO", "Stat", "returns", nil, "empty")

		err := c.ToError()
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, stderrors.As(err, &verr))
		assert.Equal(t, "Stat", verr.Method)
		assert.NotEmpty(t, verr.Suggestions())
	})

	t.Run("multiple errors are all reachable", func(t *testing.T) {
		c := NewCollector(0)
		c.AddValidation(SourceLocation{}, "FAO", "Stat", "returns", nil, "empty")
		c.Collect(NewSchemaError("FAO", "methods", "expected a mapping"))
		c.Collect(fmt.Errorf("plain"))

		err := c.ToError()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple errors (3 total)")

		var serr *SchemaError
		assert.True(t, stderrors.As(err, &serr))
		assert.Equal(t, UnknownErrorCode, c.Errors[2].ErrorCode())
	})

	t.Run("limit is honoured", func(t *testing.T) {
		c := NewCollector(2)
		for i := 0; i < 5; i++ {
			c.AddValidation(SourceLocation{}, "FAO", fmt.Sprintf("M%d", i), "returns", nil, "empty")
		}
		assert.Equal(t, 2, c.Count())
	})
}

func TestSummarize(t *testing.T) {
	errs := []WeaveError{
		NewValidationError("A", "", "name", "", "bad"),
		NewValidationError("B", "", "name", "", "bad"),
		NewSyntaxError("unexpected token", ")", 4),
		NewSchemaError("", "", "expected a sequence"),
		New(GenerationErrorCode, "boom"),
	}

	summary := Summarize(errs)
	assert.Equal(t, 5, summary.TotalCount)
	assert.Len(t, summary.ValidationErrors, 2)
	assert.Equal(t,
		"Found 5 total error(s): 1 syntax error(s), 2 validation error(s), 1 schema error(s), 1 other error(s)",
		summary.String())
	assert.Equal(t, "No errors found", Summarize(nil).String())
}

func TestWrapGenerateError(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := WrapGenerateError("base", "fao/BaseFAO.go", cause)

	assert.Equal(t, "failed to generate fao/BaseFAO.go: permission denied", err.Error())
	assert.Equal(t, "base", err.Artifact)
	assert.True(t, stderrors.Is(err, cause))
}
