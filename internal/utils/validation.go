package utils

import (
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/mod/module"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Validator represents a validation function
type Validator[T any] func(T) error

// ValidatorChain allows chaining multiple validators
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add adds a validator to the chain
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain
func (vc *ValidatorChain[T]) Validate(value T) error {
	for _, validator := range vc.validators {
		if err := validator(value); err != nil {
			return err
		}
	}
	return nil
}

// NotEmpty validates that a string is not empty
func NotEmpty(field string) Validator[string] {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: "cannot be empty",
			}
		}
		return nil
	}
}

// IsValidGoIdentifier validates that a string is a valid Go identifier
func IsValidGoIdentifier(field string) Validator[string] {
	return func(value string) error {
		if value == "" {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: "cannot be empty",
			}
		}

		if !token.IsIdentifier(value) {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: "must be a valid Go identifier",
			}
		}

		return nil
	}
}

// IsValidImportPath validates that a string can appear in a Go import declaration
func IsValidImportPath(field string) Validator[string] {
	return func(value string) error {
		if err := module.CheckImportPath(value); err != nil {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: fmt.Sprintf("must be a valid import path (%v)", err),
			}
		}
		return nil
	}
}

// IsOneOf validates that a value is one of the allowed values
func IsOneOf[T comparable](field string, allowed ...T) Validator[T] {
	return func(value T) error {
		for _, allowedValue := range allowed {
			if value == allowedValue {
				return nil
			}
		}

		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("must be one of: %v", allowed),
		}
	}
}

// SliceNotEmpty validates that a slice is not empty
func SliceNotEmpty[T any](field string) Validator[[]T] {
	return func(value []T) error {
		if len(value) == 0 {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: "cannot be empty",
			}
		}
		return nil
	}
}

// ValidateEach validates each item in a slice using the provided validator
func ValidateEach[T any](field string, itemValidator Validator[T]) Validator[[]T] {
	return func(value []T) error {
		for i, item := range value {
			if err := itemValidator(item); err != nil {
				return ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, i),
					Value:   item,
					Message: validationMessage(err),
				}
			}
		}
		return nil
	}
}

// Unique validates that no value appears twice in a slice
func Unique[T comparable](field string) Validator[[]T] {
	return func(value []T) error {
		seen := make(map[T]int, len(value))
		for i, item := range value {
			if first, ok := seen[item]; ok {
				return ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, i),
					Value:   item,
					Message: fmt.Sprintf("duplicates %s[%d]", field, first),
				}
			}
			seen[item] = i
		}
		return nil
	}
}

// Custom validates using a custom function
func Custom[T any](field string, message string, validatorFunc func(T) bool) Validator[T] {
	return func(value T) error {
		if !validatorFunc(value) {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: message,
			}
		}
		return nil
	}
}

// ValidateListenAddr validates a host:port listen address
func ValidateListenAddr(field string) Validator[string] {
	return NewValidatorChain(
		NotEmpty(field),
		Custom(field, "must be in host:port form", func(addr string) bool {
			return strings.Contains(addr, ":")
		}),
	).Validate
}

// validationMessage returns the bare message of a ValidationError so nested
// validators do not repeat the field prefix
func validationMessage(err error) string {
	if verr, ok := err.(ValidationError); ok {
		return verr.Message
	}
	return err.Error()
}
