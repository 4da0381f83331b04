package errors

import "fmt"

// GenerationError represents an error while producing or persisting an artifact
type GenerationError struct {
	*BaseError
	Artifact   string // artifact kind (interface, base, proxy)
	TargetFile string // output path the artifact was meant for
}

// WrapGenerateError wraps an error with a "failed to generate" message
func WrapGenerateError(artifact, target string, cause error) *GenerationError {
	return &GenerationError{
		BaseError:  Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate %s", target), cause),
		Artifact:   artifact,
		TargetFile: target,
	}
}

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, cause error) *SyntaxError {
	return &SyntaxError{
		BaseError: Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", item), cause),
	}
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapServerError wraps preview server errors
func WrapServerError(server, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s %s preview server", operation, server)
	return Wrap(ServerErrorCode, message, cause).
		WithContext("server", server)
}
