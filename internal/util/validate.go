package util

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation failure for a specific field.
type ValidationError struct {
	Field   string `json:"field"`   // Field that failed validation
	Value   any    `json:"value"`   // Value that was provided
	Message string `json:"message"` // Human-readable error message
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// RemotePrefix reports whether the path starts with a URL-style scheme prefix
// (e.g. "gs://", "s3://", "hdfs://") and returns that prefix. Local
// filesystem paths never carry a scheme, so any well-formed "scheme://"
// prefix marks the path as remote.
func RemotePrefix(path string) (string, bool) {
	i := strings.Index(path, "://")
	if i <= 0 {
		return "", false
	}
	scheme := path[:i]
	for j, r := range scheme {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case j > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return "", false
		}
	}
	return scheme + "://", true
}

// ValidateKey checks that a run or artifact identifier is usable as a single
// path element: non-empty, no separators, no traversal, and not dot-prefixed
// (dot-prefixed names are reserved for store internals such as metadata
// directories and in-flight temp files).
func ValidateKey(field, value string) error {
	switch {
	case value == "":
		return &ValidationError{Field: field, Value: value, Message: "must not be empty"}
	case value == "." || value == "..":
		return &ValidationError{Field: field, Value: value, Message: "must not be a relative path element"}
	case strings.ContainsAny(value, `/\`):
		return &ValidationError{Field: field, Value: value, Message: "must not contain path separators"}
	case strings.HasPrefix(value, "."):
		return &ValidationError{Field: field, Value: value, Message: "must not start with '.'"}
	case strings.ContainsRune(value, 0):
		return &ValidationError{Field: field, Value: value, Message: "must not contain NUL bytes"}
	}
	return nil
}
