package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// elementIDRegex matches the identifier grammar shared by model elements and
// SysML part names.
var elementIDRegex = regexp.MustCompile(`^\w+$`)

// ValidateElementID validates a model element identifier.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - Maximum length of 256 characters
//   - Word characters only (letters, digits, underscore)
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidModel, "element ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidModel, "element ID too long (max 256 characters)")
	}

	if !elementIDRegex.MatchString(id) {
		return New(ErrCodeInvalidModel, "invalid element ID: %q", id)
	}

	return nil
}

// ValidateBoundaryName validates a system boundary title. Boundary names are
// display text, so spaces are allowed, but control characters and path
// metacharacters are not.
func ValidateBoundaryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidModel, "system boundary name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidModel, "system boundary name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidModel, "system boundary name contains control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidModel, "system boundary name cannot contain path separators")
	}

	return nil
}

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
