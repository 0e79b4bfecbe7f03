package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// nameRegex matches node and port names: an identifier that HCL expressions
// can reference as a variable.
var nameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateName validates a node or port name used in graph definitions.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
//   - Must start with a letter or underscore, followed by letters, digits,
//     underscores or dashes
//
// kind is used only in the error message (e.g. "node", "port").
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "%s name cannot be empty", kind)
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "%s name too long (max 128 characters)", kind)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "%s name contains invalid control characters", kind)
		}
	}

	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid %s name: %q", kind, name)
	}

	return nil
}

// SplitPortRef splits a "node.port" reference into its two names and
// validates both.
func SplitPortRef(ref string) (node, port string, err error) {
	node, port, ok := strings.Cut(ref, ".")
	if !ok {
		return "", "", New(ErrCodeInvalidInput, "port reference %q must have the form node.port", ref)
	}
	if err := ValidateName("node", node); err != nil {
		return "", "", err
	}
	if err := ValidateName("port", port); err != nil {
		return "", "", err
	}
	return node, port, nil
}

// ValidatePath validates a graph file path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
