package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/flavor/pkg/errors"
)

// ValidatePath rejects paths no filesystem call should ever see:
// empty, containing null bytes, or absurdly long.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Common filesystem limit.
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// SanitizePath expands a leading ~ and cleans the path.
func SanitizePath(path string) string {
	path = expandHome(path)

	cleaned := filepath.Clean(path)
	if cleaned == "" {
		return "."
	}

	return cleaned
}
