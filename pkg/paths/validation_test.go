// Test Type: Unit Test
// Description: Path validation and sanitization helpers

package paths_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/paths"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "valid_absolute", path: "/home/user/.vim"},
		{name: "valid_relative", path: "Flavorfile.toml"},
		{name: "empty", path: "", wantErr: true},
		{name: "null_byte", path: "bad\x00path", wantErr: true},
		{name: "too_long", path: "/" + strings.Repeat("a", 4100), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := paths.ValidatePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "x"), paths.SanitizePath("~/x"))
	assert.Equal(t, filepath.Clean("a/c"), paths.SanitizePath("a//b/../c"))
	assert.Equal(t, ".", paths.SanitizePath("."))
}
