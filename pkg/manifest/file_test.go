// Test Type: Unit Test
// Description: Tests for manifest file loading

package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/manifest"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		tomlContent string
		wantErr     errors.ErrorCode
		validate    func(t *testing.T, m *manifest.Manifest)
	}{
		{
			name: "full_manifest",
			tomlContent: `
[flavors."kana/vim-altr"]
constraint = ">= 1.0"

[flavors."thinca/vim-quickrun"]
constraint = "~> 0.5"
groups = ["extras"]

[groups.testing.flavors."kana/vim-vspec"]
constraint = ">= 1.2"
`,
			validate: func(t *testing.T, m *manifest.Manifest) {
				require.Equal(t, 3, m.Len())

				altr, ok := m.Get("https://github.com/kana/vim-altr.git")
				require.True(t, ok)
				assert.Equal(t, ">= 1.0", altr.Constraint.String())
				assert.Equal(t, []string{"default"}, altr.Groups)

				quickrun, ok := m.Get("https://github.com/thinca/vim-quickrun.git")
				require.True(t, ok)
				assert.Equal(t, []string{"extras"}, quickrun.Groups,
					"an explicit group replaces default membership")

				vspec, ok := m.Get("https://github.com/kana/vim-vspec.git")
				require.True(t, ok)
				assert.Equal(t, []string{"testing"}, vspec.Groups)
			},
		},
		{
			name: "missing_constraint_means_any_version",
			tomlContent: `
[flavors."kana/vim-altr"]
`,
			validate: func(t *testing.T, m *manifest.Manifest) {
				f, ok := m.Get("https://github.com/kana/vim-altr.git")
				require.True(t, ok)
				assert.Equal(t, ">= 0", f.Constraint.String())
			},
		},
		{
			name: "deterministic_order_by_name",
			tomlContent: `
[flavors."zz/last"]
[flavors."aa/first"]
[flavors."mm/middle"]
`,
			validate: func(t *testing.T, m *manifest.Manifest) {
				var names []string
				for _, f := range m.Flavors() {
					names = append(names, f.Name)
				}
				assert.Equal(t, []string{"aa/first", "mm/middle", "zz/last"}, names)
			},
		},
		{
			name:        "empty_manifest",
			tomlContent: ``,
			validate: func(t *testing.T, m *manifest.Manifest) {
				assert.Equal(t, 0, m.Len())
			},
		},
		{
			name:        "invalid_toml",
			tomlContent: `[flavors.`,
			wantErr:     errors.ErrManifestParse,
		},
		{
			name: "bad_constraint_in_file",
			tomlContent: `
[flavors."kana/vim-altr"]
constraint = "newest"
`,
			wantErr: errors.ErrMalformedConstraint,
		},
		{
			name: "colliding_directories",
			tomlContent: `
[flavors."kana/vim-altr"]
[flavors."kana_vim-altr"]
`,
			wantErr: errors.ErrSourceCollision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), manifest.DefaultFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.tomlContent), 0644))

			m, err := manifest.Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantErr),
					"want %s, got %v", tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, m)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := manifest.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}
