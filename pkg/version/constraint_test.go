package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/version"
)

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantOp   version.Operator
		wantBase string
	}{
		{
			name:     "at_least",
			input:    ">= 1.2.0",
			wantOp:   version.OpAtLeast,
			wantBase: "1.2.0",
		},
		{
			name:     "compatible",
			input:    "~> 1.2",
			wantOp:   version.OpCompatible,
			wantBase: "1.2",
		},
		{
			name:     "surrounding_space",
			input:    " >= 0.5 ",
			wantOp:   version.OpAtLeast,
			wantBase: "0.5",
		},
		{
			name:    "garbage",
			input:   "garbage",
			wantErr: true,
		},
		{
			name:    "unknown_operator",
			input:   "== 1.2",
			wantErr: true,
		},
		{
			name:    "missing_version",
			input:   ">=",
			wantErr: true,
		},
		{
			name:    "missing_space",
			input:   ">=1.2",
			wantErr: true,
		},
		{
			name:    "too_many_tokens",
			input:   ">= 1.2 extra",
			wantErr: true,
		},
		{
			name:    "invalid_version_token",
			input:   ">= latest",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := version.ParseConstraint(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedConstraint),
					"want MALFORMED_CONSTRAINT, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOp, c.Operator())
			assert.Equal(t, tt.wantBase, c.Base().String())
		})
	}
}

func TestSatisfiedBy(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		candidate  string
		want       bool
	}{
		{"at_least_above", ">= 1.2", "1.3.0", true},
		{"at_least_equal", ">= 1.2", "1.2", true},
		{"at_least_below", ">= 1.2", "1.1.9", false},

		{"compatible_within", "~> 1.2", "1.2.5", true},
		{"compatible_at_base", "~> 1.2", "1.2", true},
		{"compatible_at_bound", "~> 1.2", "1.3.0", false},
		{"compatible_below", "~> 1.2", "1.1.9", false},

		{"compatible_patch_within", "~> 1.2.3", "1.2.3", true},
		{"compatible_patch_at_bound", "~> 1.2.3", "1.2.4", false},

		{"compatible_major_within", "~> 1", "1.9.9", true},
		{"compatible_major_at_bound", "~> 1", "2.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := version.MustParseConstraint(tt.constraint)
			v := version.MustParse(tt.candidate)
			assert.Equal(t, tt.want, c.SatisfiedBy(v),
				"%s satisfied by %s", tt.constraint, tt.candidate)
		})
	}
}

func TestBestMatch(t *testing.T) {
	candidates := []version.Version{
		version.MustParse("1.0"),
		version.MustParse("1.2.3"),
		version.MustParse("1.2.9"),
		version.MustParse("1.3.0"),
	}

	tests := []struct {
		name       string
		constraint string
		wantFound  bool
		want       string
	}{
		{
			name:       "compatible_picks_max_within_range",
			constraint: "~> 1.2",
			wantFound:  true,
			want:       "1.2.9",
		},
		{
			name:       "at_least_picks_overall_max",
			constraint: ">= 1.2.3",
			wantFound:  true,
			want:       "1.3.0",
		},
		{
			name:       "nothing_satisfies",
			constraint: ">= 2.0",
			wantFound:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := version.MustParseConstraint(tt.constraint)
			got, found := c.BestMatch(candidates)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}

	t.Run("empty_candidates", func(t *testing.T) {
		c := version.MustParseConstraint(">= 0")
		_, found := c.BestMatch(nil)
		assert.False(t, found)
	})
}

func TestConstraintEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", ">= 1.2", ">= 1.2", true},
		{"different_operator", ">= 1.2", "~> 1.2", false},
		{"different_base", ">= 1.2", ">= 1.3", false},
		{"spelling_counts", ">= 1.2", ">= 1.2.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := version.MustParseConstraint(tt.a)
			b := version.MustParseConstraint(tt.b)
			assert.Equal(t, tt.want, a.Equal(b))
		})
	}
}

func TestConstraintString(t *testing.T) {
	for _, text := range []string{">= 1.2.0", "~> 0.5"} {
		c := version.MustParseConstraint(text)
		assert.Equal(t, text, c.String())

		// Canonical form reparses to an equal constraint.
		again := version.MustParseConstraint(c.String())
		assert.True(t, c.Equal(again))
	}
}
