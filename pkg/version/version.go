// Package version implements plugin version parsing, ordering, and the
// constraint expressions used in flavor manifests (">= X" and "~> X").
package version

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/arthur-debert/flavor/pkg/errors"
)

// Version is a concrete plugin version, normally parsed from a repository
// tag. The original token is preserved so lock files and reports show
// exactly what the repository published ("1.2" stays "1.2", not "1.2.0").
type Version struct {
	sem      *semver.Version
	original string
}

// Parse parses a version token. A leading "v" is tolerated, as many
// repositories tag releases "v1.2.3".
func Parse(text string) (Version, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Version{}, errors.New(errors.ErrInvalidInput, "empty version")
	}

	sv, err := semver.NewVersion(strings.TrimPrefix(trimmed, "v"))
	if err != nil {
		return Version{}, errors.Wrapf(err, errors.ErrInvalidInput, "invalid version %q", text)
	}

	return Version{sem: sv, original: trimmed}, nil
}

// MustParse is Parse for known-good literals. It panics on error.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the original token the version was parsed from.
func (v Version) String() string {
	return v.original
}

// IsZero reports whether v is the zero Version (never parsed).
func (v Version) IsZero() bool {
	return v.sem == nil
}

// Compare returns -1, 0, or 1 if v is less than, equal to, or greater
// than other. Prerelease versions order below their release per semver.
func (v Version) Compare(other Version) int {
	return v.sem.Compare(other.sem)
}

// LessThan reports whether v orders strictly before other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// Equal reports whether v and other denote the same version. "1.2" and
// "1.2.0" are equal; the original spelling does not participate.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// Bump returns the smallest version strictly greater than every version
// sharing v's explicitly written leading components: the last explicit
// component is incremented and everything after it zeroed. "1.2" bumps
// to "1.3", "1.2.3" to "1.2.4", "1" to "2". Used to bound "~>" ranges.
func (v Version) Bump() Version {
	var next semver.Version
	switch v.explicitParts() {
	case 1:
		next = v.sem.IncMajor()
	case 2:
		next = v.sem.IncMinor()
	default:
		next = v.sem.IncPatch()
	}
	return Version{sem: &next, original: next.String()}
}

// explicitParts counts the dotted components actually written in the
// original token, ignoring any "v" prefix and prerelease/build suffix.
func (v Version) explicitParts() int {
	core := strings.TrimPrefix(v.original, "v")
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	return strings.Count(core, ".") + 1
}

// Sort orders versions in place, newest first.
func Sort(versions []Version) {
	slices.SortFunc(versions, func(a, b Version) int {
		return b.Compare(a)
	})
}
