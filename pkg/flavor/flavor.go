// Package flavor defines the central entity: one declared plugin
// dependency, its canonical repository URI, its group memberships, its
// version constraint, and (once resolved) its locked version. It also
// owns the per-flavor repository cache operations.
package flavor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/version"
)

var (
	bareNamePattern  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	shorthandPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+/[A-Za-z0-9._-]+$`)
	zapPattern       = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// Flavor is one declared plugin dependency plus its resolved state.
type Flavor struct {
	// Name is the source name as declared in the manifest.
	Name string

	// URI is the canonical repository URI derived from Name. It is the
	// identity key: two declarations resolving to the same URI are the
	// same dependency.
	URI string

	// Groups the flavor belongs to, sorted and deduplicated.
	Groups []string

	// Constraint is the declared version constraint.
	Constraint version.Constraint

	// LockedVersion is the concrete version chosen by reconciliation,
	// zero while unresolved. Once set it satisfies Constraint.
	LockedVersion version.Version
}

// New creates a Flavor from a manifest declaration. An empty constraint
// text means any version. Groups are normalized; an ungrouped
// declaration gets no implicit group here, that is the manifest
// builder's concern.
func New(name, constraintText string, groups ...string) (*Flavor, error) {
	uri, err := RepoURI(name)
	if err != nil {
		return nil, err
	}

	constraint := version.AnyVersion()
	if strings.TrimSpace(constraintText) != "" {
		constraint, err = version.ParseConstraint(constraintText)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrMalformedConstraint,
				"flavor %q has an invalid constraint", name)
		}
	}

	return &Flavor{
		Name:       name,
		URI:        uri,
		Groups:     NormalizeGroups(groups),
		Constraint: constraint,
	}, nil
}

// Locked reports whether the flavor has a resolved version.
func (f *Flavor) Locked() bool {
	return !f.LockedVersion.IsZero()
}

// DirName is the filesystem-safe name used for both the repository
// cache directory and the deployment directory.
func (f *Flavor) DirName() string {
	return ZapName(f.Name)
}

// RepoURI derives the canonical repository URI for a declared source
// name. A bare name maps to the vim-scripts mirror, a "user/project"
// shorthand to GitHub, and a full URI passes through unchanged.
func RepoURI(name string) (string, error) {
	switch {
	case strings.Contains(name, "://"):
		return name, nil
	case bareNamePattern.MatchString(name):
		return "https://github.com/vim-scripts/" + name + ".git", nil
	case shorthandPattern.MatchString(name):
		return "https://github.com/" + name + ".git", nil
	default:
		return "", errors.Newf(errors.ErrMalformedSource,
			"cannot derive a repository URI from %q", name)
	}
}

// ZapName maps a source name onto a filesystem-safe directory name,
// replacing every character outside [A-Za-z0-9._-] with "_".
func ZapName(name string) string {
	return zapPattern.ReplaceAllString(name, "_")
}

// NormalizeGroups sorts and deduplicates group names, dropping empties.
func NormalizeGroups(groups []string) []string {
	seen := make(map[string]bool, len(groups))
	normalized := make([]string, 0, len(groups))
	for _, g := range groups {
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		normalized = append(normalized, g)
	}
	sort.Strings(normalized)
	return normalized
}

// InAnyGroup reports whether the flavor belongs to at least one of the
// given groups. An empty filter matches everything.
func (f *Flavor) InAnyGroup(groups []string) bool {
	if len(groups) == 0 {
		return true
	}
	for _, want := range groups {
		for _, have := range f.Groups {
			if want == have {
				return true
			}
		}
	}
	return false
}
