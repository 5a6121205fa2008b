package version

import (
	"strings"

	"github.com/arthur-debert/flavor/pkg/errors"
)

// Operator is a constraint operator.
type Operator string

const (
	// OpAtLeast matches any version at or above the base version.
	OpAtLeast Operator = ">="
	// OpCompatible matches versions at or above the base version but
	// below its bump, pinning the explicitly written leading components.
	OpCompatible Operator = "~>"
)

// Constraint is a parsed version constraint: an operator and a base
// version. Immutable once parsed.
type Constraint struct {
	op   Operator
	base Version
}

// ParseConstraint parses a constraint of the exact form "<op> <version>"
// with op one of ">=" or "~>". Surrounding whitespace is tolerated;
// anything else fails with a MALFORMED_CONSTRAINT error.
func ParseConstraint(text string) (Constraint, error) {
	trimmed := strings.TrimSpace(text)

	opToken, verToken, found := strings.Cut(trimmed, " ")
	if !found || verToken == "" || strings.ContainsAny(verToken, " \t") {
		return Constraint{}, errors.Newf(errors.ErrMalformedConstraint,
			"constraint %q is not of the form \"<op> <version>\"", text)
	}

	op := Operator(opToken)
	if op != OpAtLeast && op != OpCompatible {
		return Constraint{}, errors.Newf(errors.ErrMalformedConstraint,
			"constraint %q has unknown operator %q (want \">=\" or \"~>\")", text, opToken)
	}

	base, err := Parse(verToken)
	if err != nil {
		return Constraint{}, errors.Wrapf(err, errors.ErrMalformedConstraint,
			"constraint %q has an invalid version", text)
	}

	return Constraint{op: op, base: base}, nil
}

// MustParseConstraint is ParseConstraint for known-good literals.
func MustParseConstraint(text string) Constraint {
	c, err := ParseConstraint(text)
	if err != nil {
		panic(err)
	}
	return c
}

// AnyVersion is the constraint a declaration gets when it names no
// explicit one: every version satisfies it.
func AnyVersion() Constraint {
	return MustParseConstraint(">= 0")
}

// Operator returns the constraint's operator.
func (c Constraint) Operator() Operator {
	return c.op
}

// Base returns the constraint's base version.
func (c Constraint) Base() Version {
	return c.base
}

// IsZero reports whether c is the zero Constraint (never parsed).
func (c Constraint) IsZero() bool {
	return c.base.IsZero()
}

// SatisfiedBy reports whether v satisfies the constraint. For ">=" that
// is v >= base; for "~>" it is base <= v < base.Bump().
func (c Constraint) SatisfiedBy(v Version) bool {
	if v.Compare(c.base) < 0 {
		return false
	}
	if c.op == OpCompatible && v.Compare(c.base.Bump()) >= 0 {
		return false
	}
	return true
}

// BestMatch returns the greatest candidate satisfying the constraint.
// The second return is false when no candidate satisfies; callers treat
// that as "no resolvable version" and fail the resolution.
func (c Constraint) BestMatch(candidates []Version) (Version, bool) {
	var best Version
	found := false
	for _, candidate := range candidates {
		if !c.SatisfiedBy(candidate) {
			continue
		}
		if !found || best.LessThan(candidate) {
			best = candidate
			found = true
		}
	}
	return best, found
}

// Equal reports structural equality: same operator and same base version
// as written. A drifted spelling ("1.2" vs "1.2.0") counts as drift.
func (c Constraint) Equal(other Constraint) bool {
	return c.op == other.op && c.base.String() == other.base.String()
}

// String renders the constraint in its canonical "<op> <version>" form.
func (c Constraint) String() string {
	return string(c.op) + " " + c.base.String()
}
