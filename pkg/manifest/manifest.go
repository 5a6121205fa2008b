// Package manifest holds the declared flavor set and the builder that
// assembles it. Declarations are keyed by canonical repository URI;
// group scoping is explicit state on the builder, never package-global.
package manifest

import (
	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/flavor"
)

// DefaultGroup is the group a declaration belongs to when no group is
// active and none is requested.
const DefaultGroup = "default"

// Manifest is the set of declared flavors, keyed by canonical URI.
// Iteration order is the declaration order, which later drives the
// deployment sequence.
type Manifest struct {
	flavors map[string]*flavor.Flavor
	order   []string
}

func newManifest() *Manifest {
	return &Manifest{flavors: make(map[string]*flavor.Flavor)}
}

// Get looks up a declared flavor by its canonical URI.
func (m *Manifest) Get(uri string) (*flavor.Flavor, bool) {
	f, ok := m.flavors[uri]
	return f, ok
}

// Flavors returns the declared flavors in declaration order.
func (m *Manifest) Flavors() []*flavor.Flavor {
	out := make([]*flavor.Flavor, 0, len(m.order))
	for _, uri := range m.order {
		out = append(out, m.flavors[uri])
	}
	return out
}

// Len returns the number of declared flavors.
func (m *Manifest) Len() int {
	return len(m.order)
}

// Builder assembles a Manifest declaration by declaration. The group
// stack is owned by the builder: WithGroups pushes for the duration of
// its body, and Declare snapshots whatever is active.
type Builder struct {
	manifest   *Manifest
	groupStack []string
	dirOwner   map[string]string // zapped dir name -> URI
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		manifest: newManifest(),
		dirOwner: make(map[string]string),
	}
}

// Declare adds one flavor. It inherits the groups active on the stack
// plus any explicitly requested; with neither it lands in the default
// group. Declaring the same URI again replaces the earlier declaration.
// Two distinct names that map to the same cache directory are rejected:
// they would silently share cache and deployment paths.
func (b *Builder) Declare(name, constraintText string, extraGroups ...string) error {
	groups := append(append([]string{}, b.groupStack...), extraGroups...)
	if len(groups) == 0 {
		groups = []string{DefaultGroup}
	}

	f, err := flavor.New(name, constraintText, groups...)
	if err != nil {
		return err
	}

	if owner, taken := b.dirOwner[f.DirName()]; taken && owner != f.URI {
		ownerName := owner
		if prev, ok := b.manifest.flavors[owner]; ok {
			ownerName = prev.Name
		}
		return errors.Newf(errors.ErrSourceCollision,
			"flavors %q and %q both map to directory %q", name, ownerName, f.DirName()).
			WithDetail("dir", f.DirName())
	}

	if prev, seen := b.manifest.flavors[f.URI]; seen {
		// Replacing a declaration may change its directory name (full
		// URI vs shorthand spelling); drop the stale claim.
		if prev.DirName() != f.DirName() {
			delete(b.dirOwner, prev.DirName())
		}
	} else {
		b.manifest.order = append(b.manifest.order, f.URI)
	}
	b.dirOwner[f.DirName()] = f.URI
	b.manifest.flavors[f.URI] = f
	return nil
}

// WithGroups runs body with the given groups pushed onto the group
// stack. Nested calls accumulate.
func (b *Builder) WithGroups(groups []string, body func(*Builder) error) error {
	depth := len(b.groupStack)
	b.groupStack = append(b.groupStack, groups...)
	defer func() { b.groupStack = b.groupStack[:depth] }()
	return body(b)
}

// Build returns the assembled Manifest.
func (b *Builder) Build() *Manifest {
	return b.manifest
}
