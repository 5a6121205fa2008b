// Package lockfile persists the resolved version decisions: a durable,
// human-diffable YAML mapping from canonical repository URI to the
// version that was locked for it and the constraint that produced it.
package lockfile

import (
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/filesystem"
	"github.com/arthur-debert/flavor/pkg/logging"
)

var log = logging.GetLogger("lockfile")

// DefaultFileName is the lock file written beside the manifest.
const DefaultFileName = "Flavorfile.lock"

// Entry is one locked flavor. Invariant: Version satisfies Constraint
// at the time the entry is written; the manifest drifting away from
// that constraint later is exactly what triggers recomputation.
type Entry struct {
	Name       string   `yaml:"source_name"`
	Groups     []string `yaml:"groups"`
	Version    string   `yaml:"locked_version"`
	Constraint string   `yaml:"constraint"`
}

// Lock is the full lock file content.
type Lock struct {
	entries map[string]Entry
}

// fileFormat is the wire shape: a single top-level "flavors" mapping.
type fileFormat struct {
	Flavors map[string]Entry `yaml:"flavors"`
}

// New creates an empty Lock.
func New() *Lock {
	return &Lock{entries: make(map[string]Entry)}
}

// Set records the entry for a URI, replacing any previous one.
func (l *Lock) Set(uri string, e Entry) {
	l.entries[uri] = e
}

// Get looks up the entry for a URI.
func (l *Lock) Get(uri string) (Entry, bool) {
	e, ok := l.entries[uri]
	return e, ok
}

// URIs returns the locked URIs in sorted order.
func (l *Lock) URIs() []string {
	uris := make([]string, 0, len(l.entries))
	for uri := range l.entries {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// Len returns the number of locked entries.
func (l *Lock) Len() int {
	return len(l.entries)
}

// Load reads a lock file. An absent file is not an error: it loads as
// an empty lock, the state before any install has run. An unreadable or
// structurally invalid file is a LOCK_FORMAT error.
func Load(fs filesystem.FS, path string) (*Lock, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, errors.Wrapf(err, errors.ErrLockFormat, "cannot read lock file %s", path)
	}

	result, err := validate(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLockFormat, "cannot check lock file %s", path)
	}
	if !result.Valid {
		return nil, errors.Newf(errors.ErrLockFormat, "lock file %s is not well-formed", path).
			WithDetail("issues", result.IssueStrings())
	}

	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, errors.ErrLockFormat, "cannot parse lock file %s", path)
	}

	lock := New()
	for uri, entry := range file.Flavors {
		lock.entries[uri] = entry
	}

	log.Debug().Str("path", path).Int("entries", lock.Len()).Msg("Lock file loaded")
	return lock, nil
}

// Save writes the lock file atomically: the content lands in a
// temporary file that is renamed over the target, so a reader never
// observes a half-written lock. Output is deterministic, with URIs in
// sorted order.
func (l *Lock) Save(fs filesystem.FS, path string) error {
	file := fileFormat{Flavors: make(map[string]Entry, len(l.entries))}
	for uri, entry := range l.entries {
		file.Flavors[uri] = entry
	}

	// yaml.v3 marshals map keys in sorted order, which is what makes
	// the output diffable across runs.
	data, err := yaml.Marshal(&file)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot serialize lock file")
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot create directory for %s", path)
	}

	tmp := path + ".tmp"
	if err := fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", tmp)
	}
	if err := fs.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot replace %s", path)
	}

	log.Debug().Str("path", path).Int("entries", l.Len()).Msg("Lock file written")
	return nil
}
