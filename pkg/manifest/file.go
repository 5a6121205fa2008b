package manifest

import (
	"os"
	"sort"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/logging"
)

var log = logging.GetLogger("manifest")

// DefaultFileName is the manifest file flavor looks for.
const DefaultFileName = "Flavorfile.toml"

// fileFormat mirrors the manifest's TOML shape:
//
//	[flavors."kana/vim-altr"]
//	constraint = ">= 1.0"
//	groups = ["extras"]
//
//	[groups.testing.flavors."kana/vim-vspec"]
//	constraint = ">= 1.2"
type fileFormat struct {
	Flavors map[string]declaration  `toml:"flavors"`
	Groups  map[string]groupSection `toml:"groups"`
}

type groupSection struct {
	Flavors map[string]declaration `toml:"flavors"`
}

type declaration struct {
	Constraint string   `toml:"constraint"`
	Groups     []string `toml:"groups"`
}

// Load reads and interprets a manifest file. TOML tables carry no
// order, so declarations are fed to the builder sorted by name within
// each section; the resulting manifest order is deterministic for a
// given file.
func Load(path string) (*Manifest, error) {
	logger := log.With().Str("path", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read manifest %s", path)
	}

	var file fileFormat
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "cannot parse manifest %s", path)
	}

	builder := NewBuilder()

	for _, name := range sortedKeys(file.Flavors) {
		decl := file.Flavors[name]
		if err := builder.Declare(name, decl.Constraint, decl.Groups...); err != nil {
			return nil, err
		}
	}

	for _, group := range sortedKeys(file.Groups) {
		section := file.Groups[group]
		err := builder.WithGroups([]string{group}, func(b *Builder) error {
			for _, name := range sortedKeys(section.Flavors) {
				decl := section.Flavors[name]
				if err := b.Declare(name, decl.Constraint, decl.Groups...); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	m := builder.Build()
	logger.Debug().Int("flavors", m.Len()).Msg("Manifest loaded")
	return m, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
