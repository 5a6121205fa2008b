// Package config loads flavor's runtime configuration: embedded
// defaults first, then the optional user config file, then FLAVOR_*
// environment variables, later layers overriding earlier ones.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/flavor/pkg/errors"
)

// EnvPrefix namespaces the environment variables the loader reads:
// FLAVOR_GIT_TIMEOUT becomes git.timeout.
const EnvPrefix = "FLAVOR_"

// Git configures the external git invocation.
type Git struct {
	Binary  string        `koanf:"binary"`
	Timeout time.Duration `koanf:"timeout"`
}

// Vim configures help tag generation.
type Vim struct {
	Binary   string        `koanf:"binary"`
	Helptags bool          `koanf:"helptags"`
	Timeout  time.Duration `koanf:"timeout"`
}

// Install configures install and upgrade runs.
type Install struct {
	Concurrency int `koanf:"concurrency"`
}

// Locations overrides the default file locations. Empty values keep
// the defaults resolved by pkg/paths.
type Locations struct {
	Vimfiles string `koanf:"vimfiles"`
	Manifest string `koanf:"manifest"`
	Cache    string `koanf:"cache"`
}

// Config is the main configuration structure.
type Config struct {
	Git       Git       `koanf:"git"`
	Vim       Vim       `koanf:"vim"`
	Install   Install   `koanf:"install"`
	Locations Locations `koanf:"locations"`
}

// Load builds the configuration. configFilePath is the optional user
// config file; an empty or missing path skips that layer.
func Load(configFilePath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if configFilePath != "" {
		if _, err := os.Stat(configFilePath); err == nil {
			if err := k.Load(file.Provider(configFilePath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse,
					"failed to load config from %s", configFilePath)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.applyFloors()
	return &cfg, nil
}

// Default returns the embedded defaults without any user layers.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// The embedded defaults always parse; reaching this means a
		// broken build.
		panic(err)
	}
	return cfg
}

// applyFloors keeps nonsense values from disabling whole subsystems:
// a user can change the numbers, not zero them out.
func (c *Config) applyFloors() {
	if c.Git.Binary == "" {
		c.Git.Binary = "git"
	}
	if c.Git.Timeout <= 0 {
		c.Git.Timeout = 120 * time.Second
	}
	if c.Vim.Binary == "" {
		c.Vim.Binary = "vim"
	}
	if c.Vim.Timeout <= 0 {
		c.Vim.Timeout = 30 * time.Second
	}
	if c.Install.Concurrency <= 0 {
		c.Install.Concurrency = 4
	}
}
