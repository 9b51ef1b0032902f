// Package config loads optional statenet settings from a TOML or YAML file.
//
// Settings are layered: pipeline defaults first, then the configuration
// file, then command-line flags. Every field is a pointer so that a value
// absent from the file leaves the layer below untouched.
//
// An example configuration:
//
//	[columns]
//	scheme = "custom"
//
//	[columns.custom]
//	itin_id = "ItinID"
//	mkt_id = "MktID"
//	seq_num = "SeqNum"
//	origin = "Origin"
//	dest = "Dest"
//
//	[states]
//	order = 2
//	min_weight = 2
//	data_dir = "data"
//
//	[multilayer]
//	relax_rate = 0.15
//	parallelism = 4
//
//	[filter]
//	weight_threshold = 1
//	split = 0.2
//	seed = 42
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/statenet/pkg/errors"
	"github.com/matzehuels/statenet/pkg/itinerary"
	"github.com/matzehuels/statenet/pkg/pipeline"
)

// appName names the configuration directory.
const appName = "statenet"

// FileName is the name of the configuration file inside [Dir].
const FileName = "config.toml"

// Config is the content of a configuration file.
type Config struct {
	Columns    Columns    `toml:"columns" yaml:"columns"`
	States     States     `toml:"states" yaml:"states"`
	Multilayer Multilayer `toml:"multilayer" yaml:"multilayer"`
	Filter     Filter     `toml:"filter" yaml:"filter"`
}

// Columns selects how leg record columns are named.
type Columns struct {
	Scheme *string            `toml:"scheme" yaml:"scheme" validate:"omitempty,oneof=auto prezipped selected custom"`
	Custom *itinerary.Columns `toml:"custom" yaml:"custom"`
}

// States holds state expansion settings.
type States struct {
	Order     *int    `toml:"order" yaml:"order" validate:"omitempty,min=1,max=3"`
	MinWeight *int    `toml:"min_weight" yaml:"min_weight" validate:"omitempty,min=0"`
	DataDir   *string `toml:"data_dir" yaml:"data_dir"`
}

// Multilayer holds merge settings.
type Multilayer struct {
	RelaxRate   *float64 `toml:"relax_rate" yaml:"relax_rate" validate:"omitempty,min=0,max=1"`
	Parallelism *int     `toml:"parallelism" yaml:"parallelism" validate:"omitempty,min=0"`
}

// Filter holds path filter settings.
type Filter struct {
	WeightThreshold *float64 `toml:"weight_threshold" yaml:"weight_threshold" validate:"omitempty,min=0"`
	Split           *float64 `toml:"split" yaml:"split" validate:"omitempty,min=0,max=1"`
	Seed            *uint64  `toml:"seed" yaml:"seed"`
}

// Dir returns the configuration directory using the XDG standard
// (~/.config/statenet/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the path of the default configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration file at path. The format follows the
// extension: .toml, or .yaml/.yml. Unknown keys and out-of-range values
// are ConfigErrors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Config("config %s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
	default:
		return nil, errors.Config("config %s: unsupported format %q (must be .toml, .yaml or .yml)", path, ext)
	}

	if err := errors.ValidateStruct(&cfg); err != nil {
		return nil, errors.Config("config %s: %s", path, errors.UserMessage(err))
	}
	return &cfg, nil
}

// LoadDefault reads path, or the default configuration file when path is
// empty. A missing default file yields an empty configuration; a missing
// explicit file is an error.
func LoadDefault(path string) (*Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}
	def, err := DefaultPath()
	if err != nil {
		return &Config{}, "", nil
	}
	if _, err := os.Stat(def); err != nil {
		return &Config{}, "", nil
	}
	cfg, err := Load(def)
	return cfg, def, err
}

// Apply copies every value present in the configuration onto opts.
func (c *Config) Apply(opts *pipeline.Options) {
	if c.Columns.Scheme != nil {
		opts.Columns = *c.Columns.Scheme
	}
	if c.Columns.Custom != nil {
		opts.CustomColumns = *c.Columns.Custom
	}
	if c.States.Order != nil {
		opts.Order = *c.States.Order
	}
	if c.States.MinWeight != nil {
		opts.MinWeight = *c.States.MinWeight
	}
	if c.States.DataDir != nil {
		opts.DataDir = *c.States.DataDir
	}
	if c.Multilayer.RelaxRate != nil {
		opts.RelaxRate = *c.Multilayer.RelaxRate
	}
	if c.Multilayer.Parallelism != nil {
		opts.Parallelism = *c.Multilayer.Parallelism
	}
	if c.Filter.WeightThreshold != nil {
		opts.WeightThreshold = *c.Filter.WeightThreshold
	}
	if c.Filter.Split != nil {
		opts.Split = *c.Filter.Split
	}
	if c.Filter.Seed != nil {
		opts.Seed = *c.Filter.Seed
	}
}
