// Package config loads medtrack settings from defaults, an optional YAML
// file and MEDTRACK_* environment variables, in that order.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const envPrefix = "MEDTRACK_"

type Config struct {
	DB            string        `koanf:"db" validate:"required"`
	Log           Log           `koanf:"log"`
	Notifications Notifications `koanf:"notifications"`
}

type Log struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// Notifications controls the local reminder queue. Enabled=false behaves like
// a denied notification permission: medicines still save, reminders are not
// queued.
type Notifications struct {
	Enabled bool `koanf:"enabled"`
}

// Dir is the per-user medtrack directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".medtrack")
}

// DefaultPath is the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Default() *Config {
	return &Config{
		DB: filepath.Join(Dir(), "medtrack.db"),
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
		Notifications: Notifications{Enabled: true},
	}
}

// Load builds a Config. An empty path reads DefaultPath if it exists; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	configFile := path
	if configFile == "" {
		configFile = DefaultPath()
		if _, err := os.Stat(configFile); err != nil {
			configFile = ""
		}
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config %s", configFile)
		}
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".",
		func(key, v string) (string, any) {
			// MEDTRACK_LOG_LEVEL -> log.level
			key = strings.TrimPrefix(key, envPrefix)
			return strings.ReplaceAll(strings.ToLower(key), "_", "."), v
		},
	), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables")
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	return errors.Wrap(validate.Struct(c), "invalid config")
}
