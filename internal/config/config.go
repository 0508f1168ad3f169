// Package config loads schema files declaring record models and logging.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dball/slots/internal/attrs"
	"github.com/dball/slots/internal/logging"
	"github.com/dball/slots/internal/record"
	. "github.com/dball/slots/internal/types"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding file settings,
// e.g. SLOTS_LOG_LEVEL.
const EnvPrefix = "SLOTS"

// Config is the content of a schema file.
type Config struct {
	Log    logging.Config `mapstructure:"log"`
	Models []ModelConfig  `mapstructure:"models"`
}

// ModelConfig declares one schema. Attrs are decoded with attrs.DecodeConfig.
type ModelConfig struct {
	Name  string           `mapstructure:"name"`
	Attrs []map[string]any `mapstructure:"attrs"`
}

// Load reads a YAML, TOML or JSON schema file, chosen by extension.
func Load(path string) (cfg *Config, err error) {
	v := newViper()
	v.SetConfigFile(path)
	if err = v.ReadInConfig(); err != nil {
		err = errors.Wrapf(err, "reading schema file %s", path)
		return
	}
	cfg, err = decode(v)
	return
}

// Parse reads a schema document of the given format: yaml, toml or json.
func Parse(format string, content string) (cfg *Config, err error) {
	v := newViper()
	v.SetConfigType(format)
	if err = v.ReadConfig(strings.NewReader(content)); err != nil {
		err = errors.Wrapf(err, "parsing %s schema", format)
		return
	}
	cfg, err = decode(v)
	return
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (cfg *Config, err error) {
	cfg = &Config{}
	if err = v.Unmarshal(cfg); err != nil {
		err = errors.Wrap(err, "decoding schema file")
		cfg = nil
		return
	}
	// Unmarshal only sees env overrides for keys it is asked for directly.
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.JSON = v.GetBool("log.json")
	return
}

// Schemas builds the declared schemas against the registry, by name.
func (cfg *Config) Schemas(registry *attrs.Registry) (schemas map[string]*record.Schema, err error) {
	schemas = make(map[string]*record.Schema, len(cfg.Models))
	for _, model := range cfg.Models {
		if model.Name == "" {
			err = NewError("config.unnamedModel")
			schemas = nil
			return
		}
		if _, ok := schemas[model.Name]; ok {
			err = NewError("config.duplicateModel", "name", model.Name)
			schemas = nil
			return
		}
		configs := make([]attrs.Config, len(model.Attrs))
		for i, raw := range model.Attrs {
			configs[i], err = attrs.DecodeConfig(raw)
			if err != nil {
				err = errors.Wrapf(err, "model %q", model.Name)
				schemas = nil
				return
			}
		}
		schema, schemaErr := record.NewSchema(registry, model.Name, configs...)
		if schemaErr != nil {
			err = errors.Wrapf(schemaErr, "model %q", model.Name)
			schemas = nil
			return
		}
		schemas[model.Name] = schema
	}
	return
}
