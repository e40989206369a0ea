// Package config loads bindgen's output configuration.
//
// Configuration is resolved with Viper from three sources, lowest precedence
// first: built-in defaults, an optional TOML file, and BINDGEN_-prefixed
// environment variables.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/bindgen/errors"
)

// Config is the output configuration one generation run operates under.
type Config struct {
	// OutputDir is the directory generated artifacts are written to.
	OutputDir string `mapstructure:"output_dir"`
	// BaseName is the artifact base name; when empty the CLI derives it from
	// the schema file name.
	BaseName string `mapstructure:"base_name"`
	// IncludePrefix is prepended to generated include paths for included
	// schema files.
	IncludePrefix string `mapstructure:"include_prefix"`
	// KeepIncludePath keeps the directory part of included schema paths
	// instead of reducing them to their base name.
	KeepIncludePath bool `mapstructure:"keep_include_path"`
	// NamespaceSeparator joins namespace components on the storage side.
	NamespaceSeparator string `mapstructure:"namespace_separator"`
}

// SetDefaults installs the built-in defaults on a Viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", ".")
	v.SetDefault("base_name", "")
	v.SetDefault("include_prefix", "")
	v.SetDefault("keep_include_path", false)
	v.SetDefault("namespace_separator", "::")
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	conf, err := LoadWithViper(v)
	if err != nil {
		// Defaults always unmarshal; reaching this means the struct and the
		// default keys have drifted apart.
		panic(err)
	}
	return conf
}

// LoadWithViper unmarshals configuration from a prepared Viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &conf, nil
}

// LoadFromFile loads configuration from a TOML file, layered over defaults
// and under BINDGEN_ environment variables.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	return LoadWithViper(v)
}

// Load resolves configuration from defaults and environment only.
func Load() (*Config, error) {
	return LoadWithViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("BINDGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
