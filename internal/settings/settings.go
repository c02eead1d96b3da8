// Package settings resolves CLI settings from flags, DELVUI_* environment
// variables, an optional .delvuirc.yaml file, and defaults, in that order of
// precedence.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix namespaces environment variables (DELVUI_PRESET, DELVUI_LOG_LEVEL, ...).
	EnvPrefix = "DELVUI"
	// FileName is the settings file looked up in the working directory, without extension.
	FileName = ".delvuirc"
)

// Setting keys. They match the CLI flag names.
const (
	KeyPreset    = "preset"
	KeyPrefix    = "prefix"
	KeySelector  = "selector"
	KeyFormat    = "format"
	KeyOutput    = "output"
	KeyFramework = "framework"
	KeyMinify    = "minify"
	KeyConfig    = "config"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
)

var keys = []string{
	KeyPreset, KeyPrefix, KeySelector, KeyFormat, KeyOutput,
	KeyFramework, KeyMinify, KeyConfig, KeyLogLevel, KeyLogFormat,
}

// Settings is the resolved view used by commands.
type Settings struct {
	Preset     string
	Prefix     string
	Selector   string
	Format     string
	Output     string
	Framework  string
	Minify     bool
	ConfigPath string
	LogLevel   string
	LogFormat  string

	// File is the settings file that was read, if any.
	File string
}

// Option adjusts how settings are resolved.
type Option func(v *viper.Viper)

// WithDefault overrides the default of key for one command. It ranks below
// flags, the environment and the settings file, and above flag defaults.
func WithDefault(key string, value any) Option {
	return func(v *viper.Viper) {
		v.SetDefault(key, value)
	}
}

// Load resolves settings for a command. Flags present in fs are bound so an
// explicitly set flag wins over the environment and the settings file, while
// the flag default only applies when nothing else provides a value. dir is
// searched for the settings file; empty means the working directory.
func Load(fs *pflag.FlagSet, dir string, opts ...Option) (Settings, error) {
	v := newViper(dir)
	for _, opt := range opts {
		opt(v)
	}

	if fs != nil {
		for _, key := range keys {
			flag := fs.Lookup(key)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Settings{}, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read settings file: %w", err)
		}
	}

	return Settings{
		Preset:     v.GetString(KeyPreset),
		Prefix:     v.GetString(KeyPrefix),
		Selector:   v.GetString(KeySelector),
		Format:     v.GetString(KeyFormat),
		Output:     v.GetString(KeyOutput),
		Framework:  v.GetString(KeyFramework),
		Minify:     v.GetBool(KeyMinify),
		ConfigPath: v.GetString(KeyConfig),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFormat:  v.GetString(KeyLogFormat),
		File:       v.ConfigFileUsed(),
	}, nil
}

func newViper(dir string) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	return v
}
