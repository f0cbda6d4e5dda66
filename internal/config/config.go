// Package config loads thegrep settings from an optional YAML file and
// THEGREP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/coregx/thegrep"
	"github.com/coregx/thegrep/internal/logging"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings shared by the grep front end and the service.
type Config struct {
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	Mode        string `mapstructure:"mode"`
	Prefilter   bool   `mapstructure:"prefilter"`
	Parallel    int    `mapstructure:"parallel"`
	MaxLiterals int    `mapstructure:"max_literals"`
	Serve       Serve  `mapstructure:"serve"`
}

// Serve configures the HTTP match service.
type Serve struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   logging.FormatConsole,
		Mode:        thegrep.Search.String(),
		Prefilter:   true,
		Parallel:    4,
		MaxLiterals: 64,
		Serve:       Serve{Addr: ":7780"},
	}
}

// Load reads the configuration. Values come from, in increasing precedence,
// the defaults, the config file and the environment.
//
// With an empty path, .thegrep.yaml is looked up in the working directory
// and in $HOME/.config/thegrep; not finding it is not an error. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".thegrep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/thegrep")
	}
	v.SetEnvPrefix("THEGREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("mode", d.Mode)
	v.SetDefault("prefilter", d.Prefilter)
	v.SetDefault("parallel", d.Parallel)
	v.SetDefault("max_literals", d.MaxLiterals)
	v.SetDefault("serve.addr", d.Serve.Addr)
}

// Validate checks the values that cannot be typed.
func (c *Config) Validate() error {
	if _, err := thegrep.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: mode %q", ErrInvalid, c.Mode)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("%w: log_format %q", ErrInvalid, c.LogFormat)
	}
	if c.Parallel <= 0 {
		return fmt.Errorf("%w: parallel must be positive, got %d", ErrInvalid, c.Parallel)
	}
	if c.MaxLiterals < 0 {
		return fmt.Errorf("%w: max_literals must not be negative, got %d", ErrInvalid, c.MaxLiterals)
	}
	return nil
}

// EngineConfig returns the compilation settings for the regex engine.
// It assumes the Config has been validated.
func (c *Config) EngineConfig() thegrep.Config {
	mode, _ := thegrep.ParseMode(c.Mode)
	cfg := thegrep.DefaultConfig()
	cfg.Mode = mode
	cfg.EnablePrefilter = c.Prefilter
	cfg.MaxLiterals = c.MaxLiterals
	return cfg
}
