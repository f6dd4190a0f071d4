// Package config resolves kochbuch settings from defaults, an optional
// kochbuch.yaml, KOCHBUCH_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/hammamikhairi/kochbuch/internal/logger"
)

const (
	// AppName names the config directory and the env prefix.
	AppName = "kochbuch"
	// EnvPrefix is prepended to every environment override, e.g. KOCHBUCH_LOG_LEVEL.
	EnvPrefix = "KOCHBUCH"
)

// Keys understood by Load. Flags bound onto the same viper instance use
// these names.
const (
	KeyCatalog  = "catalog"
	KeyLocale   = "locale"
	KeyLogLevel = "log.level"
	KeyLogFile  = "log.file"
)

// Config is the resolved application configuration.
type Config struct {
	Catalog string `mapstructure:"catalog"`
	Locale  string `mapstructure:"locale"`
	Log     Log    `mapstructure:"log"`
}

// Log holds logging settings.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Locale: "de",
		Log: Log{
			Level: "normal",
			File:  ".kochbuch/kochbuch.log",
		},
	}
}

// Dir returns $XDG_CONFIG_HOME/kochbuch, falling back to ~/.config/kochbuch.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName), nil
}

// LoadDotEnv reads a .env file from the working directory if one exists.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load resolves the configuration into v and decodes it. When file is
// non-empty it must exist; otherwise kochbuch.yaml is searched in the
// working directory and then in Dir.
func Load(v *viper.Viper, file string) (*Config, error) {
	def := Default()
	v.SetDefault(KeyCatalog, def.Catalog)
	v.SetDefault(KeyLocale, def.Locale)
	v.SetDefault(KeyLogLevel, def.Log.Level)
	v.SetDefault(KeyLogFile, def.Log.File)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if _, err := language.Parse(cfg.Locale); err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}
	if _, ok := logger.ParseLevel(cfg.Log.Level); !ok {
		return nil, fmt.Errorf("invalid log level %q (want off, normal or verbose)", cfg.Log.Level)
	}
	return &cfg, nil
}

// Language returns the collation language. Load has already validated it.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.German
	}
	return tag
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logger.Level {
	level, _ := logger.ParseLevel(c.Log.Level)
	return level
}
