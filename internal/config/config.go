//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package config loads kestrel settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// Config holds all configuration options for kestrel.
type Config struct {
	Debug   bool          `mapstructure:"debug"`
	Log     LogConfig     `mapstructure:"log"`
	Display DisplayConfig `mapstructure:"display"`
}

// LogConfig describes the log file. An empty File disables logging.
type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	Filler string `mapstructure:"filler"` // marker drawn on rows past the end of the file
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	logFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		logFile = filepath.Join(home, ".kestrel.log")
	}
	return Config{
		Log: LogConfig{
			File:       logFile,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
		Display: DisplayConfig{
			Filler: "~",
		},
	}
}

// DefaultConfigPath is ~/.config/kestrel/config.yaml, or "" without a home directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "kestrel", "config.yaml")
}

// Load reads the config file at path, or the default location when path
// is empty. A missing default file is not an error; a missing explicit
// file is.
func Load(path string) (Config, error) {
	v := viper.New()
	defaults := Defaults()
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("display.filler", defaults.Display.Filler)

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that the editor depends on.
func Validate(cfg Config) error {
	if utf8.RuneCountInString(cfg.Display.Filler) != 1 {
		return fmt.Errorf("display.filler must be a single character, got %q", cfg.Display.Filler)
	}
	if cfg.Log.MaxSizeMB < 0 {
		return fmt.Errorf("log.max_size_mb must not be negative, got %d", cfg.Log.MaxSizeMB)
	}
	if cfg.Log.MaxBackups < 0 {
		return fmt.Errorf("log.max_backups must not be negative, got %d", cfg.Log.MaxBackups)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", cfg.Log.Level)
	}
	return nil
}

// FillerRune returns the filler marker as a rune.
func (c Config) FillerRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Display.Filler)
	return r
}
