// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config provides configuration loading and persistence helpers for
// Twofa. It uses Viper for file/env/flag parsing and writes files with
// go-yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Language  string       `mapstructure:"language" yaml:"language"`
	Mode      string       `mapstructure:"mode" yaml:"mode"`
	Output    string       `mapstructure:"output" yaml:"output"`
	Clipboard bool         `mapstructure:"clipboard" yaml:"clipboard"`
	Log       LogConfig    `mapstructure:"log" yaml:"log"`
	Verify    VerifyConfig `mapstructure:"verify" yaml:"verify"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file,omitempty"`
}

// VerifyConfig configures the optional local TOTP check. An empty secret
// disables it.
type VerifyConfig struct {
	Secret string `mapstructure:"secret" yaml:"secret,omitempty"`
	Skew   uint   `mapstructure:"skew" yaml:"skew"`
}

// Defaults returns the built-in defaults keyed by viper key.
func Defaults() map[string]any {
	return map[string]any{
		"language":      "en",
		"mode":          "totp",
		"output":        "text",
		"clipboard":     false,
		"log.level":     "info",
		"log.file":      "",
		"verify.secret": "",
		"verify.skew":   1,
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Twofa")
		default: // Linux, macOS, etc.
			configDir = "/etc/twofa"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "twofa")
	}

	return filepath.Join(configDir, "twofa.yaml"), nil
}

// LoadConfig resolves configuration from defaults, config file, environment
// (TWOFA_ prefix) and the flags in flagKeys (viper key -> flag name), in
// increasing order of precedence. It returns the decoded config and the
// config file that was read, if any.
func LoadConfig[T any](flags *pflag.FlagSet, flagKeys map[string]string, defaults map[string]any, explicitPath string) (T, string, error) {
	var c T
	v := viper.New()

	// 1. Set defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. Set up file search paths
	v.SetConfigName("twofa")
	v.SetConfigType("yaml")

	// 3. An explicit --config path wins over the search paths.
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	}

	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	// 4. Read in the config file. Not found is fine, anything else is fatal.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, "", fmt.Errorf("error reading config: %w", err)
		}
	}

	// 5. Environment variables
	v.SetEnvPrefix("twofa")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 6. Flags
	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, "", err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, "", fmt.Errorf("error decoding config: %w", err)
	}

	return c, v.ConfigFileUsed(), nil
}

// UserConfigPath returns where WriteConfigFile stores the user config.
func UserConfigPath() (string, error) {
	return getConfigPath(false)
}

// WriteConfigFile writes c as YAML to the user (or system) config path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := getConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the file may hold the verifier secret.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}

	return path, nil
}
