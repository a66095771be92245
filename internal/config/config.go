// Package config loads the optional .fiolens.yaml configuration and
// merges it with environment variables and command-line flags. Precedence
// is flags over environment over yaml over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AppConfig is the application configuration from .fiolens.yaml.
type AppConfig struct {
	Format     string `yaml:"format"`      // auto, text, terminal, json
	Theme      string `yaml:"theme"`       // default, orca, mono
	Describe   bool   `yaml:"describe"`    // annotate parsed records with key descriptions
	WriteFiles bool   `yaml:"write_files"` // summaries next to inputs instead of stdout
	NoColor    bool   `yaml:"no_color"`
}

// Defaults for fields the yaml file leaves unset.
const (
	DefaultFormat = "auto"
	DefaultTheme  = "default"
)

// Load reads the configuration, looking for .fiolens.yaml in the current
// directory first, then under the user config dir (fiolens/.fiolens.yaml).
// A missing file yields defaults; an unreadable or malformed one yields
// defaults plus a warning on stderr.
func Load() *AppConfig {
	cfg := &AppConfig{
		Format: DefaultFormat,
		Theme:  DefaultTheme,
	}

	path := configPath()
	if path == "" {
		applyEnv(cfg)
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "fiolens: warning: reading config %s: %v\n", path, err)
		}
		applyEnv(cfg)
		return cfg
	}

	var fileCfg AppConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		fmt.Fprintf(os.Stderr, "fiolens: warning: parsing config %s: %v\n", path, err)
		applyEnv(cfg)
		return cfg
	}

	if fileCfg.Format != "" {
		cfg.Format = fileCfg.Format
	}
	if fileCfg.Theme != "" {
		cfg.Theme = fileCfg.Theme
	}
	cfg.Describe = fileCfg.Describe
	cfg.WriteFiles = fileCfg.WriteFiles
	cfg.NoColor = fileCfg.NoColor

	applyEnv(cfg)
	return cfg
}

// applyEnv overlays environment variables onto cfg. FIOLENS_NO_COLOR
// takes precedence over the conventional NO_COLOR.
func applyEnv(cfg *AppConfig) {
	noColor := os.Getenv("FIOLENS_NO_COLOR")
	if noColor == "" && os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
		return
	}
	if noColor != "" {
		if b, err := strconv.ParseBool(noColor); err == nil {
			cfg.NoColor = b
		} else {
			cfg.NoColor = true
		}
	}
}

// configPath finds the config file: local directory first, then the XDG
// user config dir. Empty when no file exists.
func configPath() string {
	local := ".fiolens.yaml"
	if _, err := os.Stat(local); err == nil {
		return local
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdg := filepath.Join(configHome, "fiolens", ".fiolens.yaml")
	if _, err := os.Stat(xdg); err == nil {
		return xdg
	}
	return ""
}
