// Package config loads breed-vibe settings from an optional YAML file and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/breed-vibe/internal/scorer"
)

const (
	configPathEnv = "BREED_VIBE_CONFIG"
	dbPathEnv     = "BREED_VIBE_DB"
	logLevelEnv   = "BREED_VIBE_LOG_LEVEL"

	defaultDirName  = ".breed-vibe"
	defaultDBName   = "breeds.db"
	defaultFileName = "config.yaml"
)

// Config holds every setting the CLI reads.
type Config struct {
	DB                 string `yaml:"db"`
	LogLevel           string `yaml:"log_level"`
	Preset             string `yaml:"preset"`
	TablesFile         string `yaml:"tables_file"`
	StrictZero         bool   `yaml:"strict_zero"`
	KidFriendlyDefault *int   `yaml:"kid_friendly_default"`
}

// Default returns the built-in settings.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DB:       filepath.Join(home, defaultDirName, defaultDBName),
		LogLevel: "info",
		Preset:   scorer.PresetCurrent,
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, defaultDirName, defaultFileName)
}

// Load reads configuration from path (or $BREED_VIBE_CONFIG, or the default
// location) over the defaults, then applies environment overrides. A missing
// file at the default location is not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if v := os.Getenv(configPathEnv); v != "" {
			path, explicit = v, true
		} else {
			path = DefaultPath()
		}
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg = merge(cfg, fileCfg, filepath.Dir(path))
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(dbPathEnv); v != "" {
		c.DB = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.LogLevel = v
	}
}

// merge overlays the non-empty fields of override. Relative tables_file
// paths are resolved against the config file directory.
func merge(base, override Config, dir string) Config {
	if override.DB != "" {
		base.DB = override.DB
	}
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	if override.Preset != "" {
		base.Preset = override.Preset
	}
	if override.TablesFile != "" {
		base.TablesFile = override.TablesFile
		if !filepath.IsAbs(base.TablesFile) {
			base.TablesFile = filepath.Join(dir, base.TablesFile)
		}
	}
	if override.StrictZero {
		base.StrictZero = true
	}
	if override.KidFriendlyDefault != nil {
		base.KidFriendlyDefault = override.KidFriendlyDefault
	}
	return base
}

// ZeroMode returns the size index zero handling selected by the config.
func (c Config) ZeroMode() scorer.ZeroMode {
	if c.StrictZero {
		return scorer.StrictZero
	}
	return scorer.ZeroAsMissing
}

// Tables resolves the keyword tables: a tables file wins over the preset,
// and kid_friendly_default overrides the kid-friendliness fallback.
func (c Config) Tables() (scorer.Tables, error) {
	var (
		t   scorer.Tables
		err error
	)
	if c.TablesFile != "" {
		t, err = scorer.LoadTables(c.TablesFile)
	} else {
		t, err = scorer.PresetTables(c.Preset)
	}
	if err != nil {
		return scorer.Tables{}, err
	}
	if c.KidFriendlyDefault != nil {
		t.KidFriendly.Default = *c.KidFriendlyDefault
	}
	return t, nil
}
