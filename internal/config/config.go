// Package config persists the notebook root directory and the few settings
// that go with it.
//
// The root record lives at ~/.notebook/config.json and is read through a
// dedicated viper instance, so NOTEBOOK_ROOT_PATH and
// NOTEBOOK_AUTOSAVE_INTERVAL override the file. It is written back wholesale
// whenever the root changes.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/treykane/cli-notebook/internal/logging"
)

const (
	configDirName  = ".notebook"
	configFileName = "config.json"
	logFileName    = "notebook.log"

	// EnvPrefix prefixes environment overrides of config keys.
	EnvPrefix = "NOTEBOOK"

	// DefaultAutosaveInterval is how often the open note is flushed.
	DefaultAutosaveInterval = 2 * time.Second

	keyRootPath         = "root_path"
	keyAutosaveInterval = "autosave_interval"
)

var ErrNotConfigured = errors.New("notebook is not configured")

var log = logging.New("config")

// Config stores user-defined notebook settings.
type Config struct {
	RootPath         string
	AutosaveInterval time.Duration
}

// fileConfig is the on-disk shape of Config.
type fileConfig struct {
	RootPath         string `json:"root_path"`
	AutosaveInterval string `json:"autosave_interval,omitempty"`
}

// ConfigDir returns ~/.notebook.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LogPath returns the file the terminal UI writes its log to.
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}

// DefaultRoot returns the root used when none is configured.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Documents", "Notebook"), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault(keyAutosaveInterval, DefaultAutosaveInterval.String())
	return v
}

// Load reads and validates the saved configuration. It returns
// ErrNotConfigured when there is neither a config file nor an environment
// override for the root.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		switch {
		case errors.As(err, &parseErr):
			return Config{}, fmt.Errorf("parse config: %w", err)
		case !errors.Is(err, fs.ErrNotExist):
			return Config{}, fmt.Errorf("read config: %w", err)
		case strings.TrimSpace(v.GetString(keyRootPath)) == "":
			return Config{}, ErrNotConfigured
		}
	}

	root, err := NormalizeRoot(v.GetString(keyRootPath))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", keyRootPath, err)
	}

	interval := v.GetDuration(keyAutosaveInterval)
	if interval <= 0 {
		log.Warn("ignore autosave interval", "value", v.GetString(keyAutosaveInterval))
		interval = DefaultAutosaveInterval
	}

	return Config{RootPath: root, AutosaveInterval: interval}, nil
}

// Resolve returns the configuration to start with. A missing or unreadable
// config, or a configured root that is not an existing directory, falls back
// to DefaultRoot. The returned root always exists.
func Resolve() (Config, error) {
	cfg, err := Load()
	switch {
	case errors.Is(err, ErrNotConfigured):
		log.Debug("no config, using default root")
	case err != nil:
		log.Warn("load config", "error", err)
	}
	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = DefaultAutosaveInterval
	}

	if cfg.RootPath != "" {
		if info, statErr := os.Stat(cfg.RootPath); statErr != nil || !info.IsDir() {
			log.Warn("configured root unavailable, using default", "path", cfg.RootPath)
			cfg.RootPath = ""
		}
	}
	if cfg.RootPath == "" {
		root, err := DefaultRoot()
		if err != nil {
			return Config{}, err
		}
		cfg.RootPath = root
	}

	if err := os.MkdirAll(cfg.RootPath, 0o755); err != nil {
		return Config{}, fmt.Errorf("create root: %w", err)
	}
	return cfg, nil
}

// Save writes configuration to disk.
func Save(cfg Config) error {
	root, err := NormalizeRoot(cfg.RootPath)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", keyRootPath, err)
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	record := fileConfig{RootPath: root}
	if cfg.AutosaveInterval > 0 {
		record.AutosaveInterval = cfg.AutosaveInterval.String()
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.Info("saved config", "path", path, "root", root)
	return nil
}

// SaveRoot persists a new root, keeping the other saved settings.
func SaveRoot(root string) error {
	cfg, err := Load()
	if err != nil && !errors.Is(err, ErrNotConfigured) {
		log.Warn("replace unreadable config", "error", err)
		cfg = Config{}
	}
	cfg.RootPath = root
	return Save(cfg)
}

// NormalizeRoot expands ~ and returns a clean absolute path.
func NormalizeRoot(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
