package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const localeFileName = "locale.yaml"

// DefaultLanguage is used until the user picks another one.
const DefaultLanguage = "fr"

// Locale is the persisted interface language.
type Locale struct {
	LanguageCode string `yaml:"language_code"`
}

// LocalePath returns ~/.notebook/locale.yaml.
func LocalePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, localeFileName), nil
}

// LoadLocale returns the saved language code. A missing or corrupt record
// yields DefaultLanguage.
func LoadLocale() string {
	path, err := LocalePath()
	if err != nil {
		log.Warn("locate locale", "error", err)
		return DefaultLanguage
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("read locale", "path", path, "error", err)
		}
		return DefaultLanguage
	}
	var loc Locale
	if err := yaml.Unmarshal(data, &loc); err != nil {
		log.Warn("parse locale", "path", path, "error", err)
		return DefaultLanguage
	}
	code := strings.TrimSpace(loc.LanguageCode)
	if code == "" {
		return DefaultLanguage
	}
	return code
}

// SaveLocale overwrites the saved language code.
func SaveLocale(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("language code is required")
	}
	path, err := LocalePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(Locale{LanguageCode: code})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write locale: %w", err)
	}
	return nil
}
