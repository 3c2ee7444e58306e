package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"qc/internal/models"
)

const EnvConfigPath = "QC_CONFIG"

func Default() models.Config {
	return models.Config{
		Identifier:  models.DefaultIdentifier,
		Backend:     models.BackendKeyring,
		Application: models.DefaultApplication,
		Osascript:   models.DefaultOsascript,
	}
}

// Load reads path over the defaults. A missing file yields an error wrapping
// os.ErrNotExist together with the defaults.
func Load(path string) (models.Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Identifier = strings.TrimSpace(cfg.Identifier)
	if cfg.Identifier == "" {
		cfg.Identifier = models.DefaultIdentifier
	}
	if cfg.Backend == "" {
		cfg.Backend = models.BackendKeyring
	}
	if cfg.Backend != models.BackendKeyring && cfg.Backend != models.BackendEnv {
		return Default(), fmt.Errorf("backend must be %q or %q", models.BackendKeyring, models.BackendEnv)
	}
	cfg.Application = strings.TrimSpace(cfg.Application)
	if cfg.Application == "" {
		cfg.Application = models.DefaultApplication
	}
	if strings.ContainsAny(cfg.Application, "\"\\\n") {
		return Default(), fmt.Errorf("application must not contain quotes, backslashes or newlines")
	}
	cfg.Osascript = strings.TrimSpace(cfg.Osascript)
	if cfg.Osascript == "" {
		cfg.Osascript = models.DefaultOsascript
	}
	if cfg.Timeout < 0 {
		return Default(), fmt.Errorf("timeout must not be negative")
	}
	return cfg, nil
}

// LoadOrDefault is Load with a missing file treated as the defaults.
func LoadOrDefault(path string) (models.Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func ResolvePath(flagPath string) (string, error) {
	path := strings.TrimSpace(flagPath)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path != "" {
		if !filepath.IsAbs(path) {
			return "", fmt.Errorf("config path must be absolute: %s", path)
		}
		return path, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "qc", "config.yaml"), nil
}
