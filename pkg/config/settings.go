// Package config persists webpilot settings as a JSON file under
// ~/.webpilot/. A missing file yields defaults; flags override loaded
// values at the call site.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds the persisted webpilot configuration.
type Settings struct {
	// InstructionsDir is the root of the instruction store.
	InstructionsDir string `json:"instructions_dir"`

	// MultiTenant selects domain-matched instruction sets instead of a
	// single shared tree.
	MultiTenant bool `json:"multi_tenant"`

	// Headless controls whether browser sessions run without a window.
	Headless bool `json:"headless"`

	// PageContext enables instruction-context resolution after
	// URL-changing actions. The WEBPILOT_PAGE_CONTEXT environment
	// variable, when set to a false-like value, overrides this to off.
	PageContext bool `json:"page_context"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		InstructionsDir: "instructions",
		Headless:        true,
		PageContext:     true,
	}
}

// DefaultPath returns ~/.webpilot/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".webpilot", "config.json"), nil
}

// Load reads settings from path. A missing file is not an error and yields
// defaults; a malformed file is.
func Load(path string) (Settings, error) {
	settings := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to path, creating parent directories as needed.
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
