package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the editor configuration.
// Search order: customPath -> ~/.sprite/config.yaml -> ./configs/editor.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it sets. The result is always validated.
func Load(customPath string) (EditorConfig, error) {
	cfg := DefaultEditorConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Validate()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if c, ok := tryFile(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryFile(filepath.Join("configs", "editor.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultEditorYAML, &cfg); err != nil {
		return DefaultEditorConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Validate()
	return cfg, nil
}

// tryFile decodes path over the defaults. Unreadable or malformed files are
// skipped so the search can continue.
func tryFile(path string) (EditorConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EditorConfig{}, false
	}
	cfg := DefaultEditorConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EditorConfig{}, false
	}
	cfg.Validate()
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sprite", filename)
}
