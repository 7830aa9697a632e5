package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const stackConfigFile = "stack.yaml"

// LoadStack loads the stack tower configuration and validates it.
// Search order: customPath -> ~/.stacktower/configs/stack.yaml -> ./configs/stack.yaml -> embedded default.
// Files only need to contain the keys they override.
func LoadStack(customPath string) (StackConfig, error) {
	cfg, _, err := LoadStackWithSource(customPath)
	return cfg, err
}

// LoadStackWithSource is LoadStack that also reports which file was used
// ("embedded" for the built-in default).
func LoadStackWithSource(customPath string) (StackConfig, string, error) {
	cfg, source, err := loadStack(customPath)
	if err != nil {
		return cfg, source, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, source, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, source, nil
}

func loadStack(customPath string) (StackConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return StackConfig{}, customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseStack(data)
		if err != nil {
			return StackConfig{}, customPath, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then the local one
	for _, path := range []string{userConfigPath(stackConfigFile), filepath.Join("configs", stackConfigFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parseStack(data); err == nil {
				return cfg, path, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parseStack(defaultStackYAML)
	if err != nil {
		return DefaultStackConfig(), "embedded", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// parseStack decodes YAML on top of the built-in defaults. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func parseStack(data []byte) (StackConfig, error) {
	cfg := DefaultStackConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return StackConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stacktower", "configs", filename)
}

// ApplyStackPreset modifies the config based on a difficulty preset.
func ApplyStackPreset(cfg *StackConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust tolerances and speed based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Thresholds.Perfect *= 1.5
		scaleSpeeds(cfg, 0.8)
	case DifficultyHard:
		cfg.Thresholds.Perfect *= 0.6
		scaleSpeeds(cfg, 1.25)
	}
}

func scaleSpeeds(cfg *StackConfig, f float64) {
	cfg.Platform.MoveSpeed *= f
	for i := range cfg.Levels {
		cfg.Levels[i].Speed *= f
	}
}
