// Package config provides YAML-based level configuration loading and
// difficulty management for the stack tower game.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// StackConfig contains all configuration for the stack tower game.
type StackConfig struct {
	Platform   PlatformConfig   `yaml:"platform"`
	Thresholds ThresholdConfig  `yaml:"thresholds"`
	Debris     DebrisConfig     `yaml:"debris"`
	Levels     []LevelConfig    `yaml:"levels"`
	Endless    EndlessConfig    `yaml:"endless"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlatformConfig defines platform geometry and motion, in world units
// (one unit is one terminal column).
type PlatformConfig struct {
	Width         float64 `yaml:"width"`
	Depth         float64 `yaml:"depth"`
	SpawnGap      float64 `yaml:"spawn_gap"`
	SpawnDistance float64 `yaml:"spawn_distance"`
	MoveSpeed     float64 `yaml:"move_speed"` // units per second
	Colors        int     `yaml:"colors"`     // palette size
}

// ThresholdConfig defines placement tolerances.
type ThresholdConfig struct {
	Perfect float64 `yaml:"perfect"` // max |dx| for a perfect placement
}

// DebrisConfig defines how severed pieces fall.
type DebrisConfig struct {
	Lifetime float64 `yaml:"lifetime"` // seconds
	Impulse  float64 `yaml:"impulse"`  // lateral units per second
	Gravity  float64 `yaml:"gravity"`  // rows per second squared
}

// LevelConfig describes one campaign level.
type LevelConfig struct {
	Name   string  `yaml:"name"`
	Target int     `yaml:"target"`
	Speed  float64 `yaml:"speed"` // 0 uses platform.move_speed
}

// EndlessConfig describes the endless mode: an unbounded series of levels
// whose speed follows the difficulty curve.
type EndlessConfig struct {
	Target int `yaml:"target"` // platforms per endless stage
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier    float64 `yaml:"speed_multiplier"`    // added to speed at max difficulty
	ThresholdReduction float64 `yaml:"threshold_reduction"` // fraction of the perfect threshold removed at max difficulty
}

// Level returns the campaign level at 0-based index i.
func (c StackConfig) Level(i int) (LevelConfig, bool) {
	if i < 0 || i >= len(c.Levels) {
		return LevelConfig{}, false
	}
	return c.Levels[i], true
}

// LevelSpeed returns the platform speed of campaign level i.
func (c StackConfig) LevelSpeed(i int) float64 {
	if lvl, ok := c.Level(i); ok && lvl.Speed > 0 {
		return lvl.Speed
	}
	return c.Platform.MoveSpeed
}

// Validate reports every problem in the configuration at once.
func (c StackConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("platform.width", c.Platform.Width)
	positive("platform.depth", c.Platform.Depth)
	positive("platform.spawn_distance", c.Platform.SpawnDistance)
	positive("platform.move_speed", c.Platform.MoveSpeed)
	if c.Platform.SpawnGap < 0 {
		errs = append(errs, fmt.Errorf("platform.spawn_gap must not be negative, got %v", c.Platform.SpawnGap))
	}
	if c.Platform.Colors < 1 {
		errs = append(errs, fmt.Errorf("platform.colors must be at least 1, got %d", c.Platform.Colors))
	}
	if c.Thresholds.Perfect < 0 {
		errs = append(errs, fmt.Errorf("thresholds.perfect must not be negative, got %v", c.Thresholds.Perfect))
	}
	if c.Debris.Lifetime < 0 || c.Debris.Gravity < 0 {
		errs = append(errs, errors.New("debris.lifetime and debris.gravity must not be negative"))
	}

	if len(c.Levels) == 0 {
		errs = append(errs, errors.New("levels must contain at least one level"))
	}
	for i, lvl := range c.Levels {
		if lvl.Target < 1 {
			errs = append(errs, fmt.Errorf("levels[%d].target must be at least 1, got %d", i, lvl.Target))
		}
		if lvl.Speed < 0 {
			errs = append(errs, fmt.Errorf("levels[%d].speed must not be negative, got %v", i, lvl.Speed))
		}
	}
	if c.Endless.Target < 1 {
		errs = append(errs, fmt.Errorf("endless.target must be at least 1, got %d", c.Endless.Target))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid stack config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty converts a flag value to a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
