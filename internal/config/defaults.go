package config

import (
	_ "embed"
)

//go:embed defaults/stack.yaml
var defaultStackYAML []byte

// DefaultStackConfig returns the built-in configuration. It mirrors
// defaults/stack.yaml and is used if the embedded file cannot be parsed.
func DefaultStackConfig() StackConfig {
	return StackConfig{
		Platform: PlatformConfig{
			Width:         20,
			Depth:         1,
			SpawnGap:      0,
			SpawnDistance: 26,
			MoveSpeed:     14,
			Colors:        7,
		},
		Thresholds: ThresholdConfig{
			Perfect: 0.6,
		},
		Debris: DebrisConfig{
			Lifetime: 3,
			Impulse:  6,
			Gravity:  30,
		},
		Levels: []LevelConfig{
			{Name: "Foundation", Target: 10, Speed: 12},
			{Name: "Second Floor", Target: 12, Speed: 14},
			{Name: "Rising", Target: 15, Speed: 16},
			{Name: "Skyline", Target: 18, Speed: 19},
			{Name: "Summit", Target: 22, Speed: 22},
		},
		Endless: EndlessConfig{
			Target: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:    1.5,
				ThresholdReduction: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "stack", "stack_endless":
		return defaultStackYAML
	default:
		return nil
	}
}
