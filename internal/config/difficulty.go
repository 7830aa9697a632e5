package config

// DifficultyManager turns a run's score or elapsed ticks into a difficulty
// level in [0, 1] and scales platform speed and the perfect threshold by it.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64
}

// NewDifficultyManager starts at cfg.InitialLevel.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, floor: unit(cfg.InitialLevel)}
}

// IsEnabled reports whether the level moves during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level interpolates from the initial level to 1 as the progression
// metric approaches max_at.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.floor
	}
	var metric int
	switch d.cfg.Progression.Type {
	case "score":
		metric = score
	case "time":
		metric = ticks
	default:
		return d.floor
	}
	span := max(d.cfg.Progression.MaxAt, 1)
	t := unit(float64(metric) / float64(span))
	return d.floor + t*(1-d.floor)
}

// Speed returns base scaled up to base * (1 + speed_multiplier) at level 1.
func (d *DifficultyManager) Speed(base float64, score, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// Threshold returns base shrunk by threshold_reduction at level 1.
func (d *DifficultyManager) Threshold(base float64, score, ticks int) float64 {
	return base * (1 - d.Level(score, ticks)*unit(d.cfg.Scaling.ThresholdReduction))
}

func unit(v float64) float64 {
	return min(max(v, 0), 1)
}
