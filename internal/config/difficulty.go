package config

import "math"

// Progress is how far a session has come, in every unit a progression
// type can be measured in.
type Progress struct {
	Score   int
	Ticks   int
	Cleared float64 // Fraction of the starting colored blocks destroyed, 0..1
}

// DifficultyManager maps session progress to a difficulty level and the
// tuning values derived from it.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0, 1),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0, 1)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the difficulty in [initial, 1] for p. For the cleared
// progression MaxAt is a percentage of the field.
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))

	var progress float64
	switch d.cfg.Progression.Type {
	case ProgressionScore:
		progress = float64(p.Score) / maxAt
	case ProgressionTime:
		progress = float64(p.Ticks) / maxAt
	case ProgressionCleared:
		progress = p.Cleared * 100 / maxAt
	default:
		return d.initialLevel
	}

	return d.initialLevel + clampF(progress, 0, 1)*(1-d.initialLevel)
}

// Speed returns base scaled up by SpeedMultiplier at full difficulty.
func (d *DifficultyManager) Speed(base float64, p Progress) float64 {
	return base * (1 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier)
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
