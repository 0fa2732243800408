// Package config provides YAML-based tuning for the ball breaker simulation
// and difficulty management. A loaded BallBreakerConfig is an immutable value
// handed to the session at construction time.
//
// Distances are arena units, speeds are units per second and durations are
// milliseconds of simulation clock.
package config

// BallBreakerConfig contains all tuning for a ball breaker session.
type BallBreakerConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Ball       BallConfig       `yaml:"ball"`
	Launcher   LauncherConfig   `yaml:"launcher"`
	Damage     DamageConfig     `yaml:"damage"`
	Level      LevelConfig      `yaml:"level"`
	Baskets    BasketConfig     `yaml:"baskets"`
	Reel       ReelConfig       `yaml:"reel"`
	Wheel      WheelConfig      `yaml:"wheel"`
	Bonus      BonusConfig      `yaml:"bonus"`
	Session    SessionConfig    `yaml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig defines the fixed strips of the playfield.
type ArenaConfig struct {
	BasketHeight float64 `yaml:"basket_height"` // Height of the bottom scoring strip
	LaunchMargin float64 `yaml:"launch_margin"` // Distance of the launch lane below the top edge
}

// BallConfig defines ball physics.
type BallConfig struct {
	Radius           float64 `yaml:"radius"`
	Speed            float64 `yaml:"speed"`
	Gravity          float64 `yaml:"gravity"` // Downward acceleration; 0 disables
	BoostMultiplier  float64 `yaml:"boost_multiplier"`
	BoostGraceMs     float64 `yaml:"boost_grace_ms"` // Boost survives edge hits for this long after spawn
	PierceMultiplier float64 `yaml:"pierce_multiplier"`
	SpawnSpread      float64 `yaml:"spawn_spread"` // Max launch angle off vertical, radians
}

// LauncherConfig defines the moving launch point.
type LauncherConfig struct {
	Speed  float64 `yaml:"speed"`
	Margin float64 `yaml:"margin"` // Patrol stays this far from the side edges
}

// DamageConfig defines block damage and score credit.
type DamageConfig struct {
	MatchDamage     int     `yaml:"match_damage"`
	ChipDamage      int     `yaml:"chip_damage"`
	HitCredit       int     `yaml:"hit_credit"`
	DestroyCredit   int     `yaml:"destroy_credit"`
	ExplosionRadius float64 `yaml:"explosion_radius"`
	BreakingMs      float64 `yaml:"breaking_ms"`
}

// LevelConfig defines rejection-sampled block and wall placement.
type LevelConfig struct {
	Blocks             int     `yaml:"blocks"`
	BlockWidth         float64 `yaml:"block_width"`
	BlockHeight        float64 `yaml:"block_height"`
	MaxHP              int     `yaml:"max_hp"`
	NeutralChance      float64 `yaml:"neutral_chance"`
	Walls              int     `yaml:"walls"`
	WallLength         float64 `yaml:"wall_length"`
	WallThickness      float64 `yaml:"wall_thickness"`
	MaxRotation        float64 `yaml:"max_rotation"`
	DestructibleChance float64 `yaml:"destructible_chance"`
	WallHP             int     `yaml:"wall_hp"`
	Clearance          float64 `yaml:"clearance"`
	BandBottom         float64 `yaml:"band_bottom"` // Free space kept above the basket strip
	BandTop            float64 `yaml:"band_top"`    // Free space kept below the launch lane
	MaxAttempts        int     `yaml:"max_attempts"`
}

// BasketConfig defines the basket multiset and bonus-trigger cooldown.
// The three counts must add up to five slots.
type BasketConfig struct {
	Single     int     `yaml:"single"` // 1x slots
	Triple     int     `yaml:"triple"` // 3x slots
	Bonus      int     `yaml:"bonus"`  // bonus-trigger slots
	CooldownMs float64 `yaml:"cooldown_ms"`
}

// ReelConfig defines the three-reel randomizer timing and bias.
type ReelConfig struct {
	SlowIntervalMs float64 `yaml:"slow_interval_ms"`
	FastIntervalMs float64 `yaml:"fast_interval_ms"`
	StopDelayMs    float64 `yaml:"stop_delay_ms"`
	ResultDelayMs  float64 `yaml:"result_delay_ms"`
	AutoStopMs     float64 `yaml:"auto_stop_ms"` // 0 waits for an explicit stop
	Bias           float64 `yaml:"bias"`
}

// WheelConfig defines the ability wheel.
type WheelConfig struct {
	AngularSpeed  float64 `yaml:"angular_speed"` // Radians per second
	SpinMs        float64 `yaml:"spin_ms"`
	MinExtraTurns float64 `yaml:"min_extra_turns"`
	MaxExtraTurns float64 `yaml:"max_extra_turns"`
	Ease          float64 `yaml:"ease"` // Fraction of remaining rotation covered per 60 Hz frame
	Epsilon       float64 `yaml:"epsilon"`
	ResultDelayMs float64 `yaml:"result_delay_ms"`
	CooldownMs    float64 `yaml:"cooldown_ms"`
}

// BonusConfig defines the field-clear bonus round.
type BonusConfig struct {
	Targets          int     `yaml:"targets"`
	TargetHP         int     `yaml:"target_hp"`
	TargetRadius     float64 `yaml:"target_radius"`
	GhostMs          float64 `yaml:"ghost_ms"`
	WarningMs        float64 `yaml:"warning_ms"`
	SolidMs          float64 `yaml:"solid_ms"`
	Knockback        float64 `yaml:"knockback"` // Extra push-out distance on a solid hit
	RevealSlots      int     `yaml:"reveal_slots"`
	RevealIntervalMs float64 `yaml:"reveal_interval_ms"`
	SuccessChance    float64 `yaml:"success_chance"`
	RewardSpawnMs    float64 `yaml:"reward_spawn_ms"`
	RainbowChance    float64 `yaml:"rainbow_chance"`
	Spread           float64 `yaml:"spread"` // Max horizontal offset of reward spawns
}

// SessionConfig defines resources, the spawn queue and combo tracking.
type SessionConfig struct {
	InitialSpins    int     `yaml:"initial_spins"`
	SpawnIntervalMs float64 `yaml:"spawn_interval_ms"`
	MaxQueued       int     `yaml:"max_queued"`
	ComboWindowMs   float64 `yaml:"combo_window_ms"`
	ComboStep       int     `yaml:"combo_step"`
	HitStopMs       float64 `yaml:"hit_stop_ms"`
	AutoLaunch      bool    `yaml:"auto_launch"` // Launch reel outcomes without waiting for input
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// Progression types.
const (
	ProgressionScore   = "score"
	ProgressionTime    = "time"
	ProgressionCleared = "cleared"
	ProgressionNone    = "none"
)

// ProgressionConfig defines how difficulty increases over a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", "cleared" or "none"
	MaxAt int    `yaml:"max_at"` // Score, ticks or percent cleared at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to launcher speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
