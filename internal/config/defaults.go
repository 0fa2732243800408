package config

import (
	_ "embed"
)

//go:embed defaults/ballbreaker.yaml
var defaultBallBreakerYAML []byte

// DefaultBallBreakerConfig returns the hardcoded ball breaker configuration.
// It mirrors defaults/ballbreaker.yaml and is used when the embedded file
// cannot be parsed.
func DefaultBallBreakerConfig() BallBreakerConfig {
	return BallBreakerConfig{
		Arena: ArenaConfig{
			BasketHeight: 40,
			LaunchMargin: 40,
		},
		Ball: BallConfig{
			Radius:           6,
			Speed:            420,
			Gravity:          300,
			BoostMultiplier:  1.6,
			BoostGraceMs:     250,
			PierceMultiplier: 1.3,
			SpawnSpread:      0.35,
		},
		Launcher: LauncherConfig{
			Speed:  90,
			Margin: 30,
		},
		Damage: DamageConfig{
			MatchDamage:     3,
			ChipDamage:      1,
			HitCredit:       1,
			DestroyCredit:   5,
			ExplosionRadius: 60,
			BreakingMs:      200,
		},
		Level: LevelConfig{
			Blocks:             18,
			BlockWidth:         40,
			BlockHeight:        18,
			MaxHP:              3,
			NeutralChance:      0.1,
			Walls:              3,
			WallLength:         70,
			WallThickness:      10,
			MaxRotation:        0.6,
			DestructibleChance: 0.5,
			WallHP:             3,
			Clearance:          8,
			BandBottom:         60,
			BandTop:            40,
			MaxAttempts:        400,
		},
		Baskets: BasketConfig{
			Single:     2,
			Triple:     2,
			Bonus:      1,
			CooldownMs: 8000,
		},
		Reel: ReelConfig{
			SlowIntervalMs: 120,
			FastIntervalMs: 50,
			StopDelayMs:    350,
			ResultDelayMs:  800,
			AutoStopMs:     2500,
			Bias:           0.3,
		},
		Wheel: WheelConfig{
			AngularSpeed:  12,
			SpinMs:        1200,
			MinExtraTurns: 0.3,
			MaxExtraTurns: 0.8,
			Ease:          0.08,
			Epsilon:       0.002,
			ResultDelayMs: 900,
			CooldownMs:    10000,
		},
		Bonus: BonusConfig{
			Targets:          5,
			TargetHP:         2,
			TargetRadius:     14,
			GhostMs:          1800,
			WarningMs:        400,
			SolidMs:          700,
			Knockback:        2,
			RevealSlots:      5,
			RevealIntervalMs: 600,
			SuccessChance:    0.5,
			RewardSpawnMs:    250,
			RainbowChance:    0.05,
			Spread:           40,
		},
		Session: SessionConfig{
			InitialSpins:    10,
			SpawnIntervalMs: 120,
			MaxQueued:       60,
			ComboWindowMs:   1500,
			ComboStep:       5,
			HitStopMs:       60,
			AutoLaunch:      false,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionScore,
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "ballbreaker":
		return defaultBallBreakerYAML
	default:
		return nil
	}
}
