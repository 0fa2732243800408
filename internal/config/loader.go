package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBallBreaker loads ball breaker configuration.
// Search order: customPath -> ~/.ballbreaker/configs/ballbreaker.yaml -> ./configs/ballbreaker.yaml -> embedded default
//
// Files are decoded on top of the hardcoded defaults, so partial files only
// override the keys they name.
func LoadBallBreaker(customPath string) (BallBreakerConfig, error) {
	cfg := DefaultBallBreakerConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("ballbreaker.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "ballbreaker.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	embedded := DefaultBallBreakerConfig()
	if err := yaml.Unmarshal(defaultBallBreakerYAML, &embedded); err != nil {
		return DefaultBallBreakerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads and validates an optional config file. Missing or broken
// files are skipped so the next source in the search order is used.
func tryLoad(path string) (BallBreakerConfig, bool) {
	cfg := DefaultBallBreakerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ballbreaker", "configs", filename)
}

// Validate reports the first tuning value that would break the simulation.
func (c BallBreakerConfig) Validate() error {
	switch {
	case c.Ball.Radius <= 0:
		return fmt.Errorf("ball.radius must be positive, got %v", c.Ball.Radius)
	case c.Ball.Speed <= 0:
		return fmt.Errorf("ball.speed must be positive, got %v", c.Ball.Speed)
	case c.Ball.BoostMultiplier < 1:
		return fmt.Errorf("ball.boost_multiplier must be >= 1, got %v", c.Ball.BoostMultiplier)
	case c.Ball.PierceMultiplier < 1:
		return fmt.Errorf("ball.pierce_multiplier must be >= 1, got %v", c.Ball.PierceMultiplier)
	case c.Baskets.Single+c.Baskets.Triple+c.Baskets.Bonus != 5:
		return fmt.Errorf("baskets must describe exactly 5 slots, got %d",
			c.Baskets.Single+c.Baskets.Triple+c.Baskets.Bonus)
	case c.Baskets.Single < 0 || c.Baskets.Triple < 0 || c.Baskets.Bonus < 0:
		return fmt.Errorf("basket counts must not be negative")
	case c.Reel.Bias < 0 || c.Reel.Bias > 1:
		return fmt.Errorf("reel.bias must be within [0, 1], got %v", c.Reel.Bias)
	case c.Reel.SlowIntervalMs <= 0 || c.Reel.FastIntervalMs <= 0:
		return fmt.Errorf("reel intervals must be positive")
	case c.Wheel.Ease <= 0 || c.Wheel.Ease > 1:
		return fmt.Errorf("wheel.ease must be within (0, 1], got %v", c.Wheel.Ease)
	case c.Wheel.Epsilon <= 0:
		return fmt.Errorf("wheel.epsilon must be positive, got %v", c.Wheel.Epsilon)
	case c.Wheel.MinExtraTurns > c.Wheel.MaxExtraTurns:
		return fmt.Errorf("wheel.min_extra_turns exceeds max_extra_turns")
	case c.Bonus.Targets <= 0 || c.Bonus.TargetHP <= 0:
		return fmt.Errorf("bonus targets and target_hp must be positive")
	case c.Bonus.RewardSpawnMs <= 0 || c.Bonus.RevealIntervalMs <= 0:
		return fmt.Errorf("bonus intervals must be positive")
	case c.Session.MaxQueued <= 0:
		return fmt.Errorf("session.max_queued must be positive, got %d", c.Session.MaxQueued)
	case c.Session.ComboStep <= 0:
		return fmt.Errorf("session.combo_step must be positive, got %d", c.Session.ComboStep)
	case c.Level.MaxAttempts <= 0:
		return fmt.Errorf("level.max_attempts must be positive, got %d", c.Level.MaxAttempts)
	case c.Level.MaxHP <= 0:
		return fmt.Errorf("level.max_hp must be positive, got %d", c.Level.MaxHP)
	}
	return nil
}

// ApplyBallBreakerPreset modifies the config based on a difficulty preset.
func ApplyBallBreakerPreset(cfg *BallBreakerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust resources and luck based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Session.InitialSpins = 15
		cfg.Level.MaxHP = 2
		cfg.Reel.Bias = 0.5
	case DifficultyHard:
		cfg.Session.InitialSpins = 7
		cfg.Level.MaxHP = 4
		cfg.Reel.Bias = 0.15
	}
}
