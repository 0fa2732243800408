package ballbreaker

import (
	"fmt"

	"github.com/vovakirdan/ball-breaker/internal/config"
)

// Autoplay is a simple policy that plays a session without input: it
// spins when few balls are in play, stops the reel at once, launches every
// outcome and optionally skips randomizer animations.
type Autoplay struct {
	MinBalls       int  // Spin again when fewer balls than this are in flight
	SkipAnimations bool
}

// DefaultAutoplay returns the policy used by the sim command.
func DefaultAutoplay() Autoplay {
	return Autoplay{MinBalls: 2, SkipAnimations: true}
}

// Act issues this tick's requests.
func (a Autoplay) Act(s *Session) {
	if s.Terminal() {
		return
	}
	if a.SkipAnimations {
		s.RequestSkipAnimation()
	}
	if s.Reel().Phase() == ReelSpinning {
		s.RequestStop()
	}
	s.LaunchReady()
	if len(s.Balls())+s.Queued() < a.MinBalls {
		s.RequestSpin()
	}
}

// SimOptions configures a headless run.
type SimOptions struct {
	Seed     int64
	Width    float64
	Height   float64
	TickMs   float64
	MaxTicks int
	Weights  ColorWeights
	Policy   Autoplay
}

// DefaultSimOptions returns an 80x24-terminal-sized arena at 60 Hz.
func DefaultSimOptions(seed int64) SimOptions {
	w, h := ArenaSize(80, 24)
	return SimOptions{
		Seed:     seed,
		Width:    w,
		Height:   h,
		TickMs:   1000.0 / 60,
		MaxTicks: 60 * 60 * 30,
		Policy:   DefaultAutoplay(),
	}
}

// Simulate plays one seeded session to completion under the autoplay
// policy. Extra options are applied after the seed. It returns the partial
// result and an error when MaxTicks pass without a terminal state.
func Simulate(cfg config.BallBreakerConfig, opts SimOptions, extra ...Option) (Result, error) {
	sessOpts := append([]Option{WithSeed(opts.Seed)}, extra...)
	s := NewSession(cfg, sessOpts...)
	s.StartSession(opts.Width, opts.Height, opts.Weights)

	for range opts.MaxTicks {
		opts.Policy.Act(s)
		s.Tick(opts.TickMs)
		if s.Terminal() {
			return s.Result(), nil
		}
	}
	return s.Result(), fmt.Errorf("ballbreaker: seed %d did not finish within %d ticks", opts.Seed, opts.MaxTicks)
}
