package ballbreaker

import (
	"fmt"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/registry"
)

// Arena units covered by one terminal cell. Cells are roughly twice as tall
// as they are wide.
const (
	cellW = 8.0
	cellH = 16.0
)

// Screen layout: two HUD rows above a bordered arena.
const (
	hudRows    = 2
	minScreenW = 40
	minScreenH = 16
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

func init() {
	registry.Register("ballbreaker", func() registry.Game {
		return New()
	})
}

// Game adapts a Session to the platform's fixed-tick game interface.
type Game struct {
	cfg     config.BallBreakerConfig
	rt      core.RuntimeConfig
	session *Session

	paused   bool
	tooSmall bool
	message  string
	sinks    []Sink
}

// New creates a new ball breaker game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "ballbreaker" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Ball Breaker" }

// AddSink subscribes an extra event sink. Takes effect on the next Reset.
func (g *Game) AddSink(s Sink) {
	g.sinks = append(g.sinks, s)
}

// Reset loads configuration and starts a fresh session sized to the screen.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt

	cfg, err := config.LoadBallBreaker(configPath)
	if err != nil {
		cfg = config.DefaultBallBreakerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBallBreakerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.paused = false
	g.message = ""
	g.tooSmall = rt.ScreenW < minScreenW || rt.ScreenH < minScreenH

	opts := []Option{WithSeed(rt.Seed), WithSink(SinkFunc(g.onEvent))}
	for _, s := range g.sinks {
		opts = append(opts, WithSink(s))
	}
	g.session = NewSession(cfg, opts...)

	w, h := ArenaSize(rt.ScreenW, rt.ScreenH)
	g.session.StartSession(w, h, nil)
}

// ArenaSize returns the arena dimensions that fit a screen of the given
// size in cells.
func ArenaSize(screenW, screenH int) (w, h float64) {
	innerW := max(1, screenW-2)
	innerH := max(1, screenH-hudRows-2)
	return float64(innerW) * cellW, float64(innerH) * cellH
}

// Session returns the underlying simulation.
func (g *Game) Session() *Session { return g.session }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && g.session.Terminal() {
		g.Reset(g.rt)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.session.Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if !g.session.Terminal() {
		g.handleInput(in)
	}
	g.session.Tick(g.rt.TickMillis())

	return core.StepResult{State: g.State()}
}

// handleInput maps platform actions to session requests.
func (g *Game) handleInput(in core.InputFrame) {
	s := g.session
	if in.Has(core.ActionLeft) {
		s.SteerLauncher(-1)
	}
	if in.Has(core.ActionRight) {
		s.SteerLauncher(1)
	}
	if in.Has(core.ActionSkip) {
		s.RequestSkipAnimation()
	}
	if in.Has(core.ActionPrimary) {
		g.primary()
	}
}

// primary is the one-button flow: stop a spinning reel, else launch a
// waiting outcome, else start a new reel round.
func (g *Game) primary() bool {
	s := g.session
	switch {
	case s.Reel().Phase() == ReelSpinning:
		return s.RequestStop()
	case s.LaunchReady():
		return true
	default:
		return s.RequestSpin()
	}
}

// onEvent keeps a one-line message for the HUD.
func (g *Game) onEvent(e Event) {
	switch ev := e.(type) {
	case ReelResolved:
		g.message = fmt.Sprintf("Reel: %d x %s", ev.Outcome.Count, ev.Outcome.Color)
	case WheelResolved:
		switch {
		case ev.Ability == AbilityNone:
			g.message = "Wheel: nothing"
		case ev.Pending:
			g.message = fmt.Sprintf("Wheel: %s (next batch)", ev.Ability)
		default:
			g.message = fmt.Sprintf("Wheel: %s", ev.Ability)
		}
	case ComboMilestone:
		g.message = fmt.Sprintf("Combo x%d!", ev.N)
	case BasketScored:
		g.message = fmt.Sprintf("+%d (%dx)", ev.Amount, ev.Multiplier)
	case BallReturned:
		g.message = "Bonus slot cooling down, ball returned"
	case BonusStarted:
		g.message = "FIELD CLEAR! Collect the targets"
	case BonusFinished:
		if ev.Aborted {
			g.message = "Bonus round lost"
		} else {
			g.message = fmt.Sprintf("Bonus over: %d successes", ev.Successes)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Terminal(),
		Won:      g.session.Won(),
		Paused:   g.paused,
	}
}

// Summary returns the outcome of the current session.
func (g *Game) Summary() Result {
	return g.session.Result()
}
