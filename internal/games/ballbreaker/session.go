package ballbreaker

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/core"
)

// Session is the aggregate game state. It owns every entity and the three
// state machines, and is mutated only by Tick and the Request methods.
type Session struct {
	cfg        config.BallBreakerConfig
	difficulty *config.DifficultyManager

	rng    Random
	sinks  []Sink
	sink   Sink
	afford Affordability
	clock  Clock
	logger *log.Logger

	width   float64
	height  float64
	weights ColorWeights

	now       float64
	ticks     int
	startedAt time.Time

	startBlocks int // Colored blocks at session start

	launcher   Launcher
	balls      []*Ball
	blocks     []*Block
	walls      []*Wall
	baskets    [NumBaskets]Basket
	queue      []pendingSpawn
	nextBallID int

	reel  *Reel
	wheel *Wheel
	bonus *Bonus

	ready          ReelOutcome
	hasReady       bool
	pendingAbility Ability
	wheelScheduled bool
	bonusArmed     bool

	spins       int
	spinsUsed   int
	score       int
	combo       int
	comboUntil  float64
	hitStopLeft float64

	won   bool
	lost  bool
	ended bool
}

// NewSession creates a session from an immutable configuration. Call
// StartSession before ticking.
func NewSession(cfg config.BallBreakerConfig, opts ...Option) *Session {
	s := &Session{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRandom(time.Now().UnixNano())
	}
	if s.clock == nil {
		s.clock = ClockFunc(time.Now)
	}
	if s.logger == nil {
		s.logger = discardLogger()
	}
	switch len(s.sinks) {
	case 0:
		s.sink = discardSink{}
	case 1:
		s.sink = s.sinks[0]
	default:
		s.sink = multiSink(s.sinks)
	}
	if s.afford == nil {
		s.afford = func() bool { return s.spins > 0 }
	}

	s.reel = NewReel(cfg.Reel)
	s.wheel = NewWheel(cfg.Wheel)
	s.bonus = NewBonus(cfg.Bonus, s.sink)
	return s
}

// StartSession resets all state for a new game in a w by h arena. Block
// colors follow weights; an empty table is uniform.
func (s *Session) StartSession(w, h float64, weights ColorWeights) {
	s.width, s.height = w, h
	s.weights = weights
	s.now = 0
	s.ticks = 0
	s.startedAt = s.clock.Now()

	s.launcher = newLauncher(w, h, s.cfg.Launcher.Margin, s.cfg.Arena.LaunchMargin)
	s.balls = nil
	s.queue = nil
	s.nextBallID = 0

	s.reel = NewReel(s.cfg.Reel)
	s.wheel = NewWheel(s.cfg.Wheel)
	s.bonus = NewBonus(s.cfg.Bonus, s.sink)
	s.ready = ReelOutcome{}
	s.hasReady = false
	s.pendingAbility = AbilityNone
	s.wheelScheduled = false

	s.spins = s.cfg.Session.InitialSpins
	s.spinsUsed = 0
	s.score = 0
	s.combo = 0
	s.comboUntil = 0
	s.hitStopLeft = 0
	s.won, s.lost, s.ended = false, false, false

	bc := s.cfg.Baskets
	s.baskets = permuteBaskets(bc.Single, bc.Triple, bc.Bonus, s.rng)

	lvl := GenerateLevel(s.cfg, w, h, weights, s.rng, s.logger)
	s.blocks = lvl.Blocks
	s.walls = lvl.Walls
	s.startBlocks = s.RemainingBlocks()
	s.bonusArmed = s.startBlocks > 0

	s.logger.Debug("session started",
		"arena", [2]float64{w, h},
		"blocks", len(s.blocks),
		"walls", len(s.walls),
		"spins", s.spins,
	)
}

// Tick advances the simulation by dt milliseconds.
func (s *Session) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	// Hit-stop freezes the clock itself, so every timestamp waits with it.
	// The part of dt past the stop still runs.
	if s.hitStopLeft > 0 {
		s.hitStopLeft -= dt
		if s.hitStopLeft >= 0 {
			return
		}
		dt = -s.hitStopLeft
		s.hitStopLeft = 0
	}

	s.now += dt
	s.ticks++

	if s.Terminal() {
		s.advanceBreaking(dt)
		return
	}

	s.moveLauncher(dt)

	if out, ok := s.reel.Update(s.now, s.rng); ok {
		s.onReelOutcome(out)
	}
	if ability, ok := s.wheel.Update(s.now, dt, s.rng); ok {
		s.applyAbility(ability)
	}
	for _, c := range s.bonus.Update(s.now, s.rng) {
		s.spawnReward(c)
	}

	if s.Frozen() {
		s.shiftQueue(dt)
	} else {
		s.processQueue()
		s.stepBalls(dt)
		s.resolveBaskets()
	}

	s.advanceBreaking(dt)
	s.expireCombo()
	s.checkBonus()
	s.startScheduledWheel()
	s.evaluateEnd()
}

// Frozen reports whether balls are held in place while a randomizer
// animates.
func (s *Session) Frozen() bool {
	return !s.wheel.Idle() || s.bonus.Phase() == BonusRevealing
}

// RequestSpin starts a reel round, spending one spin. It is ignored while
// the session is over, the reel is busy, a bonus round runs, an outcome is
// waiting to launch or no spins remain.
func (s *Session) RequestSpin() bool {
	if s.Terminal() || !s.reel.Idle() || s.bonus.Active() || s.hasReady || s.spins <= 0 {
		return false
	}
	if !s.reel.Start(s.now, s.rng) {
		return false
	}
	s.spins--
	s.spinsUsed++
	return true
}

// RequestStop locks the first reel. Ignored unless the reel is spinning.
func (s *Session) RequestStop() bool {
	if s.Terminal() {
		return false
	}
	return s.reel.Stop(s.now)
}

// RequestSkipAnimation fast-forwards the wheel, else the reel, else the
// bonus reveal. It returns false when nothing was skippable.
func (s *Session) RequestSkipAnimation() bool {
	if s.Terminal() {
		return false
	}
	if ability, ok := s.wheel.Skip(s.now, s.rng); ok {
		s.applyAbility(ability)
		return true
	}
	if s.reel.Skip(s.now, s.rng) {
		return true
	}
	return s.bonus.SkipReveal(s.now)
}

// LaunchReady queues the waiting reel outcome.
func (s *Session) LaunchReady() bool {
	if !s.hasReady || s.Terminal() {
		return false
	}
	out := s.ready
	s.ready = ReelOutcome{}
	s.hasReady = false
	s.RequestLaunch(out.Color, out.Count)
	return true
}

// AddSpins grants n more reel rounds.
func (s *Session) AddSpins(n int) {
	if n > 0 {
		s.spins += n
	}
}

// RequestHitStop freezes the simulation clock for ms milliseconds. A longer
// pending hit-stop is kept.
func (s *Session) RequestHitStop(ms float64) {
	if ms > s.hitStopLeft {
		s.hitStopLeft = ms
	}
}

// SteerLauncher turns the launch point left (dir < 0) or right (dir > 0).
func (s *Session) SteerLauncher(dir int) {
	s.launcher.steer(dir)
}

func (s *Session) onReelOutcome(out ReelOutcome) {
	s.sink.Emit(ReelResolved{Outcome: out})
	if s.cfg.Session.AutoLaunch {
		s.RequestLaunch(out.Color, out.Count)
		return
	}
	s.ready = out
	s.hasReady = true
}

// applyAbility broadcasts a wheel result to the balls in play, or stashes
// it for the next batch when none are.
func (s *Session) applyAbility(a Ability) {
	segment := s.wheel.Segment()
	if a == AbilityNone {
		s.sink.Emit(WheelResolved{Segment: segment, Ability: a})
		return
	}
	if len(s.balls) == 0 {
		s.pendingAbility = a
		s.sink.Emit(WheelResolved{Segment: segment, Ability: a, Pending: true})
		return
	}
	if a == AbilityDuplicate {
		s.duplicateBalls()
	} else {
		for _, b := range s.balls {
			b.Grant(a)
		}
	}
	s.sink.Emit(WheelResolved{Segment: segment, Ability: a})
}

// checkBonus starts the bonus round on a field clear and abandons a
// collecting round nothing can finish. The trigger re-arms only once
// blocks are back on the field.
func (s *Session) checkBonus() {
	if s.RemainingBlocks() > 0 {
		s.bonusArmed = true
		return
	}
	if s.bonusArmed && !s.bonus.Active() && len(s.balls) > 0 {
		s.bonusArmed = false
		s.bonus.Start(s.now, Playfield(s.cfg, s.width, s.height), s.rng)
		return
	}
	if s.bonus.Phase() == BonusCollecting && !s.inFlight() {
		s.logger.Debug("bonus round abandoned, no balls left")
		s.bonus.Abort()
	}
}

func (s *Session) startScheduledWheel() {
	if !s.wheelScheduled {
		return
	}
	s.wheelScheduled = false
	if s.RemainingBlocks() == 0 {
		return
	}
	if s.wheel.Start(s.now, s.rng) {
		s.sink.Emit(WheelStarted{})
	}
}

// inFlight reports whether any ball is active, queued or waiting to launch.
func (s *Session) inFlight() bool {
	return len(s.balls) > 0 || len(s.queue) > 0 || s.hasReady
}

// evaluateEnd sets the terminal state once every state machine is idle.
func (s *Session) evaluateEnd() {
	if !s.reel.Idle() || !s.wheel.Idle() || s.bonus.Active() {
		return
	}
	if s.inFlight() {
		return
	}
	switch {
	case s.RemainingBlocks() == 0:
		s.end(true)
	case !s.afford():
		s.end(false)
	}
}

func (s *Session) end(won bool) {
	if s.ended {
		return
	}
	s.ended = true
	s.won = won
	s.lost = !won
	s.balls = nil
	s.queue = nil
	s.sink.Emit(SessionEnded{Won: won, TotalScore: s.score})
	s.logger.Debug("session ended", "won", won, "score", s.score, "elapsed_ms", s.now)
}

// Score returns the running score total.
func (s *Session) Score() int { return s.score }

// progress reports how far the session has come for difficulty scaling.
func (s *Session) progress() config.Progress {
	p := config.Progress{Score: s.score, Ticks: s.ticks}
	if s.startBlocks > 0 {
		p.Cleared = 1 - float64(s.RemainingBlocks())/float64(s.startBlocks)
	}
	return p
}

// RemainingBlocks counts non-neutral blocks that are not yet destroyed.
func (s *Session) RemainingBlocks() int {
	n := 0
	for _, b := range s.blocks {
		if b.Color != ColorNeutral && !b.Breaking() {
			n++
		}
	}
	return n
}

// Won reports whether the session ended in a win.
func (s *Session) Won() bool { return s.won }

// Lost reports whether the session ended in a loss.
func (s *Session) Lost() bool { return s.lost }

// Terminal reports whether the session is over.
func (s *Session) Terminal() bool { return s.won || s.lost }

// Balls returns the active balls.
func (s *Session) Balls() []*Ball { return s.balls }

// Blocks returns the blocks still on the field, including breaking ones.
func (s *Session) Blocks() []*Block { return s.blocks }

// Walls returns the standing walls.
func (s *Session) Walls() []*Wall { return s.walls }

// Baskets returns the slot assignment.
func (s *Session) Baskets() [NumBaskets]Basket { return s.baskets }

// Reel returns the reel randomizer.
func (s *Session) Reel() *Reel { return s.reel }

// Wheel returns the ability wheel.
func (s *Session) Wheel() *Wheel { return s.wheel }

// Bonus returns the bonus round.
func (s *Session) Bonus() *Bonus { return s.bonus }

// LaunchPoint returns the current launcher position.
func (s *Session) LaunchPoint() core.Vec2 { return s.launcher.Pos }

// Spins returns the remaining reel rounds.
func (s *Session) Spins() int { return s.spins }

// SpinsUsed returns the reel rounds started this session.
func (s *Session) SpinsUsed() int { return s.spinsUsed }

// Ready returns the reel outcome waiting to launch, if any.
func (s *Session) Ready() (ReelOutcome, bool) { return s.ready, s.hasReady }

// PendingAbility returns the wheel ability waiting for the next batch.
func (s *Session) PendingAbility() Ability { return s.pendingAbility }

// Now returns the simulation clock in milliseconds.
func (s *Session) Now() float64 { return s.now }

// Queued returns the number of balls waiting in the spawn queue.
func (s *Session) Queued() int { return len(s.queue) }

// Combo returns the current destroy streak.
func (s *Session) Combo() int { return s.combo }

// HitStopped reports whether a hit-stop is holding the clock.
func (s *Session) HitStopped() bool { return s.hitStopLeft > 0 }

// StartedAt returns the wall-clock time StartSession was called.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Size returns the arena dimensions.
func (s *Session) Size() (w, h float64) { return s.width, s.height }

// Config returns the session configuration.
func (s *Session) Config() config.BallBreakerConfig { return s.cfg }

// Result summarizes a session for storage and reporting.
type Result struct {
	Won        bool
	Score      int
	DurationMs float64 // Simulation clock at the time of the call
	BlocksLeft int
	SpinsUsed  int
	StartedAt  time.Time
}

// Result returns the session summary so far.
func (s *Session) Result() Result {
	return Result{
		Won:        s.won,
		Score:      s.score,
		DurationMs: s.now,
		BlocksLeft: s.RemainingBlocks(),
		SpinsUsed:  s.spinsUsed,
		StartedAt:  s.startedAt,
	}
}
