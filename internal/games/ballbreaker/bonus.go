package ballbreaker

import (
	"math"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/core"
)

// BonusPhase is the state of the bonus round.
type BonusPhase int

const (
	BonusIdle BonusPhase = iota
	BonusCollecting
	BonusRevealing
	BonusRewarding
)

// String returns the name of the phase.
func (p BonusPhase) String() string {
	switch p {
	case BonusIdle:
		return "idle"
	case BonusCollecting:
		return "collecting"
	case BonusRevealing:
		return "revealing"
	case BonusRewarding:
		return "rewarding"
	default:
		return "unknown"
	}
}

// TargetPhase is a point in a target's ghost/solid duty cycle.
type TargetPhase int

const (
	TargetGhost   TargetPhase = iota // Balls pass through
	TargetWarning                    // About to turn solid, still passable
	TargetSolid                      // Interactive
)

// String returns the name of the phase.
func (p TargetPhase) String() string {
	switch p {
	case TargetGhost:
		return "ghost"
	case TargetWarning:
		return "warning"
	case TargetSolid:
		return "solid"
	default:
		return "unknown"
	}
}

// MaxTargets caps the number of collectible targets in a round.
const MaxTargets = 5

// Target is a bonus-round collectible.
type Target struct {
	ID          int
	Pos         core.Vec2
	Radius      float64
	HP          int
	PhaseOffset float64 // Shift into the duty cycle, in milliseconds
	Collected   bool
}

// Bonus is the field-clear bonus round: collect targets, reveal reward
// slots, then auto-fire balls for one second per success.
type Bonus struct {
	cfg  config.BonusConfig
	sink Sink

	phase     BonusPhase
	startedAt float64
	targets   []*Target
	collected int
	contacts  *contactTracker

	slots      []bool
	revealed   int
	nextReveal float64

	successes   int
	rewardUntil float64
	nextSpawn   float64
}

// NewBonus creates an idle bonus round reporting to sink.
func NewBonus(cfg config.BonusConfig, sink Sink) *Bonus {
	if sink == nil {
		sink = discardSink{}
	}
	return &Bonus{cfg: cfg, sink: sink, contacts: newContactTracker()}
}

// Phase returns the current phase.
func (b *Bonus) Phase() BonusPhase { return b.phase }

// Active reports whether a round is in progress.
func (b *Bonus) Active() bool { return b.phase != BonusIdle }

// Targets returns the round's targets.
func (b *Bonus) Targets() []*Target { return b.targets }

// Collected returns how many targets have been collected.
func (b *Bonus) Collected() int { return b.collected }

// Revealed returns the reward slots revealed so far.
func (b *Bonus) Revealed() []bool { return b.slots[:b.revealed] }

// Slots returns the number of reward slots in the current reveal.
func (b *Bonus) Slots() int { return len(b.slots) }

// Resolving returns the slot currently shown as spinning during a reveal.
func (b *Bonus) Resolving() (int, bool) {
	if b.phase != BonusRevealing || b.revealed >= len(b.slots) {
		return 0, false
	}
	return b.revealed, true
}

// Successes returns the number of successful slots of the last reveal.
func (b *Bonus) Successes() int { return b.successes }

// RewardRemaining returns the milliseconds of auto-fire left.
func (b *Bonus) RewardRemaining(now float64) float64 {
	if b.phase != BonusRewarding {
		return 0
	}
	return math.Max(0, b.rewardUntil-now)
}

// Start begins a round, scattering targets across field. It returns false
// when a round is already running.
func (b *Bonus) Start(now float64, field core.Rect, rng Random) bool {
	if b.phase != BonusIdle {
		return false
	}
	b.phase = BonusCollecting
	b.startedAt = now
	b.targets = b.targets[:0]
	b.collected = 0
	b.contacts.Clear()

	r := b.cfg.TargetRadius
	inner := field.Inflate(-r)
	cycle := b.cycle()
	for range b.cfg.Targets {
		pos := inner.Center()
		if inner.W > 0 && inner.H > 0 {
			pos = core.V(between(rng, inner.X, inner.Right()), between(rng, inner.Y, inner.Top()))
		}
		b.addTarget(&Target{
			Pos:         pos,
			Radius:      r,
			HP:          b.cfg.TargetHP,
			PhaseOffset: rng.Float64() * cycle,
		})
	}
	b.sink.Emit(BonusStarted{})
	return true
}

// addTarget appends a target unless the cap is reached, in which case the
// request is dropped.
func (b *Bonus) addTarget(t *Target) bool {
	if len(b.targets) >= MaxTargets {
		return false
	}
	t.ID = len(b.targets)
	b.targets = append(b.targets, t)
	return true
}

func (b *Bonus) cycle() float64 {
	return b.cfg.GhostMs + b.cfg.WarningMs + b.cfg.SolidMs
}

// TargetPhaseAt returns where a target is in its duty cycle at now.
func (b *Bonus) TargetPhaseAt(t *Target, now float64) TargetPhase {
	cycle := b.cycle()
	if cycle <= 0 {
		return TargetSolid
	}
	p := math.Mod(now-b.startedAt+t.PhaseOffset, cycle)
	if p < 0 {
		p += cycle
	}
	switch {
	case p < b.cfg.GhostMs:
		return TargetGhost
	case p < b.cfg.GhostMs+b.cfg.WarningMs:
		return TargetWarning
	default:
		return TargetSolid
	}
}

// CollideBall resolves a ball against every solid target. A contact costs
// the target one hit point once per overlap and knocks the ball back.
func (b *Bonus) CollideBall(ball *Ball, now float64, rng Random) {
	if b.phase != BonusCollecting {
		return
	}
	for _, t := range b.targets {
		key := contactKey{BallID: ball.ID, TargetID: t.ID}
		if t.Collected {
			b.contacts.End(key)
			continue
		}
		c := core.CircleVsCircle(ball.Pos, ball.Radius(), t.Pos, t.Radius)
		if !c.Hit || b.TargetPhaseAt(t, now) != TargetSolid {
			b.contacts.End(key)
			continue
		}
		if !b.contacts.Begin(key) {
			continue
		}

		if ball.Vel.Dot(c.Normal) < 0 {
			core.ReflectInPlace(&ball.Vel, c.Normal)
		}
		ball.Pos = ball.Pos.Add(c.Normal.Scale(c.Penetration + b.cfg.Knockback))

		t.HP--
		b.sink.Emit(TargetHit{Index: t.ID, Remaining: t.HP})
		if t.HP > 0 {
			continue
		}
		t.HP = 0
		t.Collected = true
		b.collected++
		b.contacts.End(key)
		b.sink.Emit(TargetCollected{Index: t.ID, Collected: b.collected})

		if b.collected == len(b.targets) {
			b.beginReveal(now, rng)
			return
		}
	}
}

// ForgetBall drops contact state for a ball that left play.
func (b *Bonus) ForgetBall(id int) {
	b.contacts.ForgetBall(id)
}

func (b *Bonus) beginReveal(now float64, rng Random) {
	b.phase = BonusRevealing
	b.contacts.Clear()
	b.slots = make([]bool, b.cfg.RevealSlots)
	for i := range b.slots {
		b.slots[i] = chance(rng, b.cfg.SuccessChance)
	}
	b.revealed = 0
	b.nextReveal = now + b.cfg.RevealIntervalMs
}

func (b *Bonus) revealOne() {
	ok := b.slots[b.revealed]
	b.sink.Emit(BonusRevealed{Slot: b.revealed, Success: ok})
	b.revealed++
}

// SkipReveal reveals every remaining slot at once. It returns false
// outside the reveal.
func (b *Bonus) SkipReveal(now float64) bool {
	if b.phase != BonusRevealing {
		return false
	}
	for b.revealed < len(b.slots) {
		b.revealOne()
	}
	b.beginReward(now)
	return true
}

func (b *Bonus) beginReward(now float64) {
	b.successes = 0
	for _, ok := range b.slots {
		if ok {
			b.successes++
		}
	}
	if b.successes == 0 {
		b.finish(false)
		return
	}
	b.phase = BonusRewarding
	b.rewardUntil = now + float64(b.successes)*1000
	b.nextSpawn = now
}

// Update advances reveal pacing and the reward countdown. It returns the
// colors of reward balls due this tick.
func (b *Bonus) Update(now float64, rng Random) []Color {
	switch b.phase {
	case BonusRevealing:
		for b.revealed < len(b.slots) && now >= b.nextReveal {
			b.revealOne()
			b.nextReveal += b.cfg.RevealIntervalMs
		}
		if b.revealed >= len(b.slots) {
			b.beginReward(now)
		}

	case BonusRewarding:
		if now >= b.rewardUntil {
			b.finish(false)
			return nil
		}
		var due []Color
		for now >= b.nextSpawn && b.nextSpawn < b.rewardUntil {
			c := pickColor(rng)
			if chance(rng, b.cfg.RainbowChance) {
				c = ColorRainbow
			}
			due = append(due, c)
			b.nextSpawn += b.cfg.RewardSpawnMs * between(rng, 0.5, 1.5)
		}
		return due
	}
	return nil
}

// Abort abandons a collecting round that can no longer be completed.
func (b *Bonus) Abort() bool {
	if b.phase != BonusCollecting {
		return false
	}
	b.finish(true)
	return true
}

func (b *Bonus) finish(aborted bool) {
	successes := b.successes
	if aborted {
		successes = 0
	}
	b.phase = BonusIdle
	b.collected = 0
	b.targets = b.targets[:0]
	b.slots = nil
	b.revealed = 0
	b.successes = 0
	b.contacts.Clear()
	b.sink.Emit(BonusFinished{Successes: successes, Aborted: aborted})
}
