package ballbreaker

import "github.com/vovakirdan/ball-breaker/internal/config"

// ReelPhase is the state of the reel randomizer.
type ReelPhase int

const (
	ReelIdle ReelPhase = iota
	ReelSpinning
	ReelStopping
	ReelResult
)

// String returns the name of the phase.
func (p ReelPhase) String() string {
	switch p {
	case ReelIdle:
		return "idle"
	case ReelSpinning:
		return "spinning"
	case ReelStopping:
		return "stopping"
	case ReelResult:
		return "result"
	default:
		return "unknown"
	}
}

// NumReels is the number of reels.
const NumReels = 3

// ReelOutcome is the color and ball count produced by one round.
type ReelOutcome struct {
	Color Color
	Count int
}

// Reel is the three-reel color/quantity randomizer. Reels lock left to
// right: reel 0 locks whatever it was displaying when told to stop, reels 1
// and 2 are drawn with a bias toward already-locked values.
type Reel struct {
	cfg config.ReelConfig

	phase   ReelPhase
	values  [NumReels]Color // ColorNeutral means unresolved
	stopped int

	offset    int // Start of reel 0's deterministic cycle
	step      int
	startedAt float64
	nextSlow  float64
	nextFast  float64
	nextLock  float64
	idleAt    float64

	outcome ReelOutcome
}

// NewReel creates an idle reel randomizer.
func NewReel(cfg config.ReelConfig) *Reel {
	return &Reel{cfg: cfg}
}

// Phase returns the current phase.
func (r *Reel) Phase() ReelPhase { return r.phase }

// Values returns the displayed reel values. Unresolved reels are ColorNeutral.
func (r *Reel) Values() [NumReels]Color { return r.values }

// Stopped returns how many reels are locked.
func (r *Reel) Stopped() int { return r.stopped }

// Outcome returns the last evaluated outcome.
func (r *Reel) Outcome() ReelOutcome { return r.outcome }

// Idle reports whether the reel is idle.
func (r *Reel) Idle() bool { return r.phase == ReelIdle }

// Start begins a round. It returns false unless the reel is idle.
func (r *Reel) Start(now float64, rng Random) bool {
	if r.phase != ReelIdle {
		return false
	}
	r.phase = ReelSpinning
	r.values = [NumReels]Color{}
	r.stopped = 0
	r.offset = rng.IntN(len(PlayColors))
	r.step = 0
	r.startedAt = now
	r.nextSlow = now
	r.nextFast = now
	r.outcome = ReelOutcome{}
	return true
}

// Stop locks reel 0 on its displayed value and begins locking the rest.
// It returns false unless the reel is spinning.
func (r *Reel) Stop(now float64) bool {
	if r.phase != ReelSpinning {
		return false
	}
	if r.values[0] == ColorNeutral {
		r.values[0] = PlayColors[r.offset%len(PlayColors)]
	}
	r.stopped = 1
	r.phase = ReelStopping
	r.nextLock = now + r.cfg.StopDelayMs
	return true
}

// Skip force-resolves every unlocked reel with the biased draw and jumps
// straight to the result. It returns false outside spinning and stopping.
func (r *Reel) Skip(now float64, rng Random) bool {
	switch r.phase {
	case ReelSpinning:
		r.Stop(now)
	case ReelStopping:
	default:
		return false
	}
	for r.stopped < NumReels {
		r.lockNext(rng)
	}
	r.enterResult(now)
	return true
}

// Update advances the reel to now. It returns the outcome on the tick the
// reel returns to idle.
func (r *Reel) Update(now float64, rng Random) (ReelOutcome, bool) {
	switch r.phase {
	case ReelSpinning:
		if now >= r.nextSlow {
			r.values[0] = PlayColors[(r.offset+r.step)%len(PlayColors)]
			r.step++
			r.nextSlow = now + r.cfg.SlowIntervalMs
		}
		r.redrawUnlocked(now, rng)
		if r.cfg.AutoStopMs > 0 && now-r.startedAt >= r.cfg.AutoStopMs {
			r.Stop(now)
		}

	case ReelStopping:
		r.redrawUnlocked(now, rng)
		if now >= r.nextLock {
			r.lockNext(rng)
			r.nextLock = now + r.cfg.StopDelayMs
			if r.stopped == NumReels {
				r.enterResult(now)
			}
		}

	case ReelResult:
		if now >= r.idleAt {
			r.phase = ReelIdle
			return r.outcome, true
		}
	}
	return ReelOutcome{}, false
}

// redrawUnlocked refreshes the cosmetic values of reels still spinning fast.
func (r *Reel) redrawUnlocked(now float64, rng Random) {
	if now < r.nextFast {
		return
	}
	for i := max(1, r.stopped); i < NumReels; i++ {
		r.values[i] = pickColor(rng)
	}
	r.nextFast = now + r.cfg.FastIntervalMs
}

// lockNext locks the leftmost unlocked reel. With probability Bias it copies
// a random already-locked reel, otherwise it draws uniformly.
func (r *Reel) lockNext(rng Random) {
	if r.stopped >= NumReels {
		return
	}
	var c Color
	if r.stopped > 0 && chance(rng, r.cfg.Bias) {
		c = r.values[rng.IntN(r.stopped)]
	} else {
		c = pickColor(rng)
	}
	r.values[r.stopped] = c
	r.stopped++
}

func (r *Reel) enterResult(now float64) {
	r.phase = ReelResult
	r.outcome = EvaluateReels(r.values)
	r.idleAt = now + r.cfg.ResultDelayMs
}

// EvaluateReels scores three locked reel values. All distinct yields a
// single rainbow ball; otherwise reel 0's color with one ball per matching
// reel.
func EvaluateReels(v [NumReels]Color) ReelOutcome {
	if v[0] != v[1] && v[0] != v[2] && v[1] != v[2] {
		return ReelOutcome{Color: ColorRainbow, Count: 1}
	}
	count := 0
	for _, c := range v {
		if c == v[0] {
			count++
		}
	}
	return ReelOutcome{Color: v[0], Count: count}
}
