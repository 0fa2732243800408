package ballbreaker

import (
	"math"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/core"
)

// WheelPhase is the state of the ability wheel.
type WheelPhase int

const (
	WheelIdle WheelPhase = iota
	WheelSpinning
	WheelStopping
	WheelResult
)

// String returns the name of the phase.
func (p WheelPhase) String() string {
	switch p {
	case WheelIdle:
		return "idle"
	case WheelSpinning:
		return "spinning"
	case WheelStopping:
		return "stopping"
	case WheelResult:
		return "result"
	default:
		return "unknown"
	}
}

// WheelSegments is the fixed segment order, each covering an equal arc.
var WheelSegments = [6]Ability{
	AbilityAreaDamage,
	AbilityNone,
	AbilityPierceEnlarge,
	AbilityNone,
	AbilityDuplicate,
	AbilityNone,
}

// segmentArc is the angular width of one segment.
var segmentArc = 2 * math.Pi / float64(len(WheelSegments))

// frameMs is the frame length the ease factor is expressed against.
const frameMs = 1000.0 / 60.0

// Wheel is the rotating-segment ability randomizer. A fixed pointer reads
// the segment containing the normalized negative rotation.
type Wheel struct {
	cfg config.WheelConfig

	phase         WheelPhase
	rotation      float64
	target        float64
	spinUntil     float64
	idleAt        float64
	cooldownUntil float64

	segment int
}

// NewWheel creates an idle wheel.
func NewWheel(cfg config.WheelConfig) *Wheel {
	return &Wheel{cfg: cfg}
}

// Phase returns the current phase.
func (w *Wheel) Phase() WheelPhase { return w.phase }

// Idle reports whether the wheel is idle.
func (w *Wheel) Idle() bool { return w.phase == WheelIdle }

// Rotation returns the current rotation in radians.
func (w *Wheel) Rotation() float64 { return w.rotation }

// Target returns the rotation the wheel is easing toward.
func (w *Wheel) Target() float64 { return w.target }

// Segment returns the index of the last landed segment.
func (w *Wheel) Segment() int { return w.segment }

// Ready reports whether the wheel is idle and off cooldown at now.
func (w *Wheel) Ready(now float64) bool {
	return w.phase == WheelIdle && now >= w.cooldownUntil
}

// CooldownUntil returns the clock time the wheel may trigger again.
func (w *Wheel) CooldownUntil() float64 { return w.cooldownUntil }

// Start begins a spin from a uniformly random rotation. It returns false
// when the wheel is busy or cooling down.
func (w *Wheel) Start(now float64, rng Random) bool {
	if !w.Ready(now) {
		return false
	}
	w.phase = WheelSpinning
	w.rotation = rng.Float64() * 2 * math.Pi
	w.target = w.rotation
	w.spinUntil = now + w.cfg.SpinMs
	return true
}

// Skip jumps rotation to its target and resolves. During spinning the
// target is drawn first with the same extra-turn roll. It returns false
// outside spinning and stopping.
func (w *Wheel) Skip(now float64, rng Random) (Ability, bool) {
	switch w.phase {
	case WheelSpinning:
		w.beginStop(rng)
	case WheelStopping:
	default:
		return AbilityNone, false
	}
	w.rotation = w.target
	return w.resolve(now), true
}

// Update advances the wheel by dt milliseconds to now. It returns the
// landed ability on the tick the wheel enters its result phase.
func (w *Wheel) Update(now, dt float64, rng Random) (Ability, bool) {
	switch w.phase {
	case WheelSpinning:
		w.rotation += w.cfg.AngularSpeed * dt / 1000
		if now >= w.spinUntil {
			w.beginStop(rng)
		}

	case WheelStopping:
		// Proportional decay, frame-rate independent.
		factor := 1 - math.Pow(1-w.cfg.Ease, dt/frameMs)
		w.rotation += (w.target - w.rotation) * factor
		if math.Abs(w.target-w.rotation) < w.cfg.Epsilon {
			w.rotation = w.target
			return w.resolve(now), true
		}

	case WheelResult:
		if now >= w.idleAt {
			w.phase = WheelIdle
			w.cooldownUntil = now + w.cfg.CooldownMs
		}
	}
	return AbilityNone, false
}

func (w *Wheel) beginStop(rng Random) {
	turns := between(rng, w.cfg.MinExtraTurns, w.cfg.MaxExtraTurns)
	w.target = w.rotation + 2*math.Pi*turns
	w.phase = WheelStopping
}

func (w *Wheel) resolve(now float64) Ability {
	w.phase = WheelResult
	w.segment = SegmentAt(w.rotation)
	w.idleAt = now + w.cfg.ResultDelayMs
	return WheelSegments[w.segment]
}

// SegmentAt returns the segment under the pointer for a rotation.
func SegmentAt(rotation float64) int {
	idx := int(core.NormalizeAngle(-rotation) / segmentArc)
	return core.Clamp(idx, 0, len(WheelSegments)-1)
}
