package ballbreaker

import "github.com/vovakirdan/ball-breaker/internal/core"

// Event is a discrete notification emitted by the simulation. Rendering,
// audio, haptics and economy collaborators subscribe through a Sink.
type Event interface {
	event()
}

// BallSpawned is emitted whenever a ball enters play.
type BallSpawned struct {
	BallID int
	Color  Color
	Source SpawnSource
}

func (BallSpawned) event() {}

// SpawnSource tells where a spawned ball came from.
type SpawnSource int

const (
	SpawnLaunch    SpawnSource = iota // Player batch from the spawn queue
	SpawnDuplicate                    // Wheel duplicate of a ball in play
	SpawnReward                       // Bonus round auto-fire
)

// BlockDestroyed is emitted when a block's hit points reach zero.
type BlockDestroyed struct {
	BlockID   int
	Color     Color
	Explosion bool
}

func (BlockDestroyed) event() {}

// ComboMilestone is emitted every combo step of consecutive destroys.
type ComboMilestone struct {
	N int
}

func (ComboMilestone) event() {}

// BasketScored is emitted when a basket consumes a ball.
type BasketScored struct {
	Slot       int
	Kind       BasketKind
	Multiplier int
	Amount     int
}

func (BasketScored) event() {}

// BallReturned is emitted when a bonus slot sends a ball back to the launcher.
type BallReturned struct {
	BallID int
	Slot   int
}

func (BallReturned) event() {}

// Explosion is emitted when an area-damage charge detonates.
type Explosion struct {
	Pos    core.Vec2
	Radius float64
	Kills  int
}

func (Explosion) event() {}

// ReelResolved is emitted when the reel returns to idle with its outcome.
type ReelResolved struct {
	Outcome ReelOutcome
}

func (ReelResolved) event() {}

// WheelStarted is emitted when a bonus slot starts the wheel.
type WheelStarted struct{}

func (WheelStarted) event() {}

// WheelResolved is emitted when the wheel lands. Pending means no ball was
// in play and the ability waits for the next batch.
type WheelResolved struct {
	Segment int
	Ability Ability
	Pending bool
}

func (WheelResolved) event() {}

// BonusStarted is emitted when the field is cleared with balls in play.
type BonusStarted struct{}

func (BonusStarted) event() {}

// TargetHit is emitted when a solid bonus target loses a hit point.
type TargetHit struct {
	Index     int
	Remaining int
}

func (TargetHit) event() {}

// TargetCollected is emitted when a bonus target reaches zero hit points.
type TargetCollected struct {
	Index     int
	Collected int
}

func (TargetCollected) event() {}

// BonusRevealed is emitted for each revealed reward slot.
type BonusRevealed struct {
	Slot    int
	Success bool
}

func (BonusRevealed) event() {}

// BonusFinished is emitted when the bonus round returns to idle.
type BonusFinished struct {
	Successes int
	Aborted   bool
}

func (BonusFinished) event() {}

// SessionEnded is emitted exactly once when the session becomes terminal.
type SessionEnded struct {
	Won        bool
	TotalScore int
}

func (SessionEnded) event() {}

// Sink receives simulation events.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

type discardSink struct{}

func (discardSink) Emit(Event) {}

// Recorder is a Sink that keeps every event in order.
type Recorder struct {
	Events []Event
}

// Emit appends e.
func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Of returns the recorded events of type T.
func Of[T Event](r *Recorder) []T {
	var out []T
	for _, e := range r.Events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// multiSink fans events out to several sinks.
type multiSink []Sink

func (m multiSink) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}
