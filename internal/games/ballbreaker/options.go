package ballbreaker

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Clock supplies wall-clock time for session bookkeeping. The simulation
// itself runs on the clock advanced by Tick.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f().
func (f ClockFunc) Now() time.Time { return f() }

// Affordability reports whether the player can afford to keep playing
// once the current balls are spent.
type Affordability func() bool

// Option configures a Session.
type Option func(*Session)

// WithRandom injects the random source. Defaults to a time-seeded PCG.
func WithRandom(rng Random) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithSeed is shorthand for WithRandom(NewRandom(seed)).
func WithSeed(seed int64) Option {
	return WithRandom(NewRandom(seed))
}

// WithSink adds an event subscriber. May be given more than once.
func WithSink(sink Sink) Option {
	return func(s *Session) {
		s.sinks = append(s.sinks, sink)
	}
}

// WithAffordability injects the "can afford to continue" supplier.
// Defaults to "spins remain".
func WithAffordability(f Affordability) Option {
	return func(s *Session) {
		s.afford = f
	}
}

// WithClock injects the wall clock. Defaults to time.Now.
func WithClock(c Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithLogger sets the logger. Defaults to a logger that discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
