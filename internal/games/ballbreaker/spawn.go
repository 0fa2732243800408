package ballbreaker

import (
	"math"
	"slices"

	"github.com/vovakirdan/ball-breaker/internal/core"
)

// maxActiveBalls caps the active set. Spawns past the cap are dropped.
const maxActiveBalls = 256

// pendingSpawn is a ball waiting in the staggered launch queue.
type pendingSpawn struct {
	Color   Color
	At      float64
	Ability Ability
}

// Launcher is the moving launch point patrolling the launch lane.
type Launcher struct {
	Pos  core.Vec2
	Dir  float64 // +1 right, -1 left
	MinX float64
	MaxX float64
}

func newLauncher(w, h, margin, lane float64) Launcher {
	l := Launcher{
		Pos:  core.V(w/2, h-lane),
		Dir:  1,
		MinX: margin,
		MaxX: w - margin,
	}
	if l.MinX > l.MaxX {
		l.MinX, l.MaxX = w/2, w/2
	}
	return l
}

// move advances the patrol by dist, turning around at either end.
func (l *Launcher) move(dist float64) {
	l.Pos.X += l.Dir * dist
	switch {
	case l.Pos.X >= l.MaxX:
		l.Pos.X = l.MaxX
		l.Dir = -1
	case l.Pos.X <= l.MinX:
		l.Pos.X = l.MinX
		l.Dir = 1
	}
}

// steer points the patrol left (dir < 0) or right (dir > 0).
func (l *Launcher) steer(dir int) {
	switch {
	case dir < 0:
		l.Dir = -1
	case dir > 0:
		l.Dir = 1
	}
}

// moveLauncher patrols the launcher at the difficulty-scaled speed.
func (s *Session) moveLauncher(dt float64) {
	speed := s.difficulty.Speed(s.cfg.Launcher.Speed, s.progress())
	s.launcher.move(speed * dt / 1000)
}

// RequestLaunch queues a batch of count balls of color, staggered by the
// spawn interval. A pending wheel ability is applied to the batch:
// duplicate doubles the count, the others are granted to each ball. Balls
// past the queue cap are dropped. It returns the number of balls queued.
// Only play colors and rainbow can be launched; other colors are ignored.
func (s *Session) RequestLaunch(color Color, count int) int {
	if s.Terminal() || count <= 0 || !launchable(color) {
		return 0
	}

	ability := s.pendingAbility
	s.pendingAbility = AbilityNone
	if ability == AbilityDuplicate {
		count *= 2
		ability = AbilityNone
	}

	at := s.now
	if n := len(s.queue); n > 0 {
		at = math.Max(at, s.queue[n-1].At+s.cfg.Session.SpawnIntervalMs)
	}

	queued := 0
	for range count {
		if len(s.queue) >= s.cfg.Session.MaxQueued {
			s.logger.Debug("spawn queue full, dropping ball", "color", color)
			break
		}
		s.queue = append(s.queue, pendingSpawn{Color: color, At: at, Ability: ability})
		at += s.cfg.Session.SpawnIntervalMs
		queued++
	}
	return queued
}

func launchable(c Color) bool {
	return c == ColorRainbow || slices.Contains(PlayColors, c)
}

// shiftQueue delays every queued spawn while play is frozen.
func (s *Session) shiftQueue(dt float64) {
	for i := range s.queue {
		s.queue[i].At += dt
	}
}

// processQueue spawns every queued ball whose time has come.
func (s *Session) processQueue() {
	n := 0
	for n < len(s.queue) && s.queue[n].At <= s.now {
		p := s.queue[n]
		s.spawnBall(s.launcher.Pos, p.Color, p.Ability, SpawnLaunch)
		n++
	}
	if n > 0 {
		s.queue = append(s.queue[:0], s.queue[n:]...)
	}
}

// spawnReward fires a bonus reward ball from near the launcher.
func (s *Session) spawnReward(color Color) {
	offset := between(s.rng, -s.cfg.Bonus.Spread, s.cfg.Bonus.Spread)
	pos := s.launcher.Pos.Add(core.V(offset, 0))
	pos.X = core.ClampF(pos.X, s.cfg.Ball.Radius, s.width-s.cfg.Ball.Radius)
	s.spawnBall(pos, color, AbilityNone, SpawnReward)
}

// launchDir returns a downward direction within the spawn spread.
func (s *Session) launchDir() core.Vec2 {
	angle := between(s.rng, -s.cfg.Ball.SpawnSpread, s.cfg.Ball.SpawnSpread)
	return core.V(0, -1).Rotate(angle)
}

// spawnBall puts a boosted ball into play. It returns nil when the active
// set is full.
func (s *Session) spawnBall(pos core.Vec2, color Color, ability Ability, source SpawnSource) *Ball {
	if len(s.balls) >= maxActiveBalls {
		s.logger.Debug("active ball cap reached, dropping spawn", "color", color)
		return nil
	}
	bc := s.cfg.Ball
	s.nextBallID++
	b := newBall(s.nextBallID, pos, s.launchDir(), color, bc.Radius, bc.Speed, bc.BoostMultiplier, bc.PierceMultiplier)
	b.SpawnedAt = s.now
	b.SetBoosted(true)
	b.Grant(ability)
	s.balls = append(s.balls, b)
	s.sink.Emit(BallSpawned{BallID: b.ID, Color: color, Source: source})
	return b
}

// duplicateBalls clones every ball in play with its horizontal velocity
// mirrored. Clones start with zero credit.
func (s *Session) duplicateBalls() {
	current := len(s.balls)
	for i := 0; i < current; i++ {
		if len(s.balls) >= maxActiveBalls {
			return
		}
		s.nextBallID++
		c := s.balls[i].clone(s.nextBallID)
		c.Vel.X = -c.Vel.X
		s.balls = append(s.balls, c)
		s.sink.Emit(BallSpawned{BallID: c.ID, Color: c.Color, Source: SpawnDuplicate})
	}
}
