package ballbreaker

import (
	"math"

	"github.com/vovakirdan/ball-breaker/internal/core"
)

// maxSubsteps bounds the work done for one ball in one tick.
const maxSubsteps = 64

// stepBalls advances every active ball by dt milliseconds.
func (s *Session) stepBalls(dt float64) {
	for _, b := range s.balls {
		s.moveBall(b, dt)
	}
	s.removeDeadWalls()
}

// moveBall integrates one ball, sub-stepping so no step travels more than
// half a radius, and resolves edges, walls, blocks and bonus targets after
// each step.
func (s *Session) moveBall(b *Ball, dt float64) {
	secs := dt / 1000
	if g := s.cfg.Ball.Gravity; g > 0 {
		b.Vel.Y -= g * secs
		b.renormalize()
	}

	dist := b.Speed() * secs
	steps := int(math.Ceil(dist / (b.Radius() / 2)))
	steps = core.Clamp(steps, 1, maxSubsteps)
	sub := secs / float64(steps)

	for range steps {
		b.Pos = b.Pos.Add(b.Vel.Scale(sub))
		s.collideEdges(b)
		s.collideWalls(b)
		s.collideBlocks(b)
		s.bonus.CollideBall(b, s.now, s.rng)
		if b.Pos.Y <= s.cfg.Arena.BasketHeight {
			return
		}
	}
}

// collideEdges reflects a ball off the left, right and top edges. The
// bottom edge is open.
func (s *Session) collideEdges(b *Ball) {
	r := b.Radius()
	bounced := false
	if b.Pos.X-r < 0 {
		b.Pos.X = r
		b.Vel.X = math.Abs(b.Vel.X)
		bounced = true
	}
	if b.Pos.X+r > s.width {
		b.Pos.X = s.width - r
		b.Vel.X = -math.Abs(b.Vel.X)
		bounced = true
	}
	if b.Pos.Y+r > s.height {
		b.Pos.Y = s.height - r
		b.Vel.Y = -math.Abs(b.Vel.Y)
		bounced = true
	}
	if bounced {
		s.onBounce(b, true)
	}
}

// onBounce applies the side effects shared by edge and wall bounces.
func (s *Session) onBounce(b *Ball, edge bool) {
	if edge && b.Boosted() && s.now-b.SpawnedAt >= s.cfg.Ball.BoostGraceMs {
		b.SetBoosted(false)
	}
	if s.bonus.Active() {
		b.Credit++
	}
}

// collideWalls reflects a ball off every wall it overlaps. Wall contact
// revokes piercing and damages destructible walls.
func (s *Session) collideWalls(b *Ball) {
	for _, w := range s.walls {
		if w.HP <= 0 && w.Destructible {
			continue
		}
		c := core.CircleVsRotatedRect(b.Pos, b.Radius(), w.Shape)
		if !c.Hit {
			continue
		}
		if b.Vel.Dot(c.Normal) < 0 {
			core.ReflectInPlace(&b.Vel, c.Normal)
		}
		b.Pos = b.Pos.Add(c.Normal.Scale(c.Penetration))
		if b.Piercing() {
			b.SetPiercing(false)
		}
		w.Hit()
		s.onBounce(b, false)
	}
}

// removeDeadWalls drops destructible walls whose hit points are spent.
func (s *Session) removeDeadWalls() {
	kept := s.walls[:0]
	for _, w := range s.walls {
		if w.Destructible && w.HP <= 0 {
			continue
		}
		kept = append(kept, w)
	}
	s.walls = kept
}

// damageFor returns the damage a ball deals to a block.
func (s *Session) damageFor(b *Ball, blk *Block) int {
	switch {
	case b.Color == ColorRainbow || b.Piercing():
		return blk.HP
	case blk.Color == ColorNeutral || blk.Color == b.Color:
		return s.cfg.Damage.MatchDamage
	default:
		return s.cfg.Damage.ChipDamage
	}
}

// collideBlocks applies damage for every block the ball overlaps. Piercing
// balls pass through; the rest reflect.
func (s *Session) collideBlocks(b *Ball) {
	for _, blk := range s.blocks {
		if blk.Breaking() {
			continue
		}
		c := core.CircleVsRect(b.Pos, b.Radius(), blk.Rect)
		if !c.Hit {
			continue
		}

		if b.Explosive() {
			s.detonate(b, blk)
		} else {
			b.Credit += s.cfg.Damage.HitCredit
			if blk.Damage(s.damageFor(b, blk)) {
				b.Credit += s.cfg.Damage.DestroyCredit
				s.onDestroyed(blk, false)
			}
		}

		if b.Piercing() {
			continue
		}
		if b.Vel.Dot(c.Normal) < 0 {
			core.ReflectInPlace(&b.Vel, c.Normal)
		}
		b.Pos = b.Pos.Add(c.Normal.Scale(c.Penetration))
	}
}

// detonate spends a ball's area-damage charge on contact with hit, killing
// every block within the explosion radius of the ball.
func (s *Session) detonate(b *Ball, hit *Block) {
	b.detonate()
	radius := s.cfg.Damage.ExplosionRadius
	kills := 0
	for _, blk := range s.blocks {
		if blk.Breaking() {
			continue
		}
		if blk != hit && !core.CircleVsRect(b.Pos, radius, blk.Rect).Hit {
			continue
		}
		if blk.Kill() {
			kills++
			b.Credit += s.cfg.Damage.HitCredit + s.cfg.Damage.DestroyCredit
			s.onDestroyed(blk, true)
		}
	}
	s.RequestHitStop(s.cfg.Session.HitStopMs)
	s.sink.Emit(Explosion{Pos: b.Pos, Radius: radius, Kills: kills})
}

// onDestroyed emits the destroy event and advances the combo.
func (s *Session) onDestroyed(blk *Block, explosion bool) {
	s.sink.Emit(BlockDestroyed{BlockID: blk.ID, Color: blk.Color, Explosion: explosion})

	if s.combo > 0 && s.now <= s.comboUntil {
		s.combo++
	} else {
		s.combo = 1
	}
	s.comboUntil = s.now + s.cfg.Session.ComboWindowMs
	if s.combo%s.cfg.Session.ComboStep == 0 {
		s.sink.Emit(ComboMilestone{N: s.combo})
	}
}

// expireCombo resets the combo once its window has passed.
func (s *Session) expireCombo() {
	if s.combo > 0 && s.now > s.comboUntil {
		s.combo = 0
	}
}

// advanceBreaking runs the breaking animation and removes finished blocks.
func (s *Session) advanceBreaking(dt float64) {
	kept := s.blocks[:0]
	for _, blk := range s.blocks {
		if blk.breaking {
			if s.cfg.Damage.BreakingMs <= 0 {
				blk.progress = 1
			} else {
				blk.progress = math.Min(1, blk.progress+dt/s.cfg.Damage.BreakingMs)
			}
			if blk.progress >= 1 {
				continue
			}
		}
		kept = append(kept, blk)
	}
	s.blocks = kept
}
