package ballbreaker

import "github.com/vovakirdan/ball-breaker/internal/core"

// permuteBaskets assigns the configured kind multiset to the five slots in
// a uniformly random order.
func permuteBaskets(single, triple, bonus int, rng Random) [NumBaskets]Basket {
	kinds := make([]BasketKind, 0, NumBaskets)
	for range single {
		kinds = append(kinds, BasketSingle)
	}
	for range triple {
		kinds = append(kinds, BasketTriple)
	}
	for range bonus {
		kinds = append(kinds, BasketBonus)
	}
	for len(kinds) < NumBaskets {
		kinds = append(kinds, BasketSingle)
	}

	// Fisher-Yates
	for i := len(kinds) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		kinds[i], kinds[j] = kinds[j], kinds[i]
	}

	var out [NumBaskets]Basket
	for i := range out {
		out[i] = Basket{Slot: i, Kind: kinds[i]}
	}
	return out
}

// SlotAt returns the basket slot under horizontal position x.
func SlotAt(x, width float64) int {
	if width <= 0 {
		return 0
	}
	return core.Clamp(int(x/(width/NumBaskets)), 0, NumBaskets-1)
}

// resolveBaskets consumes or returns every ball that reached the basket
// strip.
func (s *Session) resolveBaskets() {
	kept := s.balls[:0]
	for _, b := range s.balls {
		if b.Pos.Y > s.cfg.Arena.BasketHeight {
			kept = append(kept, b)
			continue
		}
		if s.enterBasket(b) {
			kept = append(kept, b)
		}
	}
	clear(s.balls[len(kept):])
	s.balls = kept
}

// enterBasket resolves one ball against its slot. It returns true when the
// ball stays in play.
func (s *Session) enterBasket(b *Ball) bool {
	slot := SlotAt(b.Pos.X, s.width)
	basket := &s.baskets[slot]
	bonusActive := s.bonus.Active()

	if basket.Kind == BasketBonus && (bonusActive || s.now < basket.CooldownUntil) {
		s.returnToLauncher(b, slot)
		return true
	}

	mult := basket.Kind.Multiplier(bonusActive)
	amount := b.Credit * mult
	s.score += amount
	s.bonus.ForgetBall(b.ID)
	s.sink.Emit(BasketScored{Slot: slot, Kind: basket.Kind, Multiplier: mult, Amount: amount})

	if basket.Kind == BasketBonus {
		basket.CooldownUntil = s.now + s.cfg.Baskets.CooldownMs
		if s.RemainingBlocks() > 0 && s.wheel.Ready(s.now) {
			s.wheelScheduled = true
		}
	}
	return false
}

// returnToLauncher teleports a ball back to the launch point with a fresh
// boosted downward velocity. Credit is kept.
func (s *Session) returnToLauncher(b *Ball, slot int) {
	b.Pos = s.launcher.Pos
	b.Vel = s.launchDir()
	b.SpawnedAt = s.now
	b.SetBoosted(true)
	s.bonus.ForgetBall(b.ID)
	s.sink.Emit(BallReturned{BallID: b.ID, Slot: slot})
}
