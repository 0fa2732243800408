package ballbreaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/core"
)

const testTick = 1000.0 / 60

func newTestSession(t *testing.T, mutate func(*config.BallBreakerConfig), opts ...Option) (*Session, *Recorder) {
	t.Helper()
	cfg := config.DefaultBallBreakerConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	rec := &Recorder{}
	all := append([]Option{WithSeed(1), WithSink(rec)}, opts...)
	s := NewSession(cfg, all...)
	w, h := ArenaSize(80, 24)
	s.StartSession(w, h, nil)
	rec.Reset()
	return s, rec
}

func placeBall(s *Session, pos, dir core.Vec2, color Color) *Ball {
	bc := s.cfg.Ball
	s.nextBallID++
	b := newBall(s.nextBallID, pos, dir, color, bc.Radius, bc.Speed, bc.BoostMultiplier, bc.PierceMultiplier)
	b.SpawnedAt = s.now
	s.balls = append(s.balls, b)
	return b
}

func singleBlock(s *Session, rect core.Rect, color Color, hp int) *Block {
	blk := &Block{ID: 1, Rect: rect, Color: color, HP: hp, MaxHP: hp}
	s.blocks = []*Block{blk}
	s.walls = nil
	return blk
}

func allBaskets(s *Session, kind BasketKind) {
	for i := range s.baskets {
		s.baskets[i] = Basket{Slot: i, Kind: kind}
	}
}

func TestStartSession(t *testing.T) {
	s, _ := newTestSession(t, nil)
	cfg := s.Config()

	assert.Equal(t, cfg.Session.InitialSpins, s.Spins())
	assert.Zero(t, s.Score())
	assert.False(t, s.Terminal())
	assert.Empty(t, s.Balls())
	assert.NotEmpty(t, s.Blocks())
	assert.True(t, s.Reel().Idle())
	assert.True(t, s.Wheel().Idle())
	assert.False(t, s.Bonus().Active())

	counts := map[BasketKind]int{}
	for i, b := range s.Baskets() {
		assert.Equal(t, i, b.Slot)
		counts[b.Kind]++
	}
	assert.Equal(t, cfg.Baskets.Single, counts[BasketSingle])
	assert.Equal(t, cfg.Baskets.Triple, counts[BasketTriple])
	assert.Equal(t, cfg.Baskets.Bonus, counts[BasketBonus])

	w, h := s.Size()
	assert.InDelta(t, w/2, s.LaunchPoint().X, 1e-9)
	assert.InDelta(t, h-cfg.Arena.LaunchMargin, s.LaunchPoint().Y, 1e-9)
}

func TestBasketScoring(t *testing.T) {
	tests := []struct {
		name     string
		kind     BasketKind
		bonus    bool
		credit   int
		expected int
	}{
		{"single", BasketSingle, false, 7, 7},
		{"triple", BasketTriple, false, 7, 21},
		{"single during bonus", BasketSingle, true, 7, 21},
		{"triple during bonus", BasketTriple, true, 7, 35},
		{"bonus slot off cooldown", BasketBonus, false, 7, 7},
		{"no credit", BasketTriple, false, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, rec := newTestSession(t, nil)
			allBaskets(s, tc.kind)
			if tc.bonus {
				s.bonus.phase = BonusCollecting
			}
			b := placeBall(s, core.V(10, s.cfg.Arena.BasketHeight-1), core.V(0, -1), ColorRed)
			b.Credit = tc.credit

			s.resolveBaskets()

			assert.Equal(t, tc.expected, s.Score())
			assert.Empty(t, s.Balls())
			scored := Of[BasketScored](rec)
			require.Len(t, scored, 1)
			assert.Equal(t, tc.expected, scored[0].Amount)
			assert.Equal(t, 0, scored[0].Slot)
		})
	}
}

func TestBonusSlotSoftSave(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Session)
	}{
		{"cooldown running", func(s *Session) { s.baskets[2].CooldownUntil = s.now + 1000 }},
		{"bonus round active", func(s *Session) { s.bonus.phase = BonusRewarding }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, rec := newTestSession(t, nil)
			allBaskets(s, BasketBonus)
			tc.setup(s)
			w, _ := s.Size()
			b := placeBall(s, core.V(w/2, 1), core.V(0, -1), ColorBlue)
			b.Credit = 5

			s.resolveBaskets()

			require.Len(t, s.Balls(), 1)
			assert.Zero(t, s.Score())
			assert.Equal(t, 5, b.Credit, "credit is kept")
			assert.Equal(t, s.LaunchPoint(), b.Pos)
			assert.True(t, b.Boosted())
			assert.Less(t, b.Vel.Y, 0.0)
			assert.True(t, b.Consistent())
			assert.Equal(t, []BallReturned{{BallID: b.ID, Slot: 2}}, Of[BallReturned](rec))
			assert.False(t, s.wheelScheduled)
		})
	}
}

func TestBonusSlotStartsWheel(t *testing.T) {
	s, rec := newTestSession(t, nil)
	allBaskets(s, BasketBonus)
	singleBlock(s, core.NewRect(300, 150, 40, 18), ColorRed, 3)
	placeBall(s, core.V(10, 1), core.V(0, -1), ColorRed)

	s.resolveBaskets()
	assert.Empty(t, s.Balls())
	assert.True(t, s.wheelScheduled)
	assert.InDelta(t, s.now+s.cfg.Baskets.CooldownMs, s.Baskets()[0].CooldownUntil, 1e-9)

	s.startScheduledWheel()
	assert.Equal(t, WheelSpinning, s.Wheel().Phase())
	assert.Len(t, Of[WheelStarted](rec), 1)
}

func TestBonusSlotIgnoredOnClearField(t *testing.T) {
	s, _ := newTestSession(t, nil)
	allBaskets(s, BasketBonus)
	s.blocks = nil
	placeBall(s, core.V(10, 1), core.V(0, -1), ColorRed)

	s.resolveBaskets()
	assert.False(t, s.wheelScheduled)
}

func TestWinExactlyOnce(t *testing.T) {
	s, rec := newTestSession(t, nil)
	allBaskets(s, BasketSingle)
	blk := singleBlock(s, core.NewRect(292, 150, 40, 18), ColorRed, 1)
	placeBall(s, core.V(312, 146), core.V(0, 1), ColorRed)

	s.Tick(testTick)
	assert.True(t, blk.Breaking(), "matching ball should destroy a 1 HP block")
	require.Len(t, Of[BlockDestroyed](rec), 1)

	for i := 0; i < 5000 && !s.Terminal(); i++ {
		s.Tick(testTick)
	}
	require.True(t, s.Won())
	assert.False(t, s.Lost())

	score := s.Score()
	for range 120 {
		s.Tick(testTick)
	}
	ended := Of[SessionEnded](rec)
	require.Len(t, ended, 1, "terminal signal must fire exactly once")
	assert.True(t, ended[0].Won)
	assert.Equal(t, score, ended[0].TotalScore)
	assert.Positive(t, score)
	assert.Zero(t, s.RemainingBlocks())
}

func TestWinWaitsForQueuedBalls(t *testing.T) {
	s, rec := newTestSession(t, nil)
	s.blocks = nil
	s.RequestLaunch(ColorRed, 3)

	s.Tick(testTick)
	assert.False(t, s.Terminal(), "queued balls keep the session alive")
	assert.Empty(t, Of[SessionEnded](rec))
}

func TestLoseOnNextTick(t *testing.T) {
	s, rec := newTestSession(t, nil, WithAffordability(func() bool { return false }))
	singleBlock(s, core.NewRect(100, 150, 40, 18), ColorRed, 3)
	require.False(t, s.Terminal())

	s.Tick(testTick)
	require.True(t, s.Lost())
	assert.False(t, s.Won())

	score := s.Score()
	assert.Zero(t, s.RequestLaunch(ColorRed, 3))
	assert.False(t, s.RequestSpin())
	assert.False(t, s.RequestSkipAnimation())
	for range 60 {
		s.Tick(testTick)
	}
	assert.Equal(t, score, s.Score())
	assert.Equal(t, []SessionEnded{{Won: false, TotalScore: score}}, Of[SessionEnded](rec))
}

func TestNoLoseWhileReelSpins(t *testing.T) {
	s, _ := newTestSession(t, nil)
	singleBlock(s, core.NewRect(100, 150, 40, 18), ColorRed, 3)
	s.spins = 1
	require.True(t, s.RequestSpin())
	assert.Zero(t, s.Spins())

	s.Tick(testTick)
	assert.False(t, s.Terminal(), "reel round in progress")
}

func TestDefaultAffordabilityUsesSpins(t *testing.T) {
	s, _ := newTestSession(t, nil)
	singleBlock(s, core.NewRect(100, 150, 40, 18), ColorRed, 3)
	s.Tick(testTick)
	assert.False(t, s.Terminal())

	s.spins = 0
	s.Tick(testTick)
	assert.True(t, s.Lost())
}

func TestRequestLaunchStaggersAndCaps(t *testing.T) {
	s, rec := newTestSession(t, func(c *config.BallBreakerConfig) { c.Session.MaxQueued = 4 })

	assert.Equal(t, 4, s.RequestLaunch(ColorYellow, 10))
	assert.Equal(t, 4, s.Queued())
	for i, p := range s.queue {
		assert.InDelta(t, float64(i)*s.cfg.Session.SpawnIntervalMs, p.At, 1e-9)
	}
	assert.Zero(t, s.RequestLaunch(ColorYellow, 1), "full queue drops the newest")
	assert.Zero(t, s.RequestLaunch(ColorYellow, 0))

	s.Tick(testTick)
	require.Len(t, s.Balls(), 1)
	b := s.Balls()[0]
	assert.True(t, b.Boosted())
	assert.Less(t, b.Vel.Y, 0.0)
	assert.InDelta(t, s.cfg.Ball.Speed*s.cfg.Ball.BoostMultiplier, b.Speed(), 1e-6)
	assert.Equal(t, []BallSpawned{{BallID: b.ID, Color: ColorYellow, Source: SpawnLaunch}}, Of[BallSpawned](rec))
	assert.Equal(t, 3, s.Queued())
}

func TestRequestLaunchColors(t *testing.T) {
	tests := []struct {
		name     string
		color    Color
		expected int
	}{
		{"play color", ColorBlue, 2},
		{"rainbow", ColorRainbow, 2},
		{"neutral", ColorNeutral, 0},
		{"out of range", Color(99), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newTestSession(t, nil)
			assert.Equal(t, tt.expected, s.RequestLaunch(tt.color, 2))
			assert.Equal(t, tt.expected, s.Queued())

			s.Tick(testTick)
			for _, e := range Of[BallSpawned](rec) {
				assert.Equal(t, tt.color, e.Color)
			}
		})
	}
}

func TestPendingAbilityAppliesToNextBatch(t *testing.T) {
	s, _ := newTestSession(t, nil)

	s.pendingAbility = AbilityDuplicate
	assert.Equal(t, 4, s.RequestLaunch(ColorRed, 2))
	assert.Equal(t, AbilityNone, s.PendingAbility())

	s.queue = nil
	s.pendingAbility = AbilityPierceEnlarge
	s.RequestLaunch(ColorBlue, 1)
	s.Tick(testTick)
	require.Len(t, s.Balls(), 1)
	assert.True(t, s.Balls()[0].Piercing())
	assert.True(t, s.Balls()[0].Consistent())
}

func TestApplyAbility(t *testing.T) {
	t.Run("no balls stashes pending", func(t *testing.T) {
		s, rec := newTestSession(t, nil)
		s.applyAbility(AbilityAreaDamage)
		assert.Equal(t, AbilityAreaDamage, s.PendingAbility())
		resolved := Of[WheelResolved](rec)
		require.Len(t, resolved, 1)
		assert.True(t, resolved[0].Pending)
	})

	t.Run("area damage arms balls", func(t *testing.T) {
		s, _ := newTestSession(t, nil)
		a := placeBall(s, core.V(100, 200), core.V(1, 1), ColorRed)
		b := placeBall(s, core.V(200, 200), core.V(-1, 1), ColorBlue)
		s.applyAbility(AbilityAreaDamage)
		assert.True(t, a.Explosive())
		assert.True(t, b.Explosive())
		assert.Equal(t, AbilityNone, s.PendingAbility())
	})

	t.Run("duplicate clones balls", func(t *testing.T) {
		s, rec := newTestSession(t, nil)
		a := placeBall(s, core.V(100, 200), core.V(1, 1), ColorRed)
		a.Credit = 9
		placeBall(s, core.V(200, 200), core.V(-1, 1), ColorBlue)

		s.applyAbility(AbilityDuplicate)
		require.Len(t, s.Balls(), 4)
		clone := s.Balls()[2]
		assert.Zero(t, clone.Credit)
		assert.Equal(t, ColorRed, clone.Color)
		assert.InDelta(t, -a.Vel.X, clone.Vel.X, 1e-9)
		assert.True(t, clone.Consistent())

		ids := map[int]bool{}
		for _, b := range s.Balls() {
			ids[b.ID] = true
		}
		assert.Len(t, ids, 4)
		assert.Len(t, Of[BallSpawned](rec), 2)
	})

	t.Run("none does nothing", func(t *testing.T) {
		s, rec := newTestSession(t, nil)
		s.applyAbility(AbilityNone)
		assert.Equal(t, AbilityNone, s.PendingAbility())
		assert.Len(t, Of[WheelResolved](rec), 1)
	})
}

func TestBallsFrozenWhileWheelRuns(t *testing.T) {
	s, _ := newTestSession(t, nil)
	b := placeBall(s, core.V(300, 250), core.V(1, -1), ColorRed)
	s.RequestLaunch(ColorRed, 1)
	at := s.queue[0].At
	require.True(t, s.wheel.Start(s.now, s.rng))

	pos := b.Pos
	s.Tick(testTick)
	assert.Equal(t, pos, b.Pos)
	require.Equal(t, 1, s.Queued())
	assert.InDelta(t, at+testTick, s.queue[0].At, 1e-9)
	assert.True(t, s.Frozen())
}

func TestBallsMoveWhileReelSpins(t *testing.T) {
	s, _ := newTestSession(t, nil)
	singleBlock(s, core.NewRect(100, 150, 40, 18), ColorRed, 3)
	b := placeBall(s, core.V(300, 250), core.V(1, -1), ColorRed)
	require.True(t, s.RequestSpin())

	pos := b.Pos
	s.Tick(testTick)
	assert.Equal(t, ReelSpinning, s.Reel().Phase())
	assert.False(t, s.Frozen())
	assert.NotEqual(t, pos, b.Pos)
}

func TestRequestSpinRules(t *testing.T) {
	s, rec := newTestSession(t, nil)
	singleBlock(s, core.NewRect(100, 150, 40, 18), ColorRed, 3)
	spins := s.Spins()

	require.True(t, s.RequestSpin())
	assert.Equal(t, spins-1, s.Spins())
	assert.False(t, s.RequestSpin(), "reel busy")

	require.True(t, s.RequestSkipAnimation())
	assert.Equal(t, ReelResult, s.Reel().Phase())
	s.Tick(s.cfg.Reel.ResultDelayMs)
	require.True(t, s.Reel().Idle())

	out, ok := s.Ready()
	require.True(t, ok)
	assert.Len(t, Of[ReelResolved](rec), 1)
	assert.False(t, s.RequestSpin(), "outcome waiting to launch")

	require.True(t, s.LaunchReady())
	assert.Equal(t, out.Count, s.Queued())
	assert.False(t, s.LaunchReady())
	assert.True(t, s.RequestSpin())
	assert.Equal(t, 2, s.SpinsUsed())
}

func TestRequestSpinRefused(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.bonus.phase = BonusCollecting
	assert.False(t, s.RequestSpin(), "bonus round blocks the reel")

	s.bonus.phase = BonusIdle
	s.spins = 0
	assert.False(t, s.RequestSpin(), "no spins left")
	s.AddSpins(2)
	assert.True(t, s.RequestSpin())
}

func TestAutoLaunch(t *testing.T) {
	s, rec := newTestSession(t, func(c *config.BallBreakerConfig) { c.Session.AutoLaunch = true })
	singleBlock(s, core.NewRect(100, 150, 40, 18), ColorRed, 3)
	require.True(t, s.RequestSpin())
	require.True(t, s.RequestSkipAnimation())

	for i := 0; i < 200 && !s.Reel().Idle(); i++ {
		s.Tick(testTick)
	}
	require.True(t, s.Reel().Idle())

	_, ready := s.Ready()
	assert.False(t, ready, "outcome launched without a key press")
	assert.NotEmpty(t, Of[BallSpawned](rec))
	assert.Positive(t, s.Queued()+len(s.Balls()))
}

func TestRequestSkipAnimationOrder(t *testing.T) {
	s, _ := newTestSession(t, nil)
	require.True(t, s.RequestSpin())
	require.True(t, s.wheel.Start(s.now, s.rng))

	require.True(t, s.RequestSkipAnimation())
	assert.Equal(t, WheelResult, s.Wheel().Phase())
	assert.Equal(t, ReelSpinning, s.Reel().Phase())

	require.True(t, s.RequestSkipAnimation())
	assert.Equal(t, ReelResult, s.Reel().Phase())

	assert.False(t, s.RequestSkipAnimation(), "nothing left to skip")
}

func TestHitStopFreezesClock(t *testing.T) {
	s, _ := newTestSession(t, nil)
	b := placeBall(s, core.V(300, 250), core.V(1, -1), ColorRed)
	pos := b.Pos

	s.RequestHitStop(60)
	for range 3 {
		s.Tick(testTick)
		assert.Zero(t, s.Now())
		assert.Equal(t, pos, b.Pos)
	}
	assert.True(t, s.HitStopped())

	// The tick that ends the stop runs for the remainder
	s.Tick(testTick)
	assert.False(t, s.HitStopped())
	assert.InDelta(t, 4*testTick-60, s.Now(), 1e-9)
	assert.NotEqual(t, pos, b.Pos)
}

func TestHitStopKeepsOvershoot(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.RequestHitStop(10)
	s.Tick(100)
	assert.InDelta(t, 90.0, s.Now(), 1e-9)
	assert.False(t, s.HitStopped())

	s.RequestHitStop(50)
	s.Tick(50)
	assert.InDelta(t, 90.0, s.Now(), 1e-9, "an exactly consumed stop advances nothing")
}

func TestDamageRule(t *testing.T) {
	tests := []struct {
		name     string
		ball     Color
		pierce   bool
		block    Color
		hp       int
		expected int
	}{
		{"match", ColorRed, false, ColorRed, 5, 3},
		{"neutral", ColorBlue, false, ColorNeutral, 5, 3},
		{"mismatch", ColorRed, false, ColorBlue, 5, 1},
		{"rainbow", ColorRainbow, false, ColorBlue, 5, 5},
		{"piercing", ColorRed, true, ColorYellow, 4, 4},
	}

	s, _ := newTestSession(t, nil)
	for _, tc := range tests {
		b := placeBall(s, core.V(0, 0), core.V(0, 1), tc.ball)
		b.SetPiercing(tc.pierce)
		blk := &Block{Color: tc.block, HP: tc.hp, MaxHP: tc.hp}
		if got := s.damageFor(b, blk); got != tc.expected {
			t.Errorf("%s: damageFor() = %d, expected %d", tc.name, got, tc.expected)
		}
	}
}

func TestBlockHitCreditsAndCombo(t *testing.T) {
	s, rec := newTestSession(t, func(c *config.BallBreakerConfig) { c.Session.ComboStep = 2 })
	s.blocks = []*Block{
		{ID: 1, Rect: core.NewRect(80, 150, 40, 18), Color: ColorRed, HP: 1, MaxHP: 1},
		{ID: 2, Rect: core.NewRect(300, 150, 40, 18), Color: ColorBlue, HP: 3, MaxHP: 3},
	}

	a := placeBall(s, core.V(100, 146), core.V(0, 1), ColorRed)
	s.collideBlocks(a)
	assert.Equal(t, s.cfg.Damage.HitCredit+s.cfg.Damage.DestroyCredit, a.Credit)
	assert.Less(t, a.Vel.Y, 0.0, "ball reflects off the block")

	b := placeBall(s, core.V(320, 146), core.V(0, 1), ColorRed)
	s.collideBlocks(b)
	assert.Equal(t, s.cfg.Damage.HitCredit, b.Credit)
	assert.Equal(t, 2, s.blocks[1].HP, "mismatched color chips one point")

	s.blocks[1].HP = 1
	b.Pos = core.V(320, 146)
	b.Vel = b.Vel.WithLen(b.TargetSpeed()).Scale(-1)
	s.collideBlocks(b)
	assert.Equal(t, []ComboMilestone{{N: 2}}, Of[ComboMilestone](rec))
	assert.Equal(t, 2, s.Combo())

	s.now += s.cfg.Session.ComboWindowMs + 1
	s.expireCombo()
	assert.Zero(t, s.Combo())
}

func TestPiercingBallPassesThroughBlocks(t *testing.T) {
	s, _ := newTestSession(t, nil)
	blk := singleBlock(s, core.NewRect(80, 150, 40, 18), ColorBlue, 3)
	b := placeBall(s, core.V(100, 146), core.V(0, 1), ColorRed)
	b.SetPiercing(true)

	s.collideBlocks(b)
	assert.True(t, blk.Breaking())
	assert.Greater(t, b.Vel.Y, 0.0, "piercing ball keeps its heading")
	assert.True(t, b.Piercing(), "blocks do not revoke piercing")
}

func TestPiercingRevokedOnWallContact(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.blocks = nil
	s.walls = []*Wall{{ID: 1, Shape: core.RotatedRect{Center: core.V(300, 150), W: 70, H: 10}, HP: 1, Destructible: true}}
	b := placeBall(s, core.V(300, 165), core.V(0, -1), ColorRed)
	b.SetPiercing(true)
	require.InDelta(t, 2*s.cfg.Ball.Radius, b.Radius(), 1e-9)

	s.collideWalls(b)
	assert.False(t, b.Piercing())
	assert.InDelta(t, s.cfg.Ball.Radius, b.Radius(), 1e-9)
	assert.True(t, b.Consistent())
	assert.Greater(t, b.Vel.Y, 0.0)

	s.removeDeadWalls()
	assert.Empty(t, s.Walls(), "destructible wall at 0 HP is removed")
}

func TestExplosiveDetonation(t *testing.T) {
	s, rec := newTestSession(t, nil)
	s.blocks = []*Block{
		{ID: 1, Rect: core.NewRect(80, 150, 40, 18), Color: ColorBlue, HP: 3, MaxHP: 3},
		{ID: 2, Rect: core.NewRect(130, 150, 40, 18), Color: ColorYellow, HP: 3, MaxHP: 3},
		{ID: 3, Rect: core.NewRect(40, 120, 30, 18), Color: ColorNeutral, HP: 3, MaxHP: 3},
		{ID: 4, Rect: core.NewRect(400, 150, 40, 18), Color: ColorBlue, HP: 3, MaxHP: 3},
	}
	b := placeBall(s, core.V(100, 146), core.V(0, 1), ColorRed)
	b.ArmExplosive()

	s.collideBlocks(b)
	assert.True(t, b.OneShotUsed())
	assert.False(t, b.Explosive())
	for _, blk := range s.blocks[:3] {
		assert.True(t, blk.Breaking(), "block %d inside the blast", blk.ID)
	}
	assert.False(t, s.blocks[3].Breaking())

	explosions := Of[Explosion](rec)
	require.Len(t, explosions, 1)
	assert.Equal(t, 3, explosions[0].Kills)
	assert.True(t, s.HitStopped())
	for _, e := range Of[BlockDestroyed](rec) {
		assert.True(t, e.Explosion)
	}
}

func TestEdgeBounce(t *testing.T) {
	s, _ := newTestSession(t, nil)

	b := placeBall(s, core.V(2, 200), core.V(-1, 0.2), ColorRed)
	b.SetBoosted(true)
	b.SpawnedAt = s.now - s.cfg.Ball.BoostGraceMs - 1
	s.collideEdges(b)
	assert.False(t, b.Boosted(), "boost drops after the grace period")
	assert.Greater(t, b.Vel.X, 0.0)
	assert.InDelta(t, b.Radius(), b.Pos.X, 1e-9)
	assert.True(t, b.Consistent())
	assert.Zero(t, b.Credit)

	fresh := placeBall(s, core.V(2, 200), core.V(-1, 0.2), ColorRed)
	fresh.SetBoosted(true)
	s.collideEdges(fresh)
	assert.True(t, fresh.Boosted(), "boost survives the grace period")

	s.bonus.phase = BonusCollecting
	w, h := s.Size()
	top := placeBall(s, core.V(w/2, h), core.V(0, 1), ColorRed)
	s.collideEdges(top)
	assert.Less(t, top.Vel.Y, 0.0)
	assert.Equal(t, 1, top.Credit, "bounces pay during a bonus round")
}

func TestBreakingAnimationRemovesBlock(t *testing.T) {
	s, _ := newTestSession(t, nil)
	blk := singleBlock(s, core.NewRect(80, 150, 40, 18), ColorRed, 1)
	blk.Kill()

	s.advanceBreaking(s.cfg.Damage.BreakingMs / 2)
	require.Len(t, s.Blocks(), 1)
	assert.InDelta(t, 0.5, blk.BreakProgress(), 1e-9)

	s.advanceBreaking(s.cfg.Damage.BreakingMs / 2)
	assert.Empty(t, s.Blocks())
}

func TestBonusTriggeredOnFieldClear(t *testing.T) {
	s, rec := newTestSession(t, nil)
	blk := singleBlock(s, core.NewRect(80, 150, 40, 18), ColorRed, 1)
	placeBall(s, core.V(300, 250), core.V(1, -1), ColorRed)
	s.checkBonus()
	require.False(t, s.Bonus().Active())

	blk.Kill()
	s.checkBonus()
	require.Equal(t, BonusCollecting, s.Bonus().Phase())
	assert.Len(t, Of[BonusStarted](rec), 1)

	s.bonus.Abort()
	s.checkBonus()
	assert.False(t, s.Bonus().Active(), "the trigger fires once per field clear")
}

func TestBonusAbandonedWithoutBalls(t *testing.T) {
	s, rec := newTestSession(t, nil)
	s.blocks = nil
	s.bonus.Start(s.now, Playfield(s.cfg, s.width, s.height), s.rng)

	s.Tick(testTick)
	assert.False(t, s.Bonus().Active())
	assert.Equal(t, []BonusFinished{{Aborted: true}}, Of[BonusFinished](rec))
	assert.True(t, s.Won(), "clear field with nothing in flight is a win")
}

func TestBallsStayConsistent(t *testing.T) {
	policy := DefaultAutoplay()
	for seed := int64(1); seed <= 3; seed++ {
		s := NewSession(config.DefaultBallBreakerConfig(), WithSeed(seed))
		w, h := ArenaSize(80, 24)
		s.StartSession(w, h, nil)

		for tick := 0; tick < 3000 && !s.Terminal(); tick++ {
			policy.Act(s)
			s.Tick(testTick)
			for _, b := range s.Balls() {
				if !b.Consistent() {
					t.Fatalf("seed %d tick %d: ball %d speed %v, expected %v",
						seed, tick, b.ID, b.Speed(), b.TargetSpeed())
				}
			}
			for _, blk := range s.Blocks() {
				if blk.HP < 0 || (blk.Breaking() && blk.HP != 0) {
					t.Fatalf("seed %d tick %d: block %d HP %d breaking %v", seed, tick, blk.ID, blk.HP, blk.Breaking())
				}
			}
		}
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := NewSession(config.DefaultBallBreakerConfig(), WithSeed(99))
		w, h := ArenaSize(80, 24)
		s.StartSession(w, h, nil)
		policy := DefaultAutoplay()
		for range 1500 {
			policy.Act(s)
			s.Tick(testTick)
		}
		return s.Snapshot()
	}

	snap1 := run()
	snap2 := run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	assert.Equal(t, snap1, snap2)
}

func TestSimulateFinishes(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		res, err := Simulate(config.DefaultBallBreakerConfig(), DefaultSimOptions(seed))
		require.NoError(t, err)
		assert.Positive(t, res.SpinsUsed)
		assert.Positive(t, res.DurationMs)
		if res.Won {
			assert.Zero(t, res.BlocksLeft)
		}
	}
}
