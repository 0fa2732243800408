package ballbreaker

import "math"

// Snapshot contains the observable session state for replay checks and
// determinism tests. Uses primitive types only for stable serialization.
type Snapshot struct {
	Now    float64
	Score  int
	Spins  int
	Combo  int
	Queued int

	ReelPhase  int
	WheelPhase int
	BonusPhase int
	Rotation   float64
	Pending    int

	LauncherX float64

	// Each ball is 7 floats: X, Y, VX, VY, Radius, Color, Credit
	BallData []float64

	// Each block is 3 ints: ID, HP, Breaking
	BlockData []int

	// Each wall is 2 ints: ID, HP
	WallData []int

	// Slot kinds in order
	Baskets [NumBaskets]int

	Won  bool
	Lost bool
}

// Snapshot returns the current session state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	ballData := make([]float64, 0, len(s.balls)*7)
	for _, b := range s.balls {
		ballData = append(ballData, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, b.Radius(), float64(b.Color), float64(b.Credit))
	}

	blockData := make([]int, 0, len(s.blocks)*3)
	for _, b := range s.blocks {
		breaking := 0
		if b.Breaking() {
			breaking = 1
		}
		blockData = append(blockData, b.ID, b.HP, breaking)
	}

	wallData := make([]int, 0, len(s.walls)*2)
	for _, w := range s.walls {
		wallData = append(wallData, w.ID, w.HP)
	}

	var baskets [NumBaskets]int
	for i, b := range s.baskets {
		baskets[i] = int(b.Kind)
	}

	return Snapshot{
		Now:        s.now,
		Score:      s.score,
		Spins:      s.spins,
		Combo:      s.combo,
		Queued:     len(s.queue),
		ReelPhase:  int(s.reel.Phase()),
		WheelPhase: int(s.wheel.Phase()),
		BonusPhase: int(s.bonus.Phase()),
		Rotation:   s.wheel.Rotation(),
		Pending:    int(s.pendingAbility),
		LauncherX:  s.launcher.Pos.X,
		BallData:   ballData,
		BlockData:  blockData,
		WallData:   wallData,
		Baskets:    baskets,
		Won:        s.won,
		Lost:       s.lost,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := math.Float64bits(snap.Now)
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Spins)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Queued)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ReelPhase)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.WheelPhase) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BonusPhase) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Pending)    //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Rotation)
	h = h*31 + math.Float64bits(snap.LauncherX)

	for _, v := range snap.BallData {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.BlockData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.WallData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.Baskets {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	if snap.Won {
		h = h*31 + 1
	}
	if snap.Lost {
		h = h*31 + 2
	}
	return h
}
