package ballbreaker

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/core"
)

// Level is a generated block and wall layout.
type Level struct {
	Blocks []*Block
	Walls  []*Wall
	// Short is true when placement attempts ran out before every
	// requested block and wall was placed.
	Short bool
}

// Playfield returns the band blocks, walls and bonus targets are placed in:
// above the basket strip and below the launch lane.
func Playfield(cfg config.BallBreakerConfig, w, h float64) core.Rect {
	bottom := cfg.Arena.BasketHeight + cfg.Level.BandBottom
	top := h - cfg.Arena.LaunchMargin - cfg.Level.BandTop
	return core.Rect{X: 0, Y: bottom, W: w, H: top - bottom}
}

// GenerateLevel places blocks and then walls by rejection sampling inside
// the playfield, keeping every shape at least Clearance apart. Each kind
// gets MaxAttempts tries; when they run out the partial layout is returned
// and a warning is logged.
func GenerateLevel(cfg config.BallBreakerConfig, w, h float64, weights ColorWeights, rng Random, logger *log.Logger) Level {
	lc := cfg.Level
	band := Playfield(cfg, w, h)
	var lvl Level
	var occupied []core.Rect

	free := func(r core.Rect) bool {
		grown := r.Inflate(lc.Clearance)
		for _, o := range occupied {
			if grown.Intersects(o) {
				return false
			}
		}
		return true
	}

	if band.W >= lc.BlockWidth && band.H >= lc.BlockHeight {
		for attempts := 0; len(lvl.Blocks) < lc.Blocks && attempts < lc.MaxAttempts; attempts++ {
			r := core.NewRect(
				between(rng, band.X, band.Right()-lc.BlockWidth),
				between(rng, band.Y, band.Top()-lc.BlockHeight),
				lc.BlockWidth, lc.BlockHeight,
			)
			if !free(r) {
				continue
			}
			occupied = append(occupied, r)

			color := ColorNeutral
			if !chance(rng, lc.NeutralChance) {
				color = weights.pick(rng)
			}
			hp := 1 + rng.IntN(lc.MaxHP)
			lvl.Blocks = append(lvl.Blocks, &Block{
				ID:    len(lvl.Blocks) + 1,
				Rect:  r,
				Color: color,
				HP:    hp,
				MaxHP: hp,
			})
		}
	}

	for attempts := 0; len(lvl.Walls) < lc.Walls && attempts < lc.MaxAttempts; attempts++ {
		shape := core.RotatedRect{
			Center: core.V(between(rng, band.X, band.Right()), between(rng, band.Y, band.Top())),
			W:      lc.WallLength,
			H:      lc.WallThickness,
			Angle:  between(rng, -lc.MaxRotation, lc.MaxRotation),
		}
		bounds := shape.Bounds()
		if bounds.X < band.X || bounds.Right() > band.Right() || bounds.Y < band.Y || bounds.Top() > band.Top() {
			continue
		}
		if !free(bounds) {
			continue
		}
		occupied = append(occupied, bounds)

		wall := &Wall{ID: len(lvl.Walls) + 1, Shape: shape}
		if chance(rng, lc.DestructibleChance) {
			wall.Destructible = true
			wall.HP = lc.WallHP
		}
		lvl.Walls = append(lvl.Walls, wall)
	}

	if len(lvl.Blocks) < lc.Blocks || len(lvl.Walls) < lc.Walls {
		lvl.Short = true
		logger.Warn("level placement attempts exhausted",
			"arena", [2]float64{w, h},
			"blocks", len(lvl.Blocks), "blocks_wanted", lc.Blocks,
			"walls", len(lvl.Walls), "walls_wanted", lc.Walls,
		)
	}

	return lvl
}
