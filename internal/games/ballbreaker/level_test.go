package ballbreaker

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ball-breaker/internal/config"
)

func TestGenerateLevelRespectsClearance(t *testing.T) {
	cfg := config.DefaultBallBreakerConfig()
	w, h := ArenaSize(120, 40)

	for seed := int64(1); seed <= 5; seed++ {
		lvl := GenerateLevel(cfg, w, h, nil, NewRandom(seed), discardLogger())
		band := Playfield(cfg, w, h)

		require.NotEmpty(t, lvl.Blocks, "seed %d placed no blocks", seed)
		for i, a := range lvl.Blocks {
			assert.GreaterOrEqual(t, a.Rect.X, band.X)
			assert.LessOrEqual(t, a.Rect.Right(), band.Right())
			assert.GreaterOrEqual(t, a.Rect.Y, band.Y)
			assert.LessOrEqual(t, a.Rect.Top(), band.Top())
			assert.GreaterOrEqual(t, a.HP, 1)
			assert.LessOrEqual(t, a.HP, cfg.Level.MaxHP)
			assert.Equal(t, a.HP, a.MaxHP)

			for _, b := range lvl.Blocks[i+1:] {
				half := cfg.Level.Clearance/2 - 0.01
				assert.False(t, a.Rect.Inflate(half).Intersects(b.Rect.Inflate(half)),
					"blocks %d and %d closer than clearance", a.ID, b.ID)
			}
			for _, wall := range lvl.Walls {
				assert.False(t, a.Rect.Intersects(wall.Shape.Bounds()),
					"block %d overlaps wall %d", a.ID, wall.ID)
			}
		}

		for _, wall := range lvl.Walls {
			assert.LessOrEqual(t, wall.Shape.Angle, cfg.Level.MaxRotation)
			assert.GreaterOrEqual(t, wall.Shape.Angle, -cfg.Level.MaxRotation)
			if wall.Destructible {
				assert.Equal(t, cfg.Level.WallHP, wall.HP)
			}
		}
	}
}

func TestGenerateLevelColorWeights(t *testing.T) {
	cfg := config.DefaultBallBreakerConfig()
	cfg.Level.NeutralChance = 0
	w, h := ArenaSize(120, 40)

	lvl := GenerateLevel(cfg, w, h, ColorWeights{ColorBlue: 1}, NewRandom(9), discardLogger())
	require.NotEmpty(t, lvl.Blocks)
	for _, b := range lvl.Blocks {
		assert.Equal(t, ColorBlue, b.Color)
	}
}

func TestGenerateLevelTinyArenaReturnsPartial(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})
	cfg := config.DefaultBallBreakerConfig()

	lvl := GenerateLevel(cfg, 90, 260, nil, NewRandom(1), logger)
	assert.True(t, lvl.Short)
	assert.Less(t, len(lvl.Blocks), cfg.Level.Blocks)
	assert.Contains(t, buf.String(), "placement attempts exhausted")
}

func TestGenerateLevelDeterministic(t *testing.T) {
	cfg := config.DefaultBallBreakerConfig()
	w, h := ArenaSize(80, 24)
	a := GenerateLevel(cfg, w, h, nil, NewRandom(42), discardLogger())
	b := GenerateLevel(cfg, w, h, nil, NewRandom(42), discardLogger())

	require.Equal(t, len(a.Blocks), len(b.Blocks))
	for i := range a.Blocks {
		assert.Equal(t, *a.Blocks[i], *b.Blocks[i])
	}
	require.Equal(t, len(a.Walls), len(b.Walls))
	for i := range a.Walls {
		assert.Equal(t, *a.Walls[i], *b.Walls[i])
	}
}
