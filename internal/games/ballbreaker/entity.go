// Package ballbreaker implements the ball breaker simulation: a bounded arena
// with a moving launch point, colored balls, destructible blocks, rotated
// walls and five scoring baskets, plus the reel, wheel and bonus-round state
// machines that gate ball production and apply modifiers.
//
// The simulation is single-threaded and advanced only by Session.Tick.
// Every delayed effect is a timestamp compared against the session clock.
package ballbreaker

import (
	"math"

	"github.com/vovakirdan/ball-breaker/internal/core"
)

// Color is the gameplay color of a ball or block.
type Color int

const (
	ColorNeutral Color = iota // Blocks only: damaged fully by every ball
	ColorRed
	ColorYellow
	ColorBlue
	ColorRainbow // Balls only: lethal to every block
)

// PlayColors is the fixed color set used by the reel and by block generation.
var PlayColors = []Color{ColorRed, ColorYellow, ColorBlue}

// String returns the name of the color.
func (c Color) String() string {
	switch c {
	case ColorNeutral:
		return "neutral"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorRainbow:
		return "rainbow"
	default:
		return "unknown"
	}
}

// Display maps a gameplay color to a screen color.
func (c Color) Display() core.Color {
	switch c {
	case ColorRed:
		return core.ColorBrightRed
	case ColorYellow:
		return core.ColorBrightYellow
	case ColorBlue:
		return core.ColorBrightBlue
	case ColorRainbow:
		return core.ColorMagenta
	default:
		return core.ColorGray
	}
}

// Ability is a wheel outcome applied to balls.
type Ability int

const (
	AbilityNone          Ability = iota
	AbilityAreaDamage            // Next block contact detonates an instant-kill area
	AbilityPierceEnlarge         // Double radius and lethal damage until the next wall contact
	AbilityDuplicate             // Clone balls in play, or double the next batch
)

// String returns the name of the ability.
func (a Ability) String() string {
	switch a {
	case AbilityNone:
		return "none"
	case AbilityAreaDamage:
		return "area-damage"
	case AbilityPierceEnlarge:
		return "pierce"
	case AbilityDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// pierceRadiusFactor is the radius multiplier of a piercing ball.
const pierceRadiusFactor = 2.0

// Ball is a moving projectile. Radius and speed are derived from the base
// values and the current ability flags; flags are changed only through
// methods that renormalize velocity in the same call.
type Ball struct {
	ID         int
	Pos        core.Vec2
	Vel        core.Vec2
	BaseRadius float64
	BaseSpeed  float64
	Color      Color
	Credit     int     // Accumulated score credit
	SpawnedAt  float64 // Session clock at spawn or last teleport

	boostMul  float64
	pierceMul float64

	boosted     bool
	piercing    bool
	explosive   bool
	oneShotUsed bool
}

// newBall creates a ball moving along dir at its target speed.
func newBall(id int, pos, dir core.Vec2, color Color, baseRadius, baseSpeed, boostMul, pierceMul float64) *Ball {
	b := &Ball{
		ID:         id,
		Pos:        pos,
		Vel:        dir,
		BaseRadius: baseRadius,
		BaseSpeed:  baseSpeed,
		Color:      color,
		boostMul:   boostMul,
		pierceMul:  pierceMul,
	}
	b.renormalize()
	return b
}

// Radius returns the effective radius for the current flags.
func (b *Ball) Radius() float64 {
	if b.piercing {
		return b.BaseRadius * pierceRadiusFactor
	}
	return b.BaseRadius
}

// TargetSpeed returns the speed the ball must travel at for its flags.
func (b *Ball) TargetSpeed() float64 {
	m := 1.0
	if b.boosted {
		m = b.boostMul
	}
	if b.piercing {
		m = math.Max(m, b.pierceMul)
	}
	return b.BaseSpeed * m
}

// Speed returns the current velocity magnitude.
func (b *Ball) Speed() float64 {
	return b.Vel.Len()
}

// Boosted reports whether the spawn speed boost is active.
func (b *Ball) Boosted() bool { return b.boosted }

// Piercing reports whether the ball bulldozes through blocks.
func (b *Ball) Piercing() bool { return b.piercing }

// Explosive reports whether the ball carries an unused area-damage charge.
func (b *Ball) Explosive() bool { return b.explosive && !b.oneShotUsed }

// OneShotUsed reports whether the area-damage charge has been spent.
func (b *Ball) OneShotUsed() bool { return b.oneShotUsed }

// SetBoosted toggles the speed boost and renormalizes velocity.
func (b *Ball) SetBoosted(on bool) {
	b.boosted = on
	b.renormalize()
}

// SetPiercing toggles pierce/enlarge and renormalizes velocity.
func (b *Ball) SetPiercing(on bool) {
	b.piercing = on
	b.renormalize()
}

// ArmExplosive gives the ball a fresh area-damage charge.
func (b *Ball) ArmExplosive() {
	b.explosive = true
	b.oneShotUsed = false
}

// detonate spends the area-damage charge.
func (b *Ball) detonate() {
	b.explosive = false
	b.oneShotUsed = true
}

// Grant applies a wheel ability to the ball. Duplicate is handled by the
// session because it creates new balls.
func (b *Ball) Grant(a Ability) {
	switch a {
	case AbilityAreaDamage:
		b.ArmExplosive()
	case AbilityPierceEnlarge:
		b.SetPiercing(true)
	}
}

// Consistent reports whether the velocity magnitude matches the flag set.
// Radius is derived on every call and cannot drift.
func (b *Ball) Consistent() bool {
	return core.ApproxEqual(b.Speed(), b.TargetSpeed(), 1e-6*math.Max(1, b.TargetSpeed()))
}

// renormalize rescales velocity to the target speed, keeping direction.
func (b *Ball) renormalize() {
	b.Vel = b.Vel.WithLen(b.TargetSpeed())
}

// clone returns an independent copy with a new ID and zero credit.
func (b *Ball) clone(id int) *Ball {
	c := *b
	c.ID = id
	c.Credit = 0
	return &c
}

// Block is a stationary destructible target.
type Block struct {
	ID    int
	Rect  core.Rect
	Color Color
	HP    int
	MaxHP int

	breaking bool
	progress float64 // Breaking animation progress in [0, 1]
}

// Breaking reports whether the block has been destroyed and is animating out.
func (b *Block) Breaking() bool { return b.breaking }

// BreakProgress returns the breaking animation progress in [0, 1].
func (b *Block) BreakProgress() float64 { return b.progress }

// Damage removes up to n hit points. It returns true when this call
// destroyed the block.
func (b *Block) Damage(n int) bool {
	if b.breaking || n <= 0 {
		return false
	}
	b.HP -= n
	if b.HP <= 0 {
		b.HP = 0
		b.breaking = true
		return true
	}
	return false
}

// Kill destroys the block regardless of hit points.
func (b *Block) Kill() bool {
	return b.Damage(b.HP)
}

// Wall is a stationary rotated obstacle.
type Wall struct {
	ID           int
	Shape        core.RotatedRect
	HP           int
	Destructible bool
}

// Hit applies one point of damage to a destructible wall and reports
// whether the wall should be removed.
func (w *Wall) Hit() bool {
	if !w.Destructible {
		return false
	}
	w.HP--
	return w.HP <= 0
}

// BasketKind is the role of a basket slot.
type BasketKind int

const (
	BasketSingle BasketKind = iota // 1x multiplier
	BasketTriple                   // 3x multiplier
	BasketBonus                    // Wheel trigger
)

// String returns the display label of the basket kind.
func (k BasketKind) String() string {
	switch k {
	case BasketSingle:
		return "1x"
	case BasketTriple:
		return "3x"
	case BasketBonus:
		return "bonus"
	default:
		return "?"
	}
}

// Multiplier returns the score multiplier of the slot. During a bonus round
// each multiplier is upgraded one tier.
func (k BasketKind) Multiplier(bonusActive bool) int {
	switch k {
	case BasketSingle:
		if bonusActive {
			return 3
		}
		return 1
	case BasketTriple:
		if bonusActive {
			return 5
		}
		return 3
	default:
		return 1
	}
}

// NumBaskets is the fixed number of basket slots.
const NumBaskets = 5

// Basket is one of the bottom scoring slots.
type Basket struct {
	Slot          int
	Kind          BasketKind
	CooldownUntil float64 // Bonus slots return balls until this clock time
}
