package ballbreaker

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/ball-breaker/internal/core"
)

// Visual characters for rendering
const (
	BallChar          = '●'
	PierceBallChar    = '◉'
	ExplosiveChar     = '✱'
	LauncherChar      = 'V'
	WallChar          = '■'
	CrackedWallChar   = '#'
	TargetGhostChar   = '○'
	TargetWarnChar    = '◌'
	TargetSolidChar   = '◎'
	BreakingChar      = '░'
	BasketFloorChar   = '▔'
	BasketDividerChar = '│'
)

// BlockGlyphs shade blocks by remaining hit points, weakest last.
var BlockGlyphs = []rune{'█', '▓', '▒'}

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Screen too small (min %dx%d)", minScreenW, minScreenH), core.ColorRed)
		return
	}
	s := g.session
	v := newViewport(dst.Width(), dst.Height(), s.width, s.height)

	g.renderHUD(dst)
	dst.DrawBox(0, hudRows, dst.Width(), dst.Height()-hudRows, core.ColorGray)

	g.renderBaskets(dst, v)
	for _, w := range s.walls {
		renderWall(dst, v, w)
	}
	for _, b := range s.blocks {
		renderBlock(dst, v, b)
	}
	if s.bonus.Phase() == BonusCollecting {
		for _, t := range s.bonus.Targets() {
			if t.Collected {
				continue
			}
			renderTarget(dst, v, t, s.bonus.TargetPhaseAt(t, s.now))
		}
	}
	for _, b := range s.balls {
		renderBall(dst, v, b)
	}
	lx, ly := v.cell(s.launcher.Pos)
	dst.SetColored(lx, ly, LauncherChar, core.ColorWhite)

	switch {
	case s.Terminal():
		g.renderGameOver(dst)
	case !s.wheel.Idle():
		renderWheel(dst, s.wheel)
	case s.bonus.Phase() == BonusRevealing:
		renderReveal(dst, s.bonus)
	case g.paused:
		dst.DrawTextCentered(dst.Height()/2, "PAUSED", core.ColorYellow)
	}
}

// viewport maps world coordinates (Y up) onto the bordered arena cells.
type viewport struct {
	innerW, innerH int
	sx, sy         float64
}

func newViewport(screenW, screenH int, w, h float64) viewport {
	innerW := max(1, screenW-2)
	innerH := max(1, screenH-hudRows-2)
	return viewport{
		innerW: innerW,
		innerH: innerH,
		sx:     float64(innerW) / math.Max(w, 1),
		sy:     float64(innerH) / math.Max(h, 1),
	}
}

// cell returns the screen cell containing world point p.
func (v viewport) cell(p core.Vec2) (x, y int) {
	cx := core.Clamp(int(p.X*v.sx), 0, v.innerW-1)
	cy := core.Clamp(int(p.Y*v.sy), 0, v.innerH-1)
	return 1 + cx, hudRows + 1 + (v.innerH - 1 - cy)
}

func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	hud := fmt.Sprintf(" Score: %d  Spins: %d  Blocks: %d  Balls: %d",
		s.score, s.spins, s.RemainingBlocks(), len(s.balls)+len(s.queue))
	if s.combo > 1 {
		hud += fmt.Sprintf("  Combo: %d", s.combo)
	}
	dst.DrawTextColored(0, 0, hud, core.ColorWhite)

	var b strings.Builder
	b.WriteString(" Reel ")
	for _, c := range s.reel.Values() {
		if c == ColorNeutral {
			b.WriteString("[?]")
			continue
		}
		fmt.Fprintf(&b, "[%c]", colorInitial(c))
	}
	if out, ok := s.Ready(); ok {
		fmt.Fprintf(&b, "  Ready: %d x %s (space)", out.Count, out.Color)
	}
	if a := s.PendingAbility(); a != AbilityNone {
		fmt.Fprintf(&b, "  Next: %s", a)
	}
	if s.bonus.Phase() == BonusRewarding {
		fmt.Fprintf(&b, "  FEVER %.1fs", s.bonus.RewardRemaining(s.now)/1000)
	}
	if g.message != "" {
		b.WriteString("  ")
		b.WriteString(g.message)
	}
	dst.DrawTextColored(0, 1, b.String(), core.ColorCyan)
}

func colorInitial(c Color) rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorYellow:
		return 'Y'
	case ColorBlue:
		return 'B'
	case ColorRainbow:
		return '*'
	default:
		return '.'
	}
}

func (g *Game) renderBaskets(dst *core.Screen, v viewport) {
	s := g.session
	_, floorY := v.cell(core.V(0, s.cfg.Arena.BasketHeight))
	_, bottomY := v.cell(core.V(0, 0))
	slotW := s.width / NumBaskets

	for i, bk := range s.baskets {
		x0, _ := v.cell(core.V(float64(i)*slotW, 0))
		x1, _ := v.cell(core.V(float64(i+1)*slotW-1, 0))
		color := core.ColorGreen
		label := bk.Kind.String()
		switch {
		case bk.Kind == BasketTriple:
			color = core.ColorOrange
		case bk.Kind == BasketBonus && (s.bonus.Active() || s.now < bk.CooldownUntil):
			color = core.ColorGray
			label = "wait"
		case bk.Kind == BasketBonus:
			color = core.ColorMagenta
		}
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, floorY, BasketFloorChar, color)
		}
		if i > 0 {
			for y := floorY; y <= bottomY; y++ {
				dst.SetColored(x0, y, BasketDividerChar, core.ColorGray)
			}
		}
		mid := x0 + (x1-x0+1-len(label))/2
		dst.DrawTextColored(mid, bottomY, label, color)
	}
}

func renderBlock(dst *core.Screen, v viewport, b *Block) {
	x0, y1 := v.cell(core.V(b.Rect.X, b.Rect.Y))
	x1, y0 := v.cell(core.V(b.Rect.Right()-1e-9, b.Rect.Top()-1e-9))

	glyph := BreakingChar
	if !b.Breaking() {
		idx := 0
		if b.MaxHP > 0 {
			idx = (len(BlockGlyphs) - 1) * (b.MaxHP - b.HP) / b.MaxHP
		}
		glyph = BlockGlyphs[core.Clamp(idx, 0, len(BlockGlyphs)-1)]
	}
	dst.FillRect(x0, y0, x1-x0+1, y1-y0+1, glyph, b.Color.Display())
}

// renderWall samples points along the wall's long axis.
func renderWall(dst *core.Screen, v viewport, w *Wall) {
	glyph := rune(WallChar)
	color := core.ColorWhite
	if w.Destructible {
		glyph = CrackedWallChar
		color = core.ColorOrange
	}
	half := w.Shape.W / 2
	for t := -half; t <= half; t += cellW / 2 {
		p := w.Shape.Center.Add(core.V(t, 0).Rotate(w.Shape.Angle))
		x, y := v.cell(p)
		dst.SetColored(x, y, glyph, color)
	}
}

func renderTarget(dst *core.Screen, v viewport, t *Target, phase TargetPhase) {
	x, y := v.cell(t.Pos)
	switch phase {
	case TargetGhost:
		dst.SetColored(x, y, TargetGhostChar, core.ColorGray)
	case TargetWarning:
		dst.SetColored(x, y, TargetWarnChar, core.ColorYellow)
	default:
		dst.SetColored(x, y, TargetSolidChar, core.ColorCyan)
	}
}

func renderBall(dst *core.Screen, v viewport, b *Ball) {
	x, y := v.cell(b.Pos)
	glyph := rune(BallChar)
	switch {
	case b.Explosive():
		glyph = ExplosiveChar
	case b.Piercing():
		glyph = PierceBallChar
	}
	dst.SetColored(x, y, glyph, b.Color.Display())
}

func renderWheel(dst *core.Screen, w *Wheel) {
	const boxW, boxH = 26, len(WheelSegments) + 2
	x := (dst.Width() - boxW) / 2
	y := (dst.Height() - boxH) / 2
	dst.FillRect(x, y, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(x, y, boxW, boxH, core.ColorMagenta)

	current := SegmentAt(w.Rotation())
	for i, a := range WheelSegments {
		label := fmt.Sprintf("  %s", a)
		color := core.ColorGray
		if i == current {
			label = fmt.Sprintf("> %s", a)
			color = core.ColorBrightYellow
		}
		dst.DrawTextColored(x+2, y+1+i, label, color)
	}
}

func renderReveal(dst *core.Screen, b *Bonus) {
	var sb strings.Builder
	resolving, spinning := b.Resolving()
	revealed := b.Revealed()
	for i := range b.Slots() {
		switch {
		case i < len(revealed) && revealed[i]:
			sb.WriteString("[✓]")
		case i < len(revealed):
			sb.WriteString("[✗]")
		case spinning && i == resolving:
			sb.WriteString("[?]")
		default:
			sb.WriteString("[ ]")
		}
	}
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "BONUS", core.ColorBrightYellow)
	dst.DrawTextCentered(y, sb.String(), core.ColorWhite)
}

func (g *Game) renderGameOver(dst *core.Screen) {
	s := g.session
	y := dst.Height() / 2
	if s.Won() {
		dst.DrawTextCentered(y-1, "FIELD CLEARED!", core.ColorGreen)
	} else {
		dst.DrawTextCentered(y-1, "OUT OF SPINS", core.ColorRed)
	}
	dst.DrawTextCentered(y, fmt.Sprintf("Score: %d", s.Score()), core.ColorWhite)
	dst.DrawTextCentered(y+1, "R to restart, Q to quit", core.ColorGray)
}
