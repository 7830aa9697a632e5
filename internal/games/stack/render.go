package stack

import (
	"fmt"
	"math"

	"github.com/vovakirdan/stacktower/internal/core"
	"github.com/vovakirdan/stacktower/internal/tower"
)

// Visual characters for rendering
const (
	PlacedChar = '█'
	MovingChar = '▓'
	DebrisChar = '▒'
	FinishChar = '┄'
	GroundChar = '▔'
)

const hudRows = 2

// playRows returns the number of rows between the HUD and the ground line.
func (g *Game) playRows() int {
	return max(1, g.screenH-hudRows-1)
}

// rowPitch is the world distance between two stacked platforms, drawn as
// one terminal row.
func (g *Game) rowPitch() float64 {
	pitch := g.cfg.Platform.Depth + g.cfg.Platform.SpawnGap
	if pitch <= 0 {
		return 1
	}
	return pitch
}

// colScale shrinks the world horizontally when the screen cannot fit the
// full sweep of a moving platform.
func (g *Game) colScale() float64 {
	reach := g.cfg.Platform.SpawnDistance + g.cfg.Platform.Width/2 + 1
	if reach <= 0 {
		return 1
	}
	return math.Min(1, float64(g.screenW/2-1)/reach)
}

func (g *Game) colFor(x float64) int {
	return g.screenW/2 + int(math.Round(x*g.colScale()))
}

func (g *Game) rowFor(z float64) int {
	bottom := hudRows + g.playRows() - 1
	return bottom - int(math.Round((z-g.camera)/g.rowPitch()))
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, core.ColorYellow, "Window too small",
			fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH))
		return
	}

	g.renderGround(dst)
	g.renderFinish(dst)
	g.renderStack(dst)
	g.renderDebris(dst)

	if g.flashTicks > 0 && g.flash != "" {
		dst.DrawTextCenteredColored(hudRows, g.flash, core.ColorBrightYellow)
	}

	switch {
	case g.phase == phaseCleared:
		lines := []string{g.levelLabel()}
		if next, ok := g.cfg.Level(g.levelIndex + 1); ok && g.mode == ModeCampaign {
			lines = append(lines, "Next: "+next.Name)
		}
		g.renderOverlay(dst, core.ColorBrightGreen, "Level Completed!", lines...)
	case g.phase == phaseWon:
		g.renderOverlay(dst, core.ColorBrightGreen, "Level Completed!",
			"All levels cleared!",
			fmt.Sprintf("Final Score: %d", g.score),
			"R restart  B menu")
	case g.phase == phaseFailed:
		g.renderOverlay(dst, core.ColorBrightRed, "Level Failed!",
			"You "+g.failReason.String(),
			fmt.Sprintf("Score: %d  Best combo: %d", g.score, g.maxCombo),
			"R restart  B menu")
	case g.paused:
		g.renderOverlay(dst, core.ColorYellow, "Paused", "Press P to continue")
	}
}

func (g *Game) levelLabel() string {
	if g.mode == ModeEndless {
		return fmt.Sprintf("Stage %d", g.levelIndex+1)
	}
	name := ""
	if lvl, ok := g.cfg.Level(g.levelIndex); ok {
		name = lvl.Name
	}
	return fmt.Sprintf("Level %d: %s", g.levelIndex+1, name)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	placed, target := 0, 0
	if g.session != nil {
		placed, target = g.session.Placed(), g.session.Target()
	}

	var hud string
	if g.mode == ModeEndless {
		hud = fmt.Sprintf(" %s | Stage %d | Score: %d  Combo: %d  Placed: %d/%d",
			g.Title(), g.levelIndex+1, g.score, g.comboNow(), placed, target)
	} else {
		hud = fmt.Sprintf(" %s | Level %d/%d | Score: %d  Combo: %d  Placed: %d/%d",
			g.Title(), g.levelIndex+1, len(g.cfg.Levels), g.score, g.comboNow(), placed, target)
	}
	if best := max(g.best, g.score); best > 0 {
		hud += fmt.Sprintf("  Best: %d", best)
	}
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

func (g *Game) comboNow() int {
	if g.session == nil {
		return 0
	}
	return g.session.Combo()
}

func (g *Game) renderGround(dst *core.Screen) {
	y := g.rowFor(-g.rowPitch())
	if y < hudRows || y >= dst.Height() {
		return
	}
	for x := range dst.Width() {
		dst.SetColored(x, y, GroundChar, core.ColorGray)
	}
}

func (g *Game) renderFinish(dst *core.Screen) {
	y := g.rowFor(g.session.FinishZ())
	if y < hudRows || y >= dst.Height() {
		return
	}
	for x := range dst.Width() {
		dst.SetColored(x, y, FinishChar, core.ColorGray)
	}
	dst.DrawTextColored(dst.Width()-8, y, " FINISH", core.ColorBrightWhite)
}

func (g *Game) renderStack(dst *core.Screen) {
	for _, p := range g.session.Stack() {
		if p.State() == tower.PlatformFallen {
			continue
		}
		ch := PlacedChar
		if p.IsMoving() {
			ch = MovingChar
		}
		ext := p.Extent()
		g.drawSpan(dst, ext.Min, ext.Max, g.rowFor(p.Position.Z), ch, core.PaletteColor(p.ColorTag))
	}
}

func (g *Game) renderDebris(dst *core.Screen) {
	for _, d := range g.debris.Pieces() {
		y := g.rowFor(d.Z) + int(math.Round(d.Drop))
		g.drawSpan(dst, d.X-d.Width/2, d.X+d.Width/2, y, DebrisChar, core.PaletteColor(d.ColorTag))
	}
}

// drawSpan fills the cells covering [minX, maxX) on row y, at least one cell.
func (g *Game) drawSpan(dst *core.Screen, minX, maxX float64, y int, ch rune, c core.Color) {
	if y < hudRows || y >= dst.Height() {
		return
	}
	x0 := g.colFor(minX)
	x1 := max(g.colFor(maxX), x0+1)
	for x := x0; x < x1; x++ {
		dst.SetColored(x, y, ch, c)
	}
}

// renderOverlay draws a centered box with a title and message lines.
func (g *Game) renderOverlay(dst *core.Screen, c core.Color, title string, lines ...string) {
	width := len([]rune(title))
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := dst.Bounds().Centered(width+4, len(lines)+4)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, c)
	dst.DrawTextCenteredColored(box.Y+1, title, c)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+3+i, l)
	}
}
