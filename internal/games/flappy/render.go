package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BirdBody      = '█'
	WingUp        = '▀'
	WingDown      = '▄'
	BeakUp        = '◥'
	BeakLevel     = '▶'
	BeakDown      = '◢'
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
	GroundTop     = '═'
	GroundFill    = '░'
	BorderChar    = '│'
)

// Rotation thresholds, in degrees, for picking the beak glyph.
const (
	noseUpAngle   = -10
	noseDownAngle = 30
)

// viewport maps world units onto screen cells. The playfield keeps the
// world's aspect ratio, assuming cells twice as tall as wide.
type viewport struct {
	offsetX int
	width   int
	height  int
	sx, sy  float64
}

func (g *Game) viewport(dst *core.Screen) viewport {
	w := g.cfg.World
	rows := dst.Height()
	cols := int(math.Round(float64(rows) * w.ScreenWidth / w.ScreenHeight * 2))
	if cols > dst.Width()-2 {
		cols = dst.Width() - 2
	}
	if cols < 1 {
		cols = 1
	}
	return viewport{
		offsetX: (dst.Width() - cols) / 2,
		width:   cols,
		height:  rows,
		sx:      float64(cols) / w.ScreenWidth,
		sy:      float64(rows) / w.ScreenHeight,
	}
}

func (v viewport) x(wx float64) int { return v.offsetX + int(math.Round(wx*v.sx)) }
func (v viewport) y(wy float64) int { return int(math.Round(wy * v.sy)) }

// set draws a cell only inside the playfield columns.
func (v viewport) set(dst *core.Screen, x, y int, r rune, c core.Color) {
	if x < v.offsetX || x >= v.offsetX+v.width {
		return
	}
	dst.SetColored(x, y, r, c)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}
	vp := g.viewport(dst)

	g.drawBorders(dst, vp)
	for _, p := range g.engine.Pipes() {
		g.drawPipe(dst, vp, p)
	}
	g.drawGround(dst, vp)
	g.drawBird(dst, vp)
	g.drawHUD(dst, vp)

	switch {
	case g.run.Phase() == PhaseIdle:
		g.drawCenteredMessage(dst, []string{
			"FLAPPY BIRD",
			"",
			"Space / Enter: start",
			"Space: flap",
			"M: sound on/off",
		}, core.ColorBrightYellow)
	case g.paused:
		g.drawCenteredMessage(dst, []string{"PAUSED", "", "Press P to resume"}, core.ColorWhite)
	case g.run.GameOver():
		lines := []string{
			"GAME OVER",
			"",
			fmt.Sprintf("Score: %d", g.run.Score()),
			fmt.Sprintf("Best:  %d", g.run.HighScore()),
		}
		if g.run.NewBest() {
			lines = append(lines, "", "NEW BEST!")
		}
		g.drawCenteredMessage(dst, lines, core.ColorBrightRed)
	}
}

func (g *Game) drawBorders(dst *core.Screen, vp viewport) {
	for y := 0; y < vp.height; y++ {
		dst.SetColored(vp.offsetX-1, y, BorderChar, core.ColorGray)
		dst.SetColored(vp.offsetX+vp.width, y, BorderChar, core.ColorGray)
	}
}

// drawPipe renders both halves of a pipe pair with caps facing the gap.
func (g *Game) drawPipe(dst *core.Screen, vp viewport, p PipePair) {
	scroll := g.engine.Scroll()
	x0 := vp.x(p.ScreenX(scroll))
	x1 := vp.x(p.ScreenX(scroll) + g.cfg.Pipes.Width)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	gapTop := vp.y(p.GapTop)
	gapBottom := vp.y(p.GapBottom(g.cfg.Pipes.Gap))
	floor := vp.y(g.cfg.World.ScreenHeight - g.cfg.World.GroundHeight)

	for x := x0; x < x1; x++ {
		for y := 0; y < gapTop; y++ {
			vp.set(dst, x, y, PipeChar, core.ColorGreen)
		}
		if gapTop > 0 {
			vp.set(dst, x, gapTop-1, PipeCapTop, core.ColorBrightGreen)
		}
		for y := gapBottom; y < floor; y++ {
			vp.set(dst, x, y, PipeChar, core.ColorGreen)
		}
		vp.set(dst, x, gapBottom, PipeCapBottom, core.ColorBrightGreen)
	}
}

func (g *Game) drawGround(dst *core.Screen, vp viewport) {
	floor := vp.y(g.cfg.World.ScreenHeight - g.cfg.World.GroundHeight)
	dst.DrawHLine(vp.offsetX, floor, vp.width, GroundTop, core.ColorBrightGreen)
	for y := floor + 1; y < vp.height; y++ {
		dst.DrawHLine(vp.offsetX, y, vp.width, GroundFill, core.ColorSand)
	}
}

// drawBird renders the bird body with a wing that follows velocity and a
// beak that follows rotation.
func (g *Game) drawBird(dst *core.Screen, vp viewport) {
	bird := g.engine.Bird()
	size := g.cfg.Bird.Size

	x0 := vp.x(g.cfg.Bird.X)
	w := core.Max(2, int(math.Round(size*vp.sx)))
	y := vp.y(bird.Y + size/2)

	for dx := 0; dx < w-1; dx++ {
		vp.set(dst, x0+dx, y, BirdBody, core.ColorBrightYellow)
	}

	wing := WingDown
	if bird.Velocity < 0 {
		wing = WingUp
	}
	vp.set(dst, x0, y, wing, core.ColorYellow)

	beak := BeakLevel
	switch {
	case bird.Rotation < noseUpAngle:
		beak = BeakUp
	case bird.Rotation > noseDownAngle:
		beak = BeakDown
	}
	vp.set(dst, x0+w-1, y, beak, core.ColorOrange)
}

// drawHUD draws the score centered at the top and the sound indicator.
func (g *Game) drawHUD(dst *core.Screen, vp viewport) {
	score := fmt.Sprintf(" %d ", g.run.Score())
	dst.DrawTextColored(vp.offsetX+(vp.width-len(score))/2, 0, score, core.ColorWhite)

	sound := "♪ on"
	if !g.run.SoundEnabled() {
		sound = "♪ off"
	}
	dst.DrawTextColored(vp.offsetX+vp.width+2, 0, sound, core.ColorGray)
	dst.DrawTextColored(vp.offsetX+vp.width+2, 1, fmt.Sprintf("best %d", g.run.HighScore()), core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, lines []string, c core.Color) {
	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, boxY+1+i, l, c)
	}
}
