package touchkit

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Game adapts a Kit to ebiten.Game. Each frame it polls input through the
// kit's recognizer, runs Kit.Update, and draws the kit.
type Game struct {
	Kit *Kit
	// Clear fills the screen before drawing. Defaults to black.
	Clear color.Color
	// ShowStats overlays the kit's Stats and the frame rate.
	ShowStats bool
	// OnUpdate, if set, runs after Kit.Update. Returning an error stops the game.
	OnUpdate func(k *Kit) error
}

// NewGame returns a Game driving k.
func NewGame(k *Kit) *Game {
	return &Game{Kit: k, Clear: color.Black}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if r := g.Kit.Recognizer(); r != nil {
		r.Poll()
	}
	g.Kit.Update()
	if g.OnUpdate != nil {
		return g.OnUpdate(g.Kit)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.Clear != nil {
		screen.Fill(g.Clear)
	}
	g.Kit.Draw(screen)
	if g.ShowStats {
		s := g.Kit.Stats()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.0f  children: %d  operator: %d  frozen: %v",
			ebiten.ActualTPS(), s.Children, s.Operator, s.Frozen), 4, 4)
	}
}

// Layout implements ebiten.Game. The logical screen is the kit's viewport.
func (g *Game) Layout(_, _ int) (int, int) {
	v := g.Kit.Viewport()
	return int(math.Ceil(v.Width)), int(math.Ceil(v.Height))
}

// Run opens a window sized to the kit's viewport and runs g until the window
// closes or OnUpdate returns an error.
func Run(title string, g *Game) error {
	v := g.Kit.Viewport()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(int(math.Ceil(v.Width)), int(math.Ceil(v.Height)))
	ebiten.SetTPS(g.Kit.tps)
	return ebiten.RunGame(g)
}
