package drift

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS is the fixed update rate. Zero keeps ebiten's default (60).
	TPS int
	// ShowFPS overlays the actual FPS and TPS in the top-left corner.
	ShowFPS bool
	// Centered places the world origin at the window center by installing a
	// camera when the scene has none.
	Centered bool
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene   *Scene
	cfg     RunConfig
	surface *EbitenSurface
}

// Update advances the scene by one fixed tick.
func (g *gameShell) Update() error {
	g.scene.Update(1.0 / float64(ebiten.TPS()))
	return g.scene.Err()
}

// Draw renders the scene and the optional FPS overlay.
func (g *gameShell) Draw(screen *ebiten.Image) {
	if g.surface == nil {
		g.surface = NewEbitenSurface(screen)
	} else {
		g.surface.Reset(screen)
	}
	g.scene.Render(g.surface)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout keeps a fixed logical screen size.
func (g *gameShell) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives scene with ebiten's game loop until the
// window closes or the scene's update func returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if scene == nil {
		return fmt.Errorf("drift: run: nil scene")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("drift: run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Centered && scene.Camera() == nil {
		scene.SetCamera(NewCamera(Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}))
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	return ebiten.RunGame(&gameShell{scene: scene, cfg: cfg})
}
