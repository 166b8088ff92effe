// destroids is the arcade game in a window. Arrows steer and thrust, space
// fires, enter starts a game, P pauses, E ejects and Esc quits.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/drift"
	"github.com/phanxgames/drift/arcade"
	"go.uber.org/zap"
)

type shell struct {
	scene   *drift.Scene
	game    *arcade.Game
	surface *drift.EbitenSurface
	w, h    int
	showFPS bool
}

func (s *shell) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		if s.scene.Paused() {
			s.game.Resume()
		} else {
			s.game.Pause()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter) && s.game.GameOver():
		s.game.Start()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		s.game.Eject()
	}

	s.game.Controls = arcade.Controls{
		Thrust: ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Left:   ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:  ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Fire:   ebiten.IsKeyPressed(ebiten.KeySpace),
	}
	s.scene.Update(1.0 / float64(ebiten.TPS()))
	return s.scene.Err()
}

func (s *shell) Draw(screen *ebiten.Image) {
	s.surface.Reset(screen)
	s.scene.Render(s.surface)
	ebitenutil.DebugPrint(screen, s.status())
}

func (s *shell) Layout(_, _ int) (int, int) {
	return s.w, s.h
}

func (s *shell) status() string {
	var line string
	switch {
	case s.scene.Paused():
		line = "PAUSED - press P"
	case s.game.GameOver():
		line = fmt.Sprintf("SCORE %d - press ENTER to play", s.game.Score())
	default:
		ship := s.game.Ship()
		line = fmt.Sprintf("SCORE %d  LEVEL %d  SHIELD %.0f%%  HULL %.0f%%",
			s.game.Score(), s.game.Level(), ship.Shield(), ship.Hull())
	}
	if s.showFPS {
		line += fmt.Sprintf("\nFPS %.1f", ebiten.ActualFPS())
	}
	return line
}

func main() {
	configPath := flag.String("config", "", "path to a YAML game config")
	showFPS := flag.Bool("fps", false, "show frames per second")
	debug := flag.Bool("debug", false, "log per-frame stats")
	flag.Parse()

	cfg := arcade.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = arcade.LoadConfigFile(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *debug {
		cfg.Log.Level = "debug"
	}

	logger, err := arcade.NewLogger(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	scene := drift.NewScene()
	scene.ClearColor = drift.Color{A: 1}
	scene.SetLogger(logger)
	scene.SetDebugMode(*debug)

	w, h := int(cfg.Width), int(cfg.Height)
	scene.SetCamera(drift.NewCamera(drift.Rect{Width: cfg.Width, Height: cfg.Height}))

	s := &shell{
		scene:   scene,
		game:    arcade.NewGame(scene, cfg, logger),
		surface: drift.NewEbitenSurface(nil),
		w:       w,
		h:       h,
		showFPS: *showFPS,
	}

	ebiten.SetWindowTitle("Destroids")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(s); err != nil {
		logger.Fatal("game loop", zap.Error(err))
	}
}
