// termroids plays the arcade game in a terminal. Terminals report key presses
// but not releases, so a key counts as held for a short while after its last
// press or repeat. Arrows steer and thrust, space fires, enter starts, p
// pauses, e ejects and Esc or q quits.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/drift"
	"github.com/phanxgames/drift/arcade"
	"go.uber.org/zap"
)

const (
	frameDuration = time.Second / 60
	keyTimeout    = 150 * time.Millisecond
)

type control uint8

const (
	ctlThrust control = iota
	ctlLeft
	ctlRight
	ctlFire
	numControls
)

type term struct {
	screen  tcell.Screen
	surface *drift.TerminalSurface
	scene   *drift.Scene
	game    *arcade.Game
	cfg     arcade.Config
	pressed [numControls]time.Time
}

func (t *term) resize() {
	t.screen.Sync()
	b := t.surface.Bounds()
	cam := t.scene.Camera()
	cam.Viewport = b
	cam.Zoom = min(b.Width/t.cfg.Width, b.Height/t.cfg.Height)
}

// handle applies one terminal event. It returns false to quit.
func (t *term) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.resize()
	case *tcell.EventKey:
		now := time.Now()
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			t.pressed[ctlThrust] = now
		case tcell.KeyLeft:
			t.pressed[ctlLeft] = now
		case tcell.KeyRight:
			t.pressed[ctlRight] = now
		case tcell.KeyEnter:
			if t.game.GameOver() {
				t.game.Start()
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				t.pressed[ctlFire] = now
			case 'p':
				if t.scene.Paused() {
					t.game.Resume()
				} else {
					t.game.Pause()
				}
			case 'e':
				t.game.Eject()
			}
		}
	}
	return true
}

func (t *term) held(c control, now time.Time) bool {
	return now.Sub(t.pressed[c]) < keyTimeout
}

func (t *term) frame(dt float64) {
	now := time.Now()
	t.game.Controls = arcade.Controls{
		Thrust: t.held(ctlThrust, now),
		Left:   t.held(ctlLeft, now),
		Right:  t.held(ctlRight, now),
		Fire:   t.held(ctlFire, now),
	}
	t.scene.Update(dt)
	t.scene.Render(t.surface)
	t.surface.Show()
}

// pollEvents forwards screen events until the screen is finalized or stop is
// closed. A full events channel never outlives stop.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, stop <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

func run(t *term) {
	events := make(chan tcell.Event, 100)
	stop := make(chan struct{})
	defer close(stop)
	go pollEvents(t.screen, events, stop)

	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !t.handle(ev) {
				return
			}
		case now := <-ticker.C:
			// Cap the delta so a stalled terminal does not teleport entities.
			dt := min(now.Sub(last).Seconds(), 0.1)
			last = now
			t.frame(dt)
		}
	}
}

func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML game config")
	logPath := flag.String("log", "", "write logs to this file (the terminal is taken)")
	flag.Parse()

	cfg := arcade.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = arcade.LoadConfigFile(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	logger, err := newLogger(*logPath)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	scene := drift.NewScene()
	scene.ClearColor = drift.Color{A: 1}
	scene.SetLogger(logger)
	scene.SetCamera(drift.NewCamera(drift.Rect{}))

	t := &term{
		screen:  screen,
		surface: drift.NewTerminalSurface(screen),
		scene:   scene,
		cfg:     cfg,
		game:    arcade.NewGame(scene, cfg, logger),
	}
	t.resize()
	run(t)
}
