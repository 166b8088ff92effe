package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return screen
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pollEvents did not return")
	}
}

func TestPollEventsStopsWhenBlockedOnSend(t *testing.T) {
	screen := newSimScreen(t)
	defer screen.Fini()

	// Nobody reads events, so the forwarder blocks on its first send.
	events := make(chan tcell.Event)
	stop := make(chan struct{})
	done := make(chan struct{})
	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	go func() {
		pollEvents(screen, events, stop)
		close(done)
	}()

	close(stop)
	waitDone(t, done)
}

func TestPollEventsForwardsUntilFini(t *testing.T) {
	screen := newSimScreen(t)

	events := make(chan tcell.Event, 1)
	stop := make(chan struct{})
	defer close(stop)
	done := make(chan struct{})
	go func() {
		pollEvents(screen, events, stop)
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	for {
		ev := <-events
		if key, ok := ev.(*tcell.EventKey); ok {
			if key.Rune() != 'q' {
				t.Fatalf("rune = %q, want 'q'", key.Rune())
			}
			break
		}
	}

	screen.Fini()
	waitDone(t, done)
}
