package drift

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyScript is returned when a frame script contains no steps.
var ErrEmptyScript = errors.New("drift: script has no steps")

// DefaultScriptDelta is the frame delta used by update steps that set none.
const DefaultScriptDelta = 1.0 / 60

// ScriptStep is a single action in a frame script.
//
//	action: update    advance Frames frames (default 1) by Delta seconds each
//	action: pause     pause the scene
//	action: resume    resume the scene
//	action: call      run the action registered under Name
//	action: snapshot  record a Snapshot labeled Label
type ScriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	Name   string  `yaml:"name,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Delta  float64 `yaml:"delta,omitempty"`
}

// Snapshot is the scene state recorded by a snapshot step.
type Snapshot struct {
	Label  string
	Frame  uint64
	Nodes  int
	Paused bool
	Stats  FrameStats
}

// Script drives a Scene headlessly through a fixed sequence of steps. Load one
// with LoadScript, register the host actions it calls, then Run it.
type Script struct {
	Steps []ScriptStep `yaml:"steps"`

	actions map[string]func(*Scene) error
}

// LoadScript parses a YAML (or JSON) frame script.
func LoadScript(r io.Reader) (*Script, error) {
	var sc Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "update", "pause", "resume", "call", "snapshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Frames < 0 || st.Delta < 0 {
			return nil, fmt.Errorf("parse script: step %d: negative frames or delta", i)
		}
	}
	return &sc, nil
}

// LoadScriptFile reads and parses the script at path.
func LoadScriptFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return LoadScript(f)
}

// Register binds name to fn for call steps, replacing any previous binding.
func (sc *Script) Register(name string, fn func(*Scene) error) {
	if sc.actions == nil {
		sc.actions = make(map[string]func(*Scene) error)
	}
	sc.actions[name] = fn
}

// Run executes every step against s and returns the recorded snapshots. It
// stops at the first failing call step.
func (sc *Script) Run(s *Scene) ([]Snapshot, error) {
	var snaps []Snapshot
	for i, st := range sc.Steps {
		switch st.Action {
		case "update":
			frames := max(st.Frames, 1)
			dt := st.Delta
			if dt == 0 {
				dt = DefaultScriptDelta
			}
			for range frames {
				s.Update(dt)
			}
		case "pause":
			s.Pause()
		case "resume":
			s.Resume()
		case "call":
			fn, ok := sc.actions[st.Name]
			if !ok {
				return snaps, fmt.Errorf("run script: step %d: no action registered as %q", i, st.Name)
			}
			if err := fn(s); err != nil {
				return snaps, fmt.Errorf("run script: step %d: %s: %w", i, st.Name, err)
			}
		case "snapshot":
			snaps = append(snaps, Snapshot{
				Label:  st.Label,
				Frame:  s.Frame(),
				Nodes:  CountNodes(s.Root()),
				Paused: s.Paused(),
				Stats:  s.Stats(),
			})
		default:
			return snaps, fmt.Errorf("run script: step %d: unknown action %q", i, st.Action)
		}
	}
	return snaps, nil
}
