// Package game runs the fixed-rate control loop: poll input, advance the
// actor, draw the frame.
package game

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/frostbay/joyrig/internal/actor"
	"github.com/frostbay/joyrig/internal/config"
	"github.com/frostbay/joyrig/internal/engine/input"
	"github.com/frostbay/joyrig/internal/engine/renderer"
	"github.com/frostbay/joyrig/internal/engine/window"
	"github.com/frostbay/joyrig/internal/joystick"
	"github.com/frostbay/joyrig/internal/logger"
	"github.com/frostbay/joyrig/pkg/formats"
)

// EventSource delivers this tick's window and keyboard events.
type EventSource interface {
	PollEvents() []input.Event
}

// SampleSource delivers at most one joystick sample per call without
// blocking.
type SampleSource interface {
	Poll() (joystick.Sample, bool)
}

// Scene renders one frame for an actor state and reacts to resizes.
type Scene interface {
	Frame(st actor.State)
	Resize(width, height int)
}

// Game owns the main loop and the wiring between input, simulation and
// rendering.
type Game struct {
	tuning   actor.Tuning
	tickRate int

	events  EventSource
	samples SampleSource
	scene   Scene

	window   *window.Window
	renderer *renderer.Renderer
	reader   *joystick.Reader

	state   actor.State
	stopped atomic.Bool
}

// glScene drives the renderer and window for each frame.
type glScene struct {
	renderer *renderer.Renderer
	window   *window.Window
	scale    float32
}

func (s *glScene) Frame(st actor.State) {
	s.renderer.Begin()
	s.renderer.DrawModel(renderer.ModelMatrix(st, s.scale))
	s.renderer.End()
	s.window.SwapBuffers()
}

func (s *glScene) Resize(width, height int) {
	s.renderer.Resize(width, height)
}

// New creates a game with a window, renderer and serial joystick from the
// config. A serial port that fails to open is not fatal: the game runs
// with no joystick and the model just falls to the floor.
func New(cfg *config.Config) (*Game, error) {
	win, err := window.New(window.Config{
		Title:      cfg.Display.Title,
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Fullscreen: cfg.Display.Fullscreen,
		VSync:      cfg.Display.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	rend, err := renderer.New(cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	mesh, err := formats.LoadOBJ(cfg.Model.Path)
	if err != nil {
		rend.Close()
		win.Close()
		return nil, fmt.Errorf("load model %q: %w", cfg.Model.Path, err)
	}
	if err := rend.UploadMesh(mesh); err != nil {
		rend.Close()
		win.Close()
		return nil, fmt.Errorf("upload model: %w", err)
	}

	reader, err := joystick.Open(cfg.Serial)
	if err != nil {
		logger.Warn("joystick unavailable, running without input",
			zap.String("port", cfg.Serial.Port),
			zap.Error(err),
		)
		reader = nil
	}

	g := &Game{
		tuning:   cfg.Control,
		tickRate: cfg.Display.TickRate,
		events:   input.New(),
		samples:  reader,
		scene: &glScene{
			renderer: rend,
			window:   win,
			scale:    cfg.Model.Scale,
		},
		window:   win,
		renderer: rend,
		reader:   reader,
	}

	return g, nil
}

// NewHeadless builds a game around caller-supplied sources, for running the
// loop without a window.
func NewHeadless(tuning actor.Tuning, tickRate int, events EventSource, samples SampleSource, scene Scene) *Game {
	return &Game{
		tuning:   tuning,
		tickRate: tickRate,
		events:   events,
		samples:  samples,
		scene:    scene,
	}
}

// State returns the current actor state.
func (g *Game) State() actor.State {
	return g.state
}

// RequestStop asks the loop to exit after the current tick. Safe to call
// from any goroutine.
func (g *Game) RequestStop() {
	g.stopped.Store(true)
}

// Run executes the loop until quit is requested. Each tick consumes at
// most one joystick sample, advances the actor and renders one frame.
func (g *Game) Run() {
	tickRate := g.tickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	tickDuration := time.Second / time.Duration(tickRate)

	logger.Info("game loop started", zap.Int("tick_rate", tickRate))

	frames := 0
	fpsTimer := time.Now()

	for !g.stopped.Load() {
		tickStart := time.Now()

		for _, ev := range g.events.PollEvents() {
			switch ev.Type {
			case input.EventQuit:
				g.stopped.Store(true)
			case input.EventKeyDown:
				if ev.Key == input.KeyEscape {
					g.stopped.Store(true)
				}
			case input.EventWindowResize:
				g.scene.Resize(ev.Width, ev.Height)
			}
		}
		if g.stopped.Load() {
			break
		}

		var sample *joystick.Sample
		if g.samples != nil {
			if s, ok := g.samples.Poll(); ok {
				sample = &s
			}
		}
		g.state = actor.Advance(g.state, sample, g.tuning)

		g.scene.Frame(g.state)

		frames++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			logger.Debug("fps",
				zap.Float64("fps", float64(frames)/elapsed.Seconds()),
			)
			frames = 0
			fpsTimer = time.Now()
		}

		if remaining := tickDuration - time.Since(tickStart); remaining > 0 {
			time.Sleep(remaining)
		}
	}

	logger.Info("game loop stopped")
}

// Close tears down the serial reader and GL resources.
func (g *Game) Close() {
	if g.reader != nil {
		g.reader.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
