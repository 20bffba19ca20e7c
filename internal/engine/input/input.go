// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed window event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventKeyDown
	EventWindowResize
)

// Key is an SDL scancode carried as a plain int so consumers and tests do
// not need SDL.
type Key int

// KeyEscape is SDL_SCANCODE_ESCAPE.
const KeyEscape Key = 41

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// PollEvents drains the SDL event queue and returns this tick's events.
// The returned slice is reused on the next call.
func (i *Input) PollEvents() []Event {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  Key(e.Keysym.Scancode),
				})
			}

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}
		}
	}

	return i.events
}
