package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/cglearn/internal/engine/input"
)

var keyMap = map[sdl.Keycode]input.Key{
	sdl.K_ESCAPE: input.KeyEscape,
	sdl.K_F12:    input.KeyF12,
	sdl.K_LEFT:   input.KeyLeft,
	sdl.K_RIGHT:  input.KeyRight,
	sdl.K_UP:     input.KeyUp,
	sdl.K_DOWN:   input.KeyDown,
}

// PollEvents drains the SDL event queue into q.
func (w *Window) PollEvents(q *input.Queue) {
	q.Reset()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			q.Push(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.GetSize()
				q.Push(input.Event{Type: input.EventWindowResize, Width: width, Height: height})
			}

		case *sdl.TextInputEvent:
			q.Push(input.Event{Type: input.EventText, Text: e.GetText()})

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if key, ok := keyMap[e.Keysym.Sym]; ok {
				q.Push(input.Event{Type: input.EventKeyDown, Key: key})
			}

		case *sdl.MouseMotionEvent:
			q.Push(input.Event{Type: input.EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)})

		case *sdl.MouseButtonEvent:
			typ := input.EventMouseUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				typ = input.EventMouseDown
			}
			q.Push(input.Event{Type: typ, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button})

		case *sdl.MouseWheelEvent:
			q.Push(input.Event{Type: input.EventMouseWheel, WheelY: int(e.Y)})
		}
	}
}
