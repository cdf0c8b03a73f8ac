// Package input defines window-system neutral input events.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventText
	EventKeyDown
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Key identifies a non-printable key. Printable keys arrive as EventText.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyF12
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Mouse buttons.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Text   string
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	WheelY int
}

// Queue collects the events of one frame.
type Queue struct {
	events []Event
	quit   bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 16)}
}

// Reset drops the previous frame's events.
func (q *Queue) Reset() {
	q.events = q.events[:0]
	q.quit = false
}

// Push appends an event. EventQuit also marks the queue as quitting.
func (q *Queue) Push(e Event) {
	if e.Type == EventQuit {
		q.quit = true
	}
	q.events = append(q.events, e)
}

// Events returns the events pushed since the last Reset.
func (q *Queue) Events() []Event {
	return q.events
}

// Quit reports whether a quit event was pushed this frame.
func (q *Queue) Quit() bool {
	return q.quit
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (q *Queue) IsKeyPressed(key Key) bool {
	for _, e := range q.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}
