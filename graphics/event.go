package graphics

import "fmt"

// EventKind tells which fields of an Event are meaningful.
type EventKind int

const (
	EventKey EventKind = iota
	EventClose
	EventFocus
	EventFramebufferSize
)

// Key uses the GLFW key code values so backends can convert with a cast.
type Key int

const (
	KeyUnknown Key = -1
	KeySpace   Key = 32
	KeyQ       Key = 81
	KeyEscape  Key = 256
	KeyEnter   Key = 257
)

// Action is the state change of a key.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Event is one entry of the window's input queue.
type Event struct {
	Kind     EventKind
	Key      Key
	Scancode int
	Action   Action
	Mods     int
	Focused  bool
	Width    int
	Height   int
}

func (e Event) String() string {
	switch e.Kind {
	case EventKey:
		return fmt.Sprintf("Key(%d, %d, %s, %d)", e.Key, e.Scancode, e.Action, e.Mods)
	case EventClose:
		return "Close"
	case EventFocus:
		return fmt.Sprintf("Focus(%t)", e.Focused)
	case EventFramebufferSize:
		return fmt.Sprintf("FramebufferSize(%d, %d)", e.Width, e.Height)
	}
	return fmt.Sprintf("Event(%d)", e.Kind)
}

func (a Action) String() string {
	switch a {
	case Release:
		return "Release"
	case Press:
		return "Press"
	case Repeat:
		return "Repeat"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// KeyPress is shorthand for a key press event.
func KeyPress(k Key) Event {
	return Event{Kind: EventKey, Key: k, Action: Press}
}
