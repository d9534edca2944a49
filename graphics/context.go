package graphics

// Backend creates the window, its rendering context and its event queue.
// Implementations usually keep process-wide state and must be driven from
// the main thread.
type Backend interface {
	CreateWindow(width, height int, title string) (Window, Context, EventQueue, error)
}

// Window is the OS-level surface. It is owned by the thread that created it.
type Window interface {
	ShouldClose() bool
	RequestClose()
	Destroy()
}

// EventQueue drains pending input and window events in arrival order.
// PollEvents must not block for longer than a bounded wait.
type EventQueue interface {
	PollEvents() []Event
}

// Context defines the interface for a thread-affine rendering context.
// Code outside this package should reach it through a ContextHandle.
type Context interface {
	// MakeCurrent binds the context to the calling OS thread.
	MakeCurrent() error
	// DetachCurrent makes no context current on the calling thread.
	DetachCurrent()
	Clear(c Color) error
	Draw(p Primitive) error
	// Present submits the frame, typically by swapping buffers.
	Present() error
}

// Color is a linear RGBA clear colour.
type Color struct {
	R, G, B, A float32
}

// Mode selects the primitive topology of a draw call.
type Mode int

const (
	Triangles Mode = iota
	Lines
	Points
)

func (m Mode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	case Points:
		return "points"
	}
	return "unknown"
}

// Primitive describes a single array draw call.
type Primitive struct {
	Mode  Mode
	First int32
	Count int32
}
