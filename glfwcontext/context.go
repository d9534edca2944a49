package glfwcontext

import (
	"fmt"
	"runtime"
	"time"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/rendertask/graphics"
	"github.com/richinsley/rendertask/shader"
	"github.com/richinsley/rendertask/translator"
	"github.com/rs/zerolog"
)

// Options configures the GLFW backend.
type Options struct {
	GLMajor int
	GLMinor int
	// EventWait bounds how long PollEvents waits for input. Zero polls
	// without waiting.
	EventWait time.Duration
	Logger    zerolog.Logger
}

// Backend creates GLFW windows with an OpenGL core context. All of its
// methods, and those of the windows it returns, must be called from the
// main thread after InitGraphics.
type Backend struct {
	opts Options
}

func New(opts Options) *Backend {
	if opts.GLMajor == 0 {
		opts.GLMajor, opts.GLMinor = 4, 1
	}
	return &Backend{opts: opts}
}

// CreateWindow opens a window whose context is left current on no thread,
// ready to be handed to the render thread.
func (b *Backend) CreateWindow(width, height int, title string) (graphics.Window, graphics.Context, graphics.EventQueue, error) {
	program, err := translator.TranslateProgram(shader.VertexSource, shader.FragmentSource, b.opts.GLMajor, b.opts.GLMinor)
	if err != nil {
		return nil, nil, nil, err
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, b.opts.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, b.opts.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create glfw window: %w", err)
	}

	w := &Window{
		window: win,
		wait:   b.opts.EventWait,
	}
	win.SetKeyCallback(w.keyCallback)
	win.SetCloseCallback(w.closeCallback)
	win.SetFocusCallback(w.focusCallback)
	win.SetFramebufferSizeCallback(w.framebufferSizeCallback)

	ctx := &Context{
		window:  win,
		program: program,
		logger:  b.opts.Logger,
	}
	b.opts.Logger.Debug().Int("width", width).Int("height", height).
		Int("gl_major", b.opts.GLMajor).Int("gl_minor", b.opts.GLMinor).Msg("window created")
	return w, ctx, w, nil
}

// Window is a GLFW window and its event queue.
type Window struct {
	window  *glfw.Window
	wait    time.Duration
	pending []graphics.Event
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *Window) RequestClose() {
	w.window.SetShouldClose(true)
}

// Destroy destroys the window and its context. The context must not be
// current on any thread.
func (w *Window) Destroy() {
	w.window.Destroy()
}

// PollEvents processes pending window system events, waiting at most the
// configured EventWait, and returns them in arrival order.
func (w *Window) PollEvents() []graphics.Event {
	if w.wait > 0 {
		glfw.WaitEventsTimeout(w.wait.Seconds())
	} else {
		glfw.PollEvents()
	}
	events := w.pending
	w.pending = nil
	return events
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	w.pending = append(w.pending, graphics.Event{
		Kind:     graphics.EventKey,
		Key:      graphics.Key(key),
		Scancode: scancode,
		Action:   graphics.Action(action),
		Mods:     int(mods),
	})
}

func (w *Window) closeCallback(_ *glfw.Window) {
	w.pending = append(w.pending, graphics.Event{Kind: graphics.EventClose})
}

func (w *Window) focusCallback(_ *glfw.Window, focused bool) {
	w.pending = append(w.pending, graphics.Event{Kind: graphics.EventFocus, Focused: focused})
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	w.pending = append(w.pending, graphics.Event{Kind: graphics.EventFramebufferSize, Width: width, Height: height})
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics(logger zerolog.Logger) error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	logger.Debug().Str("glfw", glfw.GetVersionString()).Msg("GLFW initialized")
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread
// after every window has been destroyed.
func TerminateGraphics(logger zerolog.Logger) {
	glfw.Terminate()
	logger.Debug().Msg("GLFW terminated")
}
