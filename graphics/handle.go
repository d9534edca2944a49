package graphics

import (
	"errors"
	"sync/atomic"
)

var (
	// ErrContextMoved is returned when a handle is used after its ownership
	// was transferred or bound.
	ErrContextMoved = errors.New("graphics: rendering context ownership has moved")
	// ErrNotCurrent is returned by draw primitives after Release.
	ErrNotCurrent = errors.New("graphics: rendering context is not current")
)

// ContextHandle is the single owner of a Context. Ownership moves with
// Transfer or Bind; a spent handle refuses every further use, so only one
// holder can ever make the context current.
type ContextHandle struct {
	ctx   Context
	spent atomic.Bool
}

func NewContextHandle(ctx Context) *ContextHandle {
	return &ContextHandle{ctx: ctx}
}

// Transfer moves ownership into a new handle, typically just before the
// handle is passed to another goroutine.
func (h *ContextHandle) Transfer() (*ContextHandle, error) {
	if h == nil || !h.spent.CompareAndSwap(false, true) {
		return nil, ErrContextMoved
	}
	return &ContextHandle{ctx: h.ctx}, nil
}

// Bind consumes the handle and makes the context current on the calling
// thread. The caller must have locked its OS thread and must use the
// returned Current from that goroutine only.
func (h *ContextHandle) Bind() (*Current, error) {
	if h == nil || !h.spent.CompareAndSwap(false, true) {
		return nil, ErrContextMoved
	}
	if err := h.ctx.MakeCurrent(); err != nil {
		return nil, err
	}
	return &Current{ctx: h.ctx}, nil
}

// Spent reports whether ownership has left this handle.
func (h *ContextHandle) Spent() bool {
	return h.spent.Load()
}

// Current is a context bound to the calling thread. It is the only type
// that exposes draw primitives.
type Current struct {
	ctx      Context
	released bool
}

func (c *Current) Clear(col Color) error {
	if c.released {
		return ErrNotCurrent
	}
	return c.ctx.Clear(col)
}

func (c *Current) Draw(p Primitive) error {
	if c.released {
		return ErrNotCurrent
	}
	return c.ctx.Draw(p)
}

func (c *Current) Present() error {
	if c.released {
		return ErrNotCurrent
	}
	return c.ctx.Present()
}

// Release detaches the context from the calling thread. Safe to call more
// than once.
func (c *Current) Release() {
	if c.released {
		return
	}
	c.released = true
	c.ctx.DetachCurrent()
}
