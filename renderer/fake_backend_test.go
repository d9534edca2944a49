package renderer

import (
	"sync"
	"sync/atomic"

	"github.com/richinsley/rendertask/graphics"
)

// opLog records backend calls from both goroutines in the order they happen.
type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) add(op string) {
	l.mu.Lock()
	l.ops = append(l.ops, op)
	l.mu.Unlock()
}

func (l *opLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.ops...)
}

func (l *opLog) index(op string) int {
	for i, o := range l.snapshot() {
		if o == op {
			return i
		}
	}
	return -1
}

type fakeBackend struct {
	createErr error
	log       opLog

	window *fakeWindow
	ctx    *fakeContext
	queue  *fakeQueue
	calls  atomic.Int32
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{}
	b.window = &fakeWindow{log: &b.log}
	b.ctx = &fakeContext{log: &b.log}
	b.queue = &fakeQueue{}
	b.window.ctx = b.ctx
	return b
}

func (b *fakeBackend) CreateWindow(width, height int, title string) (graphics.Window, graphics.Context, graphics.EventQueue, error) {
	b.calls.Add(1)
	if b.createErr != nil {
		return nil, nil, nil, b.createErr
	}
	b.log.add("create")
	return b.window, b.ctx, b.queue, nil
}

type fakeWindow struct {
	log *opLog
	ctx *fakeContext

	closing   atomic.Bool
	destroyed atomic.Int32
	// detachedAtDestroy captures whether the worker had released the
	// context before the window went away.
	detachedAtDestroy atomic.Bool
}

func (w *fakeWindow) ShouldClose() bool { return w.closing.Load() }
func (w *fakeWindow) RequestClose() { w.closing.Store(true) }

func (w *fakeWindow) Destroy() {
	w.detachedAtDestroy.Store(w.ctx.detached.Load())
	w.destroyed.Add(1)
	w.log.add("destroy")
}

// fakeQueue hands out one batch per poll, then nothing.
type fakeQueue struct {
	mu      sync.Mutex
	batches [][]graphics.Event
	polls   atomic.Int64
}

func (q *fakeQueue) push(evs ...graphics.Event) {
	q.mu.Lock()
	q.batches = append(q.batches, evs)
	q.mu.Unlock()
}

func (q *fakeQueue) PollEvents() []graphics.Event {
	q.polls.Add(1)
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.batches) == 0 {
		return nil
	}
	next := q.batches[0]
	q.batches = q.batches[1:]
	return next
}

type fakeContext struct {
	log *opLog

	bindErr    error
	drawErr    error
	failAt     uint64
	bindPanics bool

	current  atomic.Bool
	detached atomic.Bool
	frames   atomic.Uint64
	draws    atomic.Int64

	// stopSent is set by tests right before the stop signal goes out;
	// presents observed afterwards are counted in lateFrames.
	stopSent   atomic.Bool
	lateFrames atomic.Int64
}

func (c *fakeContext) MakeCurrent() error {
	if c.bindPanics {
		panic("driver crashed")
	}
	if c.bindErr != nil {
		return c.bindErr
	}
	c.current.Store(true)
	c.log.add("make-current")
	return nil
}

func (c *fakeContext) DetachCurrent() {
	c.current.Store(false)
	c.detached.Store(true)
	c.log.add("detach")
}

func (c *fakeContext) Clear(graphics.Color) error {
	if !c.current.Load() {
		return graphics.ErrNotCurrent
	}
	return nil
}

func (c *fakeContext) Draw(graphics.Primitive) error {
	if !c.current.Load() {
		return graphics.ErrNotCurrent
	}
	if c.drawErr != nil && c.frames.Load() >= c.failAt {
		return c.drawErr
	}
	c.draws.Add(1)
	return nil
}

func (c *fakeContext) Present() error {
	c.frames.Add(1)
	if c.stopSent.Load() {
		c.lateFrames.Add(1)
	}
	return nil
}
