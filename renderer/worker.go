package renderer

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/richinsley/rendertask/graphics"
	"github.com/rs/zerolog"
)

// triangle is the single draw call issued per frame.
var triangle = graphics.Primitive{Mode: graphics.Triangles, First: 0, Count: 3}

type workerConfig struct {
	clearColor graphics.Color
	primitive  graphics.Primitive
	logger     zerolog.Logger
}

// WorkerResult is what the render worker reports when it has terminated.
type WorkerResult struct {
	Frames uint64
	Err    error
}

// WorkerHandle is the coordinator's reference to the running render worker.
type WorkerHandle struct {
	done   chan struct{}
	frames atomic.Uint64
	result WorkerResult
}

// spawnWorker starts the render goroutine on its own OS thread and waits
// until it has made the context current. If that fails the goroutine has
// already exited when spawnWorker returns.
func spawnWorker(handle *graphics.ContextHandle, stop StopReceiver, cfg workerConfig) (*WorkerHandle, error) {
	w := &WorkerHandle{done: make(chan struct{})}
	started := make(chan error, 1)

	go w.run(handle, stop, cfg, started)

	if err := <-started; err != nil {
		<-w.done
		return nil, &ThreadSpawnError{Err: err}
	}
	return w, nil
}

func (w *WorkerHandle) run(handle *graphics.ContextHandle, stop StopReceiver, cfg workerConfig, started chan<- error) {
	// The context stays current on this thread for the life of the worker.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(w.done)

	reported := false
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("render worker panicked: %v", r)
			if !reported {
				started <- err
				return
			}
			w.result.Err = err
		}
		w.result.Frames = w.frames.Load()
	}()

	cur, err := handle.Bind()
	reported = true
	started <- err
	if err != nil {
		return
	}
	defer cur.Release()

	cfg.logger.Info().Msg("render worker started")
	for {
		if stop.TryReceive() {
			break
		}
		if err := w.drawFrame(cur, cfg); err != nil {
			cfg.logger.Error().Err(err).Msg("render worker stopping")
			w.result.Err = err
			break
		}
		w.frames.Add(1)
	}
	cfg.logger.Info().Uint64("frames", w.frames.Load()).Msg("render worker stopped")
}

func (w *WorkerHandle) drawFrame(cur *graphics.Current, cfg workerConfig) error {
	frame := w.frames.Load()
	if err := cur.Clear(cfg.clearColor); err != nil {
		return &DrawError{Frame: frame, Op: "clear", Err: err}
	}
	if err := cur.Draw(cfg.primitive); err != nil {
		return &DrawError{Frame: frame, Op: "draw", Err: err}
	}
	if err := cur.Present(); err != nil {
		return &DrawError{Frame: frame, Op: "present", Err: err}
	}
	return nil
}

// Join blocks until the worker has terminated and returns its result.
// Later calls return the same result.
func (w *WorkerHandle) Join() WorkerResult {
	<-w.done
	return w.result
}

// Done is closed when the worker has terminated.
func (w *WorkerHandle) Done() <-chan struct{} {
	return w.done
}

// Frames returns the number of frames presented so far.
func (w *WorkerHandle) Frames() uint64 {
	return w.frames.Load()
}
