package renderer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/richinsley/rendertask/graphics"
	"github.com/rs/zerolog"
)

const defaultTitle = "rendertask"

var defaultClearColor = graphics.Color{R: 0.3, G: 0.3, B: 0.3, A: 1.0}

// Config describes the window and what the render worker draws into it.
// A zero ClearColor selects the default grey.
type Config struct {
	Width      int
	Height     int
	Title      string
	ClearColor graphics.Color
	Logger     zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.ClearColor == (graphics.Color{}) {
		c.ClearColor = defaultClearColor
	}
	return c
}

// Session is a running window with its render worker. The window and the
// event queue belong to the goroutine that called Start; the rendering
// context belongs to the worker.
type Session struct {
	window graphics.Window
	events graphics.EventQueue
	stop   StopSender
	worker *WorkerHandle
	logger zerolog.Logger

	shutdownOnce sync.Once
	result       WorkerResult
}

// Start creates the window and hands its context over to a new render
// worker. On error nothing is left running and the window, if it was
// created, has been destroyed.
func Start(backend graphics.Backend, cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	logger := cfg.Logger

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &BackendInitError{Err: fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)}
	}

	logger.Info().Int("width", cfg.Width).Int("height", cfg.Height).Msg("hello engine")
	window, ctx, events, err := backend.CreateWindow(cfg.Width, cfg.Height, cfg.Title)
	if err != nil {
		return nil, &BackendInitError{Err: err}
	}

	// Ownership of the context leaves this goroutine here; the local handle
	// is spent and cannot be bound again.
	owned, err := graphics.NewContextHandle(ctx).Transfer()
	if err != nil {
		window.Destroy()
		return nil, &ThreadSpawnError{Err: err}
	}

	stop, recv := NewStopChannel(context.Background())
	worker, err := spawnWorker(owned, recv, workerConfig{
		clearColor: cfg.ClearColor,
		primitive:  triangle,
		logger:     logger.With().Str("thread", "render").Logger(),
	})
	if err != nil {
		stop.Send()
		window.Destroy()
		return nil, err
	}

	logger.Info().Msg("engine start")
	return &Session{
		window: window,
		events: events,
		stop:   stop,
		worker: worker,
		logger: logger,
	}, nil
}

// RunEventLoop drains and dispatches window events until the window is
// asked to close. It also requests a close when ctx is done or the render
// worker has stopped on its own. It never blocks beyond the backend's
// bounded event wait.
func (s *Session) RunEventLoop(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var loopErr error
	for !s.window.ShouldClose() {
		for _, ev := range s.events.PollEvents() {
			s.logger.Debug().Stringer("event", ev).Msg("window event")
			HandleEvent(s.window, ev)
		}

		select {
		case <-ctx.Done():
			if loopErr == nil {
				loopErr = ctx.Err()
				s.logger.Info().Err(loopErr).Msg("close requested by caller")
			}
			s.window.RequestClose()
		case <-s.worker.Done():
			s.logger.Warn().Msg("render worker exited early, closing window")
			s.window.RequestClose()
		default:
		}
	}
	return loopErr
}

// Shutdown stops the render worker, waits for it to terminate and only
// then destroys the window. It runs once; later calls return the same
// result. The returned error is the worker's, if it failed.
func (s *Session) Shutdown() error {
	s.shutdownOnce.Do(func() {
		s.stop.Send()
		s.result = s.worker.Join()
		s.window.Destroy()
		s.logger.Info().Uint64("frames", s.result.Frames).Msg("engine stopped")
	})
	return s.result.Err
}

// Result reports the worker's result. It is only meaningful after Shutdown.
func (s *Session) Result() WorkerResult {
	return s.result
}

// Run starts a session, services its events until the window closes and
// always shuts it down, also when the event loop fails or panics.
func Run(ctx context.Context, backend graphics.Backend, cfg Config) (err error) {
	s, err := Start(backend, cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Shutdown())
	}()
	return s.RunEventLoop(ctx)
}
