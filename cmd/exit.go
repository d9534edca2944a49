package main

import (
	"context"
	"errors"

	"github.com/richinsley/rendertask/renderer"
	"github.com/rs/zerolog"
)

// exitCode maps the result of a session to the process exit status. An
// interrupt is a clean shutdown.
func exitCode(err error, logger zerolog.Logger) int {
	if err == nil || (errors.Is(err, context.Canceled) && !hasFailure(err)) {
		return exitOK
	}

	var initErr *renderer.BackendInitError
	var spawnErr *renderer.ThreadSpawnError
	switch {
	case errors.As(err, &initErr):
		logger.Error().Err(err).Msg("failed to create window")
		return exitInitError
	case errors.As(err, &spawnErr):
		logger.Error().Err(err).Msg("failed to start render thread")
		return exitInitError
	}
	logger.Error().Err(err).Msg("render session failed")
	return exitRunError
}

func hasFailure(err error) bool {
	var drawErr *renderer.DrawError
	return errors.As(err, &drawErr)
}
