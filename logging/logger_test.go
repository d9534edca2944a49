package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWritesAppField(t *testing.T) {
	var buf bytes.Buffer
	logger := New("rendertask", zerolog.InfoLevel, &buf)

	logger.Info().Msg("engine start")
	out := buf.String()
	assert.Contains(t, out, "engine start")
	assert.Contains(t, out, "app=rendertask")
}

func TestNewHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("rendertask", zerolog.WarnLevel, &buf)

	logger.Debug().Msg("window event")
	logger.Info().Msg("engine start")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("render worker exited early")
	assert.Contains(t, buf.String(), "render worker exited early")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
