package options

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("rendertask", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rendertask.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseDefaults(t *testing.T) {
	opts, err := Parse(newFlagSet(), nil)
	require.NoError(t, err)

	assert.Equal(t, 200, *opts.Width)
	assert.Equal(t, 200, *opts.Height)
	assert.Equal(t, DefaultTitle, *opts.Title)
	assert.Equal(t, [4]float32{0.3, 0.3, 0.3, 1.0}, opts.ClearColor)
	assert.Equal(t, 4, opts.GLMajor)
	assert.Equal(t, 1, opts.GLMinor)
	assert.Equal(t, DefaultEventWait, opts.EventWait)

	lvl, err := opts.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)
}

func TestParseFlags(t *testing.T) {
	opts, err := Parse(newFlagSet(), []string{"-width", "640", "-height", "480", "-title", "demo", "-log-level", "debug"})
	require.NoError(t, err)
	assert.Equal(t, 640, *opts.Width)
	assert.Equal(t, 480, *opts.Height)
	assert.Equal(t, "demo", *opts.Title)
	assert.Equal(t, "debug", *opts.LogLevel)
}

func TestParseConfigFile(t *testing.T) {
	path := writeConfig(t, `
title = "from file"
width = 300
height = 300
clear_color = [0.0, 0.0, 0.5, 1.0]
gl_major = 3
gl_minor = 3
event_wait_ms = 0
log_level = "warn"
`)
	opts, err := Parse(newFlagSet(), []string{"-config", path, "-width", "1024"})
	require.NoError(t, err)

	assert.Equal(t, 1024, *opts.Width, "explicit flag wins over the file")
	assert.Equal(t, 300, *opts.Height)
	assert.Equal(t, "from file", *opts.Title)
	assert.Equal(t, [4]float32{0, 0, 0.5, 1}, opts.ClearColor)
	assert.Equal(t, 3, opts.GLMajor)
	assert.Equal(t, 3, opts.GLMinor)
	assert.Equal(t, time.Duration(0), opts.EventWait)
	assert.Equal(t, "warn", *opts.LogLevel)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", `vsync = true`},
		{"short clear color", `clear_color = [1.0, 0.0]`},
		{"old context", "gl_major = 2\ngl_minor = 1"},
		{"negative wait", `event_wait_ms = -5`},
		{"bad level", `log_level = "loud"`},
		{"zero-size window", `width = -1`},
		{"not toml", `width = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			_, err := Parse(newFlagSet(), []string{"-config", path})
			assert.Error(t, err)
		})
	}
}

func TestParseMissingConfig(t *testing.T) {
	_, err := Parse(newFlagSet(), []string{"-config", filepath.Join(t.TempDir(), "missing.toml")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRejectsNonPositiveSize(t *testing.T) {
	_, err := Parse(newFlagSet(), []string{"-width", "0"})
	assert.Error(t, err)
}
