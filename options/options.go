package options

import (
	"flag"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// RenderOptions holds the command-line settings. Fields are pointers so
// they can be bound directly to flags.
type RenderOptions struct {
	Width      *int
	Height     *int
	Title      *string
	ConfigFile *string
	LogLevel   *string
	Help       *bool

	// Loaded from ConfigFile, unless overridden by a flag.
	ClearColor [4]float32
	GLMajor    int
	GLMinor    int
	EventWait  time.Duration
}

// FileConfig is the layout of the optional TOML config file.
type FileConfig struct {
	Title       string    `toml:"title"`
	Width       int       `toml:"width"`
	Height      int       `toml:"height"`
	ClearColor  []float32 `toml:"clear_color"`
	GLMajor     int       `toml:"gl_major"`
	GLMinor     int       `toml:"gl_minor"`
	EventWaitMS *int      `toml:"event_wait_ms"`
	LogLevel    string    `toml:"log_level"`
}

const (
	DefaultWidth     = 200
	DefaultHeight    = 200
	DefaultTitle     = "rendertask"
	DefaultEventWait = time.Second / 120
)

// Bind registers the flags on fs and returns the options they fill.
func Bind(fs *flag.FlagSet) *RenderOptions {
	return &RenderOptions{
		Width:      fs.Int("width", DefaultWidth, "Window width"),
		Height:     fs.Int("height", DefaultHeight, "Window height"),
		Title:      fs.String("title", DefaultTitle, "Window title"),
		ConfigFile: fs.String("config", "", "Path to a TOML config file"),
		LogLevel:   fs.String("log-level", "info", "Log level (debug, info, warn, error)"),
		Help:       fs.Bool("help", false, "Show help message"),
		ClearColor: [4]float32{0.3, 0.3, 0.3, 1.0},
		GLMajor:    4,
		GLMinor:    1,
		EventWait:  DefaultEventWait,
	}
}

// Parse parses args, then applies the config file if one was named. Flags
// given explicitly on the command line win over the file.
func Parse(fs *flag.FlagSet, args []string) (*RenderOptions, error) {
	opts := Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *opts.ConfigFile != "" {
		fc, err := Load(*opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		if err := opts.apply(fc, set); err != nil {
			return nil, err
		}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Load decodes a TOML config file.
func Load(path string) (*FileConfig, error) {
	var fc FileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in config %s: %v", path, undecoded)
	}
	return &fc, nil
}

func (o *RenderOptions) apply(fc *FileConfig, set map[string]bool) error {
	if fc.Width != 0 && !set["width"] {
		*o.Width = fc.Width
	}
	if fc.Height != 0 && !set["height"] {
		*o.Height = fc.Height
	}
	if fc.Title != "" && !set["title"] {
		*o.Title = fc.Title
	}
	if fc.LogLevel != "" && !set["log-level"] {
		*o.LogLevel = fc.LogLevel
	}
	if len(fc.ClearColor) > 0 {
		if len(fc.ClearColor) != 4 {
			return fmt.Errorf("clear_color needs 4 components, got %d", len(fc.ClearColor))
		}
		copy(o.ClearColor[:], fc.ClearColor)
	}
	if fc.GLMajor != 0 {
		o.GLMajor = fc.GLMajor
		o.GLMinor = fc.GLMinor
	}
	if fc.EventWaitMS != nil {
		o.EventWait = time.Duration(*fc.EventWaitMS) * time.Millisecond
	}
	return nil
}

// Validate checks the combined settings.
func (o *RenderOptions) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", *o.Width, *o.Height)
	}
	if o.GLMajor < 3 || (o.GLMajor == 3 && o.GLMinor < 3) {
		return fmt.Errorf("OpenGL %d.%d is not supported, need at least 3.3 core", o.GLMajor, o.GLMinor)
	}
	if o.EventWait < 0 {
		return fmt.Errorf("event wait must not be negative, got %v", o.EventWait)
	}
	if _, err := o.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (o *RenderOptions) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(*o.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", *o.LogLevel, err)
	}
	return lvl, nil
}
