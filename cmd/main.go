package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/richinsley/rendertask/glfwcontext"
	"github.com/richinsley/rendertask/graphics"
	"github.com/richinsley/rendertask/logging"
	"github.com/richinsley/rendertask/options"
	"github.com/richinsley/rendertask/renderer"
)

const (
	exitOK        = 0
	exitInitError = 1
	exitRunError  = 2
)

func init() {
	// GLFW window and event calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("rendertask", flag.ContinueOnError)
	opts, err := options.Parse(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(os.Stderr, "rendertask: %v\n", err)
		return exitInitError
	}
	if *opts.Help {
		fmt.Println("Threaded OpenGL render loop")
		fs.PrintDefaults()
		return exitOK
	}

	level, _ := opts.Level()
	logger := logging.New("rendertask", level, os.Stderr)

	if err := glfwcontext.InitGraphics(logger); err != nil {
		logger.Error().Err(err).Msg("graphics initialization failed")
		return exitInitError
	}
	defer glfwcontext.TerminateGraphics(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := glfwcontext.New(glfwcontext.Options{
		GLMajor:   opts.GLMajor,
		GLMinor:   opts.GLMinor,
		EventWait: opts.EventWait,
		Logger:    logger,
	})
	err = renderer.Run(ctx, backend, renderer.Config{
		Width:  *opts.Width,
		Height: *opts.Height,
		Title:  *opts.Title,
		ClearColor: graphics.Color{
			R: opts.ClearColor[0],
			G: opts.ClearColor[1],
			B: opts.ClearColor[2],
			A: opts.ClearColor[3],
		},
		Logger: logger,
	})
	return exitCode(err, logger)
}
