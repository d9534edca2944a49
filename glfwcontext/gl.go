package glfwcontext

import (
	"fmt"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/rendertask/graphics"
	"github.com/richinsley/rendertask/shader"
	"github.com/richinsley/rendertask/translator"
	"github.com/rs/zerolog"
)

// gl.Init loads function pointers for the whole process.
var (
	glInitOnce sync.Once
	glInitErr  error
)

// Context is the OpenGL context of a GLFW window. Apart from creation it
// is only used by the thread it has been made current on.
type Context struct {
	window   *glfw.Window
	program  *translator.Program
	logger   zerolog.Logger
	pipeline *pipeline
}

// MakeCurrent makes the context current for the calling thread and builds
// the triangle pipeline on it.
func (c *Context) MakeCurrent() error {
	c.window.MakeContextCurrent()

	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		glfw.DetachCurrentContext()
		return fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}

	p, err := newPipeline(c.program)
	if err != nil {
		glfw.DetachCurrentContext()
		return err
	}
	c.pipeline = p
	c.logger.Info().Str("gl_version", gl.GoStr(gl.GetString(gl.VERSION))).Msg("context current on render thread")
	return nil
}

// DetachCurrent releases the pipeline objects and makes no context current
// on the calling thread.
func (c *Context) DetachCurrent() {
	if c.pipeline != nil {
		c.pipeline.destroy()
		c.pipeline = nil
	}
	glfw.DetachCurrentContext()
}

func (c *Context) Clear(col graphics.Color) error {
	gl.ClearColor(col.R, col.G, col.B, col.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return checkError("clear")
}

func (c *Context) Draw(p graphics.Primitive) error {
	if c.pipeline == nil {
		return graphics.ErrNotCurrent
	}
	mode, err := glMode(p.Mode)
	if err != nil {
		return err
	}
	gl.UseProgram(c.pipeline.program)
	gl.BindVertexArray(c.pipeline.vao)
	gl.DrawArrays(mode, p.First, p.Count)
	gl.BindVertexArray(0)
	return checkError("draw")
}

// Present swaps the window's buffers. The swap interval is whatever the
// driver defaults to.
func (c *Context) Present() error {
	c.window.SwapBuffers()
	return nil
}

func glMode(m graphics.Mode) (uint32, error) {
	switch m {
	case graphics.Triangles:
		return gl.TRIANGLES, nil
	case graphics.Lines:
		return gl.LINES, nil
	case graphics.Points:
		return gl.POINTS, nil
	}
	return 0, fmt.Errorf("unsupported primitive mode %d", m)
}

func checkError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%04x", op, code)
	}
	return nil
}

// pipeline holds the GL objects needed to draw the triangle.
type pipeline struct {
	program uint32
	vao     uint32
	vbo     uint32
}

func newPipeline(prog *translator.Program) (*pipeline, error) {
	program, err := newProgram(prog.Vertex, prog.Fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	attrName := prog.MappedName(shader.PositionAttribute)
	loc := gl.GetAttribLocation(program, gl.Str(attrName+"\x00"))
	if loc < 0 {
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("vertex attribute %q not found in program", attrName)
	}

	p := &pipeline{program: program}
	gl.GenVertexArrays(1, &p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(shader.TriangleVertices)*4, gl.Ptr(shader.TriangleVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointer(uint32(loc), shader.ComponentsPerVertex, gl.FLOAT, false, shader.ComponentsPerVertex*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if err := checkError("pipeline setup"); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

func (p *pipeline) destroy() {
	gl.DeleteProgram(p.program)
	gl.DeleteBuffers(1, &p.vbo)
	gl.DeleteVertexArrays(1, &p.vao)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Flagged for deletion; freed together with the program.
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
