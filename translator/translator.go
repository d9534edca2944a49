package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	once       sync.Once
	translator *gst.ShaderTranslator
	initErr    error
)

// Get returns the process-wide shader translator, creating it on first use.
func Get() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
		if initErr != nil {
			initErr = fmt.Errorf("failed to create shader translator: %w", initErr)
		}
	})
	return translator, initErr
}

// supportsGLSL410 reports whether a core context of the given version
// accepts "#version 410 core" shaders.
func supportsGLSL410(major, minor int) bool {
	return major > 4 || (major == 4 && minor >= 1)
}

// Program is a translated vertex/fragment pair plus the names the translator
// gave to its variables.
type Program struct {
	Vertex   string
	Fragment string
	Names    map[string]string
}

// TranslateProgram translates a WebGL2 vertex and fragment shader to the
// desktop GLSL dialect of a major.minor core context.
func TranslateProgram(vertexSource, fragmentSource string, major, minor int) (*Program, error) {
	t, err := Get()
	if err != nil {
		return nil, err
	}

	format := gst.OutputFormatGLSL330
	if supportsGLSL410(major, minor) {
		format = gst.OutputFormatGLSL410
	}

	vs, err := t.TranslateShader(vertexSource, "vertex", gst.ShaderSpecWebGL2, format)
	if err != nil {
		return nil, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fs, err := t.TranslateShader(fragmentSource, "fragment", gst.ShaderSpecWebGL2, format)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	p := &Program{
		Vertex:   vs.Code,
		Fragment: fs.Code,
		Names:    make(map[string]string, len(vs.Variables)),
	}
	for name, v := range vs.Variables {
		p.Names[name] = v.MappedName
	}
	return p, nil
}

// MappedName returns the name a variable was given by the translator, or
// the original name when it was not renamed.
func (p *Program) MappedName(name string) string {
	if mapped, ok := p.Names[name]; ok && mapped != "" {
		return mapped
	}
	return name
}
