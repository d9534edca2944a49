package shader

// TriangleVertices holds the 2D positions of the demo triangle.
var TriangleVertices = []float32{
	0.0, 0.5,
	0.5, -0.5,
	-0.5, -0.5,
}

// ComponentsPerVertex is the number of floats per entry in TriangleVertices.
const ComponentsPerVertex = 2

// PositionAttribute is the vertex input fed from TriangleVertices.
const PositionAttribute = "position"

// The sources are written against WebGL2 and translated to the desktop
// profile of the context at window creation.

const VertexSource = `#version 300 es
in vec2 position;
void main() {
    gl_Position = vec4(position, 0.0, 1.0);
}
`

const FragmentSource = `#version 300 es
precision mediump float;
out vec4 out_color;
void main() {
    out_color = vec4(1.0, 1.0, 1.0, 1.0);
}
`

// VertexCount returns the number of vertices in TriangleVertices.
func VertexCount() int32 {
	return int32(len(TriangleVertices) / ComponentsPerVertex)
}
