// Package renderer draws an OBJ mesh with directional lighting using the
// OpenGL 4.1 core profile.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/frostbay/joyrig/internal/actor"
	"github.com/frostbay/joyrig/internal/engine/lighting"
	"github.com/frostbay/joyrig/internal/engine/shader"
	"github.com/frostbay/joyrig/internal/logger"
	"github.com/frostbay/joyrig/pkg/formats"
)

const vertexShaderSrc = `#version 410 core

layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;

void main() {
	gl_Position = uProjection * uView * uModel * vec4(aPosition, 1.0);
	vNormal = mat3(uModel) * aNormal;
}
`

const fragmentShaderSrc = `#version 410 core

in vec3 vNormal;

uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;
uniform vec3 uBaseColor;

out vec4 fragColor;

void main() {
	vec3 n = normalize(vNormal);
	float lambert = max(dot(n, normalize(uLightDir)), 0.0);
	vec3 color = uBaseColor * (uAmbient + uDiffuse * lambert);
	fragColor = vec4(color, 1.0);
}
`

// Camera placement and projection match the scene the app was built around:
// the model sits 8 units in front of a fixed camera.
const (
	cameraDistance = 8.0
	fovDegrees     = 45.0
	nearPlane      = 0.1
	farPlane       = 50.0
)

// Renderer owns the GL state needed to draw one model per frame.
type Renderer struct {
	program    uint32
	vao        uint32
	vbo        uint32
	vertCount  int32
	projection mgl32.Mat4
	view       mgl32.Mat4
	light      lighting.Directional
	baseColor  [3]float32

	uModel     int32
	uView      int32
	uProj      int32
	uLightDir  int32
	uAmbient   int32
	uDiffuse   int32
	uBaseColor int32
}

// New compiles the shader program and sets up global GL state. Must be
// called with a current GL context.
func New(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	logger.Info("OpenGL initialized", zap.String("version", version))

	program, err := shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("compile model shader: %w", err)
	}

	r := &Renderer{
		program:   program,
		view:      mgl32.Translate3D(0, 0, -cameraDistance),
		light:     lighting.Default(),
		baseColor: [3]float32{0.75, 0.75, 0.78},

		uModel:     shader.Uniform(program, "uModel"),
		uView:      shader.Uniform(program, "uView"),
		uProj:      shader.Uniform(program, "uProjection"),
		uLightDir:  shader.Uniform(program, "uLightDir"),
		uAmbient:   shader.Uniform(program, "uAmbient"),
		uDiffuse:   shader.Uniform(program, "uDiffuse"),
		uBaseColor: shader.Uniform(program, "uBaseColor"),
	}
	r.Resize(width, height)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	return r, nil
}

// UploadMesh uploads the mesh to the GPU as interleaved position+normal
// data. Replaces any previously uploaded mesh.
func (r *Renderer) UploadMesh(mesh *formats.OBJMesh) error {
	if len(mesh.Vertices) == 0 {
		return formats.ErrEmptyMesh
	}

	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		gl.DeleteBuffers(1, &r.vbo)
	}

	data := make([]float32, 0, len(mesh.Vertices)*6)
	for _, v := range mesh.Vertices {
		data = append(data, v.Position[0], v.Position[1], v.Position[2])
		data = append(data, v.Normal[0], v.Normal[1], v.Normal[2])
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)

	gl.BindVertexArray(0)

	r.vertCount = int32(len(mesh.Vertices))
	logger.Info("mesh uploaded",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Bool("file_normals", mesh.HasNormals),
	)

	return nil
}

// Begin clears the frame buffers.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawModel draws the uploaded mesh with the given model matrix.
func (r *Renderer) DrawModel(model mgl32.Mat4) {
	if r.vertCount == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	gl.UniformMatrix4fv(r.uView, 1, false, &r.view[0])
	gl.UniformMatrix4fv(r.uProj, 1, false, &r.projection[0])
	gl.Uniform3fv(r.uLightDir, 1, &r.light.Direction[0])
	gl.Uniform3fv(r.uAmbient, 1, &r.light.Ambient[0])
	gl.Uniform3fv(r.uDiffuse, 1, &r.light.Diffuse[0])
	gl.Uniform3fv(r.uBaseColor, 1, &r.baseColor[0])

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.vertCount)
	gl.BindVertexArray(0)
}

// End is a hook for post-frame work; buffer swap belongs to the window.
func (r *Renderer) End() {}

// Resize updates the viewport and projection for a new drawable size.
func (r *Renderer) Resize(width, height int) {
	if height <= 0 {
		height = 1
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	aspect := float32(width) / float32(height)
	r.projection = mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, nearPlane, farPlane)
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// ModelMatrix builds the model transform for an actor state: translate by
// position, rotate pitch/yaw/roll, then scale. Angles are in degrees.
func ModelMatrix(st actor.State, scale float32) mgl32.Mat4 {
	m := mgl32.Translate3D(
		float32(st.Position[0]),
		float32(st.Position[1]),
		float32(st.Position[2]),
	)
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(float32(st.Pitch))))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(float32(st.Yaw))))
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(float32(st.Roll))))
	m = m.Mul4(mgl32.Scale3D(scale, scale, scale))
	return m
}
