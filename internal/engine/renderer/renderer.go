// Package renderer draws immediate-mode style geometry on an OpenGL 4.1
// core context.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cglearn/internal/engine/shader"
	"github.com/Faultbox/cglearn/internal/logger"
)

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;

out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const fragmentShaderSource = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	Depth  bool
}

// Renderer records drawing calls through the embedded Immediate and submits
// them to the GPU on Flush.
type Renderer struct {
	*Immediate

	config  Config
	program *shader.Program
	vao     uint32
	vbo     uint32
}

// New creates a renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{
		Immediate: NewImmediate(),
		config:    cfg,
	}

	var err error
	r.program, err = shader.New(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if cfg.Depth {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LEQUAL)
	}

	r.Resize(cfg.Width, cfg.Height)
	logger.Debug("renderer created",
		zap.Uint32("program", r.program.ID),
		zap.Bool("depth", cfg.Depth))
	return r, nil
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize updates the GL viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Clear starts a frame: clears the color buffer (and depth when enabled),
// drops recorded geometry and resets both matrix stacks.
func (r *Renderer) Clear(rgba [4]float32) {
	gl.ClearColor(rgba[0], rgba[1], rgba[2], rgba[3])
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if r.config.Depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)

	r.Reset()
	r.Projection.Reset()
	r.ModelView.Reset()
}

// Flush uploads recorded vertices and draws every command in order.
func (r *Renderer) Flush() {
	verts := r.Vertices()
	if len(verts) == 0 {
		return
	}

	r.program.Use()
	projLoc := r.program.Uniform("uProjection")

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STREAM_DRAW)

	for _, cmd := range r.Commands() {
		proj := cmd.Projection
		gl.UniformMatrix4fv(projLoc, 1, false, proj.Ptr())
		gl.DrawArrays(glPrimitive(cmd.Prim), cmd.First, cmd.Count)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)

	r.Reset()
}

// ReadPixels returns the framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func glPrimitive(p Primitive) uint32 {
	if p == PrimLines {
		return gl.LINES
	}
	return gl.TRIANGLES
}
