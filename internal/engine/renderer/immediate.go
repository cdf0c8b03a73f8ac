package renderer

import (
	"fmt"

	"github.com/Faultbox/cglearn/internal/engine/model"
	"github.com/Faultbox/cglearn/pkg/math"
)

// FloatsPerVertex is the interleaved layout: eye-space position (3) + color (4).
const FloatsPerVertex = 7

// Primitive is the GL primitive a batch is drawn with.
type Primitive int

const (
	PrimLines Primitive = iota
	PrimTriangles
)

// DrawCmd is a contiguous run of vertices sharing a primitive and projection.
type DrawCmd struct {
	Prim       Primitive
	Projection math.Mat4
	First      int32
	Count      int32
}

type vertex struct {
	pos   [3]float32
	color [4]float32
}

// Immediate records glBegin/glEnd style calls into a vertex array and a list
// of draw commands. Faces are split into triangles and outlines into line
// segments, so the result can be drawn with a core profile.
type Immediate struct {
	Projection *math.MatrixStack
	ModelView  *math.MatrixStack

	color [4]float32

	open     bool
	mode     model.Mode
	pending  []vertex
	vertices []float32
	cmds     []DrawCmd
}

// NewImmediate creates an empty recorder with identity matrices and white color.
func NewImmediate() *Immediate {
	return &Immediate{
		Projection: math.NewMatrixStack(),
		ModelView:  math.NewMatrixStack(),
		color:      [4]float32{1, 1, 1, 1},
		vertices:   make([]float32, 0, 4096),
	}
}

// SetColor sets the color of subsequent vertices.
func (im *Immediate) SetColor(rgba [4]float32) {
	im.color = rgba
}

// ModelViewStack returns the modelview matrix stack.
func (im *Immediate) ModelViewStack() *math.MatrixStack {
	return im.ModelView
}

// ProjectionStack returns the projection matrix stack.
func (im *Immediate) ProjectionStack() *math.MatrixStack {
	return im.Projection
}

// Begin starts a primitive. Begin inside an open primitive panics.
func (im *Immediate) Begin(mode model.Mode) {
	if im.open {
		panic(fmt.Sprintf("renderer: Begin(%s) inside Begin(%s)", mode, im.mode))
	}
	im.open = true
	im.mode = mode
	im.pending = im.pending[:0]
}

// Normal is accepted for Surface compatibility. Lighting is not emulated.
func (im *Immediate) Normal([3]float32) {}

// Vertex adds a vertex in object space. Vertices outside Begin/End are
// ignored.
func (im *Immediate) Vertex(v [3]float32) {
	if !im.open {
		return
	}
	im.pending = append(im.pending, vertex{
		pos:   im.ModelView.Top().TransformPoint(v),
		color: im.color,
	})
}

// End assembles the pending vertices. End without Begin panics.
func (im *Immediate) End() {
	if !im.open {
		panic("renderer: End without Begin")
	}
	im.open = false

	p := im.pending
	switch im.mode {
	case model.Lines:
		for i := 0; i+1 < len(p); i += 2 {
			im.emit(PrimLines, p[i], p[i+1])
		}
	case model.LineLoop:
		if len(p) < 2 {
			return
		}
		for i := range p {
			im.emit(PrimLines, p[i], p[(i+1)%len(p)])
		}
	case model.Triangles:
		for i := 0; i+2 < len(p); i += 3 {
			im.emit(PrimTriangles, p[i], p[i+1], p[i+2])
		}
	case model.Quads:
		for i := 0; i+3 < len(p); i += 4 {
			im.emit(PrimTriangles, p[i], p[i+1], p[i+2], p[i], p[i+2], p[i+3])
		}
	case model.TriangleFan:
		for i := 1; i+1 < len(p); i++ {
			im.emit(PrimTriangles, p[0], p[i], p[i+1])
		}
	}
}

func (im *Immediate) emit(prim Primitive, vs ...vertex) {
	proj := im.Projection.Top()
	first := int32(len(im.vertices) / FloatsPerVertex)

	n := len(im.cmds)
	if n > 0 && im.cmds[n-1].Prim == prim && im.cmds[n-1].Projection == proj {
		im.cmds[n-1].Count += int32(len(vs))
	} else {
		im.cmds = append(im.cmds, DrawCmd{Prim: prim, Projection: proj, First: first, Count: int32(len(vs))})
	}

	for _, v := range vs {
		im.vertices = append(im.vertices,
			v.pos[0], v.pos[1], v.pos[2],
			v.color[0], v.color[1], v.color[2], v.color[3])
	}
}

// Vertices returns the recorded interleaved vertex data.
func (im *Immediate) Vertices() []float32 {
	return im.vertices
}

// Commands returns the recorded draw commands in submission order.
func (im *Immediate) Commands() []DrawCmd {
	return im.cmds
}

// Reset clears recorded geometry. Matrices and color are kept.
func (im *Immediate) Reset() {
	im.vertices = im.vertices[:0]
	im.cmds = im.cmds[:0]
}
