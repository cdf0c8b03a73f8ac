package debug

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cglearn/internal/engine/model"
)

// DefaultCircleSteps is the number of segments of a marker circle.
const DefaultCircleSteps = 32

// CircleVertices returns steps points on a circle in the XY plane at
// center's depth, starting at angle 0 and turning counter-clockwise.
func CircleVertices(radius float32, center [3]float32, steps int) [][3]float32 {
	verts := make([][3]float32, steps)
	for i := range verts {
		a := float32(i) * 2 * math32.Pi / float32(steps)
		verts[i] = [3]float32{
			radius*math32.Cos(a) + center[0],
			radius*math32.Sin(a) + center[1],
			center[2],
		}
	}
	return verts
}

// FillCircle emits a filled disc.
func FillCircle(s model.Surface, radius float32, center [3]float32, steps int) {
	emitCircle(s, model.TriangleFan, radius, center, steps)
}

// DrawCircle emits a circle outline.
func DrawCircle(s model.Surface, radius float32, center [3]float32, steps int) {
	emitCircle(s, model.LineLoop, radius, center, steps)
}

func emitCircle(s model.Surface, mode model.Mode, radius float32, center [3]float32, steps int) {
	s.Begin(mode)
	for _, v := range CircleVertices(radius, center, steps) {
		s.Vertex(v)
	}
	s.End()
}
