// Package debug provides overlay geometry: the background grid, point
// markers, bounding boxes and screenshots.
package debug

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cglearn/internal/engine/camera"
	"github.com/Faultbox/cglearn/internal/engine/model"
	"github.com/Faultbox/cglearn/pkg/math"
)

// Grid colors.
var (
	GridColor  = [4]float32{0.2, 0.2, 0.2, 1}
	XAxisColor = [4]float32{0.6, 0.2, 0.2, 1}
	YAxisColor = [4]float32{0.2, 0.6, 0.2, 1}
)

// DefaultGridFactors are the mantissas a spacing may take.
var DefaultGridFactors = []float64{1, 2, 5}

// Segment is a colored line from A to B.
type Segment struct {
	A, B  [3]float32
	Color [4]float32
}

// GridSpacing picks the spacing of the form factor*10^n that splits delta
// into the fewest intervals while keeping at least minIntervals of them.
func GridSpacing(delta float64, minIntervals float64, factors []float64) float64 {
	bestCount := gomath.Inf(1)
	best := 0.0
	for _, factor := range factors {
		spacing := delta / minIntervals / factor
		// The epsilon keeps exact powers of ten from rounding down a decade.
		spacing = gomath.Pow(10, gomath.Floor(gomath.Log10(spacing)+1e-9)) * factor
		count := delta / spacing
		if count < bestCount {
			bestCount = count
			best = spacing
		}
	}
	return best
}

// VisibleExtent unprojects the corners of clip space through the inverse
// of projection * modelview and returns their XY bounds.
func VisibleExtent(modelview, projection math.Mat4) camera.Extent {
	e := camera.Extent{
		MinX: math32.Inf(1), MaxX: math32.Inf(-1),
		MinY: math32.Inf(1), MaxY: math32.Inf(-1),
	}
	for _, x := range []float32{-1, 1} {
		for _, y := range []float32{-1, 1} {
			p := math.Unproject([3]float32{x, y, 0}, modelview, projection)
			e.MinX = math32.Min(e.MinX, p[0])
			e.MaxX = math32.Max(e.MaxX, p[0])
			e.MinY = math32.Min(e.MinY, p[1])
			e.MaxY = math32.Max(e.MaxY, p[1])
		}
	}
	return e
}

// GenerateGrid returns grid lines covering e at the given spacing, snapped
// outward to multiples of spacing, followed by the x and y axes. A
// non-positive spacing is chosen with GridSpacing.
func GenerateGrid(e camera.Extent, spacing float32) []Segment {
	if spacing <= 0 {
		spacing = float32(GridSpacing(float64(math32.Min(e.Width(), e.Height())), 10, DefaultGridFactors))
	}
	if spacing <= 0 || math32.IsInf(spacing, 0) || math32.IsNaN(spacing) {
		return nil
	}

	loX, hiX := math32.Floor(e.MinX/spacing), math32.Ceil(e.MaxX/spacing)
	loY, hiY := math32.Floor(e.MinY/spacing), math32.Ceil(e.MaxY/spacing)
	minX, maxX := loX*spacing, hiX*spacing
	minY, maxY := loY*spacing, hiY*spacing
	countX, countY := int(hiX-loX), int(hiY-loY)

	segs := make([]Segment, 0, countX+countY+4)
	for i := 0; i <= countY; i++ {
		y := minY + spacing*float32(i)
		segs = append(segs, Segment{A: [3]float32{minX, y, 0}, B: [3]float32{maxX, y, 0}, Color: GridColor})
	}
	for i := 0; i <= countX; i++ {
		x := minX + spacing*float32(i)
		segs = append(segs, Segment{A: [3]float32{x, minY, 0}, B: [3]float32{x, maxY, 0}, Color: GridColor})
	}

	segs = append(segs,
		Segment{A: [3]float32{minX, 0, 0}, B: [3]float32{maxX, 0, 0}, Color: XAxisColor},
		Segment{A: [3]float32{0, minY, 0}, B: [3]float32{0, maxY, 0}, Color: YAxisColor},
	)
	return segs
}

// DrawSegments emits segments as line batches, starting a new batch
// whenever the color changes.
func DrawSegments(s model.Surface, segs []Segment) {
	if len(segs) == 0 {
		return
	}
	current := segs[0].Color
	s.SetColor(current)
	s.Begin(model.Lines)
	for _, seg := range segs {
		if seg.Color != current {
			s.End()
			current = seg.Color
			s.SetColor(current)
			s.Begin(model.Lines)
		}
		s.Vertex(seg.A)
		s.Vertex(seg.B)
	}
	s.End()
}
