package debug

import "github.com/Faultbox/cglearn/internal/engine/model"

// BoundsColor is the color of the bounds overlay.
var BoundsColor = [4]float32{0.0, 0.8, 0.8, 0.8}

// BoundsWireframeSegmentCount is the number of edges of a box.
const BoundsWireframeSegmentCount = 12

// GenerateBoundsWireframe returns the 12 edges of b, padded outward by
// padding on every side.
func GenerateBoundsWireframe(b model.Bounds, padding float32, color [4]float32) []Segment {
	lo := [3]float32{b.Min[0] - padding, b.Min[1] - padding, b.Min[2] - padding}
	hi := [3]float32{b.Max[0] + padding, b.Max[1] + padding, b.Max[2] + padding}

	// Corner i takes hi on axis k when bit k of i is set.
	corner := func(i int) [3]float32 {
		var p [3]float32
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				p[k] = hi[k]
			} else {
				p[k] = lo[k]
			}
		}
		return p
	}

	segs := make([]Segment, 0, BoundsWireframeSegmentCount)
	for i := 0; i < 8; i++ {
		for k := 0; k < 3; k++ {
			if i&(1<<k) == 0 {
				segs = append(segs, Segment{A: corner(i), B: corner(i | 1<<k), Color: color})
			}
		}
	}
	return segs
}
