package timing

import "github.com/fogleman/ease"

// Ease maps linear progress to the raised-cosine curve 0.5 - 0.5*cos(pi*t).
// Progress below 0 clamps to 0 and above 1 clamps to 1.
//
// Store.Get never applies it; callers ease progress themselves.
func Ease(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return ease.InOutSine(t)
}
