package morph

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	minOpacity   = 0.3
	waterOpacity = 0.3
)

// fade is the opacity of a morph group that is fully present at t = 1. The
// quadratic ease keeps the vanishing group visible for longer than a linear
// ramp would.
func fade(t float64) float64 {
	switch {
	case t <= 0:
		return minOpacity
	case t >= 1:
		return 1
	}
	v, _ := gween.New(minOpacity, 1, 1, ease.InQuad).Set(float32(t))
	return float64(v)
}

func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}
