package scene

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Named colours matching the classic VPython palette.
var (
	White   = colorful.Color{R: 1, G: 1, B: 1}
	Black   = colorful.Color{R: 0, G: 0, B: 0}
	Blue    = colorful.Color{R: 0, G: 0, B: 1}
	Cyan    = colorful.Color{R: 0, G: 1, B: 1}
	Red     = colorful.Color{R: 1, G: 0, B: 0}
	Yellow  = colorful.Color{R: 1, G: 1, B: 0}
	Green   = colorful.Color{R: 0, G: 1, B: 0}
	Magenta = colorful.Color{R: 1, G: 0, B: 1}
	Grey    = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
)

const (
	DefaultAtomSize = 0.3
	BondRadius      = 0.04
)

var atomColours = map[byte]colorful.Color{
	'h': White,
	'n': Blue,
	'c': Cyan,
	'o': Red,
	's': Yellow,
	'f': Green,
	'd': Magenta,
}

var atomSizes = map[byte]float64{
	'h': 0.2,
	'n': 0.3,
	'c': 0.3,
	'o': 0.3,
	's': 0.3,
	'f': 0.3,
	'd': 0.3,
}

// AtomColour returns the display colour for an element, grey if unknown.
func AtomColour(element byte) colorful.Color {
	if c, ok := atomColours[element]; ok {
		return c
	}
	return Grey
}

// AtomSize returns the sphere radius for an element.
func AtomSize(element byte) float64 {
	if r, ok := atomSizes[element]; ok {
		return r
	}
	return DefaultAtomSize
}
