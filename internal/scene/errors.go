package scene

import "errors"

var (
	// ErrMissingAtom indicates a bond table naming an atom the molecule lacks.
	ErrMissingAtom = errors.New("scene: atom not found in molecule")

	// ErrDegenerateBond indicates two bond endpoints at the same position.
	ErrDegenerateBond = errors.New("scene: bond endpoints coincide")
)
