package structure

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Atom is a single coordinate record. Element is derived from the first
// character of the atom name, so "hn1" is a hydrogen and "mw" a virtual site.
type Atom struct {
	Name    string
	Element byte
	Pos     r3.Vec
	Residue string
}

// ParseAtom reads an ATOM or HETATM record using the fixed PDB columns.
func ParseAtom(line string) (*Atom, error) {
	if len(line) < 54 {
		return nil, ErrShortRecord
	}

	name := strings.ToLower(strings.TrimSpace(line[12:16]))
	if name == "" {
		return nil, ErrNoAtomName
	}

	var xyz [3]float64
	for i, col := range [3]int{30, 38, 46} {
		v, err := strconv.ParseFloat(strings.TrimSpace(line[col:col+8]), 64)
		if err != nil {
			return nil, err
		}
		xyz[i] = v
	}

	return &Atom{
		Name:    name,
		Element: name[0],
		Pos:     r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]},
		Residue: strings.ToLower(strings.TrimSpace(line[17:20])),
	}, nil
}

// InRange reports whether every component of v lies in [-lim, lim].
func InRange(v r3.Vec, lim float64) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if c < -lim || c > lim {
			return false
		}
	}
	return true
}
