package structure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// System is every molecule read from one coordinate file, recentred so the
// mean atom position is the origin.
type System struct {
	Molecules []*Molecule
	// Center is the centroid subtracted from the input coordinates.
	Center r3.Vec
}

// Load reads path and builds a System. Molecules with any atom outside
// [-lim, lim] after recentring are marked as hidden.
func Load(path string, lim float64) (*System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open structure: %w", err)
	}
	defer f.Close()

	sys, err := Parse(f, lim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sys, nil
}

// Parse reads coordinate records from r. Reading stops at the first END or
// ENDMDL record, so only the first model of a multi-model file is used.
func Parse(r io.Reader, lim float64) (*System, error) {
	sys := &System{}
	mol := &Molecule{}

	sc := bufio.NewScanner(r)
	lineNo := 0
scan:
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "ATOM"), strings.HasPrefix(line, "HETATM"):
			a, err := ParseAtom(line)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Err: err}
			}
			mol.add(a)
		case strings.HasPrefix(line, "TER"):
			if len(mol.Atoms) > 0 {
				sys.Molecules = append(sys.Molecules, mol)
			}
			mol = &Molecule{}
		case strings.HasPrefix(line, "END"):
			break scan
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(mol.Atoms) > 0 {
		sys.Molecules = append(sys.Molecules, mol)
	}

	if err := sys.Recenter(); err != nil {
		return nil, err
	}
	for _, m := range sys.Molecules {
		m.TestDisplay(lim)
	}
	return sys, nil
}

// Recenter moves the centroid of all atoms to the origin.
func (s *System) Recenter() error {
	n := s.NumAtoms()
	if n == 0 {
		return ErrEmptySystem
	}

	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	zs := make([]float64, 0, n)
	for _, a := range s.Atoms() {
		xs = append(xs, a.Pos.X)
		ys = append(ys, a.Pos.Y)
		zs = append(zs, a.Pos.Z)
	}
	c := r3.Scale(1/float64(n), r3.Vec{X: floats.Sum(xs), Y: floats.Sum(ys), Z: floats.Sum(zs)})

	for _, a := range s.Atoms() {
		a.Pos = r3.Sub(a.Pos, c)
	}
	s.Center = r3.Add(s.Center, c)
	return nil
}

// Atoms returns every atom in file order.
func (s *System) Atoms() []*Atom {
	var out []*Atom
	for _, m := range s.Molecules {
		out = append(out, m.Atoms...)
	}
	return out
}

func (s *System) NumAtoms() int {
	n := 0
	for _, m := range s.Molecules {
		n += len(m.Atoms)
	}
	return n
}

// Displayed returns the molecules that passed the bound test.
func (s *System) Displayed() []*Molecule {
	var out []*Molecule
	for _, m := range s.Molecules {
		if m.Display {
			out = append(out, m)
		}
	}
	return out
}

// Molecule returns the first displayed molecule with the given residue name.
func (s *System) Molecule(name string) (*Molecule, bool) {
	for _, m := range s.Molecules {
		if m.Display && m.Name == name {
			return m, true
		}
	}
	return nil, false
}
