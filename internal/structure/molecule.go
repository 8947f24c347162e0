package structure

// Molecule is a run of atoms closed by a TER record.
type Molecule struct {
	Name    string
	Atoms   []*Atom
	Display bool
}

func (m *Molecule) add(a *Atom) {
	m.Atoms = append(m.Atoms, a)
	m.Name = a.Residue
}

// AtomNamed returns the first atom called name.
func (m *Molecule) AtomNamed(name string) (*Atom, bool) {
	for _, a := range m.Atoms {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// TestDisplay sets Display when every atom lies inside the cube [-lim, lim]^3.
func (m *Molecule) TestDisplay(lim float64) {
	m.Display = true
	for _, a := range m.Atoms {
		if !InRange(a.Pos, lim) {
			m.Display = false
			return
		}
	}
}
