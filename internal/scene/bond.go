package scene

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/fepmorph/internal/structure"
)

// Endpoint is anything a bond can be drawn between.
type Endpoint interface {
	Position() r3.Vec
	Size() float64
}

// AtomEndpoint presents a parsed atom with its palette radius.
type AtomEndpoint struct{ *structure.Atom }

func (a AtomEndpoint) Position() r3.Vec { return a.Pos }
func (a AtomEndpoint) Size() float64    { return AtomSize(a.Element) }

// BondGeometry returns the start and axis of a cylinder running from the
// surface of a to the surface of b, so that bonds do not show through
// transparent spheres.
func BondGeometry(a, b Endpoint) (pos, axis r3.Vec, err error) {
	diff := r3.Sub(a.Position(), b.Position())
	dist := r3.Norm(diff)
	if dist == 0 {
		return r3.Vec{}, r3.Vec{}, ErrDegenerateBond
	}
	unit := r3.Scale(1/dist, diff)
	pos = r3.Sub(a.Position(), r3.Scale(a.Size(), unit))
	axis = r3.Scale(-(dist - a.Size() - b.Size()), unit)
	return pos, axis, nil
}

// Update recomputes the cylinder so it joins a and b.
func (c *Cylinder) Update(a, b Endpoint) error {
	pos, axis, err := BondGeometry(a, b)
	if err != nil {
		return err
	}
	c.Pos, c.Axis = pos, axis
	return nil
}

// BondStyle sets the look of a drawn bond.
type BondStyle struct {
	Radius  float64
	Color   colorful.Color
	Opacity float64
}

func DefaultBondStyle() BondStyle {
	return BondStyle{Radius: BondRadius, Color: White, Opacity: 1}
}

// DrawBond adds a cylinder between the atoms name1 and name2 of mol.
func (s *Scene) DrawBond(mol *structure.Molecule, name1, name2 string, style BondStyle) (*Cylinder, error) {
	a1, ok := mol.AtomNamed(name1)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q", ErrMissingAtom, mol.Name, name1)
	}
	a2, ok := mol.AtomNamed(name2)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q", ErrMissingAtom, mol.Name, name2)
	}

	c := &Cylinder{Radius: style.Radius, Color: style.Color, Opacity: style.Opacity}
	if err := c.Update(AtomEndpoint{a1}, AtomEndpoint{a2}); err != nil {
		return nil, fmt.Errorf("%s %s-%s: %w", mol.Name, name1, name2, err)
	}
	return s.AddCylinder(c), nil
}

// AtomSphere builds the default sphere for an atom.
func AtomSphere(a *structure.Atom) *Sphere {
	return &Sphere{
		Pos:     a.Pos,
		Radius:  AtomSize(a.Element),
		Color:   AtomColour(a.Element),
		Opacity: 1,
	}
}
