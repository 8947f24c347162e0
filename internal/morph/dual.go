package morph

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/fepmorph/internal/scene"
	"github.com/san-kum/fepmorph/internal/structure"
)

// Group is the set of primitives one morph group drives.
type Group struct {
	Name    string
	Spheres []*scene.Sphere
	Bonds   []*scene.Cylinder
	fadeIn  bool
}

func (g *Group) setOpacity(v float64) {
	for _, s := range g.Spheres {
		s.Opacity = v
	}
	for _, b := range g.Bonds {
		b.Opacity = v
	}
}

// Dual shows both end states at once and cross-fades the groups that differ.
type Dual struct {
	base
	Static []*scene.Sphere
	Groups []*Group
}

func NewDual(sys *structure.System, opts Options) (*Dual, error) {
	d := &Dual{base: newBase("dual", opts)}

	groups := make(map[string]*Group)
	for _, mg := range dualGroups {
		g := &Group{Name: mg.Name, fadeIn: mg.FadeIn}
		groups[mg.Residue] = g
		d.Groups = append(d.Groups, g)
	}

	for _, mol := range sys.Displayed() {
		if mol.Name == waterResidue {
			if opts.ShowWaters {
				d.addWater(mol)
			}
			continue
		}

		spec, g := findGroup(mol.Name), groups[mol.Name]
		for _, at := range mol.Atoms {
			morphing := spec != nil && contains(spec.Atoms, at.Name)
			if spec != nil && spec.Exclusive && !morphing {
				continue
			}
			sp := d.scene.AddSphere(scene.AtomSphere(at))
			if morphing {
				g.Spheres = append(g.Spheres, sp)
			} else {
				d.Static = append(d.Static, sp)
			}
		}
		if spec == nil {
			continue
		}

		if spec.Core {
			if _, err := d.drawBonds(mol, ligandCoreBonds, scene.DefaultBondStyle()); err != nil {
				return nil, err
			}
		}
		bonds, err := d.drawBonds(mol, spec.Bonds, scene.DefaultBondStyle())
		if err != nil {
			return nil, err
		}
		g.Bonds = append(g.Bonds, bonds...)
	}

	for _, mg := range dualGroups {
		if len(groups[mg.Residue].Spheres) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingResidue, mg.Residue)
		}
	}
	return d, nil
}

func findGroup(residue string) *morphGroup {
	for i := range dualGroups {
		if dualGroups[i].Residue == residue {
			return &dualGroups[i]
		}
	}
	return nil
}

// addWater draws small translucent spheres joined centre to centre, skipping
// the virtual site of four-point models.
func (d *Dual) addWater(mol *structure.Molecule) {
	for _, at := range mol.Atoms {
		if at.Element == virtualSite {
			continue
		}
		sp := scene.AtomSphere(at)
		sp.Radius = 0.1
		sp.Opacity = waterOpacity
		d.scene.AddSphere(sp)
	}
	if len(mol.Atoms) < 3 {
		return
	}
	o := mol.Atoms[0].Pos
	for _, h := range mol.Atoms[1:3] {
		d.scene.AddCylinder(&scene.Cylinder{
			Pos:     o,
			Axis:    r3.Sub(h.Pos, o),
			Radius:  0.02,
			Color:   scene.White,
			Opacity: waterOpacity,
		})
	}
}

func (d *Dual) Apply(lambda float64) error {
	for _, g := range d.Groups {
		if g.fadeIn {
			g.setOpacity(fade(lambda))
		} else {
			g.setOpacity(fade(1 - lambda))
		}
	}
	d.setLambda(lambda)
	return nil
}

func (d *Dual) Channels() []Channel {
	out := make([]Channel, 0, len(d.Groups))
	for _, g := range d.Groups {
		v := 0.0
		if len(g.Spheres) > 0 {
			v = g.Spheres[0].Opacity
		}
		out = append(out, Channel{Name: g.Name + ".opacity", Value: v})
	}
	return out
}
