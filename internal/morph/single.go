package morph

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/fepmorph/internal/scene"
	"github.com/san-kum/fepmorph/internal/structure"
)

// Single morphs one set of atoms in place: the methyl carbon becomes an
// oxygen, two hydrogens shrink into dummies and the third becomes the
// hydroxyl hydrogen.
type Single struct {
	base

	c14, c34, h38, h39, h40        *scene.Sphere
	c14c34, c34h38, c34h39, c34h40 *scene.Cylinder

	// lambda = 0 geometry around c34
	toH38      r3.Vec
	toH39      r3.Vec
	unitC14C34 r3.Vec
	unitH40    r3.Vec
	distC14C34 float64
	distH40    float64
	startColor colorful.Color

	lengthCO     float64
	lengthOH     float64
	dummyRadius  float64
	dummyOpacity float64
}

func NewSingle(sys *structure.System, opts Options) (*Single, error) {
	s := &Single{base: newBase("single", opts)}

	var key map[string]*scene.Sphere
	for _, mol := range sys.Displayed() {
		if mol.Name == waterResidue {
			if !opts.ShowWaters {
				continue
			}
			if err := s.addWater(mol); err != nil {
				return nil, err
			}
			continue
		}

		spheres := make(map[string]*scene.Sphere, len(mol.Atoms))
		for _, at := range mol.Atoms {
			sp := s.scene.AddSphere(scene.AtomSphere(at))
			if _, seen := spheres[at.Name]; !seen {
				spheres[at.Name] = sp
			}
		}

		if contains(singleCoreResidues, mol.Name) {
			if _, err := s.drawBonds(mol, ligandCoreBonds, scene.DefaultBondStyle()); err != nil {
				return nil, err
			}
		}
		if mol.Name == singleResidue && key == nil {
			key = spheres
			if err := s.drawKeyBonds(mol); err != nil {
				return nil, err
			}
		}
	}

	if key == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingResidue, singleResidue)
	}
	for _, name := range singleKeyAtoms {
		if key[name] == nil {
			return nil, fmt.Errorf("%w: %s has no %q", scene.ErrMissingAtom, singleResidue, name)
		}
	}
	s.c14, s.c34, s.h38, s.h39, s.h40 = key["c14"], key["c34"], key["h38"], key["h39"], key["h40"]

	toH40 := r3.Sub(s.h40.Pos, s.c34.Pos)
	c14c34 := r3.Sub(s.c34.Pos, s.c14.Pos)
	s.toH38 = r3.Sub(s.h38.Pos, s.c34.Pos)
	s.toH39 = r3.Sub(s.h39.Pos, s.c34.Pos)
	s.distH40 = r3.Norm(toH40)
	s.distC14C34 = r3.Norm(c14c34)
	if s.distH40 == 0 || s.distC14C34 == 0 {
		return nil, fmt.Errorf("%s methyl: %w", singleResidue, scene.ErrDegenerateBond)
	}
	s.unitH40 = r3.Scale(1/s.distH40, toH40)
	s.unitC14C34 = r3.Scale(1/s.distC14C34, c14c34)
	s.startColor = s.c34.Color

	s.lengthCO, s.lengthOH = s.distC14C34, s.distH40
	s.dummyRadius, s.dummyOpacity = s.h38.Radius, s.h38.Opacity
	return s, nil
}

func (s *Single) drawKeyBonds(mol *structure.Molecule) error {
	bonds, err := s.drawBonds(mol, [][2]string{
		{"c14", "c34"}, {"c34", "h38"}, {"c34", "h39"}, {"c34", "h40"},
	}, scene.DefaultBondStyle())
	if err != nil {
		return err
	}
	s.c14c34, s.c34h38, s.c34h39, s.c34h40 = bonds[0], bonds[1], bonds[2], bonds[3]
	return nil
}

func (s *Single) addWater(mol *structure.Molecule) error {
	for _, at := range mol.Atoms {
		if at.Element == virtualSite {
			continue
		}
		sp := scene.AtomSphere(at)
		sp.Opacity = waterOpacity
		s.scene.AddSphere(sp)
	}
	_, err := s.drawBonds(mol, waterBonds, scene.DefaultBondStyle())
	return err
}

func (s *Single) Apply(lambda float64) error {
	u := 1 - lambda

	s.lengthCO = lerp(s.distC14C34, CarbonOxygenLength, lambda)
	s.lengthOH = lerp(s.distH40, OxygenHydrogenLength, lambda)

	c34 := r3.Add(s.c14.Pos, r3.Scale(s.lengthCO, s.unitC14C34))
	s.c34.Pos = c34
	s.h38.Pos = r3.Add(c34, r3.Scale(u*0.5+0.5, s.toH38))
	s.h39.Pos = r3.Add(c34, r3.Scale(u*0.5+0.5, s.toH39))
	s.h40.Pos = r3.Add(c34, r3.Scale(s.lengthOH, s.unitH40))

	s.dummyRadius = u*0.1 + 0.1
	s.dummyOpacity = u*0.5 + 0.5
	for _, h := range []*scene.Sphere{s.h38, s.h39} {
		h.Radius = s.dummyRadius
		h.Opacity = s.dummyOpacity
	}
	s.c34h38.Opacity = s.dummyOpacity
	s.c34h39.Opacity = s.dummyOpacity

	for _, b := range []struct {
		c    *scene.Cylinder
		a, z *scene.Sphere
	}{
		{s.c14c34, s.c14, s.c34},
		{s.c34h40, s.c34, s.h40},
		{s.c34h39, s.c34, s.h39},
		{s.c34h38, s.c34, s.h38},
	} {
		if err := b.c.Update(b.a, b.z); err != nil {
			return fmt.Errorf("lambda %.2f: %w", lambda, err)
		}
	}

	s.c34.Color = s.startColor.BlendRgb(scene.Red, lambda)
	s.setLambda(lambda)
	return nil
}

func (s *Single) Channels() []Channel {
	return []Channel{
		{Name: "c14-c34.length", Value: s.lengthCO},
		{Name: "c34-h40.length", Value: s.lengthOH},
		{Name: "dummy.radius", Value: s.dummyRadius},
		{Name: "dummy.opacity", Value: s.dummyOpacity},
		{Name: "c34.red", Value: s.c34.Color.R},
	}
}
