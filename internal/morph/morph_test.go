package morph

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/fepmorph/internal/scene"
)

const tol = 1e-6

func dist(a, b r3.Vec) float64 { return r3.Norm(r3.Sub(a, b)) }

var _ = Describe("Build", func() {
	It("lists the registered schemes", func() {
		Expect(Schemes()).To(Equal([]string{"dual", "single"}))
	})

	It("rejects unknown schemes", func() {
		_, err := Build("triple", endStates(true).system(), DefaultOptions("triple"))
		Expect(errors.Is(err, ErrUnknownScheme)).To(BeTrue())
	})

	It("builds by name", func() {
		a, err := Build("single", endStates(true).system(), DefaultOptions("single"))
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Name()).To(Equal("single"))
	})
})

var _ = Describe("Dual", func() {
	var (
		d    *Dual
		core int
	)

	BeforeEach(func() {
		opts := DefaultOptions("dual")
		opts.ShowWaters = true
		var err error
		d, err = NewDual(endStates(true).system(), opts)
		Expect(err).NotTo(HaveOccurred())
		core = len(coreAtomNames())
	})

	It("draws only the morph atoms of the hydroxyl ligand", func() {
		// ce1 atoms, ce8 o34/h38, water without its virtual site
		Expect(d.Scene().Spheres).To(HaveLen(core + 4 + 2 + 3))
		Expect(d.Groups[0].Spheres).To(HaveLen(4))
		Expect(d.Groups[1].Spheres).To(HaveLen(2))
		Expect(d.Static).To(HaveLen(core))
	})

	It("draws core, morph and water bonds", func() {
		Expect(d.Scene().Cylinders).To(HaveLen(len(ligandCoreBonds) + 4 + 2 + 2))
		Expect(d.Groups[0].Bonds).To(HaveLen(4))
		Expect(d.Groups[1].Bonds).To(HaveLen(2))

		water := d.Scene().Cylinders[len(d.Scene().Cylinders)-1]
		Expect(water.Radius).To(Equal(0.02))
		Expect(water.Opacity).To(Equal(waterOpacity))
	})

	It("cross-fades the two end states", func() {
		Expect(d.Apply(0)).To(Succeed())
		Expect(d.Groups[0].Spheres[0].Opacity).To(Equal(1.0))
		Expect(d.Groups[1].Spheres[0].Opacity).To(Equal(0.3))
		Expect(d.Groups[1].Bonds[0].Opacity).To(Equal(0.3))

		Expect(d.Apply(0.5)).To(Succeed())
		Expect(d.Groups[0].Spheres[0].Opacity).To(BeNumerically("~", 0.475, tol))
		Expect(d.Groups[1].Spheres[0].Opacity).To(BeNumerically("~", 0.475, tol))

		Expect(d.Apply(1)).To(Succeed())
		Expect(d.Groups[0].Bonds[3].Opacity).To(Equal(0.3))
		Expect(d.Groups[1].Spheres[1].Opacity).To(Equal(1.0))
		for _, s := range d.Static {
			Expect(s.Opacity).To(Equal(1.0))
		}
	})

	It("reports channels and the label", func() {
		Expect(d.Apply(0.25)).To(Succeed())
		Expect(d.Scene().Labels[0].Text).To(Equal("lambda = 0.25"))
		Expect(d.Scene().Labels[0].YOffset).To(Equal(300.0))

		ch := d.Channels()
		Expect(ch).To(HaveLen(2))
		Expect(ch[0].Name).To(Equal("ce1_morph.opacity"))
		Expect(ch[1].Value).To(BeNumerically("~", 0.7*0.0625+0.3, tol))
	})

	It("hits the end opacities exactly", func() {
		Expect(fade(0)).To(Equal(minOpacity))
		Expect(fade(-0.1)).To(Equal(minOpacity))
		Expect(fade(1)).To(Equal(1.0))
		Expect(fade(1.1)).To(Equal(1.0))
	})

	It("hides waters unless asked", func() {
		d, err := NewDual(endStates(true).system(), DefaultOptions("dual"))
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Scene().Spheres).To(HaveLen(core + 4 + 2))
	})

	It("needs both end states", func() {
		_, err := NewDual(endStates(false).system(), DefaultOptions("dual"))
		Expect(errors.Is(err, ErrMissingResidue)).To(BeTrue())
	})
})

var _ = Describe("Single", func() {
	var (
		s       *Single
		initial map[*scene.Sphere]scene.Sphere
	)

	BeforeEach(func() {
		var err error
		s, err = NewSingle(endStates(true).system(), DefaultOptions("single"))
		Expect(err).NotTo(HaveOccurred())
		initial = map[*scene.Sphere]scene.Sphere{}
		for _, sp := range s.Scene().Spheres {
			initial[sp] = *sp
		}
	})

	It("draws both ligands with their core bonds", func() {
		core := len(coreAtomNames())
		Expect(s.Scene().Spheres).To(HaveLen(core + 4 + core + 2))
		Expect(s.Scene().Cylinders).To(HaveLen(2*len(ligandCoreBonds) + 4))
	})

	It("reproduces the methyl end state at lambda 0", func() {
		Expect(s.Apply(0)).To(Succeed())
		for sp, before := range initial {
			Expect(dist(sp.Pos, before.Pos)).To(BeNumerically("<", tol))
			Expect(sp.Radius).To(BeNumerically("~", before.Radius, tol))
			Expect(sp.Opacity).To(BeNumerically("~", before.Opacity, tol))
		}
		Expect(s.c34.Color).To(Equal(scene.Cyan))
	})

	It("reaches the hydroxyl end state at lambda 1", func() {
		Expect(s.Apply(1)).To(Succeed())
		Expect(dist(s.c14.Pos, s.c34.Pos)).To(BeNumerically("~", CarbonOxygenLength, tol))
		Expect(dist(s.c34.Pos, s.h40.Pos)).To(BeNumerically("~", OxygenHydrogenLength, tol))
		Expect(dist(s.c34.Pos, s.h38.Pos)).To(BeNumerically("~", 0.5*r3.Norm(s.toH38), tol))
		Expect(s.h38.Radius).To(BeNumerically("~", 0.1, tol))
		Expect(s.h39.Opacity).To(BeNumerically("~", 0.5, tol))
		Expect(s.c34h39.Opacity).To(BeNumerically("~", 0.5, tol))
		Expect(s.c34.Color).To(Equal(scene.Red))
		Expect(s.c14.Pos).To(Equal(initial[s.c14].Pos))
	})

	It("keeps the moving bonds between sphere surfaces", func() {
		Expect(s.Apply(0.6)).To(Succeed())
		Expect(dist(s.c34h40.Pos, s.c34.Pos)).To(BeNumerically("~", s.c34.Radius, tol))
		Expect(dist(s.c34h40.End(), s.h40.Pos)).To(BeNumerically("~", s.h40.Radius, tol))
		Expect(dist(s.c14c34.End(), s.c34.Pos)).To(BeNumerically("~", s.c34.Radius, tol))
	})

	It("reports the interpolated lengths", func() {
		Expect(s.Apply(0.5)).To(Succeed())
		ch := s.Channels()
		Expect(ch[0].Name).To(Equal("c14-c34.length"))
		Expect(ch[0].Value).To(BeNumerically("~", 0.5*s.distC14C34+0.7, tol))
		Expect(ch[2].Value).To(BeNumerically("~", 0.15, tol))
	})

	It("needs every key atom", func() {
		f := &fixture{}
		f.residue("ce1", append(coreAtomNames(), "c34", "h38", "h39")...)
		_, err := NewSingle(f.system(), DefaultOptions("single"))
		Expect(errors.Is(err, scene.ErrMissingAtom)).To(BeTrue())
	})
})
