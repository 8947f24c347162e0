// Package morph builds the scenes for the alchemical transformations and
// moves their primitives along lambda.
package morph

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/fepmorph/internal/scene"
	"github.com/san-kum/fepmorph/internal/structure"
)

var (
	ErrUnknownScheme  = errors.New("morph: unknown scheme")
	ErrMissingResidue = errors.New("morph: residue not displayed")
)

// Animator owns a scene and updates it for a lambda value in [0, 1].
type Animator interface {
	Name() string
	Scene() *scene.Scene
	Apply(lambda float64) error
	// Channels reports the scalar quantities driven by the last Apply.
	Channels() []Channel
}

// Channel is one named value of the current frame.
type Channel struct {
	Name  string
	Value float64
}

// Options controls scene construction.
type Options struct {
	ShowWaters bool
	View       scene.View
	Label      scene.Label
}

func DefaultOptions(scheme string) Options {
	opts := Options{
		View: scene.DefaultView(),
		Label: scene.Label{
			Pos:    r3.Vec{X: 3.0, Y: 4.0, Z: 1.0},
			Text:   LambdaText(0),
			Height: 50,
			Color:  scene.Red,
		},
	}
	if scheme == "dual" {
		opts.Label.YOffset = 300
	}
	return opts
}

// LambdaText formats the on-screen lambda label.
func LambdaText(lambda float64) string {
	return fmt.Sprintf("lambda = %.2f", lambda)
}

type Builder func(sys *structure.System, opts Options) (Animator, error)

var builders = map[string]Builder{
	"dual":   func(sys *structure.System, opts Options) (Animator, error) { return NewDual(sys, opts) },
	"single": func(sys *structure.System, opts Options) (Animator, error) { return NewSingle(sys, opts) },
}

// Build constructs the animator registered under scheme.
func Build(scheme string, sys *structure.System, opts Options) (Animator, error) {
	fn, ok := builders[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownScheme, scheme, Schemes())
	}
	return fn(sys, opts)
}

func Schemes() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// base carries what every animator shares.
type base struct {
	name  string
	scene *scene.Scene
	label *scene.Label
}

func newBase(name string, opts Options) base {
	s := scene.New(opts.View)
	l := opts.Label
	return base{name: name, scene: s, label: s.AddLabel(&l)}
}

func (b *base) Name() string        { return b.name }
func (b *base) Scene() *scene.Scene { return b.scene }

func (b *base) setLambda(lambda float64) {
	b.label.Text = LambdaText(lambda)
}

func (b *base) drawBonds(mol *structure.Molecule, pairs [][2]string, style scene.BondStyle) ([]*scene.Cylinder, error) {
	out := make([]*scene.Cylinder, 0, len(pairs))
	for _, p := range pairs {
		c, err := b.scene.DrawBond(mol, p[0], p[1], style)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
