package scene

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

type Sphere struct {
	Pos     r3.Vec         `json:"pos"`
	Radius  float64        `json:"radius"`
	Color   colorful.Color `json:"color"`
	Opacity float64        `json:"opacity"`
}

func (s *Sphere) Position() r3.Vec { return s.Pos }
func (s *Sphere) Size() float64    { return s.Radius }

// Cylinder spans Pos to Pos+Axis.
type Cylinder struct {
	Pos     r3.Vec         `json:"pos"`
	Axis    r3.Vec         `json:"axis"`
	Radius  float64        `json:"radius"`
	Color   colorful.Color `json:"color"`
	Opacity float64        `json:"opacity"`
}

// End returns the far end of the cylinder.
func (c *Cylinder) End() r3.Vec { return r3.Add(c.Pos, c.Axis) }

// Label is screen-facing text anchored at Pos and shifted by the pixel
// offsets.
type Label struct {
	Pos     r3.Vec         `json:"pos"`
	Text    string         `json:"text"`
	Height  float64        `json:"height"`
	XOffset float64        `json:"xoffset"`
	YOffset float64        `json:"yoffset"`
	Color   colorful.Color `json:"color"`
}

// View holds the fixed camera of a scene. Range is the half-extent visible
// around Center.
type View struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Background colorful.Color `json:"background"`
	Center     r3.Vec         `json:"center"`
	Range      float64        `json:"range"`
	Autoscale  bool           `json:"autoscale"`
}

func DefaultView() View {
	return View{
		Width:      800,
		Height:     800,
		Background: White,
		Center:     r3.Vec{X: 4.0, Y: 2.5, Z: 1.0},
		Range:      3,
	}
}

// Scene owns every primitive of one animation. Primitives are mutated in place
// between frames.
type Scene struct {
	View      View        `json:"view"`
	Spheres   []*Sphere   `json:"spheres"`
	Cylinders []*Cylinder `json:"cylinders"`
	Labels    []*Label    `json:"labels"`
}

func New(view View) *Scene {
	return &Scene{
		View:      view,
		Spheres:   make([]*Sphere, 0),
		Cylinders: make([]*Cylinder, 0),
		Labels:    make([]*Label, 0),
	}
}

func (s *Scene) AddSphere(sp *Sphere) *Sphere {
	s.Spheres = append(s.Spheres, sp)
	return sp
}

func (s *Scene) AddCylinder(c *Cylinder) *Cylinder {
	s.Cylinders = append(s.Cylinders, c)
	return c
}

func (s *Scene) AddLabel(l *Label) *Label {
	s.Labels = append(s.Labels, l)
	return l
}
