package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/fepmorph/internal/scene"
)

// faintOpacity is the opacity below which spheres are drawn as a single dot.
const faintOpacity = 0.4

// Camera looks at Center down the -z axis and fits Range into half of the
// smaller canvas dimension.
type Camera struct {
	Center     r3.Vec
	Range      float64
	Distance   float64
	RotX, RotY float64
	Zoom       float64
}

func NewCamera(v scene.View) *Camera {
	return &Camera{
		Center:   v.Center,
		Range:    v.Range,
		Distance: v.Range / math.Tan(math.Pi/6),
		Zoom:     1,
	}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// rotate turns p about the camera centre.
func (c *Camera) rotate(p r3.Vec) r3.Vec {
	p = r3.Sub(p, c.Center)
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// scale is dots per world unit at camera-space depth z.
func (c *Camera) scale(z float64, w, h int) float64 {
	half := float64(min(w, h)) / 2
	return c.Distance / (c.Distance - z) * c.Zoom * half / c.Range
}

// Project converts a world position to dot coordinates on a w x h canvas.
// It returns the dot position, the camera-space depth and whether the point
// is in front of the camera and on the canvas.
func (c *Camera) Project(p r3.Vec, w, h int) (int, int, float64, bool) {
	rot := c.rotate(p)
	if rot.Z >= c.Distance*0.99 {
		return 0, 0, 0, false
	}
	s := c.scale(rot.Z, w, h)
	x := w/2 + int(math.Round(rot.X*s))
	y := h/2 - int(math.Round(rot.Y*s))
	return x, y, rot.Z, x >= 0 && x < w && y >= 0 && y < h
}

// RenderScene draws bonds as lines and atoms as circles.
func RenderScene(cv *Canvas, s *scene.Scene, cam *Camera) {
	if cv == nil || s == nil || cam == nil {
		return
	}
	w, h := cv.Dots()

	for _, cyl := range s.Cylinders {
		x1, y1, _, v1 := cam.Project(cyl.Pos, w, h)
		x2, y2, _, v2 := cam.Project(cyl.End(), w, h)
		if v1 || v2 {
			cv.DrawLine(x1, y1, x2, y2)
		}
	}

	for _, sp := range s.Spheres {
		x, y, z, ok := cam.Project(sp.Pos, w, h)
		if !ok {
			continue
		}
		if sp.Opacity < faintOpacity {
			cv.Set(x, y)
			continue
		}
		cv.DrawCircle(x, y, int(math.Round(sp.Radius*cam.scale(z, w, h))))
	}
}
