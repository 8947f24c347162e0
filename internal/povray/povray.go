// Package povray writes scenes as POV-Ray scene description files.
package povray

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/fepmorph/internal/anim"
	"github.com/san-kum/fepmorph/internal/scene"
)

// FieldOfView is the 60 degree default perspective.
const FieldOfView = math.Pi / 3

const finish = "finish { phong 0.6 ambient 0.2 diffuse 0.7 }"

// vec converts to POV-Ray's left-handed frame by flipping z.
func vec(v r3.Vec) string {
	return fmt.Sprintf("<%.6f, %.6f, %.6f>", v.X, v.Y, -v.Z)
}

func rgb(c colorful.Color) string {
	return fmt.Sprintf("rgb <%.4f, %.4f, %.4f>", c.R, c.G, c.B)
}

func pigment(c colorful.Color, opacity float64) string {
	t := 1 - opacity
	if t < 0 {
		t = 0
	}
	return fmt.Sprintf("pigment { color rgbt <%.4f, %.4f, %.4f, %.4f> }", c.R, c.G, c.B, t)
}

// CameraDistance is how far the camera sits from the view centre so that
// Range fits in the field of view.
func CameraDistance(v scene.View) float64 {
	return v.Range / math.Tan(FieldOfView/2)
}

// Write emits one complete scene file.
func Write(w io.Writer, s *scene.Scene) error {
	bw := bufio.NewWriter(w)
	v := s.View
	eye := r3.Add(v.Center, r3.Vec{Z: CameraDistance(v)})

	fmt.Fprintf(bw, "// fepmorph frame\n")
	fmt.Fprintf(bw, "#version 3.7;\n")
	fmt.Fprintf(bw, "global_settings { assumed_gamma 1.0 }\n")
	fmt.Fprintf(bw, "background { color %s }\n", rgb(v.Background))
	fmt.Fprintf(bw, "camera {\n  perspective\n  location %s\n  look_at %s\n  angle %.4f\n  right x*%d/%d\n}\n",
		vec(eye), vec(v.Center), FieldOfView*180/math.Pi, v.Width, v.Height)
	fmt.Fprintf(bw, "light_source { %s color rgb <1, 1, 1> }\n", vec(r3.Add(eye, r3.Vec{X: 10, Y: 10})))
	fmt.Fprintf(bw, "light_source { %s color rgb <0.4, 0.4, 0.4> shadowless }\n", vec(r3.Add(eye, r3.Vec{X: -10, Y: -5})))

	for _, sp := range s.Spheres {
		fmt.Fprintf(bw, "sphere { %s, %.6f texture { %s %s } }\n",
			vec(sp.Pos), sp.Radius, pigment(sp.Color, sp.Opacity), finish)
	}
	for _, c := range s.Cylinders {
		if r3.Norm(c.Axis) == 0 {
			continue
		}
		fmt.Fprintf(bw, "cylinder { %s, %s, %.6f texture { %s %s } }\n",
			vec(c.Pos), vec(c.End()), c.Radius, pigment(c.Color, c.Opacity), finish)
	}
	for _, l := range s.Labels {
		writeLabel(bw, v, l)
	}

	return bw.Flush()
}

// writeLabel places the text in world space. Pixel offsets are converted with
// the scale of the view plane, Range units per half image height.
func writeLabel(w io.Writer, v scene.View, l *scene.Label) {
	perPixel := 0.0
	if v.Height > 0 {
		perPixel = 2 * v.Range / float64(v.Height)
	}
	pos := r3.Add(l.Pos, r3.Vec{X: l.XOffset * perPixel, Y: l.YOffset * perPixel})
	size := l.Height * perPixel
	fmt.Fprintf(w, "text { ttf \"timrom.ttf\" \"%s\" 0.01, 0 texture { pigment { color %s } } scale %.4f translate %s }\n",
		l.Text, rgb(l.Color), size, vec(pos))
}

// FileName is the scene file of one frame.
func FileName(prefix string, index int) string {
	return fmt.Sprintf("%s%03d.pov", prefix, index)
}

// Exporter writes every frame it observes to Dir.
type Exporter struct {
	Dir    string
	Prefix string
	// Written lists the files in the order they were produced.
	Written []string
}

func NewExporter(dir, prefix string) *Exporter {
	return &Exporter{Dir: dir, Prefix: prefix}
}

func (e *Exporter) OnFrame(ctx context.Context, f anim.Frame) error {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(e.Dir, FileName(e.Prefix, f.Index))
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, f.Scene); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	e.Written = append(e.Written, path)
	return nil
}
