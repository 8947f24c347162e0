package povray

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/fepmorph/internal/anim"
	"github.com/san-kum/fepmorph/internal/scene"
)

func testScene() *scene.Scene {
	s := scene.New(scene.DefaultView())
	s.AddSphere(&scene.Sphere{Pos: r3.Vec{X: 1, Y: 2, Z: 3}, Radius: 0.3, Color: scene.Cyan, Opacity: 0.25})
	s.AddSphere(&scene.Sphere{Pos: r3.Vec{}, Radius: 0.2, Color: scene.White, Opacity: 1})
	s.AddCylinder(&scene.Cylinder{Pos: r3.Vec{X: 0.3}, Axis: r3.Vec{X: 1}, Radius: 0.04, Color: scene.White, Opacity: 1})
	s.AddCylinder(&scene.Cylinder{Pos: r3.Vec{X: 0.3}, Radius: 0.04, Color: scene.White, Opacity: 1})
	s.AddLabel(&scene.Label{Pos: r3.Vec{X: 3, Y: 4, Z: 1}, Text: "lambda = 0.42", Height: 50, Color: scene.Red})
	return s
}

func TestWrite(t *testing.T) {
	var b strings.Builder
	if err := Write(&b, testScene()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := b.String()

	if n := strings.Count(out, "sphere {"); n != 2 {
		t.Errorf("expected 2 spheres, got %d", n)
	}
	if n := strings.Count(out, "cylinder {"); n != 1 {
		t.Errorf("expected zero-length cylinder to be skipped, got %d cylinders", n)
	}
	if !strings.Contains(out, "<1.000000, 2.000000, -3.000000>") {
		t.Error("expected z to be flipped for the left-handed frame")
	}
	if !strings.Contains(out, "rgbt <0.0000, 1.0000, 1.0000, 0.7500>") {
		t.Error("expected transmit to be 1 - opacity")
	}
	if !strings.Contains(out, `"lambda = 0.42"`) {
		t.Error("expected label text")
	}
	if !strings.Contains(out, "background { color rgb <1.0000, 1.0000, 1.0000> }") {
		t.Error("expected white background")
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("dt", 7); got != "dt007.pov" {
		t.Errorf("expected dt007.pov, got %s", got)
	}
	if got := FileName("st", 100); got != "st100.pov" {
		t.Errorf("expected st100.pov, got %s", got)
	}
}

func TestExporter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	e := NewExporter(dir, "st")
	s := testScene()

	for i := 0; i < 3; i++ {
		if err := e.OnFrame(context.Background(), anim.Frame{Index: i, Scene: s}); err != nil {
			t.Fatalf("export failed: %v", err)
		}
	}

	if len(e.Written) != 3 {
		t.Fatalf("expected 3 files, got %d", len(e.Written))
	}
	data, err := os.ReadFile(filepath.Join(dir, "st002.pov"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "// fepmorph frame") {
		t.Error("unexpected file header")
	}
}
