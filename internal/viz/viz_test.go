package viz

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/fepmorph/internal/scene"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	w, h := c.Dots()
	if w != 8 || h != 8 {
		t.Fatalf("expected 8x8 dots, got %dx%d", w, h)
	}

	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Error("expected dot to be set")
	}
	if c.Grid[1][1] != brailleBase|0x10 {
		t.Errorf("unexpected cell %U", c.Grid[1][1])
	}
	c.Unset(3, 5)
	if c.IsSet(3, 5) || c.Grid[1][1] != brailleBase {
		t.Error("expected dot to be cleared")
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	if strings.Count(c.String(), "\n") != 2 {
		t.Error("expected one line per row")
	}
}

func TestCanvasShapes(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 9, 0)
	for x := 0; x <= 9; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("expected (%d,0) on the line", x)
		}
	}

	c.Clear()
	c.DrawCircle(10, 10, 4)
	for _, p := range [][2]int{{14, 10}, {6, 10}, {10, 14}, {10, 6}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected %v on the circle", p)
		}
	}
	if c.IsSet(10, 10) {
		t.Error("circle should be an outline")
	}
}

func TestCameraProject(t *testing.T) {
	v := scene.DefaultView()
	cam := NewCamera(v)

	x, y, _, ok := cam.Project(v.Center, 100, 80)
	if !ok || x != 50 || y != 40 {
		t.Errorf("expected centre to land mid-canvas, got (%d,%d) %v", x, y, ok)
	}

	x, y, _, ok = cam.Project(r3.Add(v.Center, r3.Vec{X: v.Range}), 100, 80)
	if !ok || x != 90 || y != 40 {
		t.Errorf("expected range edge at x=90, got (%d,%d) %v", x, y, ok)
	}

	_, y, _, _ = cam.Project(r3.Add(v.Center, r3.Vec{Y: 1}), 100, 80)
	if y >= 40 {
		t.Errorf("positive y should move up, got %d", y)
	}

	if _, _, _, ok := cam.Project(r3.Add(v.Center, r3.Vec{Z: 100}), 100, 80); ok {
		t.Error("point behind the camera should not be visible")
	}
}

func TestRenderScene(t *testing.T) {
	s := scene.New(scene.DefaultView())
	s.AddSphere(&scene.Sphere{Pos: s.View.Center, Radius: 0.3, Opacity: 1})
	s.AddCylinder(&scene.Cylinder{Pos: s.View.Center, Axis: r3.Vec{X: 1}})

	c := NewCanvas(40, 20)
	RenderScene(c, s, NewCamera(s.View))
	if !strings.ContainsFunc(c.String(), func(r rune) bool { return r > brailleBase && r <= brailleBase+0xff }) {
		t.Error("expected something drawn")
	}
	RenderScene(nil, s, nil)
}

func TestElementLegend(t *testing.T) {
	got := ElementLegend(map[byte]int{'o': 1, 'c': 6, 'h': 12})
	c, h, o := strings.Index(got, " c 6"), strings.Index(got, " h 12"), strings.Index(got, " o 1")
	if c < 0 || h < 0 || o < 0 {
		t.Fatalf("missing element counts in %q", got)
	}
	if !(c < h && h < o) {
		t.Errorf("expected alphabetical order, got %q", got)
	}
	if strings.Count(got, "██") != 3 {
		t.Errorf("expected one swatch per element, got %q", got)
	}
	if ElementLegend(nil) != "" {
		t.Error("expected empty legend for no elements")
	}
}

func TestGradientText(t *testing.T) {
	if got := GradientText("", scene.Cyan, scene.Red); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	got := GradientText("dual topology", scene.Cyan, scene.Red)
	for _, r := range "dual topology" {
		if !strings.ContainsRune(got, r) {
			t.Fatalf("expected %q in %q", r, got)
		}
	}
}

func TestPanelKeepsContent(t *testing.T) {
	got := Panel.Render("frames: 101")
	if !strings.Contains(got, "frames: 101") {
		t.Errorf("expected content inside panel, got %q", got)
	}
	if len(strings.Split(got, "\n")) != 3 {
		t.Errorf("expected bordered panel of 3 lines, got %q", got)
	}
}
