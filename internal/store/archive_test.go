package store

import (
	"context"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/fepmorph/internal/anim"
	"github.com/san-kum/fepmorph/internal/morph"
	"github.com/san-kum/fepmorph/internal/scene"
)

func TestArchiveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ArchiveName)
	w, err := NewArchiveWriter(path)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	s := scene.New(scene.DefaultView())
	sp := s.AddSphere(&scene.Sphere{Pos: r3.Vec{X: 1}, Radius: 0.3, Color: scene.Cyan, Opacity: 1})

	for i, lam := range []float64{0, 0.5, 1} {
		sp.Opacity = 1 - lam
		f := anim.Frame{
			Index:    i,
			Lambda:   lam,
			Scene:    s,
			Channels: []morph.Channel{{Name: "opacity", Value: 1 - lam}},
		}
		if err := w.OnFrame(context.Background(), f); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	frames, err := ReadArchive(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if frames[1].Scene.Spheres[0].Opacity != 0.5 {
		t.Errorf("expected the scene as it was at frame 1, got %f", frames[1].Scene.Spheres[0].Opacity)
	}
	if frames[2].Channels["opacity"] != 0 {
		t.Errorf("unexpected channel %v", frames[2].Channels)
	}
	if frames[0].Scene.Spheres[0].Color != scene.Cyan {
		t.Errorf("colour lost: %v", frames[0].Scene.Spheres[0].Color)
	}
}

func TestReadArchiveMissing(t *testing.T) {
	if _, err := ReadArchive(filepath.Join(t.TempDir(), "none.gz")); err == nil {
		t.Error("expected error")
	}
}
