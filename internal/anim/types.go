package anim

import (
	"context"
	"time"

	"github.com/san-kum/fepmorph/internal/morph"
	"github.com/san-kum/fepmorph/internal/scene"
)

// Frame is the state handed to observers after a lambda value was applied.
// Scene is shared with the animator and only valid until the next frame.
type Frame struct {
	Index    int
	Lambda   float64
	Scene    *scene.Scene
	Channels []morph.Channel
}

type FrameObserver interface {
	OnFrame(ctx context.Context, f Frame) error
}

// ObserverFunc adapts a function to FrameObserver.
type ObserverFunc func(ctx context.Context, f Frame) error

func (fn ObserverFunc) OnFrame(ctx context.Context, f Frame) error { return fn(ctx, f) }

type Config struct {
	Schedule Schedule
	// Rate caps frames per second; zero runs unthrottled.
	Rate float64
}

func (c Config) interval() time.Duration {
	if c.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / c.Rate)
}

type Result struct {
	Frames int
	// Indices holds the frame index of every lambda in Lambdas.
	Indices  []int
	Lambdas  []float64
	Channels map[string][]float64
}
