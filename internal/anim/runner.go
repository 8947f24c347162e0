package anim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/fepmorph/internal/morph"
)

// Runner steps an animator through a lambda schedule once and hands every
// frame to its observers.
type Runner struct {
	animator  morph.Animator
	observers []FrameObserver
}

func New(a morph.Animator) *Runner {
	return &Runner{animator: a, observers: make([]FrameObserver, 0)}
}

func (r *Runner) AddObserver(o FrameObserver) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Schedule.Validate(); err != nil {
		return nil, err
	}
	if cfg.Rate < 0 {
		return nil, fmt.Errorf("rate must not be negative, got %f", cfg.Rate)
	}

	lambdas := cfg.Schedule.Lambdas()
	result := &Result{
		Indices:  make([]int, 0, len(lambdas)),
		Lambdas:  make([]float64, 0, len(lambdas)),
		Channels: make(map[string][]float64),
	}

	// rates finer than a nanosecond run unthrottled
	var tick <-chan time.Time
	if interval := cfg.interval(); interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}

	for i, lam := range lambdas {
		if i > 0 && tick != nil {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-tick:
			}
		}
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := r.animator.Apply(lam); err != nil {
			return result, err
		}

		f := Frame{
			Index:    cfg.Schedule.FrameIndex(lam),
			Lambda:   lam,
			Scene:    r.animator.Scene(),
			Channels: r.animator.Channels(),
		}
		for _, obs := range r.observers {
			if err := obs.OnFrame(ctx, f); err != nil {
				return result, fmt.Errorf("frame %d: %w", f.Index, err)
			}
		}

		result.Frames++
		result.Indices = append(result.Indices, f.Index)
		result.Lambdas = append(result.Lambdas, lam)
		for _, ch := range f.Channels {
			result.Channels[ch.Name] = append(result.Channels[ch.Name], ch.Value)
		}
	}

	return result, nil
}
