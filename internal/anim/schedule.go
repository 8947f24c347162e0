package anim

import (
	"fmt"
	"math"
)

const DefaultSamples = 101

// Schedule is an evenly spaced sequence of lambda values from Start to End.
type Schedule struct {
	Samples int
	Start   float64
	End     float64
}

func DefaultSchedule() Schedule {
	return Schedule{Samples: DefaultSamples, Start: 0, End: 1}
}

func (s Schedule) Validate() error {
	if s.Samples < 2 {
		return fmt.Errorf("schedule needs at least 2 samples, got %d", s.Samples)
	}
	if s.Start < 0 || s.End > 1 || s.Start >= s.End {
		return fmt.Errorf("schedule range [%g, %g] outside [0, 1]", s.Start, s.End)
	}
	return nil
}

// Lambdas returns the sample points. The last point is exactly End.
func (s Schedule) Lambdas() []float64 {
	out := make([]float64, s.Samples)
	step := s.step()
	for i := range out {
		out[i] = s.Start + float64(i)*step
	}
	out[len(out)-1] = s.End
	return out
}

func (s Schedule) step() float64 {
	return (s.End - s.Start) / float64(s.Samples-1)
}

// FrameIndex numbers a frame by its lambda value on the grid of the schedule's
// step, so a schedule covering part of [0, 1] names its frames the same way
// the full run would.
func (s Schedule) FrameIndex(lambda float64) int {
	return int(math.Round(lambda / s.step()))
}
