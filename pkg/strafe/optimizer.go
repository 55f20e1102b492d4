package strafe

import (
	"math"

	"github.com/jumpstat/jumpstat/pkg/geom"
	"github.com/jumpstat/jumpstat/pkg/movement"
	"github.com/jumpstat/jumpstat/pkg/replay"

	"golang.org/x/sync/errgroup"
)

const (
	// Degrees searched on either side of the recorded yaw
	Window = 3.0
	// Degrees between two candidates
	Step = 0.1
)

type Result struct {
	// Horizontal speed reached with the best yaw
	Speed float64
	// View angles with only the yaw replaced
	Angles   geom.Vector3
	Velocity geom.Vector3
	// Horizontal speed reached with the recorded yaw
	Baseline float64
}

func (r Result) Yaw() float64 {
	return r.Angles.Y()
}

// Gain is how much speed the best yaw adds over the recorded one.
func (r Result) Gain() float64 {
	return r.Speed - r.Baseline
}

// Optimizer searches the yaw that gets the most speed out of a single tick
// of air acceleration.
type Optimizer struct {
	Physics movement.Physics
	Window  float64
	Step    float64
	// Candidates evaluated concurrently, 1 or less evaluates in place
	Workers int
}

func NewOptimizer(physics movement.Physics) *Optimizer {
	return &Optimizer{
		Physics: physics,
		Window:  Window,
		Step:    Step,
		Workers: 1,
	}
}

// candidates lists the yaws to try in ascending offset order. An offset
// that leaves [0, 360) is wrapped back with a single turn.
func (o *Optimizer) candidates(yaw float64) []float64 {
	step := o.Step
	if step <= 0 {
		step = Step
	}

	steps := int(math.Round(math.Max(o.Window, 0) / step))

	yaws := make([]float64, 0, 2*steps+1)
	for k := -steps; k <= steps; k++ {
		if k == 0 {
			yaws = append(yaws, yaw)
			continue
		}
		yaws = append(yaws, geom.WrapDegrees(yaw+float64(k)*step))
	}
	return yaws
}

func (o *Optimizer) evaluate(sample *replay.TickSample, yaw float64) geom.Vector3 {
	candidate := sample.WithYaw(yaw)
	return o.Physics.AirAccelerate(&candidate)
}

// Optimize never modifies sample. Ties go to the candidate with the lowest
// offset.
func (o *Optimizer) Optimize(sample *replay.TickSample) Result {
	yaws := o.candidates(sample.ViewAngles.Y())
	velocities := make([]geom.Vector3, len(yaws))

	if o.Workers > 1 {
		var group errgroup.Group
		group.SetLimit(o.Workers)
		for i := range yaws {
			i := i
			group.Go(func() error {
				velocities[i] = o.evaluate(sample, yaws[i])
				return nil
			})
		}
		group.Wait()
	} else {
		for i := range yaws {
			velocities[i] = o.evaluate(sample, yaws[i])
		}
	}

	best := -1
	bestSpeed := math.Inf(-1)
	for i, velocity := range velocities {
		if speed := velocity.Length2D(); speed > bestSpeed {
			best = i
			bestSpeed = speed
		}
	}

	if best < 0 {
		// Every candidate produced NaN
		best = len(yaws) / 2
	}

	angles := sample.ViewAngles
	angles[1] = yaws[best]

	return Result{
		Speed:    velocities[best].Length2D(),
		Angles:   angles,
		Velocity: velocities[best],
		Baseline: velocities[len(yaws)/2].Length2D(),
	}
}
