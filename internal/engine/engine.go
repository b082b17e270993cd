package engine

import (
	"fmt"

	"github.com/san-kum/waveprop/internal/field"
	"github.com/san-kum/waveprop/internal/schedule"
	"github.com/san-kum/waveprop/internal/spectral"
	"github.com/san-kum/waveprop/internal/stepper"
	"github.com/san-kum/waveprop/internal/symbolic"
)

// Sampler observes the integrated field at a scheduled propagation
// coordinate. The field snapshot is shared by every sampler due at the
// same coordinate and must not be mutated. The return value is coerced
// with field.AsField: a *Field, an array, or a scalar all work.
type Sampler func(f *field.Field, p float64) (any, error)

// SamplerSpec pairs a sampler with its due-value schedule. The schedule
// must be monotonically non-decreasing and finite: integration stops
// only when every schedule is drained, so an unbounded schedule means
// an unbounded run.
type SamplerSpec struct {
	Fn       Sampler
	Schedule []float64
}

// Options configures a run. Zero values select the defaults: RK4 with
// stepper.DefaultStep and no samplers.
type Options struct {
	Stepper  string // "euler" or "rk4"
	Step     float64
	Samplers map[string]SamplerSpec

	// OnSample, when set, is called once per drained event group with
	// its propagation coordinate. Used by the CLI for progress output.
	OnSample func(p float64)
}

// SampleField is the identity sampler: it returns the interpolated
// field snapshot itself.
func SampleField(f *field.Field, p float64) (any, error) {
	return f, nil
}

type accumulator struct {
	pvalues []float64
	fields  []*field.Field
}

// Integrate advances the equation's unknown field from pStart, invoking
// each sampler at its scheduled coordinates via interpolation, and
// returns one joined field per sampler key with the propagation
// dimension reinstated as an explicit leading axis.
//
// The equation is validated before any stepping. The loop terminates
// solely when all sampling schedules are exhausted; bounding the run is
// the caller's contract, not the engine's.
func Integrate(eq *symbolic.Equation, initial any, pStart float64, opts Options) (map[string]*field.Field, error) {
	unknown, pdim, _, err := CheckEquation(eq)
	if err != nil {
		return nil, err
	}

	samplers := opts.Samplers
	if samplers == nil {
		samplers = make(map[string]SamplerSpec)
	}

	tdims := unknown.TransverseDims()
	shape := make([]int, len(tdims))
	for i, d := range tdims {
		shape[i] = d.Size()
	}
	snapshot, err := field.NewField(unknown.Name, field.NewArray(shape), tdims...)
	if err != nil {
		return nil, err
	}
	init, err := field.AsField(initial, snapshot)
	if err != nil {
		return nil, fmt.Errorf("coercing initial field: %w", err)
	}

	schedules := make(map[string][]float64, len(samplers))
	for key, spec := range samplers {
		schedules[key] = spec.Schedule
	}
	seq := schedule.New(schedules)

	results := make(map[string]*accumulator, len(samplers))
	for key := range samplers {
		results[key] = &accumulator{}
	}

	deriv, err := spectral.Compile(eq.RHS, unknown, pdim)
	if err != nil {
		return nil, err
	}
	st := newStepper(opts).Initialize(pStart, init.Data.Clone(), deriv.Eval)

	// Samplers scheduled at or before the start fire before stepping.
	if err := drain(seq.PopEventsUntil(pStart), st, snapshot, samplers, results, opts.OnSample); err != nil {
		return nil, err
	}

	for !seq.Empty() {
		if err := st.Step(); err != nil {
			return nil, fmt.Errorf("stepping at p=%v: %w", st.P(), err)
		}
		if err := drain(seq.PopEventsUntil(st.P()), st, snapshot, samplers, results, opts.OnSample); err != nil {
			return nil, err
		}
	}

	joined := make(map[string]*field.Field, len(results))
	for key, acc := range results {
		if len(acc.fields) == 0 {
			continue
		}
		generic, err := field.FindGenericField(acc.fields, tdims)
		if err != nil {
			return nil, fmt.Errorf("assembling %q: %w", key, err)
		}
		joined[key], err = field.JoinFields(acc.fields, pdim, acc.pvalues, generic)
		if err != nil {
			return nil, fmt.Errorf("assembling %q: %w", key, err)
		}
	}
	return joined, nil
}

type factory interface {
	Initialize(pStart float64, initial *field.Array, f stepper.Func) stepper.Stepper
}

func newStepper(opts Options) factory {
	step := opts.Step
	if step <= 0 {
		step = stepper.DefaultStep
	}
	if opts.Stepper == "euler" {
		return &stepper.Euler{Step: step}
	}
	return &stepper.RK4{Step: step}
}

// drain interpolates the field once per event group and feeds the same
// snapshot to every sampler due in that group.
func drain(events []schedule.Event, st stepper.Stepper, snapshot *field.Field, samplers map[string]SamplerSpec, results map[string]*accumulator, onSample func(float64)) error {
	for _, ev := range events {
		arr, err := st.InterpolateAt(ev.P)
		if err != nil {
			return err
		}
		interp, err := field.AsField(arr, snapshot)
		if err != nil {
			return err
		}
		if onSample != nil {
			onSample(ev.P)
		}
		for _, key := range ev.Keys {
			out, err := samplers[key].Fn(interp, ev.P)
			if err != nil {
				return fmt.Errorf("sampler %q at p=%v: %w", key, ev.P, err)
			}
			sampled, err := field.AsField(out, nil)
			if err != nil {
				return fmt.Errorf("sampler %q at p=%v: %w", key, ev.P, err)
			}
			acc := results[key]
			acc.pvalues = append(acc.pvalues, ev.P)
			acc.fields = append(acc.fields, sampled)
		}
	}
	return nil
}
