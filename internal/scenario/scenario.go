// Package scenario provides ready-made propagation problems built from
// a run configuration: an equation, its unknown field, and an initial
// profile on a periodic uniform grid.
package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/waveprop/internal/config"
	"github.com/san-kum/waveprop/internal/field"
	"github.com/san-kum/waveprop/internal/symbolic"
)

// Scenario is a fully wired propagation problem.
type Scenario struct {
	Name     string
	Equation *symbolic.Equation
	Initial  *field.Array
	Unknown  *symbolic.Unknown
	X        *field.Dimension
	P        *field.PropagationDimension
}

type builder func(cfg *config.Config, x *field.Dimension, p *field.PropagationDimension, f *symbolic.Unknown) (*symbolic.Equation, *field.Array)

var builders = map[string]builder{
	"free":      buildFree,
	"transport": buildTransport,
	"diffusion": buildDiffusion,
}

func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named scenario from cfg. The transverse grid
// spans [-L/2, L/2) with the endpoint excluded, so it is periodic and
// uniform as spectral differentiation requires.
func Build(name string, cfg *config.Config) (*Scenario, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("scenario: unknown scenario %q", name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	x := field.NewDimension("x", periodicGrid(cfg.Grid.Length, cfg.Grid.Points))
	p := field.NewPropagationDimension("t")
	f := symbolic.NewUnknown("F", symbolic.PRef(p), symbolic.Ref(x))

	eq, initial := b(cfg, x, p, f)
	return &Scenario{
		Name:     name,
		Equation: eq,
		Initial:  initial,
		Unknown:  f,
		X:        x,
		P:        p,
	}, nil
}

// free: dF/dt = 0. The profile should hold still; any drift is stepper
// or evaluator error.
func buildFree(cfg *config.Config, x *field.Dimension, p *field.PropagationDimension, f *symbolic.Unknown) (*symbolic.Equation, *field.Array) {
	eq := symbolic.Define(
		symbolic.D(f, symbolic.PRef(p)),
		symbolic.Number(0),
	)
	return eq, gaussian(x, cfg.Params.Amplitude, cfg.Params.Width)
}

// transport: dF/dt = -c * dF/dx. The profile advects with speed c and
// wraps around the periodic grid.
func buildTransport(cfg *config.Config, x *field.Dimension, p *field.PropagationDimension, f *symbolic.Unknown) (*symbolic.Equation, *field.Array) {
	eq := symbolic.Define(
		symbolic.D(f, symbolic.PRef(p)),
		symbolic.Negate(symbolic.Product(
			symbolic.Number(cfg.Params.Speed),
			symbolic.D(f, symbolic.Ref(x)),
		)),
	)
	return eq, gaussian(x, cfg.Params.Amplitude, cfg.Params.Width)
}

// diffusion: dF/dt = D * d2F/dx2.
func buildDiffusion(cfg *config.Config, x *field.Dimension, p *field.PropagationDimension, f *symbolic.Unknown) (*symbolic.Equation, *field.Array) {
	eq := symbolic.Define(
		symbolic.D(f, symbolic.PRef(p)),
		symbolic.Product(
			symbolic.Number(cfg.Params.Diffusivity),
			symbolic.D(f, symbolic.Ref(x), symbolic.Ref(x)),
		),
	)
	return eq, gaussian(x, cfg.Params.Amplitude, cfg.Params.Width)
}

func periodicGrid(length float64, n int) []float64 {
	h := length / float64(n)
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = -length/2 + float64(i)*h
	}
	return grid
}

func gaussian(x *field.Dimension, amp, width float64) *field.Array {
	out := field.NewArray([]int{x.Size()})
	for i, xv := range x.Grid {
		out.Data[i] = complex(amp*math.Exp(-xv*xv/(2*width*width)), 0)
	}
	return out
}
