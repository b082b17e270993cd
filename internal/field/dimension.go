package field

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Dimension is a named transverse axis with an ordered numeric grid.
// Grids used for spectral differentiation must be uniform and are
// treated as periodic.
type Dimension struct {
	Name string
	Grid []float64
}

func NewDimension(name string, grid []float64) *Dimension {
	return &Dimension{Name: name, Grid: grid}
}

func (d *Dimension) Size() int { return len(d.Grid) }

// Spacing returns the step between the first two grid points.
// Only meaningful for uniform grids.
func (d *Dimension) Spacing() float64 {
	if len(d.Grid) < 2 {
		return 0
	}
	return d.Grid[1] - d.Grid[0]
}

// Uniform reports whether the grid has constant spacing.
func (d *Dimension) Uniform() bool {
	if len(d.Grid) < 3 {
		return true
	}
	h := d.Grid[1] - d.Grid[0]
	for i := 2; i < len(d.Grid); i++ {
		if math.Abs((d.Grid[i]-d.Grid[i-1])-h) > 1e-12*math.Max(1, math.Abs(h)) {
			return false
		}
	}
	return true
}

// PropagationDimension is the single axis along which the equation is
// integrated. It carries no grid: propagation coordinates are produced
// by the stepper, not sampled from a stored axis.
type PropagationDimension struct {
	Name string
}

func NewPropagationDimension(name string) *PropagationDimension {
	return &PropagationDimension{Name: name}
}

// Linspace returns n evenly spaced points from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, stop)
}
