package spectral

import (
	"errors"
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/waveprop/internal/field"
	"github.com/san-kum/waveprop/internal/symbolic"
)

var (
	// ErrBadDifferential indicates a differential that cannot be computed
	// spectrally: wrong target, or a variable that is not a transverse
	// dimension of the unknown field.
	ErrBadDifferential = errors.New("spectral: differential not computable on the unknown field")
)

// DerivFunc is the compiled right-hand side of an equation
// dF/dp = rhs. Eval computes rhs numerically for a field array and a
// propagation coordinate, evaluating every transverse derivative in
// Fourier space.
//
// Spectral differentiation assumes the differentiated dimensions are
// uniformly spaced and periodic. This is not checked at evaluation
// time; on other grids the result is silently wrong.
type DerivFunc struct {
	rhs     symbolic.Expr
	unknown *symbolic.Unknown
	pdim    *field.PropagationDimension
	shape   []int
	plans   []diffPlan
}

// diffPlan precomputes everything a single differential needs: the
// differentiated axes and, per axis, the (i*k)^power multiplier for
// every frequency bin.
type diffPlan struct {
	node  *symbolic.Diff
	axes  []int
	mults [][]complex128
}

// Compile analyzes rhs once: it collects the distinct differentials,
// groups each one's variables by multiplicity, and tabulates the
// per-axis wavenumber multipliers. The returned DerivFunc is stateless
// and pure with respect to its inputs.
func Compile(rhs symbolic.Expr, unknown *symbolic.Unknown, pdim *field.PropagationDimension) (*DerivFunc, error) {
	tdims := unknown.TransverseDims()
	shape := make([]int, len(tdims))
	axisOf := make(map[*field.Dimension]int, len(tdims))
	for i, d := range tdims {
		shape[i] = d.Size()
		axisOf[d] = i
	}

	usage := symbolic.UsedVariables(rhs)
	df := &DerivFunc{rhs: rhs, unknown: unknown, pdim: pdim, shape: shape}
	for _, diff := range usage.Diffs {
		target, ok := diff.Target.(*symbolic.Unknown)
		if !ok || target != unknown {
			return nil, fmt.Errorf("%w: target is not the unknown field", ErrBadDifferential)
		}

		powers := make(map[*field.Dimension]int)
		for _, v := range diff.Vars {
			ref, ok := v.(*symbolic.DimRef)
			if !ok {
				return nil, fmt.Errorf("%w: variable is not a transverse dimension", ErrBadDifferential)
			}
			if _, ok := axisOf[ref.Dim]; !ok {
				return nil, fmt.Errorf("%w: dimension %q absent from the field", ErrBadDifferential, ref.Dim.Name)
			}
			powers[ref.Dim]++
		}

		plan := diffPlan{node: diff}
		for i, d := range tdims {
			power, ok := powers[d]
			if !ok {
				continue
			}
			plan.axes = append(plan.axes, i)
			plan.mults = append(plan.mults, waveMultipliers(d, power))
		}
		df.plans = append(df.plans, plan)
	}
	return df, nil
}

// waveMultipliers tabulates (i*k)^power over the FFT frequency bins of
// d, with k the angular spatial frequency 2*pi*fftfreq.
func waveMultipliers(d *field.Dimension, power int) []complex128 {
	n := d.Size()
	spacing := d.Spacing()
	out := make([]complex128, n)
	for j := 0; j < n; j++ {
		f := float64(j)
		if j >= (n+1)/2 {
			f = float64(j - n)
		}
		k := 2 * math.Pi * f / (float64(n) * spacing)
		m := complex(1, 0)
		ik := complex(0, k)
		for p := 0; p < power; p++ {
			m *= ik
		}
		out[j] = m
	}
	return out
}

// Eval computes rhs for the given field array at propagation
// coordinate p. It substitutes the unknown field with arr, the
// propagation symbol with p, and every differential with its
// spectrally computed value, then evaluates the expression.
func (d *DerivFunc) Eval(arr *field.Array, p float64) (*field.Array, error) {
	if !shapeEqual(arr.Shape, d.shape) {
		return nil, fmt.Errorf("%w: array %v for field %v", field.ErrShapeMismatch, arr.Shape, d.shape)
	}

	sub := symbolic.NewSubst().
		Set(d.unknown, &symbolic.ArrayLit{Values: arr})
	// PropRef nodes match by identity, so every instance in rhs gets its
	// own mapping to the scalar coordinate.
	for _, pd := range collectPropRefs(d.rhs) {
		sub.Set(pd, &symbolic.Num{Value: complex(p, 0)})
	}

	for _, plan := range d.plans {
		sub.Set(plan.node, &symbolic.ArrayLit{Values: d.applyPlan(arr, plan)})
	}

	return symbolic.AsArray(symbolic.Substitute(d.rhs, sub))
}

// applyPlan computes one differential: forward FFT, multiply each
// element by the wavenumber factors of the differentiated axes, inverse
// FFT. Transforming the non-differentiated axes as well is harmless
// since the inverse undoes them exactly.
func (d *DerivFunc) applyPlan(arr *field.Array, plan diffPlan) *field.Array {
	if len(arr.Shape) == 0 {
		return arr.Clone()
	}
	m := dsputils.MakeMatrix(append([]complex128(nil), arr.Data...), arr.Shape)
	freq := fft.FFTN(m)

	coords := make([]int, len(arr.Shape))
	for {
		v := freq.Value(coords)
		for i, axis := range plan.axes {
			v *= plan.mults[i][coords[axis]]
		}
		freq.SetValue(v, coords)
		if !nextCoord(coords, arr.Shape) {
			break
		}
	}

	inv := fft.IFFTN(freq)
	out := field.NewArray(arr.Shape)
	for i := range coords {
		coords[i] = 0
	}
	idx := 0
	for {
		out.Data[idx] = inv.Value(coords)
		idx++
		if !nextCoord(coords, arr.Shape) {
			break
		}
	}
	return out
}

// nextCoord advances a row-major coordinate vector; false on wrap.
func nextCoord(coords, shape []int) bool {
	for i := len(coords) - 1; i >= 0; i-- {
		coords[i]++
		if coords[i] < shape[i] {
			return true
		}
		coords[i] = 0
	}
	return false
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func collectPropRefs(e symbolic.Expr) []*symbolic.PropRef {
	var out []*symbolic.PropRef
	var walk func(symbolic.Expr)
	walk = func(e symbolic.Expr) {
		switch x := e.(type) {
		case *symbolic.PropRef:
			out = append(out, x)
		case *symbolic.Diff:
			for _, v := range x.Vars {
				walk(v)
			}
		case *symbolic.Add:
			for _, t := range x.Terms {
				walk(t)
			}
		case *symbolic.Mul:
			for _, f := range x.Factors {
				walk(f)
			}
		case *symbolic.Neg:
			walk(x.X)
		}
	}
	walk(e)
	return out
}
