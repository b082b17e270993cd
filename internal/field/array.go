package field

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch indicates arrays or fields with incompatible shapes.
var ErrShapeMismatch = errors.New("field: shape mismatch")

// Array is a dense row-major block of complex values with an explicit
// shape. A scalar has an empty shape and exactly one element. Spectral
// transforms produce complex intermediates, so the payload is complex
// throughout; real-valued problems simply carry zero imaginary parts.
type Array struct {
	Data  []complex128
	Shape []int
}

func NewArray(shape []int) *Array {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return &Array{Data: make([]complex128, n), Shape: append([]int(nil), shape...)}
}

// Scalar wraps a single value as a rank-0 array.
func Scalar(v complex128) *Array {
	return &Array{Data: []complex128{v}, Shape: nil}
}

func FromComplex(data []complex128, shape []int) (*Array, error) {
	n := 1
	for _, s := range shape {
		n *= s
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShapeMismatch, len(data), shape)
	}
	return &Array{Data: append([]complex128(nil), data...), Shape: append([]int(nil), shape...)}, nil
}

func FromReal(data []float64, shape []int) (*Array, error) {
	c := make([]complex128, len(data))
	for i, v := range data {
		c[i] = complex(v, 0)
	}
	return FromComplex(c, shape)
}

func (a *Array) Size() int      { return len(a.Data) }
func (a *Array) IsScalar() bool { return len(a.Shape) == 0 }

func (a *Array) Clone() *Array {
	return &Array{
		Data:  append([]complex128(nil), a.Data...),
		Shape: append([]int(nil), a.Shape...),
	}
}

// Real extracts the real parts.
func (a *Array) Real() []float64 {
	out := make([]float64, len(a.Data))
	for i, v := range a.Data {
		out[i] = real(v)
	}
	return out
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

// broadcast pairs two arrays elementwise, allowing either side to be a
// scalar. It returns the result shape and a fetch function per operand.
func broadcast(a, b *Array) ([]int, func(int) complex128, func(int) complex128, error) {
	switch {
	case a.IsScalar() && !b.IsScalar():
		av := a.Data[0]
		return b.Shape, func(int) complex128 { return av }, func(i int) complex128 { return b.Data[i] }, nil
	case !a.IsScalar() && b.IsScalar():
		bv := b.Data[0]
		return a.Shape, func(i int) complex128 { return a.Data[i] }, func(int) complex128 { return bv }, nil
	case shapeEqual(a.Shape, b.Shape):
		return a.Shape, func(i int) complex128 { return a.Data[i] }, func(i int) complex128 { return b.Data[i] }, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.Shape, b.Shape)
	}
}

func (a *Array) Add(b *Array) (*Array, error) {
	shape, fa, fb, err := broadcast(a, b)
	if err != nil {
		return nil, err
	}
	out := NewArray(shape)
	for i := range out.Data {
		out.Data[i] = fa(i) + fb(i)
	}
	return out, nil
}

func (a *Array) Sub(b *Array) (*Array, error) {
	shape, fa, fb, err := broadcast(a, b)
	if err != nil {
		return nil, err
	}
	out := NewArray(shape)
	for i := range out.Data {
		out.Data[i] = fa(i) - fb(i)
	}
	return out, nil
}

func (a *Array) Mul(b *Array) (*Array, error) {
	shape, fa, fb, err := broadcast(a, b)
	if err != nil {
		return nil, err
	}
	out := NewArray(shape)
	for i := range out.Data {
		out.Data[i] = fa(i) * fb(i)
	}
	return out, nil
}

func (a *Array) Scale(s complex128) *Array {
	out := a.Clone()
	for i := range out.Data {
		out.Data[i] *= s
	}
	return out
}

// AddScaled returns a + s*b.
func (a *Array) AddScaled(b *Array, s complex128) (*Array, error) {
	shape, fa, fb, err := broadcast(a, b)
	if err != nil {
		return nil, err
	}
	out := NewArray(shape)
	for i := range out.Data {
		out.Data[i] = fa(i) + s*fb(i)
	}
	return out, nil
}
