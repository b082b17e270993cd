package field

import (
	"errors"
	"fmt"
)

var (
	// ErrNotCoercible indicates a value that cannot be converted to a Field.
	ErrNotCoercible = errors.New("field: value not coercible to a field")

	// ErrNoSamples indicates template inference over an empty sample list.
	ErrNoSamples = errors.New("field: no samples to infer a template from")

	// ErrForeignDimension indicates a sample carrying a dimension outside
	// the candidate set.
	ErrForeignDimension = errors.New("field: sample dimension not among candidates")
)

// Field is a named quantity over zero or more dimensions. The payload
// shape matches the dimension sizes in order; a field with no
// dimensions is a scalar. Fields are value-like: derived fields are new
// instances, inputs are never mutated.
type Field struct {
	Name string
	Dims []*Dimension
	Data *Array
}

func NewField(name string, data *Array, dims ...*Dimension) (*Field, error) {
	shape := make([]int, len(dims))
	for i, d := range dims {
		shape[i] = d.Size()
	}
	if !shapeEqual(data.Shape, shape) && !(len(dims) == 0 && data.IsScalar()) {
		return nil, fmt.Errorf("%w: data %v for dimensions %v", ErrShapeMismatch, data.Shape, shape)
	}
	return &Field{Name: name, Dims: dims, Data: data}, nil
}

func (f *Field) Shape() []int { return f.Data.Shape }

func (f *Field) IsScalar() bool { return len(f.Dims) == 0 }

// AsField coerces v into a Field. Accepted values: *Field, *Array,
// []complex128, []float64, and real or complex scalars. With a non-nil
// template the result takes the template's name and dimensions and the
// payload shape must match (scalars are not reshaped). Without a
// template only scalars and ready-made fields are accepted, since a
// bare array carries no dimension information.
func AsField(v any, template *Field) (*Field, error) {
	arr, err := toArray(v)
	if err != nil {
		return nil, err
	}
	if template == nil {
		if f, ok := v.(*Field); ok {
			return f, nil
		}
		if !arr.IsScalar() {
			return nil, fmt.Errorf("%w: array value needs a template", ErrNotCoercible)
		}
		return &Field{Name: "", Dims: nil, Data: arr}, nil
	}
	if !shapeEqual(arr.Shape, template.Shape()) {
		return nil, fmt.Errorf("%w: value %v for template %v", ErrShapeMismatch, arr.Shape, template.Shape())
	}
	return &Field{Name: template.Name, Dims: template.Dims, Data: arr}, nil
}

func toArray(v any) (*Array, error) {
	switch x := v.(type) {
	case *Field:
		return x.Data, nil
	case *Array:
		return x, nil
	case []complex128:
		return &Array{Data: x, Shape: []int{len(x)}}, nil
	case []float64:
		a, _ := FromReal(x, []int{len(x)})
		return a, nil
	case complex128:
		return Scalar(x), nil
	case float64:
		return Scalar(complex(x, 0)), nil
	case int:
		return Scalar(complex(float64(x), 0)), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotCoercible, v)
	}
}

// FindGenericField infers a common template from heterogeneous samples:
// the highest-rank sample wins, every other sample must be a scalar or
// share its shape, and all of its dimensions must come from candidates.
func FindGenericField(samples []*Field, candidates []*Dimension) (*Field, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	generic := samples[0]
	for _, s := range samples[1:] {
		if len(s.Dims) > len(generic.Dims) {
			generic = s
		}
	}
	allowed := make(map[*Dimension]bool, len(candidates))
	for _, d := range candidates {
		allowed[d] = true
	}
	for _, d := range generic.Dims {
		if !allowed[d] {
			return nil, fmt.Errorf("%w: %q", ErrForeignDimension, d.Name)
		}
	}
	for _, s := range samples {
		if !s.Data.IsScalar() && !shapeEqual(s.Shape(), generic.Shape()) {
			return nil, fmt.Errorf("%w: sample %v vs template %v", ErrShapeMismatch, s.Shape(), generic.Shape())
		}
	}
	return generic, nil
}

// JoinFields stacks per-sample payloads along a new leading axis whose
// grid is values, reinstating the propagation dimension as an explicit
// axis of the joined field. Scalar samples are broadcast to the
// template shape.
func JoinFields(samples []*Field, axis *PropagationDimension, values []float64, template *Field) (*Field, error) {
	if len(samples) != len(values) {
		return nil, fmt.Errorf("%w: %d samples for %d axis values", ErrShapeMismatch, len(samples), len(values))
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	inner := template.Data.Size()
	out := NewArray(append([]int{len(samples)}, template.Shape()...))
	for i, s := range samples {
		dst := out.Data[i*inner : (i+1)*inner]
		if s.Data.IsScalar() {
			v := s.Data.Data[0]
			for j := range dst {
				dst[j] = v
			}
			continue
		}
		if !shapeEqual(s.Shape(), template.Shape()) {
			return nil, fmt.Errorf("%w: sample %v vs template %v", ErrShapeMismatch, s.Shape(), template.Shape())
		}
		copy(dst, s.Data.Data)
	}

	dims := make([]*Dimension, 0, len(template.Dims)+1)
	dims = append(dims, NewDimension(axis.Name, append([]float64(nil), values...)))
	dims = append(dims, template.Dims...)
	return NewField(template.Name, out, dims...)
}
