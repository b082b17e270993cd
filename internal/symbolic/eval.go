package symbolic

import (
	"errors"
	"fmt"

	"github.com/san-kum/waveprop/internal/field"
)

// ErrUnboundSymbol indicates evaluation of an expression that still
// contains a free symbol after substitution.
var ErrUnboundSymbol = errors.New("symbolic: unbound symbol in evaluation")

// AsArray numerically evaluates a substitution-closed expression.
// Scalars broadcast against arrays; any remaining Unknown, Diff, or
// dimension reference is an error, since those carry no numeric value.
func AsArray(expr Expr) (*field.Array, error) {
	switch x := expr.(type) {
	case *Num:
		return field.Scalar(x.Value), nil
	case *ArrayLit:
		return x.Values, nil
	case *Add:
		acc := field.Scalar(0)
		for _, t := range x.Terms {
			v, err := AsArray(t)
			if err != nil {
				return nil, err
			}
			acc, err = acc.Add(v)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	case *Mul:
		acc := field.Scalar(1)
		for _, f := range x.Factors {
			v, err := AsArray(f)
			if err != nil {
				return nil, err
			}
			acc, err = acc.Mul(v)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	case *Neg:
		v, err := AsArray(x.X)
		if err != nil {
			return nil, err
		}
		return v.Scale(-1), nil
	case *Unknown:
		return nil, fmt.Errorf("%w: unknown field %q", ErrUnboundSymbol, x.Name)
	case *Diff:
		return nil, fmt.Errorf("%w: differential %s", ErrUnboundSymbol, x.Key())
	case *DimRef:
		return nil, fmt.Errorf("%w: dimension %q", ErrUnboundSymbol, x.Dim.Name)
	case *PropRef:
		return nil, fmt.Errorf("%w: propagation dimension %q", ErrUnboundSymbol, x.Dim.Name)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnboundSymbol, expr)
	}
}
