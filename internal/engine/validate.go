package engine

import (
	"fmt"

	"github.com/san-kum/waveprop/internal/field"
	"github.com/san-kum/waveprop/internal/symbolic"
)

// CheckEquation validates the structural shape of eq and extracts the
// unknown field, the propagation dimension, and the symbols used on the
// right-hand side. It is a pure check: no state is touched.
//
// Required shape: the left side is exactly d(field, pdim) with field an
// Unknown and pdim a propagation dimension; every propagation symbol on
// the right side is that same pdim; every transverse symbol on the
// right side belongs to the unknown field's declared dimensions.
func CheckEquation(eq *symbolic.Equation) (*symbolic.Unknown, *field.PropagationDimension, symbolic.Usage, error) {
	var usage symbolic.Usage

	lhs, ok := eq.LHS.(*symbolic.Diff)
	if !ok {
		return nil, nil, usage, ErrMalformedEquation
	}
	unknown, ok := lhs.Target.(*symbolic.Unknown)
	if !ok {
		return nil, nil, usage, fmt.Errorf("%w: differentiated quantity is not the unknown field", ErrMalformedEquation)
	}
	if len(lhs.Vars) != 1 {
		return nil, nil, usage, fmt.Errorf("%w: expected a single differentiation variable, got %d", ErrMalformedEquation, len(lhs.Vars))
	}
	pref, ok := lhs.Vars[0].(*symbolic.PropRef)
	if !ok {
		return nil, nil, usage, fmt.Errorf("%w: differentiation variable is not a propagation dimension", ErrMalformedEquation)
	}
	pdim := pref.Dim

	usage = symbolic.UsedVariables(eq.RHS)
	for _, pd := range usage.PropDims {
		if pd != pdim {
			return nil, nil, usage, fmt.Errorf("%w: propagation dimension %q is not %q", ErrDimensionMismatch, pd.Name, pdim.Name)
		}
	}

	declared := make(map[*field.Dimension]bool)
	for _, d := range unknown.TransverseDims() {
		declared[d] = true
	}
	for _, d := range usage.Transverse {
		if !declared[d] {
			return nil, nil, usage, fmt.Errorf("%w: transverse dimension %q absent from field %q", ErrDimensionMismatch, d.Name, unknown.Name)
		}
	}

	return unknown, pdim, usage, nil
}
