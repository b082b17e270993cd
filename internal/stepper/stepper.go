package stepper

import (
	"errors"

	"github.com/san-kum/waveprop/internal/field"
)

// DefaultStep is the fixed advance per call to Step when a caller does
// not choose one.
const DefaultStep = 0.02

// ErrInterpolationRange indicates InterpolateAt called outside the last
// step. This is a contract violation in event ordering, not a
// recoverable condition.
var ErrInterpolationRange = errors.New("stepper: interpolation point outside last step")

// Func is the compiled right-hand side: the derivative of the field
// with respect to the propagation coordinate.
type Func func(arr *field.Array, p float64) (*field.Array, error)

// Stepper advances a field array along the propagation dimension by a
// fixed increment and can interpolate anywhere within the last step
// taken. Implementations hold exactly two snapshots: the previous and
// current endpoints.
type Stepper interface {
	// Step advances by the configured step size: afterwards PPrev()
	// holds the old coordinate and P() is PPrev() plus the step.
	Step() error

	// InterpolateAt evaluates the field at p, with PPrev() <= p <= P().
	// Before any step both bounds coincide and the initial field is
	// returned exactly.
	InterpolateAt(p float64) (*field.Array, error)

	P() float64
	PPrev() float64
	Current() *field.Array
}

// state is the snapshot pair shared by all fixed-step variants.
type state struct {
	pPrev, p             float64
	fieldPrev, fieldCurr *field.Array
	f                    Func
}

func newState(pStart float64, initial *field.Array, f Func) state {
	return state{
		pPrev:     pStart,
		p:         pStart,
		fieldPrev: initial,
		fieldCurr: initial,
		f:         f,
	}
}

func (s *state) P() float64            { return s.p }
func (s *state) PPrev() float64        { return s.pPrev }
func (s *state) Current() *field.Array { return s.fieldCurr }

func (s *state) advance(h float64, next *field.Array) {
	s.pPrev = s.p
	s.p = s.pPrev + h
	s.fieldPrev = s.fieldCurr
	s.fieldCurr = next
}

func (s *state) checkRange(p float64) error {
	if p < s.pPrev || p > s.p {
		return ErrInterpolationRange
	}
	return nil
}
