package stepper

import "github.com/san-kum/waveprop/internal/field"

// Euler configures the explicit first-order stepper. The zero value is
// not usable; construct with NewEuler or set Step explicitly.
type Euler struct {
	Step float64
}

func NewEuler() *Euler {
	return &Euler{Step: DefaultStep}
}

// Initialize seeds a stepper instance at pStart with the initial field
// array. The configuration struct itself stays immutable and reusable.
func (e *Euler) Initialize(pStart float64, initial *field.Array, f Func) Stepper {
	return &eulerState{state: newState(pStart, initial, f), params: e}
}

type eulerState struct {
	state
	params *Euler
}

func (s *eulerState) Step() error {
	h := s.params.Step
	df, err := s.f(s.fieldCurr, s.p)
	if err != nil {
		return err
	}
	next, err := s.fieldCurr.AddScaled(df, complex(h, 0))
	if err != nil {
		return err
	}
	s.advance(h, next)
	return nil
}

// InterpolateAt blends the two endpoint snapshots linearly, matching
// the first-order accuracy of the step itself.
func (s *eulerState) InterpolateAt(p float64) (*field.Array, error) {
	if err := s.checkRange(p); err != nil {
		return nil, err
	}
	if s.pPrev == s.p {
		return s.fieldCurr.Clone(), nil
	}
	t := (p - s.pPrev) / (s.p - s.pPrev)
	diff, err := s.fieldCurr.Sub(s.fieldPrev)
	if err != nil {
		return nil, err
	}
	return s.fieldPrev.AddScaled(diff, complex(t, 0))
}
