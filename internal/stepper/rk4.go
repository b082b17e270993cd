package stepper

import "github.com/san-kum/waveprop/internal/field"

// RK4 configures the classical fourth-order Runge-Kutta stepper.
type RK4 struct {
	Step float64
}

func NewRK4() *RK4 {
	return &RK4{Step: DefaultStep}
}

func (r *RK4) Initialize(pStart float64, initial *field.Array, f Func) Stepper {
	return &rk4State{state: newState(pStart, initial, f), params: r}
}

type rk4State struct {
	state
	params *RK4
}

func (s *rk4State) Step() error {
	h := complex(s.params.Step, 0)
	p := s.p
	half := s.params.Step / 2

	eval := func(y *field.Array, at float64) (*field.Array, error) {
		df, err := s.f(y, at)
		if err != nil {
			return nil, err
		}
		return df.Scale(h), nil
	}

	k1, err := eval(s.fieldCurr, p)
	if err != nil {
		return err
	}
	y2, err := s.fieldCurr.AddScaled(k1, 0.5)
	if err != nil {
		return err
	}
	k2, err := eval(y2, p+half)
	if err != nil {
		return err
	}
	y3, err := s.fieldCurr.AddScaled(k2, 0.5)
	if err != nil {
		return err
	}
	k3, err := eval(y3, p+half)
	if err != nil {
		return err
	}
	y4, err := s.fieldCurr.Add(k3)
	if err != nil {
		return err
	}
	k4, err := eval(y4, p+s.params.Step)
	if err != nil {
		return err
	}

	next, err := s.fieldCurr.AddScaled(k1, complex(1.0/6, 0))
	if err != nil {
		return err
	}
	next, err = next.AddScaled(k2, complex(1.0/3, 0))
	if err != nil {
		return err
	}
	next, err = next.AddScaled(k3, complex(1.0/3, 0))
	if err != nil {
		return err
	}
	next, err = next.AddScaled(k4, complex(1.0/6, 0))
	if err != nil {
		return err
	}

	s.advance(s.params.Step, next)
	return nil
}

// InterpolateAt uses a third-order interpolant over the endpoint
// snapshots, consistent with the local order of the step:
//
//	(1-t)*Fp + t*F + t(t-1)*[(1-2t)(F-Fp) + (t-1)h*Fp + t*h*F]
//
// It reproduces both endpoints exactly at t=0 and t=1.
func (s *rk4State) InterpolateAt(p float64) (*field.Array, error) {
	if err := s.checkRange(p); err != nil {
		return nil, err
	}
	if s.pPrev == s.p {
		return s.fieldCurr.Clone(), nil
	}

	h := s.p - s.pPrev
	t := (p - s.pPrev) / h
	f := s.fieldCurr
	fp := s.fieldPrev

	diff, err := f.Sub(fp)
	if err != nil {
		return nil, err
	}
	inner := diff.Scale(complex(1-2*t, 0))
	inner, err = inner.AddScaled(fp, complex((t-1)*h, 0))
	if err != nil {
		return nil, err
	}
	inner, err = inner.AddScaled(f, complex(t*h, 0))
	if err != nil {
		return nil, err
	}

	out := fp.Scale(complex(1-t, 0))
	out, err = out.AddScaled(f, complex(t, 0))
	if err != nil {
		return nil, err
	}
	return out.AddScaled(inner, complex(t*(t-1), 0))
}
