package symbolic

import (
	"errors"
	"testing"

	"github.com/san-kum/waveprop/internal/field"
)

func testSymbols() (*field.Dimension, *field.PropagationDimension, *Unknown) {
	x := field.NewDimension("x", field.Linspace(0, 1, 4))
	p := field.NewPropagationDimension("t")
	f := NewUnknown("F", PRef(p), Ref(x))
	return x, p, f
}

func TestUsedVariables(t *testing.T) {
	x, p, f := testSymbols()

	// -c * d(F, x, x) + t
	expr := Sum(
		Negate(Product(Number(2), D(f, Ref(x), Ref(x)))),
		PRef(p),
	)

	usage := UsedVariables(expr)
	if len(usage.PropDims) != 1 || usage.PropDims[0] != p {
		t.Errorf("expected propagation dimension %q, got %v", p.Name, usage.PropDims)
	}
	if len(usage.Transverse) != 1 || usage.Transverse[0] != x {
		t.Errorf("expected transverse dimension %q, got %v", x.Name, usage.Transverse)
	}
	if len(usage.Diffs) != 1 {
		t.Fatalf("expected 1 differential, got %d", len(usage.Diffs))
	}
}

func TestUsedVariablesDedupesDiffs(t *testing.T) {
	x, _, f := testSymbols()

	// The same derivative written twice as distinct nodes.
	expr := Sum(D(f, Ref(x)), D(f, Ref(x)))
	usage := UsedVariables(expr)
	if len(usage.Diffs) != 1 {
		t.Errorf("structurally equal differentials should collapse, got %d", len(usage.Diffs))
	}
}

func TestUnknownDeclarationIsNotUse(t *testing.T) {
	_, _, f := testSymbols()
	usage := UsedVariables(Product(Number(3), f))
	if len(usage.PropDims) != 0 || len(usage.Transverse) != 0 {
		t.Error("an unknown's dimension list must not count as used symbols")
	}
}

func TestSubstituteAndAsArray(t *testing.T) {
	x, _, f := testSymbols()

	// 2 * d(F, x) + F
	diff := D(f, Ref(x))
	expr := Sum(Product(Number(2), diff), f)

	arr, _ := field.FromReal([]float64{1, 2, 3, 4}, []int{4})
	darr, _ := field.FromReal([]float64{10, 10, 10, 10}, []int{4})

	sub := NewSubst().
		Set(f, &ArrayLit{Values: arr}).
		// Structural match: a different node for the same derivative.
		Set(D(f, Ref(x)), &ArrayLit{Values: darr})

	out, err := AsArray(Substitute(expr, sub))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{21, 22, 23, 24}
	for i, w := range want {
		if real(out.Data[i]) != w {
			t.Errorf("element %d: expected %f, got %v", i, w, out.Data[i])
		}
	}
}

func TestAsArrayUnbound(t *testing.T) {
	x, p, f := testSymbols()

	for _, expr := range []Expr{f, D(f, Ref(x)), Ref(x), PRef(p)} {
		if _, err := AsArray(expr); !errors.Is(err, ErrUnboundSymbol) {
			t.Errorf("%T: expected ErrUnboundSymbol, got %v", expr, err)
		}
	}
}

func TestDiffKeyOrderInsensitive(t *testing.T) {
	x, _, f := testSymbols()
	y := field.NewDimension("y", field.Linspace(0, 1, 4))

	a := D(f, Ref(x), Ref(y))
	b := D(f, Ref(y), Ref(x))
	if a.Key() != b.Key() {
		t.Error("mixed derivatives should compare equal regardless of variable order")
	}
	c := D(f, Ref(x), Ref(x))
	if a.Key() == c.Key() {
		t.Error("different multisets must not collide")
	}
}

func TestTransverseDims(t *testing.T) {
	x, _, f := testSymbols()
	tdims := f.TransverseDims()
	if len(tdims) != 1 || tdims[0] != x {
		t.Errorf("expected [x], got %v", tdims)
	}
}
