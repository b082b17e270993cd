package symbolic

import (
	"sort"
	"strings"

	"github.com/san-kum/waveprop/internal/field"
)

// Expr is the closed set of expression nodes the engine understands.
// Every operation over expressions (UsedVariables, Substitute, AsArray)
// is a single exhaustive type switch; adding a node kind means
// extending each of them.
type Expr interface {
	isExpr()
}

// Num is a scalar literal.
type Num struct {
	Value complex128
}

// DimRef is a reference to a transverse dimension symbol.
type DimRef struct {
	Dim *field.Dimension
}

// PropRef is a reference to a propagation dimension symbol.
type PropRef struct {
	Dim *field.PropagationDimension
}

// Unknown stands for the quantity being integrated. Dims is the full
// ordered dimension list, propagation dimension included; each entry is
// a *DimRef or *PropRef.
type Unknown struct {
	Name string
	Dims []Expr
}

// Diff is a partial derivative of Target with respect to Vars.
// Repeated variables encode higher-order and mixed derivatives:
// D(F, x, x, y) is the third mixed derivative.
type Diff struct {
	Target Expr
	Vars   []Expr
}

// ArrayLit is an array-valued leaf, produced by substitution.
type ArrayLit struct {
	Values *field.Array
}

type Add struct {
	Terms []Expr
}

type Mul struct {
	Factors []Expr
}

type Neg struct {
	X Expr
}

func (*Num) isExpr()      {}
func (*DimRef) isExpr()   {}
func (*PropRef) isExpr()  {}
func (*Unknown) isExpr()  {}
func (*Diff) isExpr()     {}
func (*ArrayLit) isExpr() {}
func (*Add) isExpr()      {}
func (*Mul) isExpr()      {}
func (*Neg) isExpr()      {}

// Equation is the assignment LHS = RHS.
type Equation struct {
	LHS Expr
	RHS Expr
}

func Define(lhs, rhs Expr) *Equation { return &Equation{LHS: lhs, RHS: rhs} }

func Number(v float64) *Num          { return &Num{Value: complex(v, 0)} }
func Ref(d *field.Dimension) *DimRef { return &DimRef{Dim: d} }
func PRef(d *field.PropagationDimension) *PropRef {
	return &PropRef{Dim: d}
}

func NewUnknown(name string, dims ...Expr) *Unknown {
	return &Unknown{Name: name, Dims: dims}
}

func D(target Expr, vars ...Expr) *Diff { return &Diff{Target: target, Vars: vars} }

func Sum(terms ...Expr) *Add       { return &Add{Terms: terms} }
func Product(factors ...Expr) *Mul { return &Mul{Factors: factors} }
func Negate(x Expr) *Neg           { return &Neg{X: x} }

// TransverseDims returns the unknown's dimension list with the
// propagation dimension removed, in declaration order.
func (u *Unknown) TransverseDims() []*field.Dimension {
	out := make([]*field.Dimension, 0, len(u.Dims))
	for _, d := range u.Dims {
		if r, ok := d.(*DimRef); ok {
			out = append(out, r.Dim)
		}
	}
	return out
}

func symbolName(v Expr) string {
	switch s := v.(type) {
	case *DimRef:
		return s.Dim.Name
	case *PropRef:
		return s.Dim.Name
	default:
		return ""
	}
}

// Key identifies a differential structurally: same target and the same
// multiset of differentiation variables compare equal regardless of
// node identity or variable order.
func (d *Diff) Key() string {
	target := ""
	if u, ok := d.Target.(*Unknown); ok {
		target = u.Name
	}
	names := make([]string, len(d.Vars))
	for i, v := range d.Vars {
		names[i] = symbolName(v)
	}
	sort.Strings(names)
	return target + "|" + strings.Join(names, ",")
}
