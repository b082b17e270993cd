package symbolic

// Subst maps expression nodes to replacements. Unknown and PropRef
// nodes match by identity; Diff nodes match structurally so that two
// equivalent derivative nodes resolve to the same replacement.
type Subst struct {
	nodes map[Expr]Expr
	diffs map[string]Expr
}

func NewSubst() *Subst {
	return &Subst{
		nodes: make(map[Expr]Expr),
		diffs: make(map[string]Expr),
	}
}

func (s *Subst) Set(from, to Expr) *Subst {
	if d, ok := from.(*Diff); ok {
		s.diffs[d.Key()] = to
		return s
	}
	s.nodes[from] = to
	return s
}

func (s *Subst) lookup(e Expr) (Expr, bool) {
	if d, ok := e.(*Diff); ok {
		to, ok := s.diffs[d.Key()]
		return to, ok
	}
	to, ok := s.nodes[e]
	return to, ok
}

// Substitute rebuilds expr with every mapped node replaced. Unmapped
// nodes are kept as-is; combinators are reconstructed so the input
// expression is never mutated.
func Substitute(expr Expr, s *Subst) Expr {
	if to, ok := s.lookup(expr); ok {
		return to
	}
	switch x := expr.(type) {
	case *Num, *DimRef, *PropRef, *Unknown, *Diff, *ArrayLit:
		return x
	case *Add:
		terms := make([]Expr, len(x.Terms))
		for i, t := range x.Terms {
			terms[i] = Substitute(t, s)
		}
		return &Add{Terms: terms}
	case *Mul:
		factors := make([]Expr, len(x.Factors))
		for i, f := range x.Factors {
			factors[i] = Substitute(f, s)
		}
		return &Mul{Factors: factors}
	case *Neg:
		return &Neg{X: Substitute(x.X, s)}
	default:
		return expr
	}
}
