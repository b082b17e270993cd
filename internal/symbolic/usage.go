package symbolic

import "github.com/san-kum/waveprop/internal/field"

// Usage is the set of symbolic entities referenced by an expression.
// Dimension references inside an Unknown's declaration list are not
// uses; only explicit appearances count. Slices preserve first-seen
// order so downstream processing is deterministic.
type Usage struct {
	PropDims   []*field.PropagationDimension
	Transverse []*field.Dimension
	Diffs      []*Diff
}

// UsedVariables walks expr and collects every propagation dimension,
// transverse dimension, and distinct differential it references.
// Differentials are deduplicated structurally via Diff.Key.
func UsedVariables(expr Expr) Usage {
	c := &usageCollector{
		props: make(map[*field.PropagationDimension]bool),
		dims:  make(map[*field.Dimension]bool),
		diffs: make(map[string]bool),
	}
	c.walk(expr)
	return c.usage
}

type usageCollector struct {
	usage Usage
	props map[*field.PropagationDimension]bool
	dims  map[*field.Dimension]bool
	diffs map[string]bool
}

func (c *usageCollector) walk(e Expr) {
	switch x := e.(type) {
	case *Num, *ArrayLit, *Unknown:
		// Leaves; an Unknown's dimension list is a declaration, not a use.
	case *DimRef:
		if !c.dims[x.Dim] {
			c.dims[x.Dim] = true
			c.usage.Transverse = append(c.usage.Transverse, x.Dim)
		}
	case *PropRef:
		if !c.props[x.Dim] {
			c.props[x.Dim] = true
			c.usage.PropDims = append(c.usage.PropDims, x.Dim)
		}
	case *Diff:
		if !c.diffs[x.Key()] {
			c.diffs[x.Key()] = true
			c.usage.Diffs = append(c.usage.Diffs, x)
		}
		for _, v := range x.Vars {
			c.walk(v)
		}
	case *Add:
		for _, t := range x.Terms {
			c.walk(t)
		}
	case *Mul:
		for _, f := range x.Factors {
			c.walk(f)
		}
	case *Neg:
		c.walk(x.X)
	}
}
