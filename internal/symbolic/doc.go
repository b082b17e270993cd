// Package symbolic defines the expression nodes equations are written
// in and the three operations the engine needs over them: variable
// usage analysis, substitution, and numeric evaluation.
//
// The node set is closed. Rather than open-ended dynamic dispatch, each
// operation is one exhaustive type switch over the node kinds, so a new
// kind fails loudly everywhere it is not handled.
package symbolic
