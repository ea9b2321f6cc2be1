// Package formula defines immutable logical formulas over graphs and their
// propositional counterparts.
//
// A Factory interns every formula it builds: constructing the same shape
// twice returns the same handle, so == on Formula values decides structural
// identity in constant time and shared subformulas are stored once. Two
// languages live in one factory, distinguished by a Class tag: Fog, the
// first-order language with vertex terms, the relations edg, = and <, and
// quantifiers, and Prop, plain propositional logic over Boolean variables.
//
// Formulas can be built programmatically:
//
//	f, _ := fac.Edg(x, y)
//	g, _ := fac.Exists(z, f)
//
// or parsed from the textual syntax, where ~ is negation, & and | bind
// tighter than -> and <->, and quantifiers are written with a bracketed
// bound variable:
//
//	f, err := fac.Read("(~ edg(x, y)) & (? [z] : edg(x, z))")
//
// Reduce simplifies a formula by constant propagation and local identities,
// Substitute instantiates a free variable, and String renders a formula
// back into parseable text.
package formula
