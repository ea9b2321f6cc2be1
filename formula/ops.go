package formula

import (
	"fmt"

	"github.com/fogsat/fogsat/symbols"
)

// FreeVars returns the free first-order variables of f in order of first
// occurrence, reading the formula left to right.
func (fac *Factory) FreeVars(f Formula) []int {
	return fac.freeSymbols(f, false)
}

// FreeVarsAndConsts is FreeVars extended with the constant symbols of f,
// again in order of first occurrence.
func (fac *Factory) FreeVarsAndConsts(f Formula) []int {
	return fac.freeSymbols(f, true)
}

func (fac *Factory) freeSymbols(f Formula, withConsts bool) []int {
	var out []int
	seen := make(map[int]bool)
	bound := make(map[int]int)

	add := func(i int) {
		if bound[i] > 0 || seen[i] {
			return
		}
		if !fac.syms.IsVariable(i) && !(withConsts && fac.syms.IsConstant(i)) {
			return
		}
		seen[i] = true
		out = append(out, i)
	}

	var walk func(g Formula)
	walk = func(g Formula) {
		n := g.node()
		switch n.kind {
		case KindEq, KindEdg, KindLt:
			add(int(n.x))
			add(int(n.y))
		case KindVar:
			add(int(n.x))
		case KindForAll, KindExists:
			bound[int(n.x)]++
			walk(Formula{fac, n.left})
			bound[int(n.x)]--
		default:
			for i := 1; i <= g.NumOperands(); i++ {
				walk(g.Operand(i))
			}
		}
	}
	walk(f)
	return out
}

// Substitute replaces every free occurrence of the variable v in f by the
// symbol d, which may be a variable or a constant. Occurrences of v bound
// by an inner quantifier are left alone.
func (fac *Factory) Substitute(f Formula, v, d int) (Formula, error) {
	if !fac.syms.IsVariable(v) {
		name, _ := fac.syms.LookupName(v)
		return Formula{}, &symbols.NameError{Name: name, Reason: "not a variable symbol"}
	}
	if !fac.syms.HasName(d) {
		return Formula{}, &symbols.IndexError{Index: d}
	}
	memo := make(map[int32]Formula)
	return fac.substitute(f, int32(v), int32(d), memo), nil
}

func (fac *Factory) substitute(g Formula, v, d int32, memo map[int32]Formula) Formula {
	if r, ok := memo[g.id]; ok {
		return r
	}
	n := g.node()
	var r Formula
	switch n.kind {
	case KindTrue, KindFalse, KindVar:
		r = g
	case KindEq, KindEdg, KindLt:
		x, y := n.x, n.y
		if x == v {
			x = d
		}
		if y == v {
			y = d
		}
		if x == n.x && y == n.y {
			r = g
		} else {
			// rebuilding through Atom keeps the symmetric relations normalized
			r, _ = fac.Atom(n.kind, int(x), int(y))
		}
	case KindNot:
		r = fac.Not(fac.substitute(g.Operand(1), v, d, memo))
	case KindAnd, KindOr, KindImplies, KindIff:
		a := fac.substitute(g.Operand(1), v, d, memo)
		b := fac.substitute(g.Operand(2), v, d, memo)
		r = fac.Binop(n.kind, a, b)
	case KindForAll, KindExists:
		if n.x == v {
			// v is shadowed below this binder
			r = g
		} else {
			r = fac.rebuildQuantifier(n.kind, int(n.x), fac.substitute(g.Operand(1), v, d, memo))
		}
	}
	memo[g.id] = r
	return r
}

// Eval evaluates a propositional formula under the given assignment of
// Boolean variables, keyed by symbol index. An unassigned variable is an
// error.
func (fac *Factory) Eval(f Formula, assign map[int]bool) (bool, error) {
	if f.Class() != Prop {
		return false, fmt.Errorf("formula: cannot evaluate a %v formula", f.Class())
	}
	memo := make(map[int32]bool)
	var evalErr error
	Postorder(f, func(g Formula) {
		if evalErr != nil {
			return
		}
		n := g.node()
		switch n.kind {
		case KindTrue:
			memo[g.id] = true
		case KindFalse:
			memo[g.id] = false
		case KindVar:
			val, ok := assign[int(n.x)]
			if !ok {
				name, _ := fac.syms.LookupName(int(n.x))
				evalErr = fmt.Errorf("formula: variable %q has no assigned value", name)
				return
			}
			memo[g.id] = val
		case KindNot:
			memo[g.id] = !memo[n.left]
		case KindAnd:
			memo[g.id] = memo[n.left] && memo[n.right]
		case KindOr:
			memo[g.id] = memo[n.left] || memo[n.right]
		case KindImplies:
			memo[g.id] = !memo[n.left] || memo[n.right]
		case KindIff:
			memo[g.id] = memo[n.left] == memo[n.right]
		}
	})
	if evalErr != nil {
		return false, evalErr
	}
	return memo[f.id], nil
}
