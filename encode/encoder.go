package encode

import (
	"fmt"

	"github.com/fogsat/fogsat/formula"
)

// Encode rewrites the first-order formula f into an equivalent
// propositional formula over bit variables. Quantifiers are eliminated by
// finite unfolding: a universal becomes the conjunction, over every vertex,
// of the body with the bound variable substituted by that vertex's
// constant, an existential the analogous disjunction. Relation atoms expand
// through the scheme's gates. The cost is exponential in quantifier nesting
// depth times the vertex count; EstimateUnfolding bounds it beforehand.
//
// Free variables of f stay free as bit variables. They are not restricted
// to valid codes here: conjoin DomainConstraint per free variable when
// building the CNF.
func (enc *Encoding) Encode(f formula.Formula) (formula.Formula, error) {
	if f.Class() != formula.Fog {
		return formula.Formula{}, fmt.Errorf("encode: expected a first-order formula, got %v", f.Class())
	}
	return enc.propnize(f)
}

func (enc *Encoding) propnize(f formula.Formula) (formula.Formula, error) {
	switch f.Kind() {
	case formula.KindTrue:
		return enc.fac.TrueConst(formula.Prop), nil
	case formula.KindFalse:
		return enc.fac.FalseConst(formula.Prop), nil
	case formula.KindEq:
		return enc.encodeEq(f.AtomArg(1), f.AtomArg(2))
	case formula.KindEdg:
		return enc.encodeEdg(f.AtomArg(1), f.AtomArg(2))
	case formula.KindLt:
		return enc.encodeLt(f.AtomArg(1), f.AtomArg(2))
	case formula.KindNot:
		a, err := enc.propnize(f.Operand(1))
		if err != nil {
			return formula.Formula{}, err
		}
		return enc.fac.Not(a), nil
	case formula.KindAnd, formula.KindOr, formula.KindImplies, formula.KindIff:
		a, err := enc.propnize(f.Operand(1))
		if err != nil {
			return formula.Formula{}, err
		}
		b, err := enc.propnize(f.Operand(2))
		if err != nil {
			return formula.Formula{}, err
		}
		return enc.fac.Binop(f.Kind(), a, b), nil
	case formula.KindForAll, formula.KindExists:
		return enc.unfold(f)
	}
	return formula.Formula{}, fmt.Errorf("encode: unexpected %v node in a first-order formula", f.Kind())
}

func (enc *Encoding) unfold(f formula.Formula) (formula.Formula, error) {
	v := f.BoundVar()
	body := f.Operand(1)
	if len(enc.g.Vertices) == 0 {
		if f.Kind() == formula.KindForAll {
			return enc.fac.TrueConst(formula.Prop), nil
		}
		return enc.fac.FalseConst(formula.Prop), nil
	}
	ops := make([]formula.Formula, 0, len(enc.g.Vertices))
	for _, w := range enc.g.Vertices {
		inst, err := enc.fac.Substitute(body, v, enc.consts[w])
		if err != nil {
			return formula.Formula{}, err
		}
		p, err := enc.propnize(inst)
		if err != nil {
			return formula.Formula{}, err
		}
		ops = append(ops, p)
	}
	if f.Kind() == formula.KindForAll {
		return enc.fac.AndAll(ops), nil
	}
	return enc.fac.OrAll(ops), nil
}
