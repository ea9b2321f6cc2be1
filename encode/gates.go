package encode

import (
	"github.com/fogsat/fogsat/formula"
	"github.com/fogsat/fogsat/symbols"
)

// bit returns the propositional formula realizing bit pos of the term x: a
// truth constant when x is a domain constant, a bit variable when x is a
// first-order variable.
func (enc *Encoding) bit(x, pos int) (formula.Formula, error) {
	if v, ok := enc.verts[x]; ok {
		if enc.codes[v][pos] {
			return enc.fac.TrueConst(formula.Prop), nil
		}
		return enc.fac.FalseConst(formula.Prop), nil
	}
	if enc.fac.Symbols().IsConstant(x) {
		name, _ := enc.fac.Symbols().LookupName(x)
		return formula.Formula{}, &symbols.NameError{Name: name, Reason: "not a domain constant"}
	}
	return enc.BitVar(x, pos)
}

// The l* helpers build connectives with constant folding, so gates over
// constant terms collapse instead of dragging T and F subformulas into the
// CNF step.

func (enc *Encoding) lnot(f formula.Formula) formula.Formula {
	switch f.Kind() {
	case formula.KindTrue:
		return enc.fac.FalseConst(formula.Prop)
	case formula.KindFalse:
		return enc.fac.TrueConst(formula.Prop)
	}
	return enc.fac.Not(f)
}

func (enc *Encoding) land(f, g formula.Formula) formula.Formula {
	switch {
	case f.Kind() == formula.KindFalse || g.Kind() == formula.KindFalse:
		return enc.fac.FalseConst(formula.Prop)
	case f.Kind() == formula.KindTrue:
		return g
	case g.Kind() == formula.KindTrue:
		return f
	}
	return enc.fac.And(f, g)
}

func (enc *Encoding) lor(f, g formula.Formula) formula.Formula {
	switch {
	case f.Kind() == formula.KindTrue || g.Kind() == formula.KindTrue:
		return enc.fac.TrueConst(formula.Prop)
	case f.Kind() == formula.KindFalse:
		return g
	case g.Kind() == formula.KindFalse:
		return f
	}
	return enc.fac.Or(f, g)
}

func (enc *Encoding) liff(f, g formula.Formula) formula.Formula {
	switch {
	case f.Kind() == formula.KindTrue:
		return g
	case g.Kind() == formula.KindTrue:
		return f
	case f.Kind() == formula.KindFalse:
		return enc.lnot(g)
	case g.Kind() == formula.KindFalse:
		return enc.lnot(f)
	case f == g:
		return enc.fac.TrueConst(formula.Prop)
	}
	return enc.fac.Iff(f, g)
}

// encodeEq expands x = y into the bitwise equivalence of the two codes.
func (enc *Encoding) encodeEq(x, y int) (formula.Formula, error) {
	acc := enc.fac.TrueConst(formula.Prop)
	for pos := 0; pos < enc.codeLen; pos++ {
		bx, err := enc.bit(x, pos)
		if err != nil {
			return formula.Formula{}, err
		}
		by, err := enc.bit(y, pos)
		if err != nil {
			return formula.Formula{}, err
		}
		acc = enc.land(acc, enc.liff(bx, by))
	}
	return acc, nil
}

// encodeEdg expands edg(x, y). Under the edge and clique schemes adjacency
// is a property of the codes themselves: the codes share a set bit and
// differ somewhere. The direct and log schemes carry no adjacency in the
// code, so the gate enumerates the edge list.
func (enc *Encoding) encodeEdg(x, y int) (formula.Formula, error) {
	switch enc.scheme {
	case Edge, Clique:
		shared := enc.fac.FalseConst(formula.Prop)
		for pos := 0; pos < enc.codeLen; pos++ {
			bx, err := enc.bit(x, pos)
			if err != nil {
				return formula.Formula{}, err
			}
			by, err := enc.bit(y, pos)
			if err != nil {
				return formula.Formula{}, err
			}
			shared = enc.lor(shared, enc.land(bx, by))
		}
		eq, err := enc.encodeEq(x, y)
		if err != nil {
			return formula.Formula{}, err
		}
		return enc.land(shared, enc.lnot(eq)), nil
	case Direct:
		acc := enc.fac.FalseConst(formula.Prop)
		for _, e := range enc.g.Edges {
			pu, pv := enc.g.VertexPos(e[0]), enc.g.VertexPos(e[1])
			f, err := enc.bitPair(x, pu, y, pv)
			if err != nil {
				return formula.Formula{}, err
			}
			g, err := enc.bitPair(x, pv, y, pu)
			if err != nil {
				return formula.Formula{}, err
			}
			acc = enc.lor(acc, enc.lor(f, g))
		}
		return acc, nil
	default: // Log
		acc := enc.fac.FalseConst(formula.Prop)
		for _, e := range enc.g.Edges {
			f, err := enc.matchPair(x, e[0], y, e[1])
			if err != nil {
				return formula.Formula{}, err
			}
			g, err := enc.matchPair(x, e[1], y, e[0])
			if err != nil {
				return formula.Formula{}, err
			}
			acc = enc.lor(acc, enc.lor(f, g))
		}
		return acc, nil
	}
}

func (enc *Encoding) bitPair(x, posx, y, posy int) (formula.Formula, error) {
	bx, err := enc.bit(x, posx)
	if err != nil {
		return formula.Formula{}, err
	}
	by, err := enc.bit(y, posy)
	if err != nil {
		return formula.Formula{}, err
	}
	return enc.land(bx, by), nil
}

func (enc *Encoding) matchPair(x, u, y, v int) (formula.Formula, error) {
	mx, err := enc.codeMatch(x, u)
	if err != nil {
		return formula.Formula{}, err
	}
	my, err := enc.codeMatch(y, v)
	if err != nil {
		return formula.Formula{}, err
	}
	return enc.land(mx, my), nil
}

// encodeLt expands x < y, where < orders vertices by position in the
// vertex list. The direct scheme compares one-hot positions, the log
// scheme is an unsigned comparator over the binary codes, and the edge and
// clique schemes enumerate the ordered vertex pairs.
func (enc *Encoding) encodeLt(x, y int) (formula.Formula, error) {
	switch enc.scheme {
	case Direct:
		acc := enc.fac.FalseConst(formula.Prop)
		for i := 0; i < enc.codeLen; i++ {
			for j := i + 1; j < enc.codeLen; j++ {
				f, err := enc.bitPair(x, i, y, j)
				if err != nil {
					return formula.Formula{}, err
				}
				acc = enc.lor(acc, f)
			}
		}
		return acc, nil
	case Log:
		acc := enc.fac.FalseConst(formula.Prop)
		for k := enc.codeLen - 1; k >= 0; k-- {
			bx, err := enc.bit(x, k)
			if err != nil {
				return formula.Formula{}, err
			}
			by, err := enc.bit(y, k)
			if err != nil {
				return formula.Formula{}, err
			}
			term := enc.land(enc.lnot(bx), by)
			for j := k + 1; j < enc.codeLen; j++ {
				cx, err := enc.bit(x, j)
				if err != nil {
					return formula.Formula{}, err
				}
				cy, err := enc.bit(y, j)
				if err != nil {
					return formula.Formula{}, err
				}
				term = enc.land(term, enc.liff(cx, cy))
			}
			acc = enc.lor(acc, term)
		}
		return acc, nil
	default: // Edge, Clique
		acc := enc.fac.FalseConst(formula.Prop)
		for i, u := range enc.g.Vertices {
			for _, w := range enc.g.Vertices[i+1:] {
				f, err := enc.matchPair(x, u, y, w)
				if err != nil {
					return formula.Formula{}, err
				}
				acc = enc.lor(acc, f)
			}
		}
		return acc, nil
	}
}

// codeMatch restricts x's bits to exactly vertex v's code.
func (enc *Encoding) codeMatch(x, v int) (formula.Formula, error) {
	code := enc.codes[v]
	acc := enc.fac.TrueConst(formula.Prop)
	for pos := 0; pos < enc.codeLen; pos++ {
		b, err := enc.bit(x, pos)
		if err != nil {
			return formula.Formula{}, err
		}
		if !code[pos] {
			b = enc.lnot(b)
		}
		acc = enc.land(acc, b)
	}
	return acc, nil
}

// DomainConstraint returns the formula restricting the first-order variable
// x's bits to some valid vertex code. The direct scheme uses the structural
// exactly-one constraint; the other schemes disjoin one code match per
// vertex.
func (enc *Encoding) DomainConstraint(x int) (formula.Formula, error) {
	if enc.scheme == Direct {
		bits, err := enc.BitVars(x)
		if err != nil {
			return formula.Formula{}, err
		}
		acc := enc.fac.OrAll(bits)
		for i := 0; i < len(bits); i++ {
			for j := i + 1; j < len(bits); j++ {
				acc = enc.land(acc, enc.fac.Not(enc.fac.And(bits[i], bits[j])))
			}
		}
		return acc, nil
	}
	acc := enc.fac.FalseConst(formula.Prop)
	for _, v := range enc.g.Vertices {
		m, err := enc.codeMatch(x, v)
		if err != nil {
			return formula.Formula{}, err
		}
		acc = enc.lor(acc, m)
	}
	return acc, nil
}
