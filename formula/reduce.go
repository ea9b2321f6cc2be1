package formula

// Reduce rewrites f in a single bottom-up pass, applying local identities
// at each node: constants are propagated through connectives, double
// negation is removed, idempotent conjunction and disjunction collapse, a
// trivially true or false atom becomes a constant, and a vacuous
// quantifier collapses (forall over T, exists over F). Forall over F and
// exists over T stay put: their value depends on whether the domain is
// empty, which only the encoder knows. One pass suffices because every
// rule only inspects already-reduced children.
func (fac *Factory) Reduce(f Formula) Formula {
	memo := make(map[int32]Formula)
	Postorder(f, func(g Formula) {
		memo[g.id] = fac.reduceStep(g, memo)
	})
	return memo[f.id]
}

func (fac *Factory) reduceStep(g Formula, memo map[int32]Formula) Formula {
	n := g.node()
	c := n.class
	t := fac.TrueConst(c)
	bot := fac.FalseConst(c)

	switch n.kind {
	case KindTrue, KindFalse, KindVar:
		return g

	case KindEq:
		if n.x == n.y {
			return t
		}
		return g

	case KindEdg:
		// no self-loops in the graph relation
		if n.x == n.y {
			return bot
		}
		return g

	case KindLt:
		if n.x == n.y {
			return bot
		}
		return g

	case KindNot:
		a := memo[n.left]
		switch a.Kind() {
		case KindTrue:
			return bot
		case KindFalse:
			return t
		case KindNot:
			return a.Operand(1)
		}
		return fac.Not(a)

	case KindAnd:
		a, b := memo[n.left], memo[n.right]
		switch {
		case a.Kind() == KindFalse || b.Kind() == KindFalse:
			return bot
		case a.Kind() == KindTrue:
			return b
		case b.Kind() == KindTrue:
			return a
		case a == b:
			return a
		}
		return fac.And(a, b)

	case KindOr:
		a, b := memo[n.left], memo[n.right]
		switch {
		case a.Kind() == KindTrue || b.Kind() == KindTrue:
			return t
		case a.Kind() == KindFalse:
			return b
		case b.Kind() == KindFalse:
			return a
		case a == b:
			return a
		}
		return fac.Or(a, b)

	case KindImplies:
		a, b := memo[n.left], memo[n.right]
		switch {
		case a.Kind() == KindFalse || b.Kind() == KindTrue:
			return t
		case a.Kind() == KindTrue:
			return b
		case b.Kind() == KindFalse:
			return fac.reduceNot(a)
		case a == b:
			return t
		}
		return fac.Implies(a, b)

	case KindIff:
		a, b := memo[n.left], memo[n.right]
		switch {
		case a == b:
			return t
		case a.Kind() == KindTrue:
			return b
		case b.Kind() == KindTrue:
			return a
		case a.Kind() == KindFalse:
			return fac.reduceNot(b)
		case b.Kind() == KindFalse:
			return fac.reduceNot(a)
		}
		return fac.Iff(a, b)

	case KindForAll:
		a := memo[n.left]
		if a.Kind() == KindTrue {
			return a
		}
		return fac.rebuildQuantifier(KindForAll, int(n.x), a)

	case KindExists:
		a := memo[n.left]
		if a.Kind() == KindFalse {
			return a
		}
		return fac.rebuildQuantifier(KindExists, int(n.x), a)
	}
	return g
}

// reduceNot negates an already-reduced formula, keeping the result reduced.
func (fac *Factory) reduceNot(a Formula) Formula {
	switch a.Kind() {
	case KindTrue:
		return fac.FalseConst(a.Class())
	case KindFalse:
		return fac.TrueConst(a.Class())
	case KindNot:
		return a.Operand(1)
	}
	return fac.Not(a)
}
