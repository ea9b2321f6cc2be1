package formula

import (
	"fmt"
	"sort"
	"strings"
)

// String renders f in the fully parenthesized form accepted by Read and
// ReadProp, for example "((~ edg(x, y)) & (? [z] : x = z))".
func (f Formula) String() string { return f.fac.ToStr(f) }

// ToStr renders f as a parseable string. Every connective application is
// parenthesized, so precedence never matters when the result is read back.
func (fac *Factory) ToStr(f Formula) string {
	memo := make(map[int32]string)
	Postorder(f, func(g Formula) {
		n := g.node()
		switch n.kind {
		case KindTrue:
			memo[g.id] = "T"
		case KindFalse:
			memo[g.id] = "F"
		case KindVar:
			memo[g.id] = fac.symName(int(n.x))
		case KindEq:
			memo[g.id] = fmt.Sprintf("%s = %s", fac.symName(int(n.x)), fac.symName(int(n.y)))
		case KindEdg:
			memo[g.id] = fmt.Sprintf("edg(%s, %s)", fac.symName(int(n.x)), fac.symName(int(n.y)))
		case KindLt:
			memo[g.id] = fmt.Sprintf("%s < %s", fac.symName(int(n.x)), fac.symName(int(n.y)))
		case KindNot:
			memo[g.id] = fmt.Sprintf("(~ %s)", memo[n.left])
		case KindAnd:
			memo[g.id] = fmt.Sprintf("(%s & %s)", memo[n.left], memo[n.right])
		case KindOr:
			memo[g.id] = fmt.Sprintf("(%s | %s)", memo[n.left], memo[n.right])
		case KindImplies:
			memo[g.id] = fmt.Sprintf("(%s -> %s)", memo[n.left], memo[n.right])
		case KindIff:
			memo[g.id] = fmt.Sprintf("(%s <-> %s)", memo[n.left], memo[n.right])
		case KindForAll:
			memo[g.id] = fmt.Sprintf("(! [%s] : %s)", fac.symName(int(n.x)), memo[n.left])
		case KindExists:
			memo[g.id] = fmt.Sprintf("(? [%s] : %s)", fac.symName(int(n.x)), memo[n.left])
		}
	})
	return memo[f.id]
}

func (fac *Factory) symName(i int) string {
	name, err := fac.syms.LookupName(i)
	if err != nil {
		return fmt.Sprintf("?%d", i)
	}
	return name
}

// Dot renders the shared structure of f as a Graphviz digraph, one node
// per distinct subformula.
func (fac *Factory) Dot(f Formula) string {
	var b strings.Builder
	b.WriteString("digraph formula {\n")
	b.WriteString("  node [shape=box];\n")
	type edge struct{ from, to int32 }
	var nodes []Formula
	var edges []edge
	Postorder(f, func(g Formula) {
		nodes = append(nodes, g)
		for i := 1; i <= g.NumOperands(); i++ {
			edges = append(edges, edge{g.id, g.Operand(i).id})
		}
	})
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].id < nodes[j].id })
	for _, g := range nodes {
		fmt.Fprintf(&b, "  n%d [label=%q];\n", g.id, fac.dotLabel(g))
	}
	for _, e := range edges {
		fmt.Fprintf(&b, "  n%d -> n%d;\n", e.from, e.to)
	}
	b.WriteString("}\n")
	return b.String()
}

func (fac *Factory) dotLabel(g Formula) string {
	n := g.node()
	switch n.kind {
	case KindTrue:
		return "T"
	case KindFalse:
		return "F"
	case KindVar:
		return fac.symName(int(n.x))
	case KindEq:
		return fmt.Sprintf("%s = %s", fac.symName(int(n.x)), fac.symName(int(n.y)))
	case KindEdg:
		return fmt.Sprintf("edg(%s, %s)", fac.symName(int(n.x)), fac.symName(int(n.y)))
	case KindLt:
		return fmt.Sprintf("%s < %s", fac.symName(int(n.x)), fac.symName(int(n.y)))
	case KindNot:
		return "~"
	case KindAnd:
		return "&"
	case KindOr:
		return "|"
	case KindImplies:
		return "->"
	case KindIff:
		return "<->"
	case KindForAll:
		return "! [" + fac.symName(int(n.x)) + "]"
	case KindExists:
		return "? [" + fac.symName(int(n.x)) + "]"
	}
	return "?"
}
