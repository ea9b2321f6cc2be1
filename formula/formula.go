package formula

import (
	"fmt"

	"github.com/fogsat/fogsat/symbols"
)

// Class discriminates the two formula languages sharing one factory.
// Structurally identical shapes of different classes are distinct formulas.
type Class uint8

const (
	// Prop is propositional logic: Boolean variables and connectives.
	Prop Class = iota
	// Fog is first-order logic of graphs: equality, adjacency and ordering
	// atoms over vertex terms, plus quantifiers.
	Fog
)

func (c Class) String() string {
	if c == Prop {
		return "prop"
	}
	return "fog"
}

// Kind is the tag of a formula node.
type Kind uint8

const (
	KindTrue Kind = iota
	KindFalse
	KindVar     // Boolean variable (Prop only)
	KindEq      // x = y (Fog only)
	KindEdg     // edg(x, y) (Fog only)
	KindLt      // x < y (Fog only)
	KindNot
	KindAnd
	KindOr
	KindImplies
	KindIff
	KindForAll // quantifier (Fog only)
	KindExists // quantifier (Fog only)
)

// node is the interned representation of a formula. The struct doubles as
// the hash-consing key: it is comparable and includes the class, so equal
// shapes of different classes never collapse to one node.
type node struct {
	class Class
	kind  Kind
	left  int32 // first operand handle, 0 if none
	right int32 // second operand handle, 0 if none
	x     int32 // atom operand or bound variable (symbol index)
	y     int32 // second atom operand (symbol index)
}

// A Factory owns an arena of immutable formula nodes together with its
// symbol table. All formulas built by one factory share subterms: building
// the same shape twice returns the same handle.
//
// A factory is single-session state, like its symbol table: it provides no
// synchronization.
type Factory struct {
	syms  *symbols.Table
	nodes []node
	ids   map[node]int32

	// Balanced selects recursive bisection instead of a left fold when
	// chains of & or | are grouped by the parser and by AndAll/OrAll.
	// It changes the shape of formulas, never their meaning.
	Balanced bool
}

// NewFactory returns a factory interning formulas over tab.
func NewFactory(tab *symbols.Table) *Factory {
	return &Factory{syms: tab, ids: make(map[node]int32)}
}

// Symbols returns the factory's symbol table.
func (fac *Factory) Symbols() *symbols.Table { return fac.syms }

// A Formula is a handle to an interned node. Two formulas built by the same
// factory compare equal with == exactly when they are structurally
// identical; == never decides logical equivalence.
type Formula struct {
	fac *Factory
	id  int32
}

func (fac *Factory) intern(n node) Formula {
	if id, ok := fac.ids[n]; ok {
		return Formula{fac, id}
	}
	fac.nodes = append(fac.nodes, n)
	id := int32(len(fac.nodes)) // ids start at 1 so the zero Formula is invalid
	fac.ids[n] = id
	return Formula{fac, id}
}

func (f Formula) node() node { return f.fac.nodes[f.id-1] }

// Kind returns the tag of the top-most operator.
func (f Formula) Kind() Kind { return f.node().kind }

// Class returns the formula's language class.
func (f Formula) Class() Class { return f.node().class }

// NumOperands returns the number of subformulas of the top-most operator.
func (f Formula) NumOperands() int {
	switch f.node().kind {
	case KindNot, KindForAll, KindExists:
		return 1
	case KindAnd, KindOr, KindImplies, KindIff:
		return 2
	default:
		return 0
	}
}

// Operand returns the i-th subformula, counting from 1.
// It panics if the operand does not exist.
func (f Formula) Operand(i int) Formula {
	n := f.node()
	switch {
	case i == 1 && n.left != 0:
		return Formula{f.fac, n.left}
	case i == 2 && n.right != 0:
		return Formula{f.fac, n.right}
	}
	panic(fmt.Sprintf("formula: no operand %d on %v node", i, n.kind))
}

// AtomArg returns the i-th term of an atomic relation (1 or 2) as a symbol
// index. It panics on non-relation nodes.
func (f Formula) AtomArg(i int) int {
	n := f.node()
	if n.kind != KindEq && n.kind != KindEdg && n.kind != KindLt {
		panic("formula: AtomArg on non-relation node")
	}
	if i == 1 {
		return int(n.x)
	}
	return int(n.y)
}

// VarIndex returns the symbol index of a Boolean variable node.
// It panics on other nodes.
func (f Formula) VarIndex() int {
	n := f.node()
	if n.kind != KindVar {
		panic("formula: VarIndex on non-variable node")
	}
	return int(n.x)
}

// BoundVar returns the bound variable of a quantifier node.
// It panics on other nodes.
func (f Formula) BoundVar() int {
	n := f.node()
	if n.kind != KindForAll && n.kind != KindExists {
		panic("formula: BoundVar on non-quantifier node")
	}
	return int(n.x)
}

// TrueConst returns the true constant of the given class.
func (fac *Factory) TrueConst(c Class) Formula {
	return fac.intern(node{class: c, kind: KindTrue})
}

// FalseConst returns the false constant of the given class.
func (fac *Factory) FalseConst(c Class) Formula {
	return fac.intern(node{class: c, kind: KindFalse})
}

// PropVar returns the Boolean variable formula for symbol index i.
func (fac *Factory) PropVar(i int) (Formula, error) {
	if !fac.syms.HasName(i) {
		return Formula{}, &symbols.IndexError{Index: i}
	}
	return fac.intern(node{class: Prop, kind: KindVar, x: int32(i)}), nil
}

// Eq returns the atom x = y. The operands are put in name order, so
// Eq(x, y) and Eq(y, x) are the same formula.
func (fac *Factory) Eq(x, y int) (Formula, error) {
	x, y, err := fac.orderArgs(x, y)
	if err != nil {
		return Formula{}, err
	}
	return fac.intern(node{class: Fog, kind: KindEq, x: int32(x), y: int32(y)}), nil
}

// Edg returns the atom edg(x, y). Like Eq, the operands are put in name
// order: adjacency is symmetric.
func (fac *Factory) Edg(x, y int) (Formula, error) {
	x, y, err := fac.orderArgs(x, y)
	if err != nil {
		return Formula{}, err
	}
	return fac.intern(node{class: Fog, kind: KindEdg, x: int32(x), y: int32(y)}), nil
}

// Lt returns the ordering atom x < y. Unlike Eq and Edg the operand order
// is kept as given.
func (fac *Factory) Lt(x, y int) (Formula, error) {
	if !fac.syms.HasName(x) {
		return Formula{}, &symbols.IndexError{Index: x}
	}
	if !fac.syms.HasName(y) {
		return Formula{}, &symbols.IndexError{Index: y}
	}
	return fac.intern(node{class: Fog, kind: KindLt, x: int32(x), y: int32(y)}), nil
}

// Atom returns the k-tagged relation atom over x and y.
func (fac *Factory) Atom(k Kind, x, y int) (Formula, error) {
	switch k {
	case KindEq:
		return fac.Eq(x, y)
	case KindEdg:
		return fac.Edg(x, y)
	case KindLt:
		return fac.Lt(x, y)
	}
	return Formula{}, fmt.Errorf("formula: kind %d is not a relation atom", k)
}

func (fac *Factory) orderArgs(x, y int) (int, int, error) {
	nx, err := fac.syms.LookupName(x)
	if err != nil {
		return 0, 0, err
	}
	ny, err := fac.syms.LookupName(y)
	if err != nil {
		return 0, 0, err
	}
	if nx > ny {
		return y, x, nil
	}
	return x, y, nil
}

// Not returns the negation of f.
func (fac *Factory) Not(f Formula) Formula {
	return fac.intern(node{class: f.Class(), kind: KindNot, left: f.id})
}

// And returns the conjunction of f and g.
func (fac *Factory) And(f, g Formula) Formula { return fac.Binop(KindAnd, f, g) }

// Or returns the disjunction of f and g.
func (fac *Factory) Or(f, g Formula) Formula { return fac.Binop(KindOr, f, g) }

// Implies returns the implication f -> g.
func (fac *Factory) Implies(f, g Formula) Formula { return fac.Binop(KindImplies, f, g) }

// Iff returns the equivalence f <-> g.
func (fac *Factory) Iff(f, g Formula) Formula { return fac.Binop(KindIff, f, g) }

// Binop returns the k-tagged binary connective over f and g. The operands
// must belong to the same class; mixing classes is a programming error and
// panics.
func (fac *Factory) Binop(k Kind, f, g Formula) Formula {
	switch k {
	case KindAnd, KindOr, KindImplies, KindIff:
	default:
		panic(fmt.Sprintf("formula: kind %d is not a binary connective", k))
	}
	if f.Class() != g.Class() {
		panic(fmt.Sprintf("formula: mixed classes %v and %v", f.Class(), g.Class()))
	}
	return fac.intern(node{class: f.Class(), kind: k, left: f.id, right: g.id})
}

// ForAll returns the universally quantified formula (! [v] : f).
func (fac *Factory) ForAll(v int, f Formula) (Formula, error) {
	return fac.quantify(KindForAll, v, f)
}

// Exists returns the existentially quantified formula (? [v] : f).
func (fac *Factory) Exists(v int, f Formula) (Formula, error) {
	return fac.quantify(KindExists, v, f)
}

func (fac *Factory) quantify(k Kind, v int, f Formula) (Formula, error) {
	if !fac.syms.IsVariable(v) {
		name, _ := fac.syms.LookupName(v)
		return Formula{}, &symbols.NameError{Name: name, Reason: "not a variable symbol"}
	}
	return fac.intern(node{class: Fog, kind: k, left: f.id, x: int32(v)}), nil
}

// rebuildQuantifier rebuilds a quantifier whose bound variable is already
// known to be valid.
func (fac *Factory) rebuildQuantifier(k Kind, v int, f Formula) Formula {
	return fac.intern(node{class: Fog, kind: k, left: f.id, x: int32(v)})
}

// AndAll folds fs into a conjunction, left to right, or by recursive
// bisection when the factory's Balanced mode is set.
// It panics on an empty slice.
func (fac *Factory) AndAll(fs []Formula) Formula { return fac.foldAll(KindAnd, fs) }

// OrAll folds fs into a disjunction; see AndAll.
func (fac *Factory) OrAll(fs []Formula) Formula { return fac.foldAll(KindOr, fs) }

func (fac *Factory) foldAll(k Kind, fs []Formula) Formula {
	if len(fs) == 0 {
		panic("formula: fold over empty operand list")
	}
	if fac.Balanced {
		return fac.foldBalanced(k, fs)
	}
	acc := fs[0]
	for _, g := range fs[1:] {
		acc = fac.Binop(k, acc, g)
	}
	return acc
}

func (fac *Factory) foldBalanced(k Kind, fs []Formula) Formula {
	switch len(fs) {
	case 1:
		return fs[0]
	case 2:
		return fac.Binop(k, fs[0], fs[1])
	}
	mid := len(fs) / 2
	return fac.Binop(k, fac.foldBalanced(k, fs[:mid]), fac.foldBalanced(k, fs[mid:]))
}

// Postorder visits every distinct subformula of f exactly once, children
// before parents. Shared subformulas are visited a single time.
func Postorder(f Formula, visit func(Formula)) {
	type frame struct {
		g        Formula
		expanded bool
	}
	stack := []frame{{f, false}}
	done := make(map[int32]bool)
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if done[fr.g.id] {
			continue
		}
		if fr.expanded {
			done[fr.g.id] = true
			visit(fr.g)
			continue
		}
		stack = append(stack, frame{fr.g, true})
		for i := fr.g.NumOperands(); i >= 1; i-- {
			stack = append(stack, frame{fr.g.Operand(i), false})
		}
	}
}
