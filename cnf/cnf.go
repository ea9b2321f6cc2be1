// Package cnf converts propositional formulas into conjunctive normal form
// by Tseitin transformation, and manages the index space of the result.
//
// Variables live in two index spaces. Internal indices are symbol table
// indices: the Boolean variables of the input formulas plus the auxiliary
// symbols minted for subformulas. External indices are the contiguous
// 1..N numbering used in the emitted DIMACS output. The manager keeps the
// bijection between the two, so a satisfying assignment of the output can
// be decoded back to the input's variables.
package cnf

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fogsat/fogsat/encode"
	"github.com/fogsat/fogsat/formula"
)

// An IndexError reports an external index outside the emitted CNF's
// variable range.
type IndexError struct {
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("cnf: external index %d out of range", e.Index)
}

// A Cnf holds the clauses of a converted formula set and the index
// bijection needed to decode assignments.
type Cnf struct {
	fac *formula.Factory
	enc *encode.Encoding

	base    int     // max input variable index; auxiliaries are above it
	clauses [][]int // external literals
	ext     map[int]int
	intern  []int // external-1 -> internal
	nonAux  int   // externals 1..nonAux decode to input variables
}

// New converts the given propositional formulas, conventionally an encoded
// goal followed by one domain constraint per free variable, into one clause
// set asserting them all. Each formula is reduced first; a formula reduced
// to the true constant contributes nothing, one reduced to false yields the
// empty clause.
//
// enc supplies the decoding metadata written as comments by Write; it may
// be nil when the formulas did not come from a domain encoding.
func New(fac *formula.Factory, enc *encode.Encoding, fs []formula.Formula) (*Cnf, error) {
	c := &Cnf{fac: fac, enc: enc, ext: make(map[int]int)}
	reduced := make([]formula.Formula, 0, len(fs))
	for _, f := range fs {
		if f.Class() != formula.Prop {
			return nil, fmt.Errorf("cnf: expected a propositional formula, got %v", f.Class())
		}
		reduced = append(reduced, fac.Reduce(f))
	}
	for _, f := range reduced {
		formula.Postorder(f, func(g formula.Formula) {
			if g.Kind() == formula.KindVar && g.VarIndex() > c.base {
				c.base = g.VarIndex()
			}
		})
	}
	var internal [][]int
	lits := make(map[formula.Formula]int)
	for _, f := range reduced {
		if f.Kind() == formula.KindTrue {
			continue
		}
		if f.Kind() == formula.KindFalse {
			internal = append(internal, []int{})
			continue
		}
		top, err := c.transform(f, lits, &internal)
		if err != nil {
			return nil, err
		}
		internal = append(internal, []int{top})
	}
	c.buildMapping(internal)
	return c, nil
}

// transform walks the formula DAG bottom-up, assigning each non-literal
// subformula an auxiliary variable and emitting its defining clauses.
// Shared subformulas are transformed once, across all input formulas.
func (c *Cnf) transform(f formula.Formula, lits map[formula.Formula]int, out *[][]int) (int, error) {
	var failed error
	formula.Postorder(f, func(g formula.Formula) {
		if failed != nil {
			return
		}
		if _, ok := lits[g]; ok {
			return
		}
		switch g.Kind() {
		case formula.KindTrue, formula.KindFalse:
			failed = fmt.Errorf("cnf: truth constant below a connective, formula not reduced")
		case formula.KindVar:
			lits[g] = g.VarIndex()
		case formula.KindNot:
			a := g.Operand(1)
			if a.Kind() == formula.KindVar {
				lits[g] = -a.VarIndex()
				return
			}
			z := c.fac.Symbols().NewAuxIndex()
			b := lits[a]
			*out = append(*out, []int{-z, -b}, []int{z, b})
			lits[g] = z
		case formula.KindAnd:
			z := c.fac.Symbols().NewAuxIndex()
			a, b := lits[g.Operand(1)], lits[g.Operand(2)]
			*out = append(*out, []int{-z, a}, []int{-z, b}, []int{z, -a, -b})
			lits[g] = z
		case formula.KindOr:
			z := c.fac.Symbols().NewAuxIndex()
			a, b := lits[g.Operand(1)], lits[g.Operand(2)]
			*out = append(*out, []int{-z, a, b}, []int{z, -a}, []int{z, -b})
			lits[g] = z
		case formula.KindIff:
			z := c.fac.Symbols().NewAuxIndex()
			a, b := lits[g.Operand(1)], lits[g.Operand(2)]
			*out = append(*out,
				[]int{-z, -a, b}, []int{-z, a, -b},
				[]int{z, a, b}, []int{z, -a, -b})
			lits[g] = z
		case formula.KindImplies:
			z := c.fac.Symbols().NewAuxIndex()
			a, b := lits[g.Operand(1)], lits[g.Operand(2)]
			*out = append(*out, []int{-z, -a, b}, []int{z, a}, []int{z, -b})
			lits[g] = z
		default:
			failed = fmt.Errorf("cnf: unexpected %v node in a propositional formula", g.Kind())
		}
	})
	if failed != nil {
		return 0, failed
	}
	return lits[f], nil
}

// buildMapping numbers the internal indices used by the clauses: input
// variables first, in increasing order, then auxiliaries, again in
// increasing order, so externals 1..nonAux always decode back to input
// variables.
func (c *Cnf) buildMapping(internal [][]int) {
	used := make(map[int]bool)
	for _, cl := range internal {
		for _, l := range cl {
			if l < 0 {
				l = -l
			}
			used[l] = true
		}
	}
	var vars, aux []int
	for i := range used {
		if i <= c.base {
			vars = append(vars, i)
		} else {
			aux = append(aux, i)
		}
	}
	sort.Ints(vars)
	sort.Ints(aux)
	c.nonAux = len(vars)
	c.intern = append(vars, aux...)
	for e, i := range c.intern {
		c.ext[i] = e + 1
	}
	c.clauses = make([][]int, len(internal))
	for k, cl := range internal {
		mapped := make([]int, len(cl))
		for j, l := range cl {
			if l < 0 {
				mapped[j] = -c.ext[-l]
			} else {
				mapped[j] = c.ext[l]
			}
		}
		c.clauses[k] = mapped
	}
}

// NVars returns the number of external variables.
func (c *Cnf) NVars() int { return len(c.intern) }

// NCls returns the number of clauses.
func (c *Cnf) NCls() int { return len(c.clauses) }

// Base returns the maximum input variable index; every internal index
// above it is a Tseitin auxiliary.
func (c *Cnf) Base() int { return c.base }

// Clause returns the i-th clause, 0-indexed, as external literals.
func (c *Cnf) Clause(i int) []int { return c.clauses[i] }

// Clauses returns all clauses as external literals, in emission order.
func (c *Cnf) Clauses() [][]int { return c.clauses }

// DecodeLit maps an external literal back to its internal literal. Aux
// literals decode to 0; an index outside 1..NVars is an IndexError.
func (c *Cnf) DecodeLit(l int) (int, error) {
	v := l
	if v < 0 {
		v = -v
	}
	if v < 1 || v > len(c.intern) {
		return 0, &IndexError{Index: v}
	}
	if v > c.nonAux {
		return 0, nil
	}
	if l < 0 {
		return -c.intern[v-1], nil
	}
	return c.intern[v-1], nil
}

// DecodeAssignment maps a satisfying assignment, given as external
// literals, back to internal literals over the input variables. Literals
// over auxiliary variables are dropped.
func (c *Cnf) DecodeAssignment(ext []int) ([]int, error) {
	out := make([]int, 0, len(ext))
	for _, l := range ext {
		i, err := c.DecodeLit(l)
		if err != nil {
			return nil, err
		}
		if i != 0 {
			out = append(out, i)
		}
	}
	return out, nil
}

// Write emits the clause set in DIMACS CNF format. When the Cnf was built
// with a domain encoding, comment lines carry the decoding metadata: one
// "c dom" line per vertex constant listing the 1-based set bit positions of
// its code, and one "c enc" line per external variable that realizes a bit
// of a first-order variable.
func (c *Cnf) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if c.enc != nil {
		if err := c.writeMeta(bw); err != nil {
			return err
		}
	}
	fmt.Fprintf(bw, "p cnf %d %d\n", c.NVars(), c.NCls())
	for _, cl := range c.clauses {
		for _, l := range cl {
			bw.WriteString(strconv.Itoa(l))
			bw.WriteByte(' ')
		}
		bw.WriteString("0\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not write CNF: %v", err)
	}
	return nil
}

func (c *Cnf) writeMeta(w io.Writer) error {
	tab := c.fac.Symbols()
	for _, ci := range c.enc.Constants() {
		name, err := tab.LookupName(ci)
		if err != nil {
			return err
		}
		v, err := c.enc.ObjectToVertex(ci)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "c dom %s:", name)
		for pos, set := range c.enc.Code(v) {
			if set {
				fmt.Fprintf(w, " %d", pos+1)
			}
		}
		fmt.Fprintln(w)
	}
	for e := 1; e <= c.nonAux; e++ {
		name, err := tab.LookupName(c.intern[e-1])
		if err != nil {
			return err
		}
		if _, _, ok := encode.SplitBitVarName(name); ok {
			fmt.Fprintf(w, "c enc %d %s\n", e, name)
		}
	}
	return nil
}
