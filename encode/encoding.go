// Package encode turns first-order graph formulas into propositional ones.
//
// An Encoding assigns every vertex of a graph a fixed-length bit code under
// one of four schemes and registers one constant symbol per vertex. On top
// of the code table it builds gate formulas for the relations =, edg and <
// over bit-position variables, domain constraints restricting a variable to
// valid codes, and the quantifier elimination step replacing each
// quantifier by a finite conjunction or disjunction over the vertices.
package encode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fogsat/fogsat/formula"
	"github.com/fogsat/fogsat/graph"
	"github.com/fogsat/fogsat/symbols"
)

// Scheme selects how vertices are mapped to bit codes.
type Scheme uint8

const (
	// Edge codes each vertex by its incident edges.
	Edge Scheme = iota
	// Clique codes each vertex by the cliques of a separating edge clique
	// cover it belongs to.
	Clique
	// Direct codes each vertex one-hot by its position in the vertex list.
	Direct
	// Log codes each vertex by the binary representation of its 1-based
	// position.
	Log
)

func (s Scheme) String() string {
	switch s {
	case Edge:
		return "edge"
	case Clique:
		return "clique"
	case Direct:
		return "direct"
	case Log:
		return "log"
	}
	return fmt.Sprintf("scheme(%d)", s)
}

// ParseScheme returns the scheme named by s.
func ParseScheme(s string) (Scheme, error) {
	switch s {
	case "edge":
		return Edge, nil
	case "clique":
		return Clique, nil
	case "direct":
		return Direct, nil
	case "log":
		return Log, nil
	}
	return 0, fmt.Errorf("encode: unknown scheme %q", s)
}

// A DecodeError reports an assignment that cannot be mapped back to
// vertices: some variable's bit pattern matches no vertex code.
type DecodeError struct {
	Var string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("encode: bit pattern of %q matches no vertex code", e.Var)
}

// An Encoding owns the code table of one graph under one scheme, and the
// bijection between vertices and the constant symbols denoting them.
type Encoding struct {
	fac    *formula.Factory
	g      *graph.Graph
	scheme Scheme
	prefix string

	codeLen int
	codes   map[int][]bool // vertex -> code
	consts  map[int]int    // vertex -> constant symbol index
	verts   map[int]int    // constant symbol index -> vertex
}

// New builds the code table for g under the given scheme and registers one
// constant symbol <prefix><vertex-id> per vertex in the factory's symbol
// table. The prefix must name a constant: an uppercase letter optionally
// followed by uppercase letters and digits.
func New(fac *formula.Factory, g *graph.Graph, scheme Scheme, prefix string) (*Encoding, error) {
	if err := checkPrefix(prefix); err != nil {
		return nil, err
	}
	enc := &Encoding{
		fac:    fac,
		g:      g,
		scheme: scheme,
		prefix: prefix,
		codes:  make(map[int][]bool, len(g.Vertices)),
		consts: make(map[int]int, len(g.Vertices)),
		verts:  make(map[int]int, len(g.Vertices)),
	}
	switch scheme {
	case Edge:
		enc.codeLen = len(g.Edges)
		for _, v := range g.Vertices {
			code := make([]bool, enc.codeLen)
			for i, e := range g.Edges {
				code[i] = e[0] == v || e[1] == v
			}
			enc.codes[v] = code
		}
	case Clique:
		cover := g.SeparatingECC()
		enc.codeLen = len(cover)
		for _, v := range g.Vertices {
			code := make([]bool, enc.codeLen)
			for i, clique := range cover {
				for _, u := range clique {
					if u == v {
						code[i] = true
						break
					}
				}
			}
			enc.codes[v] = code
		}
		if err := enc.checkSeparation(); err != nil {
			return nil, err
		}
	case Direct:
		enc.codeLen = len(g.Vertices)
		for i, v := range g.Vertices {
			code := make([]bool, enc.codeLen)
			code[i] = true
			enc.codes[v] = code
		}
	case Log:
		enc.codeLen = bitLen(len(g.Vertices) + 1)
		for i, v := range g.Vertices {
			code := make([]bool, enc.codeLen)
			for pos := 0; pos < enc.codeLen; pos++ {
				code[pos] = (i+1)>>pos&1 == 1
			}
			enc.codes[v] = code
		}
	default:
		return nil, fmt.Errorf("encode: unknown scheme %v", scheme)
	}
	for _, v := range g.Vertices {
		c, err := fac.Symbols().LookupIndex(prefix + strconv.Itoa(v))
		if err != nil {
			return nil, err
		}
		enc.consts[v] = c
		enc.verts[c] = v
	}
	return enc, nil
}

func checkPrefix(prefix string) error {
	bad := func(reason string) error {
		return &symbols.NameError{Name: prefix, Reason: reason}
	}
	if prefix == "" {
		return bad("empty constant prefix")
	}
	if prefix[0] < 'A' || prefix[0] > 'Z' {
		return bad("constant prefix must start with an uppercase letter")
	}
	for i := 1; i < len(prefix); i++ {
		c := prefix[i]
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return bad("constant prefix must use uppercase letters and digits")
		}
	}
	return nil
}

func bitLen(n int) int {
	l := 0
	for 1<<l < n {
		l++
	}
	return l
}

func (enc *Encoding) checkSeparation() error {
	seen := make(map[string]int, len(enc.codes))
	for _, v := range enc.g.Vertices {
		k := codeKey(enc.codes[v])
		if u, ok := seen[k]; ok {
			return &graph.GraphError{Msg: fmt.Sprintf("clique encoding cannot separate vertices %d and %d", u, v)}
		}
		seen[k] = v
	}
	return nil
}

func codeKey(code []bool) string {
	b := make([]byte, len(code))
	for i, bit := range code {
		if bit {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// Scheme returns the scheme the code table was built under.
func (enc *Encoding) Scheme() Scheme { return enc.scheme }

// Graph returns the encoded graph.
func (enc *Encoding) Graph() *graph.Graph { return enc.g }

// CodeLength returns the number of bit positions per vertex code.
func (enc *Encoding) CodeLength() int { return enc.codeLen }

// DomainSize returns the number of domain objects, one per vertex.
func (enc *Encoding) DomainSize() int { return len(enc.g.Vertices) }

// Code returns vertex v's code, or nil when v is not a vertex.
func (enc *Encoding) Code(v int) []bool { return enc.codes[v] }

// VertexToObject returns the constant symbol index denoting vertex v.
func (enc *Encoding) VertexToObject(v int) (int, error) {
	c, ok := enc.consts[v]
	if !ok {
		return 0, &graph.GraphError{Msg: fmt.Sprintf("no vertex %d", v)}
	}
	return c, nil
}

// ObjectToVertex returns the vertex denoted by the constant symbol index c.
func (enc *Encoding) ObjectToVertex(c int) (int, error) {
	v, ok := enc.verts[c]
	if !ok {
		name, _ := enc.fac.Symbols().LookupName(c)
		return 0, &symbols.NameError{Name: name, Reason: "not a domain constant"}
	}
	return v, nil
}

// Constants returns the constant symbol indices of all vertices, in vertex
// list order.
func (enc *Encoding) Constants() []int {
	out := make([]int, len(enc.g.Vertices))
	for i, v := range enc.g.Vertices {
		out[i] = enc.consts[v]
	}
	return out
}

// BitVarName returns the name of the Boolean variable realizing bit pos of
// the first-order variable named name. Positions are 0-based internally and
// 1-based in the printed name.
func BitVarName(name string, pos int) string {
	return name + "@" + strconv.Itoa(pos+1)
}

// SplitBitVarName splits a bit variable name back into the first-order
// variable name and the 0-based bit position. ok is false when name carries
// no position suffix.
func SplitBitVarName(name string) (base string, pos int, ok bool) {
	i := strings.IndexByte(name, '@')
	if i < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(name[i+1:])
	if err != nil || n < 1 {
		return "", 0, false
	}
	return name[:i], n - 1, true
}

// BitVar returns the propositional variable realizing bit pos of the
// first-order variable x.
func (enc *Encoding) BitVar(x, pos int) (formula.Formula, error) {
	tab := enc.fac.Symbols()
	if !tab.IsVariable(x) {
		name, _ := tab.LookupName(x)
		return formula.Formula{}, &symbols.NameError{Name: name, Reason: "not a variable symbol"}
	}
	if pos < 0 || pos >= enc.codeLen {
		return formula.Formula{}, &symbols.IndexError{Index: pos}
	}
	name, err := tab.LookupName(x)
	if err != nil {
		return formula.Formula{}, err
	}
	i, err := tab.LookupIndex(BitVarName(name, pos))
	if err != nil {
		return formula.Formula{}, err
	}
	return enc.fac.PropVar(i)
}

// BitVars returns the code-length propositional variables of x, in bit
// position order.
func (enc *Encoding) BitVars(x int) ([]formula.Formula, error) {
	out := make([]formula.Formula, enc.codeLen)
	for pos := range out {
		f, err := enc.BitVar(x, pos)
		if err != nil {
			return nil, err
		}
		out[pos] = f
	}
	return out, nil
}

// DecodeAssignment maps an assignment of bit variables, keyed by
// propositional symbol index, back to vertices. The result maps each
// first-order variable's symbol index to the constant symbol index of the
// vertex its bits spell. Bits absent from the assignment count as false.
func (enc *Encoding) DecodeAssignment(assign map[int]bool) (map[int]int, error) {
	tab := enc.fac.Symbols()
	bits := make(map[string][]bool)
	for i, val := range assign {
		name, err := tab.LookupName(i)
		if err != nil {
			return nil, err
		}
		base, pos, ok := SplitBitVarName(name)
		if !ok || pos >= enc.codeLen {
			continue
		}
		if bits[base] == nil {
			bits[base] = make([]bool, enc.codeLen)
		}
		bits[base][pos] = val
	}
	byCode := make(map[string]int, len(enc.codes))
	for v, code := range enc.codes {
		byCode[codeKey(code)] = v
	}
	out := make(map[int]int, len(bits))
	for base, code := range bits {
		v, ok := byCode[codeKey(code)]
		if !ok {
			return nil, &DecodeError{Var: base}
		}
		x, err := tab.LookupIndex(base)
		if err != nil {
			return nil, err
		}
		out[x] = enc.consts[v]
	}
	return out, nil
}

// EstimateUnfolding returns an upper estimate of the node count of
// Encode(f), saturating at MaxInt64. Each quantifier multiplies its body
// estimate by the number of vertices, which makes nested quantification the
// dominant cost.
func (enc *Encoding) EstimateUnfolding(f formula.Formula) int64 {
	nv := int64(len(enc.g.Vertices))
	var walk func(g formula.Formula) int64
	walk = func(g formula.Formula) int64 {
		switch g.Kind() {
		case formula.KindForAll, formula.KindExists:
			return satMul(nv, satAdd(walk(g.Operand(1)), 1))
		case formula.KindNot:
			return satAdd(walk(g.Operand(1)), 1)
		case formula.KindAnd, formula.KindOr, formula.KindImplies, formula.KindIff:
			return satAdd(satAdd(walk(g.Operand(1)), walk(g.Operand(2))), 1)
		case formula.KindEq, formula.KindEdg, formula.KindLt:
			return int64(enc.codeLen) * 4
		}
		return 1
	}
	return walk(f)
}

func satAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func satMul(a, b int64) int64 {
	if b != 0 && a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}
