package cnf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fogsat/fogsat/formula"
	"github.com/fogsat/fogsat/symbols"
)

func mustProp(t *testing.T, fac *formula.Factory, src string) formula.Formula {
	t.Helper()
	f, err := fac.ReadProp(src)
	if err != nil {
		t.Fatalf("could not parse %q: %v", src, err)
	}
	return f
}

func TestAndClauses(t *testing.T) {
	fac := formula.NewFactory(symbols.NewTable())
	f := mustProp(t, fac, "a & b")
	c, err := New(fac, nil, []formula.Formula{f})
	if err != nil {
		t.Fatal(err)
	}
	if c.Base() != 2 {
		t.Errorf("base = %d, expected 2", c.Base())
	}
	if c.NVars() != 3 {
		t.Errorf("NVars = %d, expected 3", c.NVars())
	}
	expected := [][]int{{-3, 1}, {-3, 2}, {3, -1, -2}, {3}}
	if diff := cmp.Diff(expected, c.Clauses()); diff != "" {
		t.Errorf("clauses mismatch (-expected +got):\n%s", diff)
	}
}

func TestConnectiveClauseCounts(t *testing.T) {
	tests := []struct {
		src   string
		ncls  int
		nvars int
	}{
		{"a", 1, 1},             // unit clause, no auxiliary
		{"(~ a)", 1, 1},         // negative unit clause
		{"a & b", 4, 3},
		{"a | b", 4, 3},
		{"a -> b", 4, 3},
		{"a <-> b", 5, 3},
		{"(~ (a & b))", 6, 4},   // aux for the conjunction and for its negation
	}
	for _, tt := range tests {
		fac := formula.NewFactory(symbols.NewTable())
		f := mustProp(t, fac, tt.src)
		c, err := New(fac, nil, []formula.Formula{f})
		if err != nil {
			t.Fatal(err)
		}
		if c.NCls() != tt.ncls {
			t.Errorf("%q: NCls = %d, expected %d", tt.src, c.NCls(), tt.ncls)
		}
		if c.NVars() != tt.nvars {
			t.Errorf("%q: NVars = %d, expected %d", tt.src, c.NVars(), tt.nvars)
		}
	}
}

func TestSharedSubformulaTransformedOnce(t *testing.T) {
	fac := formula.NewFactory(symbols.NewTable())
	// both conjuncts contain the same a | b node
	f := mustProp(t, fac, "(a | b) & (~ (a | b))")
	c, err := New(fac, nil, []formula.Formula{f})
	if err != nil {
		t.Fatal(err)
	}
	// a, b, aux(or), aux(not), aux(and): a second transform of the
	// disjunction would add a sixth variable
	if c.NVars() != 5 {
		t.Errorf("NVars = %d, expected 5", c.NVars())
	}
}

func TestConstantFormulas(t *testing.T) {
	fac := formula.NewFactory(symbols.NewTable())
	c, err := New(fac, nil, []formula.Formula{fac.TrueConst(formula.Prop)})
	if err != nil {
		t.Fatal(err)
	}
	if c.NCls() != 0 || c.NVars() != 0 {
		t.Errorf("T yielded %d clauses over %d vars, expected none", c.NCls(), c.NVars())
	}
	c, err = New(fac, nil, []formula.Formula{fac.FalseConst(formula.Prop)})
	if err != nil {
		t.Fatal(err)
	}
	if c.NCls() != 1 || len(c.Clause(0)) != 0 {
		t.Error("F should yield exactly the empty clause")
	}
	// reduction runs first, so a & T is just the literal a
	c, err = New(fac, nil, []formula.Formula{mustProp(t, fac, "a & T")})
	if err != nil {
		t.Fatal(err)
	}
	if c.NCls() != 1 || c.NVars() != 1 {
		t.Errorf("a & T yielded %d clauses over %d vars, expected a single unit", c.NCls(), c.NVars())
	}
}

func TestExternalMappingOrder(t *testing.T) {
	fac := formula.NewFactory(symbols.NewTable())
	tab := fac.Symbols()
	// register symbols out of clause order: d gets a lower index than the
	// unused b, which must not get an external number
	for _, n := range []string{"d", "b", "a", "c"} {
		tab.LookupIndex(n)
	}
	f := mustProp(t, fac, "c & (a | d)")
	c, err := New(fac, nil, []formula.Formula{f})
	if err != nil {
		t.Fatal(err)
	}
	d, _ := tab.LookupIndex("d")
	a, _ := tab.LookupIndex("a")
	cc, _ := tab.LookupIndex("c")
	// internal order d=1 < a=3 < c=4 must carry over to external 1, 2, 3
	for i, internal := range []int{d, a, cc} {
		got, err := c.DecodeLit(i + 1)
		if err != nil {
			t.Fatal(err)
		}
		if got != internal {
			t.Errorf("external %d decodes to %d, expected %d", i+1, got, internal)
		}
	}
	// the two auxiliaries fill the block 4..5
	if c.NVars() != 5 {
		t.Fatalf("NVars = %d, expected 5", c.NVars())
	}
	for e := 4; e <= 5; e++ {
		got, err := c.DecodeLit(e)
		if err != nil {
			t.Fatal(err)
		}
		if got != 0 {
			t.Errorf("auxiliary external %d decodes to %d, expected 0", e, got)
		}
	}
}

func TestDecodeAssignment(t *testing.T) {
	fac := formula.NewFactory(symbols.NewTable())
	tab := fac.Symbols()
	a, _ := tab.LookupIndex("a")
	b, _ := tab.LookupIndex("b")
	f := mustProp(t, fac, "a & (~ b)")
	c, err := New(fac, nil, []formula.Formula{f})
	if err != nil {
		t.Fatal(err)
	}
	lits, err := c.DecodeAssignment([]int{1, -2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{a, -b}, lits); diff != "" {
		t.Errorf("decoded literals mismatch (-expected +got):\n%s", diff)
	}
	if _, err := c.DecodeAssignment([]int{c.NVars() + 1}); err == nil {
		t.Error("expected an error past the external range")
	}
	var ie *IndexError
	_, err = c.DecodeLit(0)
	if !errors.As(err, &ie) {
		t.Errorf("expected an IndexError, got %v", err)
	}
}

func TestRejectsFirstOrder(t *testing.T) {
	fac := formula.NewFactory(symbols.NewTable())
	f, err := fac.Read("edg(x, y)")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(fac, nil, []formula.Formula{f}); err == nil {
		t.Error("expected an error on a first-order input")
	}
}

func TestWrite(t *testing.T) {
	fac := formula.NewFactory(symbols.NewTable())
	f := mustProp(t, fac, "a & b")
	c, err := New(fac, nil, []formula.Formula{f})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		t.Fatal(err)
	}
	expected := "p cnf 3 4\n-3 1 0\n-3 2 0\n3 -1 -2 0\n3 0\n"
	if buf.String() != expected {
		t.Errorf("DIMACS output mismatch:\n got: %q\nwant: %q", buf.String(), expected)
	}
}
