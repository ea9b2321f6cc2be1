package formula

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fogsat/fogsat/symbols"
)

func names(fac *Factory, indices []int) []string {
	if len(indices) == 0 {
		return nil
	}
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i], _ = fac.syms.LookupName(idx)
	}
	return out
}

func TestFreeVars(t *testing.T) {
	tests := []struct {
		input      string
		vars       []string
		varsConsts []string
	}{
		{"T", nil, nil},
		{"edg(x, y)", []string{"x", "y"}, []string{"x", "y"}},
		{"edg(y, x) & x = z", []string{"x", "y", "z"}, []string{"x", "y", "z"}},
		{"x = V1 & edg(V2, y)", []string{"x", "y"}, []string{"V1", "x", "V2", "y"}},
		{"? [x] : edg(x, y)", []string{"y"}, []string{"y"}},
		{"edg(x, y) & (? [x] : x = z)", []string{"x", "y", "z"}, []string{"x", "y", "z"}},
		{"! [x] : (? [y] : edg(x, y))", nil, nil},
	}
	fac := NewFactory(symbols.NewTable())
	for _, tt := range tests {
		f, err := fac.Read(tt.input)
		if err != nil {
			t.Fatalf("could not parse %q: %v", tt.input, err)
		}
		if diff := cmp.Diff(tt.vars, names(fac, fac.FreeVars(f))); diff != "" {
			t.Errorf("FreeVars(%q) mismatch (-expected +got):\n%s", tt.input, diff)
		}
		if diff := cmp.Diff(tt.varsConsts, names(fac, fac.FreeVarsAndConsts(f))); diff != "" {
			t.Errorf("FreeVarsAndConsts(%q) mismatch (-expected +got):\n%s", tt.input, diff)
		}
	}
}

func TestFreeVarsOrderIsNotSorted(t *testing.T) {
	// edg(y, x) normalizes to edg(x, y), so x comes first even though y
	// was written first, while z = w keeps its textual order
	fac := NewFactory(symbols.NewTable())
	f, err := fac.Read("edg(y, x) & z = w")
	if err != nil {
		t.Fatal(err)
	}
	got := names(fac, fac.FreeVars(f))
	expected := []string{"x", "y", "w", "z"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("FreeVars mismatch (-expected +got):\n%s", diff)
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		input, expected string
	}{
		{"edg(x, y)", "edg(V1, y)"},
		{"x = x", "V1 = V1"},
		{"edg(y, z)", "edg(y, z)"},
		{"? [y] : edg(x, y)", "? [y] : edg(V1, y)"},
		// the inner binder shadows x
		{"edg(x, y) & (? [x] : edg(x, y))", "edg(V1, y) & (? [x] : edg(x, y))"},
		{"! [x] : edg(x, y)", "! [x] : edg(x, y)"},
	}
	fac := NewFactory(symbols.NewTable())
	x, _ := fac.syms.LookupIndex("x")
	v1, _ := fac.syms.LookupIndex("V1")
	for _, tt := range tests {
		f, err := fac.Read(tt.input)
		if err != nil {
			t.Fatalf("could not parse %q: %v", tt.input, err)
		}
		expected, err := fac.Read(tt.expected)
		if err != nil {
			t.Fatalf("could not parse %q: %v", tt.expected, err)
		}
		got, err := fac.Substitute(f, x, v1)
		if err != nil {
			t.Fatalf("could not substitute in %q: %v", tt.input, err)
		}
		if got != expected {
			t.Errorf("Substitute(%q, x, V1) = %q, expected %q", tt.input, got.String(), tt.expected)
		}
	}
	if _, err := fac.Substitute(fac.TrueConst(Fog), v1, x); err == nil {
		t.Error("expected an error substituting for a constant")
	}
}

func TestEval(t *testing.T) {
	fac := NewFactory(symbols.NewTable())
	a, _ := fac.syms.LookupIndex("a")
	b, _ := fac.syms.LookupIndex("b")
	f, err := fac.ReadProp("(a -> b) & (a | b) & (~ (a <-> b))")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		va, vb   bool
		expected bool
	}{
		{false, false, false},
		{false, true, true},
		{true, false, false},
		{true, true, false},
	}
	for _, tt := range tests {
		got, err := fac.Eval(f, map[int]bool{a: tt.va, b: tt.vb})
		if err != nil {
			t.Fatalf("could not evaluate: %v", err)
		}
		if got != tt.expected {
			t.Errorf("Eval(a=%v, b=%v) = %v, expected %v", tt.va, tt.vb, got, tt.expected)
		}
	}
	if _, err := fac.Eval(f, map[int]bool{a: true}); err == nil {
		t.Error("expected an error on an unassigned variable")
	}
	g, _ := fac.Read("x = y")
	if _, err := fac.Eval(g, nil); err == nil {
		t.Error("expected an error evaluating a first-order formula")
	}
}
