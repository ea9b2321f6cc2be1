package formula

import (
	"errors"
	"testing"

	"github.com/fogsat/fogsat/symbols"
)

func TestReadRoundTrip(t *testing.T) {
	inputs := []string{
		"T",
		"F",
		"x = y",
		"x < y",
		"edg(x1, x2)",
		"(~ edg(x, y))",
		"(edg(x, y) & (~ x = y))",
		"((x = y | x < y) -> edg(x, y))",
		"(edg(x, y) <-> edg(y, x))",
		"(! [x] : (? [y] : edg(x, y)))",
		"(edg(x, V3) & (~ x = V3))",
		"((a1 = a2 & a2 = a3) & a3 = a4)",
	}
	for _, balanced := range []bool{false, true} {
		fac := NewFactory(symbols.NewTable())
		fac.Balanced = balanced
		for _, s := range inputs {
			f, err := fac.Read(s)
			if err != nil {
				t.Errorf("balanced=%v: could not parse %q: %v", balanced, s, err)
				continue
			}
			g, err := fac.Read(f.String())
			if err != nil {
				t.Errorf("balanced=%v: could not reparse %q: %v", balanced, f.String(), err)
				continue
			}
			if f != g {
				t.Errorf("balanced=%v: %q did not round-trip: printed as %q", balanced, s, f.String())
			}
		}
	}
}

func TestReadPrecedence(t *testing.T) {
	fac := NewFactory(symbols.NewTable())
	tests := []struct {
		input, explicit string
	}{
		{"x = y & x < y | edg(x, y)", "((x = y & x < y) | edg(x, y))"},
		{"x = y | x < y -> edg(x, y)", "((x = y | x < y) -> edg(x, y))"},
		{"x = y -> x < y <-> edg(x, y)", "((x = y -> x < y) <-> edg(x, y))"},
		{"~ x = y & x < y", "((~ x = y) & x < y)"},
		{"x = y -> x < y -> edg(x, y)", "((x = y -> x < y) -> edg(x, y))"},
		{"! [x] : edg(x, y) & x = y", "((! [x] : edg(x, y)) & x = y)"},
	}
	for _, tt := range tests {
		f, err := fac.Read(tt.input)
		if err != nil {
			t.Errorf("could not parse %q: %v", tt.input, err)
			continue
		}
		g, err := fac.Read(tt.explicit)
		if err != nil {
			t.Errorf("could not parse %q: %v", tt.explicit, err)
			continue
		}
		if f != g {
			t.Errorf("%q parsed as %q, expected %q", tt.input, f.String(), g.String())
		}
	}
}

func TestReadErrors(t *testing.T) {
	fac := NewFactory(symbols.NewTable())
	inputs := []string{
		"",
		"x =",
		"edg(x)",
		"edg(x, y",
		"(x = y",
		"x = y)",
		"x y",
		"x",
		"! x : T",
		"! [x] T",
		"x = y & & x < y",
		"x = y $ x < y",
		"xY = y",   // mixed-case variable
		"Vx = Vy",  // mixed-case constant
		"? [V1] : T", // constant as bound variable
	}
	for _, s := range inputs {
		if _, err := fac.Read(s); err == nil {
			t.Errorf("expected an error parsing %q", s)
		}
	}
}

func TestReadSyntaxErrorOffset(t *testing.T) {
	fac := NewFactory(symbols.NewTable())
	_, err := fac.Read("x = y $ T")
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected a SyntaxError, got %v", err)
	}
	if se.Pos != 6 {
		t.Errorf("expected error at offset 6, got %d", se.Pos)
	}
}

func TestReadProp(t *testing.T) {
	fac := NewFactory(symbols.NewTable())
	f, err := fac.ReadProp("(x@1 & (~ x@2)) | T")
	if err != nil {
		t.Fatalf("could not parse: %v", err)
	}
	if f.Class() != Prop {
		t.Errorf("expected a propositional formula, got %v", f.Class())
	}
	g, err := fac.ReadProp(f.String())
	if err != nil {
		t.Fatalf("could not reparse %q: %v", f.String(), err)
	}
	if f != g {
		t.Errorf("%q did not round-trip", f.String())
	}
	if _, err := fac.ReadProp("? [x] : y"); err == nil {
		t.Error("expected an error on a quantifier in a propositional formula")
	}
	if _, err := fac.ReadProp("edg(x, y)"); err == nil {
		t.Error("expected an error on edg in a propositional formula")
	}
}
