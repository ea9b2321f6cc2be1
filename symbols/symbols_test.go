package symbols

import (
	"errors"
	"testing"
)

func TestLookupIndexInterns(t *testing.T) {
	tab := NewTable()
	i, err := tab.LookupIndex("x1")
	if err != nil {
		t.Fatalf("could not register x1: %v", err)
	}
	j, err := tab.LookupIndex("V2")
	if err != nil {
		t.Fatalf("could not register V2: %v", err)
	}
	if i == j {
		t.Errorf("distinct names got the same index %d", i)
	}
	k, err := tab.LookupIndex("x1")
	if err != nil {
		t.Fatalf("second lookup of x1 failed: %v", err)
	}
	if k != i {
		t.Errorf("x1 registered twice: indices %d and %d", i, k)
	}
	name, err := tab.LookupName(i)
	if err != nil {
		t.Fatalf("could not look up name of %d: %v", i, err)
	}
	if name != "x1" {
		t.Errorf("expected name x1 for %d, got %q", i, name)
	}
}

func TestLookupIndexRejects(t *testing.T) {
	tab := NewTable()
	for _, name := range []string{"", "_1", "1x", "@a"} {
		if _, err := tab.LookupIndex(name); err == nil {
			t.Errorf("expected an error registering %q", name)
		} else {
			var ne *NameError
			if !errors.As(err, &ne) {
				t.Errorf("expected a NameError for %q, got %v", name, err)
			}
		}
	}
}

func TestLookupNameUnknown(t *testing.T) {
	tab := NewTable()
	tab.LookupIndex("x")
	for _, idx := range []int{0, -1, 2, 100} {
		if _, err := tab.LookupName(idx); err == nil {
			t.Errorf("expected an error for index %d", idx)
		} else {
			var ie *IndexError
			if !errors.As(err, &ie) {
				t.Errorf("expected an IndexError for %d, got %v", idx, err)
			}
		}
	}
}

func TestKinds(t *testing.T) {
	tab := NewTable()
	v, _ := tab.LookupIndex("x01")
	c, _ := tab.LookupIndex("V01")
	a := tab.NewAuxIndex()
	tests := []struct {
		idx                  int
		variable, constant, aux bool
	}{
		{v, true, false, false},
		{c, false, true, false},
		{a, false, false, true},
		{a + 1, false, false, false}, // unknown index
	}
	for _, tt := range tests {
		if got := tab.IsVariable(tt.idx); got != tt.variable {
			t.Errorf("IsVariable(%d) = %v, expected %v", tt.idx, got, tt.variable)
		}
		if got := tab.IsConstant(tt.idx); got != tt.constant {
			t.Errorf("IsConstant(%d) = %v, expected %v", tt.idx, got, tt.constant)
		}
		if got := tab.IsAuxiliary(tt.idx); got != tt.aux {
			t.Errorf("IsAuxiliary(%d) = %v, expected %v", tt.idx, got, tt.aux)
		}
	}
}

func TestAuxRoundTrip(t *testing.T) {
	tab := NewTable()
	a := tab.NewAuxIndex()
	b := tab.NewAuxIndex()
	if a == b {
		t.Fatalf("two auxiliary indices are equal: %d", a)
	}
	name, err := tab.LookupName(a)
	if err != nil {
		t.Fatalf("could not look up auxiliary name: %v", err)
	}
	// a minted auxiliary name may be looked up again, a fresh one may not
	if _, err := tab.LookupIndex(name); err != nil {
		t.Errorf("could not look up registered auxiliary %q: %v", name, err)
	}
	if _, err := tab.LookupIndex("_99999"); err == nil {
		t.Error("expected an error registering a reserved name")
	}
}

func TestClear(t *testing.T) {
	tab := NewTable()
	i, _ := tab.LookupIndex("x")
	tab.NewAuxIndex()
	tab.Clear()
	if tab.HasName(i) {
		t.Error("index survived Clear")
	}
	if tab.HasIndex("x") {
		t.Error("name survived Clear")
	}
	j, _ := tab.LookupIndex("y")
	if j != 1 {
		t.Errorf("expected indices to restart at 1 after Clear, got %d", j)
	}
}
