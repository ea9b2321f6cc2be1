package main

import (
	"fmt"

	"github.com/crillab/gophersat/solver"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// solveOnce runs the selected SAT backend on the clause set and returns the
// model as external literals, one per variable 1..nvars.
func solveOnce(clauses [][]int, nvars int) (bool, []int, error) {
	switch solverName {
	case "gophersat":
		return solveGophersat(clauses, nvars)
	case "gini":
		return solveGini(clauses, nvars)
	}
	return false, nil, fmt.Errorf("unknown solver %q", solverName)
}

func solveGophersat(clauses [][]int, nvars int) (bool, []int, error) {
	s := solver.New(solver.ParseSlice(clauses))
	if s.Solve() != solver.Sat {
		return false, nil, nil
	}
	model := s.Model()
	lits := make([]int, 0, nvars)
	for v := 1; v <= nvars; v++ {
		if v <= len(model) && model[v-1] {
			lits = append(lits, v)
		} else {
			lits = append(lits, -v)
		}
	}
	return true, lits, nil
}

func solveGini(clauses [][]int, nvars int) (bool, []int, error) {
	g := gini.New()
	for _, cl := range clauses {
		for _, l := range cl {
			g.Add(z.Dimacs2Lit(l))
		}
		g.Add(0)
	}
	if g.Solve() != 1 {
		return false, nil, nil
	}
	lits := make([]int, 0, nvars)
	for v := 1; v <= nvars; v++ {
		if g.Value(z.Dimacs2Lit(v)) {
			lits = append(lits, v)
		} else {
			lits = append(lits, -v)
		}
	}
	return true, lits, nil
}

// countModels counts satisfying assignments. The gophersat backend counts
// natively; gini iterates with blocking clauses.
func countModels(clauses [][]int, nvars int) (int, error) {
	switch solverName {
	case "gophersat":
		s := solver.New(solver.ParseSlice(clauses))
		return s.CountModels(), nil
	case "gini":
		n := 0
		for {
			sat, model, err := solveGini(clauses, nvars)
			if err != nil {
				return 0, err
			}
			if !sat {
				return n, nil
			}
			n++
			blocking := make([]int, len(model))
			for i, l := range model {
				blocking[i] = -l
			}
			clauses = append(clauses, blocking)
		}
	}
	return 0, fmt.Errorf("unknown solver %q", solverName)
}
