package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fogsat/fogsat/cnf"
	"github.com/fogsat/fogsat/encode"
	"github.com/fogsat/fogsat/formula"
	"github.com/fogsat/fogsat/graph"
	"github.com/fogsat/fogsat/symbols"
)

var (
	problemPath string
	graphPath   string
	formulaStr  string
	schemeName  string
	prefix      string
	outputPath  string
	solverName  string
	balanced    bool
	verbose     bool
	enumerate   bool
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fogsat",
		Short: "encode first-order graph formulas into SAT",
		Long: `fogsat translates formulas of the first-order logic of graphs into
propositional CNF, by coding each vertex as a bit vector and eliminating
quantifiers over the finite vertex domain.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&problemPath, "problem", "p", "", "YAML problem file bundling formula, graph and encoding parameters")
	pf.StringVarP(&graphPath, "graph", "g", "", "graph file in DIMACS edge format")
	pf.StringVarP(&formulaStr, "formula", "f", "", "formula to encode")
	pf.StringVarP(&schemeName, "scheme", "s", "edge", "vertex coding scheme: edge, clique, direct or log")
	pf.StringVar(&prefix, "prefix", "V", "name prefix of the vertex constants")
	pf.BoolVar(&balanced, "balanced", false, "group operator chains by bisection instead of a left fold")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log encoding details")

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "write the CNF encoding of the formula",
		RunE: func(cmd *cobra.Command, args []string) error {
			pl, err := buildPipeline()
			if err != nil {
				return err
			}
			out := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("could not create output file: %v", err)
				}
				defer f.Close()
				out = f
			}
			return pl.cnf.Write(out)
		},
	}
	encodeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve the encoded formula and print a vertex assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			pl, err := buildPipeline()
			if err != nil {
				return err
			}
			return pl.solve()
		},
	}
	solveCmd.Flags().StringVar(&solverName, "solver", "gophersat", "SAT backend: gophersat or gini")
	solveCmd.Flags().BoolVarP(&enumerate, "all", "a", false, "enumerate every satisfying vertex assignment")

	countCmd := &cobra.Command{
		Use:   "count",
		Short: "count the satisfying assignments of the encoded formula",
		RunE: func(cmd *cobra.Command, args []string) error {
			pl, err := buildPipeline()
			if err != nil {
				return err
			}
			n, err := countModels(pl.cnf.Clauses(), pl.cnf.NVars())
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
	countCmd.Flags().StringVar(&solverName, "solver", "gophersat", "SAT backend: gophersat or gini")

	root.AddCommand(encodeCmd, solveCmd, countCmd)
	return root
}

type pipeline struct {
	fac  *formula.Factory
	enc  *encode.Encoding
	cnf  *cnf.Cnf
	free []int
}

// scale above which the quantifier unfolding estimate triggers a warning
const unfoldingWarnThreshold = 10_000_000

func buildPipeline() (*pipeline, error) {
	src := formulaStr
	scheme := schemeName
	pfx := prefix
	var g *graph.Graph
	var err error
	if problemPath != "" {
		pb, err := LoadProblem(problemPath)
		if err != nil {
			return nil, err
		}
		if src == "" {
			src = pb.Formula
		}
		scheme = pb.Scheme
		pfx = pb.Prefix
		g, err = pb.BuildGraph()
		if err != nil {
			return nil, err
		}
	}
	if graphPath != "" {
		f, err := os.Open(graphPath)
		if err != nil {
			return nil, fmt.Errorf("could not open graph file: %v", err)
		}
		g, err = graph.ParseDIMACS(f)
		f.Close()
		if err != nil {
			return nil, err
		}
	}
	if g == nil {
		return nil, fmt.Errorf("no graph given: use --graph or --problem")
	}
	if src == "" {
		return nil, fmt.Errorf("no formula given: use --formula or --problem")
	}
	sc, err := encode.ParseScheme(scheme)
	if err != nil {
		return nil, err
	}
	fac := formula.NewFactory(symbols.NewTable())
	fac.Balanced = balanced
	f, err := fac.Read(src)
	if err != nil {
		return nil, err
	}
	enc, err := encode.New(fac, g, sc, pfx)
	if err != nil {
		return nil, err
	}
	if est := enc.EstimateUnfolding(f); est > unfoldingWarnThreshold {
		logrus.WithFields(logrus.Fields{
			"estimate": est,
			"vertices": len(g.Vertices),
		}).Warn("quantifier unfolding may be infeasible at this scale")
	}
	free := fac.FreeVars(f)
	logrus.WithFields(logrus.Fields{
		"scheme":   sc.String(),
		"codeLen":  enc.CodeLength(),
		"freeVars": len(free),
	}).Debug("built domain encoding")
	goal, err := enc.Encode(f)
	if err != nil {
		return nil, err
	}
	fs := []formula.Formula{goal}
	for _, v := range free {
		dc, err := enc.DomainConstraint(v)
		if err != nil {
			return nil, err
		}
		fs = append(fs, dc)
	}
	c, err := cnf.New(fac, enc, fs)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"vars":    c.NVars(),
		"clauses": c.NCls(),
	}).Debug("built CNF")
	return &pipeline{fac: fac, enc: enc, cnf: c, free: free}, nil
}

func (pl *pipeline) solve() error {
	clauses := pl.cnf.Clauses()
	nv := pl.cnf.NVars()
	if enumerate {
		found := 0
		for {
			sat, model, err := solveOnce(clauses, nv)
			if err != nil {
				return err
			}
			if !sat {
				break
			}
			found++
			if err := pl.printModel(model); err != nil {
				return err
			}
			blocking := make([]int, len(model))
			for i, l := range model {
				blocking[i] = -l
			}
			clauses = append(clauses, blocking)
		}
		if found == 0 {
			fmt.Println(color.RedString("UNSATISFIABLE"))
			return nil
		}
		fmt.Printf("%s: %d assignments\n", color.GreenString("SATISFIABLE"), found)
		return nil
	}
	sat, model, err := solveOnce(clauses, nv)
	if err != nil {
		return err
	}
	if !sat {
		fmt.Println(color.RedString("UNSATISFIABLE"))
		return nil
	}
	fmt.Println(color.GreenString("SATISFIABLE"))
	return pl.printModel(model)
}

// printModel decodes a model, given as external literals, down to vertices
// and prints one "var = constant" line per free variable.
func (pl *pipeline) printModel(model []int) error {
	internal, err := pl.cnf.DecodeAssignment(model)
	if err != nil {
		return err
	}
	assign := make(map[int]bool, len(internal))
	for _, l := range internal {
		if l < 0 {
			assign[-l] = false
		} else {
			assign[l] = true
		}
	}
	vertices, err := pl.enc.DecodeAssignment(assign)
	if err != nil {
		return err
	}
	tab := pl.fac.Symbols()
	type binding struct{ v, c string }
	var bindings []binding
	for v, c := range vertices {
		vn, err := tab.LookupName(v)
		if err != nil {
			return err
		}
		cn, err := tab.LookupName(c)
		if err != nil {
			return err
		}
		bindings = append(bindings, binding{vn, cn})
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].v < bindings[j].v })
	for _, b := range bindings {
		fmt.Printf("%s = %s\n", b.v, b.c)
	}
	return nil
}
