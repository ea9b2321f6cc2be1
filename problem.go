package main

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/fogsat/fogsat/graph"
)

// A Problem bundles a formula, a graph and the encoding parameters, as
// read from a YAML problem file:
//
//	formula: (~ edg(x1, x2)) & (~ x1 = x2)
//	scheme: edge
//	prefix: V
//	graph:
//	  vertices: [1, 2, 3]
//	  edges: [[1, 2], [2, 3]]
type Problem struct {
	Formula string `yaml:"formula"`
	Scheme  string `yaml:"scheme"`
	Prefix  string `yaml:"prefix"`
	Graph   struct {
		Vertices []int    `yaml:"vertices"`
		Edges    [][2]int `yaml:"edges"`
	} `yaml:"graph"`
}

// LoadProblem reads and validates a YAML problem file. Scheme and prefix
// are optional and default to "edge" and "V".
func LoadProblem(path string) (*Problem, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read problem file: %v", err)
	}
	var pb Problem
	if err := yaml.UnmarshalStrict(content, &pb); err != nil {
		return nil, fmt.Errorf("could not parse problem file %q: %v", path, err)
	}
	if pb.Formula == "" {
		return nil, fmt.Errorf("problem file %q has no formula", path)
	}
	if pb.Scheme == "" {
		pb.Scheme = "edge"
	}
	if pb.Prefix == "" {
		pb.Prefix = "V"
	}
	return &pb, nil
}

// BuildGraph validates the problem's graph section.
func (pb *Problem) BuildGraph() (*graph.Graph, error) {
	return graph.New(pb.Graph.Vertices, pb.Graph.Edges)
}
