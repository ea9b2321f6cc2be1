package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseDIMACS reads a graph in the DIMACS edge format: an optional run of
// "c" comment lines, a "p edge <nvertices> <nedges>" problem line, then one
// "e <u> <v>" line per edge. Vertices are 1..nvertices.
func ParseDIMACS(r io.Reader) (*Graph, error) {
	sc := bufio.NewScanner(r)
	nbVertices, nbEdges := -1, -1
	var edges [][2]int
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] == "c" {
			continue
		}
		switch fields[0] {
		case "p":
			if nbVertices >= 0 {
				return nil, fmt.Errorf("line %d: second problem line", line)
			}
			if len(fields) != 4 || fields[1] != "edge" {
				return nil, fmt.Errorf("line %d: expected \"p edge <n> <m>\", got %q", line, sc.Text())
			}
			var err error
			if nbVertices, err = strconv.Atoi(fields[2]); err != nil {
				return nil, fmt.Errorf("line %d: could not parse vertex count: %v", line, err)
			}
			if nbEdges, err = strconv.Atoi(fields[3]); err != nil {
				return nil, fmt.Errorf("line %d: could not parse edge count: %v", line, err)
			}
		case "e":
			if nbVertices < 0 {
				return nil, fmt.Errorf("line %d: edge before problem line", line)
			}
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: expected \"e <u> <v>\", got %q", line, sc.Text())
			}
			u, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: could not parse vertex: %v", line, err)
			}
			v, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: could not parse vertex: %v", line, err)
			}
			edges = append(edges, [2]int{u, v})
		default:
			return nil, fmt.Errorf("line %d: unexpected line %q", line, sc.Text())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read graph: %v", err)
	}
	if nbVertices < 0 {
		return nil, fmt.Errorf("missing problem line")
	}
	if len(edges) != nbEdges {
		return nil, fmt.Errorf("problem line announced %d edges, found %d", nbEdges, len(edges))
	}
	vertices := make([]int, nbVertices)
	for i := range vertices {
		vertices[i] = i + 1
	}
	return New(vertices, edges)
}
