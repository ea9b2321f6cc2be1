// Package graph holds the undirected input graphs whose vertices become
// the domain of the first-order variables, together with the edge clique
// cover heuristic used by the clique encoding scheme.
package graph

import "fmt"

// A GraphError reports an input graph violating the structural
// preconditions of the vertex encodings.
type GraphError struct {
	Msg string
}

func (e *GraphError) Error() string { return "graph: " + e.Msg }

func errf(format string, args ...interface{}) *GraphError {
	return &GraphError{Msg: fmt.Sprintf(format, args...)}
}

// A Graph is a validated undirected graph. Vertex and edge order is the
// input order and is significant: vertex codes are derived from it.
type Graph struct {
	Vertices []int
	Edges    [][2]int

	pos map[int]int         // vertex -> position in Vertices
	adj map[int]map[int]bool
}

// New validates the given vertex and edge lists and returns the graph.
// Vertices must be positive and pairwise distinct. Edges must join two
// distinct known vertices and may not repeat, in either orientation.
// At most one vertex may be isolated, and no connected component may be a
// single edge: such graphs admit colliding vertex codes.
func New(vertices []int, edges [][2]int) (*Graph, error) {
	g := &Graph{
		Vertices: append([]int(nil), vertices...),
		Edges:    append([][2]int(nil), edges...),
		pos:      make(map[int]int, len(vertices)),
		adj:      make(map[int]map[int]bool, len(vertices)),
	}
	for i, v := range g.Vertices {
		if v <= 0 {
			return nil, errf("vertex %d is not positive", v)
		}
		if _, ok := g.pos[v]; ok {
			return nil, errf("duplicate vertex %d", v)
		}
		g.pos[v] = i
		g.adj[v] = make(map[int]bool)
	}
	for _, e := range g.Edges {
		u, v := e[0], e[1]
		if u == v {
			return nil, errf("self-loop at vertex %d", u)
		}
		if _, ok := g.pos[u]; !ok {
			return nil, errf("edge {%d, %d} references unknown vertex %d", u, v, u)
		}
		if _, ok := g.pos[v]; !ok {
			return nil, errf("edge {%d, %d} references unknown vertex %d", u, v, v)
		}
		if g.adj[u][v] {
			return nil, errf("duplicate edge {%d, %d}", u, v)
		}
		g.adj[u][v] = true
		g.adj[v][u] = true
	}
	isolated := 0
	for _, v := range g.Vertices {
		switch g.Degree(v) {
		case 0:
			isolated++
		case 1:
			var w int
			for n := range g.adj[v] {
				w = n
			}
			if g.Degree(w) == 1 {
				return nil, errf("isolated edge {%d, %d}", v, w)
			}
		}
	}
	if isolated > 1 {
		return nil, errf("%d isolated vertices, at most one allowed", isolated)
	}
	return g, nil
}

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

// Adjacent reports whether u and v are joined by an edge.
func (g *Graph) Adjacent(u, v int) bool { return g.adj[u][v] }

// HasVertex reports whether v is a vertex of g.
func (g *Graph) HasVertex(v int) bool {
	_, ok := g.pos[v]
	return ok
}

// VertexPos returns v's position in the vertex list, or -1 when v is not a
// vertex of g.
func (g *Graph) VertexPos(v int) int {
	i, ok := g.pos[v]
	if !ok {
		return -1
	}
	return i
}
