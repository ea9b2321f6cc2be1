package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// two triangles sharing vertex 3, plus a pendant vertex 6
func coverTestGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := New(
		[]int{1, 2, 3, 4, 5, 6},
		[][2]int{{1, 2}, {1, 3}, {2, 3}, {3, 4}, {3, 5}, {4, 5}, {5, 6}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestComputeECCCovers(t *testing.T) {
	g := coverTestGraph(t)
	cover := g.ComputeECC()
	for _, clique := range cover {
		for i, u := range clique {
			for _, v := range clique[i+1:] {
				if !g.Adjacent(u, v) {
					t.Errorf("clique %v contains non-adjacent %d and %d", clique, u, v)
				}
			}
		}
	}
	for _, e := range g.Edges {
		found := false
		for _, clique := range cover {
			in := func(x int) bool {
				for _, u := range clique {
					if u == x {
						return true
					}
				}
				return false
			}
			if in(e[0]) && in(e[1]) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("edge {%d, %d} not covered by %v", e[0], e[1], cover)
		}
	}
}

func TestComputeECCDeterministic(t *testing.T) {
	g := coverTestGraph(t)
	first := g.ComputeECC()
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, g.ComputeECC()); diff != "" {
			t.Fatalf("cover changed between runs (-first +now):\n%s", diff)
		}
	}
	// the greedy run on the two-triangle graph is fully predictable:
	// both triangles are found, then the pendant edge
	expected := [][]int{{1, 2, 3}, {3, 4, 5}, {5, 6}}
	if diff := cmp.Diff(expected, first); diff != "" {
		t.Errorf("cover mismatch (-expected +got):\n%s", diff)
	}
}

func TestSeparatingECC(t *testing.T) {
	g := coverTestGraph(t)
	cover := g.SeparatingECC()
	codes := make(map[string]int)
	for _, v := range g.Vertices {
		code := make([]byte, len(cover))
		for i, clique := range cover {
			code[i] = '0'
			for _, u := range clique {
				if u == v {
					code[i] = '1'
					break
				}
			}
		}
		if u, ok := codes[string(code)]; ok {
			t.Errorf("vertices %d and %d share code %s", u, v, code)
		}
		codes[string(code)] = v
	}
}

func TestSeparatingECCIsolatedVertex(t *testing.T) {
	g, err := New([]int{1, 2, 3, 4}, [][2]int{{1, 2}, {2, 3}, {1, 3}})
	if err != nil {
		t.Fatal(err)
	}
	cover := g.SeparatingECC()
	// vertex 4 is isolated and must appear as a singleton role
	found := false
	for _, clique := range cover {
		if len(clique) == 1 && clique[0] == 4 {
			found = true
		}
	}
	if !found {
		t.Errorf("isolated vertex 4 has no singleton clique in %v", cover)
	}
}
