package graph

// ComputeECC returns a deterministic greedy edge clique cover of g: a list
// of cliques, as vertex slices, such that every edge lies inside at least
// one clique. The heuristic repeatedly seeds a clique with the first edge
// not yet covered, in input edge order, and grows it with the vertex
// adjacent to all current members that covers the most additional edges,
// breaking ties by lowest vertex id. No minimality is attempted.
func (g *Graph) ComputeECC() [][]int {
	covered := make(map[[2]int]bool, len(g.Edges))
	key := func(u, v int) [2]int {
		if u > v {
			u, v = v, u
		}
		return [2]int{u, v}
	}
	var cover [][]int
	for _, e := range g.Edges {
		if covered[key(e[0], e[1])] {
			continue
		}
		clique := []int{e[0], e[1]}
		in := map[int]bool{e[0]: true, e[1]: true}
		for {
			best, bestGain := 0, -1
			for _, w := range g.Vertices {
				if in[w] || !g.adjacentToAll(w, clique) {
					continue
				}
				gain := 0
				for _, u := range clique {
					if !covered[key(u, w)] {
						gain++
					}
				}
				if gain > bestGain || gain == bestGain && w < best {
					best, bestGain = w, gain
				}
			}
			if bestGain < 0 {
				break
			}
			clique = append(clique, best)
			in[best] = true
		}
		for i, u := range clique {
			for _, v := range clique[i+1:] {
				covered[key(u, v)] = true
			}
		}
		cover = append(cover, clique)
	}
	return cover
}

func (g *Graph) adjacentToAll(w int, clique []int) bool {
	for _, u := range clique {
		if !g.Adjacent(u, w) {
			return false
		}
	}
	return true
}

// SeparatingECC extends ComputeECC's cover until the vertex-by-clique
// incidence codes are pairwise distinct. Vertices of degree at most one,
// and any vertices that still share a code, each get a singleton clique;
// the first vertex of each colliding group, in vertex order, keeps its
// original code.
func (g *Graph) SeparatingECC() [][]int {
	cover := g.ComputeECC()
	member := make([]map[int]bool, len(cover))
	for i, c := range cover {
		member[i] = make(map[int]bool, len(c))
		for _, v := range c {
			member[i][v] = true
		}
	}
	code := func(v int) string {
		b := make([]byte, len(member))
		for i := range member {
			if member[i][v] {
				b[i] = '1'
			} else {
				b[i] = '0'
			}
		}
		return string(b)
	}
	seen := make(map[string]bool, len(g.Vertices))
	for _, v := range g.Vertices {
		c := code(v)
		if g.Degree(v) <= 1 || seen[c] {
			cover = append(cover, []int{v})
			continue
		}
		seen[c] = true
	}
	return cover
}
