package circuit

import (
	"fmt"
	"sort"
)

// CouplingMap records which ordered qubit pairs admit a two-qubit gate.
type CouplingMap struct {
	n     int
	edges map[[2]int]bool
}

// NewCouplingMap builds a map over n qubits from explicit directed edges.
func NewCouplingMap(n int, edges [][2]int) (*CouplingMap, error) {
	cm := &CouplingMap{n: n, edges: make(map[[2]int]bool, len(edges))}
	for _, e := range edges {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n || e[0] == e[1] {
			return nil, fmt.Errorf("circuit: bad coupling edge %v for %d qubits", e, n)
		}
		cm.edges[e] = true
	}
	return cm, nil
}

// LineMap returns the linear-connectivity map 0-1-2-...-(n-1). With
// bidirectional set, both directions of every edge are present.
func LineMap(n int, bidirectional bool) *CouplingMap {
	edges := make(map[[2]int]bool, 2*n)
	for i := 0; i < n-1; i++ {
		edges[[2]int{i, i + 1}] = true
		if bidirectional {
			edges[[2]int{i + 1, i}] = true
		}
	}
	return &CouplingMap{n: n, edges: edges}
}

// Size returns the number of qubits the map covers.
func (cm *CouplingMap) Size() int { return cm.n }

// Allows reports whether a two-qubit gate may act on (a, b) directly.
func (cm *CouplingMap) Allows(a, b int) bool {
	return cm.edges[[2]int{a, b}]
}

// Neighbors returns the qubits reachable from q in one hop, ascending.
func (cm *CouplingMap) Neighbors(q int) []int {
	var out []int
	for e := range cm.edges {
		if e[0] == q {
			out = append(out, e[1])
		}
	}
	sort.Ints(out)
	return out
}

// Distance returns the hop count between a and b treating edges as
// undirected, or -1 if no path exists. BFS; maps are small.
func (cm *CouplingMap) Distance(a, b int) int {
	if a == b {
		return 0
	}
	adj := make(map[int][]int, cm.n)
	for e := range cm.edges {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}
	seen := make([]bool, cm.n)
	seen[a] = true
	frontier := []int{a}
	for d := 1; len(frontier) > 0; d++ {
		var next []int
		for _, q := range frontier {
			for _, nb := range adj[q] {
				if seen[nb] {
					continue
				}
				if nb == b {
					return d
				}
				seen[nb] = true
				next = append(next, nb)
			}
		}
		frontier = next
	}
	return -1
}

// Edges returns the directed edge list in deterministic order.
func (cm *CouplingMap) Edges() [][2]int {
	out := make([][2]int, 0, len(cm.edges))
	for e := range cm.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
