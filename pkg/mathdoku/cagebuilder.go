package mathdoku

import "sort"

// unionFind is the standard disjoint-set structure with path compression
// and union by size.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), size: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}

// BuildCages groups the N*N cells into cages by unioning every pair of
// adjacent cells whose shared border is thin. A missing entry in borders
// is treated as thick (defensive), so it never merges cells on its own.
func BuildCages(n int, borders *InternalBorders) []Cage {
	idx := func(r, c int) int { return r*n + c }
	uf := newUnionFind(n * n)

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if c+1 < n && !borders.VThick[r][c+1] {
				uf.union(idx(r, c), idx(r, c+1))
			}
			if r+1 < n && !borders.HThick[r+1][c] {
				uf.union(idx(r, c), idx(r+1, c))
			}
		}
	}

	byRoot := make(map[int][]CellId)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			root := uf.find(idx(r, c))
			byRoot[root] = append(byRoot[root], CellId{R: r, C: c})
		}
	}

	cages := make([]Cage, 0, len(byRoot))
	for _, cells := range byRoot {
		sort.Slice(cells, func(i, j int) bool {
			if cells[i].R != cells[j].R {
				return cells[i].R < cells[j].R
			}
			return cells[i].C < cells[j].C
		})
		cages = append(cages, Cage{Cells: cells})
	}
	// Cage order follows the row-major position of each cage's top-left
	// cell, not union-find's arbitrary root index.
	sort.Slice(cages, func(i, j int) bool {
		a, b := cages[i].Cells[0], cages[j].Cells[0]
		if a.R != b.R {
			return a.R < b.R
		}
		return a.C < b.C
	})
	return cages
}
