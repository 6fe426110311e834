package catchment

import "sort"

// IndexSet is a set of circle indices forming one connected overlap
// cluster.
type IndexSet map[int]bool

// Indices returns the members in ascending order.
func (s IndexSet) Indices() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Group partitions the circles into maximal clusters of transitive overlap:
// indices i and j share a cluster exactly when they are connected by a
// chain of pairwise-overlapping circles. Circles overlapping nothing form
// singleton clusters, so the result is a full partition of the input.
//
// Clusters are returned ordered by their smallest member index.
func Group(circles []Circle) []IndexSet {
	var groups []IndexSet

	for i := 0; i < len(circles); i++ {
		for j := i + 1; j < len(circles); j++ {
			if !Classify(circles[i], circles[j]).Overlaps() {
				continue
			}

			gi, gj := -1, -1
			for gidx, g := range groups {
				if g[i] {
					gi = gidx
				}
				if g[j] {
					gj = gidx
				}
			}

			switch {
			case gi < 0 && gj < 0:
				groups = append(groups, IndexSet{i: true, j: true})
			case gi >= 0 && gj < 0:
				groups[gi][j] = true
			case gi < 0 && gj >= 0:
				groups[gj][i] = true
			case gi != gj:
				// The pair bridges two existing clusters; merge them.
				for k := range groups[gj] {
					groups[gi][k] = true
				}
				groups = append(groups[:gj], groups[gj+1:]...)
			}
		}
	}

	// Untouched circles become singletons so the clusters partition the
	// whole input.
	for i := range circles {
		seen := false
		for _, g := range groups {
			if g[i] {
				seen = true
				break
			}
		}
		if !seen {
			groups = append(groups, IndexSet{i: true})
		}
	}

	sort.Slice(groups, func(a, b int) bool {
		return groups[a].Indices()[0] < groups[b].Indices()[0]
	})
	return groups
}
