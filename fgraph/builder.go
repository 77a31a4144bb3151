package fgraph

import "sort"

// BuildCG constructs the constraint graph from a map of constraint id to
// the sorted, de-duplicated list of variable ids it references (spec
// §4.3 step 6, §4.6). An edge is added between ci and cj whenever their
// variable sets are not disjoint.
//
// Disjointness is tested on sorted integer sets with a two-pointer
// merge, short-circuited by comparing extremes — the cheapest possible
// reject for constraints whose ranges don't overlap at all, before
// paying for the full merge walk.
func BuildCG(conVars map[int][]int) *Graph {
	cg := NewGraph()
	ids := make([]int, 0, len(conVars))
	for cid := range conVars {
		ids = append(ids, cid)
		cg.AddVertex(cid)
	}
	sort.Ints(ids)

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := conVars[ids[i]], conVars[ids[j]]
			if !disjoint(a, b) {
				cg.AddEdge(ids[i], ids[j])
			}
		}
	}
	return cg
}

// disjoint reports whether two sorted integer slices share no element.
// Extremes are compared first: if a's range and b's range don't overlap
// at all, the sets cannot intersect and the merge walk is skipped
// entirely.
func disjoint(a, b []int) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	if a[len(a)-1] < b[0] || b[len(b)-1] < a[0] {
		return true
	}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return false
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return true
}
