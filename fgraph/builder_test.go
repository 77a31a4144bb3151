package fgraph

import "testing"

func TestBuildCGConnectsSharedVariables(t *testing.T) {
	conVars := map[int][]int{
		0: {1, 2},
		1: {2, 3},
		2: {9, 10},
	}
	cg := BuildCG(conVars)
	if !cg.HasEdge(0, 1) {
		t.Fatal("constraints 0 and 1 share variable 2, must be connected")
	}
	if cg.HasEdge(0, 2) || cg.HasEdge(1, 2) {
		t.Fatal("constraint 2 shares no variable with 0 or 1")
	}
	if cg.VertexCount() != 3 {
		t.Fatalf("want 3 constraint vertices, got %d", cg.VertexCount())
	}
}

func TestBuildCGIsolatedConstraintHasNoEdges(t *testing.T) {
	conVars := map[int][]int{
		0: {1},
		1: {2},
	}
	cg := BuildCG(conVars)
	if cg.EdgeCount() != 0 {
		t.Fatal("constraints referencing disjoint variables must not be connected")
	}
}

func TestDisjoint(t *testing.T) {
	if !disjoint([]int{1, 2}, []int{3, 4}) {
		t.Fatal("disjoint ranges must be reported disjoint")
	}
	if disjoint([]int{1, 2, 5}, []int{5, 6}) {
		t.Fatal("overlapping sets sharing 5 must not be reported disjoint")
	}
	if !disjoint(nil, []int{1}) {
		t.Fatal("an empty set is disjoint from anything")
	}
}
