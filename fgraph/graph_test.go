package fgraph

import "testing"

func TestAddEdgeIsIdempotent(t *testing.T) {
	g := NewGraph()
	if !g.AddEdge(1, 2) {
		t.Fatal("first insertion of {1,2} must report true")
	}
	if g.AddEdge(1, 2) {
		t.Fatal("re-inserting {1,2} must be a no-op")
	}
	if g.AddEdge(2, 1) {
		t.Fatal("re-inserting the reverse pair must also be a no-op")
	}
	if g.EdgeCount() != 1 {
		t.Fatalf("want 1 edge, got %d", g.EdgeCount())
	}
}

func TestAddEdgeRejectsSelfLoop(t *testing.T) {
	g := NewGraph()
	if g.AddEdge(1, 1) {
		t.Fatal("self-loops must never be inserted")
	}
}

func TestDegreeAndNeighbors(t *testing.T) {
	g := NewGraph()
	g.AddEdge(1, 2)
	g.AddEdge(1, 3)
	if g.Degree(1) != 2 {
		t.Fatalf("want degree 2, got %d", g.Degree(1))
	}
	neighbors := g.Neighbors(1)
	if len(neighbors) != 2 || neighbors[0] != 2 || neighbors[1] != 3 {
		t.Fatalf("unexpected neighbors: %v", neighbors)
	}
}

func TestIsolatedVertexHasZeroDegree(t *testing.T) {
	g := NewGraph()
	g.AddVertex(5)
	if g.Degree(5) != 0 {
		t.Fatal("isolated vertex must have degree 0")
	}
	if g.VertexCount() != 1 {
		t.Fatalf("want 1 vertex, got %d", g.VertexCount())
	}
}
