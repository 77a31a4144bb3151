// Package fgraph builds and analyses the two derived graphs of spec §2/§4.3/§4.6:
// the variable graph (VG, vertices = non-assigned variables, edges = co-occurrence
// in one constraint) and the constraint graph (CG, vertices = constraints, edges =
// share at least one variable). It also computes degree, diameter and clustering
// statistics over them under per-metric wall-clock budgets.
//
// Graph is a simplified adaptation of the lvlath graph library's
// core.Graph: undirected, unweighted, no self-loops, no multi-edges,
// vertices addressed by dense integer id instead of string — exactly what
// VG/CG need, nothing more. Every method takes the Graph's one
// sync.RWMutex, so a Graph is safe for concurrent use; the engine and the
// analyser themselves use it from a single goroutine, the analyser's
// timeout being a context deadline checked between vertices.
package fgraph

import (
	"sort"
	"sync"
)

// Graph is an undirected simple graph over {0..maxID}.
type Graph struct {
	mu        sync.RWMutex
	adjacency map[int]map[int]struct{}
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{adjacency: make(map[int]map[int]struct{})}
}

// AddVertex ensures id has an adjacency bucket, even if isolated.
func (g *Graph) AddVertex(id int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure(id)
}

func (g *Graph) ensure(id int) {
	if _, ok := g.adjacency[id]; !ok {
		g.adjacency[id] = make(map[int]struct{})
	}
}

// AddEdge inserts the undirected edge {u,v} if not already present.
// Returns true if the edge was newly inserted (idempotent insertion,
// per spec §4.3 step 6 / §8 "VG edge insertion is idempotent").
// Self-loops (u==v) are rejected silently: neither VG nor CG ever
// produces one by construction (a constraint referencing the same
// variable id twice collapses to one entry in con_vars).
func (g *Graph) AddEdge(u, v int) bool {
	if u == v {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure(u)
	g.ensure(v)
	if _, ok := g.adjacency[u][v]; ok {
		return false
	}
	g.adjacency[u][v] = struct{}{}
	g.adjacency[v][u] = struct{}{}
	return true
}

// HasEdge reports whether {u,v} is present.
func (g *Graph) HasEdge(u, v int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adjacency[u][v]
	return ok
}

// Degree returns the number of distinct neighbors of id.
func (g *Graph) Degree(id int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.adjacency[id])
}

// Neighbors returns the sorted neighbor ids of id.
func (g *Graph) Neighbors(id int) []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]int, 0, len(g.adjacency[id]))
	for n := range g.adjacency[id] {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Vertices returns all vertex ids in ascending order.
func (g *Graph) Vertices() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]int, 0, len(g.adjacency))
	for id := range g.adjacency {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.adjacency)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	total := 0
	for _, m := range g.adjacency {
		total += len(m)
	}
	return total / 2
}
