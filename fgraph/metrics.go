package fgraph

import "context"

// DegreeStats returns the per-vertex degree of g. The context deadline is
// checked at each vertex boundary (spec §5/§9: "cut short at any
// per-vertex boundary"); on expiry it returns (nil, false).
func DegreeStats(ctx context.Context, g *Graph) (degrees map[int]float64, ok bool) {
	vertices := g.Vertices()
	degrees = make(map[int]float64, len(vertices))
	for _, v := range vertices {
		if ctx.Err() != nil {
			return nil, false
		}
		degrees[v] = float64(g.Degree(v))
	}
	return degrees, true
}

// ClusteringCoefficients returns, for every vertex v of g,
// 2*(triangles through v) / (deg(v)*(deg(v)-1)) if deg(v)>=2, else 0
// (spec §4.6). Grounded on the teacher's Graph.NeighborIDs-style
// adjacency walk (core/methods.go's Neighbors/NeighborIDs).
func ClusteringCoefficients(ctx context.Context, g *Graph) (coeffs map[int]float64, ok bool) {
	vertices := g.Vertices()
	coeffs = make(map[int]float64, len(vertices))
	for _, v := range vertices {
		if ctx.Err() != nil {
			return nil, false
		}
		neighbors := g.Neighbors(v)
		d := len(neighbors)
		if d < 2 {
			coeffs[v] = 0
			continue
		}
		triangles := 0
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				if g.HasEdge(neighbors[i], neighbors[j]) {
					triangles++
				}
			}
		}
		coeffs[v] = 2 * float64(triangles) / float64(d*(d-1))
	}
	return coeffs, true
}

// Diameter returns, for every vertex v of g, the length of the longest
// shortest path from v to any vertex reachable from it (its
// eccentricity), computed by breadth-first exploration over adjacency
// lists (spec §4.6). Unreachable vertices contribute distance 0
// implicitly (they are simply never visited, so they never raise the
// running maximum).
func Diameter(ctx context.Context, g *Graph) (eccentricities map[int]float64, ok bool) {
	vertices := g.Vertices()
	eccentricities = make(map[int]float64, len(vertices))
	for _, start := range vertices {
		if ctx.Err() != nil {
			return nil, false
		}
		eccentricities[start] = float64(bfsEccentricity(g, start))
	}
	return eccentricities, true
}

// bfsEccentricity returns the greatest distance from start to any vertex
// reachable from it.
func bfsEccentricity(g *Graph, start int) int {
	dist := map[int]int{start: 0}
	queue := []int{start}
	maxDist := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(cur) {
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[cur] + 1
			if dist[n] > maxDist {
				maxDist = dist[n]
			}
			queue = append(queue, n)
		}
	}
	return maxDist
}
