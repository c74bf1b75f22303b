package planner

import "field-planner/field"

// visibilityGraph is the search graph for one query. Vertices are the start, the
// waypoints and the goal; edges are not stored but evaluated when a vertex is
// expanded, because each vertex sees the obstacles through its own Around view.
//
// With tens of vertices the O(V²) line-of-sight work per query fits well inside a
// control period, so nothing is precomputed or cached across calls.
type visibilityGraph struct {
	vertices  []field.Point
	ids       map[field.Point]int
	start     int
	goal      int
	obstacles *ObstacleSet
}

// newVisibilityGraph builds the vertex set start ∪ waypoints ∪ goal, deduplicated
// by value. Vertex ids follow that order.
func newVisibilityGraph(start, goal field.Point, waypoints []field.Point, obstacles *ObstacleSet) *visibilityGraph {
	g := &visibilityGraph{
		vertices:  make([]field.Point, 0, len(waypoints)+2),
		ids:       make(map[field.Point]int, len(waypoints)+2),
		obstacles: obstacles,
	}
	g.start = g.add(start)
	for _, w := range waypoints {
		g.add(w)
	}
	g.goal = g.add(goal)
	return g
}

func (g *visibilityGraph) add(p field.Point) int {
	if id, ok := g.ids[p]; ok {
		return id
	}
	id := len(g.vertices)
	g.vertices = append(g.vertices, p)
	g.ids[p] = id
	return id
}

// neighbors calls visit for every vertex not yet closed that has line of sight
// from id, in ascending id order. Blocked pairs are skipped: their cost is infinite.
func (g *visibilityGraph) neighbors(id int, closed []bool, visit func(to int, cost float64)) {
	from := g.vertices[id]
	view := g.obstacles.Around(from)
	for to, p := range g.vertices {
		if to == id || closed[to] {
			continue
		}
		if view.Blocks(field.Line{A: from, B: p}) {
			continue
		}
		visit(to, from.Distance(p))
	}
}

// heuristic is the straight-line distance to the goal: admissible and
// consistent on a Euclidean visibility graph.
func (g *visibilityGraph) heuristic(id int) float64 {
	return g.vertices[id].Distance(g.vertices[g.goal])
}
