package planner

import (
	"container/heap"
	"math"
	"slices"

	"field-planner/field"
)

// DefaultMaxExpansions bounds a search so a malformed layout fails closed instead
// of stalling the caller's loop.
const DefaultMaxExpansions = 10000

// node represents a vertex in the A* open set
type node struct {
	id     int     // vertex id in the graph
	g      float64 // cost from start to this node
	h      float64 // heuristic cost from this node to the goal
	f      float64 // g + h
	parent *node
	seq    int // order of first insertion into the open set, breaks f ties
	index  int // index in the heap, -1 once popped
}

// priorityQueue implements heap.Interface ordered by (f, seq)
type priorityQueue []*node

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	n := x.(*node)
	n.index = len(*pq)
	*pq = append(*pq, n)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*pq = old[:last]
	return n
}

// Result is a successful search.
type Result struct {
	// Path runs from start to goal; its endpoints are the query points themselves.
	Path []field.Point
	// Cost is the summed Euclidean length of Path.
	Cost float64
	// Expanded counts the vertices moved to the closed set.
	Expanded int
}

// Search finds the shortest obstacle-free polyline from start to goal through
// the waypoints. Among equal-cost open vertices the one inserted first is
// expanded first, so identical inputs always produce identical paths.
//
// It returns ErrNotFound when the goal is unreachable, and ErrExpansionLimit when
// maxExpansions (if positive) vertices were expanded without reaching it.
func Search(start, goal field.Point, obstacles *ObstacleSet, waypoints []field.Point, maxExpansions int) (Result, error) {
	g := newVisibilityGraph(start, goal, waypoints, obstacles)

	nodes := make([]*node, len(g.vertices))
	closed := make([]bool, len(g.vertices))
	open := &priorityQueue{}
	seq := 0

	startNode := &node{id: g.start, h: g.heuristic(g.start)}
	startNode.f = startNode.h
	nodes[g.start] = startNode
	heap.Push(open, startNode)
	seq++

	expanded := 0
	for open.Len() > 0 {
		if maxExpansions > 0 && expanded >= maxExpansions {
			return Result{Expanded: expanded}, ErrExpansionLimit
		}

		current := heap.Pop(open).(*node)
		if current.id == g.goal {
			return Result{Path: g.path(current), Cost: current.g, Expanded: expanded}, nil
		}

		closed[current.id] = true
		expanded++

		g.neighbors(current.id, closed, func(to int, cost float64) {
			tentative := current.g + cost
			n := nodes[to]
			if n == nil {
				n = &node{id: to, g: math.Inf(1), h: g.heuristic(to), seq: seq, index: -1}
				nodes[to] = n
				seq++
			}
			if tentative >= n.g {
				return
			}
			n.g = tentative
			n.f = tentative + n.h
			n.parent = current
			if n.index < 0 {
				heap.Push(open, n)
			} else {
				heap.Fix(open, n.index)
			}
		})
	}

	return Result{Expanded: expanded}, ErrNotFound
}

// path follows parents back to the start and reverses.
func (g *visibilityGraph) path(goal *node) []field.Point {
	var path []field.Point
	for n := goal; n != nil; n = n.parent {
		path = append(path, g.vertices[n.id])
	}
	slices.Reverse(path)
	return path
}
