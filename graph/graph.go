// Package graph derives a navigable graph from a set of node locations.
//
// Construction starts from the complete directed graph, keeps edges shorter
// than a distance threshold and then drops every edge crossed by a shorter
// (higher priority) edge. Moves are legal exactly along the surviving
// directed edges.
package graph

import (
	"log"
	"sort"

	"github.com/paulmach/orb"
	"github.com/zyedidia/generic/mapset"

	"nodewalk/geometry"
)

// Distance thresholds for the two builtin map variants
const (
	PlainThreshold     = 130.0
	DecoratedThreshold = 160.0
)

// NodeID identifies a node; ids are assigned 0, 1, 2... in insertion order
type NodeID int

// Node is a graph vertex with its on-screen location
type Node struct {
	ID       NodeID    `json:"id"`
	Location orb.Point `json:"location"`
}

// Edge is a directed traversable link
type Edge struct {
	From NodeID `json:"from"`
	To   NodeID `json:"to"`
}

// Reverse returns the edge pointing the other way
func (e Edge) Reverse() Edge {
	return Edge{From: e.To, To: e.From}
}

// Graph holds the nodes and the surviving directed edges
type Graph struct {
	Nodes map[NodeID]Node
	Edges mapset.Set[Edge]
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		Nodes: make(map[NodeID]Node),
		Edges: mapset.New[Edge](),
	}
}

// Build creates nodes for locations and connects them.
// Any finite input is accepted; no locations gives an empty graph.
func Build(locations []orb.Point, threshold float64) *Graph {
	g := New()
	for i, loc := range locations {
		id := NodeID(i)
		g.Nodes[id] = Node{ID: id, Location: loc}
	}

	candidates := CandidateEdges(len(locations))
	log.Printf("   Nodes: %d\n", len(locations))
	log.Printf("   Candidate edges: %d\n", len(candidates))

	filtered := FilterByDistance(g, candidates, threshold)
	log.Printf("   Edges within %.1f units: %d\n", threshold, len(filtered))

	kept := RemoveLongerIntersecting(g, filtered)
	log.Printf("   Edges kept after crossing removal: %d (removed %d)\n", len(kept), len(filtered)-len(kept))

	for _, e := range kept {
		g.Edges.Put(e)
	}

	return g
}

// CandidateEdges enumerates every ordered pair (i, j), i != j, over n nodes.
// The enumeration order (i outer, j inner) breaks length ties during pruning.
func CandidateEdges(n int) []Edge {
	if n < 2 {
		return nil
	}

	edges := make([]Edge, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			edges = append(edges, Edge{From: NodeID(i), To: NodeID(j)})
		}
	}
	return edges
}

// FilterByDistance keeps the edges strictly shorter than threshold, preserving order
func FilterByDistance(g *Graph, edges []Edge, threshold float64) []Edge {
	kept := make([]Edge, 0, len(edges))
	for _, e := range edges {
		seg, ok := g.Segment(e)
		if !ok {
			continue
		}
		if seg.Length() < threshold {
			kept = append(kept, e)
		}
	}
	return kept
}

// Segment returns the line between the edge's endpoints.
// It reports false when either endpoint is not in the graph.
func (g *Graph) Segment(e Edge) (geometry.LineSegment, bool) {
	from, ok := g.Nodes[e.From]
	if !ok {
		return geometry.LineSegment{}, false
	}
	to, ok := g.Nodes[e.To]
	if !ok {
		return geometry.LineSegment{}, false
	}
	return geometry.LineSegment{P1: from.Location, P2: to.Location}, true
}

// HasEdge reports whether the directed edge from -> to survived construction
func (g *Graph) HasEdge(from, to NodeID) bool {
	return g.Edges.Has(Edge{From: from, To: to})
}

// Neighbors returns the nodes reachable from id in one move, in ascending order
func (g *Graph) Neighbors(id NodeID) []NodeID {
	var out []NodeID
	g.Edges.Each(func(e Edge) {
		if e.From == id {
			out = append(out, e.To)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NodeIDs returns every node id in ascending order
func (g *Graph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SortedEdges returns the edge set ordered by (From, To)
func (g *Graph) SortedEdges() []Edge {
	edges := make([]Edge, 0, g.Edges.Size())
	g.Edges.Each(func(e Edge) {
		edges = append(edges, e)
	})
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// EdgeLines returns one segment per connected node pair, ignoring direction
func (g *Graph) EdgeLines() []geometry.LineSegment {
	lines := make([]geometry.LineSegment, 0)

	// Use a set to avoid duplicate lines for reciprocal edges
	seen := mapset.New[Edge]()

	for _, e := range g.SortedEdges() {
		key := e
		if key.From > key.To {
			key = key.Reverse()
		}
		if seen.Has(key) {
			continue
		}
		seen.Put(key)

		if seg, ok := g.Segment(e); ok {
			lines = append(lines, seg)
		}
	}

	return lines
}
