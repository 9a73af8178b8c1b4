package world

import (
	"nodewalk/graph"
	"nodewalk/mapdoc"
)

// LocationKind says what kind of place the player is at
type LocationKind int

const (
	// OnNode means the player stands on Location.Node
	OnNode LocationKind = iota
)

func (k LocationKind) String() string {
	switch k {
	case OnNode:
		return "on-node"
	default:
		return "unknown"
	}
}

// Location is the player's position
type Location struct {
	Kind LocationKind `json:"kind"`
	Node graph.NodeID `json:"node"`
}

// AtNode returns a location on the given node
func AtNode(id graph.NodeID) Location {
	return Location{Kind: OnNode, Node: id}
}

// NoNode is the player's node id when the map has no nodes at all
const NoNode graph.NodeID = 0

// State is one immutable snapshot of the game. Move returns a new value;
// the graph and decorations are shared between snapshots, never copied.
type State struct {
	Player      Location
	Graph       *graph.Graph
	Decorations mapdoc.Decorations
}

// New places the player on the lowest node id, or on NoNode for an empty map
func New(g *graph.Graph, decorations mapdoc.Decorations) State {
	if g == nil {
		g = graph.New()
	}

	start := NoNode
	if ids := g.NodeIDs(); len(ids) > 0 {
		start = ids[0]
	}

	return State{
		Player:      AtNode(start),
		Graph:       g,
		Decorations: decorations,
	}
}

// FromDocument builds the graph for doc and starts a new game on it
func FromDocument(doc mapdoc.Document, threshold float64) State {
	return New(graph.Build(doc.Nodes, threshold), doc.Decorations)
}

// Current returns the node the player stands on
func (s State) Current() graph.NodeID {
	return s.Player.Node
}

// CanMove reports whether target is one legal move away
func (s State) CanMove(target graph.NodeID) bool {
	if s.Player.Kind != OnNode || s.Graph == nil {
		return false
	}
	return s.Graph.HasEdge(s.Player.Node, target)
}

// Move returns the state after moving to target. Illegal moves return s unchanged.
func (s State) Move(target graph.NodeID) State {
	if !s.CanMove(target) {
		return s
	}

	next := s
	next.Player = AtNode(target)
	return next
}
