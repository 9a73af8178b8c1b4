package view

import (
	"math"

	"github.com/paulmach/orb"

	"nodewalk/geometry"
	"nodewalk/graph"
	"nodewalk/mapdoc"
	"nodewalk/world"
)

// SceneNode is a node marker to draw
type SceneNode struct {
	ID       graph.NodeID `json:"id"`
	Location orb.Point    `json:"location"`
	Radius   float64      `json:"radius"`
	Class    Reachability `json:"class"`
}

// SceneEdge is one directed edge, already trimmed and offset
type SceneEdge struct {
	From        graph.NodeID `json:"from"`
	To          graph.NodeID `json:"to"`
	P1          orb.Point    `json:"p1"`
	P2          orb.Point    `json:"p2"`
	StrokeWidth float64      `json:"strokeWidth"`
	Color       string       `json:"color"`
}

// Scene is the complete render surface for one state
type Scene struct {
	Player      world.Location     `json:"player"`
	Nodes       []SceneNode        `json:"nodes"`
	Edges       []SceneEdge        `json:"edges"`
	Decorations mapdoc.Decorations `json:"decorations"`
}

// BuildScene assembles everything the renderer draws for s.
// Edges whose geometry cannot be derived are left out.
func BuildScene(s world.State) Scene {
	scene := Scene{
		Player:      s.Player,
		Nodes:       make([]SceneNode, 0),
		Edges:       make([]SceneEdge, 0),
		Decorations: s.Decorations,
	}
	if scene.Decorations == nil {
		scene.Decorations = mapdoc.Decorations{}
	}
	if s.Graph == nil {
		return scene
	}

	for _, id := range s.Graph.NodeIDs() {
		scene.Nodes = append(scene.Nodes, SceneNode{
			ID:       id,
			Location: s.Graph.Nodes[id].Location,
			Radius:   NodeRadius,
			Class:    Classify(s, id),
		})
	}

	for _, e := range s.Graph.SortedEdges() {
		seg, ok := EdgeGeometry(s.Graph, e)
		if !ok {
			continue
		}
		visual, ok := VisualEdgeSegment(seg)
		if !ok {
			continue
		}
		scene.Edges = append(scene.Edges, SceneEdge{
			From:        e.From,
			To:          e.To,
			P1:          visual.P1,
			P2:          visual.P2,
			StrokeWidth: StrokeWidth,
			Color:       EdgeColor,
		})
	}

	return scene
}

// HitTest finds the node under a pointer position.
// The nearest node wins; nothing is hit beyond NodeRadius.
func HitTest(g *graph.Graph, p orb.Point) (graph.NodeID, bool) {
	if g == nil || len(g.Nodes) == 0 {
		return 0, false
	}

	nearestID := graph.NodeID(-1)
	minDist := math.MaxFloat64

	for _, id := range g.NodeIDs() {
		dist := geometry.Distance(p, g.Nodes[id].Location)
		if dist < minDist {
			minDist = dist
			nearestID = id
		}
	}

	if minDist > NodeRadius {
		return 0, false
	}
	return nearestID, true
}
