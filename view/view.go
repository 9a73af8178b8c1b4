// Package view derives the data a renderer needs from a world state: trimmed
// edge segments, node reachability classes and decoration polygons.
package view

import (
	"fmt"
	"math"

	"nodewalk/geometry"
	"nodewalk/graph"
	"nodewalk/world"
)

// Presentation constants shared with the renderer
const (
	NodeRadius  = 10.0
	StrokeWidth = 3.0
	EdgeColor   = "#5a5a5a"
)

// Reachability classifies a node relative to the player
type Reachability int

const (
	Unreachable Reachability = iota
	DirectlyReachable
	CurrentLocation
)

func (r Reachability) String() string {
	switch r {
	case CurrentLocation:
		return "current"
	case DirectlyReachable:
		return "reachable"
	default:
		return "unreachable"
	}
}

// MarshalText lets Reachability appear by name in JSON output
func (r Reachability) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses the names written by MarshalText
func (r *Reachability) UnmarshalText(text []byte) error {
	switch string(text) {
	case "current":
		*r = CurrentLocation
	case "reachable":
		*r = DirectlyReachable
	case "unreachable":
		*r = Unreachable
	default:
		return fmt.Errorf("unknown reachability %q", text)
	}
	return nil
}

// EdgeGeometry returns the segment between an edge's endpoints
func EdgeGeometry(g *graph.Graph, e graph.Edge) (geometry.LineSegment, bool) {
	if g == nil {
		return geometry.LineSegment{}, false
	}
	return g.Segment(e)
}

// VisualEdgeSegment trims each end of seg clear of the node markers and shifts
// it sideways by one stroke width, so the two directions of a link sit side by side.
func VisualEdgeSegment(seg geometry.LineSegment) (geometry.LineSegment, bool) {
	dir, ok := geometry.DirectionBetween(seg.P1, seg.P2)
	if !ok {
		return geometry.LineSegment{}, false
	}

	trim := NodeRadius + StrokeWidth
	offset := dir.Rotate(math.Pi / 2).ScaleToLength(StrokeWidth)

	start := geometry.Translate(seg.P1, dir.ScaleToLength(trim))
	end := geometry.Translate(seg.P2, dir.ScaleToLength(-trim))

	return geometry.LineSegment{
		P1: geometry.Translate(start, offset),
		P2: geometry.Translate(end, offset),
	}, true
}

// Classify reports how the node relates to the player's position
func Classify(s world.State, id graph.NodeID) Reachability {
	if s.Player.Kind == world.OnNode && s.Player.Node == id {
		return CurrentLocation
	}
	if s.CanMove(id) {
		return DirectlyReachable
	}
	return Unreachable
}
