package view

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"nodewalk/geometry"
	"nodewalk/graph"
	"nodewalk/mapdoc"
	"nodewalk/world"
)

func plainState() world.State {
	return world.FromDocument(mapdoc.Document{Nodes: mapdoc.PlainNodes()}, graph.PlainThreshold)
}

func nearPoint(a, b orb.Point) bool {
	return math.Abs(a.X()-b.X()) < 1e-9 && math.Abs(a.Y()-b.Y()) < 1e-9
}

func TestEdgeGeometry(t *testing.T) {
	s := plainState()

	seg, ok := EdgeGeometry(s.Graph, graph.Edge{From: 0, To: 1})
	if !ok {
		t.Fatal("Expected geometry for edge 0->1")
	}
	if seg.P1 != (orb.Point{100, 100}) || seg.P2 != (orb.Point{200, 90}) {
		t.Errorf("Unexpected segment %v-%v", seg.P1, seg.P2)
	}

	if _, ok := EdgeGeometry(s.Graph, graph.Edge{From: 0, To: 42}); ok {
		t.Error("Expected no geometry for a missing endpoint")
	}
	if _, ok := EdgeGeometry(nil, graph.Edge{From: 0, To: 1}); ok {
		t.Error("Expected no geometry for a nil graph")
	}
}

func TestVisualEdgeSegment(t *testing.T) {
	seg := geometry.LineSegment{P1: orb.Point{0, 0}, P2: orb.Point{100, 0}}

	visual, ok := VisualEdgeSegment(seg)
	if !ok {
		t.Fatal("Expected a visual segment")
	}

	trim := NodeRadius + StrokeWidth
	if !nearPoint(visual.P1, orb.Point{trim, StrokeWidth}) {
		t.Errorf("Expected start (%v, %v), got %v", trim, StrokeWidth, visual.P1)
	}
	if !nearPoint(visual.P2, orb.Point{100 - trim, StrokeWidth}) {
		t.Errorf("Expected end (%v, %v), got %v", 100-trim, StrokeWidth, visual.P2)
	}

	// The reverse direction is shifted to the other side
	reverse, _ := VisualEdgeSegment(geometry.LineSegment{P1: seg.P2, P2: seg.P1})
	if !nearPoint(reverse.P1, orb.Point{100 - trim, -StrokeWidth}) {
		t.Errorf("Expected reverse start on the opposite side, got %v", reverse.P1)
	}

	if _, ok := VisualEdgeSegment(geometry.LineSegment{P1: orb.Point{3, 3}, P2: orb.Point{3, 3}}); ok {
		t.Error("Expected no visual segment for zero length")
	}
}

func TestClassify(t *testing.T) {
	s := plainState()

	tests := []struct {
		id   graph.NodeID
		want Reachability
	}{
		{0, CurrentLocation},
		{1, DirectlyReachable},
		{4, DirectlyReachable},
		{2, Unreachable},
		{3, Unreachable},
		{99, Unreachable},
	}
	for _, tt := range tests {
		if got := Classify(s, tt.id); got != tt.want {
			t.Errorf("Node %d: expected %s, got %s", tt.id, tt.want, got)
		}
	}

	moved := s.Move(1)
	if Classify(moved, 3) != DirectlyReachable {
		t.Error("Expected node 3 reachable from node 1")
	}
	if Classify(moved, 0) != DirectlyReachable {
		t.Error("Expected node 0 reachable from node 1")
	}
}

func TestBuildScene(t *testing.T) {
	s := plainState()
	scene := BuildScene(s)

	if len(scene.Nodes) != 5 {
		t.Errorf("Expected 5 nodes, got %d", len(scene.Nodes))
	}
	if len(scene.Edges) != s.Graph.Edges.Size() {
		t.Errorf("Expected %d edges, got %d", s.Graph.Edges.Size(), len(scene.Edges))
	}
	if scene.Nodes[0].Class != CurrentLocation {
		t.Errorf("Expected node 0 to be current, got %s", scene.Nodes[0].Class)
	}
	if scene.Decorations == nil {
		t.Error("Expected non-nil decorations")
	}
	for _, e := range scene.Edges {
		if e.StrokeWidth != StrokeWidth || e.Color != EdgeColor {
			t.Errorf("Unexpected stroke on edge %d->%d", e.From, e.To)
		}
	}

	empty := BuildScene(world.New(nil, nil))
	if len(empty.Nodes) != 0 || len(empty.Edges) != 0 {
		t.Errorf("Expected empty scene, got %+v", empty)
	}
}

func TestHitTest(t *testing.T) {
	s := plainState()

	if id, ok := HitTest(s.Graph, orb.Point{102, 101}); !ok || id != 0 {
		t.Errorf("Expected hit on node 0, got %d (%v)", id, ok)
	}
	if id, ok := HitTest(s.Graph, orb.Point{279, 165}); !ok || id != 3 {
		t.Errorf("Expected hit on node 3, got %d (%v)", id, ok)
	}
	if _, ok := HitTest(s.Graph, orb.Point{150, 150}); ok {
		t.Error("Expected no hit between nodes")
	}
	if _, ok := HitTest(graph.New(), orb.Point{0, 0}); ok {
		t.Error("Expected no hit on an empty graph")
	}
}

func TestExportGeoJSON(t *testing.T) {
	s := world.FromDocument(mapdoc.Island(), graph.DecoratedThreshold)

	data, err := ExportGeoJSON(s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("Failed to read back GeoJSON: %v", err)
	}

	want := len(s.Decorations) + len(s.Graph.Nodes) + s.Graph.Edges.Size()
	if len(fc.Features) != want {
		t.Errorf("Expected %d features, got %d", want, len(fc.Features))
	}

	poly, ok := fc.Features[0].Geometry.(orb.Polygon)
	if !ok {
		t.Fatalf("Expected first feature to be a polygon, got %T", fc.Features[0].Geometry)
	}
	if !poly[0].Closed() {
		t.Error("Expected decoration ring to be closed")
	}
	if fc.Features[0].Properties.MustString("fill", "") != "#cfe3b4" {
		t.Errorf("Unexpected fill %v", fc.Features[0].Properties["fill"])
	}
}

func TestSimplifyRing(t *testing.T) {
	ring := orb.Ring{{0, 0}, {5, 0}, {10, 0}, {10, 10}, {0, 10}}

	got := SimplifyRing(ring, 0.1)
	want := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Point %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	closed := append(orb.Ring{}, ring...)
	closed = append(closed, ring[0])
	if out := SimplifyRing(closed, 0.1); !out.Closed() || len(out) != 5 {
		t.Errorf("Expected closed square of 5 points, got %v", out)
	}

	if ring[1] != (orb.Point{5, 0}) || len(ring) != 5 {
		t.Errorf("Expected input ring to be left untouched, got %v", ring)
	}

	// Collapsing below a triangle keeps the original outline
	thin := orb.Ring{{0, 0}, {5, 0.1}, {10, 0}, {5, -0.1}}
	if out := SimplifyRing(thin, 50); len(out) != len(thin) {
		t.Errorf("Expected degenerate result to fall back to the input, got %v", out)
	}

	decos := mapdoc.Decorations{{Polygon: ring, Fill: "red"}}
	if out := SimplifyDecorations(decos, 0); len(out[0].Polygon) != len(ring) {
		t.Error("Expected zero epsilon to leave decorations alone")
	}
	if out := SimplifyDecorations(decos, 0.1); out[0].Fill != "red" || len(out[0].Polygon) != 4 {
		t.Errorf("Unexpected simplified decoration %+v", out[0])
	}
}
