package view

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"nodewalk/world"
)

// ExportGeoJSON describes a state as a feature collection: decorations as
// polygons, nodes as points and each directed edge as a line string.
func ExportGeoJSON(s world.State) ([]byte, error) {
	return FeatureCollection(s).MarshalJSON()
}

// FeatureCollection builds the collection used by ExportGeoJSON
func FeatureCollection(s world.State) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, deco := range s.Decorations {
		f := geojson.NewFeature(orb.Polygon{closeRing(deco.Polygon)})
		f.Properties["kind"] = "decoration"
		f.Properties["index"] = i
		f.Properties["fill"] = deco.Fill
		fc.Append(f)
	}

	if s.Graph == nil {
		return fc
	}

	for _, id := range s.Graph.NodeIDs() {
		f := geojson.NewFeature(s.Graph.Nodes[id].Location)
		f.Properties["kind"] = "node"
		f.Properties["id"] = int(id)
		f.Properties["class"] = Classify(s, id).String()
		fc.Append(f)
	}

	for _, e := range s.Graph.SortedEdges() {
		seg, ok := EdgeGeometry(s.Graph, e)
		if !ok {
			continue
		}
		f := geojson.NewFeature(orb.LineString{seg.P1, seg.P2})
		f.Properties["kind"] = "edge"
		f.Properties["from"] = int(e.From)
		f.Properties["to"] = int(e.To)
		fc.Append(f)
	}

	return fc
}

// closeRing repeats the first point at the end when the ring is open
func closeRing(r orb.Ring) orb.Ring {
	if len(r) == 0 || r.Closed() {
		return r
	}
	closed := make(orb.Ring, len(r), len(r)+1)
	copy(closed, r)
	return append(closed, r[0])
}
