package graph

import (
	"math"
	"sort"

	"nodewalk/geometry"
)

// ShrinkFactor scales each segment about its midpoint before crossing tests
// so that edges sharing an endpoint never register as crossing.
const ShrinkFactor = 0.99

// RemoveLongerIntersecting drops every edge that is crossed by an edge of
// equal or higher priority. Edges are ranked by ascending length (ties keep
// the input order) and rank r has priority -r, so shorter edges dominate.
// Decisions are made against the full input set in a single pass, and an
// edge never counts as crossing its own reverse. Edges with a missing or
// non-finite endpoint are dropped without taking a rank.
func RemoveLongerIntersecting(g *Graph, edges []Edge) []Edge {
	ranked := rankByLength(g, edges)
	if len(ranked) == 0 {
		return nil
	}

	index := newSegmentIndex(ranked)

	removed := make(map[Edge]bool, len(ranked))
	for _, s := range ranked {
		for _, other := range index.near(s) {
			if other == s || other.Edge == s.Edge.Reverse() {
				continue
			}
			if other.Priority < s.Priority {
				continue
			}
			if _, ok := geometry.Intersection(s.Segment, other.Segment); ok {
				removed[s.Edge] = true
				break
			}
		}
	}

	indexed := make(map[Edge]bool, len(ranked))
	for _, s := range ranked {
		indexed[s.Edge] = true
	}

	kept := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if indexed[e] && !removed[e] {
			kept = append(kept, e)
		}
	}
	return kept
}

// rankByLength assigns priorities and prepares the shrunk segments.
// Edges with a missing endpoint or a non-finite coordinate are left out.
func rankByLength(g *Graph, edges []Edge) []*rankedSegment {
	type measured struct {
		edge   Edge
		seg    geometry.LineSegment
		length float64
	}

	items := make([]measured, 0, len(edges))
	for _, e := range edges {
		seg, ok := g.Segment(e)
		if !ok || !finite(seg) {
			continue
		}
		items = append(items, measured{edge: e, seg: seg, length: seg.Length()})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].length < items[j].length
	})

	ranked := make([]*rankedSegment, 0, len(items))
	for _, it := range items {
		shrunk := it.seg.ScaleAbout(it.seg.Midpoint(), ShrinkFactor)
		rect, err := segmentRect(shrunk)
		if err != nil {
			continue
		}
		ranked = append(ranked, &rankedSegment{
			Edge:     it.edge,
			Priority: -len(ranked),
			Segment:  shrunk,
			BBox:     rect,
		})
	}

	return ranked
}

func finite(seg geometry.LineSegment) bool {
	for _, v := range []float64{seg.P1.X(), seg.P1.Y(), seg.P2.X(), seg.P2.Y()} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
