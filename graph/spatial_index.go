package graph

import (
	"github.com/dhconnelly/rtreego"

	"nodewalk/geometry"
)

// boundPadding keeps axis-aligned segments from producing zero-width rectangles
const boundPadding = 1e-6

// rankedSegment wraps a shrunk edge segment for R-tree storage
type rankedSegment struct {
	Edge     Edge
	Priority int
	Segment  geometry.LineSegment
	BBox     rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (r *rankedSegment) Bounds() rtreego.Rect {
	return r.BBox
}

// segmentIndex answers "which segments might cross this one" queries
type segmentIndex struct {
	tree *rtreego.Rtree
}

// newSegmentIndex creates a new spatial index over the given segments
func newSegmentIndex(segments []*rankedSegment) *segmentIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for _, s := range segments {
		tree.Insert(s)
	}

	return &segmentIndex{tree: tree}
}

// near returns the segments whose bounding boxes overlap the given segment's
func (si *segmentIndex) near(s *rankedSegment) []*rankedSegment {
	results := si.tree.SearchIntersect(s.BBox)
	out := make([]*rankedSegment, 0, len(results))

	for _, item := range results {
		out = append(out, item.(*rankedSegment))
	}

	return out
}

// segmentRect computes the padded axis-aligned bounding box for a segment
func segmentRect(seg geometry.LineSegment) (rtreego.Rect, error) {
	b := seg.Bound()

	return rtreego.NewRect(
		rtreego.Point{b.Min.X() - boundPadding, b.Min.Y() - boundPadding},
		[]float64{b.Max.X() - b.Min.X() + 2*boundPadding, b.Max.Y() - b.Min.Y() + 2*boundPadding},
	)
}
