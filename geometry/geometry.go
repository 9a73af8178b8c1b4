package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Vector is a displacement in map units
type Vector struct {
	DX, DY float64
}

// Direction is a unit direction expressed as an angle in radians
type Direction float64

// LineSegment represents a line segment between two points
type LineSegment struct {
	P1, P2 orb.Point
}

// Distance calculates Euclidean distance between two points
func Distance(p1, p2 orb.Point) float64 {
	return planar.Distance(p1, p2)
}

// DirectionBetween returns the direction from p1 towards p2.
// Coincident points have no direction.
func DirectionBetween(p1, p2 orb.Point) (Direction, bool) {
	dx := p2.X() - p1.X()
	dy := p2.Y() - p1.Y()
	if dx == 0 && dy == 0 {
		return 0, false
	}
	return Direction(math.Atan2(dy, dx)), true
}

// Rotate turns the direction counter-clockwise by angle radians
func (d Direction) Rotate(angle float64) Direction {
	return Direction(math.Remainder(float64(d)+angle, 2*math.Pi))
}

// ScaleToLength returns a vector of the given length pointing along d
func (d Direction) ScaleToLength(length float64) Vector {
	return Vector{
		DX: length * math.Cos(float64(d)),
		DY: length * math.Sin(float64(d)),
	}
}

// Translate moves p by v
func Translate(p orb.Point, v Vector) orb.Point {
	return orb.Point{p.X() + v.DX, p.Y() + v.DY}
}

// Length returns the Euclidean length of the segment
func (s LineSegment) Length() float64 {
	return Distance(s.P1, s.P2)
}

// Midpoint returns the point halfway between the endpoints
func (s LineSegment) Midpoint() orb.Point {
	return orb.Point{
		(s.P1.X() + s.P2.X()) / 2,
		(s.P1.Y() + s.P2.Y()) / 2,
	}
}

// ScaleAbout moves both endpoints towards (factor < 1) or away from (factor > 1) pivot
func (s LineSegment) ScaleAbout(pivot orb.Point, factor float64) LineSegment {
	return LineSegment{
		P1: scalePoint(s.P1, pivot, factor),
		P2: scalePoint(s.P2, pivot, factor),
	}
}

// Bound returns the axis-aligned bounding box of the segment
func (s LineSegment) Bound() orb.Bound {
	return orb.MultiPoint{s.P1, s.P2}.Bound()
}

func scalePoint(p, pivot orb.Point, factor float64) orb.Point {
	return orb.Point{
		pivot.X() + (p.X()-pivot.X())*factor,
		pivot.Y() + (p.Y()-pivot.Y())*factor,
	}
}

// Intersection returns the point where two finite segments cross.
// Parallel, collinear and endpoint-only contacts do not count as crossings.
func Intersection(seg1, seg2 LineSegment) (orb.Point, bool) {
	p := seg1.P1
	r := Vector{DX: seg1.P2.X() - p.X(), DY: seg1.P2.Y() - p.Y()}
	q := seg2.P1
	s := Vector{DX: seg2.P2.X() - q.X(), DY: seg2.P2.Y() - q.Y()}

	denom := cross(r, s)
	if denom == 0 {
		return orb.Point{}, false
	}

	qp := Vector{DX: q.X() - p.X(), DY: q.Y() - p.Y()}
	t := cross(qp, s) / denom
	u := cross(qp, r) / denom

	if t <= 0 || t >= 1 || u <= 0 || u >= 1 {
		return orb.Point{}, false
	}

	return orb.Point{p.X() + t*r.DX, p.Y() + t*r.DY}, true
}

// cross calculates the z component of the cross product a x b
func cross(a, b Vector) float64 {
	return a.DX*b.DY - a.DY*b.DX
}
