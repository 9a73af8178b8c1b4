package view

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"nodewalk/mapdoc"
)

// SimplifyDecorations reduces decoration outlines with Douglas-Peucker.
// Fills and ordering are kept; a non-positive epsilon returns decos as is.
func SimplifyDecorations(decos mapdoc.Decorations, epsilon float64) mapdoc.Decorations {
	if epsilon <= 0 || len(decos) == 0 {
		return decos
	}

	simplified := make(mapdoc.Decorations, len(decos))
	for i, d := range decos {
		simplified[i] = mapdoc.Decoration{
			Polygon: SimplifyRing(d.Polygon, epsilon),
			Fill:    d.Fill,
		}
	}
	return simplified
}

// SimplifyRing simplifies a polygon outline, keeping at least a triangle.
// Closed rings (first point repeated at the end) stay closed; open rings stay open.
func SimplifyRing(ring orb.Ring, epsilon float64) orb.Ring {
	if len(ring) <= 3 {
		return ring
	}

	closed := ring.Closed()

	// The simplifier works in place, so run it on a closed copy
	loop := ring.Clone()
	if !closed {
		loop = append(loop, ring[0])
	}
	out := simplify.DouglasPeucker(epsilon).Ring(loop)

	// A triangle needs four points once closed
	if len(out) < 4 {
		return ring
	}

	if !closed {
		out = out[:len(out)-1]
	}
	return out
}
