package mapdoc

import (
	_ "embed"

	"github.com/paulmach/orb"
)

//go:embed island.svg
var islandSVG string

// PlainNodes returns the hardcoded five-node map
func PlainNodes() []orb.Point {
	return []orb.Point{
		{100, 100},
		{200, 90},
		{210, 200},
		{280, 160},
		{95, 200},
	}
}

// Island returns the embedded decorated map
func Island() Document {
	return Load(islandSVG)
}
