// Package mapdoc extracts node locations and decoration polygons from an
// SVG-like map document. Only circle and path elements are interpreted; every
// other element is traversed for descendants and otherwise ignored.
package mapdoc

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/paulmach/orb"
)

// Decoration is a cosmetic filled polygon
type Decoration struct {
	Polygon orb.Ring `json:"polygon"`
	Fill    string   `json:"fill"`
}

// Decorations is an ordered set of decorations, drawn first to last
type Decorations []Decoration

// Document is everything a map document contributes to the world
type Document struct {
	Nodes       []orb.Point
	Decorations Decorations
}

// Parse reads src as markup and extracts nodes and decorations.
// On a path failure the returned Document still carries the nodes.
func Parse(src string) (Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(src); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	switch n := len(doc.ChildElements()); {
	case n == 0:
		return Document{}, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	case n > 1:
		return Document{}, fmt.Errorf("%w: multiple root elements", ErrMalformedDocument)
	}

	return ParseElement(doc.Root())
}

// ParseElement extracts nodes and decorations from root and its descendants in
// depth-first document order. Circles without usable centres are skipped.
// Decorations are all-or-nothing: the first bad path discards every decoration.
func ParseElement(root *etree.Element) (Document, error) {
	var (
		nodes []orb.Point
		paths []*etree.Element
	)

	walk(root, func(el *etree.Element) {
		switch el.Tag {
		case "circle":
			if p, ok := circleCenter(el); ok {
				nodes = append(nodes, p)
			}
		case "path":
			paths = append(paths, el)
		}
	})

	decorations, err := parseDecorations(paths)
	if err != nil {
		return Document{Nodes: nodes}, err
	}

	return Document{Nodes: nodes, Decorations: decorations}, nil
}

// Load parses src, degrading instead of failing: an unreadable document yields
// an empty map and a bad path drops only the decorations.
func Load(src string) Document {
	doc, err := Parse(src)
	if err == nil {
		log.Printf("🗺️  Map document loaded: %d nodes, %d decorations\n", len(doc.Nodes), len(doc.Decorations))
		return doc
	}

	if errors.Is(err, ErrMalformedDocument) {
		log.Printf("⚠️  Map document unreadable, falling back to empty map: %v\n", err)
		return Document{}
	}

	log.Printf("⚠️  Decorations dropped: %v\n", err)
	return Document{Nodes: doc.Nodes}
}

func walk(el *etree.Element, visit func(*etree.Element)) {
	visit(el)
	for _, child := range el.ChildElements() {
		walk(child, visit)
	}
}

func circleCenter(el *etree.Element) (orb.Point, bool) {
	cx, errX := numericAttr(el, "cx")
	cy, errY := numericAttr(el, "cy")
	if errX != nil || errY != nil {
		log.Printf("   Skipping circle without usable centre (cx=%q, cy=%q)\n",
			el.SelectAttrValue("cx", ""), el.SelectAttrValue("cy", ""))
		return orb.Point{}, false
	}
	return orb.Point{cx, cy}, true
}

func numericAttr(el *etree.Element, key string) (float64, error) {
	attr := el.SelectAttr(key)
	if attr == nil {
		return 0, fmt.Errorf("missing attribute %s", key)
	}
	return strconv.ParseFloat(strings.TrimSpace(attr.Value), 64)
}

func parseDecorations(paths []*etree.Element) (Decorations, error) {
	decorations := make(Decorations, 0, len(paths))

	for i, el := range paths {
		deco, err := parseDecoration(el)
		if err != nil {
			return nil, &PathError{Index: i, Err: err}
		}
		decorations = append(decorations, deco)
	}

	return decorations, nil
}

func parseDecoration(el *etree.Element) (Decoration, error) {
	d := el.SelectAttr("d")
	if d == nil {
		return Decoration{}, fmt.Errorf("%w: missing d attribute", ErrPathCommand)
	}

	ring, err := ParsePathData(d.Value)
	if err != nil {
		return Decoration{}, err
	}

	fill, err := fillColor(el.SelectAttrValue("fill", ""), el.SelectAttrValue("style", ""))
	if err != nil {
		return Decoration{}, err
	}

	return Decoration{Polygon: ring, Fill: fill}, nil
}
