package mapdoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// ParsePathData decodes the straight-line subset of SVG path data into a ring.
// Supported commands are M, L, H, V and Z in absolute and relative form.
// Coordinate pairs that follow a moveto without a new command are treated as lineto.
func ParsePathData(d string) (orb.Ring, error) {
	sc := &pathScanner{s: d}

	var (
		ring  orb.Ring
		cur   orb.Point
		start orb.Point
		cmd   byte
	)

	for {
		sc.skipSeparators()
		if sc.done() {
			break
		}

		if c := sc.peek(); isCommandLetter(c) {
			sc.pos++
			cmd = c
			if cmd == 'Z' || cmd == 'z' {
				cur = start
				continue
			}
		} else if cmd == 0 {
			return nil, fmt.Errorf("%w: expected command at offset %d", ErrPathCommand, sc.pos)
		}

		switch cmd {
		case 'M', 'm':
			p, err := sc.pair()
			if err != nil {
				return nil, err
			}
			if cmd == 'm' {
				p = orb.Point{cur.X() + p.X(), cur.Y() + p.Y()}
			}
			cur, start = p, p
			ring = append(ring, p)
			// following pairs are implicit lineto commands
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}

		case 'L', 'l':
			p, err := sc.pair()
			if err != nil {
				return nil, err
			}
			if cmd == 'l' {
				p = orb.Point{cur.X() + p.X(), cur.Y() + p.Y()}
			}
			cur = p
			ring = append(ring, p)

		case 'H', 'h':
			x, err := sc.number()
			if err != nil {
				return nil, err
			}
			if cmd == 'h' {
				x += cur.X()
			}
			cur = orb.Point{x, cur.Y()}
			ring = append(ring, cur)

		case 'V', 'v':
			y, err := sc.number()
			if err != nil {
				return nil, err
			}
			if cmd == 'v' {
				y += cur.Y()
			}
			cur = orb.Point{cur.X(), y}
			ring = append(ring, cur)

		case 'Z', 'z':
			return nil, fmt.Errorf("%w: unexpected number after closepath at offset %d", ErrPathCommand, sc.pos)

		default:
			return nil, fmt.Errorf("%w: unsupported command %q", ErrPathCommand, cmd)
		}
	}

	if len(ring) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrPathCommand)
	}

	return ring, nil
}

func isCommandLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

type pathScanner struct {
	s   string
	pos int
}

func (sc *pathScanner) done() bool {
	return sc.pos >= len(sc.s)
}

func (sc *pathScanner) peek() byte {
	return sc.s[sc.pos]
}

func (sc *pathScanner) skipSeparators() {
	for !sc.done() {
		switch sc.peek() {
		case ' ', '\t', '\n', '\r', ',':
			sc.pos++
		default:
			return
		}
	}
}

// number reads one signed decimal number, optionally with an exponent
func (sc *pathScanner) number() (float64, error) {
	sc.skipSeparators()
	begin := sc.pos

	if !sc.done() && (sc.peek() == '+' || sc.peek() == '-') {
		sc.pos++
	}
	digits := sc.digits()
	if !sc.done() && sc.peek() == '.' {
		sc.pos++
		digits += sc.digits()
	}
	if digits == 0 {
		sc.pos = begin
		return 0, fmt.Errorf("%w: expected number at offset %d", ErrPathCommand, begin)
	}
	if !sc.done() && (sc.peek() == 'e' || sc.peek() == 'E') {
		sc.pos++
		if !sc.done() && (sc.peek() == '+' || sc.peek() == '-') {
			sc.pos++
		}
		if sc.digits() == 0 {
			return 0, fmt.Errorf("%w: bad exponent at offset %d", ErrPathCommand, begin)
		}
	}

	v, err := strconv.ParseFloat(sc.s[begin:sc.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPathCommand, err)
	}
	return v, nil
}

func (sc *pathScanner) digits() int {
	n := 0
	for !sc.done() && sc.peek() >= '0' && sc.peek() <= '9' {
		sc.pos++
		n++
	}
	return n
}

func (sc *pathScanner) pair() (orb.Point, error) {
	x, err := sc.number()
	if err != nil {
		return orb.Point{}, err
	}
	y, err := sc.number()
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{x, y}, nil
}

// fillColor reads the fill attribute, falling back to a fill declaration in style
func fillColor(fill, style string) (string, error) {
	if f := strings.TrimSpace(fill); f != "" {
		return f, nil
	}
	for _, decl := range strings.Split(style, ";") {
		key, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "fill" {
			if v := strings.TrimSpace(value); v != "" {
				return v, nil
			}
		}
	}
	return "", ErrMissingFill
}
