package geom

import (
	"math"
	"strconv"
	"strings"
)

// wktNode is one parsed group: a coordinate leaf or a parenthesized list.
type wktNode struct {
	pos   int
	coord *Coordinate
	items []*wktNode
}

func (n *wktNode) leaf() bool { return n.coord != nil }

type wktParser struct {
	lex  wktLex
	tok  token
	dims int
}

// ParseWKT parses POINT, MULTIPOINT, LINESTRING, MULTILINESTRING, POLYGON and
// MULTIPOLYGON text, with an optional Z marker. The result is built through
// the validating constructors, so shape violations fail with
// ErrShapeInvalid. All errors are *ParseError values.
func ParseWKT(wkt string) (Geometry, error) {
	p := &wktParser{lex: wktLex{line: strings.TrimSpace(wkt)}}
	p.advance()

	kind, err := p.header()
	if err != nil {
		return nil, err
	}
	body, err := p.list()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf(ErrMalformedWKT, p.tok.pos, "unexpected %s after geometry", p.tok.describe())
	}
	return p.build(kind, body)
}

func (p *wktParser) advance() { p.tok = p.lex.lex() }

func (p *wktParser) errorf(category error, pos int, format string, args ...interface{}) error {
	return p.wrap(categoryf(category, format, args...), pos)
}

func (p *wktParser) wrap(err error, pos int) error {
	return &ParseError{cause: err, pos: pos, str: p.lex.line}
}

// header reads the type keyword and the optional Z marker.
func (p *wktParser) header() (Kind, error) {
	tok := p.tok
	switch {
	case tok.kind == tokEOF:
		return "", p.errorf(ErrMalformedWKT, tok.pos, "empty input")
	case tok.kind != tokWord || !isKeyword(tok.text):
		return "", p.errorf(ErrMalformedWKT, tok.pos, "expected geometry keyword, found %s", tok.describe())
	}
	p.advance()

	keyword := strings.ToUpper(tok.text)
	kind, ok := kindForKeyword(keyword)
	if !ok {
		base := strings.TrimSuffix(keyword, "Z")
		if kind, ok = kindForKeyword(base); !ok || base == keyword {
			return "", p.errorf(ErrUnsupportedGeometry, tok.pos, "unsupported geometry type %q", tok.text)
		}
		p.dims = 3
		return kind, nil
	}

	if p.tok.kind == tokWord && isKeyword(p.tok.text) {
		switch marker := strings.ToUpper(p.tok.text); marker {
		case "Z":
			p.dims = 3
			p.advance()
		case "EMPTY":
			return "", p.errorf(ErrUnsupportedGeometry, p.tok.pos, "EMPTY geometries are not supported")
		default:
			return "", p.errorf(ErrUnsupportedGeometry, p.tok.pos, "unsupported dimension %q", p.tok.text)
		}
	}
	return kind, nil
}

// list parses "(item, item, ...)" where an item is a nested list or a
// coordinate. "()" yields an empty list.
func (p *wktParser) list() (*wktNode, error) {
	open := p.tok
	if open.kind != tokOpen {
		return nil, p.errorf(ErrMalformedWKT, open.pos, "expected '(', found %s", open.describe())
	}
	p.advance()

	n := &wktNode{pos: open.pos}
	if p.tok.kind == tokClose {
		p.advance()
		return n, nil
	}
	for {
		var item *wktNode
		var err error
		if p.tok.kind == tokOpen {
			item, err = p.list()
		} else {
			item, err = p.coordinate()
		}
		if err != nil {
			return nil, err
		}
		n.items = append(n.items, item)

		switch p.tok.kind {
		case tokComma:
			p.advance()
		case tokClose:
			p.advance()
			return n, nil
		default:
			return nil, p.errorf(ErrMalformedWKT, p.tok.pos, "expected ',' or ')', found %s", p.tok.describe())
		}
	}
}

func (p *wktParser) coordinate() (*wktNode, error) {
	start := p.tok.pos
	var values []float64
	for p.tok.kind == tokWord {
		f, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, p.errorf(ErrMalformedCoordinate, p.tok.pos, "invalid number %q", p.tok.text)
		}
		values = append(values, f)
		p.advance()
	}

	switch n := len(values); {
	case n == 0:
		return nil, p.errorf(ErrMalformedWKT, start, "expected coordinate, found %s", p.tok.describe())
	case n < 2 || n > 3:
		return nil, p.errorf(ErrMalformedCoordinate, start, "coordinate needs 2 or 3 components, got %d", n)
	case p.dims == 0:
		p.dims = n
	case n != p.dims:
		return nil, p.errorf(ErrMalformedCoordinate, start, "coordinate has %d components, expected %d", n, p.dims)
	}
	c := CoordinateFromSlice(values)
	return &wktNode{pos: start, coord: &c}, nil
}

func (p *wktParser) build(kind Kind, body *wktNode) (Geometry, error) {
	switch kind {
	case KindPoint:
		if len(body.items) != 1 {
			return nil, p.errorf(ErrMalformedWKT, body.pos, "point needs exactly 1 coordinate, got %d", len(body.items))
		}
		c, err := p.coordOf(body.items[0])
		if err != nil {
			return nil, err
		}
		return NewPoint(c), nil

	case KindMultiPoint:
		coords, err := p.coordsOf(body, true)
		if err != nil {
			return nil, err
		}
		return NewMultiPoint(coords...), nil

	case KindLineString:
		return p.lineOf(body)

	case KindMultiLineString:
		lines := make([]LineString, 0, len(body.items))
		for _, item := range body.items {
			ls, err := p.lineOf(item)
			if err != nil {
				return nil, err
			}
			lines = append(lines, ls)
		}
		return NewMultiLineString(lines...), nil

	case KindPolygon:
		return p.polygonOf(body)

	case KindMultiPolygon:
		polygons := make([]Polygon, 0, len(body.items))
		for _, item := range body.items {
			poly, err := p.polygonOf(item)
			if err != nil {
				return nil, err
			}
			polygons = append(polygons, poly)
		}
		return NewMultiPolygon(polygons...), nil
	}
	return nil, p.errorf(ErrUnsupportedGeometry, 0, "unsupported geometry type %q", kind)
}

func (p *wktParser) coordOf(n *wktNode) (Coordinate, error) {
	if !n.leaf() {
		return Coordinate{}, p.errorf(ErrMalformedWKT, n.pos, "expected coordinate, found '('")
	}
	return *n.coord, nil
}

// coordsOf reads a list of coordinates. With bare set, each coordinate may
// also be wrapped in its own parentheses, as MULTIPOINT allows.
func (p *wktParser) coordsOf(n *wktNode, bare bool) ([]Coordinate, error) {
	if n.leaf() {
		return nil, p.errorf(ErrMalformedWKT, n.pos, "expected '(', found coordinate")
	}
	coords := make([]Coordinate, 0, len(n.items))
	for _, item := range n.items {
		if bare && !item.leaf() {
			if len(item.items) != 1 {
				return nil, p.errorf(ErrMalformedWKT, item.pos, "point needs exactly 1 coordinate, got %d", len(item.items))
			}
			item = item.items[0]
		}
		c, err := p.coordOf(item)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}
	return coords, nil
}

func (p *wktParser) lineOf(n *wktNode) (LineString, error) {
	coords, err := p.coordsOf(n, false)
	if err != nil {
		return LineString{}, err
	}
	ls, err := NewLineString(coords)
	if err != nil {
		return LineString{}, p.wrap(err, n.pos)
	}
	return ls, nil
}

func (p *wktParser) ringOf(n *wktNode) (LinearRing, error) {
	coords, err := p.coordsOf(n, false)
	if err != nil {
		return LinearRing{}, err
	}
	r, err := NewLinearRing(coords)
	if err != nil {
		return LinearRing{}, p.wrap(err, n.pos)
	}
	return r, nil
}

// polygonOf takes the first ring as the shell and the rest as holes.
func (p *wktParser) polygonOf(n *wktNode) (Polygon, error) {
	if n.leaf() {
		return Polygon{}, p.errorf(ErrMalformedWKT, n.pos, "expected '(', found coordinate")
	}
	if len(n.items) == 0 {
		return Polygon{}, p.wrap(shapeErrorf("polygon needs a shell ring"), n.pos)
	}
	rings := make([]LinearRing, 0, len(n.items))
	for _, item := range n.items {
		r, err := p.ringOf(item)
		if err != nil {
			return Polygon{}, err
		}
		rings = append(rings, r)
	}
	return NewPolygon(rings[0], rings[1:]...), nil
}
