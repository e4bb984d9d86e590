package geom

import "strings"

type wktBuffer struct {
	strings.Builder
	includeZ bool
}

func (b *wktBuffer) writeHeader(k Kind) {
	b.WriteString(k.Keyword())
	b.WriteByte(' ')
	if b.includeZ {
		b.WriteByte('Z')
	}
}

// writeList writes "(item, item, ...)".
func (b *wktBuffer) writeList(size int, fn func(i int)) {
	b.WriteByte('(')
	for i := 0; i < size; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fn(i)
	}
	b.WriteByte(')')
}

func (b *wktBuffer) writeCoords(coords []Coordinate) {
	b.writeList(len(coords), func(i int) {
		b.WriteString(coords[i].Token(b.includeZ))
	})
}

func (b *wktBuffer) writeRings(p Polygon) {
	b.writeList(p.Len(), func(i int) {
		if i == 0 {
			b.writeCoords(p.shell.coords)
			return
		}
		b.writeCoords(p.holes[i-1].coords)
	})
}

func (p Point) WKT(includeZ bool) string {
	b := &wktBuffer{includeZ: includeZ}
	b.writeHeader(KindPoint)
	b.writeCoords([]Coordinate{p.coord})
	return b.String()
}

func (mp MultiPoint) WKT(includeZ bool) string {
	b := &wktBuffer{includeZ: includeZ}
	b.writeHeader(KindMultiPoint)
	b.writeCoords(mp.coords)
	return b.String()
}

func (ls LineString) WKT(includeZ bool) string {
	b := &wktBuffer{includeZ: includeZ}
	b.writeHeader(KindLineString)
	b.writeCoords(ls.coords)
	return b.String()
}

func (ml MultiLineString) WKT(includeZ bool) string {
	b := &wktBuffer{includeZ: includeZ}
	b.writeHeader(KindMultiLineString)
	b.writeList(len(ml.lines), func(i int) {
		b.writeCoords(ml.lines[i].coords)
	})
	return b.String()
}

func (p Polygon) WKT(includeZ bool) string {
	b := &wktBuffer{includeZ: includeZ}
	b.writeHeader(KindPolygon)
	b.writeRings(p)
	return b.String()
}

func (mp MultiPolygon) WKT(includeZ bool) string {
	b := &wktBuffer{includeZ: includeZ}
	b.writeHeader(KindMultiPolygon)
	b.writeList(len(mp.polygons), func(i int) {
		b.writeRings(mp.polygons[i])
	})
	return b.String()
}
