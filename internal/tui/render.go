package tui

import (
	"sort"
	"strings"
)

func (m Model) projectable() bool {
	return m.scene.bbox.MaxX > m.scene.bbox.MinX && m.scene.bbox.MaxY > m.scene.bbox.MinY
}

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !m.projectable() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	bb := m.scene.bbox
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := bb.MinX + nx*(bb.MaxX-bb.MinX)
	lat := bb.MinY + ny*(bb.MaxY-bb.MinY)
	return lon, lat, true
}

// fillPolygon fills rings with the even-odd rule per micro scanline, so holes
// stay empty.
func fillPolygon(br *brailleBuf, rings [][][2]int, hMic int) {
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for _, ring := range rings {
			for i := 0; i < len(ring); i++ {
				a := ring[i]
				b := ring[(i+1)%len(ring)]
				if a[1] == b[1] { // horizontal edge: skip
					continue
				}
				y0, y1 := a[1], b[1]
				x0, x1 := a[0], b[0]
				if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
					t := float64(yMic-y0) / float64(y1-y0)
					xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				br.setPixel(xMic, yMic)
			}
		}
	}
}

func (m Model) renderAsciiMap(w, h int) string {
	// High-resolution braille buffer for crisp lines/edges
	br := newBrailleBuf(w, h)

	if m.showPolys {
		for _, poly := range m.scene.polygons {
			var ringsMic [][][2]int
			for _, ring := range poly.rings {
				var sm [][2]int
				for _, p := range ring {
					mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
					if !ok {
						continue
					}
					sm = append(sm, [2]int{mx, my})
				}
				if len(sm) >= 3 {
					ringsMic = append(ringsMic, sm)
				}
			}
			if len(ringsMic) == 0 {
				continue
			}
			fillPolygon(br, ringsMic, h*4)
			// draw edges (high-res)
			for _, r := range ringsMic {
				for i := 0; i < len(r); i++ {
					a := r[i]
					b := r[(i+1)%len(r)]
					br.drawLineMicro(a[0], a[1], b[0], b[1])
				}
			}
		}
	}

	if m.showLines {
		for _, ls := range m.scene.lines {
			var prev *[2]int
			for _, p := range ls.coords {
				mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
				if !ok {
					continue
				}
				if prev != nil {
					br.drawLineMicro(prev[0], prev[1], mx, my)
				}
				prev = &[2]int{mx, my}
			}
		}
	}

	if m.showPoints {
		for _, p := range m.scene.points {
			mx, my, ok := m.screenXYMicro(p.v[0], p.v[1], w, h)
			if !ok {
				continue
			}
			// a 2x2 dot stays visible next to filled polygons
			br.setPixel(mx, my)
			br.setPixel(mx+1, my)
			br.setPixel(mx, my+1)
			br.setPixel(mx+1, my+1)
		}
	}

	lines := br.toLines()

	// Hover highlight: draw an orange circle at the hovered vertex cell
	if m.hovering {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				lines[cy] = string(r[:cx]) + hoverMarker + string(r[cx+1:])
			}
		}
	}
	return strings.Join(lines, "\n")
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	zx, zy, ok := m.normalize(lon, lat)
	if !ok {
		return 0, 0, false
	}
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps lon/lat to current screen integer coordinates considering zoom and pan.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	zx, zy, ok := m.normalize(lon, lat)
	if !ok {
		return 0, 0, false
	}
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// normalize maps lon/lat into the unit square, zoomed around its center.
func (m Model) normalize(lon, lat float64) (float64, float64, bool) {
	if !m.projectable() {
		return 0, 0, false
	}
	bb := m.scene.bbox
	nx := (lon - bb.MinX) / (bb.MaxX - bb.MinX)
	ny := (lat - bb.MinY) / (bb.MaxY - bb.MinY)
	return 0.5 + (nx-0.5)*m.zoom, 0.5 + (ny-0.5)*m.zoom, true
}

// nearestVertex finds the vertex closest to (x, y) in the grid that project
// maps into, returning its grid position and feature index.
func (m Model) nearestVertex(x, y int, project func(lon, lat float64) (int, int, bool)) (bx, by, feature int, ok bool) {
	best := 1<<31 - 1
	feature = -1
	m.scene.eachVertex(func(v vertex, f int) {
		px, py, ok := project(v[0], v[1])
		if !ok {
			return
		}
		dx, dy := px-x, py-y
		if d := dx*dx + dy*dy; d < best {
			best = d
			bx, by, feature = px, py, f
		}
	})
	return bx, by, feature, feature >= 0
}

// inspectNearest finds the feature with a vertex closest to the viewport center.
func (m Model) inspectNearest() (int, bool) {
	w, h := 80, 24
	if m.width > 0 && m.height > 0 {
		lay := m.layout()
		w, h = lay.mapW, lay.mapH
	}
	_, _, f, ok := m.nearestVertex(w/2, h/2, func(lon, lat float64) (int, int, bool) {
		return m.screenXY(lon, lat, w, h)
	})
	return f, ok
}
