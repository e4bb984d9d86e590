package tui

// brailleDots maps a micro-pixel row and column inside a cell to its bit in
// the U+2800 block.
var brailleDots = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleBuf is a canvas of w x h cells, each holding 2x4 micro-pixels.
type brailleBuf struct {
	w, h  int
	cells [][]uint8
}

func newBrailleBuf(w, h int) *brailleBuf {
	cells := make([][]uint8, h)
	for i := range cells {
		cells[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, cells: cells}
}

// cell resolves a micro coordinate to its cell and dot bit.
func (b *brailleBuf) cell(mx, my int) (cx, cy int, bit uint8, ok bool) {
	if mx < 0 || my < 0 {
		return 0, 0, 0, false
	}
	cx, cy = mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return 0, 0, 0, false
	}
	return cx, cy, brailleDots[my%4][mx%2], true
}

// setPixel sets a micro-pixel; positions off the canvas are ignored.
func (b *brailleBuf) setPixel(mx, my int) {
	if cx, cy, bit, ok := b.cell(mx, my); ok {
		b.cells[cy][cx] |= bit
	}
}

func (b *brailleBuf) pixel(mx, my int) bool {
	cx, cy, bit, ok := b.cell(mx, my)
	return ok && b.cells[cy][cx]&bit != 0
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y, row := range b.cells {
		rs := make([]rune, b.w)
		for x, mask := range row {
			rs[x] = ' '
			if mask != 0 {
				rs[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(rs)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
