package viz

import "strings"

// Braille cell layout, 2x4 dot positions:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a braille sub-pixel raster with a plain-text overlay layer for
// labels. Sub-pixel resolution is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	cells         [][]rune
	overlay       [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.cells = make([][]rune, h)
	c.overlay = make([][]rune, h)
	for i := 0; i < h; i++ {
		c.cells[i] = make([]rune, w)
		c.overlay[i] = make([]rune, w)
		for j := 0; j < w; j++ {
			c.cells[i][j] = brailleBase
		}
	}
	return c
}

// Plot sets one sub-pixel. Out-of-range coordinates are ignored.
func (c *Canvas) Plot(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
}

// Line draws a segment in sub-pixel space (Bresenham).
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx - dy
	for {
		c.Plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

// Label writes text at a character cell position, on top of any drawing.
func (c *Canvas) Label(row, col int, text string) {
	if row < 0 || row >= c.Height {
		return
	}
	for i, r := range text {
		if col+i < 0 || col+i >= c.Width {
			continue
		}
		c.overlay[row][col+i] = r
	}
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBase
			c.overlay[i][j] = 0
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.Width + 1) * c.Height)
	for i := range c.cells {
		for j := range c.cells[i] {
			if o := c.overlay[i][j]; o != 0 {
				b.WriteRune(o)
			} else {
				b.WriteRune(c.cells[i][j])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
