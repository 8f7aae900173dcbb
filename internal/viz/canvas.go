package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel grid with an optional per-cell foreground
// color. Sub-pixel resolution is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	colors        [][]string // hex color per cell, "" for default
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		colors: make([][]string, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.colors[i] = make([]string, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

func (c *Canvas) cell(x, y int) (int, int, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return col, row, true
}

// Set turns on the sub-pixel at (x, y).
func (c *Canvas) Set(x, y int) {
	col, row, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// SetColored turns on the sub-pixel and tints its cell. The last
// writer to a cell wins the color.
func (c *Canvas) SetColored(x, y int, hex string) {
	col, row, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.colors[row][col] = hex
}

// Clear resets pixels and colors.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.colors[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle draws a filled disc in sub-pixel coordinates.
func (c *Canvas) FillCircle(cx, cy, r int, hex string) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.SetColored(cx+x, cy+y, hex)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.Grid {
		run := &strings.Builder{}
		current := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(current)).Render(run.String()))
			}
			run.Reset()
		}
		for col := range c.Grid[row] {
			if c.colors[row][col] != current {
				flush()
				current = c.colors[row][col]
			}
			run.WriteRune(c.Grid[row][col])
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
