// Package draw rasterizes the playfield onto a terminal using half-block
// characters, which doubles the vertical resolution of a cell grid.
package draw

import (
	"math"
	"slices"
	"strings"

	"github.com/tomz197/rockfall/internal/physics"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Viewport places a canvas of Cols x Rows cells on a terminal. Offsets are
// 0-based: the canvas starts at column OffCol+1, row OffRow+1.
type Viewport struct {
	Cols   int
	Rows   int
	OffCol int
	OffRow int
}

// FitViewport returns the largest canvas that shows a logicalW x logicalH
// plane on a termW x termH terminal without distortion. One row is kept
// for the HUD and one cell on every side for the border.
func FitViewport(termW, termH int, logicalW, logicalH float64) Viewport {
	availCols := max(termW-2, 1)
	availRows := max(termH-3, 1)

	// A cell is one pixel wide and two tall.
	scale := min(float64(availCols)/logicalW, float64(availRows*2)/logicalH)
	cols := max(int(logicalW*scale), 1)
	rows := max(int(logicalH*scale/2), 1)

	return Viewport{
		Cols:   cols,
		Rows:   rows,
		OffCol: (termW - cols) / 2,
		OffRow: 1 + (termH-1-rows)/2,
	}
}

// Canvas is a monochrome pixel buffer two pixels tall per terminal cell.
// Drawing calls take logical coordinates and scale them to pixels.
type Canvas struct {
	cols   int
	rows   int
	height int    // rows * 2
	pixels []bool // [y*cols + x]

	logicalW float64
	logicalH float64
	scaleX   float64
	scaleY   float64

	scaled []physics.Vec2
	xs     []float64
	points []physics.Vec2
}

// NewCanvas creates a cols x rows cell canvas showing a logicalW x logicalH plane.
func NewCanvas(cols, rows int, logicalW, logicalH float64) *Canvas {
	c := &Canvas{logicalW: logicalW, logicalH: logicalH}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell dimensions, keeping the logical plane.
func (c *Canvas) Resize(cols, rows int) {
	if cols != c.cols || rows != c.rows {
		c.cols = cols
		c.rows = rows
		c.height = rows * 2
		c.pixels = make([]bool, c.height*cols)
	}
	c.scaleX = float64(cols) / c.logicalW
	c.scaleY = float64(c.height) / c.logicalH
}

func (c *Canvas) Cols() int { return c.cols }
func (c *Canvas) Rows() int { return c.rows }

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.height {
		c.pixels[y*c.cols+x] = true
	}
}

// Lit reports whether the pixel at pixel coordinates x, y is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || x >= c.cols || y < 0 || y >= c.height {
		return false
	}
	return c.pixels[y*c.cols+x]
}

func (c *Canvas) toPixel(p physics.Vec2) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// Plot sets the pixel under logical point p. Points off the canvas are ignored.
func (c *Canvas) Plot(p physics.Vec2) {
	c.setPixel(c.toPixel(p))
}

// DrawLine draws a segment with Bresenham's algorithm.
func (c *Canvas) DrawLine(a, b physics.Vec2) {
	x1, y1 := c.toPixel(a)
	x2, y2 := c.toPixel(b)

	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	e := dx + dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// DrawPolygon outlines a closed polygon, filling it first if filled is set.
// Fewer than three points draw nothing.
func (c *Canvas) DrawPolygon(points []physics.Vec2, filled bool) {
	n := len(points)
	if n < 3 {
		return
	}
	if filled {
		c.fill(points)
	}
	for i := range points {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// DrawDisc fills a circle. Discs smaller than a pixel still light one.
func (c *Canvas) DrawDisc(center physics.Vec2, radius float64) {
	cx, cy := center.X*c.scaleX, center.Y*c.scaleY
	rx, ry := radius*c.scaleX, radius*c.scaleY
	if rx < 0.5 && ry < 0.5 {
		c.Plot(center)
		return
	}

	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		dy := (float64(y) - cy) / ry
		if dy*dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		for x := int(math.Ceil(cx - half)); x <= int(math.Floor(cx+half)); x++ {
			c.setPixel(x, y)
		}
	}
}

// fill rasterizes the polygon interior by even-odd scanlines in pixel space.
func (c *Canvas) fill(points []physics.Vec2) {
	c.scaled = c.scaled[:0]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		s := physics.V(p.X*c.scaleX, p.Y*c.scaleY)
		c.scaled = append(c.scaled, s)
		minY = min(minY, s.Y)
		maxY = max(maxY, s.Y)
	}

	n := len(c.scaled)
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scan := float64(y) + 0.5
		c.xs = c.xs[:0]
		for i := 0; i < n; i++ {
			a, b := c.scaled[i], c.scaled[(i+1)%n]
			if (a.Y <= scan) != (b.Y <= scan) {
				c.xs = append(c.xs, a.X+(scan-a.Y)/(b.Y-a.Y)*(b.X-a.X))
			}
		}
		slices.Sort(c.xs)
		for i := 0; i+1 < len(c.xs); i += 2 {
			for x := int(math.Ceil(c.xs[i])); x <= int(math.Floor(c.xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Render writes every non-empty cell to cw. Empty cells are skipped, so the
// screen must be cleared beforehand.
func (c *Canvas) Render(cw *ChunkWriter) {
	for row := 0; row < c.rows; row++ {
		top := c.pixels[row*2*c.cols : (row*2+1)*c.cols]
		bottom := c.pixels[(row*2+1)*c.cols : (row*2+2)*c.cols]
		for col := 0; col < c.cols; col++ {
			var ch rune
			switch {
			case top[col] && bottom[col]:
				ch = BlockFull
			case top[col]:
				ch = BlockUpperHalf
			case bottom[col]:
				ch = BlockLowerHalf
			default:
				continue
			}
			cw.MoveCursor(col+1, row+1)
			cw.WriteRune(ch)
		}
	}
}

// RenderBorder frames the canvas one cell outside its edges.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	bar := strings.Repeat("─", c.cols)

	cw.WriteAt(0, 0, "┌"+bar+"┐")
	for row := 1; row <= c.rows; row++ {
		cw.WriteAt(0, row, "│")
		cw.WriteAt(c.cols+1, row, "│")
	}
	cw.WriteAt(0, c.rows+1, "└"+bar+"┘")
}

// LogicalToCell converts a logical point to a 1-based cell on the canvas.
func (c *Canvas) LogicalToCell(p physics.Vec2) (col, row int) {
	x, y := c.toPixel(p)
	return x + 1, y/2 + 1
}

// BorrowPoints returns a scratch slice of length n, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []physics.Vec2 {
	if cap(c.points) < n {
		c.points = make([]physics.Vec2, n)
	}
	return c.points[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
