package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection.
// Items are registered in every cell their bounding square overlaps and can
// then be looked up by a query square in time proportional to local density.
//
// The grid covers a fixed rectangle. Coordinates outside it are clamped to
// the border cells, so items that drift past the edge are still found, only
// less selectively.
type SpatialGrid[T any] struct {
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	originX     float64
	originY     float64
	cols        int
	rows        int
	cells       []gridCell[T]
}

// gridCell stores the items overlapping a cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell[T any] struct {
	items []T
}

// NewSpatialGrid creates a grid covering [minX, maxX] x [minY, maxY].
func NewSpatialGrid[T any](minX, minY, maxX, maxY, cellSize float64) *SpatialGrid[T] {
	if cellSize <= 0 {
		panic("physics: grid cell size must be positive")
	}
	cols := int(math.Ceil((maxX - minX) / cellSize))
	rows := int(math.Ceil((maxY - minY) / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid[T]{
		invCellSize: 1.0 / cellSize,
		originX:     minX,
		originY:     minY,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell[T], cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid[T]) Clear() {
	for i := range g.cells {
		clear(g.cells[i].items)
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert registers item in every cell overlapped by [x-r, x+r] x [y-r, y+r].
func (g *SpatialGrid[T]) Insert(item T, x, y, r float64) {
	minCol, minRow, maxCol, maxRow := g.span(x, y, r)
	for row := minRow; row <= maxRow; row++ {
		offset := row * g.cols
		for col := minCol; col <= maxCol; col++ {
			c := &g.cells[offset+col]
			c.items = append(c.items, item)
		}
	}
}

// Query calls fn for every item registered in the cells overlapped by
// [x-r, x+r] x [y-r, y+r]. An item spanning several cells is reported once
// per cell, so callers must tolerate duplicates.
// If fn returns true, iteration stops early.
func (g *SpatialGrid[T]) Query(x, y, r float64, fn func(item T) bool) {
	minCol, minRow, maxCol, maxRow := g.span(x, y, r)
	for row := minRow; row <= maxRow; row++ {
		offset := row * g.cols
		for col := minCol; col <= maxCol; col++ {
			for _, item := range g.cells[offset+col].items {
				if fn(item) {
					return
				}
			}
		}
	}
}

// span returns the inclusive cell range covered by a bounding square.
func (g *SpatialGrid[T]) span(x, y, r float64) (minCol, minRow, maxCol, maxRow int) {
	minCol, minRow = g.posToCell(x-r, y-r)
	maxCol, maxRow = g.posToCell(x+r, y+r)
	return minCol, minRow, maxCol, maxRow
}

// posToCell converts world coordinates to grid cell coordinates.
// Clamps to valid range to handle positions outside the covered area.
func (g *SpatialGrid[T]) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor((x - g.originX) * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor((y - g.originY) * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
