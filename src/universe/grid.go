package universe

import "strings"

// Grid is the rectangular field of cells at one point of time
// cells are stored in row-major order: index = row*width + column
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// createGrid allocates the new all-dead grid
func createGrid(width int, height int) Grid {
	return Grid{width: width, height: height, cells: make([]Cell, width*height)}
}

func (g Grid) Width() int  { return g.width }
func (g Grid) Height() int { return g.height }

// Len returns the number of cells, always width*height
func (g Grid) Len() int { return len(g.cells) }

// Index returns the linear index of the cell at row, column
func (g Grid) Index(row int, column int) int {
	return row*g.width + column
}

// Contains reports whether row, column lies inside the grid
func (g Grid) Contains(row int, column int) bool {
	return row >= 0 && row < g.height && column >= 0 && column < g.width
}

// At returns the cell state at row, column; positions outside the grid are Dead
func (g Grid) At(row int, column int) Cell {
	if !g.Contains(row, column) {
		return Dead
	}
	return g.cells[g.Index(row, column)]
}

// LiveCells calculates the count of live cells
func (g Grid) LiveCells() int {
	n := 0
	for _, c := range g.cells {
		if c == Alive {
			n++
		}
	}
	return n
}

// Equal reports whether both grids have the same dimensions and states
func (g Grid) Equal(o Grid) bool {
	if g.width != o.width || g.height != o.height || len(g.cells) != len(o.cells) {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid one row per line, '#' for alive and '.' for dead
func (g Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for row := 0; row < g.height; row++ {
		if row != 0 {
			b.WriteByte('\n')
		}
		for _, c := range g.cells[row*g.width : (row+1)*g.width] {
			if c == Alive {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

func (g Grid) clone() Grid {
	c := Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}
