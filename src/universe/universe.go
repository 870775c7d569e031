package universe

import (
	"math/rand/v2"
	"time"
)

// Universe is the game of life engine
// it owns the current generation, the spare buffer for the next one and a non-owned drawing surface
// Universe is not safe for concurrent use: one caller drives all the methods sequentially
type Universe struct {
	width    int
	height   int
	cellSize int
	boundary Boundary

	cells Grid //current generation
	next  Grid //spare buffer, swapped with cells on every tick

	generation int
	settled    bool

	surface  Surface
	rendered Grid //the frame the surface shows, valid when painted is true
	painted  bool
}

// New creates the Universe with the random initial generation
// every cell is alive with the probability o.AliveProbability, independently of others
// the surface may be nil, Render is a no-op then
func New(o Options, s Surface) (*Universe, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	cellSize := o.CellSize
	if cellSize == 0 {
		cellSize = DefCellSize
		if cs, ok := s.(CellSizer); ok && cs.CellSize() > 0 {
			cellSize = cs.CellSize()
		}
	}

	u := &Universe{
		width:    o.Width,
		height:   o.Height,
		cellSize: cellSize,
		boundary: o.Boundary,
		cells:    createGrid(o.Width, o.Height),
		next:     createGrid(o.Width, o.Height),
		surface:  s,
	}

	seed := o.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, 0))
	for i := range u.cells.cells {
		if rng.Float64() < o.AliveProbability {
			u.cells.cells[i] = Alive
		}
	}
	if o.Template != nil {
		o.Template.settle(u.cells)
	}
	return u, nil
}

func (u *Universe) Width() int         { return u.width }
func (u *Universe) Height() int        { return u.height }
func (u *Universe) Boundary() Boundary { return u.boundary }

// CellSize returns pixels per cell, fixed for the Universe's lifetime
func (u *Universe) CellSize() int { return u.cellSize }

// Generation returns the number of ticks since construction
func (u *Universe) Generation() int { return u.generation }

// Settled reports whether the last tick left every cell unchanged
func (u *Universe) Settled() bool { return u.settled }

// LiveCells calculates the count of live cells in the current generation
func (u *Universe) LiveCells() int { return u.cells.LiveCells() }

// Snapshot returns a copy of the current generation
func (u *Universe) Snapshot() Grid { return u.cells.clone() }

// Tick advances the universe by exactly one generation
// the next generation is calculated from the current one into the spare buffer, then the buffers are swapped
func (u *Universe) Tick() {
	cur, nxt := u.cells.cells, u.next.cells
	changed := false
	for row := 0; row < u.height; row++ {
		base := row * u.width
		for column := 0; column < u.width; column++ {
			idx := base + column
			state := nextState(cur[idx], u.liveNeighbours(row, column))
			changed = changed || state != cur[idx]
			nxt[idx] = state
		}
	}
	u.cells, u.next = u.next, u.cells
	u.generation++
	u.settled = !changed
}

// liveNeighbours counts live cells in the Moore neighbourhood of row, column
func (u *Universe) liveNeighbours(row int, column int) int {
	n := 0
	cells := u.cells.cells
	for dr := -1; dr < 2; dr++ {
		for dc := -1; dc < 2; dc++ {
			//skip my position
			if dr == 0 && dc == 0 {
				continue
			}
			r := row + dr
			c := column + dc
			if u.boundary == Toroidal {
				r = (r + u.height) % u.height
				c = (c + u.width) % u.width
			} else if r < 0 || c < 0 || r >= u.height || c >= u.width {
				//skip coordinates outside the area
				continue
			}
			if cells[r*u.width+c] == Alive {
				n++
			}
		}
	}
	return n
}

// Click inverses the cell state at column, row
// coordinates outside the grid are ignored
func (u *Universe) Click(column int, row int) {
	if !u.cells.Contains(row, column) {
		return
	}
	idx := u.cells.Index(row, column)
	u.cells.cells[idx] = u.cells.cells[idx].Inverse()
}

// Render synchronises the surface with the current generation
// the first call (and the first one after Invalidate) paints every cell,
// later calls paint only the cells changed since the previous Render
func (u *Universe) Render() {
	if u.surface == nil {
		return
	}
	cur := u.cells.cells
	if !u.painted {
		u.surface.Resize(u.width, u.height, u.cellSize)
		if u.rendered.cells == nil {
			u.rendered = createGrid(u.width, u.height)
		}
		for i, c := range cur {
			u.surface.Paint(i%u.width, i/u.width, c)
		}
		u.painted = true
	} else {
		prev := u.rendered.cells
		for i, c := range cur {
			if prev[i] != c {
				u.surface.Paint(i%u.width, i/u.width, c)
			}
		}
	}
	copy(u.rendered.cells, cur)
	u.surface.Flush()
}

// Invalidate forgets the rendered frame so the next Render repaints the whole field
func (u *Universe) Invalidate() {
	u.painted = false
}
