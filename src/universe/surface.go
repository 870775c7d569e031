package universe

// Surface is the external drawing target the Universe paints into on Render
// the Universe doesn't own it and never calls it outside Render
type Surface interface {
	//Resize sets the extent of the drawn field in cells and the pixels per cell
	Resize(columns int, rows int, cellSize int)
	//Paint draws the cell at column, row with the given state
	Paint(column int, row int, state Cell)
	//Flush publishes everything painted since the previous Flush
	Flush()
}

// CellSizer is implemented by surfaces with their own layout policy
// the returned value becomes the Universe's cell size when Options.CellSize is 0
type CellSizer interface {
	CellSize() int
}
