package universe

// Cell is the state of one grid position
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}

// Inverse returns the opposite state
func (c Cell) Inverse() Cell {
	if c == Alive {
		return Dead
	}
	return Alive
}

// nextState applies the life rule to a cell with n live neighbours
func nextState(c Cell, n int) Cell {
	if n == 3 {
		return Alive
	} else if n == 2 && c == Alive {
		return Alive
	}
	return Dead
}
