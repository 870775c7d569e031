package universe

import (
	"fmt"
	"math"
	"strings"
)

// Boundary is the neighbour counting policy at the grid edges
type Boundary int

const (
	//Bounded excludes neighbours outside the grid
	Bounded Boundary = iota
	//Toroidal wraps the opposite edges around
	Toroidal
)

// default options
const (
	DefWidth            = 100
	DefHeight           = 50
	DefAliveProbability = 0.2
	DefCellSize         = 10
)

var boundaryNames = map[Boundary]string{
	Bounded:  "bounded",
	Toroidal: "toroidal",
}

func (b Boundary) String() string {
	if s, ok := boundaryNames[b]; ok {
		return s
	}
	return fmt.Sprintf("boundary(%d)", int(b))
}

// ParseBoundary resolves the boundary policy by its name
func ParseBoundary(name string) (Boundary, error) {
	for b, s := range boundaryNames {
		if strings.EqualFold(s, name) {
			return b, nil
		}
	}
	return Bounded, fmt.Errorf("universe: unknown boundary %q", name)
}

// Options represents the Universe's construction options
type Options struct {
	Width            int
	Height           int
	AliveProbability float64
	CellSize         int      //pixels per cell, 0 asks the surface (see CellSizer)
	Boundary         Boundary //neighbour counting policy
	Seed             uint64   //0 seeds from the clock
	Template         *Template
}

var DefaultOptions = Options{
	Width:            DefWidth,
	Height:           DefHeight,
	AliveProbability: DefAliveProbability,
	Boundary:         Bounded,
}

// Validate checks the options, the returned error is a *ConstructionError
func (o Options) Validate() error {
	if o.Width <= 0 {
		return &ConstructionError{Field: "width", Value: o.Width, Err: ErrInvalidDimensions}
	}
	if o.Height <= 0 {
		return &ConstructionError{Field: "height", Value: o.Height, Err: ErrInvalidDimensions}
	}
	p := o.AliveProbability
	if math.IsNaN(p) || p < 0 || p > 1 {
		return &ConstructionError{Field: "alive probability", Value: p, Err: ErrInvalidProbability}
	}
	if o.CellSize < 0 {
		return &ConstructionError{Field: "cell size", Value: o.CellSize, Err: ErrInvalidCellSize}
	}
	return nil
}
