package universe

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when width or height is not positive
	ErrInvalidDimensions = errors.New("universe: dimensions must be > 0")

	// ErrInvalidProbability is returned when the alive probability is outside [0,1]
	ErrInvalidProbability = errors.New("universe: alive probability must be within [0,1]")

	// ErrInvalidCellSize is returned when the cell size is negative
	ErrInvalidCellSize = errors.New("universe: cell size must be >= 0")
)

// ConstructionError reports the option that prevented a Universe from being created
type ConstructionError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%v (%s = %v)", e.Err, e.Field, e.Value)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
