package driver

import (
	"errors"
	"log"
	"time"

	"pixlife/src/universe"
)

// default options
const (
	DefInterval = time.Millisecond * 100
	DefMaxSteps = 0
)

var ErrInvalidInterval = errors.New("driver: interval must be >= 0")

// Config is the driver's configuration surface
// Width, Height, AliveProbability, CellSize, Boundary, Seed and Template shape the Universe,
// changing any of them builds a new one; Interval only paces the run loop
type Config struct {
	Width            int
	Height           int
	AliveProbability float64
	CellSize         int
	Boundary         universe.Boundary
	Seed             uint64
	Template         *universe.Template
	Interval         time.Duration
	MaxSteps         int  //0 is unlimited
	StopWhenSettled  bool //finish the run when the field stops changing or dies out
	Logger           *log.Logger
}

var DefaultConfig = Config{
	Width:            universe.DefaultOptions.Width,
	Height:           universe.DefaultOptions.Height,
	AliveProbability: universe.DefaultOptions.AliveProbability,
	CellSize:         universe.DefaultOptions.CellSize,
	Boundary:         universe.DefaultOptions.Boundary,
	Interval:         DefInterval,
	MaxSteps:         DefMaxSteps,
}

// universeOptions projects the config to the Universe's construction options
func (c Config) universeOptions() universe.Options {
	return universe.Options{
		Width:            c.Width,
		Height:           c.Height,
		AliveProbability: c.AliveProbability,
		CellSize:         c.CellSize,
		Boundary:         c.Boundary,
		Seed:             c.Seed,
		Template:         c.Template,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Interval < 0 {
		return ErrInvalidInterval
	}
	return c.universeOptions().Validate()
}
