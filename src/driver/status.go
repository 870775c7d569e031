package driver

import (
	"time"

	"pixlife/src/universe"
)

// The driver running status at the concrete moment
type RunningState int

const (
	RunningStatePaused   RunningState = 0x0
	RunningStateRun      RunningState = 0x1
	RunningStateFinished RunningState = 0x2
)

var runningStateNames = map[RunningState]string{
	RunningStatePaused:   "paused",
	RunningStateRun:      "running",
	RunningStateFinished: "finished",
}

func (s RunningState) String() string {
	return runningStateNames[s]
}

// Status represents the status of the driven Universe at concrete moment
type Status struct {
	Generation       int
	RunningMode      RunningState
	LiveCells        int
	TickTime         time.Duration
	Width            int
	Height           int
	CellSize         int
	Boundary         universe.Boundary
	AliveProbability float64
	Interval         time.Duration
}

// Viewer is the interface to any Viewer - the object who can display simulation data or control the driver
type Viewer interface {
	Refresh(st Status)
	Register(d *Driver)
	Start()
}
