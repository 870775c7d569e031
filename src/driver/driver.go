package driver

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"sync"
	"time"

	"pixlife/src/universe"
)

var ErrClosed = errors.New("driver: closed")

// Driver is the external driver of a Universe
// every operation is executed by one command loop goroutine, so the Universe is never entered concurrently;
// the public methods are safe to call from any goroutine except from Viewer.Refresh
type Driver struct {
	state struct {
		Status
		config Config
		sync.Mutex
	}
	universe  *universe.Universe //owned by the command loop
	surface   universe.Surface
	cancelRun context.CancelFunc //owned by the command loop
	stateCh   chan Status
	views     []Viewer
	viewsMu   sync.Mutex
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
	logger    *log.Logger
}

// New creates the Driver with the first Universe, renders it and starts the command loop
// stateCh is optional, when given every status change is written to it
func New(c Config, s universe.Surface, stateCh chan Status) (*Driver, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	u, err := universe.New(c.universeOptions(), s)
	if err != nil {
		return nil, err
	}
	logger := c.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	d := &Driver{
		universe:  u,
		surface:   s,
		stateCh:   stateCh,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		logger:    logger,
	}
	d.state.config = c
	d.state.Status = d.status(RunningStatePaused, 0)
	u.Render()
	go d.mainLoop()
	return d, nil
}

// RegisterViewer registers the viewer - the driver will call the viewer when the state is changed
func (d *Driver) RegisterViewer(v Viewer) {
	d.viewsMu.Lock()
	d.views = append(d.views, v)
	d.viewsMu.Unlock()
	v.Register(d)
}

// Status returns current status
func (d *Driver) Status() Status {
	d.state.Lock()
	defer d.state.Unlock()
	return d.state.Status
}

// Config returns current configuration
func (d *Driver) Config() Config {
	d.state.Lock()
	defer d.state.Unlock()
	return d.state.config
}

// Snapshot returns a copy of the current generation
func (d *Driver) Snapshot() (g universe.Grid, err error) {
	err = d.exec(func() error {
		g = d.universe.Snapshot()
		return nil
	})
	return
}

// Run starts ticking once per interval, returns immediately
func (d *Driver) Run() error {
	return d.exec(d.run)
}

// Pause stops the run loop, the Universe is kept as is
func (d *Driver) Pause() error {
	return d.exec(d.pause)
}

// Toggle flips the run/pause flag
func (d *Driver) Toggle() error {
	return d.exec(func() error {
		if d.Status().RunningMode == RunningStateRun {
			return d.pause()
		}
		return d.run()
	})
}

// Step does one generation regardless of the run/pause flag
func (d *Driver) Step() error {
	return d.exec(func() error {
		if d.Status().RunningMode == RunningStateFinished {
			return nil
		}
		d.tick(d.Status().RunningMode)
		return nil
	})
}

// Reset builds the new Universe with the current configuration and pauses
func (d *Driver) Reset() error {
	return d.exec(func() error {
		d.stopRun()
		return d.rebuild(d.Config(), RunningStatePaused)
	})
}

// Reseed builds the new Universe from a fresh clock seed, the run/pause flag is kept
func (d *Driver) Reseed() error {
	return d.exec(func() error {
		c := d.Config()
		seeded := c
		seeded.Seed = 0
		u, err := universe.New(seeded.universeOptions(), d.surface)
		if err != nil {
			return err
		}
		d.replace(u, c, d.keptMode())
		return nil
	})
}

// SetSize changes the field dimensions, the Universe is rebuilt
// invalid dimensions return the construction error and keep the current Universe
func (d *Driver) SetSize(width int, height int) error {
	return d.exec(func() error {
		c := d.Config()
		c.Width, c.Height = width, height
		return d.rebuild(c, d.keptMode())
	})
}

// SetAliveProbability changes the initial density, the Universe is rebuilt
func (d *Driver) SetAliveProbability(p float64) error {
	return d.exec(func() error {
		c := d.Config()
		c.AliveProbability = p
		return d.rebuild(c, d.keptMode())
	})
}

// SetInterval changes the delay between ticks, the Universe is kept
func (d *Driver) SetInterval(interval time.Duration) error {
	if interval < 0 {
		return ErrInvalidInterval
	}
	return d.exec(func() error {
		d.state.Lock()
		d.state.config.Interval = interval
		d.state.Status.Interval = interval
		d.state.Unlock()
		d.publish()
		return nil
	})
}

// Click inverses the cell at column, row and renders
func (d *Driver) Click(column int, row int) error {
	return d.exec(func() error {
		d.click(column, row)
		return nil
	})
}

// ClickAt inverses the cell under the pointer at pixel x, y
func (d *Driver) ClickAt(x float64, y float64) error {
	return d.exec(func() error {
		column, row, ok := PointerToCell(x, y, d.universe.CellSize())
		if ok {
			d.click(column, row)
		}
		return nil
	})
}

// Redraw repaints the whole field, used when the surface lost its content
func (d *Driver) Redraw() error {
	return d.exec(func() error {
		d.universe.Invalidate()
		d.universe.Render()
		return nil
	})
}

// Close stops the run loop and the command loop, returns immediately
func (d *Driver) Close() {
	d.closeOnce.Do(func() {
		close(d.closeCh)
	})
}

// PointerToCell maps pointer pixel coordinates to the grid coordinates
// ok is false for coordinates which can't address a cell (negative, NaN, Inf)
func PointerToCell(x float64, y float64, cellSize int) (column int, row int, ok bool) {
	if cellSize <= 0 {
		return 0, 0, false
	}
	cx := math.Floor(x / float64(cellSize))
	cy := math.Floor(y / float64(cellSize))
	if !(cx >= 0 && cx < math.MaxInt32 && cy >= 0 && cy < math.MaxInt32) {
		return 0, 0, false
	}
	return int(cx), int(cy), true
}

// exec sends the command to the main loop and waits for its result
func (d *Driver) exec(cmd func() error) error {
	done := make(chan error, 1)
	select {
	case d.controlCh <- func() { done <- cmd() }:
	case <-d.closeCh:
		return ErrClosed
	}
	select {
	case err := <-done:
		return err
	case <-d.closeCh:
		return ErrClosed
	}
}

// mainLoop - the main cycle, should start as a goroutine
// waits for command and executes
func (d *Driver) mainLoop() {
	for {
		select {
		case cmd := <-d.controlCh:
			cmd()
		case <-d.closeCh:
			d.stopRun()
			return
		}
	}
}

// run starts the run loop
// the loop stops on Pause, Reset, Close or when the finishing conditions are reached
func (d *Driver) run() error {
	if mode := d.Status().RunningMode; mode == RunningStateRun || mode == RunningStateFinished {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancelRun = cancel
	d.switchRunningState(RunningStateRun)
	go d.runLoop(ctx)
	return nil
}

// runLoop requests one tick per interval until ctx is cancelled
func (d *Driver) runLoop(ctx context.Context) {
	for {
		d.state.Lock()
		interval := d.state.config.Interval
		d.state.Unlock()

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-d.closeCh:
			timer.Stop()
			return
		case <-timer.C:
		}

		err := d.exec(func() error {
			//the run could be paused while this command was queued
			if ctx.Err() == nil {
				d.tick(RunningStateRun)
			}
			return nil
		})
		if err != nil {
			return
		}
	}
}

// pause stops the run loop
func (d *Driver) pause() error {
	d.stopRun()
	if d.Status().RunningMode == RunningStateRun {
		d.switchRunningState(RunningStatePaused)
	}
	return nil
}

func (d *Driver) stopRun() {
	if d.cancelRun != nil {
		d.cancelRun()
		d.cancelRun = nil
	}
}

// tick does one generation, renders it and checks the finishing conditions
func (d *Driver) tick(mode RunningState) {
	start := time.Now()
	d.universe.Tick()
	elapsed := time.Since(start)
	d.universe.Render()

	c := d.Config()
	gen := d.universe.Generation()
	if c.MaxSteps > 0 && gen >= c.MaxSteps {
		d.logger.Printf("finished: max steps %d reached", c.MaxSteps)
		mode = RunningStateFinished
	} else if c.StopWhenSettled && (d.universe.Settled() || d.universe.LiveCells() == 0) {
		d.logger.Printf("finished: the field settled at generation %d", gen)
		mode = RunningStateFinished
	}
	if mode == RunningStateFinished {
		d.stopRun()
	}

	d.state.Lock()
	d.state.Status = d.status(mode, elapsed)
	d.state.Unlock()
	d.publish()
}

func (d *Driver) click(column int, row int) {
	d.universe.Click(column, row)
	d.universe.Render()
	d.state.Lock()
	d.state.Status.LiveCells = d.universe.LiveCells()
	d.state.Unlock()
	d.publish()
}

// keptMode is the running mode a rebuilt Universe continues with
func (d *Driver) keptMode() RunningState {
	if mode := d.Status().RunningMode; mode != RunningStateFinished {
		return mode
	}
	return RunningStatePaused
}

// rebuild replaces the Universe with the new one built from c
func (d *Driver) rebuild(c Config, mode RunningState) error {
	u, err := universe.New(c.universeOptions(), d.surface)
	if err != nil {
		return err
	}
	d.replace(u, c, mode)
	return nil
}

func (d *Driver) replace(u *universe.Universe, c Config, mode RunningState) {
	if mode != RunningStateRun {
		d.stopRun()
	}
	d.logger.Printf("new universe %dx%d, alive probability %v, %s", c.Width, c.Height, c.AliveProbability, c.Boundary)
	d.universe = u
	d.state.Lock()
	d.state.config = c
	d.state.Status = d.status(mode, 0)
	d.state.Unlock()
	u.Render()
	d.publish()
}

// switchRunningState switch the running state
// also writes the new state to the stateCh to signal upper control software
func (d *Driver) switchRunningState(to RunningState) {
	d.state.Lock()
	d.state.RunningMode = to
	d.state.Unlock()
	d.publish()
}

// status builds the Status of the current Universe, the caller holds the state lock
func (d *Driver) status(mode RunningState, tickTime time.Duration) Status {
	return Status{
		Generation:       d.universe.Generation(),
		RunningMode:      mode,
		LiveCells:        d.universe.LiveCells(),
		TickTime:         tickTime,
		Width:            d.universe.Width(),
		Height:           d.universe.Height(),
		CellSize:         d.universe.CellSize(),
		Boundary:         d.universe.Boundary(),
		AliveProbability: d.state.config.AliveProbability,
		Interval:         d.state.config.Interval,
	}
}

// publish refreshes the views, then writes the status to the stateCh
// a receiver of the stateCh sees every view already refreshed with that status
func (d *Driver) publish() {
	st := d.Status()
	d.viewsMu.Lock()
	views := make([]Viewer, len(d.views))
	copy(views, d.views)
	d.viewsMu.Unlock()
	for _, v := range views {
		v.Refresh(st)
	}
	if d.stateCh != nil {
		select {
		case d.stateCh <- st:
		case <-d.closeCh:
		}
	}
}
