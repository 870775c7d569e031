package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixlife/src/driver"
	"pixlife/src/universe"
)

func newBlinkerDriver(t *testing.T, s universe.Surface) *driver.Driver {
	t.Helper()
	c := driver.DefaultConfig
	c.Width, c.Height = 5, 5
	c.AliveProbability = 0
	c.Interval = time.Millisecond
	c.Template = &universe.Template{Coordinates: [][]int{{1, 2}, {2, 2}, {3, 2}}}
	d, err := driver.New(c, s, nil)
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d
}

func lastFrame(out string) string {
	frames := strings.Split(strings.TrimSuffix(out, "\n\n"), "\n\n")
	return frames[len(frames)-1]
}

func TestTextSurface_Frames(t *testing.T) {
	var out bytes.Buffer
	s := NewTextSurface(&out, false)
	d := newBlinkerDriver(t, s)
	assert.Equal(t, 1, d.Status().CellSize)

	assert.Equal(t, "░░░░░\n░░░░░\n░███░\n░░░░░\n░░░░░", lastFrame(out.String()))

	require.NoError(t, d.Step())
	assert.Equal(t, "░░░░░\n░░█░░\n░░█░░\n░░█░░\n░░░░░", lastFrame(out.String()))

	require.NoError(t, d.ClickAt(0, 4))
	assert.Equal(t, "░░░░░\n░░█░░\n░░█░░\n░░█░░\n█░░░░", lastFrame(out.String()))
}

func TestTextSurface_IgnoresOutOfRangePaint(t *testing.T) {
	var out bytes.Buffer
	s := NewTextSurface(&out, false)
	s.Resize(2, 1, 10)
	s.Paint(5, 5, universe.Alive)
	s.Paint(1, 0, universe.Alive)
	s.Flush()
	assert.Equal(t, "░█\n\n", out.String())
}

func TestConsoleOut(t *testing.T) {
	var out bytes.Buffer
	v := NewConsoleOut(&out, false, 2)
	d := newBlinkerDriver(t, nil)
	d.RegisterViewer(v)
	v.Start()
	assert.Contains(t, out.String(), "Running configuration:")
	assert.Contains(t, out.String(), "Dimension: 5 x 5")
	assert.Contains(t, out.String(), "Boundary: bounded")

	v.Refresh(driver.Status{RunningMode: driver.RunningStateRun, Generation: 4, LiveCells: 3})
	assert.Contains(t, out.String(), "Generations done: 4, live cells: 3")

	v.Refresh(driver.Status{RunningMode: driver.RunningStateFinished, Generation: 5, LiveCells: 3})
	assert.Contains(t, out.String(), "Finished:")
	assert.Contains(t, out.String(), "Last generation: 5")
}

func TestTextSurface_CellSizeDoesNotScaleFrame(t *testing.T) {
	var out bytes.Buffer
	c := driver.DefaultConfig
	c.Width, c.Height = 4, 2
	c.AliveProbability = 1
	c.CellSize = 10
	d, err := driver.New(c, NewTextSurface(&out, false), nil)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, 10, d.Status().CellSize)
	assert.Equal(t, "████\n████", lastFrame(out.String()))
}

func TestConsoleOut_FinishedBeforeStateCh(t *testing.T) {
	var out bytes.Buffer
	c := driver.DefaultConfig
	c.Width, c.Height = 5, 5
	c.AliveProbability = 0
	c.Interval = 0
	c.MaxSteps = 3
	c.Template = &universe.Template{Coordinates: [][]int{{1, 2}, {2, 2}, {3, 2}}}
	stateCh := make(chan driver.Status, 10)
	d, err := driver.New(c, nil, stateCh)
	require.NoError(t, err)
	defer d.Close()

	v := NewConsoleOut(&out, false, 10)
	d.RegisterViewer(v)
	v.Start()
	go func() { _ = d.Run() }()

	timeout := time.After(time.Second)
	for {
		select {
		case st := <-stateCh:
			if st.RunningMode != driver.RunningStateFinished {
				continue
			}
			//the summary is already written when the status is received
			assert.Contains(t, out.String(), "Finished:")
			assert.Contains(t, out.String(), "Last generation: 3")
			return
		case <-timeout:
			t.Fatal("the run didn't finish")
		}
	}
}
