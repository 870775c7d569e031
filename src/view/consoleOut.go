package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"pixlife/src/driver"
)

// ConsoleOut is the headless viewer, it prints the running configuration, progress and the final result
type ConsoleOut struct {
	d         *driver.Driver
	w         io.Writer
	au        aurora.Aurora
	every     int
	startTime time.Time
}

// NewConsoleOut creates the viewer writing to w, the progress is printed every `every` generations
func NewConsoleOut(w io.Writer, colors bool, every int) *ConsoleOut {
	if every <= 0 {
		every = 10
	}
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), every: every}
}

func (c *ConsoleOut) Refresh(st driver.Status) {
	if st.RunningMode == driver.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last generation": st.Generation,
			"Total time":      totalTime,
			"Live cells":      st.LiveCells,
		}
		_, _ = fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
	} else if st.RunningMode == driver.RunningStateRun {
		if st.Generation != 0 && st.Generation%c.every == 0 {
			_, _ = fmt.Fprintf(c.w, "  Generations done: %v, live cells: %v\n", st.Generation, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(d *driver.Driver) {
	c.d = d
	o := d.Config()
	_, _ = fmt.Fprintln(c.w, c.au.Green("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension":        fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":         o.Interval,
		"Max generations":  o.MaxSteps,
		"Alive odds":       o.AliveProbability,
		"Boundary":         o.Boundary,
		"Stop when stable": o.StopWhenSettled,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", c.au.Cyan(propName), d[propName])
	}
}
