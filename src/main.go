package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/integrii/flaggy"

	"pixlife/src/driver"
	"pixlife/src/universe"
	"pixlife/src/view"
)

type EnvOptions struct {
	interactive bool
	gui         bool
	frames      bool
	colors      bool
	boundary    string
	template    string
	seed        uint64
	verbose     bool
}

func main() {
	eo, cfg := initOptions()

	if eo.verbose {
		cfg.Logger = log.New(os.Stderr, "pixlife: ", log.LstdFlags)
	}

	switch {
	case eo.gui:
		if !view.WindowSupported {
			fmt.Fprintln(os.Stderr, "The GUI build of pixlife requires the ebiten build tag.")
			fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./src` or build with `-tags ebiten`.")
			os.Exit(2)
		}
		w := view.NewWindow(cfg.CellSize)
		d := newDriver(cfg, w, nil)
		d.RegisterViewer(w)
		w.Start()
		d.Close()

	case eo.interactive:
		v := view.NewViewTerminal()
		cfg.CellSize = 0
		d := newDriver(cfg, v, nil)
		d.RegisterViewer(v)
		v.Start()
		d.Close()

	default:
		var s universe.Surface
		if eo.frames {
			s = view.NewTextSurface(os.Stdout, eo.colors)
			cfg.CellSize = 0
		}
		//the buffered channel to getting the driver status
		stateCh := make(chan driver.Status, 10)
		d := newDriver(cfg, s, stateCh)
		v := view.NewConsoleOut(os.Stdout, eo.colors, 10)
		d.RegisterViewer(v)
		v.Start()

		if cfg.MaxSteps == 0 && !cfg.StopWhenSettled {
			log.Println("neither max steps nor settle detection is set, the simulation runs until interrupted")
		}
		go func() {
			if err := d.Run(); err != nil {
				log.Println(err)
			}
		}()
		for st := range stateCh {
			if st.RunningMode == driver.RunningStateFinished {
				break
			}
		}
		d.Close()
	}
}

func newDriver(cfg driver.Config, s universe.Surface, stateCh chan driver.Status) *driver.Driver {
	d, err := driver.New(cfg, s, stateCh)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return d
}

func initOptions() (eo *EnvOptions, cfg driver.Config) {

	cfg = driver.DefaultConfig
	cfg.MaxSteps = 1000
	cfg.StopWhenSettled = true
	cfg.CellSize = universe.DefCellSize
	eo = &EnvOptions{boundary: universe.Bounded.String(), colors: true}

	flaggy.SetName("pixlife")
	flaggy.SetDescription("\"The Life\" game simulation")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&cfg.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&cfg.Height, "y", "height", "Height of a simulation field")
	flaggy.Float64(&cfg.AliveProbability, "p", "probability", "Probability of a cell to be alive on reset, within [0,1]")
	flaggy.Duration(&cfg.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&cfg.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited")
	flaggy.Bool(&cfg.StopWhenSettled, "", "stopWhenSettled", "Finish when the field stops changing")
	flaggy.Int(&cfg.CellSize, "c", "cellSize", "Pixels per cell in the GUI window")
	flaggy.UInt64(&eo.seed, "", "seed", "Seed of the initial field, 0 seeds from the clock")
	flaggy.String(&eo.boundary, "b", "boundary", "Neighbour counting at the edges [bounded|toroidal]")
	flaggy.String(&eo.template, "t", "template", "Settle the template: "+strings.Join(universe.TemplateHelp(), ", "))
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive terminal mode")
	flaggy.Bool(&eo.gui, "g", "gui", "Start GUI window mode")
	flaggy.Bool(&eo.frames, "f", "frames", "Print every rendered frame in the headless mode")
	flaggy.Bool(&eo.colors, "", "colors", "Colored output")
	flaggy.Bool(&eo.verbose, "v", "verbose", "Log the driver events to stderr")

	flaggy.Parse()

	b, err := universe.ParseBoundary(eo.boundary)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	cfg.Boundary = b
	cfg.Seed = eo.seed

	if eo.template != "" {
		tmpl, ok := universe.LookupTemplate(eo.template)
		if !ok {
			flaggy.ShowHelpAndExit("unknown template")
		}
		cfg.Template = &tmpl
	}
	return
}
