package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"pixlife/src/driver"
	"pixlife/src/universe"
)

const battlefield = "battlefield"

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// ConsoleUI is the interactive terminal viewer
// it is also the drawing surface of the Universe: one terminal char per cell
type ConsoleUI struct {
	d *driver.Driver
	g *gocui.Gui
	k []keyBindings

	mu     sync.Mutex
	field  [][]universe.Cell
	status driver.Status

	liveFiller string
	deadFiller string
}

var (
	runningStateDescr = map[driver.RunningState]string{
		driver.RunningStatePaused:   aurora.Colorize("paused", aurora.BlueFg).String(),
		driver.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		driver.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

func NewViewTerminal() *ConsoleUI {

	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run/Pause", t.cmdToggle, ""},
		{'c', "C", "Reset", t.cmdReset, ""},
		{'w', "W", "Settle with random", t.cmdReseed, ""},
		{'l', "L", "Redraw", t.cmdRedraw, ""},
		{'+', "+", "Slower", t.cmdSlower, ""},
		{'-', "-", "Faster", t.cmdFaster, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, battlefield},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

// CellSize is one terminal char per cell
func (t *ConsoleUI) CellSize() int { return 1 }

// Resize reallocates the field buffer, one char per cell whatever the cell size is
func (t *ConsoleUI) Resize(columns int, rows int, _ int) {
	t.mu.Lock()
	t.field = make([][]universe.Cell, rows)
	for i := range t.field {
		t.field[i] = make([]universe.Cell, columns)
	}
	t.mu.Unlock()
}

func (t *ConsoleUI) Paint(column int, row int, state universe.Cell) {
	t.mu.Lock()
	if row < len(t.field) && column < len(t.field[row]) {
		t.field[row][column] = state
	}
	t.mu.Unlock()
}

func (t *ConsoleUI) Flush() {
	t.renderField()
}

func (t *ConsoleUI) Register(d *driver.Driver) {
	t.d = d
	t.mu.Lock()
	t.status = d.Status()
	t.mu.Unlock()
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh(st driver.Status) {
	t.mu.Lock()
	t.status = st
	t.mu.Unlock()
	t.renderConfiguration()
	t.renderStatus()
}

func (t *ConsoleUI) renderField() {
	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View(battlefield)
		if e != nil {
			//the view is not laid out yet, layout draws the buffer
			return nil
		}
		t.drawField(v)
		return nil
	})
}

// drawField writes the field buffer to the view
// gocui keeps the view as text, so the buffer is written entirely
func (t *ConsoleUI) drawField(v *gocui.View) {
	v.Clear()

	t.mu.Lock()
	defer t.mu.Unlock()

	crop := false
	maxW, maxH := v.Size()
	if len(t.field) > maxH || (len(t.field) > 0 && len(t.field[0]) > maxW) {
		crop = true
	}

	var b bytes.Buffer

	for i, l := range t.field {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		//line feed char
		if i != 0 {
			b.WriteByte(10)
		}
		if crop && i == (maxH-1) {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for j, e := range l {
			if j >= maxW {
				break
			}
			if e == universe.Alive {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus() {
	t.g.Update(func(g *gocui.Gui) error {
		t.mu.Lock()
		s := t.status
		t.mu.Unlock()
		if v, e := g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Generation))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Tick time", "%v", s.TickTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		t.mu.Lock()
		s := t.status
		t.mu.Unlock()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", s.Width, s.Height))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", s.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Alive odds", "%v", s.AliveProbability))
			_, _ = fmt.Fprintln(v, t.renderProp("Boundary", "%v", s.Boundary))
			if t.d != nil {
				if c := t.d.Config(); c.MaxSteps > 0 {
					_, _ = fmt.Fprintln(v, t.renderProp("Generations", "%v steps", c.MaxSteps))
				}
			}
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView(battlefield)
		return nil

	} else {
		if _, err := t.headerLayout(g, 3, "This is \"The Life\" game simulation"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	if v, err := g.SetView(battlefield, leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Battle Field"
		v.Frame = true
		t.drawField(v)
	} else {
		t.drawField(v)
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			panic(fmt.Sprintf("Terminal width is too small: %v", maxX))
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	return t.d.Step()
}

func (t *ConsoleUI) cmdToggle(_ *gocui.View) error {
	return t.d.Toggle()
}

func (t *ConsoleUI) cmdReset(_ *gocui.View) error {
	return t.d.Reset()
}

func (t *ConsoleUI) cmdReseed(_ *gocui.View) error {
	return t.d.Reseed()
}

func (t *ConsoleUI) cmdRedraw(_ *gocui.View) error {
	return t.d.Redraw()
}

func (t *ConsoleUI) cmdSlower(_ *gocui.View) error {
	interval := t.d.Config().Interval * 2
	if interval == 0 {
		interval = time.Millisecond
	}
	return t.d.SetInterval(interval)
}

func (t *ConsoleUI) cmdFaster(_ *gocui.View) error {
	return t.d.SetInterval(t.d.Config().Interval / 2)
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	return t.d.ClickAt(float64(cx), float64(cy))
}
