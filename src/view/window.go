//go:build ebiten

package view

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"pixlife/src/driver"
	"pixlife/src/universe"
)

// WindowSupported reports whether the GUI window is compiled in
const WindowSupported = true

// Window is the GUI viewer and drawing surface
// the field is kept as an RGBA pixel buffer, each cell is a cell x cell block
type Window struct {
	d     *driver.Driver
	scale int //preferred pixels per cell

	mu       sync.Mutex
	cell     int //pixels per cell of the current Universe
	width    int
	height   int
	pixels   []byte
	resized  bool
	status   driver.Status
	onColor  color.RGBA
	offColor color.RGBA
}

// NewWindow creates the window surface with scale pixels per cell
func NewWindow(scale int) *Window {
	if scale <= 0 {
		scale = universe.DefCellSize
	}
	return &Window{
		scale:    scale,
		cell:     scale,
		onColor:  color.RGBA{A: 0xff},
		offColor: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// CellSize returns the preferred pixel scale of one cell
func (w *Window) CellSize() int { return w.scale }

// Resize reallocates the pixel buffer, the window follows on the next Update
func (w *Window) Resize(columns int, rows int, cellSize int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cell = cellSize
	w.width, w.height = columns*cellSize, rows*cellSize
	w.pixels = make([]byte, w.width*w.height*4)
	for i := 0; i < len(w.pixels); i += 4 {
		w.pixels[i+0] = w.offColor.R
		w.pixels[i+1] = w.offColor.G
		w.pixels[i+2] = w.offColor.B
		w.pixels[i+3] = w.offColor.A
	}
	w.resized = true
}

// Paint fills the cell block with the state colour
func (w *Window) Paint(column int, row int, state universe.Cell) {
	w.mu.Lock()
	defer w.mu.Unlock()
	c := w.offColor
	if state == universe.Alive {
		c = w.onColor
	}
	x0, y0 := column*w.cell, row*w.cell
	if x0+w.cell > w.width || y0+w.cell > w.height {
		return
	}
	for y := y0; y < y0+w.cell; y++ {
		base := (y*w.width + x0) * 4
		for x := 0; x < w.cell; x++ {
			w.pixels[base+0] = c.R
			w.pixels[base+1] = c.G
			w.pixels[base+2] = c.B
			w.pixels[base+3] = c.A
			base += 4
		}
	}
}

// Flush is a no-op, Draw uploads the buffer every frame
func (w *Window) Flush() {}

func (w *Window) Register(d *driver.Driver) {
	w.d = d
	w.mu.Lock()
	w.status = d.Status()
	w.mu.Unlock()
}

func (w *Window) Refresh(st driver.Status) {
	w.mu.Lock()
	w.status = st
	w.mu.Unlock()
}

// Start runs the ebiten loop until the window is closed
func (w *Window) Start() {
	w.mu.Lock()
	width, height := w.width, w.height
	w.resized = false
	w.mu.Unlock()

	ebiten.SetWindowTitle("pixlife")
	ebiten.SetWindowSize(width, height)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Panicln(err)
	}
}

// Update handles the input, the simulation itself is paced by the driver
func (w *Window) Update() error {
	w.mu.Lock()
	if w.resized {
		ebiten.SetWindowSize(w.width, w.height)
		w.resized = false
	}
	w.mu.Unlock()

	var err error
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		err = w.d.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		err = w.d.Step()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		err = w.d.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		err = w.d.Reseed()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		err = w.d.Redraw()
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		err = w.d.SetInterval(w.d.Config().Interval / 2)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		interval := w.d.Config().Interval * 2
		if interval == 0 {
			interval = time.Millisecond
		}
		err = w.d.SetInterval(interval)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		x, y := ebiten.CursorPosition()
		err = w.d.ClickAt(float64(x), float64(y))
	}
	return err
}

// Draw uploads the pixel buffer and prints the status line
func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	b := screen.Bounds()
	if b.Dx() == w.width && b.Dy() == w.height {
		screen.WritePixels(w.pixels)
	}
	st := w.status
	w.mu.Unlock()

	ebitenutil.DebugPrint(screen, fmt.Sprintf("gen %d  live %d  %s  %s", st.Generation, st.LiveCells, st.RunningMode, st.Boundary))
}

// Layout keeps the logical screen equal to the field in pixels
func (w *Window) Layout(_, _ int) (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}
