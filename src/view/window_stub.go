//go:build !ebiten

package view

import (
	"pixlife/src/driver"
	"pixlife/src/universe"
)

// WindowSupported reports whether the GUI window is compiled in
const WindowSupported = false

// Window is a placeholder that satisfies the API expected by the GUI build
type Window struct{}

// NewWindow returns the placeholder, Start panics without the ebiten build tag
func NewWindow(int) *Window { return &Window{} }

func (w *Window) CellSize() int                 { return universe.DefCellSize }
func (w *Window) Resize(int, int, int)          {}
func (w *Window) Paint(int, int, universe.Cell) {}
func (w *Window) Flush()                        {}
func (w *Window) Register(*driver.Driver)       {}
func (w *Window) Refresh(driver.Status)         {}

// Start panics to indicate that the ebiten build tag is required for GUI support
func (w *Window) Start() {
	panic("view.Window requires building with the 'ebiten' tag")
}
