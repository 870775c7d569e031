package view

import (
	"bytes"
	"io"
	"sync"

	"github.com/logrusorgru/aurora"

	"pixlife/src/universe"
)

// TextSurface draws the field as text frames to the writer, one char per cell
type TextSurface struct {
	mu         sync.Mutex
	w          io.Writer
	field      [][]universe.Cell
	liveFiller string
	deadFiller string
}

func NewTextSurface(w io.Writer, colors bool) *TextSurface {
	au := aurora.NewAurora(colors)
	return &TextSurface{
		w:          w,
		liveFiller: au.Green("█").String(),
		deadFiller: "░",
	}
}

func (s *TextSurface) CellSize() int { return 1 }

// Resize reallocates the frame, one char per cell whatever the cell size is
func (s *TextSurface) Resize(columns int, rows int, _ int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.field = make([][]universe.Cell, rows)
	for i := range s.field {
		s.field[i] = make([]universe.Cell, columns)
	}
}

func (s *TextSurface) Paint(column int, row int, state universe.Cell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row < len(s.field) && column < len(s.field[row]) {
		s.field[row][column] = state
	}
}

// Flush writes the whole frame followed by an empty line
func (s *TextSurface) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b bytes.Buffer
	for _, l := range s.field {
		for _, e := range l {
			if e == universe.Alive {
				b.WriteString(s.liveFiller)
			} else {
				b.WriteString(s.deadFiller)
			}
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	_, _ = s.w.Write(b.Bytes())
}
