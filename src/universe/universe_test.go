package universe

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSurface counts every call made by Render
type recordingSurface struct {
	columns, rows int
	pixelsPerCell int
	resizes       int
	flushes       int
	painted       map[[2]int]Cell
	paints        int
	cellSize      int
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{painted: map[[2]int]Cell{}}
}

func (s *recordingSurface) Resize(columns int, rows int, cellSize int) {
	s.columns, s.rows, s.pixelsPerCell = columns, rows, cellSize
	s.resizes++
}

func (s *recordingSurface) Paint(column int, row int, state Cell) {
	s.painted[[2]int{column, row}] = state
	s.paints++
}

func (s *recordingSurface) Flush() { s.flushes++ }

type sizedSurface struct {
	recordingSurface
}

func (s *sizedSurface) CellSize() int { return 4 }

// newPattern creates the all-dead universe with live cells at the [x,y] coordinates
func newPattern(t *testing.T, width, height int, b Boundary, coords ...[]int) *Universe {
	t.Helper()
	u, err := New(Options{
		Width:    width,
		Height:   height,
		Boundary: b,
		Template: &Template{Name: "test", Coordinates: coords},
	}, nil)
	require.NoError(t, err)
	return u
}

func requireAlive(t *testing.T, u *Universe, coords ...[]int) {
	t.Helper()
	g := u.Snapshot()
	expected := createGrid(u.Width(), u.Height())
	(&Template{Coordinates: coords}).settle(expected)
	require.True(t, expected.Equal(g), "expected:\n%v\ngot:\n%v", expected, g)
}

func TestNew_CellCount(t *testing.T) {
	for _, dim := range [][2]int{{1, 1}, {1, 7}, {7, 1}, {13, 9}, {100, 50}} {
		u, err := New(Options{Width: dim[0], Height: dim[1], AliveProbability: 0.5, Seed: 7}, nil)
		require.NoError(t, err)
		g := u.Snapshot()
		assert.Equal(t, dim[0]*dim[1], g.Len())
		assert.Equal(t, dim[0], g.Width())
		assert.Equal(t, dim[1], g.Height())
		for row := 0; row < dim[1]; row++ {
			for column := 0; column < dim[0]; column++ {
				c := g.At(row, column)
				assert.True(t, c == Alive || c == Dead)
			}
		}
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	cases := []struct {
		name  string
		o     Options
		err   error
		field string
	}{
		{"zero width", Options{Width: 0, Height: 5}, ErrInvalidDimensions, "width"},
		{"negative height", Options{Width: 5, Height: -1}, ErrInvalidDimensions, "height"},
		{"probability below zero", Options{Width: 5, Height: 5, AliveProbability: -0.1}, ErrInvalidProbability, "alive probability"},
		{"probability above one", Options{Width: 5, Height: 5, AliveProbability: 1.01}, ErrInvalidProbability, "alive probability"},
		{"probability NaN", Options{Width: 5, Height: 5, AliveProbability: math.NaN()}, ErrInvalidProbability, "alive probability"},
		{"negative cell size", Options{Width: 5, Height: 5, CellSize: -3}, ErrInvalidCellSize, "cell size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := New(tc.o, nil)
			require.Nil(t, u)
			require.True(t, errors.Is(err, tc.err))
			var ce *ConstructionError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.field, ce.Field)
		})
	}
}

func TestNew_ProbabilityExtremes(t *testing.T) {
	dead, err := New(Options{Width: 30, Height: 20, AliveProbability: 0}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, dead.LiveCells())

	alive, err := New(Options{Width: 30, Height: 20, AliveProbability: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, 30*20, alive.LiveCells())
}

func TestNew_SeedIsReproducible(t *testing.T) {
	o := Options{Width: 40, Height: 30, AliveProbability: 0.3, Seed: 42}
	a, err := New(o, nil)
	require.NoError(t, err)
	b, err := New(o, nil)
	require.NoError(t, err)
	require.True(t, a.Snapshot().Equal(b.Snapshot()))

	//the realized density is near the probability, not exactly equal to it
	live := a.LiveCells()
	assert.InDelta(t, 0.3*40*30, live, 0.1*40*30)
}

func TestTick_Deterministic(t *testing.T) {
	o := Options{Width: 25, Height: 25, AliveProbability: 0.4, Seed: 99}
	a, err := New(o, nil)
	require.NoError(t, err)
	b, err := New(o, nil)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		a.Tick()
		b.Tick()
		require.True(t, a.Snapshot().Equal(b.Snapshot()), "generation %d", i+1)
	}
	assert.Equal(t, 5, a.Generation())
}

func TestTick_BlockIsStill(t *testing.T) {
	for _, b := range []Boundary{Bounded, Toroidal} {
		t.Run(b.String(), func(t *testing.T) {
			block := [][]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}}
			u := newPattern(t, 6, 6, b, block...)
			u.Tick()
			requireAlive(t, u, block...)
			assert.True(t, u.Settled())
		})
	}
}

func TestTick_BlinkerOscillates(t *testing.T) {
	for _, b := range []Boundary{Bounded, Toroidal} {
		t.Run(b.String(), func(t *testing.T) {
			horizontal := [][]int{{1, 2}, {2, 2}, {3, 2}}
			vertical := [][]int{{2, 1}, {2, 2}, {2, 3}}
			u := newPattern(t, 5, 5, b, horizontal...)

			u.Tick()
			requireAlive(t, u, vertical...)
			assert.False(t, u.Settled())

			u.Tick()
			requireAlive(t, u, horizontal...)
		})
	}
}

func TestTick_LonelyCornerDies(t *testing.T) {
	for _, b := range []Boundary{Bounded, Toroidal} {
		t.Run(b.String(), func(t *testing.T) {
			u := newPattern(t, 4, 4, b, []int{0, 0})
			u.Tick()
			assert.Equal(t, 0, u.LiveCells())
		})
	}
}

func TestTick_EdgePolicy(t *testing.T) {
	//vertical line on the left edge
	line := [][]int{{0, 1}, {0, 2}, {0, 3}}

	bounded := newPattern(t, 5, 5, Bounded, line...)
	bounded.Tick()
	requireAlive(t, bounded, []int{0, 2}, []int{1, 2})

	toroidal := newPattern(t, 5, 5, Toroidal, line...)
	toroidal.Tick()
	requireAlive(t, toroidal, []int{4, 2}, []int{0, 2}, []int{1, 2})
}

func TestTick_GliderMoves(t *testing.T) {
	tmpl, ok := LookupTemplate("glider")
	require.True(t, ok)
	u, err := New(Options{Width: 10, Height: 10, Template: &tmpl}, nil)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		u.Tick()
	}
	shifted := make([][]int, 0, len(tmpl.Coordinates))
	for _, v := range tmpl.Coordinates {
		shifted = append(shifted, []int{v[0] + 1, v[1] + 1})
	}
	requireAlive(t, u, shifted...)
}

func TestClick_Toggles(t *testing.T) {
	u, err := New(Options{Width: 8, Height: 6, AliveProbability: 0.5, Seed: 3}, nil)
	require.NoError(t, err)
	before := u.Snapshot()

	u.Click(7, 5)
	after := u.Snapshot()
	assert.Equal(t, before.At(5, 7).Inverse(), after.At(5, 7))
	diff := 0
	for i := range before.cells {
		if before.cells[i] != after.cells[i] {
			diff++
		}
	}
	assert.Equal(t, 1, diff)

	u.Click(7, 5)
	require.True(t, before.Equal(u.Snapshot()))
}

func TestClick_OutOfRangeIsNoop(t *testing.T) {
	u, err := New(Options{Width: 8, Height: 6, AliveProbability: 0.5, Seed: 3}, nil)
	require.NoError(t, err)
	before := u.Snapshot()
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 6}, {8, 6}, {math.MaxInt32, 2}} {
		u.Click(p[0], p[1])
	}
	require.True(t, before.Equal(u.Snapshot()))
}

func TestSnapshot_IsIndependent(t *testing.T) {
	u := newPattern(t, 3, 3, Bounded, []int{1, 1})
	g := u.Snapshot()
	g.cells[g.Index(1, 1)] = Dead
	assert.Equal(t, 1, u.LiveCells())
}

func TestCellSize(t *testing.T) {
	u, err := New(Options{Width: 3, Height: 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefCellSize, u.CellSize())

	u, err = New(Options{Width: 3, Height: 3}, &sizedSurface{*newRecordingSurface()})
	require.NoError(t, err)
	assert.Equal(t, 4, u.CellSize())

	u, err = New(Options{Width: 3, Height: 3, CellSize: 7}, &sizedSurface{*newRecordingSurface()})
	require.NoError(t, err)
	assert.Equal(t, 7, u.CellSize())

	u.Tick()
	u.Click(1, 1)
	u.Render()
	u.Tick()
	assert.Equal(t, 7, u.CellSize())
}

func TestRender_PaintsOnlyChanges(t *testing.T) {
	s := newRecordingSurface()
	u, err := New(Options{
		Width:    5,
		Height:   5,
		CellSize: 3,
		Template: &Template{Coordinates: [][]int{{1, 2}, {2, 2}, {3, 2}}},
	}, s)
	require.NoError(t, err)
	assert.Equal(t, 0, s.resizes, "the surface is not touched before the first render")

	u.Render()
	assert.Equal(t, 1, s.resizes)
	assert.Equal(t, 5, s.columns)
	assert.Equal(t, 5, s.rows)
	assert.Equal(t, 3, s.pixelsPerCell)
	assert.Equal(t, 25, s.paints)
	assert.Equal(t, 1, s.flushes)

	s.paints = 0
	u.Render()
	assert.Equal(t, 0, s.paints)
	assert.Equal(t, 2, s.flushes)

	//blinker: two cells die and two are born
	u.Tick()
	u.Render()
	assert.Equal(t, 4, s.paints)
	for column := 0; column < 5; column++ {
		for row := 0; row < 5; row++ {
			assert.Equal(t, u.Snapshot().At(row, column), s.painted[[2]int{column, row}])
		}
	}

	s.paints = 0
	u.Click(0, 0)
	u.Render()
	assert.Equal(t, 1, s.paints)
	assert.Equal(t, Alive, s.painted[[2]int{0, 0}])

	s.paints = 0
	u.Invalidate()
	u.Render()
	assert.Equal(t, 25, s.paints)
	assert.Equal(t, 2, s.resizes)
}

func TestRender_DoesNotMutate(t *testing.T) {
	u, err := New(Options{Width: 12, Height: 9, AliveProbability: 0.5, Seed: 5}, newRecordingSurface())
	require.NoError(t, err)
	before := u.Snapshot()
	u.Render()
	u.Render()
	require.True(t, before.Equal(u.Snapshot()))
	assert.Equal(t, 0, u.Generation())
}

func TestRender_NilSurface(t *testing.T) {
	u := newPattern(t, 3, 3, Bounded)
	assert.NotPanics(t, u.Render)
}

func TestParseBoundary(t *testing.T) {
	b, err := ParseBoundary("Toroidal")
	require.NoError(t, err)
	assert.Equal(t, Toroidal, b)

	_, err = ParseBoundary("klein")
	require.Error(t, err)
}

func TestTemplateNames(t *testing.T) {
	assert.Equal(t, []string{"blinker", "block", "glider", "testSample1"}, TemplateNames())
	help := TemplateHelp()
	assert.Len(t, help, 4)
	assert.Equal(t, "blinker (period 2 oscillator)", help[0])
}
