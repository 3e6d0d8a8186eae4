package model

import (
	"context"
	"crypto/md5"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol/rules"
	"github.com/sheikhrachel/go-gol/utils"
)

var (
	// ErrInvalidDimensions is returned when a grid would have no cells or ragged rows.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrOutOfBounds is returned when a coordinate falls outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// Grid is a bounded board of cells. Positions outside the board are never
// read or written: there is no wraparound at the edges.
type Grid struct {
	width   int
	height  int
	cells   [][]bool
	workers int
}

// Option configures a Grid at construction.
type Option func(*Grid)

// WithWorkers splits each generation scan into n row bands computed
// concurrently. n <= 0 uses one band per CPU.
func WithWorkers(n int) Option {
	return func(g *Grid) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		g.workers = n
	}
}

// NewGrid creates a new grid with the specified dimensions, every cell dead
func NewGrid(width, height int, opts ...Option) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] %dx%d", width, height)
	}

	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	g := &Grid{
		width:   width,
		height:  height,
		cells:   cells,
		workers: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// NewGridWithPattern creates a grid with only the given cells alive
func NewGridWithPattern(width, height int, alive []Point, opts ...Option) (*Grid, error) {
	g, err := NewGrid(width, height, opts...)
	if err != nil {
		return nil, err
	}
	for _, p := range alive {
		if err = g.Set(p, true); err != nil {
			return nil, errors.Wrap(err, "[NewGridWithPattern] invalid pattern cell")
		}
	}
	return g, nil
}

// NewGridFromCells copies a full initial board. Rows must be non-empty and
// of equal length.
func NewGridFromCells(cells [][]bool, opts ...Option) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, errors.Wrap(ErrInvalidDimensions, "[NewGridFromCells] empty board")
	}

	g, err := NewGrid(len(cells[0]), len(cells), opts...)
	if err != nil {
		return nil, err
	}
	for y, row := range cells {
		if len(row) != g.width {
			return nil, errors.Wrapf(ErrInvalidDimensions,
				"[NewGridFromCells] row %d has %d cells, want %d", y, len(row), g.width)
		}
		copy(g.cells[y], row)
	}
	return g, nil
}

// NewGridFromConfig builds the initial board described by config: its
// dimensions, worker count, single alive cells, named patterns and finally
// a random fill of RandomDensity.
func NewGridFromConfig(config utils.Config) (*Grid, error) {
	g, err := NewGrid(config.Width, config.Height, WithWorkers(config.Workers))
	if err != nil {
		return nil, err
	}

	for _, c := range config.Alive {
		if err = g.Set(Point{Row: c.Row, Col: c.Col}, true); err != nil {
			return nil, errors.Wrap(err, "[NewGridFromConfig] invalid alive cell")
		}
	}
	for _, pc := range config.Patterns {
		pattern, err := LookupPattern(pc.Name)
		if err != nil {
			return nil, errors.Wrap(err, "[NewGridFromConfig]")
		}
		if err = g.Place(pattern, Point{Row: pc.Row, Col: pc.Col}); err != nil {
			return nil, errors.Wrapf(err, "[NewGridFromConfig] failed to place %s", pc.Name)
		}
	}

	if config.RandomDensity > 0 {
		seed := config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.Randomize(rand.New(rand.NewSource(seed)), config.RandomDensity)
	}
	return g, nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Workers returns the number of row bands a scan is split into.
func (g *Grid) Workers() int {
	return g.workers
}

// Contains reports whether p lies on the grid.
func (g *Grid) Contains(p Point) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

func (g *Grid) checkBounds(p Point) error {
	if !g.Contains(p) {
		return errors.Wrapf(ErrOutOfBounds, "%v on %dx%d grid", p, g.width, g.height)
	}
	return nil
}

// Get returns the state of a cell
func (g *Grid) Get(p Point) (bool, error) {
	if err := g.checkBounds(p); err != nil {
		return false, err
	}
	return g.cells[p.Row][p.Col], nil
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(p Point, alive bool) error {
	if err := g.checkBounds(p); err != nil {
		return err
	}
	g.cells[p.Row][p.Col] = alive
	return nil
}

// ToggleCell flips a single cell. Neighbors are not affected.
func (g *Grid) ToggleCell(p Point) error {
	if err := g.checkBounds(p); err != nil {
		return errors.Wrap(err, "[ToggleCell]")
	}
	g.cells[p.Row][p.Col] = !g.cells[p.Row][p.Col]
	return nil
}

// Clear kills every cell
func (g *Grid) Clear() {
	for y := range g.height {
		for x := range g.width {
			g.cells[y][x] = false
		}
	}
}

// Randomize fills the grid with random living cells. Cells already alive
// stay alive.
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for y := range g.height {
		for x := range g.width {
			if rng.Float64() < density {
				g.cells[y][x] = true
			}
		}
	}
}

// CountLiveNeighbors counts the alive cells among the in-bounds neighbors of p.
func (g *Grid) CountLiveNeighbors(p Point) (int, error) {
	if err := g.checkBounds(p); err != nil {
		return 0, errors.Wrap(err, "[CountLiveNeighbors]")
	}
	return g.countNeighbors(p.Row, p.Col), nil
}

// countNeighbors assumes (row, col) is on the grid.
func (g *Grid) countNeighbors(row, col int) int {
	count := 0
	for _, offset := range NeighborOffsets {
		ny, nx := row+offset.Row, col+offset.Col
		if ny < 0 || ny >= g.height || nx < 0 || nx >= g.width {
			continue
		}
		if g.cells[ny][nx] {
			count++
		}
	}
	return count
}

// ComputeTransitions scans every cell once against the current board and
// returns the cells to revive and to kill. The board is not modified, so
// every count in the scan sees the same generation.
func (g *Grid) ComputeTransitions() Delta {
	delta, err := g.ComputeTransitionsContext(context.Background())
	if err != nil {
		// only cancellation interrupts a scan
		panic(err)
	}
	return delta
}

// ComputeTransitionsContext is ComputeTransitions that gives up between
// rows once ctx is done.
func (g *Grid) ComputeTransitionsContext(ctx context.Context) (Delta, error) {
	numWorkers := min(g.workers, g.height)
	if numWorkers <= 1 {
		delta, err := g.scanRows(ctx, 0, g.height)
		if err != nil {
			return Delta{}, errors.Wrap(err, "[ComputeTransitions] scan interrupted")
		}
		return delta, nil
	}

	var (
		eg, egCtx     = errgroup.WithContext(ctx)
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers // Ceiling division
		bands         = make([]Delta, numWorkers)
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			band, err := g.scanRows(egCtx, startRow, endRow)
			if err != nil {
				return err
			}
			bands[i] = band
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return Delta{}, errors.Wrap(err, "[ComputeTransitions] scan interrupted")
	}

	var delta Delta
	for _, band := range bands {
		delta.merge(band)
	}
	return delta, nil
}

func (g *Grid) scanRows(ctx context.Context, startRow, endRow int) (Delta, error) {
	var delta Delta
	for y := startRow; y < endRow; y++ {
		if err := ctx.Err(); err != nil {
			return Delta{}, err
		}
		for x := 0; x < g.width; x++ {
			switch rules.Decide(g.cells[y][x], g.countNeighbors(y, x)) {
			case rules.Birth:
				delta.Revive = append(delta.Revive, Point{Row: y, Col: x})
			case rules.Death:
				delta.Kill = append(delta.Kill, Point{Row: y, Col: x})
			}
		}
	}
	return delta, nil
}

// Apply kills every cell in d.Kill and revives every cell in d.Revive.
// All coordinates are checked before any cell changes, so a rejected delta
// leaves the grid as it was.
func (g *Grid) Apply(d Delta) error {
	for _, p := range d.Kill {
		if err := g.checkBounds(p); err != nil {
			return errors.Wrap(err, "[Apply] kill")
		}
	}
	for _, p := range d.Revive {
		if err := g.checkBounds(p); err != nil {
			return errors.Wrap(err, "[Apply] revive")
		}
	}

	for _, p := range d.Kill {
		g.cells[p.Row][p.Col] = false
	}
	for _, p := range d.Revive {
		g.cells[p.Row][p.Col] = true
	}
	return nil
}

// Step advances the grid by one generation and returns the applied delta.
func (g *Grid) Step() (Delta, error) {
	return g.StepContext(context.Background())
}

// StepContext is Step with a cancellable scan. A cancelled step leaves the
// grid unchanged.
func (g *Grid) StepContext(ctx context.Context) (Delta, error) {
	delta, err := g.ComputeTransitionsContext(ctx)
	if err != nil {
		return Delta{}, err
	}
	if err = g.Apply(delta); err != nil {
		return Delta{}, err
	}
	return delta, nil
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// AliveCells lists the living cells in row-major order.
func (g *Grid) AliveCells() []Point {
	var alive []Point
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				alive = append(alive, Point{Row: y, Col: x})
			}
		}
	}
	return alive
}

// Cells returns a copy of the board.
func (g *Grid) Cells() [][]bool {
	out := make([][]bool, g.height)
	for y := range out {
		out[y] = append([]bool(nil), g.cells[y]...)
	}
	return out
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:   g.width,
		height:  g.height,
		cells:   g.Cells(),
		workers: g.workers,
	}
}

// Equal reports whether both grids have the same dimensions and cell states.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
