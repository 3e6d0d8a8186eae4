// Package session drives a grid the way an interactive front end does:
// cells are toggled while editing, and each tick advances one generation
// while running. Rendering, input polling and frame pacing stay with the
// caller.
package session

import (
	"context"
	"slices"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/ctxlog"
	"github.com/sheikhrachel/go-gol/model"
	"github.com/sheikhrachel/go-gol/utils"
)

// historySize is how many recent grid hashes are kept for cycle detection.
const historySize = 5

// ErrNotEditing is returned when a cell is toggled while the simulation runs.
var ErrNotEditing = errors.New("session is not in editing mode")

// Mode is the state of the external loop.
type Mode uint8

const (
	// Editing lets the user toggle cells; the grid is otherwise static.
	Editing Mode = iota
	// Running advances one generation per tick.
	Running
)

func (m Mode) String() string {
	if m == Running {
		return "running"
	}
	return "editing"
}

// Session owns a grid and the loop state around it. It is not safe for
// concurrent use; one goroutine drives it tick by tick.
type Session struct {
	grid   *model.Grid
	config utils.Config
	mode   Mode
	stats  *utils.Stats

	generation  int
	history     []string // Store recent grid states for cycle detection
	stagnant    bool
	stagnantFor int
	lastTick    time.Time
}

// New builds the initial grid from config and starts in Editing mode.
func New(ctx context.Context, config utils.Config) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "[session.New]")
	}
	grid, err := model.NewGridFromConfig(config)
	if err != nil {
		return nil, errors.Wrap(err, "[session.New]")
	}

	ctxlog.FromContext(ctx).Debug("Session created",
		"width", grid.GetWidth(),
		"height", grid.GetHeight(),
		"workers", grid.Workers(),
		"alive", grid.CountLivingCells(),
	)
	return &Session{
		grid:   grid,
		config: config,
		mode:   Editing,
		stats:  utils.NewStats(),
	}, nil
}

// Grid returns the grid being simulated.
func (s *Session) Grid() *model.Grid { return s.grid }

// Mode returns the current loop mode.
func (s *Session) Mode() Mode { return s.mode }

// Generation returns the number of generations computed so far.
func (s *Session) Generation() int { return s.generation }

// Stats returns the running statistics.
func (s *Session) Stats() *utils.Stats { return s.stats }

// ToggleMode switches between Editing and Running and returns the new mode.
// Entering Running restarts cycle detection from the current board.
func (s *Session) ToggleMode(ctx context.Context) Mode {
	if s.mode == Editing {
		s.mode = Running
		s.history = []string{s.grid.GetGridHash()}
		s.stagnant = false
		s.stagnantFor = 0
		s.lastTick = time.Now()
	} else {
		s.mode = Editing
	}
	ctxlog.FromContext(ctx).Info("Mode changed", "mode", s.mode.String(), "generation", s.generation)
	return s.mode
}

// Tick advances one generation when running and returns the applied delta.
// While editing it does nothing. If ctx is cancelled mid-scan the grid and
// generation count are left as they were.
func (s *Session) Tick(ctx context.Context) (model.Delta, error) {
	if s.mode != Running {
		return model.Delta{}, nil
	}

	delta, err := s.grid.StepContext(ctx)
	if err != nil {
		return model.Delta{}, errors.Wrapf(err, "[Tick] generation %d", s.generation+1)
	}
	s.generation++

	now := time.Now()
	population := s.grid.CountLivingCells()
	s.stats.Update(s.generation, population, len(delta.Revive), len(delta.Kill), now.Sub(s.lastTick))
	s.lastTick = now

	s.updateHistory()

	ctxlog.FromContext(ctx).Debug("Generation computed",
		"generation", s.generation,
		"population", population,
		"revived", len(delta.Revive),
		"killed", len(delta.Kill),
		"stagnant", s.stagnant,
	)
	return delta, nil
}

// updateHistory checks the new board against recent ones, then records it.
func (s *Session) updateHistory() {
	hash := s.grid.GetGridHash()

	// Static state or a cycle of period up to 3
	recent := s.history[max(0, len(s.history)-3):]
	s.stagnant = slices.Contains(recent, hash)
	if s.stagnant {
		s.stagnantFor++
	} else {
		s.stagnantFor = 0
	}

	s.history = append(s.history, hash)
	if len(s.history) > historySize {
		s.history = s.history[1:]
	}
}

// IsStagnant reports whether the last generation repeated one of the three
// before it.
func (s *Session) IsStagnant() bool { return s.stagnant }

// StagnantFor returns how many consecutive generations have been stagnant.
func (s *Session) StagnantFor() int { return s.stagnantFor }

// ToggleAt flips the cell at p. Only allowed while editing.
func (s *Session) ToggleAt(ctx context.Context, p model.Point) error {
	if s.mode != Editing {
		return errors.Wrapf(ErrNotEditing, "[ToggleAt] %v", p)
	}
	if err := s.grid.ToggleCell(p); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Cell toggled", "row", p.Row, "col", p.Col)
	return nil
}

// CellAt maps a pointer position in the drawable region to the cell under
// it. Positions outside the region, including the area below the grid,
// report false.
func (s *Session) CellAt(x, y float64) (model.Point, bool) {
	if x < 0 || y < 0 || x >= s.config.DrawableWidth || y >= s.config.DrawableHeight {
		return model.Point{}, false
	}
	cellWidth := s.config.DrawableWidth / float64(s.grid.GetWidth())
	cellHeight := s.config.DrawableHeight / float64(s.grid.GetHeight())

	p := model.Point{Row: int(y / cellHeight), Col: int(x / cellWidth)}
	if !s.grid.Contains(p) {
		return model.Point{}, false
	}
	return p, true
}

// ClickAt toggles the cell under a pointer position. Clicks outside the
// grid, or while running, are ignored and report false.
func (s *Session) ClickAt(ctx context.Context, x, y float64) (bool, error) {
	if s.mode != Editing {
		return false, nil
	}
	p, ok := s.CellAt(x, y)
	if !ok {
		return false, nil
	}
	if err := s.ToggleAt(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}
