package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	textAlive = '#'
	textDead  = '.'

	// ansiClear homes the cursor and erases the screen.
	ansiClear = "\033[H\033[2J"
)

// String renders the grid one row per line, '#' alive and '.' dead.
func (g *Grid) String() string {
	var b strings.Builder
	for y := range g.height {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range g.width {
			if g.cells[y][x] {
				b.WriteByte(textAlive)
			} else {
				b.WriteByte(textDead)
			}
		}
	}
	return b.String()
}

// ParseGrid builds a grid from rows of text in the String format. 'O' and
// '*' are also accepted as alive cells.
func ParseGrid(rows ...string) (*Grid, error) {
	cells := make([][]bool, len(rows))
	for y, row := range rows {
		cells[y] = make([]bool, len(row))
		for x, ch := range []byte(row) {
			switch ch {
			case textAlive, 'O', '*':
				cells[y][x] = true
			case textDead:
			default:
				return nil, errors.Errorf("[ParseGrid] unexpected %q at row %d col %d", ch, y, x)
			}
		}
	}
	return NewGridFromCells(cells)
}

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	Out io.Writer
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(g *Grid) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				fmt.Fprint(r.Out, gridPosBlock)
			} else {
				fmt.Fprint(r.Out, gridPosEmpty)
			}
		}
		fmt.Fprintln(r.Out)
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	fmt.Fprint(r.Out, ansiClear)
}
