package model

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownPattern is returned by LookupPattern for names outside the catalog.
var ErrUnknownPattern = errors.New("unknown pattern")

// Pattern is a named shape of live cells relative to its top-left corner.
type Pattern struct {
	Name  string
	Cells []Point
}

var (
	// Block is a still life.
	Block = Pattern{Name: "block", Cells: []Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}}}
	// Blinker is a period-2 oscillator, horizontal phase.
	Blinker = Pattern{Name: "blinker", Cells: []Point{{0, 0}, {0, 1}, {0, 2}}}
	// Glider travels one cell diagonally every 4 generations.
	Glider = Pattern{Name: "glider", Cells: []Point{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}}
	// Toad is a period-2 oscillator.
	Toad = Pattern{Name: "toad", Cells: []Point{{0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}}}
	// Beacon is a period-2 oscillator made of two diagonal blocks.
	Beacon = Pattern{Name: "beacon", Cells: []Point{{0, 0}, {0, 1}, {1, 0}, {2, 3}, {3, 2}, {3, 3}}}
)

var catalog = map[string]Pattern{
	Block.Name:   Block,
	Blinker.Name: Blinker,
	Glider.Name:  Glider,
	Toad.Name:    Toad,
	Beacon.Name:  Beacon,
}

// LookupPattern finds a catalog pattern by case-insensitive name.
func LookupPattern(name string) (Pattern, error) {
	p, ok := catalog[strings.ToLower(name)]
	if !ok {
		return Pattern{}, errors.Wrapf(ErrUnknownPattern, "%q (known: %s)", name, strings.Join(PatternNames(), ", "))
	}
	return p, nil
}

// PatternNames lists the catalog in alphabetical order.
func PatternNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// At returns the pattern's cells translated to origin.
func (p Pattern) At(origin Point) []Point {
	out := make([]Point, len(p.Cells))
	for i, c := range p.Cells {
		out[i] = c.Add(origin)
	}
	return out
}

// Place brings the pattern to life with its top-left corner at origin.
// Nothing is written unless every cell fits on the grid.
func (g *Grid) Place(p Pattern, origin Point) error {
	cells := p.At(origin)
	for _, c := range cells {
		if err := g.checkBounds(c); err != nil {
			return errors.Wrapf(err, "[Place] %s at %v", p.Name, origin)
		}
	}
	for _, c := range cells {
		g.cells[c.Row][c.Col] = true
	}
	return nil
}
