package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPattern(t *testing.T) {
	p, err := LookupPattern("GLIDER")
	require.NoError(t, err)
	assert.Equal(t, Glider, p)

	_, err = LookupPattern("spaceship")
	require.ErrorIs(t, err, ErrUnknownPattern)
	assert.Contains(t, err.Error(), "beacon, blinker, block, glider, toad")
}

func TestPatternAt(t *testing.T) {
	assert.Equal(t, []Point{{2, 3}, {2, 4}, {2, 5}}, Blinker.At(Point{2, 3}))
}

func TestPlace_OutOfBoundsWritesNothing(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	require.ErrorIs(t, g.Place(Block, Point{2, 2}), ErrOutOfBounds)
	assert.Zero(t, g.CountLivingCells())
}

func TestGlider_TravelsDiagonally(t *testing.T) {
	g, err := NewGrid(6, 6)
	require.NoError(t, err)
	require.NoError(t, g.Place(Glider, Point{0, 0}))

	for range 4 {
		step(t, g)
	}
	assert.Equal(t, Glider.At(Point{1, 1}), g.AliveCells())
}

func TestOscillators_HavePeriodTwo(t *testing.T) {
	for _, p := range []Pattern{Blinker, Toad, Beacon} {
		t.Run(p.Name, func(t *testing.T) {
			g, err := NewGrid(6, 6)
			require.NoError(t, err)
			require.NoError(t, g.Place(p, Point{2, 1}))
			start := g.Clone()

			step(t, g)
			assert.False(t, start.Equal(g), "phase 1 should differ")
			step(t, g)
			assert.True(t, start.Equal(g), "phase 2 should return to start:\n%s", g)
		})
	}
}

func TestBlock_IsStillLife(t *testing.T) {
	g, err := NewGrid(4, 4)
	require.NoError(t, err)
	require.NoError(t, g.Place(Block, Point{0, 0}))

	delta := step(t, g)
	assert.True(t, delta.IsEmpty())
}
