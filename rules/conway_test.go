package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyConwayRules(t *testing.T) {
	for neighbors := 0; neighbors <= 8; neighbors++ {
		assert.Equal(t, neighbors == 2 || neighbors == 3, ApplyConwayRules(neighbors, true), "alive with %d", neighbors)
		assert.Equal(t, neighbors == 3, ApplyConwayRules(neighbors, false), "dead with %d", neighbors)
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		alive     bool
		neighbors int
		want      Transition
	}{
		{"dead cell with three neighbors is born", false, 3, Birth},
		{"dead cell with two neighbors stays dead", false, 2, Unchanged},
		{"dead cell with four neighbors stays dead", false, 4, Unchanged},
		{"isolated live cell dies", true, 0, Death},
		{"live cell with one neighbor dies", true, 1, Death},
		{"live cell with two neighbors survives", true, 2, Unchanged},
		{"live cell with three neighbors survives", true, 3, Unchanged},
		{"overcrowded live cell dies", true, 4, Death},
		{"fully surrounded live cell dies", true, 8, Death},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.alive, tt.neighbors))
		})
	}
}

func TestTransitionString(t *testing.T) {
	assert.Equal(t, "birth", Birth.String())
	assert.Equal(t, "death", Death.String())
	assert.Equal(t, "unchanged", Unchanged.String())
}
