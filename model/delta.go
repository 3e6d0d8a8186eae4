package model

// Delta is the set of state changes that turns one generation into the next.
// Revive and Kill never share a point when produced by ComputeTransitions,
// since each cell yields at most one transition per scan.
type Delta struct {
	Revive []Point
	Kill   []Point
}

// Len returns the number of cells the delta touches.
func (d Delta) Len() int {
	return len(d.Revive) + len(d.Kill)
}

// IsEmpty reports whether applying the delta would leave the grid unchanged.
func (d Delta) IsEmpty() bool {
	return d.Len() == 0
}

func (d *Delta) merge(other Delta) {
	d.Revive = append(d.Revive, other.Revive...)
	d.Kill = append(d.Kill, other.Kill...)
}
