package rules

// Transition is the change a single cell undergoes between two generations.
type Transition uint8

const (
	Unchanged Transition = iota
	Birth
	Death
)

func (t Transition) String() string {
	switch t {
	case Birth:
		return "birth"
	case Death:
		return "death"
	default:
		return "unchanged"
	}
}

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// Decide reports how a cell with the given state and live neighbor count changes.
func Decide(alive bool, neighbors int) Transition {
	next := ApplyConwayRules(neighbors, alive)
	switch {
	case !alive && next:
		return Birth
	case alive && !next:
		return Death
	}
	return Unchanged
}
