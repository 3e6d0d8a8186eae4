package model

import "fmt"

// Point addresses a single cell as (row, column).
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NeighborOffsets enumerates the full 8-cell neighborhood around a point.
var NeighborOffsets = [8]Point{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Add returns the point shifted by other.
func (p Point) Add(other Point) Point {
	return Point{Row: p.Row + other.Row, Col: p.Col + other.Col}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}
