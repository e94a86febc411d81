package entity

import "strconv"

// Cell - content of a single board cell: empty, a mark, or a positive number.
type Cell int

const (
	EmptyCell Cell = 0
	MarkX     Cell = -1
	MarkO     Cell = -2
)

func (that Cell) IsEmpty() bool {
	return that == EmptyCell
}

func (that Cell) IsMark() bool {
	return that == MarkX || that == MarkO
}

// Value - the number held by the cell, 0 for empty cells and marks.
func (that Cell) Value() int {
	if that > 0 {
		return int(that)
	}

	return 0
}

// Opponent - the other mark. Numbers and empty cells are returned unchanged.
func (that Cell) Opponent() Cell {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return that
	}
}

func (that Cell) String() string {
	switch {
	case that == MarkX:
		return "X"
	case that == MarkO:
		return "O"
	case that > 0:
		return strconv.Itoa(int(that))
	default:
		return ""
	}
}

// Point - row and column of a cell inside one grid.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
