package entity

import (
	"fmt"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
)

// Grid - a rectangular, row-major cell array.
type Grid struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"`
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
}

func (that *Grid) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < that.Height && col < that.Width
}

// At - returns the cell content. Coordinates must be in bounds.
func (that *Grid) At(row, col int) Cell {
	return that.Cells[row*that.Width+col]
}

// Place - puts value into an empty cell.
func (that *Grid) Place(row, col int, value Cell) error {
	if !that.InBounds(row, col) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfBounds, row, col)
	}

	if !that.At(row, col).IsEmpty() {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOccupied, row, col)
	}

	that.Cells[row*that.Width+col] = value

	return nil
}

// Clear - resets a cell to empty and returns what it held.
func (that *Grid) Clear(row, col int) (Cell, error) {
	if !that.InBounds(row, col) {
		return EmptyCell, fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfBounds, row, col)
	}

	previous := that.At(row, col)
	that.Cells[row*that.Width+col] = EmptyCell

	return previous, nil
}

func (that *Grid) IsFull() bool {
	for _, cell := range that.Cells {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

func (that *Grid) IsEmpty() bool {
	for _, cell := range that.Cells {
		if !cell.IsEmpty() {
			return false
		}
	}

	return true
}

func (that *Grid) EmptyCells() []Point {
	points := make([]Point, 0, len(that.Cells))
	for i, cell := range that.Cells {
		if cell.IsEmpty() {
			points = append(points, Point{Row: i / that.Width, Col: i % that.Width})
		}
	}

	return points
}

// Rows - a copy of the cells split into rows, used for rendering.
func (that *Grid) Rows() [][]Cell {
	rows := make([][]Cell, that.Height)
	for r := range rows {
		rows[r] = append([]Cell(nil), that.Cells[r*that.Width:(r+1)*that.Width]...)
	}

	return rows
}

func (that *Grid) Clone() *Grid {
	return &Grid{
		Width:  that.Width,
		Height: that.Height,
		Cells:  append([]Cell(nil), that.Cells...),
	}
}
