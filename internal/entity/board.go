package entity

import (
	"fmt"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
)

// Board - one or more grids played as one game. The misère variant uses the
// per-grid disabled flags, the numeric variant tracks which values are on the board.
type Board struct {
	Grids      []*Grid  `json:"grids"`
	Disabled   []bool   `json:"disabled"`
	DisabledBy []string `json:"disabled_by"`

	used []bool
}

// NewBoard - creates count grids of width x height.
func NewBoard(count, width, height int) *Board {
	board := &Board{
		Grids:      make([]*Grid, count),
		Disabled:   make([]bool, count),
		DisabledBy: make([]string, count),
	}

	for i := range board.Grids {
		board.Grids[i] = NewGrid(width, height)
	}

	return board
}

// NewNumericBoard - a single size x size grid that tracks the values 1..size².
func NewNumericBoard(size int) *Board {
	board := NewBoard(1, size, size)
	board.used = make([]bool, size*size+1)

	return board
}

func (that *Board) Grid(index int) (*Grid, error) {
	if index < 0 || index >= len(that.Grids) {
		return nil, fmt.Errorf("%w: grid %d", apperror.ErrOutOfBounds, index)
	}

	return that.Grids[index], nil
}

// Place - puts value into an empty cell of the grid. Numbers are recorded as used.
func (that *Board) Place(gridIndex, row, col int, value Cell) error {
	grid, err := that.Grid(gridIndex)
	if err != nil {
		return err
	}

	if err = grid.Place(row, col, value); err != nil {
		return err
	}

	if that.TracksValues() && value.Value() > 0 && value.Value() < len(that.used) {
		that.used[value.Value()] = true
	}

	return nil
}

// Clear - empties a cell and releases the value it held.
func (that *Board) Clear(gridIndex, row, col int) error {
	grid, err := that.Grid(gridIndex)
	if err != nil {
		return err
	}

	previous, err := grid.Clear(row, col)
	if err != nil {
		return err
	}

	if that.TracksValues() && previous.Value() > 0 && previous.Value() < len(that.used) {
		that.used[previous.Value()] = false
	}

	return nil
}

func (that *Board) IsDisabled(gridIndex int) bool {
	if gridIndex < 0 || gridIndex >= len(that.Disabled) {
		return false
	}

	return that.Disabled[gridIndex]
}

func (that *Board) Disable(gridIndex int, by string) {
	that.Disabled[gridIndex] = true
	that.DisabledBy[gridIndex] = by
}

func (that *Board) Enable(gridIndex int) {
	that.Disabled[gridIndex] = false
	that.DisabledBy[gridIndex] = ""
}

// ActiveGrids - number of grids that still accept moves.
func (that *Board) ActiveGrids() int {
	active := 0
	for i, grid := range that.Grids {
		if !that.Disabled[i] && !grid.IsFull() {
			active++
		}
	}

	return active
}

func (that *Board) IsFull() bool {
	for _, grid := range that.Grids {
		if !grid.IsFull() {
			return false
		}
	}

	return true
}

func (that *Board) IsEmpty() bool {
	for _, grid := range that.Grids {
		if !grid.IsEmpty() {
			return false
		}
	}

	return true
}

func (that *Board) TracksValues() bool {
	return that.used != nil
}

// MaxValue - the largest number that may be placed, 0 for mark boards.
func (that *Board) MaxValue() int {
	if !that.TracksValues() {
		return 0
	}

	return len(that.used) - 1
}

func (that *Board) IsUsed(value int) bool {
	if value <= 0 || value >= len(that.used) {
		return false
	}

	return that.used[value]
}

// UsedValues - the numbers on the board in ascending order.
func (that *Board) UsedValues() []int {
	values := make([]int, 0, len(that.used))
	for value, used := range that.used {
		if used {
			values = append(values, value)
		}
	}

	return values
}

// Clone - a deep copy, safe to hand to renderers or to mutate during lookahead.
func (that *Board) Clone() *Board {
	clone := &Board{
		Grids:      make([]*Grid, len(that.Grids)),
		Disabled:   append([]bool(nil), that.Disabled...),
		DisabledBy: append([]string(nil), that.DisabledBy...),
	}

	for i, grid := range that.Grids {
		clone.Grids[i] = grid.Clone()
	}

	if that.used != nil {
		clone.used = append([]bool(nil), that.used...)
	}

	return clone
}
