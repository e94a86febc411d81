package variant

import (
	"fmt"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

// Directions - the four axes a run can follow: horizontal, vertical and both diagonals.
var Directions = [4]entity.Point{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: -1}}

// Gomoku - five in a row on a 15x15 grid, X against O.
type Gomoku struct{}

func NewGomoku() *Gomoku {
	return &Gomoku{}
}

func (that *Gomoku) Variant() entity.Variant {
	return entity.VariantGomoku
}

func (that *Gomoku) Size() int {
	return GomokuSize
}

func (that *Gomoku) NewBoard() *entity.Board {
	return entity.NewBoard(1, GomokuSize, GomokuSize)
}

func (that *Gomoku) Players(mode entity.Mode) [2]entity.Player {
	return entity.NewPlayers(mode, entity.MarkX, entity.MarkO)
}

func (that *Gomoku) Prepare(board *entity.Board, player entity.Player, move entity.Move) (entity.Move, error) {
	if err := checkTarget(board, move); err != nil {
		return move, err
	}

	if !move.Value.IsEmpty() && move.Value != player.Mark {
		return move, fmt.Errorf("%w: %s plays %s", apperror.ErrValueOutOfRange, player.Name, player.Mark)
	}

	move.Value = player.Mark

	return move, nil
}

func (that *Gomoku) Apply(board *entity.Board, _ entity.Player, move entity.Move) error {
	return board.Place(move.Grid, move.Row, move.Col, move.Value)
}

func (that *Gomoku) Revert(board *entity.Board, move entity.Move) error {
	return board.Clear(move.Grid, move.Row, move.Col)
}

func (that *Gomoku) Evaluate(board *entity.Board, move entity.Move) (entity.Verdict, entity.Reason) {
	grid := board.Grids[move.Grid]

	if RunLength(grid, entity.Point{Row: move.Row, Col: move.Col}, move.Value) >= GomokuRun {
		return entity.VerdictMoverWins, entity.ReasonRun
	}

	if grid.IsFull() {
		return entity.VerdictDraw, entity.ReasonExhaust
	}

	return entity.VerdictNone, ""
}

func (that *Gomoku) Values(_ *entity.Board, player entity.Player) []entity.Cell {
	return []entity.Cell{player.Mark}
}

func (that *Gomoku) Stalemate() entity.Verdict {
	return entity.VerdictDraw
}

func (that *Gomoku) Check(board *entity.Board) error {
	if len(board.Grids) != 1 || board.Grids[0].Width != GomokuSize || board.Grids[0].Height != GomokuSize {
		return fmt.Errorf("%w: gomoku board must be one %dx%d grid", apperror.ErrCorruptSnapshot, GomokuSize, GomokuSize)
	}

	for _, cell := range board.Grids[0].Cells {
		if !cell.IsEmpty() && !cell.IsMark() {
			return fmt.Errorf("%w: cell holds %s", apperror.ErrCorruptSnapshot, cell)
		}
	}

	return nil
}

// RunLength - the longest contiguous run of mark through point along any axis,
// counting point itself as mark.
func RunLength(grid *entity.Grid, point entity.Point, mark entity.Cell) int {
	longest := 0
	for _, dir := range Directions {
		total := 1 + CountContiguous(grid, point, dir, mark) + CountContiguous(grid, point, entity.Point{Row: -dir.Row, Col: -dir.Col}, mark)
		if total > longest {
			longest = total
		}
	}

	return longest
}

// CountContiguous - cells equal to mark stepping from point (exclusive) along dir.
func CountContiguous(grid *entity.Grid, point, dir entity.Point, mark entity.Cell) int {
	count := 0
	row, col := point.Row+dir.Row, point.Col+dir.Col
	for grid.InBounds(row, col) && grid.At(row, col) == mark {
		count++
		row += dir.Row
		col += dir.Col
	}

	return count
}
