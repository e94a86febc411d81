package variant

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

// Numeric - numerical tic-tac-toe on an N x N grid. The odd player places odd
// numbers, the even player even ones, every number at most once. A full line that
// sums to N(N²+1)/2 wins.
type Numeric struct {
	size int
}

func NewNumeric(size int) (*Numeric, error) {
	if size < MinNumericSize || size > MaxNumericSize {
		return nil, fmt.Errorf("%w: %d, expected %d..%d", ErrInvalidSize, size, MinNumericSize, MaxNumericSize)
	}

	return &Numeric{size: size}, nil
}

func (that *Numeric) Variant() entity.Variant {
	return entity.VariantNumeric
}

func (that *Numeric) Size() int {
	return that.size
}

// Target - the sum a line must reach.
func (that *Numeric) Target() int {
	return that.size * (that.size*that.size + 1) / 2
}

func (that *Numeric) MaxValue() int {
	return that.size * that.size
}

func (that *Numeric) NewBoard() *entity.Board {
	return entity.NewNumericBoard(that.size)
}

func (that *Numeric) Players(mode entity.Mode) [2]entity.Player {
	return entity.NewPlayers(mode, entity.EmptyCell, entity.EmptyCell)
}

func (that *Numeric) Prepare(board *entity.Board, player entity.Player, move entity.Move) (entity.Move, error) {
	if err := checkTarget(board, move); err != nil {
		return move, err
	}

	value := int(move.Value)
	if value < 1 || value > that.MaxValue() {
		return move, fmt.Errorf("%w: %d, expected 1..%d", apperror.ErrValueOutOfRange, value, that.MaxValue())
	}

	if board.IsUsed(value) {
		return move, fmt.Errorf("%w: %d", apperror.ErrValueAlreadyUsed, value)
	}

	if (value%2 == 1) != player.Odd {
		return move, fmt.Errorf("%w: %s can't place %d", apperror.ErrWrongParity, player.Name, value)
	}

	return move, nil
}

func (that *Numeric) Apply(board *entity.Board, _ entity.Player, move entity.Move) error {
	return board.Place(move.Grid, move.Row, move.Col, move.Value)
}

func (that *Numeric) Revert(board *entity.Board, move entity.Move) error {
	return board.Clear(move.Grid, move.Row, move.Col)
}

func (that *Numeric) Evaluate(board *entity.Board, move entity.Move) (entity.Verdict, entity.Reason) {
	grid := board.Grids[move.Grid]

	for _, line := range linesThrough(that.size, entity.Point{Row: move.Row, Col: move.Col}) {
		if that.isWinningLine(grid, line) {
			return entity.VerdictMoverWins, entity.ReasonLine
		}
	}

	if grid.IsFull() {
		return entity.VerdictDraw, entity.ReasonExhaust
	}

	return entity.VerdictNone, ""
}

func (that *Numeric) isWinningLine(grid *entity.Grid, line []entity.Point) bool {
	sum := 0
	for _, point := range line {
		cell := grid.At(point.Row, point.Col)
		if cell.IsEmpty() {
			return false
		}
		sum += cell.Value()
	}

	return sum == that.Target()
}

// Values - unused numbers matching the player's parity, ascending.
func (that *Numeric) Values(board *entity.Board, player entity.Player) []entity.Cell {
	values := lo.Filter(lo.RangeFrom(1, that.MaxValue()), func(value, _ int) bool {
		return (value%2 == 1) == player.Odd && !board.IsUsed(value)
	})

	return lo.Map(values, func(value, _ int) entity.Cell {
		return entity.Cell(value)
	})
}

func (that *Numeric) Stalemate() entity.Verdict {
	return entity.VerdictDraw
}

func (that *Numeric) Check(board *entity.Board) error {
	if len(board.Grids) != 1 || board.Grids[0].Width != that.size || board.Grids[0].Height != that.size {
		return fmt.Errorf("%w: numeric board must be one %dx%d grid", apperror.ErrCorruptSnapshot, that.size, that.size)
	}

	seen := make(map[int]bool, that.MaxValue())
	for _, cell := range board.Grids[0].Cells {
		if cell.IsEmpty() {
			continue
		}

		value := cell.Value()
		if value < 1 || value > that.MaxValue() {
			return fmt.Errorf("%w: cell holds %s", apperror.ErrCorruptSnapshot, cell)
		}

		if seen[value] {
			return fmt.Errorf("%w: %d placed twice", apperror.ErrCorruptSnapshot, value)
		}
		seen[value] = true
	}

	return nil
}
