package variant

import (
	"fmt"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

// Notakto - misère tic-tac-toe on three 3x3 grids where both players place X.
// Completing a line disables its grid; whoever disables the last grid loses.
type Notakto struct{}

func NewNotakto() *Notakto {
	return &Notakto{}
}

func (that *Notakto) Variant() entity.Variant {
	return entity.VariantNotakto
}

func (that *Notakto) Size() int {
	return NotaktoSize
}

func (that *Notakto) NewBoard() *entity.Board {
	return entity.NewBoard(NotaktoGrids, NotaktoSize, NotaktoSize)
}

func (that *Notakto) Players(mode entity.Mode) [2]entity.Player {
	return entity.NewPlayers(mode, entity.MarkX, entity.MarkX)
}

func (that *Notakto) Prepare(board *entity.Board, _ entity.Player, move entity.Move) (entity.Move, error) {
	if err := checkTarget(board, move); err != nil {
		return move, err
	}

	if !move.Value.IsEmpty() && move.Value != entity.MarkX {
		return move, fmt.Errorf("%w: only X is played", apperror.ErrValueOutOfRange)
	}

	move.Value = entity.MarkX

	return move, nil
}

func (that *Notakto) Apply(board *entity.Board, player entity.Player, move entity.Move) error {
	if err := board.Place(move.Grid, move.Row, move.Col, move.Value); err != nil {
		return err
	}

	if that.hasLine(board.Grids[move.Grid]) {
		board.Disable(move.Grid, player.Name)
	}

	return nil
}

// Revert - clears the cell and re-enables the grid when move was the one that completed
// its line. A grid disabled by a restored flag without a line stays disabled.
func (that *Notakto) Revert(board *entity.Board, move entity.Move) error {
	grid := board.Grids[move.Grid]
	completed := board.IsDisabled(move.Grid) && that.hasLine(grid)

	if err := board.Clear(move.Grid, move.Row, move.Col); err != nil {
		return err
	}

	if completed && !that.hasLine(grid) {
		board.Enable(move.Grid)
	}

	return nil
}

func (that *Notakto) Evaluate(board *entity.Board, move entity.Move) (entity.Verdict, entity.Reason) {
	if board.IsDisabled(move.Grid) && board.ActiveGrids() == 0 {
		return entity.VerdictMoverLoses, entity.ReasonLastLine
	}

	return entity.VerdictNone, ""
}

func (that *Notakto) Values(_ *entity.Board, _ entity.Player) []entity.Cell {
	return []entity.Cell{entity.MarkX}
}

func (that *Notakto) Stalemate() entity.Verdict {
	return entity.VerdictMoverLoses
}

// Check - the grids must be 3x3 and hold only X. Restored disabled flags are kept as
// they are; a grid holding a line without a flag is disabled.
func (that *Notakto) Check(board *entity.Board) error {
	if len(board.Grids) != NotaktoGrids {
		return fmt.Errorf("%w: expected %d grids, got %d", apperror.ErrCorruptSnapshot, NotaktoGrids, len(board.Grids))
	}

	for i, grid := range board.Grids {
		if grid.Width != NotaktoSize || grid.Height != NotaktoSize {
			return fmt.Errorf("%w: grid %d is not %dx%d", apperror.ErrCorruptSnapshot, i+1, NotaktoSize, NotaktoSize)
		}

		for _, cell := range grid.Cells {
			if !cell.IsEmpty() && cell != entity.MarkX {
				return fmt.Errorf("%w: grid %d holds %s", apperror.ErrCorruptSnapshot, i+1, cell)
			}
		}

		if that.hasLine(grid) && !board.IsDisabled(i) {
			board.Disable(i, "")
		}
	}

	return nil
}

// IsCompleting - whether an X at point would complete a line on grid.
func (that *Notakto) IsCompleting(grid *entity.Grid, point entity.Point) bool {
	for _, line := range linesThrough(NotaktoSize, point) {
		complete := true
		for _, p := range line {
			if p != point && grid.At(p.Row, p.Col) != entity.MarkX {
				complete = false
				break
			}
		}

		if complete {
			return true
		}
	}

	return false
}

func (that *Notakto) hasLine(grid *entity.Grid) bool {
	for _, line := range squareLines(NotaktoSize) {
		complete := true
		for _, p := range line {
			if grid.At(p.Row, p.Col) != entity.MarkX {
				complete = false
				break
			}
		}

		if complete {
			return true
		}
	}

	return false
}
