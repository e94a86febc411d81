package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/history"
	"github.com/rocketscienceinc/boardgames/internal/variant"
)

// Snapshot - the serializable state of the session. The redo stack is dropped.
func (that *Engine) Snapshot() *entity.Snapshot {
	board := that.board.Clone()

	snapshot := &entity.Snapshot{
		ID:         that.id,
		Variant:    that.rules.Variant(),
		Mode:       that.mode,
		Size:       that.rules.Size(),
		Grids:      board.Grids,
		Disabled:   board.Disabled,
		DisabledBy: board.DisabledBy,
		Players:    that.players,
		Turn:       that.turn,
		History:    that.history.Moves(),
		SavedAt:    time.Now().UTC(),
	}

	if board.TracksValues() {
		snapshot.UsedValues = board.UsedValues()
	}

	return snapshot
}

// Restore - rebuilds a session from snapshot. Stored disabled flags are replayed as
// they are and must agree with the board; any disagreement is ErrCorruptSnapshot.
func Restore(logger *slog.Logger, rules variant.Rules, snapshot *entity.Snapshot) (*Engine, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	if snapshot.Variant != rules.Variant() {
		return nil, fmt.Errorf("%w: snapshot of %q restored as %q", apperror.ErrCorruptSnapshot, snapshot.Variant, rules.Variant())
	}

	board, err := restoreBoard(rules, snapshot)
	if err != nil {
		return nil, err
	}

	if err = checkHistory(board, snapshot.History); err != nil {
		return nil, err
	}

	that := New(logger, snapshot.ID, snapshot.Mode, rules)
	that.board = board
	that.players = snapshot.Players
	that.turn = snapshot.Turn
	that.history = history.Restore(snapshot.History)

	if last, ok := that.history.PeekUndo(); ok {
		if verdict, reason := rules.Evaluate(board, last); verdict != entity.VerdictNone {
			that.finishBy(last.Player, verdict, reason)
		}
	}

	if !that.result.IsFinished() && !variant.HasLegalMove(rules, board, that.Current()) {
		that.finishStalemate()
	}

	that.logger.Info("game restored", "id", snapshot.ID, "moves", that.history.Len())

	return that, nil
}

func restoreBoard(rules variant.Rules, snapshot *entity.Snapshot) (*entity.Board, error) {
	board := rules.NewBoard()

	if len(board.Grids) != len(snapshot.Grids) {
		return nil, fmt.Errorf("%w: expected %d grids, got %d", apperror.ErrCorruptSnapshot, len(board.Grids), len(snapshot.Grids))
	}

	for g, grid := range snapshot.Grids {
		if grid.Width != board.Grids[g].Width || grid.Height != board.Grids[g].Height {
			return nil, fmt.Errorf("%w: grid %d is %dx%d", apperror.ErrCorruptSnapshot, g+1, grid.Width, grid.Height)
		}

		for i, cell := range grid.Cells {
			if cell.IsEmpty() {
				continue
			}

			if err := board.Place(g, i/grid.Width, i%grid.Width, cell); err != nil {
				return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptSnapshot, err)
			}
		}
	}

	for g := range board.Grids {
		if snapshot.Disabled != nil && snapshot.Disabled[g] {
			by := ""
			if snapshot.DisabledBy != nil {
				by = snapshot.DisabledBy[g]
			}
			board.Disable(g, by)
		}
	}

	if board.TracksValues() && !slices.Equal(board.UsedValues(), normalized(snapshot.UsedValues)) {
		return nil, fmt.Errorf("%w: used values disagree with the board", apperror.ErrCorruptSnapshot)
	}

	if err := rules.Check(board); err != nil {
		return nil, err
	}

	return board, nil
}

// checkHistory - every recorded move must still be on the board.
func checkHistory(board *entity.Board, moves []entity.Move) error {
	for _, move := range moves {
		if move.Player != 0 && move.Player != 1 {
			return fmt.Errorf("%w: move by player %d", apperror.ErrCorruptSnapshot, move.Player)
		}

		grid, err := board.Grid(move.Grid)
		if err != nil || !grid.InBounds(move.Row, move.Col) || grid.At(move.Row, move.Col) != move.Value {
			return fmt.Errorf("%w: history move %s is not on the board", apperror.ErrCorruptSnapshot, move)
		}
	}

	return nil
}

func normalized(values []int) []int {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	if sorted == nil {
		return []int{}
	}

	return sorted
}
