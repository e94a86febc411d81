package history

import (
	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

// History - undo and redo stacks of applied moves. The top of the undo stack is
// always the most recently applied move that has not been undone.
type History struct {
	undo []entity.Move
	redo []entity.Move
}

func New() *History {
	return &History{}
}

// Restore - a history whose undo stack holds moves in chronological order.
func Restore(moves []entity.Move) *History {
	return &History{undo: append([]entity.Move(nil), moves...)}
}

// Record - pushes a new move and discards the redo stack.
func (that *History) Record(move entity.Move) {
	that.undo = append(that.undo, move)
	that.redo = that.redo[:0]
}

func (that *History) Undo() (entity.Move, error) {
	if len(that.undo) == 0 {
		return entity.Move{}, apperror.ErrNothingToUndo
	}

	move := that.undo[len(that.undo)-1]
	that.undo = that.undo[:len(that.undo)-1]
	that.redo = append(that.redo, move)

	return move, nil
}

func (that *History) Redo() (entity.Move, error) {
	if len(that.redo) == 0 {
		return entity.Move{}, apperror.ErrNothingToRedo
	}

	move := that.redo[len(that.redo)-1]
	that.redo = that.redo[:len(that.redo)-1]
	that.undo = append(that.undo, move)

	return move, nil
}

// PeekUndo - the move Undo would return.
func (that *History) PeekUndo() (entity.Move, bool) {
	if len(that.undo) == 0 {
		return entity.Move{}, false
	}

	return that.undo[len(that.undo)-1], true
}

// PeekRedo - the move Redo would return.
func (that *History) PeekRedo() (entity.Move, bool) {
	if len(that.redo) == 0 {
		return entity.Move{}, false
	}

	return that.redo[len(that.redo)-1], true
}

// Moves - a copy of the undo stack, oldest first.
func (that *History) Moves() []entity.Move {
	return append([]entity.Move(nil), that.undo...)
}

func (that *History) Len() int {
	return len(that.undo)
}

func (that *History) CanUndo() bool {
	return len(that.undo) > 0
}

func (that *History) CanRedo() bool {
	return len(that.redo) > 0
}
