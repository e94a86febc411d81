package apperror

import "errors"

var (
	ErrOutOfBounds      = errors.New("coordinates are out of bounds")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrValueOutOfRange  = errors.New("value is out of range")
	ErrValueAlreadyUsed = errors.New("value is already used")
	ErrWrongParity      = errors.New("value has the wrong parity for this player")
	ErrGridDisabled     = errors.New("grid is disabled")
	ErrNoLegalMove      = errors.New("no legal move")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNothingToRedo    = errors.New("nothing to redo")
	ErrCorruptSnapshot  = errors.New("snapshot is corrupt")

	ErrGameFinished     = errors.New("game is already finished")
	ErrNotComputerTurn  = errors.New("it's not the computer's turn")
	ErrUnknownVariant   = errors.New("unknown game variant")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

var recoverable = []error{
	ErrOutOfBounds,
	ErrCellOccupied,
	ErrValueOutOfRange,
	ErrValueAlreadyUsed,
	ErrWrongParity,
	ErrGridDisabled,
}

// IsRecoverable - reports whether err is a move legality failure the player can retry.
func IsRecoverable(err error) bool {
	for _, target := range recoverable {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
