package variant

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

const (
	MinNumericSize = 3
	MaxNumericSize = 15

	NotaktoGrids = 3
	NotaktoSize  = 3

	GomokuSize = 15
	GomokuRun  = 5
)

var ErrInvalidSize = errors.New("invalid board size")

// Rules - everything that differs between the games: board shape, move legality,
// how a move is applied and reverted and what it means for the mover.
type Rules interface {
	Variant() entity.Variant
	Size() int
	NewBoard() *entity.Board
	Players(mode entity.Mode) [2]entity.Player

	// Prepare checks the move for player and fills in the placed value where the
	// variant implies it. The board is never mutated.
	Prepare(board *entity.Board, player entity.Player, move entity.Move) (entity.Move, error)
	// Apply places an already prepared move and updates derived board state.
	Apply(board *entity.Board, player entity.Player, move entity.Move) error
	// Revert undoes Apply for the most recent move on its grid.
	Revert(board *entity.Board, move entity.Move) error
	// Evaluate classifies the position right after move was applied.
	Evaluate(board *entity.Board, move entity.Move) (entity.Verdict, entity.Reason)

	// Values - what player may place right now.
	Values(board *entity.Board, player entity.Player) []entity.Cell
	// Stalemate - the verdict for the player to move when no legal move exists.
	Stalemate() entity.Verdict
	// Check - consistency of a restored board. It may fill in derived state the
	// snapshot left out, such as a disabled flag.
	Check(board *entity.Board) error
}

// New - rules for the variant. Size is only used by the numeric game.
func New(variant entity.Variant, size int) (Rules, error) {
	switch variant {
	case entity.VariantNumeric:
		return NewNumeric(size)
	case entity.VariantNotakto:
		return NewNotakto(), nil
	case entity.VariantGomoku:
		return NewGomoku(), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownVariant, variant)
	}
}

// LegalMoves - every move player can make, grid by grid, row-major.
func LegalMoves(rules Rules, board *entity.Board, player entity.Player) []entity.Move {
	values := rules.Values(board, player)
	if len(values) == 0 {
		return nil
	}

	var moves []entity.Move
	for g, grid := range board.Grids {
		if board.IsDisabled(g) {
			continue
		}

		for _, point := range grid.EmptyCells() {
			for _, value := range values {
				moves = append(moves, entity.Move{Grid: g, Row: point.Row, Col: point.Col, Value: value})
			}
		}
	}

	return moves
}

// HasLegalMove - LegalMoves without building the list.
func HasLegalMove(rules Rules, board *entity.Board, player entity.Player) bool {
	if len(rules.Values(board, player)) == 0 {
		return false
	}

	for g, grid := range board.Grids {
		if !board.IsDisabled(g) && !grid.IsFull() {
			return true
		}
	}

	return false
}

// checkTarget - the checks shared by all variants: the grid exists and is enabled,
// the cell is in bounds and empty.
func checkTarget(board *entity.Board, move entity.Move) error {
	grid, err := board.Grid(move.Grid)
	if err != nil {
		return err
	}

	if board.IsDisabled(move.Grid) {
		return fmt.Errorf("%w: grid %d", apperror.ErrGridDisabled, move.Grid+1)
	}

	if !grid.InBounds(move.Row, move.Col) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfBounds, move.Row, move.Col)
	}

	if !grid.At(move.Row, move.Col).IsEmpty() {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOccupied, move.Row, move.Col)
	}

	return nil
}

type lineCache struct {
	mu    sync.Mutex
	lines map[int][][]entity.Point
}

var cachedLines = &lineCache{lines: make(map[int][][]entity.Point)}

// squareLines - rows, columns and both main diagonals of a size x size grid.
func squareLines(size int) [][]entity.Point {
	cachedLines.mu.Lock()
	defer cachedLines.mu.Unlock()

	if lines, ok := cachedLines.lines[size]; ok {
		return lines
	}

	lines := make([][]entity.Point, 0, 2*size+2)
	for r := 0; r < size; r++ {
		line := make([]entity.Point, 0, size)
		for c := 0; c < size; c++ {
			line = append(line, entity.Point{Row: r, Col: c})
		}
		lines = append(lines, line)
	}

	for c := 0; c < size; c++ {
		line := make([]entity.Point, 0, size)
		for r := 0; r < size; r++ {
			line = append(line, entity.Point{Row: r, Col: c})
		}
		lines = append(lines, line)
	}

	diagonal := make([]entity.Point, 0, size)
	anti := make([]entity.Point, 0, size)
	for i := 0; i < size; i++ {
		diagonal = append(diagonal, entity.Point{Row: i, Col: i})
		anti = append(anti, entity.Point{Row: i, Col: size - 1 - i})
	}
	lines = append(lines, diagonal, anti)

	cachedLines.lines[size] = lines

	return lines
}

// SquareLines - exported for the computer player, which scores the same lines.
func SquareLines(size int) [][]entity.Point {
	return squareLines(size)
}

// linesThrough - the lines of a square grid that contain point.
func linesThrough(size int, point entity.Point) [][]entity.Point {
	all := squareLines(size)
	through := make([][]entity.Point, 0, 4)

	through = append(through, all[point.Row], all[size+point.Col])
	if point.Row == point.Col {
		through = append(through, all[2*size])
	}
	if point.Row+point.Col == size-1 {
		through = append(through, all[2*size+1])
	}

	return through
}
