package ai

import (
	"github.com/samber/lo"

	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/variant"
)

type notaktoEval struct {
	rules *variant.Notakto
}

func newNotaktoEval(rules *variant.Notakto) *notaktoEval {
	return &notaktoEval{rules: rules}
}

func (that *notaktoEval) candidates(board *entity.Board, player entity.Player) []entity.Move {
	return variant.LegalMoves(that.rules, board, player)
}

// scoreMove - completing a line is the last resort, the center and corners of a
// grid come first otherwise.
func (that *notaktoEval) scoreMove(board *entity.Board, move entity.Move, _, _ entity.Player) float64 {
	point := entity.Point{Row: move.Row, Col: move.Col}

	if that.rules.IsCompleting(board.Grids[move.Grid], point) {
		if board.ActiveGrids() == 1 {
			return -winScore
		}
		return -50
	}

	switch {
	case point.Row == 1 && point.Col == 1:
		return 12
	case point.Row != 1 && point.Col != 1:
		return 11
	default:
		return 10
	}
}

// scoreBoard - safe cells are the ones that can be filled without completing a
// line. The side to move facing an even number of them tends to run out first.
func (that *notaktoEval) scoreBoard(board *entity.Board, _, _ entity.Player, meToMove bool) float64 {
	active := board.ActiveGrids()
	if active == 0 {
		return 0
	}

	weight := 100.0 / float64(active)
	if that.safeCells(board)%2 == 0 {
		weight = -weight
	}

	if meToMove {
		return weight
	}

	return -weight
}

func (that *notaktoEval) safeCells(board *entity.Board) int {
	count := 0
	for g, grid := range board.Grids {
		if board.IsDisabled(g) {
			continue
		}

		count += lo.CountBy(grid.EmptyCells(), func(point entity.Point) bool {
			return !that.rules.IsCompleting(grid, point)
		})
	}

	return count
}

// chooseMisere - never disable the last grid while anything else is playable, take a
// move that leaves the opponent only losing replies, otherwise search the safe moves.
func (that *Strategy) chooseMisere(board *entity.Board, me, opponent entity.Player, moves []entity.Move) (entity.Move, bool) {
	survivable := lo.Filter(moves, func(move entity.Move, _ int) bool {
		return that.verdictOf(board, me, move) != entity.VerdictMoverLoses
	})
	if len(survivable) == 0 {
		return that.chosen(moves[0], "forced", 0)
	}

	for _, move := range survivable {
		if that.leavesOnlyLosses(board, me, opponent, move) {
			return that.chosen(move, "win", 0)
		}
	}

	depth := that.misereDepth(len(survivable))

	return that.chosen(that.search(board, me, opponent, survivable, depth), "search", depth)
}

func (that *Strategy) leavesOnlyLosses(board *entity.Board, me, opponent entity.Player, move entity.Move) bool {
	if err := that.rules.Apply(board, me, move); err != nil {
		return false
	}
	defer that.revert(board, move)

	for _, reply := range that.eval.candidates(board, opponent) {
		if that.verdictOf(board, opponent, reply) != entity.VerdictMoverLoses {
			return false
		}
	}

	return true
}

// misereDepth - the endgame is small enough to read out completely.
func (that *Strategy) misereDepth(candidates int) int {
	switch {
	case candidates <= 8:
		return 8
	case candidates <= 14:
		return 5
	default:
		return that.config.MaxDepth
	}
}
