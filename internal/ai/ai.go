package ai

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/variant"
)

const (
	winScore = 1_000_000_000.0
	inf      = math.MaxFloat64
)

type Config struct {
	MaxDepth int
	Width    int
	Radius   int
}

func DefaultConfig() Config {
	return Config{MaxDepth: 4, Width: 8, Radius: 2}
}

// evaluator - the variant-specific half of the search.
type evaluator interface {
	// candidates - the moves worth searching for player.
	candidates(board *entity.Board, player entity.Player) []entity.Move
	// scoreMove - cheap ordering score of a move mover has not made yet.
	scoreMove(board *entity.Board, move entity.Move, mover, waiting entity.Player) float64
	// scoreBoard - static value of the position for me.
	scoreBoard(board *entity.Board, me, opponent entity.Player, meToMove bool) float64
}

// forkFinder - evaluators that know what a double threat looks like.
type forkFinder interface {
	findFork(board *entity.Board, player entity.Player, moves []entity.Move) (entity.Move, bool)
}

// Strategy - the computer player. It is not safe for concurrent use.
type Strategy struct {
	logger *slog.Logger
	rules  variant.Rules
	config Config
	eval   evaluator
	nodes  int
}

func New(logger *slog.Logger, rules variant.Rules, config Config) (*Strategy, error) {
	if config.MaxDepth < 1 {
		config.MaxDepth = DefaultConfig().MaxDepth
	}
	if config.Width < 1 {
		config.Width = DefaultConfig().Width
	}
	if config.Radius < 1 {
		config.Radius = DefaultConfig().Radius
	}

	that := &Strategy{
		logger: logger.With("component", "ai", "variant", rules.Variant()),
		rules:  rules,
		config: config,
	}

	switch r := rules.(type) {
	case *variant.Numeric:
		that.eval = newNumericEval(r)
	case *variant.Notakto:
		that.eval = newNotaktoEval(r)
	case *variant.Gomoku:
		that.eval = newGomokuEval(r, config.Radius)
	default:
		return nil, fmt.Errorf("%w: no computer player for %q", apperror.ErrUnknownVariant, rules.Variant())
	}

	return that, nil
}

// ChooseMove - immediate win, immediate block, forks, then a bounded alpha-beta
// search over the best scored candidates. board is mutated during the search and
// restored before returning.
func (that *Strategy) ChooseMove(board *entity.Board, me, opponent entity.Player) (entity.Move, bool) {
	that.nodes = 0

	moves := that.eval.candidates(board, me)
	if len(moves) == 0 {
		return entity.Move{}, false
	}

	if that.rules.Variant() == entity.VariantNotakto {
		return that.chooseMisere(board, me, opponent, moves)
	}

	if move, ok := that.findWin(board, me, moves); ok {
		return that.chosen(move, "win", 0)
	}

	if move, ok := that.findBlock(board, me, opponent, moves); ok {
		return that.chosen(move, "block", 0)
	}

	if forks, ok := that.eval.(forkFinder); ok {
		if move, found := forks.findFork(board, me, moves); found {
			return that.chosen(move, "fork", 0)
		}

		if threat, found := forks.findFork(board, opponent, that.eval.candidates(board, opponent)); found {
			if move, at := that.bestAt(board, me, opponent, moves, threat); at {
				return that.chosen(move, "fork-block", 0)
			}
		}
	}

	depth := that.depthFor(len(moves))

	return that.chosen(that.search(board, me, opponent, moves, depth), "search", depth)
}

func (that *Strategy) chosen(move entity.Move, stage string, depth int) (entity.Move, bool) {
	that.logger.Debug("move chosen", "stage", stage, "move", move.String(), "depth", depth, "nodes", that.nodes)

	return move, true
}

// findWin - the first move that wins on the spot.
func (that *Strategy) findWin(board *entity.Board, player entity.Player, moves []entity.Move) (entity.Move, bool) {
	for _, move := range moves {
		if that.verdictOf(board, player, move) == entity.VerdictMoverWins {
			return move, true
		}
	}

	return entity.Move{}, false
}

// findBlock - occupies a cell where the opponent would win next turn.
func (that *Strategy) findBlock(board *entity.Board, me, opponent entity.Player, moves []entity.Move) (entity.Move, bool) {
	threat, ok := that.findWin(board, opponent, that.eval.candidates(board, opponent))
	if !ok {
		return entity.Move{}, false
	}

	return that.bestAt(board, me, opponent, moves, threat)
}

// bestAt - the best scored of my moves on the cell of target.
func (that *Strategy) bestAt(board *entity.Board, me, opponent entity.Player, moves []entity.Move, target entity.Move) (entity.Move, bool) {
	here := lo.Filter(moves, func(move entity.Move, _ int) bool {
		return move.Grid == target.Grid && move.Row == target.Row && move.Col == target.Col
	})
	if len(here) == 0 {
		return entity.Move{}, false
	}

	return that.order(board, here, me, opponent)[0], true
}

// verdictOf - what move would mean for player, leaving board as it was.
func (that *Strategy) verdictOf(board *entity.Board, player entity.Player, move entity.Move) entity.Verdict {
	that.nodes++

	if err := that.rules.Apply(board, player, move); err != nil {
		return entity.VerdictNone
	}
	verdict, _ := that.rules.Evaluate(board, move)
	that.revert(board, move)

	return verdict
}

func (that *Strategy) revert(board *entity.Board, move entity.Move) {
	if err := that.rules.Revert(board, move); err != nil {
		that.logger.Error("failed to revert simulated move", "move", move.String(), "error", err)
	}
}

// depthFor - fewer candidates allow deeper search.
func (that *Strategy) depthFor(candidates int) int {
	depth := that.config.MaxDepth

	switch {
	case candidates <= 12:
		depth = min(that.config.MaxDepth+2, 6)
	case candidates <= 60:
	case candidates <= 400:
		depth = min(depth, 3)
	default:
		depth = min(depth, 2)
	}

	return max(depth, 1)
}

type scoredMove struct {
	move  entity.Move
	score float64
}

// order - moves by descending ordering score, cut to the search width.
func (that *Strategy) order(board *entity.Board, moves []entity.Move, mover, waiting entity.Player) []entity.Move {
	ranked := lo.Map(moves, func(move entity.Move, _ int) scoredMove {
		return scoredMove{move: move, score: that.eval.scoreMove(board, move, mover, waiting)}
	})

	slices.SortStableFunc(ranked, func(a, b scoredMove) int {
		return cmp.Compare(b.score, a.score)
	})

	if len(ranked) > that.config.Width {
		ranked = ranked[:that.config.Width]
	}

	return lo.Map(ranked, func(s scoredMove, _ int) entity.Move {
		return s.move
	})
}

// search - alpha-beta over the top candidates, returning the best root move.
func (that *Strategy) search(board *entity.Board, me, opponent entity.Player, moves []entity.Move, depth int) entity.Move {
	ordered := that.order(board, moves, me, opponent)

	best, bestScore := ordered[0], -inf
	alpha := -inf

	for _, move := range ordered {
		score := that.value(board, move, me, opponent, true, depth-1, alpha, inf)
		if score > bestScore {
			best, bestScore = move, score
		}
		alpha = max(alpha, bestScore)
	}

	return best
}

// value - plays move for me (meMoves) or the opponent, scores the result from my
// side and takes the move back.
func (that *Strategy) value(board *entity.Board, move entity.Move, me, opponent entity.Player, meMoves bool, depth int, alpha, beta float64) float64 {
	that.nodes++

	mover := opponent
	if meMoves {
		mover = me
	}

	if err := that.rules.Apply(board, mover, move); err != nil {
		return that.terminal(entity.VerdictMoverLoses, meMoves, depth)
	}
	defer that.revert(board, move)

	verdict, _ := that.rules.Evaluate(board, move)
	if verdict != entity.VerdictNone {
		return that.terminal(verdict, meMoves, depth)
	}

	if depth <= 0 {
		return that.eval.scoreBoard(board, me, opponent, !meMoves)
	}

	return that.alphaBeta(board, me, opponent, !meMoves, depth, alpha, beta)
}

// alphaBeta - maximizing when it is my move, minimizing otherwise.
func (that *Strategy) alphaBeta(board *entity.Board, me, opponent entity.Player, maximizing bool, depth int, alpha, beta float64) float64 {
	mover, waiting := me, opponent
	if !maximizing {
		mover, waiting = opponent, me
	}

	moves := that.eval.candidates(board, mover)
	if len(moves) == 0 {
		return that.terminal(that.rules.Stalemate(), maximizing, depth)
	}

	if maximizing {
		best := -inf
		for _, move := range that.order(board, moves, mover, waiting) {
			best = max(best, that.value(board, move, me, opponent, true, depth-1, alpha, beta))
			alpha = max(alpha, best)
			if alpha >= beta {
				break
			}
		}

		return best
	}

	best := inf
	for _, move := range that.order(board, moves, mover, waiting) {
		best = min(best, that.value(board, move, me, opponent, false, depth-1, alpha, beta))
		beta = min(beta, best)
		if alpha >= beta {
			break
		}
	}

	return best
}

// terminal - a decided position scored for me. Remaining depth rewards quick wins
// and slow losses.
func (that *Strategy) terminal(verdict entity.Verdict, meMoved bool, depth int) float64 {
	score := winScore + float64(depth)

	switch verdict {
	case entity.VerdictMoverWins:
		if meMoved {
			return score
		}
		return -score
	case entity.VerdictMoverLoses:
		if meMoved {
			return -score
		}
		return score
	default:
		return 0
	}
}
