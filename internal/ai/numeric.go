package ai

import (
	"github.com/samber/lo"

	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/variant"
)

const (
	numericThreat   = 10_000.0
	numericProgress = 10.0
	numericCenter   = 1.0
)

type numericEval struct {
	rules *variant.Numeric
	lines [][]entity.Point
}

func newNumericEval(rules *variant.Numeric) *numericEval {
	return &numericEval{rules: rules, lines: variant.SquareLines(rules.Size())}
}

func (that *numericEval) candidates(board *entity.Board, player entity.Player) []entity.Move {
	return variant.LegalMoves(that.rules, board, player)
}

// lineState - filled cell count, remaining gap to the target and the cells of each parity.
type lineState struct {
	empty int
	gap   int
	odd   int
	even  int
}

func (that *numericEval) state(grid *entity.Grid, line []entity.Point) lineState {
	state := lineState{gap: that.rules.Target()}
	for _, point := range line {
		cell := grid.At(point.Row, point.Col)
		if cell.IsEmpty() {
			state.empty++
			continue
		}

		state.gap -= cell.Value()
		if cell.Value()%2 == 1 {
			state.odd++
		} else {
			state.even++
		}
	}

	return state
}

// reach - the smallest and largest sums k unused numbers can make.
type reach struct {
	low, high []int
}

func (that *numericEval) reach(board *entity.Board) reach {
	unused := lo.Filter(lo.RangeFrom(1, that.rules.MaxValue()), func(value, _ int) bool {
		return !board.IsUsed(value)
	})

	r := reach{low: make([]int, len(unused)+1), high: make([]int, len(unused)+1)}
	for k := 1; k <= len(unused); k++ {
		r.low[k] = r.low[k-1] + unused[k-1]
		r.high[k] = r.high[k-1] + unused[len(unused)-k]
	}

	return r
}

func (that reach) allows(gap, empty int) bool {
	if empty >= len(that.low) {
		return false
	}

	return gap >= that.low[empty] && gap <= that.high[empty]
}

// owns - whether player places numbers of value's parity.
func owns(player entity.Player, value int) bool {
	return (value%2 == 1) == player.Odd
}

// scoreLine - one open line from me's side: a single missing number is a threat for
// whoever owns its parity, longer reachable lines count the numbers of each side.
func (that *numericEval) scoreLine(board *entity.Board, state lineState, r reach, me entity.Player, meToMove bool) float64 {
	if state.empty == 0 || !r.allows(state.gap, state.empty) {
		return 0
	}

	if state.empty == 1 {
		if board.IsUsed(state.gap) {
			return 0
		}

		mine := owns(me, state.gap)
		switch {
		case mine && meToMove:
			return winScore / 2
		case !mine && !meToMove:
			return -winScore / 2
		case mine:
			return numericThreat
		default:
			return -numericThreat
		}
	}

	own, other := state.odd, state.even
	if !me.Odd {
		own, other = other, own
	}

	filled := float64(len(that.lines[0]) - state.empty)

	return numericProgress * filled * float64(1+own-other)
}

func (that *numericEval) scoreBoard(board *entity.Board, me, _ entity.Player, meToMove bool) float64 {
	grid := board.Grids[0]
	r := that.reach(board)

	score := 0.0
	for _, line := range that.lines {
		score += that.scoreLine(board, that.state(grid, line), r, me, meToMove)
	}

	return score
}

// scoreMove - the lines through the cell after the move, seen from the mover with
// the waiting player to move next, plus a small center bonus.
func (that *numericEval) scoreMove(board *entity.Board, move entity.Move, mover, _ entity.Player) float64 {
	if err := board.Place(move.Grid, move.Row, move.Col, move.Value); err != nil {
		return -winScore
	}
	defer func() { _ = board.Clear(move.Grid, move.Row, move.Col) }()

	grid := board.Grids[move.Grid]
	r := that.reach(board)
	point := entity.Point{Row: move.Row, Col: move.Col}

	score := 0.0
	for _, line := range that.lines {
		if !lo.Contains(line, point) {
			continue
		}

		state := that.state(grid, line)
		if state.empty == 0 && state.gap == 0 {
			return winScore
		}

		score += that.scoreLine(board, state, r, mover, false)
	}

	return score + numericCenter*centerBonus(that.rules.Size(), point)
}

// centerBonus - larger for cells closer to the middle of a size x size grid.
func centerBonus(size int, point entity.Point) float64 {
	center := size / 2
	distance := max(abs(point.Row-center), abs(point.Col-center))

	return float64(center - distance)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
