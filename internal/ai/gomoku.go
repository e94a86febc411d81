package ai

import (
	"strings"
	"sync"

	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/variant"
)

// threatTotals - pattern counts along the lines of one side.
type threatTotals struct {
	five    int
	open4   int
	closed4 int
	broken4 int
	open3   int
	broken3 int
	closed3 int
	open2   int
	broken2 int
}

type threatWeights struct {
	open4, closed4, broken4 float64
	open3, broken3, closed3 float64
	open2, broken2          float64
	forkOpen3, forkFour     float64
	center                  float64
}

var defaultWeights = threatWeights{
	open4: 100_000, closed4: 15_000, broken4: 12_000,
	open3: 2_500, broken3: 1_200, closed3: 400,
	open2: 200, broken2: 120,
	forkOpen3: 6_000, forkFour: 20_000,
	center: 3,
}

// Patterns over line tokens: M own stone, O opponent stone or edge, . empty.
// The first match at a position wins, so longer shapes come first.
var patterns = [...]struct {
	shape string
	apply func(*threatTotals)
}{
	{"MMMMM", func(t *threatTotals) { t.five++ }},
	{".MMMM.", func(t *threatTotals) { t.open4++ }},
	{"OMMMM.", func(t *threatTotals) { t.closed4++ }},
	{".MMMMO", func(t *threatTotals) { t.closed4++ }},
	{"MMM.M", func(t *threatTotals) { t.broken4++ }},
	{"M.MMM", func(t *threatTotals) { t.broken4++ }},
	{"MM.MM", func(t *threatTotals) { t.broken4++ }},
	{".MMM.", func(t *threatTotals) { t.open3++ }},
	{".MM.M.", func(t *threatTotals) { t.broken3++ }},
	{".M.MM.", func(t *threatTotals) { t.broken3++ }},
	{"OMMM..", func(t *threatTotals) { t.closed3++ }},
	{"..MMMO", func(t *threatTotals) { t.closed3++ }},
	{".MM.", func(t *threatTotals) { t.open2++ }},
	{".M.M.", func(t *threatTotals) { t.broken2++ }},
}

func accumulate(tokens []byte, totals *threatTotals) {
	for i := 0; i < len(tokens); i++ {
		for _, p := range patterns {
			if matchAt(tokens, p.shape, i) {
				p.apply(totals)
				i += len(p.shape) - 1
				break
			}
		}
	}
}

func matchAt(tokens []byte, shape string, start int) bool {
	if start+len(shape) > len(tokens) {
		return false
	}

	return string(tokens[start:start+len(shape)]) == shape
}

func (that threatWeights) sum(t threatTotals) float64 {
	score := float64(t.open4)*that.open4 +
		float64(t.closed4)*that.closed4 +
		float64(t.broken4)*that.broken4 +
		float64(t.open3)*that.open3 +
		float64(t.broken3)*that.broken3 +
		float64(t.closed3)*that.closed3 +
		float64(t.open2)*that.open2 +
		float64(t.broken2)*that.broken2

	if t.open3+t.broken3 >= 2 {
		score += that.forkOpen3
	}
	if t.closed4+t.broken4 >= 2 || (t.closed4+t.broken4 >= 1 && t.open3+t.broken3 >= 1) {
		score += that.forkFour
	}

	return score
}

func (that threatTotals) fours() int {
	return that.open4 + that.closed4 + that.broken4
}

type gomokuEval struct {
	rules   *variant.Gomoku
	radius  int
	weights threatWeights
}

func newGomokuEval(rules *variant.Gomoku, radius int) *gomokuEval {
	return &gomokuEval{rules: rules, radius: radius, weights: defaultWeights}
}

var (
	gomokuLinesOnce sync.Once
	gomokuLines     [][]entity.Point
)

// lines - rows, columns and every diagonal long enough to hold five.
func lines() [][]entity.Point {
	gomokuLinesOnce.Do(func() {
		size := variant.GomokuSize
		for i := 0; i < size; i++ {
			gomokuLines = append(gomokuLines, walk(size, entity.Point{Row: i}, variant.Directions[0]))
			gomokuLines = append(gomokuLines, walk(size, entity.Point{Col: i}, variant.Directions[1]))
		}

		for i := 0; i < size; i++ {
			starts := []entity.Point{{Col: i}, {Row: i}}
			if i == 0 {
				starts = starts[:1]
			}
			for _, start := range starts {
				if line := walk(size, start, variant.Directions[2]); len(line) >= variant.GomokuRun {
					gomokuLines = append(gomokuLines, line)
				}
			}

			starts = []entity.Point{{Col: size - 1 - i}, {Row: i, Col: size - 1}}
			if i == 0 {
				starts = starts[:1]
			}
			for _, start := range starts {
				if line := walk(size, start, variant.Directions[3]); len(line) >= variant.GomokuRun {
					gomokuLines = append(gomokuLines, line)
				}
			}
		}
	})

	return gomokuLines
}

func walk(size int, from, dir entity.Point) []entity.Point {
	var line []entity.Point
	for p := from; p.Row >= 0 && p.Col >= 0 && p.Row < size && p.Col < size; p = (entity.Point{Row: p.Row + dir.Row, Col: p.Col + dir.Col}) {
		line = append(line, p)
	}

	return line
}

// tokens - line cells seen by mark, framed by edges.
func tokens(grid *entity.Grid, line []entity.Point, mark entity.Cell, buf []byte) []byte {
	buf = append(buf[:0], 'O')
	for _, p := range line {
		buf = append(buf, token(grid.At(p.Row, p.Col), mark))
	}

	return append(buf, 'O')
}

func token(cell, mark entity.Cell) byte {
	switch {
	case cell.IsEmpty():
		return '.'
	case cell == mark:
		return 'M'
	default:
		return 'O'
	}
}

// window - the cells within reach of point along dir, point itself counted as mark.
// center is the index of point in the returned tokens.
func window(grid *entity.Grid, point, dir entity.Point, mark entity.Cell, buf []byte) (tokens []byte, center int) {
	reach := variant.GomokuRun

	buf = buf[:0]
	for step := -reach; step <= reach; step++ {
		row, col := point.Row+step*dir.Row, point.Col+step*dir.Col

		switch {
		case step == 0:
			center = len(buf)
			buf = append(buf, 'M')
		case !grid.InBounds(row, col):
			if step < 0 {
				buf = buf[:0]
				buf = append(buf, 'O')
				continue
			}
			return append(buf, 'O'), center
		default:
			buf = append(buf, token(grid.At(row, col), mark))
		}
	}

	return buf, center
}

// candidates - empty cells within radius of any stone, or the center of an empty board.
func (that *gomokuEval) candidates(board *entity.Board, player entity.Player) []entity.Move {
	grid := board.Grids[0]

	if grid.IsEmpty() {
		center := grid.Width / 2
		return []entity.Move{{Row: center, Col: center, Value: player.Mark}}
	}

	near := make([]bool, len(grid.Cells))
	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			if grid.At(row, col).IsEmpty() {
				continue
			}

			for dr := -that.radius; dr <= that.radius; dr++ {
				for dc := -that.radius; dc <= that.radius; dc++ {
					r, c := row+dr, col+dc
					if grid.InBounds(r, c) && grid.At(r, c).IsEmpty() {
						near[r*grid.Width+c] = true
					}
				}
			}
		}
	}

	var moves []entity.Move
	for i, ok := range near {
		if ok {
			moves = append(moves, entity.Move{Row: i / grid.Width, Col: i % grid.Width, Value: player.Mark})
		}
	}

	return moves
}

// local - the shapes mark would make through point.
func (that *gomokuEval) local(grid *entity.Grid, point entity.Point, mark entity.Cell) threatTotals {
	var (
		totals threatTotals
		buf    [2*variant.GomokuRun + 3]byte
	)

	for _, dir := range variant.Directions {
		tokens, _ := window(grid, point, dir, mark, buf[:0])
		accumulate(tokens, &totals)
	}

	return totals
}

// scoreMove - attack value for the mover plus defensive value of denying the cell.
func (that *gomokuEval) scoreMove(board *entity.Board, move entity.Move, mover, waiting entity.Player) float64 {
	grid := board.Grids[0]
	point := entity.Point{Row: move.Row, Col: move.Col}

	attack := that.local(grid, point, mover.Mark)
	if attack.five > 0 {
		return winScore
	}
	defense := that.local(grid, point, waiting.Mark)

	return that.weights.sum(attack) + 0.9*that.weights.sum(defense) +
		that.weights.center*centerBonus(grid.Width, point)
}

func (that *gomokuEval) scoreBoard(board *entity.Board, me, opponent entity.Player, meToMove bool) float64 {
	grid := board.Grids[0]

	var (
		mine, theirs threatTotals
		buf          = make([]byte, 0, variant.GomokuSize+2)
	)

	for _, line := range lines() {
		buf = tokens(grid, line, me.Mark, buf)
		accumulate(buf, &mine)
		buf = tokens(grid, line, opponent.Mark, buf)
		accumulate(buf, &theirs)
	}

	switch {
	case mine.five > 0:
		return winScore
	case theirs.five > 0:
		return -winScore
	case meToMove && mine.fours() > 0:
		return winScore / 2
	case !meToMove && theirs.fours() > 0:
		return -winScore / 2
	case theirs.open4 > 0:
		return -winScore / 4
	case mine.open4 > 0:
		return winScore / 4
	}

	score := that.weights.sum(mine) - that.weights.sum(theirs)

	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			bonus := that.weights.center * centerBonus(grid.Width, entity.Point{Row: row, Col: col})
			switch grid.At(row, col) {
			case me.Mark:
				score += bonus
			case opponent.Mark:
				score -= bonus
			}
		}
	}

	return score
}

// threats - directions through point where mark would hold a four or an open three.
func (that *gomokuEval) threats(grid *entity.Grid, point entity.Point, mark entity.Cell) int {
	var buf [2*variant.GomokuRun + 3]byte

	count := 0
	for _, dir := range variant.Directions {
		tokens, center := window(grid, point, dir, mark, buf[:0])
		if hasFour(tokens, center) || hasOpenThree(tokens, center) {
			count++
		}
	}

	return count
}

// hasFour - some five-cell span through center lacks exactly one stone.
func hasFour(tokens []byte, center int) bool {
	for start := max(0, center-variant.GomokuRun+1); start <= center && start+variant.GomokuRun <= len(tokens); start++ {
		span := string(tokens[start : start+variant.GomokuRun])
		if strings.Count(span, "M") == variant.GomokuRun-1 && strings.Count(span, ".") == 1 {
			return true
		}
	}

	return false
}

func hasOpenThree(tokens []byte, center int) bool {
	for _, shape := range []string{".MMM..", "..MMM.", ".MM.M.", ".M.MM."} {
		for start := max(0, center-len(shape)+1); start <= center && start+len(shape) <= len(tokens); start++ {
			if string(tokens[start:start+len(shape)]) == shape {
				return true
			}
		}
	}

	return false
}

// findFork - a move giving player two threats at once, the best scored if several.
func (that *gomokuEval) findFork(board *entity.Board, player entity.Player, moves []entity.Move) (entity.Move, bool) {
	grid := board.Grids[0]

	var (
		best      entity.Move
		bestScore = -inf
		found     bool
	)

	for _, move := range moves {
		point := entity.Point{Row: move.Row, Col: move.Col}
		if that.threats(grid, point, player.Mark) < 2 {
			continue
		}

		score := that.weights.sum(that.local(grid, point, player.Mark))
		if score > bestScore {
			best, bestScore, found = move, score, true
		}
	}

	return best, found
}
