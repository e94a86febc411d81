package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

func play(t *testing.T, rules Rules, board *entity.Board, player entity.Player, move entity.Move) (entity.Verdict, entity.Reason) {
	t.Helper()

	prepared, err := rules.Prepare(board, player, move)
	require.NoError(t, err)
	require.NoError(t, rules.Apply(board, player, prepared))

	return rules.Evaluate(board, prepared)
}

func TestNew(t *testing.T) {
	t.Run("Known variants", func(t *testing.T) {
		for _, v := range []entity.Variant{entity.VariantNumeric, entity.VariantNotakto, entity.VariantGomoku} {
			rules, err := New(v, 3)
			require.NoError(t, err)
			assert.Equal(t, v, rules.Variant())
		}
	})

	t.Run("Unknown variant", func(t *testing.T) {
		_, err := New("chess", 8)
		require.ErrorIs(t, err, apperror.ErrUnknownVariant)
	})

	t.Run("Numeric size out of range", func(t *testing.T) {
		_, err := NewNumeric(2)
		require.ErrorIs(t, err, ErrInvalidSize)

		_, err = NewNumeric(16)
		require.ErrorIs(t, err, ErrInvalidSize)
	})
}

func TestNumeric_Target(t *testing.T) {
	for size, target := range map[int]int{3: 15, 4: 34, 5: 65, 15: 1695} {
		rules, err := NewNumeric(size)
		require.NoError(t, err)
		assert.Equal(t, target, rules.Target(), "size %d", size)
	}
}

func TestNumeric_Prepare(t *testing.T) {
	rules, err := NewNumeric(3)
	require.NoError(t, err)
	players := rules.Players(entity.ModeHumanVsHuman)
	odd, even := players[0], players[1]

	t.Run("Legal move", func(t *testing.T) {
		board := rules.NewBoard()

		move, err := rules.Prepare(board, odd, entity.Move{Row: 0, Col: 0, Value: 5})

		require.NoError(t, err)
		assert.Equal(t, entity.Cell(5), move.Value)
		assert.True(t, board.IsEmpty())
	})

	t.Run("Value out of range", func(t *testing.T) {
		board := rules.NewBoard()

		_, err := rules.Prepare(board, odd, entity.Move{Value: 11})
		require.ErrorIs(t, err, apperror.ErrValueOutOfRange)

		_, err = rules.Prepare(board, even, entity.Move{Value: 0})
		require.ErrorIs(t, err, apperror.ErrValueOutOfRange)
	})

	t.Run("Wrong parity", func(t *testing.T) {
		board := rules.NewBoard()

		_, err := rules.Prepare(board, even, entity.Move{Value: 3})
		require.ErrorIs(t, err, apperror.ErrWrongParity)
	})

	t.Run("Value already used", func(t *testing.T) {
		// Given: 7 is on the board
		board := rules.NewBoard()
		play(t, rules, board, odd, entity.Move{Row: 1, Col: 1, Value: 7})

		// When: 7 is offered again on another cell
		_, err := rules.Prepare(board, odd, entity.Move{Row: 2, Col: 2, Value: 7})

		// Then: the number is rejected
		require.ErrorIs(t, err, apperror.ErrValueAlreadyUsed)
	})

	t.Run("Occupied cell is reported before the value", func(t *testing.T) {
		board := rules.NewBoard()
		play(t, rules, board, odd, entity.Move{Row: 1, Col: 1, Value: 7})

		_, err := rules.Prepare(board, odd, entity.Move{Row: 1, Col: 1, Value: 7})
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Out of bounds", func(t *testing.T) {
		board := rules.NewBoard()

		_, err := rules.Prepare(board, odd, entity.Move{Row: 3, Col: 0, Value: 1})
		require.ErrorIs(t, err, apperror.ErrOutOfBounds)

		_, err = rules.Prepare(board, odd, entity.Move{Grid: 1, Value: 1})
		require.ErrorIs(t, err, apperror.ErrOutOfBounds)
	})
}

func TestNumeric_Evaluate(t *testing.T) {
	rules, err := NewNumeric(3)
	require.NoError(t, err)
	players := rules.Players(entity.ModeHumanVsHuman)
	a, b := players[0], players[1]

	t.Run("Row summing to fifteen wins", func(t *testing.T) {
		board := rules.NewBoard()

		moves := []struct {
			player entity.Player
			move   entity.Move
		}{
			{a, entity.Move{Row: 0, Col: 0, Value: 1}},
			{b, entity.Move{Row: 1, Col: 1, Value: 2}},
			{a, entity.Move{Row: 0, Col: 1, Value: 5}},
			{b, entity.Move{Row: 2, Col: 2, Value: 4}},
		}
		for _, m := range moves {
			verdict, _ := play(t, rules, board, m.player, m.move)
			require.Equal(t, entity.VerdictNone, verdict)
		}

		verdict, reason := play(t, rules, board, a, entity.Move{Row: 0, Col: 2, Value: 9})

		assert.Equal(t, entity.VerdictMoverWins, verdict)
		assert.Equal(t, entity.ReasonLine, reason)
	})

	t.Run("Line with fifteen counts regardless of who placed the numbers", func(t *testing.T) {
		board := rules.NewBoard()
		play(t, rules, board, a, entity.Move{Row: 0, Col: 0, Value: 3})
		play(t, rules, board, b, entity.Move{Row: 1, Col: 1, Value: 4})

		verdict, _ := play(t, rules, board, b, entity.Move{Row: 2, Col: 2, Value: 8})

		assert.Equal(t, entity.VerdictMoverWins, verdict)
	})

	t.Run("Full line with another sum does not win", func(t *testing.T) {
		board := rules.NewBoard()
		play(t, rules, board, a, entity.Move{Row: 2, Col: 0, Value: 1})
		play(t, rules, board, b, entity.Move{Row: 2, Col: 1, Value: 2})

		verdict, _ := play(t, rules, board, a, entity.Move{Row: 2, Col: 2, Value: 3})

		assert.Equal(t, entity.VerdictNone, verdict)
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a filled board where no line sums to 15
		//   1 2 3
		//   4 5 7
		//   6 9 8
		board := rules.NewBoard()
		layout := [][]int{{1, 2, 3}, {4, 5, 7}, {6, 9, 8}}
		var last entity.Move
		for r, row := range layout {
			for c, value := range row {
				last = entity.Move{Row: r, Col: c, Value: entity.Cell(value)}
				require.NoError(t, rules.Apply(board, a, last))
			}
		}
		require.NoError(t, rules.Revert(board, last))
		require.NoError(t, rules.Apply(board, a, last))

		// Then: the last move draws
		verdict, reason := rules.Evaluate(board, last)
		assert.Equal(t, entity.VerdictDraw, verdict)
		assert.Equal(t, entity.ReasonExhaust, reason)
	})
}

func TestNumeric_Values(t *testing.T) {
	rules, err := NewNumeric(3)
	require.NoError(t, err)
	players := rules.Players(entity.ModeHumanVsHuman)

	board := rules.NewBoard()
	play(t, rules, board, players[0], entity.Move{Row: 0, Col: 0, Value: 3})

	assert.Equal(t, []entity.Cell{1, 5, 7, 9}, rules.Values(board, players[0]))
	assert.Equal(t, []entity.Cell{2, 4, 6, 8}, rules.Values(board, players[1]))
}

func TestNotakto(t *testing.T) {
	rules := NewNotakto()
	players := rules.Players(entity.ModeHumanVsHuman)
	a, b := players[0], players[1]

	fillRow := func(t *testing.T, board *entity.Board, grid int, player entity.Player) (entity.Verdict, entity.Reason) {
		t.Helper()
		play(t, rules, board, player, entity.Move{Grid: grid, Row: 0, Col: 0})
		play(t, rules, board, player, entity.Move{Grid: grid, Row: 0, Col: 1})
		return play(t, rules, board, player, entity.Move{Grid: grid, Row: 0, Col: 2})
	}

	t.Run("Completing a line disables the grid", func(t *testing.T) {
		board := rules.NewBoard()

		verdict, _ := fillRow(t, board, 0, a)

		assert.Equal(t, entity.VerdictNone, verdict)
		assert.True(t, board.IsDisabled(0))
		assert.Equal(t, a.Name, board.DisabledBy[0])
		assert.Equal(t, 2, board.ActiveGrids())
	})

	t.Run("Disabled grid rejects moves", func(t *testing.T) {
		board := rules.NewBoard()
		fillRow(t, board, 0, a)

		_, err := rules.Prepare(board, b, entity.Move{Grid: 0, Row: 2, Col: 2})

		require.ErrorIs(t, err, apperror.ErrGridDisabled)
	})

	t.Run("Disabling the last grid loses", func(t *testing.T) {
		// Given: grids 1 and 2 are disabled
		board := rules.NewBoard()
		fillRow(t, board, 1, a)
		fillRow(t, board, 2, b)

		// When: row 0 of grid 0 is filled
		verdict, reason := fillRow(t, board, 0, a)

		// Then: the player who completed it loses
		assert.Equal(t, entity.VerdictMoverLoses, verdict)
		assert.Equal(t, entity.ReasonLastLine, reason)
	})

	t.Run("Revert re-enables the grid", func(t *testing.T) {
		board := rules.NewBoard()
		fillRow(t, board, 0, a)

		require.NoError(t, rules.Revert(board, entity.Move{Grid: 0, Row: 0, Col: 2, Value: entity.MarkX}))

		assert.False(t, board.IsDisabled(0))
		assert.Empty(t, board.DisabledBy[0])
	})

	t.Run("Only X may be placed", func(t *testing.T) {
		board := rules.NewBoard()

		move, err := rules.Prepare(board, b, entity.Move{Grid: 2, Row: 1, Col: 1})
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, move.Value)

		_, err = rules.Prepare(board, b, entity.Move{Grid: 2, Row: 1, Col: 1, Value: entity.MarkO})
		require.ErrorIs(t, err, apperror.ErrValueOutOfRange)
	})

	t.Run("Check keeps a stored flag on a grid without a line", func(t *testing.T) {
		// Given: grid 2 holds one X and is flagged disabled by Player 2
		board := rules.NewBoard()
		require.NoError(t, board.Place(1, 1, 1, entity.MarkX))
		board.Disable(1, b.Name)

		// When
		require.NoError(t, rules.Check(board))

		// Then: the flag is kept and reverting the X does not lift it
		assert.True(t, board.IsDisabled(1))
		require.NoError(t, rules.Revert(board, entity.Move{Grid: 1, Row: 1, Col: 1, Value: entity.MarkX}))
		assert.True(t, board.IsDisabled(1))
		assert.Equal(t, b.Name, board.DisabledBy[1])
	})

	t.Run("Check disables a grid holding a line without a flag", func(t *testing.T) {
		board := rules.NewBoard()
		for col := 0; col < NotaktoSize; col++ {
			require.NoError(t, board.Place(2, 0, col, entity.MarkX))
		}

		require.NoError(t, rules.Check(board))

		assert.True(t, board.IsDisabled(2))
	})

	t.Run("Check rejects marks other than X", func(t *testing.T) {
		board := rules.NewBoard()
		require.NoError(t, board.Place(0, 0, 0, entity.MarkO))

		require.ErrorIs(t, rules.Check(board), apperror.ErrCorruptSnapshot)
	})
}

func TestGomoku_Evaluate(t *testing.T) {
	rules := NewGomoku()
	players := rules.Players(entity.ModeHumanVsHuman)
	x, o := players[0], players[1]

	for _, dir := range Directions {
		t.Run("Five along direction", func(t *testing.T) {
			// Given: four X in a row with a gap in the middle along dir
			board := rules.NewBoard()
			start := entity.Point{Row: 5, Col: 5}
			for i := 0; i < 5; i++ {
				if i == 2 {
					continue
				}
				verdict, _ := play(t, rules, board, x, entity.Move{Row: start.Row + i*dir.Row, Col: start.Col + i*dir.Col})
				require.Equal(t, entity.VerdictNone, verdict)
			}

			// When: the gap is filled
			verdict, reason := play(t, rules, board, x, entity.Move{Row: start.Row + 2*dir.Row, Col: start.Col + 2*dir.Col})

			// Then: the run counts in both directions from the placed cell
			assert.Equal(t, entity.VerdictMoverWins, verdict)
			assert.Equal(t, entity.ReasonRun, reason)
		})
	}

	t.Run("Four does not win", func(t *testing.T) {
		board := rules.NewBoard()
		var verdict entity.Verdict
		for c := 0; c < 4; c++ {
			verdict, _ = play(t, rules, board, x, entity.Move{Row: 0, Col: c})
		}

		assert.Equal(t, entity.VerdictNone, verdict)
	})

	t.Run("Opponent mark breaks the run", func(t *testing.T) {
		board := rules.NewBoard()
		for c := 0; c < 4; c++ {
			play(t, rules, board, x, entity.Move{Row: 3, Col: c})
		}
		play(t, rules, board, o, entity.Move{Row: 3, Col: 4})

		verdict, _ := play(t, rules, board, x, entity.Move{Row: 3, Col: 5})

		assert.Equal(t, entity.VerdictNone, verdict)
	})

	t.Run("Wrong mark", func(t *testing.T) {
		board := rules.NewBoard()

		_, err := rules.Prepare(board, o, entity.Move{Row: 0, Col: 0, Value: entity.MarkX})

		require.ErrorIs(t, err, apperror.ErrValueOutOfRange)
	})
}

func TestLegalMoves(t *testing.T) {
	rules := NewNotakto()
	players := rules.Players(entity.ModeHumanVsHuman)
	board := rules.NewBoard()

	require.Len(t, LegalMoves(rules, board, players[0]), 27)

	play(t, rules, board, players[0], entity.Move{Grid: 1, Row: 0, Col: 0})
	play(t, rules, board, players[0], entity.Move{Grid: 1, Row: 1, Col: 1})
	play(t, rules, board, players[0], entity.Move{Grid: 1, Row: 2, Col: 2})

	moves := LegalMoves(rules, board, players[1])
	assert.Len(t, moves, 18)
	for _, move := range moves {
		assert.NotEqual(t, 1, move.Grid)
	}
	assert.True(t, HasLegalMove(rules, board, players[1]))
}
