package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgames/internal/entity"
)

func TestRenderer_Board(t *testing.T) {
	t.Run("Numeric board pads to the widest number", func(t *testing.T) {
		// Given: a 4x4 numeric board holding 16 and 3
		board := entity.NewNumericBoard(4)
		require.NoError(t, board.Place(0, 0, 0, 16))
		require.NoError(t, board.Place(0, 3, 2, 3))

		var out bytes.Buffer

		// When: the board is rendered
		NewRenderer(&out).Board(board)

		// Then: cells are two characters wide and empty cells show a dot
		expected := "    0  1  2  3\n" +
			"0  16  .  .  .\n" +
			"1   .  .  .  .\n" +
			"2   .  .  .  .\n" +
			"3   .  .  3  .\n\n"
		assert.Equal(t, expected, out.String())
	})

	t.Run("Notakto shows who disabled a board", func(t *testing.T) {
		// Given: three grids, the second one disabled by Player 2
		board := entity.NewBoard(3, 3, 3)
		require.NoError(t, board.Place(0, 1, 1, entity.MarkX))
		board.Disable(1, "Player 2")

		var out bytes.Buffer

		// When
		NewRenderer(&out).Board(board)

		// Then
		text := out.String()
		assert.Contains(t, text, "Board 1\n")
		assert.Contains(t, text, "Board 2 (disabled by Player 2)\n")
		assert.Contains(t, text, "Board 3\n")
		assert.Contains(t, text, "1  . X .\n")
	})
}

func TestRenderer_ComputerMove(t *testing.T) {
	var out bytes.Buffer
	renderer := NewRenderer(&out)

	// When: the computer plays an ordinary move and then a winning one
	renderer.ComputerMove(entity.VariantNumeric, "Computer", entity.Move{Value: 4, Row: 1, Col: 2}, entity.Result{Status: entity.StatusOngoing})
	renderer.ComputerMove(entity.VariantGomoku, "Computer", entity.Move{Value: entity.MarkO, Row: 7, Col: 7},
		entity.Result{Status: entity.StatusWon, Winner: "Computer", Loser: "Player 1", Reason: entity.ReasonRun})

	// Then: only the second is announced as winning
	assert.Equal(t, "Computer played 4 at (1, 2).\nComputer played O at (7, 7). Winning move!\n", out.String())
}

func TestRenderer_Result(t *testing.T) {
	var out bytes.Buffer
	renderer := NewRenderer(&out)

	renderer.Result(entity.Result{Status: entity.StatusWon, Winner: "Player 2", Reason: entity.ReasonLine})
	renderer.Result(entity.Result{Status: entity.StatusDraw, Reason: entity.ReasonExhaust})
	renderer.Result(entity.Result{Status: entity.StatusOngoing})

	assert.Equal(t, "Player 2 wins: completed a winning line.\nIt's a draw: board exhausted.\n", out.String())
}
