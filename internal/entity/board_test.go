package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
)

func TestBoard_Place(t *testing.T) {
	t.Run("Place on empty cell", func(t *testing.T) {
		// Given: an empty numeric board
		board := NewNumericBoard(3)

		// When: a value is placed
		err := board.Place(0, 1, 2, Cell(7))

		// Then: the cell holds the value and the value is used
		require.NoError(t, err)
		assert.Equal(t, Cell(7), board.Grids[0].At(1, 2))
		assert.True(t, board.IsUsed(7))
		assert.Equal(t, []int{7}, board.UsedValues())
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		// Given: a board with one mark
		board := NewBoard(1, 15, 15)
		require.NoError(t, board.Place(0, 7, 7, MarkX))

		// When: another mark is placed on the same cell
		err := board.Place(0, 7, 7, MarkO)

		// Then: ErrCellOccupied is returned and the cell is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, MarkX, board.Grids[0].At(7, 7))
	})

	t.Run("Error on out of bounds", func(t *testing.T) {
		board := NewBoard(3, 3, 3)

		require.ErrorIs(t, board.Place(0, 3, 0, MarkX), apperror.ErrOutOfBounds)
		require.ErrorIs(t, board.Place(0, 0, -1, MarkX), apperror.ErrOutOfBounds)
		require.ErrorIs(t, board.Place(3, 0, 0, MarkX), apperror.ErrOutOfBounds)
		assert.True(t, board.IsEmpty())
	})
}

func TestBoard_Clear(t *testing.T) {
	// Given: a numeric board with a value
	board := NewNumericBoard(3)
	require.NoError(t, board.Place(0, 0, 0, Cell(5)))

	// When: the cell is cleared
	err := board.Clear(0, 0, 0)

	// Then: the cell is empty and the value can be used again
	require.NoError(t, err)
	assert.True(t, board.Grids[0].At(0, 0).IsEmpty())
	assert.False(t, board.IsUsed(5))
	assert.Empty(t, board.UsedValues())
}

func TestBoard_Disable(t *testing.T) {
	// Given: a three grid board
	board := NewBoard(3, 3, 3)
	require.Equal(t, 3, board.ActiveGrids())

	// When: the second grid is disabled
	board.Disable(1, "Player 1")

	// Then: it no longer counts as active
	assert.True(t, board.IsDisabled(1))
	assert.Equal(t, "Player 1", board.DisabledBy[1])
	assert.Equal(t, 2, board.ActiveGrids())

	// When: it is enabled again
	board.Enable(1)

	// Then: the flag and the name are cleared
	assert.False(t, board.IsDisabled(1))
	assert.Empty(t, board.DisabledBy[1])
}

func TestBoard_Clone(t *testing.T) {
	// Given: a board with state
	board := NewNumericBoard(3)
	require.NoError(t, board.Place(0, 1, 1, Cell(3)))

	// When: the clone is mutated
	clone := board.Clone()
	require.NoError(t, clone.Place(0, 0, 0, Cell(9)))

	// Then: the original is untouched
	assert.True(t, board.Grids[0].At(0, 0).IsEmpty())
	assert.False(t, board.IsUsed(9))
	assert.True(t, clone.IsUsed(3))
	assert.Equal(t, 9, clone.MaxValue())
}

func TestCell_String(t *testing.T) {
	assert.Equal(t, "X", MarkX.String())
	assert.Equal(t, "O", MarkO.String())
	assert.Equal(t, "12", Cell(12).String())
	assert.Equal(t, "", EmptyCell.String())
	assert.Equal(t, MarkO, MarkX.Opponent())
}

func TestSnapshot_Validate(t *testing.T) {
	valid := func() *Snapshot {
		return &Snapshot{
			ID:      "savegame",
			Variant: VariantGomoku,
			Grids:   []*Grid{NewGrid(15, 15)},
			Players: NewPlayers(ModeHumanVsHuman, MarkX, MarkO),
		}
	}

	t.Run("Valid", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("Cells do not match dimensions", func(t *testing.T) {
		snapshot := valid()
		snapshot.Grids[0].Cells = snapshot.Grids[0].Cells[:10]

		require.ErrorIs(t, snapshot.Validate(), apperror.ErrCorruptSnapshot)
	})

	t.Run("Bad turn", func(t *testing.T) {
		snapshot := valid()
		snapshot.Turn = 2

		require.ErrorIs(t, snapshot.Validate(), apperror.ErrCorruptSnapshot)
	})

	t.Run("Missing grids", func(t *testing.T) {
		snapshot := valid()
		snapshot.Grids = nil

		require.ErrorIs(t, snapshot.Validate(), apperror.ErrCorruptSnapshot)
	})
}
