package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/boardgames/internal/entity"
)

type Renderer struct {
	w io.Writer
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (that *Renderer) Message(format string, args ...any) {
	fmt.Fprintf(that.w, format+"\n", args...)
}

// Board - every grid with row and column numbers. Boards of a multi-grid game are
// titled and show who disabled them.
func (that *Renderer) Board(board *entity.Board) {
	width := cellWidth(board)

	for g, grid := range board.Grids {
		if len(board.Grids) > 1 {
			title := fmt.Sprintf("Board %d", g+1)
			switch {
			case board.IsDisabled(g) && board.DisabledBy[g] != "":
				title += fmt.Sprintf(" (disabled by %s)", board.DisabledBy[g])
			case board.IsDisabled(g):
				title += " (disabled)"
			}
			fmt.Fprintln(that.w, title)
		}

		that.grid(grid, width)
		fmt.Fprintln(that.w)
	}
}

func (that *Renderer) grid(grid *entity.Grid, width int) {
	label := len(strconv.Itoa(grid.Height - 1))

	var line strings.Builder

	line.WriteString(strings.Repeat(" ", label+1))
	for col := 0; col < grid.Width; col++ {
		fmt.Fprintf(&line, " %*d", width, col)
	}
	fmt.Fprintln(that.w, line.String())

	for row, cells := range grid.Rows() {
		line.Reset()
		fmt.Fprintf(&line, "%*d ", label, row)

		for _, cell := range cells {
			text := cell.String()
			if text == "" {
				text = "."
			}
			fmt.Fprintf(&line, " %*s", width, text)
		}

		fmt.Fprintln(that.w, line.String())
	}
}

// cellWidth - wide enough for the largest number or column index.
func cellWidth(board *entity.Board) int {
	widest := board.MaxValue()
	for _, grid := range board.Grids {
		widest = max(widest, grid.Width-1)
	}

	return len(strconv.Itoa(widest))
}

func (that *Renderer) Result(result entity.Result) {
	switch {
	case result.IsDraw():
		that.Message("It's a draw: %s.", result.Reason)
	case result.IsFinished():
		that.Message("%s wins: %s.", result.Winner, result.Reason)
	}
}

// ComputerMove - what the computer just played.
func (that *Renderer) ComputerMove(kind entity.Variant, name string, move entity.Move, result entity.Result) {
	played := fmt.Sprintf("%s at (%d, %d)", move.Value, move.Row, move.Col)
	if kind == entity.VariantNotakto {
		played = fmt.Sprintf("X on board %d at (%d, %d)", move.Grid+1, move.Row, move.Col)
	}

	if result.Status == entity.StatusWon && result.Winner == name {
		that.Message("%s played %s. Winning move!", name, played)
		return
	}

	that.Message("%s played %s.", name, played)
}
