package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/rocketscienceinc/boardgames/internal/entity"
)

var ErrBadInput = errors.New("invalid input")

type Keyword string

const (
	KeywordUndo Keyword = "undo"
	KeywordRedo Keyword = "redo"
	KeywordSave Keyword = "save"
	KeywordHelp Keyword = "help"
	KeywordMenu Keyword = "menu"
)

var keywords = map[Keyword]bool{
	KeywordUndo: true,
	KeywordRedo: true,
	KeywordSave: true,
	KeywordHelp: true,
	KeywordMenu: true,
}

// Command - one line typed during a game: a reserved keyword or the numbers of a move.
type Command struct {
	Keyword Keyword
	Numbers []int
}

func (that Command) IsMove() bool {
	return that.Keyword == ""
}

// ParseCommand - splits line like a shell would, commas count as blanks.
func ParseCommand(line string) (Command, error) {
	fields, err := shellquote.Split(strings.ReplaceAll(line, ",", " "))
	if err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrBadInput, err)
	}

	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrBadInput)
	}

	if keyword := Keyword(strings.ToLower(fields[0])); keywords[keyword] {
		if len(fields) > 1 {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrBadInput, keyword)
		}

		return Command{Keyword: keyword}, nil
	}

	numbers := make([]int, 0, len(fields))
	for _, field := range fields {
		number, err := strconv.Atoi(field)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q is neither a number nor a command", ErrBadInput, field)
		}
		numbers = append(numbers, number)
	}

	return Command{Numbers: numbers}, nil
}

// moveFields - what a move is made of in each game, in input order.
func moveFields(kind entity.Variant) []string {
	switch kind {
	case entity.VariantNumeric:
		return []string{"number", "row", "col"}
	case entity.VariantNotakto:
		return []string{"board", "row", "col"}
	default:
		return []string{"row", "col"}
	}
}

// BuildMove - turns the numbers of a complete move into a Move. Boards are numbered from 1.
func BuildMove(kind entity.Variant, numbers []int) (entity.Move, error) {
	if want := len(moveFields(kind)); len(numbers) != want {
		return entity.Move{}, fmt.Errorf("%w: expected %d numbers, got %d", ErrBadInput, want, len(numbers))
	}

	switch kind {
	case entity.VariantNumeric:
		return entity.Move{Value: entity.Cell(numbers[0]), Row: numbers[1], Col: numbers[2]}, nil
	case entity.VariantNotakto:
		return entity.Move{Grid: numbers[0] - 1, Row: numbers[1], Col: numbers[2]}, nil
	default:
		return entity.Move{Row: numbers[0], Col: numbers[1]}, nil
	}
}
