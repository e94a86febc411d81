package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/engine"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/variant"
)

var errQuit = errors.New("quit")

type gameManager interface {
	Game() *engine.Engine
	NewGame(kind entity.Variant, mode entity.Mode, size int) (*engine.Engine, error)
	Abandon()
	MakeTurn(move entity.Move) (entity.Result, error)
	PlayComputer() (entity.Move, entity.Result, error)
	Undo() ([]entity.Move, error)
	Redo() ([]entity.Move, error)
	Save(ctx context.Context) error
	Load(ctx context.Context) (*engine.Engine, error)
	Help() string
}

// LineReader - source of typed lines; *readline.Instance in the binary.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}

	return r, true
}

func NewReadline(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
}

// Console - the interactive text front end: menus, move entry and board display.
type Console struct {
	logger  *slog.Logger
	manager gameManager
	reader  LineReader
	out     *Renderer

	numericSize int
}

func New(logger *slog.Logger, manager gameManager, reader LineReader, out io.Writer, numericSize int) *Console {
	return &Console{
		logger:      logger.With("component", "console"),
		manager:     manager,
		reader:      reader,
		out:         NewRenderer(out),
		numericSize: numericSize,
	}
}

// Run - offers the saved game, then loops between the menu and play until the
// user exits, input ends or ctx is cancelled.
func (that *Console) Run(ctx context.Context) error {
	defer that.reader.Close()

	that.out.Message("Welcome to the board game collection!")

	err := that.offerLoad(ctx)
	for err == nil {
		if ctx.Err() != nil {
			return nil
		}

		if that.manager.Game() == nil {
			if err = that.menu(); err != nil {
				break
			}
		}

		err = that.play(ctx)
	}

	if errors.Is(err, errQuit) {
		that.out.Message("Goodbye!")
		return nil
	}

	return err
}

func (that *Console) ask(prompt string) (string, error) {
	that.reader.SetPrompt(prompt)

	line, err := that.reader.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", errQuit
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func (that *Console) confirm(prompt string) (bool, error) {
	for {
		answer, err := that.ask(prompt + " (y/n): ")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		that.out.Message("Invalid input. Please enter 'y' or 'n'.")
	}
}

func (that *Console) offerLoad(ctx context.Context) error {
	load, err := that.confirm("Do you want to load a saved game?")
	if err != nil || !load {
		return err
	}

	if _, err = that.manager.Load(ctx); err != nil {
		that.logger.Debug("load failed", "error", err)
		that.out.Message("No valid saved game found. Starting a new game.")

		return nil
	}

	that.out.Message("Game loaded.")

	return nil
}

// choose - re-prompts until one of the numbered options is picked.
func (that *Console) choose(prompt string, low, high int) (int, error) {
	for {
		answer, err := that.ask(prompt)
		if err != nil {
			return 0, err
		}

		choice, err := strconv.Atoi(answer)
		if err == nil && choice >= low && choice <= high {
			return choice, nil
		}

		that.out.Message("Invalid input. Please enter a number from %d to %d.", low, high)
	}
}

var menuVariants = []entity.Variant{entity.VariantNumeric, entity.VariantNotakto, entity.VariantGomoku}

func (that *Console) menu() error {
	that.out.Message("\nChoose a game to play:\n1. Numerical Tic-Tac-Toe\n2. Notakto\n3. Gomoku\n0. Exit")

	choice, err := that.choose("Enter your choice (0-3): ", 0, len(menuVariants))
	if err != nil {
		return err
	}
	if choice == 0 {
		return errQuit
	}
	kind := menuVariants[choice-1]

	that.out.Message("\nSelect mode:\n1. Human vs Human\n2. Human vs Computer")

	choice, err = that.choose("Enter your choice (1 or 2): ", 1, 2)
	if err != nil {
		return err
	}
	mode := entity.ModeHumanVsHuman
	if choice == 2 {
		mode = entity.ModeHumanVsComputer
	}

	size := 0
	if kind == entity.VariantNumeric {
		prompt := fmt.Sprintf("Board size (%d-%d) [%d]: ", variant.MinNumericSize, variant.MaxNumericSize, that.numericSize)
		for {
			answer, err := that.ask(prompt)
			if err != nil {
				return err
			}

			size = that.numericSize
			if answer != "" {
				if size, err = strconv.Atoi(answer); err != nil {
					that.out.Message("Invalid input. Please enter a number.")
					continue
				}
			}

			if size >= variant.MinNumericSize && size <= variant.MaxNumericSize {
				break
			}
			that.out.Message("Size must be from %d to %d.", variant.MinNumericSize, variant.MaxNumericSize)
		}
	}

	if _, err = that.manager.NewGame(kind, mode, size); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.out.Message("Type 'help' for the list of commands.")

	return nil
}

// play - runs the turn loop of the current game until it is left through the
// menu keyword or finished and dismissed.
func (that *Console) play(ctx context.Context) error {
	for ctx.Err() == nil {
		game := that.manager.Game()
		if game == nil {
			return nil
		}

		that.out.Board(game.Board())

		if result := game.Result(); result.IsFinished() {
			that.out.Result(result)
			return that.afterGame(ctx)
		}

		if game.IsComputerTurn() {
			that.computerTurn(game)
			continue
		}

		if err := that.humanTurn(ctx, game); err != nil {
			return err
		}
	}

	return nil
}

func (that *Console) computerTurn(game *engine.Engine) {
	name := game.Current().Name

	move, result, err := that.manager.PlayComputer()
	if errors.Is(err, apperror.ErrNoLegalMove) {
		that.out.Message("%s has no legal move.", name)
		return
	}
	if err != nil {
		that.logger.Error("computer turn failed", "error", err)
		that.out.Message("Computer could not move: %v", err)
		that.manager.Abandon()

		return
	}

	that.out.ComputerMove(game.Rules().Variant(), name, move, result)
}

// afterGame - a finished game can still be undone; anything else returns to the menu.
func (that *Console) afterGame(ctx context.Context) error {
	answer, err := that.ask("Type 'undo' to take back the last move or press Enter for the menu: ")
	if err != nil {
		return err
	}

	if strings.EqualFold(answer, string(KeywordUndo)) {
		that.keyword(ctx, KeywordUndo)
		return nil
	}

	that.manager.Abandon()

	return nil
}

func (that *Console) humanTurn(ctx context.Context, game *engine.Engine) error {
	kind := game.Rules().Variant()
	fields := moveFields(kind)

	line, err := that.ask(fmt.Sprintf("%s, enter %s: ", game.Current().Name, fields[0]))
	if err != nil {
		return err
	}

	command, err := ParseCommand(line)
	if err != nil {
		that.out.Message("%v", err)
		return nil
	}

	if !command.IsMove() {
		that.keyword(ctx, command.Keyword)
		return nil
	}

	numbers, err := that.completeMove(command.Numbers, fields)
	if err != nil || numbers == nil {
		return err
	}

	move, err := BuildMove(kind, numbers)
	if err != nil {
		that.out.Message("%v", err)
		return nil
	}

	if _, err = that.manager.MakeTurn(move); err != nil {
		if !apperror.IsRecoverable(err) {
			that.logger.Warn("move rejected", "error", err)
		}
		that.out.Message("Invalid move: %v", err)
	}

	return nil
}

// completeMove - prompts for the fields the first line left out. A nil slice means
// the move was abandoned on bad input.
func (that *Console) completeMove(numbers []int, fields []string) ([]int, error) {
	for len(numbers) < len(fields) {
		answer, err := that.ask(fmt.Sprintf("Enter %s: ", fields[len(numbers)]))
		if err != nil {
			return nil, err
		}

		number, err := strconv.Atoi(answer)
		if err != nil {
			that.out.Message("%v: %q is not a number", ErrBadInput, answer)
			return nil, nil
		}

		numbers = append(numbers, number)
	}

	return numbers, nil
}

func (that *Console) keyword(ctx context.Context, keyword Keyword) {
	switch keyword {
	case KeywordUndo:
		moves, err := that.manager.Undo()
		if err != nil {
			that.out.Message("%v", err)
			return
		}
		that.out.Message("Undid %d move(s).", len(moves))
	case KeywordRedo:
		moves, err := that.manager.Redo()
		if err != nil {
			that.out.Message("%v", err)
			return
		}
		that.out.Message("Redid %d move(s).", len(moves))
	case KeywordSave:
		if err := that.manager.Save(ctx); err != nil {
			that.logger.Error("save failed", "error", err)
			that.out.Message("Could not save the game: %v", err)
			return
		}
		that.out.Message("Game saved.")
	case KeywordHelp:
		that.out.Message("%s", strings.TrimRight(that.manager.Help(), "\n"))
	case KeywordMenu:
		that.manager.Abandon()
		that.out.Message("Returning to the menu.")
	}
}
