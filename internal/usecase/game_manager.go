package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/engine"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/pkg"
	"github.com/rocketscienceinc/boardgames/internal/variant"
)

var ErrNoGame = errors.New("no game in progress")

type snapshotRepo interface {
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	GetByID(ctx context.Context, id string) (*entity.Snapshot, error)
}

// StrategyFactory - builds the computer player for a set of rules.
type StrategyFactory func(rules variant.Rules) (engine.Strategy, error)

// GameManager - owns the session being played: starting, playing, undoing, saving
// and loading games.
type GameManager struct {
	logger       *slog.Logger
	snapshotRepo snapshotRepo
	newStrategy  StrategyFactory
	saveSlot     string

	game     *engine.Engine
	strategy engine.Strategy
}

func NewGameManager(logger *slog.Logger, snapshotRepo snapshotRepo, newStrategy StrategyFactory, saveSlot string) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		snapshotRepo: snapshotRepo,
		newStrategy:  newStrategy,
		saveSlot:     saveSlot,
	}
}

// Game - the session in progress, nil before NewGame or Load.
func (that *GameManager) Game() *engine.Engine {
	return that.game
}

func (that *GameManager) NewGame(kind entity.Variant, mode entity.Mode, size int) (*engine.Engine, error) {
	rules, err := variant.New(kind, size)
	if err != nil {
		return nil, fmt.Errorf("failed to create rules: %w", err)
	}

	game := engine.New(that.logger, pkg.GenerateNewSessionID(), mode, rules)
	if err = that.start(game); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "id", game.ID(), "variant", kind, "mode", mode)

	return game, nil
}

func (that *GameManager) start(game *engine.Engine) error {
	var strategy engine.Strategy
	if game.Mode() == entity.ModeHumanVsComputer {
		var err error
		if strategy, err = that.newStrategy(game.Rules()); err != nil {
			return fmt.Errorf("failed to create computer player: %w", err)
		}
	}

	that.game = game
	that.strategy = strategy

	return nil
}

// Abandon - drops the session without saving.
func (that *GameManager) Abandon() {
	if that.game != nil {
		that.logger.Info("game abandoned", "id", that.game.ID())
	}

	that.game = nil
	that.strategy = nil
}

// MakeTurn - a human move. Legality failures leave the game untouched.
func (that *GameManager) MakeTurn(move entity.Move) (entity.Result, error) {
	if that.game == nil {
		return entity.Result{}, ErrNoGame
	}

	if that.game.IsComputerTurn() {
		return that.game.Result(), fmt.Errorf("failed make turn: %w", apperror.ErrNotComputerTurn)
	}

	result, err := that.game.ApplyMove(move)
	if err != nil {
		return result, fmt.Errorf("failed make turn: %w", err)
	}

	return result, nil
}

// PlayComputer - lets the computer move when it is its turn.
func (that *GameManager) PlayComputer() (entity.Move, entity.Result, error) {
	if that.game == nil {
		return entity.Move{}, entity.Result{}, ErrNoGame
	}

	if that.strategy == nil {
		return entity.Move{}, that.game.Result(), apperror.ErrNotComputerTurn
	}

	move, result, err := that.game.PlayComputerTurn(that.strategy)
	if err != nil {
		return move, result, fmt.Errorf("failed computer turn: %w", err)
	}

	return move, result, nil
}

func (that *GameManager) Undo() ([]entity.Move, error) {
	if that.game == nil {
		return nil, ErrNoGame
	}

	return that.game.Undo()
}

func (that *GameManager) Redo() ([]entity.Move, error) {
	if that.game == nil {
		return nil, ErrNoGame
	}

	return that.game.Redo()
}

// Save - stores the session in the save slot.
func (that *GameManager) Save(ctx context.Context) error {
	return that.SaveAs(ctx, that.saveSlot)
}

func (that *GameManager) SaveAs(ctx context.Context, id string) error {
	if that.game == nil {
		return ErrNoGame
	}

	snapshot := that.game.Snapshot()
	snapshot.ID = id

	if err := that.snapshotRepo.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	that.logger.Info("game saved", "id", that.game.ID(), "slot", id, "moves", len(snapshot.History))

	return nil
}

// Load - resumes the game in the save slot.
func (that *GameManager) Load(ctx context.Context) (*engine.Engine, error) {
	return that.LoadFrom(ctx, that.saveSlot)
}

// LoadFrom - resumes a stored game. A missing or damaged snapshot is reported as
// ErrCorruptSnapshot and leaves the manager without a game, so the caller starts a fresh one.
func (that *GameManager) LoadFrom(ctx context.Context, id string) (*engine.Engine, error) {
	log := that.logger.With("method", "LoadFrom", "slot", id)

	that.Abandon()

	game, err := that.restore(ctx, id)
	if err != nil {
		log.Warn("saved game discarded", "error", err)

		if errors.Is(err, apperror.ErrSnapshotNotFound) || errors.Is(err, apperror.ErrUnknownVariant) ||
			errors.Is(err, variant.ErrInvalidSize) {
			return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptSnapshot, err)
		}

		return nil, err
	}

	if err = that.start(game); err != nil {
		return nil, err
	}

	log.Info("game loaded", "variant", game.Rules().Variant(), "turn", game.Current().Name)

	return game, nil
}

func (that *GameManager) restore(ctx context.Context, id string) (*engine.Engine, error) {
	snapshot, err := that.snapshotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	rules, err := variant.New(snapshot.Variant, snapshot.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to create rules: %w", err)
	}

	game, err := engine.Restore(that.logger, rules, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return game, nil
}

// Help - how to enter a move in the current game and the reserved commands.
func (that *GameManager) Help() string {
	var help strings.Builder

	help.WriteString("Available commands:\n")

	if that.game != nil {
		rules := that.game.Rules()
		last := rules.Size() - 1

		switch rules.Variant() {
		case entity.VariantNumeric:
			numbers := lo.Map(that.game.Values(), func(value entity.Cell, _ int) string {
				return value.String()
			})
			fmt.Fprintf(&help, "- enter a number, then row and column (0-%d)\n", last)
			fmt.Fprintf(&help, "- %s can place: %s\n", that.game.Current().Name, strings.Join(numbers, ", "))
			if numeric, ok := rules.(*variant.Numeric); ok {
				fmt.Fprintf(&help, "- a full line summing to %d wins\n", numeric.Target())
			}
		case entity.VariantNotakto:
			help.WriteString("- enter board (1-3), row and column (0-2), e.g. 1 0 2\n")
			help.WriteString("- completing a line kills its board, whoever kills the last board loses\n")
		case entity.VariantGomoku:
			fmt.Fprintf(&help, "- enter row and column (0-%d)\n", last)
			help.WriteString("- five or more in a row wins\n")
		}
	}

	help.WriteString("- undo: take back the last move\n")
	help.WriteString("- redo: replay an undone move\n")
	help.WriteString("- save: save the game\n")
	help.WriteString("- help: show this help\n")
	help.WriteString("- menu: leave the game and return to the menu\n")

	return help.String()
}
