package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/history"
	"github.com/rocketscienceinc/boardgames/internal/variant"
)

// Strategy - picks a move for the player to move. ok is false when no legal move exists.
type Strategy interface {
	ChooseMove(board *entity.Board, me, opponent entity.Player) (move entity.Move, ok bool)
}

// Engine - the turn-taking state machine of one game session. It owns the board,
// both players and the move history; nothing else mutates them.
type Engine struct {
	logger *slog.Logger

	id      string
	mode    entity.Mode
	rules   variant.Rules
	board   *entity.Board
	players [2]entity.Player
	turn    int
	history *history.History
	result  entity.Result
}

func New(logger *slog.Logger, id string, mode entity.Mode, rules variant.Rules) *Engine {
	return &Engine{
		logger:  logger.With("component", "engine", "variant", rules.Variant()),
		id:      id,
		mode:    mode,
		rules:   rules,
		board:   rules.NewBoard(),
		players: rules.Players(mode),
		history: history.New(),
		result:  entity.Result{Status: entity.StatusOngoing},
	}
}

func (that *Engine) ID() string {
	return that.id
}

func (that *Engine) Mode() entity.Mode {
	return that.mode
}

func (that *Engine) Rules() variant.Rules {
	return that.rules
}

func (that *Engine) Result() entity.Result {
	return that.result
}

func (that *Engine) Current() entity.Player {
	return that.players[that.turn]
}

func (that *Engine) Waiting() entity.Player {
	return that.players[1-that.turn]
}

func (that *Engine) Players() [2]entity.Player {
	return that.players
}

// Board - a copy of the board for rendering.
func (that *Engine) Board() *entity.Board {
	return that.board.Clone()
}

// Values - what the player to move may place.
func (that *Engine) Values() []entity.Cell {
	return that.rules.Values(that.board, that.Current())
}

func (that *Engine) IsComputerTurn() bool {
	return !that.result.IsFinished() && that.Current().IsComputer()
}

func (that *Engine) CanUndo() bool {
	return that.history.CanUndo()
}

func (that *Engine) CanRedo() bool {
	return that.history.CanRedo()
}

// ApplyMove - validates move for the player to move, applies it and records it.
// A legality failure leaves the game untouched.
func (that *Engine) ApplyMove(move entity.Move) (entity.Result, error) {
	if that.result.IsFinished() {
		return that.result, apperror.ErrGameFinished
	}

	player := that.Current()

	prepared, err := that.rules.Prepare(that.board, player, move)
	if err != nil {
		return that.result, fmt.Errorf("invalid move: %w", err)
	}
	prepared.Player = that.turn

	if err = that.rules.Apply(that.board, player, prepared); err != nil {
		return that.result, fmt.Errorf("failed to apply move: %w", err)
	}

	that.history.Record(prepared)
	that.logger.Debug("move applied", "player", player.Name, "move", prepared.String())

	verdict, reason := that.rules.Evaluate(that.board, prepared)
	if verdict != entity.VerdictNone {
		that.finish(verdict, reason)
		return that.result, nil
	}

	that.turn = 1 - that.turn

	if !variant.HasLegalMove(that.rules, that.board, that.Current()) {
		that.finishStalemate()
	}

	return that.result, nil
}

// PlayComputerTurn - asks strategy for a move and applies it like any other move.
// A strategy without a move ends the game by the variant's stalemate rule.
func (that *Engine) PlayComputerTurn(strategy Strategy) (entity.Move, entity.Result, error) {
	if that.result.IsFinished() {
		return entity.Move{}, that.result, apperror.ErrGameFinished
	}

	if !that.Current().IsComputer() {
		return entity.Move{}, that.result, apperror.ErrNotComputerTurn
	}

	started := time.Now()

	move, ok := strategy.ChooseMove(that.board.Clone(), that.Current(), that.Waiting())
	if !ok {
		that.logger.Info("computer has no legal move", "player", that.Current().Name)
		that.finishStalemate()

		return entity.Move{}, that.result, apperror.ErrNoLegalMove
	}

	that.logger.Debug("computer chose move", "move", move.String(), "elapsed", time.Since(started))

	result, err := that.ApplyMove(move)
	if err != nil {
		return move, result, fmt.Errorf("computer move rejected: %w", err)
	}

	top, _ := that.history.PeekUndo()

	return top, result, nil
}

// Undo - reverts the latest move without changing whose turn it is. Against the
// computer a whole round is reverted and the human whose move was taken back moves again.
func (that *Engine) Undo() ([]entity.Move, error) {
	var undone []entity.Move

	for {
		move, err := that.history.Undo()
		if errors.Is(err, apperror.ErrNothingToUndo) {
			break
		}

		if err = that.rules.Revert(that.board, move); err != nil {
			return undone, fmt.Errorf("failed to revert %s: %w", move, err)
		}
		undone = append(undone, move)

		if !that.players[move.Player].IsComputer() {
			break
		}
	}

	if len(undone) == 0 {
		return nil, apperror.ErrNothingToUndo
	}

	// Against the computer the seat of the earliest reverted move plays next.
	if that.mode == entity.ModeHumanVsComputer {
		that.turn = undone[len(undone)-1].Player
	}

	that.result = entity.Result{Status: entity.StatusOngoing}
	that.logger.Debug("moves undone", "count", len(undone), "turn", that.Current().Name)

	return undone, nil
}

// Redo - replays the latest undone move without changing whose turn it is. Against
// the computer the replies that followed it are replayed too and the turn passes on as
// if the moves had just been made.
func (that *Engine) Redo() ([]entity.Move, error) {
	if that.result.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	var redone []entity.Move

	for {
		if len(redone) > 0 {
			next, ok := that.history.PeekRedo()
			if !ok || !that.players[next.Player].IsComputer() {
				break
			}
		}

		move, err := that.history.Redo()
		if errors.Is(err, apperror.ErrNothingToRedo) {
			break
		}

		if err = that.rules.Apply(that.board, that.players[move.Player], move); err != nil {
			return redone, fmt.Errorf("failed to replay %s: %w", move, err)
		}
		redone = append(redone, move)

		if verdict, reason := that.rules.Evaluate(that.board, move); verdict != entity.VerdictNone {
			that.finishBy(move.Player, verdict, reason)
			break
		}
	}

	if len(redone) == 0 {
		return nil, apperror.ErrNothingToRedo
	}

	if that.mode == entity.ModeHumanVsComputer {
		that.resumeAfter(redone[len(redone)-1])
	}

	that.logger.Debug("moves redone", "count", len(redone), "turn", that.Current().Name)

	return redone, nil
}

// resumeAfter - hands the turn to whoever follows last, as ApplyMove would have.
func (that *Engine) resumeAfter(last entity.Move) {
	if that.result.IsFinished() {
		that.turn = last.Player
		return
	}

	that.turn = 1 - last.Player

	if !variant.HasLegalMove(that.rules, that.board, that.Current()) {
		that.finishStalemate()
	}
}

func (that *Engine) finish(verdict entity.Verdict, reason entity.Reason) {
	that.finishBy(that.turn, verdict, reason)
}

// finishStalemate - the player to move has nothing to play.
func (that *Engine) finishStalemate() {
	verdict := that.rules.Stalemate()
	if verdict == entity.VerdictDraw {
		that.finishBy(that.turn, verdict, entity.ReasonExhaust)
		return
	}

	that.finishBy(that.turn, verdict, entity.ReasonNoMoves)
}

func (that *Engine) finishBy(mover int, verdict entity.Verdict, reason entity.Reason) {
	me, other := that.players[mover], that.players[1-mover]

	switch verdict {
	case entity.VerdictMoverWins:
		that.result = entity.Result{Status: entity.StatusWon, Winner: me.Name, Loser: other.Name, Reason: reason}
	case entity.VerdictMoverLoses:
		that.result = entity.Result{Status: entity.StatusWon, Winner: other.Name, Loser: me.Name, Reason: reason}
	case entity.VerdictDraw:
		that.result = entity.Result{Status: entity.StatusDraw, Reason: reason}
	default:
		return
	}

	that.logger.Info("game finished", "status", that.result.Status, "winner", that.result.Winner, "reason", reason)
}
