package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type BotService interface {
	ChooseMove(ctx context.Context, board entity.Board) (tictactoe.Decision, error)
	MakeTurn(ctx context.Context, game *entity.Game) error
	WarmUp(ctx context.Context) (int, error)
}

type solutionRepo interface {
	Get(ctx context.Context, board entity.Board) (tictactoe.Decision, error)
	Save(ctx context.Context, board entity.Board, decision tictactoe.Decision) error
}

type botService struct {
	logger    *slog.Logger
	solutions solutionRepo
}

// NewBotService returns the engine player. Solved positions are looked up in solutions
// first; the cache is best effort and its failures never stop the bot from moving.
func NewBotService(logger *slog.Logger, solutions solutionRepo) BotService {
	return &botService{
		logger:    logger.With("component", "bot"),
		solutions: solutions,
	}
}

// ChooseMove returns the best move for the side to move on board.
func (that *botService) ChooseMove(ctx context.Context, board entity.Board) (tictactoe.Decision, error) {
	log := that.logger.With("method", "ChooseMove", "board", board.String())

	if tictactoe.Classify(board).IsTerminal() {
		return tictactoe.Decision{}, apperror.ErrGameFinished
	}

	cached, err := that.solutions.Get(ctx, board)
	if err == nil {
		log.Debug("solution cache hit", "move", cached.Move, "score", cached.Score)
		return cached, nil
	}

	if !errors.Is(err, repository.ErrSolutionNotFound) {
		log.Warn("failed to read solution cache", "error", err)
	}

	decision, ok := tictactoe.Solve(board)
	if !ok {
		return tictactoe.Decision{}, apperror.ErrNoAvailableMoves
	}

	log.Debug("position solved", "move", decision.Move, "score", decision.Score)

	if err = that.solutions.Save(ctx, board, decision); err != nil {
		log.Warn("failed to save solution", "error", err)
	}

	return decision, nil
}

// MakeTurn plays the bot's move on game.
func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !game.IsBotTurn() {
		return apperror.ErrNotYourTurn
	}

	decision, err := that.ChooseMove(ctx, game.Board)
	if err != nil {
		return fmt.Errorf("bot failed to choose move: %w", err)
	}

	if err = tictactoe.MakeTurn(game, game.BotMark, decision.Move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
