package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

// GameManager runs human-versus-bot games: it applies the human's move and answers with
// the bot's while the game goes on.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	bot      botService
}

var _ GameUseCase = (*GameManager)(nil)

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		bot:      bot,
	}
}

func (that *GameManager) CreateGame(ctx context.Context, humanMark entity.Cell) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString(), humanMark)

	if err := that.botReply(ctx, game); err != nil {
		return nil, err
	}

	if err := that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "game_id", game.ID, "human_mark", game.HumanMark.String())

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", gameID)

	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = tictactoe.MakeTurn(game, game.HumanMark, cell); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.botReply(ctx, game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished", "outcome", game.Outcome.String())
	}

	return game, nil
}

// ResetGame clears the board of an existing game, finished or not.
func (that *GameManager) ResetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	game.Reset()

	if err = that.botReply(ctx, game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game reset", "game_id", game.ID)

	return game, nil
}

// DeleteGame ends a session before its TTL runs out.
func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "game_id", gameID)

	return nil
}

func (that *GameManager) Analyze(ctx context.Context, board entity.Board) (*Analysis, error) {
	analysis := &Analysis{
		Board:      board,
		Outcome:    tictactoe.Classify(board),
		SideToMove: board.SideToMove(),
	}

	if analysis.Outcome.IsTerminal() {
		analysis.SideToMove = entity.EmptyCell
		return analysis, nil
	}

	decision, err := that.bot.ChooseMove(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze board: %w", err)
	}

	analysis.Decision = &decision

	return analysis, nil
}

// botReply lets the bot move if the game is waiting for it.
func (that *GameManager) botReply(ctx context.Context, game *entity.Game) error {
	if !game.IsBotTurn() {
		return nil
	}

	if err := that.bot.MakeTurn(ctx, game); err != nil {
		return fmt.Errorf("failed bot turn: %w", err)
	}

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
