package usecase

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type GameUseCase interface {
	CreateGame(ctx context.Context, humanMark entity.Cell) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	Analyze(ctx context.Context, board entity.Board) (*Analysis, error)
}

// Analysis describes a position: its outcome and, while the game goes on, the best move
// for the side to move.
type Analysis struct {
	Board      entity.Board        `json:"board"`
	Outcome    entity.Outcome      `json:"outcome"`
	SideToMove entity.Cell         `json:"side_to_move"`
	Decision   *tictactoe.Decision `json:"decision,omitempty"`
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	ChooseMove(ctx context.Context, board entity.Board) (tictactoe.Decision, error)
	MakeTurn(ctx context.Context, game *entity.Game) error
}
