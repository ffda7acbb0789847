package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

var (
	errRedisDown     = errors.New("redis down")
	errStorageIsFull = errors.New("storage is full")
)

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

type mockBot struct {
	mock.Mock
}

func (m *mockBot) ChooseMove(ctx context.Context, board entity.Board) (tictactoe.Decision, error) {
	args := m.Called(ctx, board)
	return args.Get(0).(tictactoe.Decision), args.Error(1)
}

func (m *mockBot) MakeTurn(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

// playCell makes the mocked bot put its mark on cell.
func playCell(cell int) func(mock.Arguments) {
	return func(args mock.Arguments) {
		game := args.Get(1).(*entity.Game)
		game.Board[cell] = game.BotMark
		game.Outcome = tictactoe.Classify(game.Board)
	}
}

func newTestManager(t *testing.T) (*GameManager, *mockGameRepo, *mockBot) {
	t.Helper()

	repo := &mockGameRepo{}
	bot := &mockBot{}
	t.Cleanup(func() {
		repo.AssertExpectations(t)
		bot.AssertExpectations(t)
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return NewGameManager(logger, repo, bot), repo, bot
}

func TestGameManager_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Human plays X: bot waits", func(t *testing.T) {
		// Given: a manager with working storage
		manager, repo, _ := newTestManager(t)

		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		// When: creating a game for X
		game, err := manager.CreateGame(ctx, entity.PlayerX)

		// Then: the board is empty and it's the human's turn
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, entity.Board{}, game.Board)
		assert.True(t, game.IsHumanTurn())
	})

	t.Run("Human plays O: bot opens", func(t *testing.T) {
		// Given: a bot that opens in the center
		manager, repo, bot := newTestManager(t)

		bot.On("MakeTurn", mock.Anything, mock.AnythingOfType("*entity.Game")).Run(playCell(4)).Return(nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		// When: creating a game for O
		game, err := manager.CreateGame(ctx, entity.PlayerO)

		// Then: X is already on the board
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.Board[4])
		assert.True(t, game.IsHumanTurn())
	})

	t.Run("Returns error if storage fails", func(t *testing.T) {
		// Given: storage that is full
		manager, repo, _ := newTestManager(t)

		repo.On("CreateOrUpdate", mock.Anything, mock.Anything).Return(errStorageIsFull).Once()

		// When: creating a game
		game, err := manager.CreateGame(ctx, entity.PlayerX)

		// Then: the error is passed on
		require.ErrorIs(t, err, errStorageIsFull)
		assert.Nil(t, game)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Human moves and bot replies", func(t *testing.T) {
		// Given: a fresh game
		manager, repo, bot := newTestManager(t)
		game := entity.NewGame("g1", entity.PlayerX)

		repo.On("GetByID", mock.Anything, "g1").Return(game, nil).Once()
		bot.On("MakeTurn", mock.Anything, game).Run(playCell(4)).Return(nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, game).Return(nil).Once()

		// When: the human plays the corner
		updated, err := manager.MakeTurn(ctx, "g1", 0)

		// Then: both marks are on the board and it's the human's turn again
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, updated.Board[0])
		assert.Equal(t, entity.PlayerO, updated.Board[4])
		assert.True(t, updated.IsHumanTurn())
	})

	t.Run("Winning human move: bot stays quiet", func(t *testing.T) {
		// Given: the human can complete the top row
		manager, repo, _ := newTestManager(t)
		game := entity.NewGame("g1", entity.PlayerX)
		game.Board = entity.Board{entity.PlayerX, entity.PlayerX, entity.EmptyCell, entity.EmptyCell, entity.PlayerO, entity.EmptyCell, entity.EmptyCell, entity.EmptyCell, entity.PlayerO}

		repo.On("GetByID", mock.Anything, "g1").Return(game, nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, game).Return(nil).Once()

		// When: the human plays 2
		updated, err := manager.MakeTurn(ctx, "g1", 2)

		// Then: X has won
		require.NoError(t, err)
		assert.Equal(t, entity.FirstWins, updated.Outcome)
	})

	t.Run("Occupied cell is rejected before the bot is asked", func(t *testing.T) {
		// Given: a game where cell 0 is taken
		manager, repo, _ := newTestManager(t)
		game := entity.NewGame("g1", entity.PlayerX)
		game.Board[0] = entity.PlayerX
		game.Board[4] = entity.PlayerO

		repo.On("GetByID", mock.Anything, "g1").Return(game, nil).Once()

		// When: the human plays 4
		updated, err := manager.MakeTurn(ctx, "g1", 4)

		// Then: ErrCellOccupied is returned and nothing is stored
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Nil(t, updated)
	})

	t.Run("Finished game", func(t *testing.T) {
		// Given: a game that ended
		manager, repo, _ := newTestManager(t)
		game := entity.NewGame("g1", entity.PlayerX)
		game.Outcome = entity.Tie

		repo.On("GetByID", mock.Anything, "g1").Return(game, nil).Once()

		// When: the human tries another move
		_, err := manager.MakeTurn(ctx, "g1", 0)

		// Then: ErrGameFinished is returned
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Unknown game", func(t *testing.T) {
		// Given: storage without the game
		manager, repo, _ := newTestManager(t)

		repo.On("GetByID", mock.Anything, "nope").Return(nil, apperror.ErrGameNotFound).Once()

		// When: making a turn
		_, err := manager.MakeTurn(ctx, "nope", 0)

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Bot failure", func(t *testing.T) {
		// Given: a bot that fails
		manager, repo, bot := newTestManager(t)
		game := entity.NewGame("g1", entity.PlayerX)

		repo.On("GetByID", mock.Anything, "g1").Return(game, nil).Once()
		bot.On("MakeTurn", mock.Anything, game).Return(apperror.ErrNoAvailableMoves).Once()

		// When: the human moves
		_, err := manager.MakeTurn(ctx, "g1", 0)

		// Then: the bot's error is passed on
		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})
}

func TestGameManager_ResetGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Clears a finished game", func(t *testing.T) {
		// Given: a game X won
		manager, repo, _ := newTestManager(t)
		game := entity.NewGame("g1", entity.PlayerX)
		game.Board = entity.Board{entity.PlayerX, entity.PlayerX, entity.PlayerX, entity.PlayerO, entity.PlayerO}
		game.Outcome = entity.FirstWins

		repo.On("GetByID", mock.Anything, "g1").Return(game, nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, game).Return(nil).Once()

		// When: resetting it
		updated, err := manager.ResetGame(ctx, "g1")

		// Then: the board is empty and the game goes on
		require.NoError(t, err)
		assert.Equal(t, entity.Board{}, updated.Board)
		assert.Equal(t, entity.InProgress, updated.Outcome)
	})

	t.Run("Bot opens again when it plays X", func(t *testing.T) {
		// Given: a game where the bot is X
		manager, repo, bot := newTestManager(t)
		game := entity.NewGame("g1", entity.PlayerO)
		game.Board[0] = entity.PlayerX

		repo.On("GetByID", mock.Anything, "g1").Return(game, nil).Once()
		bot.On("MakeTurn", mock.Anything, game).Run(playCell(0)).Return(nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, game).Return(nil).Once()

		// When: resetting it
		updated, err := manager.ResetGame(ctx, "g1")

		// Then: the bot has played its opening again
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Board.Filled())
	})

	t.Run("Storage failure", func(t *testing.T) {
		// Given: storage that is down
		manager, repo, _ := newTestManager(t)

		repo.On("GetByID", mock.Anything, "g1").Return(nil, errRedisDown).Once()

		// When: resetting
		_, err := manager.ResetGame(ctx, "g1")

		// Then: the error is passed on
		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestGameManager_DeleteGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes the session", func(t *testing.T) {
		// Given: a stored game
		manager, repo, _ := newTestManager(t)

		repo.On("DeleteByID", mock.Anything, "g1").Return(nil).Once()

		// When: deleting it
		err := manager.DeleteGame(ctx, "g1")

		// Then: the repository drops it
		require.NoError(t, err)
	})

	t.Run("Unknown game", func(t *testing.T) {
		// Given: no game under the id
		manager, repo, _ := newTestManager(t)

		repo.On("DeleteByID", mock.Anything, "nope").Return(apperror.ErrGameNotFound).Once()

		// When: deleting it
		err := manager.DeleteGame(ctx, "nope")

		// Then: ErrGameNotFound is passed on
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameManager_Analyze(t *testing.T) {
	ctx := context.Background()

	t.Run("Position in progress", func(t *testing.T) {
		// Given: O to move
		manager, _, bot := newTestManager(t)
		board := entity.Board{entity.PlayerX}
		decision := tictactoe.Decision{Move: 4, Score: tictactoe.TieScore}

		bot.On("ChooseMove", mock.Anything, board).Return(decision, nil).Once()

		// When: analyzing
		analysis, err := manager.Analyze(ctx, board)

		// Then: the best move for O is reported
		require.NoError(t, err)
		assert.Equal(t, entity.InProgress, analysis.Outcome)
		assert.Equal(t, entity.PlayerO, analysis.SideToMove)
		require.NotNil(t, analysis.Decision)
		assert.Equal(t, decision, *analysis.Decision)
	})

	t.Run("Finished position", func(t *testing.T) {
		// Given: a tie
		manager, _, _ := newTestManager(t)
		board := entity.Board{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerX, entity.PlayerO, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.PlayerX,
		}

		// When: analyzing
		analysis, err := manager.Analyze(ctx, board)

		// Then: the outcome is reported without a move
		require.NoError(t, err)
		assert.Equal(t, entity.Tie, analysis.Outcome)
		assert.Equal(t, entity.EmptyCell, analysis.SideToMove)
		assert.Nil(t, analysis.Decision)
	})
}
