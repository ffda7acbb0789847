package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
)

type gameUseCase interface {
	CreateGame(ctx context.Context, humanMark entity.Cell) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	Analyze(ctx context.Context, board entity.Board) (*usecase.Analysis, error)
}

type Handlers struct {
	logger           *slog.Logger
	game             gameUseCase
	defaultHumanMark entity.Cell
}

func NewHandlers(logger *slog.Logger, game gameUseCase, defaultHumanMark entity.Cell) *Handlers {
	return &Handlers{
		logger:           logger.With("component", "handlers"),
		game:             game,
		defaultHumanMark: defaultHumanMark,
	}
}

type createGameRequest struct {
	HumanMark string `json:"human_mark"`
}

type turnRequest struct {
	Cell *int `json:"cell" binding:"required,min=0,max=8"`
}

type analysisRequest struct {
	Board string `json:"board" binding:"required,len=9"`
}

// gameResponse is a game as the client sees it, with the derived fields spelled out.
type gameResponse struct {
	*entity.Game
	Turn   entity.Cell `json:"turn"`
	Winner entity.Cell `json:"winner"`
}

func newGameResponse(game *entity.Game) gameResponse {
	return gameResponse{
		Game:   game,
		Turn:   game.Turn(),
		Winner: game.Outcome.Winner(),
	}
}

func (that *Handlers) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (that *Handlers) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	humanMark := that.defaultHumanMark
	if req.HumanMark != "" {
		mark, err := entity.ParseCell(req.HumanMark)
		if err != nil {
			that.handleError(c, err)
			return
		}
		humanMark = mark
	}

	game, err := that.game.CreateGame(c.Request.Context(), humanMark)
	if err != nil {
		that.handleError(c, err)
		return
	}

	SuccessResponse(c, newGameResponse(game))
}

func (that *Handlers) GetGame(c *gin.Context) {
	game, err := that.game.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.handleError(c, err)
		return
	}

	SuccessResponse(c, newGameResponse(game))
}

func (that *Handlers) MakeTurn(c *gin.Context) {
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	game, err := that.game.MakeTurn(c.Request.Context(), c.Param("id"), *req.Cell)
	if err != nil {
		that.handleError(c, err)
		return
	}

	SuccessResponse(c, newGameResponse(game))
}

func (that *Handlers) ResetGame(c *gin.Context) {
	game, err := that.game.ResetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.handleError(c, err)
		return
	}

	SuccessResponse(c, newGameResponse(game))
}

func (that *Handlers) DeleteGame(c *gin.Context) {
	if err := that.game.DeleteGame(c.Request.Context(), c.Param("id")); err != nil {
		that.handleError(c, err)
		return
	}

	SuccessResponse(c, nil)
}

func (that *Handlers) Analyze(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	board, err := entity.ParseBoard(req.Board)
	if err != nil {
		that.handleError(c, err)
		return
	}

	analysis, err := that.game.Analyze(c.Request.Context(), board)
	if err != nil {
		that.handleError(c, err)
		return
	}

	SuccessResponse(c, analysis)
}

func (that *Handlers) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrInvalidBoard):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperror.ErrGameNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished):
		ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		that.logger.Error("request failed", "path", c.FullPath(), "error", err)
		ErrorResponse(c, http.StatusInternalServerError, "Internal Server Error")
	}
}
