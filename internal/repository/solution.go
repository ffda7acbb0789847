package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const (
	solutionKeyPrefix = "solution:"

	fieldMove  = "move"
	fieldScore = "score"
)

var ErrSolutionNotFound = errors.New("solution not found")

// SolutionRepository caches solved positions. A position's best move never changes, so
// entries have no expiry.
type SolutionRepository interface {
	Get(ctx context.Context, board entity.Board) (tictactoe.Decision, error)
	Save(ctx context.Context, board entity.Board, decision tictactoe.Decision) error
}

type dbSolution struct {
	client *redis.Client
}

func NewSolutionRepository(client *redis.Client) SolutionRepository {
	return &dbSolution{
		client: client,
	}
}

func (that *dbSolution) Get(ctx context.Context, board entity.Board) (tictactoe.Decision, error) {
	fields, err := that.client.HGetAll(ctx, solutionKeyPrefix+board.String()).Result()
	if err != nil {
		return tictactoe.Decision{}, fmt.Errorf("failed to get solution: %w", err)
	}

	if len(fields) == 0 {
		return tictactoe.Decision{}, ErrSolutionNotFound
	}

	move, err := strconv.Atoi(fields[fieldMove])
	if err != nil {
		return tictactoe.Decision{}, fmt.Errorf("failed to parse cached move: %w", err)
	}

	score, err := strconv.Atoi(fields[fieldScore])
	if err != nil {
		return tictactoe.Decision{}, fmt.Errorf("failed to parse cached score: %w", err)
	}

	return tictactoe.Decision{Move: move, Score: tictactoe.Score(score)}, nil
}

func (that *dbSolution) Save(ctx context.Context, board entity.Board, decision tictactoe.Decision) error {
	err := that.client.HSet(ctx, solutionKeyPrefix+board.String(),
		fieldMove, decision.Move,
		fieldScore, int(decision.Score),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to save solution: %w", err)
	}

	return nil
}
