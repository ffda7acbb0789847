package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

// WarmUp solves every position reachable by legal play and stores the results, so that
// later games are answered from the cache. It returns how many positions were solved and
// stops early when ctx is done.
func (that *botService) WarmUp(ctx context.Context) (int, error) {
	log := that.logger.With("method", "WarmUp")

	seen := make(map[entity.Board]struct{})
	queue := []entity.Board{{}}
	solved := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return solved, fmt.Errorf("warm-up interrupted: %w", err)
		}

		board := queue[0]
		queue = queue[1:]

		if _, ok := seen[board]; ok {
			continue
		}
		seen[board] = struct{}{}

		if tictactoe.Classify(board).IsTerminal() {
			continue
		}

		if _, err := that.ChooseMove(ctx, board); err != nil {
			return solved, fmt.Errorf("failed to solve %s: %w", board, err)
		}
		solved++

		side := board.SideToMove()
		for _, cell := range board.EmptyCells() {
			next := board
			next[cell] = side
			queue = append(queue, next)
		}
	}

	log.Debug("warm-up done", "positions", len(seen), "solved", solved)

	return solved, nil
}
