package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// Score values a position from X's point of view: positive favors X, negative favors O.
type Score int

const (
	WinScore  Score = 1000
	LossScore Score = -1000
	TieScore  Score = 0

	// Infinity seeds the search window. It is far outside the terminal scores and far
	// from the int range, so negating or comparing it never overflows.
	Infinity Score = 1_000_000
)

// Decision is the move chosen for the side to move and the score it leads to.
type Decision struct {
	Move  int   `json:"move"`
	Score Score `json:"score"`
}

// Search returns the minimax value of board with alpha-beta pruning. X maximizes, O
// minimizes. The board is mutated while searching and is restored before returning.
func Search(board *entity.Board, alpha, beta Score, maximizing bool) Score {
	if score, ok := terminalScore(Classify(*board)); ok {
		return score
	}

	if maximizing {
		best := -Infinity
		for i := range entity.BoardSize {
			if board[i] != entity.EmptyCell {
				continue
			}

			board[i] = entity.PlayerX
			best = max(best, Search(board, alpha, beta, false))
			board[i] = entity.EmptyCell

			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}

		return best
	}

	best := Infinity
	for i := range entity.BoardSize {
		if board[i] != entity.EmptyCell {
			continue
		}

		board[i] = entity.PlayerO
		best = min(best, Search(board, alpha, beta, true))
		board[i] = entity.EmptyCell

		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}

	return best
}

// BestMove tries every empty cell for side and keeps the one with the best exact score
// for it: the highest for X, the lowest for O. On equal scores the lowest index wins.
// It returns false when side is not a player or the board has no empty cell.
//
// Callers should check Classify first: on a finished board that still has empty cells
// every candidate scores the same terminal value and the first one is returned.
func BestMove(board *entity.Board, side entity.Cell) (Decision, bool) {
	if !side.IsPlayer() {
		return Decision{}, false
	}

	maximizing := side == entity.PlayerX

	var (
		decision Decision
		found    bool
	)

	for i := range entity.BoardSize {
		if board[i] != entity.EmptyCell {
			continue
		}

		board[i] = side
		score := Search(board, -Infinity, Infinity, !maximizing)
		board[i] = entity.EmptyCell

		if !found || better(score, decision.Score, maximizing) {
			decision = Decision{Move: i, Score: score}
			found = true
		}
	}

	return decision, found
}

// Solve picks the best move for whoever is to move on board. The caller's board is not
// touched.
func Solve(board entity.Board) (Decision, bool) {
	return BestMove(&board, board.SideToMove())
}

func better(score, best Score, maximizing bool) bool {
	if maximizing {
		return score > best
	}
	return score < best
}

func terminalScore(outcome entity.Outcome) (Score, bool) {
	switch outcome {
	case entity.FirstWins:
		return WinScore, true
	case entity.SecondWins:
		return LossScore, true
	case entity.Tie:
		return TieScore, true
	default:
		return 0, false
	}
}
