package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// WinCombos are the 8 lines of three: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Classify reports the outcome of a board. It is defined for any contents, including
// boards legal play can never reach. X lines are checked before O lines, so a board with
// a line for both players counts as a win for X; under legal play the two cannot coexist
// and the order carries no meaning.
func Classify(board entity.Board) entity.Outcome {
	switch {
	case hasLine(board, entity.PlayerX):
		return entity.FirstWins
	case hasLine(board, entity.PlayerO):
		return entity.SecondWins
	}

	// the game goes on while any square is free
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return entity.InProgress
		}
	}

	return entity.Tie
}

func hasLine(board entity.Board, mark entity.Cell) bool {
	for _, combo := range WinCombos {
		if board[combo[0]] == mark && board[combo[1]] == mark && board[combo[2]] == mark {
			return true
		}
	}

	return false
}
