package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

// BoardSize is the number of cells on the 3x3 board.
const BoardSize = 9

// Cell is the content of a single board square.
type Cell uint8

const (
	EmptyCell Cell = iota
	PlayerX        // first player
	PlayerO        // second player
)

// ParseCell converts the wire form of a mark ("", "X", "O") into a Cell.
func ParseCell(mark string) (Cell, error) {
	switch strings.ToUpper(mark) {
	case "":
		return EmptyCell, nil
	case "X":
		return PlayerX, nil
	case "O":
		return PlayerO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}
}

func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Cell) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	cell, err := ParseCell(string(text))
	if err != nil {
		return err
	}

	*that = cell
	return nil
}

// Board is a row-major 3x3 grid: index = row*3 + column.
type Board [BoardSize]Cell

// ParseBoard reads the compact form produced by Board.String. Empty cells may be
// written as '.', '-', ' ' or '_'. X moves first, so a board must hold as many X marks
// as O marks or one more.
func ParseBoard(compact string) (Board, error) {
	var board Board

	if len(compact) != BoardSize {
		return board, fmt.Errorf("%w: want %d cells, got %d", apperror.ErrInvalidBoard, BoardSize, len(compact))
	}

	for i := range BoardSize {
		switch compact[i] {
		case 'X', 'x':
			board[i] = PlayerX
		case 'O', 'o', '0':
			board[i] = PlayerO
		case '.', '-', ' ', '_':
			board[i] = EmptyCell
		default:
			return Board{}, fmt.Errorf("%w: unexpected symbol %q at %d", apperror.ErrInvalidBoard, compact[i], i)
		}
	}

	if xCount, oCount := board.count(PlayerX), board.count(PlayerO); xCount != oCount && xCount != oCount+1 {
		return Board{}, fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidBoard, xCount, oCount)
	}

	return board, nil
}

// String returns the 9-character form of the board, '.' standing for an empty cell.
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize)

	for _, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(cell.String())
	}

	return sb.String()
}

// EmptyCells lists the indexes of empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) count(mark Cell) int {
	n := 0
	for _, cell := range that {
		if cell == mark {
			n++
		}
	}

	return n
}

// Filled counts the marked cells.
func (that Board) Filled() int {
	filled := 0
	for _, cell := range that {
		if cell != EmptyCell {
			filled++
		}
	}

	return filled
}

func (that Board) IsFull() bool {
	return that.Filled() == BoardSize
}

// SideToMove derives whose turn it is from the number of marks: X moves on an even count.
func (that Board) SideToMove() Cell {
	if that.Filled()%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

// IsValidCell reports whether index addresses a square of the board.
func IsValidCell(index int) bool {
	return index >= 0 && index < BoardSize
}
