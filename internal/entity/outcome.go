package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

// Outcome is the state of a board as seen by the rules. It is always derived from a
// Board; a Game only keeps the value computed after its last move.
type Outcome uint8

const (
	InProgress Outcome = iota
	FirstWins
	SecondWins
	Tie
)

const (
	outcomeInProgress = "in_progress"
	outcomeFirstWins  = "x_won"
	outcomeSecondWins = "o_won"
	outcomeTie        = "tie"
)

func (that Outcome) String() string {
	switch that {
	case FirstWins:
		return outcomeFirstWins
	case SecondWins:
		return outcomeSecondWins
	case Tie:
		return outcomeTie
	default:
		return outcomeInProgress
	}
}

func (that Outcome) IsTerminal() bool {
	return that != InProgress
}

// Winner returns the mark that won, or EmptyCell for a tie or an unfinished game.
func (that Outcome) Winner() Cell {
	switch that {
	case FirstWins:
		return PlayerX
	case SecondWins:
		return PlayerO
	default:
		return EmptyCell
	}
}

func (that Outcome) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case outcomeInProgress, "":
		*that = InProgress
	case outcomeFirstWins:
		*that = FirstWins
	case outcomeSecondWins:
		*that = SecondWins
	case outcomeTie:
		*that = Tie
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownOutcome, text)
	}

	return nil
}
