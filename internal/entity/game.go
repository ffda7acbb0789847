package entity

// Game is a single human-versus-engine session.
type Game struct {
	ID        string  `json:"id"`
	Board     Board   `json:"board"`
	Outcome   Outcome `json:"outcome"`
	HumanMark Cell    `json:"human_mark"`
	BotMark   Cell    `json:"bot_mark"`
}

// NewGame creates a game on an empty board. The engine takes the mark the human did not.
func NewGame(id string, humanMark Cell) *Game {
	if !humanMark.IsPlayer() {
		humanMark = PlayerX
	}

	return &Game{
		ID:        id,
		Board:     Board{},
		Outcome:   InProgress,
		HumanMark: humanMark,
		BotMark:   humanMark.Opponent(),
	}
}

// Turn returns the mark expected to move next, or EmptyCell once the game is over.
func (that *Game) Turn() Cell {
	if that.IsFinished() {
		return EmptyCell
	}
	return that.Board.SideToMove()
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsTerminal()
}

func (that *Game) IsBotTurn() bool {
	return that.Turn() == that.BotMark
}

func (that *Game) IsHumanTurn() bool {
	return that.Turn() == that.HumanMark
}

// Reset wipes the board. Marks stay with the same players.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Outcome = InProgress
}
