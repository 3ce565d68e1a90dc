package engine

import (
	"time"

	"othello3/game"
)

// Result summarises one finished game.
type Result struct {
	Scores    game.Scores
	Winner    game.Player
	Leaders   []game.Player
	Moves     int
	Passes    int
	Truncated bool // stopped by the turn limit before the game was over
	Duration  time.Duration
}

type Engine interface {
	// Run plays a game till no player can move or the turn limit is reached
	Run() (Result, error)
}
