package player

import (
	"errors"

	"othello3/game"
)

// ErrNoMoves is returned by a seat asked to move when it has no legal move.
var ErrNoMoves = errors.New("no legal moves")

// Policy chooses the moves of one seat.
type Policy interface {
	Name() string
	// ChooseMove returns a legal move for p in g, or ErrNoMoves.
	ChooseMove(g *game.Game, p game.Player) (game.Move, error)
}

// Finisher is implemented by seats that need to see the final position, such
// as learners completing their last update.
type Finisher interface {
	Finish(g *game.Game, p game.Player)
}
