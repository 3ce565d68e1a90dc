package player

import (
	"othello3/game"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal move.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string { return "random" }

func (r *Random) ChooseMove(g *game.Game, p game.Player) (game.Move, error) {
	moves := g.LegalMoves(p)
	if len(moves) == 0 {
		return game.Move{}, ErrNoMoves
	}
	return moves[r.rng.Intn(len(moves))], nil
}
