package player

import (
	"math"

	"othello3/game"
)

// Greedy plays the move that gains the most disks, the first in row-major
// order on ties. With positional weights the weight of the target cell is
// added to the gain.
type Greedy struct {
	weights [][]float64
}

func NewGreedy() *Greedy {
	return &Greedy{}
}

// NewPositionalGreedy also weighs the target cell: outline vertices are
// prized, cells next to them avoided, and otherwise cells far from the centre
// are favoured.
func NewPositionalGreedy(v game.Variant) *Greedy {
	return &Greedy{weights: game.PositionWeights(v.Shape())}
}

func (gr *Greedy) Name() string {
	if gr.weights != nil {
		return "greedy-positional"
	}
	return "greedy"
}

func (gr *Greedy) ChooseMove(g *game.Game, p game.Player) (game.Move, error) {
	moves := g.LegalMoves(p)
	if len(moves) == 0 {
		return game.Move{}, ErrNoMoves
	}

	best := moves[0]
	bestScore := math.Inf(-1)
	for _, m := range moves {
		score := float64(1 + g.Clone().ApplyMove(m))
		if m.Row < len(gr.weights) && m.Col < len(gr.weights[m.Row]) {
			score += gr.weights[m.Row][m.Col]
		}
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	return best, nil
}
