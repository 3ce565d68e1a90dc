package searcher

import (
	"math"
	"slices"

	"othello3/game"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

// Rewards estimate the chance of winning. A win shared by tied leaders is
// split between them.
const WIN = 1.0
const LOSS = 0.0

// MaxCutoff plays every rollout out to the end of the game.
const MaxCutoff = math.MaxInt

// rewarder credits each player with its share of the win.
func rewarder(winners []game.Player) func(game.Player) float64 {
	return func(player game.Player) float64 {
		if slices.Contains(winners, player) {
			return WIN / float64(len(winners))
		}
		return LOSS
	}
}
