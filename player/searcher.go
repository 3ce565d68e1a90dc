package player

import (
	"cmp"
	"math"
	"slices"

	"othello3/experiments/metrics"
	"othello3/game"
	"othello3/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Searcher seats an MCTS. At temperature 0 it plays the most visited move;
// otherwise it samples moves in proportion to visits^(1/temperature).
type Searcher struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
	last        metrics.SearchMetric
}

func NewSearcher(mcts *searcher.MCTS) *Searcher {
	return &Searcher{mcts: mcts}
}

func NewSamplingSearcher(mcts *searcher.MCTS, temperature float64, seed uint64) *Searcher {
	return &Searcher{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (s *Searcher) Name() string { return "mcts" }

func (s *Searcher) ChooseMove(g *game.Game, p game.Player) (game.Move, error) {
	if p != g.Current() || !g.HasMoves(p) {
		return game.Move{}, ErrNoMoves
	}

	if s.temperature <= 0 {
		move, ok, metric := s.mcts.FindMove(g)
		s.last = metric
		if !ok {
			return game.Move{}, ErrNoMoves
		}
		log.Debug().Msgf("%s searched %d episodes in %s", p, metric.Episodes, metric.Duration)
		return move, nil
	}

	visits, metric := s.mcts.Simulate(g)
	s.last = metric
	if len(visits) == 0 {
		return game.Move{}, ErrNoMoves
	}
	return sample(adjustTemperature(visits, s.temperature), s.rng), nil
}

// LastMetric returns the metrics of the most recent search.
func (s *Searcher) LastMetric() metrics.SearchMetric { return s.last }

type weightedMove struct {
	move game.Move
	prob float64
}

func adjustTemperature(visits map[game.Move]float64, temperature float64) []weightedMove {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]weightedMove, 0, len(visits))
	for move, visit := range visits {
		prob := math.Pow(visit, exponent)
		sum += prob
		policy = append(policy, weightedMove{move: move, prob: prob})
	}
	// Row-major order so a seeded sampler is reproducible
	slices.SortFunc(policy, func(a, b weightedMove) int {
		return cmp.Or(cmp.Compare(a.move.Row, b.move.Row), cmp.Compare(a.move.Col, b.move.Col))
	})
	// Normalize
	for i := range policy {
		policy[i].prob /= sum
	}
	return policy
}

func sample(policy []weightedMove, rng *rand.Rand) game.Move {
	sampled := rng.Float64()
	cumulative := 0.0
	for _, wm := range policy {
		cumulative += wm.prob
		if sampled < cumulative {
			return wm.move
		}
	}
	return policy[len(policy)-1].move // Fallback in case of rounding errors
}
