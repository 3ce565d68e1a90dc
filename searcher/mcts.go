package searcher

import (
	"sync"
	"time"

	"othello3/experiments/metrics"
	"othello3/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS is a tree-parallel Monte Carlo tree search for three players. Several
// goroutines simulate on one shared tree; virtual losses keep them apart.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	cSquared   float64
	evaluate   game.Evaluate
	reuse      bool
	root       *decision
	metrics    metrics.SearchCollector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff stops rollouts after depth random moves and scores the position
// with the evaluation function instead.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithExploration(cSquared float64) Option {
	return func(m *MCTS) {
		if cSquared >= 0 {
			m.cSquared = cSquared
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithTreeReuse keeps the tree between searches and resumes from the subtree
// of the position reached, when the moves since the last search were explored.
func WithTreeReuse() Option {
	return func(m *MCTS) {
		m.reuse = true
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewSearchCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		cutoff:     MaxCutoff,
		cSquared:   CSquared,
		evaluate:   game.EvaluateLead,
		metrics:    metrics.NewDummySearchCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit count of every explored
// move along with the search metrics.
func (m *MCTS) Simulate(state game.State) (map[game.Move]float64, metrics.SearchMetric) {
	metric := m.search(state)
	policy := m.root.Policy()
	m.release()
	return policy, metric
}

// FindMove searches from state and returns the most visited move. It reports
// false when the player to move has no moves.
func (m *MCTS) FindMove(state game.State) (game.Move, bool, metrics.SearchMetric) {
	if len(state.Moves()) == 0 {
		return game.Move{}, false, metrics.SearchMetric{}
	}
	metric := m.search(state)
	move, ok := m.root.findBestMove()
	m.release()
	return move, ok, metric
}

func (m *MCTS) search(state game.State) metrics.SearchMetric {
	m.metrics.Start(state.Player(), len(state.Moves()), m.goroutines, m.cutoff)
	m.findRoot(state)

	// Run simulations to collect statistics
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	return m.metrics.Complete()
}

func (m *MCTS) release() {
	if !m.reuse {
		m.root = nil
	}
}

func (m *MCTS) iterate(state game.State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(state)
				m.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(state game.State) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state)
					m.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

// findRoot resumes from the subtree of state if the previous search reached
// it, otherwise starts a fresh tree.
func (m *MCTS) findRoot(state game.State) {
	hash := state.Hash()
	if m.reuse && m.root != nil {
		if root := m.root.find(hash, game.NumPlayers); root != nil {
			root.parent = nil
			m.root = root
			m.metrics.SetTreeReset(false)
			log.Debug().Msgf("reusing search tree with %.0f visits", root.Visits())
			return
		}
	}
	m.root = newRoot(state)
	m.metrics.SetTreeReset(true)
}

func (m *MCTS) simulate(state game.State) {
	newNode, newState := selectThenExpand(m.root, state, m.cSquared)
	reward, full := rollout(newState, m.cutoff, m.evaluate)
	if full {
		m.metrics.AddFullPlayout()
	}
	backup(newNode, reward)
}

func selectThenExpand(root *decision, state game.State, cSquared float64) (*decision, game.State) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state, cSquared)
	for selected && (child != parent) {
		parent = child
		child, state, selected = parent.SelectOrExpand(state, cSquared)
	}
	return child, state
}

// rollout plays random moves until the game ends or cutoff moves were made.
// Finished games reward the winners; cut off games are scored by evaluate from
// each player's point of view. full reports whether the game was finished.
func rollout(state game.State, cutoff int, evaluate game.Evaluate) (reward func(game.Player) float64, full bool) {
	depth := 0
	moves := state.Moves()
	// Rollout till game over or for cutoff number of moves
	for len(moves) > 0 && (depth < cutoff) {
		move := moves[rand.Intn(len(moves))] // Random rollout policy
		state = state.Apply(move)
		moves = state.Moves()
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		return rewarder(state.Winners()), true
	}

	var values [game.NumPlayers]float64
	for _, p := range game.Players {
		values[p] = evaluate(state, p)
	}
	return func(player game.Player) float64 {
		if !player.Valid() {
			return LOSS
		}
		return values[player]
	}, false
}

func backup(newNode *decision, reward func(game.Player) float64) {
	node := newNode
	for node != nil {
		node = node.Backup(reward)
	}
}
