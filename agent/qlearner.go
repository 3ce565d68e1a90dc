package agent

import (
	"fmt"
	"time"

	"othello3/game"
	"othello3/utils"

	"golang.org/x/exp/rand"
)

const (
	DefaultEpsilon   = 1.0
	DefaultDecayRate = 0.99996
	DefaultGamma     = 0.9
)

type Option func(*QLearner)

// QLearner is a tabular Q-learning agent with epsilon-greedy exploration.
type QLearner struct {
	table      *Table
	epsilon    float64
	decayRate  float64
	minEpsilon float64
	gamma      float64
	rate       LearningRate
	rng        *rand.Rand
}

func WithEpsilon(epsilon float64) Option {
	return func(l *QLearner) {
		if epsilon >= 0 && epsilon <= 1 {
			l.epsilon = epsilon
		}
	}
}

func WithDecayRate(rate float64) Option {
	return func(l *QLearner) {
		if rate > 0 && rate <= 1 {
			l.decayRate = rate
		}
	}
}

// WithMinEpsilon stops epsilon decaying below floor. The default floor is 0.
func WithMinEpsilon(floor float64) Option {
	return func(l *QLearner) {
		if floor >= 0 && floor <= 1 {
			l.minEpsilon = floor
		}
	}
}

func WithGamma(gamma float64) Option {
	return func(l *QLearner) {
		if gamma >= 0 && gamma <= 1 {
			l.gamma = gamma
		}
	}
}

func WithLearningRate(rate LearningRate) Option {
	return func(l *QLearner) {
		if rate != nil {
			l.rate = rate
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(l *QLearner) {
		l.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTable continues learning from an existing table, e.g. one loaded from
// disk.
func WithTable(t *Table) Option {
	return func(l *QLearner) {
		if t != nil {
			l.table = t
		}
	}
}

// New creates a learner for a board of actions cells.
func New(actions int, options ...Option) *QLearner {
	l := &QLearner{ // Default values
		epsilon:   DefaultEpsilon,
		decayRate: DefaultDecayRate,
		gamma:     DefaultGamma,
		rate:      VisitDecay,
	}
	for _, option := range options {
		option(l)
	}
	if l.table == nil {
		l.table = NewTable(actions)
	}
	if l.table.Actions() != actions {
		panic(fmt.Sprintf("table has %d actions, learner needs %d", l.table.Actions(), actions))
	}
	if l.rng == nil {
		l.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return l
}

// SelectAction picks an action for the state among valid, which must not be
// empty. With probability epsilon it explores uniformly; otherwise it takes the
// valid action of highest value, the lowest index on ties.
func (l *QLearner) SelectAction(key game.StateKey, valid []int) int {
	if len(valid) == 0 {
		panic("cannot select an action: no valid actions")
	}
	row := l.table.Row(key)
	if l.rng.Float64() < l.epsilon {
		return valid[l.rng.Intn(len(valid))]
	}
	return utils.ArgMax(row, valid)
}

// Update moves Q(key, action) toward reward, plus the discounted best value of
// nextKey unless the episode is done.
func (l *QLearner) Update(key game.StateKey, action int, reward float64, nextKey game.StateKey, done bool) {
	row := l.table.Row(key)
	visits := l.table.visit(key, action)

	target := reward
	if !done {
		target += l.gamma * utils.Max(l.table.Row(nextKey))
	}
	row[action] += l.rate(visits) * (target - row[action])
}

// DecayEpsilon shrinks the exploration rate once, typically after an episode.
func (l *QLearner) DecayEpsilon() {
	l.epsilon = max(l.epsilon*l.decayRate, l.minEpsilon)
}

func (l *QLearner) Epsilon() float64 { return l.epsilon }

// SetEpsilon overrides the exploration rate, e.g. 0 for evaluation.
func (l *QLearner) SetEpsilon(epsilon float64) { l.epsilon = epsilon }

func (l *QLearner) Gamma() float64 { return l.gamma }

func (l *QLearner) Table() *Table { return l.table }
