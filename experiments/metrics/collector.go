package metrics

import (
	"sync/atomic"
	"time"

	"othello3/game"
)

// SearchMetric describes one move search of an MCTS seat.
type SearchMetric struct {
	Player       game.Player
	Moves        int // legal moves at the root
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int
	IsTreeReset  bool
}

type SearchCollector interface {
	// Start resets the counters for a search by player among moves options.
	Start(player game.Player, moves, goroutines, cutoff int)
	SetTreeReset(value bool)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type searchCollector struct {
	player       game.Player
	moves        int
	goroutines   int
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	isTreeReset  atomic.Bool
}

func NewSearchCollector() SearchCollector {
	return &searchCollector{}
}

func (m *searchCollector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

func (m *searchCollector) Start(player game.Player, moves, goroutines, cutoff int) {
	m.player = player
	m.moves = moves
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *searchCollector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *searchCollector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *searchCollector) Complete() SearchMetric {
	return SearchMetric{
		Player:       m.player,
		Moves:        m.moves,
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

type dummySearchCollector struct{}

func NewDummySearchCollector() SearchCollector {
	return &dummySearchCollector{}
}

func (m *dummySearchCollector) Start(player game.Player, moves, goroutines, cutoff int) {}
func (m *dummySearchCollector) SetTreeReset(value bool)                                 {}
func (m *dummySearchCollector) AddFullPlayout()                                         {}
func (m *dummySearchCollector) AddEpisode()                                             {}
func (m *dummySearchCollector) Complete() SearchMetric                                  { return SearchMetric{} }
