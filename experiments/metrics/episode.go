package metrics

import (
	"time"

	"othello3/game"
)

// EpisodeMetric describes one game of a training or evaluation run.
type EpisodeMetric struct {
	Episode   int
	Winner    game.Player
	Scores    game.Scores
	Moves     int
	Flips     [game.NumPlayers]int
	Reward    float64 // collected by the learning seat
	Epsilon   float64
	TableSize int
	Duration  time.Duration
}

type Collector interface {
	Start(episode int)
	AddMove(player game.Player, flipped int)
	AddReward(reward float64)
	Complete(scores game.Scores, winner game.Player) EpisodeMetric
}

type collector struct {
	metric    EpisodeMetric
	startTime time.Time
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(episode int) {
	c.metric = EpisodeMetric{Episode: episode}
	c.startTime = time.Now()
}

func (c *collector) AddMove(player game.Player, flipped int) {
	c.metric.Moves++
	if player.Valid() {
		c.metric.Flips[player] += flipped
	}
}

func (c *collector) AddReward(reward float64) {
	c.metric.Reward += reward
}

func (c *collector) Complete(scores game.Scores, winner game.Player) EpisodeMetric {
	c.metric.Scores = scores
	c.metric.Winner = winner
	c.metric.Duration = time.Since(c.startTime)
	return c.metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(episode int)                       {}
func (c *dummyCollector) AddMove(player game.Player, flipped int) {}
func (c *dummyCollector) AddReward(reward float64)                {}
func (c *dummyCollector) Complete(scores game.Scores, winner game.Player) EpisodeMetric {
	return EpisodeMetric{}
}
