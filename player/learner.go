package player

import (
	"othello3/agent"
	"othello3/game"
)

// Learner seats a Q-learning agent. Each decision completes the update for the
// previous one: the reward is the position's value for the seat when its turn
// comes back, after the opponents have replied. Finish closes the episode with
// a terminal update.
type Learner struct {
	agent   *agent.QLearner
	reward  game.RewardConfig
	train   bool
	pending bool
	key     game.StateKey
	action  int

	episodeReward float64
	lastReward    float64
}

// NewLearner seats l. With train false the table is only read.
func NewLearner(l *agent.QLearner, reward game.RewardConfig, train bool) *Learner {
	return &Learner{agent: l, reward: reward, train: train}
}

func (l *Learner) Name() string { return "qlearner" }

func (l *Learner) Agent() *agent.QLearner { return l.agent }

func (l *Learner) ChooseMove(g *game.Game, p game.Player) (game.Move, error) {
	moves := g.LegalMoves(p)
	if len(moves) == 0 {
		return game.Move{}, ErrNoMoves
	}

	key := g.EncodeState(p)
	l.complete(g, p, key, false)

	valid := make([]int, len(moves))
	for i, m := range moves {
		valid[i] = g.Action(m)
	}
	l.key = key
	l.action = l.agent.SelectAction(key, valid)
	l.pending = true
	return g.MoveFor(l.action, p), nil
}

// Finish makes the terminal update and resets the seat for the next episode.
func (l *Learner) Finish(g *game.Game, p game.Player) {
	l.complete(g, p, g.EncodeState(p), true)
	l.lastReward = l.episodeReward
	l.episodeReward = 0
}

func (l *Learner) complete(g *game.Game, p game.Player, next game.StateKey, done bool) {
	if !l.pending {
		return
	}
	l.pending = false
	r := g.Reward(p, l.reward)
	l.episodeReward += r
	if l.train {
		l.agent.Update(l.key, l.action, r, next, done)
	}
}

// EpisodeReward returns the rewards collected in the last finished episode.
func (l *Learner) EpisodeReward() float64 { return l.lastReward }
