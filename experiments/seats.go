package experiments

import (
	"fmt"
	"io"
	"time"

	"othello3/agent"
	"othello3/config"
	"othello3/game"
	"othello3/player"
	"othello3/searcher"
)

// lineup holds the three seats of a run. Learning seats share one agent.
type lineup struct {
	seats    [game.NumPlayers]player.Policy
	learners map[game.Player]*player.Learner
	agent    *agent.QLearner
}

// learnerSeats lists the seats played by the Q-learner, in seat order.
func (l *lineup) learnerSeats() []game.Player {
	seats := []game.Player{}
	for _, p := range game.Players {
		if _, ok := l.learners[p]; ok {
			seats = append(seats, p)
		}
	}
	return seats
}

// episodeReward sums what the learning seats collected in the last episode.
func (l *lineup) episodeReward() float64 {
	total := 0.0
	for _, learner := range l.learners {
		total += learner.EpisodeReward()
	}
	return total
}

// seatOptions carries what the seat factory needs beyond the configuration.
type seatOptions struct {
	table *agent.Table
	train bool
	in    io.Reader
	out   io.Writer
}

func newLineup(cfg *config.Config, opts seatOptions) (*lineup, error) {
	variant := cfg.Board()
	seed := cfg.Train.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	l := &lineup{learners: map[game.Player]*player.Learner{}}
	var console *player.Console // seats at one terminal share its input
	for i, kind := range cfg.Seats {
		p := game.Player(i)
		switch kind {
		case config.SeatRandom:
			l.seats[p] = player.NewRandom(seed + uint64(i) + 1)
		case config.SeatGreedy:
			if cfg.Greedy.Positional {
				l.seats[p] = player.NewPositionalGreedy(variant)
			} else {
				l.seats[p] = player.NewGreedy()
			}
		case config.SeatLearner:
			if l.agent == nil {
				l.agent = newAgent(cfg, variant, opts.table, seed)
			}
			learner := player.NewLearner(l.agent, cfg.Reward, opts.train)
			l.learners[p] = learner
			l.seats[p] = learner
		case config.SeatMCTS:
			l.seats[p] = newSearcher(cfg.Search, seed+uint64(i)+1)
		case config.SeatConsole:
			if opts.in == nil || opts.out == nil {
				return nil, fmt.Errorf("seat %s needs a console", p)
			}
			if console == nil {
				console = player.NewConsole(opts.in, opts.out)
			}
			l.seats[p] = console
		default:
			return nil, fmt.Errorf("unknown seat %q for %s", kind, p)
		}
	}
	return l, nil
}

func newAgent(cfg *config.Config, variant game.Variant, table *agent.Table, seed uint64) *agent.QLearner {
	options := []agent.Option{
		agent.WithEpsilon(cfg.Agent.Epsilon),
		agent.WithDecayRate(cfg.Agent.DecayRate),
		agent.WithMinEpsilon(cfg.Agent.MinEpsilon),
		agent.WithGamma(cfg.Agent.Gamma),
		agent.WithTable(table),
		agent.WithSeed(seed),
	}
	if cfg.Agent.LearningRate > 0 {
		options = append(options, agent.WithLearningRate(agent.Fixed(cfg.Agent.LearningRate)))
	}
	return agent.New(variant.NewBoard().Size(), options...)
}

var evaluations = map[string]game.Evaluate{
	config.EvalLead:     game.EvaluateLead,
	config.EvalDisks:    game.EvaluateDiskShare,
	config.EvalMobility: game.EvaluateMobility,
}

func createMCTS(cfg config.SearchConfig, options ...searcher.Option) *searcher.MCTS {
	if cfg.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(cfg.Episodes))
	}
	if cfg.Duration > 0 {
		options = append(options, searcher.WithDuration(cfg.Duration))
	}
	if cfg.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(cfg.Cutoff))
	}
	if cfg.Exploration > 0 {
		options = append(options, searcher.WithExploration(cfg.Exploration))
	}
	if evaluate, ok := evaluations[cfg.Evaluation]; ok {
		options = append(options, searcher.WithEvaluationFn(evaluate))
	}
	if cfg.TreeReuse {
		options = append(options, searcher.WithTreeReuse())
	}
	return searcher.NewMCTS(cfg.Goroutines, options...)
}

func newSearcher(cfg config.SearchConfig, seed uint64) *player.Searcher {
	mcts := createMCTS(cfg, searcher.WithMetrics())
	if cfg.Temperature > 0 {
		return player.NewSamplingSearcher(mcts, cfg.Temperature, seed)
	}
	return player.NewSearcher(mcts)
}
