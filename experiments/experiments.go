package experiments

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"othello3/agent"
	"othello3/config"
	"othello3/engine"
	"othello3/experiments/metrics"
	"othello3/game"

	"github.com/rs/zerolog/log"
)

// Summary aggregates a training or evaluation run.
type Summary struct {
	RunID    string        `json:"run_id,omitempty"`
	Episodes int           `json:"episodes"`
	Duration time.Duration `json:"duration"`

	// Wins counts the games each seat finished on the top score. Ties count
	// for every leader.
	Wins      [game.NumPlayers]int `json:"wins"`
	Truncated int                  `json:"truncated"`

	LearnerWins  int     `json:"learner_wins"`
	WinRate      float64 `json:"win_rate"`
	AvgReward    float64 `json:"avg_reward"`
	FinalEpsilon float64 `json:"final_epsilon"`
	TableSize    int     `json:"table_size"`
}

// SeatWinRate returns the share of games p finished on the top score.
func (s Summary) SeatWinRate(p game.Player) float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.Wins[p]) / float64(s.Episodes)
}

// Train plays cfg.Train.Episodes games with the learning seats updating the
// Q-table at cfg.TablePath. Epsilon decays after every game and the table is
// saved every cfg.Train.SaveEvery games and once more at the end.
func Train(cfg *config.Config) (Summary, error) {
	table, err := agent.LoadOrNew(cfg.TablePath, cfg.Board().NewBoard().Size())
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load q-table: %w", err)
	}
	log.Info().Msgf("loaded q-table with %d states from %s", table.Len(), cfg.TablePath)

	l, err := newLineup(cfg, seatOptions{table: table, train: true})
	if err != nil {
		return Summary{}, err
	}
	if l.agent == nil {
		return Summary{}, errors.New("training needs a qlearner seat")
	}

	save := func() error {
		if err := table.Save(cfg.TablePath); err != nil {
			return fmt.Errorf("failed to save q-table: %w", err)
		}
		log.Info().Msgf("saved q-table with %d states to %s", table.Len(), cfg.TablePath)
		return nil
	}

	summary, err := runEpisodes(cfg, "train", l, cfg.Train.Episodes, func(episode int) error {
		l.agent.DecayEpsilon()
		if cfg.Train.SaveEvery > 0 && episode%cfg.Train.SaveEvery == 0 {
			return save()
		}
		return nil
	})
	if err != nil {
		return summary, err
	}
	return summary, save()
}

// Evaluate plays episodes games with exploration off and no learning. A
// missing table evaluates an untrained agent.
func Evaluate(cfg *config.Config, episodes int) (Summary, error) {
	table, err := agent.LoadOrNew(cfg.TablePath, cfg.Board().NewBoard().Size())
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load q-table: %w", err)
	}

	l, err := newLineup(cfg, seatOptions{table: table})
	if err != nil {
		return Summary{}, err
	}
	if l.agent != nil {
		if table.Len() == 0 {
			log.Warn().Msgf("no trained q-table at %s", cfg.TablePath)
		}
		l.agent.SetEpsilon(0)
	}

	return runEpisodes(cfg, "eval", l, episodes, nil)
}

// Play runs one game with console seats reading moves from in, and prints the
// final position to out.
func Play(cfg *config.Config, in io.Reader, out io.Writer) (engine.Result, error) {
	table, err := agent.LoadOrNew(cfg.TablePath, cfg.Board().NewBoard().Size())
	if err != nil {
		return engine.Result{}, fmt.Errorf("failed to load q-table: %w", err)
	}
	l, err := newLineup(cfg, seatOptions{table: table, in: in, out: out})
	if err != nil {
		return engine.Result{}, err
	}
	if l.agent != nil {
		l.agent.SetEpsilon(0)
	}

	g := game.NewGame(cfg.Board())
	result, err := engine.LocalEngine(g, l.seats).Run()
	if err != nil {
		return result, err
	}

	fmt.Fprintf(out, "%s\n", g.Board())
	for _, p := range game.Players {
		fmt.Fprintf(out, "%s (%s): %d\n", p, l.seats[p].Name(), result.Scores[p])
	}
	fmt.Fprintf(out, "winner: %s\n", result.Winner)
	return result, nil
}

func runEpisodes(cfg *config.Config, name string, l *lineup, episodes int, afterEpisode func(episode int) error) (Summary, error) {
	var writer *metrics.Writer
	collector := metrics.NewDummyCollector()
	if cfg.MetricsDir != "" {
		var err error
		if writer, err = metrics.NewWriter(cfg.MetricsDir, name); err != nil {
			return Summary{}, err
		}
		if err := writer.WriteSetup(cfg); err != nil {
			return Summary{}, err
		}
		collector = metrics.NewCollector()
	}

	learnerSeats := l.learnerSeats()
	records := []metrics.EpisodeMetric{}
	summary := Summary{}
	totalReward := 0.0
	var window struct {
		games, wins int
		reward      float64
	}

	log.Info().Msgf("starting %s run of %d episodes with seats %v", name, episodes, cfg.Seats)
	start := time.Now()

	for episode := 1; episode <= episodes; episode++ {
		collector.Start(episode)
		g := game.NewGame(cfg.Board())
		result, err := engine.LocalEngine(g, l.seats, engine.WithCollector(collector)).Run()
		if err != nil {
			return summary, fmt.Errorf("episode %d: %w", episode, err)
		}

		reward := l.episodeReward()
		collector.AddReward(reward)
		metric := collector.Complete(result.Scores, result.Winner)
		if l.agent != nil {
			metric.Epsilon = l.agent.Epsilon()
			metric.TableSize = l.agent.Table().Len()
		}
		if writer != nil {
			records = append(records, metric)
		}

		summary.Episodes++
		for _, p := range result.Leaders {
			summary.Wins[p]++
		}
		if result.Truncated {
			summary.Truncated++
		}
		won := slices.ContainsFunc(learnerSeats, func(p game.Player) bool {
			return slices.Contains(result.Leaders, p)
		})
		if won {
			summary.LearnerWins++
			window.wins++
		}
		totalReward += reward
		window.games++
		window.reward += reward

		if afterEpisode != nil {
			if err := afterEpisode(episode); err != nil {
				return summary, err
			}
		}

		if cfg.Train.LogEvery > 0 && episode%cfg.Train.LogEvery == 0 {
			epsilon := 0.0
			if l.agent != nil {
				epsilon = l.agent.Epsilon()
			}
			log.Info().
				Int("episode", episode).
				Float64("avg_reward", window.reward/float64(window.games)).
				Float64("win_rate", float64(window.wins)/float64(window.games)).
				Float64("epsilon", epsilon).
				Msgf("%s progress", name)
			window.games, window.wins, window.reward = 0, 0, 0
		}
	}

	summary.Duration = time.Since(start)
	if summary.Episodes > 0 {
		summary.WinRate = float64(summary.LearnerWins) / float64(summary.Episodes)
		summary.AvgReward = totalReward / float64(summary.Episodes)
	}
	if l.agent != nil {
		summary.FinalEpsilon = l.agent.Epsilon()
		summary.TableSize = l.agent.Table().Len()
	}

	log.Info().Msgf("completed %s run: %d episodes in %s, seat wins %v", name, summary.Episodes, summary.Duration, summary.Wins)

	if writer != nil {
		summary.RunID = writer.RunID().String()
		if err := writer.WriteEpisodes(records); err != nil {
			return summary, err
		}
		if err := writer.WriteSummary(summary); err != nil {
			return summary, err
		}
		log.Info().Msgf("stored %s metrics in %s", name, writer.Dir())
	}
	return summary, nil
}
