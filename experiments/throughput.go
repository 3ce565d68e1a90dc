package experiments

import (
	"time"

	"othello3/config"
	"othello3/engine"
	"othello3/experiments/metrics"
	"othello3/game"
	"othello3/player"

	"github.com/rs/zerolog/log"
)

// DefaultGoroutines are the searcher widths compared by RunThroughput.
var DefaultGoroutines = []int{1, 2, 4, 8, 16, 32}

// recordingSeat reports the metrics of every search its MCTS runs.
type recordingSeat struct {
	*player.Searcher
	record func(metrics.SearchMetric)
}

func (r recordingSeat) ChooseMove(g *game.Game, p game.Player) (game.Move, error) {
	m, err := r.Searcher.ChooseMove(g, p)
	if err == nil {
		r.record(r.LastMetric())
	}
	return m, err
}

// RunThroughput seats three identical searchers per configuration, one
// configuration per goroutine count, and records every move search. With the
// same search budget everywhere the episodes per search show how well the
// tree parallelises.
func RunThroughput(cfg *config.Config, goroutines []int, games int) ([]metrics.SearchRecord, error) {
	if len(goroutines) == 0 {
		goroutines = DefaultGoroutines
	}

	configs := make([]config.SearchConfig, len(goroutines))
	for i, n := range goroutines {
		configs[i] = cfg.Search
		configs[i].Goroutines = n
	}

	records := []metrics.SearchRecord{}
	count := 0

	log.Info().Msgf("starting throughput experiment over %d configs...", len(configs))
	for ci, sc := range configs {
		log.Info().Msgf("starting config %d of %d: %+v", ci+1, len(configs), sc)

		for i := 0; i < games; i++ {
			count++
			gameID, step := count, 0
			record := func(m metrics.SearchMetric) {
				step++
				records = append(records, metrics.SearchRecord{Config: ci, Game: gameID, Step: step, SearchMetric: m})
			}

			var seats [game.NumPlayers]player.Policy
			for _, p := range game.Players {
				seed := cfg.Train.Seed + uint64(count*game.NumPlayers) + uint64(p)
				seats[p] = recordingSeat{Searcher: newSearcher(sc, seed), record: record}
			}

			result, err := engine.LocalEngine(game.NewGame(cfg.Board()), seats).Run()
			if err != nil {
				return records, err
			}
			log.Info().Msgf("completed config %d game %d of %d with winner %s after %d moves",
				ci+1, i+1, games, result.Winner, result.Moves)
		}
	}
	log.Info().Msg("completed throughput experiment")

	for ci := range configs {
		episodes, elapsed := 0, time.Duration(0)
		for _, r := range records {
			if r.Config == ci {
				episodes += r.Episodes
				elapsed += r.Duration
			}
		}
		if elapsed > 0 {
			log.Info().Msgf("%d goroutines: %.0f episodes/s", configs[ci].Goroutines, float64(episodes)/elapsed.Seconds())
		}
	}

	if cfg.MetricsDir == "" {
		return records, nil
	}
	writer, err := metrics.NewWriter(cfg.MetricsDir, "throughput")
	if err != nil {
		return records, err
	}
	if err := writer.WriteSetup(configs); err != nil {
		return records, err
	}
	if err := writer.WriteSearchRecords(records); err != nil {
		return records, err
	}
	log.Info().Msgf("stored search records in %s", writer.Dir())
	return records, nil
}
