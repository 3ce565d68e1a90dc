package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"othello3/config"
	"othello3/experiments"
	"othello3/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "train", "One of train, eval, play, bench or init. play seats you as A unless a seat is already console")
	cfgPath := flag.String("config", "", "Config file, defaults to othello3/config.yaml in the XDG config dirs")
	episodes := flag.Int("episodes", 0, "Episodes to train or evaluate, overrides the config")
	games := flag.Int("games", 3, "Games per configuration in bench mode")
	goroutines := flag.String("goroutines", "", "Comma separated searcher widths in bench mode")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	switch *mode {
	case "train":
		if *episodes > 0 {
			cfg.Train.Episodes = *episodes
		}
		summary, err := experiments.Train(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("training failed")
		}
		log.Info().Msgf("win rate %.3f, avg reward %.2f, %d states", summary.WinRate, summary.AvgReward, summary.TableSize)

	case "eval":
		n := *episodes
		if n <= 0 {
			n = cfg.Train.LogEvery
		}
		summary, err := experiments.Evaluate(cfg, n)
		if err != nil {
			log.Fatal().Err(err).Msg("evaluation failed")
		}
		for i, seat := range cfg.Seats {
			log.Info().Msgf("seat %d (%s) win rate %.3f", i+1, seat, summary.SeatWinRate(game.Player(i)))
		}

	case "play":
		if cfg.EnsureConsole() {
			log.Info().Msgf("no console seat configured, playing seat A against %v", cfg.Seats[1:])
		}
		if _, err := experiments.Play(cfg, os.Stdin, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("game aborted")
		}

	case "bench":
		widths, err := parseInts(*goroutines)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -goroutines")
		}
		if _, err := experiments.RunThroughput(cfg, widths, *games); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}

	case "init":
		path, err := cfg.Save(*cfgPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to write config")
		}
		fmt.Println(path)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func parseInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	values := []int{}
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		values = append(values, n)
	}
	return values, nil
}
