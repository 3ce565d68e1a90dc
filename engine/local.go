package engine

import (
	"errors"
	"fmt"
	"time"

	"othello3/experiments/metrics"
	"othello3/game"
	"othello3/meta"
	"othello3/player"

	"github.com/rs/zerolog/log"
)

// Local drives one game between three seats in this process.
type Local struct {
	game     *game.Game
	seats    [game.NumPlayers]player.Policy
	maxTurns int
	metrics  metrics.Collector
}

type Option func(*Local)

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithCollector reports every move to c.
func WithCollector(c metrics.Collector) Option {
	return func(e *Local) {
		if c != nil {
			e.metrics = c
		}
	}
}

// LocalEngine seats a policy per player, indexed by game.Player.
func LocalEngine(g *game.Game, seats [game.NumPlayers]player.Policy, options ...Option) *Local {
	for p, seat := range seats {
		if seat == nil {
			panic(fmt.Sprintf("no policy seated for %s", game.Player(p)))
		}
	}
	e := &Local{
		game:     g,
		seats:    seats,
		maxTurns: meta.MAX_TURNS,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Local) Game() *game.Game { return e.game }

// Run asks the seat to move until no player can, then lets every seat that
// learns see the final position. Moves go through the checked Play, so a seat
// returning an illegal move stops the game with an error.
func (e *Local) Run() (Result, error) {
	start := time.Now()
	g := e.game
	var result Result

	log.Debug().Msgf("%s is starting", g.Current())

	for turn := 0; !g.IsTerminal(); turn++ {
		if turn >= e.maxTurns {
			log.Warn().Msgf("stopped after %d turns without a winner", e.maxTurns)
			result.Truncated = true
			break
		}

		p := g.Current()
		seat := e.seats[p]
		move, err := seat.ChooseMove(g, p)
		if errors.Is(err, player.ErrNoMoves) {
			g.Pass()
			result.Passes++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("%s seat %s failed to move: %w", seat.Name(), p, err)
		}

		flipped, err := g.Play(move)
		if err != nil {
			return result, fmt.Errorf("%s seat %s: %w", seat.Name(), p, err)
		}
		e.metrics.AddMove(p, flipped)
		result.Moves++
	}

	for _, p := range game.Players {
		if f, ok := e.seats[p].(player.Finisher); ok {
			f.Finish(g, p)
		}
	}

	result.Scores = g.Score()
	result.Winner = g.Winner()
	result.Leaders = g.Leaders()
	result.Duration = time.Since(start)

	log.Debug().Msgf("game over after %d moves: %s wins with %v", result.Moves, result.Winner, result.Scores)
	return result, nil
}
