package player

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"othello3/agent"
	"othello3/game"
	"othello3/searcher"

	"github.com/stretchr/testify/require"
)

func row(cells ...game.Cell) [][]game.Cell {
	return [][]game.Cell{cells}
}

var (
	a = game.Owned(game.P1)
	b = game.Owned(game.P2)
	c = game.Owned(game.P3)
	e = game.Empty
)

func TestRandom(t *testing.T) {
	g := game.NewGame(game.Rect)
	r := NewRandom(1)
	for i := 0; i < 20; i++ {
		m, err := r.ChooseMove(g, game.P1)
		require.NoError(t, err)
		require.True(t, g.IsLegal(m))
	}

	stuck := game.NewGameFromBoard(game.NewBoard(row(a, e)), game.P1)
	_, err := r.ChooseMove(stuck, game.P1)
	require.ErrorIs(t, err, ErrNoMoves)
}

func TestGreedy(t *testing.T) {
	t.Run("maximises own disk gain", func(t *testing.T) {
		// (0,0) flips two B disks, (0,5) flips one C disk.
		g := game.NewGameFromBoard(game.NewBoard(row(e, b, b, a, c, e)), game.P1)
		require.Len(t, g.LegalMoves(game.P1), 2)

		m, err := NewGreedy().ChooseMove(g, game.P1)
		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 0, Col: 0, Player: game.P1}, m)
	})

	t.Run("ties go to the first move in row-major order", func(t *testing.T) {
		g := game.NewGameFromBoard(game.NewBoard(row(e, b, a, c, e)), game.P1)
		require.Len(t, g.LegalMoves(game.P1), 2)

		m, err := NewGreedy().ChooseMove(g, game.P1)
		require.NoError(t, err)
		require.Equal(t, 0, m.Col)
	})

	t.Run("positional greedy takes a vertex over a bigger capture", func(t *testing.T) {
		strip := game.Variant{Name: "strip", Shape: func() [][]game.Cell { return game.RectShape(1, 7) }}
		// (0,0) flips one B disk, (0,3) flips two C disks.
		g := game.NewGameFromBoard(game.NewBoard(row(e, b, a, e, c, c, a)), game.P1)

		m, err := NewGreedy().ChooseMove(g, game.P1)
		require.NoError(t, err)
		require.Equal(t, 3, m.Col)

		m, err = NewPositionalGreedy(strip).ChooseMove(g, game.P1)
		require.NoError(t, err)
		require.Equal(t, 0, m.Col)
	})

	t.Run("positional greedy plays legal moves", func(t *testing.T) {
		g := game.NewGame(game.Hex)
		m, err := NewPositionalGreedy(game.Hex).ChooseMove(g, game.P1)
		require.NoError(t, err)
		require.True(t, g.IsLegal(m))
		require.Equal(t, "greedy-positional", NewPositionalGreedy(game.Hex).Name())
	})
}

func TestLearner(t *testing.T) {
	t.Run("plays legal moves and learns from the final position", func(t *testing.T) {
		q := agent.New(game.Rect.NewBoard().Size(), agent.WithSeed(3))
		learner := NewLearner(q, game.DefaultRewardConfig(), true)
		seats := [game.NumPlayers]Policy{NewRandom(1), NewGreedy(), learner}

		g := game.NewGame(game.Rect)
		decisions := 0
		for !g.IsTerminal() {
			p := g.Current()
			m, err := seats[p].ChooseMove(g, p)
			require.NoError(t, err)
			if p == game.P3 {
				decisions++
			}
			_, err = g.Play(m)
			require.NoError(t, err)
		}
		learner.Finish(g, game.P3)

		require.Greater(t, decisions, 0)
		require.GreaterOrEqual(t, q.Table().Len(), decisions, "Every decision state should have a row")

		updated := 0
		for _, k := range q.Table().Keys() {
			for action := 0; action < q.Table().Actions(); action++ {
				updated += int(q.Table().Visits(k, action))
			}
		}
		require.Equal(t, decisions, updated, "Each decision should be updated exactly once")
	})

	t.Run("evaluation does not learn", func(t *testing.T) {
		q := agent.New(game.Rect.NewBoard().Size(), agent.WithEpsilon(0))
		learner := NewLearner(q, game.DefaultRewardConfig(), false)

		g := game.NewGame(game.Rect)
		m, err := learner.ChooseMove(g, game.P1)
		require.NoError(t, err)
		g.ApplyMove(m)
		learner.Finish(g, game.P1)

		for _, k := range q.Table().Keys() {
			for action := 0; action < q.Table().Actions(); action++ {
				require.Zero(t, q.Table().Value(k, action))
			}
		}
	})

	t.Run("greedy learner is deterministic", func(t *testing.T) {
		q := agent.New(game.Rect.NewBoard().Size(), agent.WithEpsilon(0))
		learner := NewLearner(q, game.DefaultRewardConfig(), false)
		g := game.NewGame(game.Rect)

		first, err := learner.ChooseMove(g, game.P1)
		require.NoError(t, err)
		second, err := learner.ChooseMove(g, game.P1)
		require.NoError(t, err)
		require.Equal(t, first, second)
		require.Equal(t, g.LegalMoves(game.P1)[0], first, "An empty table ties every move")
	})
}

func TestSearcher(t *testing.T) {
	g := game.NewGame(game.Rect)

	m, err := NewSearcher(searcher.NewMCTS(2, searcher.WithEpisodes(50), searcher.WithCutoff(5))).ChooseMove(g, game.P1)
	require.NoError(t, err)
	require.True(t, g.IsLegal(m))

	sampling := NewSamplingSearcher(searcher.NewMCTS(1, searcher.WithEpisodes(50), searcher.WithCutoff(5), searcher.WithMetrics()), 1, 9)
	m, err = sampling.ChooseMove(g, game.P1)
	require.NoError(t, err)
	require.True(t, g.IsLegal(m))
	require.Equal(t, 50, sampling.LastMetric().Episodes)

	_, err = NewSearcher(searcher.NewMCTS(1, searcher.WithEpisodes(5))).ChooseMove(g, game.P2)
	require.ErrorIs(t, err, ErrNoMoves, "Only the player to move can search")
}

func TestAdjustTemperature(t *testing.T) {
	visits := map[game.Move]float64{
		{Row: 1, Col: 0}: 1,
		{Row: 0, Col: 2}: 3,
	}
	policy := adjustTemperature(visits, 1)
	require.Len(t, policy, 2)
	require.Equal(t, game.Move{Row: 0, Col: 2}, policy[0].move, "Moves should be in row-major order")
	require.InDelta(t, 0.75, policy[0].prob, 1e-9)
	require.InDelta(t, 0.25, policy[1].prob, 1e-9)

	sharp := adjustTemperature(visits, 0.5)
	require.InDelta(t, 0.9, sharp[0].prob, 1e-9, "Lower temperature sharpens the policy")
}

func TestConsole(t *testing.T) {
	t.Run("re-prompts until a legal move", func(t *testing.T) {
		g := game.NewGame(game.Rect)
		var out bytes.Buffer
		console := NewConsole(strings.NewReader("nonsense\n0,0\n3 5\n"), &out)

		m, err := console.ChooseMove(g, game.P1)

		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 3, Col: 5, Player: game.P1}, m)
		require.Contains(t, out.String(), "expected row,col")
		require.Contains(t, out.String(), "0,0 is not a legal move")
	})

	t.Run("closed input", func(t *testing.T) {
		g := game.NewGame(game.Rect)
		_, err := NewConsole(strings.NewReader(""), io.Discard).ChooseMove(g, game.P1)
		require.ErrorIs(t, err, io.EOF)
	})
}
