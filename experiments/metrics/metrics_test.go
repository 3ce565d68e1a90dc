package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"othello3/game"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(7)
	c.AddMove(game.P1, 2)
	c.AddMove(game.P3, 1)
	c.AddMove(game.P1, 3)
	c.AddReward(1.5)
	c.AddReward(-0.5)

	m := c.Complete(game.Scores{10, 3, 4}, game.P1)

	require.Equal(t, 7, m.Episode)
	require.Equal(t, 3, m.Moves)
	require.Equal(t, [game.NumPlayers]int{5, 0, 1}, m.Flips)
	require.Equal(t, 1.0, m.Reward)
	require.Equal(t, game.P1, m.Winner)
	require.Equal(t, game.Scores{10, 3, 4}, m.Scores)

	c.Start(8)
	require.Equal(t, 0, c.Complete(game.Scores{}, game.P2).Moves, "Start should reset the episode")
}

func TestSearchCollector(t *testing.T) {
	c := NewSearchCollector()
	c.Start(game.P2, 6, 4, 10)
	c.AddEpisode()
	c.AddEpisode()
	c.AddFullPlayout()
	c.SetTreeReset(true)

	m := c.Complete()
	require.Equal(t, game.P2, m.Player)
	require.Equal(t, 6, m.Moves)
	require.Equal(t, 4, m.Goroutines)
	require.Equal(t, 10, m.Cutoff)
	require.Equal(t, 2, m.Episodes)
	require.Equal(t, 1, m.FullPlayouts)
	require.True(t, m.IsTreeReset)

	c.Start(game.P3, 1, 4, 10)
	require.Equal(t, 0, c.Complete().Episodes, "Start should reset the counters")
}

func TestWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "train")
	require.NoError(t, err)

	require.Equal(t, filepath.Join(dir, "train"), filepath.Dir(w.Dir()))
	require.True(t, strings.HasSuffix(w.Dir(), w.RunID().String()), "Run directory should end with the run id")

	require.NoError(t, w.WriteSetup(map[string]int{"episodes": 2}))
	require.NoError(t, w.WriteSummary(map[string]float64{"win_rate": 0.5}))
	require.NoError(t, w.WriteEpisodes([]EpisodeMetric{
		{Episode: 1, Winner: game.P3, Scores: game.Scores{1, 2, 3}, Reward: 101},
		{Episode: 2, Winner: game.P1, Scores: game.Scores{5, 2, 3}, Reward: -52},
	}))
	require.NoError(t, w.WriteSearchRecords([]SearchRecord{{Config: 1, Game: 1, Step: 1}}))

	var setup map[string]int
	raw, err := os.ReadFile(filepath.Join(w.Dir(), "setup.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &setup))
	require.Equal(t, 2, setup["episodes"])

	f, err := os.Open(filepath.Join(w.Dir(), "episodes.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "Header plus one row per episode")
	require.Equal(t, "episode", rows[0][0])
	require.Equal(t, "C", rows[1][1])
	require.Equal(t, "101", rows[1][9])

	_, err = os.Stat(filepath.Join(w.Dir(), "searches.csv"))
	require.NoError(t, err)
}
