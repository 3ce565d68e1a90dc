package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReward(t *testing.T) {
	cfg := DefaultRewardConfig()

	t.Run("opening is level", func(t *testing.T) {
		g := NewGame(Rect)
		for _, p := range Players {
			require.Equal(t, 0.0, g.Reward(p, cfg))
		}
	})

	t.Run("in progress is the lead margin", func(t *testing.T) {
		g := NewGameFromBoard(parseBoard(t, "ABC.", "A..."), P1)
		require.False(t, g.IsTerminal())
		require.Equal(t, 1.0, g.Reward(P1, cfg))
		require.Equal(t, -1.0, g.Reward(P2, cfg))
	})

	t.Run("terminal win and loss", func(t *testing.T) {
		g := NewGameFromBoard(parseBoard(t, "AABC"), P1)
		require.Equal(t, 1.0+DefaultWinBonus, g.Reward(P1, cfg))
		require.Equal(t, -1.0+DefaultLossPenalty, g.Reward(P2, cfg))
		require.Equal(t, -1.0+DefaultLossPenalty, g.Reward(P3, cfg))
	})

	t.Run("a shared top score counts as a win", func(t *testing.T) {
		g := NewGameFromBoard(parseBoard(t, "#AB"), P1)
		require.Equal(t, DefaultWinBonus, g.Reward(P1, cfg))
		require.Equal(t, DefaultWinBonus, g.Reward(P2, cfg))
		require.Equal(t, -1.0+DefaultLossPenalty, g.Reward(P3, cfg))
	})

	t.Run("custom shaping", func(t *testing.T) {
		g := NewGameFromBoard(parseBoard(t, "AABC"), P1)
		require.Equal(t, 1.0, g.Reward(P1, RewardConfig{}))
	})
}

func TestEvaluate(t *testing.T) {
	g := NewGameFromBoard(parseBoard(t, "AABC"), P1)
	require.InDelta(t, 0.5, EvaluateDiskShare(g, P1), 1e-9)
	require.InDelta(t, 0.625, EvaluateLead(g, P1), 1e-9)
	require.InDelta(t, 0.375, EvaluateLead(g, P2), 1e-9)

	opening := NewGame(Rect)
	for _, p := range Players {
		require.InDelta(t, 1.0/3, EvaluateDiskShare(opening, p), 1e-9)
		v := EvaluateMobility(opening, p)
		require.Greater(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}
