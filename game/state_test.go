package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestOpening(t *testing.T) {
	t.Run("rect opening cluster", func(t *testing.T) {
		g := NewGame(Rect)
		b := g.Board()
		require.Equal(t, 11, b.Rows())
		require.Equal(t, 11, b.Cols())
		require.Equal(t, P1, g.Current())

		want := [3][3]Player{
			{P1, P3, P2},
			{P2, P1, P3},
			{P3, P2, P1},
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				require.Equal(t, Owned(want[i][j]), b.At(4+i, 4+j), "seed cell (%d,%d)", 4+i, 4+j)
			}
		}
		require.Equal(t, Scores{3, 3, 3}, g.Score())
		require.Equal(t, 9, b.Occupied())
	})

	t.Run("every player can move from the opening", func(t *testing.T) {
		for _, v := range Variants {
			g := NewGame(v)
			require.False(t, g.IsTerminal(), "%s opening should not be terminal", v.Name)
			for _, p := range Players {
				require.NotEmpty(t, g.LegalMoves(p), "%s: %s should have a move", v.Name, p)
			}
		}
	})

	t.Run("A can capture above the cluster", func(t *testing.T) {
		g := NewGame(Rect)
		require.True(t, g.IsLegal(Move{Row: 3, Col: 5, Player: P1}))
		require.False(t, g.IsLegal(Move{Row: 0, Col: 0, Player: P1}))
	})

	t.Run("hex seeds land on playable cells", func(t *testing.T) {
		g := NewGame(Hex)
		b := g.Board()
		require.Equal(t, 13, b.Rows())
		require.Equal(t, 19, b.Cols())
		require.Equal(t, 9, b.Occupied())
		require.Equal(t, 13*19-84, b.Playable())
	})

	t.Run("variant lookup", func(t *testing.T) {
		v, err := VariantByName("HEX")
		require.NoError(t, err)
		require.Equal(t, "hex", v.Name)
		_, err = VariantByName("triangle")
		require.Error(t, err)
	})
}

func TestCaptures(t *testing.T) {
	t.Run("single sandwich flips exactly one disk", func(t *testing.T) {
		b := parseBoard(t,
			"....C",
			".....",
			"AB...",
			".....",
		)
		g := NewGameFromBoard(b, P1)
		flipped, err := g.Play(Move{Row: 2, Col: 2, Player: P1})
		require.NoError(t, err)
		require.Equal(t, 1, flipped)
		require.Equal(t, Owned(P1), g.Board().At(2, 1))
		require.Equal(t, Owned(P3), g.Board().At(0, 4), "unrelated disk should not change")
		require.Equal(t, Scores{3, 0, 1}, g.Score())
	})

	t.Run("a run may mix both opponents", func(t *testing.T) {
		b := parseBoard(t, "ABC..")
		g := NewGameFromBoard(b, P1)
		require.True(t, g.IsLegal(Move{Row: 0, Col: 3, Player: P1}))
		flipped := g.ApplyMove(Move{Row: 0, Col: 3, Player: P1})
		require.Equal(t, 2, flipped)
		require.Equal(t, Scores{4, 0, 0}, g.Score())
	})

	t.Run("captures in several directions at once", func(t *testing.T) {
		b := parseBoard(t,
			"A...A",
			".BCB.",
			".....",
		)
		g := NewGameFromBoard(b, P1)
		flipped := g.ApplyMove(Move{Row: 2, Col: 2, Player: P1})
		// straight up through C ends on an empty cell; both diagonals reach A.
		require.Equal(t, 2, flipped)
		require.Equal(t, Owned(P1), g.Board().At(1, 1))
		require.Equal(t, Owned(P1), g.Board().At(1, 3))
		require.Equal(t, Owned(P3), g.Board().At(1, 2))
	})

	t.Run("runs must end on the mover's disk", func(t *testing.T) {
		tests := []struct {
			name string
			rows []string
			col  int
		}{
			{"open end", []string{".BB."}, 3},
			{"board edge", []string{"..BB"}, 1},
			{"wall", []string{"#BB.", "...."}, 3},
			{"own disk adjacent", []string{"..A."}, 3},
		}
		for _, tt := range tests {
			g := NewGameFromBoard(parseBoard(t, tt.rows...), P1)
			require.False(t, g.IsLegal(Move{Row: 0, Col: tt.col, Player: P1}), tt.name)
		}
	})

	t.Run("occupied and wall cells are never legal", func(t *testing.T) {
		b := parseBoard(t, "AB#A")
		g := NewGameFromBoard(b, P1)
		require.False(t, g.IsLegal(Move{Row: 0, Col: 1, Player: P1}))
		require.False(t, g.IsLegal(Move{Row: 0, Col: 2, Player: P1}))
	})
}

func TestTurnOrder(t *testing.T) {
	t.Run("player without moves is skipped", func(t *testing.T) {
		// A captures only westward, leaving C its move at the east end.
		b := parseBoard(t, "AB..CA.")
		g := NewGameFromBoard(b, P1)
		require.False(t, g.HasMoves(P2))
		require.True(t, g.HasMoves(P3))

		flipped := g.ApplyMove(Move{Row: 0, Col: 2, Player: P1})
		require.Equal(t, 1, flipped)
		require.True(t, g.Board().Equal(parseBoard(t, "AAA.CA.")))
		require.False(t, g.IsTerminal())
		require.Equal(t, P3, g.Current(), "B has no move and should be skipped")
	})

	t.Run("starting seat without moves passes on", func(t *testing.T) {
		b := parseBoard(t, "AB..CA.")
		g := NewGameFromBoard(b, P2)
		require.Equal(t, P3, g.Current())
	})

	t.Run("reset restores the opening", func(t *testing.T) {
		b := parseBoard(t, "AB..CA.")
		g := NewGameFromBoard(b, P1)
		g.ApplyMove(Move{Row: 0, Col: 2, Player: P1})
		g.Reset()
		require.True(t, g.Board().Equal(b))
		require.Equal(t, P1, g.Current())
		require.Equal(t, 0, g.MovesPlayed())
	})

	t.Run("checked play rejects bad moves", func(t *testing.T) {
		g := NewGame(Rect)
		_, err := g.Play(Move{Row: 3, Col: 5, Player: P2})
		require.ErrorIs(t, err, ErrNotYourTurn)
		_, err = g.Play(Move{Row: 0, Col: 0, Player: P1})
		require.ErrorIs(t, err, ErrIllegalMove)

		over := NewGameFromBoard(parseBoard(t, "AABC"), P1)
		_, err = over.Play(Move{Row: 0, Col: 0, Player: P1})
		require.ErrorIs(t, err, ErrGameOver)
	})
}

func TestTerminal(t *testing.T) {
	t.Run("full board", func(t *testing.T) {
		g := NewGameFromBoard(parseBoard(t, "AABC"), P1)
		require.True(t, g.IsTerminal())
		require.Equal(t, Scores{2, 1, 1}, g.Score())
		require.Equal(t, P1, g.Winner())
		require.Equal(t, []Player{P1}, g.Winners())
	})

	t.Run("empty cells but nobody can capture", func(t *testing.T) {
		g := NewGameFromBoard(parseBoard(t, "A.A."), P1)
		require.True(t, g.IsTerminal())
		require.Empty(t, g.Moves())
	})

	t.Run("ties go to the lowest seat", func(t *testing.T) {
		g := NewGameFromBoard(parseBoard(t, "#BC"), P1)
		require.Equal(t, P2, g.Winner())
		require.Equal(t, []Player{P2, P3}, g.Winners())
	})

	t.Run("in progress has no winners", func(t *testing.T) {
		require.Nil(t, NewGame(Rect).Winners())
	})
}

// playout drives a game to the end with uniformly random legal moves and
// checks the move invariants on every step.
func playout(t *testing.T, v Variant, seed uint64) *Game {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g := NewGame(v)
	for turn := 0; !g.IsTerminal(); turn++ {
		require.Less(t, turn, g.Board().Size(), "game should end before the board fills")

		mover := g.Current()
		moves := g.LegalMoves(mover)
		require.NotEmpty(t, moves, "current player of a live game must have a move")
		for _, m := range moves {
			require.Equal(t, Empty, g.Board().At(m.Row, m.Col), "legal move on an occupied cell")
		}

		before := g.Score()
		occupied := g.Board().Occupied()
		flipped := g.ApplyMove(moves[rng.Intn(len(moves))])
		after := g.Score()

		require.GreaterOrEqual(t, flipped, 1)
		require.Equal(t, occupied+1, g.Board().Occupied(), "each move adds exactly one disk")
		require.Equal(t, before[mover]+1+flipped, after[mover])
		require.Equal(t, before.Total()+1, after.Total())

		if !g.IsTerminal() {
			require.True(t, g.HasMoves(g.Current()))
			for p := mover.Next(); p != g.Current(); p = p.Next() {
				require.False(t, g.HasMoves(p), "%s was skipped with a move available", p)
			}
		}
	}
	return g
}

func TestRandomPlayouts(t *testing.T) {
	for _, v := range Variants {
		t.Run(v.Name, func(t *testing.T) {
			for seed := uint64(1); seed <= 5; seed++ {
				g := playout(t, v, seed)
				for _, p := range Players {
					require.False(t, g.HasMoves(p))
				}
				s := g.Score()
				require.Equal(t, g.Board().Occupied(), s.Total())
				require.Equal(t, s.Max(), s[g.Winner()])
			}
		})
	}
}

func TestState(t *testing.T) {
	t.Run("apply does not mutate the receiver", func(t *testing.T) {
		g := NewGame(Rect)
		before := g.Hash()
		var s State = g
		next := s.Apply(s.Moves()[0])
		require.Equal(t, before, g.Hash())
		require.NotEqual(t, before, next.Hash())
		require.Equal(t, 10, next.Score().Total())
	})

	t.Run("hash covers the player to move", func(t *testing.T) {
		b := parseBoard(t, "ABC..")
		require.Equal(t, NewGameFromBoard(b, P1).Hash(), NewGameFromBoard(b, P1).Hash())
		require.NotEqual(t, NewGameFromBoard(b, P1).Hash(), NewGameFromBoard(b, P2).Hash())
	})

	t.Run("clone is independent", func(t *testing.T) {
		g := NewGame(Rect)
		c := g.Clone()
		c.ApplyMove(c.Moves()[0])
		require.Equal(t, 9, g.Board().Occupied())
		require.Equal(t, P1, g.Current())
	})
}
