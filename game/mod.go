package game

import "fmt"

// Move places a disk for Player at (Row, Col).
type Move struct {
	Row    int
	Col    int
	Player Player
}

func (m Move) String() string {
	return fmt.Sprintf("%s@(%d,%d)", m.Player.Symbol(), m.Row, m.Col)
}

type StateHash uint64

// State is the view of a game used by search. Apply never mutates the
// receiver; it returns the successor state.
type State interface {
	Player() Player
	Moves() []Move
	Apply(Move) State
	Hash() StateHash
	Score() Scores
	// Winners is empty while the game is in progress and holds every player
	// tied at the top score once it is over.
	Winners() []Player
}

// Evaluates a non-terminal state to a value in [0, 1] expressing how
// favourable it is for player.
type Evaluate func(s State, player Player) float64
