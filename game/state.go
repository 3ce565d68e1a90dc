package game

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrNotYourTurn = errors.New("not this player's turn")
	ErrIllegalMove = errors.New("illegal move")
)

// The 8 compass and diagonal directions walked when searching for captures.
var directions = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// Scores holds the disk count of every player, indexed by Player.
type Scores [NumPlayers]int

func (s Scores) Total() int {
	return s[P1] + s[P2] + s[P3]
}

func (s Scores) Max() int {
	return max(s[P1], s[P2], s[P3])
}

// BestOpponent returns the highest score among the players other than p.
func (s Scores) BestOpponent(p Player) int {
	best := 0
	for _, q := range Players {
		if q != p && s[q] > best {
			best = s[q]
		}
	}
	return best
}

// Leaders returns every player holding the top score, in seat order.
func (s Scores) Leaders() []Player {
	top := s.Max()
	var leaders []Player
	for _, p := range Players {
		if s[p] == top {
			leaders = append(leaders, p)
		}
	}
	return leaders
}

// Game is a single three-player game: the board, whose turn it is, and the
// rules that move it forward. It is not safe for concurrent use; clone it to
// explore alternatives.
type Game struct {
	variant Variant
	opening *Board // set for games started from an arbitrary position
	first   Player
	board   *Board
	current Player
	moves   int
}

// NewGame starts a game of the given variant with P1 to move.
func NewGame(v Variant) *Game {
	g := &Game{variant: v}
	g.Reset()
	return g
}

// NewGameFromBoard starts a game from an arbitrary position. If current has no
// legal move the turn passes on as it would after a move.
func NewGameFromBoard(b *Board, current Player) *Game {
	g := &Game{
		opening: b.Clone(),
		first:   current,
	}
	g.Reset()
	return g
}

// Reset restores the opening position.
func (g *Game) Reset() {
	g.moves = 0
	if g.opening != nil {
		g.board = g.opening.Clone()
		g.current = g.first
		if !g.HasMoves(g.current) {
			g.advanceFrom(g.current)
		}
		return
	}
	g.board = g.variant.NewBoard()
	g.current = P1
}

// Clone returns an independent copy of the game.
func (g *Game) Clone() *Game {
	return &Game{
		variant: g.variant,
		opening: g.opening,
		first:   g.first,
		board:   g.board.Clone(),
		current: g.current,
		moves:   g.moves,
	}
}

func (g *Game) Variant() Variant { return g.variant }

// Board exposes the board for reading. Writing to it bypasses the rules.
func (g *Game) Board() *Board { return g.board }

// Current returns the player to move.
func (g *Game) Current() Player { return g.current }

// MovesPlayed returns the number of disks placed since the opening.
func (g *Game) MovesPlayed() int { return g.moves }

// captureRun walks from (row, col) in direction (dr, dc) and returns the length
// of the run of opponent disks that ends on one of p's disks. It returns 0 when
// the run is empty, hits an empty cell or a wall, or leaves the board.
func (b *Board) captureRun(row, col, dr, dc int, p Player) int {
	n := 0
	r, c := row+dr, col+dc
	for b.InBounds(r, c) {
		cell := b.cells[r*b.cols+c]
		switch {
		case cell.OwnedBy(p):
			return n
		case cell.IsOwned():
			n++
		default:
			return 0
		}
		r += dr
		c += dc
	}
	return 0
}

// isLegal reports whether p may place a disk at (row, col).
func (b *Board) isLegal(row, col int, p Player) bool {
	if b.At(row, col) != Empty {
		return false
	}
	for _, d := range directions {
		if b.captureRun(row, col, d[0], d[1], p) > 0 {
			return true
		}
	}
	return false
}

// place puts p's disk at (row, col) and flips every captured run. The runs are
// measured before anything changes so all directions resolve against the same
// position. It returns the number of flipped disks.
func (b *Board) place(row, col int, p Player) int {
	if b.At(row, col) == Wall {
		return 0
	}

	var runs [len(directions)]int
	for i, d := range directions {
		runs[i] = b.captureRun(row, col, d[0], d[1], p)
	}

	disk := Owned(p)
	b.cells[row*b.cols+col] = disk
	flipped := 0
	for i, d := range directions {
		r, c := row, col
		for k := 0; k < runs[i]; k++ {
			r += d[0]
			c += d[1]
			b.cells[r*b.cols+c] = disk
		}
		flipped += runs[i]
	}
	return flipped
}

// LegalMoves lists p's legal placements in row-major order.
func (g *Game) LegalMoves(p Player) []Move {
	var moves []Move
	for r := 0; r < g.board.rows; r++ {
		for c := 0; c < g.board.cols; c++ {
			if g.board.isLegal(r, c, p) {
				moves = append(moves, Move{Row: r, Col: c, Player: p})
			}
		}
	}
	return moves
}

// HasMoves reports whether p has at least one legal placement.
func (g *Game) HasMoves(p Player) bool {
	for r := 0; r < g.board.rows; r++ {
		for c := 0; c < g.board.cols; c++ {
			if g.board.isLegal(r, c, p) {
				return true
			}
		}
	}
	return false
}

// IsLegal reports whether m is a legal placement for m.Player, regardless of
// whose turn it is.
func (g *Game) IsLegal(m Move) bool {
	return m.Player.Valid() && g.board.isLegal(m.Row, m.Col, m.Player)
}

// ApplyMove places m.Player's disk, flips the captured runs and passes the turn
// to the next player who can move. It does not check legality: callers must
// take m from LegalMoves. Coordinates off the board or on a wall are ignored.
// It returns the number of flipped disks.
func (g *Game) ApplyMove(m Move) int {
	if !g.board.InBounds(m.Row, m.Col) || !m.Player.Valid() {
		return 0
	}
	flipped := g.board.place(m.Row, m.Col, m.Player)
	g.moves++
	g.advanceFrom(m.Player)
	return flipped
}

// Play is the checked form of ApplyMove for drivers taking moves from outside
// the engine.
func (g *Game) Play(m Move) (int, error) {
	if g.IsTerminal() {
		return 0, ErrGameOver
	}
	if m.Player != g.current {
		return 0, fmt.Errorf("%w: %s to move, got %s", ErrNotYourTurn, g.current, m.Player)
	}
	if !g.IsLegal(m) {
		return 0, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	return g.ApplyMove(m), nil
}

// Pass hands the turn to the next player who can move without placing a disk.
func (g *Game) Pass() {
	g.advanceFrom(g.current)
}

// advanceFrom rotates the turn to the first player after p with a legal move,
// wrapping around to p itself. When nobody can move the game is over and the
// turn simply moves to the next seat.
func (g *Game) advanceFrom(p Player) {
	next := p
	for i := 0; i < NumPlayers; i++ {
		next = next.Next()
		if g.HasMoves(next) {
			g.current = next
			return
		}
	}
	g.current = p.Next()
}

// IsTerminal reports whether no player has a legal move.
func (g *Game) IsTerminal() bool {
	for _, p := range Players {
		if g.HasMoves(p) {
			return false
		}
	}
	return true
}

// Score counts every player's disks.
func (g *Game) Score() Scores {
	var s Scores
	for _, c := range g.board.cells {
		if p, ok := c.Owner(); ok {
			s[p]++
		}
	}
	return s
}

// Winner returns the player with the most disks. Ties go to the lowest seat.
func (g *Game) Winner() Player {
	return g.Score().Leaders()[0]
}

// Leaders returns every player tied at the top score.
func (g *Game) Leaders() []Player {
	return g.Score().Leaders()
}

// Player implements State.
func (g *Game) Player() Player { return g.current }

// Moves implements State: the current player's legal moves.
func (g *Game) Moves() []Move {
	return g.LegalMoves(g.current)
}

// Apply implements State on a copy of the game.
func (g *Game) Apply(m Move) State {
	next := g.Clone()
	next.ApplyMove(m)
	return next
}

// Hash implements State. It covers the board contents and the player to move.
func (g *Game) Hash() StateHash {
	buf := make([]byte, 0, len(g.board.cells)+3)
	buf = append(buf, byte(g.board.rows), byte(g.board.cols), byte(g.current))
	for _, c := range g.board.cells {
		buf = append(buf, byte(c))
	}
	return StateHash(xxhash.Sum64(buf))
}

// Winners implements State.
func (g *Game) Winners() []Player {
	if !g.IsTerminal() {
		return nil
	}
	return g.Leaders()
}

func (g *Game) String() string {
	s := g.Score()
	return fmt.Sprintf("%sA=%d B=%d C=%d, %s to move", g.board, s[P1], s[P2], s[P3], g.current)
}
