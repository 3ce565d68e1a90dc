package game

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Observer-relative cell codes produced by EncodeGrid.
const (
	CodeEmpty    uint8 = 0
	CodeOwn      uint8 = 1
	CodeOpponent uint8 = 2
	CodeWall     uint8 = 3
)

// StateKey identifies a board position as seen by one player. It is the
// SHA-256 digest of the board dimensions and the observer-relative grid.
type StateKey [sha256.Size]byte

func (k StateKey) String() string {
	return hex.EncodeToString(k[:])
}

// EncodeGrid returns the board in row-major order with each cell recoded
// relative to observer: own disks, any opponent's disks, empty and wall.
// Positions that differ only in which opponent owns which disk encode
// identically.
func (b *Board) EncodeGrid(observer Player) []uint8 {
	grid := make([]uint8, len(b.cells))
	for i, c := range b.cells {
		switch {
		case c == Empty:
			grid[i] = CodeEmpty
		case c == Wall:
			grid[i] = CodeWall
		case c.OwnedBy(observer):
			grid[i] = CodeOwn
		default:
			grid[i] = CodeOpponent
		}
	}
	return grid
}

// EncodeState digests the board as seen by observer. Identical boards always
// produce identical keys; distinct boards collide only if SHA-256 does.
func (b *Board) EncodeState(observer Player) StateKey {
	h := sha256.New()
	var dims [4]byte
	binary.BigEndian.PutUint16(dims[0:2], uint16(b.rows))
	binary.BigEndian.PutUint16(dims[2:4], uint16(b.cols))
	h.Write(dims[:])
	h.Write(b.EncodeGrid(observer))

	var key StateKey
	h.Sum(key[:0])
	return key
}

// EncodeState digests the current position as seen by observer.
func (g *Game) EncodeState(observer Player) StateKey {
	return g.board.EncodeState(observer)
}

// Action converts a move to its action index.
func (g *Game) Action(m Move) int {
	return g.board.Index(m.Row, m.Col)
}

// MoveFor converts an action index back to a move for p.
func (g *Game) MoveFor(action int, p Player) Move {
	row, col := g.board.Coord(action)
	return Move{Row: row, Col: col, Player: p}
}
