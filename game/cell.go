package game

import "fmt"

// Player identifies one of the three seats. The zero value is P1.
type Player int

const (
	P1 Player = iota
	P2
	P3
)

// NumPlayers is the fixed number of seats in a game.
const NumPlayers = 3

// Players lists the seats in turn order.
var Players = [NumPlayers]Player{P1, P2, P3}

func (p Player) Valid() bool {
	return p >= P1 && p <= P3
}

// Next returns the player seated after p.
func (p Player) Next() Player {
	return Player((int(p) + 1) % NumPlayers)
}

// Symbol returns the single-letter marker used on rendered boards.
func (p Player) Symbol() string {
	switch p {
	case P1:
		return "A"
	case P2:
		return "B"
	case P3:
		return "C"
	}
	return "?"
}

func (p Player) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Player(%d)", int(p))
	}
	return fmt.Sprintf("Player%d", int(p)+1)
}

// ParsePlayer accepts "1".."3", "A".."C" or "Player1".."Player3".
func ParsePlayer(s string) (Player, error) {
	for _, p := range Players {
		if s == p.Symbol() || s == p.String() || s == fmt.Sprint(int(p)+1) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown player %q", s)
}

// Cell is the content of one board square: empty, a permanent wall, or a disk.
type Cell uint8

const (
	Empty Cell = iota
	Wall
	ownedP1
	ownedP2
	ownedP3
)

// Owned returns the cell value for a disk belonging to p.
func Owned(p Player) Cell {
	return ownedP1 + Cell(p)
}

// Owner reports which player holds the disk in c, if any.
func (c Cell) Owner() (Player, bool) {
	if c < ownedP1 || c > ownedP3 {
		return 0, false
	}
	return Player(c - ownedP1), true
}

func (c Cell) IsOwned() bool {
	return c >= ownedP1 && c <= ownedP3
}

// OwnedBy reports whether c holds p's disk.
func (c Cell) OwnedBy(p Player) bool {
	return c == Owned(p)
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "."
	case Wall:
		return "#"
	}
	if p, ok := c.Owner(); ok {
		return p.Symbol()
	}
	return "?"
}
