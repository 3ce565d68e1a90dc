package game

import (
	"fmt"
	"strings"
)

// Variant describes a board geometry and where the opening cluster sits.
type Variant struct {
	Name string
	// Shape builds the empty occupancy mask.
	Shape func() [][]Cell
	// SeedRow and SeedCol locate the top-left corner of the 3×3 opening cluster.
	SeedRow, SeedCol int
}

var (
	// Rect is the 11×11 square board.
	Rect = Variant{
		Name:    "rect",
		Shape:   func() [][]Cell { return RectShape(11, 11) },
		SeedRow: 4,
		SeedCol: 4,
	}

	// Hex is the 13×19 hexagonal-outline board.
	Hex = Variant{
		Name:    "hex",
		Shape:   func() [][]Cell { return HexShape(7, 13, 6) },
		SeedRow: 5,
		SeedCol: 8,
	}
)

// Variants lists the built-in board variants.
var Variants = []Variant{Rect, Hex}

// VariantByName looks up a built-in variant, case-insensitively.
func VariantByName(name string) (Variant, error) {
	for _, v := range Variants {
		if strings.EqualFold(v.Name, name) {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("unknown board variant %q", name)
}

// NewBoard builds the opening board of the variant.
//
// The 3×3 cluster is a rotational Latin square:
//
//	A C B
//	B A C
//	C B A
//
// so every player holds one disk per row and column of the cluster and each
// pair of players touches orthogonally and diagonally.
func (v Variant) NewBoard() *Board {
	b := NewBoard(v.Shape())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p := Player(((i-j)%NumPlayers + NumPlayers) % NumPlayers)
			// Seeds always land on playable cells for the built-in variants.
			_ = b.Set(v.SeedRow+i, v.SeedCol+j, Owned(p))
		}
	}
	return b
}
