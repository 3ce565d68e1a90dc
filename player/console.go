package player

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"othello3/game"
)

// Console lets a person play a seat by typing "row,col".
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) Name() string { return "console" }

// ChooseMove prompts until a legal move is entered. It fails with io.EOF once
// the input is exhausted.
func (c *Console) ChooseMove(g *game.Game, p game.Player) (game.Move, error) {
	if !g.HasMoves(p) {
		return game.Move{}, ErrNoMoves
	}

	fmt.Fprintln(c.out, g)
	for {
		fmt.Fprintf(c.out, "%s (%s), enter row,col: ", p, p.Symbol())
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return game.Move{}, fmt.Errorf("failed to read move: %w", err)
			}
			return game.Move{}, io.EOF
		}

		row, col, err := parseCoord(c.in.Text())
		if err != nil {
			fmt.Fprintf(c.out, "%v, try again\n", err)
			continue
		}
		m := game.Move{Row: row, Col: col, Player: p}
		if !g.IsLegal(m) {
			fmt.Fprintf(c.out, "%d,%d is not a legal move, try again\n", row, col)
			continue
		}
		return m, nil
	}
}

// parseCoord accepts "r,c" or "r c".
func parseCoord(s string) (row, col int, err error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected row,col but got %q", strings.TrimSpace(s))
	}
	if row, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid row %q", fields[0])
	}
	if col, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid column %q", fields[1])
	}
	return row, col, nil
}
