// Package render draws boards for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"boardteacher/game"
	"boardteacher/game/checkers"
	"boardteacher/game/connectfour"
	"boardteacher/game/tictactoe"

	"github.com/muesli/termenv"
)

type Renderer struct {
	out *termenv.Output
}

// New renders for w. Without options the colour profile is detected from w.
func New(w io.Writer, options ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, options...)}
}

func (r *Renderer) symbol(p game.Player, s string) string {
	switch p {
	case game.Player1:
		return r.out.String(s).Foreground(r.out.Color("1")).Bold().String()
	case game.Player2:
		return r.out.String(s).Foreground(r.out.Color("3")).Bold().String()
	}
	return r.out.String(s).Faint().String()
}

// Board draws state with the top row first.
func (r *Renderer) Board(state game.State) string {
	switch b := state.(type) {
	case checkers.Board:
		return r.checkers(b)
	case connectfour.Board:
		return r.connectFour(b)
	case tictactoe.Board:
		return r.ticTacToe(b)
	}
	return fmt.Sprintf("%v\n", state)
}

// Status describes whose turn it is, or how the game ended.
func (r *Renderer) Status(state game.State) string {
	if outcome := state.Outcome(); outcome != game.InProgress {
		return r.symbol(outcome.Winner(), outcome.String())
	}
	return r.symbol(state.Player(), state.Player().String()) + " to move"
}

// Print writes the board and its status line.
func (r *Renderer) Print(state game.State) {
	fmt.Fprint(r.out, r.Board(state))
	fmt.Fprintln(r.out, r.Status(state))
}

var checkersSymbols = map[checkers.Piece]string{
	checkers.Empty:  ".",
	checkers.P1:     "x",
	checkers.P1King: "X",
	checkers.P2:     "o",
	checkers.P2King: "O",
}

// checkers expands the packed 8x4 board to 8x8. Even rows use the even
// columns, odd rows the odd ones.
func (r *Renderer) checkers(b checkers.Board) string {
	var sb strings.Builder
	for row := checkers.Height - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d ", row)
		for x := 0; x < 2*checkers.Width; x++ {
			if x%2 != row%2 {
				sb.WriteString("  ")
				continue
			}
			piece := b.At(checkers.Coord{Row: row, Col: x / 2})
			sb.WriteString(r.symbol(piece.Owner(), checkersSymbols[piece]))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (r *Renderer) connectFour(b connectfour.Board) string {
	var sb strings.Builder
	for row := connectfour.Rows - 1; row >= 0; row-- {
		for col := 0; col < connectfour.Columns; col++ {
			sb.WriteString(r.symbol(b.Cells[col][row], playerSymbol(b.Cells[col][row])))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	for col := 0; col < connectfour.Columns; col++ {
		fmt.Fprintf(&sb, "%d ", col)
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (r *Renderer) ticTacToe(b tictactoe.Board) string {
	var sb strings.Builder
	for row := 0; row < tictactoe.Size; row++ {
		for col := 0; col < tictactoe.Size; col++ {
			p := b.Cells[row*tictactoe.Size+col]
			sb.WriteString(r.symbol(p, playerSymbol(p)))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func playerSymbol(p game.Player) string {
	switch p {
	case game.Player1:
		return "X"
	case game.Player2:
		return "O"
	}
	return "."
}
