// Package checkers implements 8x8 checkers on a packed 8 row by 4 column grid
// holding only the playable squares.
package checkers

import (
	"fmt"
	"strings"

	"boardteacher/game"

	"github.com/samber/lo"
)

const (
	Height = 8
	Width  = 4

	// DefaultDrawLimit is the number of plies without a capture after which a
	// game is drawn.
	DefaultDrawLimit = 100
)

// Piece values double as key digits. Odd pieces belong to Player1, even
// non-empty pieces to Player2.
type Piece int8

const (
	Empty Piece = iota
	P1
	P2
	P1King
	P2King
)

func (p Piece) Owner() game.Player {
	switch {
	case p == Empty:
		return game.None
	case p%2 == 1:
		return game.Player1
	default:
		return game.Player2
	}
}

func (p Piece) IsKing() bool {
	return p == P1King || p == P2King
}

func (p Piece) crowned() Piece {
	switch p {
	case P1:
		return P1King
	case P2:
		return P2King
	}
	return p
}

// promotesAt reports whether a man of this kind is crowned on row.
func (p Piece) promotesAt(row int) bool {
	return (p == P1 && row == Height-1) || (p == P2 && row == 0)
}

// directions lists the row steps a piece may move in, forward first.
func (p Piece) directions() []int {
	switch p {
	case P1:
		return []int{1}
	case P2:
		return []int{-1}
	case P1King, P2King:
		return []int{1, -1}
	}
	return nil
}

type Coord struct {
	Row, Col int
}

func (c Coord) onBoard() bool {
	return c.Row >= 0 && c.Row < Height && c.Col >= 0 && c.Col < Width
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// Move is the path of a single piece: [start, landing...]. A path whose legs
// span two rows is a capture sequence.
type Move []Coord

func (m Move) String() string {
	return strings.Join(lo.Map(m, func(c Coord, _ int) string { return c.String() }), ">")
}

func (m Move) IsCapture() bool {
	return len(m) > 1 && abs(m[0].Row-m[1].Row) == 2
}

type Option func(*Board)

func WithDrawLimit(plies int) Option {
	return func(b *Board) {
		if plies > 0 {
			b.DrawLimit = plies
		}
	}
}

// Board is a value type; Apply and Play return modified copies.
type Board struct {
	Cells [Height][Width]Piece
	Turn  game.Player
	// Quiet counts plies since the last capture.
	Quiet     int
	DrawLimit int
}

// New returns the initial position with Player1 to move.
func New(options ...Option) Board {
	b := Blank(options...)
	for row := 0; row < Height; row++ {
		piece := Empty
		switch {
		case row < 3:
			piece = P1
		case row >= Height-3:
			piece = P2
		}
		for col := 0; col < Width; col++ {
			b.Cells[row][col] = piece
		}
	}
	return b
}

// Blank returns a board without pieces and Player1 to move.
func Blank(options ...Option) Board {
	b := Board{Turn: game.Player1, DrawLimit: DefaultDrawLimit}
	for _, option := range options {
		option(&b)
	}
	return b
}

func (b Board) At(c Coord) Piece {
	return b.Cells[c.Row][c.Col]
}

func (b *Board) Set(c Coord, p Piece) {
	b.Cells[c.Row][c.Col] = p
}

func (b Board) Player() game.Player {
	return b.Turn
}

// Count returns the number of pieces of the given kind.
func (b Board) Count(p Piece) int {
	n := 0
	for row := range b.Cells {
		for _, cell := range b.Cells[row] {
			if cell == p {
				n++
			}
		}
	}
	return n
}

func (b Board) material(player game.Player) int {
	if player == game.Player1 {
		return b.Count(P1) + 2*b.Count(P1King)
	}
	return b.Count(P2) + 2*b.Count(P2King)
}

func (b Board) LegalMoves() []game.Move {
	return lo.Map(b.Moves(), func(m Move, _ int) game.Move { return m })
}

// Apply moves the piece along m, removing every jumped piece and crowning a
// man that ends on its far row. The side to move is left unchanged.
func (b Board) Apply(m Move) Board {
	if len(m) < 2 {
		return b
	}
	start, end := m[0], m[len(m)-1]
	if m.IsCapture() {
		for i := 0; i < len(m)-1; i++ {
			b.Set(jumped(m[i], m[i+1]), Empty)
		}
	}
	piece := b.At(start)
	if piece.promotesAt(end.Row) {
		piece = piece.crowned()
	}
	b.Set(start, Empty)
	b.Set(end, piece)
	return b
}

// Play applies a move of the side to move and passes the turn.
func (b Board) Play(move game.Move) game.State {
	m, ok := move.(Move)
	if !ok {
		panic(fmt.Sprintf("checkers: unexpected move type %T", move))
	}
	next := b.Apply(m)
	if m.IsCapture() {
		next.Quiet = 0
	} else {
		next.Quiet++
	}
	next.Turn = b.Turn.Other()
	return next
}

// Outcome declares a loss for a side without pieces or, on its turn, without
// legal moves. Otherwise the game is drawn once DrawLimit quiet plies pass.
func (b Board) Outcome() game.Outcome {
	if b.Count(P1) == 0 && b.Count(P1King) == 0 {
		return game.Player2Win
	}
	if b.Count(P2) == 0 && b.Count(P2King) == 0 {
		return game.Player1Win
	}
	if len(b.Moves()) == 0 {
		return game.WinFor(b.Turn.Other())
	}
	if b.DrawLimit > 0 && b.Quiet >= b.DrawLimit {
		return game.Draw
	}
	return game.InProgress
}

// Cacheable reports whether a search of depth plies stays clear of the draw
// limit. The quiet counter is not part of the key, so results computed
// within reach of the limit are only valid for this exact counter.
func (b Board) Cacheable(depth int) bool {
	return b.DrawLimit <= 0 || b.Quiet+depth < b.DrawLimit
}

// Evaluate is the material balance, kings counting double.
func (b Board) Evaluate(perspective game.Player) int {
	return b.material(perspective) - b.material(perspective.Other())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
