// Package connectfour implements connect-four on a 7 column by 6 row grid.
package connectfour

import (
	"fmt"
	"strconv"

	"boardteacher/game"
)

const (
	Columns = 7
	Rows    = 6
	// Connect is the run length that wins.
	Connect = 4
	center  = Columns / 2
)

// cell is a column/row pair, row 0 being the bottom.
type cell struct{ col, row int }

// windows holds every horizontal, vertical and diagonal run of Connect cells.
var windows = func() [][Connect]cell {
	var all [][Connect]cell
	steps := []cell{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			for _, step := range steps {
				var w [Connect]cell
				fits := true
				for i := 0; i < Connect; i++ {
					c := cell{col + i*step.col, row + i*step.row}
					if c.col < 0 || c.col >= Columns || c.row < 0 || c.row >= Rows {
						fits = false
						break
					}
					w[i] = c
				}
				if fits {
					all = append(all, w)
				}
			}
		}
	}
	return all
}()

// Move is the column a piece is dropped into.
type Move int

func (m Move) String() string {
	return strconv.Itoa(int(m))
}

// Board is a value type. Cells are indexed [column][row] with row 0 at the
// bottom.
type Board struct {
	Cells [Columns][Rows]game.Player
	Turn  game.Player
}

// New returns the empty board with Player1 to move.
func New() Board {
	return Board{Turn: game.Player1}
}

func (b Board) Player() game.Player {
	return b.Turn
}

// height returns the number of pieces in col.
func (b Board) height(col int) int {
	for row := 0; row < Rows; row++ {
		if b.Cells[col][row] == game.None {
			return row
		}
	}
	return Rows
}

// Moves returns the non-full columns in ascending order.
func (b Board) Moves() []Move {
	var moves []Move
	for col := 0; col < Columns; col++ {
		if b.Cells[col][Rows-1] == game.None {
			moves = append(moves, Move(col))
		}
	}
	return moves
}

func (b Board) LegalMoves() []game.Move {
	moves := b.Moves()
	legal := make([]game.Move, len(moves))
	for i, m := range moves {
		legal[i] = m
	}
	return legal
}

// Drop places a piece of the side to move on top of col and passes the turn.
func (b Board) Drop(col int) Board {
	if col < 0 || col >= Columns || b.height(col) == Rows {
		panic(fmt.Sprintf("connectfour: column %d is not playable", col))
	}
	row := b.height(col)
	b.Cells[col][row] = b.Turn
	b.Turn = b.Turn.Other()
	return b
}

func (b Board) Play(move game.Move) game.State {
	m, ok := move.(Move)
	if !ok {
		panic(fmt.Sprintf("connectfour: unexpected move type %T", move))
	}
	return b.Drop(int(m))
}

// Mirror reflects the board left to right.
func (b Board) Mirror() Board {
	mirrored := Board{Turn: b.Turn}
	for col := 0; col < Columns; col++ {
		mirrored.Cells[Columns-1-col] = b.Cells[col]
	}
	return mirrored
}

func (b Board) Outcome() game.Outcome {
	for _, w := range windows {
		owner := b.Cells[w[0].col][w[0].row]
		if owner == game.None {
			continue
		}
		won := true
		for _, c := range w[1:] {
			if b.Cells[c.col][c.row] != owner {
				won = false
				break
			}
		}
		if won {
			return game.WinFor(owner)
		}
	}
	if len(b.Moves()) == 0 {
		return game.Draw
	}
	return game.InProgress
}

// Evaluate scores open lines: every window held by one side only is worth 2
// with two pieces and 3 with three, and every piece in the centre column
// adds 1.
func (b Board) Evaluate(perspective game.Player) int {
	score := 0
	for _, w := range windows {
		own, opp := 0, 0
		for _, c := range w {
			switch b.Cells[c.col][c.row] {
			case perspective:
				own++
			case game.None:
			default:
				opp++
			}
		}
		switch {
		case opp == 0:
			score += lineValue(own)
		case own == 0:
			score -= lineValue(opp)
		}
	}
	for row := 0; row < Rows; row++ {
		switch b.Cells[center][row] {
		case perspective:
			score++
		case game.None:
		default:
			score--
		}
	}
	return score
}

func lineValue(pieces int) int {
	switch pieces {
	case 2:
		return 2
	case 3:
		return 3
	}
	return 0
}
