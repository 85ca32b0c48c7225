// Package tictactoe implements 3x3 tic-tac-toe. It is small enough to be
// searched exhaustively and serves as a reference for the other games.
package tictactoe

import (
	"fmt"
	"strconv"

	"boardteacher/game"
)

const Size = 3

var lines = [][Size]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Move is a cell index in row-major order.
type Move int

func (m Move) String() string {
	return strconv.Itoa(int(m))
}

type Board struct {
	Cells [Size * Size]game.Player
	Turn  game.Player
}

func New() Board {
	return Board{Turn: game.Player1}
}

func (b Board) Player() game.Player {
	return b.Turn
}

func (b Board) LegalMoves() []game.Move {
	if b.winner() != game.None {
		return nil
	}
	var moves []game.Move
	for i, cell := range b.Cells {
		if cell == game.None {
			moves = append(moves, Move(i))
		}
	}
	return moves
}

func (b Board) Play(move game.Move) game.State {
	m, ok := move.(Move)
	if !ok || m < 0 || int(m) >= len(b.Cells) || b.Cells[m] != game.None {
		panic(fmt.Sprintf("tictactoe: illegal move %v", move))
	}
	b.Cells[m] = b.Turn
	b.Turn = b.Turn.Other()
	return b
}

// Mirror reflects the board left to right.
func (b Board) Mirror() Board {
	mirrored := Board{Turn: b.Turn}
	for i, cell := range b.Cells {
		mirrored.Cells[mirrorCell(i)] = cell
	}
	return mirrored
}

func mirrorCell(i int) int {
	row, col := i/Size, i%Size
	return row*Size + Size - 1 - col
}

func (b Board) winner() game.Player {
	for _, line := range lines {
		owner := b.Cells[line[0]]
		if owner != game.None && b.Cells[line[1]] == owner && b.Cells[line[2]] == owner {
			return owner
		}
	}
	return game.None
}

func (b Board) Outcome() game.Outcome {
	if w := b.winner(); w != game.None {
		return game.WinFor(w)
	}
	for _, cell := range b.Cells {
		if cell == game.None {
			return game.InProgress
		}
	}
	return game.Draw
}

// Evaluate counts open lines, two pieces scoring 2 and one piece 1.
func (b Board) Evaluate(perspective game.Player) int {
	score := 0
	for _, line := range lines {
		own, opp := 0, 0
		for _, i := range line {
			switch b.Cells[i] {
			case game.None:
			case perspective:
				own++
			default:
				opp++
			}
		}
		switch {
		case opp == 0:
			score += own
		case own == 0:
			score -= opp
		}
	}
	return score
}
