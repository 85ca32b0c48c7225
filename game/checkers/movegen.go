package checkers

import (
	"slices"

	"github.com/samber/lo"
)

// diagonal returns the two squares n rows away from c in row direction dir,
// the higher column first. Squares may lie off the board.
func diagonal(c Coord, n, dir int) [2]Coord {
	right, left := 0, 0
	if n%2 == 1 {
		if c.Row%2 == 0 {
			left = 1
		} else {
			right = 1
		}
	}
	row := c.Row + n*dir
	return [2]Coord{
		{Row: row, Col: c.Col + n/2 + right},
		{Row: row, Col: c.Col - n/2 - left},
	}
}

// jumped returns the square captured by the leg from -> to.
func jumped(from, to Coord) Coord {
	col := from.Col
	if from.Row%2 == 1 {
		if to.Col >= from.Col {
			col = to.Col
		}
	} else if to.Col < from.Col {
		col = to.Col
	}
	return Coord{Row: (from.Row + to.Row) / 2, Col: col}
}

// pieces lists the squares of the side to move in row-major order.
func (b Board) pieces() []Coord {
	var found []Coord
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			c := Coord{Row: row, Col: col}
			if b.At(c).Owner() == b.Turn {
				found = append(found, c)
			}
		}
	}
	return found
}

// Moves returns the legal moves of the side to move. Captures are mandatory:
// when any piece can capture, only capture sequences are returned.
func (b Board) Moves() []Move {
	pieces := b.pieces()
	captures := lo.FlatMap(pieces, func(c Coord, _ int) []Move {
		return b.Captures(c)
	})
	if len(captures) > 0 {
		return captures
	}
	return lo.FlatMap(pieces, func(c Coord, _ int) []Move {
		return b.SimpleMoves(c)
	})
}

// SimpleMoves returns the non-capturing steps of the piece on from.
func (b Board) SimpleMoves(from Coord) []Move {
	var moves []Move
	for _, dir := range b.At(from).directions() {
		for _, to := range diagonal(from, 1, dir) {
			if to.onBoard() && b.At(to) == Empty {
				moves = append(moves, Move{from, to})
			}
		}
	}
	return moves
}

// Captures returns every maximal capture sequence of the piece on from.
func (b Board) Captures(from Coord) []Move {
	return b.captureChains(from, Move{from})
}

// captureChains extends path, which ends on from, by every available jump.
// A man that lands on its crowning row ends the sequence there even if it
// could capture again as a king.
func (b Board) captureChains(from Coord, path Move) []Move {
	piece := b.At(from)
	var found []Move
	for _, dir := range piece.directions() {
		steps, jumps := diagonal(from, 1, dir), diagonal(from, 2, dir)
		for i := range steps {
			over, to := steps[i], jumps[i]
			if !over.onBoard() || !to.onBoard() {
				continue
			}
			victim := b.At(over)
			if victim == Empty || victim.Owner() == piece.Owner() || b.At(to) != Empty {
				continue
			}
			chain := append(slices.Clone(path), to)
			before := len(found)
			if !piece.promotesAt(to.Row) {
				next := b.Apply(Move{from, to})
				found = append(found, next.captureChains(to, chain)...)
			}
			if len(found) == before {
				found = append(found, chain)
			}
		}
	}
	return found
}
