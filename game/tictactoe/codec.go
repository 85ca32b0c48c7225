package tictactoe

import (
	"strconv"

	"boardteacher/game"

	"github.com/pkg/errors"
)

// Codec encodes boards as 9 row-major digits followed by the side to move.
type Codec struct{}

func (Codec) Name() string {
	return "tictactoe"
}

func (Codec) Encode(state game.State) game.Key {
	b := state.(Board)
	cells := make([]int8, len(b.Cells))
	for i, cell := range b.Cells {
		cells[i] = int8(cell)
	}
	return game.JoinKey(cells, b.Turn)
}

func (Codec) Decode(key game.Key) (game.State, error) {
	cells, side, err := game.SplitKey(key, Size*Size, int8(game.Player2))
	if err != nil {
		return nil, err
	}
	b := Board{Turn: side}
	for i, cell := range cells {
		b.Cells[i] = game.Player(cell)
	}
	return b, nil
}

// MirrorKey reverses every row of key.
func (Codec) MirrorKey(key game.Key) (game.Key, error) {
	cells, side, err := game.SplitKey(key, Size*Size, int8(game.Player2))
	if err != nil {
		return "", err
	}
	mirrored := make([]int8, len(cells))
	for i, cell := range cells {
		mirrored[mirrorCell(i)] = cell
	}
	return game.JoinKey(mirrored, side), nil
}

func (Codec) MirrorMove(move game.Move) game.Move {
	return Move(mirrorCell(int(move.(Move))))
}

func (Codec) EncodeMove(move game.Move) string {
	return move.String()
}

func (Codec) DecodeMove(s string) (game.Move, error) {
	cell, err := strconv.Atoi(s)
	if err != nil || cell < 0 || cell >= Size*Size {
		return nil, errors.Wrapf(game.ErrMalformedMove, "%q: want a cell in [0,%d)", s, Size*Size)
	}
	return Move(cell), nil
}
