package connectfour

import (
	"strconv"

	"boardteacher/game"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Codec encodes boards column by column, bottom row first, followed by the
// side to move. It also maps keys and moves onto their mirror images.
type Codec struct{}

func (Codec) Name() string {
	return "connectfour"
}

func (Codec) Encode(state game.State) game.Key {
	b := state.(Board)
	cells := make([]int8, 0, Columns*Rows)
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			cells = append(cells, int8(b.Cells[col][row]))
		}
	}
	return game.JoinKey(cells, b.Turn)
}

func (Codec) Decode(key game.Key) (game.State, error) {
	cells, side, err := game.SplitKey(key, Columns*Rows, int8(game.Player2))
	if err != nil {
		return nil, err
	}
	b := Board{Turn: side}
	for i, cell := range cells {
		b.Cells[i/Rows][i%Rows] = game.Player(cell)
	}
	for col := 0; col < Columns; col++ {
		for row := 1; row < Rows; row++ {
			if b.Cells[col][row] != game.None && b.Cells[col][row-1] == game.None {
				return nil, errors.Wrapf(game.ErrMalformedKey, "%q: floating piece in column %d", key, col)
			}
		}
	}
	return b, nil
}

// MirrorKey reverses the column order of key.
func (Codec) MirrorKey(key game.Key) (game.Key, error) {
	cells, side, err := game.SplitKey(key, Columns*Rows, int8(game.Player2))
	if err != nil {
		return "", err
	}
	columns := lo.Chunk(cells, Rows)
	return game.JoinKey(lo.Flatten(lo.Reverse(columns)), side), nil
}

func (Codec) MirrorMove(move game.Move) game.Move {
	return Move(Columns - 1 - int(move.(Move)))
}

func (Codec) EncodeMove(move game.Move) string {
	return move.String()
}

func (Codec) DecodeMove(s string) (game.Move, error) {
	col, err := strconv.Atoi(s)
	if err != nil || col < 0 || col >= Columns {
		return nil, errors.Wrapf(game.ErrMalformedMove, "%q: want a column in [0,%d)", s, Columns)
	}
	return Move(col), nil
}
