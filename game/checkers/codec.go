package checkers

import (
	"strconv"
	"strings"

	"boardteacher/game"

	"github.com/pkg/errors"
)

// Codec encodes boards as 32 row-major digits followed by the side to move.
// The quiet-ply counter is not part of the key.
type Codec struct {
	DrawLimit int
}

func NewCodec(drawLimit int) Codec {
	return Codec{DrawLimit: drawLimit}
}

func (Codec) Name() string {
	return "checkers"
}

func (Codec) Encode(state game.State) game.Key {
	b := state.(Board)
	cells := make([]int8, 0, Height*Width)
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			cells = append(cells, int8(b.Cells[row][col]))
		}
	}
	return game.JoinKey(cells, b.Turn)
}

func (c Codec) Decode(key game.Key) (game.State, error) {
	cells, side, err := game.SplitKey(key, Height*Width, int8(P2King))
	if err != nil {
		return nil, err
	}
	b := Blank(WithDrawLimit(c.DrawLimit))
	b.Turn = side
	for i, cell := range cells {
		b.Cells[i/Width][i%Width] = Piece(cell)
	}
	return b, nil
}

func (Codec) EncodeMove(move game.Move) string {
	return move.String()
}

// DecodeMove parses "row,col>row,col>...".
func (Codec) DecodeMove(s string) (game.Move, error) {
	parts := strings.Split(s, ">")
	if len(parts) < 2 {
		return nil, errors.Wrapf(game.ErrMalformedMove, "%q: need at least two squares", s)
	}
	move := make(Move, 0, len(parts))
	for _, part := range parts {
		rowText, colText, ok := strings.Cut(part, ",")
		if !ok {
			return nil, errors.Wrapf(game.ErrMalformedMove, "%q: bad square %q", s, part)
		}
		row, err := strconv.Atoi(rowText)
		if err != nil {
			return nil, errors.Wrapf(game.ErrMalformedMove, "%q: bad row %q", s, rowText)
		}
		col, err := strconv.Atoi(colText)
		if err != nil {
			return nil, errors.Wrapf(game.ErrMalformedMove, "%q: bad column %q", s, colText)
		}
		c := Coord{Row: row, Col: col}
		if !c.onBoard() {
			return nil, errors.Wrapf(game.ErrMalformedMove, "%q: square %s is off the board", s, c)
		}
		move = append(move, c)
	}
	return move, nil
}
