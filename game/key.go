package game

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMalformedKey  = errors.New("malformed state key")
	ErrMalformedMove = errors.New("malformed move")
)

// Key is the canonical serialization of a position: one digit per cell in a
// game specific cell order, followed by '/' and the digit of the side to move.
type Key string

// Codec maps states and moves of a single game to and from their string forms.
type Codec interface {
	Name() string
	Encode(State) Key
	Decode(Key) (State, error)
	EncodeMove(Move) string
	DecodeMove(string) (Move, error)
}

// Mirrorer is implemented by codecs of games that are symmetric under a
// left-right reflection.
type Mirrorer interface {
	MirrorKey(Key) (Key, error)
	MirrorMove(Move) Move
}

// JoinKey builds a key from cell values and the side to move.
func JoinKey(cells []int8, side Player) Key {
	var sb strings.Builder
	sb.Grow(len(cells) + 2)
	for _, cell := range cells {
		sb.WriteByte('0' + byte(cell))
	}
	sb.WriteByte('/')
	sb.WriteByte('0' + byte(side))
	return Key(sb.String())
}

// SplitKey parses a key with exactly size cells whose values are at most limit.
func SplitKey(key Key, size int, limit int8) ([]int8, Player, error) {
	digits, side, ok := strings.Cut(string(key), "/")
	if !ok {
		return nil, None, errors.Wrapf(ErrMalformedKey, "%q: missing side to move", key)
	}
	if len(digits) != size {
		return nil, None, errors.Wrapf(ErrMalformedKey, "%q: want %d cells, got %d", key, size, len(digits))
	}
	player := None
	switch side {
	case "1":
		player = Player1
	case "2":
		player = Player2
	default:
		return nil, None, errors.Wrapf(ErrMalformedKey, "%q: bad side to move %q", key, side)
	}
	cells := make([]int8, size)
	for i := 0; i < size; i++ {
		d := digits[i]
		if d < '0' || d > '0'+byte(limit) {
			return nil, None, errors.Wrapf(ErrMalformedKey, "%q: bad cell %q at %d", key, d, i)
		}
		cells[i] = int8(d - '0')
	}
	return cells, player, nil
}
