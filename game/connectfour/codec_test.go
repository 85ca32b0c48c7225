package connectfour

import (
	"strings"
	"testing"

	"boardteacher/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestCodec(t *testing.T) {
	codec := Codec{}

	t.Run("encoding is column-major from the bottom", func(t *testing.T) {
		key := codec.Encode(play(0, 0, 6))

		require.Equal(t, game.Key("120000"+strings.Repeat("0", 30)+"100000/2"), key)
	})

	t.Run("round trip over random playouts", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))
		for i := 0; i < 50; i++ {
			b := randomBoard(rng, rng.Intn(42))

			decoded, err := codec.Decode(codec.Encode(b))

			require.NoError(t, err)
			require.Equal(t, b, decoded)
		}
	})

	t.Run("mirror key matches the mirrored board", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		for i := 0; i < 50; i++ {
			b := randomBoard(rng, rng.Intn(42))
			key := codec.Encode(b)

			mirrored, err := codec.MirrorKey(key)
			require.NoError(t, err)
			require.Equal(t, codec.Encode(b.Mirror()), mirrored)

			back, err := codec.MirrorKey(mirrored)
			require.NoError(t, err)
			require.Equal(t, key, back, "Mirroring twice should be the identity")
		}
	})

	t.Run("mirror move reflects the column", func(t *testing.T) {
		require.Equal(t, Move(6), codec.MirrorMove(Move(0)))
		require.Equal(t, Move(3), codec.MirrorMove(Move(3)))
		require.Equal(t, Move(1), codec.MirrorMove(codec.MirrorMove(Move(1))))
	})

	t.Run("rejecting floating pieces", func(t *testing.T) {
		_, err := codec.Decode(game.Key("010000" + strings.Repeat("0", 36) + "/2"))

		require.ErrorIs(t, err, game.ErrMalformedKey)
	})

	t.Run("move round trip", func(t *testing.T) {
		move, err := codec.DecodeMove(codec.EncodeMove(Move(4)))

		require.NoError(t, err)
		require.Equal(t, Move(4), move)

		_, err = codec.DecodeMove("7")
		require.ErrorIs(t, err, game.ErrMalformedMove)
	})
}
