package expand

import (
	"context"
	"testing"

	"boardteacher/agent"
	"boardteacher/cache"
	"boardteacher/game"
	"boardteacher/game/tictactoe"

	"github.com/stretchr/testify/require"
)

func TestPositions(t *testing.T) {
	codec := tictactoe.Codec{}

	t.Run("counts distinct positions per ply", func(t *testing.T) {
		require.Len(t, Positions(tictactoe.New(), codec, 0), 1)
		require.Len(t, Positions(tictactoe.New(), codec, 1), 1+9)
		require.Len(t, Positions(tictactoe.New(), codec, 2), 1+9+72)
		require.Len(t, Positions(tictactoe.New(), codec, 3), 1+9+72+252, "Transpositions should be counted once")
	})

	t.Run("finished games are skipped", func(t *testing.T) {
		var state game.State = tictactoe.New()
		for _, cell := range []int{0, 3, 1, 4, 2} {
			state = state.Play(tictactoe.Move(cell))
		}
		require.Empty(t, Positions(state, codec, 3))
	})
}

func TestRun(t *testing.T) {
	codec := tictactoe.Codec{}

	t.Run("fills a shared cache", func(t *testing.T) {
		shared := cache.New(codec, cache.WithMirror(codec))
		newTeacher := func() *agent.Teacher {
			return agent.NewTeacher(codec, agent.WithCache(shared), agent.WithDepth(9))
		}

		summary, err := Run(context.Background(), newTeacher, tictactoe.New(), 2, 4)

		require.NoError(t, err)
		require.Equal(t, 82, summary.Positions)
		require.Equal(t, summary.Positions, summary.Searches+summary.CacheHits)
		require.Equal(t, summary.Searches, shared.Len())
		for _, state := range Positions(tictactoe.New(), codec, 2) {
			_, ok := shared.Lookup(codec.Encode(state), 9)
			require.True(t, ok, "Position %s should be solved", codec.Encode(state))
		}
	})

	t.Run("cancelled context stops the workers", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		newTeacher := func() *agent.Teacher {
			return agent.NewTeacher(codec, agent.WithDepth(9))
		}

		_, err := Run(ctx, newTeacher, tictactoe.New(), 3, 2)

		require.ErrorIs(t, err, context.Canceled)
	})
}
