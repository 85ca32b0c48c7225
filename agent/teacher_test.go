package agent

import (
	"testing"

	"boardteacher/cache"
	"boardteacher/game"
	"boardteacher/game/checkers"
	"boardteacher/game/connectfour"
	"boardteacher/game/tictactoe"
	"boardteacher/searcher"

	"github.com/stretchr/testify/require"
)

func ticTacToe(cells ...int) game.State {
	var state game.State = tictactoe.New()
	for _, cell := range cells {
		state = state.Play(tictactoe.Move(cell))
	}
	return state
}

func TestTeacher(t *testing.T) {
	t.Run("plays the winning move", func(t *testing.T) {
		teacher := NewTeacher(tictactoe.Codec{}, WithDepth(9))

		move, err := teacher.FindMove(ticTacToe(0, 3, 1, 4))

		require.NoError(t, err)
		require.Equal(t, tictactoe.Move(2), move)
	})

	t.Run("second request is answered from the cache", func(t *testing.T) {
		teacher := NewTeacher(connectfour.Codec{}, WithDepth(3))
		state := connectfour.New().Drop(3)

		first, err := teacher.FindMove(state)
		require.NoError(t, err)
		second, err := teacher.FindMove(state)
		require.NoError(t, err)

		require.Equal(t, first, second)
		require.Equal(t, Stats{Searches: 1, CacheHits: 1}, teacher.Stats(), "Tree should not be searched again")
	})

	t.Run("mirrored position reuses the cached search", func(t *testing.T) {
		codec := connectfour.Codec{}
		teacher := NewTeacher(codec, WithDepth(3))
		state := connectfour.New().Drop(0).Drop(1)

		move, err := teacher.FindMove(state)
		require.NoError(t, err)
		mirroredMove, err := teacher.FindMove(state.Mirror())
		require.NoError(t, err)

		require.Equal(t, codec.MirrorMove(move), mirroredMove)
		require.Equal(t, 1, teacher.Stats().CacheHits)
	})

	t.Run("deeper request searches again", func(t *testing.T) {
		teacher := NewTeacher(checkers.NewCodec(checkers.DefaultDrawLimit))
		state := checkers.New()

		_, err := teacher.BestMove(state, 2, 0)
		require.NoError(t, err)
		_, err = teacher.BestMove(state, 1, 0)
		require.NoError(t, err)
		_, err = teacher.BestMove(state, 3, 0)
		require.NoError(t, err)

		require.Equal(t, Stats{Searches: 2, CacheHits: 1}, teacher.Stats())
	})

	t.Run("full exploration plays random legal moves", func(t *testing.T) {
		teacher := NewTeacher(connectfour.Codec{}, WithExploration(1), WithSeed(9))
		state := connectfour.New()

		for i := 0; i < 20; i++ {
			move, err := teacher.FindMove(state)
			require.NoError(t, err)
			require.Contains(t, state.LegalMoves(), move)
		}
		require.Equal(t, Stats{Explorations: 20}, teacher.Stats(), "No search should run")
	})

	t.Run("exploration is reproducible with a seed", func(t *testing.T) {
		a := NewTeacher(connectfour.Codec{}, WithDepth(1), WithExploration(0.5), WithSeed(4))
		b := NewTeacher(connectfour.Codec{}, WithDepth(1), WithExploration(0.5), WithSeed(4))
		var state game.State = connectfour.New()

		for i := 0; i < 10 && state.Outcome() == game.InProgress; i++ {
			moveA, err := a.FindMove(state)
			require.NoError(t, err)
			moveB, err := b.FindMove(state)
			require.NoError(t, err)
			require.Equal(t, moveA, moveB)
			state = state.Play(moveA)
		}
	})

	t.Run("shared cache between teachers", func(t *testing.T) {
		shared := cache.New(tictactoe.Codec{})
		a := NewTeacher(tictactoe.Codec{}, WithCache(shared), WithDepth(9))
		b := NewTeacher(tictactoe.Codec{}, WithCache(shared), WithDepth(9))
		state := ticTacToe(4)

		_, err := a.FindMove(state)
		require.NoError(t, err)
		_, err = b.FindMove(state)
		require.NoError(t, err)

		require.Equal(t, 1, b.Stats().CacheHits)
	})

	t.Run("finished game has no move", func(t *testing.T) {
		teacher := NewTeacher(tictactoe.Codec{})

		_, err := teacher.FindMove(ticTacToe(0, 3, 1, 4, 2))

		require.ErrorIs(t, err, ErrNoLegalMoves)
	})

	t.Run("requests by key", func(t *testing.T) {
		codec := tictactoe.Codec{}
		teacher := NewTeacher(codec, WithDepth(9))

		move, err := teacher.BestMoveForKey(codec.Encode(ticTacToe(3, 0, 7, 1)), 9, 0)
		require.NoError(t, err)
		require.Equal(t, tictactoe.Move(2), move)

		_, err = teacher.BestMoveForKey("12/1", 9, 0)
		require.ErrorIs(t, err, game.ErrMalformedKey)
	})

	t.Run("results near the draw limit are not cached", func(t *testing.T) {
		teacher := NewTeacher(checkers.NewCodec(10))
		board := checkers.Blank(checkers.WithDrawLimit(10))
		board.Set(checkers.Coord{Row: 2, Col: 1}, checkers.P1King)
		board.Set(checkers.Coord{Row: 6, Col: 2}, checkers.P2)
		nearLimit := board
		nearLimit.Quiet = 9

		near := teacher.Solve(nearLimit, 3)
		require.Equal(t, 0, near.Value, "Draw limit should be reached inside the search")
		require.Zero(t, teacher.Cache().Len(), "Near-limit result should not be stored")

		fresh := teacher.Solve(board, 3)

		require.Equal(t, Stats{Searches: 2}, teacher.Stats(), "Fresh position should be searched, not served from the cache")
		require.Equal(t, searcher.New().Search(board, 3).Value, fresh.Value)
		require.Equal(t, 1, teacher.Cache().Len())
	})

	t.Run("searcher metrics are recorded", func(t *testing.T) {
		s := searcher.New(searcher.WithMetrics())
		teacher := NewTeacher(connectfour.Codec{}, WithSearcher(s), WithDepth(2))

		_, err := teacher.FindMove(connectfour.New())

		require.NoError(t, err)
		require.Equal(t, 2, s.LastMetrics().Depth)
		require.Positive(t, s.LastMetrics().Nodes)
	})

	t.Run("cache of another game is rejected", func(t *testing.T) {
		require.Panics(t, func() {
			NewTeacher(tictactoe.Codec{}, WithCache(cache.New(connectfour.Codec{})))
		})
	})
}

func TestRandom(t *testing.T) {
	r := NewRandom(1)
	var state game.State = checkers.New()

	for i := 0; i < 30 && state.Outcome() == game.InProgress; i++ {
		move, err := r.FindMove(state)
		require.NoError(t, err)
		require.Contains(t, state.LegalMoves(), move)
		state = state.Play(move)
	}
}
