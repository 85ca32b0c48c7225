package cache

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"boardteacher/game"
	"boardteacher/game/connectfour"
	"boardteacher/game/tictactoe"

	"github.com/stretchr/testify/require"
)

func connectFourKey(t *testing.T, cols ...int) game.Key {
	t.Helper()
	b := connectfour.New()
	for _, col := range cols {
		b = b.Drop(col)
	}
	return connectfour.Codec{}.Encode(b)
}

func TestLookup(t *testing.T) {
	codec := connectfour.Codec{}

	t.Run("stored entries are returned unchanged", func(t *testing.T) {
		c := New(codec)
		key := connectFourKey(t, 3)
		entry := Entry{Value: 12, Move: connectfour.Move(2), Depth: 4}

		c.Store(key, entry)
		got, ok := c.Lookup(key, 4)

		require.True(t, ok)
		require.Equal(t, entry, got)
	})

	t.Run("shallower entries do not answer deeper requests", func(t *testing.T) {
		c := New(codec)
		key := connectFourKey(t, 3)
		c.Store(key, Entry{Value: 1, Move: connectfour.Move(2), Depth: 3})

		_, ok := c.Lookup(key, 4)
		require.False(t, ok, "Depth 3 result should not satisfy depth 4")

		_, ok = c.Lookup(key, 2)
		require.True(t, ok, "Depth 3 result should satisfy depth 2")
	})

	t.Run("deeper entries are not replaced by shallower ones", func(t *testing.T) {
		c := New(codec)
		key := connectFourKey(t, 3)
		deep := Entry{Value: 5, Move: connectfour.Move(3), Depth: 6}
		c.Store(key, deep)

		c.Store(key, Entry{Value: 9, Move: connectfour.Move(0), Depth: 2})
		got, _ := c.Lookup(key, 1)

		require.Equal(t, deep, got)
	})

	t.Run("mirrored position reflects the move", func(t *testing.T) {
		c := New(codec, WithMirror(codec))
		c.Store(connectFourKey(t, 0, 1), Entry{Value: 7, Move: connectfour.Move(1), Depth: 4})

		got, ok := c.Lookup(connectFourKey(t, 6, 5), 4)

		require.True(t, ok, "Mirror image should hit")
		require.Equal(t, Entry{Value: 7, Move: connectfour.Move(5), Depth: 4}, got)
	})

	t.Run("mirror lookup is off by default", func(t *testing.T) {
		c := New(codec)
		c.Store(connectFourKey(t, 0, 1), Entry{Value: 7, Move: connectfour.Move(1), Depth: 4})

		_, ok := c.Lookup(connectFourKey(t, 6, 5), 4)

		require.False(t, ok)
	})

	t.Run("concurrent access", func(t *testing.T) {
		c := New(codec, WithMirror(codec))
		hits := make([]bool, connectfour.Columns)
		var wg sync.WaitGroup
		for col := 0; col < connectfour.Columns; col++ {
			wg.Add(1)
			go func(col int) {
				defer wg.Done()
				key := connectFourKey(t, col)
				c.Store(key, Entry{Move: connectfour.Move(col), Depth: 1})
				_, hits[col] = c.Lookup(key, 1)
			}(col)
		}
		wg.Wait()

		require.Equal(t, connectfour.Columns, c.Len())
		require.NotContains(t, hits, false, "Every goroutine should read its own entry")
	})
}

func TestPersistence(t *testing.T) {
	codec := connectfour.Codec{}

	t.Run("missing file loads nothing", func(t *testing.T) {
		c := New(codec)

		require.NoError(t, c.Load(filepath.Join(t.TempDir(), "missing.gob")))
		require.Zero(t, c.Len())
	})

	t.Run("save then load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "table.gob")
		c := New(codec)
		c.Store(connectFourKey(t, 3), Entry{Value: 4, Move: connectfour.Move(3), Depth: 4})
		c.Store(connectFourKey(t, 3, 3), Entry{Value: -2, Depth: 0})

		require.NoError(t, c.Save(path))
		loaded := New(codec)
		require.NoError(t, loaded.Load(path))

		require.Equal(t, c.entries, loaded.entries)
	})

	t.Run("save merges with the file instead of overwriting it", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "table.gob")
		first := New(codec)
		first.Store(connectFourKey(t, 0), Entry{Value: 1, Move: connectfour.Move(0), Depth: 2})
		first.Store(connectFourKey(t, 1), Entry{Value: 1, Move: connectfour.Move(1), Depth: 6})
		require.NoError(t, first.Save(path))

		second := New(codec)
		second.Store(connectFourKey(t, 1), Entry{Value: 8, Move: connectfour.Move(2), Depth: 3})
		second.Store(connectFourKey(t, 2), Entry{Value: 2, Move: connectfour.Move(2), Depth: 2})
		require.NoError(t, second.Save(path))

		reloaded := New(codec)
		require.NoError(t, reloaded.Load(path))
		require.Equal(t, 3, reloaded.Len(), "Union of both runs should be kept")
		got, _ := reloaded.Lookup(connectFourKey(t, 1), 1)
		require.Equal(t, 6, got.Depth, "Deeper result on disk should win")
		require.Equal(t, 3, second.Len(), "Saving should also merge into memory")
	})

	t.Run("in-memory entry wins a tie", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "table.gob")
		first := New(codec)
		first.Store(connectFourKey(t, 0), Entry{Value: 1, Move: connectfour.Move(0), Depth: 2})
		require.NoError(t, first.Save(path))

		second := New(codec)
		second.Store(connectFourKey(t, 0), Entry{Value: 5, Move: connectfour.Move(4), Depth: 2})
		require.NoError(t, second.Save(path))

		got, _ := second.Lookup(connectFourKey(t, 0), 2)
		require.Equal(t, connectfour.Move(4), got.Move)
	})

	t.Run("corrupt file is discarded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "table.gob")
		require.NoError(t, os.WriteFile(path, []byte("definitely not gob"), 0o644))
		c := New(codec)

		require.NoError(t, c.Load(path))
		require.Zero(t, c.Len())
		_, err := os.Stat(path)
		require.True(t, os.IsNotExist(err), "Corrupt file should be removed")
	})

	t.Run("truncated file is discarded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "table.gob")
		c := New(codec)
		for col := 0; col < connectfour.Columns; col++ {
			c.Store(connectFourKey(t, col), Entry{Value: col, Move: connectfour.Move(col), Depth: 3})
		}
		require.NoError(t, c.Save(path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data[:len(data)/2], 0o644))

		loaded := New(codec)
		require.NoError(t, loaded.Load(path))
		require.Zero(t, loaded.Len())

		require.NoError(t, c.Save(path), "Saving over a discarded file should succeed")
	})

	t.Run("outdated version is ignored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "table.gob")
		file, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, gob.NewEncoder(file).Encode(&snapshot{
			Version: Version - 1,
			Game:    codec.Name(),
			Entries: map[game.Key]record{connectFourKey(t, 3): {Value: 1, Move: "3", Depth: 1}},
		}))
		require.NoError(t, file.Close())

		c := New(codec)
		require.NoError(t, c.Load(path))
		require.Zero(t, c.Len())
	})

	t.Run("another game's file is never overwritten", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "table.gob")
		ttt := New(tictactoe.Codec{})
		ttt.Store(tictactoe.Codec{}.Encode(tictactoe.New()), Entry{Move: tictactoe.Move(4), Depth: 9})
		require.NoError(t, ttt.Save(path))

		c := New(codec)
		require.NoError(t, c.Load(path), "Loading should skip the file")
		require.Zero(t, c.Len())
		require.ErrorIs(t, c.Save(path), ErrGameMismatch)
	})
}
