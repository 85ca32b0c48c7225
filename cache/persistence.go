package cache

import (
	"encoding/gob"
	"io"
	"os"
	"path/filepath"

	"boardteacher/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Version is bumped whenever the snapshot layout or the meaning of stored
// values changes. Snapshots with another version are ignored.
const Version = 1

var ErrGameMismatch = errors.New("cache file belongs to another game")

type record struct {
	Value int
	Move  string
	Depth int
}

type snapshot struct {
	Version int
	Game    string
	Entries map[game.Key]record
}

// Load merges the entries stored at path into the cache. A missing file is
// not an error. A corrupt file is removed and the cache proceeds without it.
func (c *Cache) Load(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	loaded, err := c.read(path)
	if err != nil {
		if errors.Is(err, ErrGameMismatch) {
			log.Warn().Err(err).Str("path", path).Msg("ignoring cache file")
			return nil
		}
		return err
	}
	c.merge(loaded)
	log.Info().Msgf("restored %d cache entries from %s (%d in memory)", len(loaded), path, len(c.entries))
	return nil
}

// Save merges the file at path into the cache and writes the union back.
// Entries are never dropped: on conflict the deeper result wins, and the
// in-memory result wins a tie.
func (c *Cache) Save(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	onDisk, err := c.read(path)
	if err != nil {
		return err
	}
	c.merge(onDisk)

	snap := snapshot{
		Version: Version,
		Game:    c.codec.Name(),
		Entries: make(map[game.Key]record, len(c.entries)),
	}
	for key, entry := range c.entries {
		r := record{Value: entry.Value, Depth: entry.Depth}
		if entry.Move != nil {
			r.Move = c.codec.EncodeMove(entry.Move)
		}
		snap.Entries[key] = r
	}
	if err := writeAtomic(path, &snap); err != nil {
		return err
	}
	log.Info().Msgf("stored %d cache entries to %s", len(snap.Entries), path)
	return nil
}

// merge adds entries that are new or deeper than the ones in memory.
func (c *Cache) merge(entries map[game.Key]Entry) {
	for key, entry := range entries {
		if existing, ok := c.entries[key]; !ok || entry.deeper(existing) {
			c.entries[key] = entry
		}
	}
}

// read decodes the snapshot at path. Missing, corrupt and outdated files
// yield no entries; only I/O failures and game mismatches are errors.
func (c *Cache) read(path string) (map[game.Key]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "open cache %s", path)
	}
	defer file.Close()

	var snap snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			log.Warn().Str("path", path).Msg("cache file is truncated, discarding it")
		} else {
			log.Warn().Err(err).Str("path", path).Msg("cache file is corrupt, discarding it")
		}
		file.Close()
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("failed to remove corrupt cache file")
		}
		return nil, nil
	}
	if snap.Game != c.codec.Name() {
		return nil, errors.Wrapf(ErrGameMismatch, "%s holds %q, want %q", path, snap.Game, c.codec.Name())
	}
	if snap.Version != Version {
		log.Warn().Msgf("cache file %s has version %d, want %d; ignoring its entries", path, snap.Version, Version)
		return nil, nil
	}

	entries := make(map[game.Key]Entry, len(snap.Entries))
	for key, r := range snap.Entries {
		entry := Entry{Value: r.Value, Depth: r.Depth}
		if r.Move != "" {
			move, err := c.codec.DecodeMove(r.Move)
			if err != nil {
				log.Warn().Err(err).Str("key", string(key)).Msg("skipping cache entry")
				continue
			}
			entry.Move = move
		}
		entries[key] = entry
	}
	return entries, nil
}

// writeAtomic encodes snap into a temporary file next to path and renames it
// into place.
func writeAtomic(path string, snap *snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create cache directory %s", dir)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temporary cache file")
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(snap); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "encode cache %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close cache %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replace cache %s", path)
	}
	return nil
}
