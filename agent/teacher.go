package agent

import (
	"fmt"
	"sync"

	"boardteacher/cache"
	"boardteacher/game"
	"boardteacher/meta"
	"boardteacher/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(t *Teacher)

func WithDepth(depth int) Option {
	return func(t *Teacher) {
		if depth > 0 {
			t.depth = depth
		}
	}
}

// WithExploration sets the probability of playing a uniformly random legal
// move instead of the searched one.
func WithExploration(exploration float64) Option {
	return func(t *Teacher) {
		if exploration >= 0 && exploration <= 1 {
			t.exploration = exploration
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(t *Teacher) {
		t.rng = rand.New(rand.NewSource(seed))
	}
}

// WithCache shares a move cache between teachers.
func WithCache(c *cache.Cache) Option {
	return func(t *Teacher) {
		if c != nil {
			t.cache = c
		}
	}
}

func WithSearcher(s *searcher.Searcher) Option {
	return func(t *Teacher) {
		if s != nil {
			t.searcher = s
		}
	}
}

// Stats counts how moves were chosen.
type Stats struct {
	Searches     int
	CacheHits    int
	Explorations int
}

// Teacher answers best-move queries with an alpha-beta search memoized in a
// move cache. A Teacher is safe for concurrent use.
type Teacher struct {
	mu          sync.Mutex
	codec       game.Codec
	cache       *cache.Cache
	searcher    *searcher.Searcher
	depth       int
	exploration float64
	rng         *rand.Rand
	stats       Stats
}

func NewTeacher(codec game.Codec, options ...Option) *Teacher {
	t := &Teacher{ // Default values
		codec:    codec,
		searcher: searcher.New(),
		depth:    meta.DEFAULT_DEPTH,
		rng:      rand.New(rand.NewSource(meta.DEFAULT_SEED)),
	}
	for _, option := range options {
		option(t)
	}
	if t.cache == nil {
		var cacheOptions []cache.Option
		if mirror, ok := codec.(game.Mirrorer); ok {
			cacheOptions = append(cacheOptions, cache.WithMirror(mirror))
		}
		t.cache = cache.New(codec, cacheOptions...)
	}
	if t.cache.Codec().Name() != codec.Name() {
		panic(fmt.Sprintf("cache for %s used with %s", t.cache.Codec().Name(), codec.Name()))
	}
	return t
}

func (t *Teacher) Codec() game.Codec {
	return t.codec
}

func (t *Teacher) Cache() *cache.Cache {
	return t.cache
}

func (t *Teacher) Depth() int {
	return t.depth
}

func (t *Teacher) Exploration() float64 {
	return t.exploration
}

func (t *Teacher) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// FindMove plays with the configured depth and exploration.
func (t *Teacher) FindMove(state game.State) (game.Move, error) {
	return t.BestMove(state, t.depth, t.exploration)
}

// BestMoveForKey decodes key and returns BestMove for the position.
func (t *Teacher) BestMoveForKey(key game.Key, depth int, exploration float64) (game.Move, error) {
	state, err := t.codec.Decode(key)
	if err != nil {
		return nil, err
	}
	return t.BestMove(state, depth, exploration)
}

// BestMove returns a uniformly random legal move with probability exploration
// and the searched move otherwise.
func (t *Teacher) BestMove(state game.State, depth int, exploration float64) (game.Move, error) {
	moves := state.LegalMoves()
	if state.Outcome() != game.InProgress || len(moves) == 0 {
		return nil, ErrNoLegalMoves
	}

	t.mu.Lock()
	if exploration > 0 && t.rng.Float64() < exploration {
		t.stats.Explorations++
		move := moves[t.rng.Intn(len(moves))]
		t.mu.Unlock()
		return move, nil
	}
	t.mu.Unlock()

	entry := t.Solve(state, depth)
	if entry.Move == nil {
		// A depth 0 search scores the position without choosing a move.
		return moves[0], nil
	}
	return entry.Move, nil
}

// Solve returns the searched result for state, consulting the cache first
// and storing fresh results in it. States that are not Cacheable at depth
// are always searched and never stored.
func (t *Teacher) Solve(state game.State, depth int) cache.Entry {
	if c, ok := state.(game.Cacheable); ok && !c.Cacheable(depth) {
		t.mu.Lock()
		result := t.searcher.Search(state, depth)
		t.stats.Searches++
		t.mu.Unlock()
		return cache.Entry{Value: result.Value, Move: result.Move, Depth: depth}
	}

	key := t.codec.Encode(state)
	if entry, ok := t.cache.Lookup(key, depth); ok {
		t.mu.Lock()
		t.stats.CacheHits++
		t.mu.Unlock()
		return entry
	}

	t.mu.Lock()
	result := t.searcher.Search(state, depth)
	t.stats.Searches++
	t.mu.Unlock()

	entry := cache.Entry{Value: result.Value, Move: result.Move, Depth: depth}
	t.cache.Store(key, entry)
	log.Debug().Str("game", t.codec.Name()).Str("key", string(key)).Int("value", result.Value).Msg("stored search result")
	return entry
}
