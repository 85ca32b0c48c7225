// Package expand precomputes move tables by solving every position reachable
// from a root within a number of plies.
package expand

import (
	"context"
	"sync"

	"boardteacher/agent"
	"boardteacher/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const logEvery = 1000

type Summary struct {
	Positions int
	Searches  int
	CacheHits int
}

// Positions returns the unfinished positions reachable from root in at most
// plies moves, root first, in breadth-first order without duplicates.
func Positions(root game.State, codec game.Codec, plies int) []game.State {
	if root.Outcome() != game.InProgress {
		return nil
	}
	seen := map[game.Key]bool{codec.Encode(root): true}
	found := []game.State{root}
	frontier := []game.State{root}
	for ply := 0; ply < plies; ply++ {
		var next []game.State
		for _, state := range frontier {
			for _, move := range state.LegalMoves() {
				child := state.Play(move)
				key := codec.Encode(child)
				if seen[key] || child.Outcome() != game.InProgress {
					continue
				}
				seen[key] = true
				next = append(next, child)
			}
		}
		found = append(found, next...)
		frontier = next
	}
	return found
}

// Run solves every position within plies of root. Each of the workers gets
// its own teacher from newTeacher; teachers sharing a cache fill it in
// parallel.
func Run(ctx context.Context, newTeacher func() *agent.Teacher, root game.State, plies, workers int) (Summary, error) {
	if workers < 1 {
		workers = 1
	}
	teachers := make([]*agent.Teacher, workers)
	for i := range teachers {
		teachers[i] = newTeacher()
	}
	positions := Positions(root, teachers[0].Codec(), plies)
	log.Info().Msgf("expanding %d positions with %d workers", len(positions), workers)

	g, ctx := errgroup.WithContext(ctx)
	work := make(chan game.State)

	g.Go(func() error {
		defer close(work)
		for _, state := range positions {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case work <- state:
			}
		}
		return nil
	})

	var mu sync.Mutex
	done := 0
	for _, teacher := range teachers {
		teacher := teacher
		g.Go(func() error {
			for state := range work {
				if err := ctx.Err(); err != nil {
					return err
				}
				teacher.Solve(state, teacher.Depth())

				mu.Lock()
				done++
				if done%logEvery == 0 {
					log.Info().Msgf("expanded %d/%d positions", done, len(positions))
				}
				mu.Unlock()
			}
			return nil
		})
	}

	err := g.Wait()
	summary := Summary{Positions: len(positions)}
	for _, teacher := range teachers {
		stats := teacher.Stats()
		summary.Searches += stats.Searches
		summary.CacheHits += stats.CacheHits
	}
	return summary, err
}
