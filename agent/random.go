package agent

import (
	"sync"

	"boardteacher/game"

	"golang.org/x/exp/rand"
)

// Random plays uniformly random legal moves.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) FindMove(state game.State) (game.Move, error) {
	moves := state.LegalMoves()
	if state.Outcome() != game.InProgress || len(moves) == 0 {
		return nil, ErrNoLegalMoves
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return moves[r.rng.Intn(len(moves))], nil
}
