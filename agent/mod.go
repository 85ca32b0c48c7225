package agent

import (
	"errors"

	"boardteacher/game"
)

// ErrNoLegalMoves is returned when a move is requested for a finished game.
// Callers should check Outcome first.
var ErrNoLegalMoves = errors.New("no legal moves")

type Agent interface {
	// FindMove returns the move this agent plays in state
	FindMove(state game.State) (game.Move, error)
}
