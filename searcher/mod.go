package searcher

import (
	"boardteacher/game"
)

const (
	// WinScore is the base value of a won position. Terminal values add the
	// remaining depth so that quicker wins and slower losses score better.
	WinScore = 1_000_000
	// Infinity bounds every score the search can produce.
	Infinity = 10_000_000
)

// Result is the value of a position and the move that achieves it. Move is nil
// for terminal positions, depth-0 positions and positions without moves.
type Result struct {
	Value int
	Move  game.Move
}

// terminalScore scores a finished game from perspective's point of view.
func terminalScore(outcome game.Outcome, perspective game.Player, depth int) int {
	switch outcome.Winner() {
	case game.None:
		return 0
	case perspective:
		return WinScore + depth
	default:
		return -WinScore - depth
	}
}
