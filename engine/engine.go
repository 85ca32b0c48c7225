package engine

import (
	"time"

	"boardteacher/game"
	"boardteacher/meta"
)

const MaxMoves = meta.MAX_TURNS

type GameMetric struct {
	StartingPlayer game.Player
	Outcome        game.Outcome
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	// Repetition is set when the game was drawn by threefold repetition.
	Repetition bool
	// Capped is set when the game was stopped at the move limit.
	Capped bool
}

type Engine interface {
	// Run plays a game till it is decided or a max number of moves is reached
	Run() (game.Outcome, GameMetric, error)
}
