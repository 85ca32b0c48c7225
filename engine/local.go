package engine

import (
	"fmt"
	"time"

	"boardteacher/agent"
	"boardteacher/game"

	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

func WithMaxMoves(moves int) Option {
	return func(e *Local) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

// WithObserver is called after every move with the new state.
func WithObserver(observe func(Update)) Option {
	return func(e *Local) {
		e.observe = observe
	}
}

type Update struct {
	Move  game.Move
	State game.State
	Key   game.Key
}

// Local plays a game in process. Agents are indexed by player: agents[0]
// plays Player1.
type Local struct {
	State    game.State
	History  []Update
	codec    game.Codec
	agents   []agent.Agent
	maxMoves int
	seen     map[game.Key]int
	observe  func(Update)
}

func LocalEngine(state game.State, codec game.Codec, agents []agent.Agent, options ...Option) *Local {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	e := &Local{
		State:    state,
		codec:    codec,
		agents:   agents,
		maxMoves: MaxMoves,
		seen:     map[game.Key]int{codec.Encode(state): 1},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until the game is decided. A position occurring
// for the third time with the same side to move is a draw, as is reaching
// the move limit.
func (e *Local) Run() (game.Outcome, GameMetric, error) {
	metric := GameMetric{
		StartingPlayer: e.State.Player(),
		StartTime:      time.Now(),
	}
	log.Debug().Msgf("%s is starting", e.State.Player())

	outcome := e.State.Outcome()
	for outcome == game.InProgress {
		if metric.TotalMoves >= e.maxMoves {
			metric.Capped = true
			outcome = game.Draw
			break
		}
		player := e.State.Player()
		move, err := e.agents[player-1].FindMove(e.State)
		if err != nil {
			return game.InProgress, metric, fmt.Errorf("%s failed to move: %w", player, err)
		}

		e.State = e.State.Play(move)
		u := Update{Move: move, State: e.State, Key: e.codec.Encode(e.State)}
		e.History = append(e.History, u)
		if e.observe != nil {
			e.observe(u)
		}
		metric.TotalMoves++

		outcome = e.State.Outcome()
		e.seen[u.Key]++
		if outcome == game.InProgress && e.seen[u.Key] >= 3 {
			metric.Repetition = true
			outcome = game.Draw
		}
	}

	metric.Outcome = outcome
	metric.EndTime = time.Now()
	metric.Duration = metric.EndTime.Sub(metric.StartTime)
	log.Debug().Msgf("game over after %d moves: %s", metric.TotalMoves, outcome)
	return outcome, metric, nil
}
