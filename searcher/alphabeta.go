package searcher

import (
	"boardteacher/game"

	"github.com/rs/zerolog/log"
)

type Option func(s *Searcher)

// WithoutPruning turns the search into plain minimax.
func WithoutPruning() Option {
	return func(s *Searcher) {
		s.pruning = false
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = NewMetricsCollector()
	}
}

// Searcher runs depth limited minimax with alpha-beta pruning. A Searcher is
// not safe for concurrent use when metrics are enabled.
type Searcher struct {
	pruning bool
	metrics MetricsCollector
	last    SearchMetrics
}

func New(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		pruning: true,
		metrics: NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Search finds the best move for the side to move, looking depth plies ahead.
func (s *Searcher) Search(state game.State, depth int) Result {
	s.metrics.Start(depth)
	result := s.AlphaBeta(state, state.Player(), depth, -Infinity, Infinity, true)
	s.last = s.metrics.Complete()
	event := log.Debug().Int("depth", depth).Int("value", result.Value)
	if !s.last.StartTime.IsZero() {
		event = event.
			Int64("nodes", s.last.Nodes).
			Int64("cutoffs", s.last.Cutoffs).
			Dur("duration", s.last.Duration)
	}
	event.Msg("search complete")
	return result
}

// LastMetrics returns the metrics of the most recent Search.
func (s *Searcher) LastMetrics() SearchMetrics {
	return s.last
}

// AlphaBeta scores state from perspective's point of view. maximizing is true
// when perspective is the side to move. Moves are tried in the order returned
// by LegalMoves and the best move only changes on a strict improvement, so the
// first of several equally valued moves wins.
func (s *Searcher) AlphaBeta(state game.State, perspective game.Player, depth, alpha, beta int, maximizing bool) Result {
	s.metrics.AddNode()
	if outcome := state.Outcome(); outcome != game.InProgress {
		s.metrics.AddTerminal()
		return Result{Value: terminalScore(outcome, perspective, depth)}
	}
	if depth <= 0 {
		s.metrics.AddLeaf()
		return Result{Value: state.Evaluate(perspective)}
	}

	best := Result{Value: Infinity}
	if maximizing {
		best.Value = -Infinity
	}
	for _, move := range state.LegalMoves() {
		child := s.AlphaBeta(state.Play(move), perspective, depth-1, alpha, beta, !maximizing)
		if maximizing && child.Value > best.Value {
			best = Result{Value: child.Value, Move: move}
			alpha = max(alpha, best.Value)
		} else if !maximizing && child.Value < best.Value {
			best = Result{Value: child.Value, Move: move}
			beta = min(beta, best.Value)
		}
		if s.pruning && beta <= alpha {
			s.metrics.AddCutoff()
			break
		}
	}
	return best
}
