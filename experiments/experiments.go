// Package experiments plays training sessions between a teacher and an
// opponent, saving the teacher's cache as it fills.
package experiments

import (
	"context"
	"fmt"

	"boardteacher/agent"
	"boardteacher/engine"
	"boardteacher/experiments/metrics"
	"boardteacher/game"
	"boardteacher/meta"

	"github.com/rs/zerolog/log"
)

const (
	OpponentRandom = "random"
	OpponentSelf   = "self"
)

type Config struct {
	Games     int
	SaveEvery int
	Opponent  string
	Seed      uint64
}

type Summary struct {
	Wins, Losses, Draws int
}

func Summarize(records []metrics.GameRecord) Summary {
	var s Summary
	for _, record := range records {
		switch record.TeacherResult() {
		case "win":
			s.Wins++
		case "loss":
			s.Losses++
		default:
			s.Draws++
		}
	}
	return s
}

func opponent(cfg Config, teacher *agent.Teacher) (agent.Agent, error) {
	switch cfg.Opponent {
	case OpponentRandom:
		return agent.NewRandom(cfg.Seed), nil
	case OpponentSelf:
		return teacher, nil
	}
	return nil, fmt.Errorf("unknown opponent %q", cfg.Opponent)
}

// Run plays cfg.Games games from start, alternating the teacher's side. save
// is called every cfg.SaveEvery games and once at the end. A cancelled
// context stops the session between games; the records played so far are
// returned with the context's error.
func Run(ctx context.Context, teacher *agent.Teacher, start game.State, cfg Config, save func() error) ([]metrics.GameRecord, error) {
	if cfg.SaveEvery < 1 {
		cfg.SaveEvery = meta.SAVE_EVERY
	}
	if cfg.Opponent == "" {
		cfg.Opponent = OpponentRandom
	}
	opp, err := opponent(cfg, teacher)
	if err != nil {
		return nil, err
	}
	name := teacher.Codec().Name()
	log.Info().Msgf("starting %d %s games against %s...", cfg.Games, name, cfg.Opponent)

	records := []metrics.GameRecord{}
	for i := 0; i < cfg.Games; i++ {
		if err := ctx.Err(); err != nil {
			log.Warn().Msgf("session interrupted after %d games", i)
			return records, finish(save, err)
		}

		side := game.Player1
		agents := []agent.Agent{teacher, opp}
		if i%2 == 1 {
			side = game.Player2
			agents = []agent.Agent{opp, teacher}
		}
		outcome, gameMetric, err := engine.LocalEngine(start, teacher.Codec(), agents).Run()
		if err != nil {
			return records, finish(save, fmt.Errorf("game %d: %w", i+1, err))
		}
		records = append(records, metrics.GameRecord{
			ID:          i + 1,
			Game:        name,
			Opponent:    cfg.Opponent,
			TeacherSide: side,
			GameMetric:  gameMetric,
		})
		log.Debug().Msgf("completed game %d of %d: %s", i+1, cfg.Games, outcome)

		if (i+1)%cfg.SaveEvery == 0 {
			if err := save(); err != nil {
				return records, err
			}
			log.Info().Msgf("saved cache after %d games", i+1)
		}
	}

	s := Summarize(records)
	log.Info().Msgf("completed session: %d wins, %d losses, %d draws", s.Wins, s.Losses, s.Draws)
	return records, finish(save, nil)
}

// finish saves once more and returns the first error.
func finish(save func() error, err error) error {
	if saveErr := save(); saveErr != nil && err == nil {
		return saveErr
	}
	return err
}
