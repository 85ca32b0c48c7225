package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boardteacher/agent"
	"boardteacher/cache"
	"boardteacher/config"
	"boardteacher/expand"
	"boardteacher/experiments"
	"boardteacher/experiments/metrics"
	"boardteacher/game"
	"boardteacher/games"
	"boardteacher/render"
	"boardteacher/searcher"
	"boardteacher/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: boardteacher <command> [flags]

commands:
  play    play training games and fill the move table
  expand  solve every position within a number of plies
  serve   answer move requests over HTTP
  show    print a position and the teacher's move
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "play":
		err = runPlay(ctx, args)
	case "expand":
		err = runExpand(ctx, args)
	case "serve":
		err = runServe(ctx, args)
	case "show":
		err = runShow(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg(os.Args[1] + " failed")
		os.Exit(1)
	}
}

// setup parses the common flags and loads the config.
func setup(fs *flag.FlagSet, args []string) (config.Config, error) {
	path := fs.String("config", "boardteacher.yaml", "Path of the YAML config file")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(*path)
	if err != nil {
		return cfg, err
	}
	zerolog.SetGlobalLevel(cfg.Level())
	return cfg, nil
}

// table is a game with its settings and the move cache loaded from disk.
type table struct {
	settings config.Game
	codec    game.Codec
	start    game.State
	cache    *cache.Cache
}

func openTable(cfg config.Config, name string) (*table, error) {
	settings, err := cfg.Game(name)
	if err != nil {
		return nil, err
	}
	codec, start, err := games.Lookup(name, settings.DrawLimit)
	if err != nil {
		return nil, err
	}
	var options []cache.Option
	if mirror, ok := codec.(game.Mirrorer); ok {
		options = append(options, cache.WithMirror(mirror))
	}
	c := cache.New(codec, options...)
	if err := c.Load(settings.CachePath); err != nil {
		return nil, err
	}
	return &table{settings: settings, codec: codec, start: start, cache: c}, nil
}

// teacher builds a teacher on the shared cache. At debug level its searches
// collect node and cutoff counts.
func (t *table) teacher(seed uint64) *agent.Teacher {
	options := []agent.Option{
		agent.WithCache(t.cache),
		agent.WithDepth(t.settings.Depth),
		agent.WithExploration(t.settings.Exploration),
		agent.WithSeed(seed),
	}
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		options = append(options, agent.WithSearcher(searcher.New(searcher.WithMetrics())))
	}
	return agent.NewTeacher(t.codec, options...)
}

func (t *table) save() error {
	return t.cache.Save(t.settings.CachePath)
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	name := fs.String("game", "tictactoe", "Game to play")
	numGames := fs.Int("games", 10, "Number of games")
	opponent := fs.String("opponent", experiments.OpponentRandom, "Opponent: random or self")
	records := fs.String("records", "", "Directory for CSV game records")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}

	t, err := openTable(cfg, *name)
	if err != nil {
		return err
	}
	played, err := experiments.Run(ctx, t.teacher(cfg.Seed), t.start, experiments.Config{
		Games:     *numGames,
		SaveEvery: cfg.SaveEvery,
		Opponent:  *opponent,
		Seed:      cfg.Seed,
	}, t.save)
	if *records != "" && len(played) > 0 {
		w, werr := metrics.NewWriter(*records)
		if werr == nil {
			werr = w.WriteGameRecords(played)
		}
		if werr != nil {
			return werr
		}
		log.Info().Msgf("stored game records in %s", w.Dir())
	}
	return err
}

func runExpand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("expand", flag.ExitOnError)
	name := fs.String("game", "connectfour", "Game to expand")
	plies := fs.Int("plies", 4, "Number of plies from the initial position")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}

	t, err := openTable(cfg, *name)
	if err != nil {
		return err
	}
	seed := cfg.Seed
	summary, err := expand.Run(ctx, func() *agent.Teacher {
		seed++
		return t.teacher(seed)
	}, t.start, *plies, cfg.Workers)
	log.Info().Msgf("expanded %d positions: %d searches, %d cache hits", summary.Positions, summary.Searches, summary.CacheHits)
	if saveErr := t.save(); saveErr != nil && err == nil {
		err = saveErr
	}
	return err
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "Listen address, overrides the config")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	var tables []*table
	var teachers []*agent.Teacher
	for _, name := range games.Names() {
		t, err := openTable(cfg, name)
		if err != nil {
			return err
		}
		tables = append(tables, t)
		teachers = append(teachers, t.teacher(cfg.Seed))
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: server.New(teachers...).Handler()}
	errs := make(chan error, 1)
	go func() {
		log.Info().Msgf("serving moves on %s", cfg.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err = <-errs:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = srv.Shutdown(shutdownCtx)
	}
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	for _, t := range tables {
		if saveErr := t.save(); saveErr != nil && err == nil {
			err = saveErr
		}
	}
	return err
}

func runShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	name := fs.String("game", "tictactoe", "Game of the position")
	key := fs.String("key", "", "Position key, the initial position when empty")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}

	t, err := openTable(cfg, *name)
	if err != nil {
		return err
	}
	state := t.start
	if *key != "" {
		if state, err = t.codec.Decode(game.Key(*key)); err != nil {
			return err
		}
	}

	r := render.New(os.Stdout)
	r.Print(state)
	if state.Outcome() != game.InProgress {
		return nil
	}
	move, err := t.teacher(cfg.Seed).BestMove(state, t.settings.Depth, 0)
	if err != nil {
		return err
	}
	fmt.Printf("best move: %s\n", t.codec.EncodeMove(move))
	return nil
}
