package config

import (
	"fmt"
	"os"
	"path/filepath"

	"boardteacher/games"
	"boardteacher/meta"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Game holds the per-game teacher settings.
type Game struct {
	Depth       int     `yaml:"depth"`
	Exploration float64 `yaml:"exploration"`
	DrawLimit   int     `yaml:"draw_limit"`
	CachePath   string  `yaml:"cache_path"`
}

type Config struct {
	LogLevel string `yaml:"log_level"`
	Addr     string `yaml:"addr"`
	Seed     uint64 `yaml:"seed"`
	// Workers is the number of goroutines used to expand move tables.
	Workers int `yaml:"workers"`
	// SaveEvery is the number of played games between cache saves.
	SaveEvery int             `yaml:"save_every"`
	Games     map[string]Game `yaml:"games"`
}

func defaultGame(name string) Game {
	return Game{
		Depth:       meta.DEFAULT_DEPTH,
		Exploration: meta.DEFAULT_EXPLORATION,
		DrawLimit:   meta.DRAW_LIMIT,
		CachePath:   filepath.Join("tables", name+".gob"),
	}
}

func Default() Config {
	c := Config{
		LogLevel:  "info",
		Addr:      meta.SERVER_ADDR,
		Seed:      meta.DEFAULT_SEED,
		Workers:   meta.GO_ROUTINES,
		SaveEvery: meta.SAVE_EVERY,
		Games:     make(map[string]Game),
	}
	for _, name := range games.Names() {
		c.Games[name] = defaultGame(name)
	}
	return c
}

// Load reads a YAML config file over the defaults. A missing file yields the
// defaults. Games listed with only some settings keep the defaults for the
// rest.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.overlay(file)
	return c, c.Validate()
}

func (c *Config) overlay(file Config) {
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.Addr != "" {
		c.Addr = file.Addr
	}
	if file.Seed != 0 {
		c.Seed = file.Seed
	}
	if file.Workers != 0 {
		c.Workers = file.Workers
	}
	if file.SaveEvery != 0 {
		c.SaveEvery = file.SaveEvery
	}
	for name, g := range file.Games {
		d := defaultGame(name)
		if g.Depth != 0 {
			d.Depth = g.Depth
		}
		if g.DrawLimit != 0 {
			d.DrawLimit = g.DrawLimit
		}
		if g.CachePath != "" {
			d.CachePath = g.CachePath
		}
		d.Exploration = g.Exploration
		c.Games[name] = d
	}
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.SaveEvery < 1 {
		return fmt.Errorf("save_every must be at least 1, got %d", c.SaveEvery)
	}
	for name, g := range c.Games {
		if !games.Known(name) {
			return fmt.Errorf("games.%s: %w", name, games.ErrUnknownGame)
		}
		if g.Depth < 1 {
			return fmt.Errorf("games.%s.depth must be at least 1, got %d", name, g.Depth)
		}
		if g.Exploration < 0 || g.Exploration > 1 {
			return fmt.Errorf("games.%s.exploration must be in [0,1], got %v", name, g.Exploration)
		}
		if g.DrawLimit < 1 {
			return fmt.Errorf("games.%s.draw_limit must be at least 1, got %d", name, g.DrawLimit)
		}
	}
	return nil
}

// Game returns the settings of the named game.
func (c Config) Game(name string) (Game, error) {
	g, ok := c.Games[name]
	if !ok {
		return Game{}, fmt.Errorf("%w: %q", games.ErrUnknownGame, name)
	}
	return g, nil
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
