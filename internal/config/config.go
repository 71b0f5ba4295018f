// Package config loads runtime settings from a .env file and the process
// environment. Environment variables win over .env entries.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/playback"
)

// ErrInvalid wraps every malformed setting.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full set of host settings.
type Config struct {
	Port         string
	LogLevel     zerolog.Level
	CellSize     int
	MaxCells     int // per session grid, rows×cols
	MaxCellSize  int // PNG and viewport cell edge
	Interval     time.Duration
	PathDelay    time.Duration
	FadeSteps    int
	FadeInterval time.Duration
	ReplayOrder  playback.ReplayOrder
	HistoryDSN   string // empty disables the run history
	ClientOrigin string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port:         "5180",
		LogLevel:     zerolog.InfoLevel,
		CellSize:     25,
		MaxCells:     10000,
		MaxCellSize:  50,
		Interval:     50 * time.Millisecond,
		PathDelay:    time.Second,
		FadeSteps:    50,
		FadeInterval: 20 * time.Millisecond,
		ReplayOrder:  playback.NewestFirst,
		HistoryDSN:   "./data/history.db",
		ClientOrigin: "http://localhost:5173",
	}
}

// Load reads files (".env" when none are given; a missing file is not an
// error) into the environment and then parses it.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv parses settings through lookup, which has the signature of
// os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	p := parser{lookup: lookup}

	p.str("PORT", &c.Port)
	p.level("LOG_LEVEL", &c.LogLevel)
	p.positive("CELL_SIZE", &c.CellSize)
	p.positive("MAX_CELLS", &c.MaxCells)
	p.positive("MAX_CELL_SIZE", &c.MaxCellSize)
	p.duration("TICK_INTERVAL", &c.Interval)
	p.duration("PATH_DELAY", &c.PathDelay)
	p.nonNegative("FADE_STEPS", &c.FadeSteps)
	p.duration("FADE_INTERVAL", &c.FadeInterval)
	p.order("REPLAY_ORDER", &c.ReplayOrder)
	if v, ok := lookup("HISTORY_DSN"); ok {
		c.HistoryDSN = v // set-but-empty disables history
	}
	p.str("CLIENT_ORIGIN", &c.ClientOrigin)

	if p.err != nil {
		return Config{}, p.err
	}
	if c.MaxCells > grid.MaxCells {
		return Config{}, fmt.Errorf("%w: MAX_CELLS=%d: must be <= %d", ErrInvalid, c.MaxCells, grid.MaxCells)
	}
	if c.CellSize > c.MaxCellSize {
		return Config{}, fmt.Errorf("%w: CELL_SIZE=%d: must be <= MAX_CELL_SIZE (%d)", ErrInvalid, c.CellSize, c.MaxCellSize)
	}
	return c, nil
}

// PlaybackOptions converts the pacing settings into scheduler options.
func (c Config) PlaybackOptions() []playback.Option {
	return []playback.Option{
		playback.WithInterval(c.Interval),
		playback.WithPathDelay(c.PathDelay),
		playback.WithFade(c.FadeSteps, c.FadeInterval),
		playback.WithReplayOrder(c.ReplayOrder),
	}
}

// parser keeps the first error and skips unset or empty keys.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) get(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.lookup(key)
	return v, ok && v != ""
}

func (p *parser) fail(key, v string, err error) {
	p.err = fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, v, err)
}

func (p *parser) str(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *parser) level(key string, dst *zerolog.Level) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	lvl, err := zerolog.ParseLevel(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = lvl
}

func (p *parser) integer(key string, dst *int, min int) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err == nil && n < min {
		err = fmt.Errorf("must be >= %d", min)
	}
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = n
}

func (p *parser) positive(key string, dst *int)    { p.integer(key, dst, 1) }
func (p *parser) nonNegative(key string, dst *int) { p.integer(key, dst, 0) }

func (p *parser) duration(key string, dst *time.Duration) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err == nil && d < 0 {
		err = errors.New("must not be negative")
	}
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = d
}

func (p *parser) order(key string, dst *playback.ReplayOrder) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	o, err := playback.ParseReplayOrder(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = o
}
