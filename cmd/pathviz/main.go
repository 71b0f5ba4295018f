// Command pathviz animates a pathfinding run in the terminal.
//
//	pathviz -algorithm dfs -maze -seed 7
//	pathviz -instant -png out.png
//
// Pacing defaults come from .env and the environment, as for the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/katalvlaran/pathviz/algorithms"
	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/internal/config"
	"github.com/katalvlaran/pathviz/internal/render"
	"github.com/katalvlaran/pathviz/maze"
	"github.com/katalvlaran/pathviz/playback"
)

type flags struct {
	algorithm string
	maze      bool
	rows      int
	cols      int
	seed      int64
	instant   bool
	png       string
	cell      int
	order     string
}

func main() {
	var f flags
	flag.StringVar(&f.algorithm, "algorithm", algorithms.Dijkstra, "pathfinding algorithm (dijkstra, dfs)")
	flag.BoolVar(&f.maze, "maze", false, "carve a recursive-division maze first")
	flag.IntVar(&f.rows, "rows", 0, "cells along X (default: fit the terminal)")
	flag.IntVar(&f.cols, "cols", 0, "cells along Y (default: fit the terminal)")
	flag.Int64Var(&f.seed, "seed", 0, "random seed for endpoints and maze (0: time)")
	flag.BoolVar(&f.instant, "instant", false, "skip the animation and print the final grid")
	flag.StringVar(&f.png, "png", "", "also write the final grid to this PNG file")
	flag.IntVar(&f.cell, "cell", render.DefaultCellSize, "PNG cell size in pixels")
	flag.StringVar(&f.order, "order", "", "explored replay order (newest, oldest)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, f); err != nil {
		log.Fatal().Err(err).Msg("pathviz")
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if f.order != "" {
		if cfg.ReplayOrder, err = playback.ParseReplayOrder(f.order); err != nil {
			return err
		}
	}

	seed := f.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	rows, cols := f.rows, f.cols
	if rows < 1 || cols < 1 {
		rows, cols = viewport()
	}
	g, err := grid.New(rows, cols, rng)
	if err != nil {
		return err
	}

	reg := algorithms.Default()
	pf, err := reg.Pathfinder(f.algorithm)
	if err != nil {
		return err
	}

	pal := render.DefaultPalette()
	term := render.NewTerminal(os.Stdout, pal, cfg.FadeSteps == 0)

	opts := cfg.PlaybackOptions()
	opts = append(opts, playback.WithLogger(log.Logger), playback.WithOnComplete(func(s playback.Summary) {
		log.Info().
			Str("algorithm", s.Algorithm).
			Int("explored", s.Explored).
			Int("path", s.PathLen).
			Bool("found", s.Found).
			Dur("took", s.Duration).
			Msg("done")
	}))

	var clock *playback.ManualClock
	if f.instant {
		clock = playback.NewManualClock()
		opts = append(opts, playback.WithClock(clock))
	} else {
		opts = append(opts, playback.WithRenderer(term))
		if err := term.Paint(g); err != nil {
			return err
		}
	}

	sched, err := playback.New(g, opts...)
	if err != nil {
		return err
	}
	defer sched.Close()

	if f.maze {
		if _, err := sched.GenerateMaze(algorithms.RecursiveDivide, maze.New(maze.WithRand(rng))); err != nil {
			return err
		}
	}
	if _, err := sched.Solve(f.algorithm, pf); err != nil {
		return err
	}

	if clock != nil {
		clock.Drain()
		if err := term.Paint(sched.Snapshot()); err != nil {
			return err
		}
	} else {
		select {
		case <-sched.Idle():
			// let the last fades settle
			time.Sleep(time.Duration(cfg.FadeSteps) * cfg.FadeInterval)
		case <-ctx.Done():
			sched.Cancel()
		}
	}
	_ = term.Move(cols + 1)

	if f.png != "" {
		out, err := os.Create(f.png)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := render.EncodePNG(out, sched.Snapshot(), f.cell, pal); err != nil {
			return err
		}
		log.Info().Str("file", f.png).Msg("png written")
	}
	return nil
}

// viewport fits the grid to the terminal, two columns per cell and one
// spare line for the cursor.
func viewport() (rows, cols int) {
	w, h, err := terminal.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < 4 || h < 3 {
		w, h = 80, 24
	}
	return w / 2, h - 1
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
}
