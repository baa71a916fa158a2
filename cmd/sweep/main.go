package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/mines"
)

var log = logrus.New()

type options struct {
	width   int
	height  int
	mines   int
	games   int
	seed    uint64
	workers int
	logFile string
	verbose bool
}

func parseOptions() options {
	var o options
	flag.IntVar(&o.width, "width", 16, "board width")
	flag.IntVar(&o.height, "height", 16, "board height")
	flag.IntVar(&o.mines, "mines", 40, "mines per board")
	flag.IntVar(&o.games, "games", 100, "number of games to play")
	flag.Uint64Var(&o.seed, "seed", 1, "base random seed")
	flag.IntVar(&o.workers, "workers", 4, "games played concurrently")
	flag.StringVar(&o.logFile, "log-file", "", "write logs to a rotating file")
	flag.BoolVar(&o.verbose, "v", false, "log every game")
	flag.Parse()
	return o
}

func setupLog(o options) error {
	log.SetLevel(logrus.InfoLevel)
	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if o.logFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   o.logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      log.GetLevel(),
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return fmt.Errorf("unable to set up log file: %w", err)
	}
	log.AddHook(hook)
	return nil
}

type tally struct {
	mu         sync.Mutex
	played     int
	won        int
	moves      int
	guesses    int
	minesFound int
}

func (t *tally) add(res *agent.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.played++
	if res.Won {
		t.won++
	}
	t.moves += res.Moves
	t.guesses += res.Guesses
	t.minesFound += res.MinesFound
}

func playOne(params mines.GameParams, rnd *rand.Rand) (*agent.Result, error) {
	x, y := rnd.IntN(params.Width), rnd.IntN(params.Height)
	game, first, err := mines.NewGame(&params, x, y, rnd)
	if err != nil {
		return nil, err
	}

	a := agent.New(params.Width, params.Height, rnd)
	res, err := a.Play(game, first)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func main() {
	o := parseOptions()
	if err := setupLog(o); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	params := mines.GameParams{
		Width:     o.width,
		Height:    o.height,
		MineCount: o.mines,
	}
	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}

	log.WithFields(logrus.Fields{
		"board": params.Seed(),
		"games": o.games,
		"seed":  o.seed,
	}).Info("starting run")

	var (
		t tally
		g errgroup.Group
	)
	g.SetLimit(o.workers)

	for i := 0; i < o.games; i++ {
		rnd := rand.New(rand.NewPCG(o.seed, uint64(i)))
		g.Go(func() error {
			res, err := playOne(params, rnd)
			if err != nil {
				return err
			}
			t.add(res)
			log.WithFields(logrus.Fields{
				"won":         res.Won,
				"moves":       res.Moves,
				"guesses":     res.Guesses,
				"mines_found": res.MinesFound,
			}).Debug("game finished")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	log.WithFields(logrus.Fields{
		"played":      t.played,
		"won":         t.won,
		"win_rate":    fmt.Sprintf("%.1f%%", 100*float64(t.won)/float64(t.played)),
		"avg_moves":   fmt.Sprintf("%.1f", float64(t.moves)/float64(t.played)),
		"avg_guesses": fmt.Sprintf("%.1f", float64(t.guesses)/float64(t.played)),
		"mines_found": t.minesFound,
	}).Info("run complete")
}
