package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/wildcatch/internal/core/config"
	"github.com/zeusync/wildcatch/internal/core/observability/log"
	"github.com/zeusync/wildcatch/internal/injector"
	"github.com/zeusync/wildcatch/internal/pilot"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	tickRate := flag.Float64("tick-rate", 60, "simulation ticks per second")
	autopilot := flag.Bool("autopilot", true, "let a scripted player drive the game")
	pilotTree := flag.String("pilot-tree", "", "path to a YAML behavior tree for the autopilot")
	duration := flag.Duration("duration", 0, "stop after this long; zero runs until interrupted")
	flag.Parse()

	if err := run(*configPath, *tickRate, *autopilot, *pilotTree, *duration); err != nil {
		fmt.Fprintln(os.Stderr, "wildcatch:", err)
		os.Exit(1)
	}
}

func run(configPath string, tickRate float64, autopilot bool, pilotTree string, duration time.Duration) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	game, err := injector.InitializeGame(cfg)
	if err != nil {
		return err
	}
	if l, ok := game.Logger.(*log.Logger); ok {
		defer func() { _ = l.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	h := newHost(game, tickRate)
	if autopilot {
		if h.pilot, err = newPilot(game, pilotTree); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Viewer.Enabled {
		sub, err := game.Viewer.Attach(game.Bus)
		if err != nil {
			return err
		}
		defer func() { _ = sub.Cancel() }()
		g.Go(func() error { return game.Viewer.Run(ctx) })
	}
	g.Go(func() error { return h.run(ctx) })

	game.Logger.Info("wildcatch started",
		log.Float64("tick_rate", tickRate),
		log.Bool("autopilot", autopilot),
		log.Bool("viewer", cfg.Viewer.Enabled),
		log.String("viewer_addr", cfg.Viewer.Addr),
	)
	return g.Wait()
}

func newPilot(game *injector.Game, treePath string) (*pilot.Pilot, error) {
	if treePath == "" {
		return pilot.New(game.Sim)
	}
	f, err := os.Open(treePath)
	if err != nil {
		return nil, fmt.Errorf("open pilot tree: %w", err)
	}
	defer f.Close()
	return pilot.Load(game.Sim, f)
}
