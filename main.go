package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"skirmish/pkg/game/config"
	"skirmish/pkg/game/devtools"
	"skirmish/pkg/game/events"
	"skirmish/pkg/game/renderer"
	"skirmish/pkg/game/renderer/tui"
	"skirmish/pkg/game/state"
)

type options struct {
	configPath string
	logPath    string
	debug      bool
	plain      bool
	seed       int64
	iterations int
	delay      time.Duration
	dumpDir    string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "path to a JSON game configuration")
	flag.StringVar(&o.logPath, "log", "", "write logs to this file instead of stderr")
	flag.BoolVar(&o.debug, "debug", false, "log every agent event")
	flag.BoolVar(&o.plain, "plain", false, "render plain text frames without colors")
	flag.Int64Var(&o.seed, "seed", 0, "random seed (0 keeps the configured seed)")
	flag.IntVar(&o.iterations, "iterations", 0, "iteration limit (0 keeps the configured limit)")
	flag.DurationVar(&o.delay, "delay", 200*time.Millisecond, "pause between frames")
	flag.StringVar(&o.dumpDir, "dump", "", "write a map dump to this directory after setup")
	flag.Parse()
	return o
}

func loadConfig(o options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		f, err := os.Open(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		if cfg, err = config.Load(f); err != nil {
			return cfg, err
		}
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if o.iterations != 0 {
		cfg.Iterations = o.iterations
	}
	return cfg, cfg.Validate()
}

func newLogger(o options) (*log.Logger, error) {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	logger.SetLevel(log.InfoLevel)
	if o.debug {
		logger.SetLevel(log.DebugLevel)
	}
	if o.logPath != "" {
		f, err := os.OpenFile(o.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		logger.SetOutput(f)
	}
	return logger, nil
}

func main() {
	o := parseFlags()

	logger, err := newLogger(o)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := loadConfig(o)
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	if o.plain {
		renderer.SetRenderer(renderer.NewPlain(os.Stdout))
	} else {
		renderer.SetRenderer(tui.New(os.Stdout))
	}
	renderer.Init()

	g, err := state.NewGame(cfg, rand.New(rand.NewSource(cfg.Seed)), events.NewLogrusSink(logger))
	if err != nil {
		logger.WithError(err).Fatal("could not set up the game")
	}

	logger.WithFields(log.Fields{
		"seed":     cfg.Seed,
		"size":     fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"soldiers": len(g.Soldiers()),
	}).Info("game ready")

	if o.dumpDir != "" {
		path, err := devtools.DumpMapToFile(g, o.dumpDir)
		if err != nil {
			logger.WithError(err).Error("map dump failed")
		} else {
			logger.WithField("path", path).Info("map dumped")
		}
	}

	renderer.Clear()
	renderer.RenderFrame(g)

	err = g.Run(func(g *state.Game) {
		time.Sleep(o.delay)
		renderer.Clear()
		renderer.RenderFrame(g)
	})
	if err != nil {
		logger.WithError(err).Fatal("game aborted")
	}

	if w := g.Winner(); w != nil {
		renderer.ShowMessage(renderer.StyleText(fmt.Sprintf("Team %d wins after %d iterations", w.ID, g.Iteration), renderer.StyleEntrance))
	} else {
		renderer.ShowMessage(renderer.StyleText(fmt.Sprintf("No winner after %d iterations", g.Iteration), renderer.StyleSubtle))
	}
}
