package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/programme-lv/neetrunner/internal/complexity"
	"github.com/programme-lv/neetrunner/internal/environment"
	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/gatherer"
	"github.com/programme-lv/neetrunner/internal/gatherer/natsgath"
	"github.com/programme-lv/neetrunner/internal/gatherer/sqsgath"
	"github.com/programme-lv/neetrunner/internal/gatherer/termgath"
	"github.com/programme-lv/neetrunner/internal/registry"
	"github.com/programme-lv/neetrunner/internal/report"
	"github.com/programme-lv/neetrunner/internal/tester"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "test the solutions of a problem",
		ArgsUsage: "<problem>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "method", Aliases: []string{"m"}, Usage: "run only this variant"},
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "run every variant"},
			&cli.BoolFlag{Name: "benchmark", Aliases: []string{"b"}, Usage: "print per-case timings"},
			&cli.BoolFlag{Name: "memory", Usage: "sample peak RSS of every case"},
			&cli.BoolFlag{Name: "save-failed", Usage: "save inputs of failed generated cases"},
			&cli.IntFlag{Name: "generate", Aliases: []string{"g"}, Usage: "number of generated cases per method"},
			&cli.Int64Flag{Name: "seed", Usage: "generator seed"},
			&cli.BoolFlag{Name: "estimate", Usage: "estimate time complexity"},
			&cli.BoolFlag{Name: "memory-trace", Usage: "print per-method RSS sparklines"},
			&cli.BoolFlag{Name: "trace-compare", Usage: "rank methods by peak RSS"},
			&cli.BoolFlag{Name: "memory-per-case", Usage: "print the per-case memory table"},
			&cli.IntFlag{Name: "debug-top-k", Usage: "print the k heaviest cases per method"},
			&cli.BoolFlag{Name: "ascii", Usage: "disable unicode output"},
		},
		Action: run,
	}
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cmd *cli.Command, cfg *environment.Config) {
	if cmd.IsSet("benchmark") {
		cfg.Run.Benchmark = cmd.Bool("benchmark")
	}
	if cmd.IsSet("memory") {
		cfg.Run.ProfileMemory = cmd.Bool("memory")
	}
	if cmd.IsSet("save-failed") {
		cfg.Run.SaveFailed = cmd.Bool("save-failed")
	}
	if cmd.IsSet("generate") {
		cfg.Run.GenerateCount = cmd.Int("generate")
	}
	if cmd.IsSet("seed") {
		seed := cmd.Int64("seed")
		cfg.Run.Seed = &seed
	}
	if cmd.IsSet("ascii") {
		cfg.Display.ASCII = cmd.Bool("ascii")
	}
	if cmd.IsSet("debug-top-k") {
		cfg.Display.DebugTopK = cmd.Int("debug-top-k")
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	problem := cmd.Args().First()
	if problem == "" {
		return errors.New("missing problem id, see 'neetrunner list'")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := newLogger(cfg)
	if cfg.Source != "" {
		log.Debug("loaded config", "path", cfg.Source)
	}

	caps := report.DetectCaps(cfg.Display.ASCII)
	exec, err := executor.New(log)
	if err != nil {
		return err
	}
	loader := registry.NewLoader(registry.Default, cfg.Paths.Solutions, log)
	estimator := complexity.New(complexity.Options{
		Sizes:       cfg.Complexity.Sizes,
		RunsPerSize: cfg.Complexity.RunsPerSize,
		TrackAlloc:  cfg.Run.ProfileMemory,
	}, log)

	runUuid := uuid.NewString()
	gath := gatherer.Multi{termgath.New(os.Stdout, cfg.Run.Benchmark, caps)}
	sinks, closeSinks := publishers(ctx, cfg.Publish, runUuid, log)
	defer closeSinks()
	gath = append(gath, sinks...)

	t := tester.NewTester(loader, exec, estimator, gath, log)
	results, err := t.RunProblem(ctx, tester.Options{
		Problem:       problem,
		TestsDir:      cfg.Paths.Tests,
		Method:        cmd.String("method"),
		All:           cmd.Bool("all"),
		ProfileMemory: cfg.Run.ProfileMemory,
		SaveFailed:    cfg.Run.SaveFailed,
		GenerateCount: cfg.Run.GenerateCount,
		Seed:          cfg.Run.Seed,
		Estimate:      cmd.Bool("estimate"),
	})
	if err != nil {
		return err
	}

	report.New(os.Stdout, caps, report.Options{
		Memory:        cfg.Run.ProfileMemory,
		MemoryTrace:   cmd.Bool("memory-trace"),
		TraceCompare:  cmd.Bool("trace-compare"),
		MemoryPerCase: cmd.Bool("memory-per-case"),
		TopK:          cfg.Display.DebugTopK,
	}).Render(results)

	for _, r := range results {
		if !r.AllPassed() {
			return cli.Exit(fmt.Sprintf("%s: %s failed", problem, r.Method), 1)
		}
	}
	return nil
}

// publishers connects the configured event sinks. Failures are logged
// and the sink is left out; publishing never blocks a run.
func publishers(ctx context.Context, cfg environment.Publish, runUuid string, log *slog.Logger) ([]tester.Gatherer, func()) {
	var out []tester.Gatherer
	closers := []func(){}

	if cfg.NatsURL != "" {
		nc, err := natsgath.Connect(cfg.NatsURL)
		if err != nil {
			log.Warn("nats publishing disabled", "error", err)
		} else {
			out = append(out, natsgath.New(nc, runUuid, cfg.NatsSubject, log))
			closers = append(closers, func() {
				if err := nc.Drain(); err != nil {
					log.Warn("failed to drain nats connection", "error", err)
				}
			})
		}
	}
	if cfg.SQSQueueURL != "" {
		g, err := sqsgath.New(ctx, runUuid, cfg.SQSQueueURL, cfg.SQSRegion, log)
		if err != nil {
			log.Warn("sqs publishing disabled", "error", err)
		} else {
			out = append(out, g)
		}
	}
	if len(out) > 0 {
		log.Info("publishing run events", "run", runUuid, "sinks", len(out))
	}
	return out, func() {
		for _, c := range closers {
			c()
		}
	}
}
