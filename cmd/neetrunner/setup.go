package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/programme-lv/neetrunner/internal/environment"
)

func loadConfig(cmd *cli.Command) (*environment.Config, error) {
	if err := environment.LoadDotEnv(cmd.String("env-file")); err != nil {
		return nil, err
	}
	cfg, err := environment.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *environment.Config) *slog.Logger {
	lvl, err := cfg.Log.SlogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
	}))
}
