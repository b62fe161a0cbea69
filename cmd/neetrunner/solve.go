package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/programme-lv/neetrunner/internal/child"
	"github.com/programme-lv/neetrunner/internal/registry"
)

// solveCommand is the subprocess entry point used by the executor.
func solveCommand() *cli.Command {
	return &cli.Command{
		Name:      "solve",
		Hidden:    true,
		ArgsUsage: "<problem>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			problem := cmd.Args().First()
			if problem == "" {
				return errors.New("missing problem id")
			}
			return child.Run(registry.Default, problem, os.Getenv, os.Stdin, os.Stdout, os.Stderr)
		},
	}
}
