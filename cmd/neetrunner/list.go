package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/programme-lv/neetrunner/internal/registry"
	"github.com/programme-lv/neetrunner/internal/report"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "list compiled and on-disk problems",
		Flags:  []cli.Flag{&cli.BoolFlag{Name: "ascii", Usage: "disable unicode output"}},
		Action: list,
	}
}

func list(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("ascii") {
		cfg.Display.ASCII = cmd.Bool("ascii")
	}
	log := newLogger(cfg)
	loader := registry.NewLoader(registry.Default, cfg.Paths.Solutions, log)

	ids := registry.Default.IDs()
	onDisk, _ := filepath.Glob(filepath.Join(cfg.Paths.Solutions, "*.toml"))
	for _, p := range onDisk {
		id := strings.TrimSuffix(filepath.Base(p), ".toml")
		if _, err := registry.Default.Lookup(id); err != nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	caps := report.DetectCaps(cfg.Display.ASCII)
	t := table.NewWriter()
	if caps.Unicode {
		t.SetStyle(table.StyleRounded)
	}
	t.AppendHeader(table.Row{"Problem", "Source", "Variants", "Compare", "Generator"})
	for _, id := range ids {
		mod, md, mode := loader.LoadSolution(id)
		if mod == nil {
			t.AppendRow(table.Row{id, "broken", "-", "-", "-"})
			continue
		}
		source := "compiled"
		if mod.External() {
			source = mod.File
		}
		variants := "legacy"
		if md != nil {
			variants = strings.Join(md.Keys(), ", ")
		}
		gen := "-"
		if g := loader.LoadGenerator(id); g != nil {
			gen = "yes"
			if _, ok := g.(registry.ComplexityGenerator); ok {
				gen = "yes, complexity"
			}
		}
		t.AppendRow(table.Row{id, source, variants, string(mode), gen})
	}
	fmt.Fprintln(os.Stdout, t.Render())
	return nil
}
