// Package termgath prints the pass/fail trail while methods run.
package termgath

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/gatherer"
	"github.com/programme-lv/neetrunner/internal/registry"
	"github.com/programme-lv/neetrunner/internal/report"
	"github.com/programme-lv/neetrunner/internal/tester"
)

// textLimit caps expected/actual/input dumps of failed cases.
const textLimit = 200

type icons struct{ pass, fail, skip string }

var (
	unicodeIcons = icons{pass: "✓", fail: "✗", skip: "○"}
	asciiIcons   = icons{pass: "+", fail: "x", skip: "-"}
)

type TerminalGatherer struct {
	w         io.Writer
	benchmark bool
	icons     icons

	green, red, yellow, faint *color.Color

	StartedAt time.Time
}

var _ tester.Gatherer = (*TerminalGatherer)(nil)

// New writes to w. With benchmark set every case line carries its time.
func New(w io.Writer, benchmark bool, caps report.Caps) *TerminalGatherer {
	t := &TerminalGatherer{
		w:         w,
		benchmark: benchmark,
		icons:     asciiIcons,
		green:     color.New(color.FgGreen),
		red:       color.New(color.FgRed),
		yellow:    color.New(color.FgYellow),
		faint:     color.New(color.Faint),
		StartedAt: time.Now(),
	}
	if caps.Unicode {
		t.icons = unicodeIcons
	}
	for _, c := range []*color.Color{t.green, t.red, t.yellow, t.faint} {
		if caps.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

func (t *TerminalGatherer) StartMethod(problem, method string, info registry.Solution) {
	t.StartedAt = time.Now()
	fmt.Fprintf(t.w, "== %s: %s ==\n", problem, method)
	if info.Class != "" {
		line := fmt.Sprintf("%s.%s", info.Class, info.Method)
		if info.Complexity != "" {
			line += "  " + info.Complexity
		}
		fmt.Fprintln(t.w, t.faint.Sprint(line))
	}
	if info.Description != "" {
		fmt.Fprintln(t.w, t.faint.Sprint(info.Description))
	}
}

func (t *TerminalGatherer) caseLine(icon *color.Color, glyph string, res *executor.CaseResult) string {
	line := fmt.Sprintf("  %s %s [%s]", icon.Sprint(glyph), res.Name, res.ValidationMode)
	if t.benchmark && res.ValidationMode != executor.ModeSkip {
		line += " " + report.FormatMs(res.Elapsed)
	}
	return line
}

func (t *TerminalGatherer) FinishCase(_ string, res *executor.CaseResult) {
	fmt.Fprintln(t.w, t.caseLine(t.green, t.icons.pass, res))
}

func (t *TerminalGatherer) FailCase(_ string, res *executor.CaseResult) {
	fmt.Fprintln(t.w, t.caseLine(t.red, t.icons.fail, res))
	if res.Reason != "" {
		t.detail("reason", res.Reason)
	}
	if res.Generated {
		t.detail("input", res.Input)
	}
	if res.Expected != nil {
		t.detail("expected", *res.Expected)
	} else {
		t.detail("expected", "(none)")
	}
	t.detail("actual", res.Actual)
	if res.ExitCode != 0 && strings.TrimSpace(res.Stderr) != "" {
		t.detail("stderr", res.Stderr)
	}
}

func (t *TerminalGatherer) detail(label, text string) {
	text = strings.TrimRight(gatherer.Truncate(text, textLimit), "\n")
	fmt.Fprintf(t.w, "      %-10s%s\n", label+":", strings.ReplaceAll(text, "\n", "\n                "))
}

func (t *TerminalGatherer) SkipCase(_ string, res *executor.CaseResult) {
	line := t.caseLine(t.yellow, t.icons.skip, res)
	if res.Reason != "" {
		line += " " + t.faint.Sprint(res.Reason)
	}
	fmt.Fprintln(t.w, line)
}

func (t *TerminalGatherer) FinishMethod(res *tester.MethodResult) {
	total := res.Total()
	summary := fmt.Sprintf("%d/%d passed", total.Passed, total.Run())
	if total.Skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", total.Skipped)
	}
	c := t.green
	if total.Failed > 0 {
		c = t.red
	}
	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	fmt.Fprintf(t.w, "-- %s: %s in %s --\n", res.Method, c.Sprint(summary), dur)
}
