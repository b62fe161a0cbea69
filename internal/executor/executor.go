// Package executor runs one case of a solution as a subprocess, samples
// its memory and validates the output.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/programme-lv/neetrunner/internal/cases"
	"github.com/programme-lv/neetrunner/internal/compare"
	"github.com/programme-lv/neetrunner/internal/memprof"
	"github.com/programme-lv/neetrunner/internal/registry"
	"github.com/programme-lv/neetrunner/internal/shape"
)

const (
	EnvSolutionMethod = "SOLUTION_METHOD"
	EnvShapeReport    = "NEETCODE_SHAPE_REPORT"

	DefaultSampleInterval = 10 * time.Millisecond
	samplerJoinTimeout    = 100 * time.Millisecond
)

type Executor struct {
	// Self is the command that runs compiled solutions; the problem id is
	// appended as the last argument.
	Self []string
	// ExtraEnv is appended to the child environment.
	ExtraEnv       []string
	SampleInterval time.Duration

	log *slog.Logger
}

// New returns an executor that re-runs the current binary as
// "<self> solve <problem>".
func New(log *slog.Logger) (*Executor, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve own executable: %w", err)
	}
	return NewWithCommand(log, self, "solve"), nil
}

func NewWithCommand(log *slog.Logger, argv ...string) *Executor {
	if log == nil {
		log = slog.Default()
	}
	return &Executor{
		Self:           argv,
		SampleInterval: DefaultSampleInterval,
		log:            log,
	}
}

// Request describes what to run; it is shared by all cases of a method.
type Request struct {
	Problem       string
	Method        string
	Module        *registry.Module
	Mode          compare.Mode
	ProfileMemory bool
}

// RunCase runs a static case. Cases without expected output are skipped
// unless the module has a judge.
func (e *Executor) RunCase(ctx context.Context, req Request, c cases.Case) CaseResult {
	res := CaseResult{Name: c.Name}
	input, err := cases.ReadFile(c.InputPath)
	if err != nil {
		return e.errored(res, err.Error())
	}
	var expected *string
	if c.ExpectedPath != "" {
		out, err := cases.ReadFile(c.ExpectedPath)
		if err != nil {
			return e.errored(res, err.Error())
		}
		expected = &out
	}
	return e.run(ctx, req, res, input, expected)
}

// RunGeneratedCase runs an in-memory input. Only a judge can validate it.
func (e *Executor) RunGeneratedCase(ctx context.Context, req Request, name, input string) CaseResult {
	return e.run(ctx, req, CaseResult{Name: name, Generated: true}, input, nil)
}

func (e *Executor) run(ctx context.Context, req Request, res CaseResult, input string, expected *string) CaseResult {
	res.Input = input
	res.InputBytes = len(input)
	res.InputShape = shape.Infer(input)
	res.Expected = expected

	hasJudge := req.Module.HasJudge()
	if expected == nil && !hasJudge {
		res.Outcome = Skipped
		res.ValidationMode = ModeSkip
		res.Reason = "no expected output and no judge"
		return res
	}

	argv, err := e.command(req)
	if err != nil {
		return e.errored(res, err.Error())
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = e.env(req.Method)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return e.errored(res, fmt.Sprintf("failed to start solution: %v", err))
	}
	var smp *sampler
	if req.ProfileMemory {
		smp = startSampler(cmd.Process.Pid, e.interval())
	}
	waitErr := cmd.Wait()
	res.Elapsed = time.Since(start)

	if smp != nil {
		samples, err := smp.finish(samplerJoinTimeout)
		if err != nil && len(samples) == 0 {
			e.log.Debug("rss sampling failed", "case", res.Name, "error", err)
		}
		if rss, ok := maxRSS(cmd.ProcessState); ok {
			samples = append(samples, rss)
		}
		if len(samples) > 0 {
			peak := samples[0]
			for _, s := range samples[1:] {
				peak = max(peak, s)
			}
			res.PeakRSSBytes = &peak
		}
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		e.log.Warn("solution did not finish cleanly", "case", res.Name, "error", waitErr)
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	res.Actual = stdout.String()
	res.Stderr = stderr.String()
	if s, ok := shape.FromStderr(res.Stderr); ok {
		res.InputShape = s
	}

	if compare.Compare(res.Actual, expected, input, req.Module.Judge, req.Mode) {
		res.Outcome = Passed
	} else {
		res.Outcome = Failed
	}
	switch {
	case hasJudge && expected != nil:
		res.ValidationMode = ModeJudge
	case hasJudge:
		res.ValidationMode = ModeJudgeOnly
	default:
		res.ValidationMode = ValidationMode(req.Mode)
	}

	e.log.Debug("executed solution",
		"problem", req.Problem,
		"method", req.Method,
		"case", res.Name,
		"status", res.Outcome,
		"exit", res.ExitCode,
		"elapsed", res.Elapsed,
		"peak_rss", memprof.FormatBytes(res.PeakRSSBytes))
	return res
}

// command resolves the child argv and checks that its program exists.
func (e *Executor) command(req Request) ([]string, error) {
	var argv []string
	var file string
	if req.Module.External() {
		argv = req.Module.Command
		file = req.Module.File
	} else {
		if len(e.Self) == 0 {
			return nil, errors.New("no solution runner configured")
		}
		argv = append(append([]string(nil), e.Self...), req.Problem)
		file = e.Self[0]
	}
	if _, err := os.Stat(file); err != nil {
		return nil, fmt.Errorf("solution file %s not found", file)
	}
	return argv, nil
}

func (e *Executor) env(method string) []string {
	env := os.Environ()
	if method != "" {
		env = append(env, EnvSolutionMethod+"="+method)
	}
	env = append(env, EnvShapeReport+"=1")
	return append(env, e.ExtraEnv...)
}

func (e *Executor) interval() time.Duration {
	if e.SampleInterval <= 0 {
		return DefaultSampleInterval
	}
	return e.SampleInterval
}

func (e *Executor) errored(res CaseResult, reason string) CaseResult {
	e.log.Warn("case errored", "case", res.Name, "reason", reason)
	res.Outcome = Failed
	res.ValidationMode = ModeError
	res.Reason = reason
	return res
}
